// fightclub/database/posts.go
package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"fightclub/apperr"
	"fightclub/models"
	"fightclub/utils"
)

const postColumns = `p.id, p.title, p.content, p.author_id, u.username, u.avatar, p.board_id, p.category,
	p.tags, p.attachments, p.status, p.is_notice, p.is_pinned,
	p.views, p.likes, p.dislikes, p.comment_count, p.created_at, p.updated_at`

func scanPost(row interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	var tagsJSON, attachmentsJSON string
	err := row.Scan(
		&p.ID, &p.Title, &p.Content, &p.Author.ID, &p.Author.Username, &p.Author.Avatar,
		&p.BoardID, &p.Category, &tagsJSON, &attachmentsJSON, &p.Status, &p.IsNotice, &p.IsPinned,
		&p.Stats.Views, &p.Stats.Likes, &p.Stats.Dislikes, &p.Stats.Comments,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(tagsJSON), &p.Tags); err != nil {
		p.Tags = nil
	}
	if err := json.Unmarshal([]byte(attachmentsJSON), &p.Attachments); err != nil {
		p.Attachments = nil
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Attachments == nil {
		p.Attachments = []models.Attachment{}
	}
	return &p, nil
}

func marshalJSONColumn(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// CreatePost inserts a post with its author attached server-side and all
// counters zeroed. The target board must exist and be active. When the post
// lands as published, the board's post count and the author's post counter
// move in the same transaction.
func (ds *DatabaseService) CreatePost(post *models.Post) error {
	if !post.Status.Valid() {
		post.Status = models.StatusPublished
	}
	if post.Category == "" {
		post.Category = "general"
	}

	tx, err := ds.DB.Begin()
	if err != nil {
		return apperr.Internal(fmt.Errorf("could not begin transaction: %w", err))
	}
	defer ds.rollback(tx, "CreatePost")

	var boardActive bool
	err = tx.QueryRow("SELECT is_active FROM boards WHERE id = ?", post.BoardID).Scan(&boardActive)
	if err != nil {
		if err == sql.ErrNoRows {
			return apperr.NotFound(fmt.Sprintf("Board '%s' not found.", post.BoardID))
		}
		return apperr.Internal(fmt.Errorf("failed to check board '%s': %w", post.BoardID, err))
	}
	if !boardActive {
		return apperr.Validation(fmt.Sprintf("Board '%s' is closed.", post.BoardID))
	}

	now := utils.GetSQLTime()
	res, err := tx.Exec(`
		INSERT INTO posts (title, content, author_id, board_id, category, tags, attachments, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		post.Title, post.Content, post.Author.ID, post.BoardID, post.Category,
		marshalJSONColumn(post.Tags), marshalJSONColumn(post.Attachments), post.Status, now, now,
	)
	if err != nil {
		return apperr.Internal(fmt.Errorf("failed to insert post: %w", err))
	}
	post.ID, _ = res.LastInsertId()
	post.CreatedAt, post.UpdatedAt = now, now

	if post.Status == models.StatusPublished {
		if err := adjustPublishCounters(tx, post.BoardID, post.Author.ID, +1); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return apperr.Internal(fmt.Errorf("failed to commit post creation: %w", err))
	}
	ds.ClearBoardCache(post.BoardID)
	return nil
}

// adjustPublishCounters moves the denormalized aggregates that track the
// published-post collection: the owning board's post_count and the author's
// post counter. Always called inside the same transaction as the post row
// mutation so the aggregates never drift.
func adjustPublishCounters(tx *sql.Tx, boardID string, authorID int64, delta int) error {
	if _, err := tx.Exec("UPDATE boards SET post_count = post_count + ? WHERE id = ?", delta, boardID); err != nil {
		return apperr.Internal(fmt.Errorf("failed to adjust board post count: %w", err))
	}
	if _, err := tx.Exec("UPDATE users SET post_count = post_count + ? WHERE id = ?", delta, authorID); err != nil {
		return apperr.Internal(fmt.Errorf("failed to adjust author post count: %w", err))
	}
	return nil
}

// GetPost fetches a single post. When countView is set and the post is
// published, the view counter is bumped atomically in the store first so
// concurrent reads never lose increments.
func (ds *DatabaseService) GetPost(postID int64, countView bool) (*models.Post, error) {
	if countView {
		if _, err := ds.DB.Exec("UPDATE posts SET views = views + 1 WHERE id = ? AND status = 'published'", postID); err != nil {
			ds.logger.Warn("Failed to increment view counter", "post_id", postID, "error", err)
		}
	}

	post, err := scanPost(ds.DB.QueryRow(
		"SELECT "+postColumns+" FROM posts p JOIN users u ON p.author_id = u.id WHERE p.id = ?", postID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound("Post not found.")
		}
		return nil, apperr.Internal(fmt.Errorf("failed to get post %d: %w", postID, err))
	}
	return post, nil
}

// UpdatePost edits the mutable fields of a post. Ownership is enforced by the
// caller; this layer only applies the change.
func (ds *DatabaseService) UpdatePost(postID int64, title, content, category string, tags []string) (*models.Post, error) {
	res, err := ds.DB.Exec(
		"UPDATE posts SET title = ?, content = ?, category = ?, tags = ?, updated_at = ? WHERE id = ?",
		title, content, category, marshalJSONColumn(tags), utils.GetSQLTime(), postID,
	)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("failed to update post %d: %w", postID, err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, apperr.NotFound("Post not found.")
	}
	return ds.GetPost(postID, false)
}

// SetPostStatus applies a lifecycle transition. Transitions run one way,
// draft -> published -> hidden; hidden is terminal unless asAdmin restores it
// to published. Counter aggregates follow the published collection exactly,
// so hiding decrements what publishing incremented.
func (ds *DatabaseService) SetPostStatus(postID int64, next models.PostStatus, asAdmin bool) error {
	if !next.Valid() {
		return apperr.Validation("Unknown post status.")
	}

	tx, err := ds.DB.Begin()
	if err != nil {
		return apperr.Internal(fmt.Errorf("could not begin transaction: %w", err))
	}
	defer ds.rollback(tx, "SetPostStatus")

	var current models.PostStatus
	var boardID string
	var authorID int64
	err = tx.QueryRow("SELECT status, board_id, author_id FROM posts WHERE id = ?", postID).Scan(&current, &boardID, &authorID)
	if err != nil {
		if err == sql.ErrNoRows {
			return apperr.NotFound("Post not found.")
		}
		return apperr.Internal(fmt.Errorf("failed to load post %d for transition: %w", postID, err))
	}

	if current == next {
		return nil
	}
	allowed := (current == models.StatusDraft && next == models.StatusPublished) ||
		(current == models.StatusPublished && next == models.StatusHidden) ||
		(current == models.StatusHidden && next == models.StatusPublished && asAdmin)
	if !allowed {
		return apperr.Validation(fmt.Sprintf("Cannot change post status from '%s' to '%s'.", current, next))
	}

	if _, err := tx.Exec("UPDATE posts SET status = ?, updated_at = ? WHERE id = ?", next, utils.GetSQLTime(), postID); err != nil {
		return apperr.Internal(fmt.Errorf("failed to update post status: %w", err))
	}

	if next == models.StatusPublished {
		err = adjustPublishCounters(tx, boardID, authorID, +1)
	} else if current == models.StatusPublished {
		err = adjustPublishCounters(tx, boardID, authorID, -1)
	}
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperr.Internal(fmt.Errorf("failed to commit status transition: %w", err))
	}
	ds.ClearBoardCache(boardID)
	return nil
}

// LikePost atomically increments the like counter of a published post and the
// author's received-likes counter.
func (ds *DatabaseService) LikePost(postID int64) error {
	return ds.reactToPost(postID, "likes", true)
}

// DislikePost atomically increments the dislike counter of a published post.
func (ds *DatabaseService) DislikePost(postID int64) error {
	return ds.reactToPost(postID, "dislikes", false)
}

func (ds *DatabaseService) reactToPost(postID int64, column string, creditAuthor bool) error {
	tx, err := ds.DB.Begin()
	if err != nil {
		return apperr.Internal(fmt.Errorf("could not begin transaction: %w", err))
	}
	defer ds.rollback(tx, "reactToPost")

	// The counter moves in the store, never read-modify-write in memory.
	res, err := tx.Exec("UPDATE posts SET "+column+" = "+column+" + 1 WHERE id = ? AND status = 'published'", postID)
	if err != nil {
		return apperr.Internal(fmt.Errorf("failed to increment %s for post %d: %w", column, postID, err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("Post not found.")
	}

	if creditAuthor {
		if _, err := tx.Exec("UPDATE users SET like_count = like_count + 1 WHERE id = (SELECT author_id FROM posts WHERE id = ?)", postID); err != nil {
			return apperr.Internal(fmt.Errorf("failed to credit author likes: %w", err))
		}
	}

	if err := tx.Commit(); err != nil {
		return apperr.Internal(fmt.Errorf("failed to commit reaction: %w", err))
	}
	return nil
}

// ListPosts returns one page of published posts. The "best" board selector
// spans every board. Out-of-range pages return an empty list with correct
// pagination metadata, not an error.
func (ds *DatabaseService) ListPosts(q models.ListQuery) (*models.PostListing, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 30
	}
	if q.PageSize > 100 {
		q.PageSize = 100
	}

	where := "status = 'published'"
	args := []any{}
	if q.Board != "" && q.Board != models.BestBoard {
		where += " AND board_id = ?"
		args = append(args, q.Board)
	}

	var total int64
	if err := ds.DB.QueryRow("SELECT COUNT(*) FROM posts WHERE "+where, args...).Scan(&total); err != nil {
		return nil, apperr.Internal(fmt.Errorf("failed to count posts: %w", err))
	}

	var order string
	switch q.Sort {
	case models.SortPopular:
		order = "p.likes DESC, p.created_at DESC"
	case models.SortViews:
		order = "p.views DESC, p.created_at DESC"
	case models.SortComments:
		order = "p.comment_count DESC, p.created_at DESC"
	default: // latest
		order = "p.is_pinned DESC, p.created_at DESC"
	}

	offset := (q.Page - 1) * q.PageSize
	query := "SELECT " + postColumns + " FROM posts p JOIN users u ON p.author_id = u.id WHERE p." + where +
		" ORDER BY " + order + " LIMIT ? OFFSET ?"
	rows, err := ds.DB.Query(query, append(args, q.PageSize, offset)...)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("failed to query post listing: %w", err))
	}
	defer func() {
		if err := rows.Close(); err != nil {
			ds.logger.Error("Failed to close rows in ListPosts", "error", err)
		}
	}()

	posts := []models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			ds.logger.Error("Failed to scan post row", "error", err)
			continue
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal(fmt.Errorf("row error listing posts: %w", err))
	}

	totalPages := int((total + int64(q.PageSize) - 1) / int64(q.PageSize))
	return &models.PostListing{
		Posts: posts,
		Pagination: models.Pagination{
			CurrentPage: q.Page,
			TotalPages:  totalPages,
			TotalPosts:  total,
			HasNext:     q.Page < totalPages,
			HasPrev:     q.Page > 1,
		},
	}, nil
}
