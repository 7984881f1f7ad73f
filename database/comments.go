// fightclub/database/comments.go
package database

import (
	"database/sql"
	"fmt"

	"fightclub/apperr"
	"fightclub/models"
	"fightclub/utils"
)

const commentColumns = `c.id, c.content, c.author_id, u.username, u.avatar, c.post_id, c.parent_id,
	c.is_deleted, c.likes, c.dislikes, c.created_at`

func scanComment(row interface{ Scan(...any) error }) (*models.Comment, error) {
	var c models.Comment
	var parentID sql.NullInt64
	err := row.Scan(
		&c.ID, &c.Content, &c.Author.ID, &c.Author.Username, &c.Author.Avatar,
		&c.PostID, &parentID, &c.IsDeleted, &c.Stats.Likes, &c.Stats.Dislikes, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if parentID.Valid {
		c.ParentID = &parentID.Int64
	}
	// Tombstoned comments keep their place in the thread but withhold content.
	if c.IsDeleted {
		c.Content = ""
	}
	return &c, nil
}

// CreateComment adds a comment to a published post. The post's comment
// counter and the author's comment counter move in the same transaction as
// the insert. A parent comment, when given, must belong to the same post.
func (ds *DatabaseService) CreateComment(comment *models.Comment) error {
	tx, err := ds.DB.Begin()
	if err != nil {
		return apperr.Internal(fmt.Errorf("could not begin transaction: %w", err))
	}
	defer ds.rollback(tx, "CreateComment")

	var status models.PostStatus
	err = tx.QueryRow("SELECT status FROM posts WHERE id = ?", comment.PostID).Scan(&status)
	if err != nil {
		if err == sql.ErrNoRows {
			return apperr.NotFound("Post not found.")
		}
		return apperr.Internal(fmt.Errorf("failed to check post %d: %w", comment.PostID, err))
	}
	if status != models.StatusPublished {
		return apperr.Validation("Cannot comment on an unpublished post.")
	}

	var parent any
	if comment.ParentID != nil {
		var parentPostID int64
		err = tx.QueryRow("SELECT post_id FROM comments WHERE id = ?", *comment.ParentID).Scan(&parentPostID)
		if err != nil {
			if err == sql.ErrNoRows {
				return apperr.NotFound("Parent comment not found.")
			}
			return apperr.Internal(fmt.Errorf("failed to check parent comment: %w", err))
		}
		if parentPostID != comment.PostID {
			return apperr.Validation("Parent comment belongs to a different post.")
		}
		parent = *comment.ParentID
	}

	now := utils.GetSQLTime()
	res, err := tx.Exec(
		"INSERT INTO comments (content, author_id, post_id, parent_id, created_at) VALUES (?, ?, ?, ?, ?)",
		comment.Content, comment.Author.ID, comment.PostID, parent, now,
	)
	if err != nil {
		return apperr.Internal(fmt.Errorf("failed to insert comment: %w", err))
	}
	comment.ID, _ = res.LastInsertId()
	comment.CreatedAt = now

	if _, err := tx.Exec("UPDATE posts SET comment_count = comment_count + 1 WHERE id = ?", comment.PostID); err != nil {
		return apperr.Internal(fmt.Errorf("failed to increment post comment count: %w", err))
	}
	if _, err := tx.Exec("UPDATE users SET comment_count = comment_count + 1 WHERE id = ?", comment.Author.ID); err != nil {
		return apperr.Internal(fmt.Errorf("failed to increment author comment count: %w", err))
	}

	if err := tx.Commit(); err != nil {
		return apperr.Internal(fmt.Errorf("failed to commit comment creation: %w", err))
	}
	return nil
}

// GetComment fetches a single comment, tombstoned or not.
func (ds *DatabaseService) GetComment(commentID int64) (*models.Comment, error) {
	comment, err := scanComment(ds.DB.QueryRow(
		"SELECT "+commentColumns+" FROM comments c JOIN users u ON c.author_id = u.id WHERE c.id = ?", commentID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound("Comment not found.")
		}
		return nil, apperr.Internal(fmt.Errorf("failed to get comment %d: %w", commentID, err))
	}
	return comment, nil
}

// ListComments returns every comment of a post in creation order, tombstones
// included so the thread shape survives deletions.
func (ds *DatabaseService) ListComments(postID int64) ([]models.Comment, error) {
	rows, err := ds.DB.Query(
		"SELECT "+commentColumns+" FROM comments c JOIN users u ON c.author_id = u.id WHERE c.post_id = ? ORDER BY c.id ASC", postID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("failed to query comments for post %d: %w", postID, err))
	}
	defer func() {
		if err := rows.Close(); err != nil {
			ds.logger.Error("Failed to close rows in ListComments", "error", err)
		}
	}()

	comments := []models.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			ds.logger.Error("Failed to scan comment row", "error", err)
			continue
		}
		comments = append(comments, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal(fmt.Errorf("row error listing comments: %w", err))
	}
	return comments, nil
}

// DeleteComment tombstones a comment, keeping its slot in the thread, and
// walks back the counters the creation moved. Deleting twice is a no-op.
func (ds *DatabaseService) DeleteComment(commentID int64) error {
	tx, err := ds.DB.Begin()
	if err != nil {
		return apperr.Internal(fmt.Errorf("could not begin transaction: %w", err))
	}
	defer ds.rollback(tx, "DeleteComment")

	var postID, authorID int64
	var isDeleted bool
	err = tx.QueryRow("SELECT post_id, author_id, is_deleted FROM comments WHERE id = ?", commentID).Scan(&postID, &authorID, &isDeleted)
	if err != nil {
		if err == sql.ErrNoRows {
			return apperr.NotFound("Comment not found.")
		}
		return apperr.Internal(fmt.Errorf("failed to load comment %d: %w", commentID, err))
	}
	if isDeleted {
		return nil
	}

	if _, err := tx.Exec("UPDATE comments SET is_deleted = 1 WHERE id = ?", commentID); err != nil {
		return apperr.Internal(fmt.Errorf("failed to tombstone comment: %w", err))
	}
	if _, err := tx.Exec("UPDATE posts SET comment_count = comment_count - 1 WHERE id = ?", postID); err != nil {
		return apperr.Internal(fmt.Errorf("failed to decrement post comment count: %w", err))
	}
	if _, err := tx.Exec("UPDATE users SET comment_count = comment_count - 1 WHERE id = ?", authorID); err != nil {
		return apperr.Internal(fmt.Errorf("failed to decrement author comment count: %w", err))
	}

	if err := tx.Commit(); err != nil {
		return apperr.Internal(fmt.Errorf("failed to commit comment deletion: %w", err))
	}
	return nil
}

// LikeComment atomically increments the like counter of a live comment.
func (ds *DatabaseService) LikeComment(commentID int64) error {
	res, err := ds.DB.Exec("UPDATE comments SET likes = likes + 1 WHERE id = ? AND is_deleted = 0", commentID)
	if err != nil {
		return apperr.Internal(fmt.Errorf("failed to like comment %d: %w", commentID, err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("Comment not found.")
	}
	return nil
}
