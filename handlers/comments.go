// fightclub/handlers/comments.go
package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"fightclub/apperr"
	"fightclub/auth"
	"fightclub/config"
	"fightclub/models"
)

type commentRequest struct {
	Content string `json:"content"`
	Parent  *int64 `json:"parent,omitempty"`
}

// HandleCreateComment adds a comment (optionally threaded under a parent) to
// a published post.
func HandleCreateComment(w http.ResponseWriter, r *http.Request, app App) {
	postID, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil {
		respondError(w, app, apperr.Validation("Post id must be numeric."))
		return
	}

	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, app, err)
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		respondError(w, app, apperr.Validation("Comment content is required."))
		return
	}
	if len(req.Content) > config.MaxCommentLen {
		respondError(w, app, apperr.Validation("Comment exceeds the maximum length."))
		return
	}

	user := identityFrom(r)
	comment := &models.Comment{
		Content:  req.Content,
		Author:   models.PostAuthor{ID: user.ID, Username: user.Username, Avatar: user.Avatar},
		PostID:   postID,
		ParentID: req.Parent,
	}
	if err := app.DB().CreateComment(comment); err != nil {
		respondError(w, app, err)
		return
	}

	app.Logger().Info("Comment created", "comment_id", comment.ID, "post_id", postID, "author_id", user.ID)
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Comment created.",
		"comment": comment,
	}, app)
}

// HandleListComments returns the full comment thread of a post. Public.
func HandleListComments(w http.ResponseWriter, r *http.Request, app App) {
	postID, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil {
		respondError(w, app, apperr.Validation("Post id must be numeric."))
		return
	}

	// 404 for a post that was never created; hidden posts still show their
	// thread shape to keep permalinks working.
	if _, err := app.DB().GetPost(postID, false); err != nil {
		respondError(w, app, err)
		return
	}

	comments, err := app.DB().ListComments(postID)
	if err != nil {
		respondError(w, app, err)
		return
	}
	respondJSON(w, http.StatusOK, comments, app)
}

// HandleDeleteComment tombstones a comment. Author or admin only.
func HandleDeleteComment(w http.ResponseWriter, r *http.Request, app App) {
	commentID, err := strconv.ParseInt(chi.URLParam(r, "commentID"), 10, 64)
	if err != nil {
		respondError(w, app, apperr.Validation("Comment id must be numeric."))
		return
	}

	comment, err := app.DB().GetComment(commentID)
	if err != nil {
		respondError(w, app, err)
		return
	}
	user := identityFrom(r)
	if !auth.CanModify(user, comment.Author.ID) {
		respondError(w, app, apperr.Forbidden("You may only delete your own comments."))
		return
	}

	if err := app.DB().DeleteComment(commentID); err != nil {
		respondError(w, app, err)
		return
	}
	app.Logger().Info("Comment deleted", "comment_id", commentID, "by", user.Username)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Comment deleted."}, app)
}

// HandleLikeComment counts a like on a live comment.
func HandleLikeComment(w http.ResponseWriter, r *http.Request, app App) {
	commentID, err := strconv.ParseInt(chi.URLParam(r, "commentID"), 10, 64)
	if err != nil {
		respondError(w, app, apperr.Validation("Comment id must be numeric."))
		return
	}
	if err := app.DB().LikeComment(commentID); err != nil {
		respondError(w, app, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Reaction recorded."}, app)
}
