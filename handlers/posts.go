// fightclub/handlers/posts.go
package handlers

import (
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"fightclub/apperr"
	"fightclub/auth"
	"fightclub/config"
	"fightclub/models"
	"fightclub/utils"
)

// HandleListPosts serves the public, paginated post listing.
func HandleListPosts(w http.ResponseWriter, r *http.Request, app App) {
	q := models.ListQuery{
		Board:    r.URL.Query().Get("board"),
		Sort:     models.SortKey(r.URL.Query().Get("sort")),
		Page:     1,
		PageSize: config.DefaultPageSize,
	}
	if q.Board == "" {
		q.Board = models.BestBoard
	}
	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		q.Page = page
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		q.PageSize = limit
	}

	listing, err := app.DB().ListPosts(q)
	if err != nil {
		respondError(w, app, err)
		return
	}
	respondJSON(w, http.StatusOK, listing, app)
}

// HandleGetPost serves a single post and counts the view.
func HandleGetPost(w http.ResponseWriter, r *http.Request, app App) {
	postID, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil {
		respondError(w, app, apperr.Validation("Post id must be numeric."))
		return
	}

	post, err := app.DB().GetPost(postID, true)
	if err != nil {
		respondError(w, app, err)
		return
	}
	respondJSON(w, http.StatusOK, post, app)
}

type postInput struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Board    string   `json:"board"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Status   string   `json:"status"`
}

// parsePostInput reads either a JSON body or a multipart form (the latter may
// carry file attachments).
func parsePostInput(r *http.Request, app App) (*postInput, []models.Attachment, error) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		var in postInput
		if err := decodeJSON(r, &in); err != nil {
			return nil, nil, err
		}
		return &in, nil, nil
	}

	if err := r.ParseMultipartForm(config.MaxFileSize + 1024); err != nil {
		return nil, nil, apperr.Validation("Form parsing error: " + err.Error())
	}
	in := &postInput{
		Title:    r.FormValue("title"),
		Content:  r.FormValue("content"),
		Board:    r.FormValue("board"),
		Category: r.FormValue("category"),
		Status:   r.FormValue("status"),
	}
	if rawTags := r.FormValue("tags"); rawTags != "" {
		for _, tag := range strings.Split(rawTags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				in.Tags = append(in.Tags, tag)
			}
		}
	}

	var attachments []models.Attachment
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["files"] {
			attachment, err := saveAttachment(header, app)
			if err != nil {
				return nil, nil, err
			}
			attachments = append(attachments, *attachment)
		}
	}
	return in, attachments, nil
}

// saveAttachment streams one uploaded file to the storage collaborator. Image
// uploads get a thumbnail; the core keeps locators and metadata only.
func saveAttachment(header *multipart.FileHeader, app App) (*models.Attachment, error) {
	if header.Size > config.MaxFileSize {
		return nil, apperr.Validation("Attachment exceeds the maximum file size.")
	}

	file, err := header.Open()
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, config.MaxFileSize+1))
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if int64(len(data)) > config.MaxFileSize {
		return nil, apperr.Validation("Attachment exceeds the maximum file size.")
	}

	contentType := header.Header.Get("Content-Type")
	filename := uuid.New().String() + strings.ToLower(filepath.Ext(header.Filename))
	url, err := app.Storage().SaveFile(filename, data, contentType)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	attachment := &models.Attachment{
		Filename:     filename,
		OriginalName: header.Filename,
		MimeType:     contentType,
		Size:         header.Size,
		URL:          url,
	}

	if utils.IsImageMimeType(contentType) {
		thumb, err := utils.MakeThumbnail(data, config.ThumbnailWidth, config.ThumbnailHeight)
		if err != nil {
			app.Logger().Warn("Failed to thumbnail attachment", "filename", header.Filename, "error", err)
		} else {
			thumbURL, err := app.Storage().SaveFile("thumb_"+strings.TrimSuffix(filename, filepath.Ext(filename))+".jpg", thumb, "image/jpeg")
			if err != nil {
				app.Logger().Warn("Failed to store thumbnail", "filename", filename, "error", err)
			} else {
				attachment.ThumbnailURL = thumbURL
			}
		}
	}
	return attachment, nil
}

// HandleCreatePost creates a post owned by the authenticated user. The author
// always comes from the verified identity, never from client input.
func HandleCreatePost(w http.ResponseWriter, r *http.Request, app App) {
	logger := app.Logger().With("handler", "HandleCreatePost")
	user := identityFrom(r)

	in, attachments, err := parsePostInput(r, app)
	if err != nil {
		respondError(w, app, err)
		return
	}

	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" || strings.TrimSpace(in.Content) == "" || in.Board == "" {
		respondError(w, app, apperr.Validation("Title, content, and board are required."))
		return
	}
	if len(in.Title) > config.MaxTitleLen || len(in.Content) > config.MaxContentLen {
		respondError(w, app, apperr.Validation("Title or content exceeds the maximum length."))
		return
	}
	if len(in.Tags) > config.MaxTagCount {
		respondError(w, app, apperr.Validation("Too many tags."))
		return
	}

	status := models.StatusPublished
	if in.Status == string(models.StatusDraft) {
		status = models.StatusDraft
	}

	post := &models.Post{
		Title:       in.Title,
		Content:     in.Content,
		Author:      models.PostAuthor{ID: user.ID, Username: user.Username, Avatar: user.Avatar},
		BoardID:     in.Board,
		Category:    in.Category,
		Tags:        in.Tags,
		Attachments: attachments,
		Status:      status,
	}
	if err := app.DB().CreatePost(post); err != nil {
		respondError(w, app, err)
		return
	}

	logger.Info("Post created", "post_id", post.ID, "board", post.BoardID, "author_id", user.ID)
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Post created.",
		"post":    post,
	}, app)
}

// loadOwnedPost fetches a post and enforces the ownership rule: author or
// admin may modify, everyone else gets Forbidden.
func loadOwnedPost(r *http.Request, app App) (*models.Post, error) {
	postID, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil {
		return nil, apperr.Validation("Post id must be numeric.")
	}
	post, err := app.DB().GetPost(postID, false)
	if err != nil {
		return nil, err
	}
	if !auth.CanModify(identityFrom(r), post.Author.ID) {
		return nil, apperr.Forbidden("You may only modify your own posts.")
	}
	return post, nil
}

// HandleUpdatePost edits a post's mutable fields.
func HandleUpdatePost(w http.ResponseWriter, r *http.Request, app App) {
	post, err := loadOwnedPost(r, app)
	if err != nil {
		respondError(w, app, err)
		return
	}

	var in postInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, app, err)
		return
	}
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" || strings.TrimSpace(in.Content) == "" {
		respondError(w, app, apperr.Validation("Title and content are required."))
		return
	}
	if len(in.Title) > config.MaxTitleLen || len(in.Content) > config.MaxContentLen {
		respondError(w, app, apperr.Validation("Title or content exceeds the maximum length."))
		return
	}
	if in.Category == "" {
		in.Category = post.Category
	}
	if in.Tags == nil {
		in.Tags = post.Tags
	}

	updated, err := app.DB().UpdatePost(post.ID, in.Title, in.Content, in.Category, in.Tags)
	if err != nil {
		respondError(w, app, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Post updated.",
		"post":    updated,
	}, app)
}

// HandleDeletePost hides a post. Deletion is a lifecycle transition so the
// comment thread survives.
func HandleDeletePost(w http.ResponseWriter, r *http.Request, app App) {
	post, err := loadOwnedPost(r, app)
	if err != nil {
		respondError(w, app, err)
		return
	}

	user := identityFrom(r)
	if err := app.DB().SetPostStatus(post.ID, models.StatusHidden, user.IsAdmin()); err != nil {
		respondError(w, app, err)
		return
	}
	app.Logger().Info("Post hidden", "post_id", post.ID, "by", user.Username)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Post deleted."}, app)
}

type statusRequest struct {
	Status models.PostStatus `json:"status"`
}

// HandleSetPostStatus applies an explicit lifecycle transition: publish a
// draft, hide a post, or restore a hidden one (admins only).
func HandleSetPostStatus(w http.ResponseWriter, r *http.Request, app App) {
	post, err := loadOwnedPost(r, app)
	if err != nil {
		respondError(w, app, err)
		return
	}

	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, app, err)
		return
	}

	user := identityFrom(r)
	if err := app.DB().SetPostStatus(post.ID, req.Status, user.IsAdmin()); err != nil {
		respondError(w, app, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Post status updated."}, app)
}

// HandleLikePost counts a like. Concurrent likes all land; the increment is
// atomic at the store.
func HandleLikePost(w http.ResponseWriter, r *http.Request, app App) {
	reactToPost(w, r, app, app.DB().LikePost)
}

// HandleDislikePost counts a dislike.
func HandleDislikePost(w http.ResponseWriter, r *http.Request, app App) {
	reactToPost(w, r, app, app.DB().DislikePost)
}

func reactToPost(w http.ResponseWriter, r *http.Request, app App, react func(int64) error) {
	postID, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil {
		respondError(w, app, apperr.Validation("Post id must be numeric."))
		return
	}
	if err := react(postID); err != nil {
		respondError(w, app, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Reaction recorded."}, app)
}
