// fightclub/handlers/boards.go
package handlers

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"

	"fightclub/apperr"
	"fightclub/models"
)

var boardSlugRe = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,31}$`)

// HandleListBoards returns all active boards. Public.
func HandleListBoards(w http.ResponseWriter, r *http.Request, app App) {
	boards, err := app.DB().ListBoards()
	if err != nil {
		respondError(w, app, err)
		return
	}
	if boards == nil {
		boards = []models.Board{}
	}
	respondJSON(w, http.StatusOK, boards, app)
}

type createBoardRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// HandleCreateBoard adds a board. Admin only (enforced by middleware).
func HandleCreateBoard(w http.ResponseWriter, r *http.Request, app App) {
	var req createBoardRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, app, err)
		return
	}

	req.ID = strings.TrimSpace(req.ID)
	req.Name = strings.TrimSpace(req.Name)
	if req.ID == "" || req.Name == "" || req.Description == "" {
		respondError(w, app, apperr.Validation("Board id, name, and description are required."))
		return
	}
	if !boardSlugRe.MatchString(req.ID) {
		respondError(w, app, apperr.Validation("Board id must be a lowercase slug."))
		return
	}

	board := &models.Board{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
	}
	if err := app.DB().CreateBoard(board); err != nil {
		respondError(w, app, err)
		return
	}

	app.Logger().Info("Board created", "board_id", board.ID, "by", identityFrom(r).Username)
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Board created.",
		"board":   board,
	}, app)
}

// HandleDisableBoard closes a board. Admin only.
func HandleDisableBoard(w http.ResponseWriter, r *http.Request, app App) {
	boardID := chi.URLParam(r, "boardID")
	if err := app.DB().DisableBoard(boardID); err != nil {
		respondError(w, app, err)
		return
	}
	app.Logger().Info("Board disabled", "board_id", boardID, "by", identityFrom(r).Username)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Board closed."}, app)
}
