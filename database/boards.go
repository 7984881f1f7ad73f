// fightclub/database/boards.go
package database

import (
	"database/sql"
	"errors"
	"fmt"

	sqlite3 "github.com/mattn/go-sqlite3"

	"fightclub/apperr"
	"fightclub/models"
	"fightclub/utils"
)

// ListBoards returns all active boards sorted by name.
func (ds *DatabaseService) ListBoards() ([]models.Board, error) {
	rows, err := ds.DB.Query(
		"SELECT id, name, description, category, is_active, post_count, created FROM boards WHERE is_active = 1 ORDER BY name ASC")
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("failed to query boards: %w", err))
	}
	defer func() {
		if err := rows.Close(); err != nil {
			ds.logger.Error("Failed to close rows in ListBoards", "error", err)
		}
	}()

	var boards []models.Board
	for rows.Next() {
		var b models.Board
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.Category, &b.IsActive, &b.PostCount, &b.CreatedAt); err != nil {
			ds.logger.Error("Failed to scan board row", "error", err)
			continue
		}
		boards = append(boards, b)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal(fmt.Errorf("row error listing boards: %w", err))
	}
	return boards, nil
}

// GetBoard fetches a board, using the instance's cache. Cached entries are
// invalidated whenever a post-count or status mutation touches the board.
func (ds *DatabaseService) GetBoard(boardID string) (*models.Board, error) {
	ds.cacheMu.RLock()
	cached, ok := ds.boardCache[boardID]
	ds.cacheMu.RUnlock()
	if ok {
		return cached, nil
	}

	var b models.Board
	err := ds.DB.QueryRow(
		"SELECT id, name, description, category, is_active, post_count, created FROM boards WHERE id = ?", boardID).
		Scan(&b.ID, &b.Name, &b.Description, &b.Category, &b.IsActive, &b.PostCount, &b.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound(fmt.Sprintf("Board '%s' not found.", boardID))
		}
		return nil, apperr.Internal(fmt.Errorf("db error getting board '%s': %w", boardID, err))
	}

	ds.cacheMu.Lock()
	ds.boardCache[boardID] = &b
	ds.cacheMu.Unlock()
	return &b, nil
}

// CreateBoard adds a new board. Admin-only at the handler layer.
func (ds *DatabaseService) CreateBoard(board *models.Board) error {
	if board.Category == "" {
		board.Category = "general"
	}
	board.CreatedAt = utils.GetSQLTime()
	_, err := ds.DB.Exec(
		"INSERT INTO boards (id, name, description, category, is_active, post_count, created) VALUES (?, ?, ?, ?, 1, 0, ?)",
		board.ID, board.Name, board.Description, board.Category, board.CreatedAt,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && (sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique || sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey) {
			return apperr.Conflict(fmt.Sprintf("Board '%s' already exists.", board.ID))
		}
		return apperr.Internal(fmt.Errorf("failed to insert board: %w", err))
	}
	board.IsActive = true
	return nil
}

// DisableBoard soft-disables a board. Its posts stay reachable by direct id;
// the board just stops appearing in listings and accepting new posts.
func (ds *DatabaseService) DisableBoard(boardID string) error {
	res, err := ds.DB.Exec("UPDATE boards SET is_active = 0 WHERE id = ?", boardID)
	if err != nil {
		return apperr.Internal(fmt.Errorf("failed to disable board '%s': %w", boardID, err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound(fmt.Sprintf("Board '%s' not found.", boardID))
	}
	ds.ClearBoardCache(boardID)
	return nil
}

// --- Cache Management ---

func (ds *DatabaseService) ClearBoardCache(boardID string) {
	ds.cacheMu.Lock()
	delete(ds.boardCache, boardID)
	ds.cacheMu.Unlock()
}

func (ds *DatabaseService) ClearAllBoardCaches() {
	ds.cacheMu.Lock()
	ds.boardCache = make(map[string]*models.Board)
	ds.cacheMu.Unlock()
}
