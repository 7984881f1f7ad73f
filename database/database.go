// fightclub/database/database.go
package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"fightclub/models"
	"fightclub/utils"
)

// DatabaseService is the central struct for all database operations.
type DatabaseService struct {
	DB         *sql.DB
	logger     *slog.Logger
	boardCache map[string]*models.Board
	cacheMu    sync.RWMutex
}

// InitDB connects to the database and runs the schema and migrations.
func InitDB(dataSourceName string, logger *slog.Logger) (*DatabaseService, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, err
	}

	// Run the base schema to ensure all tables exist.
	if _, err = db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to execute base schema: %w", err)
	}

	if err := runMigrations(db, logger); err != nil {
		return nil, fmt.Errorf("database migration failed: %w", err)
	}

	logger.Info("Database initialized and cache ready.")

	return &DatabaseService{
		DB:         db,
		logger:     logger,
		boardCache: make(map[string]*models.Board),
	}, nil
}

// defaultBoards mirrors the boards the forum launched with.
var defaultBoards = []models.Board{
	{ID: "best", Name: "Daily Best", Description: "The most popular posts across all boards", Category: "general"},
	{ID: "politics", Name: "Politics", Description: "Political discussion", Category: "general"},
	{ID: "issue", Name: "Issues", Description: "Hot topics of the day", Category: "general"},
	{ID: "society", Name: "Society", Description: "Social debate", Category: "general"},
	{ID: "celeb", Name: "Celebrities", Description: "Entertainment news", Category: "entertainment"},
	{ID: "stock", Name: "Stocks", Description: "Investing and the economy", Category: "finance"},
}

// Seed creates the default boards and the bootstrap admin account when they
// do not exist yet. adminPasswordHash is a ready bcrypt digest; this layer
// never sees plaintext credentials.
func (ds *DatabaseService) Seed(adminPasswordHash string) error {
	for _, board := range defaultBoards {
		var exists int
		if err := ds.DB.QueryRow("SELECT COUNT(*) FROM boards WHERE id = ?", board.ID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check board %q: %w", board.ID, err)
		}
		if exists > 0 {
			continue
		}
		_, err := ds.DB.Exec(
			"INSERT INTO boards (id, name, description, category, is_active, post_count, created) VALUES (?, ?, ?, ?, 1, 0, ?)",
			board.ID, board.Name, board.Description, board.Category, utils.GetSQLTime(),
		)
		if err != nil {
			return fmt.Errorf("failed to seed board %q: %w", board.ID, err)
		}
		ds.logger.Info("Seeded board", "board_id", board.ID, "name", board.Name)
	}

	var adminCount int
	if err := ds.DB.QueryRow("SELECT COUNT(*) FROM users WHERE username = 'admin'").Scan(&adminCount); err != nil {
		return fmt.Errorf("failed to check admin account: %w", err)
	}
	if adminCount == 0 {
		now := utils.GetSQLTime()
		_, err := ds.DB.Exec(
			"INSERT INTO users (username, email, password_hash, role, is_active, join_date, last_active) VALUES ('admin', 'admin@fightclub.com', ?, 'admin', 1, ?, ?)",
			adminPasswordHash, now, now,
		)
		if err != nil {
			return fmt.Errorf("failed to seed admin account: %w", err)
		}
		ds.logger.Info("Created bootstrap admin account", "username", "admin")
	}

	return nil
}

// runMigrations applies all un-applied migrations.
func runMigrations(db *sql.DB, logger *slog.Logger) error {
	var latestVersion uint
	err := db.QueryRow("SELECT version FROM schema_migrations ORDER BY version DESC LIMIT 1").Scan(&latestVersion)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("could not get db version: %w", err)
	}

	logger.Info("Current database schema version", "version", latestVersion)

	for _, m := range allMigrations {
		if m.Version > latestVersion {
			logger.Info("Applying migration", "version", m.Version)
			tx, err := db.Begin()
			if err != nil {
				return err
			}

			if _, err := tx.Exec(m.Query); err != nil {
				if rerr := tx.Rollback(); rerr != nil {
					logger.Error("Failed to rollback migration", "version", m.Version, "error", rerr)
				}
				return fmt.Errorf("failed to apply migration v%d: %w", m.Version, err)
			}
			if _, err := tx.Exec("INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)", m.Version, utils.GetSQLTime()); err != nil {
				if rerr := tx.Rollback(); rerr != nil {
					logger.Error("Failed to rollback migration record", "version", m.Version, "error", rerr)
				}
				return fmt.Errorf("failed to record migration v%d: %w", m.Version, err)
			}

			if err := tx.Commit(); err != nil {
				return fmt.Errorf("failed to commit migration v%d: %w", m.Version, err)
			}
			logger.Info("Successfully applied migration", "version", m.Version)
		}
	}
	return nil
}

// rollback discards a transaction, logging anything other than "already done".
func (ds *DatabaseService) rollback(tx *sql.Tx, op string) {
	if rerr := tx.Rollback(); rerr != nil && rerr != sql.ErrTxDone {
		ds.logger.Error("Failed to rollback transaction", "op", op, "error", rerr)
	}
}
