// fightclub/database/users.go
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

const userColumns = "id, username, email, password_hash, role, avatar, is_active, join_date, last_active, post_count, comment_count, like_count"

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.Avatar,
		&u.IsActive, &u.JoinDate, &u.LastActive,
		&u.Stats.Posts, &u.Stats.Comments, &u.Stats.Likes,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser registers a new account. Username and email are globally unique;
// a duplicate of either fails with Conflict and leaves the existing record
// untouched. The caller supplies a ready bcrypt digest, never plaintext.
func (ds *DatabaseService) CreateUser(username, email, passwordHash string) (*models.User, error) {
	// Pre-check for the friendlier of the two conflict messages. The UNIQUE
	// indexes still back this up under concurrent registration.
	var existingName string
	err := ds.DB.QueryRow("SELECT username FROM users WHERE username = ? OR email = ?", username, email).Scan(&existingName)
	if err == nil {
		if existingName == username {
			return nil, apperr.Conflict("Username is already taken.")
		}
		return nil, apperr.Conflict("Email is already registered.")
	}
	if err != sql.ErrNoRows {
		return nil, apperr.Internal(fmt.Errorf("failed to check existing user: %w", err))
	}

	now := utils.GetSQLTime()
	res, err := ds.DB.Exec(
		"INSERT INTO users (username, email, password_hash, role, is_active, join_date, last_active) VALUES (?, ?, ?, 'user', 1, ?, ?)",
		username, email, passwordHash, now, now,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, apperr.Conflict("Username or email is already taken.")
		}
		return nil, apperr.Internal(fmt.Errorf("failed to insert user: %w", err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("failed to read new user id: %w", err))
	}
	return ds.GetUserByID(id)
}

// GetUserByID fetches a user regardless of active flag; callers decide what an
// inactive account means for them.
func (ds *DatabaseService) GetUserByID(id int64) (*models.User, error) {
	user, err := scanUser(ds.DB.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound("User not found.")
		}
		return nil, apperr.Internal(fmt.Errorf("failed to get user %d: %w", id, err))
	}
	return user, nil
}

// GetUserByLogin resolves an active account by username or email.
func (ds *DatabaseService) GetUserByLogin(login string) (*models.User, error) {
	user, err := scanUser(ds.DB.QueryRow(
		"SELECT "+userColumns+" FROM users WHERE (username = ? OR email = ?) AND is_active = 1", login, login))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound("User does not exist.")
		}
		return nil, apperr.Internal(fmt.Errorf("failed to get user by login: %w", err))
	}
	return user, nil
}

// TouchLastActive stamps the user's last-active timestamp. Callers treat this
// as fire-and-forget: a failure here never aborts the surrounding request.
func (ds *DatabaseService) TouchLastActive(id int64) error {
	_, err := ds.DB.Exec("UPDATE users SET last_active = ? WHERE id = ?", utils.GetSQLTime(), id)
	if err != nil {
		return fmt.Errorf("failed to stamp last_active for user %d: %w", id, err)
	}
	return nil
}

// SetUserActive flips the account's active flag. Accounts are never
// hard-deleted; deactivation invalidates authentication downstream.
func (ds *DatabaseService) SetUserActive(id int64, active bool) error {
	res, err := ds.DB.Exec("UPDATE users SET is_active = ? WHERE id = ?", active, id)
	if err != nil {
		return apperr.Internal(fmt.Errorf("failed to update active flag for user %d: %w", id, err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("User not found.")
	}
	return nil
}
