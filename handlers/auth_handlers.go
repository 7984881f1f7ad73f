// fightclub/handlers/auth_handlers.go
package handlers

import (
	"net/http"
	"strings"

	"fightclub/apperr"
	"fightclub/auth"
	"fightclub/config"
)

type registerRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

type loginRequest struct {
	Username string `json:"username"` // username or email
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

// HandleRegister creates an account and returns a session token. The
// response never carries the password hash.
func HandleRegister(w http.ResponseWriter, r *http.Request, app App) {
	logger := app.Logger().With("handler", "HandleRegister")

	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, app, err)
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		respondError(w, app, apperr.Validation("Username, email, and password are required."))
		return
	}
	if req.PasswordConfirm != "" && req.Password != req.PasswordConfirm {
		respondError(w, app, apperr.Validation("Passwords do not match."))
		return
	}
	if len(req.Username) > config.MaxUsernameLen {
		respondError(w, app, apperr.Validation("Username is too long."))
		return
	}
	if !strings.Contains(req.Email, "@") {
		respondError(w, app, apperr.Validation("Email address is not valid."))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(w, app, apperr.Internal(err))
		return
	}

	user, err := app.DB().CreateUser(req.Username, req.Email, hash)
	if err != nil {
		respondError(w, app, err)
		return
	}

	token, err := app.Tokens().Issue(user.ID, user.Username, config.SessionTokenTTL)
	if err != nil {
		respondError(w, app, apperr.Internal(err))
		return
	}

	logger.Info("New account registered", "user_id", user.ID, "username", user.Username)
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Registration complete.",
		"token":   token,
		"user":    user,
	}, app)
}

// HandleLogin verifies credentials and returns a session token. The remember
// flag extends the TTL; the claims are otherwise identical.
func HandleLogin(w http.ResponseWriter, r *http.Request, app App) {
	logger := app.Logger().With("handler", "HandleLogin")

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, app, err)
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(w, app, apperr.Validation("Username and password are required."))
		return
	}

	user, err := app.DB().GetUserByLogin(strings.TrimSpace(req.Username))
	if err != nil {
		// The login form reports a 400 for unknown accounts, matching the
		// error shape of a wrong password.
		respondError(w, app, apperr.Validation("User does not exist."))
		return
	}
	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		respondError(w, app, apperr.Validation("Incorrect password."))
		return
	}

	ttl := config.SessionTokenTTL
	if req.Remember {
		ttl = config.RememberTokenTTL
	}
	token, err := app.Tokens().Issue(user.ID, user.Username, ttl)
	if err != nil {
		respondError(w, app, apperr.Internal(err))
		return
	}

	if err := app.DB().TouchLastActive(user.ID); err != nil {
		logger.Warn("Failed to stamp last active on login", "user_id", user.ID, "error", err)
	}

	logger.Info("User logged in", "user_id", user.ID, "remember", req.Remember)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Logged in.",
		"token":   token,
		"user":    user,
	}, app)
}

// HandleLogout revokes the presented token for the rest of its lifetime.
func HandleLogout(w http.ResponseWriter, r *http.Request, app App) {
	claims := claimsFrom(r)
	if claims != nil {
		app.Denylist().Revoke(claims.TokenID, claims.ExpiresAt)
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out."}, app)
}
