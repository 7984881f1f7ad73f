// fightclub/handlers/handlers.go

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"fightclub/apperr"
	"fightclub/auth"
	"fightclub/config"
	"fightclub/database"
	"fightclub/models"
)

// App is an interface that defines the dependencies our handlers need.
type App interface {
	DB() *database.DatabaseService
	Tokens() *auth.TokenService
	Denylist() *models.TokenDenylist
	RateLimiter() *models.RateLimiter
	Logger() *slog.Logger
	Storage() models.StorageService
	Environment() string
}

var startTime = time.Now()

// respondJSON sends a JSON response with a given status code.
func respondJSON(w http.ResponseWriter, status int, payload interface{}, app App) {
	response, err := json.Marshal(payload)
	if err != nil {
		app.Logger().Error("Failed to marshal JSON payload", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		if _, werr := w.Write([]byte(`{"error":"Failed to marshal JSON response"}`)); werr != nil {
			app.Logger().Error("Failed to write internal server error response", "error", werr)
		}
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(response); err != nil {
		app.Logger().Error("Failed to write JSON response", "error", err)
	}
}

// respondError translates a domain error into a JSON error body. Internal
// causes go to the log only; clients see the kind's message and status.
func respondError(w http.ResponseWriter, app App, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		appErr = apperr.Internal(err)
	}
	if appErr.Kind == apperr.KindInternal {
		app.Logger().Error("Request failed", "error", appErr.Cause)
	}
	respondJSON(w, appErr.HTTPStatus(), map[string]string{"error": appErr.Message}, app)
}

// decodeJSON parses a request body into dst, bounding the read.
func decodeJSON(r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Validation("Malformed JSON body.")
	}
	return nil
}

// MakeHandler adapts an App-aware handler function to http.HandlerFunc.
func MakeHandler(app App, fn func(http.ResponseWriter, *http.Request, App)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fn(w, r, app)
	}
}

// HandleHealth reports liveness plus basic process facts.
func HandleHealth(w http.ResponseWriter, r *http.Request, app App) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "OK",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"uptime":      time.Since(startTime).Seconds(),
		"environment": app.Environment(),
		"version":     config.AppVersion,
	}, app)
}

// HandleAPIIndex is the self-describing endpoint directory.
func HandleAPIIndex(w http.ResponseWriter, r *http.Request, app App) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Fight Club Community API",
		"version": config.AppVersion,
		"endpoints": map[string]map[string]string{
			"auth": {
				"POST /api/auth/register": "Register a new account",
				"POST /api/auth/login":    "Log in",
				"POST /api/auth/logout":   "Log out (revokes the current token)",
			},
			"boards": {
				"GET /api/boards":         "List boards",
				"POST /api/boards":        "Create a board (admin)",
				"DELETE /api/boards/{id}": "Close a board (admin)",
			},
			"posts": {
				"GET /api/posts":                "List posts (paginated, sorted)",
				"GET /api/posts/{id}":           "Post detail",
				"POST /api/posts":               "Create a post",
				"PUT /api/posts/{id}":           "Edit a post",
				"PUT /api/posts/{id}/status":    "Change post lifecycle status",
				"DELETE /api/posts/{id}":        "Hide a post",
				"POST /api/posts/{id}/like":     "Like a post",
				"POST /api/posts/{id}/dislike":  "Dislike a post",
				"GET /api/posts/{id}/comments":  "List comments",
				"POST /api/posts/{id}/comments": "Add a comment",
			},
			"comments": {
				"DELETE /api/comments/{id}":    "Remove a comment",
				"POST /api/comments/{id}/like": "Like a comment",
			},
			"stats": {
				"GET /api/stats/online": "Usage statistics",
			},
		},
	}, app)
}
