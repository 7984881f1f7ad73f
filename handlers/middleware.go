package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"fightclub/apperr"
	"fightclub/auth"
	"fightclub/models"
	"fightclub/utils"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	IdentityKey ContextKey = "identity"
	ClaimsKey   ContextKey = "claims"
)

// identityFrom returns the authenticated user stored by RequireAuth.
func identityFrom(r *http.Request) *models.User {
	user, _ := r.Context().Value(IdentityKey).(*models.User)
	return user
}

// claimsFrom returns the verified token claims stored by RequireAuth.
func claimsFrom(r *http.Request) *auth.Claims {
	claims, _ := r.Context().Value(ClaimsKey).(*auth.Claims)
	return claims
}

// NewStructuredLogger logs each request with slog key/value pairs.
func NewStructuredLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

// RateLimit applies the per-IP limiter to everything under /api/.
func RateLimit(app App) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := utils.GetIPAddress(r)
			if !app.RateLimiter().GetLimiter(ip).Allow() {
				app.Logger().Warn("Rate limit exceeded", "ip", ip)
				respondJSON(w, http.StatusTooManyRequests, map[string]string{"error": "Rate limit exceeded. Please wait a moment."}, app)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth resolves the bearer token to an identity. The request fails
// with 401 when the token is absent, invalid, revoked, or the account is no
// longer active. On success the user and claims ride the context, and the
// last-active stamp is written best-effort: its failure never aborts the
// request.
func RequireAuth(app App) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := utils.BearerToken(r)
			if token == "" {
				respondError(w, app, apperr.Unauthenticated("Authentication token required."))
				return
			}

			claims, err := app.Tokens().Verify(token)
			if err != nil {
				respondError(w, app, apperr.Unauthenticated("Invalid or expired token."))
				return
			}
			if app.Denylist().IsRevoked(claims.TokenID) {
				respondError(w, app, apperr.Unauthenticated("Invalid or expired token."))
				return
			}

			user, err := app.DB().GetUserByID(claims.UserID)
			if err != nil || !user.IsActive {
				respondError(w, app, apperr.Unauthenticated("Account is not active."))
				return
			}

			if err := app.DB().TouchLastActive(user.ID); err != nil {
				app.Logger().Warn("Failed to stamp last active", "user_id", user.ID, "error", err)
			}

			ctx := context.WithValue(r.Context(), IdentityKey, user)
			ctx = context.WithValue(ctx, ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin restricts a route to admin accounts. Must run inside
// RequireAuth.
func RequireAdmin(app App) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !auth.RequireAdmin(identityFrom(r)) {
				respondError(w, app, apperr.Forbidden("Admin privileges required."))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
