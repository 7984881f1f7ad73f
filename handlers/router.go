package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// SetupRouter wires the full API surface. Public reads stay open; writes run
// behind RequireAuth, and board administration behind RequireAdmin.
func SetupRouter(app App, uploadDir string) *chi.Mux {
	mux := chi.NewRouter()

	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(NewStructuredLogger(app.Logger()))
	mux.Use(middleware.Recoverer)

	// JSON 404 for unmatched routes, inherited by the subrouters.
	mux.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusNotFound, map[string]string{"error": "API endpoint not found."}, app)
	})

	// Locally stored uploads; S3 deployments serve these from the bucket.
	mux.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	mux.Route("/api", func(r chi.Router) {
		r.Use(RateLimit(app))

		r.Get("/", MakeHandler(app, HandleAPIIndex))
		r.Get("/health", MakeHandler(app, HandleHealth))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", MakeHandler(app, HandleRegister))
			r.Post("/login", MakeHandler(app, HandleLogin))
			r.With(RequireAuth(app)).Post("/logout", MakeHandler(app, HandleLogout))
		})

		r.Route("/boards", func(r chi.Router) {
			r.Get("/", MakeHandler(app, HandleListBoards))
			r.With(RequireAuth(app), RequireAdmin(app)).Post("/", MakeHandler(app, HandleCreateBoard))
			r.With(RequireAuth(app), RequireAdmin(app)).Delete("/{boardID}", MakeHandler(app, HandleDisableBoard))
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", MakeHandler(app, HandleListPosts))
			r.Get("/{postID}", MakeHandler(app, HandleGetPost))
			r.Get("/{postID}/comments", MakeHandler(app, HandleListComments))

			r.Group(func(r chi.Router) {
				r.Use(RequireAuth(app))
				r.Post("/", MakeHandler(app, HandleCreatePost))
				r.Put("/{postID}", MakeHandler(app, HandleUpdatePost))
				r.Put("/{postID}/status", MakeHandler(app, HandleSetPostStatus))
				r.Delete("/{postID}", MakeHandler(app, HandleDeletePost))
				r.Post("/{postID}/like", MakeHandler(app, HandleLikePost))
				r.Post("/{postID}/dislike", MakeHandler(app, HandleDislikePost))
				r.Post("/{postID}/comments", MakeHandler(app, HandleCreateComment))
			})
		})

		r.Route("/comments", func(r chi.Router) {
			r.Use(RequireAuth(app))
			r.Delete("/{commentID}", MakeHandler(app, HandleDeleteComment))
			r.Post("/{commentID}/like", MakeHandler(app, HandleLikeComment))
		})

		r.Get("/stats/online", MakeHandler(app, HandleSiteStats))
	})

	return mux
}
