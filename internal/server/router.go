package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/codemaster-gdg/codementor/internal/config"
	"github.com/codemaster-gdg/codementor/internal/server/handler"
)

// NewRouter creates and configures a new HTTP router with middleware and API routes.
func NewRouter(cfg *config.Config, deps *handler.Deps, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Configure middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// API routes; everything under /api/v1 requires a verified identity token.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(handler.RequireAuth(deps.Verifier, deps.Store, logger))

		reviews := handler.NewReviewHandler(deps)
		r.Post("/reviews", reviews.Submit)
		r.Post("/reviews/upload", reviews.SubmitUpload)
		r.Post("/reviews/save", reviews.Save)

		projects := handler.NewProjectsHandler(deps)
		r.Get("/projects", projects.List)
		r.Get("/projects/{projectID}/reviews", projects.RecentReviews)
	})

	return r
}
