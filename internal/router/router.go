package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"medibot-backend/internal/handlers"
	"medibot-backend/internal/middleware"
)

func New(
	chatHandler *handlers.ChatHandler,
	metricsHandler http.Handler,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(frontendURL))

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	// Health check
	r.Get("/health", chatHandler.Health)

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	// ──── Chat ────
	r.Get("/", chatHandler.Index)
	r.Get("/get", chatHandler.Get)
	r.Post("/get", chatHandler.Get)

	return r
}
