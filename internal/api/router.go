package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Dailies.
	r.Get("/dailies", h.ListDailies)
	r.Get("/dailies/{date}", h.GetDaily)
	r.Get("/dailies/{date}/navigate", h.Navigate)

	// Capture.
	r.Post("/capture", h.Capture)

	// Calendar overlay marks.
	r.Get("/calendar", h.Calendar)

	// SSE endpoint (protected by the same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
