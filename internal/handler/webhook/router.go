package webhook

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the single webhook route plus the liveness probe.
func NewRouter(h *Handler, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(
		chimw.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		RequestLogger(logger),
	)

	r.Post("/", h.HandleEvent)
	r.Get("/healthz", h.HandleHealth)

	return r
}
