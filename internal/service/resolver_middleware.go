package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/nabrah/usage-alert-service/internal/domain/model"
)

// ResolverMiddleware decorates the resolver with execution timing so the
// directory round-trips stay visible without touching resolution logic.
type ResolverMiddleware struct {
	Next   Resolver
	Logger *slog.Logger
}

func NewResolverMiddleware(next Resolver, logger *slog.Logger) Resolver {
	return &ResolverMiddleware{
		Next:   next,
		Logger: logger,
	}
}

func (m *ResolverMiddleware) Resolve(ctx context.Context, ev model.Event) string {
	start := time.Now()

	to := m.Next.Resolve(ctx, ev)

	m.Logger.Debug("RESOLUTION_COMPLETED",
		"subject_key", ev.Subject.Key,
		"to", to,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return to
}
