package webhook

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/fx"

	"github.com/nabrah/usage-alert-service/config"
)

var Module = fx.Module(
	"webhook-handler",

	fx.Provide(
		NewHandler,
		NewRouter,
	),

	fx.Invoke(StartServer),
)

// StartServer binds the HTTP server to the fx lifecycle.
func StartServer(lc fx.Lifecycle, cfg *config.Config, router *chi.Mux, logger *slog.Logger) {
	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}

			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("HTTP_SERVER_FAILED", "err", err)
				}
			}()

			logger.Info("HTTP_SERVER_STARTED", "addr", srv.Addr)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.HTTP.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
