package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/nabrah/usage-alert-service/config"
)

// ProvideLogger builds the process-wide structured logger. The returned
// LevelVar lets the config watcher retune verbosity without a restart.
func ProvideLogger(cfg *config.Config) (*slog.Logger, *slog.LevelVar) {
	level := new(slog.LevelVar)
	level.Set(parseLevel(cfg.Log.Level))

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(cfg.Log.Format) {
	case "text":
		handler = slog.NewTextHandler(os.Stdout, opts)
	default:
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(handler).With("service", ServiceName)
	slog.SetDefault(logger)

	return logger, level
}

// WatchLogLevel reapplies the configured log level whenever the config file
// changes on disk.
func WatchLogLevel(loader *config.Loader, level *slog.LevelVar, logger *slog.Logger) {
	loader.Watch(func(next *config.Config) {
		level.Set(parseLevel(next.Log.Level))
		logger.Info("LOG_LEVEL_APPLIED", "level", next.Log.Level)
	})
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
