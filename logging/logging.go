package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/milk9111/roadtrip/config"
)

// Setup configures the global slog logger for cfg, writing to stdout.
func Setup(cfg config.Config) *slog.Logger {
	return SetupTo(cfg, os.Stdout)
}

// SetupTo is Setup with an explicit destination.
func SetupTo(cfg config.Config, w io.Writer) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: cfg.Level(),
	}

	if cfg.Environment == "production" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// WithLocation tags logger with the active location.
func WithLocation(logger *slog.Logger, location string) *slog.Logger {
	return logger.With("location", location)
}

// WithError adds error to logger context
func WithError(logger *slog.Logger, err error) *slog.Logger {
	return logger.With("error", err.Error())
}
