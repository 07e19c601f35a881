// Package runlog sets up structured logging for a single harness
// invocation: a JSON or text slog.Handler chosen by environment variable,
// tagged with a service name and a fresh correlation ID so every line
// emitted during one run can be grepped out of a shared log stream.
package runlog

import (
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

// New builds a *slog.Logger for service, sets it as slog.Default(), and
// returns it tagged with the service name and a newly minted run ID.
func New(service string) *slog.Logger {
	mode := strings.ToLower(os.Getenv("SIGHARNESS_JSON_LOG"))

	var handler slog.Handler
	opts := &slog.HandlerOptions{AddSource: false, Level: levelFromEnv()}
	if mode == "1" || mode == "true" || mode == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	runID := uuid.NewString()
	logger := slog.New(handler).With("service", service, "run_id", runID)
	slog.SetDefault(logger)

	logger.Info("logging initialized", "json", mode == "1" || mode == "true" || mode == "json", "run_id", runID)
	return logger
}

func levelFromEnv() slog.Leveler {
	switch strings.ToLower(os.Getenv("SIGHARNESS_LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
