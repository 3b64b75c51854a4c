package logger

import (
	"log/slog"
	"os"
)

// New returns a structured stdout logger at the given level. Handlers and
// middleware attach request-scoped attributes per call.
func New(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
