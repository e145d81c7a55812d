package logger

import (
	"log/slog"
	"os"
)

// New returns a structured logger: readable text in development, JSON
// elsewhere so log shippers get machine-parseable output.
func New(env string) *slog.Logger {
	var handler slog.Handler
	if env == "development" {
		handler = slog.NewTextHandler(os.Stdout, nil)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	}

	log := slog.New(handler)
	slog.SetDefault(log)
	return log
}
