package logging

import (
	"log/slog"
	"os"

	"github.com/syncit-hq/syncit-api/internal/config"
)

// Setup initializes the global slog logger with JSON output to stdout at
// the configured level.
func Setup(settings *config.Settings) {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: settings.SlogLevel(),
	})
	slog.SetDefault(slog.New(handler))
}
