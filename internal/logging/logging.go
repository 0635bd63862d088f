package logging

import (
	"log/slog"
	"os"
)

// Setup configures the process-wide slog default logger and returns it.
// Unknown levels fall back to info.
func Setup(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: lvl,
	}))
	slog.SetDefault(logger)
	return logger
}

// WithModule returns a child logger tagged with the module name.
func WithModule(logger *slog.Logger, module string) *slog.Logger {
	return logger.With("module", module)
}
