package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Init installs a JSON logger on stdout as the slog default.
func Init() *slog.Logger {
	return InitWithWriter(os.Stdout, os.Getenv("LOG_LEVEL"))
}

// InitWithWriter is Init with an explicit sink and level name.
func InitWithWriter(w io.Writer, level string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	logger := slog.New(handler).With("service", "popdash")
	slog.SetDefault(logger)
	return logger
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
