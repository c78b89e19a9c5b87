// Package logging configures structured logging for the server.
//
// Console output uses colored tint logs, which is what you want during
// development. Set LOG_FORMAT=json to switch to machine-readable output.
package logging

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup installs the default slog handler at the given level ("debug",
// "info", "warn" or "error").
func Setup(level string) {
	slog.SetDefault(slog.New(newHandler(parseLevel(level))))
}

func newHandler(level slog.Level) slog.Handler {
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		return slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	return tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  true,
	})
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
