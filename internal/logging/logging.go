// Package logging configures colored structured logging with tint.
//
// Environment variables:
//
//	LOG_LEVEL: debug, info, warn, error (default: warn)
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup configures colored logging on stderr at the level given by LOG_LEVEL,
// or debug when verbose is set.
func Setup(verbose bool) *slog.Logger {
	level := levelFromEnv()
	if verbose {
		level = slog.LevelDebug
	}
	return SetupWithWriter(os.Stderr, level)
}

// SetupWithWriter installs a tint handler writing to w as the default logger
// and returns it.
func SetupWithWriter(w io.Writer, level slog.Level) *slog.Logger {
	logger := slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}),
	)
	slog.SetDefault(logger)
	return logger
}

// Discard returns a logger that drops everything, for the TUI where stderr
// shares the screen.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
