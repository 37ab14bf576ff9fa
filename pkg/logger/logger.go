package logger

import (
	"log/slog"
	"os"
)

// New returns the text-handler logger shared by the wasc binaries. Logs go
// to stderr so report output on stdout stays clean.
func New(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
