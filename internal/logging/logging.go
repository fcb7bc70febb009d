// Package logging builds the slog loggers used by farmdir. The TUI owns the
// terminal, so the interactive program logs to a file; the fixture server
// logs to stderr.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

// Options configures a logger
type Options struct {
	Writer    io.Writer
	Level     slog.Leveler
	AddSource bool
	NoColor   bool
}

// New creates a tint-backed slog logger
func New(opts Options) *slog.Logger {
	if opts.Writer == nil {
		opts.Writer = os.Stderr
	}
	if opts.Level == nil {
		opts.Level = slog.LevelInfo
	}
	return slog.New(tint.NewHandler(opts.Writer, &tint.Options{
		Level:      opts.Level,
		AddSource:  opts.AddSource,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    opts.NoColor,
	}))
}

// OpenFile opens path for appending and returns a colourless logger writing
// to it. The caller closes the returned file.
func OpenFile(path string, level slog.Leveler) (*slog.Logger, *os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return New(Options{Writer: f, Level: level, NoColor: true}), f, nil
}

// Discard returns a logger that drops everything
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
