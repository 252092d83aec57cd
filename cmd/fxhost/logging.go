package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// newLogger builds the host logger. With a log file every record goes
// there; otherwise headless runs log to stderr and the UI discards logs
// since it owns the terminal.
func newLogger(path, level string, headless bool) (*slog.Logger, func(), error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, nil, fmt.Errorf("log level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch {
	case path != "":
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return slog.New(slog.NewTextHandler(f, opts)), func() { _ = f.Close() }, nil
	case headless:
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), func() {}, nil
	default:
		return slog.New(slog.NewTextHandler(io.Discard, opts)), func() {}, nil
	}
}
