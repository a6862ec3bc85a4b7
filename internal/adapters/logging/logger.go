package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/bnema/vision3d-engine/internal/adapters/storage/file"
)

const logFileLayout = "20060102-150405"

type Options struct {
	// LogDir receives the run log file. Empty disables file logging.
	LogDir string
	// Main is false on non-main ranks, which only log to the console.
	Main    bool
	Console io.Writer
	Level   slog.Leveler
	Now     time.Time
}

// Logger fans records out to the console and, on the main rank, a log file.
type Logger struct {
	*slog.Logger
	file *os.File
	path string
}

// LogFilePath names the log file of a run started at now.
func LogFilePath(logDir string, now time.Time) string {
	return filepath.Join(logDir, "test-"+now.Format(logFileLayout)+".log")
}

func New(opts Options) (*Logger, error) {
	if opts.Console == nil {
		opts.Console = os.Stderr
	}
	if opts.Level == nil {
		opts.Level = slog.LevelInfo
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	handlers := []slog.Handler{newConsoleHandler(opts.Console, opts.Level)}
	logger := &Logger{}

	if opts.Main && opts.LogDir != "" {
		if err := file.EnsureDir(opts.LogDir); err != nil {
			return nil, err
		}

		logger.path = LogFilePath(opts.LogDir, opts.Now)
		f, err := os.OpenFile(logger.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		logger.file = f
		handlers = append(handlers, slog.NewTextHandler(f, &slog.HandlerOptions{Level: opts.Level}))
	}

	logger.Logger = slog.New(fanout(handlers))
	return logger, nil
}

// Path is the log file path, empty when no file is written.
func (l *Logger) Path() string {
	return l.path
}

func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	if err != nil {
		return fmt.Errorf("close log file: %w", err)
	}
	return nil
}

type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make(fanout, len(f))
	for i, h := range f {
		next[i] = h.WithAttrs(attrs)
	}
	return next
}

func (f fanout) WithGroup(name string) slog.Handler {
	next := make(fanout, len(f))
	for i, h := range f {
		next[i] = h.WithGroup(name)
	}
	return next
}
