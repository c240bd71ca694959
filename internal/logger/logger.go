// Package logger builds the slog.Logger used across gpush: a plain console
// handler that only speaks in verbose mode, plus an optional rotating log
// file that records every level.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Verbose bool
	// File enables file logging when non-empty.
	File    string
	Console io.Writer
}

// consoleHandler writes "level: message key=value" lines without timestamps.
type consoleHandler struct {
	writer  io.Writer
	verbose bool
	attrs   []slog.Attr
}

func (h *consoleHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return h.verbose
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	var b strings.Builder
	b.WriteString(strings.ToLower(record.Level.String()))
	b.WriteString(": ")
	b.WriteString(record.Message)

	writeAttr := func(a slog.Attr) bool {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value.Any())
		return true
	}
	for _, a := range h.attrs {
		writeAttr(a)
	}
	record.Attrs(writeAttr)

	_, err := fmt.Fprintln(h.writer, b.String())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &consoleHandler{writer: h.writer, verbose: h.verbose, attrs: merged}
}

func (h *consoleHandler) WithGroup(_ string) slog.Handler {
	return h
}

// multiHandler fans out log records to multiple handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record.Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns the logger and a closer for the log file, if any.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	handlers := []slog.Handler{&consoleHandler{writer: console, verbose: opts.Verbose}}
	var closer io.Closer = nopCloser{}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o750); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		rotating := newRotatingFile(opts.File)
		closer = rotating
		handlers = append(handlers, slog.NewTextHandler(rotating, &slog.HandlerOptions{
			Level: slog.LevelDebug,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.String(a.Key, a.Value.Time().Format("2006-01-02 15:04:05.000"))
				}
				return a
			},
		}))
	}

	return slog.New(&multiHandler{handlers: handlers}), closer, nil
}

// newRotatingFile configures lumberjack, honoring GPUSH_LOG_MAX_SIZE (MB),
// GPUSH_LOG_MAX_BACKUPS and GPUSH_LOG_MAX_AGE (days).
func newRotatingFile(path string) *lumberjack.Logger {
	l := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    1,
		MaxBackups: 2,
		MaxAge:     30,
	}
	if v, ok := envInt("GPUSH_LOG_MAX_SIZE"); ok && v > 0 {
		l.MaxSize = v
	}
	if v, ok := envInt("GPUSH_LOG_MAX_BACKUPS"); ok && v >= 0 {
		l.MaxBackups = v
	}
	if v, ok := envInt("GPUSH_LOG_MAX_AGE"); ok && v > 0 {
		l.MaxAge = v
	}
	return l
}

func envInt(name string) (int, bool) {
	raw := os.Getenv(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
