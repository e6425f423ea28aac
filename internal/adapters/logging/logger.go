// Package logging wires the deployer's structured logging onto the
// standard library's log/slog, selecting a text or JSON handler per sink
// and fanning out to stderr and/or a log file under --log-dir.
package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/torrust/tracker-deployer/internal/core/entities"
	"github.com/torrust/tracker-deployer/internal/core/usecases"
)

var _ usecases.Logger = (*Logger)(nil)

// Level mirrors the four leveled-line severities the CLI's --log-level
// flag (or TORRUST_TD_LOG_LEVEL, the RUST_LOG-equivalent filter) selects.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Format selects the slog handler a sink uses.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func (f Format) newHandler(w *os.File, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if f == FormatJSON {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// Config resolves the four --log-* global flags into the sinks Logger
// writes to.
type Config struct {
	// Output is "stderr", "file", or "both".
	Output       string
	Dir          string
	StderrFormat Format
	FileFormat   Format
	Level        Level
}

// Logger adapts log/slog to usecases.Logger.
type Logger struct {
	slog *slog.Logger
	ctx  context.Context
}

// New wraps an already-constructed slog.Logger.
func New(l *slog.Logger) *Logger {
	return &Logger{slog: l, ctx: context.Background()}
}

// NewFromConfig builds the fan-out handler cfg describes and opens
// <cfg.Dir>/log.txt when a file sink is requested.
func NewFromConfig(cfg Config) (*Logger, error) {
	level := cfg.Level.slogLevel()
	var handlers []slog.Handler

	if cfg.Output == "" || cfg.Output == "stderr" || cfg.Output == "both" {
		handlers = append(handlers, cfg.StderrFormat.newHandler(os.Stderr, level))
	}
	if cfg.Output == "file" || cfg.Output == "both" {
		if cfg.Dir == "" {
			return nil, fmt.Errorf("log dir is required when log output is %q", cfg.Output)
		}
		if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
			return nil, &entities.FileSystemError{Op: "mkdir", Path: cfg.Dir, Err: err}
		}
		logPath := filepath.Join(cfg.Dir, "log.txt")
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, &entities.FileSystemError{Op: "open", Path: logPath, Err: err}
		}
		handlers = append(handlers, cfg.FileFormat.newHandler(f, level))
	}

	switch len(handlers) {
	case 0:
		return New(slog.New(FormatText.newHandler(os.Stderr, level))), nil
	case 1:
		return New(slog.New(handlers[0])), nil
	default:
		return New(slog.New(newFanOutHandler(handlers))), nil
	}
}

func (l *Logger) WithContext(ctx context.Context) usecases.Logger {
	return &Logger{slog: l.slog, ctx: ctx}
}

func (l *Logger) WithFields(keysAndValues ...any) usecases.Logger {
	return &Logger{slog: l.slog.With(keysAndValues...), ctx: l.ctx}
}

func (l *Logger) Debug(msg string, keysAndValues ...any) {
	l.slog.DebugContext(l.ctx, msg, keysAndValues...)
}

func (l *Logger) Info(msg string, keysAndValues ...any) {
	l.slog.InfoContext(l.ctx, msg, keysAndValues...)
}

func (l *Logger) Warn(msg string, keysAndValues ...any) {
	l.slog.WarnContext(l.ctx, msg, keysAndValues...)
}

func (l *Logger) Error(msg string, err error, keysAndValues ...any) {
	args := keysAndValues
	if err != nil {
		args = append(append([]any{}, keysAndValues...), "error", err.Error())
	}
	l.slog.ErrorContext(l.ctx, msg, args...)
}

// fanOutHandler broadcasts every record to each wrapped handler, letting
// the stderr and file sinks run independent levels and formats.
type fanOutHandler struct {
	handlers []slog.Handler
}

func newFanOutHandler(handlers []slog.Handler) *fanOutHandler {
	return &fanOutHandler{handlers: handlers}
}

func (h *fanOutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, hh := range h.handlers {
		if hh.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *fanOutHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, hh := range h.handlers {
		if !hh.Enabled(ctx, r.Level) {
			continue
		}
		if err := hh.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (h *fanOutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, hh := range h.handlers {
		next[i] = hh.WithAttrs(attrs)
	}
	return newFanOutHandler(next)
}

func (h *fanOutHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(h.handlers))
	for i, hh := range h.handlers {
		next[i] = hh.WithGroup(name)
	}
	return newFanOutHandler(next)
}

// global is the process-wide logger, configured once by root.go's
// PersistentPreRunE and read by every command handler.
var global usecases.Logger = New(slog.New(FormatText.newHandler(os.Stderr, slog.LevelInfo)))

// SetGlobal replaces the process-wide logger.
func SetGlobal(l usecases.Logger) { global = l }

// GetLogger returns the process-wide logger.
func GetLogger() usecases.Logger { return global }
