// Package logger holds the process-wide structured logger used by the
// converter, the cleaners and the CLI.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	current *slog.Logger
	level   = new(slog.LevelVar)
	mu      sync.RWMutex
)

func init() {
	level.Set(slog.LevelInfo)
	current = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Options configures the logger.
type Options struct {
	Debug  bool         // log debug messages
	Quiet  bool         // only log errors; wins over Debug
	JSON   bool         // JSON lines instead of logfmt-style text
	Output io.Writer    // default stderr
	Logger *slog.Logger // use as-is, ignoring everything above
}

// Init replaces the process-wide logger.
func Init(opts Options) {
	mu.Lock()
	defer mu.Unlock()

	if opts.Logger != nil {
		current = opts.Logger
		return
	}

	switch {
	case opts.Quiet:
		level.Set(slog.LevelError)
	case opts.Debug:
		level.Set(slog.LevelDebug)
	default:
		level.Set(slog.LevelInfo)
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	if opts.JSON {
		current = slog.New(slog.NewJSONHandler(out, handlerOpts))
	} else {
		current = slog.New(slog.NewTextHandler(out, handlerOpts))
	}
}

// SetLogger installs an application logger, e.g. when markdownify is
// embedded as a library.
func SetLogger(l *slog.Logger) {
	Init(Options{Logger: l})
}

func get() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Enabled reports whether messages at lvl would be written.
func Enabled(lvl slog.Level) bool {
	return get().Enabled(context.Background(), lvl)
}

func Debug(msg string, args ...any) { get().Debug(msg, args...) }
func Info(msg string, args ...any)  { get().Info(msg, args...) }
func Warn(msg string, args ...any)  { get().Warn(msg, args...) }
func Error(msg string, args ...any) { get().Error(msg, args...) }

func DebugContext(ctx context.Context, msg string, args ...any) {
	get().DebugContext(ctx, msg, args...)
}

func WarnContext(ctx context.Context, msg string, args ...any) {
	get().WarnContext(ctx, msg, args...)
}

// With returns the current logger with args attached.
func With(args ...any) *slog.Logger {
	return get().With(args...)
}

// Component returns the current logger tagged with a component name.
func Component(name string) *slog.Logger {
	return With("component", name)
}
