// Package logging wraps log/slog with the context-carried component/agent/
// invocation attributes the governance pipeline's hooks and CLI commands
// attach to every log line. Handler selection follows the teacher's own
// split: a colorized tint handler for an interactive terminal, falling
// back to JSON for anything else (piped output, CI, the hook stdio
// protocol itself).
package logging

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

type ctxKey string

const (
	componentKey  ctxKey = "logging.component"
	agentKey      ctxKey = "logging.agent"
	invocationKey ctxKey = "logging.invocation"
)

var defaultLogger = slog.New(newHandler(os.Stderr))

// newHandler builds a tint handler when w is a terminal and
// GOVGATE_LOG_FORMAT isn't forced to "json", else a JSON handler — the
// same "pretty for a human, structured for everything else" split the
// harunnryd-heike logger makes for tint itself.
func newHandler(w *os.File) slog.Handler {
	level := levelFromEnv()
	if os.Getenv("GOVGATE_LOG_FORMAT") != "json" && term.IsTerminal(int(w.Fd())) {
		return tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
		})
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
}

func levelFromEnv() slog.Level {
	switch os.Getenv("GOVGATE_LOG_LEVEL") {
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

// Setup installs the governance pipeline's default logger as slog's
// process-wide default, mirroring the teacher's Setup(level) entry point.
func Setup() {
	slog.SetDefault(defaultLogger)
}

// WithComponent attaches the subsystem name (e.g. "hooks", "scope",
// "ledger") that subsequent log calls on ctx should be tagged with.
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, componentKey, component)
}

// WithAgent attaches the calling agent's name to ctx.
func WithAgent(ctx context.Context, agent string) context.Context {
	return context.WithValue(ctx, agentKey, agent)
}

// WithInvocation attaches a hook invocation id to ctx.
func WithInvocation(ctx context.Context, invocationID string) context.Context {
	return context.WithValue(ctx, invocationKey, invocationID)
}

func contextAttrs(ctx context.Context) []any {
	var attrs []any
	if v, ok := ctx.Value(componentKey).(string); ok && v != "" {
		attrs = append(attrs, slog.String("component", v))
	}
	if v, ok := ctx.Value(agentKey).(string); ok && v != "" {
		attrs = append(attrs, slog.String("agent", v))
	}
	if v, ok := ctx.Value(invocationKey).(string); ok && v != "" {
		attrs = append(attrs, slog.String("invocation_id", v))
	}
	return attrs
}

func log(ctx context.Context, level slog.Level, msg string, args []any) {
	all := append(contextAttrs(ctx), args...)
	defaultLogger.Log(ctx, level, msg, all...)
}

// Debug logs msg at debug level with ctx's attached attributes plus args.
func Debug(ctx context.Context, msg string, args ...any) { log(ctx, slog.LevelDebug, msg, args) }

// Info logs msg at info level with ctx's attached attributes plus args.
func Info(ctx context.Context, msg string, args ...any) { log(ctx, slog.LevelInfo, msg, args) }

// Warn logs msg at warn level with ctx's attached attributes plus args.
func Warn(ctx context.Context, msg string, args ...any) { log(ctx, slog.LevelWarn, msg, args) }

// Error logs msg at error level with ctx's attached attributes plus args.
func Error(ctx context.Context, msg string, args ...any) { log(ctx, slog.LevelError, msg, args) }
