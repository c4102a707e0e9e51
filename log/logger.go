// Copyright (c) 2026 The Axle developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"log/slog"
	"os"
)

const (
	LevelTrace = slog.Level(-8)
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// LevelString returns the short name of a level, including the trace level
// the stdlib does not know about.
func LevelString(l slog.Level) string {
	if l == LevelTrace {
		return "TRACE"
	}
	return l.String()
}

// FromVerbosity translates a 0..5 verbosity flag into a slog level.
func FromVerbosity(v int) slog.Level {
	switch {
	case v <= 0:
		return LevelError
	case v == 1:
		return LevelWarn
	case v == 2:
		return LevelInfo
	case v == 3:
		return LevelDebug
	default:
		return LevelTrace
	}
}

// Logger is the chained logging interface carried around by packages.
type Logger interface {
	With(ctx ...any) Logger

	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
}

// logger keeps its context as plain key/value pairs and routes every write
// through the root's swappable handler, so a handler installed later via
// SetDefault applies to loggers derived earlier.
type logger struct {
	ctx   []any
	inner *slog.Logger
}

func (l *logger) With(ctx ...any) Logger {
	merged := make([]any, 0, len(l.ctx)+len(ctx))
	merged = append(merged, l.ctx...)
	merged = append(merged, ctx...)
	return &logger{ctx: merged, inner: l.inner}
}

func (l *logger) write(level slog.Level, msg string, ctx []any) {
	kv := make([]any, 0, len(l.ctx)+len(ctx))
	kv = append(kv, l.ctx...)
	kv = append(kv, ctx...)
	l.inner.Log(context.Background(), level, msg, kv...)
}

func (l *logger) Trace(msg string, ctx ...any) { l.write(LevelTrace, msg, ctx) }
func (l *logger) Debug(msg string, ctx ...any) { l.write(LevelDebug, msg, ctx) }
func (l *logger) Info(msg string, ctx ...any)  { l.write(LevelInfo, msg, ctx) }
func (l *logger) Warn(msg string, ctx ...any)  { l.write(LevelWarn, msg, ctx) }
func (l *logger) Error(msg string, ctx ...any) { l.write(LevelError, msg, ctx) }

// The root logger routes through a swappable handler, so loggers derived at
// package init time pick up a handler installed later via SetDefault.
var (
	rootHandler = &swapHandler{}
	rootLogger  = &logger{inner: slog.New(rootHandler)}
)

func init() {
	rootHandler.Swap(LogfmtHandler(os.Stderr))
}

// SetDefault sets the handler backing all loggers derived from the root.
func SetDefault(h slog.Handler) {
	rootHandler.Swap(h)
}

// Root returns the root logger.
func Root() Logger {
	return rootLogger
}

// WithContext returns a logger derived from the root with the given context
// attached. The usual call site is a package-level
//
//	var logger = log.WithContext("pkg", "runtime")
func WithContext(ctx ...any) Logger {
	return Root().With(ctx...)
}
