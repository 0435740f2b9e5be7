// Package log carries a logrus-backed Logger through context.Context. A migration run stores a
// logger holding the database alias, each plan adds its ID and each operation adds its model and
// column, so statements logged deep in a run can be traced back to where they came from.
package log

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger provides a leveled-logging interface.
type Logger interface {
	Print(args ...interface{})
	Printf(format string, args ...interface{})

	Trace(args ...interface{})
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})

	WithError(error) Logger
	WithFields(Fields) Logger
}

// Fields is an alias so that callers only need to know about this package
type Fields = logrus.Fields

type ctxKey struct{}

type entryLogger struct {
	*logrus.Entry
}

// New wraps l.
func New(l *logrus.Logger) Logger {
	return &entryLogger{logrus.NewEntry(l)}
}

// Discard returns a Logger that drops everything written to it.
func Discard() Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return New(l)
}

// Entry returns the logrus entry behind l, for packages that take a *logrus.Entry.
func Entry(l Logger) (*logrus.Entry, bool) {
	e, ok := l.(*entryLogger)
	if !ok {
		return nil, false
	}
	return e.Entry, true
}

func (e *entryLogger) WithError(err error) Logger {
	return &entryLogger{e.Entry.WithError(err)}
}

// WithFields adds f to the logger. Dots in keys become underscores.
func (e *entryLogger) WithFields(f Fields) Logger {
	out := make(Fields, len(f))
	for k, v := range f {
		out[strings.ReplaceAll(k, ".", "_")] = v
	}
	return &entryLogger{e.Entry.WithFields(out)}
}

// NewContext returns a copy of ctx carrying l.
func NewContext(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the Logger stored in ctx, or one writing to the logrus standard logger.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(ctxKey{}).(Logger); ok {
		return l
	}
	return New(logrus.StandardLogger())
}

// Configure sets the level and formatter of the logrus standard logger. Supported formatters are
// "text" and "json".
func Configure(level, formatter string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}
	logrus.SetLevel(lvl)

	switch formatter {
	case "", "text":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("unsupported log formatter: %q", formatter)
	}

	return nil
}
