package log

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type LogrusLoggerProperties struct {
	Formatter logrus.Formatter
	Level     logrus.Level
	Output    io.Writer
}

// LogrusLogger implements Logger on top of a logrus entry so that
// loggers created with ForClass share the root configuration
type LogrusLogger struct {
	entry *logrus.Entry
}

func NewLogrus(properties LogrusLoggerProperties) Logger {
	root := logrus.New()
	root.SetLevel(properties.Level)
	root.SetFormatter(&logrus.JSONFormatter{})
	root.SetOutput(os.Stdout)

	if properties.Formatter != nil {
		root.SetFormatter(properties.Formatter)
	}
	if properties.Output != nil {
		root.SetOutput(properties.Output)
	}

	return LogrusLogger{entry: logrus.NewEntry(root)}
}

func (l LogrusLogger) ForClass(pkg string, class string) Logger {
	return LogrusLogger{
		entry: l.entry.Logger.WithFields(logrus.Fields{
			"pkg":   pkg,
			"class": class,
		}),
	}
}

func (l LogrusLogger) Debug(ctx context.Context, msg string, loggables ...Loggable) {
	l.withFields(ctx, loggables).Debug(msg)
}

func (l LogrusLogger) Info(ctx context.Context, msg string, loggables ...Loggable) {
	l.withFields(ctx, loggables).Info(msg)
}

func (l LogrusLogger) Warn(ctx context.Context, msg string, loggables ...Loggable) {
	l.withFields(ctx, loggables).Warn(msg)
}

func (l LogrusLogger) Error(ctx context.Context, msg string, loggables ...Loggable) {
	l.withFields(ctx, loggables).Error(msg)
}

func (l LogrusLogger) Fatal(ctx context.Context, msg string, loggables ...Loggable) {
	l.withFields(ctx, loggables).Fatal(msg)
}

// withFields collects the fields of every loggable. The trace ID of
// ctx cannot be overridden by a loggable
func (l LogrusLogger) withFields(ctx context.Context, loggables []Loggable) *logrus.Entry {
	fields := entryFields{"traceId": GetTraceID(ctx)}
	for _, loggable := range loggables {
		if loggable != nil {
			loggable.Log(fields)
		}
	}

	return l.entry.WithFields(logrus.Fields(fields))
}

type entryFields logrus.Fields

func (f entryFields) Add(key string, value interface{}) {
	if key == "traceId" {
		return
	}
	f[key] = value
}
