package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

// New creates a new logger with the specified
// configuration that writes to output. A nil output
// defaults to stdout
func New(config *Config, output io.Writer) Logger {
	props := LogrusLoggerProperties{
		Level:  logrus.DebugLevel,
		Output: output,
	}

	switch config.Level {
	case "info":
		props.Level = logrus.InfoLevel
	case "warn":
		props.Level = logrus.WarnLevel
	case "error":
		props.Level = logrus.ErrorLevel
	default:
		props.Level = logrus.DebugLevel
	}

	switch config.Format {
	case "text":
		props.Formatter = &logrus.TextFormatter{DisableColors: true, FullTimestamp: true}
	default:
		props.Formatter = &logrus.JSONFormatter{}
	}

	return NewLogrus(props)
}
