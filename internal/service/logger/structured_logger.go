package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the structured logging interface used by the HTTP adapter, the
// use cases, and the server wiring. The core packages (domain, lifecycle,
// access, query) never log; typed errors propagate instead.
type Logger interface {
	Info(message string, fields map[string]interface{})
	Warn(message string, fields map[string]interface{})
	Error(message string, err error, fields map[string]interface{})
	Debug(message string, fields map[string]interface{})
	WithFields(fields map[string]interface{}) Logger
}

// Config configures the structured logger
type Config struct {
	Level       string
	Format      string // json or text
	ServiceName string
}

type structuredLogger struct {
	logger *logrus.Logger
	fields logrus.Fields
}

// NewLogrusLogger builds a logrus logger honoring the configured level and
// format. Collaborators that take a raw *logrus.Logger use this so their
// output matches the rest of the service.
func NewLogrusLogger(config Config) *logrus.Logger {
	l := logrus.New()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if config.Format == "text" {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	l.SetOutput(os.Stdout)

	return l
}

// NewStructuredLogger creates a logrus-backed structured logger
func NewStructuredLogger(config Config) Logger {
	return &structuredLogger{
		logger: NewLogrusLogger(config),
		fields: logrus.Fields{"service": config.ServiceName},
	}
}

func (l *structuredLogger) Info(message string, fields map[string]interface{}) {
	l.entry(fields).Info(message)
}

func (l *structuredLogger) Warn(message string, fields map[string]interface{}) {
	l.entry(fields).Warn(message)
}

func (l *structuredLogger) Error(message string, err error, fields map[string]interface{}) {
	entry := l.entry(fields)
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Error(message)
}

func (l *structuredLogger) Debug(message string, fields map[string]interface{}) {
	l.entry(fields).Debug(message)
}

func (l *structuredLogger) WithFields(fields map[string]interface{}) Logger {
	merged := make(logrus.Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &structuredLogger{logger: l.logger, fields: merged}
}

func (l *structuredLogger) entry(fields map[string]interface{}) *logrus.Entry {
	entry := l.logger.WithFields(l.fields)
	if len(fields) > 0 {
		entry = entry.WithFields(logrus.Fields(fields))
	}
	return entry
}
