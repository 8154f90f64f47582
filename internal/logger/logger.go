// Package logger holds the process-wide structured logger.
package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Logger is the shared logrus instance.
var Logger = logrus.New()

// InitLogger configures format, output and level of the shared logger.
// A nil output keeps the current writer (stderr by default).
func InitLogger(level string, json bool, output io.Writer) {
	if json {
		Logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Logger.SetFormatter(&logrus.TextFormatter{
			DisableColors: true,
			FullTimestamp: true,
		})
	}

	if output != nil {
		Logger.SetOutput(output)
	}

	if level == "" {
		level = "warn"
	}
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		Logger.SetLevel(logrus.WarnLevel)
		Logger.WithField("level", level).Warn("couldn't parse log level, using warn")
		return
	}
	Logger.SetLevel(logLevel)
}

// WithFields returns an entry carrying fields.
func WithFields(fields logrus.Fields) *logrus.Entry {
	return Logger.WithFields(fields)
}

// Debug logs at debug level.
func Debug(args ...any) {
	Logger.Debug(args...)
}

// Info logs at info level.
func Info(args ...any) {
	Logger.Info(args...)
}

// Warn logs at warn level.
func Warn(args ...any) {
	Logger.Warn(args...)
}

// Error logs at error level.
func Error(args ...any) {
	Logger.Error(args...)
}
