// Package logging provides concrete implementations of the catalogd.Logger interface.
package logging

import (
	"io"
	"os"

	nested "github.com/antonfisher/nested-logrus-formatter"
	"github.com/sirupsen/logrus"
)

// LogrusLogger adapts a logrus.Logger to the catalogd.Logger interface.
// Safe for concurrent use; logrus serializes writes internally.
type LogrusLogger struct {
	log *logrus.Logger
}

// NewLogrusLogger creates a logger writing to out (stderr if nil).
// If verbose is true, Verbose() calls are logged at debug level;
// otherwise they are suppressed.
func NewLogrusLogger(out io.Writer, verbose bool) *LogrusLogger {
	if out == nil {
		out = os.Stderr
	}

	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&nested.Formatter{
		HideKeys:        true,
		ShowFullLevel:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}

	return &LogrusLogger{log: log}
}

// Verbose logs detailed diagnostic information at debug level.
func (l *LogrusLogger) Verbose(format string, args ...interface{}) {
	l.log.Debugf(format, args...)
}

// Info logs informational messages about normal operations.
func (l *LogrusLogger) Info(format string, args ...interface{}) {
	l.log.Infof(format, args...)
}

// Error logs error messages.
func (l *LogrusLogger) Error(format string, args ...interface{}) {
	l.log.Errorf(format, args...)
}
