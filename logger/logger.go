// Package logger builds the logrus loggers used across the application.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Options configures a logger. Zero values fall back to info level, text
// output and os.Stdout.
type Options struct {
	Level  string
	Format string
	Out    io.Writer
}

// New returns a logger entry tagged with the given component name.
func New(component string, opts Options) *logrus.Entry {
	l := logrus.New()

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if strings.ToLower(opts.Format) == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	l.SetOutput(out)

	return l.WithField("component", component)
}
