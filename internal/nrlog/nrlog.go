// Package nrlog provides Northroot's structured, leveled logging, backed
// by github.com/sirupsen/logrus.
//
package nrlog

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger wraps a *logrus.Entry. A Logger from New carries no "component"
// field; WithComponent returns a child that tags every line with one.
type Logger struct {
	entry *logrus.Entry
}

// New builds a root Logger at the given level ("debug", "info", "warn",
// "error") and format ("text" or "json"), writing to w.
func New(level, format string, w io.Writer) *Logger {
	base := logrus.New()
	base.SetOutput(w)
	if lvl, err := logrus.ParseLevel(level); err == nil {
		base.SetLevel(lvl)
	} else {
		base.SetLevel(logrus.InfoLevel)
	}
	if format == "json" {
		base.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05Z07:00"})
	} else {
		base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return &Logger{entry: logrus.NewEntry(base)}
}

// Default builds a Logger at info level, text format, writing to stderr —
// the fallback used when no config has been loaded yet.
func Default() *Logger {
	return New("info", "text", os.Stderr)
}

// WithComponent returns a child Logger tagging every line with
// component=name, the per-subsystem logger idiom used throughout this
// codebase.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{entry: l.entry.WithField("component", name)}
}

// WithField returns a child Logger with one additional structured field.
func (l *Logger) WithField(key string, value any) *Logger {
	return &Logger{entry: l.entry.WithField(key, value)}
}

func (l *Logger) Debugf(format string, args ...any) { l.entry.Debugf(format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.entry.Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.entry.Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.entry.Errorf(format, args...) }
