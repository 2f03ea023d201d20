// Package logger provides the leveled logging interface used across the addon.
package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// Logger defines the logging interface
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})
	Info(v ...interface{})
	Infof(format string, v ...interface{})
	Warn(v ...interface{})
	Warnf(format string, v ...interface{})
	Error(v ...interface{})
	Errorf(format string, v ...interface{})
	Fatal(v ...interface{})
	Fatalf(format string, v ...interface{})
}

// Level represents logging levels
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

type logger struct {
	mu     sync.RWMutex
	level  Level
	out    *log.Logger
	errOut *log.Logger
}

// New creates a logger whose minimum level comes from the LOG_LEVEL
// environment variable (defaults to info).
func New() Logger {
	return NewWithLevel(ParseLevel(os.Getenv("LOG_LEVEL")))
}

// NewWithLevel creates a logger with an explicit minimum level.
func NewWithLevel(level Level) Logger {
	return &logger{
		level:  level,
		out:    log.New(os.Stdout, "", log.LstdFlags),
		errOut: log.New(os.Stderr, "", log.LstdFlags),
	}
}

// ParseLevel converts a string log level to a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l *logger) tag(level Level) string {
	switch level {
	case LevelDebug:
		return "[DEBUG] "
	case LevelWarn:
		return "[WARN] "
	case LevelError:
		return "[ERROR] "
	default:
		return "[INFO] "
	}
}

func (l *logger) write(level Level, msg string) {
	l.mu.RLock()
	min := l.level
	l.mu.RUnlock()
	if level < min {
		return
	}

	dst := l.out
	if level >= LevelError {
		dst = l.errOut
	}
	dst.Output(4, l.tag(level)+msg)
}

func (l *logger) Debug(v ...interface{}) { l.write(LevelDebug, fmt.Sprint(v...)) }
func (l *logger) Debugf(format string, v ...interface{}) {
	l.write(LevelDebug, fmt.Sprintf(format, v...))
}
func (l *logger) Info(v ...interface{}) { l.write(LevelInfo, fmt.Sprint(v...)) }
func (l *logger) Infof(format string, v ...interface{}) {
	l.write(LevelInfo, fmt.Sprintf(format, v...))
}
func (l *logger) Warn(v ...interface{}) { l.write(LevelWarn, fmt.Sprint(v...)) }
func (l *logger) Warnf(format string, v ...interface{}) {
	l.write(LevelWarn, fmt.Sprintf(format, v...))
}
func (l *logger) Error(v ...interface{}) { l.write(LevelError, fmt.Sprint(v...)) }
func (l *logger) Errorf(format string, v ...interface{}) {
	l.write(LevelError, fmt.Sprintf(format, v...))
}

func (l *logger) Fatal(v ...interface{}) {
	l.write(LevelError, fmt.Sprint(v...))
	os.Exit(1)
}

func (l *logger) Fatalf(format string, v ...interface{}) {
	l.write(LevelError, fmt.Sprintf(format, v...))
	os.Exit(1)
}
