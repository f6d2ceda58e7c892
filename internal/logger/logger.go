package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Logger interface for structured logging
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Fatal(msg string, err error, fields ...interface{})
}

// Level orders log severities
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a LOG_LEVEL value to a Level, defaulting to info
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// SimpleLogger implements Logger with basic Go logging
type SimpleLogger struct {
	level       Level
	infoLogger  *log.Logger
	errorLogger *log.Logger
	warnLogger  *log.Logger
	debugLogger *log.Logger
}

// NewSimpleLogger creates a logger writing info/debug/warn to stdout and errors to stderr
func NewSimpleLogger(level Level) Logger {
	return NewWithWriters(level, os.Stdout, os.Stderr)
}

// NewWithWriters creates a logger over arbitrary writers
func NewWithWriters(level Level, out, errOut io.Writer) Logger {
	flags := log.Ldate | log.Ltime | log.Lmsgprefix
	return &SimpleLogger{
		level:       level,
		infoLogger:  log.New(out, "INFO: ", flags),
		errorLogger: log.New(errOut, "ERROR: ", flags),
		warnLogger:  log.New(out, "WARN: ", flags),
		debugLogger: log.New(out, "DEBUG: ", flags),
	}
}

// Nop returns a logger that discards everything
func Nop() Logger {
	return NewWithWriters(LevelError+1, io.Discard, io.Discard)
}

// Info logs an info message
func (l *SimpleLogger) Info(msg string, fields ...interface{}) {
	if l.level > LevelInfo {
		return
	}
	l.infoLogger.Print(msg + formatFields(fields))
}

// Error logs an error message
func (l *SimpleLogger) Error(msg string, err error, fields ...interface{}) {
	if l.level > LevelError {
		return
	}
	l.errorLogger.Printf("%s: %v%s", msg, err, formatFields(fields))
}

// Warn logs a warning message
func (l *SimpleLogger) Warn(msg string, fields ...interface{}) {
	if l.level > LevelWarn {
		return
	}
	l.warnLogger.Print(msg + formatFields(fields))
}

// Debug logs a debug message
func (l *SimpleLogger) Debug(msg string, fields ...interface{}) {
	if l.level > LevelDebug {
		return
	}
	l.debugLogger.Print(msg + formatFields(fields))
}

// Fatal logs a fatal error and exits
func (l *SimpleLogger) Fatal(msg string, err error, fields ...interface{}) {
	l.errorLogger.Fatalf("%s: %v%s", msg, err, formatFields(fields))
}

// formatFields renders key/value pairs as " key=value"; a trailing odd value is kept under "extra"
func formatFields(fields []interface{}) string {
	if len(fields) == 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i < len(fields); i += 2 {
		if i+1 >= len(fields) {
			fmt.Fprintf(&b, " extra=%v", fields[i])
			break
		}
		fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
	}
	return b.String()
}
