// Package logger provides a simple leveled logger for the application.
// It supports three levels: off (no output), normal (info/warn/error),
// and verbose (includes debug). The logger is safe for concurrent use.
// Named children share the parent's level and output.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level controls the verbosity of the logger.
type Level int

const (
	// LevelOff disables all log output.
	LevelOff Level = iota
	// LevelNormal enables info, warn, and error output.
	LevelNormal
	// LevelVerbose enables all output including debug.
	LevelVerbose
)

// String returns the configuration name of the level.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelNormal:
		return "normal"
	case LevelVerbose:
		return "verbose"
	default:
		return "unknown"
	}
}

// ParseLevel converts a configuration value into a Level.
// Accepts off/quiet, normal/info, and verbose/debug.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "quiet", "none":
		return LevelOff, nil
	case "", "normal", "info":
		return LevelNormal, nil
	case "verbose", "debug":
		return LevelVerbose, nil
	}
	return LevelNormal, fmt.Errorf("unknown log level %q", s)
}

// state is shared between a logger and its named children.
type state struct {
	mu    sync.RWMutex
	level Level
	out   io.Writer
}

// Logger is a leveled logger. All methods are safe for concurrent use.
type Logger struct {
	st     *state
	name   string
	debug  *log.Logger
	info   *log.Logger
	warn   *log.Logger
	errLog *log.Logger
}

// New creates a logger with the given level, writing to the given output.
// If out is nil, os.Stderr is used.
func New(level Level, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}
	return build(&state{level: level, out: out}, "")
}

func build(st *state, name string) *Logger {
	flags := log.Ltime
	tag := ""
	if name != "" {
		tag = name + ": "
	}
	return &Logger{
		st:     st,
		name:   name,
		debug:  log.New(st.out, "[DBG] "+tag, flags|log.Lmsgprefix),
		info:   log.New(st.out, "[INF] "+tag, flags|log.Lmsgprefix),
		warn:   log.New(st.out, "[WRN] "+tag, flags|log.Lmsgprefix),
		errLog: log.New(st.out, "[ERR] "+tag, flags|log.Lmsgprefix),
	}
}

// Named returns a child logger whose lines are tagged with the component
// name. Level changes on either logger apply to both.
func (l *Logger) Named(component string) *Logger {
	name := component
	if l.name != "" {
		name = l.name + "." + component
	}
	return build(l.st, name)
}

// SetLevel changes the log level at runtime.
func (l *Logger) SetLevel(level Level) {
	l.st.mu.Lock()
	defer l.st.mu.Unlock()
	l.st.level = level
}

// GetLevel returns the current log level.
func (l *Logger) GetLevel() Level {
	l.st.mu.RLock()
	defer l.st.mu.RUnlock()
	return l.st.level
}

// Debug logs a message at debug level (only visible in verbose mode).
func (l *Logger) Debug(format string, args ...any) {
	l.output(LevelVerbose, l.debug, format, args...)
}

// Info logs a message at info level.
func (l *Logger) Info(format string, args ...any) {
	l.output(LevelNormal, l.info, format, args...)
}

// Warn logs a message at warn level.
func (l *Logger) Warn(format string, args ...any) {
	l.output(LevelNormal, l.warn, format, args...)
}

// Error logs a message at error level.
func (l *Logger) Error(format string, args ...any) {
	l.output(LevelNormal, l.errLog, format, args...)
}

func (l *Logger) output(min Level, dst *log.Logger, format string, args ...any) {
	l.st.mu.RLock()
	defer l.st.mu.RUnlock()
	if l.st.level >= min {
		dst.Output(3, fmt.Sprintf(format, args...))
	}
}
