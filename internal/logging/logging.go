package logging

import (
	"io"
	"log"
	"os"
	"strings"
)

type level int

const (
	levelDebug level = iota
	levelInfo
	levelWarn
	levelError
)

// Logger is a small leveled logger over the standard library log package.
type Logger struct {
	min  level
	base *log.Logger
}

// New creates a Logger writing to w at the given minimum level. Unknown or
// empty level strings fall back to info.
func New(levelName string, w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return &Logger{
		min:  parseLevel(levelName),
		base: log.New(w, "", log.LstdFlags),
	}
}

// Default returns an info-level logger writing to stderr.
func Default() *Logger {
	return New("info", os.Stderr)
}

func parseLevel(s string) level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return levelDebug
	case "warn", "warning":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

func (l *Logger) logf(lv level, prefix, format string, args ...any) {
	if lv < l.min {
		return
	}
	l.base.Printf(prefix+format, args...)
}

func (l *Logger) Debugf(format string, args ...any) {
	l.logf(levelDebug, "[DEBUG] ", format, args...)
}

func (l *Logger) Infof(format string, args ...any) {
	l.logf(levelInfo, "[INFO] ", format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.logf(levelWarn, "[WARN] ", format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.logf(levelError, "[ERROR] ", format, args...)
}
