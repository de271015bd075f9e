// Package logging provides the leveled diagnostic logger used by rnbuf.
//
// Diagnostics go to stderr so they never mix with the listing or the
// activity lines on stdout. Debug lines are only written in verbose mode.
package logging

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
)

var (
	debugTag = color.New(color.FgCyan)
	infoTag  = color.New(color.FgBlue, color.Bold)
	warnTag  = color.New(color.FgYellow, color.Bold)
	errorTag = color.New(color.FgRed, color.Bold)
)

// Logger writes timestamped, leveled lines.
type Logger struct {
	mu      sync.Mutex
	out     io.Writer
	verbose bool
	now     func() time.Time
}

// New creates a Logger writing to out.
func New(out io.Writer, verbose bool) *Logger {
	return &Logger{out: out, verbose: verbose, now: time.Now}
}

// Discard returns a Logger that writes nothing.
func Discard() *Logger {
	return New(io.Discard, false)
}

// Verbose reports whether debug lines are written.
func (l *Logger) Verbose() bool {
	return l.verbose
}

func (l *Logger) line(tag *color.Color, level, text string) {
	ts := l.now().Format("15:04:05")
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = fmt.Fprintf(l.out, "%s %s %s\n", ts, tag.Sprintf("[%s]", level), text)
}

// Debug logs at DEBUG level when verbose.
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.line(debugTag, "DEBUG", fmt.Sprintf(format, args...))
}

// Info logs at INFO level.
func (l *Logger) Info(format string, args ...interface{}) {
	l.line(infoTag, "INFO", fmt.Sprintf(format, args...))
}

// Warn logs at WARN level.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.line(warnTag, "WARN", fmt.Sprintf(format, args...))
}

// Error logs at ERROR level.
func (l *Logger) Error(format string, args ...interface{}) {
	l.line(errorTag, "ERROR", fmt.Sprintf(format, args...))
}
