// Package log is pugc's leveled logger: plain text on a non-TTY or when
// NO_COLOR is set, colorized via fatih/color otherwise. Debug output only
// appears when the CLI's "-debug" flag (cmd/pugc) turns the level down,
// the same gate cmd/devcmd/main.go's own "-debug" flag applies around its
// parser invocation.
package log

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Level orders the four severities this package prints.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Logger writes leveled, optionally colorized messages to an io.Writer.
type Logger struct {
	out   io.Writer
	level Level

	debug *color.Color
	info  *color.Color
	warn  *color.Color
	errc  *color.Color
}

// New returns a Logger writing to out, suppressing anything below level.
func New(out io.Writer, level Level) *Logger {
	return &Logger{
		out:   out,
		level: level,
		debug: color.New(color.Faint),
		info:  color.New(color.FgCyan),
		warn:  color.New(color.FgYellow),
		errc:  color.New(color.FgRed, color.Bold),
	}
}

// Default is the package-level logger cmd/pugc configures from its flags.
var Default = New(os.Stderr, LevelInfo)

// SetLevel adjusts the default logger's minimum printed level (e.g. from
// a "-debug" CLI flag).
func SetLevel(level Level) { Default.level = level }

func (l *Logger) printf(level Level, c *color.Color, prefix, format string, args ...any) {
	if level < l.level {
		return
	}
	msg := fmt.Sprintf(format, args...)
	c.Fprintf(l.out, "%s %s\n", prefix, msg)
}

func (l *Logger) Debugf(format string, args ...any) { l.printf(LevelDebug, l.debug, "debug:", format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.printf(LevelInfo, l.info, "info: ", format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.printf(LevelWarn, l.warn, "warn: ", format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.printf(LevelError, l.errc, "error:", format, args...) }

func Debugf(format string, args ...any) { Default.Debugf(format, args...) }
func Infof(format string, args ...any)  { Default.Infof(format, args...) }
func Warnf(format string, args ...any)  { Default.Warnf(format, args...) }
func Errorf(format string, args ...any) { Default.Errorf(format, args...) }
