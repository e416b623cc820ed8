// Package logging adds leveled prefixes over the teacher's plain stdlib
// log.Printf idiom (every file in the teacher imports "log" directly, never
// a structured logger), generalized enough to carry a session/role tag
// through a protocol run without introducing a dependency the rest of the
// retrieved corpus never reaches for.
package logging

import (
	"fmt"
	"log"
	"os"
)

// Level orders verbosity from most to least chatty.
type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a config string ("debug", "info", "warn", "error") to a
// Level, defaulting to Info for anything unrecognized.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return Debug
	case "warn":
		return Warn
	case "error":
		return Error
	default:
		return Info
	}
}

// Logger wraps a stdlib *log.Logger with a minimum level and a fixed tag
// (role/session identity), e.g. "server[sess-17]".
type Logger struct {
	std *log.Logger
	min Level
	tag string
}

// New creates a Logger writing to stderr, tagged with tag, filtering out
// anything below min.
func New(tag string, min Level) *Logger {
	return &Logger{std: log.New(os.Stderr, "", log.LstdFlags), min: min, tag: tag}
}

func (lg *Logger) log(level Level, format string, args ...any) {
	if level < lg.min {
		return
	}
	msg := fmt.Sprintf(format, args...)
	lg.std.Printf("[%s] %s: %s", level, lg.tag, msg)
}

func (lg *Logger) Debugf(format string, args ...any) { lg.log(Debug, format, args...) }
func (lg *Logger) Infof(format string, args ...any)  { lg.log(Info, format, args...) }
func (lg *Logger) Warnf(format string, args ...any)  { lg.log(Warn, format, args...) }
func (lg *Logger) Errorf(format string, args ...any) { lg.log(Error, format, args...) }

// Fatalf logs at Error and terminates the process, mirroring the teacher's
// use of log.Fatalln for unrecoverable startup errors.
func (lg *Logger) Fatalf(format string, args ...any) {
	lg.log(Error, format, args...)
	os.Exit(1)
}

// With returns a child Logger with an additional tag segment, e.g.
// base.With("session-1") for per-session log lines within a long-lived
// process.
func (lg *Logger) With(suffix string) *Logger {
	return &Logger{std: lg.std, min: lg.min, tag: lg.tag + "." + suffix}
}
