// Package logging configures harness logging from the tor-style
// runlevels the -l/--log flag and the argument.log setting accept.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Runlevel is a logging threshold for the harness.
type Runlevel string

const (
	Trace  Runlevel = "TRACE"
	Debug  Runlevel = "DEBUG"
	Info   Runlevel = "INFO"
	Notice Runlevel = "NOTICE"
	Warn   Runlevel = "WARN"
	Err    Runlevel = "ERROR"
)

// Runlevels lists the accepted values, most to least verbose.
var Runlevels = []Runlevel{Trace, Debug, Info, Notice, Warn, Err}

// ParseRunlevel validates a user-supplied runlevel, case-insensitively.
// The empty string is valid and means logging is disabled.
func ParseRunlevel(s string) (Runlevel, error) {
	if s == "" {
		return "", nil
	}
	candidate := Runlevel(strings.ToUpper(s))
	for _, level := range Runlevels {
		if candidate == level {
			return level, nil
		}
	}
	return "", fmt.Errorf("%q isn't a logging runlevel, use one of: TRACE, DEBUG, INFO, NOTICE, WARN, ERROR", s)
}

// zerologLevel maps a runlevel onto zerolog's levels. NOTICE has no
// zerolog counterpart and folds into INFO.
func (r Runlevel) zerologLevel() zerolog.Level {
	switch r {
	case Trace:
		return zerolog.TraceLevel
	case Debug:
		return zerolog.DebugLevel
	case Info, Notice:
		return zerolog.InfoLevel
	case Warn:
		return zerolog.WarnLevel
	case Err:
		return zerolog.ErrorLevel
	default:
		return zerolog.Disabled
	}
}

// New builds a console logger writing to w at the given runlevel. An
// empty runlevel disables output entirely.
func New(w io.Writer, level Runlevel, noColor bool) zerolog.Logger {
	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	}
	return zerolog.New(console).Level(level.zerologLevel()).With().Timestamp().Logger()
}
