package log

import (
	charmlog "github.com/charmbracelet/log"
)

type (
	Level     = charmlog.Level
	Styles    = charmlog.Styles
	Formatter = charmlog.Formatter
)

const (
	DebugLevel = charmlog.DebugLevel
	InfoLevel  = charmlog.InfoLevel
	WarnLevel  = charmlog.WarnLevel
	ErrorLevel = charmlog.ErrorLevel
	FatalLevel = charmlog.FatalLevel
)

// Formatters
const (
	TextFormatter   = charmlog.TextFormatter
	JSONFormatter   = charmlog.JSONFormatter
	LogfmtFormatter = charmlog.LogfmtFormatter
)

// ParseLevel converts a config level name ("debug", "info", ...) to a Level.
// Unknown names fall back to InfoLevel.
func ParseLevel(s string) Level {
	l, err := charmlog.ParseLevel(s)
	if err != nil {
		return InfoLevel
	}
	return l
}

// ParseFormatter converts a config format name ("text", "json", "logfmt")
// to a Formatter. Unknown names fall back to TextFormatter.
func ParseFormatter(s string) Formatter {
	switch s {
	case "json":
		return JSONFormatter
	case "logfmt":
		return LogfmtFormatter
	default:
		return TextFormatter
	}
}
