package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

const (
	DEBUG int = iota
	INFO
	WARNING
	ERROR
	SILENCE
)

type Logger interface {
	Debugf(msg string, a ...any)
	Infof(msg string, a ...any)
	Warnf(msg string, a ...any)
	Errorf(msg string, a ...any)

	// With returns a child logger which attaches the fields to every entry.
	With(fields map[string]any) Logger
}

type zeroLogger struct {
	z zerolog.Logger
}

func NewLogger(level int) *zeroLogger {
	return NewWriterLogger(os.Stdout, level, false)
}

// NewWriterLogger writes json entries to w, or human readable lines when
// console is set.
func NewWriterLogger(w io.Writer, level int, console bool) *zeroLogger {
	if console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}

	z := zerolog.New(w).Level(toZeroLevel(level)).With().Timestamp().Logger()
	return &zeroLogger{z: z}
}

func NewNopLogger() *zeroLogger {
	return &zeroLogger{z: zerolog.Nop()}
}

func (l *zeroLogger) Debugf(msg string, a ...any) {
	l.z.Debug().Msgf(msg, a...)
}

func (l *zeroLogger) Infof(msg string, a ...any) {
	l.z.Info().Msgf(msg, a...)
}

func (l *zeroLogger) Warnf(msg string, a ...any) {
	l.z.Warn().Msgf(msg, a...)
}

func (l *zeroLogger) Errorf(msg string, a ...any) {
	l.z.Error().Msgf(msg, a...)
}

func (l *zeroLogger) With(fields map[string]any) Logger {
	return &zeroLogger{z: l.z.With().Fields(fields).Logger()}
}

// ParseLevel accepts debug, info, warn, error or silence.
func ParseLevel(s string) int {
	switch strings.ToLower(s) {
	case "debug":
		return DEBUG
	case "warn", "warning":
		return WARNING
	case "error":
		return ERROR
	case "silence", "silent", "off":
		return SILENCE
	default:
		return INFO
	}
}

func toZeroLevel(level int) zerolog.Level {
	switch level {
	case DEBUG:
		return zerolog.DebugLevel
	case INFO:
		return zerolog.InfoLevel
	case WARNING:
		return zerolog.WarnLevel
	case ERROR:
		return zerolog.ErrorLevel
	default:
		return zerolog.Disabled
	}
}
