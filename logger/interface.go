// Package logger defines the structured logging contract of the generator
// and its zerolog implementation.
package logger

import "time"

// Logger creates leveled events. Derived loggers carry run and module fields
// through a generation.
type Logger interface {
	Info() LogEvent
	Error() LogEvent
	Debug() LogEvent
	Warn() LogEvent
	WithContext(ctx any) Logger
	WithFields(fields map[string]any) Logger
}

// LogEvent accumulates the fields of one entry until Msg writes it.
type LogEvent interface {
	Msg(msg string)
	Err(err error) LogEvent
	Str(key, value string) LogEvent
	Int(key string, value int) LogEvent
	Dur(key string, d time.Duration) LogEvent
}
