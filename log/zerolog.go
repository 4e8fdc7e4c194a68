// Package log provides a unified logging interface for the Lumenview host.
// It wraps the Kratos logging system with a zerolog backend and provides
// convenient package-level methods for the common log levels.
package log

import (
	"fmt"
	"io"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/rs/zerolog"
)

// zeroLogger adapts a zerolog.Logger to the Kratos log.Logger interface.
type zeroLogger struct {
	logger zerolog.Logger
}

// Log implements log.Logger. It maps Kratos log levels to zerolog levels and
// attaches key/value pairs as structured fields.
func (l zeroLogger) Log(level log.Level, keyvals ...interface{}) error {
	// Tolerate an odd number of keyvals by appending a placeholder value.
	if len(keyvals)%2 != 0 {
		keyvals = append(keyvals, "BAD_VALUE")
	}

	var event *zerolog.Event
	switch level {
	case log.LevelDebug:
		event = l.logger.Debug()
	case log.LevelInfo:
		event = l.logger.Info()
	case log.LevelWarn:
		event = l.logger.Warn()
	case log.LevelError:
		event = l.logger.Error()
	case log.LevelFatal:
		event = l.logger.Fatal()
	default:
		event = l.logger.Info()
	}

	var msg string
	for i := 0; i < len(keyvals); i += 2 {
		key := fmt.Sprint(keyvals[i])
		if key == log.DefaultMessageKey {
			msg = fmt.Sprint(keyvals[i+1])
			continue
		}
		event = event.Interface(key, keyvals[i+1])
	}
	event.Msg(msg)
	return nil
}

// NewConsoleLogger returns a Kratos logger that writes human-readable output
// to w through zerolog's console writer.
func NewConsoleLogger(w io.Writer) log.Logger {
	zl := zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()
	return zeroLogger{logger: zl}
}

// NewJSONLogger returns a Kratos logger that writes structured JSON to w.
func NewJSONLogger(w io.Writer) log.Logger {
	zl := zerolog.New(w).With().Timestamp().Logger()
	return zeroLogger{logger: zl}
}
