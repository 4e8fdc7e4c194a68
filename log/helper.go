package log

import (
	"os"
	"sync/atomic"

	"github.com/go-kratos/kratos/v2/log"
)

// Level represents the logging level.
type Level int32

const (
	// DebugLevel logs are typically voluminous and disabled in production.
	DebugLevel Level = iota
	// InfoLevel is the default logging priority.
	InfoLevel
	// WarnLevel logs are more important than Info, but don't need individual
	// human review.
	WarnLevel
	// ErrorLevel logs are high-priority.
	ErrorLevel
)

var (
	// helperStore stores *log.Helper atomically for safe hot-swap updates.
	helperStore atomic.Value // of *log.Helper

	// baseStore keeps the unfiltered logger so SetLevel can rebuild.
	baseStore atomic.Value // of log.Logger

	levelStore atomic.Int32
)

func init() {
	levelStore.Store(int32(InfoLevel))
	SetLogger(NewConsoleLogger(os.Stderr))
}

// SetLogger replaces the process-wide logger. The current level filter is
// re-applied on top of the new logger.
func SetLogger(logger log.Logger) {
	baseStore.Store(logger)
	rebuild()
}

// SetLevel sets the global logging level.
func SetLevel(level Level) {
	levelStore.Store(int32(level))
	rebuild()
}

// GetLevel returns the current global logging level.
func GetLevel() Level {
	return Level(levelStore.Load())
}

func rebuild() {
	base, _ := baseStore.Load().(log.Logger)
	if base == nil {
		base = NewConsoleLogger(os.Stderr)
	}
	var lvl log.Level
	switch GetLevel() {
	case DebugLevel:
		lvl = log.LevelDebug
	case WarnLevel:
		lvl = log.LevelWarn
	case ErrorLevel:
		lvl = log.LevelError
	default:
		lvl = log.LevelInfo
	}
	helperStore.Store(log.NewHelper(log.NewFilter(base, log.FilterLevel(lvl))))
}

func helper() *log.Helper {
	return helperStore.Load().(*log.Helper)
}

// Debugf logs a formatted debug-level message.
func Debugf(format string, args ...interface{}) { helper().Debugf(format, args...) }

// Infof logs a formatted info-level message.
func Infof(format string, args ...interface{}) { helper().Infof(format, args...) }

// Warnf logs a formatted warn-level message.
func Warnf(format string, args ...interface{}) { helper().Warnf(format, args...) }

// Errorf logs a formatted error-level message.
func Errorf(format string, args ...interface{}) { helper().Errorf(format, args...) }

// Infow logs an info-level message with structured key/value pairs.
func Infow(keyvals ...interface{}) { helper().Infow(keyvals...) }

// Errorw logs an error-level message with structured key/value pairs.
func Errorw(keyvals ...interface{}) { helper().Errorw(keyvals...) }
