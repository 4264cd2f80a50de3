//go:build !(js && wasm)

package console

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu     sync.RWMutex
	conf   = Config{Level: zerolog.InfoLevel, Format: TextFormat}
	out    io.Writer = os.Stderr
	logger           = newLogger(conf, out)
)

func newLogger(conf Config, w io.Writer) zerolog.Logger {
	if conf.Format == JSONFormat {
		return zerolog.New(w).Level(conf.Level).With().Timestamp().Logger()
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true, PartsExclude: []string{zerolog.TimestampFieldName}}).
		Level(conf.Level)
}

// Configure replaces the level and format of the process logger.
func Configure(c Config) {
	mu.Lock()
	defer mu.Unlock()

	if c.Format == "" {
		c.Format = TextFormat
	}

	conf = c
	logger = newLogger(conf, out)
}

// SetOutput redirects log output, keeping the configured level and format.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	out = w
	logger = newLogger(conf, out)
}

// Logger returns the logger the console functions write to.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()

	return logger
}

// Log writes a debug trace.
func Log(args ...any) {
	l := Logger()
	l.Debug().Msg(format(args))
}

// Warn writes a warning.
func Warn(args ...any) {
	l := Logger()
	l.Warn().Msg(format(args))
}

// Error writes an error.
func Error(args ...any) {
	l := Logger()
	l.Error().Msg(format(args))
}
