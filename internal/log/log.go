// Package log provides the Zerolog-based package logger shared by the compiler, the emulator and
// the command line tools.
package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu        sync.RWMutex
	pkgLogger = zerolog.Nop() // silent until SetStd or SetOutput is called
)

// SetStd routes log output to a human readable console writer on stderr.
func SetStd() {
	SetOutput(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

// SetOutput routes log output to w as JSON lines, or through w unchanged when it is a
// zerolog.ConsoleWriter.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	lvl := pkgLogger.GetLevel()
	if lvl == zerolog.Disabled {
		lvl = zerolog.InfoLevel
	}
	pkgLogger = zerolog.New(w).With().Timestamp().Logger().Level(lvl)
}

// SetLevel parses level ("debug", "info", ...) and applies it. Unknown levels fall back to info.
func SetLevel(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	mu.Lock()
	defer mu.Unlock()
	pkgLogger = pkgLogger.Level(lvl)
}

// Disable drops every event, restoring the default state.
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	pkgLogger = zerolog.Nop()
}

func logger() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := pkgLogger
	return &l
}

func Debug() *zerolog.Event { return logger().Debug() }
func Info() *zerolog.Event  { return logger().Info() }
func Warn() *zerolog.Event  { return logger().Warn() }
func Error() *zerolog.Event { return logger().Error() }
func Fatal() *zerolog.Event { return logger().Fatal() }

// Printf sends a log event using info level and no extra field.
// Arguments are handled in the manner of fmt.Printf.
func Printf(format string, v ...any) {
	logger().Info().CallerSkipFrame(1).Msgf(format, v...)
}

func Fatalf(format string, v ...any) {
	logger().Fatal().Msgf(format, v...)
}
