// Package logging configures the process-wide structured logger.
//
// The timer UI owns the terminal, so the logger normally writes to a file
// under the XDG state directory. Command line subcommands keep the default
// stderr output.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Level:  log.WarnLevel,
	Prefix: "cubetimer",
})

// ParseLevel maps a level name to a log level. Unknown names fall back to
// warn.
func ParseLevel(s string) log.Level {
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return log.WarnLevel
	}
	return level
}

// SetLevel changes the minimum level.
func SetLevel(name string) {
	logger.SetLevel(ParseLevel(name))
}

// SetOutput redirects log output.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// ToFile redirects log output to path, creating parent directories. The
// returned closer restores stderr output and closes the file.
func ToFile(path string) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger.SetOutput(f)
	return closerFunc(func() error {
		logger.SetOutput(os.Stderr)
		return f.Close()
	}), nil
}

type closerFunc func() error

func (c closerFunc) Close() error { return c() }

// Debug logs at debug level with key/value pairs.
func Debug(msg string, keyvals ...any) { logger.Debug(msg, keyvals...) }

// Info logs at info level with key/value pairs.
func Info(msg string, keyvals ...any) { logger.Info(msg, keyvals...) }

// Warn logs at warn level with key/value pairs.
func Warn(msg string, keyvals ...any) { logger.Warn(msg, keyvals...) }

// Error logs at error level with key/value pairs.
func Error(msg string, keyvals ...any) { logger.Error(msg, keyvals...) }
