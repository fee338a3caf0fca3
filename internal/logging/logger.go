// Package logging builds the hclog loggers used by the bmp4 command.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
)

// Environment variables read by NewLogger and Level.
const (
	EnvLevel = "BMP4_LOG_LEVEL"
	EnvJSON  = "BMP4_JSON_LOG"
)

// NewLogger creates a new hclog logger with standard settings.
// A nil output means stderr; an empty level means Level().
func NewLogger(name, level string, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}
	if level == "" {
		level = Level()
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(level),
		JSONFormat: os.Getenv(EnvJSON) == "1",
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z",
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	})
}

// Level returns the configured log level from the environment, "warn" if unset.
func Level() string {
	if level := os.Getenv(EnvLevel); level != "" {
		return level
	}
	return "warn"
}
