package logging

import (
	"fmt"
	"log/slog"
	"os"
)

const (
	// KeyAppName is the key for the application name.
	KeyAppName = `app`

	// KeyError is the key for an error.
	KeyError = `err`

	// KeyStore is the key for a datastore.
	KeyStore = `store`

	// KeyEvent is the key for an event.
	KeyEvent = `event`
)

// Name is the name of the application.
type Name string

// Config is the configuration for a logger.
type Config struct {
	// name is the name of the application.
	name Name

	// level is the minimum level to log at.
	level slog.Level
}

// NewConfig creates a new logging configuration.
func NewConfig(name Name) *Config {
	return &Config{
		name:  name,
		level: slog.LevelDebug,
	}
}

// CommonLogger creates a logger with the common configuration for the application.
func CommonLogger(c *Config) (*slog.Logger, error) {
	if c == nil {
		return nil, fmt.Errorf("no logging config provided")
	}

	l := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: c.level,
	})).With(
		slog.String(KeyAppName, string(c.name)),
	)

	// Set the default logger so that any package level logging uses the same handler.
	slog.SetDefault(l)

	return l, nil
}
