package config

import (
	"fmt"
	"io"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/apex/log/handlers/discard"
	"github.com/apex/log/handlers/json"
	"github.com/apex/log/handlers/text"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Log handler names accepted by LogConfig.Format.
const (
	LogFormatCLI     = "cli"
	LogFormatText    = "text"
	LogFormatJSON    = "json"
	LogFormatDiscard = "discard"
)

// LogConfig holds settings for diagnostic logging.
type LogConfig struct {
	// Level is an apex/log level name: debug, info, warn, error or fatal
	Level string

	// Format selects the handler: cli, text, json or discard
	Format string
}

// NewLogConfig creates a LogConfig with default values.
func NewLogConfig() *LogConfig {
	return &LogConfig{
		Level:  "warn",
		Format: LogFormatCLI,
	}
}

// Validate checks the level and handler names.
func (l *LogConfig) Validate() error {
	if _, err := log.ParseLevel(l.Level); err != nil {
		return fmt.Errorf("log level %q: %w", l.Level, errors.ErrInvalidConfig)
	}
	switch l.Format {
	case LogFormatCLI, LogFormatText, LogFormatJSON, LogFormatDiscard:
		return nil
	}
	return fmt.Errorf("log format %q: %w", l.Format, errors.ErrInvalidConfig)
}

// Logger builds a logger writing to w.
func (l *LogConfig) Logger(w io.Writer) (*log.Logger, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	level, _ := log.ParseLevel(l.Level)

	var handler log.Handler
	switch l.Format {
	case LogFormatText:
		handler = text.New(w)
	case LogFormatJSON:
		handler = json.New(w)
	case LogFormatDiscard:
		handler = discard.New()
	default:
		handler = cli.New(w)
	}
	return &log.Logger{Handler: handler, Level: level}, nil
}

// Logger builds the program logger on the configured log stream.
func (c *Config) Logger() (*log.Logger, error) {
	return c.Log.Logger(c.LogFile)
}
