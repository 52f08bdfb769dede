// Package config provides configuration for the chessrules command.
package config

import (
	"io"
	"os"
)

// OutputFormat selects how results are written.
type OutputFormat int

const (
	Text OutputFormat = iota // Human-readable text
	JSON                     // One JSON document per result
)

// String returns the flag spelling of the format.
func (f OutputFormat) String() string {
	if f == JSON {
		return "json"
	}
	return "text"
}

// Config holds all program configuration. Settings are grouped by concern;
// the output streams sit at the top level.
type Config struct {
	Log       *LogConfig
	Perft     *PerftConfig
	Verify    *VerifyConfig
	Duplicate *DuplicateConfig
	Output    *OutputConfig

	// Starting position, in FEN. Empty means the standard start.
	FEN string

	// Coordinate moves played from FEN before any other work.
	Moves []string

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Log:        NewLogConfig(),
		Perft:      NewPerftConfig(),
		Verify:     NewVerifyConfig(),
		Duplicate:  NewDuplicateConfig(),
		Output:     NewOutputConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput sets the result stream.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// Validate checks every sub-config and returns the first problem found.
func (c *Config) Validate() error {
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.Perft.Validate(); err != nil {
		return err
	}
	return c.Verify.Validate()
}
