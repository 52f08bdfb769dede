package config

import (
	"fmt"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// MaxPerftDepth bounds perft and walk depths accepted from the command line.
const MaxPerftDepth = 8

// PerftConfig holds settings for move-tree counting.
type PerftConfig struct {
	// Depth of the count (0 disables perft)
	Depth int

	// Divide reports the count below each root move
	Divide bool
}

// NewPerftConfig creates a PerftConfig with default values.
// Perft is disabled by default.
func NewPerftConfig() *PerftConfig {
	return &PerftConfig{}
}

// Validate checks that the perft depth is in range.
func (p *PerftConfig) Validate() error {
	if p.Depth < 0 || p.Depth > MaxPerftDepth {
		return fmt.Errorf("perft depth %d outside 0..%d: %w", p.Depth, MaxPerftDepth, errors.ErrInvalidConfig)
	}
	if p.Divide && p.Depth == 0 {
		return fmt.Errorf("divide requires a perft depth: %w", errors.ErrInvalidConfig)
	}
	return nil
}

// VerifyConfig holds settings for cross-checking against reference move generators.
type VerifyConfig struct {
	// Oracles lists the reference generators by name
	Oracles []string

	// Depth of the move tree walked at each position (0 checks the root only)
	Depth int

	// EPDFile is a file of positions to verify in batch
	EPDFile string

	// Workers is the batch parallelism (0 uses one worker per CPU)
	Workers int

	// FailFast stops a batch at the first mismatch or error
	FailFast bool
}

// NewVerifyConfig creates a VerifyConfig with default values.
func NewVerifyConfig() *VerifyConfig {
	return &VerifyConfig{}
}

// Enabled reports whether any oracle was requested.
func (v *VerifyConfig) Enabled() bool {
	return len(v.Oracles) > 0
}

// Validate checks depth and worker bounds.
func (v *VerifyConfig) Validate() error {
	if v.Depth < 0 || v.Depth > MaxPerftDepth {
		return fmt.Errorf("verify depth %d outside 0..%d: %w", v.Depth, MaxPerftDepth, errors.ErrInvalidConfig)
	}
	if v.Workers < 0 {
		return fmt.Errorf("workers %d: %w", v.Workers, errors.ErrInvalidConfig)
	}
	if v.EPDFile != "" && !v.Enabled() {
		return fmt.Errorf("EPD batch needs at least one oracle: %w", errors.ErrInvalidConfig)
	}
	if v.FailFast && v.EPDFile == "" {
		return fmt.Errorf("fail-fast applies only to EPD batches: %w", errors.ErrInvalidConfig)
	}
	return nil
}
