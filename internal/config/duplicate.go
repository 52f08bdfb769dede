package config

// DuplicateConfig holds settings for repeated-position detection in batch runs.
type DuplicateConfig struct {
	// Suppress skips positions already seen earlier in the batch
	Suppress bool

	// Capacity limits the number of recorded positions (0 = unlimited)
	Capacity int
}

// NewDuplicateConfig creates a DuplicateConfig with default values.
func NewDuplicateConfig() *DuplicateConfig {
	return &DuplicateConfig{
		Suppress: true,
	}
}
