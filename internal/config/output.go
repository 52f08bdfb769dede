package config

// OutputConfig holds settings related to output formatting.
type OutputConfig struct {
	// Format selects text or JSON output
	Format OutputFormat

	// ListMoves prints the legal move list for the final position
	ListMoves bool

	// ShowBoard prints a board diagram before text results
	ShowBoard bool

	// Indent pretty-prints JSON output
	Indent bool
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		Format:    Text,
		ListMoves: true,
	}
}
