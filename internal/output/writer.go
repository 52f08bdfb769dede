// Package output formats engine results as text or JSON.
package output

import (
	"io"

	"github.com/lgbarn/chessrules-go/internal/config"
)

// ResultWriter is the interface for writing results to output.
// Different implementations handle different output formats (text, JSON).
type ResultWriter interface {
	// WritePosition writes a position with its status and legal moves.
	WritePosition(r *PositionReport) error

	// WritePerft writes a perft count or divide table.
	WritePerft(r *PerftReport) error

	// WriteVerify writes the oracle walks for one position.
	WriteVerify(r *VerifyReport) error

	// WriteBatch writes a batch verification report.
	WriteBatch(r *BatchReport) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error
}

// NewResultWriter returns the writer selected by cfg.
func NewResultWriter(w io.Writer, cfg *config.OutputConfig) ResultWriter {
	if cfg.Format == config.JSON {
		return NewJSONWriter(w, cfg.Indent)
	}
	return NewTextWriter(w, cfg.ShowBoard)
}
