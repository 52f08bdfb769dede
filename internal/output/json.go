package output

import (
	"encoding/json"
	"io"
)

// JSONWriter writes each result as one JSON document.
type JSONWriter struct {
	enc *json.Encoder
}

// NewJSONWriter creates a JSON writer. With indent set, documents are
// pretty-printed.
func NewJSONWriter(w io.Writer, indent bool) *JSONWriter {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return &JSONWriter{enc: enc}
}

// WritePosition encodes a position report.
func (jw *JSONWriter) WritePosition(r *PositionReport) error {
	return jw.enc.Encode(r)
}

// WritePerft encodes a perft report.
func (jw *JSONWriter) WritePerft(r *PerftReport) error {
	return jw.enc.Encode(r)
}

// WriteVerify encodes a verify report.
func (jw *JSONWriter) WriteVerify(r *VerifyReport) error {
	return jw.enc.Encode(r)
}

// WriteBatch encodes a batch report.
func (jw *JSONWriter) WriteBatch(r *BatchReport) error {
	return jw.enc.Encode(r)
}

// Flush is a no-op; documents are written as soon as they are encoded.
func (jw *JSONWriter) Flush() error {
	return nil
}
