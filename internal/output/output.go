package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/crosscheck"
)

// DefaultLineLength is the wrap column for move lists.
const DefaultLineLength = 80

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = DefaultLineLength
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a string, adding a space separator if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		if o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			o.lineLength = 0
			o.needsSpace = false
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}

	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	fmt.Fprintln(o.w)
	o.lineLength = 0
	o.needsSpace = false
}

// TextWriter writes human-readable results.
type TextWriter struct {
	bw        *bufio.Writer
	out       *OutputWriter
	showBoard bool
}

// NewTextWriter creates a text writer. With showBoard set, positions are
// preceded by a board diagram.
func NewTextWriter(w io.Writer, showBoard bool) *TextWriter {
	bw := bufio.NewWriter(w)
	return &TextWriter{
		bw:        bw,
		out:       NewOutputWriter(bw, DefaultLineLength),
		showBoard: showBoard,
	}
}

// WritePosition writes the FEN, status and wrapped move lists.
func (tw *TextWriter) WritePosition(r *PositionReport) error {
	if tw.showBoard {
		fmt.Fprint(tw.bw, r.Board)
	}
	fmt.Fprintf(tw.bw, "FEN: %s\n", r.FEN)
	if len(r.Played) > 0 {
		tw.moveList("Played:", r.Played)
	}
	fmt.Fprintf(tw.bw, "Status: %s to move, %s\n", r.ToMove, r.Status)
	if len(r.Moves) > 0 {
		tw.moveList(fmt.Sprintf("Moves (%d):", len(r.Moves)), r.Moves)
	}
	return tw.bw.Flush()
}

func (tw *TextWriter) moveList(label string, moves []string) {
	tw.out.Write(label)
	for _, m := range moves {
		tw.out.Write(m)
	}
	tw.out.NewLine()
}

// WritePerft writes one line per root move for divide, then the total.
func (tw *TextWriter) WritePerft(r *PerftReport) error {
	if len(r.Divide) > 0 {
		for _, d := range r.Divide {
			fmt.Fprintf(tw.bw, "%s: %d\n", d.Move, d.Nodes)
		}
		fmt.Fprintln(tw.bw)
	}
	fmt.Fprintf(tw.bw, "Perft %d: %d nodes\n", r.Depth, r.Nodes)
	return tw.bw.Flush()
}

// WriteVerify writes one line per oracle, with the first disagreement.
func (tw *TextWriter) WriteVerify(r *VerifyReport) error {
	fmt.Fprintf(tw.bw, "FEN: %s\n", r.FEN)
	for _, w := range r.Walks {
		tw.walk("", w)
	}
	return tw.bw.Flush()
}

func (tw *TextWriter) walk(indent string, w crosscheck.WalkResult) {
	if w.OK() {
		fmt.Fprintf(tw.bw, "%s%s: ok, %d positions to depth %d (%d skipped)\n",
			indent, w.Oracle, w.Positions, w.Depth, w.Skipped)
		return
	}
	fmt.Fprintf(tw.bw, "%s%s: mismatch at %s\n", indent, w.Oracle, w.Mismatch.FEN)
	if len(w.Mismatch.Missing) > 0 {
		fmt.Fprintf(tw.bw, "%s  missing: %s\n", indent, strings.Join(w.Mismatch.Missing, " "))
	}
	if len(w.Mismatch.Extra) > 0 {
		fmt.Fprintf(tw.bw, "%s  extra: %s\n", indent, strings.Join(w.Mismatch.Extra, " "))
	}
}

// WriteBatch writes a line per position followed by a summary.
func (tw *TextWriter) WriteBatch(r *BatchReport) error {
	for _, e := range r.Results {
		label := fmt.Sprintf("%s:%d", e.File, e.Line)
		if e.ID != "" {
			label += " " + e.ID
		}
		switch e.Status {
		case StatusError:
			fmt.Fprintf(tw.bw, "%s: error: %s\n", label, e.Error)
		case StatusMismatch:
			fmt.Fprintf(tw.bw, "%s: mismatch\n", label)
			for _, w := range e.Walks {
				if !w.OK() {
					tw.walk("  ", w)
				}
			}
		default:
			fmt.Fprintf(tw.bw, "%s: %s\n", label, e.Status)
		}
	}
	fmt.Fprintf(tw.bw, "%d positions: %d ok, %d mismatch, %d duplicate, %d error",
		r.Total, r.Verified, r.Mismatches, r.Duplicates, r.Errors)
	if r.Skipped > 0 {
		fmt.Fprintf(tw.bw, ", %d skipped", r.Skipped)
	}
	fmt.Fprintln(tw.bw)
	return tw.bw.Flush()
}

// Flush flushes buffered output.
func (tw *TextWriter) Flush() error {
	return tw.bw.Flush()
}
