package output

import (
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/crosscheck"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/worker"
)

// PositionReport describes a game position and its legal moves.
type PositionReport struct {
	FEN    string   `json:"fen"`
	ToMove string   `json:"toMove"`
	Ply    int      `json:"ply"`
	Status string   `json:"status"`
	Played []string `json:"played,omitempty"`
	Moves  []string `json:"moves,omitempty"`

	// Board is the text diagram; it is not part of JSON output.
	Board string `json:"-"`
}

// NewPositionReport snapshots g. Legal moves are listed, sorted, only when
// listMoves is set.
func NewPositionReport(g *engine.Game, listMoves bool) *PositionReport {
	r := &PositionReport{
		FEN:    g.FEN(),
		ToMove: strings.ToLower(g.ToMove().String()),
		Ply:    g.Ply(),
		Status: g.Status().String(),
		Played: notations(g.History()),
		Board:  g.Board().String(),
	}
	if listMoves {
		r.Moves = notations(g.LegalMoves())
		slices.Sort(r.Moves)
	}
	return r
}

func notations(moves []chess.Move) []string {
	if len(moves) == 0 {
		return nil
	}
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.Notation()
	}
	return out
}

// DivideEntry is the node count below one root move.
type DivideEntry struct {
	Move  string `json:"move"`
	Nodes uint64 `json:"nodes"`
}

// PerftReport holds a perft count and, for divide, its per-move breakdown.
type PerftReport struct {
	FEN    string        `json:"fen"`
	Depth  int           `json:"depth"`
	Nodes  uint64        `json:"nodes"`
	Divide []DivideEntry `json:"divide,omitempty"`
}

// NewPerftReport counts the move tree of board to depth. The board is
// restored before returning.
func NewPerftReport(board *chess.Board, depth int, divide bool) *PerftReport {
	r := &PerftReport{FEN: engine.BoardToFEN(board), Depth: depth}
	if !divide || depth <= 0 {
		r.Nodes = engine.Perft(board, depth)
		return r
	}

	counts := engine.Divide(board, depth)
	keys := maps.Keys(counts)
	slices.Sort(keys)
	r.Divide = make([]DivideEntry, 0, len(keys))
	for _, k := range keys {
		r.Divide = append(r.Divide, DivideEntry{Move: k, Nodes: counts[k]})
		r.Nodes += counts[k]
	}
	return r
}

// VerifyReport holds the oracle walks for a single position.
type VerifyReport struct {
	FEN   string                  `json:"fen"`
	Depth int                     `json:"depth"`
	Walks []crosscheck.WalkResult `json:"walks"`
}

// OK reports whether every oracle agreed.
func (r *VerifyReport) OK() bool {
	for _, w := range r.Walks {
		if !w.OK() {
			return false
		}
	}
	return true
}

// Batch entry statuses.
const (
	StatusOK        = "ok"
	StatusMismatch  = "mismatch"
	StatusDuplicate = "duplicate"
	StatusError     = "error"
	StatusSkipped   = "skipped"
)

// BatchEntry is the outcome for one position of a batch.
type BatchEntry struct {
	worker.Position
	Status string                  `json:"status"`
	Error  string                  `json:"error,omitempty"`
	Walks  []crosscheck.WalkResult `json:"walks,omitempty"`
}

// BatchReport summarises a batch verification run.
type BatchReport struct {
	Oracles    []string     `json:"oracles"`
	Depth      int          `json:"depth"`
	Total      int          `json:"total"`
	Verified   int          `json:"verified"`
	Mismatches int          `json:"mismatches"`
	Duplicates int          `json:"duplicates"`
	Errors     int          `json:"errors"`
	Skipped    int          `json:"skipped,omitempty"`
	Results    []BatchEntry `json:"results"`
}

// NewBatchReport tallies results, which must be in input order.
func NewBatchReport(oracles []string, depth int, results []worker.ProcessResult) *BatchReport {
	r := &BatchReport{
		Oracles: oracles,
		Depth:   depth,
		Total:   len(results),
		Results: make([]BatchEntry, 0, len(results)),
	}
	for _, res := range results {
		entry := BatchEntry{Position: res.Position, Walks: res.Walks}
		switch {
		case res.Skipped:
			entry.Status = StatusSkipped
			r.Skipped++
		case res.Error != nil:
			entry.Status = StatusError
			entry.Error = res.Error.Error()
			r.Errors++
		case res.Duplicate:
			entry.Status = StatusDuplicate
			r.Duplicates++
		case res.Mismatch():
			entry.Status = StatusMismatch
			r.Mismatches++
		default:
			entry.Status = StatusOK
			r.Verified++
		}
		r.Results = append(r.Results, entry)
	}
	return r
}

// OK reports whether the batch finished without mismatches or errors.
func (r *BatchReport) OK() bool {
	return r.Mismatches == 0 && r.Errors == 0
}
