package crosscheck

import (
	"fmt"

	"github.com/apex/log"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Result is the outcome of comparing one position against one oracle.
// Missing moves are produced only by the oracle; Extra moves only by the engine.
type Result struct {
	FEN     string   `json:"fen"`
	Oracle  string   `json:"oracle"`
	Missing []string `json:"missing,omitempty"`
	Extra   []string `json:"extra,omitempty"`
	Skipped bool     `json:"skipped,omitempty"`
}

// OK reports whether both move sets agreed.
func (r Result) OK() bool {
	return len(r.Missing) == 0 && len(r.Extra) == 0
}

// Err returns an ErrOracleMismatch error describing r, or nil.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return fmt.Errorf("%s at %q: missing %v, extra %v: %w", r.Oracle, r.FEN, r.Missing, r.Extra, errors.ErrOracleMismatch)
}

type moveSet map[string]struct{}

// Compare checks the engine's legal moves on board against oracle. Oracle
// moves outside the engine's move model are normalised first: castling and
// en passant are dropped and promotions are reduced to their squares.
// Positions with a pawn on its last rank are skipped.
func Compare(board *chess.Board, oracle Oracle) (Result, error) {
	fen := engine.BoardToFEN(board)
	result := Result{FEN: fen, Oracle: oracle.Name()}
	if pawnOnLastRank(board) {
		result.Skipped = true
		return result, nil
	}

	raw, err := oracle.LegalMoves(fen)
	if err != nil {
		return result, err
	}
	want, err := normalise(board, raw)
	if err != nil {
		return result, fmt.Errorf("%s: %w", oracle.Name(), err)
	}

	legal, _ := engine.LegalMoves(board)
	got := make(moveSet, len(legal))
	for _, m := range legal {
		got[m.Notation()] = struct{}{}
	}

	result.Missing = difference(want, got)
	result.Extra = difference(got, want)
	return result, nil
}

// normalise maps raw oracle moves onto the engine's move model.
func normalise(board *chess.Board, raw []string) (moveSet, error) {
	set := make(moveSet, len(raw))
	for _, text := range raw {
		if len(text) < 4 {
			return nil, fmt.Errorf("move %q: %w", text, errors.ErrIllegalMove)
		}
		from, err := chess.ParseSquare(text[:2])
		if err != nil {
			return nil, fmt.Errorf("move %q: %w", text, err)
		}
		to, err := chess.ParseSquare(text[2:4])
		if err != nil {
			return nil, fmt.Errorf("move %q: %w", text, err)
		}
		switch mover := board.At(from); mover.Kind() {
		case chess.King:
			if dc := to.Col - from.Col; dc == 2 || dc == -2 {
				continue // castling
			}
		case chess.Pawn:
			if from.Col != to.Col && board.At(to) == chess.Empty {
				continue // en passant
			}
		}
		set[text[:4]] = struct{}{}
	}
	return set, nil
}

// difference returns the sorted members of a not in b.
func difference(a, b moveSet) []string {
	var out []string
	for _, m := range maps.Keys(a) {
		if _, ok := b[m]; !ok {
			out = append(out, m)
		}
	}
	slices.Sort(out)
	return out
}

// pawnOnLastRank reports whether any pawn stands on its promotion rank.
func pawnOnLastRank(board *chess.Board) bool {
	for col := 0; col < chess.BoardSize; col++ {
		if board.Grid[0][col] == chess.W(chess.Pawn) || board.Grid[chess.BoardSize-1][col] == chess.B(chess.Pawn) {
			return true
		}
	}
	return false
}

// WalkResult summarises a walk of the move tree against one oracle.
type WalkResult struct {
	Oracle    string  `json:"oracle"`
	Depth     int     `json:"depth"`
	Positions int     `json:"positions"`
	Skipped   int     `json:"skipped"`
	Mismatch  *Result `json:"mismatch,omitempty"`
}

// OK reports whether no mismatch was found.
func (w WalkResult) OK() bool {
	return w.Mismatch == nil
}

// Walk compares every position reachable from board within depth plies,
// stopping at the first mismatch. The board is restored before returning.
func Walk(board *chess.Board, oracle Oracle, depth int) (WalkResult, error) {
	walk := WalkResult{Oracle: oracle.Name(), Depth: depth}
	err := walkNode(board, oracle, depth, &walk)
	return walk, err
}

func walkNode(board *chess.Board, oracle Oracle, depth int, walk *WalkResult) error {
	result, err := Compare(board, oracle)
	if err != nil {
		return err
	}
	if result.Skipped {
		walk.Skipped++
		return nil
	}
	walk.Positions++
	if !result.OK() {
		walk.Mismatch = &result
		return nil
	}
	if depth <= 0 {
		return nil
	}

	moves, _ := engine.LegalMoves(board)
	for _, m := range moves {
		board.Apply(m)
		err := walkNode(board, oracle, depth-1, walk)
		board.Undo()
		if err != nil || walk.Mismatch != nil {
			return err
		}
	}
	return nil
}

// Checker runs walks for a set of oracles and logs the outcome.
type Checker struct {
	oracles []Oracle
	logger  log.Interface
}

// NewChecker creates a checker. A nil logger uses the package default.
func NewChecker(oracles []Oracle, logger log.Interface) *Checker {
	if logger == nil {
		logger = log.Log
	}
	return &Checker{oracles: oracles, logger: logger}
}

// Oracles returns the names of the configured oracles.
func (c *Checker) Oracles() []string {
	names := make([]string, len(c.oracles))
	for i, o := range c.oracles {
		names[i] = o.Name()
	}
	return names
}

// Check walks board to depth with every oracle. Each walk works on its own
// copy of board.
func (c *Checker) Check(board *chess.Board, depth int) ([]WalkResult, error) {
	results := make([]WalkResult, 0, len(c.oracles))
	for _, oracle := range c.oracles {
		ctx := c.logger.WithFields(log.Fields{
			"oracle": oracle.Name(),
			"depth":  depth,
		})
		walk, err := Walk(board.Copy(), oracle, depth)
		if err != nil {
			ctx.WithError(err).Error("oracle failed")
			return results, err
		}
		if walk.Mismatch != nil {
			ctx.WithFields(log.Fields{
				"fen":     walk.Mismatch.FEN,
				"missing": walk.Mismatch.Missing,
				"extra":   walk.Mismatch.Extra,
			}).Warn("move set mismatch")
		} else {
			ctx.WithField("positions", walk.Positions).Debug("move sets agree")
		}
		results = append(results, walk)
	}
	return results, nil
}
