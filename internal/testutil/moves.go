package testutil

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// Notations returns the coordinate notation of each move, sorted.
func Notations(moves []chess.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.Notation()
	}
	sort.Strings(out)
	return out
}

// AssertMoves compares a move list against expected coordinate strings,
// ignoring order.
func AssertMoves(t *testing.T, got []chess.Move, want ...string) {
	t.Helper()
	sortStrings := cmpopts.SortSlices(func(a, b string) bool { return a < b })
	if diff := cmp.Diff(want, Notations(got), sortStrings, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("move set mismatch (-want +got):\n%s", diff)
	}
}

// MovesFrom filters moves to those starting on the named square.
func MovesFrom(t *testing.T, moves []chess.Move, square string) []chess.Move {
	t.Helper()
	from := MustSquare(t, square)
	var out []chess.Move
	for _, m := range moves {
		if m.From == from {
			out = append(out, m)
		}
	}
	return out
}

// MustSquare parses algebraic notation or fails the test.
func MustSquare(t *testing.T, text string) chess.Square {
	t.Helper()
	sq, err := chess.ParseSquare(text)
	if err != nil {
		t.Fatalf("ParseSquare(%q) error: %v", text, err)
	}
	return sq
}

// AssertSameState fails if two boards differ in grid, side to move or king squares.
func AssertSameState(t *testing.T, got, want *chess.Board) {
	t.Helper()
	if diff := cmp.Diff(want.SaveState(), got.SaveState()); diff != "" {
		t.Errorf("board state mismatch (-want +got):\n%s", diff)
	}
}
