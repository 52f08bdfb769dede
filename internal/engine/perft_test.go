package engine

import (
	"testing"

	"github.com/lgbarn/chessrules-go/internal/testutil"
)

func TestPerft_InitialPosition(t *testing.T) {
	tests := []struct {
		depth int
		want  uint64
		long  bool
	}{
		{0, 1, false},
		{1, 20, false},
		{2, 400, false},
		{3, 8902, false},
		{4, 197281, true},
	}

	for _, tt := range tests {
		if tt.long && testing.Short() {
			continue
		}
		board := NewInitialBoard()
		before := board.Copy()
		testutil.AssertEqual(t, Perft(board, tt.depth), tt.want, "perft(%d)", tt.depth)
		testutil.AssertSameState(t, board, before)
		testutil.AssertEqual(t, board.Ply(), 0)
	}
}

func TestPerft_TerminalPositions(t *testing.T) {
	mate := mustBoard(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w - - 1 3")
	stale := mustBoard(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")

	testutil.AssertEqual(t, Perft(mate, 1), uint64(0))
	testutil.AssertEqual(t, Perft(mate, 3), uint64(0))
	testutil.AssertEqual(t, Perft(stale, 2), uint64(0))
}

func TestDivide(t *testing.T) {
	board := NewInitialBoard()
	divide := Divide(board, 2)

	testutil.AssertEqual(t, len(divide), 20)
	var total uint64
	for move, nodes := range divide {
		testutil.AssertEqual(t, nodes, uint64(20), "divide %s", move)
		total += nodes
	}
	testutil.AssertEqual(t, total, Perft(board, 2))
	testutil.AssertEqual(t, len(Divide(board, 0)), 0)
}

func TestDivide_SumsToPerft(t *testing.T) {
	board := mustBoard(t, "r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w - - 4 4")
	var total uint64
	for _, nodes := range Divide(board, 3) {
		total += nodes
	}
	testutil.AssertEqual(t, total, Perft(board, 3))
}
