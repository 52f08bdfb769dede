package engine

import (
	"testing"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

// mustBoard parses a FEN or fails the test.
func mustBoard(t *testing.T, fen string) *chess.Board {
	t.Helper()
	board, err := NewBoardFromFEN(fen)
	if err != nil {
		t.Fatalf("NewBoardFromFEN(%q) error: %v", fen, err)
	}
	return board
}

func TestLegalMoves_InitialPosition(t *testing.T) {
	board := NewInitialBoard()
	moves, status := LegalMoves(board)

	testutil.AssertMoves(t, moves,
		"a2a3", "a2a4", "b2b3", "b2b4", "c2c3", "c2c4", "d2d3", "d2d4",
		"e2e3", "e2e4", "f2f3", "f2f4", "g2g3", "g2g4", "h2h3", "h2h4",
		"b1a3", "b1c3", "g1f3", "g1h3",
	)
	testutil.AssertEqual(t, status, Status{})
}

func TestLegalMoves_Positions(t *testing.T) {
	tests := []struct {
		name   string
		fen    string
		want   []string
		status Status
	}{
		{
			name: "rook pinned on file keeps to the pin axis",
			fen:  "4k3/4r3/8/8/8/8/4R3/4K3 w - - 0 1",
			want: []string{
				"e2e3", "e2e4", "e2e5", "e2e6", "e2e7",
				"e1d1", "e1d2", "e1f1", "e1f2",
			},
		},
		{
			name: "queen pinned on diagonal slides along it",
			fen:  "4k3/8/8/8/7b/8/5Q2/4K3 w - - 0 1",
			want: []string{"f2g3", "f2h4", "e1d1", "e1d2", "e1e2", "e1f1"},
		},
		{
			name:   "knight check resolved only by capture or king move",
			fen:    "4k3/8/8/8/8/3n4/8/3RK3 w - - 0 1",
			want:   []string{"d1d3", "e1d2", "e1e2", "e1f1"},
			status: Status{InCheck: true},
		},
		{
			name:   "king may not retreat along the checking ray",
			fen:    "4k3/8/8/8/4r3/8/8/4K3 w - - 0 1",
			want:   []string{"e1d1", "e1d2", "e1f1", "e1f2"},
			status: Status{InCheck: true},
		},
		{
			name:   "single slider check can be blocked",
			fen:    "4k3/8/8/8/4r3/8/8/2B1K3 w - - 0 1",
			want:   []string{"c1e3", "e1d1", "e1d2", "e1f1", "e1f2"},
			status: Status{InCheck: true},
		},
		{
			name:   "double check allows only king moves",
			fen:    "4k3/8/8/8/8/R2n4/8/4K2r w - - 0 1",
			want:   []string{"e1d2", "e1e2"},
			status: Status{InCheck: true},
		},
		{
			name:   "pawn check and king capture",
			fen:    "4k3/8/8/8/8/8/3p4/4K3 w - - 0 1",
			want:   []string{"e1d1", "e1d2", "e1e2", "e1f1", "e1f2"},
			status: Status{InCheck: true},
		},
		{
			name:   "king cannot capture a defended piece",
			fen:    "4k3/8/8/8/8/4p3/3p4/4K3 w - - 0 1",
			want:   []string{"e1d1", "e1e2", "e1f1"},
			status: Status{InCheck: true},
		},
		{
			name: "pawn on the last rank has no moves",
			fen:  "P3k3/8/8/8/8/8/8/4K3 w - - 0 1",
			want: []string{"e1d1", "e1d2", "e1e2", "e1f1", "e1f2"},
		},
		{
			name:   "fool's mate",
			fen:    "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w - - 1 3",
			want:   nil,
			status: Status{InCheck: true, Checkmate: true},
		},
		{
			name:   "stalemate",
			fen:    "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1",
			want:   nil,
			status: Status{Stalemate: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := mustBoard(t, tt.fen)
			moves, status := LegalMoves(board)
			testutil.AssertMoves(t, moves, tt.want...)
			testutil.AssertEqual(t, status, tt.status)
		})
	}
}

func TestLegalMoves_LeavesBoardUntouched(t *testing.T) {
	board := mustBoard(t, "4k3/8/8/8/4r3/8/8/2B1K3 w - - 0 1")
	before := board.Copy()

	LegalMoves(board)

	testutil.AssertSameState(t, board, before)
	testutil.AssertEqual(t, board.Ply(), 0)
}

func TestLegalMoves_NeverLeaveKingInCheck(t *testing.T) {
	fens := []string{
		InitialFEN,
		"r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w - - 4 4",
		"4k3/8/8/8/4r3/8/8/2B1K3 w - - 0 1",
		"4k3/8/8/8/7b/8/5Q2/4K3 w - - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w - - 0 1",
	}
	for _, fen := range fens {
		board := mustBoard(t, fen)
		moves, _ := LegalMoves(board)
		for _, m := range moves {
			board.Apply(m)
			// After the move it is the opponent's turn; flip back to inspect the mover.
			board.ToMove = board.ToMove.Opposite()
			if IsInCheck(board) {
				t.Errorf("%s: move %s leaves own king in check", fen, m)
			}
			board.ToMove = board.ToMove.Opposite()
			board.Undo()
		}
	}
}

func TestLegalMoves_SubsetOfPseudoMoves(t *testing.T) {
	board := mustBoard(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w - - 0 1")
	pseudo := make(map[int]bool)
	for _, m := range PseudoMoves(board) {
		pseudo[m.ID()] = true
	}
	legal, _ := LegalMoves(board)
	for _, m := range legal {
		testutil.AssertTrue(t, pseudo[m.ID()], "legal move %s not generated as pseudo move", m)
	}
}

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{Status{}, "ongoing"},
		{Status{InCheck: true}, "check"},
		{Status{InCheck: true, Checkmate: true}, "checkmate"},
		{Status{Stalemate: true}, "stalemate"},
	}
	for _, tt := range tests {
		testutil.AssertEqual(t, tt.status.String(), tt.want)
		testutil.AssertEqual(t, tt.status.Terminal(), tt.want == "checkmate" || tt.want == "stalemate")
	}
}

func TestGameStateHelpers(t *testing.T) {
	mate := mustBoard(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w - - 1 3")
	stale := mustBoard(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	initial := NewInitialBoard()

	testutil.AssertTrue(t, IsCheckmate(mate))
	testutil.AssertFalse(t, IsStalemate(mate))
	testutil.AssertFalse(t, HasLegalMoves(mate))

	testutil.AssertTrue(t, IsStalemate(stale))
	testutil.AssertFalse(t, IsCheckmate(stale))
	testutil.AssertFalse(t, IsInCheck(stale))

	testutil.AssertTrue(t, HasLegalMoves(initial))
	testutil.AssertFalse(t, IsCheckmate(initial))
	testutil.AssertFalse(t, IsStalemate(initial))
}
