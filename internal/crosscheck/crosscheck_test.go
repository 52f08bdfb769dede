package crosscheck

import (
	"fmt"
	"testing"

	"github.com/apex/log"
	"github.com/apex/log/handlers/memory"
	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

// stubOracle answers every position with a fixed move list.
type stubOracle struct {
	moves []string
	err   error
}

func (stubOracle) Name() string { return "stub" }

func (s stubOracle) LegalMoves(string) ([]string, error) {
	return s.moves, s.err
}

func mustBoard(t *testing.T, fen string) *chess.Board {
	t.Helper()
	board, err := engine.NewBoardFromFEN(fen)
	if err != nil {
		t.Fatalf("NewBoardFromFEN(%q) error: %v", fen, err)
	}
	return board
}

var initialMoves = []string{
	"a2a3", "a2a4", "b2b3", "b2b4", "c2c3", "c2c4", "d2d3", "d2d4",
	"e2e3", "e2e4", "f2f3", "f2f4", "g2g3", "g2g4", "h2h3", "h2h4",
	"b1a3", "b1c3", "g1f3", "g1h3",
}

func TestNamesAndLookup(t *testing.T) {
	testutil.AssertEqual(t, Names(), []string{"dragontooth", "goose", "notnil"})

	for _, name := range Names() {
		o, err := Lookup(name)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, o.Name(), name)
	}

	o, err := Lookup(" Goose ")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, o.Name(), "goose")

	_, err = Lookup("stockfish")
	testutil.AssertErrorIs(t, err, errors.ErrUnknownOracle)

	_, err = LookupAll([]string{"notnil", "crafty"})
	testutil.AssertErrorIs(t, err, errors.ErrUnknownOracle)

	all, err := LookupAll(Names())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(all), 3)
}

func TestCompare_Stub(t *testing.T) {
	tests := []struct {
		name        string
		fen         string
		oracle      []string
		wantMissing []string
		wantExtra   []string
	}{
		{
			name:   "agreement",
			fen:    engine.InitialFEN,
			oracle: initialMoves,
		},
		{
			name:        "oracle has a move the engine lacks",
			fen:         engine.InitialFEN,
			oracle:      append(append([]string{}, initialMoves...), "e2e5"),
			wantMissing: []string{"e2e5"},
		},
		{
			name:      "engine has moves the oracle lacks",
			fen:       engine.InitialFEN,
			oracle:    initialMoves[2:],
			wantExtra: []string{"a2a3", "a2a4"},
		},
		{
			name:   "castling dropped",
			fen:    "4k3/8/8/8/8/8/8/4K2R w K - 0 1",
			oracle: kingAndRookMoves("e1g1"),
		},
		{
			name:   "promotions collapsed",
			fen:    "k7/4P3/8/8/8/8/8/4K3 w - - 0 1",
			oracle: []string{"e7e8q", "e7e8r", "e7e8b", "e7e8n", "e1d1", "e1d2", "e1e2", "e1f1", "e1f2"},
		},
		{
			name:   "en passant dropped",
			fen:    "4k3/8/8/3pP3/8/8/8/4K3 w - - 0 1",
			oracle: []string{"e5e6", "e5d6", "e1d1", "e1d2", "e1e2", "e1f1", "e1f2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Compare(mustBoard(t, tt.fen), stubOracle{moves: tt.oracle})
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, result.Missing, tt.wantMissing)
			testutil.AssertEqual(t, result.Extra, tt.wantExtra)
			testutil.AssertEqual(t, result.OK(), tt.wantMissing == nil && tt.wantExtra == nil)
			testutil.AssertEqual(t, result.Oracle, "stub")
		})
	}
}

// kingAndRookMoves lists the plain moves of the K+R vs K position plus extra.
func kingAndRookMoves(extra ...string) []string {
	moves := []string{
		"e1d1", "e1d2", "e1e2", "e1f1", "e1f2",
		"h1f1", "h1g1", "h1h2", "h1h3", "h1h4", "h1h5", "h1h6", "h1h7", "h1h8",
	}
	return append(moves, extra...)
}

func TestCompare_Errors(t *testing.T) {
	board := engine.NewInitialBoard()

	_, err := Compare(board, stubOracle{err: errors.ErrInvalidFEN})
	testutil.AssertErrorIs(t, err, errors.ErrInvalidFEN)

	_, err = Compare(board, stubOracle{moves: []string{"e2"}})
	testutil.AssertErrorIs(t, err, errors.ErrIllegalMove)

	_, err = Compare(board, stubOracle{moves: []string{"z9e4"}})
	testutil.AssertErrorIs(t, err, errors.ErrOutOfBounds)
}

func TestCompare_SkipsPawnOnLastRank(t *testing.T) {
	board := mustBoard(t, "4P2k/8/8/8/8/8/8/4K3 w - - 0 1")
	result, err := Compare(board, stubOracle{err: fmt.Errorf("must not be called")})
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, result.Skipped)
	testutil.AssertTrue(t, result.OK())
}

func TestResult_Err(t *testing.T) {
	testutil.AssertNoError(t, Result{}.Err())
	err := Result{Oracle: "stub", Missing: []string{"e2e5"}}.Err()
	testutil.AssertErrorIs(t, err, errors.ErrOracleMismatch)
}

func TestWalk_StopsAtFirstMismatch(t *testing.T) {
	board := engine.NewInitialBoard()
	before := board.Copy()

	// The root agrees; every reply position disagrees.
	walk, err := Walk(board, stubOracle{moves: initialMoves}, 2)
	testutil.AssertNoError(t, err)
	testutil.AssertFalse(t, walk.OK())
	testutil.AssertEqual(t, walk.Positions, 2)
	testutil.AssertTrue(t, walk.Mismatch != nil && len(walk.Mismatch.Missing) > 0)
	testutil.AssertSameState(t, board, before)
	testutil.AssertEqual(t, board.Ply(), 0)
}

func TestWalk_RootOnly(t *testing.T) {
	walk, err := Walk(engine.NewInitialBoard(), stubOracle{moves: initialMoves}, 0)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, walk.OK())
	testutil.AssertEqual(t, walk.Positions, 1)
}

func TestOracles_AgreeWithEngine(t *testing.T) {
	fens := []string{
		engine.InitialFEN,
		"r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w - - 4 4",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w - - 0 1",
		"4k3/8/8/8/4r3/8/8/2B1K3 w - - 0 1",
		"4k3/8/8/8/8/R2n4/8/4K2r w - - 0 1",
		"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1",
		"k7/4P3/8/8/8/8/8/4K3 w - - 0 1",
	}
	for _, name := range Names() {
		oracle, err := Lookup(name)
		testutil.AssertNoError(t, err)
		for _, fen := range fens {
			result, err := Compare(mustBoard(t, fen), oracle)
			testutil.AssertNoError(t, err, "%s on %s", name, fen)
			if !result.OK() {
				t.Errorf("%s on %s: missing %v extra %v", name, fen, result.Missing, result.Extra)
			}
		}
	}
}

func TestOracles_WalkFromStart(t *testing.T) {
	depth := 2
	if testing.Short() {
		depth = 1
	}
	for _, name := range Names() {
		oracle, _ := Lookup(name)
		walk, err := Walk(engine.NewInitialBoard(), oracle, depth)
		testutil.AssertNoError(t, err)
		if !walk.OK() {
			t.Errorf("%s mismatch: %+v", name, *walk.Mismatch)
		}
	}
}

func TestChecker_LogsMismatch(t *testing.T) {
	handler := memory.New()
	logger := &log.Logger{Handler: handler, Level: log.DebugLevel}
	good, _ := Lookup("goose")
	checker := NewChecker([]Oracle{good, stubOracle{moves: []string{"e2e4"}}}, logger)

	testutil.AssertEqual(t, checker.Oracles(), []string{"goose", "stub"})

	results, err := checker.Check(engine.NewInitialBoard(), 1)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(results), 2)
	testutil.AssertTrue(t, results[0].OK())
	testutil.AssertFalse(t, results[1].OK())

	var messages []string
	for _, e := range handler.Entries {
		messages = append(messages, e.Message)
	}
	if diff := cmp.Diff([]string{"move sets agree", "move set mismatch"}, messages); diff != "" {
		t.Errorf("log messages (-want +got):\n%s", diff)
	}
	testutil.AssertEqual(t, handler.Entries[1].Fields.Get("oracle"), "stub")
}

func TestChecker_OracleError(t *testing.T) {
	handler := memory.New()
	logger := &log.Logger{Handler: handler, Level: log.InfoLevel}
	checker := NewChecker([]Oracle{stubOracle{err: errors.ErrInvalidFEN}}, logger)

	_, err := checker.Check(engine.NewInitialBoard(), 0)
	testutil.AssertErrorIs(t, err, errors.ErrInvalidFEN)
	testutil.AssertEqual(t, handler.Entries[0].Level, log.ErrorLevel)
}
