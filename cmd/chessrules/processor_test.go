package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/apex/log"
	"github.com/apex/log/handlers/memory"

	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/crosscheck"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/output"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

const kingsFEN = "4k3/8/8/8/8/8/8/4K3 w - - 0 1"

// runWith runs b's config and returns stdout, the log handler and the error.
func runWith(t *testing.T, b *config.ConfigBuilder) (string, *memory.Handler, error) {
	t.Helper()
	var out bytes.Buffer
	cfg := b.WithOutput(&out).Build()
	testutil.AssertNoError(t, cfg.Validate())

	handler := memory.New()
	err := run(cfg, &log.Logger{Handler: handler, Level: log.DebugLevel})
	return out.String(), handler, err
}

func messages(h *memory.Handler) []string {
	var msgs []string
	for _, e := range h.Entries {
		msgs = append(msgs, e.Message)
	}
	return msgs
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func TestRun_Position(t *testing.T) {
	out, handler, err := runWith(t, config.NewConfigBuilder().
		WithFEN(kingsFEN).
		WithMoves("e1d2").
		WithPerft(1, false))
	testutil.AssertNoError(t, err)

	want := "FEN: 4k3/8/8/8/8/8/3K4/8 b - - 0 1\n" +
		"Played: e1d2\n" +
		"Status: black to move, ongoing\n" +
		"Moves (5): e8d7 e8d8 e8e7 e8f7 e8f8\n" +
		"Perft 1: 5 nodes\n"
	testutil.AssertEqual(t, out, want)
	testutil.AssertTrue(t, contains(messages(handler), "position loaded"))
	testutil.AssertTrue(t, contains(messages(handler), "perft complete"))
}

func TestRun_DefaultStart(t *testing.T) {
	out, _, err := runWith(t, config.NewConfigBuilder().WithMoveList(false).WithPerft(3, false))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, out,
		"FEN: rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1\n"+
			"Status: white to move, ongoing\n"+
			"Perft 3: 8902 nodes\n")
}

func TestRun_Checkmate(t *testing.T) {
	out, handler, err := runWith(t, config.NewConfigBuilder().
		WithMoves("f2f3", "e7e5", "g2g4", "d8h4"))
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, strings.Contains(out, "Status: white to move, checkmate\n"), "status line")
	testutil.AssertTrue(t, contains(messages(handler), "game over"))
}

func TestRun_JSON(t *testing.T) {
	out, _, err := runWith(t, config.NewConfigBuilder().
		WithFEN(kingsFEN).
		WithJSONOutput(true).
		WithPerft(1, true))
	testutil.AssertNoError(t, err)

	dec := json.NewDecoder(strings.NewReader(out))
	var pos output.PositionReport
	testutil.AssertNoError(t, dec.Decode(&pos))
	testutil.AssertEqual(t, pos.Status, "ongoing")
	testutil.AssertEqual(t, pos.Moves, []string{"e1d1", "e1d2", "e1e2", "e1f1", "e1f2"})

	var perft output.PerftReport
	testutil.AssertNoError(t, dec.Decode(&perft))
	testutil.AssertEqual(t, perft.Nodes, uint64(5))
	testutil.AssertEqual(t, len(perft.Divide), 5)
}

func TestRun_IllegalMove(t *testing.T) {
	_, handler, err := runWith(t, config.NewConfigBuilder().WithMoves("e2e5"))
	testutil.AssertErrorIs(t, err, errors.ErrIllegalMove)
	testutil.AssertTrue(t, contains(messages(handler), "illegal move rejected"))
}

func TestRun_InvalidFEN(t *testing.T) {
	_, _, err := runWith(t, config.NewConfigBuilder().WithFEN("8/8/8/8/8/8/8/8 w - - 0 1"))
	testutil.AssertErrorIs(t, err, errors.ErrInvalidPosition)
}

func TestRun_UnknownOracle(t *testing.T) {
	_, _, err := runWith(t, config.NewConfigBuilder().WithOracles("stockfish"))
	testutil.AssertErrorIs(t, err, errors.ErrUnknownOracle)
}

func TestRun_Verify(t *testing.T) {
	out, _, err := runWith(t, config.NewConfigBuilder().
		WithFEN(kingsFEN).
		WithMoves("e1d2").
		WithMoveList(false).
		WithOracles("goose", "notnil").
		WithVerifyDepth(1))
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, strings.Contains(out, "goose: ok, 6 positions to depth 1 (0 skipped)\n"), out)
	testutil.AssertTrue(t, strings.Contains(out, "notnil: ok, 6 positions to depth 1 (0 skipped)\n"), out)
}

// wrongOracle claims the only legal move is a2a3.
type wrongOracle struct{}

func (wrongOracle) Name() string { return "wrong" }

func (wrongOracle) LegalMoves(string) ([]string, error) { return []string{"a2a3"}, nil }

func TestRunPosition_Mismatch(t *testing.T) {
	var out bytes.Buffer
	cfg := config.NewConfigBuilder().WithFEN(kingsFEN).WithOutput(&out).Build()
	logger := &log.Logger{Handler: memory.New(), Level: log.DebugLevel}
	checker := crosscheck.NewChecker([]crosscheck.Oracle{wrongOracle{}}, logger)

	err := runPosition(cfg, logger, checker, output.NewResultWriter(&out, cfg.Output))
	testutil.AssertErrorIs(t, err, errors.ErrOracleMismatch)
	testutil.AssertTrue(t, strings.Contains(out.String(), "wrong: mismatch at "+kingsFEN+"\n"), out.String())
	testutil.AssertTrue(t, strings.Contains(out.String(), "  missing: a2a3\n"), out.String())
}

func writeEPD(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "suite.epd")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func TestRun_Batch(t *testing.T) {
	path := writeEPD(t, `rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - id "start";
4k3/8/8/8/8/8/8/4K3 w - - 0 1
4k3/8/8/8/8/8/8/4K3 w - - 5 30
`)
	out, handler, err := runWith(t, config.NewConfigBuilder().
		WithEPDFile(path).
		WithOracles("dragontooth").
		WithVerifyDepth(1).
		WithWorkers(1))
	testutil.AssertNoError(t, err)

	want := path + ":1 start: ok\n" +
		path + ":2: ok\n" +
		path + ":3: duplicate\n" +
		"3 positions: 2 ok, 0 mismatch, 1 duplicate, 0 error\n"
	testutil.AssertEqual(t, out, want)
	testutil.AssertTrue(t, contains(messages(handler), "batch complete"))

	for _, e := range handler.Entries {
		if e.Message == "duplicate table" {
			testutil.AssertEqual(t, e.Fields.Get("unique"), 2)
			testutil.AssertEqual(t, e.Fields.Get("repeats"), 1)
		}
	}
	testutil.AssertTrue(t, contains(messages(handler), "duplicate table"), messages(handler))
}

func TestRun_BatchDuplicateTableFull(t *testing.T) {
	path := writeEPD(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1\n4k3/8/8/8/8/8/8/3K4 w - - 0 1\n")
	_, handler, err := runWith(t, config.NewConfigBuilder().
		WithEPDFile(path).
		WithOracles("dragontooth").
		WithDuplicateCapacity(1).
		WithWorkers(1))
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, contains(messages(handler), "duplicate table full"), messages(handler))
}

func TestRun_BatchNoDedupe(t *testing.T) {
	path := writeEPD(t, kingsFEN+"\n"+kingsFEN+"\n")
	out, _, err := runWith(t, config.NewConfigBuilder().
		WithEPDFile(path).
		WithOracles("notnil").
		WithDuplicateSuppression(false).
		WithJSONOutput(true))
	testutil.AssertNoError(t, err)

	var report output.BatchReport
	testutil.AssertNoError(t, json.Unmarshal([]byte(out), &report))
	testutil.AssertEqual(t, report.Verified, 2)
	testutil.AssertEqual(t, report.Duplicates, 0)
	testutil.AssertEqual(t, report.Oracles, []string{"notnil"})
}

func TestRunBatch_FailFast(t *testing.T) {
	path := writeEPD(t, strings.Repeat(kingsFEN+"\n", 40))
	var out bytes.Buffer
	cfg := config.NewConfigBuilder().
		WithOracles("wrong").
		WithEPDFile(path).
		WithWorkers(1).
		WithFailFast(true).
		WithDuplicateSuppression(false).
		WithOutput(&out).
		Build()
	testutil.AssertNoError(t, cfg.Validate())
	handler := memory.New()
	logger := &log.Logger{Handler: handler, Level: log.DebugLevel}
	checker := crosscheck.NewChecker([]crosscheck.Oracle{wrongOracle{}}, logger)

	err := runBatch(cfg, logger, checker, output.NewResultWriter(&out, cfg.Output))
	testutil.AssertErrorIs(t, err, errors.ErrOracleMismatch)
	testutil.AssertTrue(t, contains(messages(handler), "batch stopped at first failure"), messages(handler))
	testutil.AssertTrue(t, strings.HasPrefix(out.String(), path+":1: mismatch\n"), out.String())
	testutil.AssertTrue(t, strings.Contains(out.String(), path+":40: skipped\n"), out.String())
	testutil.AssertTrue(t, strings.HasSuffix(out.String(), " skipped\n"), out.String())
}

func TestRunBatch_NoFailFast(t *testing.T) {
	path := writeEPD(t, strings.Repeat(kingsFEN+"\n", 5))
	var out bytes.Buffer
	cfg := config.NewConfigBuilder().
		WithOracles("wrong").
		WithEPDFile(path).
		WithWorkers(2).
		WithDuplicateSuppression(false).
		WithOutput(&out).
		Build()
	handler := memory.New()
	logger := &log.Logger{Handler: handler, Level: log.DebugLevel}
	checker := crosscheck.NewChecker([]crosscheck.Oracle{wrongOracle{}}, logger)

	err := runBatch(cfg, logger, checker, output.NewResultWriter(&out, cfg.Output))
	testutil.AssertErrorIs(t, err, errors.ErrOracleMismatch)
	testutil.AssertFalse(t, contains(messages(handler), "batch stopped at first failure"))
	testutil.AssertTrue(t, strings.HasSuffix(out.String(), "5 positions: 0 ok, 5 mismatch, 0 duplicate, 0 error\n"), out.String())
}

func TestRun_BatchErrors(t *testing.T) {
	path := writeEPD(t, "8/8/8/8/8/8/8/8 w - - 0 1\n")
	out, _, err := runWith(t, config.NewConfigBuilder().
		WithEPDFile(path).
		WithOracles("goose"))
	testutil.AssertErrorIs(t, err, errors.ErrInvalidPosition)
	testutil.AssertTrue(t, strings.HasSuffix(out, "1 positions: 0 ok, 0 mismatch, 0 duplicate, 1 error\n"), out)
}

func TestRun_BatchMissingFile(t *testing.T) {
	_, _, err := runWith(t, config.NewConfigBuilder().
		WithEPDFile(filepath.Join(t.TempDir(), "missing.epd")).
		WithOracles("goose"))
	testutil.AssertErrorIs(t, err, os.ErrNotExist)
}

func TestRun_BatchMalformed(t *testing.T) {
	path := writeEPD(t, "4k3/8/8/8/8/8/8/4K3 w\n")
	_, _, err := runWith(t, config.NewConfigBuilder().
		WithEPDFile(path).
		WithOracles("goose"))
	testutil.AssertErrorIs(t, err, errors.ErrInvalidFEN)
}
