package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/apex/log"

	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/crosscheck"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/hashing"
	"github.com/lgbarn/chessrules-go/internal/output"
	"github.com/lgbarn/chessrules-go/internal/worker"
)

// run performs the work selected by cfg. It returns an error wrapping
// ErrOracleMismatch when any oracle disagrees with the engine.
func run(cfg *config.Config, logger log.Interface) error {
	var checker *crosscheck.Checker
	if cfg.Verify.Enabled() {
		oracles, err := crosscheck.LookupAll(cfg.Verify.Oracles)
		if err != nil {
			return err
		}
		checker = crosscheck.NewChecker(oracles, logger)
	}

	w := output.NewResultWriter(cfg.OutputFile, cfg.Output)
	defer w.Flush()

	if cfg.Verify.EPDFile != "" {
		return runBatch(cfg, logger, checker, w)
	}
	return runPosition(cfg, logger, checker, w)
}

// setupGame loads the starting position and plays the configured moves.
func setupGame(cfg *config.Config, logger log.Interface) (*engine.Game, error) {
	var game *engine.Game
	if cfg.FEN == "" {
		game = engine.NewGame(engine.WithLogger(logger))
	} else {
		var err error
		game, err = engine.NewGameFromFEN(cfg.FEN, engine.WithLogger(logger))
		if err != nil {
			return nil, err
		}
	}

	for _, text := range cfg.Moves {
		if _, err := game.Play(text); err != nil {
			return nil, err
		}
	}
	logger.WithFields(log.Fields{
		"fen":    game.FEN(),
		"played": len(cfg.Moves),
	}).Info("position loaded")
	return game, nil
}

// runPosition reports on a single position.
func runPosition(cfg *config.Config, logger log.Interface, checker *crosscheck.Checker, w output.ResultWriter) error {
	game, err := setupGame(cfg, logger)
	if err != nil {
		return err
	}

	if err := w.WritePosition(output.NewPositionReport(game, cfg.Output.ListMoves)); err != nil {
		return errors.Wrap(err, "writing position")
	}

	if cfg.Perft.Depth > 0 {
		report := output.NewPerftReport(game.Board(), cfg.Perft.Depth, cfg.Perft.Divide)
		logger.WithFields(log.Fields{
			"depth": report.Depth,
			"nodes": report.Nodes,
		}).Info("perft complete")
		if err := w.WritePerft(report); err != nil {
			return errors.Wrap(err, "writing perft")
		}
	}

	if checker == nil {
		return nil
	}
	walks, err := checker.Check(game.Board(), cfg.Verify.Depth)
	if err != nil {
		return err
	}
	report := &output.VerifyReport{FEN: game.FEN(), Depth: cfg.Verify.Depth, Walks: walks}
	if err := w.WriteVerify(report); err != nil {
		return errors.Wrap(err, "writing verification")
	}
	if !report.OK() {
		return fmt.Errorf("%s: %w", report.FEN, errors.ErrOracleMismatch)
	}
	return nil
}

// runBatch verifies every position of the EPD file in parallel.
func runBatch(cfg *config.Config, logger log.Interface, checker *crosscheck.Checker, w output.ResultWriter) error {
	file, err := os.Open(cfg.Verify.EPDFile)
	if err != nil {
		return errors.Wrapf(err, "opening %s", cfg.Verify.EPDFile)
	}
	defer file.Close()

	positions, err := worker.ReadEPD(file, cfg.Verify.EPDFile)
	if err != nil {
		return err
	}

	var seen *hashing.ThreadSafeDuplicateDetector
	if cfg.Duplicate.Suppress {
		seen = hashing.NewThreadSafeDuplicateDetector(cfg.Duplicate.Capacity)
	}

	numWorkers := cfg.Verify.Workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	opts := []worker.PoolOption{worker.WithWorkers(numWorkers), worker.WithBufferSize(numWorkers * 2)}
	if cfg.Verify.FailFast {
		opts = append(opts, worker.StopWhen(func(r worker.ProcessResult) bool {
			return r.Error != nil || r.Mismatch()
		}))
	}
	pool := worker.NewPoolWithOptions(worker.VerifyFunc(checker, cfg.Verify.Depth, seen), opts...)

	logger.WithFields(log.Fields{
		"file":      cfg.Verify.EPDFile,
		"positions": len(positions),
		"workers":   pool.NumWorkers(),
		"failfast":  cfg.Verify.FailFast,
	}).Info("batch started")

	results := pool.Run(worker.Items(positions))
	if pool.IsStopped() {
		logger.Warn("batch stopped at first failure")
	}
	if seen != nil {
		ctx := logger.WithFields(log.Fields{
			"unique":  seen.UniqueCount(),
			"repeats": seen.DuplicateCount(),
		})
		if seen.IsFull() {
			ctx.Warn("duplicate table full")
		} else {
			ctx.Debug("duplicate table")
		}
	}

	report := output.NewBatchReport(checker.Oracles(), cfg.Verify.Depth, results)
	logger.WithFields(log.Fields{
		"verified":   report.Verified,
		"mismatches": report.Mismatches,
		"duplicates": report.Duplicates,
		"errors":     report.Errors,
		"skipped":    report.Skipped,
	}).Info("batch complete")

	if err := w.WriteBatch(report); err != nil {
		return errors.Wrap(err, "writing batch report")
	}
	return batchError(report, results)
}

// batchError summarises a failed batch, preferring mismatches over errors.
func batchError(report *output.BatchReport, results []worker.ProcessResult) error {
	if report.Mismatches > 0 {
		return fmt.Errorf("%d of %d positions: %w", report.Mismatches, report.Total, errors.ErrOracleMismatch)
	}
	for _, r := range results {
		if r.Error != nil {
			return fmt.Errorf("%d of %d positions failed, first: %w", report.Errors, report.Total, r.Error)
		}
	}
	return nil
}
