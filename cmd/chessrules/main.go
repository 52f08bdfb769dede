// chessrules generates, counts and cross-checks legal chess moves.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lgbarn/chessrules-go/internal/config"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chessrules-go version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := applyFlags()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// Set up logging and output files
	closeLog := setupLogFile(cfg)
	defer closeLog()
	closeOutput := setupOutputFile(cfg)
	defer closeOutput()

	logger, err := cfg.Logger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if err := run(cfg, logger); err != nil {
		logger.WithError(err).Error("chessrules failed")
		closeOutput()
		closeLog()
		os.Exit(1)
	}
}

// setupLogFile redirects diagnostics to the -l file when given.
func setupLogFile(cfg *config.Config) func() {
	if *logFile == "" {
		return func() {}
	}
	file, err := os.Create(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
		os.Exit(1)
	}
	cfg.LogFile = file
	return func() { file.Close() }
}

// setupOutputFile redirects results to the -o file when given.
func setupOutputFile(cfg *config.Config) func() {
	if *outputFile == "" {
		return func() {}
	}
	file, err := os.Create(*outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	cfg.OutputFile = file
	return func() { file.Close() }
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Lists legal moves and game status for a position, counts the move tree,\n")
	fmt.Fprintf(os.Stderr, "or cross-checks the move generator against reference libraries.\n\n")
	fmt.Fprintf(os.Stderr, "Examples:\n")
	fmt.Fprintf(os.Stderr, "  %s -moves \"e2e4 e7e5\"\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  %s -perft 4 -divide\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  %s -verify goose,notnil -depth 3\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  %s -epd suite.epd -verify dragontooth -workers 4 -failfast\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}
