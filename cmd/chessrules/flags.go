// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/config"
)

var (
	// Position options
	fenFlag   = flag.String("fen", "", "Starting position in FEN (default: standard start)")
	movesFlag = flag.String("moves", "", "Space-separated coordinate moves to play first, e.g. \"e2e4 e7e5\"")

	// Output options
	outputFile = flag.String("o", "", "Output file (default: stdout)")
	listMoves  = flag.Bool("list", true, "List the legal moves of the final position")
	showBoard  = flag.Bool("board", false, "Print a board diagram before text output")
	jsonOutput = flag.Bool("json", false, "Output in JSON format")
	indentJSON = flag.Bool("indent", false, "Pretty-print JSON output")

	// Perft options
	perftDepth = flag.Int("perft", 0, "Count the move tree to this depth")
	divide     = flag.Bool("divide", false, "Break the perft count down by root move")

	// Verification options
	verify      = flag.String("verify", "", "Cross-check against these oracles (comma-separated: dragontooth, goose, notnil)")
	verifyDepth = flag.Int("depth", 0, "Depth of the move tree walked during verification")
	epdFile     = flag.String("epd", "", "Verify every position of this EPD or FEN file")
	workers     = flag.Int("workers", 0, "Number of worker threads (0 = auto-detect based on CPU cores)")
	failFast    = flag.Bool("failfast", false, "Stop a batch at the first mismatch or error")

	// Duplicate detection
	noDedupe          = flag.Bool("nodedupe", false, "Verify repeated batch positions again")
	duplicateCapacity = flag.Int("duplicate-capacity", 0, "Maximum duplicate hash table entries (0 = unlimited)")

	// Logging
	logFile   = flag.String("l", "", "Write diagnostics to log file")
	logLevel  = flag.String("log-level", "warn", "Log level: debug, info, warn, error")
	logFormat = flag.String("log-format", config.LogFormatCLI, "Log format: cli, text, json, discard")

	// Other options
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags builds the configuration from command-line flags.
func applyFlags() *config.Config {
	b := config.NewConfigBuilder().
		WithFEN(*fenFlag).
		WithMoves(strings.Fields(*movesFlag)...)

	applyOutputFlags(b)
	applyPerftFlags(b)
	applyVerifyFlags(b)
	applyDuplicateFlags(b)
	applyLogFlags(b)

	return b.Build()
}

// applyOutputFlags configures output format and content.
func applyOutputFlags(b *config.ConfigBuilder) {
	b.WithJSONOutput(*jsonOutput).
		WithIndent(*indentJSON).
		WithMoveList(*listMoves).
		WithBoard(*showBoard)
}

// applyPerftFlags configures move-tree counting.
func applyPerftFlags(b *config.ConfigBuilder) {
	b.WithPerft(*perftDepth, *divide)
}

// applyVerifyFlags configures oracle cross-checking.
func applyVerifyFlags(b *config.ConfigBuilder) {
	b.WithOracles(splitList(*verify)...).
		WithVerifyDepth(*verifyDepth).
		WithEPDFile(*epdFile).
		WithWorkers(*workers).
		WithFailFast(*failFast)
}

// applyDuplicateFlags configures repeated-position detection.
func applyDuplicateFlags(b *config.ConfigBuilder) {
	b.WithDuplicateSuppression(!*noDedupe).
		WithDuplicateCapacity(*duplicateCapacity)
}

// applyLogFlags configures diagnostics.
func applyLogFlags(b *config.ConfigBuilder) {
	b.WithLogLevel(*logLevel).
		WithLogFormat(*logFormat)
}

// splitList splits a comma-separated list, dropping empty items.
func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
