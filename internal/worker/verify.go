package worker

import (
	"github.com/lgbarn/chessrules-go/internal/crosscheck"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/hashing"
)

// VerifyFunc returns a ProcessFunc that loads each position into a fresh
// board and walks it with checker to depth. When seen is non-nil, positions
// already verified earlier in the batch are marked Duplicate and skipped.
func VerifyFunc(checker *crosscheck.Checker, depth int, seen *hashing.ThreadSafeDuplicateDetector) ProcessFunc {
	return func(item WorkItem) ProcessResult {
		result := ProcessResult{Position: item.Position, Index: item.Index}

		board, err := engine.NewBoardFromFEN(item.Position.FEN)
		if err != nil {
			result.Error = &errors.ParseError{
				Err:  err,
				File: item.Position.File,
				Line: item.Position.Line,
			}
			return result
		}
		if seen != nil && seen.CheckAndAdd(board) {
			result.Duplicate = true
			return result
		}

		result.Walks, result.Error = checker.Check(board, depth)
		return result
	}
}

// Items wraps positions as work items in input order.
func Items(positions []Position) []WorkItem {
	items := make([]WorkItem, len(positions))
	for i, p := range positions {
		items[i] = WorkItem{Position: p, Index: i}
	}
	return items
}
