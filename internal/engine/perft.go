package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

// Perft counts the leaf nodes of the legal move tree to the given depth.
// The board is restored before returning.
func Perft(board *chess.Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves, _ := LegalMoves(board)
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		board.Apply(m)
		nodes += Perft(board, depth-1)
		board.Undo()
	}
	return nodes
}

// Divide returns the perft count below each root move, keyed by coordinate
// notation.
func Divide(board *chess.Board, depth int) map[string]uint64 {
	result := make(map[string]uint64)
	if depth <= 0 {
		return result
	}
	moves, _ := LegalMoves(board)
	for _, m := range moves {
		board.Apply(m)
		result[m.Notation()] = Perft(board, depth-1)
		board.Undo()
	}
	return result
}
