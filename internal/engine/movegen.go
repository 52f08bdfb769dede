// Package engine provides move generation, check and pin detection, and
// legal move filtering for standard chess.
package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

// PseudoMoves returns every geometrically reachable move for the side to move,
// ignoring king safety. Moves are ordered row-major by origin square and then
// by the piece generator's internal order.
func PseudoMoves(board *chess.Board) []chess.Move {
	colour := board.ToMove
	moves := make([]chess.Move, 0, 64)
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			piece := board.Grid[row][col]
			if !piece.Is(colour) {
				continue
			}
			moves = appendPieceMoves(board, chess.Sq(row, col), piece, moves)
		}
	}
	return moves
}

// appendPieceMoves dispatches on the piece kind.
func appendPieceMoves(board *chess.Board, from chess.Square, piece chess.Piece, moves []chess.Move) []chess.Move {
	switch piece.Kind() {
	case chess.Pawn:
		return appendPawnMoves(board, from, piece, moves)
	case chess.Knight:
		return appendStepMoves(board, from, piece, chess.KnightOffsets, moves)
	case chess.Bishop:
		return appendSlideMoves(board, from, piece, chess.BishopDirections, moves)
	case chess.Rook:
		return appendSlideMoves(board, from, piece, chess.RookDirections, moves)
	case chess.Queen:
		return appendSlideMoves(board, from, piece, chess.QueenDirections, moves)
	case chess.King:
		return appendStepMoves(board, from, piece, chess.QueenDirections, moves)
	}
	return moves
}

// appendPawnMoves generates pushes, the double push from the start row, and
// diagonal captures onto enemy pieces.
func appendPawnMoves(board *chess.Board, from chess.Square, pawn chess.Piece, moves []chess.Move) []chess.Move {
	colour := pawn.Colour()
	dir := colour.Forward()

	if to, ok := from.Offset(dir, 0); ok && board.At(to) == chess.Empty {
		moves = append(moves, chess.Move{From: from, To: to, Moved: pawn})
		if from.Row == colour.PawnStartRow() {
			if to2, ok := from.Offset(2*dir, 0); ok && board.At(to2) == chess.Empty {
				moves = append(moves, chess.Move{From: from, To: to2, Moved: pawn})
			}
		}
	}

	for _, dc := range [2]int{-1, 1} {
		to, ok := from.Offset(dir, dc)
		if !ok {
			continue
		}
		if target := board.At(to); target.Is(colour.Opposite()) {
			moves = append(moves, chess.Move{From: from, To: to, Moved: pawn, Captured: target})
		}
	}
	return moves
}

// appendStepMoves generates single-step moves for knights and kings.
func appendStepMoves(board *chess.Board, from chess.Square, piece chess.Piece, offsets []chess.Direction, moves []chess.Move) []chess.Move {
	colour := piece.Colour()
	for _, off := range offsets {
		to, ok := from.Step(off)
		if !ok {
			continue
		}
		target := board.At(to)
		if target.Is(colour) {
			continue
		}
		moves = append(moves, chess.Move{From: from, To: to, Moved: piece, Captured: target})
	}
	return moves
}

// appendSlideMoves walks each ray until the edge, stopping on (and including)
// an enemy piece or before a friendly one.
func appendSlideMoves(board *chess.Board, from chess.Square, piece chess.Piece, dirs []chess.Direction, moves []chess.Move) []chess.Move {
	colour := piece.Colour()
	for _, dir := range dirs {
		to := from
		for {
			next, ok := to.Step(dir)
			if !ok {
				break
			}
			to = next
			target := board.At(to)
			if target == chess.Empty {
				moves = append(moves, chess.Move{From: from, To: to, Moved: piece})
				continue
			}
			if !target.Is(colour) {
				moves = append(moves, chess.Move{From: from, To: to, Moved: piece, Captured: target})
			}
			break
		}
	}
	return moves
}
