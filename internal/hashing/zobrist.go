package hashing

import (
	"math/rand"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// numPieceCodes covers every packed chess.Piece value.
const numPieceCodes = int(chess.NumKinds) << chess.PieceShift

var (
	zobristPiece [numPieceCodes][chess.BoardSize * chess.BoardSize]uint64
	zobristSide  uint64 // XORed in when Black is to move
)

func init() {
	// Fixed seed so keys are stable across runs.
	rnd := rand.New(rand.NewSource(0x5EED))
	for p := 0; p < numPieceCodes; p++ {
		for sq := range zobristPiece[p] {
			zobristPiece[p][sq] = rnd.Uint64()
		}
	}
	zobristSide = rnd.Uint64()
}

func squareIndex(sq chess.Square) int {
	return sq.Row*chess.BoardSize + sq.Col
}

// Zobrist computes the position key over piece placement and side to move.
func Zobrist(board *chess.Board) uint64 {
	var key uint64
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			if p := board.Grid[row][col]; p != chess.Empty {
				key ^= zobristPiece[p][row*chess.BoardSize+col]
			}
		}
	}
	if board.ToMove == chess.Black {
		key ^= zobristSide
	}
	return key
}

// UpdateZobrist returns the key after m is played from the position with key.
// It equals Zobrist of the resulting board.
func UpdateZobrist(key uint64, m chess.Move) uint64 {
	from, to := squareIndex(m.From), squareIndex(m.To)
	key ^= zobristPiece[m.Moved][from]
	if m.Captured != chess.Empty {
		key ^= zobristPiece[m.Captured][to]
	}
	key ^= zobristPiece[m.Moved][to]
	return key ^ zobristSide
}

// WeakHash is a cheap secondary checksum of the placement, independent of the
// Zobrist keys.
func WeakHash(board *chess.Board) uint32 {
	var sum uint32
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			if p := board.Grid[row][col]; p != chess.Empty {
				sum += uint32(p) * uint32(row*chess.BoardSize+col+1) * 2654435761
			}
		}
	}
	return sum
}
