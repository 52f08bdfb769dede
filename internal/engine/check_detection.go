package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

// Pin records a friendly piece that may only move along Dir, the ray from its
// king through the piece to the pinning enemy.
type Pin struct {
	Square chess.Square
	Dir    chess.Direction
}

// Check records an attacker of the king. Dir is the ray from the king to the
// attacker, or chess.NoDirection for a knight.
type Check struct {
	Attacker chess.Square
	Dir      chess.Direction
}

// ByKnight reports whether the check has no sliding direction.
func (c Check) ByKnight() bool {
	return c.Dir == chess.NoDirection
}

// Detection is the derived king-safety state of the side to move.
// It is recomputed on every query and never cached across moves.
type Detection struct {
	InCheck bool
	Pins    []Pin
	Checks  []Check
}

// DoubleCheck reports whether two or more pieces give check.
func (d Detection) DoubleCheck() bool {
	return len(d.Checks) > 1
}

// PinFor returns the pin on sq, if any.
func (d Detection) PinFor(sq chess.Square) (Pin, bool) {
	for _, p := range d.Pins {
		if p.Square == sq {
			return p, true
		}
	}
	return Pin{}, false
}

// Detect ray-casts from the tracked king square of the side to move and
// checks the knight offsets. The mover's own king is transparent to the ray
// walk, so a temporarily relocated king square is evaluated as if the king
// already stood there.
func Detect(board *chess.Board) Detection {
	colour := board.ToMove
	king := board.King(colour)
	ownKing := chess.MakeColouredPiece(colour, chess.King)

	var det Detection
	for _, dir := range chess.QueenDirections {
		var pin Pin
		pinned := false
		sq := king
		for dist := 1; ; dist++ {
			next, ok := sq.Step(dir)
			if !ok {
				break
			}
			sq = next
			piece := board.At(sq)
			if piece == chess.Empty || piece == ownKing {
				continue
			}
			if piece.Colour() == colour {
				if pinned {
					break // two friendly blockers
				}
				pin = Pin{Square: sq, Dir: dir}
				pinned = true
				continue
			}
			if attacksAlong(piece, dir, dist) {
				if pinned {
					det.Pins = append(det.Pins, pin)
				} else {
					det.Checks = append(det.Checks, Check{Attacker: sq, Dir: dir})
				}
			}
			break
		}
	}

	enemyKnight := chess.MakeColouredPiece(colour.Opposite(), chess.Knight)
	for _, off := range chess.KnightOffsets {
		sq, ok := king.Step(off)
		if !ok {
			continue
		}
		if board.At(sq) == enemyKnight {
			det.Checks = append(det.Checks, Check{Attacker: sq, Dir: chess.NoDirection})
		}
	}

	det.InCheck = len(det.Checks) > 0
	return det
}

// attacksAlong reports whether an enemy piece dist squares from the king in
// direction dir attacks the king along that ray.
func attacksAlong(attacker chess.Piece, dir chess.Direction, dist int) bool {
	switch attacker.Kind() {
	case chess.Rook:
		return dir.Orthogonal()
	case chess.Bishop:
		return dir.Diagonal()
	case chess.Queen:
		return true
	case chess.Pawn:
		// A pawn captures toward its forward row, so the king must lie on
		// that side of it.
		return dist == 1 && dir.Diagonal() && dir.DR == -attacker.Colour().Forward()
	case chess.King:
		return dist == 1
	}
	return false
}

// IsInCheck returns true if the side to move is in check.
func IsInCheck(board *chess.Board) bool {
	return Detect(board).InCheck
}

// IsSquareAttacked reports whether sq would be attacked if the king of the
// side to move stood on it. The tracked king square is restored before
// returning.
func IsSquareAttacked(board *chess.Board, sq chess.Square) bool {
	colour := board.ToMove
	saved := board.KingSquare[colour]
	board.KingSquare[colour] = sq
	defer func() { board.KingSquare[colour] = saved }()
	return Detect(board).InCheck
}
