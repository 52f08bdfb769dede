package chess

import (
	"fmt"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Constants for board dimensions and notation.
const (
	BoardSize = 8

	RankBase = '1'
	ColBase  = 'a'
)

// Square addresses a board cell by array coordinates.
// Row 0 is Black's home rank; Col 0 is the a-file.
type Square struct {
	Row int
	Col int
}

// Sq is shorthand for Square{Row: row, Col: col}.
func Sq(row, col int) Square {
	return Square{Row: row, Col: col}
}

// Valid reports whether the square lies on the board.
func (s Square) Valid() bool {
	return s.Row >= 0 && s.Row < BoardSize && s.Col >= 0 && s.Col < BoardSize
}

// Offset returns the square shifted by (dr, dc) and whether it is on the board.
func (s Square) Offset(dr, dc int) (Square, bool) {
	n := Square{Row: s.Row + dr, Col: s.Col + dc}
	return n, n.Valid()
}

// Step returns the neighbouring square in direction d and whether it is on the board.
func (s Square) Step(d Direction) (Square, bool) {
	return s.Offset(d.DR, d.DC)
}

// File returns the notation file letter for the square's column.
func (s Square) File() byte {
	return byte(ColBase + s.Col)
}

// Rank returns the notation rank digit for the square's row.
func (s Square) Rank() byte {
	return byte(RankBase + (BoardSize - 1 - s.Row))
}

// String returns algebraic notation ("e4"), or the raw coordinates when off the board.
func (s Square) String() string {
	if !s.Valid() {
		return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
	}
	return string([]byte{s.File(), s.Rank()})
}

// ParseSquare converts algebraic notation such as "e4" into a Square.
func ParseSquare(text string) (Square, error) {
	if len(text) != 2 {
		return Square{}, errors.Wrapf(errors.ErrOutOfBounds, "square %q", text)
	}
	col := int(text[0]) - ColBase
	row := BoardSize - 1 - (int(text[1]) - RankBase)
	sq := Square{Row: row, Col: col}
	if !sq.Valid() {
		return Square{}, errors.Wrapf(errors.ErrOutOfBounds, "square %q", text)
	}
	return sq, nil
}

// Direction is a unit step on the board.
type Direction struct {
	DR int
	DC int
}

// NoDirection marks a check delivered by a knight, which has no ray.
var NoDirection = Direction{}

// Ray directions. Orthogonal first, then diagonal.
var (
	Up        = Direction{-1, 0}
	Left      = Direction{0, -1}
	Down      = Direction{1, 0}
	Right     = Direction{0, 1}
	UpLeft    = Direction{-1, -1}
	UpRight   = Direction{-1, 1}
	DownLeft  = Direction{1, -1}
	DownRight = Direction{1, 1}
)

// RookDirections are the four orthogonal rays.
var RookDirections = []Direction{Up, Left, Down, Right}

// BishopDirections are the four diagonal rays.
var BishopDirections = []Direction{UpLeft, UpRight, DownLeft, DownRight}

// QueenDirections are all eight rays.
var QueenDirections = []Direction{Up, Left, Down, Right, UpLeft, UpRight, DownLeft, DownRight}

// KnightOffsets are the eight L-shaped jumps.
var KnightOffsets = []Direction{
	{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
	{1, -2}, {1, 2}, {2, -1}, {2, 1},
}

// Diagonal reports whether d is one of the four diagonal rays.
func (d Direction) Diagonal() bool {
	return d.DR != 0 && d.DC != 0
}

// Orthogonal reports whether d is one of the four orthogonal rays.
func (d Direction) Orthogonal() bool {
	return (d.DR == 0) != (d.DC == 0)
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	return Direction{-d.DR, -d.DC}
}

// String returns the direction as "(dr,dc)".
func (d Direction) String() string {
	return fmt.Sprintf("(%d,%d)", d.DR, d.DC)
}

// DirectionBetween returns the unit ray from one square to another and the
// number of steps, or ok=false when the squares do not share a rank, file or
// diagonal.
func DirectionBetween(from, to Square) (d Direction, steps int, ok bool) {
	dr := to.Row - from.Row
	dc := to.Col - from.Col
	if dr == 0 && dc == 0 {
		return Direction{}, 0, false
	}
	if dr != 0 && dc != 0 && abs(dr) != abs(dc) {
		return Direction{}, 0, false
	}
	steps = abs(dr)
	if steps == 0 {
		steps = abs(dc)
	}
	return Direction{sign(dr), sign(dc)}, steps, true
}

// abs returns the absolute value of x.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// sign returns the sign of x: -1, 0, or 1.
func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
