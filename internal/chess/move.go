package chess

// Move represents a single ply. Moves are values: they are built when
// generated, never mutated, and compared only by ID.
type Move struct {
	// Source square.
	From Square

	// Destination square.
	To Square

	// The piece being moved.
	Moved Piece

	// The piece captured by displacement (Empty if no capture).
	Captured Piece
}

// NewMove builds a move from two squares, reading the moved and captured
// pieces from the board.
func NewMove(from, to Square, board *Board) Move {
	return Move{
		From:     from,
		To:       to,
		Moved:    board.At(from),
		Captured: board.At(to),
	}
}

// ID packs the four coordinates into a single key. Two moves share an ID
// iff their from and to squares match.
func (m Move) ID() int {
	return m.From.Row*1000 + m.From.Col*100 + m.To.Row*10 + m.To.Col
}

// Equal reports whether two moves have the same identity key.
func (m Move) Equal(other Move) bool {
	return m.ID() == other.ID()
}

// IsCapture returns true if this move is a capture.
func (m Move) IsCapture() bool {
	return m.Captured != Empty
}

// Notation returns coordinate notation, e.g. "e2e4".
func (m Move) Notation() string {
	return Notation(m)
}

// String implements fmt.Stringer using coordinate notation.
func (m Move) String() string {
	return Notation(m)
}

// Notation converts a move to its from/to algebraic string.
func Notation(m Move) string {
	return m.From.String() + m.To.String()
}
