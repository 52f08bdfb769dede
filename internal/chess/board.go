package chess

import (
	"strings"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Board represents a chess board with all state needed for the game.
// A Board is not safe for concurrent use; use Copy for parallel analysis.
type Board struct {
	// The board squares indexed [row][col]; row 0 is Black's home rank.
	Grid [BoardSize][BoardSize]Piece

	// Who has the next move.
	ToMove Colour

	// Keep track of where the two kings are for check detection,
	// indexed by Colour.
	KingSquare [2]Square

	// Moves applied and not yet undone, oldest first.
	History []Move
}

// NewBoard creates a new empty board with White to move.
func NewBoard() *Board {
	return &Board{ToMove: White}
}

// SetupInitialPosition sets up the standard chess starting position.
func (b *Board) SetupInitialPosition() {
	b.Grid = [BoardSize][BoardSize]Piece{}

	backRank := []Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for col := 0; col < BoardSize; col++ {
		b.Grid[0][col] = B(backRank[col])
		b.Grid[1][col] = B(Pawn)
		b.Grid[6][col] = W(Pawn)
		b.Grid[7][col] = W(backRank[col])
	}

	b.KingSquare[White] = Sq(7, 4)
	b.KingSquare[Black] = Sq(0, 4)
	b.ToMove = White
	b.History = nil
}

// At returns the piece on sq. It panics with a *errors.BoundsError when sq
// is off the board; callers probing rays must check Valid first.
func (b *Board) At(sq Square) Piece {
	if !sq.Valid() {
		panic(&errors.BoundsError{Row: sq.Row, Col: sq.Col})
	}
	return b.Grid[sq.Row][sq.Col]
}

// Lookup returns the piece on sq, or an error wrapping ErrOutOfBounds.
func (b *Board) Lookup(sq Square) (Piece, error) {
	if !sq.Valid() {
		return Empty, &errors.BoundsError{Row: sq.Row, Col: sq.Col}
	}
	return b.Grid[sq.Row][sq.Col], nil
}

// Set places a piece on sq, tracking the king location when a king is placed.
// It panics with a *errors.BoundsError when sq is off the board.
func (b *Board) Set(sq Square, piece Piece) {
	if !sq.Valid() {
		panic(&errors.BoundsError{Row: sq.Row, Col: sq.Col})
	}
	b.Grid[sq.Row][sq.Col] = piece
	if piece.Kind() == King {
		b.KingSquare[piece.Colour()] = sq
	}
}

// King returns the tracked king square for colour.
func (b *Board) King(colour Colour) Square {
	return b.KingSquare[colour]
}

// Apply plays m destructively. The caller guarantees m.From holds m.Moved and
// m.To holds m.Captured; nothing is re-validated here.
func (b *Board) Apply(m Move) {
	b.Grid[m.From.Row][m.From.Col] = Empty
	b.Grid[m.To.Row][m.To.Col] = m.Moved
	if m.Moved.Kind() == King {
		b.KingSquare[m.Moved.Colour()] = m.To
	}
	b.ToMove = b.ToMove.Opposite()
	b.History = append(b.History, m)
}

// Undo reverses the last applied move. It returns false and changes nothing
// when the history is empty.
func (b *Board) Undo() (Move, bool) {
	if len(b.History) == 0 {
		return Move{}, false
	}
	m := b.History[len(b.History)-1]
	b.History = b.History[:len(b.History)-1]

	b.Grid[m.From.Row][m.From.Col] = m.Moved
	b.Grid[m.To.Row][m.To.Col] = m.Captured
	if m.Moved.Kind() == King {
		b.KingSquare[m.Moved.Colour()] = m.From
	}
	b.ToMove = b.ToMove.Opposite()
	return m, true
}

// Ply returns the number of applied moves still on the history stack.
func (b *Board) Ply() int {
	return len(b.History)
}

// LastMove returns the most recent move, if any.
func (b *Board) LastMove() (Move, bool) {
	if len(b.History) == 0 {
		return Move{}, false
	}
	return b.History[len(b.History)-1], true
}

// Copy creates a deep copy of the board, including its history.
func (b *Board) Copy() *Board {
	newBoard := &Board{}
	*newBoard = *b
	if b.History != nil {
		newBoard.History = append([]Move(nil), b.History...)
	}
	return newBoard
}

// BoardState captures the position part of a board (everything except the
// history) for save/restore and comparison.
type BoardState struct {
	Grid       [BoardSize][BoardSize]Piece
	ToMove     Colour
	KingSquare [2]Square
}

// SaveState captures the current position.
func (b *Board) SaveState() BoardState {
	return BoardState{
		Grid:       b.Grid,
		ToMove:     b.ToMove,
		KingSquare: b.KingSquare,
	}
}

// RestoreState restores a previously saved position. History is left untouched.
func (b *Board) RestoreState(s BoardState) {
	b.Grid = s.Grid
	b.ToMove = s.ToMove
	b.KingSquare = s.KingSquare
}

// String renders the board as eight lines of FEN letters, rank 8 first.
func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < BoardSize; row++ {
		sb.WriteByte(byte(RankBase + BoardSize - 1 - row))
		sb.WriteByte(' ')
		for col := 0; col < BoardSize; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteByte(b.Grid[row][col].Letter())
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
