// Package chess provides core chess types and board state.
package chess

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Forward returns the row delta of a pawn push for the colour.
// White moves toward row 0, Black toward row 7.
func (c Colour) Forward() int {
	if c == White {
		return -1
	}
	return 1
}

// PawnStartRow returns the row from which the colour's pawns may push two squares.
func (c Colour) PawnStartRow() int {
	if c == White {
		return 6
	}
	return 1
}

// Kind represents a colourless piece type.
type Kind int

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	NumKinds
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	names := []string{"None", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if k >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a kind (uppercase).
func (k Kind) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if k >= 0 && int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// Slides reports whether the kind attacks along rays.
func (k Kind) Slides() bool {
	return k == Bishop || k == Rook || k == Queen
}

// Piece is a coloured piece packed as kind<<PieceShift | colour.
// The zero value is Empty.
type Piece uint8

// Empty is the sentinel for an unoccupied square.
const Empty Piece = 0

// PieceShift is used for encoding coloured pieces.
const PieceShift = 1

// MakeColouredPiece creates a coloured piece value.
func MakeColouredPiece(colour Colour, kind Kind) Piece {
	return Piece((int(kind) << PieceShift) | int(colour))
}

// W creates a white piece.
func W(kind Kind) Piece {
	return MakeColouredPiece(White, kind)
}

// B creates a black piece.
func B(kind Kind) Piece {
	return MakeColouredPiece(Black, kind)
}

// Kind extracts the piece type. Empty yields NoKind.
func (p Piece) Kind() Kind {
	return Kind(p >> PieceShift)
}

// Colour extracts the colour. The result is meaningless for Empty.
func (p Piece) Colour() Colour {
	return Colour(p & 0x01)
}

// IsEmpty reports whether p is the Empty sentinel.
func (p Piece) IsEmpty() bool {
	return p == Empty
}

// Is reports whether p is a piece of the given colour.
func (p Piece) Is(colour Colour) bool {
	return p != Empty && p.Colour() == colour
}

// Letter returns the FEN letter: uppercase for White, lowercase for Black,
// '.' for Empty.
func (p Piece) Letter() byte {
	if p == Empty {
		return '.'
	}
	letter := p.Kind().Letter()
	if p.Colour() == Black {
		letter += 'a' - 'A'
	}
	return letter
}

// String returns a two character code such as "wK" or "bp", or "--" for Empty.
func (p Piece) String() string {
	if p == Empty {
		return "--"
	}
	c := byte('b')
	if p.Colour() == White {
		c = 'w'
	}
	letter := p.Kind().Letter()
	if p.Kind() == Pawn {
		letter = 'p'
	}
	return string([]byte{c, letter})
}

// PieceFromLetter converts a FEN letter into a piece.
func PieceFromLetter(c byte) (Piece, bool) {
	colour := White
	if c >= 'a' && c <= 'z' {
		colour = Black
		c -= 'a' - 'A'
	}
	var kind Kind
	switch c {
	case 'P':
		kind = Pawn
	case 'N':
		kind = Knight
	case 'B':
		kind = Bishop
	case 'R':
		kind = Rook
	case 'Q':
		kind = Queen
	case 'K':
		kind = King
	default:
		return Empty, false
	}
	return MakeColouredPiece(colour, kind), true
}
