package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// NewBoardFromFEN creates a board from a FEN string.
//
// Castling rights, the en passant square and the clocks are checked for shape
// and then ignored: the engine does not model special moves.
func NewBoardFromFEN(fen string) (*chess.Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, fmt.Errorf("empty FEN string: %w", errors.ErrInvalidFEN)
	}
	if len(parts) > 6 {
		return nil, &errors.ParseError{Err: errors.ErrInvalidFEN, Expected: "at most 6 fields", Got: fmt.Sprintf("%d", len(parts))}
	}

	board := chess.NewBoard()

	if err := parsePiecePositions(board, parts[0]); err != nil {
		return nil, err
	}
	if err := parseSideToMove(board, parts); err != nil {
		return nil, err
	}
	if err := checkCastlingField(parts); err != nil {
		return nil, err
	}
	if err := checkEnPassantField(parts); err != nil {
		return nil, err
	}
	if err := checkClockFields(parts); err != nil {
		return nil, err
	}
	if err := validatePosition(board); err != nil {
		return nil, err
	}
	return board, nil
}

// parsePiecePositions parses the piece placement field of a FEN string.
// Rank 8 maps to row 0.
func parsePiecePositions(board *chess.Board, positions string) error {
	ranks := strings.Split(positions, "/")
	if len(ranks) != chess.BoardSize {
		return &errors.ParseError{Err: errors.ErrInvalidFEN, Field: 1, Expected: "8 ranks", Got: fmt.Sprintf("%d", len(ranks))}
	}

	for row, rank := range ranks {
		col := 0
		for i := 0; i < len(rank); i++ {
			c := rank[i]
			if c >= '1' && c <= '8' {
				col += int(c - '0')
				continue
			}
			piece, ok := chess.PieceFromLetter(c)
			if !ok {
				return &errors.ParseError{Err: errors.ErrInvalidFEN, Field: 1, Got: fmt.Sprintf("piece character %q", c)}
			}
			if col >= chess.BoardSize {
				return &errors.ParseError{Err: errors.ErrInvalidFEN, Field: 1, Expected: "8 files", Got: fmt.Sprintf("rank %q", rank)}
			}
			board.Set(chess.Sq(row, col), piece)
			col++
		}
		if col != chess.BoardSize {
			return &errors.ParseError{
				Err:      errors.ErrInvalidFEN,
				Field:    1,
				Expected: "8 files",
				Got:      fmt.Sprintf("rank %q", rank),
			}
		}
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(board *chess.Board, parts []string) error {
	if len(parts) < 2 {
		return nil
	}
	switch parts[1] {
	case "w":
		board.ToMove = chess.White
	case "b":
		board.ToMove = chess.Black
	default:
		return &errors.ParseError{Err: errors.ErrInvalidFEN, Field: 2, Expected: "w or b", Got: parts[1]}
	}
	return nil
}

// checkCastlingField validates the castling availability field.
func checkCastlingField(parts []string) error {
	if len(parts) < 3 || parts[2] == "-" {
		return nil
	}
	for _, c := range parts[2] {
		switch c {
		case 'K', 'Q', 'k', 'q':
		default:
			return &errors.ParseError{Err: errors.ErrInvalidFEN, Field: 3, Expected: "KQkq or -", Got: parts[2]}
		}
	}
	return nil
}

// checkEnPassantField validates the en passant target square field.
func checkEnPassantField(parts []string) error {
	if len(parts) < 4 || parts[3] == "-" {
		return nil
	}
	if _, err := chess.ParseSquare(parts[3]); err != nil {
		return &errors.ParseError{Err: errors.ErrInvalidFEN, Field: 4, Expected: "square or -", Got: parts[3]}
	}
	return nil
}

// checkClockFields validates the halfmove clock and fullmove number fields.
func checkClockFields(parts []string) error {
	for i := 4; i < len(parts); i++ {
		if _, err := strconv.ParseUint(parts[i], 10, 32); err != nil {
			return &errors.ParseError{Err: errors.ErrInvalidFEN, Field: i + 1, Expected: "number", Got: parts[i]}
		}
	}
	return nil
}

// validatePosition requires exactly one king per colour and that the side
// not to move is not in check.
func validatePosition(board *chess.Board) error {
	var kings [2]int
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			if p := board.Grid[row][col]; p.Kind() == chess.King {
				kings[p.Colour()]++
			}
		}
	}
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		if kings[colour] != 1 {
			return errors.Wrapf(errors.ErrInvalidPosition, "%d %s kings", kings[colour], strings.ToLower(colour.String()))
		}
	}

	board.ToMove = board.ToMove.Opposite()
	defer func() { board.ToMove = board.ToMove.Opposite() }()
	if IsInCheck(board) {
		return errors.Wrapf(errors.ErrInvalidPosition, "%s king is attacked with %s to move", board.ToMove, board.ToMove.Opposite())
	}
	return nil
}

// BoardToFEN converts a board to a FEN string. Castling and en passant are
// always written as "-".
func BoardToFEN(board *chess.Board) string {
	var sb strings.Builder

	writePiecePositions(&sb, board)
	sb.WriteByte(' ')
	writeSideToMove(&sb, board)
	fmt.Fprintf(&sb, " - - 0 %d", 1+board.Ply()/2)

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, board *chess.Board) {
	for row := 0; row < chess.BoardSize; row++ {
		emptyCount := 0
		for col := 0; col < chess.BoardSize; col++ {
			piece := board.Grid[row][col]
			if piece == chess.Empty {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(piece.Letter())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if row < chess.BoardSize-1 {
			sb.WriteByte('/')
		}
	}
}

// writeSideToMove writes the side to move to the builder.
func writeSideToMove(sb *strings.Builder, board *chess.Board) {
	if board.ToMove == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
}

// NewInitialBoard creates a board with the standard starting position.
func NewInitialBoard() *chess.Board {
	board := chess.NewBoard()
	board.SetupInitialPosition()
	return board
}
