package engine

import "github.com/lgbarn/chessrules-go/internal/chess"

// Status is the observable game status of the side to move. It is derived
// from the legal move set on every query.
type Status struct {
	InCheck   bool
	Checkmate bool
	Stalemate bool
}

// Terminal reports whether the game is over.
func (s Status) Terminal() bool {
	return s.Checkmate || s.Stalemate
}

// String returns "checkmate", "stalemate", "check" or "ongoing".
func (s Status) String() string {
	switch {
	case s.Checkmate:
		return "checkmate"
	case s.Stalemate:
		return "stalemate"
	case s.InCheck:
		return "check"
	default:
		return "ongoing"
	}
}

// squareSet is a fixed 8x8 membership mask.
type squareSet [chess.BoardSize][chess.BoardSize]bool

func (s *squareSet) add(sq chess.Square) {
	s[sq.Row][sq.Col] = true
}

func (s *squareSet) has(sq chess.Square) bool {
	return s[sq.Row][sq.Col]
}

// LegalMoves returns the exact legal move set for the side to move together
// with its status.
//
// Not in check, every pseudo move survives pin masking. In single check a
// non-king move must also land on the interposition set. In double check only
// king moves are generated. King moves are kept only when the destination is
// not attacked.
func LegalMoves(board *chess.Board) ([]chess.Move, Status) {
	colour := board.ToMove
	king := board.King(colour)
	det := Detect(board)

	var candidates []chess.Move
	if det.DoubleCheck() {
		candidates = appendPieceMoves(board, king, board.At(king), nil)
	} else {
		candidates = PseudoMoves(board)
	}

	var blocks squareSet
	if det.InCheck && !det.DoubleCheck() {
		blocks = interpositionSet(board, king, det.Checks[0])
	}

	legal := make([]chess.Move, 0, len(candidates))
	for _, m := range candidates {
		if m.Moved.Kind() == chess.King {
			if !IsSquareAttacked(board, m.To) {
				legal = append(legal, m)
			}
			continue
		}
		if pin, ok := det.PinFor(m.From); ok && !alongPin(pin, m) {
			continue
		}
		if det.InCheck && !blocks.has(m.To) {
			continue
		}
		legal = append(legal, m)
	}

	status := Status{InCheck: det.InCheck}
	if len(legal) == 0 {
		status.Checkmate = det.InCheck
		status.Stalemate = !det.InCheck
	}
	return legal, status
}

// interpositionSet returns the squares that resolve a single check: every
// square from the king up to and including a sliding attacker, or just the
// attacker's square for a knight.
func interpositionSet(board *chess.Board, king chess.Square, check Check) squareSet {
	var set squareSet
	if check.ByKnight() {
		set.add(check.Attacker)
		return set
	}
	sq := king
	for sq != check.Attacker {
		next, ok := sq.Step(check.Dir)
		if !ok {
			break
		}
		sq = next
		set.add(sq)
	}
	return set
}

// alongPin reports whether m keeps a pinned piece on its pin axis.
func alongPin(pin Pin, m chess.Move) bool {
	dir, _, ok := chess.DirectionBetween(m.From, m.To)
	if !ok {
		return false
	}
	return dir == pin.Dir || dir == pin.Dir.Reverse()
}
