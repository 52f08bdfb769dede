package crosscheck

import (
	"fmt"

	"github.com/notnil/chess"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// notnilOracle wraps the notnil/chess game model.
type notnilOracle struct{}

func (notnilOracle) Name() string { return "notnil" }

func (o notnilOracle) LegalMoves(fen string) (moves []string, err error) {
	defer recoverFEN(o.Name(), fen, &err)

	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", o.Name(), err, errors.ErrInvalidFEN)
	}
	game := chess.NewGame(opt)
	valid := game.ValidMoves()
	moves = make([]string, 0, len(valid))
	for _, m := range valid {
		text := m.S1().String() + m.S2().String()
		if m.Promo() != chess.NoPieceType {
			text += m.Promo().String()
		}
		moves = append(moves, text)
	}
	return moves, nil
}
