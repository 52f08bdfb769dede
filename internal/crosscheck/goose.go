package crosscheck

import (
	"fmt"

	"github.com/Oliverans/GooseEngineMG/goosemg"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// gooseOracle wraps the goosemg magic-bitboard generator.
type gooseOracle struct{}

func (gooseOracle) Name() string { return "goose" }

func (o gooseOracle) LegalMoves(fen string) (moves []string, err error) {
	defer recoverFEN(o.Name(), fen, &err)

	board, err := goosemg.ParseFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", o.Name(), err, errors.ErrInvalidFEN)
	}
	generated := board.GenerateLegalMoves()
	moves = make([]string, 0, len(generated))
	for _, m := range generated {
		moves = append(moves, m.String())
	}
	return moves, nil
}
