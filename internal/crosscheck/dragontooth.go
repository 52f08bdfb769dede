package crosscheck

import (
	"github.com/dylhunn/dragontoothmg"
)

// dragontoothOracle wraps the dragontoothmg bitboard generator.
type dragontoothOracle struct{}

func (dragontoothOracle) Name() string { return "dragontooth" }

// LegalMoves parses fen with dragontoothmg. The parser panics on malformed
// input; that is reported as an error.
func (o dragontoothOracle) LegalMoves(fen string) (moves []string, err error) {
	defer recoverFEN(o.Name(), fen, &err)

	board := dragontoothmg.ParseFen(fen)
	generated := board.GenerateLegalMoves()
	moves = make([]string, 0, len(generated))
	for i := range generated {
		moves = append(moves, generated[i].String())
	}
	return moves, nil
}
