package engine

import (
	"github.com/apex/log"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Game is the caller-facing façade over a Board. It only accepts moves drawn
// from its own legal move set. A Game is not safe for concurrent use.
type Game struct {
	board  *chess.Board
	logger log.Interface

	// legal and status describe board while fresh is set.
	legal    []chess.Move
	status   Status
	fresh    bool
	generate func(*chess.Board) ([]chess.Move, Status)
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger used for move and status events.
func WithLogger(l log.Interface) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// NewGame creates a game in the standard starting position with White to move.
func NewGame(opts ...Option) *Game {
	g := &Game{
		board:    NewInitialBoard(),
		logger:   log.Log,
		generate: LegalMoves,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewGameFromFEN creates a game from a FEN position.
func NewGameFromFEN(fen string, opts ...Option) (*Game, error) {
	board, err := NewBoardFromFEN(fen)
	if err != nil {
		return nil, errors.Wrap(err, "loading position")
	}
	g := NewGame(opts...)
	g.board = board
	g.fresh = false
	return g, nil
}

// Reset restores the standard starting position and clears the history.
func (g *Game) Reset() {
	g.board = NewInitialBoard()
	g.fresh = false
	g.logger.Debug("game reset")
}

// Board returns a copy of the current board.
func (g *Game) Board() *chess.Board {
	return g.board.Copy()
}

// ToMove returns the side to move.
func (g *Game) ToMove() chess.Colour {
	return g.board.ToMove
}

// Ply returns the number of moves played and not undone.
func (g *Game) Ply() int {
	return g.board.Ply()
}

// History returns the moves played so far, oldest first.
func (g *Game) History() []chess.Move {
	return append([]chess.Move(nil), g.board.History...)
}

// FEN returns the current position in FEN.
func (g *Game) FEN() string {
	return BoardToFEN(g.board)
}

// refresh generates the legal set once per position.
func (g *Game) refresh() {
	if !g.fresh {
		g.legal, g.status = g.generate(g.board)
		g.fresh = true
	}
}

// LegalMoves returns the legal moves for the side to move.
func (g *Game) LegalMoves() []chess.Move {
	g.refresh()
	return append([]chess.Move(nil), g.legal...)
}

// Status returns the check, checkmate and stalemate flags.
func (g *Game) Status() Status {
	g.refresh()
	return g.status
}

// MoveFor matches a raw (from, to) pick against the legal set by identity key.
func (g *Game) MoveFor(from, to chess.Square) (chess.Move, error) {
	if !from.Valid() {
		return chess.Move{}, &errors.BoundsError{Row: from.Row, Col: from.Col}
	}
	if !to.Valid() {
		return chess.Move{}, &errors.BoundsError{Row: to.Row, Col: to.Col}
	}
	want := chess.Move{From: from, To: to}
	g.refresh()
	for _, m := range g.legal {
		if m.Equal(want) {
			return m, nil
		}
	}
	return chess.Move{}, g.illegal(want)
}

// Apply plays m if a move with the same identity key is legal. The legal
// set's own copy is applied, so stale piece metadata on m is ignored.
func (g *Game) Apply(m chess.Move) error {
	legal, err := g.MoveFor(m.From, m.To)
	if err != nil {
		return err
	}
	g.board.Apply(legal)
	g.fresh = false
	g.logger.WithFields(log.Fields{
		"move": legal.Notation(),
		"ply":  g.board.Ply(),
		"side": g.board.ToMove.Opposite().String(),
	}).Debug("move applied")

	if status := g.Status(); status.Terminal() {
		g.logger.WithFields(log.Fields{
			"status": status.String(),
			"ply":    g.board.Ply(),
		}).Info("game over")
	}
	return nil
}

// Play parses coordinate notation such as "e2e4" and applies the move.
func (g *Game) Play(notation string) (chess.Move, error) {
	if len(notation) != 4 {
		return chess.Move{}, &errors.MoveError{Err: errors.ErrIllegalMove, PlyNum: g.board.Ply() + 1, MoveText: notation}
	}
	from, err := chess.ParseSquare(notation[:2])
	if err != nil {
		return chess.Move{}, &errors.MoveError{Err: err, PlyNum: g.board.Ply() + 1, MoveText: notation}
	}
	to, err := chess.ParseSquare(notation[2:])
	if err != nil {
		return chess.Move{}, &errors.MoveError{Err: err, PlyNum: g.board.Ply() + 1, MoveText: notation}
	}
	m, err := g.MoveFor(from, to)
	if err != nil {
		return chess.Move{}, err
	}
	if err := g.Apply(m); err != nil {
		return chess.Move{}, err
	}
	return m, nil
}

// Undo takes back the last move. It reports false, and does nothing, when no
// move has been played.
func (g *Game) Undo() bool {
	m, ok := g.board.Undo()
	if !ok {
		g.logger.Debug("undo with empty history")
		return false
	}
	g.fresh = false
	g.logger.WithFields(log.Fields{
		"move": m.Notation(),
		"ply":  g.board.Ply(),
	}).Debug("move undone")
	return true
}

// illegal builds and logs the rejection error for m.
func (g *Game) illegal(m chess.Move) error {
	err := &errors.MoveError{
		Err:      errors.ErrIllegalMove,
		PlyNum:   g.board.Ply() + 1,
		MoveText: m.Notation(),
		FEN:      BoardToFEN(g.board),
	}
	g.logger.WithFields(log.Fields{
		"move": m.Notation(),
		"fen":  err.FEN,
	}).Warn("illegal move rejected")
	return err
}
