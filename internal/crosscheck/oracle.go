// Package crosscheck compares the engine's legal move sets against
// independent move generators.
package crosscheck

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Oracle is a reference move generator. LegalMoves returns coordinate moves
// such as "e2e4" or "e7e8q" for the side to move in fen.
type Oracle interface {
	Name() string
	LegalMoves(fen string) ([]string, error)
}

var registry = map[string]func() Oracle{
	"dragontooth": func() Oracle { return dragontoothOracle{} },
	"goose":       func() Oracle { return gooseOracle{} },
	"notnil":      func() Oracle { return notnilOracle{} },
}

// Names returns the registered oracle names in sorted order.
func Names() []string {
	names := maps.Keys(registry)
	slices.Sort(names)
	return names
}

// Lookup returns the oracle registered under name.
func Lookup(name string) (Oracle, error) {
	factory, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%q (have %s): %w", name, strings.Join(Names(), ", "), errors.ErrUnknownOracle)
	}
	return factory(), nil
}

// LookupAll resolves every name, failing on the first unknown one.
func LookupAll(names []string) ([]Oracle, error) {
	oracles := make([]Oracle, 0, len(names))
	for _, name := range names {
		o, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		oracles = append(oracles, o)
	}
	return oracles, nil
}

// recoverFEN converts a parser panic into an ErrInvalidFEN error.
func recoverFEN(oracle, fen string, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%s rejected %q (%v): %w", oracle, fen, r, errors.ErrInvalidFEN)
	}
}
