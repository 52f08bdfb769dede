package worker

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// Position is one record of a batch input file.
type Position struct {
	FEN  string `json:"fen"`
	ID   string `json:"id,omitempty"`
	File string `json:"file,omitempty"`
	Line int    `json:"line"`
}

// ReadEPD reads positions from r, one per line. A line holds either a full
// six-field FEN or an EPD record: four position fields followed by optional
// opcodes such as `id "name";`. Blank lines and lines starting with '#' are
// ignored. name labels errors and positions.
func ReadEPD(r io.Reader, name string) ([]Position, error) {
	var positions []Position
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		pos, err := parseEPDLine(line)
		if err != nil {
			return nil, &errors.ParseError{
				Err:      errors.ErrInvalidFEN,
				File:     name,
				Line:     lineNum,
				Expected: "EPD record",
				Got:      err.Error(),
			}
		}
		pos.File = name
		pos.Line = lineNum
		positions = append(positions, pos)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading %s", name)
	}
	return positions, nil
}

// parseEPDLine splits a record into its FEN and id opcode.
func parseEPDLine(line string) (Position, error) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return Position{}, fmt.Errorf("%d fields", len(fields))
	}
	fenFields := fields[:4]
	rest := fields[4:]
	if len(rest) >= 2 && isNumber(rest[0]) && isNumber(rest[1]) {
		fenFields = fields[:6]
		rest = fields[6:]
	} else {
		fenFields = append(append([]string{}, fenFields...), "0", "1")
	}

	pos := Position{FEN: strings.Join(fenFields, " ")}
	for _, op := range strings.Split(strings.Join(rest, " "), ";") {
		op = strings.TrimSpace(op)
		if strings.HasPrefix(op, "id ") {
			pos.ID = strings.Trim(strings.TrimSpace(op[3:]), `"`)
		}
	}
	return pos, nil
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
