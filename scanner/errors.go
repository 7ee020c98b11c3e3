package scanner

import (
	"fmt"

	"github.com/yevent/parser/token"
)

// Error is a low-level reader or tokenization failure. The parser
// returns these to its callers unchanged, without wrapping.
type Error struct {
	Mark    token.Position
	Problem string
}

func (e *Error) Error() string {
	if e.Mark.Line == 0 && e.Mark.Column == 0 && e.Mark.Index == 0 {
		return e.Problem
	}
	return fmt.Sprintf("line %d: %s", e.Mark.Line+1, e.Problem)
}

func newScannerError(mark token.Position, problem string) error {
	return &Error{Mark: mark, Problem: problem}
}
