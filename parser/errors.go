package parser

import (
	"fmt"

	"github.com/yevent/parser/token"
)

// Error is a grammar-level failure: the first disagreement between the
// token stream and the grammar, or a directive/tag-resolution problem.
// The parser makes no attempt to resynchronise after one. It does not
// record the failure either: a further NextEvent/PeekEvent call resumes
// from whatever state the failed production left behind.
type Error struct {
	// Context, if non-empty, names the enclosing production ("block
	// mapping", "block sequence", ...) and ContextMark is where it was
	// opened. Both are zero for errors with no enclosing collection.
	Context     string
	ContextMark token.Position

	Problem     string
	ProblemMark token.Position
}

func (e *Error) Error() string {
	if e.Context == "" {
		return fmt.Sprintf("line %d: %s", e.ProblemMark.Line+1, e.Problem)
	}
	return fmt.Sprintf("line %d: while parsing a %s, line %d: %s",
		e.ProblemMark.Line+1, e.Context, e.ContextMark.Line+1, e.Problem)
}

func syntaxError(context string, contextMark token.Position, problem string, problemMark token.Position) error {
	return &Error{Context: context, ContextMark: contextMark, Problem: problem, ProblemMark: problemMark}
}

func directiveError(problem string, mark token.Position) error {
	return &Error{Problem: problem, ProblemMark: mark}
}

func undefinedTagHandleError(handle string, contextMark, problemMark token.Position) error {
	return &Error{
		Context:     "tag handle " + handle,
		ContextMark: contextMark,
		Problem:     "found undefined tag handle",
		ProblemMark: problemMark,
	}
}
