package eval

import (
	"errors"
	"fmt"

	"github.com/ostnam/velox/pkg/ast"
	"github.com/ostnam/velox/pkg/tokens"
)

type RuntimeError struct {
	Kind   ErrorKind
	Line   int
	Column int
	Msg    string
}

func (err *RuntimeError) Error() string {
	return fmt.Sprintf("%d:%d: %s", err.Line, err.Column, err.Msg)
}

func (err *RuntimeError) Pos() tokens.Position {
	return tokens.Position{Line: err.Line, Column: err.Column}
}

type ErrorKind uint8

const (
	UndefinedVariable ErrorKind = iota
	NotCallable
	ArityMismatch
	DivisionByZero
	TypeMismatch
	ReturnOutsideFunction
	LoopLimitExceeded
	CallDepthExceeded
	OutputFailure
	Internal
)

func (self ErrorKind) String() string {
	return []string{
		"UndefinedVariable",
		"NotCallable",
		"ArityMismatch",
		"DivisionByZero",
		"TypeMismatch",
		"ReturnOutsideFunction",
		"LoopLimitExceeded",
		"CallDepthExceeded",
		"OutputFailure",
		"Internal",
	}[self]
}

func newError(kind ErrorKind, node ast.Node, format string, args ...any) *RuntimeError {
	pos := node.Position()
	return &RuntimeError{
		Kind:   kind,
		Line:   pos.Line,
		Column: pos.Column,
		Msg:    fmt.Sprintf(format, args...),
	}
}

// Reports whether err is a *RuntimeError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var rtErr *RuntimeError
	return errors.As(err, &rtErr) && rtErr.Kind == kind
}
