package eval

import (
	"strconv"

	"github.com/ostnam/velox/pkg/ast"
)

type Kind uint8

const (
	UnitKind Kind = iota
	NumberKind
	StringKind
	BoolKind
	FunctionKind
)

func (self Kind) String() string {
	return []string{"nil", "number", "string", "boolean", "function"}[self]
}

// A runtime value. The zero Value is Unit.
type Value struct {
	kind Kind
	num  float64
	str  string
	b    bool
	fn   *Function
}

// The value of a function that returns without a value.
var Unit = Value{kind: UnitKind}

func Num(val float64) Value {
	return Value{kind: NumberKind, num: val}
}

func Str(val string) Value {
	return Value{kind: StringKind, str: val}
}

func Bool(val bool) Value {
	return Value{kind: BoolKind, b: val}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) Number() (float64, bool) {
	return v.num, v.kind == NumberKind
}

func (v Value) Text() (string, bool) {
	return v.str, v.kind == StringKind
}

func (v Value) Boolean() (bool, bool) {
	return v.b, v.kind == BoolKind
}

func (v Value) Function() (*Function, bool) {
	return v.fn, v.kind == FunctionKind
}

// Textual form used by print and string concatenation.
func (v Value) String() string {
	switch v.kind {
	case NumberKind:
		return formatNumber(v.num)
	case StringKind:
		return v.str
	case BoolKind:
		return strconv.FormatBool(v.b)
	case FunctionKind:
		return "<fn " + v.fn.Name + ">"
	default:
		return "nil"
	}
}

// Integral numbers print without a fractional part.
func formatNumber(val float64) string {
	if val == 0 {
		return "0"
	}
	return strconv.FormatFloat(val, 'f', -1, 64)
}

// Truthy reports how a value behaves in if, while and `!`:
// false, nil, 0 and "" are falsy, everything else is truthy.
func (v Value) Truthy() bool {
	switch v.kind {
	case BoolKind:
		return v.b
	case NumberKind:
		return v.num != 0
	case StringKind:
		return v.str != ""
	case FunctionKind:
		return true
	default:
		return false
	}
}

// A user-declared function. Only a FunctionDecl can produce one.
type Function struct {
	Name   string
	Params []string
	Body   ast.Block
	// Environment the function was declared in; used to resolve
	// function names called from the body, never to read variables.
	defining *Env
}

func (fn *Function) Arity() int {
	return len(fn.Params)
}

func newFunction(decl ast.FunctionDecl, env *Env) Value {
	return Value{
		kind: FunctionKind,
		fn: &Function{
			Name:     decl.Name,
			Params:   decl.Params,
			Body:     decl.Body,
			defining: env,
		},
	}
}
