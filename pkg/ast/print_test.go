package ast

import (
	"strings"
	"testing"
)

func TestFprint(t *testing.T) {
	elseBlock := Block{Statements: []Stmt{
		Return{},
	}}
	prog := []Stmt{
		Print{Expr: Binary{Op: Plus, Lhs: NumberLiteral{Val: 2}, Rhs: Binary{Op: Mult, Lhs: NumberLiteral{Val: 3}, Rhs: NumberLiteral{Val: 4.5}}}},
		FunctionDecl{Name: "f", Params: []string{"a", "b"}, Body: Block{Statements: []Stmt{
			If{
				Cond: Unary{Op: Not, Operand: Identifier{Name: "a"}},
				Then: Block{Statements: []Stmt{Return{Val: StringLiteral{Val: "x"}}}},
				Else: &elseBlock,
			},
		}}},
		ExprStmt{Expr: Call{Callee: "f", Args: []Expr{NumberLiteral{Val: 1}, Identifier{Name: "y"}}}},
		While{Cond: Identifier{Name: "go"}, Body: Block{Statements: []Stmt{
			Assign{Name: "go", Val: NumberLiteral{Val: 0}},
		}}},
		VarDecl{Name: "neg", Init: Unary{Op: Neg, Operand: NumberLiteral{Val: 1}}},
	}

	want := `Print
  | Binary: +
     | Num: 2
     | Binary: *
        | Num: 3
        | Num: 4.5
Function: f(a, b)
  | Block
     | If
        | Unary: !
           | Identifier: a
        | Block
           | Return
              | Str: "x"
        | Else
           | Block
              | Return
ExprStmt
  | Call: f/2
     | Num: 1
     | Identifier: y
While
  | Identifier: go
  | Block
     | Assign: go
        | Num: 0
VarDecl: neg
  | Unary: -
     | Num: 1
`
	var b strings.Builder
	FprintProgram(&b, prog)
	if got := b.String(); got != want {
		t.Errorf("want:\n%s\ngot:\n%s", want, got)
	}
}
