package ast

import (
	"github.com/ostnam/velox/pkg/tokens"
)

// Interface of every Ast node type
type Node interface {
	Position() tokens.Position
}

// Nodes evaluated for a value.
type Expr interface {
	Node
	exprNode()
}

// Nodes executed for effect.
type Stmt interface {
	Node
	stmtNode()
}

// Source position of the token a node was built from.
type Pos tokens.Position

func (pos Pos) Position() tokens.Position {
	return tokens.Position(pos)
}

func At(tok tokens.Token) Pos {
	return Pos{Line: tok.Line, Column: tok.Column}
}

// AST node for numeric literals
type NumberLiteral struct {
	Pos
	Val float64
}

// AST node for string literals
type StringLiteral struct {
	Pos
	Val string
}

// The name of a variable
type Identifier struct {
	Pos
	Name string
}

// Ast node for unary operations
type Unary struct {
	Pos
	Op      UnaryOperator
	Operand Expr
}

type UnaryOperator uint8

const (
	Not UnaryOperator = iota
	Neg
)

func (self UnaryOperator) String() string {
	return []string{"!", "-"}[self]
}

// Ast node for binary operations
type Binary struct {
	Pos
	Op  BinaryOperator
	Lhs Expr
	Rhs Expr
}

type BinaryOperator uint8

const (
	Eql BinaryOperator = iota
	NotEql
	Minus
	Plus
	Mult
	Div
	Mod
	Greater
	GreaterEql
	Less
	LessEql
)

func (self BinaryOperator) String() string {
	return []string{"==", "!=", "-", "+", "*", "/", "%", ">", ">=", "<", "<="}[self]
}

func (self BinaryOperator) IsComparison() bool {
	switch self {
	case Eql, NotEql, Greater, GreaterEql, Less, LessEql:
		return true
	}
	return false
}

// AST node for calling a function by name, ie:
// add(1, 2)
type Call struct {
	Pos
	Callee string
	Args   []Expr
}

// print(expr);
type Print struct {
	Pos
	Expr Expr
}

// AST node for declaring a variable, ie:
// var x = 10;
type VarDecl struct {
	Pos
	Name string
	Init Expr
}

// AST node for setting a new value to an existing variable, ie:
// x = 11;
type Assign struct {
	Pos
	Name string
	Val  Expr
}

// AST node for if statements. Else is nil when there is no else branch.
type If struct {
	Pos
	Cond Expr
	Then Block
	Else *Block
}

// AST node for while loops
type While struct {
	Pos
	Cond Expr
	Body Block
}

// AST node for function declarations, ie:
// function add(a, b) { return a + b; }
type FunctionDecl struct {
	Pos
	Name   string
	Params []string
	Body   Block
}

// Val is nil for a bare `return;`.
type Return struct {
	Pos
	Val Expr
}

// AST node for blocks
type Block struct {
	Pos
	Statements []Stmt
}

// A call used as a statement, ie:
// greet("bob");
type ExprStmt struct {
	Pos
	Expr Expr
}

func (NumberLiteral) exprNode() {}
func (StringLiteral) exprNode() {}
func (Identifier) exprNode()    {}
func (Unary) exprNode()         {}
func (Binary) exprNode()        {}
func (Call) exprNode()          {}

func (Print) stmtNode()        {}
func (VarDecl) stmtNode()      {}
func (Assign) stmtNode()       {}
func (If) stmtNode()           {}
func (While) stmtNode()        {}
func (FunctionDecl) stmtNode() {}
func (Return) stmtNode()       {}
func (Block) stmtNode()        {}
func (ExprStmt) stmtNode()     {}

// Maps tokens to their corresponding BinaryOperator if such a mapping exists.
var TokToBinop = map[tokens.TokType]BinaryOperator{
	tokens.EqlEql:     Eql,
	tokens.BangEql:    NotEql,
	tokens.Minus:      Minus,
	tokens.Plus:       Plus,
	tokens.Star:       Mult,
	tokens.Slash:      Div,
	tokens.Percent:    Mod,
	tokens.Greater:    Greater,
	tokens.GreaterEql: GreaterEql,
	tokens.Less:       Less,
	tokens.LessEql:    LessEql,
}

// Maps tokens to their corresponding UnaryOperator if such a mapping exists.
var TokToUnop = map[tokens.TokType]UnaryOperator{
	tokens.Bang:  Not,
	tokens.Minus: Neg,
}
