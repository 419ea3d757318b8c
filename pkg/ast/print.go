package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Pretty prints an AST node and its children, one node per line.
func Fprint(w io.Writer, node Node) {
	p := printer{w: w}
	p.print(node, 0)
}

func FprintProgram(w io.Writer, stmts []Stmt) {
	for _, stmt := range stmts {
		Fprint(w, stmt)
	}
}

type printer struct {
	w io.Writer
}

const indentLvl = 3

func (p printer) line(indent int, format string, args ...any) {
	if indent == 0 {
		fmt.Fprintf(p.w, format+"\n", args...)
		return
	}
	fmt.Fprintf(p.w, strings.Repeat(" ", indent-1)+"| "+format+"\n", args...)
}

func (p printer) print(node Node, indent int) {
	next := indent + indentLvl
	switch node := node.(type) {
	case NumberLiteral:
		p.line(indent, "Num: %s", strconv.FormatFloat(node.Val, 'f', -1, 64))
	case StringLiteral:
		p.line(indent, "Str: %q", node.Val)
	case Identifier:
		p.line(indent, "Identifier: %s", node.Name)
	case Unary:
		p.line(indent, "Unary: %s", node.Op)
		p.print(node.Operand, next)
	case Binary:
		p.line(indent, "Binary: %s", node.Op)
		p.print(node.Lhs, next)
		p.print(node.Rhs, next)
	case Call:
		p.line(indent, "Call: %s/%d", node.Callee, len(node.Args))
		for _, arg := range node.Args {
			p.print(arg, next)
		}
	case Print:
		p.line(indent, "Print")
		p.print(node.Expr, next)
	case VarDecl:
		p.line(indent, "VarDecl: %s", node.Name)
		p.print(node.Init, next)
	case Assign:
		p.line(indent, "Assign: %s", node.Name)
		p.print(node.Val, next)
	case If:
		p.line(indent, "If")
		p.print(node.Cond, next)
		p.print(node.Then, next)
		if node.Else != nil {
			p.line(next, "Else")
			p.print(*node.Else, next+indentLvl)
		}
	case While:
		p.line(indent, "While")
		p.print(node.Cond, next)
		p.print(node.Body, next)
	case FunctionDecl:
		p.line(indent, "Function: %s(%s)", node.Name, strings.Join(node.Params, ", "))
		p.print(node.Body, next)
	case Return:
		p.line(indent, "Return")
		if node.Val != nil {
			p.print(node.Val, next)
		}
	case Block:
		p.line(indent, "Block")
		for _, stmt := range node.Statements {
			p.print(stmt, next)
		}
	case ExprStmt:
		p.line(indent, "ExprStmt")
		p.print(node.Expr, next)
	default:
		p.line(indent, "Error pretty-printing AST, unknown node type: %T", node)
	}
}
