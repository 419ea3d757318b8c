package parser

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/ostnam/velox/pkg/ast"
	. "github.com/ostnam/velox/pkg/tokens"
	"github.com/ostnam/velox/pkg/utils"
)

// Error returned when a required token is missing. Parsing stops at the
// first one: statements are never skipped to resynchronize.
type ParseError struct {
	Expected string
	Actual   Token
}

func (err *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: expected %s, found %s", err.Actual.Line, err.Actual.Column, err.Expected, err.Actual)
}

func (err *ParseError) Pos() Position {
	return err.Actual.Pos()
}

// Top-level parsing function
func Parse(toks []Token) ([]ast.Stmt, error) {
	if len(toks) == 0 || toks[len(toks)-1].Type != EOF {
		eof := Token{Type: EOF, Line: 1, Column: 1}
		if len(toks) > 0 {
			last := toks[len(toks)-1]
			eof.Line = last.Line
			eof.Column = last.Column + len([]rune(last.Lexeme))
		}
		toks = append(toks[:len(toks):len(toks)], eof)
	}
	pos := 0
	var res []ast.Stmt
	for !utils.PeekMatchesTokType(toks, pos, EOF) {
		stmt, err := parseStatement(toks, &pos)
		if err != nil {
			return nil, err
		}
		res = append(res, stmt)
	}
	return res, nil
}

func parseStatement(toks []Token, pos *int) (ast.Stmt, error) {
	tok := current(toks, *pos)
	switch tok.Type {
	case Print:
		return parsePrint(toks, pos)
	case Var:
		return parseVarDecl(toks, pos)
	case If:
		return parseIf(toks, pos)
	case While:
		return parseWhile(toks, pos)
	case Function:
		return parseFunctionDecl(toks, pos)
	case Return:
		return parseReturn(toks, pos)
	case LeftBrace:
		return parseBlock(toks, pos)
	case Identifier:
		if utils.PeekMatchesTokType(toks, *pos+1, LeftParen) {
			return parseCallStmt(toks, pos)
		}
		return parseAssign(toks, pos)
	default:
		return nil, &ParseError{Expected: "statement", Actual: tok}
	}
}

// print "(" expression ")" ";"
func parsePrint(toks []Token, pos *int) (ast.Stmt, error) {
	kw := utils.Advance(toks, pos)
	if _, err := expect(toks, pos, LeftParen, ""); err != nil {
		return nil, err
	}
	expr, err := parseExpression(toks, pos)
	if err != nil {
		return nil, err
	}
	if _, err := expect(toks, pos, RightParen, ""); err != nil {
		return nil, err
	}
	if _, err := expect(toks, pos, Semicolon, ""); err != nil {
		return nil, err
	}
	return ast.Print{Pos: ast.At(*kw), Expr: expr}, nil
}

// var IDENT "=" expression ";"
func parseVarDecl(toks []Token, pos *int) (ast.Stmt, error) {
	kw := utils.Advance(toks, pos)
	name, err := expect(toks, pos, Identifier, "variable name")
	if err != nil {
		return nil, err
	}
	if _, err := expect(toks, pos, Eql, ""); err != nil {
		return nil, err
	}
	init, err := parseExpression(toks, pos)
	if err != nil {
		return nil, err
	}
	if _, err := expect(toks, pos, Semicolon, ""); err != nil {
		return nil, err
	}
	return ast.VarDecl{Pos: ast.At(*kw), Name: name.Lexeme, Init: init}, nil
}

// IDENT "=" expression ";"
func parseAssign(toks []Token, pos *int) (ast.Stmt, error) {
	name := utils.Advance(toks, pos)
	if _, err := expect(toks, pos, Eql, ""); err != nil {
		return nil, err
	}
	val, err := parseExpression(toks, pos)
	if err != nil {
		return nil, err
	}
	if _, err := expect(toks, pos, Semicolon, ""); err != nil {
		return nil, err
	}
	return ast.Assign{Pos: ast.At(*name), Name: name.Lexeme, Val: val}, nil
}

// IDENT "(" args? ")" ";"
func parseCallStmt(toks []Token, pos *int) (ast.Stmt, error) {
	call, err := parseCall(toks, pos)
	if err != nil {
		return nil, err
	}
	if _, err := expect(toks, pos, Semicolon, ""); err != nil {
		return nil, err
	}
	return ast.ExprStmt{Pos: call.Pos, Expr: call}, nil
}

// if "(" condition ")" block ("else" block)?
func parseIf(toks []Token, pos *int) (ast.Stmt, error) {
	kw := utils.Advance(toks, pos)
	cond, err := parseParenCondition(toks, pos)
	if err != nil {
		return nil, err
	}
	then, err := parseBlock(toks, pos)
	if err != nil {
		return nil, err
	}
	stmt := ast.If{Pos: ast.At(*kw), Cond: cond, Then: then}
	if utils.MatchTokenType(toks, pos, Else) {
		els, err := parseBlock(toks, pos)
		if err != nil {
			return nil, err
		}
		stmt.Else = &els
	}
	return stmt, nil
}

// while "(" condition ")" block
func parseWhile(toks []Token, pos *int) (ast.Stmt, error) {
	kw := utils.Advance(toks, pos)
	cond, err := parseParenCondition(toks, pos)
	if err != nil {
		return nil, err
	}
	body, err := parseBlock(toks, pos)
	if err != nil {
		return nil, err
	}
	return ast.While{Pos: ast.At(*kw), Cond: cond, Body: body}, nil
}

// function IDENT "(" (IDENT ("," IDENT)*)? ")" block
func parseFunctionDecl(toks []Token, pos *int) (ast.Stmt, error) {
	kw := utils.Advance(toks, pos)
	name, err := expect(toks, pos, Identifier, "function name")
	if err != nil {
		return nil, err
	}
	if _, err := expect(toks, pos, LeftParen, ""); err != nil {
		return nil, err
	}
	var params []string
	if !utils.MatchTokenType(toks, pos, RightParen) {
		for {
			param, err := expect(toks, pos, Identifier, "parameter name")
			if err != nil {
				return nil, err
			}
			if slices.Contains(params, param.Lexeme) {
				return nil, &ParseError{Expected: "distinct parameter name", Actual: *param}
			}
			params = append(params, param.Lexeme)
			if utils.MatchTokenType(toks, pos, Comma) {
				continue
			}
			if _, err := expect(toks, pos, RightParen, "',' or ')'"); err != nil {
				return nil, err
			}
			break
		}
	}
	body, err := parseBlock(toks, pos)
	if err != nil {
		return nil, err
	}
	return ast.FunctionDecl{Pos: ast.At(*kw), Name: name.Lexeme, Params: params, Body: body}, nil
}

// return expression? ";"
func parseReturn(toks []Token, pos *int) (ast.Stmt, error) {
	kw := utils.Advance(toks, pos)
	stmt := ast.Return{Pos: ast.At(*kw)}
	if utils.MatchTokenType(toks, pos, Semicolon) {
		return stmt, nil
	}
	val, err := parseExpression(toks, pos)
	if err != nil {
		return nil, err
	}
	if _, err := expect(toks, pos, Semicolon, ""); err != nil {
		return nil, err
	}
	stmt.Val = val
	return stmt, nil
}

// "{" statement* "}"
func parseBlock(toks []Token, pos *int) (ast.Block, error) {
	open, err := expect(toks, pos, LeftBrace, "")
	if err != nil {
		return ast.Block{}, err
	}
	block := ast.Block{Pos: ast.At(*open)}
	for !utils.MatchTokenType(toks, pos, RightBrace) {
		if utils.PeekMatchesTokType(toks, *pos, EOF) {
			return ast.Block{}, &ParseError{Expected: RightBrace.String(), Actual: current(toks, *pos)}
		}
		stmt, err := parseStatement(toks, pos)
		if err != nil {
			return ast.Block{}, err
		}
		block.Statements = append(block.Statements, stmt)
	}
	return block, nil
}

func parseParenCondition(toks []Token, pos *int) (ast.Expr, error) {
	if _, err := expect(toks, pos, LeftParen, ""); err != nil {
		return nil, err
	}
	cond, err := parseCondition(toks, pos)
	if err != nil {
		return nil, err
	}
	if _, err := expect(toks, pos, RightParen, ""); err != nil {
		return nil, err
	}
	return cond, nil
}

// expression (("==" | "!=" | "<" | "<=" | ">" | ">=") expression)?
//
// A single comparison at most: comparisons do not chain.
func parseCondition(toks []Token, pos *int) (ast.Expr, error) {
	lhs, err := parseExpression(toks, pos)
	if err != nil {
		return nil, err
	}
	if !utils.MatchTokenType(toks, pos, EqlEql, BangEql, Less, LessEql, Greater, GreaterEql) {
		return lhs, nil
	}
	op := utils.Previous(toks, *pos)
	rhs, err := parseExpression(toks, pos)
	if err != nil {
		return nil, err
	}
	return ast.Binary{Pos: ast.At(*op), Op: ast.TokToBinop[op.Type], Lhs: lhs, Rhs: rhs}, nil
}

// term (("+" | "-") term)*
func parseExpression(toks []Token, pos *int) (ast.Expr, error) {
	expr, err := parseTerm(toks, pos)
	if err != nil {
		return nil, err
	}
	for utils.MatchTokenType(toks, pos, Plus, Minus) {
		op := utils.Previous(toks, *pos)
		right, err := parseTerm(toks, pos)
		if err != nil {
			return nil, err
		}
		expr = ast.Binary{
			Pos: ast.At(*op),
			Op:  ast.TokToBinop[op.Type],
			Lhs: expr,
			Rhs: right,
		}
	}
	return expr, nil
}

// factor (("*" | "/" | "%") factor)*
func parseTerm(toks []Token, pos *int) (ast.Expr, error) {
	expr, err := parseFactor(toks, pos)
	if err != nil {
		return nil, err
	}
	for utils.MatchTokenType(toks, pos, Star, Slash, Percent) {
		op := utils.Previous(toks, *pos)
		right, err := parseFactor(toks, pos)
		if err != nil {
			return nil, err
		}
		expr = ast.Binary{
			Pos: ast.At(*op),
			Op:  ast.TokToBinop[op.Type],
			Lhs: expr,
			Rhs: right,
		}
	}
	return expr, nil
}

func parseFactor(toks []Token, pos *int) (ast.Expr, error) {
	if utils.MatchTokenType(toks, pos, Minus, Bang) {
		op := utils.Previous(toks, *pos)
		operand, err := parseFactor(toks, pos)
		if err != nil {
			return nil, err
		}
		return ast.Unary{Pos: ast.At(*op), Op: ast.TokToUnop[op.Type], Operand: operand}, nil
	}
	tok := current(toks, *pos)
	switch tok.Type {
	case Num:
		*pos++
		val, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, &ParseError{Expected: "number", Actual: tok}
		}
		return ast.NumberLiteral{Pos: ast.At(tok), Val: val}, nil
	case Str:
		*pos++
		return ast.StringLiteral{Pos: ast.At(tok), Val: tok.Lexeme}, nil
	case Identifier:
		if utils.PeekMatchesTokType(toks, *pos+1, LeftParen) {
			return parseCall(toks, pos)
		}
		*pos++
		return ast.Identifier{Pos: ast.At(tok), Name: tok.Lexeme}, nil
	case LeftParen:
		*pos++
		expr, err := parseExpression(toks, pos)
		if err != nil {
			return nil, err
		}
		if _, err := expect(toks, pos, RightParen, ""); err != nil {
			return nil, err
		}
		return expr, nil
	}
	return nil, &ParseError{Expected: "expression", Actual: tok}
}

// IDENT "(" (expression ("," expression)*)? ")"
func parseCall(toks []Token, pos *int) (ast.Call, error) {
	callee := utils.Advance(toks, pos)
	call := ast.Call{Pos: ast.At(*callee), Callee: callee.Lexeme}
	if _, err := expect(toks, pos, LeftParen, ""); err != nil {
		return ast.Call{}, err
	}
	if utils.MatchTokenType(toks, pos, RightParen) {
		return call, nil
	}
	for {
		arg, err := parseExpression(toks, pos)
		if err != nil {
			return ast.Call{}, err
		}
		call.Args = append(call.Args, arg)
		if utils.MatchTokenType(toks, pos, Comma) {
			continue
		}
		if _, err := expect(toks, pos, RightParen, "',' or ')'"); err != nil {
			return ast.Call{}, err
		}
		return call, nil
	}
}

// Consumes the current token if it has the given type. what describes the
// expected token in the error, defaulting to the type's own name.
func expect(toks []Token, pos *int, type_ TokType, what string) (*Token, error) {
	tok := current(toks, *pos)
	if tok.Type != type_ {
		if what == "" {
			what = type_.String()
		}
		return nil, &ParseError{Expected: what, Actual: tok}
	}
	return utils.Advance(toks, pos), nil
}

// The token at pos, or the trailing EOF if pos ran past it.
func current(toks []Token, pos int) Token {
	if tok := utils.Peek(toks, pos); tok != nil {
		return *tok
	}
	return toks[len(toks)-1]
}
