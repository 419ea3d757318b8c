package scanner

import (
	"fmt"
	"unicode"

	. "github.com/ostnam/velox/pkg/tokens"
	"github.com/ostnam/velox/pkg/utils"
)

// Error produced when the input contains a character that can't start a
// token, or a string literal that is never closed.
type LexError struct {
	Char   rune
	Line   int
	Column int
	Msg    string
}

func (err *LexError) Error() string {
	return fmt.Sprintf("%d:%d: %s", err.Line, err.Column, err.Msg)
}

func (err *LexError) Pos() Position {
	return Position{Line: err.Line, Column: err.Column}
}

// Position of the scanner in the input.
type cursor struct {
	pos  int
	line int
	col  int
}

func (cur *cursor) advance(str []rune) *rune {
	c := utils.Advance(str, &cur.pos)
	if c == nil {
		return nil
	}
	if *c == '\n' {
		cur.line++
		cur.col = 1
	} else {
		cur.col++
	}
	return c
}

// Scans the whole input. The returned slice always ends with an EOF token;
// on the first malformed lexeme scanning stops and a *LexError is returned.
func Scan(input []rune) ([]Token, error) {
	cur := cursor{line: 1, col: 1}
	toks := make([]Token, 0, len(input)/2+1)
	for !utils.IsAtEnd(input, cur.pos) {
		tok, err := scanToken(input, &cur)
		if err != nil {
			return nil, err
		}
		if tok != nil {
			toks = append(toks, *tok)
		}
	}
	toks = append(toks, Token{
		Type:   EOF,
		Lexeme: "",
		Line:   cur.line,
		Column: cur.col,
	})
	return toks, nil
}

func ScanString(input string) ([]Token, error) {
	return Scan([]rune(input))
}

func scanToken(str []rune, cur *cursor) (*Token, error) {
	start := *cur
	c := cur.advance(str)
	if c == nil {
		return nil, nil
	}
	switch *c {
	case '(':
		return mkToken(LeftParen, str, start, cur.pos), nil
	case ')':
		return mkToken(RightParen, str, start, cur.pos), nil
	case '{':
		return mkToken(LeftBrace, str, start, cur.pos), nil
	case '}':
		return mkToken(RightBrace, str, start, cur.pos), nil
	case ',':
		return mkToken(Comma, str, start, cur.pos), nil
	case '-':
		return mkToken(Minus, str, start, cur.pos), nil
	case '+':
		return mkToken(Plus, str, start, cur.pos), nil
	case ';':
		return mkToken(Semicolon, str, start, cur.pos), nil
	case '*':
		return mkToken(Star, str, start, cur.pos), nil
	case '%':
		return mkToken(Percent, str, start, cur.pos), nil
	case '!':
		if matchNext(str, cur, '=') {
			return mkToken(BangEql, str, start, cur.pos), nil
		}
		return mkToken(Bang, str, start, cur.pos), nil
	case '=':
		if matchNext(str, cur, '=') {
			return mkToken(EqlEql, str, start, cur.pos), nil
		}
		return mkToken(Eql, str, start, cur.pos), nil
	case '>':
		if matchNext(str, cur, '=') {
			return mkToken(GreaterEql, str, start, cur.pos), nil
		}
		return mkToken(Greater, str, start, cur.pos), nil
	case '<':
		if matchNext(str, cur, '=') {
			return mkToken(LessEql, str, start, cur.pos), nil
		}
		return mkToken(Less, str, start, cur.pos), nil
	case '/':
		if c := utils.Peek(str, cur.pos); c != nil && *c == '/' {
			consumeRestOfLine(str, cur)
			return nil, nil
		}
		return mkToken(Slash, str, start, cur.pos), nil
	case '"':
		return scanStrLiteral(str, cur, start)
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return scanNumLiteral(str, cur, start), nil
	case ' ', '\t', '\r', '\n':
		return nil, nil
	default:
		if isIdentStart(*c) {
			return scanIdentifier(str, cur, start), nil
		}
		return nil, &LexError{
			Char:   *c,
			Line:   start.line,
			Column: start.col,
			Msg:    fmt.Sprintf("unexpected character %q", *c),
		}
	}
}

// Consumes everything up to the closing quote. No escape sequences.
func scanStrLiteral(str []rune, cur *cursor, start cursor) (*Token, error) {
	for {
		char := cur.advance(str)
		if char == nil {
			break
		}
		if *char == '"' {
			return &Token{
				Type:   Str,
				Lexeme: string(str[start.pos+1 : cur.pos-1]),
				Line:   start.line,
				Column: start.col,
			}, nil
		}
	}
	return nil, &LexError{
		Char:   '"',
		Line:   start.line,
		Column: start.col,
		Msg:    "unterminated string literal",
	}
}

// Digits, then at most one '.' when it is followed by another digit.
func scanNumLiteral(str []rune, cur *cursor, start cursor) *Token {
	consumeDigits(str, cur)
	dot := utils.Peek(str, cur.pos)
	next := utils.PeekNext(str, cur.pos)
	if dot != nil && *dot == '.' && next != nil && isDigit(*next) {
		cur.advance(str)
		consumeDigits(str, cur)
	}
	return mkToken(Num, str, start, cur.pos)
}

// Keywords are only recognized once the whole identifier has been scanned,
// so "printer" stays a single identifier.
func scanIdentifier(str []rune, cur *cursor, start cursor) *Token {
	for c := utils.Peek(str, cur.pos); c != nil && isIdentPart(*c); c = utils.Peek(str, cur.pos) {
		cur.advance(str)
	}
	tok := mkToken(Identifier, str, start, cur.pos)
	if kw, identifierIsKeyword := Keywords[tok.Lexeme]; identifierIsKeyword {
		tok.Type = kw
	}
	return tok
}

func mkToken(type_ TokType, str []rune, start cursor, pos int) *Token {
	return &Token{
		Type:   type_,
		Lexeme: string(str[start.pos:pos]),
		Line:   start.line,
		Column: start.col,
	}
}

func matchNext(str []rune, cur *cursor, want rune) bool {
	c := utils.Peek(str, cur.pos)
	if c == nil || *c != want {
		return false
	}
	cur.advance(str)
	return true
}

func consumeDigits(str []rune, cur *cursor) {
	for c := utils.Peek(str, cur.pos); c != nil && isDigit(*c); c = utils.Peek(str, cur.pos) {
		cur.advance(str)
	}
}

// Leaves the newline in place so the line counter still sees it.
func consumeRestOfLine(str []rune, cur *cursor) {
	for c := utils.Peek(str, cur.pos); c != nil && *c != '\n'; c = utils.Peek(str, cur.pos) {
		cur.advance(str)
	}
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c rune) bool {
	return c == '_' || unicode.IsLetter(c)
}

func isIdentPart(c rune) bool {
	return isIdentStart(c) || unicode.IsDigit(c)
}
