package tokens

import "fmt"

type Token struct {
	Type   TokType
	Lexeme string
	Line   int
	Column int
}

func (tok Token) Pos() Position {
	return Position{Line: tok.Line, Column: tok.Column}
}

// Describes the token the way diagnostics quote it.
func (tok Token) String() string {
	switch tok.Type {
	case EOF:
		return "end of input"
	case Str:
		return fmt.Sprintf("string %q", tok.Lexeme)
	case Num:
		return "number " + tok.Lexeme
	case Identifier:
		return "identifier '" + tok.Lexeme + "'"
	}
	return "'" + tok.Lexeme + "'"
}

// 1-based line and column of a token in the source text.
type Position struct {
	Line   int
	Column int
}

func (pos Position) String() string {
	return fmt.Sprintf("%d:%d", pos.Line, pos.Column)
}

type TokType int8

const (
	// single char tokens
	LeftParen TokType = iota
	RightParen
	LeftBrace
	RightBrace
	Comma
	Minus
	Plus
	Semicolon
	Slash
	Star
	Percent
	// 1 or 2 char tokens
	Bang
	BangEql
	Eql
	EqlEql
	Greater
	GreaterEql
	Less
	LessEql
	// literals
	Identifier
	Str
	Num
	// keywords
	Else
	Function
	If
	Print
	Return
	Var
	While
	EOF
)

var tokTypeNames = [...]string{
	LeftParen:  "'('",
	RightParen: "')'",
	LeftBrace:  "'{'",
	RightBrace: "'}'",
	Comma:      "','",
	Minus:      "'-'",
	Plus:       "'+'",
	Semicolon:  "';'",
	Slash:      "'/'",
	Star:       "'*'",
	Percent:    "'%'",
	Bang:       "'!'",
	BangEql:    "'!='",
	Eql:        "'='",
	EqlEql:     "'=='",
	Greater:    "'>'",
	GreaterEql: "'>='",
	Less:       "'<'",
	LessEql:    "'<='",
	Identifier: "identifier",
	Str:        "string",
	Num:        "number",
	Else:       "'else'",
	Function:   "'function'",
	If:         "'if'",
	Print:      "'print'",
	Return:     "'return'",
	Var:        "'var'",
	While:      "'while'",
	EOF:        "end of input",
}

func (self TokType) String() string {
	if self < 0 || int(self) >= len(tokTypeNames) {
		return fmt.Sprintf("TokType(%d)", int8(self))
	}
	return tokTypeNames[self]
}

func (self TokType) IsKeyword() bool {
	return self >= Else && self <= While
}

// Reserved words, matched against a fully scanned identifier.
var Keywords = map[string]TokType{
	"else":     Else,
	"function": Function,
	"if":       If,
	"print":    Print,
	"return":   Return,
	"var":      Var,
	"while":    While,
}
