// Package velox chains the scanner, parser and evaluator into the entry
// points used by the command line tool and by tests.
package velox

import (
	"errors"

	"github.com/ostnam/velox/pkg/ast"
	"github.com/ostnam/velox/pkg/eval"
	"github.com/ostnam/velox/pkg/parser"
	"github.com/ostnam/velox/pkg/scanner"
	"github.com/ostnam/velox/pkg/tokens"
)

type Phase uint8

const (
	LexPhase Phase = iota
	ParsePhase
	RuntimePhase
)

func (self Phase) String() string {
	return []string{"lex error", "parse error", "runtime error"}[self]
}

// Everything needed to report a failed run on one line.
type Diagnostic struct {
	Phase   Phase
	Line    int
	Column  int
	Message string
	// The *scanner.LexError, *parser.ParseError or *eval.RuntimeError.
	Cause error
}

func (d *Diagnostic) Error() string {
	return d.Phase.String() + " at " + tokens.Position{Line: d.Line, Column: d.Column}.String() + ": " + d.Message
}

func (d *Diagnostic) Unwrap() error {
	return d.Cause
}

type ProgramResult struct {
	Success bool
	Err     *Diagnostic
}

// Runs text in a fresh environment.
func RunSource(text string, cfg eval.RuntimeConfig) ProgramResult {
	return NewSession(cfg).Run(text)
}

// Keeps one environment alive across runs, the way an interactive session
// needs it.
type Session struct {
	interp *eval.Interpreter
}

func NewSession(cfg eval.RuntimeConfig) *Session {
	return &Session{interp: eval.NewInterpreter(cfg)}
}

func (s *Session) Env() *eval.Env {
	return s.interp.Globals()
}

// Scans, parses and runs text. A runtime error leaves the bindings made
// before it in place.
func (s *Session) Run(text string) ProgramResult {
	stmts, err := Compile(text)
	if err != nil {
		return ProgramResult{Success: false, Err: Diagnose(err)}
	}
	return s.Exec(stmts)
}

// Runs an already parsed program.
func (s *Session) Exec(stmts []ast.Stmt) ProgramResult {
	if err := s.interp.Run(stmts); err != nil {
		return ProgramResult{Success: false, Err: Diagnose(err)}
	}
	return ProgramResult{Success: true}
}

// Scans and parses text without running it.
func Compile(text string) ([]ast.Stmt, error) {
	toks, err := scanner.ScanString(text)
	if err != nil {
		return nil, err
	}
	return parser.Parse(toks)
}

// Converts an error from any stage into a Diagnostic.
func Diagnose(err error) *Diagnostic {
	var (
		lexErr   *scanner.LexError
		parseErr *parser.ParseError
		rtErr    *eval.RuntimeError
	)
	switch {
	case errors.As(err, &lexErr):
		return &Diagnostic{Phase: LexPhase, Line: lexErr.Line, Column: lexErr.Column, Message: lexErr.Msg, Cause: lexErr}
	case errors.As(err, &parseErr):
		msg := "expected " + parseErr.Expected + ", found " + parseErr.Actual.String()
		pos := parseErr.Pos()
		return &Diagnostic{Phase: ParsePhase, Line: pos.Line, Column: pos.Column, Message: msg, Cause: parseErr}
	case errors.As(err, &rtErr):
		return &Diagnostic{Phase: RuntimePhase, Line: rtErr.Line, Column: rtErr.Column, Message: rtErr.Msg, Cause: rtErr}
	default:
		return &Diagnostic{Phase: RuntimePhase, Message: err.Error(), Cause: err}
	}
}
