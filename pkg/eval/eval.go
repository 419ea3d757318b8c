package eval

import (
	"io"
	"math"
	"os"
	"strings"

	"fortio.org/log"

	"github.com/ostnam/velox/pkg/ast"
)

// Options of an Interpreter.
type RuntimeConfig struct {
	// Receives the output of print statements. Nil means os.Stdout.
	Output io.Writer
	// Maximum number of iterations of a single while statement, 0 for no cap.
	MaxLoopIterations int
	// Maximum depth of nested function calls. 0 means DefaultMaxCallDepth,
	// a negative value removes the cap.
	MaxCallDepth int
}

// Keeps runaway recursion well inside the Go stack limit.
const DefaultMaxCallDepth = 10000

type Interpreter struct {
	out      io.Writer
	maxLoops int
	maxDepth int
	depth    int
	globals  *Env
}

func NewInterpreter(cfg RuntimeConfig) *Interpreter {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	maxDepth := cfg.MaxCallDepth
	if maxDepth == 0 {
		maxDepth = DefaultMaxCallDepth
	}
	return &Interpreter{
		out:      out,
		maxLoops: cfg.MaxLoopIterations,
		maxDepth: maxDepth,
		globals:  NewEnv(),
	}
}

// The top-level environment. It persists across calls to Run.
func (in *Interpreter) Globals() *Env {
	return in.globals
}

// Executes statements in order against the top-level environment and stops
// at the first error. Bindings made before the error are kept.
func (in *Interpreter) Run(stmts []ast.Stmt) error {
	for _, stmt := range stmts {
		if _, err := in.exec(stmt, in.globals); err != nil {
			return err
		}
	}
	return nil
}

// Outcome of executing a statement: either fall through to the next one,
// or unwind to the enclosing call with a value.
type flow struct {
	returned bool
	val      Value
}

var next = flow{}

func (in *Interpreter) exec(stmt ast.Stmt, env *Env) (flow, error) {
	switch node := stmt.(type) {
	case ast.Print:
		val, err := in.eval(node.Expr, env)
		if err != nil {
			return next, err
		}
		if _, err := io.WriteString(in.out, val.String()+"\n"); err != nil {
			return next, newError(OutputFailure, node, "writing output: %v", err)
		}
		return next, nil

	case ast.VarDecl:
		val, err := in.eval(node.Init, env)
		if err != nil {
			return next, err
		}
		env.Define(node.Name, val)
		return next, nil

	case ast.Assign:
		if _, ok := env.Get(node.Name); !ok {
			return next, newError(UndefinedVariable, node, "assignment to undefined variable '%s'", node.Name)
		}
		val, err := in.eval(node.Val, env)
		if err != nil {
			return next, err
		}
		env.Assign(node.Name, val)
		return next, nil

	case ast.If:
		cond, err := in.eval(node.Cond, env)
		if err != nil {
			return next, err
		}
		if cond.Truthy() {
			return in.execBlock(node.Then, env)
		} else if node.Else != nil {
			return in.execBlock(*node.Else, env)
		}
		return next, nil

	case ast.While:
		return in.execWhile(node, env)

	case ast.FunctionDecl:
		env.Define(node.Name, newFunction(node, env))
		return next, nil

	case ast.Return:
		if env == in.globals {
			return next, newError(ReturnOutsideFunction, node, "return outside of a function")
		}
		if node.Val == nil {
			return flow{returned: true, val: Unit}, nil
		}
		val, err := in.eval(node.Val, env)
		if err != nil {
			return next, err
		}
		return flow{returned: true, val: val}, nil

	case ast.Block:
		return in.execBlock(node, env)

	case ast.ExprStmt:
		_, err := in.eval(node.Expr, env)
		return next, err

	default:
		return next, newError(Internal, stmt, "BUG: unmatched statement type during evaluation: %T", stmt)
	}
}

// Blocks don't open a scope: statements run in env.
func (in *Interpreter) execBlock(block ast.Block, env *Env) (flow, error) {
	for _, stmt := range block.Statements {
		res, err := in.exec(stmt, env)
		if err != nil || res.returned {
			return res, err
		}
	}
	return next, nil
}

func (in *Interpreter) execWhile(node ast.While, env *Env) (flow, error) {
	log.LogVf("while loop at %s", node.Position())
	for iterations := 0; ; iterations++ {
		cond, err := in.eval(node.Cond, env)
		if err != nil {
			return next, err
		}
		if !cond.Truthy() {
			return next, nil
		}
		if in.maxLoops > 0 && iterations >= in.maxLoops {
			return next, newError(LoopLimitExceeded, node, "loop exceeded %d iterations", in.maxLoops)
		}
		res, err := in.execBlock(node.Body, env)
		if err != nil || res.returned {
			return res, err
		}
	}
}

func (in *Interpreter) eval(expr ast.Expr, env *Env) (Value, error) {
	switch node := expr.(type) {
	case ast.NumberLiteral:
		return Num(node.Val), nil

	case ast.StringLiteral:
		return Str(node.Val), nil

	case ast.Identifier:
		val, ok := env.Get(node.Name)
		if !ok {
			return Unit, newError(UndefinedVariable, node, "undefined variable '%s'", node.Name)
		}
		return val, nil

	case ast.Unary:
		operand, err := in.eval(node.Operand, env)
		if err != nil {
			return Unit, err
		}
		switch node.Op {
		case ast.Neg:
			num, ok := operand.Number()
			if !ok {
				return Unit, newError(TypeMismatch, node, "can't negate %s", operand.kind)
			}
			return Num(-num), nil
		case ast.Not:
			return Bool(!operand.Truthy()), nil
		default:
			return Unit, newError(Internal, node, "BUG: unhandled unary operator in eval: %s", node.Op)
		}

	case ast.Binary:
		lhs, err := in.eval(node.Lhs, env)
		if err != nil {
			return Unit, err
		}
		rhs, err := in.eval(node.Rhs, env)
		if err != nil {
			return Unit, err
		}
		return binary(node, lhs, rhs)

	case ast.Call:
		return in.call(node, env)

	default:
		return Unit, newError(Internal, expr, "BUG: unmatched AST node type during evaluation: %T", expr)
	}
}

// Arguments are all evaluated in the caller's environment before the frame
// is created. The frame is dropped when the call ends, however it ends.
func (in *Interpreter) call(node ast.Call, env *Env) (Value, error) {
	callee, ok := env.lookupCallee(node.Callee)
	if !ok {
		return Unit, newError(UndefinedVariable, node, "undefined function '%s'", node.Callee)
	}
	fn, ok := callee.Function()
	if !ok {
		return Unit, newError(NotCallable, node, "'%s' is a %s, not a function", node.Callee, callee.kind)
	}
	args := make([]Value, 0, len(node.Args))
	for _, arg := range node.Args {
		val, err := in.eval(arg, env)
		if err != nil {
			return Unit, err
		}
		args = append(args, val)
	}
	if len(args) != fn.Arity() {
		return Unit, newError(ArityMismatch, node, "function '%s' expects %d argument%s, got %d",
			fn.Name, fn.Arity(), plural(fn.Arity()), len(args))
	}
	if in.maxDepth > 0 && in.depth >= in.maxDepth {
		return Unit, newError(CallDepthExceeded, node, "call depth exceeded %d calling '%s'", in.maxDepth, fn.Name)
	}

	frame := fn.defining.newFrame()
	for i, param := range fn.Params {
		frame.Define(param, args[i])
	}
	log.LogVf("call %s(%s) depth %d", fn.Name, strings.Join(fn.Params, ", "), in.depth+1)
	in.depth++
	res, err := in.execBlock(fn.Body, frame)
	in.depth--
	if err != nil {
		return Unit, err
	}
	if res.returned {
		return res.val, nil
	}
	return Unit, nil
}

func binary(node ast.Binary, lhs Value, rhs Value) (Value, error) {
	switch node.Op {
	case ast.Plus:
		if lhs.kind == StringKind || rhs.kind == StringKind {
			return Str(lhs.String() + rhs.String()), nil
		}
		l, r, err := checkNumOperands(node, lhs, rhs)
		if err != nil {
			return Unit, err
		}
		return Num(l + r), nil
	case ast.Minus:
		l, r, err := checkNumOperands(node, lhs, rhs)
		if err != nil {
			return Unit, err
		}
		return Num(l - r), nil
	case ast.Mult:
		l, r, err := checkNumOperands(node, lhs, rhs)
		if err != nil {
			return Unit, err
		}
		return Num(l * r), nil
	case ast.Div:
		l, r, err := checkNumOperands(node, lhs, rhs)
		if err != nil {
			return Unit, err
		}
		if r == 0 {
			return Unit, newError(DivisionByZero, node, "division by zero")
		}
		return Num(l / r), nil
	case ast.Mod:
		l, r, err := checkNumOperands(node, lhs, rhs)
		if err != nil {
			return Unit, err
		}
		if r == 0 {
			return Unit, newError(DivisionByZero, node, "modulo by zero")
		}
		return Num(math.Mod(l, r)), nil
	case ast.Eql:
		eq, err := isEql(node, lhs, rhs)
		return Bool(eq), err
	case ast.NotEql:
		eq, err := isEql(node, lhs, rhs)
		return Bool(!eq), err
	case ast.Greater, ast.GreaterEql, ast.Less, ast.LessEql:
		cmp, err := compare(node, lhs, rhs)
		if err != nil {
			return Unit, err
		}
		switch node.Op {
		case ast.Greater:
			return Bool(cmp > 0), nil
		case ast.GreaterEql:
			return Bool(cmp >= 0), nil
		case ast.Less:
			return Bool(cmp < 0), nil
		default:
			return Bool(cmp <= 0), nil
		}
	default:
		return Unit, newError(Internal, node, "BUG: unimplemented binary operator: %s", node.Op)
	}
}

// Equality needs operands of the same kind; functions are never comparable.
func isEql(node ast.Binary, lhs Value, rhs Value) (bool, error) {
	if lhs.kind != rhs.kind {
		return false, newError(TypeMismatch, node, "can't compare %s and %s with %s", lhs.kind, rhs.kind, node.Op)
	}
	switch lhs.kind {
	case NumberKind:
		return lhs.num == rhs.num, nil
	case StringKind:
		return lhs.str == rhs.str, nil
	case BoolKind:
		return lhs.b == rhs.b, nil
	case UnitKind:
		return true, nil
	default:
		return false, newError(TypeMismatch, node, "can't compare %s values with %s", lhs.kind, node.Op)
	}
}

// Ordering is defined between two numbers or two strings.
func compare(node ast.Binary, lhs Value, rhs Value) (int, error) {
	switch {
	case lhs.kind == NumberKind && rhs.kind == NumberKind:
		switch {
		case lhs.num < rhs.num:
			return -1, nil
		case lhs.num > rhs.num:
			return 1, nil
		}
		return 0, nil
	case lhs.kind == StringKind && rhs.kind == StringKind:
		return strings.Compare(lhs.str, rhs.str), nil
	}
	return 0, newError(TypeMismatch, node, "can't compare %s and %s with %s", lhs.kind, rhs.kind, node.Op)
}

func checkNumOperands(node ast.Binary, lhs Value, rhs Value) (float64, float64, error) {
	if lhs.kind != NumberKind || rhs.kind != NumberKind {
		return 0, 0, newError(TypeMismatch, node, "operator %s expects numbers, got %s and %s", node.Op, lhs.kind, rhs.kind)
	}
	return lhs.num, rhs.num, nil
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
