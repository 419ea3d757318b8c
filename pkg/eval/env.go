package eval

import (
	"sort"
)

// Variable bindings of the top level or of one call frame.
//
// Variables are strictly local to an Env. Parent is the environment a
// frame's function was declared in, and is only consulted to resolve
// function names.
type Env struct {
	Parent *Env
	vars   map[string]Value
}

func NewEnv() *Env {
	return &Env{
		Parent: nil,
		vars:   map[string]Value{},
	}
}

func (env *Env) newFrame() *Env {
	return &Env{
		Parent: env,
		vars:   map[string]Value{},
	}
}

// Binds name, replacing any previous binding.
func (env *Env) Define(name string, val Value) {
	env.vars[name] = val
}

func (env *Env) Get(name string) (Value, bool) {
	val, ok := env.vars[name]
	return val, ok
}

// Only updates a pre-existing variable. Return whether it was successful,
// ie updating a non-existing variable returns false.
func (env *Env) Assign(name string, val Value) bool {
	if _, ok := env.vars[name]; !ok {
		return false
	}
	env.vars[name] = val
	return true
}

// Resolves the target of a call. Any local binding is returned as is;
// enclosing environments only contribute function values.
func (env *Env) lookupCallee(name string) (Value, bool) {
	if val, ok := env.vars[name]; ok {
		return val, true
	}
	for parent := env.Parent; parent != nil; parent = parent.Parent {
		if val, ok := parent.vars[name]; ok && val.kind == FunctionKind {
			return val, true
		}
	}
	return Value{}, false
}

// Sorted names bound in this environment.
func (env *Env) Names() []string {
	names := make([]string, 0, len(env.vars))
	for name := range env.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
