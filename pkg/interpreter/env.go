package interpreter

import (
	"fmt"

	"golox/pkg/diagnostics"
	"golox/pkg/token"
	"golox/pkg/value"
)

// Environment is a mutable mapping from variable name to value, with
// parent-chained lookup for lexical scoping. Define always succeeds and is
// local to this scope; Get and Assign walk outward through parent scopes and
// fail if the name was never declared, which is what enforces
// declare-before-use at the mutation boundary.
type Environment struct {
	values map[string]value.Value
	parent *Environment
}

// NewEnvironment creates a new top-level environment.
func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]value.Value)}
}

// Child creates a new scope whose parent is this environment. Child scopes
// shadow but never delete parent bindings.
func (e *Environment) Child() *Environment {
	return &Environment{values: make(map[string]value.Value), parent: e}
}

// Define unconditionally binds name in this scope, overwriting any existing
// binding at the same level.
func (e *Environment) Define(name string, v value.Value) {
	e.values[name] = v
}

// Get returns the value bound to the name token, walking parent scopes.
func (e *Environment) Get(name token.Token) (value.Value, error) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.values[name.Lexeme]; ok {
			return v, nil
		}
	}
	return nil, undefined(name)
}

// Assign overwrites an existing binding, walking parent scopes. Assignment
// never creates a binding; an undeclared name is a runtime error.
func (e *Environment) Assign(name token.Token, v value.Value) error {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name.Lexeme]; ok {
			env.values[name.Lexeme] = v
			return nil
		}
	}
	return undefined(name)
}

func undefined(name token.Token) error {
	return &RuntimeError{
		Code:    diagnostics.EUnbound,
		Message: fmt.Sprintf("Undefined variable '%s'", name.Lexeme),
		Line:    name.Line,
	}
}
