// Package interpreter implements the tree-walking evaluator.
package interpreter

import (
	"fmt"
	"io"
	"os"

	"golox/pkg/ast"
	"golox/pkg/diagnostics"
	"golox/pkg/token"
	"golox/pkg/value"
)

// RuntimeError represents an error raised during evaluation: an operand type
// mismatch, a reference to an undefined variable, or a construct the
// evaluator does not support yet.
type RuntimeError struct {
	Code    string
	Message string
	Line    int
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Line)
}

// Interpreter walks statement and expression trees against a global
// environment that lives for the lifetime of the interpreter, so a REPL
// session keeps its bindings across inputs. The environment is passed
// explicitly through every evaluation call, keeping the walker re-entrant.
type Interpreter struct {
	globals *Environment
	stdout  io.Writer
	stderr  io.Writer
}

// Option is a functional option for configuring the Interpreter.
type Option func(*Interpreter)

// WithStdout sets the writer print statements write to.
func WithStdout(w io.Writer) Option {
	return func(in *Interpreter) {
		in.stdout = w
	}
}

// WithStderr sets the writer runtime errors are reported to.
func WithStderr(w io.Writer) Option {
	return func(in *Interpreter) {
		in.stderr = w
	}
}

// New creates an Interpreter with a fresh global environment.
func New(opts ...Option) *Interpreter {
	in := &Interpreter{
		globals: NewEnvironment(),
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Globals exposes the global environment, mostly for tests and the REPL.
func (in *Interpreter) Globals() *Environment {
	return in.globals
}

// Interpret executes each statement in sequence. A runtime error aborts only
// the statement that raised it: the error is reported to stderr and execution
// continues with the next top-level statement. It returns the first error
// encountered, or nil if every statement succeeded.
func (in *Interpreter) Interpret(stmts []ast.Stmt) error {
	var first error
	for _, stmt := range stmts {
		if err := in.Execute(stmt, in.globals); err != nil {
			fmt.Fprintf(in.stderr, "%s\n", err.Error())
			if first == nil {
				first = err
			}
		}
	}
	return first
}

// Execute runs a single statement against the given environment.
func (in *Interpreter) Execute(stmt ast.Stmt, env *Environment) error {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := in.Evaluate(s.Expression, env)
		return err

	case *ast.PrintStmt:
		v, err := in.Evaluate(s.Expression, env)
		if err != nil {
			return err
		}
		fmt.Fprintln(in.stdout, v.String())
		return nil

	case *ast.VarStmt:
		var v value.Value = value.Nil{}
		if s.Initializer != nil {
			var err error
			v, err = in.Evaluate(s.Initializer, env)
			if err != nil {
				return err
			}
		}
		env.Define(s.Name.Lexeme, v)
		return nil

	case *ast.BlockStmt:
		return in.executeBlock(s.Statements, env.Child())

	case *ast.IfStmt:
		cond, err := in.Evaluate(s.Condition, env)
		if err != nil {
			return err
		}
		truthy, ok := truthiness(cond)
		if !ok {
			return typeError("Condition must be a boolean", conditionLine(s.Condition))
		}
		if truthy {
			return in.Execute(s.ThenBranch, env)
		}
		if s.ElseBranch != nil {
			return in.Execute(s.ElseBranch, env)
		}
		return nil

	case *ast.WhileStmt:
		for {
			cond, err := in.Evaluate(s.Condition, env)
			if err != nil {
				return err
			}
			truthy, ok := truthiness(cond)
			if !ok {
				return typeError("Condition must be a boolean", conditionLine(s.Condition))
			}
			if !truthy {
				return nil
			}
			if err := in.Execute(s.Body, env); err != nil {
				return err
			}
		}

	case *ast.FunctionStmt:
		return unsupported("function declarations", s.Name.Line)
	case *ast.ReturnStmt:
		return unsupported("'return' statements", s.Keyword.Line)
	case *ast.ClassStmt:
		return unsupported("class declarations", s.Name.Line)

	default:
		return unsupported(fmt.Sprintf("%s statements", stmt.Kind()), 0)
	}
}

func (in *Interpreter) executeBlock(stmts []ast.Stmt, env *Environment) error {
	for _, stmt := range stmts {
		if err := in.Execute(stmt, env); err != nil {
			return err
		}
	}
	return nil
}

// Evaluate computes the value of an expression against the given environment.
func (in *Interpreter) Evaluate(expr ast.Expr, env *Environment) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		if e.Value == nil {
			return nil, typeError("Literal has no value", 0)
		}
		return e.Value, nil

	case *ast.Grouping:
		return in.Evaluate(e.Expression, env)

	case *ast.Variable:
		return env.Get(e.Name)

	case *ast.Assign:
		v, err := in.Evaluate(e.Value, env)
		if err != nil {
			return nil, err
		}
		if err := env.Assign(e.Name, v); err != nil {
			return nil, err
		}
		// The assignment itself is an expression yielding the assigned
		// value, which is what makes chained assignment work.
		return v, nil

	case *ast.Unary:
		return in.evalUnary(e, env)

	case *ast.Binary:
		return in.evalBinary(e, env)

	case *ast.Logical:
		return in.evalLogical(e, env)

	case *ast.Call:
		return nil, unsupported("call expressions", e.Paren.Line)
	case *ast.Get:
		return nil, unsupported("property access", e.Name.Line)
	case *ast.Set:
		return nil, unsupported("property assignment", e.Name.Line)
	case *ast.This:
		return nil, unsupported("'this' expressions", e.Keyword.Line)
	case *ast.Super:
		return nil, unsupported("'super' expressions", e.Keyword.Line)

	default:
		return nil, unsupported(fmt.Sprintf("%s expressions", expr.Kind()), 0)
	}
}

func (in *Interpreter) evalUnary(e *ast.Unary, env *Environment) (value.Value, error) {
	operand, err := in.Evaluate(e.Right, env)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Type {
	case token.Minus:
		num, ok := operand.(value.Number)
		if !ok {
			return nil, typeError("Operand must be a number", e.Operator.Line)
		}
		return value.NewNumber(-num.Value), nil

	case token.Bang:
		// Deliberately narrow: only booleans negate, and nil negates to
		// true. Any other operand type is an error rather than "truthy".
		switch v := operand.(type) {
		case value.Boolean:
			return value.NewBoolean(!v.Value), nil
		case value.Nil:
			return value.NewBoolean(true), nil
		default:
			return nil, typeError("Operand must be a boolean", e.Operator.Line)
		}
	}

	return nil, typeError(fmt.Sprintf("Unknown unary operator %s", e.Operator.Type), e.Operator.Line)
}

func (in *Interpreter) evalBinary(e *ast.Binary, env *Environment) (value.Value, error) {
	left, err := in.Evaluate(e.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := in.Evaluate(e.Right, env)
	if err != nil {
		return nil, err
	}

	line := e.Operator.Line

	switch e.Operator.Type {
	case token.Plus:
		if l, ok := left.(value.Number); ok {
			if r, ok := right.(value.Number); ok {
				return value.NewNumber(l.Value + r.Value), nil
			}
		}
		if l, ok := left.(value.Str); ok {
			if r, ok := right.(value.Str); ok {
				return value.NewStr(l.Value + r.Value), nil
			}
		}
		return nil, typeError("Operands must be two numbers or two strings", line)

	case token.Minus, token.Slash, token.Star:
		l, lok := left.(value.Number)
		r, rok := right.(value.Number)
		if !lok || !rok {
			return nil, typeError("Operands must be numbers", line)
		}
		switch e.Operator.Type {
		case token.Minus:
			return value.NewNumber(l.Value - r.Value), nil
		case token.Slash:
			// No divide-by-zero check: native float semantics apply, so
			// 1/0 is +Inf and 0/0 is NaN.
			return value.NewNumber(l.Value / r.Value), nil
		case token.Star:
			return value.NewNumber(l.Value * r.Value), nil
		}

	case token.Greater, token.GreaterEqual, token.Less, token.LessEqual:
		l, lok := left.(value.Number)
		r, rok := right.(value.Number)
		if !lok || !rok {
			return nil, typeError("Operands must be numbers", line)
		}
		switch e.Operator.Type {
		case token.Greater:
			return value.NewBoolean(l.Value > r.Value), nil
		case token.GreaterEqual:
			return value.NewBoolean(l.Value >= r.Value), nil
		case token.Less:
			return value.NewBoolean(l.Value < r.Value), nil
		case token.LessEqual:
			return value.NewBoolean(l.Value <= r.Value), nil
		}

	case token.EqualEqual:
		return value.NewBoolean(value.Equal(left, right)), nil
	case token.BangEqual:
		return value.NewBoolean(!value.Equal(left, right)), nil
	}

	return nil, typeError(fmt.Sprintf("Unknown binary operator %s", e.Operator.Type), line)
}

// evalLogical short-circuits and yields an operand value, not a coerced
// boolean: 'a or b' is a when a is truthy, else b.
func (in *Interpreter) evalLogical(e *ast.Logical, env *Environment) (value.Value, error) {
	left, err := in.Evaluate(e.Left, env)
	if err != nil {
		return nil, err
	}

	truthy, ok := truthiness(left)
	if !ok {
		return nil, typeError("Operands of a logical operator must be booleans", e.Operator.Line)
	}

	if e.Operator.Type == token.Or {
		if truthy {
			return left, nil
		}
	} else {
		if !truthy {
			return left, nil
		}
	}
	return in.Evaluate(e.Right, env)
}

// truthiness applies the same narrow rule as unary '!': booleans are
// themselves, nil is false, and no other type coerces.
func truthiness(v value.Value) (truthy, ok bool) {
	switch val := v.(type) {
	case value.Boolean:
		return val.Value, true
	case value.Nil:
		return false, true
	default:
		return false, false
	}
}

// conditionLine digs out a line number for condition type errors.
func conditionLine(expr ast.Expr) int {
	switch e := expr.(type) {
	case *ast.Variable:
		return e.Name.Line
	case *ast.Assign:
		return e.Name.Line
	case *ast.Unary:
		return e.Operator.Line
	case *ast.Binary:
		return e.Operator.Line
	case *ast.Logical:
		return e.Operator.Line
	case *ast.Grouping:
		return conditionLine(e.Expression)
	default:
		return 0
	}
}

func typeError(msg string, line int) error {
	return &RuntimeError{Code: diagnostics.EType, Message: msg, Line: line}
}

func unsupported(what string, line int) error {
	return &RuntimeError{
		Code:    diagnostics.EUnsupported,
		Message: fmt.Sprintf("%s are not supported yet", what),
		Line:    line,
	}
}
