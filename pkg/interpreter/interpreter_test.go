package interpreter_test

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"golox/pkg/ast"
	"golox/pkg/diagnostics"
	"golox/pkg/interpreter"
	"golox/pkg/lexer"
	"golox/pkg/parser"
	"golox/pkg/token"
	"golox/pkg/value"
)

// --- helpers ---

// newBuffered returns an interpreter whose output is captured.
func newBuffered() (*interpreter.Interpreter, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	in := interpreter.New(
		interpreter.WithStdout(&stdout),
		interpreter.WithStderr(&stderr),
	)
	return in, &stdout, &stderr
}

// run parses and executes source, returning captured stdout and the first
// runtime error.
func run(t *testing.T, src string) (string, error) {
	t.Helper()
	tokens, diags := lexer.Scan(src)
	if len(diags) != 0 {
		t.Fatalf("unexpected scan diagnostics: %v", diags)
	}
	stmts, diags := parser.Parse(tokens)
	if len(diags) != 0 {
		t.Fatalf("unexpected parse diagnostics: %v", diags)
	}
	in, stdout, _ := newBuffered()
	err := in.Interpret(stmts)
	return stdout.String(), err
}

// mustRun executes source and fails the test on any runtime error.
func mustRun(t *testing.T, src string) string {
	t.Helper()
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	return out
}

// eval evaluates a single expression against a fresh interpreter.
func eval(t *testing.T, src string) (value.Value, error) {
	t.Helper()
	tokens, diags := lexer.Scan(src)
	if len(diags) != 0 {
		t.Fatalf("unexpected scan diagnostics: %v", diags)
	}
	expr, diags := parser.ParseExpression(tokens)
	if len(diags) != 0 {
		t.Fatalf("unexpected parse diagnostics: %v", diags)
	}
	in, _, _ := newBuffered()
	return in.Evaluate(expr, in.Globals())
}

// mustEval evaluates an expression and fails the test on error.
func mustEval(t *testing.T, src string) value.Value {
	t.Helper()
	v, err := eval(t, src)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	return v
}

// assertRuntimeError checks the error's code and exact message.
func assertRuntimeError(t *testing.T, err error, code, message string) {
	t.Helper()
	if err == nil {
		t.Fatal("expected runtime error, got nil")
	}
	var rtErr *interpreter.RuntimeError
	if !errors.As(err, &rtErr) {
		t.Fatalf("expected RuntimeError, got %T: %v", err, err)
	}
	if rtErr.Code != code {
		t.Errorf("expected code %s, got %s", code, rtErr.Code)
	}
	if rtErr.Message != message {
		t.Errorf("expected message %q, got %q", message, rtErr.Message)
	}
}

// ---------------------------------------------------------------------------
// Test: expression evaluation over every operator
// ---------------------------------------------------------------------------
func TestEvalExpressions(t *testing.T) {
	tests := []struct {
		source   string
		expected value.Value
	}{
		// arithmetic
		{"1 + 2", value.NewNumber(3)},
		{"5 - 3", value.NewNumber(2)},
		{"4 * 2.5", value.NewNumber(10)},
		{"7 / 2", value.NewNumber(3.5)},
		{"2 + 2 * 2", value.NewNumber(6)},
		{"(2 + 2) * 2", value.NewNumber(8)},
		{"-3 + 1", value.NewNumber(-2)},
		{"--3", value.NewNumber(3)},
		// string concatenation
		{`"foo" + "bar"`, value.NewStr("foobar")},
		{`"" + ""`, value.NewStr("")},
		// comparison
		{"1 < 2", value.NewBoolean(true)},
		{"2 <= 2", value.NewBoolean(true)},
		{"1 > 2", value.NewBoolean(false)},
		{"2 >= 3", value.NewBoolean(false)},
		// equality, including cross-type
		{"1 == 1", value.NewBoolean(true)},
		{"1 != 2", value.NewBoolean(true)},
		{`"a" == "a"`, value.NewBoolean(true)},
		{`1 == "1"`, value.NewBoolean(false)},
		{"nil == nil", value.NewBoolean(true)},
		{"nil == false", value.NewBoolean(false)},
		{"true == true", value.NewBoolean(true)},
		// unary not
		{"!true", value.NewBoolean(false)},
		{"!false", value.NewBoolean(true)},
		{"!nil", value.NewBoolean(true)},
		{"!!true", value.NewBoolean(true)},
		// literals
		{"nil", value.NewNil()},
		{`"hello"`, value.NewStr("hello")},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			got := mustEval(t, tt.source)
			if !value.Equal(got, tt.expected) {
				t.Errorf("expected %s, got %s", tt.expected.String(), got.String())
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Test: division follows float semantics, no zero check
// ---------------------------------------------------------------------------
func TestDivisionByZero(t *testing.T) {
	v := mustEval(t, "1 / 0")
	num, ok := v.(value.Number)
	if !ok {
		t.Fatalf("expected number, got %T", v)
	}
	if !math.IsInf(num.Value, 1) {
		t.Errorf("expected +Inf, got %v", num.Value)
	}

	v = mustEval(t, "0 / 0")
	num = v.(value.Number)
	if !math.IsNaN(num.Value) {
		t.Errorf("expected NaN, got %v", num.Value)
	}
}

// ---------------------------------------------------------------------------
// Test: operand type errors carry the exact messages
// ---------------------------------------------------------------------------
func TestTypeErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		message string
	}{
		{"negate string", `-"abc"`, "Operand must be a number"},
		{"negate bool", "-true", "Operand must be a number"},
		{"not number", "!1", "Operand must be a boolean"},
		{"not string", `!"x"`, "Operand must be a boolean"},
		{"mixed plus", `1 + "a"`, "Operands must be two numbers or two strings"},
		{"plus bool", "true + true", "Operands must be two numbers or two strings"},
		{"minus string", `"a" - 1`, "Operands must be numbers"},
		{"compare string", `"a" < "b"`, "Operands must be numbers"},
		{"logical number", "1 or true", "Operands of a logical operator must be booleans"},
		{"logical string", `"x" and true`, "Operands of a logical operator must be booleans"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := eval(t, tt.source)
			assertRuntimeError(t, err, diagnostics.EType, tt.message)
		})
	}
}

// ---------------------------------------------------------------------------
// Test: error message rendering carries the line tag
// ---------------------------------------------------------------------------
func TestRuntimeErrorFormat(t *testing.T) {
	err := &interpreter.RuntimeError{
		Code:    diagnostics.EType,
		Message: "Operands must be numbers",
		Line:    3,
	}
	expected := "Operands must be numbers\n[line 3]"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

// ---------------------------------------------------------------------------
// Test: logical operators short-circuit and yield operand values
// ---------------------------------------------------------------------------
func TestLogicalOperators(t *testing.T) {
	tests := []struct {
		source   string
		expected value.Value
	}{
		{"true or false", value.NewBoolean(true)},
		{"false or true", value.NewBoolean(true)},
		{`nil or "fallback"`, value.NewStr("fallback")},
		{"false and true", value.NewBoolean(false)},
		{"nil and true", value.NewNil()},
		{"true and nil", value.NewNil()},
		{`true and "x"`, value.NewStr("x")},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			got := mustEval(t, tt.source)
			if !value.Equal(got, tt.expected) {
				t.Errorf("expected %s, got %s", tt.expected.String(), got.String())
			}
		})
	}
}

func TestLogicalShortCircuitSkipsRight(t *testing.T) {
	// the right operand references an undefined variable; short-circuiting
	// means it is never evaluated
	v := mustEval(t, "true or ghost")
	if !value.Equal(v, value.NewBoolean(true)) {
		t.Errorf("expected true, got %s", v.String())
	}
	v = mustEval(t, "false and ghost")
	if !value.Equal(v, value.NewBoolean(false)) {
		t.Errorf("expected false, got %s", v.String())
	}
}

// ---------------------------------------------------------------------------
// Test: variables, assignment, and print statements
// ---------------------------------------------------------------------------
func TestVariables(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected string
	}{
		{"declare and print", "var x = 10; print x;", "10\n"},
		{"declare without init", "var x; print x;", "nil\n"},
		{"assign", "var x = 10; x = x + 5; print x;", "15\n"},
		{"assignment is an expression", "var x; print x = 3;", "3\n"},
		{"chained assignment", "var a; var b; a = b = 7; print a; print b;", "7\n7\n"},
		{"redeclare", "var x = 1; var x = 2; print x;", "2\n"},
		{"string number print", `print "n = "; print 1.5;`, "n = \n1.5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := mustRun(t, tt.source)
			if out != tt.expected {
				t.Errorf("expected output %q, got %q", tt.expected, out)
			}
		})
	}
}

func TestUndefinedVariable(t *testing.T) {
	_, err := run(t, "print ghost;")
	assertRuntimeError(t, err, diagnostics.EUnbound, "Undefined variable 'ghost'")

	_, err = run(t, "ghost = 1;")
	assertRuntimeError(t, err, diagnostics.EUnbound, "Undefined variable 'ghost'")
}

// ---------------------------------------------------------------------------
// Test: block scoping
// ---------------------------------------------------------------------------
func TestBlockScoping(t *testing.T) {
	source := `
var a = "global";
{
  var a = "inner";
  print a;
}
print a;
{
  a = "mutated";
}
print a;
`
	out := mustRun(t, source)
	expected := "inner\nglobal\nmutated\n"
	if out != expected {
		t.Errorf("expected %q, got %q", expected, out)
	}
}

func TestBlockLocalDoesNotLeak(t *testing.T) {
	_, err := run(t, "{ var hidden = 1; } print hidden;")
	assertRuntimeError(t, err, diagnostics.EUnbound, "Undefined variable 'hidden'")
}

// ---------------------------------------------------------------------------
// Test: control flow
// ---------------------------------------------------------------------------
func TestIfStatement(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected string
	}{
		{"then branch", "if (true) print 1; else print 2;", "1\n"},
		{"else branch", "if (false) print 1; else print 2;", "2\n"},
		{"no else, false", "if (false) print 1;", ""},
		{"nil is false", "if (nil) print 1; else print 2;", "2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := mustRun(t, tt.source)
			if out != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, out)
			}
		})
	}
}

func TestWhileLoop(t *testing.T) {
	source := `
var i = 0;
var sum = 0;
while (i < 5) {
  i = i + 1;
  sum = sum + i;
}
print sum;
`
	out := mustRun(t, source)
	if out != "15\n" {
		t.Errorf("expected 15, got %q", out)
	}
}

func TestNonBooleanCondition(t *testing.T) {
	_, err := run(t, "if (1) print 1;")
	assertRuntimeError(t, err, diagnostics.EType, "Condition must be a boolean")

	_, err = run(t, `while ("x") print 1;`)
	assertRuntimeError(t, err, diagnostics.EType, "Condition must be a boolean")
}

// ---------------------------------------------------------------------------
// Test: a runtime error skips only the statement that raised it
// ---------------------------------------------------------------------------
func TestStatementIsolation(t *testing.T) {
	out, err := run(t, "print 1; print ghost; print 2;")
	if err == nil {
		t.Fatal("expected runtime error")
	}
	if out != "1\n2\n" {
		t.Errorf("expected execution to continue past the error, got %q", out)
	}
}

func TestErrorInsideBlockAbortsBlock(t *testing.T) {
	// inside a block the error propagates out of the whole statement
	out, err := run(t, "{ print 1; print ghost; print 2; } print 3;")
	if err == nil {
		t.Fatal("expected runtime error")
	}
	if out != "1\n3\n" {
		t.Errorf("expected block to abort at the error, got %q", out)
	}
}

// ---------------------------------------------------------------------------
// Test: unsupported constructs raise E_UNSUPPORTED
// ---------------------------------------------------------------------------
func TestUnsupportedConstructs(t *testing.T) {
	in, _, _ := newBuffered()

	paren := token.Token{Type: token.RightParen, Lexeme: ")", Line: 1}
	call := &ast.Call{
		Callee: &ast.Variable{Name: token.Token{Type: token.Identifier, Lexeme: "f", Line: 1}},
		Paren:  paren,
	}
	_, err := in.Evaluate(call, in.Globals())
	assertRuntimeError(t, err, diagnostics.EUnsupported, "call expressions are not supported yet")

	ret := &ast.ReturnStmt{Keyword: token.Token{Type: token.Return, Lexeme: "return", Line: 2}}
	err = in.Execute(ret, in.Globals())
	assertRuntimeError(t, err, diagnostics.EUnsupported, "'return' statements are not supported yet")
}

// ---------------------------------------------------------------------------
// Test: interpreter state persists across Interpret calls
// ---------------------------------------------------------------------------
func TestPersistentGlobals(t *testing.T) {
	in, stdout, _ := newBuffered()

	first := mustParse(t, "var counter = 1;")
	if err := in.Interpret(first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := mustParse(t, "counter = counter + 1; print counter;")
	if err := in.Interpret(second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout.String() != "2\n" {
		t.Errorf("expected 2, got %q", stdout.String())
	}
}

func mustParse(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	tokens, diags := lexer.Scan(src)
	if len(diags) != 0 {
		t.Fatalf("unexpected scan diagnostics: %v", diags)
	}
	stmts, diags := parser.Parse(tokens)
	if len(diags) != 0 {
		t.Fatalf("unexpected parse diagnostics: %v", diags)
	}
	return stmts
}
