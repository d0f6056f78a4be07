// Package runtime wires the scanner, parser, and interpreter into a single
// entry point for running source text.
package runtime

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golox/pkg/diagnostics"
	"golox/pkg/interpreter"
	"golox/pkg/lexer"
	"golox/pkg/parser"
)

// ErrRuntime marks a run that failed during evaluation. The failing
// statement's error has already been reported to stderr when this is
// returned, so callers map it to an exit code without re-printing.
var ErrRuntime = errors.New("runtime error")

// DiagnosticError carries the scan or parse diagnostics that aborted a run
// before evaluation started.
type DiagnosticError struct {
	Stage string // "scan" or "parse"
	Diags []diagnostics.Diagnostic
}

func (e *DiagnosticError) Error() string {
	return fmt.Sprintf("%s failed with %d error(s)", e.Stage, len(e.Diags))
}

// Runtime runs source text through the full pipeline against a persistent
// interpreter, so successive Run calls share one global environment. That is
// what makes it serve both batch execution and a REPL session.
type Runtime struct {
	stdout      io.Writer
	stderr      io.Writer
	prettyDiags bool
	debugTokens bool
	interp      *interpreter.Interpreter
}

// Option is a functional option for configuring the Runtime.
type Option func(*Runtime)

// WithStdout sets the writer program output goes to.
func WithStdout(w io.Writer) Option {
	return func(r *Runtime) {
		r.stdout = w
	}
}

// WithStderr sets the writer diagnostics and runtime errors go to.
func WithStderr(w io.Writer) Option {
	return func(r *Runtime) {
		r.stderr = w
	}
}

// WithJSONDiagnostics switches diagnostic reporting from the line-tagged text
// form to one JSON array per failed stage.
func WithJSONDiagnostics() Option {
	return func(r *Runtime) {
		r.prettyDiags = false
	}
}

// WithDebugTokens dumps the token stream to stderr before parsing.
func WithDebugTokens() Option {
	return func(r *Runtime) {
		r.debugTokens = true
	}
}

// New creates a Runtime with a fresh interpreter.
func New(opts ...Option) *Runtime {
	r := &Runtime{
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		prettyDiags: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.interp = interpreter.New(
		interpreter.WithStdout(r.stdout),
		interpreter.WithStderr(r.stderr),
	)
	return r
}

// Run scans, parses, and executes source. Scan errors abort before parsing;
// parse errors abort before evaluation; either way every diagnostic from the
// failed stage is reported to stderr and returned inside a DiagnosticError.
// A runtime error during evaluation skips only the statement that raised it
// and surfaces afterwards as ErrRuntime.
func (r *Runtime) Run(source string) error {
	tokens, diags := lexer.Scan(source)
	if r.debugTokens {
		for _, tok := range tokens {
			fmt.Fprintln(r.stderr, tok.String())
		}
	}
	if len(diags) > 0 {
		fmt.Fprintln(r.stderr, diagnostics.FormatDiagnostics(diags, r.prettyDiags))
		return &DiagnosticError{Stage: "scan", Diags: diags}
	}

	stmts, diags := parser.Parse(tokens)
	if len(diags) > 0 {
		fmt.Fprintln(r.stderr, diagnostics.FormatDiagnostics(diags, r.prettyDiags))
		return &DiagnosticError{Stage: "parse", Diags: diags}
	}

	if err := r.interp.Interpret(stmts); err != nil {
		return fmt.Errorf("%w: %s", ErrRuntime, err)
	}
	return nil
}

// Check scans and parses source without executing it, returning all
// diagnostics found. An empty slice means the source is well-formed.
func (r *Runtime) Check(source string) []diagnostics.Diagnostic {
	tokens, diags := lexer.Scan(source)
	if len(diags) > 0 {
		return diags
	}
	_, diags = parser.Parse(tokens)
	return diags
}

// Interpreter exposes the underlying interpreter, mostly for tests.
func (r *Runtime) Interpreter() *interpreter.Interpreter {
	return r.interp
}
