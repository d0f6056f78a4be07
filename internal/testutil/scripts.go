// Package testutil provides shared helpers for golox tests.
package testutil

import (
	"bytes"
	"testing"

	"golox/pkg/runtime"
)

// RunResult captures everything a script run produced.
type RunResult struct {
	Stdout string
	Stderr string
	Err    error
}

// RunScript executes source through a fresh Runtime with buffered output.
func RunScript(t *testing.T, source string, opts ...runtime.Option) RunResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	opts = append([]runtime.Option{
		runtime.WithStdout(&stdout),
		runtime.WithStderr(&stderr),
	}, opts...)
	rt := runtime.New(opts...)
	err := rt.Run(source)
	return RunResult{Stdout: stdout.String(), Stderr: stderr.String(), Err: err}
}

// MustRun executes source and fails the test on any error.
func MustRun(t *testing.T, source string) RunResult {
	t.Helper()
	res := RunScript(t, source)
	if res.Err != nil {
		t.Fatalf("unexpected run error: %v\nstderr: %s", res.Err, res.Stderr)
	}
	return res
}
