// Package diagnostics defines scan, parse, and runtime diagnostic records
// and their display formats.
package diagnostics

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Diagnostic code constants.
const (
	EScan        = "E_SCAN"
	EParse       = "E_PARSE"
	EType        = "E_TYPE"
	EUnbound     = "E_UNBOUND"
	EUnsupported = "E_UNSUPPORTED"
	EIO          = "E_IO"
)

// Diagnostic represents a single scan, parse, or runtime diagnostic. Line is
// 1-based; Lexeme is the offending source text when one exists.
type Diagnostic struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Line    int    `json:"line"`
	Lexeme  string `json:"lexeme,omitempty"`
	Hint    string `json:"hint,omitempty"`
}

// MakeDiag creates a new Diagnostic.
func MakeDiag(code, message string, line int, lexeme string) Diagnostic {
	return Diagnostic{
		Code:    code,
		Message: message,
		Line:    line,
		Lexeme:  lexeme,
	}
}

var errLabel = color.New(color.FgRed, color.Bold)

// FormatDiagnostic formats a single diagnostic for display. Pretty output is
// the line-tagged text convention used everywhere in this interpreter:
//
//	[line 4] Error at '=': Invalid assignment target.
//
// Non-pretty output is a single JSON object for tooling.
func FormatDiagnostic(d Diagnostic, pretty bool) string {
	if !pretty {
		b, _ := json.Marshal(d)
		return string(b)
	}
	var out string
	if d.Lexeme != "" {
		out = fmt.Sprintf("[line %d] %s at '%s': %s", d.Line, errLabel.Sprint("Error"), d.Lexeme, d.Message)
	} else {
		out = fmt.Sprintf("[line %d] %s: %s", d.Line, errLabel.Sprint("Error"), d.Message)
	}
	if d.Hint != "" {
		out += fmt.Sprintf("\n  hint: %s", d.Hint)
	}
	return out
}

// FormatDiagnostics formats a slice of diagnostics for display.
func FormatDiagnostics(diags []Diagnostic, pretty bool) string {
	if !pretty {
		b, _ := json.Marshal(diags)
		return string(b)
	}
	parts := make([]string, len(diags))
	for i, d := range diags {
		parts[i] = FormatDiagnostic(d, true)
	}
	return strings.Join(parts, "\n")
}
