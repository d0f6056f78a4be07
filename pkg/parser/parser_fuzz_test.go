package parser_test

import (
	"testing"

	"golox/pkg/lexer"
	"golox/pkg/parser"
)

// FuzzParse feeds random inputs through scan and parse to catch panics.
// The parser should never panic — it should return diagnostics for invalid
// input.
func FuzzParse(f *testing.F) {
	// Seed corpus with valid and edge-case programs
	seeds := []string{
		// Minimal statements
		`print 42;`,
		`1 + 2;`,
		`var x = 1;`,
		`var x;`,
		// Expressions at every precedence level
		`print 1 + 2 * 3;`,
		`print (1 + 2) * 3;`,
		`print -1 - -2;`,
		`print !true == false;`,
		`print 1 < 2 and 2 <= 3 or nil == nil;`,
		// Assignment
		`var x = 1; x = x + 1;`,
		`var a; var b; a = b = 3;`,
		// Blocks and control flow
		`{ var x = 1; { var y = 2; } }`,
		`if (true) print 1; else print 2;`,
		`var i = 0; while (i < 3) i = i + 1;`,
		// Strings
		`print "hello" + " " + "world";`,
		// Broken statements the parser must recover from
		``,
		`   `,
		`;`,
		`var;`,
		`var x = ;`,
		`print`,
		`(1 + 2`,
		`{ print 1;`,
		`if (true`,
		`1 = 2;`,
		`"unterminated`,
		`@#$`,
	}

	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		// Parse should never panic, regardless of input. It may return
		// diagnostics or an empty statement list, but should not crash.
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("parser.Parse panicked on input %q: %v", input, r)
				}
			}()
			tokens, _ := lexer.Scan(input)
			parser.Parse(tokens)
		}()
	})
}
