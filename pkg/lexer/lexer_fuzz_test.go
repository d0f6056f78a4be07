package lexer

import (
	"testing"
)

// FuzzScan feeds random inputs to the scanner to catch panics.
// The scanner should never panic — it should report diagnostics for invalid
// input and keep going.
func FuzzScan(f *testing.F) {
	// Seed corpus with valid tokens and edge cases
	seeds := []string{
		// Keywords
		`and class else false fun for if nil`,
		`or print return super this true var while`,
		// Literals
		`42 3.14 0 0.5`,
		`"hello" "two words"`,
		// Operators
		`( ) { } , . - + ; / *`,
		`! != = == < <= > >=`,
		// Identifiers
		`x foo bar_baz _private`,
		// Comments
		`// this is a comment`,
		// Statements
		`var x = 42;`,
		`print 1 + 2 * 3;`,
		`{ var y = "nested"; }`,
		// Edge cases
		``,
		`   `,
		"\t\n\r",
		`"unterminated`,
		`"""`,
		`@#$^&`,
		`123.`,
		`.5`,
		"\"multi\nline\"",
		// Long input
		`var aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa = 1;`,
	}

	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		// Scan should never panic, regardless of input.
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("Scan panicked on input %q: %v", input, r)
				}
			}()
			Scan(input)
		}()
	})
}
