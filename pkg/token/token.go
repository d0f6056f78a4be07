// Package token defines the lexical token model shared by the scanner,
// parser, and interpreter.
package token

import "fmt"

// Type identifies the lexical category of a token.
type Type int

const (
	// Single-character tokens
	LeftParen Type = iota
	RightParen
	LeftBrace
	RightBrace
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Slash
	Star

	// One or two character tokens
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual

	// Literals
	Identifier
	String
	Number

	// Keywords
	And
	Class
	Else
	False
	Fun
	For
	If
	Nil
	Or
	Print
	Return
	Super
	This
	True
	Var
	While

	// Special
	EOF
)

var typeNames = map[Type]string{
	LeftParen:    "'('",
	RightParen:   "')'",
	LeftBrace:    "'{'",
	RightBrace:   "'}'",
	Comma:        "','",
	Dot:          "'.'",
	Minus:        "'-'",
	Plus:         "'+'",
	Semicolon:    "';'",
	Slash:        "'/'",
	Star:         "'*'",
	Bang:         "'!'",
	BangEqual:    "'!='",
	Equal:        "'='",
	EqualEqual:   "'=='",
	Greater:      "'>'",
	GreaterEqual: "'>='",
	Less:         "'<'",
	LessEqual:    "'<='",
	Identifier:   "identifier",
	String:       "string",
	Number:       "number",
	And:          "'and'",
	Class:        "'class'",
	Else:         "'else'",
	False:        "'false'",
	Fun:          "'fun'",
	For:          "'for'",
	If:           "'if'",
	Nil:          "'nil'",
	Or:           "'or'",
	Print:        "'print'",
	Return:       "'return'",
	Super:        "'super'",
	This:         "'this'",
	True:         "'true'",
	Var:          "'var'",
	While:        "'while'",
	EOF:          "end of file",
}

// String returns a human-readable name for diagnostics.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("token(%d)", int(t))
}

// Token is a single lexical unit. Tokens are created in one pass by the
// scanner and immutable thereafter. Every token except EOF carries the exact
// source substring it was scanned from in Lexeme; Literal holds the raw
// payload text for String and Number tokens and is empty otherwise.
type Token struct {
	Type    Type
	Lexeme  string
	Literal string
	Line    int
}

// String returns a debug form of the token.
func (t Token) String() string {
	if t.Literal != "" {
		return fmt.Sprintf("%s %q (%s) [line %d]", t.Type, t.Lexeme, t.Literal, t.Line)
	}
	return fmt.Sprintf("%s %q [line %d]", t.Type, t.Lexeme, t.Line)
}
