// Package lexer implements the source tokenizer.
package lexer

import (
	"fmt"

	"golox/pkg/diagnostics"
	"golox/pkg/token"
)

var keywords = map[string]token.Type{
	"and":    token.And,
	"class":  token.Class,
	"else":   token.Else,
	"false":  token.False,
	"fun":    token.Fun,
	"for":    token.For,
	"if":     token.If,
	"nil":    token.Nil,
	"or":     token.Or,
	"print":  token.Print,
	"return": token.Return,
	"super":  token.Super,
	"this":   token.This,
	"true":   token.True,
	"var":    token.Var,
	"while":  token.While,
}

// Two-character operators, checked before the single-character table so the
// longest match wins.
var twoCharOps = []struct {
	first  byte
	second byte
	typ    token.Type
}{
	{'!', '=', token.BangEqual},
	{'=', '=', token.EqualEqual},
	{'<', '=', token.LessEqual},
	{'>', '=', token.GreaterEqual},
}

var oneCharOps = map[byte]token.Type{
	'(': token.LeftParen,
	')': token.RightParen,
	'{': token.LeftBrace,
	'}': token.RightBrace,
	',': token.Comma,
	'.': token.Dot,
	'-': token.Minus,
	'+': token.Plus,
	';': token.Semicolon,
	'*': token.Star,
	'!': token.Bang,
	'=': token.Equal,
	'<': token.Less,
	'>': token.Greater,
}

type scanner struct {
	source  string
	tokens  []token.Token
	diags   []diagnostics.Diagnostic
	start   int
	current int
	line    int
}

func newScanner(source string) *scanner {
	return &scanner{
		source: source,
		line:   1,
	}
}

func (s *scanner) atEnd() bool {
	return s.current >= len(s.source)
}

func (s *scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *scanner) peekNext() byte {
	if s.current+1 >= len(s.source) {
		return 0
	}
	return s.source[s.current+1]
}

func (s *scanner) advance() byte {
	ch := s.source[s.current]
	s.current++
	return ch
}

// match consumes the next character only if it equals expected.
func (s *scanner) match(expected byte) bool {
	if s.atEnd() || s.source[s.current] != expected {
		return false
	}
	s.current++
	return true
}

func (s *scanner) addToken(typ token.Type) {
	s.addTokenLiteral(typ, "")
}

func (s *scanner) addTokenLiteral(typ token.Type, literal string) {
	s.tokens = append(s.tokens, token.Token{
		Type:    typ,
		Lexeme:  s.source[s.start:s.current],
		Literal: literal,
		Line:    s.line,
	})
}

func (s *scanner) addError(msg string) {
	s.diags = append(s.diags, diagnostics.MakeDiag(diagnostics.EScan, msg, s.line, ""))
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlphaNumeric(ch byte) bool {
	return isAlpha(ch) || isDigit(ch)
}

func (s *scanner) scanToken() {
	ch := s.advance()

	if isAlpha(ch) {
		s.identifier()
		return
	}
	if isDigit(ch) {
		s.number()
		return
	}

	switch ch {
	case ' ', '\r', '\t':
		// discarded
	case '\n':
		s.line++
	case '/':
		if s.match('/') {
			// line comment, consumed through end of line
			for !s.atEnd() && s.peek() != '\n' {
				s.advance()
			}
		} else {
			s.addToken(token.Slash)
		}
	case '"':
		s.str()
	default:
		for _, op := range twoCharOps {
			if ch == op.first && s.match(op.second) {
				s.addToken(op.typ)
				return
			}
		}
		if typ, ok := oneCharOps[ch]; ok {
			s.addToken(typ)
			return
		}
		s.addError(fmt.Sprintf("Unexpected character '%c'", ch))
	}
}

func (s *scanner) identifier() {
	for !s.atEnd() && isAlphaNumeric(s.peek()) {
		s.advance()
	}
	text := s.source[s.start:s.current]
	if typ, ok := keywords[text]; ok {
		s.addToken(typ)
		return
	}
	s.addToken(token.Identifier)
}

func (s *scanner) number() {
	for !s.atEnd() && isDigit(s.peek()) {
		s.advance()
	}

	// Fractional part only if a digit follows the dot; otherwise the dot is
	// left for the next scan step.
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for !s.atEnd() && isDigit(s.peek()) {
			s.advance()
		}
	}

	s.addTokenLiteral(token.Number, s.source[s.start:s.current])
}

func (s *scanner) str() {
	for !s.atEnd() && s.peek() != '"' {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}

	if s.atEnd() {
		s.addError("Unterminated string")
		return
	}

	s.advance() // closing "
	s.addTokenLiteral(token.String, s.source[s.start+1:s.current-1])
}

// Scan breaks source text into a token sequence ending in an EOF sentinel.
// Scan errors (unterminated strings, unrecognized characters) are collected
// as diagnostics and scanning continues past them; the caller decides whether
// to abort before parsing.
func Scan(source string) ([]token.Token, []diagnostics.Diagnostic) {
	s := newScanner(source)
	for !s.atEnd() {
		s.start = s.current
		s.scanToken()
	}
	s.tokens = append(s.tokens, token.Token{Type: token.EOF, Line: s.line})
	return s.tokens, s.diags
}
