// Package parser implements the recursive-descent parser.
//
// Each grammar rule is one method; operator precedence is encoded by call
// nesting, with every binary level left-folding into nested Binary nodes:
//
//	program    → declaration* EOF
//	declaration→ "var" varDecl | statement
//	varDecl    → IDENTIFIER ("=" expression)? ";"
//	statement  → "print" expression ";" | block | ifStmt | whileStmt | exprStmt
//	block      → "{" declaration* "}"
//	ifStmt     → "if" "(" expression ")" statement ("else" statement)?
//	whileStmt  → "while" "(" expression ")" statement
//	exprStmt   → expression ";"
//	expression → assignment
//	assignment → IDENTIFIER "=" assignment | logicOr
//	logicOr    → logicAnd ("or" logicAnd)*
//	logicAnd   → equality ("and" equality)*
//	equality   → comparison (("!="|"==") comparison)*
//	comparison → term ((">"|">="|"<"|"<=") term)*
//	term       → factor (("-"|"+") factor)*
//	factor     → unary (("/"|"*") unary)*
//	unary      → ("!"|"-") unary | primary
//	primary    → NUMBER | STRING | "true" | "false" | "nil"
//	             | "(" expression ")" | IDENTIFIER
package parser

import (
	"strconv"

	"golox/pkg/ast"
	"golox/pkg/diagnostics"
	"golox/pkg/token"
	"golox/pkg/value"
)

type parser struct {
	tokens []token.Token
	pos    int
	diags  []diagnostics.Diagnostic
}

// Parse converts a token sequence into a statement list. On grammar errors it
// records a diagnostic, synchronizes to the next statement boundary, and
// keeps parsing, so one broken statement yields one diagnostic rather than a
// cascade. It returns every statement that parsed cleanly together with all
// recorded diagnostics; callers treat the parse as failed when any diagnostic
// was recorded.
func Parse(tokens []token.Token) ([]ast.Stmt, []diagnostics.Diagnostic) {
	p := &parser{tokens: tokens}

	var stmts []ast.Stmt
	for !p.isAtEnd() {
		stmt := p.declaration()
		if stmt == nil {
			p.synchronize()
			continue
		}
		stmts = append(stmts, stmt)
	}
	return stmts, p.diags
}

// ParseExpression parses a single expression, mostly for tests and the REPL.
func ParseExpression(tokens []token.Token) (ast.Expr, []diagnostics.Diagnostic) {
	p := &parser{tokens: tokens}
	expr := p.expression()
	return expr, p.diags
}

func (p *parser) peek() token.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos]
}

func (p *parser) previous() token.Token {
	return p.tokens[p.pos-1]
}

func (p *parser) isAtEnd() bool {
	return p.peek().Type == token.EOF
}

func (p *parser) advance() token.Token {
	if !p.isAtEnd() {
		p.pos++
	}
	return p.previous()
}

func (p *parser) check(typ token.Type) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == typ
}

func (p *parser) match(types ...token.Type) bool {
	for _, typ := range types {
		if p.check(typ) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *parser) consume(typ token.Type, msg string) (token.Token, bool) {
	if p.check(typ) {
		return p.advance(), true
	}
	p.addError(p.peek(), msg)
	return p.peek(), false
}

func (p *parser) addError(tok token.Token, msg string) {
	lexeme := tok.Lexeme
	if tok.Type == token.EOF {
		lexeme = "end"
	}
	p.diags = append(p.diags, diagnostics.MakeDiag(diagnostics.EParse, msg, tok.Line, lexeme))
}

// synchronize discards tokens until a statement boundary: just past a ';' or
// just before a token that starts a new statement. This bounds error cascades
// to one diagnostic per broken statement.
func (p *parser) synchronize() {
	p.advance()

	for !p.isAtEnd() {
		if p.previous().Type == token.Semicolon {
			return
		}
		switch p.peek().Type {
		case token.Class, token.Fun, token.Var, token.For,
			token.If, token.While, token.Print, token.Return:
			return
		}
		p.advance()
	}
}

// --- Declarations & statements ---

func (p *parser) declaration() ast.Stmt {
	if p.match(token.Var) {
		return p.varDeclaration()
	}
	return p.statement()
}

func (p *parser) varDeclaration() ast.Stmt {
	name, ok := p.consume(token.Identifier, "Expect variable name.")
	if !ok {
		return nil
	}

	var initializer ast.Expr
	if p.match(token.Equal) {
		initializer = p.expression()
		if initializer == nil {
			return nil
		}
	}

	if _, ok := p.consume(token.Semicolon, "Expect ';' after variable declaration."); !ok {
		return nil
	}
	return &ast.VarStmt{Name: name, Initializer: initializer}
}

func (p *parser) statement() ast.Stmt {
	switch {
	case p.match(token.Print):
		return p.printStatement()
	case p.match(token.LeftBrace):
		return p.block()
	case p.match(token.If):
		return p.ifStatement()
	case p.match(token.While):
		return p.whileStatement()
	default:
		return p.expressionStatement()
	}
}

func (p *parser) printStatement() ast.Stmt {
	value := p.expression()
	if value == nil {
		return nil
	}
	if _, ok := p.consume(token.Semicolon, "Expect ';' after value."); !ok {
		return nil
	}
	return &ast.PrintStmt{Expression: value}
}

func (p *parser) block() ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		stmt := p.declaration()
		if stmt == nil {
			return nil
		}
		stmts = append(stmts, stmt)
	}
	if _, ok := p.consume(token.RightBrace, "Expect '}' after block."); !ok {
		return nil
	}
	return &ast.BlockStmt{Statements: stmts}
}

func (p *parser) ifStatement() ast.Stmt {
	if _, ok := p.consume(token.LeftParen, "Expect '(' after 'if'."); !ok {
		return nil
	}
	condition := p.expression()
	if condition == nil {
		return nil
	}
	if _, ok := p.consume(token.RightParen, "Expect ')' after if condition."); !ok {
		return nil
	}

	thenBranch := p.statement()
	if thenBranch == nil {
		return nil
	}
	var elseBranch ast.Stmt
	if p.match(token.Else) {
		elseBranch = p.statement()
		if elseBranch == nil {
			return nil
		}
	}
	return &ast.IfStmt{Condition: condition, ThenBranch: thenBranch, ElseBranch: elseBranch}
}

func (p *parser) whileStatement() ast.Stmt {
	if _, ok := p.consume(token.LeftParen, "Expect '(' after 'while'."); !ok {
		return nil
	}
	condition := p.expression()
	if condition == nil {
		return nil
	}
	if _, ok := p.consume(token.RightParen, "Expect ')' after condition."); !ok {
		return nil
	}
	body := p.statement()
	if body == nil {
		return nil
	}
	return &ast.WhileStmt{Condition: condition, Body: body}
}

func (p *parser) expressionStatement() ast.Stmt {
	expr := p.expression()
	if expr == nil {
		return nil
	}
	if _, ok := p.consume(token.Semicolon, "Expect ';' after expression."); !ok {
		return nil
	}
	return &ast.ExpressionStmt{Expression: expr}
}

// --- Expressions ---

func (p *parser) expression() ast.Expr {
	return p.assignment()
}

// assignment is right-associative by recursion. Only a bare variable
// reference is a valid assignment target.
func (p *parser) assignment() ast.Expr {
	expr := p.or()
	if expr == nil {
		return nil
	}

	if p.match(token.Equal) {
		equals := p.previous()
		value := p.assignment()
		if value == nil {
			return nil
		}

		if variable, ok := expr.(*ast.Variable); ok {
			return &ast.Assign{Name: variable.Name, Value: value}
		}
		p.addError(equals, "Invalid assignment target.")
		return nil
	}

	return expr
}

func (p *parser) or() ast.Expr {
	expr := p.and()
	if expr == nil {
		return nil
	}

	for p.match(token.Or) {
		operator := p.previous()
		right := p.and()
		if right == nil {
			return nil
		}
		expr = &ast.Logical{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *parser) and() ast.Expr {
	expr := p.equality()
	if expr == nil {
		return nil
	}

	for p.match(token.And) {
		operator := p.previous()
		right := p.equality()
		if right == nil {
			return nil
		}
		expr = &ast.Logical{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *parser) equality() ast.Expr {
	expr := p.comparison()
	if expr == nil {
		return nil
	}

	for p.match(token.BangEqual, token.EqualEqual) {
		operator := p.previous()
		right := p.comparison()
		if right == nil {
			return nil
		}
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *parser) comparison() ast.Expr {
	expr := p.term()
	if expr == nil {
		return nil
	}

	for p.match(token.Greater, token.GreaterEqual, token.Less, token.LessEqual) {
		operator := p.previous()
		right := p.term()
		if right == nil {
			return nil
		}
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *parser) term() ast.Expr {
	expr := p.factor()
	if expr == nil {
		return nil
	}

	for p.match(token.Minus, token.Plus) {
		operator := p.previous()
		right := p.factor()
		if right == nil {
			return nil
		}
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *parser) factor() ast.Expr {
	expr := p.unary()
	if expr == nil {
		return nil
	}

	for p.match(token.Slash, token.Star) {
		operator := p.previous()
		right := p.unary()
		if right == nil {
			return nil
		}
		expr = &ast.Binary{Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *parser) unary() ast.Expr {
	if p.match(token.Bang, token.Minus) {
		operator := p.previous()
		right := p.unary()
		if right == nil {
			return nil
		}
		return &ast.Unary{Operator: operator, Right: right}
	}
	return p.primary()
}

func (p *parser) primary() ast.Expr {
	switch {
	case p.match(token.False):
		return &ast.Literal{Value: value.NewBoolean(false)}
	case p.match(token.True):
		return &ast.Literal{Value: value.NewBoolean(true)}
	case p.match(token.Nil):
		return &ast.Literal{Value: value.NewNil()}
	case p.match(token.Number):
		tok := p.previous()
		num, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			p.addError(tok, "Invalid number literal.")
			return nil
		}
		return &ast.Literal{Value: value.NewNumber(num)}
	case p.match(token.String):
		return &ast.Literal{Value: value.NewStr(p.previous().Literal)}
	case p.match(token.Identifier):
		return &ast.Variable{Name: p.previous()}
	case p.match(token.LeftParen):
		expr := p.expression()
		if expr == nil {
			return nil
		}
		if _, ok := p.consume(token.RightParen, "Expect ')' after expression."); !ok {
			return nil
		}
		return &ast.Grouping{Expression: expr}
	default:
		p.addError(p.peek(), "Expect expression.")
		return nil
	}
}
