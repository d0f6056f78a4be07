// Package ast defines the expression and statement node types.
//
// Both node sets are closed: evaluation and printing pattern-match over the
// variants directly, with no dispatch hierarchy. Each node owns its children
// exclusively (a strict tree, no sharing).
package ast

import (
	"golox/pkg/token"
	"golox/pkg/value"
)

// Node is the interface implemented by all AST nodes.
type Node interface {
	Kind() string
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	exprNode() // sealed marker
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	stmtNode() // sealed marker
}

// --- Expressions ---

// Literal holds an already-converted runtime value. A nil Value should not
// occur in trees built by the parser.
type Literal struct {
	Value value.Value
}

func (n *Literal) Kind() string { return "Literal" }
func (n *Literal) exprNode()    {}

type Grouping struct {
	Expression Expr
}

func (n *Grouping) Kind() string { return "Grouping" }
func (n *Grouping) exprNode()    {}

type Unary struct {
	Operator token.Token
	Right    Expr
}

func (n *Unary) Kind() string { return "Unary" }
func (n *Unary) exprNode()    {}

type Binary struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

func (n *Binary) Kind() string { return "Binary" }
func (n *Binary) exprNode()    {}

// Logical covers the short-circuiting 'and'/'or' operators.
type Logical struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

func (n *Logical) Kind() string { return "Logical" }
func (n *Logical) exprNode()    {}

type Variable struct {
	Name token.Token
}

func (n *Variable) Kind() string { return "Variable" }
func (n *Variable) exprNode()    {}

type Assign struct {
	Name  token.Token
	Value Expr
}

func (n *Assign) Kind() string { return "Assign" }
func (n *Assign) exprNode()    {}

type Call struct {
	Callee    Expr
	Paren     token.Token
	Arguments []Expr
}

func (n *Call) Kind() string { return "Call" }
func (n *Call) exprNode()    {}

type Get struct {
	Object Expr
	Name   token.Token
}

func (n *Get) Kind() string { return "Get" }
func (n *Get) exprNode()    {}

type Set struct {
	Object Expr
	Name   token.Token
	Value  Expr
}

func (n *Set) Kind() string { return "Set" }
func (n *Set) exprNode()    {}

type This struct {
	Keyword token.Token
}

func (n *This) Kind() string { return "This" }
func (n *This) exprNode()    {}

type Super struct {
	Keyword token.Token
	Method  token.Token
}

func (n *Super) Kind() string { return "Super" }
func (n *Super) exprNode()    {}

// --- Statements ---

type ExpressionStmt struct {
	Expression Expr
}

func (n *ExpressionStmt) Kind() string { return "ExpressionStmt" }
func (n *ExpressionStmt) stmtNode()    {}

type PrintStmt struct {
	Expression Expr
}

func (n *PrintStmt) Kind() string { return "PrintStmt" }
func (n *PrintStmt) stmtNode()    {}

// VarStmt declares a variable. Initializer is nil for 'var x;', which binds
// the name to nil.
type VarStmt struct {
	Name        token.Token
	Initializer Expr
}

func (n *VarStmt) Kind() string { return "VarStmt" }
func (n *VarStmt) stmtNode()    {}

type BlockStmt struct {
	Statements []Stmt
}

func (n *BlockStmt) Kind() string { return "BlockStmt" }
func (n *BlockStmt) stmtNode()    {}

type IfStmt struct {
	Condition  Expr
	ThenBranch Stmt
	ElseBranch Stmt // nil when absent
}

func (n *IfStmt) Kind() string { return "IfStmt" }
func (n *IfStmt) stmtNode()    {}

type WhileStmt struct {
	Condition Expr
	Body      Stmt
}

func (n *WhileStmt) Kind() string { return "WhileStmt" }
func (n *WhileStmt) stmtNode()    {}

type FunctionStmt struct {
	Name   token.Token
	Params []token.Token
	Body   []Stmt
}

func (n *FunctionStmt) Kind() string { return "FunctionStmt" }
func (n *FunctionStmt) stmtNode()    {}

type ReturnStmt struct {
	Keyword token.Token
	Value   Expr // nil for a bare return
}

func (n *ReturnStmt) Kind() string { return "ReturnStmt" }
func (n *ReturnStmt) stmtNode()    {}

type ClassStmt struct {
	Name       token.Token
	Superclass *Variable // nil when absent
	Methods    []*FunctionStmt
}

func (n *ClassStmt) Kind() string { return "ClassStmt" }
func (n *ClassStmt) stmtNode()    {}
