package ast

import (
	"strings"
)

// Print renders an expression tree in parenthesized prefix form:
//
//	2 + 2 * 2    →  (+ 2 (* 2 2))
//	(1 + 2) * 3  →  (* (group (+ 1 2)) 3)
//
// The rendering is deterministic, so tests can assert on it directly.
func Print(expr Expr) string {
	switch e := expr.(type) {
	case *Literal:
		if e.Value == nil {
			return "nil"
		}
		return e.Value.String()
	case *Grouping:
		return parenthesize("group", e.Expression)
	case *Unary:
		return parenthesize(e.Operator.Lexeme, e.Right)
	case *Binary:
		return parenthesize(e.Operator.Lexeme, e.Left, e.Right)
	case *Logical:
		return parenthesize(e.Operator.Lexeme, e.Left, e.Right)
	case *Variable:
		return e.Name.Lexeme
	case *Assign:
		return parenthesize("= "+e.Name.Lexeme, e.Value)
	case *Call:
		return parenthesize("call", append([]Expr{e.Callee}, e.Arguments...)...)
	case *Get:
		return parenthesize("get "+e.Name.Lexeme, e.Object)
	case *Set:
		return parenthesize("set "+e.Name.Lexeme, e.Object, e.Value)
	case *This:
		return "this"
	case *Super:
		return "(super " + e.Method.Lexeme + ")"
	default:
		return "?"
	}
}

// PrintStmtTree renders a statement the same way, mostly for parser tests.
func PrintStmtTree(stmt Stmt) string {
	switch s := stmt.(type) {
	case *ExpressionStmt:
		return parenthesize("expr", s.Expression)
	case *PrintStmt:
		return parenthesize("print", s.Expression)
	case *VarStmt:
		if s.Initializer == nil {
			return "(var " + s.Name.Lexeme + ")"
		}
		return parenthesize("var "+s.Name.Lexeme, s.Initializer)
	case *BlockStmt:
		var sb strings.Builder
		sb.WriteString("(block")
		for _, inner := range s.Statements {
			sb.WriteString(" ")
			sb.WriteString(PrintStmtTree(inner))
		}
		sb.WriteString(")")
		return sb.String()
	case *IfStmt:
		out := "(if " + Print(s.Condition) + " " + PrintStmtTree(s.ThenBranch)
		if s.ElseBranch != nil {
			out += " " + PrintStmtTree(s.ElseBranch)
		}
		return out + ")"
	case *WhileStmt:
		return "(while " + Print(s.Condition) + " " + PrintStmtTree(s.Body) + ")"
	default:
		return "(" + stmt.Kind() + ")"
	}
}

func parenthesize(name string, exprs ...Expr) string {
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(name)
	for _, e := range exprs {
		sb.WriteString(" ")
		sb.WriteString(Print(e))
	}
	sb.WriteString(")")
	return sb.String()
}
