package types

import (
	"github.com/sylva-lang/sylva/internal/ast"
	"github.com/sylva-lang/sylva/internal/diag"
)

// checkStmt checks one statement. Errors never abort the walk: a
// statement that fails to check becomes an EmptyStmt so the rest of
// the body still gets looked at.
func (a *Analyzer) checkStmt(stmt ast.Stmt) Stmt {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		return a.checkBlock(s.Block)
	case *ast.EmptyStmt:
		return &EmptyStmt{}
	case *ast.LetStmt:
		return a.checkLet(s)
	case *ast.IfStmt:
		cond := a.checkCond(s.Cond)
		then := a.checkStmt(s.Then)
		els := a.checkStmt(s.Else)
		if cond == nil {
			return &EmptyStmt{}
		}
		return &IfStmt{Cond: cond, Then: then, Else: els}
	case *ast.WhileStmt:
		cond := a.checkCond(s.Cond)
		body := a.checkStmt(s.Body)
		if cond == nil {
			return &EmptyStmt{}
		}
		return &WhileStmt{Cond: cond, Body: body}
	case *ast.ReturnStmt:
		if s.Value == nil {
			return &ReturnStmt{}
		}
		v := a.checkExpr(s.Value, a.retType)
		if v == nil {
			return &EmptyStmt{}
		}
		return &ReturnStmt{Value: v}
	case *ast.ExprStmt:
		e := a.checkExpr(s.Expr, nil)
		if e == nil {
			return &EmptyStmt{}
		}
		return &ExprStmt{Expr: e}
	}
	panic("unhandled statement")
}

// checkBlock checks a block in a fresh nested scope.
func (a *Analyzer) checkBlock(b *ast.Block) *Block {
	a.vars = NewScope(a.vars)
	out := &Block{Stmts: make([]Stmt, 0, len(b.Stmts))}
	for _, s := range b.Stmts {
		out.Stmts = append(out.Stmts, a.checkStmt(s))
	}
	a.vars = a.vars.Parent()
	return out
}

// checkCond checks a loop or branch condition, which must be Int.
func (a *Analyzer) checkCond(expr ast.Expr) Expr {
	cond := a.checkExpr(expr, a.intType())
	if cond == nil {
		return nil
	}
	if cond.Type() != a.intType() {
		a.errorf(diag.CodeTypeMismatch, expr.Span(),
			"invalid type %s, expected type %s", cond.Type(), a.intType())
		return nil
	}
	return cond
}

// checkLet checks a let binding. The name is bound even when the
// initializer fails so later uses do not cascade into undefined
// variable errors.
func (a *Analyzer) checkLet(s *ast.LetStmt) Stmt {
	var declared Type
	badAnnotation := false
	if s.Type != nil {
		declared = a.getType(s.Type)
		badAnnotation = declared == nil
	}
	value := a.checkExpr(s.Value, declared)
	t := declared
	if value != nil {
		if t == nil {
			t = value.Type()
		} else if value.Type() != t {
			a.errorf(diag.CodeTypeMismatch, s.Value.Span(),
				"invalid type %s, expected type %s", value.Type(), t)
			value = nil
		}
	}
	if t != nil {
		a.vars.Define(s.Name, t)
	}
	if value == nil || badAnnotation {
		return &EmptyStmt{}
	}
	return &LetStmt{Name: s.Name, Type: t, Value: value}
}
