package types

import (
	"github.com/sylva-lang/sylva/internal/ast"
	"github.com/sylva-lang/sylva/internal/diag"
)

// Expr is a checked expression. Every node carries its type; the
// analyzer never builds a node for an ill-typed expression.
type Expr interface {
	Type() Type
	Span() diag.Span
}

// IntExpr is an integer literal.
type IntExpr struct {
	Value int32
	typ   Type
	span  diag.Span
}

// Type returns the expression type.
func (e *IntExpr) Type() Type { return e.typ }

// Span returns the source span.
func (e *IntExpr) Span() diag.Span { return e.span }

// VarExpr is a reference to a parameter or local.
type VarExpr struct {
	Name string
	typ  Type
	span diag.Span
}

// Type returns the expression type.
func (e *VarExpr) Type() Type { return e.typ }

// Span returns the source span.
func (e *VarExpr) Span() diag.Span { return e.span }

// BinaryExpr is an integer arithmetic or comparison expression.
type BinaryExpr struct {
	Op    ast.BinaryOp
	Left  Expr
	Right Expr
	typ   Type
	span  diag.Span
}

// Type returns the expression type.
func (e *BinaryExpr) Type() Type { return e.typ }

// Span returns the source span.
func (e *BinaryExpr) Span() diag.Span { return e.span }

// AssignExpr is an assignment to a variable. Its value is the value
// assigned.
type AssignExpr struct {
	Target *VarExpr
	Value  Expr
	span   diag.Span
}

// Type returns the expression type.
func (e *AssignExpr) Type() Type { return e.Target.Type() }

// Span returns the source span.
func (e *AssignExpr) Span() diag.Span { return e.span }

// CallExpr is a call to an instantiated function.
type CallExpr struct {
	Fn   *Func
	Args []Expr
	span diag.Span
}

// Type returns the callee's return type.
func (e *CallExpr) Type() Type { return e.Fn.Return }

// Span returns the source span.
func (e *CallExpr) Span() diag.Span { return e.span }

// MemberExpr is a structure field access.
type MemberExpr struct {
	Receiver Expr
	Field    string
	typ      Type
	span     diag.Span
}

// Type returns the field type.
func (e *MemberExpr) Type() Type { return e.typ }

// Span returns the source span.
func (e *MemberExpr) Span() diag.Span { return e.span }

// Stmt is a checked statement.
type Stmt interface {
	stmtNode()
}

// Block is a checked statement sequence with its own scope.
type Block struct {
	Stmts []Stmt
}

func (*Block) stmtNode() {}

// EmptyStmt is a statement with no effect. It also stands in for
// statements that failed to check, so the tree stays fully formed.
type EmptyStmt struct{}

func (*EmptyStmt) stmtNode() {}

// LetStmt declares and initializes a local.
type LetStmt struct {
	Name  string
	Type  Type
	Value Expr
}

func (*LetStmt) stmtNode() {}

// IfStmt is a checked conditional. Else is never nil.
type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt
}

func (*IfStmt) stmtNode() {}

// WhileStmt is a checked loop.
type WhileStmt struct {
	Cond Expr
	Body Stmt
}

func (*WhileStmt) stmtNode() {}

// ReturnStmt is a checked return. Value is nil for a bare return.
type ReturnStmt struct {
	Value Expr
}

func (*ReturnStmt) stmtNode() {}

// ExprStmt evaluates an expression for effect.
type ExprStmt struct {
	Expr Expr
}

func (*ExprStmt) stmtNode() {}
