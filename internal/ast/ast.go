package ast

import "github.com/sylva-lang/sylva/internal/diag"

// Node represents any syntactic AST node with an associated source span.
// Nodes are created by the parser and are read-only afterwards.
type Node interface {
	Span() diag.Span
}

// Expr represents an expression node. Type annotations reuse the
// expression shapes: a named type is a Name, a template application is
// a Call whose callee is a Name.
type Expr interface {
	Node
	exprNode()
}

// Stmt represents a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// BinaryOp enumerates the binary operators.
type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Rem
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
)

// String returns the source spelling of the operator, which is also its
// C spelling.
func (op BinaryOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Rem:
		return "%"
	case Eq:
		return "=="
	case Ne:
		return "!="
	case Lt:
		return "<"
	case Le:
		return "<="
	case Gt:
		return ">"
	case Ge:
		return ">="
	}
	return ""
}

// IntLit represents a decimal integer literal. The parser accumulates
// into a 32-bit value; overflow wraps.
type IntLit struct {
	Value int32
	span  diag.Span
}

// Span returns the literal span.
func (l *IntLit) Span() diag.Span { return l.span }

// NewIntLit constructs an integer literal node.
func NewIntLit(value int32, span diag.Span) *IntLit {
	return &IntLit{Value: value, span: span}
}

func (*IntLit) exprNode() {}

// Name represents an identifier reference.
type Name struct {
	Ident string
	span  diag.Span
}

// Span returns the identifier span.
func (n *Name) Span() diag.Span { return n.span }

// NewName constructs an identifier node.
func NewName(ident string, span diag.Span) *Name {
	return &Name{Ident: ident, span: span}
}

func (*Name) exprNode() {}

// Binary represents an infix binary expression.
type Binary struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
	span  diag.Span
}

// Span returns the expression span.
func (e *Binary) Span() diag.Span { return e.span }

// NewBinary constructs a binary expression covering both operands.
func NewBinary(op BinaryOp, left, right Expr) *Binary {
	return &Binary{
		Op:    op,
		Left:  left,
		Right: right,
		span:  left.Span().Merge(right.Span()),
	}
}

func (*Binary) exprNode() {}

// Assign represents an assignment expression.
type Assign struct {
	Left  Expr
	Right Expr
	span  diag.Span
}

// Span returns the expression span.
func (e *Assign) Span() diag.Span { return e.span }

// NewAssign constructs an assignment expression node.
func NewAssign(left, right Expr) *Assign {
	return &Assign{
		Left:  left,
		Right: right,
		span:  left.Span().Merge(right.Span()),
	}
}

func (*Assign) exprNode() {}

// Call represents a function call or, in type position, a template
// application.
type Call struct {
	Callee Expr
	Args   []Expr
	span   diag.Span
}

// Span returns the expression span.
func (e *Call) Span() diag.Span { return e.span }

// NewCall constructs a call node.
func NewCall(callee Expr, args []Expr, span diag.Span) *Call {
	return &Call{Callee: callee, Args: args, span: span}
}

func (*Call) exprNode() {}

// Member represents a member access expression.
type Member struct {
	Receiver Expr
	Field    string
	span     diag.Span
}

// Span returns the expression span.
func (e *Member) Span() diag.Span { return e.span }

// NewMember constructs a member access node.
func NewMember(receiver Expr, field string, span diag.Span) *Member {
	return &Member{Receiver: receiver, Field: field, span: span}
}

func (*Member) exprNode() {}
