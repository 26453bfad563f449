package types

import (
	"github.com/sylva-lang/sylva/internal/ast"
	"github.com/sylva-lang/sylva/internal/diag"
)

// checkExpr checks an expression. expected guides overload resolution
// for calls and is nil when the context imposes nothing. A nil result
// means the error is already recorded.
func (a *Analyzer) checkExpr(expr ast.Expr, expected Type) Expr {
	switch e := expr.(type) {
	case *ast.IntLit:
		return &IntExpr{Value: e.Value, typ: a.intType(), span: e.Span()}
	case *ast.Name:
		t, ok := a.vars.Lookup(e.Ident)
		if !ok {
			a.errorf(diag.CodeUndefinedVariable, e.Span(), "undefined variable %q", e.Ident)
			return nil
		}
		return &VarExpr{Name: e.Ident, typ: t, span: e.Span()}
	case *ast.Binary:
		return a.checkBinary(e)
	case *ast.Assign:
		return a.checkAssign(e)
	case *ast.Call:
		return a.checkCall(e, expected)
	case *ast.Member:
		return a.checkMember(e)
	}
	panic("unhandled expression")
}

// checkBinary checks an arithmetic or comparison expression. Both
// operands must be Int; comparisons produce Int as well. Operands check
// with no expected type: an overloaded call in operand position is not
// disambiguated by the operator.
func (a *Analyzer) checkBinary(e *ast.Binary) Expr {
	left := a.checkExpr(e.Left, nil)
	right := a.checkExpr(e.Right, nil)
	if left == nil || right == nil {
		return nil
	}
	if left.Type() != a.intType() || right.Type() != a.intType() {
		a.errorf(diag.CodeInvalidBinary, e.Span(), "invalid binary expression")
		return nil
	}
	return &BinaryExpr{Op: e.Op, Left: left, Right: right, typ: a.intType(), span: e.Span()}
}

// checkAssign checks an assignment. Only plain variables are
// assignable.
func (a *Analyzer) checkAssign(e *ast.Assign) Expr {
	name, ok := e.Left.(*ast.Name)
	if !ok {
		a.errorf(diag.CodeExpectedName, e.Left.Span(), "invalid expression, expected a name")
		return nil
	}
	t, found := a.vars.Lookup(name.Ident)
	if !found {
		a.errorf(diag.CodeUndefinedVariable, name.Span(), "undefined variable %q", name.Ident)
		return nil
	}
	value := a.checkExpr(e.Right, t)
	if value == nil {
		return nil
	}
	if value.Type() != t {
		a.errorf(diag.CodeTypeMismatch, e.Right.Span(),
			"invalid type %s, expected type %s", value.Type(), t)
		return nil
	}
	target := &VarExpr{Name: name.Ident, typ: t, span: name.Span()}
	return &AssignExpr{Target: target, Value: value, span: e.Span()}
}

// checkCall resolves a call. A call through a member access is uniform
// call syntax: x.f(y) resolves as f(x, y). The rewrite is purely
// syntactic and happens only here, so a member access that is not
// immediately called still means field access.
func (a *Analyzer) checkCall(e *ast.Call, expected Type) Expr {
	callee := e.Callee
	args := e.Args
	if m, ok := callee.(*ast.Member); ok {
		callee = ast.NewName(m.Field, m.Span())
		args = append([]ast.Expr{m.Receiver}, args...)
	}
	name, ok := callee.(*ast.Name)
	if !ok {
		a.errorf(diag.CodeExpectedName, callee.Span(), "invalid expression, expected a name")
		return nil
	}
	irArgs := make([]Expr, 0, len(args))
	argTypes := make([]Type, 0, len(args))
	for _, arg := range args {
		ir := a.checkExpr(arg, nil)
		if ir == nil {
			return nil
		}
		irArgs = append(irArgs, ir)
		argTypes = append(argTypes, ir.Type())
	}
	fn := a.getFunction(name.Ident, argTypes, expected, e.Span())
	if fn == nil {
		return nil
	}
	return &CallExpr{Fn: fn, Args: irArgs, span: e.Span()}
}

// checkMember checks a structure field access.
func (a *Analyzer) checkMember(e *ast.Member) Expr {
	recv := a.checkExpr(e.Receiver, nil)
	if recv == nil {
		return nil
	}
	st, ok := recv.Type().(*Struct)
	if !ok {
		a.errorf(diag.CodeExpectedStruct, e.Receiver.Span(),
			"invalid type %s, expected a struct type", recv.Type())
		return nil
	}
	f, ok := st.Field(e.Field)
	if !ok {
		a.errorf(diag.CodeUnknownField, e.Span(),
			"struct %s does not have a field named %q", st, e.Field)
		return nil
	}
	return &MemberExpr{Receiver: recv, Field: e.Field, typ: f.Type, span: e.Span()}
}
