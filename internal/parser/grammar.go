package parser

import (
	"github.com/sylva-lang/sylva/internal/ast"
	"github.com/sylva-lang/sylva/internal/diag"
)

// typeExpr parses a type annotation: an identifier optionally followed
// by angle-bracketed template arguments. Pair<Int, Int> parses as a
// Call whose callee is the Name Pair, reusing the expression shapes.
func (c *context) typeExpr() (ast.Expr, result) {
	name, span, r := c.ident()
	if r != success {
		return nil, r
	}
	var e ast.Expr = ast.NewName(name, span)
	for {
		switch c.tok("<") {
		case errored:
			return nil, errored
		case failure:
			return e, success
		}
		var args []ast.Expr
		for {
			a, r := c.requireType()
			if r != success {
				return nil, errored
			}
			args = append(args, a)
			switch c.tok(",") {
			case success:
				continue
			case errored:
				return nil, errored
			}
			break
		}
		if c.expectTok(">") != success {
			return nil, errored
		}
		e = ast.NewCall(e, args, e.Span().Merge(c.here()))
	}
}

// requireType demands a type expression.
func (c *context) requireType() (ast.Expr, result) {
	t, r := c.typeExpr()
	if r == failure {
		c.skipWS()
		return nil, c.fail(diag.CodeParseExpected, "expected a type")
	}
	return t, r
}

// stmt parses a single statement. It fails softly when no statement
// starts here so block parsing stops at the closing brace.
func (c *context) stmt() (ast.Stmt, result) {
	st := c.save()
	if c.skipWS() == errored {
		return nil, errored
	}
	start := c.save()
	switch {
	case literal("{")(c) == success:
		b, r := c.blockRest(start)
		if r != success {
			return nil, errored
		}
		return &ast.BlockStmt{Block: b}, success
	case literal(";")(c) == success:
		return ast.NewEmptyStmt(c.span(start)), success
	case keyword("let")(c) == success:
		return c.letRest(start)
	case keyword("if")(c) == success:
		return c.ifRest(start)
	case keyword("while")(c) == success:
		return c.whileRest(start)
	case keyword("return")(c) == success:
		return c.returnRest(start)
	}
	c.restore(st)
	e, r := c.expr()
	if r != success {
		return nil, r
	}
	if c.expectTok(";") != success {
		return nil, errored
	}
	return ast.NewExprStmt(e, e.Span().Merge(c.here())), success
}

// requireStmt demands a statement.
func (c *context) requireStmt() (ast.Stmt, result) {
	s, r := c.stmt()
	if r == failure {
		c.skipWS()
		return nil, c.fail(diag.CodeParseExpected, "expected a statement")
	}
	return s, r
}

// blockRest parses statements through the closing brace. The opening
// brace has already been consumed; start points at it.
func (c *context) blockRest(start state) (*ast.Block, result) {
	var stmts []ast.Stmt
	for {
		s, r := c.stmt()
		if r == errored {
			return nil, errored
		}
		if r == failure {
			break
		}
		stmts = append(stmts, s)
	}
	if c.expectTok("}") != success {
		return nil, errored
	}
	return ast.NewBlock(stmts, c.span(start)), success
}

// letRest parses a let binding after the keyword. The declared type is
// optional; when omitted it is inferred from the initializer later.
func (c *context) letRest(start state) (ast.Stmt, result) {
	name, _, r := c.expectIdent("a variable name")
	if r != success {
		return nil, errored
	}
	var typ ast.Expr
	switch c.tok(":") {
	case errored:
		return nil, errored
	case success:
		typ, r = c.requireType()
		if r != success {
			return nil, errored
		}
	}
	if c.expectTok("=") != success {
		return nil, errored
	}
	value, r := c.requireExpr()
	if r != success {
		return nil, errored
	}
	if c.expectTok(";") != success {
		return nil, errored
	}
	return ast.NewLetStmt(name, typ, value, c.span(start)), success
}

// ifRest parses a conditional after the keyword. A missing else arm
// becomes an EmptyStmt.
func (c *context) ifRest(start state) (ast.Stmt, result) {
	cond, r := c.requireExpr()
	if r != success {
		return nil, errored
	}
	then, r := c.requireStmt()
	if r != success {
		return nil, errored
	}
	var els ast.Stmt
	switch c.kw("else") {
	case errored:
		return nil, errored
	case success:
		els, r = c.requireStmt()
		if r != success {
			return nil, errored
		}
	default:
		els = ast.NewEmptyStmt(c.here())
	}
	return ast.NewIfStmt(cond, then, els, c.span(start)), success
}

// whileRest parses a loop after the keyword.
func (c *context) whileRest(start state) (ast.Stmt, result) {
	cond, r := c.requireExpr()
	if r != success {
		return nil, errored
	}
	body, r := c.requireStmt()
	if r != success {
		return nil, errored
	}
	return ast.NewWhileStmt(cond, body, c.span(start)), success
}

// returnRest parses a return after the keyword. The value is optional.
func (c *context) returnRest(start state) (ast.Stmt, result) {
	var value ast.Expr
	e, r := c.expr()
	switch r {
	case errored:
		return nil, errored
	case success:
		value = e
	}
	if c.expectTok(";") != success {
		return nil, errored
	}
	return ast.NewReturnStmt(value, c.span(start)), success
}

// templateParams parses an optional angle-bracketed list of template
// parameter names.
func (c *context) templateParams() ([]string, result) {
	switch c.tok("<") {
	case errored:
		return nil, errored
	case failure:
		return nil, success
	}
	var names []string
	for {
		name, _, r := c.expectIdent("a template parameter name")
		if r != success {
			return nil, errored
		}
		names = append(names, name)
		switch c.tok(",") {
		case success:
			continue
		case errored:
			return nil, errored
		}
		break
	}
	if c.expectTok(">") != success {
		return nil, errored
	}
	return names, success
}

// params parses the parenthesized parameter list, both parens
// included.
func (c *context) params() ([]*ast.Param, result) {
	if c.expectTok("(") != success {
		return nil, errored
	}
	var ps []*ast.Param
	switch c.tok(")") {
	case success:
		return ps, success
	case errored:
		return nil, errored
	}
	for {
		name, nspan, r := c.expectIdent("a parameter name")
		if r != success {
			return nil, errored
		}
		if c.expectTok(":") != success {
			return nil, errored
		}
		typ, r := c.requireType()
		if r != success {
			return nil, errored
		}
		ps = append(ps, ast.NewParam(name, typ, nspan.Merge(typ.Span())))
		switch c.tok(",") {
		case success:
			continue
		case errored:
			return nil, errored
		}
		break
	}
	if c.expectTok(")") != success {
		return nil, errored
	}
	return ps, success
}

// funcDecl parses a function declaration, failing softly when the
// input does not start with the func keyword. An omitted return type
// becomes the name Void.
func (c *context) funcDecl() (*ast.FuncDecl, result) {
	st := c.save()
	if c.skipWS() == errored {
		return nil, errored
	}
	start := c.save()
	if keyword("func")(c) == failure {
		c.restore(st)
		return nil, failure
	}
	name, _, r := c.expectIdent("a function name")
	if r != success {
		return nil, errored
	}
	typeParams, r := c.templateParams()
	if r != success {
		return nil, errored
	}
	params, r := c.params()
	if r != success {
		return nil, errored
	}
	var ret ast.Expr
	switch c.tok(":") {
	case errored:
		return nil, errored
	case success:
		ret, r = c.requireType()
		if r != success {
			return nil, errored
		}
	default:
		ret = ast.NewName("Void", c.here())
	}
	body, r := c.funcBody()
	if r != success {
		return nil, errored
	}
	return ast.NewFuncDecl(name, typeParams, params, ret, body, c.span(start)), success
}

// funcBody parses the mandatory brace-delimited body.
func (c *context) funcBody() (*ast.Block, result) {
	if c.skipWS() == errored {
		return nil, errored
	}
	start := c.save()
	if literal("{")(c) == failure {
		return nil, c.fail(diag.CodeParseExpected, "expected '{'")
	}
	return c.blockRest(start)
}

// structDecl parses a structure declaration, failing softly when the
// input does not start with the struct keyword. Fields are comma
// separated.
func (c *context) structDecl() (*ast.StructDecl, result) {
	st := c.save()
	if c.skipWS() == errored {
		return nil, errored
	}
	start := c.save()
	if keyword("struct")(c) == failure {
		c.restore(st)
		return nil, failure
	}
	name, _, r := c.expectIdent("a struct name")
	if r != success {
		return nil, errored
	}
	typeParams, r := c.templateParams()
	if r != success {
		return nil, errored
	}
	if c.expectTok("{") != success {
		return nil, errored
	}
	var fields []*ast.Field
	switch c.tok("}") {
	case success:
		return ast.NewStructDecl(name, typeParams, fields, c.span(start)), success
	case errored:
		return nil, errored
	}
	for {
		fname, fspan, r := c.expectIdent("a field name")
		if r != success {
			return nil, errored
		}
		if c.expectTok(":") != success {
			return nil, errored
		}
		ftyp, r := c.requireType()
		if r != success {
			return nil, errored
		}
		fields = append(fields, ast.NewField(fname, ftyp, fspan.Merge(ftyp.Span())))
		switch c.tok(",") {
		case success:
			continue
		case errored:
			return nil, errored
		}
		break
	}
	if c.expectTok("}") != success {
		return nil, errored
	}
	return ast.NewStructDecl(name, typeParams, fields, c.span(start)), success
}

// program parses a whole source file. An empty file is an error; a
// file of only whitespace and comments parses to an empty program.
func (c *context) program() (*ast.Program, result) {
	if len(c.src) == 0 {
		return nil, c.fail(diag.CodeParseFunction, "expected a function")
	}
	prog := &ast.Program{Path: c.filename}
	for {
		f, r := c.funcDecl()
		if r == errored {
			return nil, errored
		}
		if r == success {
			prog.Funcs = append(prog.Funcs, f)
			continue
		}
		s, r := c.structDecl()
		if r == errored {
			return nil, errored
		}
		if r == success {
			prog.Structs = append(prog.Structs, s)
			continue
		}
		break
	}
	if c.skipWS() == errored {
		return nil, errored
	}
	if end()(c) == failure {
		return nil, c.fail(diag.CodeParseFunction, "expected a function")
	}
	return prog, success
}
