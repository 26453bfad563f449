package parser

import (
	"github.com/sylva-lang/sylva/internal/ast"
	"github.com/sylva-lang/sylva/internal/diag"
)

// The expression grammar is a precedence ladder. Each level parses the
// next-tighter level and then folds in its own operators:
//
//	assignment      =  (right-associative)
//	equality        == !=
//	relational      < <= > >=
//	additive        + -
//	multiplicative  * / %
//	postfix         call, member access
//	terminal        literal, name, parenthesized expression

// binOp pairs an operator spelling with its AST operator. notNext
// rejects the match when the following byte would extend the spelling
// into a different operator, keeping '<' out of '<='.
type binOp struct {
	text    string
	op      ast.BinaryOp
	notNext byte
}

var (
	equalityOps   = []binOp{{text: "==", op: ast.Eq}, {text: "!=", op: ast.Ne}}
	relationalOps = []binOp{
		{text: "<=", op: ast.Le},
		{text: "<", op: ast.Lt, notNext: '='},
		{text: ">=", op: ast.Ge},
		{text: ">", op: ast.Gt, notNext: '='},
	}
	additiveOps       = []binOp{{text: "+", op: ast.Add}, {text: "-", op: ast.Sub}}
	multiplicativeOps = []binOp{{text: "*", op: ast.Mul}, {text: "/", op: ast.Div}, {text: "%", op: ast.Rem}}
)

// expr parses an expression, failing softly without consuming input
// when none starts here.
func (c *context) expr() (ast.Expr, result) {
	return c.assignment()
}

// requireExpr demands an expression, turning its absence into a hard
// error at the offending token.
func (c *context) requireExpr() (ast.Expr, result) {
	e, r := c.expr()
	if r == failure {
		c.skipWS()
		return nil, c.fail(diag.CodeParseExpression, "expected an expression")
	}
	return e, r
}

// opTok matches an operator spelling after whitespace. The match is
// rejected when the next byte equals notNext.
func (c *context) opTok(op string, notNext byte) result {
	st := c.save()
	if c.skipWS() == errored {
		return errored
	}
	if literal(op)(c) == failure {
		c.restore(st)
		return failure
	}
	if notNext != 0 && c.pos < len(c.src) && c.src[c.pos] == notNext {
		c.restore(st)
		return failure
	}
	return success
}

// assignment parses the lowest-precedence level. It is right
// associative: a = b = c assigns b first.
func (c *context) assignment() (ast.Expr, result) {
	left, r := c.equality()
	if r != success {
		return nil, r
	}
	switch c.opTok("=", '=') {
	case errored:
		return nil, errored
	case failure:
		return left, success
	}
	right, r := c.assignment()
	if r == failure {
		c.skipWS()
		return nil, c.fail(diag.CodeParseExpression, "expected an expression")
	}
	if r == errored {
		return nil, errored
	}
	return ast.NewAssign(left, right), success
}

// matchOp tries each operator spelling in order after whitespace.
func (c *context) matchOp(ops []binOp) (ast.BinaryOp, result) {
	for _, o := range ops {
		switch c.opTok(o.text, o.notNext) {
		case success:
			return o.op, success
		case errored:
			return 0, errored
		}
	}
	return 0, failure
}

// binaryLevel parses a left-associative run of the given operators
// over the next-tighter level.
func (c *context) binaryLevel(ops []binOp, next func() (ast.Expr, result)) (ast.Expr, result) {
	left, r := next()
	if r != success {
		return nil, r
	}
	for {
		op, r := c.matchOp(ops)
		if r == errored {
			return nil, errored
		}
		if r == failure {
			return left, success
		}
		right, r := next()
		if r == failure {
			c.skipWS()
			return nil, c.fail(diag.CodeParseExpression, "expected an expression")
		}
		if r == errored {
			return nil, errored
		}
		left = ast.NewBinary(op, left, right)
	}
}

func (c *context) equality() (ast.Expr, result) {
	return c.binaryLevel(equalityOps, c.relational)
}

func (c *context) relational() (ast.Expr, result) {
	return c.binaryLevel(relationalOps, c.additive)
}

func (c *context) additive() (ast.Expr, result) {
	return c.binaryLevel(additiveOps, c.multiplicative)
}

func (c *context) multiplicative() (ast.Expr, result) {
	return c.binaryLevel(multiplicativeOps, c.postfix)
}

// postfix parses a terminal followed by any number of call and member
// suffixes, left to right: a.b(c).d parses as ((a.b)(c)).d.
func (c *context) postfix() (ast.Expr, result) {
	e, r := c.terminal()
	if r != success {
		return e, r
	}
	for {
		switch c.tok("(") {
		case errored:
			return nil, errored
		case success:
			args, r := c.callArgs()
			if r != success {
				return nil, errored
			}
			e = ast.NewCall(e, args, e.Span().Merge(c.here()))
			continue
		}
		switch c.tok(".") {
		case errored:
			return nil, errored
		case success:
			name, nspan, r := c.expectIdent("a member name")
			if r != success {
				return nil, errored
			}
			e = ast.NewMember(e, name, e.Span().Merge(nspan))
			continue
		}
		return e, success
	}
}

// callArgs parses a comma-separated argument list through the closing
// paren. The opening paren has already been consumed.
func (c *context) callArgs() ([]ast.Expr, result) {
	var args []ast.Expr
	switch c.tok(")") {
	case success:
		return args, success
	case errored:
		return nil, errored
	}
	for {
		e, r := c.requireExpr()
		if r != success {
			return nil, errored
		}
		args = append(args, e)
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
	return args, success
}

// terminal parses a primary expression: a parenthesized expression, a
// boolean or integer literal, or an identifier. Booleans are sugar for
// the integers 0 and 1.
func (c *context) terminal() (ast.Expr, result) {
	st := c.save()
	if c.skipWS() == errored {
		return nil, errored
	}
	start := c.save()
	if literal("(")(c) == success {
		e, r := c.requireExpr()
		if r != success {
			return nil, errored
		}
		if c.expectTok(")") != success {
			return nil, errored
		}
		return e, success
	}
	if keyword("false")(c) == success {
		return ast.NewIntLit(0, c.span(start)), success
	}
	if keyword("true")(c) == success {
		return ast.NewIntLit(1, c.span(start)), success
	}
	if c.pos < len(c.src) && isDigit(c.src[c.pos]) {
		var v int32
		for c.pos < len(c.src) && isDigit(c.src[c.pos]) {
			v = v*10 + int32(c.src[c.pos]-'0')
			c.advance(1)
		}
		return ast.NewIntLit(v, c.span(start)), success
	}
	if class(isIdentStart)(c) == success {
		zeroOrMore(class(isIdentCont))(c)
		text := c.src[start.pos:c.pos]
		if !reserved[text] {
			return ast.NewName(text, c.span(start)), success
		}
	}
	c.restore(st)
	return nil, failure
}
