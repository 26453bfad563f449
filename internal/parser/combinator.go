package parser

import (
	"strings"

	"github.com/sylva-lang/sylva/internal/diag"
)

// result is the outcome of a parse attempt. failure is recoverable: a
// choice moves on to its next alternative. errored is not: it unwinds
// the whole parse carrying the recorded error.
type result int

const (
	success result = iota
	failure
	errored
)

// parser consumes input from a context and reports the outcome.
type parser func(c *context) result

// state is a cursor snapshot for backtracking.
type state struct {
	pos  int
	line int
	col  int
}

// context carries the cursor and the single error slot through a parse.
// There is no separate token stream; lexing happens inline as the
// grammar matches.
type context struct {
	src      string
	filename string
	pos      int
	line     int
	col      int
	err      *Error
}

func newContext(src, filename string) *context {
	return &context{src: src, filename: filename, line: 1, col: 1}
}

func (c *context) save() state { return state{pos: c.pos, line: c.line, col: c.col} }

func (c *context) restore(s state) {
	c.pos = s.pos
	c.line = s.line
	c.col = s.col
}

// advance moves the cursor n bytes forward, tracking line and column.
func (c *context) advance(n int) {
	for i := 0; i < n; i++ {
		if c.src[c.pos] == '\n' {
			c.line++
			c.col = 1
		} else {
			c.col++
		}
		c.pos++
	}
}

// span builds a source span from a saved cursor to the current one.
func (c *context) span(s state) diag.Span {
	return diag.Span{
		Filename: c.filename,
		Line:     s.line,
		Column:   s.col,
		Start:    s.pos,
		End:      c.pos,
	}
}

// here is a zero-width span at the current cursor.
func (c *context) here() diag.Span {
	return diag.Span{
		Filename: c.filename,
		Line:     c.line,
		Column:   c.col,
		Start:    c.pos,
		End:      c.pos,
	}
}

// fail records the parse error and returns errored. The first error
// wins: once the slot is filled the parse is already unwinding.
func (c *context) fail(code diag.Code, msg string) result {
	if c.err == nil {
		c.err = &Error{Code: code, Message: msg, Span: c.here()}
	}
	return errored
}

// expect upgrades a failure of p into a hard error "expected what".
func (c *context) expect(p parser, what string) result {
	switch p(c) {
	case success:
		return success
	case errored:
		return errored
	}
	return c.fail(diag.CodeParseExpected, "expected "+what)
}

// class matches a single byte satisfying pred.
func class(pred func(byte) bool) parser {
	return func(c *context) result {
		if c.pos < len(c.src) && pred(c.src[c.pos]) {
			c.advance(1)
			return success
		}
		return failure
	}
}

// anyByte matches any single byte.
func anyByte() parser {
	return func(c *context) result {
		if c.pos < len(c.src) {
			c.advance(1)
			return success
		}
		return failure
	}
}

// literal matches s exactly.
func literal(s string) parser {
	return func(c *context) result {
		if strings.HasPrefix(c.src[c.pos:], s) {
			c.advance(len(s))
			return success
		}
		return failure
	}
}

// keyword matches s followed by a non-identifier byte, so that
// "lettuce" does not begin with the keyword "let".
func keyword(s string) parser {
	return func(c *context) result {
		if !strings.HasPrefix(c.src[c.pos:], s) {
			return failure
		}
		if next := c.pos + len(s); next < len(c.src) && isIdentCont(c.src[next]) {
			return failure
		}
		c.advance(len(s))
		return success
	}
}

// end matches the end of input.
func end() parser {
	return func(c *context) result {
		if c.pos == len(c.src) {
			return success
		}
		return failure
	}
}

// sequence runs parsers in order. On failure the cursor rewinds to the
// start; an error propagates without rewinding.
func sequence(ps ...parser) parser {
	return func(c *context) result {
		s := c.save()
		for _, p := range ps {
			switch p(c) {
			case failure:
				c.restore(s)
				return failure
			case errored:
				return errored
			}
		}
		return success
	}
}

// choice tries alternatives in order, committing to the first that
// does not fail.
func choice(ps ...parser) parser {
	return func(c *context) result {
		for _, p := range ps {
			if r := p(c); r != failure {
				return r
			}
		}
		return failure
	}
}

// zeroOrMore applies p until it fails.
func zeroOrMore(p parser) parser {
	return func(c *context) result {
		for {
			switch p(c) {
			case failure:
				return success
			case errored:
				return errored
			}
		}
	}
}

// not is negative lookahead: it succeeds without consuming input
// exactly when p fails.
func not(p parser) parser {
	return func(c *context) result {
		s := c.save()
		switch p(c) {
		case success:
			c.restore(s)
			return failure
		case errored:
			return errored
		}
		c.restore(s)
		return success
	}
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\r' || b == '\n' }

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentCont(b byte) bool { return isIdentStart(b) || isDigit(b) }

// lineComment matches "//" through the end of the line.
func lineComment() parser {
	return sequence(literal("//"), zeroOrMore(class(func(b byte) bool { return b != '\n' })))
}

// blockComment matches "/*" through "*/". Comments do not nest; an
// unterminated comment is a hard error.
func blockComment(c *context) result {
	if literal("/*")(c) == failure {
		return failure
	}
	if zeroOrMore(sequence(not(literal("*/")), anyByte()))(c) == errored {
		return errored
	}
	return c.expect(literal("*/"), "'*/'")
}

// wsParser consumes whitespace and comments. Comments count as
// whitespace everywhere, which is also what makes "//" win over the
// division operator: the whitespace run before an operator match
// swallows the comment first.
var wsParser = zeroOrMore(choice(class(isSpace), lineComment(), blockComment))

func (c *context) skipWS() result { return wsParser(c) }

// tok matches a literal after skipping whitespace, rewinding fully on
// failure.
func (c *context) tok(s string) result {
	st := c.save()
	if c.skipWS() == errored {
		return errored
	}
	if literal(s)(c) == success {
		return success
	}
	c.restore(st)
	return failure
}

// kw matches a keyword after skipping whitespace, rewinding fully on
// failure.
func (c *context) kw(s string) result {
	st := c.save()
	if c.skipWS() == errored {
		return errored
	}
	if keyword(s)(c) == success {
		return success
	}
	c.restore(st)
	return failure
}

// expectTok demands a literal token, reporting "expected 's'" at the
// offending position.
func (c *context) expectTok(s string) result {
	switch c.tok(s) {
	case success:
		return success
	case errored:
		return errored
	}
	c.skipWS()
	return c.fail(diag.CodeParseExpected, "expected '"+s+"'")
}

// reserved lists the identifiers claimed by the grammar. They never
// parse as names.
var reserved = map[string]bool{
	"func":   true,
	"struct": true,
	"let":    true,
	"if":     true,
	"else":   true,
	"while":  true,
	"return": true,
	"true":   true,
	"false":  true,
}

// ident matches an identifier that is not a reserved word, returning
// its text and span.
func (c *context) ident() (string, diag.Span, result) {
	st := c.save()
	if c.skipWS() == errored {
		return "", diag.Span{}, errored
	}
	start := c.save()
	if class(isIdentStart)(c) == failure {
		c.restore(st)
		return "", diag.Span{}, failure
	}
	zeroOrMore(class(isIdentCont))(c)
	text := c.src[start.pos:c.pos]
	if reserved[text] {
		c.restore(st)
		return "", diag.Span{}, failure
	}
	return text, c.span(start), success
}

// expectIdent demands an identifier, reporting "expected what" at the
// offending position.
func (c *context) expectIdent(what string) (string, diag.Span, result) {
	name, span, r := c.ident()
	if r == failure {
		c.skipWS()
		return "", diag.Span{}, c.fail(diag.CodeParseExpected, "expected "+what)
	}
	return name, span, r
}
