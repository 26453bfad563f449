// Package parser turns source text into a syntactic AST. Lexing is
// inline: the grammar matches bytes directly through a backtracking
// combinator machine, with a Pratt ladder for expressions. A parse
// either succeeds or stops at the first hard error.
package parser

import (
	"github.com/sylva-lang/sylva/internal/ast"
	"github.com/sylva-lang/sylva/internal/diag"
)

// Error is a parse error with a source location.
type Error struct {
	Code    diag.Code
	Message string
	Span    diag.Span
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Span.IsValid() {
		return e.Span.String() + ": " + e.Message
	}
	return e.Message
}

// ToDiagnostic converts the error for rendering.
func (e *Error) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageParser,
		Severity: diag.SeverityError,
		Code:     e.Code,
		Message:  e.Message,
		Span:     e.Span,
	}
}

// Option configures a parse.
type Option func(*context)

// WithFilename sets the filename recorded in spans and diagnostics.
func WithFilename(name string) Option {
	return func(c *context) { c.filename = name }
}

// Parse parses one source file. On error the returned program is nil
// and the error carries the span of the first offending token.
func Parse(src string, opts ...Option) (*ast.Program, *Error) {
	c := newContext(src, "")
	for _, o := range opts {
		o(c)
	}
	prog, r := c.program()
	if r != success {
		if c.err == nil {
			c.err = &Error{
				Code:    diag.CodeParseFunction,
				Message: "expected a function",
				Span:    c.here(),
			}
		}
		return nil, c.err
	}
	return prog, nil
}
