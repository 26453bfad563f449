package ast

import "github.com/sylva-lang/sylva/internal/diag"

// Param represents a function parameter: name plus type expression.
type Param struct {
	Name string
	Type Expr
	span diag.Span
}

// Span returns the parameter span.
func (p *Param) Span() diag.Span { return p.span }

// NewParam constructs a parameter node.
func NewParam(name string, typ Expr, span diag.Span) *Param {
	return &Param{Name: name, Type: typ, span: span}
}

// FuncDecl represents a function declaration. ReturnType is never nil:
// the parser substitutes Name("Void") when the source omits it.
type FuncDecl struct {
	Name       string
	TypeParams []string
	Params     []*Param
	ReturnType Expr
	Body       *Block
	span       diag.Span
}

// Span returns the declaration span.
func (d *FuncDecl) Span() diag.Span { return d.span }

// NewFuncDecl constructs a function declaration node.
func NewFuncDecl(name string, typeParams []string, params []*Param, returnType Expr, body *Block, span diag.Span) *FuncDecl {
	return &FuncDecl{
		Name:       name,
		TypeParams: typeParams,
		Params:     params,
		ReturnType: returnType,
		Body:       body,
		span:       span,
	}
}

// Field represents a structure member: name plus type expression.
type Field struct {
	Name string
	Type Expr
	span diag.Span
}

// Span returns the field span.
func (f *Field) Span() diag.Span { return f.span }

// NewField constructs a field node.
func NewField(name string, typ Expr, span diag.Span) *Field {
	return &Field{Name: name, Type: typ, span: span}
}

// StructDecl represents a structure declaration.
type StructDecl struct {
	Name       string
	TypeParams []string
	Fields     []*Field
	span       diag.Span
}

// Span returns the declaration span.
func (d *StructDecl) Span() diag.Span { return d.span }

// NewStructDecl constructs a structure declaration node.
func NewStructDecl(name string, typeParams []string, fields []*Field, span diag.Span) *StructDecl {
	return &StructDecl{
		Name:       name,
		TypeParams: typeParams,
		Fields:     fields,
		span:       span,
	}
}

// Program is the root of the syntactic AST for one source file. It
// exclusively owns its declarations.
type Program struct {
	Path    string
	Funcs   []*FuncDecl
	Structs []*StructDecl
}
