// Package types performs semantic analysis. It monomorphizes the
// syntactic AST on demand, starting from main: only functions and
// structures that are actually reached are instantiated, each template
// at most once per distinct argument list.
package types

import (
	"strings"

	"github.com/sylva-lang/sylva/internal/ast"
)

// Type is a fully instantiated semantic type. Identity is pointer
// identity: the instantiation memo guarantees that equal types are the
// same value, so == is the type-equality test.
type Type interface {
	ID() int
	String() string
}

// Builtin is a primitive type: Void or Int.
type Builtin struct {
	id   int
	name string
}

// ID returns the type id.
func (b *Builtin) ID() int { return b.id }

// String returns the type name.
func (b *Builtin) String() string { return b.name }

// Struct is an instantiated structure type. Args holds the template
// arguments, empty for a plain structure.
type Struct struct {
	id     int
	Decl   *ast.StructDecl
	Args   []Type
	Fields []StructField
}

// StructField is one instantiated member.
type StructField struct {
	Name string
	Type Type
}

// ID returns the type id.
func (s *Struct) ID() int { return s.id }

// String returns the structural spelling, Pair<Int, Int> for a
// template instantiation.
func (s *Struct) String() string {
	if len(s.Args) == 0 {
		return s.Decl.Name
	}
	var sb strings.Builder
	sb.WriteString(s.Decl.Name)
	sb.WriteByte('<')
	for i, a := range s.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.String())
	}
	sb.WriteByte('>')
	return sb.String()
}

// Field returns the field with the given name.
func (s *Struct) Field(name string) (StructField, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return StructField{}, false
}

// Func is an instantiated function. Ids are drawn from the same
// counter as types. Body is the checked body; it is nil while the
// instantiation is in flight, which recursive calls observe and
// tolerate, and stays nil when the signature failed to check.
type Func struct {
	id        int
	Decl      *ast.FuncDecl
	Args      []Type
	Params    []FuncParam
	Return    Type
	Body      *Block
	Intrinsic string
}

// FuncParam is one instantiated parameter.
type FuncParam struct {
	Name string
	Type Type
}

// ID returns the function id.
func (f *Func) ID() int { return f.id }

// Name returns the source-level function name.
func (f *Func) Name() string { return f.Decl.Name }

// Program is the monomorphized result of analysis. Types is in id
// order. Structs is in completion order, which places every structure
// after the structures its fields depend on. Funcs is in completion
// order as well.
type Program struct {
	nextID  int
	Types   []Type
	Structs []*Struct
	Funcs   []*Func
	Main    *Func
}

// NextID hands out the next id. Types and functions share the counter,
// so an id names exactly one thing in the whole program.
func (p *Program) NextID() int {
	p.nextID++
	return p.nextID
}
