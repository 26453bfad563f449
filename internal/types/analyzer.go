package types

import (
	"strconv"
	"strings"

	"github.com/sylva-lang/sylva/internal/ast"
	"github.com/sylva-lang/sylva/internal/diag"
)

// Analyzer drives semantic analysis for one source file. Instantiation
// is demand driven: nothing is checked until something reachable from
// main asks for it.
type Analyzer struct {
	src      *ast.Program
	out      *Program
	bag      *diag.Bag
	funcs    map[funcKey]*Func
	structs  map[structKey]*Struct
	builtins map[string]*Builtin
	typeVars *Scope
	vars     *Scope
	retType  Type
}

type funcKey struct {
	decl *ast.FuncDecl
	args string
}

type structKey struct {
	decl *ast.StructDecl
	args string
}

// argsKey renders a template argument list as a memo key. Type ids are
// unique, so the key is too.
func argsKey(ts []Type) string {
	if len(ts) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, t := range ts {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(t.ID()))
	}
	return sb.String()
}

// Analyze checks prog starting from main() with no arguments and a
// Void result, instantiating everything reachable. It returns nil when
// any error was recorded in bag.
func Analyze(prog *ast.Program, bag *diag.Bag) *Program {
	a := &Analyzer{
		src:      prog,
		out:      &Program{},
		bag:      bag,
		funcs:    make(map[funcKey]*Func),
		structs:  make(map[structKey]*Struct),
		builtins: make(map[string]*Builtin),
	}
	rootSpan := diag.Span{Filename: prog.Path, Line: 1, Column: 1}
	main := a.getFunction("main", nil, a.voidType(), rootSpan)
	if main == nil || bag.HasErrors() {
		return nil
	}
	a.out.Main = main
	return a.out
}

func (a *Analyzer) errorf(code diag.Code, span diag.Span, format string, args ...any) {
	a.bag.Errorf(diag.StageTypeCheck, code, span, format, args...)
}

// builtin returns the named primitive, creating it on first use so its
// id reflects demand order.
func (a *Analyzer) builtin(name string) *Builtin {
	if b, ok := a.builtins[name]; ok {
		return b
	}
	b := &Builtin{id: a.out.NextID(), name: name}
	a.builtins[name] = b
	a.out.Types = append(a.out.Types, b)
	return b
}

func (a *Analyzer) voidType() *Builtin { return a.builtin("Void") }

func (a *Analyzer) intType() *Builtin { return a.builtin("Int") }

// lookupStruct finds the single declaration with the given name.
func (a *Analyzer) lookupStruct(name string, span diag.Span) *ast.StructDecl {
	var found *ast.StructDecl
	count := 0
	for _, s := range a.src.Structs {
		if s.Name == name {
			found = s
			count++
		}
	}
	switch count {
	case 0:
		a.errorf(diag.CodeUndefinedStruct, span, "struct %q not found", name)
		return nil
	case 1:
		return found
	}
	a.errorf(diag.CodeAmbiguousStruct, span, "%d structs named %q found", count, name)
	return nil
}

// getType evaluates a type expression under the current template
// bindings. It reports an error and returns nil when the expression
// does not name a type.
func (a *Analyzer) getType(expr ast.Expr) Type {
	switch e := expr.(type) {
	case *ast.Name:
		if a.typeVars != nil {
			if t, ok := a.typeVars.Lookup(e.Ident); ok {
				return t
			}
		}
		switch e.Ident {
		case "Void":
			return a.voidType()
		case "Int":
			return a.intType()
		}
		decl := a.lookupStruct(e.Ident, e.Span())
		if decl == nil {
			return nil
		}
		if len(decl.TypeParams) != 0 {
			a.errorf(diag.CodeTemplateArity, e.Span(),
				"invalid number of template arguments for struct %q, expected %d",
				e.Ident, len(decl.TypeParams))
			return nil
		}
		return a.instantiateStruct(decl, nil)
	case *ast.Call:
		head, ok := e.Callee.(*ast.Name)
		if !ok {
			a.errorf(diag.CodeInvalidType, e.Span(), "invalid type expression")
			return nil
		}
		decl := a.lookupStruct(head.Ident, head.Span())
		if decl == nil {
			return nil
		}
		if len(decl.TypeParams) != len(e.Args) {
			a.errorf(diag.CodeTemplateArity, e.Span(),
				"invalid number of template arguments for struct %q, expected %d",
				head.Ident, len(decl.TypeParams))
			return nil
		}
		args := make([]Type, len(e.Args))
		for i, arg := range e.Args {
			t := a.getType(arg)
			if t == nil {
				return nil
			}
			args[i] = t
		}
		return a.instantiateStruct(decl, args)
	}
	a.errorf(diag.CodeInvalidType, expr.Span(), "invalid type expression")
	return nil
}

// instantiateStruct creates or reuses the instantiation of decl for
// the given template arguments. The memo entry is installed before the
// fields are walked.
func (a *Analyzer) instantiateStruct(decl *ast.StructDecl, args []Type) *Struct {
	key := structKey{decl: decl, args: argsKey(args)}
	if st, ok := a.structs[key]; ok {
		return st
	}
	st := &Struct{id: a.out.NextID(), Decl: decl, Args: args}
	a.structs[key] = st
	a.out.Types = append(a.out.Types, st)

	saved := a.typeVars
	a.typeVars = NewScope(nil)
	for i, p := range decl.TypeParams {
		a.typeVars.Define(p, args[i])
	}
	for _, f := range decl.Fields {
		t := a.getType(f.Type)
		if t == nil {
			continue
		}
		st.Fields = append(st.Fields, StructField{Name: f.Name, Type: t})
	}
	a.typeVars = saved

	a.out.Structs = append(a.out.Structs, st)
	return st
}

// instantiateFunction creates or reuses the instantiation of decl for
// the given template arguments. The memo entry is installed after the
// signature is evaluated but before the body is walked: recursive
// calls, direct or mutual, hit the memo and terminate.
func (a *Analyzer) instantiateFunction(decl *ast.FuncDecl, args []Type) *Func {
	key := funcKey{decl: decl, args: argsKey(args)}
	if fn, ok := a.funcs[key]; ok {
		return fn
	}
	fn := &Func{id: a.out.NextID(), Decl: decl, Args: args}

	savedTypeVars, savedVars, savedRet := a.typeVars, a.vars, a.retType
	a.typeVars = NewScope(nil)
	for i, p := range decl.TypeParams {
		a.typeVars.Define(p, args[i])
	}
	ok := true
	for _, p := range decl.Params {
		t := a.getType(p.Type)
		if t == nil {
			ok = false
			continue
		}
		fn.Params = append(fn.Params, FuncParam{Name: p.Name, Type: t})
	}
	fn.Return = a.getType(decl.ReturnType)
	if fn.Return == nil {
		ok = false
	}
	a.funcs[key] = fn

	switch {
	case ok && a.markIntrinsic(fn):
		fn.Body = &Block{}
	case ok:
		a.vars = NewScope(nil)
		for _, p := range fn.Params {
			a.vars.Define(p.Name, p.Type)
		}
		a.retType = fn.Return
		fn.Body = a.checkBlock(decl.Body)
	}
	a.typeVars, a.vars, a.retType = savedTypeVars, savedVars, savedRet

	a.out.Funcs = append(a.out.Funcs, fn)
	return fn
}

// getFunction resolves a call by name, argument types and optionally
// the expected result type. Every same-named declaration is tried by
// unification; exactly one must fit.
func (a *Analyzer) getFunction(name string, argTypes []Type, expected Type, span diag.Span) *Func {
	type candidate struct {
		decl *ast.FuncDecl
		args []Type
	}
	var cands []candidate
	for _, decl := range a.src.Funcs {
		if decl.Name != name || len(decl.Params) != len(argTypes) {
			continue
		}
		u := newUnifier(decl.TypeParams)
		ok := true
		for i, p := range decl.Params {
			if !u.match(p.Type, argTypes[i]) {
				ok = false
				break
			}
		}
		if ok && expected != nil && !u.match(decl.ReturnType, expected) {
			ok = false
		}
		if !ok || !u.complete() {
			continue
		}
		cands = append(cands, candidate{decl: decl, args: u.bindings()})
	}
	switch len(cands) {
	case 0:
		a.errorf(diag.CodeNoMatchingFunc, span, "no matching function %q found", name)
		return nil
	case 1:
		return a.instantiateFunction(cands[0].decl, cands[0].args)
	}
	a.errorf(diag.CodeAmbiguousFunc, span, "%d matching functions %q found", len(cands), name)
	return nil
}
