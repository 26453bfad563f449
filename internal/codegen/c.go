// Package codegen lowers an analyzed program to a single portable C
// translation unit. Names are id-stamped, tN for types and fN for
// functions, so the output is byte-deterministic for a given program.
package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sylva-lang/sylva/internal/types"
)

// Emit renders prog as a complete C translation unit.
func Emit(prog *types.Program) string {
	e := &emitter{prog: prog}
	return e.run()
}

type emitter struct {
	prog  *types.Program
	sb    strings.Builder
	depth int
}

func typeName(t types.Type) string { return "t" + strconv.Itoa(t.ID()) }

func funcName(f *types.Func) string { return "f" + strconv.Itoa(f.ID()) }

func (e *emitter) line(format string, args ...any) {
	for i := 0; i < e.depth; i++ {
		e.sb.WriteString("    ")
	}
	fmt.Fprintf(&e.sb, format, args...)
	e.sb.WriteByte('\n')
}

func (e *emitter) blank() { e.sb.WriteByte('\n') }

// run emits the unit in layers: typedefs, struct definitions, function
// prototypes, function definitions, then the entry trampoline. Struct
// definitions come out in completion order, which places every
// structure after the structures its fields need complete.
func (e *emitter) run() string {
	e.line("#include <stdint.h>")
	e.line("#include <stdio.h>")
	e.blank()
	for _, t := range e.prog.Types {
		switch tt := t.(type) {
		case *types.Builtin:
			switch tt.String() {
			case "Void":
				e.line("typedef void %s;", typeName(t))
			case "Int":
				e.line("typedef int32_t %s;", typeName(t))
			}
		case *types.Struct:
			e.line("typedef struct %s %s;", typeName(t), typeName(t))
		}
	}
	e.blank()
	for _, st := range e.prog.Structs {
		e.line("struct %s {", typeName(st))
		e.depth++
		for _, f := range st.Fields {
			e.line("%s %s;", typeName(f.Type), f.Name)
		}
		e.depth--
		e.line("};")
		e.blank()
	}
	for _, fn := range e.prog.Funcs {
		e.line("%s;", e.signature(fn))
	}
	e.blank()
	for _, fn := range e.prog.Funcs {
		e.emitFunc(fn)
		e.blank()
	}
	e.line("int main(void) {")
	e.depth++
	e.line("%s();", funcName(e.prog.Main))
	e.line("return 0;")
	e.depth--
	e.line("}")
	return e.sb.String()
}

func (e *emitter) signature(fn *types.Func) string {
	var sb strings.Builder
	sb.WriteString(typeName(fn.Return))
	sb.WriteByte(' ')
	sb.WriteString(funcName(fn))
	sb.WriteByte('(')
	if len(fn.Params) == 0 {
		sb.WriteString("void")
	} else {
		for i, p := range fn.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(typeName(p.Type))
			sb.WriteByte(' ')
			sb.WriteString(p.Name)
		}
	}
	sb.WriteByte(')')
	return sb.String()
}

func (e *emitter) emitFunc(fn *types.Func) {
	e.line("%s {", e.signature(fn))
	e.depth++
	if fn.Intrinsic != "" {
		e.emitIntrinsic(fn)
	} else {
		for _, s := range fn.Body.Stmts {
			e.emitStmt(s)
		}
	}
	e.depth--
	e.line("}")
}

func (e *emitter) emitIntrinsic(fn *types.Func) {
	switch fn.Intrinsic {
	case "print_int":
		e.line(`printf("%%d\n", %s);`, fn.Params[0].Name)
	}
}

func (e *emitter) emitStmt(s types.Stmt) {
	switch st := s.(type) {
	case *types.Block:
		e.line("{")
		e.depth++
		for _, inner := range st.Stmts {
			e.emitStmt(inner)
		}
		e.depth--
		e.line("}")
	case *types.EmptyStmt:
		e.line(";")
	case *types.LetStmt:
		e.line("%s %s = %s;", typeName(st.Type), st.Name, e.expr(st.Value))
	case *types.IfStmt:
		e.line("if (%s) {", e.expr(st.Cond))
		e.depth++
		e.emitBody(st.Then)
		e.depth--
		if _, empty := st.Else.(*types.EmptyStmt); empty {
			e.line("}")
		} else {
			e.line("} else {")
			e.depth++
			e.emitBody(st.Else)
			e.depth--
			e.line("}")
		}
	case *types.WhileStmt:
		e.line("while (%s) {", e.expr(st.Cond))
		e.depth++
		e.emitBody(st.Body)
		e.depth--
		e.line("}")
	case *types.ReturnStmt:
		if st.Value == nil {
			e.line("return;")
		} else {
			e.line("return %s;", e.expr(st.Value))
		}
	case *types.ExprStmt:
		e.line("%s;", e.expr(st.Expr))
	}
}

// emitBody flattens a block one level so if and while bodies do not
// get doubled braces.
func (e *emitter) emitBody(s types.Stmt) {
	if b, ok := s.(*types.Block); ok {
		for _, inner := range b.Stmts {
			e.emitStmt(inner)
		}
		return
	}
	e.emitStmt(s)
}

// expr renders an expression. Binary and assignment expressions are
// fully parenthesized; the source precedence is already baked into the
// tree, so no C precedence table is needed.
func (e *emitter) expr(x types.Expr) string {
	switch ex := x.(type) {
	case *types.IntExpr:
		return strconv.FormatInt(int64(ex.Value), 10)
	case *types.VarExpr:
		return ex.Name
	case *types.BinaryExpr:
		return "(" + e.expr(ex.Left) + " " + ex.Op.String() + " " + e.expr(ex.Right) + ")"
	case *types.AssignExpr:
		return "(" + ex.Target.Name + " = " + e.expr(ex.Value) + ")"
	case *types.CallExpr:
		var sb strings.Builder
		sb.WriteString(funcName(ex.Fn))
		sb.WriteByte('(')
		for i, a := range ex.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(e.expr(a))
		}
		sb.WriteByte(')')
		return sb.String()
	case *types.MemberExpr:
		return e.expr(ex.Receiver) + "." + ex.Field
	}
	panic("unhandled expression")
}
