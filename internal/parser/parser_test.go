package parser

import (
	"strconv"
	"strings"
	"testing"

	"github.com/sylva-lang/sylva/internal/ast"
)

func parseOne(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := Parse(src, WithFilename("test.sy"))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return prog
}

func exprString(e ast.Expr) string {
	switch x := e.(type) {
	case *ast.IntLit:
		return strconv.Itoa(int(x.Value))
	case *ast.Name:
		return x.Ident
	case *ast.Binary:
		return "(" + exprString(x.Left) + " " + x.Op.String() + " " + exprString(x.Right) + ")"
	case *ast.Assign:
		return "(" + exprString(x.Left) + " = " + exprString(x.Right) + ")"
	case *ast.Call:
		var sb strings.Builder
		sb.WriteString(exprString(x.Callee))
		sb.WriteByte('(')
		for i, a := range x.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(exprString(a))
		}
		sb.WriteByte(')')
		return sb.String()
	case *ast.Member:
		return exprString(x.Receiver) + "." + x.Field
	}
	return "?"
}

func parseExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	prog := parseOne(t, "func main() { return "+src+"; }")
	ret, ok := prog.Funcs[0].Body.Stmts[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("expected a return statement, got %T", prog.Funcs[0].Body.Stmts[0])
	}
	return ret.Value
}

func TestExpressionPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"1 * 2 + 3", "((1 * 2) + 3)"},
		{"1 + 2 - 3", "((1 + 2) - 3)"},
		{"10 / 2 % 3", "((10 / 2) % 3)"},
		{"a = b = 1", "(a = (b = 1))"},
		{"a = 1 + 2", "(a = (1 + 2))"},
		{"1 < 2 == 3 < 4", "((1 < 2) == (3 < 4))"},
		{"1 <= 2 != 3 >= 4", "((1 <= 2) != (3 >= 4))"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"a.b.c", "a.b.c"},
		{"f(1, 2)", "f(1, 2)"},
		{"f(1).g", "f(1).g"},
		{"x.f(y)", "x.f(y)"},
		{"f()(1)", "f()(1)"},
		{"true", "1"},
		{"false", "0"},
		{"a + b < c * d", "((a + b) < (c * d))"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got := exprString(parseExpr(t, tt.src))
			if got != tt.want {
				t.Errorf("parsed %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIntLiteralWrapsAt32Bits(t *testing.T) {
	e := parseExpr(t, "2147483648")
	lit, ok := e.(*ast.IntLit)
	if !ok {
		t.Fatalf("expected an integer literal, got %T", e)
	}
	if lit.Value != -2147483648 {
		t.Errorf("got %d, want -2147483648", lit.Value)
	}
}

func TestCommentsAreWhitespace(t *testing.T) {
	src := `
// leading comment
func main() { // trailing
    return /* inline */ 1 + 2; /* another */
}
`
	prog := parseOne(t, src)
	if len(prog.Funcs) != 1 {
		t.Fatalf("got %d functions, want 1", len(prog.Funcs))
	}
	ret := prog.Funcs[0].Body.Stmts[0].(*ast.ReturnStmt)
	if got := exprString(ret.Value); got != "(1 + 2)" {
		t.Errorf("parsed %q, want %q", got, "(1 + 2)")
	}
}

func TestLineCommentEndsExpression(t *testing.T) {
	prog := parseOne(t, "func main() { return a //b\n; }")
	ret := prog.Funcs[0].Body.Stmts[0].(*ast.ReturnStmt)
	if got := exprString(ret.Value); got != "a" {
		t.Errorf("parsed %q, want %q", got, "a")
	}
}

func TestKeywordBoundary(t *testing.T) {
	prog := parseOne(t, "func main() { let letter = 1; return letter; }")
	let, ok := prog.Funcs[0].Body.Stmts[0].(*ast.LetStmt)
	if !ok {
		t.Fatalf("expected a let statement, got %T", prog.Funcs[0].Body.Stmts[0])
	}
	if let.Name != "letter" {
		t.Errorf("got name %q, want %q", let.Name, "letter")
	}
}

func TestFunctionDeclaration(t *testing.T) {
	prog := parseOne(t, "func add(a: Int, b: Int): Int { return a + b; }")
	fn := prog.Funcs[0]
	if fn.Name != "add" {
		t.Errorf("got name %q, want %q", fn.Name, "add")
	}
	if len(fn.Params) != 2 {
		t.Fatalf("got %d params, want 2", len(fn.Params))
	}
	if fn.Params[0].Name != "a" || fn.Params[1].Name != "b" {
		t.Errorf("got params %q, %q", fn.Params[0].Name, fn.Params[1].Name)
	}
	ret, ok := fn.ReturnType.(*ast.Name)
	if !ok || ret.Ident != "Int" {
		t.Errorf("got return type %v, want Int", fn.ReturnType)
	}
}

func TestOmittedReturnTypeIsVoid(t *testing.T) {
	prog := parseOne(t, "func main() { }")
	ret, ok := prog.Funcs[0].ReturnType.(*ast.Name)
	if !ok || ret.Ident != "Void" {
		t.Errorf("got return type %v, want Void", prog.Funcs[0].ReturnType)
	}
}

func TestTemplateFunction(t *testing.T) {
	prog := parseOne(t, "func pick<T, U>(a: T, b: U): T { return a; }")
	fn := prog.Funcs[0]
	if len(fn.TypeParams) != 2 || fn.TypeParams[0] != "T" || fn.TypeParams[1] != "U" {
		t.Errorf("got type params %v, want [T U]", fn.TypeParams)
	}
}

func TestStructDeclaration(t *testing.T) {
	prog := parseOne(t, "struct Pair<A, B> { first: A, second: B }")
	st := prog.Structs[0]
	if st.Name != "Pair" {
		t.Errorf("got name %q, want %q", st.Name, "Pair")
	}
	if len(st.TypeParams) != 2 {
		t.Fatalf("got %d type params, want 2", len(st.TypeParams))
	}
	if len(st.Fields) != 2 || st.Fields[0].Name != "first" || st.Fields[1].Name != "second" {
		t.Errorf("got fields %v", st.Fields)
	}
}

func TestEmptyStruct(t *testing.T) {
	prog := parseOne(t, "struct Unit { }")
	if len(prog.Structs[0].Fields) != 0 {
		t.Errorf("got %d fields, want 0", len(prog.Structs[0].Fields))
	}
}

func TestNestedTemplateType(t *testing.T) {
	prog := parseOne(t, "func f(p: Pair<Int, Box<Int>>) { }")
	typ, ok := prog.Funcs[0].Params[0].Type.(*ast.Call)
	if !ok {
		t.Fatalf("expected a template application, got %T", prog.Funcs[0].Params[0].Type)
	}
	head := typ.Callee.(*ast.Name)
	if head.Ident != "Pair" || len(typ.Args) != 2 {
		t.Fatalf("got %s with %d args", head.Ident, len(typ.Args))
	}
	inner, ok := typ.Args[1].(*ast.Call)
	if !ok || inner.Callee.(*ast.Name).Ident != "Box" {
		t.Errorf("got inner type %v, want Box<Int>", typ.Args[1])
	}
}

func TestIfElse(t *testing.T) {
	prog := parseOne(t, "func main() { if 1 { } else { return; } }")
	ifs, ok := prog.Funcs[0].Body.Stmts[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected an if statement, got %T", prog.Funcs[0].Body.Stmts[0])
	}
	if _, ok := ifs.Else.(*ast.BlockStmt); !ok {
		t.Errorf("got else %T, want block", ifs.Else)
	}
}

func TestIfWithoutElse(t *testing.T) {
	prog := parseOne(t, "func main() { if 1 { } }")
	ifs := prog.Funcs[0].Body.Stmts[0].(*ast.IfStmt)
	if _, ok := ifs.Else.(*ast.EmptyStmt); !ok {
		t.Errorf("got else %T, want empty statement", ifs.Else)
	}
}

func TestWhile(t *testing.T) {
	prog := parseOne(t, "func main() { while x < 10 x = x + 1; }")
	w, ok := prog.Funcs[0].Body.Stmts[0].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("expected a while statement, got %T", prog.Funcs[0].Body.Stmts[0])
	}
	if got := exprString(w.Cond); got != "(x < 10)" {
		t.Errorf("got condition %q", got)
	}
}

func TestWhitespaceOnlyFile(t *testing.T) {
	prog := parseOne(t, "  \n\t// just a comment\n/* and another */\n")
	if len(prog.Funcs) != 0 || len(prog.Structs) != 0 {
		t.Errorf("got %d funcs and %d structs, want none", len(prog.Funcs), len(prog.Structs))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"empty file", "", "expected a function"},
		{"stray token", "junk", "expected a function"},
		{"bare func", "func", "expected a function name"},
		{"missing param name", "func f(", "expected a parameter name"},
		{"unclosed body", "func f() {", "expected '}'"},
		{"let without name", "func f() { let = 1; }", "expected a variable name"},
		{"let without equals", "func f() { let x 1; }", "expected '='"},
		{"missing semicolon", "func f() { return 1 }", "expected ';'"},
		{"if without condition", "func f() { if }", "expected an expression"},
		{"dangling operator", "func f() { return 1 +; }", "expected an expression"},
		{"unterminated comment", "func f() { /* }", "expected '*/'"},
		{"struct field type", "struct S { x }", "expected ':'"},
		{"unclosed template", "func f<T(a: T) { }", "expected '>'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src, WithFilename("test.sy"))
			if err == nil {
				t.Fatal("expected an error")
			}
			if err.Message != tt.want {
				t.Errorf("got %q, want %q", err.Message, tt.want)
			}
		})
	}
}

func TestErrorPosition(t *testing.T) {
	_, err := Parse("func f() {\n    let = 1;\n}\n", WithFilename("test.sy"))
	if err == nil {
		t.Fatal("expected an error")
	}
	if err.Span.Line != 2 || err.Span.Column != 9 {
		t.Errorf("got %d:%d, want 2:9", err.Span.Line, err.Span.Column)
	}
	if err.Span.Filename != "test.sy" {
		t.Errorf("got filename %q", err.Span.Filename)
	}
}
