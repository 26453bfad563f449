package codegen

import (
	"strings"
	"testing"

	"github.com/sylva-lang/sylva/internal/diag"
	"github.com/sylva-lang/sylva/internal/parser"
	"github.com/sylva-lang/sylva/internal/types"
)

func emitSource(t *testing.T, src string) string {
	t.Helper()
	prog, err := parser.Parse(src, parser.WithFilename("test.sy"))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	bag := diag.NewBag()
	checked := types.Analyze(prog, bag)
	if checked == nil {
		t.Fatalf("analysis failed: %v", bag.Diagnostics())
	}
	return Emit(checked)
}

func TestEmitMinimalProgram(t *testing.T) {
	got := emitSource(t, "func main() { }")
	want := `#include <stdint.h>
#include <stdio.h>

typedef void t1;

t1 f2(void);

t1 f2(void) {
}

int main(void) {
    f2();
    return 0;
}
`
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestEmitIsDeterministic(t *testing.T) {
	src := `
struct Pair<A, B> { first: A, second: B }
func make(): Pair<Int, Int> { return make(); }
func print_int(value: Int) { }
func main() {
    let p = make();
    p.first.print_int();
}
`
	first := emitSource(t, src)
	second := emitSource(t, src)
	if first != second {
		t.Error("two compilations produced different output")
	}
}

func TestEmitIntrinsicPrintInt(t *testing.T) {
	got := emitSource(t, `
func print_int(value: Int) { }
func main() {
    let x = 1 + 2;
    x.print_int();
}
`)
	for _, want := range []string{
		`printf("%d\n", value);`,
		"x = (1 + 2);",
		"(x);",
		"#include <stdio.h>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestEmitStructDefinition(t *testing.T) {
	got := emitSource(t, `
struct Pair<A, B> { first: A, second: B }
func make(): Pair<Int, Int> { return make(); }
func main() {
    let p = make();
    let x = p.first;
}
`)
	for _, want := range []string{
		"typedef struct t",
		"first;",
		"second;",
		"p.first;",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Index(got, "struct t") > strings.Index(got, "first;") {
		t.Error("struct definition order is wrong")
	}
}

func TestEmitControlFlow(t *testing.T) {
	got := emitSource(t, `
func main() {
    let i = 0;
    while i < 3 {
        i = i + 1;
    }
    if i == 3 {
        i = 0;
    } else {
        i = 1;
    }
}
`)
	for _, want := range []string{
		"while ((i < 3)) {",
		"if ((i == 3)) {",
		"} else {",
		"(i = (i + 1));",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestEmitIfWithoutElse(t *testing.T) {
	got := emitSource(t, `
func main() {
    let i = 0;
    if i < 1 {
        i = 2;
    }
}
`)
	if strings.Contains(got, "else") {
		t.Errorf("unexpected else branch:\n%s", got)
	}
}

func TestMainTrampolineCallsEntry(t *testing.T) {
	got := emitSource(t, "func main() { }")
	if !strings.Contains(got, "int main(void) {") {
		t.Error("missing C entry point")
	}
	if !strings.Contains(got, "return 0;") {
		t.Error("entry point does not return 0")
	}
}
