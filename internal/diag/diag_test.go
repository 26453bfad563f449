package diag

import (
	"bytes"
	"strings"
	"testing"
)

func TestBagCountsErrors(t *testing.T) {
	b := NewBag()
	if b.HasErrors() {
		t.Error("fresh bag reports errors")
	}
	b.Warnf(StageParser, CodeParseExpected, Span{}, "just a warning")
	if b.HasErrors() {
		t.Error("warnings must not count as errors")
	}
	b.Errorf(StageTypeCheck, CodeTypeMismatch, Span{}, "mismatch %d", 1)
	if !b.HasErrors() {
		t.Error("error not counted")
	}
	if b.Len() != 2 {
		t.Errorf("got %d diagnostics, want 2", b.Len())
	}
	if b.Diagnostics()[0].Severity != SeverityWarning {
		t.Error("recording order not preserved")
	}
}

func TestSpanString(t *testing.T) {
	s := Span{Filename: "a.sy", Line: 3, Column: 7}
	if got := s.String(); got != "a.sy:3:7" {
		t.Errorf("got %q", got)
	}
	s.Filename = ""
	if got := s.String(); got != "3:7" {
		t.Errorf("got %q", got)
	}
}

func TestSpanMerge(t *testing.T) {
	a := Span{Filename: "a.sy", Line: 1, Column: 2, Start: 1, End: 4}
	b := Span{Filename: "a.sy", Line: 1, Column: 8, Start: 7, End: 12}
	m := a.Merge(b)
	if m.Start != 1 || m.End != 12 || m.Column != 2 {
		t.Errorf("got %+v", m)
	}
}

func TestFormatterSnippet(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf, false)
	f.AddSource("demo.sy", "func main() {\n    let = 1;\n}\n")
	f.Format(Diagnostic{
		Stage:    StageParser,
		Severity: SeverityError,
		Code:     CodeParseExpected,
		Message:  "expected a variable name",
		Span:     Span{Filename: "demo.sy", Line: 2, Column: 9, Start: 22, End: 23},
	})
	want := `error: expected a variable name
  --> demo.sy:2:9
   |
 2 |     let = 1;
   |         ^
`
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatterUnderlinesRange(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf, false)
	f.AddSource("demo.sy", "let value = 1;\n")
	f.Format(Diagnostic{
		Severity: SeverityError,
		Message:  "something about value",
		Span:     Span{Filename: "demo.sy", Line: 1, Column: 5, Start: 4, End: 9},
	})
	if !strings.Contains(buf.String(), "^~~~~") {
		t.Errorf("missing underline:\n%s", buf.String())
	}
}

func TestFormatterColor(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf, true)
	f.AddSource("demo.sy", "x\n")
	f.Format(Diagnostic{
		Severity: SeverityError,
		Message:  "boom",
		Span:     Span{Filename: "demo.sy", Line: 1, Column: 1, Start: 0, End: 1},
	})
	if !strings.Contains(buf.String(), "\x1b[1;31m") {
		t.Error("missing ANSI color")
	}
}

func TestFormatterMissingFileDegrades(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf, false)
	f.Format(Diagnostic{
		Severity: SeverityError,
		Message:  "cannot read input",
		Span:     Span{Filename: "does-not-exist.sy"},
	})
	got := buf.String()
	if !strings.Contains(got, "error: cannot read input") {
		t.Errorf("missing header:\n%s", got)
	}
	if !strings.Contains(got, "does-not-exist.sy") {
		t.Errorf("missing filename:\n%s", got)
	}
}
