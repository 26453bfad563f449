// Package compiler wires the stages into a single pipeline: parse,
// analyze, emit C.
package compiler

import (
	"os"

	"github.com/sylva-lang/sylva/internal/codegen"
	"github.com/sylva-lang/sylva/internal/diag"
	"github.com/sylva-lang/sylva/internal/parser"
	"github.com/sylva-lang/sylva/internal/types"
)

// Result carries the artifacts of a successful compile.
type Result struct {
	Program *types.Program
	C       string
}

// CompileSource runs the pipeline over source text. Diagnostics go
// into bag; a nil result means errors were recorded.
func CompileSource(src, filename string, bag *diag.Bag) *Result {
	prog, perr := parser.Parse(src, parser.WithFilename(filename))
	if perr != nil {
		bag.Add(perr.ToDiagnostic())
		return nil
	}
	checked := types.Analyze(prog, bag)
	if checked == nil {
		return nil
	}
	return &Result{Program: checked, C: codegen.Emit(checked)}
}

// CompileFile compiles path and writes the generated C next to the
// source as path.c. It returns the output path.
func CompileFile(path string, bag *diag.Bag) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		bag.Errorf(diag.StageDriver, diag.CodeReadFailed,
			diag.Span{Filename: path}, "cannot read %s: %v", path, err)
		return "", false
	}
	res := CompileSource(string(data), path, bag)
	if res == nil {
		return "", false
	}
	outPath := path + ".c"
	if err := os.WriteFile(outPath, []byte(res.C), 0o644); err != nil {
		bag.Errorf(diag.StageDriver, diag.CodeWriteFailed,
			diag.Span{Filename: outPath}, "cannot write %s: %v", outPath, err)
		return "", false
	}
	return outPath, true
}
