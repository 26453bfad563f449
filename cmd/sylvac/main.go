// Command sylvac compiles one source file to C, writing the output
// next to the input with a .c suffix.
package main

import (
	"fmt"
	"os"

	"github.com/sylva-lang/sylva/internal/compiler"
	"github.com/sylva-lang/sylva/internal/diag"
)

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) != 2 {
		return 1
	}
	bag := diag.NewBag()
	_, ok := compiler.CompileFile(os.Args[1], bag)
	if bag.Len() > 0 {
		f := diag.NewFormatter(os.Stderr, isTerminal(os.Stderr))
		f.FormatAll(bag.Diagnostics())
	}
	if !ok {
		return 1
	}
	if isTerminal(os.Stdout) {
		fmt.Println("\x1b[1;32msuccess\x1b[0m")
	} else {
		fmt.Println("success")
	}
	return 0
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
