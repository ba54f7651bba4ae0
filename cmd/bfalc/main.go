// Command bfalc compiles BFAL (or, with --minipython, the supplemental
// MiniPython front end) to the target tape language, and can run the
// result through a conforming interpreter directly. Flag and subcommand
// shape follows the teacher's own CLI (std/compiler/main.go): a -debug
// flag gated behind stderr tracing, reading source from stdin when no file
// is given, and a non-zero exit on any compile or runtime error — wired
// here through cobra/logrus/x/term instead of hand-rolled flag parsing.
package main

import (
	"fmt"
	"os"
)

func main() {
	defer func() {
		// bferr.Internal (spec.md §7) panics rather than returning an error:
		// it indicates a generator bug, never user input. Recovered here so
		// it still exits non-zero with a one-line message instead of a raw
		// Go stack trace, matching every other error path's presentation.
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, r)
			os.Exit(1)
		}
	}()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
