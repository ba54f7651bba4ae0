package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mlambacher/bfalc/internal/dispatch"
	"github.com/mlambacher/bfalc/internal/minipython"
	"github.com/mlambacher/bfalc/internal/peephole"
)

var flagOutput string

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile BFAL (or --minipython) source to the target tape language",
	Long: "compile reads a source file (or stdin, if none is given) and " +
		"writes the compiled target tape language program to stdout, or to " +
		"the file named by -o.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		src, err := readSource(path)
		if err != nil {
			reportError(err)
			return err
		}

		program, err := compileSource(src)
		if err != nil {
			reportError(err)
			return err
		}

		if flagOutput == "" || flagOutput == "-" {
			fmt.Fprint(os.Stdout, program)
			return nil
		}
		if err := os.WriteFile(flagOutput, []byte(program), 0o644); err != nil {
			reportError(err)
			return err
		}
		return nil
	},
}

func init() {
	compileCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "write the compiled program here instead of stdout")
}

// compileSource runs src (BFAL, or MiniPython when --minipython is set)
// through the dispatcher against the flag-selected layout, then through the
// peephole pass unless --no-peephole disables it.
func compileSource(src string) (string, error) {
	layout := selectLayout()
	debugf("layout selected: comparison=%v stack=%v (%d cells)", layout.HasComparison(), layout.HasStack(), layout.Len())

	var program string
	if flagMinipython {
		bfal, p, err := minipython.Compile(src, layout)
		if err != nil {
			return "", err
		}
		debugf("minipython lowered to %d bytes of BFAL source", len(bfal))
		program = p
	} else {
		p, err := dispatch.New(layout).Compile(src)
		if err != nil {
			return "", err
		}
		program = p
	}

	debugf("emitted %d bytes before peephole", len(program))
	if !flagNoPeephole {
		before := len(program)
		program = peephole.Run(program)
		debugf("peephole: %d -> %d bytes", before, len(program))
	}
	return program, nil
}
