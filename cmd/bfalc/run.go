package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mlambacher/bfalc/internal/bf"
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Compile and immediately execute BFAL (or --minipython) source",
	Long: "run compiles a source file (or stdin, if none is given) and " +
		"executes the result on the bundled target tape language " +
		"interpreter, wiring the interpreter's input/output straight to " +
		"this process's stdin/stdout.",
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

		debugf("running %d bytes on a %d-cell tape", len(program), tapeSize())
		it := bf.New(tapeSize(), os.Stdin, os.Stdout)
		if err := it.Run(program); err != nil {
			reportError(err)
			return err
		}
		return nil
	},
}

func init() {
	runCmd.Flags().IntVar(&flagCells, "cells", bf.DefaultTapeSize, "tape size in cells")
}

func tapeSize() int {
	if flagCells <= 0 {
		return bf.DefaultTapeSize
	}
	return flagCells
}
