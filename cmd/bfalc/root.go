package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mlambacher/bfalc/internal/bferr"
	"github.com/mlambacher/bfalc/internal/memlayout"
)

// Flags shared by compile and run, following the teacher's own main.go
// (std/compiler/main.go) in keeping every flag a package-level var rather
// than threading a config struct through: this binary has two subcommands,
// not a multi-pass pipeline, so the extra indirection buys nothing.
var (
	flagDebug      bool
	flagMinipython bool
	flagNoPeephole bool
	flagNoCmp      bool
	flagNoStack    bool
	flagCells      int
)

var log = logrus.New()

var rootCmd = &cobra.Command{
	Use:   "bfalc",
	Short: "Compile BFAL (register-oriented assembly) to Brainfuck",
	Long: "bfalc compiles the BFAL register assembly language, or the " +
		"supplemental MiniPython front end, to the target tape language, " +
		"and can run the result on a bundled interpreter directly.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "trace compilation stages to stderr")
	rootCmd.PersistentFlags().BoolVar(&flagMinipython, "minipython", false, "treat the input as MiniPython source instead of BFAL")
	rootCmd.PersistentFlags().BoolVar(&flagNoPeephole, "no-peephole", false, "skip the peephole post-pass (component C8)")
	rootCmd.PersistentFlags().BoolVar(&flagNoCmp, "no-cmp", false, "use the earlier generation's layout: no comparison block, no ordered comparisons")
	rootCmd.PersistentFlags().BoolVar(&flagNoStack, "no-stack", false, "use the earlier generation's layout: no stack region, no PUSH/POP")

	rootCmd.AddCommand(compileCmd, runCmd)
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.InfoLevel)

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if flagDebug {
			log.SetLevel(logrus.DebugLevel)
		}
	}
}

// selectLayout picks memlayout.Full unless --no-cmp or --no-stack forces
// the reduced generation (spec.md §4.7: "a generation of the language
// lacks the stack and the comparison block ... no other change is
// required").
func selectLayout() *memlayout.Layout {
	if flagNoCmp || flagNoStack {
		return memlayout.Basic()
	}
	return memlayout.Full()
}

func debugf(format string, args ...any) {
	log.Debugf(format, args...)
}

// readSource reads BFAL/MiniPython source from path, or from stdin when
// path is empty or "-".
func readSource(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := readAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func readAll(f *os.File) ([]byte, error) {
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// reportError renders a compilation error the way spec.md §7 prescribes: a
// single human-readable line, referencing the originating command for user
// errors. The line is colored red when stderr is a terminal (grounded on
// the teacher's pack-mate rage/go-corset's golang.org/x/term use for the
// same purpose); internal errors reach here only via the panic recovered in
// main, never as a returned error, so this only ever sees
// *bferr.AssemblyError or a plain error (I/O, the MiniPython front end, or
// an interpreter fault).
func reportError(err error) {
	msg := err.Error()
	if _, ok := err.(*bferr.AssemblyError); ok && term.IsTerminal(int(os.Stderr.Fd())) {
		msg = "\x1b[31m" + msg + "\x1b[0m"
	}
	fmt.Fprintln(os.Stderr, msg)
}
