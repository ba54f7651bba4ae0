package minipython

import (
	"github.com/mlambacher/bfalc/internal/dispatch"
	"github.com/mlambacher/bfalc/internal/memlayout"
)

// Compile parses src as a MiniPython program, lowers it to BFAL source
// text, and compiles that text to the target tape language using a fresh
// Dispatcher against layout. It returns the generated BFAL source
// alongside the compiled fragment so callers (the CLI's --debug flag) can
// show the intermediate form.
func Compile(src string, layout *memlayout.Layout) (bfal string, program string, err error) {
	ast, err := Parse(src)
	if err != nil {
		return "", "", err
	}
	bfal, err = NewGenerator().Generate(ast)
	if err != nil {
		return "", "", err
	}
	program, err = dispatch.New(layout).Compile(bfal)
	if err != nil {
		return bfal, "", err
	}
	return bfal, program, nil
}
