// Package lexer is the line-oriented parsing boundary ahead of the code
// generator: it splits a source line into command parts, looks the opcode
// up in the opcodes catalogue, classifies each remaining part as a
// register, a value literal, or text, and applies the alias table. It is a
// boundary service per spec.md §1/§6, not part of the core; everything it
// rejects is a user error (internal/bferr.AssemblyError), never a panic.
//
// Grounded on pyfck/pyfck/bfalParser/parser.py's parseCmdParts/parseOpcode/
// parseArg/findError/parseCommand and pyfck/pyfck/util.py's litStrToInt.
package lexer

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mlambacher/bfalc/internal/bferr"
	"github.com/mlambacher/bfalc/internal/opcodes"
)

// Command is a fully classified, ready-to-dispatch source line: the 4-tuple
// spec.md §6 describes as the lexer's output.
type Command struct {
	Source string
	Class  opcodes.Class
	Opcode opcodes.Opcode
	Type   string
	Args   [3]string
}

// Lexer holds the mutable alias table a running compilation accumulates via
// ALIAS commands, and the set of register names the catalogue in use
// recognises (so the same lexer works against both memlayout.Full and
// memlayout.Basic).
type Lexer struct {
	aliases   map[string]string
	registers map[string]bool
	catalogue map[opcodes.Opcode]opcodes.Def
}

// New creates a Lexer recognising registers and dispatching against
// catalogue (opcodes.Table or opcodes.Basic).
func New(registers []string, catalogue map[opcodes.Opcode]opcodes.Def) *Lexer {
	regs := make(map[string]bool, len(registers))
	for _, r := range registers {
		regs[r] = true
	}
	return &Lexer{aliases: map[string]string{}, registers: regs, catalogue: catalogue}
}

// SetAlias records name as an alias for value, the effect of an ALIAS
// command. It is applied by the dispatcher, not by ParseCommand itself,
// since ALIAS has no code-generation effect of its own.
func (l *Lexer) SetAlias(name, value string) {
	l.aliases[name] = value
}

// ParseCommand splits and classifies a single source line. It returns
// (nil, nil) for a blank or comment-only line.
func (l *Lexer) ParseCommand(line string) (*Command, error) {
	parts, err := l.splitParts(line)
	if err != nil {
		return nil, bferr.WithCommand(err, line)
	}
	if len(parts) == 0 {
		return nil, nil
	}

	op := opcodes.Opcode(parts[0])
	def, ok := l.catalogue[op]
	if !ok {
		return nil, bferr.WithCommand(bferr.NameErrorf("unknown opcode %s", parts[0]), line)
	}

	var argTypes []string
	var args []string
	for _, raw := range parts[1:] {
		kind, val := l.classifyArg(op, raw)
		argTypes = append(argTypes, kind)
		args = append(args, val)
	}
	realType := strings.Join(argTypes, "")

	if !def.Accepts(realType) {
		return nil, bferr.WithCommand(l.findError(realType, def.Types, args), line)
	}

	cmd := &Command{Source: line, Class: def.Class, Opcode: op, Type: realType}
	for i := 0; i < len(args) && i < 3; i++ {
		cmd.Args[i] = args[i]
	}
	return cmd, nil
}

// splitParts splits a line at whitespace, treating a double-quoted run as
// a single part and stripping a trailing "//" comment.
func (l *Lexer) splitParts(line string) ([]string, *bferr.AssemblyError) {
	if idx := strings.Index(line, "//"); idx >= 0 {
		line = line[:idx]
	}
	if len(line) == 0 {
		return nil, nil
	}
	if strings.Count(line, `"`)%2 != 0 {
		return nil, bferr.SyntaxErrorf("quotation marks must be of even number")
	}

	var parts []string
	for i, seg := range strings.Split(line, `"`) {
		if seg == "" {
			continue
		}
		if i%2 == 0 {
			parts = append(parts, strings.Fields(strings.ToUpper(seg))...)
		} else {
			parts = append(parts, seg)
		}
	}
	return parts, nil
}

// classifyArg resolves arg through the alias table (unless opcode is
// ALIAS itself, so an alias command can redefine an existing alias), then
// classifies it as a register, a value literal, or text.
func (l *Lexer) classifyArg(op opcodes.Opcode, arg string) (kind, value string) {
	if op != opcodes.ALIAS {
		if v, ok := l.aliases[arg]; ok {
			arg = v
		}
	}
	if l.registers[arg] {
		return "R", arg
	}
	if v, err := parseLiteral(arg); err == nil {
		return "V", strconv.Itoa(v)
	}
	return "T", arg
}

// parseLiteral accepts a 0b/0x/0o radix prefix (case-insensitive) or a
// plain decimal integer.
func parseLiteral(s string) (int, error) {
	if len(s) >= 2 {
		switch strings.ToLower(s[:2]) {
		case "0b":
			v, err := strconv.ParseInt(s[2:], 2, 64)
			return int(v), err
		case "0x":
			v, err := strconv.ParseInt(s[2:], 16, 64)
			return int(v), err
		case "0o":
			v, err := strconv.ParseInt(s[2:], 8, 64)
			return int(v), err
		}
	}
	v, err := strconv.Atoi(s)
	return v, err
}

// findError builds a specific, helpful AssemblyError for a command whose
// classified argument types didn't match any of an opcode's accepted
// forms: first an arity mismatch, then the first argument position whose
// kind isn't possible at that length.
func (l *Lexer) findError(realType string, possibleTypes []string, args []string) *bferr.AssemblyError {
	length := len(realType)

	seen := map[int]bool{}
	var lengths []int
	for _, t := range possibleTypes {
		if !seen[len(t)] {
			seen[len(t)] = true
			lengths = append(lengths, len(t))
		}
	}
	lengthOK := false
	for _, n := range lengths {
		if n == length {
			lengthOK = true
		}
	}
	if !lengthOK {
		sort.Ints(lengths)
		if len(lengths) == 1 {
			return bferr.TypeErrorf("wrong number of arguments: %d, must be %d", length, lengths[0])
		}
		return bferr.TypeErrorf("wrong number of arguments: %d, must be in %v", length, lengths)
	}

	var sameLength []string
	for _, t := range possibleTypes {
		if len(t) == length {
			sameLength = append(sameLength, t)
		}
	}

	for pos := 0; pos < length; pos++ {
		possible := map[byte]bool{}
		for _, t := range sameLength {
			possible[t[pos]] = true
		}
		if possible[realType[pos]] {
			continue
		}

		prefix := fmt.Sprintf("invalid argument %d: %q", pos+1, args[pos])
		if len(possible) != 1 {
			return bferr.TypeErrorf("%s", prefix)
		}
		if possible['R'] {
			return bferr.NameErrorf("%s: not a register", prefix)
		}
		if possible['V'] {
			return bferr.ValueErrorf("%s: not a recognised value", prefix)
		}
		return bferr.TypeErrorf("%s", prefix)
	}

	return bferr.TypeErrorf("unable to find error in arguments")
}
