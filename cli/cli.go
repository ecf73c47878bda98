// Package cli provides the functions to parse the non-standard CLI flags.
//
// The accepted form is:
//
//	<input> [output] [-d|--debug] [-strict] [-n cycles]
//
// where input is either a .asm source or a .hack binary text.
package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.creack.net/hack/asm"
	"go.creack.net/hack/asm/parser"
	"go.creack.net/hack/disasm"
	"go.creack.net/hack/vm"
)

const (
	SourceExt = ".asm"
	BinaryExt = ".hack"
)

type Args struct {
	Input  string
	Output string // Defaults to the input with the .hack extension.
	Debug  bool
	Strict bool
	Cycles int // Emulator cycle limit, 0 for none.
}

// ParseArgs walks the arguments manually, flags may appear anywhere.
func ParseArgs(args []string) (Args, error) {
	var out Args
	var positional []string
	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch {
		case arg == "-d" || arg == "--debug":
			out.Debug = true
			continue
		case arg == "-strict" || arg == "--strict":
			out.Strict = true
			continue
		case arg == "-n" && i+1 < len(args):
			n, err := strconv.Atoi(args[i+1])
			if err != nil || n < 0 {
				return Args{}, fmt.Errorf("invalid number for -n flag: %q", args[i+1])
			}
			out.Cycles = n
			i++ // Skip the value of -n
			continue
		case strings.HasPrefix(arg, "-n") && len(arg) > 2:
			n, err := strconv.Atoi(strings.TrimPrefix(arg, "-n"))
			if err != nil || n < 0 {
				return Args{}, fmt.Errorf("invalid number for -n flag: %q", arg)
			}
			out.Cycles = n
			continue
		case strings.HasPrefix(arg, "-") && arg != "-":
			return Args{}, fmt.Errorf("unknown flag %q", arg)
		}

		positional = append(positional, arg)
	}

	switch len(positional) {
	case 0:
		return Args{}, fmt.Errorf("no input provided")
	case 1, 2:
	default:
		return Args{}, fmt.Errorf("too many arguments: %q", positional[2:])
	}
	out.Input = positional[0]
	if !strings.HasSuffix(out.Input, SourceExt) && !strings.HasSuffix(out.Input, BinaryExt) {
		return Args{}, fmt.Errorf("invalid file extension for %q, must be %s or %s", out.Input, SourceExt, BinaryExt)
	}
	if len(positional) == 2 {
		out.Output = positional[1]
	} else {
		out.Output = DefaultOutput(out.Input)
	}
	return out, nil
}

// DefaultOutput returns the .hack path for the given input path.
func DefaultOutput(input string) string {
	base := strings.TrimSuffix(input, SourceExt)
	base = strings.TrimSuffix(base, BinaryExt)
	return base + BinaryExt
}

// Input is a loaded program, either assembled or disassembled.
type Input struct {
	Args

	ShortName string
	Data      []byte   // .hack file content.
	Words     []uint16 // Machine code.

	Prog *parser.Program
}

// Load reads the input file and builds its program.
func Load(args Args) (*Input, error) {
	in := &Input{Args: args}
	tmp := strings.Split(args.Input, "/")
	in.ShortName = tmp[len(tmp)-1]
	in.ShortName = strings.TrimSuffix(in.ShortName, SourceExt)
	in.ShortName = strings.TrimSuffix(in.ShortName, BinaryExt)

	data, err := os.ReadFile(args.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", args.Input, err)
	}

	if strings.HasSuffix(args.Input, SourceExt) {
		buf, pr, err := asm.Compile(args.Input, string(data), args.Strict)
		if err != nil {
			return nil, fmt.Errorf("failed to compile %q: %w", args.Input, err)
		}
		in.Data = buf
		in.Prog = pr
		in.Words = pr.Words()
		return in, nil
	}

	prog, err := disasm.Disasm(in.ShortName, data, args.Strict)
	if err != nil {
		return nil, fmt.Errorf("failed to disassemble %q: %w", args.Input, err)
	}
	in.Data = data
	in.Prog = prog
	in.Words = prog.Words()
	return in, nil
}

// ParseConfig parses the arguments (without the binary name), loads the
// input and returns the emulator configuration for it.
func ParseConfig(args []string) (vm.Config, *Input, error) {
	a, err := ParseArgs(args)
	if err != nil {
		return vm.Config{}, nil, fmt.Errorf("parse: %w", err)
	}
	in, err := Load(a)
	if err != nil {
		return vm.Config{}, nil, fmt.Errorf("load: %w", err)
	}

	cfg := vm.DefaultConfig(in.Words)
	cfg.Trace = a.Debug
	return cfg, in, nil
}
