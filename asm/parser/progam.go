package parser

import (
	"fmt"

	"go.creack.net/hack/op"
)

// Warning is a degraded case: the output is still produced, with a
// default value. In strict mode it is returned as an error.
type Warning struct {
	Line    int
	Message string
}

func (w Warning) Error() string {
	if w.Line == 0 {
		return w.Message
	}
	return fmt.Sprintf("line %d: %s", w.Line, w.Message)
}

type Program struct {
	*Parser

	symbols *SymbolTable
	strict  bool

	words     []uint16
	SourceMap []int // ROM address -> 1-based source line.
	Warnings  []Warning

	symbolWarnings int // Warnings emitted by the first pass, kept across Encode calls.
}

func NewProgram(p *Parser, strict bool) *Program {
	return &Program{
		Parser: p,

		symbols: NewSymbolTable(),
		strict:  strict,
	}
}

// Symbols returns the symbol table. Only complete after BuildSymbols.
func (p *Program) Symbols() *SymbolTable { return p.symbols }

// Size returns the number of encoded words.
func (p *Program) Size() int { return len(p.words) }

// Words returns the last encoded (or decoded) words.
func (p *Program) Words() []uint16 { return p.words }

// warnf records a warning. In strict mode, the warning is also
// returned as an error for the caller to abort.
func (p *Program) warnf(line int, format string, args ...any) error {
	w := Warning{Line: line, Message: fmt.Sprintf(format, args...)}
	p.Warnings = append(p.Warnings, w)
	if p.strict {
		return w
	}
	return nil
}

// BuildSymbols is the first pass: it registers labels against the
// index of the instruction that follows them and collects variable
// references, then resolves the table. Subsequent calls are no-ops.
func (p *Program) BuildSymbols() error {
	if p.symbols.Frozen() {
		return nil
	}
	if p.Nodes == nil {
		p.Parse()
	}

	idx := 0
	for _, n := range p.Nodes {
		switch n := n.(type) {
		case *Label:
			if n.Unclosed {
				if err := p.warnf(n.line, "label %q is missing %q", n.Name, op.LabelCloseChar); err != nil {
					return err
				}
			}
			if !p.symbols.DefineLabel(n.Name, idx) {
				first, _, _ := p.symbols.Lookup(n.Name)
				if err := p.warnf(n.line, "duplicate label %q, keeping index %d", n.Name, first); err != nil {
					return err
				}
			}
		case *AInstruction:
			if IsVariableName(n.Operand) {
				p.symbols.AddVariable(n.Operand)
			}
			idx++
		default:
			idx++
		}
	}
	p.symbols.Resolve()
	if idx > op.ROMSize {
		if err := p.warnf(0, "program has %d instructions, more than the %d ROM words", idx, op.ROMSize); err != nil {
			return err
		}
	}
	p.symbolWarnings = len(p.Warnings)
	return nil
}

// Encode is the second pass: one word per instruction, in source order.
// Calling it again yields the same words.
func (p *Program) Encode() ([]uint16, error) {
	if err := p.BuildSymbols(); err != nil {
		return nil, fmt.Errorf("failed to build symbols: %w", err)
	}
	p.Warnings = p.Warnings[:p.symbolWarnings]

	words := make([]uint16, 0, len(p.Nodes))
	sourceMap := make([]int, 0, len(p.Nodes))
	for _, n := range p.Nodes {
		buf, err := n.Encode(p)
		if err != nil {
			return nil, fmt.Errorf("failed to encode instruction %s: %w", n, err)
		}
		for range buf {
			sourceMap = append(sourceMap, n.Line())
		}
		words = append(words, buf...)
	}
	p.words = words
	p.SourceMap = sourceMap
	return words, nil
}

// Lines returns the encoded words as 16 character binary strings.
func (p *Program) Lines() []string {
	out := make([]string, 0, len(p.words))
	for _, w := range p.words {
		out = append(out, op.FormatWord(w))
	}
	return out
}

// PrettyPrint renders the whole program in canonical form, one node per line.
func (p *Program) PrettyPrint() []string {
	out := make([]string, 0, len(p.Nodes))
	for _, elem := range p.Nodes {
		out = append(out, elem.PrettyPrint(p.Nodes))
	}
	return out
}
