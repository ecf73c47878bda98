package parser

import (
	"fmt"
	"strconv"

	"go.creack.net/hack/op"
)

var ErrInvalidWord = fmt.Errorf("invalid word")

// DecodeInstruction turns a machine word back into an instruction node.
// The returned node has no source line.
func DecodeInstruction(w uint16) (Node, error) {
	if op.TypeOf(w) == op.InstructionAddress {
		return &AInstruction{Operand: strconv.Itoa(int(w))}, nil
	}
	if w&op.ComputePrefix != op.ComputePrefix {
		return nil, fmt.Errorf("%016b: missing compute prefix: %w", w, ErrInvalidWord)
	}

	a, comp, dest, jump := op.DecodeCompute(w)
	ins := &CInstruction{
		Dest: op.DestMnemonic(dest),
		Jump: op.JumpMnemonic(jump),
	}
	ins.HasDest = ins.Dest != ""
	ins.HasJump = ins.Jump != ""
	name, ok := op.CompMnemonic(a, comp)
	if !ok {
		return ins, fmt.Errorf("%016b: unknown %s code %06b: %w", w, op.FieldComp, comp, ErrInvalidWord)
	}
	ins.Comp = name
	return ins, nil
}

// Decode replaces the program content with the disassembly of words.
// Undecodable words become a "0" computation, keeping their dest and
// jump, and are reported as warnings.
func (p *Program) Decode(words []uint16) error {
	p.Nodes = make([]Node, 0, len(words))
	p.SourceMap = make([]int, 0, len(words))
	p.Warnings = nil
	for i, w := range words {
		n, err := DecodeInstruction(w)
		if err != nil {
			if werr := p.warnf(i+1, "failed to decode word %d: %s", i, err); werr != nil {
				return fmt.Errorf("failed to decode word %d: %w", i, err)
			}
			_, _, dest, jump := op.DecodeCompute(w)
			ins := &CInstruction{Comp: "0", Dest: op.DestMnemonic(dest), Jump: op.JumpMnemonic(jump)}
			ins.HasDest = ins.Dest != ""
			ins.HasJump = ins.Jump != ""
			n = ins
		}
		switch n := n.(type) {
		case *AInstruction:
			n.line = i + 1
		case *CInstruction:
			n.line = i + 1
		}
		p.Nodes = append(p.Nodes, n)
		p.SourceMap = append(p.SourceMap, i+1)
	}
	p.words = append([]uint16(nil), words...)
	p.symbols = NewSymbolTable()
	p.symbols.Resolve()
	p.symbolWarnings = len(p.Warnings)
	return nil
}

// ParseWords reads binary text, one 16 character word per line.
// Blank lines are ignored.
func ParseWords(input string) ([]uint16, error) {
	var words []uint16
	for i, raw := range SplitLines(input) {
		l := Normalize(raw)
		if l.Kind == LineSkip {
			continue
		}
		w, err := op.ParseWord(l.Text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		words = append(words, w)
	}
	return words, nil
}
