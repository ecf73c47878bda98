package parser

import (
	"fmt"
	"strings"

	"go.creack.net/hack/op"
)

// Node is an element of a program: a label or an instruction.
type Node interface {
	fmt.Stringer
	// PrettyPrint renders the node in its canonical source form.
	// The full node list is given for context.
	PrettyPrint(nodes []Node) string
	// Encode returns the words emitted by the node, nil for labels.
	Encode(p *Program) ([]uint16, error)
	// Line returns the 1-based source line of the node.
	Line() int
}

// Parser turns raw source lines into nodes.
type Parser struct {
	Name  string
	Lines []Line
	Nodes []Node
}

// NewParser creates a new parser for the given source text.
func NewParser(name, input string) *Parser {
	return NewLinesParser(name, SplitLines(input))
}

// NewLinesParser creates a new parser from already split lines.
func NewLinesParser(name string, lines []string) *Parser {
	p := &Parser{
		Name:  name,
		Lines: make([]Line, 0, len(lines)),
	}
	for i, raw := range lines {
		l := Normalize(raw)
		l.Number = i + 1
		p.Lines = append(p.Lines, l)
	}
	return p
}

// Parse builds the node list. Lines are never rejected, so it can't
// fail: bad content is reported when encoding.
func (p *Parser) Parse() {
	p.Nodes = p.Nodes[:0]
	for _, l := range p.Lines {
		switch l.Kind {
		case LineSkip:
			continue
		case LineLabel:
			name, closed := l.LabelName()
			p.Nodes = append(p.Nodes, &Label{Name: name, Unclosed: !closed, line: l.Number})
		case LineInstruction:
			p.Nodes = append(p.Nodes, parseInstruction(l.Text, l.Number))
		}
	}
}

func parseInstruction(text string, line int) Node {
	if text[0] == op.AddressChar {
		return &AInstruction{Operand: text[1:], line: line}
	}

	ins := &CInstruction{line: line}
	rest := text
	if i := strings.IndexByte(rest, op.DestChar); i >= 0 {
		ins.Dest, ins.HasDest = rest[:i], true
		rest = rest[i+1:]
	}
	if i := strings.IndexByte(rest, op.JumpChar); i >= 0 {
		ins.Jump, ins.HasJump = rest[i+1:], true
		rest = rest[:i]
	}
	ins.Comp = rest
	return ins
}

// Instructions returns the number of instruction nodes.
func (p *Parser) Instructions() int {
	n := 0
	for _, elem := range p.Nodes {
		if _, ok := elem.(*Label); !ok {
			n++
		}
	}
	return n
}
