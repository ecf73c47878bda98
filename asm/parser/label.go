package parser

import "go.creack.net/hack/op"

type Label struct {
	Name     string
	Unclosed bool // Missing ')' in the source.

	line int
}

func (l *Label) Line() int { return l.line }

func (l *Label) String() string {
	return string(op.LabelOpenChar) + l.Name + string(op.LabelCloseChar)
}

func (l *Label) PrettyPrint(nodes []Node) string {
	// Unless we are first or immediately after a label, prefix with a newline.
	var prev Node
	for _, n := range nodes {
		if l1, ok := n.(*Label); ok && l1 == l {
			if _, ok := prev.(*Label); ok || prev == nil {
				return l.String()
			}
			return "\n" + l.String()
		}
		prev = n
	}
	// Should never happen.
	panic("self reference not found in nodes")
}

// Encode emits nothing, labels only exist in the symbol table.
func (l *Label) Encode(_ *Program) ([]uint16, error) {
	return nil, nil
}
