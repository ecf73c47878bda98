package parser

import (
	"unicode"

	"go.creack.net/hack/op"
)

// SymbolKind enum type. Also the lookup precedence order.
type SymbolKind int

const (
	SymbolNone SymbolKind = iota
	SymbolPredefined
	SymbolLabel
	SymbolVariable
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolPredefined:
		return "predefined"
	case SymbolLabel:
		return "label"
	case SymbolVariable:
		return "variable"
	default:
		return "none"
	}
}

// Entry is a resolved user symbol.
type Entry struct {
	Name  string
	Value int // Instruction index for labels, RAM address for variables.
	Kind  SymbolKind
}

// SymbolTable holds the labels and variables of a program.
// It is filled during the first pass, then frozen by Resolve and only
// read during the second pass.
type SymbolTable struct {
	labels     []Entry
	labelIndex map[string]int

	candidates []string // Variable references in first-seen order, duplicates included.

	variables     []Entry
	variableIndex map[string]int

	frozen bool
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		labelIndex:    map[string]int{},
		variableIndex: map[string]int{},
	}
}

// IsVariableName reports whether an address operand is a variable
// candidate: not a built-in symbol and starting with a letter.
func IsVariableName(name string) bool {
	if name == "" {
		return false
	}
	if _, ok := op.Predefined(name); ok {
		return false
	}
	r := rune(name[0])
	return r < unicode.MaxASCII && unicode.IsLetter(r)
}

// DefineLabel binds name to the given instruction index.
// Returns false if the label already exists (the first one is kept)
// or if the table is frozen.
func (st *SymbolTable) DefineLabel(name string, index int) bool {
	if st.frozen {
		return false
	}
	if _, ok := st.labelIndex[name]; ok {
		return false
	}
	st.labelIndex[name] = len(st.labels)
	st.labels = append(st.labels, Entry{Name: name, Value: index, Kind: SymbolLabel})
	return true
}

// AddVariable records a variable reference. Duplicates are kept
// until Resolve. Returns false if the table is frozen.
func (st *SymbolTable) AddVariable(name string) bool {
	if st.frozen {
		return false
	}
	st.candidates = append(st.candidates, name)
	return true
}

// Resolve reconciles the variable candidates: names that are labels are
// dropped, duplicates collapse on their first occurrence, and the
// remaining ones get consecutive addresses starting at op.VariableBase.
// The table is frozen afterwards. Calling Resolve again is a no-op.
func (st *SymbolTable) Resolve() {
	if st.frozen {
		return
	}
	for _, name := range st.candidates {
		if _, ok := st.labelIndex[name]; ok {
			continue
		}
		if _, ok := st.variableIndex[name]; ok {
			continue
		}
		st.variableIndex[name] = len(st.variables)
		st.variables = append(st.variables, Entry{
			Name:  name,
			Value: op.VariableBase + len(st.variables),
			Kind:  SymbolVariable,
		})
	}
	st.candidates = nil
	st.frozen = true
}

// Frozen reports whether Resolve has been called.
func (st *SymbolTable) Frozen() bool { return st.frozen }

// Lookup resolves name in order: built-in, label, variable.
func (st *SymbolTable) Lookup(name string) (int, SymbolKind, bool) {
	if addr, ok := op.Predefined(name); ok {
		return int(addr), SymbolPredefined, true
	}
	if i, ok := st.labelIndex[name]; ok {
		return st.labels[i].Value, SymbolLabel, true
	}
	if i, ok := st.variableIndex[name]; ok {
		return st.variables[i].Value, SymbolVariable, true
	}
	return 0, SymbolNone, false
}

// Labels returns a copy of the labels in definition order.
func (st *SymbolTable) Labels() []Entry {
	return append([]Entry(nil), st.labels...)
}

// Variables returns a copy of the resolved variables in address order.
func (st *SymbolTable) Variables() []Entry {
	return append([]Entry(nil), st.variables...)
}
