package parser

import (
	"strings"
	"unicode"

	"go.creack.net/hack/op"
)

// AInstruction loads a value into the address register: @value.
type AInstruction struct {
	Operand string // Symbol or decimal literal, as written.

	line int
}

func (ins *AInstruction) Line() int { return ins.line }

func (ins *AInstruction) String() string {
	return string(op.AddressChar) + ins.Operand
}

func (ins *AInstruction) PrettyPrint(_ []Node) string {
	return "\t" + ins.String()
}

// Encode resolves the operand (built-in, label, variable, then literal)
// and keeps its low 15 bits.
func (ins *AInstruction) Encode(p *Program) ([]uint16, error) {
	value, kind, ok := p.symbols.Lookup(ins.Operand)
	if !ok {
		n, exact := parseNumber(ins.Operand)
		if !exact {
			if err := p.warnf(ins.line, "invalid address operand %q, using %d", ins.Operand, n); err != nil {
				return nil, err
			}
		}
		value = n
	}
	if value < 0 || value > op.AddressMask {
		if err := p.warnf(ins.line, "%s value %d does not fit in %d bits", kindName(kind), value, op.AddressBits); err != nil {
			return nil, err
		}
	}
	return []uint16{op.EncodeAddress(uint16(value))}, nil
}

func kindName(k SymbolKind) string {
	if k == SymbolNone {
		return "literal"
	}
	return k.String()
}

// Large enough to overflow 15 bits, small enough to not overflow an int.
const maxLiteral = 1 << 30

// parseNumber mimics C's atoi: optional leading spaces and sign, then
// as many decimal digits as available. Anything else yields 0.
// exact is true when the whole string was a well formed number.
func parseNumber(s string) (n int, exact bool) {
	rest := strings.TrimLeftFunc(s, unicode.IsSpace)
	exact = len(rest) == len(s)
	neg := false
	if rest != "" && (rest[0] == '-' || rest[0] == '+') {
		neg = rest[0] == '-'
		rest = rest[1:]
	}
	digits := 0
	for _, c := range []byte(rest) {
		if c < '0' || c > '9' {
			break
		}
		if n < maxLiteral {
			n = n*10 + int(c-'0')
		}
		digits++
	}
	if neg {
		n = -n
	}
	return n, exact && digits > 0 && digits == len(rest)
}
