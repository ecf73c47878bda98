package op

import "strings"

// CompTable maps compute mnemonics to their 6-bit function code.
// A and M forms share a code, the 'a' bit tells them apart.
var CompTable = map[string]uint16{
	"0":   0b101010,
	"1":   0b111111,
	"-1":  0b111010,
	"D":   0b001100,
	"A":   0b110000,
	"M":   0b110000,
	"!D":  0b001101,
	"!A":  0b110001,
	"!M":  0b110001,
	"-D":  0b001111,
	"-A":  0b110011,
	"-M":  0b110011,
	"D+1": 0b011111,
	"A+1": 0b110111,
	"M+1": 0b110111,
	"D-1": 0b001110,
	"A-1": 0b110010,
	"M-1": 0b110010,
	"D+A": 0b000010,
	"D+M": 0b000010,
	"D-A": 0b010011,
	"D-M": 0b010011,
	"A-D": 0b000111,
	"M-D": 0b000111,
	"D&A": 0b000000,
	"D&M": 0b000000,
	"D|A": 0b010101,
	"D|M": 0b010101,
}

// DestTable maps destination mnemonics to their 3-bit code.
// The empty destination is 000.
var DestTable = map[string]uint16{
	"M":   0b001,
	"D":   0b010,
	"MD":  0b011,
	"A":   0b100,
	"AM":  0b101,
	"AD":  0b110,
	"AMD": 0b111,
}

// JumpTable maps jump mnemonics to their 3-bit code.
// The empty jump is 000.
var JumpTable = map[string]uint16{
	"JGT": 0b001,
	"JEQ": 0b010,
	"JGE": 0b011,
	"JLT": 0b100,
	"JNE": 0b101,
	"JLE": 0b110,
	"JMP": 0b111,
}

// Reverse tables, indexed by the 'a' bit for comp.
var (
	compNames [2]map[uint16]string
	destNames = reverse(DestTable)
	jumpNames = reverse(JumpTable)
)

func init() {
	compNames[0] = map[uint16]string{}
	compNames[1] = map[uint16]string{}
	for name, code := range CompTable {
		compNames[bit(UsesMemory(name))][code] = name
	}
}

func bit(b bool) int {
	if b {
		return 1
	}
	return 0
}

func reverse(m map[string]uint16) map[uint16]string {
	out := make(map[uint16]string, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

// UsesMemory reports whether the compute expression reads M,
// i.e. whether the 'a' bit is set.
func UsesMemory(comp string) bool {
	return strings.ContainsRune(comp, IndirectChar)
}

// Comp returns the 6-bit code of the compute mnemonic.
func Comp(mnemonic string) (uint16, bool) {
	code, ok := CompTable[mnemonic]
	return code, ok
}

// Dest returns the 3-bit code of the destination mnemonic.
// An empty mnemonic is valid and yields 0.
func Dest(mnemonic string) (uint16, bool) {
	if mnemonic == "" {
		return 0, true
	}
	code, ok := DestTable[mnemonic]
	return code, ok
}

// Jump returns the 3-bit code of the jump mnemonic.
// An empty mnemonic is valid and yields 0.
func Jump(mnemonic string) (uint16, bool) {
	if mnemonic == "" {
		return 0, true
	}
	code, ok := JumpTable[mnemonic]
	return code, ok
}

// CompMnemonic is the reverse of Comp for the given 'a' bit.
func CompMnemonic(a bool, code uint16) (string, bool) {
	name, ok := compNames[bit(a)][code]
	return name, ok
}

// DestMnemonic is the reverse of Dest. 0 yields the empty string.
func DestMnemonic(code uint16) string {
	return destNames[code]
}

// JumpMnemonic is the reverse of Jump. 0 yields the empty string.
func JumpMnemonic(code uint16) string {
	return jumpNames[code]
}
