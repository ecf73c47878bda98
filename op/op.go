// Package op holds the static definitions of the Hack machine: memory
// layout, syntax tokens, predefined symbols and the mnemonic tables.
package op

// Memory layout.
const (
	WordSize      = 16                   // Bits per instruction/data word.
	AddressBits   = 15                   // Width of an address-load operand.
	AddressMask   = 1<<AddressBits - 1   // 0x7fff.
	VariableBase  = 16                   // First RAM address handed out to variables.
	ScreenAddress = 16384                // Memory mapped screen.
	KbdAddress    = 24576                // Memory mapped keyboard.
	RAMSize       = 32 * 1024            // Addressable data memory, in words.
	ROMSize       = 32 * 1024            // Instruction memory, in words.
	ScreenWidth   = 512                  // Pixels.
	ScreenHeight  = 256                  // Pixels.
	ScreenWords   = ScreenWidth * ScreenHeight / WordSize
)

// Tokens.
const (
	AddressChar    = '@'
	LabelOpenChar  = '('
	LabelCloseChar = ')'
	DestChar       = '='
	JumpChar       = ';'
	CommentChar    = '/'
	CommentPrefix  = "//"
	IndirectChar   = 'M' // Memory operand, selects the 'a' bit.
)

// Symbol is a built-in name bound to a fixed RAM address.
type Symbol struct {
	Name    string
	Address uint16
}

// PredefinedSymbols lists the 23 built-in symbols, in declaration order.
var PredefinedSymbols = []Symbol{
	{"R0", 0},
	{"R1", 1},
	{"R2", 2},
	{"R3", 3},
	{"R4", 4},
	{"R5", 5},
	{"R6", 6},
	{"R7", 7},
	{"R8", 8},
	{"R9", 9},
	{"R10", 10},
	{"R11", 11},
	{"R12", 12},
	{"R13", 13},
	{"R14", 14},
	{"R15", 15},
	{"SCREEN", ScreenAddress},
	{"KBD", KbdAddress},
	{"SP", 0},
	{"LCL", 1},
	{"ARG", 2},
	{"THIS", 3},
	{"THAT", 4},
}

var predefinedIndex = func() map[string]uint16 {
	m := make(map[string]uint16, len(PredefinedSymbols))
	for _, elem := range PredefinedSymbols {
		m[elem.Name] = elem.Address
	}
	return m
}()

// Predefined returns the address of the built-in symbol name.
// The match is exact and case sensitive.
func Predefined(name string) (uint16, bool) {
	addr, ok := predefinedIndex[name]
	return addr, ok
}
