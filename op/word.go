package op

import (
	"fmt"
	"strconv"
)

// Compute instruction fixed bits.
const (
	ComputePrefix uint16 = 0b111 << 13
	ABit          uint16 = 1 << 12
)

// FormatWord renders w as exactly WordSize '0'/'1' characters, MSB first.
func FormatWord(w uint16) string {
	return fmt.Sprintf("%016b", w)
}

// ParseWord is the reverse of FormatWord.
func ParseWord(s string) (uint16, error) {
	if len(s) != WordSize {
		return 0, fmt.Errorf("invalid word %q: expected %d bits, got %d", s, WordSize, len(s))
	}
	n, err := strconv.ParseUint(s, 2, WordSize)
	if err != nil {
		return 0, fmt.Errorf("invalid word %q: %w", s, err)
	}
	return uint16(n), nil
}

// EncodeAddress returns the address-load word for value.
// Only the low AddressBits bits are kept.
func EncodeAddress(value uint16) uint16 {
	return value & AddressMask
}

// EncodeCompute assembles a compute word from its parts.
func EncodeCompute(a bool, comp, dest, jump uint16) uint16 {
	w := ComputePrefix
	if a {
		w |= ABit
	}
	w = FieldComp.Set(w, comp)
	w = FieldDest.Set(w, dest)
	w = FieldJump.Set(w, jump)
	return w
}

// DecodeCompute splits a compute word into its parts.
// The prefix bits are not checked.
func DecodeCompute(w uint16) (a bool, comp, dest, jump uint16) {
	return w&ABit != 0, FieldComp.Get(w), FieldDest.Get(w), FieldJump.Get(w)
}
