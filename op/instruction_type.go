package op

// InstructionType enum type.
type InstructionType int

const (
	InstructionNone    InstructionType = iota // Not an instruction (blank, comment, label).
	InstructionAddress                        // @value.
	InstructionCompute                        // dest=comp;jump.
)

func (it InstructionType) String() string {
	switch it {
	case InstructionNone:
		return "none"
	case InstructionAddress:
		return "address"
	case InstructionCompute:
		return "compute"
	default:
		return "unknown"
	}
}

// TypeOf returns the type of the encoded word based on its high bit.
func TypeOf(w uint16) InstructionType {
	if w&(1<<(WordSize-1)) == 0 {
		return InstructionAddress
	}
	return InstructionCompute
}
