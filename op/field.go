package op

// Field enum type. Names the sub-fields of a compute instruction.
type Field int

const (
	FieldComp Field = iota
	FieldDest
	FieldJump
)

func (f Field) String() string {
	switch f {
	case FieldComp:
		return "comp"
	case FieldDest:
		return "dest"
	case FieldJump:
		return "jump"
	default:
		return "unknown"
	}
}

// Width returns the number of bits of the field.
func (f Field) Width() int {
	switch f {
	case FieldComp:
		return 6
	case FieldDest, FieldJump:
		return 3
	default:
		return -1
	}
}

// Shift returns the position of the field's low bit in the word.
func (f Field) Shift() int {
	switch f {
	case FieldComp:
		return 6
	case FieldDest:
		return 3
	case FieldJump:
		return 0
	default:
		return -1
	}
}

// Mask returns the unshifted mask of the field.
func (f Field) Mask() uint16 {
	return 1<<f.Width() - 1
}

// Get extracts the field from the word.
func (f Field) Get(w uint16) uint16 {
	return (w >> f.Shift()) & f.Mask()
}

// Set returns w with the field replaced by v.
func (f Field) Set(w, v uint16) uint16 {
	return w&^(f.Mask()<<f.Shift()) | (v&f.Mask())<<f.Shift()
}
