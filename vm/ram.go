package vm

type AccessType int

const (
	AccessNone AccessType = iota
	AccessWrite
	AccessRead
)

func (at AccessType) String() string {
	switch at {
	case AccessWrite:
		return "write"
	case AccessRead:
		return "read"
	default:
		return "none"
	}
}

type RamEntry struct {
	Value      uint16
	AccessType AccessType // Last access.
	Cycle      int        // When the last access happened.
}

type Ram []RamEntry

// Values returns a copy of size words starting at addr.
// Out of range words are 0.
func (r Ram) Values(addr, size int) []uint16 {
	out := make([]uint16, size)
	for i := range size {
		if addr+i < len(r) {
			out[i] = r[addr+i].Value
		}
	}
	return out
}

// Get reads the word at addr. ok is false if addr is out of range,
// in which case 0 is returned.
func (r Ram) Get(addr uint16, cycle int) (uint16, bool) {
	if int(addr) >= len(r) {
		return 0, false
	}
	r[addr].AccessType = AccessRead
	r[addr].Cycle = cycle
	return r[addr].Value, true
}

// Set writes the word at addr. Out of range writes are ignored.
func (r Ram) Set(addr, value uint16, cycle int) bool {
	if int(addr) >= len(r) {
		return false
	}
	r[addr] = RamEntry{Value: value, AccessType: AccessWrite, Cycle: cycle}
	return true
}

// Load copies values at the start of the memory, e.g. test inputs.
func (r Ram) Load(addr int, values ...uint16) {
	for i, v := range values {
		if addr+i < len(r) {
			r[addr+i].Value = v
		}
	}
}
