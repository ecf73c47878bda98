// Package vm emulates the Hack computer: a 16-bit CPU executing words
// from a read-only ROM against a word addressed RAM, with memory mapped
// screen and keyboard.
package vm

import (
	"context"
	"fmt"

	"go.creack.net/hack/asm/parser"
	"go.creack.net/hack/op"
)

var ErrHalted = fmt.Errorf("halted")

type Config struct {
	RAMSize int  // Size of the data memory, in words.
	ROMSize int  // Size of the instruction memory, in words.
	Trace   bool // Emit a debug message for each executed instruction.

	Program []uint16
}

// DefaultConfig returns the standard Hack memory layout for the program.
func DefaultConfig(program []uint16) Config {
	return Config{
		RAMSize: op.RAMSize,
		ROMSize: op.ROMSize,
		Program: program,
	}
}

type Computer struct {
	Config Config

	ROM []uint16
	Ram Ram

	A, D   uint16
	PC     uint16
	Cycle  int // Executed instructions since the last reset.
	Halted bool

	// Messages is a channel where the VM will send messages.
	// Sends never block: when nobody reads, messages are dropped.
	Messages chan Message `json:"-"`
}

func NewComputer(cfg Config) *Computer {
	if cfg.RAMSize <= 0 {
		cfg.RAMSize = op.RAMSize
	}
	if cfg.ROMSize <= 0 {
		cfg.ROMSize = op.ROMSize
	}

	rom := make([]uint16, min(len(cfg.Program), cfg.ROMSize))
	copy(rom, cfg.Program)

	c := &Computer{
		Config: cfg,

		ROM: rom,
		Ram: make(Ram, cfg.RAMSize),

		Messages: make(chan Message, 64), // Arbitrary size.
	}
	if len(cfg.Program) > cfg.ROMSize {
		c.send(MsgWarning, fmt.Sprintf("program has %d words, truncated to %d", len(cfg.Program), cfg.ROMSize))
	}
	return c
}

func (c *Computer) send(mt MessageType, msg string) {
	select {
	case c.Messages <- NewMessage(mt, c.PC, msg):
	default:
	}
}

// Reset restarts the program. The RAM content is kept.
func (c *Computer) Reset() {
	c.A, c.D, c.PC = 0, 0, 0
	c.Cycle = 0
	c.Halted = false
	c.send(MsgReset, "reset")
}

// SetKey sets the keyboard register, 0 meaning no key pressed.
func (c *Computer) SetKey(code uint16) {
	if op.KbdAddress < len(c.Ram) {
		c.Ram[op.KbdAddress].Value = code
	}
}

// Screen returns a copy of the memory mapped screen, one bit per pixel,
// 32 words per row, LSB being the leftmost pixel of the word.
func (c *Computer) Screen() []uint16 {
	return c.Ram.Values(op.ScreenAddress, op.ScreenWords)
}

// Pixel reports whether the pixel at (x, y) is black.
func (c *Computer) Pixel(x, y int) bool {
	if x < 0 || y < 0 || x >= op.ScreenWidth || y >= op.ScreenHeight {
		return false
	}
	addr := op.ScreenAddress + y*op.ScreenWidth/op.WordSize + x/op.WordSize
	if addr >= len(c.Ram) {
		return false
	}
	return c.Ram[addr].Value&(1<<(x%op.WordSize)) != 0
}

// alu computes the Hack ALU function selected by the 6 comp bits:
// zx, nx, zy, ny, f, no from MSB to LSB.
func alu(x, y, comp uint16) uint16 {
	if comp&0b100000 != 0 {
		x = 0
	}
	if comp&0b010000 != 0 {
		x = ^x
	}
	if comp&0b001000 != 0 {
		y = 0
	}
	if comp&0b000100 != 0 {
		y = ^y
	}
	var out uint16
	if comp&0b000010 != 0 {
		out = x + y
	} else {
		out = x & y
	}
	if comp&0b000001 != 0 {
		out = ^out
	}
	return out
}

// Jump bits: lt, eq, gt from MSB to LSB.
func shouldJump(out, jump uint16) bool {
	v := int16(out)
	return (jump&0b100 != 0 && v < 0) ||
		(jump&0b010 != 0 && v == 0) ||
		(jump&0b001 != 0 && v > 0)
}

// Dest bits.
const (
	destM = 0b001
	destD = 0b010
	destA = 0b100
)

// isHaltLoop detects the idiomatic end of a Hack program: an
// unconditional jump to itself, or to the "@k" right before it.
func (c *Computer) isHaltLoop(target, dest, jump uint16) bool {
	if jump != 0b111 || dest != 0 {
		return false
	}
	if target == c.PC {
		return true
	}
	return target+1 == c.PC && int(target) < len(c.ROM) && c.ROM[target] == op.EncodeAddress(target)
}

// Step executes the instruction at PC.
func (c *Computer) Step() error {
	if c.Halted {
		return ErrHalted
	}
	if int(c.PC) >= len(c.ROM) {
		c.Halted = true
		c.send(MsgHalt, fmt.Sprintf("end of program at %d", c.PC))
		return ErrHalted
	}

	w := c.ROM[c.PC]
	if c.Config.Trace {
		if n, err := parser.DecodeInstruction(w); err == nil {
			c.send(MsgDebug, fmt.Sprintf("%5d: %s", c.PC, n))
		}
	}
	c.Cycle++

	if op.TypeOf(w) == op.InstructionAddress {
		c.A = w
		c.PC++
		return nil
	}

	a, comp, dest, jump := op.DecodeCompute(w)
	addr := c.A
	y := c.A
	if a {
		y = c.read(addr)
	}
	out := alu(c.D, y, comp)

	if dest&destM != 0 {
		c.write(addr, out)
	}
	if dest&destD != 0 {
		c.D = out
	}
	if dest&destA != 0 {
		c.A = out
	}

	if !shouldJump(out, jump) {
		c.PC++
		return nil
	}
	if c.isHaltLoop(addr, dest, jump) {
		c.PC = addr
		c.Halted = true
		c.send(MsgHalt, fmt.Sprintf("infinite loop at %d", addr))
		return ErrHalted
	}
	c.PC = addr
	return nil
}

func (c *Computer) read(addr uint16) uint16 {
	v, ok := c.Ram.Get(addr, c.Cycle)
	if !ok {
		c.send(MsgWarning, fmt.Sprintf("read out of memory at %d", addr))
	}
	return v
}

func (c *Computer) write(addr, value uint16) {
	if !c.Ram.Set(addr, value, c.Cycle) {
		c.send(MsgWarning, fmt.Sprintf("write out of memory at %d", addr))
		return
	}
	if int(addr) >= op.ScreenAddress && int(addr) < op.ScreenAddress+op.ScreenWords {
		c.send(MsgScreen, fmt.Sprintf("%d", addr))
	}
}

// Run steps until the program halts, maxCycles instructions have been
// executed (no limit if <= 0) or ctx is done.
// Returns ErrHalted when the program ended.
func (c *Computer) Run(ctx context.Context, maxCycles int) error {
	for n := 0; maxCycles <= 0 || n < maxCycles; n++ {
		if n%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if err := c.Step(); err != nil {
			return err
		}
	}
	return nil
}
