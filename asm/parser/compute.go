package parser

import (
	"go.creack.net/hack/op"
)

// CInstruction computes a value, optionally stores it and/or jumps:
// dest=comp;jump.
type CInstruction struct {
	Dest    string
	Comp    string
	Jump    string
	HasDest bool // '=' present, even if Dest is empty.
	HasJump bool // ';' present, even if Jump is empty.

	line int
}

func (ins *CInstruction) Line() int { return ins.line }

func (ins *CInstruction) String() string {
	out := ""
	if ins.HasDest {
		out += ins.Dest + string(op.DestChar)
	}
	out += ins.Comp
	if ins.HasJump {
		out += string(op.JumpChar) + ins.Jump
	}
	return out
}

func (ins *CInstruction) PrettyPrint(_ []Node) string {
	return "\t" + ins.String()
}

// Encode looks up each field in the mnemonic tables. Unknown mnemonics
// encode as zero.
func (ins *CInstruction) Encode(p *Program) ([]uint16, error) {
	comp, ok := op.Comp(ins.Comp)
	if !ok {
		if err := p.warnf(ins.line, "unknown %s %q, using 0", op.FieldComp, ins.Comp); err != nil {
			return nil, err
		}
	}
	dest, ok := op.Dest(ins.Dest)
	if !ok {
		if err := p.warnf(ins.line, "unknown %s %q, using 0", op.FieldDest, ins.Dest); err != nil {
			return nil, err
		}
	}
	jump, ok := op.Jump(ins.Jump)
	if !ok {
		if err := p.warnf(ins.line, "unknown %s %q, using 0", op.FieldJump, ins.Jump); err != nil {
			return nil, err
		}
	}
	return []uint16{op.EncodeCompute(op.UsesMemory(ins.Comp), comp, dest, jump)}, nil
}
