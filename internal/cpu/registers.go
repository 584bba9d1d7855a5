package cpu

import "github.com/valerio/dmgcore/internal/bit"

// Flag bit positions within F (spec.md §4.1); bits 3-0 are always zero.
const (
	flagZ = 7
	flagN = 6
	flagH = 5
	flagC = 4
)

// Registers holds the DMG register file: four 16-bit pairs plus SP and PC.
// Each pair is stored as two independent bytes with accessors that stitch
// or split them, avoiding the union-of-bytes aliasing the C++ original uses
// (spec.md §9).
type Registers struct {
	A, F byte
	B, C byte
	D, E byte
	H, L byte
	SP   uint16
	PC   uint16
}

// NewRegisters returns the post-boot DMG register state (spec.md §3).
func NewRegisters() Registers {
	return Registers{
		A: 0x01, F: 0xB0,
		B: 0x00, C: 0x13,
		D: 0x00, E: 0xD8,
		H: 0x01, L: 0x4D,
		SP: 0xFFFE,
		PC: 0x0100,
	}
}

func (r *Registers) AF() uint16 { return bit.Combine(r.A, r.F&0xF0) }
func (r *Registers) BC() uint16 { return bit.Combine(r.B, r.C) }
func (r *Registers) DE() uint16 { return bit.Combine(r.D, r.E) }
func (r *Registers) HL() uint16 { return bit.Combine(r.H, r.L) }

func (r *Registers) SetAF(v uint16) {
	r.A = bit.High(v)
	r.F = bit.Low(v) & 0xF0
}
func (r *Registers) SetBC(v uint16) { r.B, r.C = bit.High(v), bit.Low(v) }
func (r *Registers) SetDE(v uint16) { r.D, r.E = bit.High(v), bit.Low(v) }
func (r *Registers) SetHL(v uint16) { r.H, r.L = bit.High(v), bit.Low(v) }

func (r *Registers) flag(pos uint8) bool   { return bit.IsSet(pos, r.F) }
func (r *Registers) setFlag(pos uint8, v bool) {
	if v {
		r.F = bit.Set(pos, r.F)
	} else {
		r.F = bit.Reset(pos, r.F)
	}
	r.F &= 0xF0
}

func (r *Registers) FlagZ() bool { return r.flag(flagZ) }
func (r *Registers) FlagN() bool { return r.flag(flagN) }
func (r *Registers) FlagH() bool { return r.flag(flagH) }
func (r *Registers) FlagC() bool { return r.flag(flagC) }

func (r *Registers) SetFlagZ(v bool) { r.setFlag(flagZ, v) }
func (r *Registers) SetFlagN(v bool) { r.setFlag(flagN, v) }
func (r *Registers) SetFlagH(v bool) { r.setFlag(flagH, v) }
func (r *Registers) SetFlagC(v bool) { r.setFlag(flagC, v) }

func (r *Registers) setFlags(z, n, h, c bool) {
	r.SetFlagZ(z)
	r.SetFlagN(n)
	r.SetFlagH(h)
	r.SetFlagC(c)
}
