// Package cpu implements the Sharp LR35902 instruction interpreter: the
// register file, the full base and CB-prefixed opcode tables, and the
// interrupt-then-fetch step loop (spec.md §4.1, §4.3, §4.7).
package cpu

import (
	"github.com/valerio/dmgcore/internal/gberr"
)

// Bus is the memory interface the CPU executes against.
type Bus interface {
	Read(address uint16) byte
	Write(address uint16, value byte)
}

// InterruptController is the subset of interrupt.Controller the CPU drives.
type InterruptController interface {
	Arbitrate() (vector uint16, ok bool)
	Pending() byte
	IME() bool
	SetIME(enabled bool)
	ArmEI()
	PromoteEI()
}

// CPU is the Sharp LR35902 core: register file, halt latch, and the bus and
// interrupt controller it's wired to.
type CPU struct {
	Registers
	bus Bus
	ic  InterruptController

	halted bool
}

// New returns a CPU at the post-boot register state, wired to bus and ic.
func New(bus Bus, ic InterruptController) *CPU {
	return &CPU{Registers: NewRegisters(), bus: bus, ic: ic}
}

func (c *CPU) fetch8() byte {
	v := c.bus.Read(c.PC)
	c.PC++
	return v
}

func (c *CPU) fetch16() uint16 {
	lo := c.fetch8()
	hi := c.fetch8()
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) push(v uint16) {
	c.SP--
	c.bus.Write(c.SP, byte(v>>8))
	c.SP--
	c.bus.Write(c.SP, byte(v))
}

func (c *CPU) pop() uint16 {
	lo := c.bus.Read(c.SP)
	c.SP++
	hi := c.bus.Read(c.SP)
	c.SP++
	return uint16(hi)<<8 | uint16(lo)
}

// Step executes one interrupt-check-then-instruction cycle and returns the
// number of machine cycles consumed, per the ordering spec.md §5 mandates:
// interrupt arbitration happens before fetch/decode/execute.
func (c *CPU) Step() (int, error) {
	if vector, ok := c.ic.Arbitrate(); ok {
		c.halted = false
		c.push(c.PC)
		c.PC = vector
		c.ic.PromoteEI()
		return 5, nil
	}

	if c.halted {
		if c.ic.Pending() != 0 {
			c.halted = false
		} else {
			c.ic.PromoteEI()
			return 1, nil
		}
	}

	pc := c.PC
	opcode := c.fetch8()

	if opcode == 0xCB {
		cb := c.fetch8()
		fn := cbOps[cb]
		cycles := fn(c)
		c.ic.PromoteEI()
		return cycles, nil
	}

	fn := baseOps[opcode]
	if fn == nil {
		return 0, &gberr.UnsupportedOpcode{PC: pc, Opcode: opcode}
	}
	cycles := fn(c)
	c.ic.PromoteEI()
	return cycles, nil
}

// Halt puts the CPU into the low-power wait state HALT enters: stall until
// an enabled interrupt is pending, per spec.md §4.3.
func (c *CPU) halt() {
	c.halted = true
}
