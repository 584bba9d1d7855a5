// Package interrupt implements the DMG interrupt controller: IF/IE, IME,
// and the one-instruction EI delay (spec.md §4.3).
package interrupt

import (
	"github.com/valerio/dmgcore/internal/addr"
	"github.com/valerio/dmgcore/internal/bit"
)

// Controller owns the interrupt-flag and interrupt-enable registers, the
// master enable, and the EI delay. This state lives in a handful of fields
// here rather than spread across the bus.
type Controller struct {
	ifReg byte
	ieReg byte
	ime   bool

	// eiDelay counts down the number of Step boundaries before a pending EI
	// takes effect: 2 means "armed this step", 1 means "one more boundary to
	// go", 0 means inactive. See DESIGN.md for why two steps are needed to
	// delay exactly one full instruction.
	eiDelay int
}

// New returns a controller with interrupts disabled, matching the post-boot
// DMG state (IME starts false; the boot ROM never enables it).
func New() *Controller {
	return &Controller{}
}

// ReadIF returns the IF register; the upper three bits always read as 1.
func (c *Controller) ReadIF() byte {
	return c.ifReg | 0xE0
}

// WriteIF sets the IF register directly (guest software does this to
// acknowledge or manually request an interrupt); upper bits are masked off
// before storage, though ReadIF always reports them set.
func (c *Controller) WriteIF(v byte) {
	c.ifReg = v & 0x1F
}

// ReadIE returns the IE register.
func (c *Controller) ReadIE() byte {
	return c.ieReg
}

// WriteIE sets the IE register.
func (c *Controller) WriteIE(v byte) {
	c.ieReg = v
}

// Request sets the IF bit for the given source.
func (c *Controller) Request(source addr.Interrupt) {
	c.ifReg |= 1 << uint8(source)
}

// Acknowledge clears the IF bit for the given source.
func (c *Controller) Acknowledge(source addr.Interrupt) {
	c.ifReg &^= 1 << uint8(source)
}

// IME reports the current master-enable state.
func (c *Controller) IME() bool {
	return c.ime
}

// SetIME sets the master enable immediately (used by DI and RETI).
func (c *Controller) SetIME(enabled bool) {
	c.ime = enabled
	if !enabled {
		// DI cancels any EI scheduled but not yet promoted.
		c.eiDelay = 0
	}
}

// ArmEI schedules IME to become true at the boundary after the next
// instruction completes (spec.md §4.3's "EI delay").
func (c *Controller) ArmEI() {
	c.eiDelay = 2
}

// Pending returns the set of requested-and-enabled interrupt bits,
// regardless of IME. HALT uses this to decide when to wake up.
func (c *Controller) Pending() byte {
	return c.ifReg & c.ieReg & 0x1F
}

// PromoteEI advances the EI delay counter; call once at the end of every
// CPU step (instruction boundary), after the interrupt check/service and
// the fetch/execute for that step.
func (c *Controller) PromoteEI() {
	if c.eiDelay == 0 {
		return
	}
	c.eiDelay--
	if c.eiDelay == 0 {
		c.ime = true
	}
}

// Arbitrate checks whether an interrupt should be serviced this step. If
// IME is true and a requested+enabled source exists, it clears IME, clears
// the IF bit for the lowest-indexed source, and returns its vector address.
func (c *Controller) Arbitrate() (vector uint16, ok bool) {
	if !c.ime {
		return 0, false
	}

	pending := c.Pending()
	if pending == 0 {
		return 0, false
	}

	index, _ := bit.LowestSetBit(pending)
	c.ifReg &^= 1 << index
	c.ime = false

	return addr.Vectors[index], true
}
