package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// flatBus is a minimal 64 KiB Bus for CPU unit tests; it has no routing
// logic, unlike memory.Bus.
type flatBus struct {
	data [0x10000]byte
}

func (b *flatBus) Read(address uint16) byte      { return b.data[address] }
func (b *flatBus) Write(address uint16, v byte)  { b.data[address] = v }

// noopIC is an InterruptController that never has anything pending, for
// tests that exercise plain instruction execution.
type noopIC struct {
	ime     bool
	eiDelay int
}

func (n *noopIC) Arbitrate() (uint16, bool) { return 0, false }
func (n *noopIC) Pending() byte             { return 0 }
func (n *noopIC) IME() bool                 { return n.ime }
func (n *noopIC) SetIME(v bool)             { n.ime = v }
func (n *noopIC) ArmEI()                    { n.eiDelay = 2 }
func (n *noopIC) PromoteEI() {
	if n.eiDelay == 0 {
		return
	}
	n.eiDelay--
	if n.eiDelay == 0 {
		n.ime = true
	}
}

func newTestCPU() (*CPU, *flatBus) {
	bus := &flatBus{}
	c := New(bus, &noopIC{})
	return c, bus
}

func TestFullOpcodeTableCoverage(t *testing.T) {
	undefined := map[byte]bool{
		0xD3: true, 0xDB: true, 0xDD: true, 0xE3: true, 0xE4: true,
		0xEB: true, 0xEC: true, 0xED: true, 0xF4: true, 0xFC: true, 0xFD: true,
	}
	for op := 0; op < 256; op++ {
		opcode := byte(op)
		if undefined[opcode] {
			assert.Nil(t, baseOps[opcode], "opcode 0x%02X is in the undefined set and must have no handler", opcode)
			continue
		}
		assert.NotNil(t, baseOps[opcode], "opcode 0x%02X must decode to exactly one handler", opcode)
	}
}

func TestFullCBTableCoverage(t *testing.T) {
	for op := 0; op < 256; op++ {
		assert.NotNil(t, cbOps[byte(op)], "CB opcode 0x%02X must decode to exactly one handler", op)
	}
}

// S1 — ADD with half-carry.
func TestScenarioAddHalfCarry(t *testing.T) {
	c, bus := newTestCPU()
	c.PC = 0x0100
	c.A = 0x3A
	c.B = 0xC6
	c.F = 0x00
	bus.data[0x0100] = 0x80 // ADD A,B

	_, err := c.Step()
	assert.NoError(t, err)
	assert.Equal(t, byte(0x00), c.A)
	assert.Equal(t, byte(0xB0), c.F)
	assert.Equal(t, uint16(0x0101), c.PC)
}

// S2 — SUB with borrow.
func TestScenarioSubBorrow(t *testing.T) {
	c, bus := newTestCPU()
	c.PC = 0x0100
	c.A = 0x3E
	c.E = 0x3E
	c.F = 0x00
	bus.data[0x0100] = 0x93 // SUB E

	_, err := c.Step()
	assert.NoError(t, err)
	assert.Equal(t, byte(0x00), c.A)
	assert.Equal(t, byte(0xC0), c.F)
}

// S3 — conditional jump not taken.
func TestScenarioConditionalJumpNotTaken(t *testing.T) {
	c, bus := newTestCPU()
	c.PC = 0x0100
	c.SetFlagZ(false)
	bus.data[0x0100] = 0xCA
	bus.data[0x0101] = 0x34
	bus.data[0x0102] = 0x12

	cycles, err := c.Step()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x0103), c.PC)
	assert.Equal(t, 3, cycles)
}

// S4 — CALL/RET round trip.
func TestScenarioCallRetRoundTrip(t *testing.T) {
	c, bus := newTestCPU()
	c.SP = 0xFFFE
	c.PC = 0x0200
	bus.data[0x0200] = 0xCD
	bus.data[0x0201] = 0x50
	bus.data[0x0202] = 0x03
	bus.data[0x0350] = 0xC9

	_, err := c.Step()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0xFFFC), c.SP)
	assert.Equal(t, byte(0x03), bus.data[0xFFFC])
	assert.Equal(t, byte(0x02), bus.data[0xFFFD])
	assert.Equal(t, uint16(0x0350), c.PC)

	_, err = c.Step()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0xFFFE), c.SP)
	assert.Equal(t, uint16(0x0203), c.PC)
}

func TestUndefinedOpcodeReportsUnsupported(t *testing.T) {
	c, bus := newTestCPU()
	c.PC = 0x0100
	bus.data[0x0100] = 0xD3

	_, err := c.Step()
	assert.Error(t, err)
}

func TestFlagLowNibbleAlwaysZero(t *testing.T) {
	c, bus := newTestCPU()
	c.PC = 0x0100
	c.A, c.B = 0x0F, 0x01
	bus.data[0x0100] = 0x80 // ADD A,B

	_, err := c.Step()
	assert.NoError(t, err)
	assert.Equal(t, byte(0), c.F&0x0F)
}

func TestJPHLDoesNotDereferenceMemory(t *testing.T) {
	c, bus := newTestCPU()
	c.PC = 0x0100
	c.SetHL(0x9000)
	bus.data[0x0100] = 0xE9 // JP (HL)
	bus.data[0x9000] = 0xFF // if dereferenced, PC would become 0x00FF

	_, err := c.Step()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x9000), c.PC)
}

func TestPushPopRoundTrip(t *testing.T) {
	c, _ := newTestCPU()
	c.SP = 0xFFFE
	c.push(0xBEEF)
	assert.Equal(t, uint16(0xBEEF), c.pop())
	assert.Equal(t, uint16(0xFFFE), c.SP)
}
