package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/dmgcore/internal/addr"
	"github.com/valerio/dmgcore/internal/cartridge"
	"github.com/valerio/dmgcore/internal/interrupt"
	"github.com/valerio/dmgcore/internal/joypad"
	"github.com/valerio/dmgcore/internal/serial"
	"github.com/valerio/dmgcore/internal/timer"
	"github.com/valerio/dmgcore/internal/video"
)

func newTestBus(t *testing.T) *Bus {
	data := make([]byte, 0x0150)
	data[0x014D] = 0xE7 // valid checksum for an all-zero header
	cart, err := cartridge.Load("test.gb", data)
	if err != nil {
		t.Fatalf("unexpected cartridge load error: %v", err)
	}
	return New(cart, video.New(), timer.New(), joypad.New(), interrupt.New(), serial.NewLogSink())
}

func TestWRAMRoundTrip(t *testing.T) {
	b := newTestBus(t)
	b.Write(addr.WRAMStart, 0x42)
	assert.Equal(t, byte(0x42), b.Read(addr.WRAMStart))
}

func TestEchoAliasesWRAM(t *testing.T) {
	b := newTestBus(t)
	b.Write(addr.WRAMStart+5, 0x99)
	assert.Equal(t, byte(0x99), b.Read(addr.EchoStart+5))

	b.Write(addr.EchoStart+10, 0x11)
	assert.Equal(t, byte(0x11), b.Read(addr.WRAMStart+10))
}

func TestUnusableRegionReadsFFAndIgnoresWrites(t *testing.T) {
	b := newTestBus(t)
	b.Write(addr.UnusedStart, 0x55)
	assert.Equal(t, byte(0xFF), b.Read(addr.UnusedStart))
}

func TestHRAMRoundTrip(t *testing.T) {
	b := newTestBus(t)
	b.Write(addr.HRAMStart, 0x7E)
	assert.Equal(t, byte(0x7E), b.Read(addr.HRAMStart))
}

func TestIERegisterRoundTrip(t *testing.T) {
	b := newTestBus(t)
	b.Write(addr.IE, 0x1F)
	assert.Equal(t, byte(0x1F), b.Read(addr.IE))
}

func TestReadIsTotalAcrossFullAddressSpace(t *testing.T) {
	b := newTestBus(t)
	for a := 0; a <= 0xFFFF; a += 0x101 {
		_ = b.Read(uint16(a))
	}
}

func TestLYIsReadOnly(t *testing.T) {
	b := newTestBus(t)
	before := b.Read(addr.LY)
	b.Write(addr.LY, 0x99)
	assert.Equal(t, before, b.Read(addr.LY))
}

func TestOAMDMACopiesFromSource(t *testing.T) {
	b := newTestBus(t)
	for i := uint16(0); i < 0xA0; i++ {
		b.Write(addr.WRAMStart+i, byte(i))
	}
	b.Write(addr.DMA, 0xC0) // source = 0xC000, within WRAM

	for i := uint16(0); i < 0xA0; i++ {
		assert.Equal(t, byte(i), b.Read(addr.OAMStart+i))
	}
}
