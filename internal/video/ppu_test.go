package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/dmgcore/internal/addr"
)

func TestModeSequenceWithinOneScanline(t *testing.T) {
	p := New()
	p.WriteRegister(addr.LCDC, 0x91)

	assert.Equal(t, ModeOAM, p.CurrentMode())
	p.Tick(oamCycles)
	assert.Equal(t, ModeVRAM, p.CurrentMode())
	p.Tick(vramCycles)
	assert.Equal(t, ModeHBlank, p.CurrentMode())
	p.Tick(hblankCycles)
	assert.Equal(t, ModeOAM, p.CurrentMode())
	assert.Equal(t, byte(1), p.LY())
}

func TestFullFrameReturnsToModeOAMAtLY0(t *testing.T) {
	p := New()
	p.WriteRegister(addr.LCDC, 0x91)

	vblanks := 0
	p.RequestVBlank = func() { vblanks++ }

	p.Tick(cyclesPerFrame)

	assert.Equal(t, ModeOAM, p.CurrentMode())
	assert.Equal(t, byte(0), p.LY())
	assert.Equal(t, 1, vblanks)
}

func TestLCDDisabledPaintsWhite(t *testing.T) {
	p := New()
	p.WriteRegister(addr.LCDC, 0x00)
	p.Tick(1000)
	assert.Equal(t, byte(0), p.LY())
	assert.Equal(t, ShadeWhite, colorAt(p, 0, 0))
}

func colorAt(p *PPU, x, y int) Shade {
	offset := (y*Width + x) * 4
	r := p.frame.Pixels[offset]
	switch r {
	case 0xFF:
		return ShadeWhite
	case 0xA8:
		return ShadeLight
	case 0x54:
		return ShadeDark
	default:
		return ShadeBlack
	}
}

func TestLYCMatchSetsSTATBit(t *testing.T) {
	p := New()
	p.WriteRegister(addr.LYC, 0)
	assert.True(t, p.stat&0x04 != 0, "LY starts at 0 and LYC defaults to 0")
}

func TestBackgroundRasterReadsTileData(t *testing.T) {
	p := New()
	p.WriteRegister(addr.LCDC, 0x91) // BG+LCD enabled, unsigned tile data, map at 0x9800
	p.WriteRegister(addr.BGP, 0b11100100)

	// Tile 0 at 0x8000: row 0 all-white except column 0 which is color 3.
	p.WriteVRAM(0x8000, 0x80)
	p.WriteVRAM(0x8001, 0x80)
	// Tile-map entry (0,0) -> tile 0 (VRAM defaults to zero already).

	p.Tick(oamCycles + vramCycles)

	assert.Equal(t, ShadeBlack, colorAt(p, 0, 0))
	assert.Equal(t, ShadeWhite, colorAt(p, 1, 0))
}
