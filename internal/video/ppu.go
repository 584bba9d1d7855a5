// Package video implements the DMG picture processing unit: the four-mode
// scanline state machine, VRAM/OAM storage, and the background/window/
// sprite raster (spec.md §4.6). Window and sprite composition are the
// extension spec.md §4.6 allows beyond the minimum-viable background path.
package video

import (
	"log/slog"

	"github.com/valerio/dmgcore/internal/addr"
	"github.com/valerio/dmgcore/internal/bit"
)

// Mode is the PPU's current stage, numerically equal to STAT bits 1:0.
type Mode uint8

const (
	ModeHBlank Mode = 0
	ModeVBlank Mode = 1
	ModeOAM    Mode = 2
	ModeVRAM   Mode = 3
)

// Mode durations, in machine cycles (spec.md §4.6).
const (
	oamCycles    = 20
	vramCycles   = 43
	hblankCycles = 51
	scanlineCycles = oamCycles + vramCycles + hblankCycles // 114
	vblankLineCycles = 114
	vblankLines      = 10

	linesPerFrame  = 144
	cyclesPerFrame = linesPerFrame*scanlineCycles + vblankLines*vblankLineCycles
)

const (
	lcdEnableBit     = 7
	windowMapBit     = 6
	windowEnableBit  = 5
	tileDataSelectBit = 4
	bgMapBit         = 3
	spriteSizeBit    = 2
	spriteEnableBit  = 1
	bgEnableBit      = 0

	statLYCIrqBit    = 6
	statOAMIrqBit    = 5
	statVBlankIrqBit = 4
	statHBlankIrqBit = 3
	statLYCFlagBit   = 2
)

// PPU owns VRAM, OAM, and the LCD registers, and drives the mode state
// machine forward as the CPU yields cycles to it.
type PPU struct {
	vram [0x2000]byte
	oam  [0xA0]byte

	lcdc, stat, scy, scx, ly, lyc byte
	bgp, obp0, obp1               byte
	wy, wx                        byte

	mode         Mode
	cyclesInMode int
	frameDone    bool

	windowLineCounter int
	lyWriteLogged     bool

	frame *FrameBuffer

	RequestVBlank  func()
	RequestLCDStat func()
	// Present is invoked once per completed frame (the V-blank transition),
	// handing over the just-rasterized framebuffer (spec.md §6).
	Present func(*FrameBuffer)
}

// New returns a PPU reset to its post-boot state: mode 2, LY 0.
func New() *PPU {
	return &PPU{
		mode:  ModeOAM,
		frame: NewFrameBuffer(),
		lcdc:  0x91,
		bgp:   0xFC,
	}
}

// ReadVRAM/WriteVRAM expose the 8 KiB VRAM region the bus maps at
// 0x8000-0x9FFF. The spec documents CPU-vs-PPU VRAM contention during mode 3
// as a simplification the core does not model (§4.2); access is always
// allowed.
func (p *PPU) ReadVRAM(address uint16) byte  { return p.vram[address-addr.VRAMStart] }
func (p *PPU) WriteVRAM(address uint16, v byte) { p.vram[address-addr.VRAMStart] = v }

// ReadOAM/WriteOAM expose the 160-byte OAM region at 0xFE00-0xFE9F.
func (p *PPU) ReadOAM(address uint16) byte  { return p.oam[address-addr.OAMStart] }
func (p *PPU) WriteOAM(address uint16, v byte) { p.oam[address-addr.OAMStart] = v }

// ReadRegister dispatches a bus read to one of the PPU's I/O registers.
func (p *PPU) ReadRegister(address uint16) byte {
	switch address {
	case addr.LCDC:
		return p.lcdc
	case addr.STAT:
		return p.stat | 0x80
	case addr.SCY:
		return p.scy
	case addr.SCX:
		return p.scx
	case addr.LY:
		return p.ly
	case addr.LYC:
		return p.lyc
	case addr.BGP:
		return p.bgp
	case addr.OBP0:
		return p.obp0
	case addr.OBP1:
		return p.obp1
	case addr.WY:
		return p.wy
	case addr.WX:
		return p.wx
	default:
		return 0xFF
	}
}

// logLYWriteOnce reports a write to the read-only LY register once per PPU
// instance (spec.md §7's DiagnosticOnly category); it is non-fatal.
func (p *PPU) logLYWriteOnce() {
	if p.lyWriteLogged {
		return
	}
	p.lyWriteLogged = true
	slog.Debug("diagnostic-only bus condition", "category", "ly-write-ignored")
}

// WriteRegister dispatches a bus write. LY is read-only from the bus, per
// spec.md §3 invariant 4; writes to it are ignored (and logged once at
// debug level by logLYWriteOnce).
func (p *PPU) WriteRegister(address uint16, v byte) {
	switch address {
	case addr.LCDC:
		wasEnabled := bit.IsSet(lcdEnableBit, p.lcdc)
		p.lcdc = v
		if wasEnabled && !bit.IsSet(lcdEnableBit, v) {
			p.disableLCD()
		}
	case addr.STAT:
		p.stat = (p.stat & 0x07) | (v & 0x78)
	case addr.SCY:
		p.scy = v
	case addr.SCX:
		p.scx = v
	case addr.LY:
		p.logLYWriteOnce()
	case addr.LYC:
		p.lyc = v
		p.compareLYC()
	case addr.BGP:
		p.bgp = v
	case addr.OBP0:
		p.obp0 = v
	case addr.OBP1:
		p.obp1 = v
	case addr.WY:
		p.wy = v
	case addr.WX:
		p.wx = v
	}
}

func (p *PPU) disableLCD() {
	p.mode = ModeHBlank
	p.ly = 0
	p.cyclesInMode = 0
	p.windowLineCounter = 0
	p.setSTATMode(ModeHBlank)
	p.frame.Fill(ShadeWhite)
}

// Tick advances the PPU by cycles machine cycles, driving the mode state
// machine and rasterizing scanlines at the mode-3 boundary.
func (p *PPU) Tick(cycles int) {
	if !bit.IsSet(lcdEnableBit, p.lcdc) {
		return
	}

	for i := 0; i < cycles; i++ {
		p.tickOne()
	}
}

func (p *PPU) tickOne() {
	p.cyclesInMode++

	switch p.mode {
	case ModeOAM:
		if p.cyclesInMode >= oamCycles {
			p.cyclesInMode = 0
			p.setMode(ModeVRAM)
		}
	case ModeVRAM:
		if p.cyclesInMode >= vramCycles {
			p.drawScanline()
			p.cyclesInMode = 0
			p.setMode(ModeHBlank)
		}
	case ModeHBlank:
		if p.cyclesInMode >= hblankCycles {
			p.cyclesInMode = 0
			p.setLY(p.ly + 1)
			if p.ly == 144 {
				p.setMode(ModeVBlank)
				p.windowLineCounter = 0
				if p.RequestVBlank != nil {
					p.RequestVBlank()
				}
				if p.Present != nil {
					p.Present(p.frame)
				}
			} else {
				p.setMode(ModeOAM)
			}
		}
	case ModeVBlank:
		if p.cyclesInMode >= vblankLineCycles {
			p.cyclesInMode = 0
			if p.ly+1 == 154 {
				p.setLY(0)
				p.setMode(ModeOAM)
			} else {
				p.setLY(p.ly + 1)
			}
		}
	}
}

func (p *PPU) setMode(mode Mode) {
	p.mode = mode
	p.setSTATMode(mode)

	requestsIrq := false
	switch mode {
	case ModeHBlank:
		requestsIrq = bit.IsSet(statHBlankIrqBit, p.stat)
	case ModeVBlank:
		requestsIrq = bit.IsSet(statVBlankIrqBit, p.stat)
	case ModeOAM:
		requestsIrq = bit.IsSet(statOAMIrqBit, p.stat)
	}
	if requestsIrq && p.RequestLCDStat != nil {
		p.RequestLCDStat()
	}
}

func (p *PPU) setSTATMode(mode Mode) {
	p.stat = (p.stat &^ 0x03) | byte(mode)
}

func (p *PPU) setLY(line int) {
	p.ly = byte(line)
	p.compareLYC()
}

func (p *PPU) compareLYC() {
	if p.ly == p.lyc {
		p.stat = bit.Set(statLYCFlagBit, p.stat)
		if bit.IsSet(statLYCIrqBit, p.stat) && p.RequestLCDStat != nil {
			p.RequestLCDStat()
		}
	} else {
		p.stat = bit.Reset(statLYCFlagBit, p.stat)
	}
}

// drawScanline rasterizes the current LY into the framebuffer, composing
// background, window, and sprites in that priority order.
func (p *PPU) drawScanline() {
	line := int(p.ly)
	if line >= Height {
		return
	}

	bgColorIndex := make([]byte, Width)

	if bit.IsSet(bgEnableBit, p.lcdc) {
		p.drawBackground(line, bgColorIndex)
	} else {
		for x := 0; x < Width; x++ {
			p.frame.SetPixel(x, line, ShadeWhite)
		}
	}

	if bit.IsSet(windowEnableBit, p.lcdc) && bit.IsSet(bgEnableBit, p.lcdc) {
		p.drawWindow(line, bgColorIndex)
	}

	if bit.IsSet(spriteEnableBit, p.lcdc) {
		p.drawSprites(line, bgColorIndex)
	}
}

func (p *PPU) tileDataBase() (base uint16, signed bool) {
	if bit.IsSet(tileDataSelectBit, p.lcdc) {
		return addr.TileData0, false
	}
	return addr.TileData1, true
}

func (p *PPU) fetchTileRow(dataBase uint16, signed bool, tileCode byte, rowInTile int) tileRow {
	var tileIndex int
	if signed {
		tileIndex = int(int8(tileCode))
	} else {
		tileIndex = int(tileCode)
	}
	tileAddr := uint16(int(dataBase) + tileIndex*16 + rowInTile*2)
	low := p.ReadVRAM(tileAddr)
	high := p.ReadVRAM(tileAddr + 1)
	return tileRow{low: low, high: high}
}

// drawBackground implements the exact algorithm in spec.md §4.6.
func (p *PPU) drawBackground(line int, colorIndexOut []byte) {
	mapBase := addr.TileMap0
	if bit.IsSet(bgMapBit, p.lcdc) {
		mapBase = addr.TileMap1
	}
	dataBase, signed := p.tileDataBase()

	y := (int(p.scy) + line) % 256
	tileRowInMap := y / 8
	rowInTile := y % 8

	for x := 0; x < Width; x++ {
		worldX := (int(p.scx) + x) % 256
		tileCol := worldX / 8
		colInTile := worldX % 8

		mapAddr := mapBase + uint16(tileCol) + 32*uint16(tileRowInMap)
		tileCode := p.ReadVRAM(mapAddr)

		row := p.fetchTileRow(dataBase, signed, tileCode, rowInTile)
		colorIndex := row.colorIndex(colInTile)
		colorIndexOut[x] = colorIndex

		p.frame.SetPixel(x, line, paletteShade(colorIndex, p.bgp))
	}
}

// drawWindow overlays the window layer where LCDC bit 5 is set and WY/WX
// conditions hold, using the tile-data base selected by LCDC bit 4 and its
// own tile-map base selected by LCDC bit 6.
func (p *PPU) drawWindow(line int, colorIndexOut []byte) bool {
	if line < int(p.wy) {
		return false
	}
	wx := int(p.wx) - 7
	if wx >= Width {
		return false
	}

	mapBase := addr.TileMap0
	if bit.IsSet(windowMapBit, p.lcdc) {
		mapBase = addr.TileMap1
	}
	dataBase, signed := p.tileDataBase()

	windowRow := p.windowLineCounter
	tileRowInMap := windowRow / 8
	rowInTile := windowRow % 8

	drew := false
	for x := 0; x < Width; x++ {
		wpx := x - wx
		if wpx < 0 {
			continue
		}
		tileCol := wpx / 8
		colInTile := wpx % 8

		mapAddr := mapBase + uint16(tileCol) + 32*uint16(tileRowInMap)
		tileCode := p.ReadVRAM(mapAddr)

		row := p.fetchTileRow(dataBase, signed, tileCode, rowInTile)
		colorIndex := row.colorIndex(colInTile)
		colorIndexOut[x] = colorIndex

		p.frame.SetPixel(x, line, paletteShade(colorIndex, p.bgp))
		drew = true
	}

	if drew {
		p.windowLineCounter++
	}
	return drew
}

// drawSprites composes OAM-described objects over the background/window,
// honoring per-pixel priority, X-flip/Y-flip, palette selection, and the
// BG-priority attribute (spec.md supplemented feature, §4 of SPEC_FULL.md).
func (p *PPU) drawSprites(line int, bgColorIndex []byte) {
	height := 8
	if bit.IsSet(spriteSizeBit, p.lcdc) {
		height = 16
	}

	var priority SpritePriorityBuffer
	priority.Clear()

	type candidate struct {
		x, oamIndex      int
		tileIndex, flags byte
		y                int
	}
	var candidates []candidate

	for i := 0; i < 40 && len(candidates) < 10; i++ {
		base := addr.OAMStart + uint16(i*4)
		rawY := int(p.ReadOAM(base))
		spriteY := rawY - 16
		if line < spriteY || line >= spriteY+height {
			continue
		}
		rawX := int(p.ReadOAM(base + 1))
		spriteX := rawX - 8
		tileIndex := p.ReadOAM(base + 2)
		flags := p.ReadOAM(base + 3)

		candidates = append(candidates, candidate{x: spriteX, oamIndex: i, tileIndex: tileIndex, flags: flags, y: spriteY})
		for px := 0; px < 8; px++ {
			priority.TryClaimPixel(spriteX+px, i, spriteX)
		}
	}

	for _, s := range candidates {
		behindBG := bit.IsSet(7, s.flags)
		flipY := bit.IsSet(6, s.flags)
		flipX := bit.IsSet(5, s.flags)
		useOBP1 := bit.IsSet(4, s.flags)

		rowInSprite := line - s.y
		if flipY {
			rowInSprite = height - 1 - rowInSprite
		}

		tileIndex := s.tileIndex
		if height == 16 {
			tileIndex &^= 1
			if rowInSprite >= 8 {
				tileIndex++
				rowInSprite -= 8
			}
		}
		row := p.fetchTileRow(addr.TileData0, false, tileIndex, rowInSprite)

		for px := 0; px < 8; px++ {
			x := s.x + px
			if x < 0 || x >= Width {
				continue
			}
			if priority.GetOwner(x) != s.oamIndex {
				continue
			}

			var colorIndex byte
			if flipX {
				colorIndex = row.colorIndexFlipped(px)
			} else {
				colorIndex = row.colorIndex(px)
			}
			if colorIndex == 0 {
				continue // transparent
			}
			if behindBG && bgColorIndex[x] != 0 {
				continue
			}

			palette := p.obp0
			if useOBP1 {
				palette = p.obp1
			}
			p.frame.SetPixel(x, line, paletteShade(colorIndex, palette))
		}
	}
}

// Frame returns the framebuffer currently being drawn into. Safe to read at
// any time; guaranteed complete once Present fires.
func (p *PPU) Frame() *FrameBuffer { return p.frame }

// LY returns the current scanline, for debuggers/tests.
func (p *PPU) LY() byte { return p.ly }

// CurrentMode returns the PPU's current mode, for debuggers/tests.
func (p *PPU) CurrentMode() Mode { return p.mode }
