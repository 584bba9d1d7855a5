// Package addr collects the address-space and I/O register constants shared
// by every component that sits on the memory bus.
package addr

// Memory map boundaries (§3 of the spec).
const (
	ROMStart  uint16 = 0x0000
	ROMEnd    uint16 = 0x7FFF
	VRAMStart uint16 = 0x8000
	VRAMEnd   uint16 = 0x9FFF
	ExtRAMStart uint16 = 0xA000
	ExtRAMEnd   uint16 = 0xBFFF
	WRAMStart uint16 = 0xC000
	WRAMEnd   uint16 = 0xDFFF
	EchoStart uint16 = 0xE000
	EchoEnd   uint16 = 0xFDFF
	OAMStart  uint16 = 0xFE00
	OAMEnd    uint16 = 0xFE9F
	UnusedStart uint16 = 0xFEA0
	UnusedEnd   uint16 = 0xFEFF
	IOStart   uint16 = 0xFF00
	IOEnd     uint16 = 0xFF7F
	HRAMStart uint16 = 0xFF80
	HRAMEnd   uint16 = 0xFFFE
)

// PPU registers.
const (
	LCDC uint16 = 0xFF40
	STAT uint16 = 0xFF41
	SCY  uint16 = 0xFF42
	SCX  uint16 = 0xFF43
	LY   uint16 = 0xFF44
	LYC  uint16 = 0xFF45
	DMA  uint16 = 0xFF46
	BGP  uint16 = 0xFF47
	OBP0 uint16 = 0xFF48
	OBP1 uint16 = 0xFF49
	WY   uint16 = 0xFF4A
	WX   uint16 = 0xFF4B
)

// Tile data/map bases (§4.6).
const (
	TileData0 uint16 = 0x8000 // unsigned tile codes
	TileData1 uint16 = 0x9000 // signed tile codes, code 0 at 0x9000
	TileMap0  uint16 = 0x9800
	TileMap1  uint16 = 0x9C00
)

// Joypad.
const P1 uint16 = 0xFF00

// Serial I/O (ambient, not core per spec.md §1; routed by the bus regardless).
const (
	SB uint16 = 0xFF01
	SC uint16 = 0xFF02
)

// Timer registers.
const (
	DIV  uint16 = 0xFF04
	TIMA uint16 = 0xFF05
	TMA  uint16 = 0xFF06
	TAC  uint16 = 0xFF07
)

// Interrupt registers.
const (
	IF uint16 = 0xFF0F
	IE uint16 = 0xFFFF
)

// Interrupt is the bit position (within IF/IE's low 5 bits) of an interrupt
// source, also the index into the vector table.
type Interrupt uint8

const (
	VBlank Interrupt = iota
	LCDStat
	Timer
	Serial
	Joypad
)

// Vectors are the fixed jump targets for each interrupt source, in §4.3 order.
var Vectors = [5]uint16{0x40, 0x48, 0x50, 0x58, 0x60}
