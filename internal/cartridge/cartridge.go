// Package cartridge parses the DMG header and implements the "no MBC"
// cartridge ROM, the only bank-controller variant in core scope (spec.md
// §1, §6). Other MBC types are recognized and stored but rejected as a
// LoadFailure — wiring real bank-switching is explicitly out of scope.
package cartridge

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/valerio/dmgcore/internal/gberr"
)

const (
	headerStart     = 0x0134
	headerEnd       = 0x014D
	titleAddress    = 0x0134
	titleLength     = 16
	cartTypeAddress = 0x0147
	romSizeAddress  = 0x0148
	ramSizeAddress  = 0x0149
	destCodeAddress = 0x014A
	checksumAddress = 0x014D
	minROMSize      = 0x0150
)

// Type is the cartridge-type byte at 0x0147.
type Type uint8

const (
	TypeROMOnly Type = 0x00
)

// Cartridge holds the raw ROM image and the header fields the bus/loader
// consult.
type Cartridge struct {
	data []byte

	Title           string
	CartridgeType   byte
	ROMSizeCode     byte
	RAMSizeCode     byte
	DestinationCode byte
}

// Load validates the header checksum (spec.md §6) and returns a Cartridge
// for the "no MBC" case, or a *gberr.LoadFailure for anything else.
func Load(path string, data []byte) (*Cartridge, error) {
	if len(data) < minROMSize {
		return nil, &gberr.LoadFailure{Path: path, Reason: fmt.Sprintf("ROM too small: %d bytes", len(data))}
	}

	var sum byte
	for i := headerStart; i <= headerEnd; i++ {
		sum += data[i]
	}
	// The checksum byte itself is included in the sum above (it is byte
	// 0x014D, the last byte of the header range); the spec's invariant
	// folds the `+0x19` adjustment into that same running total.
	if sum+0x19 != 0 {
		return nil, &gberr.LoadFailure{
			Path:   path,
			Reason: fmt.Sprintf("header checksum mismatch: sum+0x19=0x%02X, want 0x00", sum+0x19),
		}
	}

	cartType := data[cartTypeAddress]
	if Type(cartType) != TypeROMOnly {
		return nil, &gberr.LoadFailure{
			Path:   path,
			Reason: fmt.Sprintf("unsupported cartridge type 0x%02X (only ROM-only/NoMBC is in scope)", cartType),
		}
	}

	rom := make([]byte, len(data))
	copy(rom, data)

	return &Cartridge{
		data:            rom,
		Title:           cleanTitle(data[titleAddress : titleAddress+titleLength]),
		CartridgeType:   cartType,
		ROMSizeCode:     data[romSizeAddress],
		RAMSizeCode:     data[ramSizeAddress],
		DestinationCode: data[destCodeAddress],
	}, nil
}

// Read returns the byte at address, within ROM bounds (0x0000-0x7FFF).
func (c *Cartridge) Read(address uint16) byte {
	if int(address) >= len(c.data) {
		return 0xFF
	}
	return c.data[address]
}

// Write is a no-op: a NoMBC cartridge has no bank-control registers.
func (c *Cartridge) Write(address uint16, value byte) {}

func cleanTitle(raw []byte) string {
	runes := make([]rune, 0, len(raw))
	for _, b := range raw {
		if b == 0 {
			break
		}
		r := rune(b)
		if !unicode.IsPrint(r) {
			r = '?'
		}
		runes = append(runes, r)
	}
	title := strings.TrimSpace(string(runes))
	if title == "" {
		return "(untitled)"
	}
	return title
}
