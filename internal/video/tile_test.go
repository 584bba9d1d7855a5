package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorIndexLeftmostIsHighBit(t *testing.T) {
	row := tileRow{low: 0x80, high: 0x80}
	assert.Equal(t, byte(3), row.colorIndex(0))
	assert.Equal(t, byte(0), row.colorIndex(1))
}

func TestColorIndexFlipped(t *testing.T) {
	row := tileRow{low: 0x01, high: 0x00}
	assert.Equal(t, byte(1), row.colorIndex(7))
	assert.Equal(t, byte(1), row.colorIndexFlipped(0))
}

func TestPaletteShade(t *testing.T) {
	// BGP = 0b11100100: index0->0, index1->1, index2->2, index3->3
	palette := byte(0b11100100)
	assert.Equal(t, ShadeWhite, paletteShade(0, palette))
	assert.Equal(t, ShadeLight, paletteShade(1, palette))
	assert.Equal(t, ShadeDark, paletteShade(2, palette))
	assert.Equal(t, ShadeBlack, paletteShade(3, palette))
}
