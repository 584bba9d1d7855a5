package bit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombine(t *testing.T) {
	assert.Equal(t, uint16(0xABCD), Combine(0xAB, 0xCD))
	assert.Equal(t, uint16(0x0000), Combine(0x00, 0x00))
}

func TestSetReset(t *testing.T) {
	assert.Equal(t, byte(0x01), Set(0, 0x00))
	assert.Equal(t, byte(0x00), Reset(0, 0x01))
	assert.True(t, IsSet(7, 0x80))
	assert.False(t, IsSet(7, 0x7F))
}

func TestHighLow(t *testing.T) {
	assert.Equal(t, byte(0xAB), High(0xABCD))
	assert.Equal(t, byte(0xCD), Low(0xABCD))
}

func TestLowestSetBit(t *testing.T) {
	idx, ok := LowestSetBit(0b00010100)
	assert.True(t, ok)
	assert.Equal(t, uint8(2), idx)

	_, ok = LowestSetBit(0)
	assert.False(t, ok)
}
