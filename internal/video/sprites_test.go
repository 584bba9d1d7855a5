package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriorityBufferLowestXWins(t *testing.T) {
	var b SpritePriorityBuffer
	b.Clear()
	b.TryClaimPixel(10, 5, 20)
	b.TryClaimPixel(10, 2, 8)
	assert.Equal(t, 2, b.GetOwner(10), "sprite with smaller spriteX wins priority")
}

func TestPriorityBufferFirstClaimWinsOnTie(t *testing.T) {
	var b SpritePriorityBuffer
	b.Clear()
	b.TryClaimPixel(10, 1, 5)
	b.TryClaimPixel(10, 9, 5)
	assert.Equal(t, 1, b.GetOwner(10))
}

func TestPriorityBufferUnclaimedReturnsNegativeOne(t *testing.T) {
	var b SpritePriorityBuffer
	b.Clear()
	assert.Equal(t, -1, b.GetOwner(3))
}
