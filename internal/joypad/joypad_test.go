package joypad

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadWithNoRowSelected(t *testing.T) {
	j := New()
	j.Write(0x30)
	assert.Equal(t, byte(0xFF), j.Read())
}

func TestPressSetsBitLow(t *testing.T) {
	j := New()
	j.Write(0x20) // bit 4 clear selects the d-pad row (active low)
	j.Press(Right)
	assert.Equal(t, byte(0xC0|0x20|0x0E), j.Read())
}

func TestFallingEdgeRaisesInterrupt(t *testing.T) {
	j := New()
	j.Write(0x20) // select dpad
	fired := false
	j.RequestInterrupt = func() { fired = true }

	j.Press(Right)
	assert.True(t, fired)
}

func TestReleaseNoEdge(t *testing.T) {
	j := New()
	j.Write(0x20)
	j.Press(Right)

	fired := false
	j.RequestInterrupt = func() { fired = true }
	j.Release(Right)
	assert.False(t, fired, "rising edges do not request an interrupt")
}
