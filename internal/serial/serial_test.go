package serial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/dmgcore/internal/addr"
)

func TestTransferCompletesAndRequestsInterrupt(t *testing.T) {
	s := NewLogSink()
	fired := false
	s.RequestInterrupt = func() { fired = true }

	s.Write(addr.SB, 'X')
	s.Write(addr.SC, 0x81) // start + internal clock

	assert.True(t, fired)
	assert.Equal(t, byte(0xFF), s.Read(addr.SB))
	assert.False(t, s.Read(addr.SC)&0x80 != 0, "start bit clears once the transfer completes")
}

func TestNoTransferWithoutStartBit(t *testing.T) {
	s := NewLogSink()
	fired := false
	s.RequestInterrupt = func() { fired = true }

	s.Write(addr.SC, 0x01) // internal clock but no start bit
	assert.False(t, fired)
}
