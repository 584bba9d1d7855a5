// Package serial implements a stub serial port: the SB/SC registers are
// ambient I/O the bus must route (spec.md §4.2 treats 0xFF00-0xFF7F
// generically as I/O registers), but the link-cable protocol itself is an
// explicit external-collaborator Non-goal (spec.md §1). This sink logs
// outgoing bytes and completes the transfer immediately, requesting the
// serial interrupt as real hardware would.
package serial

import (
	"log/slog"

	"github.com/valerio/dmgcore/internal/addr"
	"github.com/valerio/dmgcore/internal/bit"
)

// LogSink is a no-peer serial device: SB reads 0xFF once a transfer
// completes, matching what real hardware reports with nothing connected.
type LogSink struct {
	sb, sc byte
	line   []byte

	RequestInterrupt func()
}

// NewLogSink returns a reset serial sink.
func NewLogSink() *LogSink {
	return &LogSink{sc: 0x00, sb: 0x00}
}

// Write handles SB/SC writes, starting (and immediately completing) a
// transfer when SC's start and internal-clock bits are both set.
func (s *LogSink) Write(address uint16, value byte) {
	switch address {
	case addr.SB:
		s.sb = value
	case addr.SC:
		s.sc = value
		s.maybeTransfer()
	}
}

// Read returns SB or SC.
func (s *LogSink) Read(address uint16) byte {
	switch address {
	case addr.SB:
		return s.sb
	case addr.SC:
		return s.sc
	default:
		return 0xFF
	}
}

func (s *LogSink) maybeTransfer() {
	if !bit.IsSet(7, s.sc) || !bit.IsSet(0, s.sc) {
		return
	}

	b := s.sb
	if b == 0 || b == '\n' || b == '\r' {
		if len(s.line) > 0 {
			slog.Info("serial transfer", "line", string(s.line))
			s.line = s.line[:0]
		}
	} else {
		s.line = append(s.line, b)
	}

	s.sb = 0xFF
	s.sc = bit.Reset(7, s.sc)
	if s.RequestInterrupt != nil {
		s.RequestInterrupt()
	}
}
