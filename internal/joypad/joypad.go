// Package joypad implements the P1 register and button matrix (spec.md §4.5).
package joypad

import "github.com/valerio/dmgcore/internal/bit"

// Button identifies one of the eight DMG inputs.
type Button uint8

const (
	Right Button = iota
	Left
	Up
	Down
	A
	B
	Select
	Start
)

// Joypad holds the button matrix and the P1 row selection. RequestInterrupt
// is wired to the interrupt controller by gbcore; it is invoked on a
// falling edge of any low-nibble bit, per spec.md §4.5.
type Joypad struct {
	buttons uint8 // low nibble: A,B,Select,Start (bit order 0..3), 1=released
	dpad    uint8 // low nibble: Right,Left,Up,Down, 1=released
	select_ uint8 // raw selection bits (5:4) as last written to P1

	RequestInterrupt func()
}

// New returns a joypad with no buttons pressed.
func New() *Joypad {
	return &Joypad{buttons: 0x0F, dpad: 0x0F}
}

// Read assembles the P1 register from the current selection and button
// state. With neither row selected the low nibble reads as 0xF; bits 6-7
// always read as 1.
func (j *Joypad) Read() byte {
	result := byte(0xC0) | (j.select_ & 0x30)

	selectDpad := !bit.IsSet(4, j.select_)
	selectButtons := !bit.IsSet(5, j.select_)

	switch {
	case selectButtons && selectDpad:
		result |= j.buttons & j.dpad & 0x0F
	case selectButtons:
		result |= j.buttons & 0x0F
	case selectDpad:
		result |= j.dpad & 0x0F
	default:
		result |= 0x0F
	}

	return result
}

// Write stores the row-select bits (4:5); all other bits are read-only from
// the guest's perspective.
func (j *Joypad) Write(value byte) {
	j.select_ = value & 0x30
}

// Press records a button as held. A falling edge on the assembled low
// nibble raises the joypad interrupt.
func (j *Joypad) Press(btn Button) {
	before := j.Read()

	switch btn {
	case Right:
		j.dpad = bit.Reset(0, j.dpad)
	case Left:
		j.dpad = bit.Reset(1, j.dpad)
	case Up:
		j.dpad = bit.Reset(2, j.dpad)
	case Down:
		j.dpad = bit.Reset(3, j.dpad)
	case A:
		j.buttons = bit.Reset(0, j.buttons)
	case B:
		j.buttons = bit.Reset(1, j.buttons)
	case Select:
		j.buttons = bit.Reset(2, j.buttons)
	case Start:
		j.buttons = bit.Reset(3, j.buttons)
	}

	j.signalEdge(before)
}

// Release records a button as no longer held.
func (j *Joypad) Release(btn Button) {
	switch btn {
	case Right:
		j.dpad = bit.Set(0, j.dpad)
	case Left:
		j.dpad = bit.Set(1, j.dpad)
	case Up:
		j.dpad = bit.Set(2, j.dpad)
	case Down:
		j.dpad = bit.Set(3, j.dpad)
	case A:
		j.buttons = bit.Set(0, j.buttons)
	case B:
		j.buttons = bit.Set(1, j.buttons)
	case Select:
		j.buttons = bit.Set(2, j.buttons)
	case Start:
		j.buttons = bit.Set(3, j.buttons)
	}
}

func (j *Joypad) signalEdge(before byte) {
	after := j.Read()
	fallingEdge := (before &^ after) & 0x0F
	if fallingEdge != 0 && j.RequestInterrupt != nil {
		j.RequestInterrupt()
	}
}
