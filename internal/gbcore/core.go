// Package gbcore wires the register file, memory bus, interrupt
// controller, timer, joypad, and PPU into the single-threaded driver loop
// described in spec.md §5.
package gbcore

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/valerio/dmgcore/internal/addr"
	"github.com/valerio/dmgcore/internal/cartridge"
	"github.com/valerio/dmgcore/internal/cpu"
	"github.com/valerio/dmgcore/internal/gberr"
	"github.com/valerio/dmgcore/internal/interrupt"
	"github.com/valerio/dmgcore/internal/joypad"
	"github.com/valerio/dmgcore/internal/memory"
	"github.com/valerio/dmgcore/internal/serial"
	"github.com/valerio/dmgcore/internal/timer"
	"github.com/valerio/dmgcore/internal/video"
)

// cyclesPerFrame is the machine-cycle length of one full PPU frame: 144
// scanlines of 114 cycles each (20+43+51), plus ten 114-cycle V-blank
// lines. See DESIGN.md for why this is 17556 rather than the 70224 that
// would result from counting native clocks instead of machine cycles.
const cyclesPerFrame = 144*(20+43+51) + 10*114

// Emulator is the root struct tying every component together.
type Emulator struct {
	CPU       *cpu.CPU
	Bus       *memory.Bus
	PPU       *video.PPU
	Timer     *timer.Timer
	Joypad    *joypad.Joypad
	Interrupt *interrupt.Controller
	Serial    *serial.LogSink
	Cart      *cartridge.Cartridge

	frameDone bool
}

// NewWithFile loads romPath and returns a wired, runnable Emulator, or a
// *gberr.LoadFailure.
func NewWithFile(romPath string) (*Emulator, error) {
	data, err := os.ReadFile(romPath)
	if err != nil {
		return nil, &gberr.LoadFailure{Path: romPath, Reason: err.Error()}
	}

	cart, err := cartridge.Load(romPath, data)
	if err != nil {
		return nil, err
	}

	slog.Debug("loaded ROM", "path", romPath, "title", cart.Title, "size", len(data))

	return newEmulator(cart), nil
}

func newEmulator(cart *cartridge.Cartridge) *Emulator {
	ic := interrupt.New()
	ppu := video.New()
	t := timer.New()
	j := joypad.New()
	s := serial.NewLogSink()

	ppu.RequestVBlank = func() { ic.Request(addr.VBlank) }
	ppu.RequestLCDStat = func() { ic.Request(addr.LCDStat) }
	t.RequestOverflow = func() { ic.Request(addr.Timer) }
	j.RequestInterrupt = func() { ic.Request(addr.Joypad) }
	s.RequestInterrupt = func() { ic.Request(addr.Serial) }

	bus := memory.New(cart, ppu, t, j, ic, s)
	c := cpu.New(bus, ic)

	e := &Emulator{CPU: c, Bus: bus, PPU: ppu, Timer: t, Joypad: j, Interrupt: ic, Serial: s, Cart: cart}
	ppu.Present = func(fb *video.FrameBuffer) { e.frameDone = true }
	return e
}

// Step executes exactly one CPU step and feeds its cycles to Timer and
// PPU in that order, preserving the ordering guarantee of spec.md §5.
func (e *Emulator) Step() (int, error) {
	cycles, err := e.CPU.Step()
	if err != nil {
		return cycles, err
	}
	e.Timer.Tick(cycles)
	e.PPU.Tick(cycles)
	return cycles, nil
}

// RunUntilFrame executes steps until a V-blank transition has produced a
// complete frame, then returns. Fatal errors are returned wrapped with
// %w, so errors.As still finds the underlying gberr type.
func (e *Emulator) RunUntilFrame() error {
	e.frameDone = false
	for !e.frameDone {
		if _, err := e.Step(); err != nil {
			return fmt.Errorf("emulation halted: %w", err)
		}
	}
	return nil
}

// Frame returns the most recently completed framebuffer.
func (e *Emulator) Frame() *video.FrameBuffer { return e.PPU.Frame() }

// PressKey and ReleaseKey forward to the joypad's edge-triggered button
// matrix (spec.md §4.5); they are the driver's "button changed" events.
func (e *Emulator) PressKey(btn joypad.Button)   { e.Joypad.Press(btn) }
func (e *Emulator) ReleaseKey(btn joypad.Button) { e.Joypad.Release(btn) }
