// Package present implements the optional presentation layer spec.md §1
// calls out as an external collaborator: a default terminal renderer built
// on tcell, and (behind the sdl2 build tag) a windowed SDL2 renderer.
package present

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/valerio/dmgcore/internal/gbcore"
	"github.com/valerio/dmgcore/internal/joypad"
	"github.com/valerio/dmgcore/internal/video"
)

const frameTime = time.Second / 60

// upperHalfBlock draws two vertically-stacked pixels as fg/bg of one cell.
const upperHalfBlock = '▀'

// TerminalRenderer runs the emulator and blits its framebuffer to a tcell
// screen once per frame, translating key events into joypad edges.
type TerminalRenderer struct {
	screen   tcell.Screen
	emulator *gbcore.Emulator
	running  bool
}

// NewTerminalRenderer initializes a tcell screen bound to emu.
func NewTerminalRenderer(emu *gbcore.Emulator) (*TerminalRenderer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %w", err)
	}

	return &TerminalRenderer{screen: screen, emulator: emu, running: true}, nil
}

// Run drives the emulator at 60 Hz until the user quits or the process
// receives a termination signal.
func (t *TerminalRenderer) Run() error {
	defer t.screen.Fini()

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)

	go t.handleInput()

	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	for t.running {
		select {
		case <-ticker.C:
			if err := t.emulator.RunUntilFrame(); err != nil {
				slog.Error("emulation stopped", "error", err)
				return err
			}
			t.render()
			t.screen.Show()
		case <-signals:
			slog.Info("received signal, stopping")
			t.running = false
		}
	}
	return nil
}

func (t *TerminalRenderer) handleInput() {
	for t.running {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			t.handleKey(ev)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

func (t *TerminalRenderer) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		t.running = false
	case tcell.KeyEnter:
		t.emulator.PressKey(joypad.Start)
	case tcell.KeyRight:
		t.emulator.PressKey(joypad.Right)
	case tcell.KeyLeft:
		t.emulator.PressKey(joypad.Left)
	case tcell.KeyUp:
		t.emulator.PressKey(joypad.Up)
	case tcell.KeyDown:
		t.emulator.PressKey(joypad.Down)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a':
			t.emulator.PressKey(joypad.A)
		case 's':
			t.emulator.PressKey(joypad.B)
		case 'q':
			t.emulator.PressKey(joypad.Select)
		}
	}
}

// render blits the framebuffer as half-block characters, two GB pixels per
// terminal row, using the foreground/background colors of one cell.
func (t *TerminalRenderer) render() {
	fb := t.emulator.Frame()
	t.screen.Clear()

	for y := 0; y < video.Height; y += 2 {
		for x := 0; x < video.Width; x++ {
			top := pixelColor(fb, x, y)
			bottom := tcell.ColorBlack
			if y+1 < video.Height {
				bottom = pixelColor(fb, x, y+1)
			}
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			t.screen.SetContent(x, y/2, upperHalfBlock, nil, style)
		}
	}
}

func pixelColor(fb *video.FrameBuffer, x, y int) tcell.Color {
	offset := (y*video.Width + x) * 4
	r := int32(fb.Pixels[offset])
	g := int32(fb.Pixels[offset+1])
	b := int32(fb.Pixels[offset+2])
	return tcell.NewRGBColor(r, g, b)
}
