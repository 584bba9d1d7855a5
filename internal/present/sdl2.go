//go:build sdl2

package present

import (
	"fmt"
	"log/slog"

	"github.com/valerio/dmgcore/internal/gbcore"
	"github.com/valerio/dmgcore/internal/joypad"
	"github.com/valerio/dmgcore/internal/video"
	"github.com/veandco/go-sdl2/sdl"
)

const pixelScale = 3

// SDL2Renderer presents the framebuffer in a native window. Building it
// requires SDL2 development libraries; default builds skip it in favor of
// the terminal renderer (see the sdl2 build tag).
type SDL2Renderer struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	emulator *gbcore.Emulator
	running  bool
}

// NewSDL2Renderer opens a window sized to the Game Boy screen scaled by
// pixelScale.
func NewSDL2Renderer(emu *gbcore.Emulator) (*SDL2Renderer, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("failed to initialize SDL2: %w", err)
	}

	window, err := sdl.CreateWindow(
		"dmgcore",
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		video.Width*pixelScale, video.Height*pixelScale,
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_RGBA32, sdl.TEXTUREACCESS_STREAMING, video.Width, video.Height)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("failed to create texture: %w", err)
	}

	return &SDL2Renderer{window: window, renderer: renderer, texture: texture, emulator: emu, running: true}, nil
}

// Run drives the emulator, presenting one texture update per completed
// frame, until the window is closed.
func (s *SDL2Renderer) Run() error {
	defer s.close()

	for s.running {
		s.pumpEvents()
		if !s.running {
			break
		}
		if err := s.emulator.RunUntilFrame(); err != nil {
			slog.Error("emulation stopped", "error", err)
			return err
		}
		s.present()
	}
	return nil
}

func (s *SDL2Renderer) pumpEvents() {
	for {
		ev := sdl.PollEvent()
		if ev == nil {
			return
		}
		switch e := ev.(type) {
		case *sdl.QuitEvent:
			s.running = false
		case *sdl.KeyboardEvent:
			s.handleKey(e)
		}
	}
}

func (s *SDL2Renderer) handleKey(e *sdl.KeyboardEvent) {
	if e.Type != sdl.KEYDOWN {
		return
	}
	switch e.Keysym.Sym {
	case sdl.K_ESCAPE:
		s.running = false
	case sdl.K_RETURN:
		s.emulator.PressKey(joypad.Start)
	case sdl.K_RIGHT:
		s.emulator.PressKey(joypad.Right)
	case sdl.K_LEFT:
		s.emulator.PressKey(joypad.Left)
	case sdl.K_UP:
		s.emulator.PressKey(joypad.Up)
	case sdl.K_DOWN:
		s.emulator.PressKey(joypad.Down)
	case sdl.K_a:
		s.emulator.PressKey(joypad.A)
	case sdl.K_s:
		s.emulator.PressKey(joypad.B)
	case sdl.K_q:
		s.emulator.PressKey(joypad.Select)
	}
}

func (s *SDL2Renderer) present() {
	fb := s.emulator.Frame()
	s.texture.Update(nil, fb.Pixels, video.Width*4)
	s.renderer.Copy(s.texture, nil, nil)
	s.renderer.Present()
}

func (s *SDL2Renderer) close() {
	s.texture.Destroy()
	s.renderer.Destroy()
	s.window.Destroy()
	sdl.Quit()
}
