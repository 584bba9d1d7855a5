//go:build !sdl2

package present

import (
	"fmt"

	"github.com/valerio/dmgcore/internal/gbcore"
)

// SDL2Renderer stub for builds without the sdl2 tag (and without SDL2
// development libraries installed).
type SDL2Renderer struct{}

// NewSDL2Renderer always fails on this build; rebuild with -tags sdl2.
func NewSDL2Renderer(emu *gbcore.Emulator) (*SDL2Renderer, error) {
	return nil, fmt.Errorf("SDL2 renderer not available - rebuild with -tags sdl2 and install SDL2 development libraries")
}

// Run never executes on this build.
func (s *SDL2Renderer) Run() error {
	return fmt.Errorf("SDL2 renderer not available")
}
