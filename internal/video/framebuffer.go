package video

const (
	Width  = 160
	Height = 144
)

// Shade is one of the four fixed DMG grays a 2-bit color index maps to.
type Shade uint8

const (
	ShadeWhite Shade = iota
	ShadeLight
	ShadeDark
	ShadeBlack
)

var shadeRGB = [4][3]byte{
	ShadeWhite: {0xFF, 0xFF, 0xFF},
	ShadeLight: {0xA8, 0xA8, 0xA8},
	ShadeDark:  {0x54, 0x54, 0x54},
	ShadeBlack: {0x00, 0x00, 0x00},
}

// FrameBuffer is the 160x144 RGBA surface the core hands to the presenter
// once per completed frame (spec.md §6). Row-major, top-left origin, 4
// channels per pixel.
type FrameBuffer struct {
	Pixels []byte
}

// NewFrameBuffer returns a framebuffer cleared to white.
func NewFrameBuffer() *FrameBuffer {
	fb := &FrameBuffer{Pixels: make([]byte, Width*Height*4)}
	fb.Fill(ShadeWhite)
	return fb
}

// SetPixel paints the shade at (x, y).
func (fb *FrameBuffer) SetPixel(x, y int, shade Shade) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return
	}
	rgb := shadeRGB[shade]
	offset := (y*Width + x) * 4
	fb.Pixels[offset] = rgb[0]
	fb.Pixels[offset+1] = rgb[1]
	fb.Pixels[offset+2] = rgb[2]
	fb.Pixels[offset+3] = 0xFF
}

// Fill paints every pixel the given shade.
func (fb *FrameBuffer) Fill(shade Shade) {
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			fb.SetPixel(x, y, shade)
		}
	}
}
