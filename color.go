package phantom

import "fmt"

// Color is a 24-bit RGB color in 0xRRGGBB form, as stored in phantom files.
type Color uint32

func (c Color) String() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xffffff)
}

// RGB returns the color's channels.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Palette is an ordered list of colors handed out to new fibers and regions.
type Palette []Color

// At returns the i-th color, wrapping around at the end of the palette. An
// empty palette yields white.
func (p Palette) At(i int) Color {
	if len(p) == 0 {
		return 0xffffff
	}
	i %= len(p)
	if i < 0 {
		i += len(p)
	}
	return p[i]
}

// DefaultPalette is the Phantomas editor palette.
func DefaultPalette() Palette {
	return Palette{
		0xFF1E00, 0xFFB300, 0x1533AD, 0x00BF32, 0xBF4030,
		0xBF9430, 0x2C3D82, 0x248F40, 0xA61300, 0xA67400,
		0x071C71, 0x007C21, 0xFF5640, 0xFFC640, 0x4965D6,
		0x38DF64, 0xFF8373, 0xFFD573, 0x6F83D6, 0x64DF85,
		0xFF5600, 0xFF7C00, 0x04859D, 0x00AA72, 0x60D4AE,
		0xBF6030, 0xBF7630, 0x206876, 0x207F60, 0x5FBDCE,
		0xA63800, 0xA65100, 0x015666, 0x006E4A, 0xFFB773,
		0xFF8040, 0xFF9D40, 0x37B6CE, 0x35D4A0, 0xFFA273,
	}
}
