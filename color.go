package egsim

import "image/color"

// Mono is a 1 bit per pixel on/off color. The zero value is "off".
type Mono bool

// Gray2 is a 2 bit grayscale color stored in the low bits.
type Gray2 uint8

// Gray4 is a 4 bit grayscale color stored in the low bits.
type Gray4 uint8

// Gray8 is an 8 bit grayscale color.
type Gray8 uint8

// RGB565 is a 16 bit color packed as rrrrrggggggbbbbb.
type RGB565 uint16

// RGB888 is the canonical 24 bit RGB color. All other color types
// define a conversion to RGB888, which themes and output images
// operate on.
type RGB888 struct {
	R, G, B uint8
}

// Color is the set of pixel color types a Display can store. Every
// color has a fixed bit width and a deterministic conversion to
// RGB888.
type Color interface {
	Mono | Gray2 | Gray4 | Gray8 | RGB565 | RGB888

	BitsPerPixel() int
	RGB() RGB888
}

// OutputColor is the subset of colors an output image can be
// rasterized into.
type OutputColor interface {
	Gray8 | RGB888

	BitsPerPixel() int
	RGB() RGB888
}

// BitsPerPixel returns 1.
func (c Mono) BitsPerPixel() int { return 1 }

// RGB returns white for "on" and black for "off".
func (c Mono) RGB() RGB888 {
	if c {
		return RGB888{255, 255, 255}
	}
	return RGB888{}
}

// BitsPerPixel returns 2.
func (c Gray2) BitsPerPixel() int { return 2 }

// RGB expands the 2 bit value over the full 8 bit range.
func (c Gray2) RGB() RGB888 {
	v := uint8(uint16(c&0x03) * 255 / 3)
	return RGB888{v, v, v}
}

// BitsPerPixel returns 4.
func (c Gray4) BitsPerPixel() int { return 4 }

// RGB expands the 4 bit value over the full 8 bit range.
func (c Gray4) RGB() RGB888 {
	v := uint8(uint16(c&0x0F) * 255 / 15)
	return RGB888{v, v, v}
}

// BitsPerPixel returns 8.
func (c Gray8) BitsPerPixel() int { return 8 }

// RGB returns the gray value on all three channels.
func (c Gray8) RGB() RGB888 {
	return RGB888{uint8(c), uint8(c), uint8(c)}
}

// BitsPerPixel returns 16.
func (c RGB565) BitsPerPixel() int { return 16 }

// RGB expands the 5/6/5 bit channels over the full 8 bit range.
func (c RGB565) RGB() RGB888 {
	r := (uint16(c) >> 11) & 0x1F
	g := (uint16(c) >> 5) & 0x3F
	b := uint16(c) & 0x1F

	return RGB888{
		R: uint8((r * 255) / 31),
		G: uint8((g * 255) / 63),
		B: uint8((b * 255) / 31),
	}
}

// BitsPerPixel returns 24.
func (c RGB888) BitsPerPixel() int { return 24 }

// RGB returns c unchanged.
func (c RGB888) RGB() RGB888 { return c }

// NewColor returns the C color for the given 8 bit RGB channels,
// quantizing to the bit width of C. Mono treats any non-black input
// as "on", matching the binary classification used by themes.
func NewColor[C Color](r, g, b uint8) C {
	var c C
	switch p := any(&c).(type) {
	case *Mono:
		*p = Mono(r != 0 || g != 0 || b != 0)
	case *Gray2:
		*p = Gray2(gray8(r, g, b) >> 6)
	case *Gray4:
		*p = Gray4(gray8(r, g, b) >> 4)
	case *Gray8:
		*p = Gray8(gray8(r, g, b))
	case *RGB565:
		*p = RGB565(uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3))
	case *RGB888:
		*p = RGB888{r, g, b}
	}
	return c
}

// gray8 converts RGB channels to a gray value using the stdlib
// color.Gray weights.
func gray8(r, g, b uint8) uint8 {
	return color.GrayModel.Convert(color.RGBA{R: r, G: g, B: b, A: 255}).(color.Gray).Y
}

// rawPixel returns the packed bit representation of a color, in the
// low bits of the result.
func rawPixel[C Color](c C) uint32 {
	switch c := any(c).(type) {
	case Mono:
		if c {
			return 1
		}
		return 0
	case Gray2:
		return uint32(c & 0x03)
	case Gray4:
		return uint32(c & 0x0F)
	case Gray8:
		return uint32(c)
	case RGB565:
		return uint32(c)
	case RGB888:
		return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
	}
	return 0
}
