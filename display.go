package egsim

import (
	"fmt"
	"image"
	"image/color"
	"sync/atomic"

	"tinygo.org/x/drivers"
)

// nextDisplayID numbers displays so a multi-display window can route
// events back to the right display.
var nextDisplayID uint32

// Display is a simulated display with a dense pixel buffer of color
// type C. It implements drivers.Displayer, so everything that draws
// onto a hardware display driver (tinyfont, tinydraw, ...) draws onto
// a Display unchanged.
//
// A Display is not safe for concurrent use. The caller that draws must
// also be the one that rasterizes, or serialize the two externally.
type Display[C Color] struct {
	width  int
	height int
	pixels []C
	id     uint32
}

var _ drivers.Displayer = (*Display[Mono])(nil)
var _ Source = (*Display[Mono])(nil)

// Pixel pairs a point with a color for batch drawing.
type Pixel[C Color] struct {
	Point image.Point
	Color C
}

// NewDisplay creates a display filled with black.
func NewDisplay[C Color](width, height int) *Display[C] {
	return NewDisplayWithColor(width, height, NewColor[C](0, 0, 0))
}

// NewDisplayWithColor creates a display filled with the given color.
// A zero width or height yields a degenerate but valid empty display.
//
// Panics if width or height is negative.
func NewDisplayWithColor[C Color](width, height int, fill C) *Display[C] {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("egsim: invalid display size %dx%d", width, height))
	}

	pixels := make([]C, width*height)
	for i := range pixels {
		pixels[i] = fill
	}

	return &Display[C]{
		width:  width,
		height: height,
		pixels: pixels,
		id:     atomic.AddUint32(&nextDisplayID, 1),
	}
}

// Width returns the display width in pixels.
func (d *Display[C]) Width() int { return d.width }

// Height returns the display height in pixels.
func (d *Display[C]) Height() int { return d.height }

// Bounds returns the display bounds with the origin at (0, 0).
func (d *Display[C]) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.width, d.height)
}

// ID returns a process-unique identifier for this display.
func (d *Display[C]) ID() uint32 { return d.id }

func (d *Display[C]) index(x, y int) (int, bool) {
	if x < 0 || x >= d.width || y < 0 || y >= d.height {
		return 0, false
	}
	return y*d.width + x, true
}

// GetPixel returns the color of the pixel at (x, y).
//
// Panics if the point is outside the display. Out-of-bounds reads are
// a caller bug; pre-check against Bounds when unsure.
func (d *Display[C]) GetPixel(x, y int) C {
	i, ok := d.index(x, y)
	if !ok {
		panic(fmt.Sprintf("egsim: get pixel (%d, %d) outside of %dx%d display", x, y, d.width, d.height))
	}
	return d.pixels[i]
}

// Set overwrites the pixel at (x, y). Out-of-bounds writes are
// silently dropped; drawing primitives routinely extend beyond the
// display and are clipped here.
func (d *Display[C]) Set(x, y int, c C) {
	if i, ok := d.index(x, y); ok {
		d.pixels[i] = c
	}
}

// DrawPixels applies a batch of pixel writes in order. Out-of-bounds
// pixels are dropped; for duplicate points the last write wins.
func (d *Display[C]) DrawPixels(pixels []Pixel[C]) {
	for _, p := range pixels {
		d.Set(p.Point.X, p.Point.Y, p.Color)
	}
}

// FillSolid fills the intersection of r and the display bounds with a
// color. Pixels outside r are left unchanged.
func (d *Display[C]) FillSolid(r image.Rectangle, c C) {
	r = r.Intersect(d.Bounds())
	if r.Empty() {
		return
	}

	// Fill the first row pixel by pixel, then replicate it.
	first := d.pixels[r.Min.Y*d.width+r.Min.X : r.Min.Y*d.width+r.Max.X]
	for i := range first {
		first[i] = c
	}
	for y := r.Min.Y + 1; y < r.Max.Y; y++ {
		copy(d.pixels[y*d.width+r.Min.X:y*d.width+r.Max.X], first)
	}
}

// RGBAt returns the canonical RGB color of the pixel at (x, y).
//
// Panics if the point is outside the display.
func (d *Display[C]) RGBAt(x, y int) RGB888 {
	return d.GetPixel(x, y).RGB()
}

// Size implements drivers.Displayer.
func (d *Display[C]) Size() (x, y int16) {
	return int16(d.width), int16(d.height)
}

// SetPixel implements drivers.Displayer. The color is quantized to C;
// out-of-bounds writes are dropped.
func (d *Display[C]) SetPixel(x, y int16, c color.RGBA) {
	d.Set(int(x), int(y), NewColor[C](c.R, c.G, c.B))
}

// Display implements drivers.Displayer. The simulated buffer has no
// transfer step, so this is a no-op.
func (d *Display[C]) Display() error { return nil }

// FillRectangle fills a rectangle with a color, clipped to the
// display. It mirrors the bulk-fill entry point of hardware display
// drivers and returns an error for a negative size, matching their
// contract.
func (d *Display[C]) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("egsim: negative fill rectangle %dx%d", width, height)
	}
	d.FillSolid(image.Rect(int(x), int(y), int(x)+int(width), int(y)+int(height)), NewColor[C](c.R, c.G, c.B))
	return nil
}

// Diff compares two displays of identical size and returns a
// monochrome mask that is "on" exactly where they differ, or nil when
// the displays are identical.
//
// Panics if the sizes differ.
func (d *Display[C]) Diff(other *Display[C]) *Display[Mono] {
	if d.width != other.width || d.height != other.height {
		panic(fmt.Sprintf("egsim: diff of differently sized displays (%dx%d and %dx%d)",
			d.width, d.height, other.width, other.height))
	}

	var mask *Display[Mono]
	for i := range d.pixels {
		if d.pixels[i] != other.pixels[i] {
			if mask == nil {
				mask = NewDisplay[Mono](d.width, d.height)
			}
			mask.pixels[i] = true
		}
	}
	return mask
}

// ToRGBImage rasterizes the display into a new RGB output image.
func (d *Display[C]) ToRGBImage(s *Settings) *Image[RGB888] {
	return RenderRGB(d, s)
}

// ToGrayImage rasterizes the display into a new grayscale output
// image.
func (d *Display[C]) ToGrayImage(s *Settings) *Image[Gray8] {
	width, height := s.OutputSize(d.width, d.height)
	img := NewImage[Gray8](width, height)
	img.DrawDisplay(d, image.Point{}, s)
	return img
}
