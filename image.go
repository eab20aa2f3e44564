package egsim

import (
	"fmt"
	"image"
	"image/color"
)

// Source is a readable pixel buffer that can be rasterized into an
// output image. Display implements it for every color type.
type Source interface {
	Width() int
	Height() int
	// RGBAt returns the canonical RGB color of the pixel at (x, y).
	RGBAt(x, y int) RGB888
}

// Image is a rasterized output buffer in the pixel layout of C: one
// byte per pixel for Gray8, three bytes (R, G, B) for RGB888. It is
// the result of applying Settings to one or more displays and is what
// gets blitted to a window or encoded as a PNG.
//
// An Image never resizes; create a new one when the settings or the
// source size change.
type Image[C OutputColor] struct {
	width  int
	height int
	data   []byte

	// rowBuf is reused by FillSolid for large areas.
	rowBuf []byte
}

var _ image.Image = (*Image[RGB888])(nil)
var _ image.Image = (*Image[Gray8])(nil)

// NewImage creates a zero-filled output image.
//
// Panics if width or height is negative.
func NewImage[C OutputColor](width, height int) *Image[C] {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("egsim: invalid image size %dx%d", width, height))
	}
	return &Image[C]{
		width:  width,
		height: height,
		data:   make([]byte, width*height*bytesPerPixel[C]()),
	}
}

// RenderRGB rasterizes a source into a new RGB output image sized by
// the settings.
func RenderRGB(src Source, s *Settings) *Image[RGB888] {
	width, height := s.OutputSize(src.Width(), src.Height())
	img := NewImage[RGB888](width, height)
	img.DrawDisplay(src, image.Point{}, s)
	return img
}

func bytesPerPixel[C OutputColor]() int {
	var zero C
	return zero.BitsPerPixel() / 8
}

// putPixelBytes writes the raw layout of c at the start of dst.
func putPixelBytes[C OutputColor](dst []byte, c C) {
	switch c := any(c).(type) {
	case Gray8:
		dst[0] = uint8(c)
	case RGB888:
		dst[0], dst[1], dst[2] = c.R, c.G, c.B
	}
}

// Width returns the image width in pixels.
func (img *Image[C]) Width() int { return img.width }

// Height returns the image height in pixels.
func (img *Image[C]) Height() int { return img.height }

// Bytes returns the underlying pixel buffer. The slice aliases the
// image; treat it as read-only.
func (img *Image[C]) Bytes() []byte { return img.data }

// Bounds implements image.Image.
func (img *Image[C]) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.width, img.height)
}

// ColorModel implements image.Image. Reporting color.GrayModel for
// Gray8 images makes the stdlib PNG encoder emit a grayscale file.
func (img *Image[C]) ColorModel() color.Model {
	var zero C
	if _, ok := any(zero).(Gray8); ok {
		return color.GrayModel
	}
	return color.RGBAModel
}

// At implements image.Image.
func (img *Image[C]) At(x, y int) color.Color {
	var zero C
	_, gray := any(zero).(Gray8)

	if x < 0 || x >= img.width || y < 0 || y >= img.height {
		if gray {
			return color.Gray{}
		}
		return color.RGBA{A: 255}
	}

	i := (y*img.width + x) * bytesPerPixel[C]()
	if gray {
		return color.Gray{Y: img.data[i]}
	}
	return color.RGBA{R: img.data[i], G: img.data[i+1], B: img.data[i+2], A: 255}
}

// SetPixel overwrites the pixel at (x, y). Out-of-bounds writes are
// silently dropped.
func (img *Image[C]) SetPixel(x, y int, c C) {
	if x < 0 || x >= img.width || y < 0 || y >= img.height {
		return
	}
	i := (y*img.width + x) * bytesPerPixel[C]()
	putPixelBytes(img.data[i:], c)
}

// Clear fills the whole image with a color.
func (img *Image[C]) Clear(c C) {
	img.FillSolid(img.Bounds(), c)
}

// FillSolid fills the intersection of r and the image bounds with a
// color. Large areas are filled by building one row of repeated color
// bytes and copying it into every destination row; small areas are
// written pixel by pixel. Both paths produce identical bytes.
func (img *Image[C]) FillSolid(r image.Rectangle, c C) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return
	}

	bpp := bytesPerPixel[C]()
	var px [3]byte
	putPixelBytes(px[:bpp], c)

	// The thresholds mirror the point where row replication starts to
	// beat the short inner loop.
	large := r.Dx() >= 16 && r.Dy() >= 16

	if large {
		img.rowBuf = img.rowBuf[:0]
		for i := 0; i < r.Dx(); i++ {
			img.rowBuf = append(img.rowBuf, px[:bpp]...)
		}
	}

	stride := img.width * bpp
	xStart := r.Min.X * bpp
	xEnd := r.Max.X * bpp

	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := img.data[y*stride+xStart : y*stride+xEnd]
		if large {
			copy(row, img.rowBuf)
			continue
		}
		for i := 0; i < len(row); i += bpp {
			copy(row[i:i+bpp], px[:bpp])
		}
	}
}

// DrawDisplay rasterizes a source into the image at the given pixel
// offset: the source's output area is first filled with the themed
// background, then every source pixel is expanded into a scale x scale
// block, leaving PixelSpacing background pixels between blocks. The
// drawing is clipped to the image, so several sources can be composed
// into one image at caller-chosen offsets.
func (img *Image[C]) DrawDisplay(src Source, offset image.Point, s *Settings) {
	width, height := s.OutputSize(src.Width(), src.Height())
	bg := s.Theme.Convert(RGB888{})
	img.FillSolid(image.Rect(0, 0, width, height).Add(offset), NewColor[C](bg.R, bg.G, bg.B))

	img.drawBlocks(src, offset, s)
}

// UpdateDisplay refreshes the pixel blocks for a source that was
// previously drawn with the same offset and settings, skipping the
// background fill. The gutters between blocks are never touched, so
// they keep their background color from the initial DrawDisplay.
//
// Panics if the source's output area does not fit the image; an
// incremental update onto a mismatched raster is a caller bug.
func (img *Image[C]) UpdateDisplay(src Source, offset image.Point, s *Settings) {
	width, height := s.OutputSize(src.Width(), src.Height())
	area := image.Rect(0, 0, width, height).Add(offset)
	if !area.In(img.Bounds()) {
		panic(fmt.Sprintf("egsim: display output area %v does not fit %dx%d image",
			area, img.width, img.height))
	}

	img.drawBlocks(src, offset, s)
}

func (img *Image[C]) drawBlocks(src Source, offset image.Point, s *Settings) {
	width, height := src.Width(), src.Height()

	if s.Scale == 1 && s.PixelSpacing == 0 {
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				img.SetPixel(offset.X+x, offset.Y+y, img.themedPixel(src, x, y, s))
			}
		}
		return
	}

	pitch := s.pitch()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			block := image.Rect(0, 0, s.Scale, s.Scale).
				Add(offset).
				Add(image.Pt(x*pitch, y*pitch))
			img.FillSolid(block, img.themedPixel(src, x, y, s))
		}
	}
}

func (img *Image[C]) themedPixel(src Source, x, y int, s *Settings) C {
	themed := s.Theme.Convert(src.RGBAt(x, y))
	return NewColor[C](themed.R, themed.G, themed.B)
}
