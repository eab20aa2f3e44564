package egsim

import (
	"fmt"
	"image"
)

// Settings controls how a display is rasterized into an output image.
// Build one with NewSettings; the zero value is not valid.
type Settings struct {
	// Scale is the output pixel block size per display pixel, >= 1.
	Scale int
	// PixelSpacing is the background gap left between adjacent pixel
	// blocks, >= 0.
	PixelSpacing int
	// Theme is applied per pixel before rasterization.
	Theme Theme
	// MaxFPS caps the window refresh rate. It is only used by the
	// presentation shell, never by rasterization.
	MaxFPS int
}

// SettingsOption configures NewSettings.
type SettingsOption func(*settingsBuilder)

type settingsBuilder struct {
	scale        *int
	pixelSpacing *int
	theme        Theme
	maxFPS       int
}

// WithScale sets the pixel scale. A scale of 2 or higher is useful
// for viewing small simulated displays on high DPI screens.
//
// Panics if scale is less than 1.
func WithScale(scale int) SettingsOption {
	if scale < 1 {
		panic(fmt.Sprintf("egsim: scale must be >= 1, got %d", scale))
	}
	return func(b *settingsBuilder) {
		b.scale = &scale
	}
}

// WithPixelSpacing sets the gap between pixel blocks. Most low
// resolution displays have visible gaps between individual pixels;
// a spacing greater than 0 simulates that.
//
// Panics if spacing is negative.
func WithPixelSpacing(spacing int) SettingsOption {
	if spacing < 0 {
		panic(fmt.Sprintf("egsim: pixel spacing must be >= 0, got %d", spacing))
	}
	return func(b *settingsBuilder) {
		b.pixelSpacing = &spacing
	}
}

// WithTheme sets the binary color theme. Because individual pixels of
// small displays are hard to recognize on modern screens, setting a
// theme also defaults the scale to 3 and the pixel spacing to 1 unless
// they were set explicitly.
func WithTheme(t Theme) SettingsOption {
	return func(b *settingsBuilder) {
		b.theme = t
		if b.scale == nil {
			scale := 3
			b.scale = &scale
		}
		if b.pixelSpacing == nil {
			spacing := 1
			b.pixelSpacing = &spacing
		}
	}
}

// WithMaxFPS sets the refresh rate cap used by the presentation shell.
func WithMaxFPS(maxFPS int) SettingsOption {
	return func(b *settingsBuilder) {
		b.maxFPS = maxFPS
	}
}

// NewSettings builds output settings. Without options the result is a
// raw 1:1 mapping: scale 1, no spacing, default theme, 60 FPS.
func NewSettings(opts ...SettingsOption) *Settings {
	b := settingsBuilder{maxFPS: 60}
	for _, opt := range opts {
		opt(&b)
	}

	s := &Settings{
		Scale:        1,
		PixelSpacing: 0,
		Theme:        b.theme,
		MaxFPS:       b.maxFPS,
	}
	if b.scale != nil {
		s.Scale = *b.scale
	}
	if b.pixelSpacing != nil {
		s.PixelSpacing = *b.pixelSpacing
	}
	return s
}

// OutputSize returns the size of the output raster for a display of
// the given size: scale x scale blocks with spacing-wide gutters
// between them, no gutter after the last block.
func (s *Settings) OutputSize(width, height int) (int, int) {
	return outputDimension(width, s.Scale, s.PixelSpacing),
		outputDimension(height, s.Scale, s.PixelSpacing)
}

func outputDimension(d, scale, spacing int) int {
	if d <= 0 {
		return 0
	}
	return d*scale + (d-1)*spacing
}

// OutputToDisplay translates an output raster coordinate to the
// display coordinate of the block that covers it. Used to translate
// mouse positions reported in window coordinates.
func (s *Settings) OutputToDisplay(p image.Point) image.Point {
	pitch := s.pitch()
	return image.Pt(p.X/pitch, p.Y/pitch)
}

// pitch is the distance between the top-left corners of adjacent
// pixel blocks.
func (s *Settings) pitch() int {
	return s.Scale + s.PixelSpacing
}
