package egsim

import (
	"image"
	"reflect"
	"testing"
)

func TestNewImageIsZeroed(t *testing.T) {
	rgb := NewImage[RGB888](6, 5)
	if !reflect.DeepEqual(rgb.Bytes(), make([]byte, 6*5*3)) {
		t.Fatal("new RGB image is not zeroed")
	}

	gray := NewImage[Gray8](6, 5)
	if !reflect.DeepEqual(gray.Bytes(), make([]byte, 6*5)) {
		t.Fatal("new gray image is not zeroed")
	}
}

func TestImageSetPixel(t *testing.T) {
	img := NewImage[RGB888](4, 6)

	img.SetPixel(0, 0, RGB888{0xFF, 0x00, 0x00})
	img.SetPixel(3, 0, RGB888{0x00, 0xFF, 0x00})
	img.SetPixel(0, 5, RGB888{0x00, 0x00, 0xFF})
	img.SetPixel(3, 5, RGB888{0x12, 0x34, 0x56})
	// Out of bounds writes are dropped.
	img.SetPixel(-1, -1, RGB888{0xFF, 0xFF, 0xFF})
	img.SetPixel(0, 10, RGB888{0xFF, 0xFF, 0xFF})
	img.SetPixel(10, 0, RGB888{0xFF, 0xFF, 0xFF})

	want := make([]byte, 4*6*3)
	copy(want[0:], []byte{0xFF, 0x00, 0x00})
	copy(want[3*3:], []byte{0x00, 0xFF, 0x00})
	copy(want[5*4*3:], []byte{0x00, 0x00, 0xFF})
	copy(want[(5*4+3)*3:], []byte{0x12, 0x34, 0x56})

	if !reflect.DeepEqual(img.Bytes(), want) {
		t.Fatalf("data=%v, want %v", img.Bytes(), want)
	}
}

func TestImageFillSolidClips(t *testing.T) {
	img := NewImage[Gray8](4, 6)
	img.FillSolid(image.Rect(2, 3, 12, 23), Gray8(0xFF))

	want := []byte{
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0xFF, 0xFF,
		0x00, 0x00, 0xFF, 0xFF,
		0x00, 0x00, 0xFF, 0xFF,
	}
	if !reflect.DeepEqual(img.Bytes(), want) {
		t.Fatalf("data=%v, want %v", img.Bytes(), want)
	}
}

func TestImageFillSolidLargeMatchesSmall(t *testing.T) {
	// The row replication fast path kicks in at 16x16; both paths must
	// produce identical bytes.
	rect := image.Rect(3, 2, 3+20, 2+20)

	fast := NewImage[RGB888](32, 32)
	fast.FillSolid(rect, RGB888{1, 2, 3})

	slow := NewImage[RGB888](32, 32)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			slow.SetPixel(x, y, RGB888{1, 2, 3})
		}
	}

	if !reflect.DeepEqual(fast.Bytes(), slow.Bytes()) {
		t.Fatal("fast fill differs from per-pixel fill")
	}
}

func TestDrawDisplayScaleTwo(t *testing.T) {
	d := NewDisplay[Mono](2, 2)
	d.Set(0, 0, true)

	img := RenderRGB(d, NewSettings(WithScale(2)))
	if img.Width() != 4 || img.Height() != 4 {
		t.Fatalf("size=%dx%d, want 4x4", img.Width(), img.Height())
	}

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := RGB888{}
			if x < 2 && y < 2 {
				want = RGB888{255, 255, 255}
			}
			i := (y*4 + x) * 3
			got := RGB888{img.Bytes()[i], img.Bytes()[i+1], img.Bytes()[i+2]}
			if got != want {
				t.Fatalf("pixel (%d,%d)=%v, want %v", x, y, got, want)
			}
		}
	}
}

func TestDrawDisplaySpacingLeavesGutters(t *testing.T) {
	// Two adjacent "on" pixels: their blocks must be separated by
	// exactly one background column.
	d := NewDisplay[Mono](2, 1)
	d.Set(0, 0, true)
	d.Set(1, 0, true)

	img := RenderRGB(d, NewSettings(WithScale(2), WithPixelSpacing(1)))
	if img.Width() != 5 || img.Height() != 2 {
		t.Fatalf("size=%dx%d, want 5x2", img.Width(), img.Height())
	}

	wantRow := []RGB888{
		{255, 255, 255}, {255, 255, 255}, {}, {255, 255, 255}, {255, 255, 255},
	}
	for y := 0; y < 2; y++ {
		for x, want := range wantRow {
			i := (y*5 + x) * 3
			got := RGB888{img.Bytes()[i], img.Bytes()[i+1], img.Bytes()[i+2]}
			if got != want {
				t.Fatalf("pixel (%d,%d)=%v, want %v", x, y, got, want)
			}
		}
	}
}

func TestDrawDisplayThemedBackground(t *testing.T) {
	// The gutters and "off" blocks carry the theme's off color.
	d := NewDisplay[Mono](2, 1)
	d.Set(0, 0, true)

	theme := CustomTheme(RGB888{1, 1, 1}, RGB888{2, 2, 2})
	img := RenderRGB(d, NewSettings(WithTheme(theme), WithScale(1), WithPixelSpacing(1)))

	// 2 pixels at scale 1 with spacing 1: on, gutter, off.
	want := []byte{2, 2, 2, 1, 1, 1, 1, 1, 1}
	if !reflect.DeepEqual(img.Bytes(), want) {
		t.Fatalf("data=%v, want %v", img.Bytes(), want)
	}
}

func TestDrawDisplayComposite(t *testing.T) {
	left := NewDisplay[Mono](2, 2)
	left.FillSolid(left.Bounds(), true)
	right := NewDisplay[Mono](2, 2)

	img := NewImage[Gray8](5, 2)
	img.Clear(Gray8(0x80))
	s := NewSettings()
	img.DrawDisplay(left, image.Pt(0, 0), s)
	img.DrawDisplay(right, image.Pt(3, 0), s)

	want := []byte{
		0xFF, 0xFF, 0x80, 0x00, 0x00,
		0xFF, 0xFF, 0x80, 0x00, 0x00,
	}
	if !reflect.DeepEqual(img.Bytes(), want) {
		t.Fatalf("data=%v, want %v", img.Bytes(), want)
	}
}

func TestUpdateDisplayMatchesFullRedraw(t *testing.T) {
	d := NewDisplay[Mono](3, 3)
	d.Set(0, 0, true)

	s := NewSettings(WithScale(2), WithPixelSpacing(1), WithTheme(ThemeOLEDBlue))
	width, height := s.OutputSize(3, 3)

	img := NewImage[RGB888](width, height)
	img.DrawDisplay(d, image.Point{}, s)

	// Mutate the source and refresh incrementally.
	d.Set(0, 0, false)
	d.Set(2, 2, true)
	img.UpdateDisplay(d, image.Point{}, s)

	if !reflect.DeepEqual(img.Bytes(), RenderRGB(d, s).Bytes()) {
		t.Fatal("incremental update differs from full redraw")
	}
}

func TestUpdateDisplayMismatchedRasterPanics(t *testing.T) {
	d := NewDisplay[Mono](4, 4)
	img := NewImage[RGB888](2, 2)

	defer func() {
		if recover() == nil {
			t.Fatal("update onto a too-small raster should panic")
		}
	}()
	img.UpdateDisplay(d, image.Point{}, NewSettings())
}

func TestDrawDisplayClipsToImage(t *testing.T) {
	d := NewDisplay[Mono](4, 1)
	d.FillSolid(d.Bounds(), true)

	img := NewImage[Gray8](2, 1)
	img.DrawDisplay(d, image.Pt(-1, 0), NewSettings())

	want := []byte{0xFF, 0xFF}
	if !reflect.DeepEqual(img.Bytes(), want) {
		t.Fatalf("data=%v, want %v", img.Bytes(), want)
	}
}
