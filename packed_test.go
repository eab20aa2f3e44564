package egsim

import (
	"encoding/binary"
	"image"
	"reflect"
	"testing"
)

func TestPackMonoRowPadding(t *testing.T) {
	// Width 9 forces a second byte per row with 7 zero padding bits.
	d := NewDisplay[Mono](9, 2)
	pattern := []bool{true, false, false, false, false, false, false, true, false}
	for y := 0; y < 2; y++ {
		for x, on := range pattern {
			d.Set(x, y, Mono(on))
		}
	}

	want := []byte{0b10000001, 0b00000000, 0b10000001, 0b00000000}
	for _, got := range [][]byte{d.ToBEBytes(), d.ToLEBytes(), d.ToNEBytes()} {
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("packed=%08b, want %08b", got, want)
		}
	}
}

func TestPackGray4(t *testing.T) {
	d := NewDisplay[Gray4](3, 1)
	d.DrawPixels([]Pixel[Gray4]{
		{image.Pt(0, 0), 0xA},
		{image.Pt(1, 0), 0xB},
		{image.Pt(2, 0), 0xC},
	})

	want := []byte{0xAB, 0xC0}
	if got := d.ToBEBytes(); !reflect.DeepEqual(got, want) {
		t.Fatalf("packed=%#x, want %#x", got, want)
	}
}

func TestPackGray2(t *testing.T) {
	// Five 2 bit pixels: one full byte plus a padded one.
	d := NewDisplay[Gray2](5, 1)
	for x, v := range []Gray2{0b11, 0b01, 0b10, 0b00, 0b11} {
		d.Set(x, 0, v)
	}

	want := []byte{0b11011000, 0b11000000}
	if got := d.ToBEBytes(); !reflect.DeepEqual(got, want) {
		t.Fatalf("packed=%08b, want %08b", got, want)
	}
}

func TestPackGray8(t *testing.T) {
	d := NewDisplay[Gray8](2, 2)
	d.DrawPixels([]Pixel[Gray8]{
		{image.Pt(0, 0), 1},
		{image.Pt(1, 0), 2},
		{image.Pt(0, 1), 3},
		{image.Pt(1, 1), 4},
	})

	want := []byte{1, 2, 3, 4}
	for _, got := range [][]byte{d.ToBEBytes(), d.ToLEBytes(), d.ToNEBytes()} {
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("packed=%v, want %v", got, want)
		}
	}
}

func TestPackRGB565ByteOrders(t *testing.T) {
	d := NewDisplay[RGB565](1, 1)
	d.Set(0, 0, RGB565(0x1234))

	if got := d.ToBEBytes(); !reflect.DeepEqual(got, []byte{0x12, 0x34}) {
		t.Fatalf("be=%#x", got)
	}
	if got := d.ToLEBytes(); !reflect.DeepEqual(got, []byte{0x34, 0x12}) {
		t.Fatalf("le=%#x", got)
	}
}

func TestPackRGB888ByteOrders(t *testing.T) {
	d := NewDisplay[RGB888](1, 1)
	d.Set(0, 0, RGB888{0x12, 0x34, 0x56})

	if got := d.ToBEBytes(); !reflect.DeepEqual(got, []byte{0x12, 0x34, 0x56}) {
		t.Fatalf("be=%#x", got)
	}
	if got := d.ToLEBytes(); !reflect.DeepEqual(got, []byte{0x56, 0x34, 0x12}) {
		t.Fatalf("le=%#x", got)
	}
}

func TestPackNativeMatchesHostOrder(t *testing.T) {
	d := NewDisplay[RGB565](1, 1)
	d.Set(0, 0, RGB565(0xBEEF))

	want := d.ToBEBytes()
	if binary.NativeEndian.Uint16([]byte{1, 0}) == 1 {
		want = d.ToLEBytes()
	}
	if got := d.ToNEBytes(); !reflect.DeepEqual(got, want) {
		t.Fatalf("ne=%#x, want %#x", got, want)
	}
}
