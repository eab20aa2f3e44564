package egsim

import (
	"encoding/binary"
	"fmt"
)

// Packed raw export. These serializations are independent of
// rasterization: they write the display buffer at its native bit
// depth, row-major, for firmware and hardware bringup workflows.
//
// Colors narrower than a byte are packed most significant pixel
// first. Every row starts on a fresh byte boundary; a final partial
// byte in a row is padded with zero bits in the low-order positions.
// Colors of a byte or wider occupy bits/8 bytes per pixel in the
// requested byte order.

// ToBEBytes returns the packed big-endian serialization.
func (d *Display[C]) ToBEBytes() []byte {
	return d.packBytes(binary.BigEndian)
}

// ToLEBytes returns the packed little-endian serialization.
func (d *Display[C]) ToLEBytes() []byte {
	return d.packBytes(binary.LittleEndian)
}

// ToNEBytes returns the packed serialization in the byte order of the
// host.
func (d *Display[C]) ToNEBytes() []byte {
	return d.packBytes(binary.NativeEndian)
}

func (d *Display[C]) packBytes(order binary.ByteOrder) []byte {
	var zero C
	bits := zero.BitsPerPixel()

	if bits < 8 {
		return d.packSubByte(bits)
	}

	out := make([]byte, 0, d.width*d.height*bits/8)
	for _, p := range d.pixels {
		raw := rawPixel(p)
		switch bits {
		case 8:
			out = append(out, byte(raw))
		case 16:
			var buf [2]byte
			order.PutUint16(buf[:], uint16(raw))
			out = append(out, buf[:]...)
		case 24:
			var buf [4]byte
			order.PutUint32(buf[:], raw)
			if orderIsLittle(order) {
				out = append(out, buf[0], buf[1], buf[2])
			} else {
				out = append(out, buf[1], buf[2], buf[3])
			}
		default:
			panic(fmt.Sprintf("egsim: unsupported pixel width %d", bits))
		}
	}
	return out
}

// packSubByte packs colors narrower than a byte, MSB first, one fresh
// byte per row.
func (d *Display[C]) packSubByte(bits int) []byte {
	bytesPerRow := (d.width*bits + 7) / 8
	out := make([]byte, 0, bytesPerRow*d.height)

	for y := 0; y < d.height; y++ {
		var cur byte
		filled := 0
		for x := 0; x < d.width; x++ {
			cur = cur<<bits | byte(rawPixel(d.pixels[y*d.width+x]))
			filled += bits
			if filled == 8 {
				out = append(out, cur)
				cur, filled = 0, 0
			}
		}
		if filled > 0 {
			out = append(out, cur<<(8-filled))
		}
	}
	return out
}

func orderIsLittle(order binary.ByteOrder) bool {
	return order.Uint16([]byte{1, 0}) == 1
}
