package egsim

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"os"

	"github.com/pkg/errors"
)

// pngEncoder always requests maximum compression so that identical
// pixel content yields identical files, which the CI check hooks
// compare byte for byte.
var pngEncoder = png.Encoder{CompressionLevel: png.BestCompression}

// EncodePNG returns the image encoded as a PNG. The output is
// deterministic for identical image content.
func (img *Image[C]) EncodePNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := pngEncoder.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(err, "encode png")
	}
	return buf.Bytes(), nil
}

// SavePNG writes the image to a PNG file.
func (img *Image[C]) SavePNG(path string) error {
	data, err := img.EncodePNG()
	if err != nil {
		return err
	}
	return errors.Wrapf(os.WriteFile(path, data, 0o644), "write png %q", path)
}

// ToBase64PNG returns the image as a base64 encoded PNG, for embedding
// in data URLs.
func (img *Image[C]) ToBase64PNG() (string, error) {
	data, err := img.EncodePNG()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// LoadPNG decodes a PNG file into a display, quantizing each pixel to
// C. It exists for comparison and regression workflows, not as a
// general image importer.
func LoadPNG[C Color](path string) (*Display[C], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open png %q", path)
	}
	defer f.Close()

	src, err := png.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decode png %q", path)
	}

	b := src.Bounds()
	d := NewDisplay[C](b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r, g, bl, _ := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			d.Set(x, y, NewColor[C](uint8(r>>8), uint8(g>>8), uint8(bl>>8)))
		}
	}
	return d, nil
}
