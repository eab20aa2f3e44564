// Command imgview loads an image file, scales it onto a simulated
// RGB888 display and shows it in a window. Useful for eyeballing how
// artwork survives a small panel.
package main

import (
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
	flag "github.com/spf13/pflag"
	"golang.org/x/image/draw"

	"egsim"
	"egsim/window"
)

func main() {
	width := flag.Int("width", 240, "Display width in pixels.")
	height := flag.Int("height", 135, "Display height in pixels.")
	scale := flag.Int("scale", 2, "Output pixels per display pixel.")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <image>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	d, err := loadOntoDisplay(flag.Arg(0), *width, *height)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	w := window.New(flag.Arg(0), egsim.NewSettings(egsim.WithScale(*scale)))
	if err := w.ShowStatic(d); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadOntoDisplay decodes the file, letterboxes it into width x height
// and copies the pixels onto a fresh display.
func loadOntoDisplay(path string, width, height int) (*egsim.Display[egsim.RGB888], error) {
	src, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}

	srcW, srcH := src.Bounds().Dx(), src.Bounds().Dy()
	fitW, fitH := width, srcH*width/srcW
	if fitH > height {
		fitW, fitH = srcW*height/srcH, height
	}

	offset := image.Pt((width-fitW)/2, (height-fitH)/2)
	scaled := image.NewRGBA(image.Rect(0, 0, fitW, fitH).Add(offset))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), src, src.Bounds(), draw.Src, nil)

	d := egsim.NewDisplay[egsim.RGB888](width, height)
	b := scaled.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := scaled.At(x, y).RGBA()
			d.Set(x, y, egsim.RGB888{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8)})
		}
	}
	return d, nil
}
