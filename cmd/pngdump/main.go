// Command pngdump renders a test card through the simulator pipeline
// and writes it as a PNG, without opening a window. With --base64 it
// prints an HTML img tag with the PNG inlined as a data URL instead.
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"egsim"
)

var themes = map[string]egsim.Theme{
	"default":    egsim.ThemeDefault,
	"inverted":   egsim.ThemeInverted,
	"lcd-white":  egsim.ThemeLCDWhite,
	"lcd-green":  egsim.ThemeLCDGreen,
	"lcd-blue":   egsim.ThemeLCDBlue,
	"oled-white": egsim.ThemeOLEDWhite,
	"oled-blue":  egsim.ThemeOLEDBlue,
}

func main() {
	out := flag.StringP("out", "o", "testcard.png", "Output PNG path.")
	scale := flag.Int("scale", 1, "Output pixels per display pixel.")
	spacing := flag.Int("spacing", 0, "Background pixels between display pixels.")
	themeName := flag.String("theme", "default", "Color theme.")
	base64Out := flag.Bool("base64", false, "Print an <img> data URL to stdout instead of writing a file.")
	flag.Parse()

	theme, ok := themes[*themeName]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown theme %q\n", *themeName)
		os.Exit(2)
	}

	img := egsim.RenderRGB(testCard(), egsim.NewSettings(
		egsim.WithTheme(theme),
		egsim.WithScale(*scale),
		egsim.WithPixelSpacing(*spacing),
	))

	if *base64Out {
		enc, err := img.ToBase64PNG()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("<img src=\"data:image/png;base64,%s\">\n", enc)
		return
	}

	if err := img.SavePNG(*out); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(*out)
}

// testCard builds a 128x96 card with color bars on top and a grayscale
// ramp below, the usual furniture for checking a render pipeline.
func testCard() *egsim.Display[egsim.RGB888] {
	const width, height = 128, 96
	d := egsim.NewDisplay[egsim.RGB888](width, height)

	bars := []egsim.RGB888{
		{R: 255, G: 255, B: 255},
		{R: 255, G: 255},
		{G: 255, B: 255},
		{G: 255},
		{R: 255, B: 255},
		{R: 255},
		{B: 255},
		{},
	}
	barWidth := width / len(bars)
	for i, c := range bars {
		for y := 0; y < height*2/3; y++ {
			for x := i * barWidth; x < (i+1)*barWidth; x++ {
				d.Set(x, y, c)
			}
		}
	}

	for y := height * 2 / 3; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(x * 255 / (width - 1))
			d.Set(x, y, egsim.RGB888{R: v, G: v, B: v})
		}
	}
	return d
}
