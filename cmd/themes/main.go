// Command themes shows the same test pattern rendered through every
// built-in color theme, side by side in one window.
package main

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"tinygo.org/x/tinydraw"
	"tinygo.org/x/tinyfont"

	"egsim"
	"egsim/window"
)

const (
	cell    = 64
	margin  = 8
	columns = 4
)

var gallery = []struct {
	name  string
	theme egsim.Theme
}{
	{"DEFAULT", egsim.ThemeDefault},
	{"INVERTED", egsim.ThemeInverted},
	{"LCD WHITE", egsim.ThemeLCDWhite},
	{"LCD GREEN", egsim.ThemeLCDGreen},
	{"LCD BLUE", egsim.ThemeLCDBlue},
	{"OLED WHITE", egsim.ThemeOLEDWhite},
	{"OLED BLUE", egsim.ThemeOLEDBlue},
}

func main() {
	rows := (len(gallery) + columns - 1) / columns
	width := columns*(cell+margin) + margin
	height := rows*(cell+margin) + margin

	m := window.NewMulti("Themes", width, height)
	m.Clear(egsim.RGB888{R: 40, G: 40, B: 40})

	for i, entry := range gallery {
		d := egsim.NewDisplay[egsim.Mono](cell, cell)
		testPattern(d, entry.name)

		offset := image.Pt(
			margin+(i%columns)*(cell+margin),
			margin+(i/columns)*(cell+margin),
		)
		m.AddDisplay(d, offset, egsim.NewSettings(egsim.WithTheme(entry.theme),
			egsim.WithScale(1), egsim.WithPixelSpacing(0)))
	}

	if err := m.Run(nil); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func testPattern(d *egsim.Display[egsim.Mono], label string) {
	on := color.RGBA{R: 255, G: 255, B: 255, A: 255}

	tinydraw.Rectangle(d, 0, 0, cell, cell, on)
	tinydraw.FilledCircle(d, cell/2, cell/2, 14, on)
	tinydraw.Line(d, 0, 0, cell-1, cell-1, on)
	tinydraw.Line(d, cell-1, 0, 0, cell-1, on)
	tinyfont.WriteLine(d, &tinyfont.Org01, 3, cell-4, label, on)
}
