package egsim

// Theme remaps the canonical colors of a binary display to a visual
// palette before rasterization. Apart from ThemeDefault and
// ThemeInverted every theme is a two-color mapping: black stays the
// configured "off" color and any other color becomes the "on" color.
//
// Themes should only be used with monochrome displays. Applying a
// two-color theme to a color display collapses its content to the two
// palette colors.
type Theme struct {
	invert bool
	mapped bool
	off    RGB888
	on     RGB888
}

var (
	// ThemeDefault passes colors through unchanged.
	ThemeDefault = Theme{}

	// ThemeInverted inverts every channel.
	ThemeInverted = Theme{invert: true}

	// ThemeLCDWhite simulates a classic LCD with a white background
	// and dark gray pixels.
	ThemeLCDWhite = CustomTheme(RGB888{245, 245, 245}, RGB888{32, 32, 32})

	// ThemeLCDGreen simulates a classic LCD with a green background
	// and dark gray pixels.
	ThemeLCDGreen = CustomTheme(RGB888{120, 185, 50}, RGB888{32, 32, 32})

	// ThemeLCDBlue simulates an LCD with a blue background and
	// blue-white pixels.
	ThemeLCDBlue = CustomTheme(RGB888{70, 80, 230}, RGB888{230, 230, 255})

	// ThemeOLEDWhite simulates an OLED with a near-black background
	// and white pixels.
	ThemeOLEDWhite = CustomTheme(RGB888{20, 20, 20}, RGB888{255, 255, 255})

	// ThemeOLEDBlue simulates an OLED with a dark blue background and
	// light blue pixels.
	ThemeOLEDBlue = CustomTheme(RGB888{0, 20, 40}, RGB888{0, 210, 255})
)

// CustomTheme returns a theme that maps black to off and any other
// color to on.
func CustomTheme(off, on RGB888) Theme {
	return Theme{mapped: true, off: off, on: on}
}

// Convert returns the themed color for a canonical RGB color.
func (t Theme) Convert(c RGB888) RGB888 {
	switch {
	case t.invert:
		return RGB888{255 - c.R, 255 - c.G, 255 - c.B}
	case t.mapped:
		if c == (RGB888{}) {
			return t.off
		}
		return t.on
	default:
		return c
	}
}
