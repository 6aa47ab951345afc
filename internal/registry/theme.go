package registry

import (
	"fmt"
	"image/color"
	"strings"
	"time"
)

// CycleStep is how long each palette entry of a cycling theme stays active.
const CycleStep = 200 * time.Millisecond

// Theme defines the glyph colour. A theme either has a single Color or, when
// Palette is non-empty, steps through Palette every CycleStep.
type Theme struct {
	Name    string
	Color   color.RGBA
	Palette []color.RGBA
}

// Available themes
var (
	ThemeMatrix = Theme{Name: "matrix", Color: rgb(0x00, 0xff, 0x00)} // #00ff00
	ThemeCyber  = Theme{Name: "cyber", Color: rgb(0x00, 0xf6, 0xff)}  // #00f6ff
	ThemeBlue   = Theme{Name: "blue", Color: rgb(0x3a, 0x7b, 0xff)}   // #3a7bff
	ThemeAmber  = Theme{Name: "amber", Color: rgb(0xff, 0xb0, 0x00)}  // #ffb000
	ThemeIce    = Theme{Name: "ice", Color: rgb(0x9b, 0xf7, 0xff)}    // #9bf7ff

	ThemeCycle = Theme{
		Name:  "cycle",
		Color: rgb(0x00, 0xff, 0x00),
		Palette: []color.RGBA{
			rgb(0x00, 0xff, 0x00), // #00ff00
			rgb(0x00, 0xf6, 0xff), // #00f6ff
			rgb(0xff, 0xb0, 0x00), // #ffb000
			rgb(0xff, 0x4d, 0x4d), // #ff4d4d
			rgb(0x9b, 0xf7, 0xff), // #9bf7ff
		},
	}

	// All available themes, in menu order
	themes = []Theme{ThemeMatrix, ThemeCyber, ThemeBlue, ThemeAmber, ThemeIce, ThemeCycle}
)

// Background is the colour painted behind the glyphs.
var Background = rgb(0x00, 0x00, 0x00)

func rgb(r, g, b uint8) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: 0xff} }

// Themes returns the registered themes in menu order.
func Themes() []Theme {
	out := make([]Theme, len(themes))
	copy(out, themes)
	return out
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// ParseTheme returns a theme by name.
func ParseTheme(name string) (Theme, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, t := range themes {
		if t.Name == n {
			return t, nil
		}
	}
	return ThemeMatrix, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
}

// Cycles reports whether the theme steps through a palette.
func (t Theme) Cycles() bool { return len(t.Palette) > 0 }

// ColorAt returns the glyph colour at ts, measured from the start of the
// animation. Cycling themes advance one palette entry per CycleStep with no
// interpolation.
func (t Theme) ColorAt(ts time.Duration) color.RGBA {
	if !t.Cycles() {
		return t.Color
	}
	if ts < 0 {
		ts = 0
	}
	idx := int(ts/CycleStep) % len(t.Palette)
	return t.Palette[idx]
}

// Next returns the theme after t in menu order, wrapping around.
func (t Theme) Next() Theme { return t.step(1) }

// Prev returns the theme before t in menu order, wrapping around.
func (t Theme) Prev() Theme { return t.step(-1) }

func (t Theme) step(d int) Theme {
	for i, th := range themes {
		if th.Name == t.Name {
			return themes[(i+d+len(themes))%len(themes)]
		}
	}
	return themes[0]
}

// MarshalText lets themes appear by name in YAML and flags.
func (t Theme) MarshalText() ([]byte, error) { return []byte(t.Name), nil }

func (t *Theme) UnmarshalText(b []byte) error {
	v, err := ParseTheme(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Hex formats c as #rrggbb.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
