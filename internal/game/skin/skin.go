// Package skin defines the dice tray color themes: a light and dark UI color
// plus an ordered die palette.
package skin

import (
	"fmt"
	"strconv"
	"strings"
)

// Name identifies a skin; names compare by value.
type Name string

const (
	Vanilla  Name = "vanilla"
	Forest   Name = "forest"
	Fireball Name = "fireball"
	Pastel   Name = "pastel"
	Cosmic   Name = "cosmic"
	Arcane   Name = "arcane"
)

// Default is the skin used when no preference is stored or the stored name is unknown.
const Default = Vanilla

// Color is an opaque sRGB color.
type Color struct {
	R, G, B uint8
}

// ParseHex parses "RRGGBB" with an optional leading '#'.
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return Color{}, fmt.Errorf("skin: color %q must have 6 hex digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("skin: invalid color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// MustHex parses s and panics on error. Used for the built-in skin table.
func MustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the color as "RRGGBB".
func (c Color) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

func (c Color) String() string {
	return "#" + c.Hex()
}

// Luminance returns the relative luminance in [0, 1] (Rec. 709 weights, no gamma).
func (c Color) Luminance() float64 {
	return (0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)) / 255
}

var (
	black = Color{}
	white = Color{R: 255, G: 255, B: 255}
)

// IdealTextColor returns black or white, whichever reads better on background.
func IdealTextColor(background Color) Color {
	if background.Luminance() > 0.5 {
		return black
	}
	return white
}

// Skin is a named color theme.
//
// Invariant: Palette is ordered; lookup into it is by index.
type Skin struct {
	Name    Name
	Light   Color
	Dark    Color
	Palette []Color
}

// IndexOf returns the palette index of c, or -1 when c is not in the palette.
func (s Skin) IndexOf(c Color) int {
	for i, p := range s.Palette {
		if p == c {
			return i
		}
	}
	return -1
}

func build(name Name, light, dark string, palette ...string) Skin {
	s := Skin{Name: name, Light: MustHex(light), Dark: MustHex(dark)}
	for _, p := range palette {
		s.Palette = append(s.Palette, MustHex(p))
	}
	return s
}

// Builtin returns the skins shipped with the tray, in display order.
func Builtin() []Skin {
	return []Skin{
		build(Vanilla, "F2E6C8", "844F20", "ACAC83", "747E4D", "D79F5D", "B77E44"),
		build(Forest, "8AB17D", "23404B", "89C7B9", "6AAFAA", "4D8774", "276668"),
		build(Fireball, "F1CF8C", "C32424", "FBAF37", "F58518", "EF6A0A", "E34919"),
		build(Pastel, "F8EDEB", "FF8785", "D0DCD5", "E7E4DC", "FFD7BA", "FEC89A"),
		build(Cosmic, "F8F9FA", "131516", "ADB5BD", "7B838A", "495057", "212529"),
		build(Arcane, "F9F8F8", "5A1664", "B391B0", "AA6DA3", "AE43B6", "B118C8"),
	}
}
