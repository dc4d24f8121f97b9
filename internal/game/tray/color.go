package tray

import (
	"github.com/cory-johannsen/dicetray/internal/game/dice"
	"github.com/cory-johannsen/dicetray/internal/game/skin"
)

// NextColor picks the color for the next die.
//
// With no previous color it returns a uniform random palette element.
// Otherwise it returns the element after last, wrapping to the start. A last
// color missing from palette (the skin changed) is looked up as index 0, so
// the pick is palette[1], or palette[0] for a one-color palette.
//
// Postcondition: ok is false iff palette is empty.
func NextColor(palette []skin.Color, last *skin.Color, src dice.Source) (c skin.Color, ok bool) {
	if len(palette) == 0 {
		return skin.Color{}, false
	}
	if last == nil {
		return palette[src.Intn(len(palette))], true
	}
	idx := 0
	for i, p := range palette {
		if p == *last {
			idx = i
			break
		}
	}
	next := idx + 1
	if next >= len(palette) {
		next = 0
	}
	return palette[next], true
}

// ColorCycler remembers the last assigned color across calls.
//
// Invariant: consecutive picks from one palette of length >= 2 never repeat.
type ColorCycler struct {
	src  dice.Source
	last *skin.Color
}

// NewColorCycler returns a cycler with no previous color.
func NewColorCycler(src dice.Source) *ColorCycler {
	return &ColorCycler{src: src}
}

// Next returns the next color from s.Palette and records it. An empty
// palette yields s.Dark and clears the record.
func (c *ColorCycler) Next(s skin.Skin) skin.Color {
	col, ok := NextColor(s.Palette, c.last, c.src)
	if !ok {
		c.last = nil
		return s.Dark
	}
	c.last = &col
	return col
}

// Last returns the previously assigned color, if any.
func (c *ColorCycler) Last() (skin.Color, bool) {
	if c.last == nil {
		return skin.Color{}, false
	}
	return *c.last, true
}

// Reset forgets the previous color.
func (c *ColorCycler) Reset() {
	c.last = nil
}
