// Package tray holds the dice tray: placed dice, the roll/impulse model that
// drives their face readout, and the color cycler for new dice.
package tray

import (
	"time"

	"github.com/google/uuid"

	"github.com/cory-johannsen/dicetray/internal/game/dice"
	"github.com/cory-johannsen/dicetray/internal/game/skin"
)

// Body is the kinematic state of one die as owned by the physics substrate.
// The tray reads it every tick and pushes impulses into it; it never holds
// engine internals.
type Body interface {
	Velocity() dice.Point
	AngularVelocity() float64
	Position() dice.Point
	Rotation() float64
	ApplyImpulse(dx, dy float64)
	ApplyAngularImpulse(a float64)
	MoveTo(p dice.Point)
}

// BodyFactory creates collidable bodies from a die outline.
type BodyFactory interface {
	// NewBody builds a body whose collision boundary is outline.
	NewBody(outline dice.Polygon, at dice.Point, rotation float64) Body
	// Remove detaches b from the substrate.
	Remove(b Body)
}

// Die is one placed die.
//
// Invariant: the displayed value is unset until the first face refresh and,
// once set, lies in Kind.FaceRange().
type Die struct {
	ID          string
	Kind        dice.Kind
	Color       skin.Color
	Position    dice.Point
	Orientation float64

	value          int
	hasValue       bool
	spinning       bool
	lastFaceChange time.Time
	body           Body
}

// NewDie creates a die bound to body. created seeds the face refresh gate.
//
// Precondition: kind.Valid(); body must be non-nil.
func NewDie(kind dice.Kind, color skin.Color, body Body, created time.Time) *Die {
	if body == nil {
		panic("tray: NewDie requires a non-nil body")
	}
	return &Die{
		ID:             uuid.New().String(),
		Kind:           kind,
		Color:          color,
		Position:       body.Position(),
		Orientation:    body.Rotation(),
		lastFaceChange: created,
		body:           body,
	}
}

// Value returns the displayed face, if one has been drawn.
func (d *Die) Value() (int, bool) {
	return d.value, d.hasValue
}

// Spinning reports whether the die is still considered rolling.
func (d *Die) Spinning() bool {
	return d.spinning
}

// Body returns the die's kinematic body.
func (d *Die) Body() Body {
	return d.body
}

// View is an immutable copy of a die's observable state.
type View struct {
	ID          string
	Kind        dice.Kind
	Color       skin.Color
	TextColor   skin.Color
	Position    dice.Point
	Orientation float64
	Value       int
	HasValue    bool
	Spinning    bool
}

func (d *Die) view() View {
	return View{
		ID:          d.ID,
		Kind:        d.Kind,
		Color:       d.Color,
		TextColor:   skin.IdealTextColor(d.Color),
		Position:    d.Position,
		Orientation: d.Orientation,
		Value:       d.value,
		HasValue:    d.hasValue,
		Spinning:    d.spinning,
	}
}
