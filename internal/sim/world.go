// Package sim is a headless kinematic substrate for the dice tray. It turns
// impulses into damped motion inside a walled box and reports wall contacts.
// Bodies do not collide with one another and nothing is rendered.
package sim

import (
	"math"
	"sync"

	"github.com/cory-johannsen/dicetray/internal/game/dice"
	"github.com/cory-johannsen/dicetray/internal/game/tray"
)

// Config tunes every body in a World.
type Config struct {
	Width, Height  float64
	Mass           float64
	Inertia        float64
	LinearDamping  float64
	AngularDamping float64
	Restitution    float64
	// RestSpeed and RestSpin are the magnitudes under which motion snaps to zero.
	RestSpeed float64
	RestSpin  float64
}

// DefaultConfig returns the reference tuning.
func DefaultConfig() Config {
	return Config{
		Width:          1170,
		Height:         2532,
		Mass:           0.05,
		Inertia:        0.02,
		LinearDamping:  5,
		AngularDamping: 3.5,
		Restitution:    1,
		RestSpeed:      1,
		RestSpin:       0.01,
	}
}

// World owns every body. It is safe for concurrent use; body accessors take
// the world lock.
type World struct {
	mu        sync.Mutex
	cfg       Config
	bodies    map[*Body]struct{}
	onContact func()
}

// NewWorld creates an empty world.
//
// Precondition: cfg.Mass > 0; cfg.Inertia > 0.
func NewWorld(cfg Config) *World {
	if cfg.Mass <= 0 || cfg.Inertia <= 0 {
		panic("sim: NewWorld requires positive mass and inertia")
	}
	return &World{cfg: cfg, bodies: make(map[*Body]struct{})}
}

// OnContact registers fn to run once per wall contact. fn runs after the
// step that produced the contact, without the world lock held.
func (w *World) OnContact(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onContact = fn
}

// NewBody adds a body whose bounding circle encloses outline.
func (w *World) NewBody(outline dice.Polygon, at dice.Point, rotation float64) tray.Body {
	r := 0.0
	for _, p := range outline {
		r = math.Max(r, math.Hypot(p.X, p.Y))
	}
	b := &Body{world: w, radius: r, pos: at, rot: rotation}
	w.mu.Lock()
	w.bodies[b] = struct{}{}
	w.mu.Unlock()
	return b
}

// Remove detaches b; removing an unknown body is a no-op.
func (w *World) Remove(b tray.Body) {
	sb, ok := b.(*Body)
	if !ok {
		return
	}
	w.mu.Lock()
	delete(w.bodies, sb)
	w.mu.Unlock()
}

// Len returns the number of live bodies.
func (w *World) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.bodies)
}

// Step advances every body by dt seconds and returns the number of wall contacts.
func (w *World) Step(dt float64) int {
	w.mu.Lock()
	contacts := 0
	for b := range w.bodies {
		contacts += b.step(w.cfg, dt)
	}
	fn := w.onContact
	w.mu.Unlock()

	if fn != nil {
		for i := 0; i < contacts; i++ {
			fn()
		}
	}
	return contacts
}

// Body is one rigid die body.
type Body struct {
	world  *World
	radius float64
	pos    dice.Point
	vel    dice.Point
	rot    float64
	spin   float64
}

func (b *Body) Velocity() dice.Point {
	b.world.mu.Lock()
	defer b.world.mu.Unlock()
	return b.vel
}

func (b *Body) AngularVelocity() float64 {
	b.world.mu.Lock()
	defer b.world.mu.Unlock()
	return b.spin
}

func (b *Body) Position() dice.Point {
	b.world.mu.Lock()
	defer b.world.mu.Unlock()
	return b.pos
}

func (b *Body) Rotation() float64 {
	b.world.mu.Lock()
	defer b.world.mu.Unlock()
	return b.rot
}

// ApplyImpulse changes velocity by impulse / mass.
func (b *Body) ApplyImpulse(dx, dy float64) {
	b.world.mu.Lock()
	defer b.world.mu.Unlock()
	m := b.world.cfg.Mass
	b.vel.X += dx / m
	b.vel.Y += dy / m
}

// ApplyAngularImpulse changes angular velocity by impulse / inertia.
func (b *Body) ApplyAngularImpulse(a float64) {
	b.world.mu.Lock()
	defer b.world.mu.Unlock()
	b.spin += a / b.world.cfg.Inertia
}

// MoveTo teleports the body and stops it.
func (b *Body) MoveTo(p dice.Point) {
	b.world.mu.Lock()
	defer b.world.mu.Unlock()
	b.pos = p
	b.vel = dice.Point{}
	b.spin = 0
}

// step integrates one frame. Caller holds the world lock.
func (b *Body) step(cfg Config, dt float64) (contacts int) {
	b.pos.X += b.vel.X * dt
	b.pos.Y += b.vel.Y * dt
	b.rot = math.Mod(b.rot+b.spin*dt, 2*math.Pi)

	if b.bounce(&b.pos.X, &b.vel.X, cfg.Width, cfg.Restitution) {
		contacts++
	}
	if b.bounce(&b.pos.Y, &b.vel.Y, cfg.Height, cfg.Restitution) {
		contacts++
	}

	lin := math.Max(0, 1-cfg.LinearDamping*dt)
	ang := math.Max(0, 1-cfg.AngularDamping*dt)
	b.vel.X *= lin
	b.vel.Y *= lin
	b.spin *= ang

	if math.Hypot(b.vel.X, b.vel.Y) < cfg.RestSpeed {
		b.vel = dice.Point{}
	}
	if math.Abs(b.spin) < cfg.RestSpin {
		b.spin = 0
	}
	return contacts
}

// bounce reflects one axis off the walls at 0 and limit.
func (b *Body) bounce(pos, vel *float64, limit, restitution float64) bool {
	lo, hi := b.radius, limit-b.radius
	if hi < lo {
		lo, hi = limit/2, limit/2
	}
	switch {
	case *pos < lo && *vel < 0:
		*pos = lo
		*vel = -*vel * restitution
		return true
	case *pos > hi && *vel > 0:
		*pos = hi
		*vel = -*vel * restitution
		return true
	}
	return false
}
