package tray

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dicetray/internal/game/dice"
	"github.com/cory-johannsen/dicetray/internal/game/haptics"
	"github.com/cory-johannsen/dicetray/internal/game/skin"
)

// SkinProvider supplies the active skin. The tray reads it, never mutates it.
type SkinProvider interface {
	Active() skin.Skin
}

// Config sizes the tray and tunes its dice.
type Config struct {
	// Radius is the die outline radius.
	Radius float64
	// Width and Height bound the tray; dice spawn at its center.
	Width, Height float64
	// ContactIntensity is the haptic intensity of a collision pulse.
	ContactIntensity float64
	Roll             RollConfig
}

// DefaultConfig returns the reference tray.
func DefaultConfig() Config {
	return Config{
		Radius:           dice.DefaultRadius,
		Width:            1170,
		Height:           2532,
		ContactIntensity: 1,
		Roll:             DefaultRollConfig(),
	}
}

// Tray is the ordered collection of placed dice; insertion order is z order.
// All methods are safe for concurrent use.
//
// Invariant: Total() == sum of every set displayed value.
type Tray struct {
	mu      sync.Mutex
	cfg     Config
	dice    []*Die
	cycler  *ColorCycler
	skins   SkinProvider
	bodies  BodyFactory
	model   *Model
	roller  *dice.Roller
	haptics Haptics
	now     func() time.Time
	logger  *zap.Logger
}

// New creates an empty tray.
//
// Precondition: skins, bodies, roller, h and logger must be non-nil; cfg.Radius > 0.
func New(cfg Config, skins SkinProvider, bodies BodyFactory, roller *dice.Roller, h Haptics, logger *zap.Logger) *Tray {
	if skins == nil || bodies == nil || roller == nil {
		panic("tray: New requires a non-nil skin provider, body factory and roller")
	}
	if cfg.Radius <= 0 {
		panic("tray: New requires a positive radius")
	}
	return &Tray{
		cfg:     cfg,
		cycler:  NewColorCycler(roller.Source()),
		skins:   skins,
		bodies:  bodies,
		model:   NewModel(cfg.Roll, roller, h, logger),
		roller:  roller,
		haptics: h,
		now:     time.Now,
		logger:  logger,
	}
}

// WithClock replaces the time source used to stamp new dice. Intended for tests.
func (t *Tray) WithClock(now func() time.Time) *Tray {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.now = now
	return t
}

// SpawnPoint is the tray center.
func (t *Tray) SpawnPoint() dice.Point {
	return dice.Point{X: t.cfg.Width / 2, Y: t.cfg.Height / 2}
}

// Add places a new die of kind k at the spawn point with a random orientation
// and the next palette color. Its displayed value is unset.
//
// Precondition: k.Valid().
func (t *Tray) Add(k dice.Kind) View {
	t.mu.Lock()
	defer t.mu.Unlock()

	color := t.cycler.Next(t.skins.Active())
	body := t.bodies.NewBody(k.Outline(t.cfg.Radius), t.SpawnPoint(), t.roller.Angle())
	d := NewDie(k, color, body, t.now())
	t.dice = append(t.dice, d)

	t.logger.Debug("die added",
		zap.String("die", d.ID),
		zap.Stringer("kind", k),
		zap.Stringer("color", color),
		zap.Int("count", len(t.dice)),
	)
	return d.view()
}

// Clear removes every die and resets the color cycler.
func (t *Tray) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, d := range t.dice {
		t.bodies.Remove(d.body)
	}
	t.dice = nil
	t.cycler.Reset()
	t.logger.Debug("tray cleared")
}

// Roll launches every die at its own random angle.
//
// Postcondition: returns false, doing nothing, when the tray is empty.
func (t *Tray) Roll() bool {
	return t.roll(nil)
}

// RollAt launches every die at angle, e.g. the direction of a swipe.
func (t *Tray) RollAt(angle float64) bool {
	return t.roll(&angle)
}

func (t *Tray) roll(angle *float64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.dice) == 0 {
		return false
	}
	for _, d := range t.dice {
		t.model.ApplyRoll(d, angle)
	}
	return true
}

// Tick runs one simulation step of the face readout for every die.
func (t *Tray) Tick(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, d := range t.dice {
		t.model.OnSimulationTick(d, now)
	}
}

// OnContact relays a physics contact to haptics as a heavy pulse.
func (t *Tray) OnContact() {
	t.haptics.Vibrate(haptics.Heavy, t.cfg.ContactIntensity)
}

// Respawn moves every die back to the spawn point.
func (t *Tray) Respawn() {
	t.mu.Lock()
	defer t.mu.Unlock()
	p := t.SpawnPoint()
	for _, d := range t.dice {
		d.body.MoveTo(p)
		d.Position = p
	}
}

// RefreshSkin recolors every die, in order, from the active skin's palette.
// The cycler is not reset, so the first pick continues from the last color.
func (t *Tray) RefreshSkin() {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.skins.Active()
	for _, d := range t.dice {
		d.Color = t.cycler.Next(s)
	}
	t.logger.Debug("tray skin refreshed", zap.String("skin", string(s.Name)))
}

// Len returns the number of placed dice.
func (t *Tray) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.dice)
}

// Dice returns a snapshot of every die in z order.
func (t *Tray) Dice() []View {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]View, len(t.dice))
	for i, d := range t.dice {
		out[i] = d.view()
	}
	return out
}

// Total returns the sum of every set displayed value.
func (t *Tray) Total() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return total(t.dice)
}

func total(ds []*Die) int {
	sum := 0
	for _, d := range ds {
		if v, ok := d.Value(); ok {
			sum += v
		}
	}
	return sum
}

// Settled reports whether no die is spinning.
func (t *Tray) Settled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, d := range t.dice {
		if d.spinning {
			return false
		}
	}
	return true
}

// Outline returns the polygon shared by the drawn shape and collision body of kind k.
func (t *Tray) Outline(k dice.Kind) dice.Polygon {
	return k.Outline(t.cfg.Radius)
}
