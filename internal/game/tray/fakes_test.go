package tray_test

import (
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dicetray/internal/game/dice"
	"github.com/cory-johannsen/dicetray/internal/game/haptics"
	"github.com/cory-johannsen/dicetray/internal/game/skin"
	"github.com/cory-johannsen/dicetray/internal/game/tray"
)

// fakeBody is a kinematic body whose readouts the test sets directly.
type fakeBody struct {
	outline  dice.Polygon
	pos      dice.Point
	rot      float64
	vel      dice.Point
	spin     float64
	impulses []dice.Point
	angular  []float64
	removed  bool
}

func (b *fakeBody) Velocity() dice.Point     { return b.vel }
func (b *fakeBody) AngularVelocity() float64 { return b.spin }
func (b *fakeBody) Position() dice.Point     { return b.pos }
func (b *fakeBody) Rotation() float64        { return b.rot }
func (b *fakeBody) MoveTo(p dice.Point)      { b.pos = p }

func (b *fakeBody) ApplyImpulse(dx, dy float64) {
	b.impulses = append(b.impulses, dice.Point{X: dx, Y: dy})
}

func (b *fakeBody) ApplyAngularImpulse(a float64) {
	b.angular = append(b.angular, a)
}

// tumble makes the body report active rolling.
func (b *fakeBody) tumble() {
	b.vel = dice.Point{X: 10, Y: 10}
	b.spin = 5
}

// settle makes the body report rest.
func (b *fakeBody) settle() {
	b.vel = dice.Point{}
	b.spin = 0
}

type fakeWorld struct {
	bodies []*fakeBody
}

func (w *fakeWorld) NewBody(outline dice.Polygon, at dice.Point, rotation float64) tray.Body {
	b := &fakeBody{outline: outline, pos: at, rot: rotation}
	w.bodies = append(w.bodies, b)
	return b
}

func (w *fakeWorld) Remove(b tray.Body) {
	b.(*fakeBody).removed = true
}

type fakeHaptics struct {
	clock  *time.Time
	pulses []haptics.Style
	at     []time.Time
}

func (h *fakeHaptics) Vibrate(style haptics.Style, _ float64) bool {
	h.pulses = append(h.pulses, style)
	if h.clock != nil {
		h.at = append(h.at, *h.clock)
	}
	return true
}

// lightPulses returns the times of every face refresh pulse.
func (h *fakeHaptics) lightPulses() []time.Time {
	var out []time.Time
	for i, s := range h.pulses {
		if s == haptics.Light {
			out = append(out, h.at[i])
		}
	}
	return out
}

type staticSkin struct{ s skin.Skin }

func (p *staticSkin) Active() skin.Skin { return p.s }

var (
	colA = skin.MustHex("AA0000")
	colB = skin.MustHex("00BB00")
	colC = skin.MustHex("0000CC")
	colD = skin.MustHex("DDDDDD")
)

func testSkin() skin.Skin {
	return skin.Skin{
		Name:    "test",
		Light:   skin.MustHex("FFFFFF"),
		Dark:    skin.MustHex("000000"),
		Palette: []skin.Color{colA, colB, colC, colD},
	}
}

type harness struct {
	tray    *tray.Tray
	world   *fakeWorld
	haptics *fakeHaptics
	skins   *staticSkin
	now     time.Time
}

func newHarness(seed uint64) *harness {
	h := &harness{
		world:   &fakeWorld{},
		haptics: &fakeHaptics{},
		skins:   &staticSkin{s: testSkin()},
		now:     time.Unix(1_700_000_000, 0),
	}
	h.haptics.clock = &h.now
	roller := dice.NewLoggedRoller(dice.NewSeededSource(seed), zap.NewNop())
	h.tray = tray.New(tray.DefaultConfig(), h.skins, h.world, roller, h.haptics, zap.NewNop()).
		WithClock(func() time.Time { return h.now })
	return h
}

// run ticks the tray at hz for d, advancing the harness clock.
func (h *harness) run(hz int, d time.Duration) {
	step := time.Second / time.Duration(hz)
	for elapsed := time.Duration(0); elapsed < d; elapsed += step {
		h.now = h.now.Add(step)
		h.tray.Tick(h.now)
	}
}
