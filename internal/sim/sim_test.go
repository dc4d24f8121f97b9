package sim_test

import (
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dicetray/internal/game/dice"
	"github.com/cory-johannsen/dicetray/internal/game/haptics"
	"github.com/cory-johannsen/dicetray/internal/game/skin"
	"github.com/cory-johannsen/dicetray/internal/game/tray"
	"github.com/cory-johannsen/dicetray/internal/sim"
)

func center() dice.Point {
	cfg := sim.DefaultConfig()
	return dice.Point{X: cfg.Width / 2, Y: cfg.Height / 2}
}

func TestBody_ImpulseScalesByMass(t *testing.T) {
	w := sim.NewWorld(sim.DefaultConfig())
	b := w.NewBody(dice.D6.Outline(120), center(), 0)
	b.ApplyImpulse(500, 0)
	b.ApplyAngularImpulse(0.5)
	assert.InDelta(t, 10000, b.Velocity().X, 1e-9)
	assert.InDelta(t, 25, b.AngularVelocity(), 1e-9)
}

func TestWorld_DampsToRest(t *testing.T) {
	w := sim.NewWorld(sim.DefaultConfig())
	b := w.NewBody(dice.D20.Outline(120), center(), 0)
	b.ApplyImpulse(300, 400)
	b.ApplyAngularImpulse(0.5)

	for i := 0; i < 60*10; i++ {
		w.Step(1.0 / 60)
	}
	assert.Equal(t, dice.Point{}, b.Velocity())
	assert.Equal(t, 0.0, b.AngularVelocity())
}

// TestWorld_BodiesStayInside launches bodies in arbitrary directions and
// checks they never leave the walls.
func TestWorld_BodiesStayInside(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cfg := sim.DefaultConfig()
		w := sim.NewWorld(cfg)
		b := w.NewBody(dice.D100.Outline(120), center(), 0)
		a := rapid.Float64Range(0, 2*math.Pi).Draw(rt, "angle")
		b.ApplyImpulse(math.Cos(a)*500, math.Sin(a)*500)

		for i := 0; i < 120; i++ {
			w.Step(1.0 / 60)
			p := b.Position()
			require.GreaterOrEqual(rt, p.X, 0.0)
			require.LessOrEqual(rt, p.X, cfg.Width)
			require.GreaterOrEqual(rt, p.Y, 0.0)
			require.LessOrEqual(rt, p.Y, cfg.Height)
		}
	})
}

func TestWorld_WallContactFiresCallback(t *testing.T) {
	w := sim.NewWorld(sim.DefaultConfig())
	var contacts int32
	w.OnContact(func() { atomic.AddInt32(&contacts, 1) })

	b := w.NewBody(dice.D6.Outline(120), dice.Point{X: 130, Y: 1000}, 0)
	b.ApplyImpulse(-50, 0)
	n := w.Step(1.0 / 60)

	assert.Equal(t, 1, n)
	assert.Equal(t, int32(1), atomic.LoadInt32(&contacts))
	assert.Greater(t, b.Velocity().X, 0.0, "velocity reflects off the left wall")
}

func TestWorld_MoveToStopsBody(t *testing.T) {
	w := sim.NewWorld(sim.DefaultConfig())
	b := w.NewBody(dice.D6.Outline(120), center(), 0)
	b.ApplyImpulse(100, 100)
	b.MoveTo(dice.Point{X: 200, Y: 200})
	assert.Equal(t, dice.Point{X: 200, Y: 200}, b.Position())
	assert.Equal(t, dice.Point{}, b.Velocity())
}

func TestWorld_Remove(t *testing.T) {
	w := sim.NewWorld(sim.DefaultConfig())
	b := w.NewBody(dice.D6.Outline(120), center(), 0)
	assert.Equal(t, 1, w.Len())
	w.Remove(b)
	assert.Equal(t, 0, w.Len())
}

func TestNewWorld_PanicsOnZeroMass(t *testing.T) {
	cfg := sim.DefaultConfig()
	cfg.Mass = 0
	assert.Panics(t, func() { sim.NewWorld(cfg) })
}

type countingTicker struct{ n int }

func (c *countingTicker) Tick(time.Time) { c.n++ }

func TestLoop_StepTicksAndBroadcasts(t *testing.T) {
	w := sim.NewWorld(sim.DefaultConfig())
	tk := &countingTicker{}
	l := sim.NewLoop(w, tk, 60, zap.NewNop())
	ch := make(chan sim.Frame, 2)
	l.Subscribe(ch)

	f := l.Step(time.Unix(5, 0))
	assert.Equal(t, uint64(1), f.N)
	assert.Equal(t, 1, tk.n)
	assert.Equal(t, f, <-ch)

	l.Unsubscribe(ch)
	l.Step(time.Unix(6, 0))
	assert.Len(t, ch, 0)
}

func TestLoop_StartStop(t *testing.T) {
	w := sim.NewWorld(sim.DefaultConfig())
	l := sim.NewLoop(w, &countingTicker{}, 200, zap.NewNop())
	ch := make(chan sim.Frame, 1)
	l.Subscribe(ch)

	errCh := make(chan error, 1)
	go func() { errCh <- l.Start() }()

	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("no frame within 2s")
	}
	l.Stop()
	l.Stop()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop")
	}
}

type fixedSkin struct{}

func (fixedSkin) Active() skin.Skin { return skin.Builtin()[0] }

// TestLoop_TrayRollSettles drives a real tray through the headless world
// until every die settles with a value in range.
func TestLoop_TrayRollSettles(t *testing.T) {
	logger := zap.NewNop()
	w := sim.NewWorld(sim.DefaultConfig())
	hm := haptics.NewManager(haptics.LogActuator{Logger: logger}, haptics.DefaultInterval, logger)
	roller := dice.NewLoggedRoller(dice.NewSeededSource(99), logger)
	start := time.Unix(1_700_000_000, 0)
	tr := tray.New(tray.DefaultConfig(), fixedSkin{}, w, roller, hm, logger).
		WithClock(func() time.Time { return start })
	w.OnContact(tr.OnContact)

	for _, k := range []dice.Kind{dice.D20, dice.D6, dice.D10} {
		tr.Add(k)
	}
	require.True(t, tr.Roll())

	l := sim.NewLoop(w, tr, 60, logger)
	now := start
	for i := 0; i < 60*10 && !tr.Settled(); i++ {
		now = now.Add(l.Interval())
		l.Step(now)
	}

	r := tr.Readout()
	require.True(t, r.Settled)
	sum := 0
	for i, k := range []dice.Kind{dice.D20, dice.D6, dice.D10} {
		require.True(t, r.Set[i], "die %d should have rolled", i)
		assert.GreaterOrEqual(t, r.Values[i], 1)
		assert.LessOrEqual(t, r.Values[i], int(k))
		sum += r.Values[i]
	}
	assert.Equal(t, sum, r.Total)
}

func TestNewLoop_PanicsOnZeroRate(t *testing.T) {
	assert.Panics(t, func() { sim.NewLoop(sim.NewWorld(sim.DefaultConfig()), &countingTicker{}, 0, zap.NewNop()) })
}
