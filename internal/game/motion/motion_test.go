package motion_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dicetray/internal/game/motion"
)

func TestShakeDetector_ThresholdAndCooldown(t *testing.T) {
	d := motion.NewShakeDetector(motion.DefaultShakeThreshold, motion.DefaultShakeCooldown)
	t0 := time.Unix(0, 0)

	assert.False(t, d.Sample(0, 0, 1, t0), "resting device is not a shake")
	assert.True(t, d.Sample(2.5, 2.5, 0, t0))
	assert.False(t, d.Sample(2.5, 2.5, 0, t0.Add(70*time.Millisecond)), "within cooldown")
	assert.True(t, d.Sample(0, 0, -3.5, t0.Add(71*time.Millisecond)))
}

func TestShakeDetector_Disabled(t *testing.T) {
	d := motion.NewShakeDetector(3, 0)
	d.SetEnabled(false)
	assert.False(t, d.Sample(10, 10, 10, time.Unix(1, 0)))
	d.SetEnabled(true)
	assert.True(t, d.Sample(10, 10, 10, time.Unix(1, 0)))
}

func TestSwipeAngle(t *testing.T) {
	assert.InDelta(t, 0, motion.SwipeAngle(10, 0), 1e-12)
	assert.InDelta(t, math.Pi/2, motion.SwipeAngle(0, 5), 1e-12)
	assert.InDelta(t, math.Pi, motion.SwipeAngle(-1, 0), 1e-12)
}

func TestSwipeAngle_PointsAlongTranslation(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		dx := rapid.Float64Range(-1000, 1000).Draw(rt, "dx")
		dy := rapid.Float64Range(-1000, 1000).Draw(rt, "dy")
		if math.Hypot(dx, dy) < 1e-6 {
			return
		}
		a := motion.SwipeAngle(dx, dy)
		n := math.Hypot(dx, dy)
		assert.InDelta(rt, dx/n, math.Cos(a), 1e-9)
		assert.InDelta(rt, dy/n, math.Sin(a), 1e-9)
	})
}
