package tray

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dicetray/internal/game/dice"
	"github.com/cory-johannsen/dicetray/internal/game/haptics"
)

// Haptics is the vibration service the tray pulses on contacts and face refreshes.
type Haptics interface {
	Vibrate(style haptics.Style, intensity float64) bool
}

// RollConfig tunes the roll/impulse model.
type RollConfig struct {
	// ImpulseSpeed is the magnitude of the launch impulse.
	ImpulseSpeed float64
	// AngularImpulse is the spin applied on every roll.
	AngularImpulse float64
	// SpinThreshold is the |angular velocity| above which a moving die is rolling.
	SpinThreshold float64
	// RefreshInterval is the minimum time between two face refreshes of one die.
	RefreshInterval time.Duration
	// LightIntensity is the haptic intensity of a face refresh pulse.
	LightIntensity float64
}

// DefaultRollConfig returns the reference tuning.
func DefaultRollConfig() RollConfig {
	return RollConfig{
		ImpulseSpeed:    500,
		AngularImpulse:  0.5,
		SpinThreshold:   0.5,
		RefreshInterval: 50 * time.Millisecond,
		LightIntensity:  0.75,
	}
}

// LaunchImpulse returns the impulse vector for a roll at angle, before the
// screen-to-world Y inversion.
func LaunchImpulse(angle, speed float64) dice.Point {
	return dice.Point{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed}
}

// Model applies rolls to dice and refreshes their face readout while they spin.
type Model struct {
	cfg     RollConfig
	roller  *dice.Roller
	haptics Haptics
	logger  *zap.Logger
}

// NewModel creates a roll model.
//
// Precondition: roller, h and logger must be non-nil.
func NewModel(cfg RollConfig, roller *dice.Roller, h Haptics, logger *zap.Logger) *Model {
	if roller == nil || h == nil || logger == nil {
		panic("tray: NewModel requires a non-nil roller, haptics and logger")
	}
	return &Model{cfg: cfg, roller: roller, haptics: h, logger: logger}
}

// ApplyRoll launches d at angle, or at a uniform random angle when angle is
// nil, and spins it. The displayed value is left untouched.
//
// Postcondition: d.Spinning() is true.
func (m *Model) ApplyRoll(d *Die, angle *float64) {
	var a float64
	if angle != nil {
		a = *angle
	} else {
		a = m.roller.Angle()
	}
	imp := LaunchImpulse(a, m.cfg.ImpulseSpeed)
	// Swipe angles are measured in screen space (y down); the body world is y up.
	d.body.ApplyImpulse(imp.X, -imp.Y)
	d.body.ApplyAngularImpulse(m.cfg.AngularImpulse)
	d.spinning = true

	m.logger.Debug("die rolled",
		zap.String("die", d.ID),
		zap.Stringer("kind", d.Kind),
		zap.Float64("angle", a),
		zap.Bool("swipe", angle != nil),
	)
}

// OnSimulationTick is called once per frame per die. While the die moves and
// spins faster than the threshold it draws a new face at most once per
// RefreshInterval; otherwise it marks the die settled.
func (m *Model) OnSimulationTick(d *Die, now time.Time) {
	d.Position = d.body.Position()
	d.Orientation = d.body.Rotation()

	moving := d.body.Velocity() != (dice.Point{})
	if moving && math.Abs(d.body.AngularVelocity()) > m.cfg.SpinThreshold {
		if now.Sub(d.lastFaceChange) > m.cfg.RefreshInterval {
			d.value = m.roller.Face(d.Kind)
			d.hasValue = true
			d.lastFaceChange = now
			m.haptics.Vibrate(haptics.Light, m.cfg.LightIntensity)
		}
		return
	}
	if d.spinning {
		m.logger.Debug("die settled",
			zap.String("die", d.ID),
			zap.Int("value", d.value),
		)
	}
	d.spinning = false
}
