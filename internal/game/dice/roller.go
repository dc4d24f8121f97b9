package dice

import (
	"math"

	"go.uber.org/zap"
)

// Roller wraps a Source and logger to draw face values and launch angles.
// Every draw is logged at debug level.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that draws from src and logs to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	if src == nil || logger == nil {
		panic("dice: NewLoggedRoller requires a non-nil source and logger")
	}
	return &Roller{src: src, logger: logger}
}

// Source returns the underlying randomness provider.
func (r *Roller) Source() Source {
	return r.src
}

// Face draws a uniform value from k.FaceRange(), inclusive.
//
// Precondition: k.Valid().
// Postcondition: lo <= result <= hi.
func (r *Roller) Face(k Kind) int {
	lo, hi := k.FaceRange()
	v := lo + r.src.Intn(hi-lo+1)
	r.logger.Debug("dice face",
		zap.Stringer("kind", k),
		zap.Int("value", v),
	)
	return v
}

// Angle draws a uniform angle in [0, 2π).
func (r *Roller) Angle() float64 {
	a := r.src.Float64() * 2 * math.Pi
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}
