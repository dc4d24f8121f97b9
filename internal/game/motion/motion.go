// Package motion turns raw accelerometer samples and pan gestures into roll triggers.
package motion

import (
	"math"
	"sync"
	"time"
)

// Defaults matching the reference device tuning.
const (
	DefaultShakeThreshold = 3.0 // g
	DefaultShakeCooldown  = 70 * time.Millisecond
)

// ShakeDetector reports a shake when the acceleration magnitude exceeds the
// threshold and the previous shake is older than the cooldown.
type ShakeDetector struct {
	mu        sync.Mutex
	threshold float64
	cooldown  time.Duration
	enabled   bool
	last      time.Time
}

// NewShakeDetector creates an enabled detector.
//
// Precondition: threshold > 0; cooldown >= 0.
func NewShakeDetector(threshold float64, cooldown time.Duration) *ShakeDetector {
	return &ShakeDetector{threshold: threshold, cooldown: cooldown, enabled: true}
}

// SetEnabled toggles shake-to-roll.
func (d *ShakeDetector) SetEnabled(on bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.enabled = on
}

// Sample feeds one accelerometer reading, in g, taken at now.
//
// Postcondition: returns true iff this sample is a new shake.
func (d *ShakeDetector) Sample(x, y, z float64, now time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.enabled {
		return false
	}
	if math.Sqrt(x*x+y*y+z*z) <= d.threshold {
		return false
	}
	if !d.last.IsZero() && now.Sub(d.last) <= d.cooldown {
		return false
	}
	d.last = now
	return true
}

// SwipeAngle returns the launch angle for a pan gesture that ended with the
// given translation.
func SwipeAngle(dx, dy float64) float64 {
	return math.Atan2(dy, dx)
}
