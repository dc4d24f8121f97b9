// Package haptics provides the process-wide, rate-limited vibration service.
package haptics

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Style is the strength class of a haptic pulse.
type Style int

const (
	Light Style = iota
	Heavy
)

func (s Style) String() string {
	if s == Heavy {
		return "heavy"
	}
	return "light"
}

// DefaultInterval is the minimum spacing between two pulses of the same style.
const DefaultInterval = 50 * time.Millisecond

// Actuator fires a single pulse on the device. Fire-and-forget.
type Actuator interface {
	Impact(style Style, intensity float64)
}

// Manager gates pulses per style and forwards accepted ones to an Actuator.
// It is safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	act      Actuator
	interval time.Duration
	enabled  bool
	last     map[Style]time.Time
	now      func() time.Time
	logger   *zap.Logger
}

// NewManager creates an enabled Manager.
//
// Precondition: act and logger must be non-nil; interval >= 0.
func NewManager(act Actuator, interval time.Duration, logger *zap.Logger) *Manager {
	if act == nil || logger == nil {
		panic("haptics: NewManager requires a non-nil actuator and logger")
	}
	return &Manager{
		act:      act,
		interval: interval,
		enabled:  true,
		last:     make(map[Style]time.Time),
		now:      time.Now,
		logger:   logger,
	}
}

// WithClock replaces the time source. Intended for tests.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
	return m
}

// SetEnabled turns all pulses on or off.
func (m *Manager) SetEnabled(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = on
}

// Enabled reports whether pulses are currently allowed.
func (m *Manager) Enabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled
}

// Reset forgets every previous pulse so the next one of each style fires.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = make(map[Style]time.Time)
}

// Vibrate fires a pulse unless disabled or another pulse of the same style
// fired within the interval.
//
// Postcondition: returns true iff the actuator was invoked.
func (m *Manager) Vibrate(style Style, intensity float64) bool {
	m.mu.Lock()
	if !m.enabled {
		m.mu.Unlock()
		return false
	}
	now := m.now()
	if prev, ok := m.last[style]; ok && now.Sub(prev) <= m.interval {
		m.mu.Unlock()
		return false
	}
	m.last[style] = now
	m.mu.Unlock()

	m.act.Impact(style, intensity)
	return true
}

// LogActuator is an Actuator for hosts without a vibration motor; it logs
// each pulse at debug level.
type LogActuator struct {
	Logger *zap.Logger
}

// Impact logs the pulse.
func (a LogActuator) Impact(style Style, intensity float64) {
	a.Logger.Debug("haptic pulse",
		zap.Stringer("style", style),
		zap.Float64("intensity", intensity),
	)
}
