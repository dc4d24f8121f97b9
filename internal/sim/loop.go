package sim

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Ticker receives one call per frame after the world has stepped.
type Ticker interface {
	Tick(now time.Time)
}

// Frame is broadcast to subscribers after every step.
type Frame struct {
	N        uint64
	At       time.Time
	Contacts int
}

// Loop steps a World at a fixed frame rate and ticks the tray after each step.
type Loop struct {
	world    *World
	ticker   Ticker
	interval time.Duration
	logger   *zap.Logger

	mu          sync.Mutex
	frame       uint64
	subscribers map[chan<- Frame]struct{}

	done chan struct{}
	once sync.Once
}

// NewLoop creates a stopped loop.
//
// Precondition: frameRate > 0; world, t and logger must be non-nil.
func NewLoop(world *World, t Ticker, frameRate int, logger *zap.Logger) *Loop {
	if frameRate <= 0 {
		panic("sim: NewLoop requires a positive frame rate")
	}
	return &Loop{
		world:       world,
		ticker:      t,
		interval:    time.Second / time.Duration(frameRate),
		logger:      logger,
		subscribers: make(map[chan<- Frame]struct{}),
		done:        make(chan struct{}),
	}
}

// Interval returns the fixed frame duration.
func (l *Loop) Interval() time.Duration {
	return l.interval
}

// Subscribe registers ch to receive every Frame. A full channel drops the frame.
//
// Precondition: ch must not be nil.
func (l *Loop) Subscribe(ch chan<- Frame) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.subscribers[ch] = struct{}{}
}

// Unsubscribe removes ch from the subscriber list.
func (l *Loop) Unsubscribe(ch chan<- Frame) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.subscribers, ch)
}

// Step runs a single frame stamped now, using the fixed interval as dt.
func (l *Loop) Step(now time.Time) Frame {
	contacts := l.world.Step(l.interval.Seconds())
	l.ticker.Tick(now)

	l.mu.Lock()
	l.frame++
	f := Frame{N: l.frame, At: now, Contacts: contacts}
	subs := make([]chan<- Frame, 0, len(l.subscribers))
	for ch := range l.subscribers {
		subs = append(subs, ch)
	}
	l.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- f:
		default:
		}
	}
	return f
}

// Start runs frames until Stop is called. It blocks.
func (l *Loop) Start() error {
	t := time.NewTicker(l.interval)
	defer t.Stop()
	l.logger.Info("frame loop started", zap.Duration("interval", l.interval))
	for {
		select {
		case now := <-t.C:
			l.Step(now)
		case <-l.done:
			l.mu.Lock()
			n := l.frame
			l.mu.Unlock()
			l.logger.Info("frame loop stopped", zap.Uint64("frames", n))
			return nil
		}
	}
}

// Stop ends Start. Calling Stop more than once is safe.
func (l *Loop) Stop() {
	l.once.Do(func() { close(l.done) })
}
