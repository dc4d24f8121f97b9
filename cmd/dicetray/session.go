package main

import (
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dicetray/internal/game/motion"
	"github.com/cory-johannsen/dicetray/internal/game/tray"
	"github.com/cory-johannsen/dicetray/internal/sim"
)

// Frames is the part of the frame loop a session listens to.
type Frames interface {
	Subscribe(ch chan<- sim.Frame)
	Unsubscribe(ch chan<- sim.Frame)
}

// rollSession performs a fixed number of rolls, waiting for the tray to
// settle after each one and printing the readout.
type rollSession struct {
	tray   *tray.Tray
	frames Frames
	rolls  int
	out    io.Writer
	logger *zap.Logger

	// swipe, when set, launches every roll in the direction of that gesture.
	swipe *float64
	// shake, when set, gates each roll on a detected shake.
	shake  *motion.ShakeDetector
	shakeG float64

	done chan struct{}
	once sync.Once
}

func newRollSession(t *tray.Tray, frames Frames, rolls int, out io.Writer, logger *zap.Logger) *rollSession {
	return &rollSession{
		tray:   t,
		frames: frames,
		rolls:  rolls,
		out:    out,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Start blocks until every roll has settled or Stop is called.
func (s *rollSession) Start() error {
	ch := make(chan sim.Frame, 1)
	s.frames.Subscribe(ch)
	defer s.frames.Unsubscribe(ch)

	for i := 1; i <= s.rolls; i++ {
		if s.shake != nil {
			if !s.awaitShake(ch) {
				return nil
			}
		}
		if !s.trigger() {
			return fmt.Errorf("roll %d: tray is empty", i)
		}
		frames, ok := s.awaitSettled(ch)
		if !ok {
			return nil
		}
		r := s.tray.Readout()
		s.logger.Info("roll settled",
			zap.Int("roll", i),
			zap.Int("total", r.Total),
			zap.Int("frames", frames),
		)
		if _, err := fmt.Fprintf(s.out, "roll %d: %s\n", i, r); err != nil {
			return fmt.Errorf("writing readout: %w", err)
		}
	}
	return nil
}

// Stop ends Start early.
func (s *rollSession) Stop() {
	s.once.Do(func() { close(s.done) })
}

func (s *rollSession) trigger() bool {
	if s.swipe != nil {
		return s.tray.RollAt(*s.swipe)
	}
	return s.tray.Roll()
}

// awaitShake feeds one synthetic accelerometer sample per frame until the
// detector accepts one.
func (s *rollSession) awaitShake(ch <-chan sim.Frame) bool {
	for {
		select {
		case f := <-ch:
			if s.shake.Sample(0, 0, s.shakeG, f.At) {
				s.logger.Debug("shake detected", zap.Uint64("frame", f.N))
				return true
			}
		case <-s.done:
			return false
		}
	}
}

func (s *rollSession) awaitSettled(ch <-chan sim.Frame) (int, bool) {
	n := 0
	for {
		select {
		case <-ch:
			n++
			if s.tray.Settled() {
				return n, true
			}
		case <-s.done:
			return n, false
		}
	}
}
