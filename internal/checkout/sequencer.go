// Package checkout implements the bagging-area weight verification that runs
// after a shopper starts checkout. A Sequencer simulates the scale settling:
// it waits, then ramps the measured weight up toward the expected cart weight
// in fixed steps, then holds before declaring the weight verified.
package checkout

import (
	"sync"
	"time"
)

// Verification states. A sequencer only ever moves forward through them.
const (
	StateWaiting   = "waiting"
	StateVerifying = "verifying"
	StateVerified  = "verified"
)

// Config controls the pacing of a verification run.
type Config struct {
	// InitialDelay is how long the sequencer stays in the waiting state
	// before the scale starts registering weight.
	InitialDelay time.Duration
	// StepWeight is how much measured weight each tick adds.
	StepWeight float64
	// StepInterval is the time between ticks while verifying.
	StepInterval time.Duration
	// HoldDuration is how long the full weight must hold steady before the
	// run is marked verified.
	HoldDuration time.Duration
}

// DefaultConfig matches the in-store scale pacing.
func DefaultConfig() Config {
	return Config{
		InitialDelay: 2 * time.Second,
		StepWeight:   0.2,
		StepInterval: 500 * time.Millisecond,
		HoldDuration: time.Second,
	}
}

// Status is a snapshot of a verification run.
type Status struct {
	State          string  `json:"state"`
	ExpectedWeight float64 `json:"expectedWeight"`
	ObservedWeight float64 `json:"observedWeight"`
}

// Sequencer drives one verification run. It is safe for concurrent use; the
// timer callbacks and HTTP handlers share the same lock.
type Sequencer struct {
	cfg Config

	mu       sync.Mutex
	state    string
	expected float64
	measured float64
	timer    *time.Timer
	done     bool
}

// NewSequencer starts a verification run for the given expected weight. The
// run begins in the waiting state and advances on its own.
func NewSequencer(cfg Config, expectedWeight float64) *Sequencer {
	s := &Sequencer{
		cfg:      cfg,
		state:    StateWaiting,
		expected: expectedWeight,
	}
	s.timer = time.AfterFunc(cfg.InitialDelay, s.beginVerifying)
	return s
}

func (s *Sequencer) beginVerifying() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return
	}
	s.state = StateVerifying
	if s.measured >= s.expected {
		// Nothing to weigh, hold and verify immediately.
		s.timer = time.AfterFunc(s.cfg.HoldDuration, s.finish)
		return
	}
	s.timer = time.AfterFunc(s.cfg.StepInterval, s.step)
}

func (s *Sequencer) step() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return
	}
	s.measured += s.cfg.StepWeight
	if s.measured >= s.expected {
		s.measured = s.expected
		s.timer = time.AfterFunc(s.cfg.HoldDuration, s.finish)
		return
	}
	s.timer = time.AfterFunc(s.cfg.StepInterval, s.step)
}

func (s *Sequencer) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return
	}
	s.state = StateVerified
	s.done = true
}

// Status returns the current snapshot of the run.
func (s *Sequencer) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		State:          s.state,
		ExpectedWeight: s.expected,
		ObservedWeight: s.measured,
	}
}

// Verified reports whether the run has completed.
func (s *Sequencer) Verified() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateVerified
}

// Cancel stops the run and any pending timer. The state is frozen where the
// run stood; a cancelled run never reaches verified.
func (s *Sequencer) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return
	}
	s.done = true
	if s.timer != nil {
		s.timer.Stop()
	}
}
