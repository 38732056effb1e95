package checkout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig() Config {
	return Config{
		InitialDelay: 10 * time.Millisecond,
		StepWeight:   0.5,
		StepInterval: 5 * time.Millisecond,
		HoldDuration: 10 * time.Millisecond,
	}
}

func waitVerified(t *testing.T, s *Sequencer) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if s.Verified() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("sequencer never verified, status %+v", s.Status())
}

func TestSequencerStartsWaiting(t *testing.T) {
	s := NewSequencer(fastConfig(), 1.5)
	defer s.Cancel()

	st := s.Status()
	assert.Equal(t, StateWaiting, st.State)
	assert.Equal(t, 1.5, st.ExpectedWeight)
	assert.Zero(t, st.ObservedWeight)
}

func TestSequencerRampsToExpectedWeight(t *testing.T) {
	s := NewSequencer(fastConfig(), 1.2)
	waitVerified(t, s)

	st := s.Status()
	assert.Equal(t, StateVerified, st.State)
	assert.Equal(t, 1.2, st.ObservedWeight)
}

func TestSequencerMeasuredNeverOvershoots(t *testing.T) {
	// 1.3 is not a multiple of the 0.5 step, the last tick must clamp.
	s := NewSequencer(fastConfig(), 1.3)
	defer s.Cancel()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		st := s.Status()
		require.LessOrEqual(t, st.ObservedWeight, 1.3)
		if st.State == StateVerified {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("sequencer never verified")
}

func TestSequencerZeroWeightSkipsRamp(t *testing.T) {
	s := NewSequencer(fastConfig(), 0)
	waitVerified(t, s)

	st := s.Status()
	assert.Equal(t, StateVerified, st.State)
	assert.Zero(t, st.ObservedWeight)
}

func TestSequencerCancelFreezesRun(t *testing.T) {
	s := NewSequencer(fastConfig(), 5)
	s.Cancel()

	st := s.Status()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, st, s.Status())
	assert.False(t, s.Verified())
}

func TestSequencerCancelAfterVerifiedIsNoop(t *testing.T) {
	s := NewSequencer(fastConfig(), 0.5)
	waitVerified(t, s)
	s.Cancel()
	assert.True(t, s.Verified())
}
