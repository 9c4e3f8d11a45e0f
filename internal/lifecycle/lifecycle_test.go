package lifecycle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackerTransitions(t *testing.T) {
	tr := NewTracker()
	assert.Equal(t, StateCreated, tr.State())
	assert.False(t, tr.IsStarted())

	tr.ToStarted()
	assert.True(t, tr.IsStarted())

	tr.ToStopping()
	assert.Equal(t, StateStopping, tr.State())

	tr.ToStopped()
	assert.Equal(t, StateStopped, tr.State())
	assert.False(t, tr.IsStarted())
}

func TestTrackerFail(t *testing.T) {
	tr := NewTracker()
	tr.ToStarted()

	sentinel := errors.New("boom")
	tr.Fail(sentinel)

	assert.Equal(t, StateFailed, tr.State())
	assert.ErrorIs(t, tr.Err(), sentinel)
}

func TestStateString(t *testing.T) {
	cases := map[State]string{
		StateCreated:  "created",
		StateStarted:  "started",
		StateStopping: "stopping",
		StateStopped:  "stopped",
		StateFailed:   "failed",
		State(99):     "unknown",
	}
	for state, want := range cases {
		assert.Equal(t, want, state.String())
	}
}
