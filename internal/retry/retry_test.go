package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoSucceedsWithoutRetryOnFirstAttempt(t *testing.T) {
	calls := 0
	err := Do(context.Background(), BindSocket(), func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoRetriesTransientFailuresUpToMaxAttempts(t *testing.T) {
	calls := 0
	policy := Policy{maxAttempts: 3, initialDelay: time.Millisecond, maxDelay: 10 * time.Millisecond, multiplier: 2.0}
	err := Do(context.Background(), policy, func() error {
		calls++
		return errors.New("still not ready")
	})
	require.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoStopsImmediatelyOnNonRetryableError(t *testing.T) {
	calls := 0
	boom := errors.New("will never succeed")
	err := Do(context.Background(), BindSocket(), func() error {
		calls++
		return NonRetryable(boom)
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, boom)
}

func TestDoStopsOnContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	policy := Policy{maxAttempts: 5, initialDelay: time.Millisecond, maxDelay: 10 * time.Millisecond, multiplier: 2.0}
	err := Do(ctx, policy, func() error {
		calls++
		return errors.New("transient")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestIsNonRetryableDetectsWrappedMarker(t *testing.T) {
	err := NonRetryable(errors.New("bad termios"))
	assert.True(t, IsNonRetryable(err))
	assert.False(t, IsNonRetryable(errors.New("plain")))
}

func TestBindSocketAndSerialOpenHaveDistinctSchedules(t *testing.T) {
	bind := BindSocket()
	serial := SerialOpen()
	assert.NotEqual(t, bind.maxAttempts, serial.maxAttempts)
	assert.NotEqual(t, bind.initialDelay, serial.initialDelay)
}
