package buffer

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karakayahuseyin/mavlink2grpc/internal/metric"
)

func TestApplyOptionsDefaultsToDropOldest(t *testing.T) {
	opts := applyOptions[int]()
	assert.Equal(t, DropOldest, opts.overflowPolicy)
}

func TestWithMetricsExposesBufferGaugesOnRegistry(t *testing.T) {
	registry := metric.NewMetricsRegistry()
	buf, err := NewCircularBuffer[int](4, WithMetrics[int](registry, "test_component"))
	require.NoError(t, err)
	defer buf.Close()

	require.NoError(t, buf.Write(1))
	require.NoError(t, buf.Write(2))

	cb := buf.(*circularBuffer[int])
	assert.Equal(t, float64(2), testutil.ToFloat64(cb.metrics.writes))
	assert.Equal(t, float64(2), testutil.ToFloat64(cb.metrics.size))
}

func TestWithMetricsNilRegistryIsIgnored(t *testing.T) {
	buf, err := NewCircularBuffer[int](4, WithMetrics[int](nil, "test_component"))
	require.NoError(t, err)
	defer buf.Close()

	assert.NoError(t, buf.Write(1))
}

func TestSecondBufferReusingSamePrefixFailsDuplicateRegistration(t *testing.T) {
	registry := metric.NewMetricsRegistry()
	buf1, err := NewCircularBuffer[int](4, WithMetrics[int](registry, "dup_component"))
	require.NoError(t, err)
	defer buf1.Close()

	_, err = NewCircularBuffer[int](4, WithMetrics[int](registry, "dup_component"))
	assert.Error(t, err)
}
