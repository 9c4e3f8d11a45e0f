package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the bridge-wide metrics that don't belong to any single
// transport/engine/router instance: overall lifecycle state and the RPC
// surface's aggregate call volume. Per-component counters (frames seen,
// CRC errors, fan-out deliveries, buffer depth) are registered directly by
// their owning package via MetricsRegistrar instead of living here.
type Metrics struct {
	BridgeStatus     *prometheus.GaugeVec
	RPCStreamsActive prometheus.Gauge
	RPCUnaryCalls    *prometheus.CounterVec
	RPCSendDuration  prometheus.Histogram
}

// NewMetrics creates the bridge-wide metric instances.
func NewMetrics() *Metrics {
	return &Metrics{
		BridgeStatus: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "mavlink2grpc",
				Subsystem: "bridge",
				Name:      "status",
				Help:      "Bridge lifecycle state (0=created, 1=started, 2=stopping, 3=stopped, 4=failed)",
			},
			[]string{"bridge"},
		),

		RPCStreamsActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "mavlink2grpc",
				Subsystem: "rpc",
				Name:      "streams_active",
				Help:      "Current count of open StreamMessages subscriptions",
			},
		),

		RPCUnaryCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mavlink2grpc",
				Subsystem: "rpc",
				Name:      "unary_calls_total",
				Help:      "Total SendMessage calls, labeled by outcome",
			},
			[]string{"result"},
		),

		RPCSendDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "mavlink2grpc",
				Subsystem: "rpc",
				Name:      "send_duration_seconds",
				Help:      "SendMessage call latency in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
	}
}

// RecordBridgeStatus updates the bridge lifecycle gauge.
func (m *Metrics) RecordBridgeStatus(bridge string, state int) {
	m.BridgeStatus.WithLabelValues(bridge).Set(float64(state))
}

// SetRPCStreamsActive sets the current count of open streaming subscriptions.
func (m *Metrics) SetRPCStreamsActive(n int) {
	m.RPCStreamsActive.Set(float64(n))
}

// RecordUnaryCall increments the unary call counter for the given outcome
// ("success" or "failure") and observes its latency.
func (m *Metrics) RecordUnaryCall(result string, duration time.Duration) {
	m.RPCUnaryCalls.WithLabelValues(result).Inc()
	m.RPCSendDuration.Observe(duration.Seconds())
}
