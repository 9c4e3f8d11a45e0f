package router

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/karakayahuseyin/mavlink2grpc/internal/metric"
)

// metrics holds the Prometheus metrics for one router instance.
type metrics struct {
	messagesRouted   prometheus.Counter
	deliveries       prometheus.Counter
	evictions        prometheus.Counter
	subscribersGauge prometheus.Gauge
}

// newMetrics registers router metrics, or returns nil when no registry is
// supplied, matching the nil-feature pattern used throughout this codebase.
func newMetrics(registry *metric.MetricsRegistry, serviceName string) *metrics {
	if registry == nil {
		return nil
	}

	m := &metrics{
		messagesRouted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mavlink2grpc",
			Subsystem: "router",
			Name:      "messages_routed_total",
			Help:      "Total messages passed to route_message",
		}),
		deliveries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mavlink2grpc",
			Subsystem: "router",
			Name:      "deliveries_total",
			Help:      "Total successful per-subscriber deliveries",
		}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mavlink2grpc",
			Subsystem: "router",
			Name:      "evictions_total",
			Help:      "Total subscriptions evicted after a failed write",
		}),
		subscribersGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mavlink2grpc",
			Subsystem: "router",
			Name:      "subscribers_active",
			Help:      "Current count of active subscriptions",
		}),
	}

	registry.RegisterCounter(serviceName, "messages_routed", m.messagesRouted)
	registry.RegisterCounter(serviceName, "deliveries", m.deliveries)
	registry.RegisterCounter(serviceName, "evictions", m.evictions)
	registry.RegisterGauge(serviceName, "subscribers_active", m.subscribersGauge)

	return m
}
