package engine

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/karakayahuseyin/mavlink2grpc/internal/metric"
)

// metrics holds the Prometheus metrics for one engine instance, mirroring
// the per-component registration pattern used throughout this codebase's
// input/output layers.
type metrics struct {
	messagesReceived prometheus.Counter
	messagesSent     prometheus.Counter
	parseErrors      prometheus.Counter
	crcErrors        prometheus.Counter
	sequenceGaps     prometheus.Counter
}

// newMetrics registers engine metrics under a unique service name. Returns
// nil when no registry is supplied, following the nil-feature pattern used
// throughout this codebase: callers must nil-check before use.
func newMetrics(registry *metric.MetricsRegistry, serviceName string) *metrics {
	if registry == nil {
		return nil
	}

	m := &metrics{
		messagesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mavlink2grpc",
			Subsystem: "engine",
			Name:      "messages_received_total",
			Help:      "Total validated inbound frames",
		}),
		messagesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mavlink2grpc",
			Subsystem: "engine",
			Name:      "messages_sent_total",
			Help:      "Total outbound frames written to the transport",
		}),
		parseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mavlink2grpc",
			Subsystem: "engine",
			Name:      "parse_errors_total",
			Help:      "Total frames rejected for a malformed header",
		}),
		crcErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mavlink2grpc",
			Subsystem: "engine",
			Name:      "crc_errors_total",
			Help:      "Total frames rejected for a checksum mismatch",
		}),
		sequenceGaps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mavlink2grpc",
			Subsystem: "engine",
			Name:      "sequence_gaps_total",
			Help:      "Total detected gaps in the inbound sequence counter",
		}),
	}

	registry.RegisterCounter(serviceName, "messages_received", m.messagesReceived)
	registry.RegisterCounter(serviceName, "messages_sent", m.messagesSent)
	registry.RegisterCounter(serviceName, "parse_errors", m.parseErrors)
	registry.RegisterCounter(serviceName, "crc_errors", m.crcErrors)
	registry.RegisterCounter(serviceName, "sequence_gaps", m.sequenceGaps)

	return m
}
