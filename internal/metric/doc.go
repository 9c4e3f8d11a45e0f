// Package metric provides the bridge's Prometheus metrics registry and the
// HTTP server that exposes it for scraping.
//
// # Architecture
//
// Two layers:
//
//  1. Bridge-wide core metrics (Metrics, registered automatically by
//     NewMetricsRegistry): overall lifecycle state and RPC call volume.
//  2. Per-component metrics, registered on demand through the
//     MetricsRegistrar interface by the package that owns them
//     (internal/engine, internal/router, internal/buffer each keep their
//     own counters/gauges and register them here rather than exposing
//     package-level globals).
//
// # Basic Usage
//
//	registry := metric.NewMetricsRegistry()
//	server := metric.NewServer(9090, "/metrics", registry)
//	go func() {
//	    if err := server.Start(); err != nil {
//	        log.Printf("metrics server error: %v", err)
//	    }
//	}()
//	defer server.Stop()
//
//	coreMetrics := registry.CoreMetrics()
//	coreMetrics.RecordBridgeStatus("mavlink2grpc", 1) // started
//
// # Core Metrics
//
//   - mavlink2grpc_bridge_status{bridge="..."}: lifecycle state, mirrors
//     internal/lifecycle.State (0=created, 1=started, 2=stopping,
//     3=stopped, 4=failed)
//   - mavlink2grpc_rpc_streams_active: open StreamMessages subscriptions
//   - mavlink2grpc_rpc_unary_calls_total{result="success|failure"}: total
//     SendMessage calls by outcome
//   - mavlink2grpc_rpc_send_duration_seconds: SendMessage latency histogram
//
// # Component-Specific Metrics
//
// A component registers its own metrics through the registrar interface
// instead of adding fields here:
//
//	requestCounter := prometheus.NewCounter(prometheus.CounterOpts{
//	    Name: "frames_received_total",
//	    Help: "Total frames received from the transport",
//	})
//	err := registry.RegisterCounter("bridge_engine", "frames_received_total", requestCounter)
//
// Vector metrics (CounterVec/GaugeVec/HistogramVec) follow the same
// pattern via RegisterCounterVec/RegisterGaugeVec/RegisterHistogramVec.
// Unregister removes a previously registered metric by the same
// (serviceName, metricName) key.
//
// # HTTP Server
//
// Server exposes two endpoints: GET /metrics (OpenMetrics/Prometheus
// text format), GET /health (plain 200 OK), and nothing else — no TLS or
// auth layer, since the bridge runs as a single local process rather than
// a multi-tenant platform service.
//
// # Thread Safety
//
// Registration methods are mutex-guarded; metric recording itself relies
// on Prometheus's own lock-free counters/gauges/histograms. CoreMetrics()
// and PrometheusRegistry() return shared instances safe for concurrent
// use.
package metric
