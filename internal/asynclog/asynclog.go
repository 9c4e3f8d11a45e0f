// Package asynclog gives every package's slog logging the same
// non-blocking-producer contract spec.md's async logger names (4.6): a
// bounded queue plus a single drain goroutine, so a slow sink never stalls
// the caller emitting the record. It is expressed as an slog.Handler
// wrapping the queue instead of a bespoke logger type, so the rest of the
// tree just calls slog as normal.
package asynclog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/karakayahuseyin/mavlink2grpc/internal/buffer"
	"github.com/karakayahuseyin/mavlink2grpc/internal/metric"
)

// drainBatchSize bounds how many queued records the drain goroutine flushes
// to the sink handler per wake-up.
const drainBatchSize = 64

// drainIdleDelay is slept by the drain goroutine after an empty poll, so it
// doesn't spin a core while the queue is empty.
const drainIdleDelay = 5 * time.Millisecond

// Config configures a Handler.
type Config struct {
	// QueueSize bounds the number of buffered records. Defaults to 1024.
	QueueSize int
	// MetricsRegistry, if set, exposes queue depth and drop counts.
	MetricsRegistry *metric.MetricsRegistry
	// ServiceName labels the exposed metrics.
	ServiceName string
	// OnDrop, if set, is called with the number of records dropped whenever
	// the queue is full. Intended for a last-resort stderr fallback.
	OnDrop func(dropped int64)
}

// record is a self-contained copy of an slog.Record queued for the drain
// goroutine; slog.Record itself must not be retained past the call that
// produced it. sink is the handler that enqueued it, so records from a
// WithAttrs/WithGroup derivative are formatted with that derivative's sink.
type record struct {
	ctx  context.Context
	r    slog.Record
	sink slog.Handler
}

// Handler is an slog.Handler that enqueues records instead of formatting
// them inline, and drains them to an underlying sink handler from a single
// dedicated goroutine.
type Handler struct {
	sink  slog.Handler
	queue buffer.Buffer[record]

	mu       sync.Mutex
	started  bool
	stopCh   chan struct{}
	doneCh   chan struct{}
	dropped  int64
	onDrop   func(int64)
}

// NewHandler wraps sink, the handler that actually formats and writes
// records (typically slog.NewJSONHandler or slog.NewTextHandler over the
// process's log output), with a bounded async queue. Call Start before use
// and Close on shutdown to flush whatever remains queued.
func NewHandler(sink slog.Handler, cfg Config) *Handler {
	size := cfg.QueueSize
	if size <= 0 {
		size = 1024
	}

	h := &Handler{sink: sink, onDrop: cfg.OnDrop}

	opts := []buffer.Option[record]{
		buffer.WithOverflowPolicy[record](buffer.DropOldest),
		buffer.WithDropCallback(func(record) { h.recordDrop() }),
	}
	if cfg.MetricsRegistry != nil && cfg.ServiceName != "" {
		opts = append(opts, buffer.WithMetrics[record](cfg.MetricsRegistry, cfg.ServiceName+"_asynclog"))
	}

	q, err := buffer.NewCircularBuffer[record](size, opts...)
	if err != nil {
		// Metrics registration is the only failure mode; fall back to an
		// unmetriced queue rather than leaving the process without logging.
		q, _ = buffer.NewCircularBuffer[record](size, buffer.WithOverflowPolicy[record](buffer.DropOldest))
	}
	h.queue = q
	return h
}

func (h *Handler) recordDrop() {
	h.mu.Lock()
	h.dropped++
	dropped := h.dropped
	cb := h.onDrop
	h.mu.Unlock()
	if cb != nil {
		cb(dropped)
	}
}

// Start spawns the drain goroutine. Safe to call once; subsequent calls are
// no-ops.
func (h *Handler) Start() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.started {
		return
	}
	h.started = true
	h.stopCh = make(chan struct{})
	h.doneCh = make(chan struct{})
	go h.drainLoop()
}

// Close signals the drain goroutine to flush the remaining queue and stop,
// then waits for it to exit. If the drain goroutine was never started,
// Close flushes the queue inline instead, so records queued before Start
// are never silently lost.
func (h *Handler) Close() error {
	h.mu.Lock()
	if !h.started {
		h.mu.Unlock()
		h.flushAll()
		return h.queue.Close()
	}
	select {
	case <-h.stopCh:
	default:
		close(h.stopCh)
	}
	h.mu.Unlock()

	<-h.doneCh
	return h.queue.Close()
}

func (h *Handler) drainLoop() {
	defer close(h.doneCh)

	for {
		select {
		case <-h.stopCh:
			h.flushAll()
			return
		default:
		}

		if !h.drainOnce() {
			time.Sleep(drainIdleDelay)
		}
	}
}

// drainOnce flushes up to drainBatchSize queued records and reports whether
// it did any work.
func (h *Handler) drainOnce() bool {
	batch := h.queue.ReadBatch(drainBatchSize)
	for _, rec := range batch {
		_ = rec.sink.Handle(rec.ctx, rec.r)
	}
	return len(batch) > 0
}

// flushAll drains the queue to empty, used during Close so buffered records
// from just before shutdown aren't lost.
func (h *Handler) flushAll() {
	for h.drainOnce() {
	}
}

// Enabled delegates to the sink handler; there is no point queuing a record
// the sink would discard anyway.
func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.sink.Enabled(ctx, level)
}

// Handle enqueues a clone of r. Never blocks: a full queue drops the oldest
// queued record per the configured overflow policy.
func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	return h.queue.Write(record{ctx: ctx, r: r.Clone(), sink: h.sink})
}

// WithAttrs returns a new Handler sharing this Handler's queue and drain
// goroutine, wrapping a sink that has the attrs baked in.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.withSink(h.sink.WithAttrs(attrs))
}

// WithGroup returns a new Handler sharing this Handler's queue and drain
// goroutine, wrapping a sink scoped to the given group.
func (h *Handler) WithGroup(name string) slog.Handler {
	return h.withSink(h.sink.WithGroup(name))
}

func (h *Handler) withSink(sink slog.Handler) *Handler {
	return &Handler{
		sink:    sink,
		queue:   h.queue,
		started: h.started,
		stopCh:  h.stopCh,
		doneCh:  h.doneCh,
		onDrop:  h.onDrop,
	}
}
