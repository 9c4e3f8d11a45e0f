// Package buffer implements a generic, thread-safe, non-blocking circular
// queue.
//
// # Quick Start
//
//	buf, err := buffer.NewCircularBuffer[record](1024,
//		buffer.WithOverflowPolicy[record](buffer.DropOldest),
//		buffer.WithDropCallback(func(r record) { log.Printf("dropped: %v", r) }),
//	)
//
//	_ = buf.Write(rec)
//	batch := buf.ReadBatch(64)
//
// With Prometheus metrics attached:
//
//	buf, err := buffer.NewCircularBuffer[record](1024,
//		buffer.WithMetrics[record](registry, "bridge_asynclog"),
//	)
//
// # Overflow Policies
//
// DropOldest evicts the oldest queued item to make room; DropNewest
// discards the item just written. There is no blocking policy: this
// buffer's only consumer (internal/asynclog) requires writes to never
// stall the caller, so a Write call always returns immediately.
//
// # Observability
//
// Stats() returns always-on atomic counters (Statistics) independent of
// Prometheus — writes, overflows, drops, current/max size, and derived
// rates. WithMetrics additionally mirrors those onto a Prometheus counter
// and gauge set scoped under the given component prefix.
//
// # Thread Safety
//
// All operations are safe for concurrent callers; a single mutex guards
// the ring buffer's head/tail/size bookkeeping.
package buffer
