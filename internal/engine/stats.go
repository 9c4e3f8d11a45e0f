package engine

import "sync/atomic"

// Stats are the connection statistics spec.md 3 defines: monotonic
// counters updated from the receive thread (receive-side) and from send's
// caller (send-side). Lock-free by design.
type Stats struct {
	messagesReceived atomic.Uint64
	messagesSent     atomic.Uint64
	parseErrors      atomic.Uint64
	crcErrors        atomic.Uint64
	sequenceGaps     atomic.Uint64
}

// StatsSnapshot is a read-only point-in-time view of Stats.
type StatsSnapshot struct {
	MessagesReceived uint64
	MessagesSent     uint64
	ParseErrors      uint64
	CRCErrors        uint64
	SequenceGaps     uint64
}

func (s *Stats) snapshot() StatsSnapshot {
	return StatsSnapshot{
		MessagesReceived: s.messagesReceived.Load(),
		MessagesSent:     s.messagesSent.Load(),
		ParseErrors:      s.parseErrors.Load(),
		CRCErrors:        s.crcErrors.Load(),
		SequenceGaps:     s.sequenceGaps.Load(),
	}
}
