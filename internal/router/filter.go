package router

import "github.com/karakayahuseyin/mavlink2grpc/internal/dialect"

// Filter selects which messages a subscriber receives. A zero SystemID or
// ComponentID means "any"; an empty MessageIDs means "any message id".
type Filter struct {
	SystemID    uint32
	ComponentID uint32
	MessageIDs  []uint32
}

// Matches reports whether msg satisfies f, per spec: system_id and
// component_id match when the filter value is zero or equal, and
// message_ids matches when empty or containing msg's id.
func (f Filter) Matches(msg Message) bool {
	if f.SystemID != 0 && f.SystemID != uint32(msg.SystemID) {
		return false
	}
	if f.ComponentID != 0 && f.ComponentID != uint32(msg.ComponentID) {
		return false
	}
	if len(f.MessageIDs) == 0 {
		return true
	}
	for _, id := range f.MessageIDs {
		if id == msg.MessageID {
			return true
		}
	}
	return false
}

// Message is the structured, routable form of an inbound frame: a
// dialect-decoded payload plus the wire-level envelope fields a filter
// matches on.
type Message struct {
	SystemID    uint8
	ComponentID uint8
	MessageID   uint32
	Sequence    uint8
	Payload     dialect.Payload
}
