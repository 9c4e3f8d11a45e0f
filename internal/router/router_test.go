package router

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterMatching(t *testing.T) {
	cases := []struct {
		name   string
		filter Filter
		msg    Message
		want   bool
	}{
		{"empty filter matches anything", Filter{}, Message{SystemID: 7, ComponentID: 9, MessageID: 42}, true},
		{"system id mismatch", Filter{SystemID: 1}, Message{SystemID: 2}, false},
		{"system id match", Filter{SystemID: 1}, Message{SystemID: 1}, true},
		{"component id mismatch", Filter{ComponentID: 1}, Message{ComponentID: 2}, false},
		{"message id allow-list hit", Filter{MessageIDs: []uint32{0, 30}}, Message{MessageID: 30}, true},
		{"message id allow-list miss", Filter{MessageIDs: []uint32{0, 30}}, Message{MessageID: 1}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.filter.Matches(tc.msg))
		})
	}
}

// TestFanOutExactness covers S4 and testable property 4: with two
// subscribers (one unfiltered, one filtered to message id 0) receiving
// messages with ids {0, 1, 0}, each sees exactly what its filter allows,
// in receive order.
func TestFanOutExactness(t *testing.T) {
	r := New(Config{})

	var aMu sync.Mutex
	var aSeen []uint32
	r.Subscribe(Filter{}, func(m Message) bool {
		aMu.Lock()
		defer aMu.Unlock()
		aSeen = append(aSeen, m.MessageID)
		return true
	})

	var bMu sync.Mutex
	var bSeen []uint32
	r.Subscribe(Filter{MessageIDs: []uint32{0}}, func(m Message) bool {
		bMu.Lock()
		defer bMu.Unlock()
		bSeen = append(bSeen, m.MessageID)
		return true
	})

	ids := []uint32{0, 1, 0}
	for _, id := range ids {
		delivered := r.RouteMessage(Message{MessageID: id})
		if id == 0 {
			assert.Equal(t, 2, delivered)
		} else {
			assert.Equal(t, 1, delivered)
		}
	}

	assert.Equal(t, []uint32{0, 1, 0}, aSeen)
	assert.Equal(t, []uint32{0, 0}, bSeen)
}

// TestEvictionOnWriteFailure covers S6 and testable property 5.
func TestEvictionOnWriteFailure(t *testing.T) {
	r := New(Config{})

	delivered := 0
	id := r.Subscribe(Filter{}, func(Message) bool {
		delivered++
		return delivered <= 10
	})

	for i := 0; i < 11; i++ {
		r.RouteMessage(Message{MessageID: 0})
	}

	assert.Equal(t, 11, delivered)
	assert.Equal(t, 0, r.SubscriptionCount())

	removed := r.CleanupInactive()
	assert.Equal(t, 1, removed)

	_, ok := r.byID[id]
	assert.False(t, ok)
}

// TestIDUniqueness covers testable property 6.
func TestIDUniqueness(t *testing.T) {
	r := New(Config{})

	seen := make(map[uint64]bool)
	for i := 0; i < 1000; i++ {
		id := r.Subscribe(Filter{}, func(Message) bool { return true })
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestUnsubscribeRemovesRecord(t *testing.T) {
	r := New(Config{})
	id := r.Subscribe(Filter{}, func(Message) bool { return true })
	assert.Equal(t, 1, r.SubscriptionCount())

	assert.True(t, r.Unsubscribe(id))
	assert.Equal(t, 0, r.SubscriptionCount())
	assert.False(t, r.Unsubscribe(id))
}

func TestCleanupInactiveCompactsOnlyInactive(t *testing.T) {
	r := New(Config{})
	liveID := r.Subscribe(Filter{}, func(Message) bool { return true })
	r.Subscribe(Filter{}, func(Message) bool { return false })

	r.RouteMessage(Message{MessageID: 0})
	assert.Equal(t, 1, r.SubscriptionCount())

	removed := r.CleanupInactive()
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, r.SubscriptionCount())

	_, ok := r.byID[liveID]
	assert.True(t, ok)
}
