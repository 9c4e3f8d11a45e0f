// Package router implements the fan-out subscriber registry (spec.md C4):
// a mutex-guarded set of subscription filters, each paired with a delivery
// callback, matched and invoked on every routed message.
package router

import (
	"log/slog"
	"sync"

	"github.com/karakayahuseyin/mavlink2grpc/internal/metric"
)

// WriteFunc delivers a routed message to one subscriber. It returns false
// when the subscriber can no longer accept messages (closed stream, full
// buffer); a false return evicts the subscription.
type WriteFunc func(Message) bool

// subscription is a router-held record pairing a filter with a delivery
// function for one live client.
type subscription struct {
	id     uint64
	filter Filter
	write  WriteFunc
	active bool
}

// Router holds the mutex-guarded subscriber set. The zero value is not
// usable; construct with New.
type Router struct {
	logger *slog.Logger
	metric *metrics

	mu      sync.Mutex
	nextID  uint64
	subs    []*subscription
	byID    map[uint64]*subscription
}

// Config configures a new Router.
type Config struct {
	Logger          *slog.Logger
	MetricsRegistry *metric.MetricsRegistry
	ServiceName     string
}

// New constructs an empty Router.
func New(cfg Config) *Router {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "router"
	}
	return &Router{
		logger: logger.With("component", "router"),
		metric: newMetrics(cfg.MetricsRegistry, serviceName),
		byID:   make(map[uint64]*subscription),
	}
}

// Subscribe allocates a new id, appends an active record, and returns the
// id. Ids are unique for the lifetime of the Router.
func (r *Router) Subscribe(filter Filter, write WriteFunc) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	id := r.nextID
	sub := &subscription{id: id, filter: filter, write: write, active: true}
	r.subs = append(r.subs, sub)
	r.byID[id] = sub

	if r.metric != nil {
		r.metric.subscribersGauge.Set(float64(r.activeCountLocked()))
	}
	return id
}

// Unsubscribe removes the record with id. Returns true iff a record with
// that id was found.
func (r *Router) Unsubscribe(id uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub, ok := r.byID[id]
	if !ok {
		return false
	}
	delete(r.byID, id)
	r.removeFromSlice(sub)

	if r.metric != nil {
		r.metric.subscribersGauge.Set(float64(r.activeCountLocked()))
	}
	return true
}

// RouteMessage iterates the active subscriptions under the lock, invoking
// write for each whose filter matches msg. A write returning false marks
// that subscription inactive (evicted) without removing it from the
// underlying slice; RouteMessage returns the count of successful
// deliveries. Callbacks must not call back into the Router: the lock is
// held for the full iteration.
func (r *Router) RouteMessage(msg Message) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.metric != nil {
		r.metric.messagesRouted.Inc()
	}

	delivered := 0
	for _, sub := range r.subs {
		if !sub.active {
			continue
		}
		if !sub.filter.Matches(msg) {
			continue
		}
		if sub.write(msg) {
			delivered++
			if r.metric != nil {
				r.metric.deliveries.Inc()
			}
			continue
		}
		sub.active = false
		r.logger.Info("evicting subscriber after failed write", "subscription_id", sub.id)
		if r.metric != nil {
			r.metric.evictions.Inc()
			r.metric.subscribersGauge.Set(float64(r.activeCountLocked()))
		}
	}
	return delivered
}

// SubscriptionCount returns the number of currently active subscriptions.
func (r *Router) SubscriptionCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.activeCountLocked()
}

// CleanupInactive compacts the subscription slice, dropping every inactive
// record, and returns the number removed.
func (r *Router) CleanupInactive() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.subs[:0]
	removed := 0
	for _, sub := range r.subs {
		if sub.active {
			kept = append(kept, sub)
			continue
		}
		delete(r.byID, sub.id)
		removed++
	}
	r.subs = kept
	return removed
}

func (r *Router) activeCountLocked() int {
	n := 0
	for _, sub := range r.subs {
		if sub.active {
			n++
		}
	}
	return n
}

// removeFromSlice drops sub from r.subs. Called with r.mu held.
func (r *Router) removeFromSlice(sub *subscription) {
	for i, s := range r.subs {
		if s == sub {
			r.subs = append(r.subs[:i], r.subs[i+1:]...)
			return
		}
	}
}
