// Package rpcservice implements the bridge's gRPC surface (spec.md C5): a
// server-streaming subscription endpoint backed by the router, and a unary
// send endpoint backed by the protocol engine.
package rpcservice

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/karakayahuseyin/mavlink2grpc/internal/dialect"
	"github.com/karakayahuseyin/mavlink2grpc/internal/errors"
	"github.com/karakayahuseyin/mavlink2grpc/internal/mavlinkpb"
	"github.com/karakayahuseyin/mavlink2grpc/internal/metric"
	"github.com/karakayahuseyin/mavlink2grpc/internal/router"
)

// grpcStatus converts a classified error into a grpc status, so the wire
// code a caller sees always agrees with how this service itself classified
// the failure.
func grpcStatus(err error) error {
	return status.Error(codes.Code(errors.GRPCCode(err)), err.Error())
}

// pollInterval bounds how long a stream handler can take to notice that a
// delivery to its client failed; client cancellation and Shutdown wake the
// handler directly. The spec's ≈100ms polled-wait strategy.
const pollInterval = 100 * time.Millisecond

// shutdownGrace bounds how long Shutdown waits for in-flight streams to
// unblock and return before giving up.
const shutdownGrace = 5 * time.Second

// SendFunc converts a structured message to wire form and pushes it
// through the protocol engine. It returns false on encode or transport
// failure.
type SendFunc func(dialect.Payload) bool

// Service implements mavlinkpb.MavlinkServiceServer over a router and an
// engine send callback supplied by the bridge coordinator.
type Service struct {
	mavlinkpb.UnimplementedMavlinkServiceServer

	router  *router.Router
	send    SendFunc
	logger  *slog.Logger
	metrics *metric.MetricsRegistry

	mu          sync.Mutex
	shutdown    bool
	streamWG    sync.WaitGroup
	wakeCh      chan struct{}
	activeCount int
}

// New constructs a Service over router r, dispatching validated sends to
// send. metrics may be nil, in which case the service records nothing.
func New(r *router.Router, send SendFunc, logger *slog.Logger, metrics *metric.MetricsRegistry) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		router:  r,
		send:    send,
		logger:  logger.With("component", "rpcservice"),
		metrics: metrics,
		wakeCh:  make(chan struct{}),
	}
}

// adjustActiveStreams updates the open-stream count by delta and mirrors it
// onto the rpc_streams_active gauge, if a metrics registry was configured.
func (s *Service) adjustActiveStreams(delta int) {
	s.mu.Lock()
	s.activeCount += delta
	n := s.activeCount
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.CoreMetrics().SetRPCStreamsActive(n)
	}
}

// StreamMessages registers filter with the router and blocks until either
// the client cancels the call or Shutdown is signalled, then unsubscribes.
func (s *Service) StreamMessages(filter *mavlinkpb.StreamFilter, stream mavlinkpb.MavlinkService_StreamMessagesServer) error {
	s.mu.Lock()
	if s.shutdown {
		s.mu.Unlock()
		return grpcStatus(errors.WrapTransient(errors.ErrShuttingDown, "rpcservice", "StreamMessages", "subscribe"))
	}
	s.streamWG.Add(1)
	s.mu.Unlock()
	defer s.streamWG.Done()

	streamID := uuid.NewString()
	logger := s.logger.With("stream_id", streamID)
	logger.Info("stream subscribed", "system_id", filter.GetSystemId(), "component_id", filter.GetComponentId())
	s.adjustActiveStreams(1)
	defer s.adjustActiveStreams(-1)
	defer logger.Info("stream closed")

	f := router.Filter{
		SystemID:    filter.GetSystemId(),
		ComponentID: filter.GetComponentId(),
		MessageIDs:  filter.GetMessageIds(),
	}

	var writeErr error
	id := s.router.Subscribe(f, func(m router.Message) bool {
		msg := mavlinkpb.FromDialect(m.SystemID, m.ComponentID, m.Sequence, m.Payload)
		if err := stream.Send(msg); err != nil {
			writeErr = err
			return false
		}
		return true
	})
	defer s.router.Unsubscribe(id)

	ctx := stream.Context()
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.wakeCh:
			return nil
		case <-ticker.C:
			if writeErr != nil {
				return writeErr
			}
		}
	}
}

// SendMessage validates that msg carries a payload, converts it to wire
// form via the bridge-supplied send callback, and reports the outcome.
func (s *Service) SendMessage(_ context.Context, msg *mavlinkpb.MavlinkMessage) (*mavlinkpb.SendResponse, error) {
	start := time.Now()

	if !mavlinkpb.HasPayload(msg) {
		s.recordUnaryCall("failure", start)
		return nil, grpcStatus(errors.WrapInvalid(errors.ErrInvalidData, "rpcservice", "SendMessage", "message carries no payload"))
	}

	payload := mavlinkpb.ToDialect(msg)
	if !s.send(payload) {
		s.recordUnaryCall("failure", start)
		return nil, grpcStatus(errors.WrapFatal(errors.ErrNoConnection, "rpcservice", "SendMessage", "engine send"))
	}
	s.recordUnaryCall("success", start)
	return &mavlinkpb.SendResponse{Success: true}, nil
}

// recordUnaryCall reports a SendMessage outcome and latency, if a metrics
// registry was configured.
func (s *Service) recordUnaryCall(result string, start time.Time) {
	if s.metrics != nil {
		s.metrics.CoreMetrics().RecordUnaryCall(result, time.Since(start))
	}
}

// Shutdown flips the shutdown flag, wakes every outstanding stream call,
// and waits up to shutdownGrace for them to return. Safe to call once;
// subsequent calls are no-ops.
func (s *Service) Shutdown() {
	s.mu.Lock()
	if s.shutdown {
		s.mu.Unlock()
		return
	}
	s.shutdown = true
	close(s.wakeCh)
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.streamWG.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(shutdownGrace):
		s.logger.Warn("shutdown grace period elapsed with streams still active")
	}
}
