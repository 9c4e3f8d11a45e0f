// Package bridge wires the protocol engine, router, and RPC service into a
// single running coordinator (spec.md C6): it owns the lifecycle of all
// three and exposes a start/stop/wait surface to cmd/mavlink2grpc.
package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/karakayahuseyin/mavlink2grpc/internal/dialect"
	"github.com/karakayahuseyin/mavlink2grpc/internal/engine"
	"github.com/karakayahuseyin/mavlink2grpc/internal/errors"
	"github.com/karakayahuseyin/mavlink2grpc/internal/lifecycle"
	"github.com/karakayahuseyin/mavlink2grpc/internal/mavlinkpb"
	"github.com/karakayahuseyin/mavlink2grpc/internal/metric"
	"github.com/karakayahuseyin/mavlink2grpc/internal/router"
	"github.com/karakayahuseyin/mavlink2grpc/internal/rpcservice"
	"github.com/karakayahuseyin/mavlink2grpc/internal/transport"
	"github.com/karakayahuseyin/mavlink2grpc/internal/wire"
)

// Config configures a new Bridge.
type Config struct {
	// ConnectionURL is one of udp://:PORT, udp://HOST:PORT (declined), or
	// serial://DEVICE:BAUD.
	ConnectionURL string
	GRPCAddr      string
	SystemID      uint8
	ComponentID   uint8

	Logger          *slog.Logger
	MetricsRegistry *metric.MetricsRegistry
}

// Bridge is the coordinator gluing the transport-backed engine, the
// fan-out router, and the gRPC service together. Construction parses and
// opens the transport configuration but does not start the receive loop or
// the gRPC listener; call Start for that.
type Bridge struct {
	cfg    Config
	logger *slog.Logger

	engine  *engine.Engine
	router  *router.Router
	service *rpcservice.Service
	server  *grpc.Server

	lifecycle *lifecycle.Tracker
	mu        sync.Mutex
	grp       *errgroup.Group
	grpCancel context.CancelFunc
	boundAddr string
}

// grpcAddr returns the address the gRPC listener actually bound to, useful
// when cfg.GRPCAddr requests an ephemeral port. Empty until Start succeeds.
func (b *Bridge) grpcAddr() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.boundAddr
}

// New parses cfg.ConnectionURL and constructs the engine, router, and RPC
// service. Returns an error for an unrecognized connection URL; this is
// the only failure mode of construction itself (transport I/O failures
// surface later, from Start).
func New(cfg Config) (*Bridge, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "bridge")

	parsed, err := parseConnectionURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.WrapInvalid(err, "bridge", "New", "parse connection url")
	}

	var t transport.Transport
	switch {
	case parsed.udp != nil:
		t = transport.NewUDP(*parsed.udp, logger)
	case parsed.serial != nil:
		t = transport.NewSerial(*parsed.serial, logger)
	default:
		return nil, errors.WrapInvalid(fmt.Errorf("bridge: no transport parsed from %q", cfg.ConnectionURL), "bridge", "New", "parse connection url")
	}

	eng := engine.New(engine.Config{
		Transport:       t,
		SystemID:        cfg.SystemID,
		ComponentID:     cfg.ComponentID,
		Logger:          logger,
		MetricsRegistry: cfg.MetricsRegistry,
		ServiceName:     "bridge_engine",
	})

	rt := router.New(router.Config{
		Logger:          logger,
		MetricsRegistry: cfg.MetricsRegistry,
		ServiceName:     "bridge_router",
	})

	b := &Bridge{
		cfg:       cfg,
		logger:    logger,
		engine:    eng,
		router:    rt,
		lifecycle: lifecycle.NewTracker(),
	}

	svc := rpcservice.New(rt, b.sendToEngine, logger, cfg.MetricsRegistry)
	b.service = svc

	eng.SetMessageCallback(b.onFrame)

	return b, nil
}

// recordStatus mirrors the bridge's lifecycle state onto the bridge_status
// gauge, if a metrics registry was configured.
func (b *Bridge) recordStatus(state lifecycle.State) {
	if b.cfg.MetricsRegistry == nil {
		return
	}
	b.cfg.MetricsRegistry.CoreMetrics().RecordBridgeStatus("mavlink2grpc", int(state))
}

// sendToEngine converts a structured payload to wire form and pushes it
// through the engine, implementing rpcservice.SendFunc.
func (b *Bridge) sendToEngine(payload dialect.Payload) bool {
	return b.engine.Send(wire.Frame{
		Version:   2,
		MessageID: payload.MessageID(),
		Payload:   payload.ToWire(),
	})
}

// onFrame decodes an inbound wire frame and routes the structured result,
// implementing engine.Callback. Decode failures are logged and dropped:
// the router has nothing useful to deliver for a frame with a malformed
// payload for its message id.
func (b *Bridge) onFrame(frame wire.Frame) {
	payload, err := dialect.FromWire(frame.MessageID, frame.Payload)
	if err != nil {
		b.logger.Warn("dropping frame with undecodable payload", "message_id", frame.MessageID, "error", err)
		return
	}

	b.router.RouteMessage(router.Message{
		SystemID:    frame.SystemID,
		ComponentID: frame.ComponentID,
		MessageID:   frame.MessageID,
		Sequence:    frame.Sequence,
		Payload:     payload,
	})
}

// Start opens the transport, starts the engine's receive loop, and starts
// serving gRPC on cfg.GRPCAddr. Idempotent: a Bridge already started
// returns nil without restarting anything.
func (b *Bridge) Start() error {
	b.mu.Lock()
	if b.lifecycle.IsStarted() {
		b.mu.Unlock()
		return nil
	}

	lis, err := net.Listen("tcp", b.cfg.GRPCAddr)
	if err != nil {
		b.lifecycle.Fail(err)
		b.recordStatus(lifecycle.StateFailed)
		b.mu.Unlock()
		return errors.WrapFatal(err, "bridge", "Start", "listen on grpc address")
	}
	b.boundAddr = lis.Addr().String()

	if err := b.engine.Start(); err != nil {
		_ = lis.Close()
		b.lifecycle.Fail(err)
		b.recordStatus(lifecycle.StateFailed)
		b.mu.Unlock()
		return errors.WrapFatal(err, "bridge", "Start", "start engine")
	}

	b.server = grpc.NewServer()
	mavlinkpb.RegisterMavlinkServiceServer(b.server, b.service)

	ctx, cancel := context.WithCancel(context.Background())
	b.grpCancel = cancel
	grp, _ := errgroup.WithContext(ctx)
	b.grp = grp

	grp.Go(func() error {
		if err := b.server.Serve(lis); err != nil {
			return errors.Wrap(err, "bridge", "Start", "grpc server exited")
		}
		return nil
	})

	b.lifecycle.ToStarted()
	b.recordStatus(lifecycle.StateStarted)
	b.logger.Info("bridge started", "connection", b.cfg.ConnectionURL, "grpc_addr", b.cfg.GRPCAddr)
	b.mu.Unlock()
	return nil
}

// Stop idempotently tears down the RPC service, the gRPC server, and the
// engine, in that order: shutting the service down first makes in-flight
// streams return so the server's graceful stop can complete, and the
// transport they depend on disappears last.
func (b *Bridge) Stop() {
	b.mu.Lock()
	switch b.lifecycle.State() {
	case lifecycle.StateStarted:
	default:
		b.mu.Unlock()
		return
	}
	b.lifecycle.ToStopping()
	b.recordStatus(lifecycle.StateStopping)
	server := b.server
	cancel := b.grpCancel
	b.mu.Unlock()

	b.service.Shutdown()
	if server != nil {
		server.GracefulStop()
	}
	if cancel != nil {
		cancel()
	}
	b.engine.Stop()

	b.mu.Lock()
	b.lifecycle.ToStopped()
	b.mu.Unlock()
	b.recordStatus(lifecycle.StateStopped)
	b.logger.Info("bridge stopped")
}

// Wait blocks until the gRPC server's run loop returns, which happens once
// Stop has called GracefulStop. Safe to call only after a successful
// Start.
func (b *Bridge) Wait() error {
	b.mu.Lock()
	grp := b.grp
	b.mu.Unlock()
	if grp == nil {
		return nil
	}
	return grp.Wait()
}
