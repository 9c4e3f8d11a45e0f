// Package main is the entry point for mavlink2grpc, a bridge that speaks
// MAVLink to a vehicle over UDP or serial and exposes the resulting
// telemetry stream, plus a command-send path, over gRPC.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/karakayahuseyin/mavlink2grpc/internal/asynclog"
	"github.com/karakayahuseyin/mavlink2grpc/internal/bridge"
	"github.com/karakayahuseyin/mavlink2grpc/internal/metric"
)

const (
	Version = "0.1.0"
	appName = "mavlink2grpc"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("mavlink2grpc exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cliCfg := parseFlags()
	if cliCfg.ShowHelp {
		printDetailedHelp()
		return nil
	}
	if err := validateFlags(cliCfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	logHandler := asynclog.NewHandler(slog.NewJSONHandler(os.Stdout, nil), asynclog.Config{
		QueueSize: 1024,
		OnDrop: func(dropped int64) {
			_, _ = fmt.Fprintf(os.Stderr, "mavlink2grpc: dropped %d log records, sink falling behind\n", dropped)
		},
	})
	logHandler.Start()
	defer logHandler.Close()

	logger := slog.New(logHandler)
	slog.SetDefault(logger)

	metricsRegistry := metric.NewMetricsRegistry()
	metricsServer := metric.NewServer(cliCfg.MetricsPort, "/metrics", metricsRegistry)
	go func() {
		if err := metricsServer.Start(); err != nil {
			logger.Warn("metrics server exited", "error", err)
		}
	}()
	defer func() { _ = metricsServer.Stop() }()

	logger.Info("starting mavlink2grpc",
		"version", Version,
		"connection", cliCfg.Connection,
		"grpc_addr", cliCfg.GRPCAddr,
		"system_id", cliCfg.SystemID,
		"component_id", cliCfg.ComponentID)

	b, err := bridge.New(bridge.Config{
		ConnectionURL:   cliCfg.Connection,
		GRPCAddr:        cliCfg.GRPCAddr,
		SystemID:        uint8(cliCfg.SystemID),
		ComponentID:     uint8(cliCfg.ComponentID),
		Logger:          logger,
		MetricsRegistry: metricsRegistry,
	})
	if err != nil {
		return fmt.Errorf("construct bridge: %w", err)
	}

	if err := b.Start(); err != nil {
		return fmt.Errorf("start bridge: %w", err)
	}

	return runWithSignalHandling(b, logger)
}

func runWithSignalHandling(b *bridge.Bridge, logger *slog.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	waitErr := make(chan error, 1)
	go func() { waitErr <- b.Wait() }()

	select {
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	case err := <-waitErr:
		logger.Warn("bridge stopped unexpectedly", "error", err)
	}

	b.Stop()
	logger.Info("mavlink2grpc shutdown complete")
	return nil
}
