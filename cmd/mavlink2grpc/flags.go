package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
)

// CLIConfig holds the bridge's command-line configuration.
type CLIConfig struct {
	Connection  string
	GRPCAddr    string
	SystemID    int
	ComponentID int
	MetricsPort int
	ShowHelp    bool
}

func parseFlags() *CLIConfig {
	cfg := &CLIConfig{}

	flag.StringVar(&cfg.Connection, "connection",
		getEnv("MAVLINK2GRPC_CONNECTION", "udp://:14550"),
		"Vehicle connection url: udp://:PORT, udp://HOST:PORT, or serial://DEVICE:BAUD (env: MAVLINK2GRPC_CONNECTION)")
	flag.StringVar(&cfg.Connection, "c",
		getEnv("MAVLINK2GRPC_CONNECTION", "udp://:14550"),
		"Vehicle connection url (shorthand)")

	flag.StringVar(&cfg.GRPCAddr, "grpc",
		getEnv("MAVLINK2GRPC_GRPC_ADDR", "0.0.0.0:50051"),
		"gRPC bind address (env: MAVLINK2GRPC_GRPC_ADDR)")
	flag.StringVar(&cfg.GRPCAddr, "g",
		getEnv("MAVLINK2GRPC_GRPC_ADDR", "0.0.0.0:50051"),
		"gRPC bind address (shorthand)")

	flag.IntVar(&cfg.SystemID, "system-id",
		getEnvInt("MAVLINK2GRPC_SYSTEM_ID", 1),
		"MAVLink system id this bridge identifies as (env: MAVLINK2GRPC_SYSTEM_ID)")
	flag.IntVar(&cfg.SystemID, "s",
		getEnvInt("MAVLINK2GRPC_SYSTEM_ID", 1),
		"MAVLink system id (shorthand)")

	flag.IntVar(&cfg.ComponentID, "component-id",
		getEnvInt("MAVLINK2GRPC_COMPONENT_ID", 1),
		"MAVLink component id this bridge identifies as (env: MAVLINK2GRPC_COMPONENT_ID)")
	flag.IntVar(&cfg.ComponentID, "C",
		getEnvInt("MAVLINK2GRPC_COMPONENT_ID", 1),
		"MAVLink component id (shorthand)")

	flag.IntVar(&cfg.MetricsPort, "metrics-port",
		getEnvInt("MAVLINK2GRPC_METRICS_PORT", 9090),
		"Prometheus metrics HTTP port (env: MAVLINK2GRPC_METRICS_PORT)")

	flag.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")
	flag.BoolVar(&cfg.ShowHelp, "h", false, "Show help information")

	flag.Usage = func() {
		printDetailedHelp()
	}

	flag.Parse()
	return cfg
}

func validateFlags(cfg *CLIConfig) error {
	if cfg.ShowHelp {
		return nil
	}
	if cfg.SystemID < 0 || cfg.SystemID > 255 {
		return fmt.Errorf("invalid system id: %d", cfg.SystemID)
	}
	if cfg.ComponentID < 0 || cfg.ComponentID > 255 {
		return fmt.Errorf("invalid component id: %d", cfg.ComponentID)
	}
	return nil
}

func printDetailedHelp() {
	_, _ = fmt.Fprintf(os.Stderr, `%s - MAVLink to gRPC bridge

Usage: %s [options]

Options:
`, appName, os.Args[0])
	flag.PrintDefaults()
	_, _ = fmt.Fprintf(os.Stderr, `
Connection url grammars:
  udp://:PORT          bind a UDP listener on PORT, all interfaces
  udp://HOST:PORT       connect outbound to a UDP peer (not implemented)
  serial://DEVICE:BAUD  open a serial device at the given baud rate

Examples:
  # Listen for a vehicle over UDP on the default MAVLink port
  %s --connection=udp://:14550

  # Bridge a vehicle on a serial telemetry radio
  %s --connection=serial:///dev/ttyUSB0:57600 --grpc=0.0.0.0:50051

  # Use environment variables instead of flags
  export MAVLINK2GRPC_CONNECTION=udp://:14550
  %s

Version: %s
`, os.Args[0], os.Args[0], os.Args[0], Version)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
