package bridge

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/karakayahuseyin/mavlink2grpc/internal/transport"
)

// parsedConnection is the result of parsing a connection URL: exactly one
// of the constructor fields below is populated depending on the scheme.
type parsedConnection struct {
	udp    *transport.UDPConfig
	serial *transport.SerialConfig
}

// parseConnectionURL accepts the three grammars spec.md names:
//
//	udp://:PORT         — UDP listener on the given port, all interfaces
//	udp://HOST:PORT      — outbound UDP peer (declined, not implemented)
//	serial://DEVICE:BAUD — serial device at baud
//
// Any other string is rejected.
func parseConnectionURL(raw string) (parsedConnection, error) {
	switch {
	case strings.HasPrefix(raw, "udp://"):
		return parseUDPURL(strings.TrimPrefix(raw, "udp://"))
	case strings.HasPrefix(raw, "serial://"):
		return parseSerialURL(strings.TrimPrefix(raw, "serial://"))
	default:
		return parsedConnection{}, fmt.Errorf("bridge: unrecognized connection url %q", raw)
	}
}

func parseUDPURL(rest string) (parsedConnection, error) {
	host, portStr, ok := strings.Cut(rest, ":")
	if !ok {
		return parsedConnection{}, fmt.Errorf("bridge: malformed udp url, want udp://[host]:port, got %q", rest)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil || port < 0 || port > 65535 {
		return parsedConnection{}, fmt.Errorf("bridge: invalid udp port %q", portStr)
	}

	if host != "" {
		return parsedConnection{}, fmt.Errorf("bridge: outbound udp peer %q is not implemented, use udp://:PORT", rest)
	}

	return parsedConnection{udp: &transport.UDPConfig{BindAddr: "", Port: port}}, nil
}

func parseSerialURL(rest string) (parsedConnection, error) {
	device, baudStr, ok := strings.Cut(rest, ":")
	if !ok || device == "" {
		return parsedConnection{}, fmt.Errorf("bridge: malformed serial url, want serial://device:baud, got %q", rest)
	}

	baud, err := strconv.Atoi(baudStr)
	if err != nil || baud <= 0 {
		return parsedConnection{}, fmt.Errorf("bridge: invalid serial baud %q", baudStr)
	}

	return parsedConnection{serial: &transport.SerialConfig{Device: device, Baud: baud}}, nil
}
