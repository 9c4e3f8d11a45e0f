package transport

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"github.com/karakayahuseyin/mavlink2grpc/internal/errors"
	"github.com/karakayahuseyin/mavlink2grpc/internal/retry"
)

// readDeadline bounds each ReadFromUDP call so the engine's "non-blocking
// read" contract holds without a raw non-blocking socket: a timeout is
// indistinguishable from "no data right now" to the caller.
const readDeadline = 100 * time.Millisecond

// UDPConfig configures the UDP transport backend.
type UDPConfig struct {
	// BindAddr is the local interface to bind; empty means all interfaces.
	BindAddr string
	// Port is the local UDP port to bind.
	Port int
	// Broadcast enables SO_BROADCAST and, when no remote has been learned
	// yet, sends to the limited broadcast address on Write.
	Broadcast bool
}

// UDP is the UDP-datagram transport backend (spec 4.1.1): non-blocking
// reads, "learn on receive" remote endpoint tracking, and best-effort
// fan-out writes to every learned remote.
type UDP struct {
	cfg    UDPConfig
	logger *slog.Logger

	mu      sync.RWMutex
	conn    *net.UDPConn
	remotes map[string]*net.UDPAddr
}

// NewUDP returns a UDP transport in the closed state.
func NewUDP(cfg UDPConfig, logger *slog.Logger) *UDP {
	if logger == nil {
		logger = slog.Default()
	}
	return &UDP{
		cfg:     cfg,
		logger:  logger.With("transport", "udp", "port", cfg.Port),
		remotes: make(map[string]*net.UDPAddr),
	}
}

// Open binds the UDP socket, retrying transient bind failures (e.g. a port
// still held by a recently-exited process) with backoff. Idempotent:
// calling Open on an already-open transport is a no-op.
func (u *UDP) Open() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.conn != nil {
		return nil
	}

	bind := func() error { return u.bindSocket() }
	if err := retry.Do(context.Background(), retry.BindSocket(), bind); err != nil {
		return errors.WrapTransient(err, "transport.udp", "Open", "bind socket")
	}

	u.logger.Info("udp transport open", "bind", u.cfg.BindAddr, "broadcast", u.cfg.Broadcast)
	return nil
}

// bindSocket performs one bind attempt; called under u.mu by Open, directly
// or via retry.Do.
func (u *UDP) bindSocket() error {
	lc := net.ListenConfig{
		Control: func(network, address string, c syscall.RawConn) error {
			var sockErr error
			err := c.Control(func(fd uintptr) {
				sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
				if sockErr != nil {
					return
				}
				if u.cfg.Broadcast {
					sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_BROADCAST, 1)
				}
			})
			if err != nil {
				return err
			}
			return sockErr
		},
	}

	addr := fmt.Sprintf("%s:%d", u.cfg.BindAddr, u.cfg.Port)
	pc, err := lc.ListenPacket(context.Background(), "udp", addr)
	if err != nil {
		return err
	}

	conn, ok := pc.(*net.UDPConn)
	if !ok {
		_ = pc.Close()
		return fmt.Errorf("unexpected packet conn type %T", pc)
	}

	u.conn = conn
	return nil
}

// Close closes the socket. Safe to call repeatedly.
func (u *UDP) Close() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.conn == nil {
		return nil
	}
	err := u.conn.Close()
	u.conn = nil
	u.remotes = make(map[string]*net.UDPAddr)
	if err != nil {
		return errors.Wrap(err, "transport.udp", "Close", "close socket")
	}
	return nil
}

// IsOpen reports whether the socket is currently bound.
func (u *UDP) IsOpen() bool {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.conn != nil
}

// LocalAddr returns the bound local address, or nil if not open.
func (u *UDP) LocalAddr() net.Addr {
	u.mu.RLock()
	defer u.mu.RUnlock()
	if u.conn == nil {
		return nil
	}
	return u.conn.LocalAddr()
}

// Read returns (0, nil) when no datagram arrived within the read deadline.
// A non-nil error means the socket is no longer usable.
func (u *UDP) Read(buf []byte) (int, error) {
	u.mu.RLock()
	conn := u.conn
	u.mu.RUnlock()

	if conn == nil {
		return 0, errors.ErrNoConnection
	}

	if err := conn.SetReadDeadline(time.Now().Add(readDeadline)); err != nil {
		return 0, errors.WrapTransient(err, "transport.udp", "Read", "set deadline")
	}

	n, remote, err := conn.ReadFromUDP(buf)
	if err != nil {
		if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
			return 0, nil
		}
		return 0, errors.WrapTransient(err, "transport.udp", "Read", "read datagram")
	}

	u.learn(remote)
	return n, nil
}

// learn records a newly observed remote endpoint ("learn on receive").
func (u *UDP) learn(remote *net.UDPAddr) {
	key := remote.String()

	u.mu.RLock()
	_, known := u.remotes[key]
	u.mu.RUnlock()
	if known {
		return
	}

	u.mu.Lock()
	u.remotes[key] = remote
	u.mu.Unlock()
	u.logger.Debug("learned remote endpoint", "remote", key)
}

// Write sends buf to every learned remote endpoint. With no learned remotes
// and Broadcast enabled, it sends once to the limited broadcast address.
func (u *UDP) Write(buf []byte) (int, error) {
	u.mu.RLock()
	conn := u.conn
	remotes := make([]*net.UDPAddr, 0, len(u.remotes))
	for _, r := range u.remotes {
		remotes = append(remotes, r)
	}
	u.mu.RUnlock()

	if conn == nil {
		return 0, errors.ErrNoConnection
	}

	if len(remotes) == 0 {
		if !u.cfg.Broadcast {
			return 0, nil
		}
		broadcast := &net.UDPAddr{IP: net.IPv4bcast, Port: u.cfg.Port}
		n, err := conn.WriteToUDP(buf, broadcast)
		if err != nil {
			return n, errors.WrapTransient(err, "transport.udp", "Write", "broadcast datagram")
		}
		return n, nil
	}

	var lastErr error
	sent := 0
	for _, remote := range remotes {
		n, err := conn.WriteToUDP(buf, remote)
		if err != nil {
			lastErr = err
			continue
		}
		sent = n
	}
	if lastErr != nil && sent == 0 {
		return 0, errors.WrapTransient(lastErr, "transport.udp", "Write", "send datagram")
	}
	return sent, nil
}
