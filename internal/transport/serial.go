package transport

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/karakayahuseyin/mavlink2grpc/internal/errors"
	"github.com/karakayahuseyin/mavlink2grpc/internal/retry"
)

// baudRates maps a requested baud rate to its termios speed constant. Only
// the standard rates between 9600 and 4000000 are supported; anything else
// fails Open per spec.
var baudRates = map[int]uint32{
	9600:    unix.B9600,
	19200:   unix.B19200,
	38400:   unix.B38400,
	57600:   unix.B57600,
	115200:  unix.B115200,
	230400:  unix.B230400,
	460800:  unix.B460800,
	500000:  unix.B500000,
	576000:  unix.B576000,
	921600:  unix.B921600,
	1000000: unix.B1000000,
	1152000: unix.B1152000,
	1500000: unix.B1500000,
	2000000: unix.B2000000,
	2500000: unix.B2500000,
	3000000: unix.B3000000,
	3500000: unix.B3500000,
	4000000: unix.B4000000,
}

// SerialConfig configures the serial transport backend.
type SerialConfig struct {
	Device string
	Baud   int
}

// Serial is the serial-line transport backend (spec 4.1.2): 8-N-1 raw mode
// configured via termios, with the original line discipline restored on
// Close.
type Serial struct {
	cfg    SerialConfig
	logger *slog.Logger

	mu       sync.RWMutex
	file     *os.File
	original *unix.Termios
}

// NewSerial returns a Serial transport in the closed state.
func NewSerial(cfg SerialConfig, logger *slog.Logger) *Serial {
	if logger == nil {
		logger = slog.Default()
	}
	return &Serial{
		cfg:    cfg,
		logger: logger.With("transport", "serial", "device", cfg.Device),
	}
}

// Open opens the device non-blockingly, snapshots its current termios
// configuration, then configures 8-N-1 raw mode at the requested baud. The
// device open itself is retried with backoff, since a telemetry radio can
// take a moment to enumerate after being plugged in; a bad baud rate or a
// termios failure is never retried.
func (s *Serial) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file != nil {
		return nil
	}

	speed, ok := baudRates[s.cfg.Baud]
	if !ok {
		return errors.WrapInvalid(fmt.Errorf("unsupported baud rate %d", s.cfg.Baud),
			"transport.serial", "Open", "baud rate lookup")
	}

	openDevice := func() error { return s.openDevice(speed) }
	if err := retry.Do(context.Background(), retry.SerialOpen(), openDevice); err != nil {
		if fatal, ok := err.(*retry.NonRetryableError); ok {
			return errors.WrapFatal(fatal.Unwrap(), "transport.serial", "Open", "configure device")
		}
		return errors.WrapTransient(err, "transport.serial", "Open", "open device")
	}

	s.logger.Info("serial transport open", "baud", s.cfg.Baud)
	return nil
}

// openDevice performs one open-and-configure attempt; called under s.mu by
// Open, directly or via retry.Do. Termios failures are non-retryable: they
// indicate a device that opened but isn't a serial line, not a transient
// condition another attempt would clear.
func (s *Serial) openDevice(speed uint32) error {
	f, err := os.OpenFile(s.cfg.Device, os.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK, 0)
	if err != nil {
		return err
	}

	fd := int(f.Fd())
	original, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		_ = f.Close()
		return retry.NonRetryable(err)
	}

	raw := *original
	rawMode(&raw, speed)

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, &raw); err != nil {
		_ = f.Close()
		return retry.NonRetryable(err)
	}

	s.file = f
	s.original = original
	return nil
}

// rawMode configures t for 8 data bits, no parity, 1 stop bit, no
// canonical processing, no echo, no signal generation, no output
// post-processing, and fully non-blocking reads (VMIN=0, VTIME=0).
func rawMode(t *unix.Termios, speed uint32) {
	t.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP |
		unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	t.Oflag &^= unix.OPOST
	t.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	t.Cflag &^= unix.CSIZE | unix.PARENB | unix.CSTOPB
	t.Cflag |= unix.CS8 | unix.CREAD | unix.CLOCAL

	t.Cflag &^= unix.CBAUD
	t.Cflag |= speed & unix.CBAUD
	t.Ispeed = speed
	t.Ospeed = speed

	t.Cc[unix.VMIN] = 0
	t.Cc[unix.VTIME] = 0
}

// Close restores the original termios configuration before releasing the
// descriptor. Safe to call repeatedly.
func (s *Serial) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}

	fd := int(s.file.Fd())
	if s.original != nil {
		_ = unix.IoctlSetTermios(fd, unix.TCSETS, s.original)
	}

	err := s.file.Close()
	s.file = nil
	s.original = nil
	if err != nil {
		return errors.Wrap(err, "transport.serial", "Close", "close device")
	}
	return nil
}

// IsOpen reports whether the device is currently open.
func (s *Serial) IsOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.file != nil
}

// Read returns (0, nil) when no bytes are available. O_NONBLOCK plus
// VMIN=0/VTIME=0 means a read with nothing pending returns EAGAIN
// immediately, which Read normalizes to a zero count.
func (s *Serial) Read(buf []byte) (int, error) {
	s.mu.RLock()
	f := s.file
	s.mu.RUnlock()

	if f == nil {
		return 0, errors.ErrNoConnection
	}

	n, err := f.Read(buf)
	if err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return 0, nil
		}
		if pe, ok := err.(*os.PathError); ok && (pe.Err == unix.EAGAIN || pe.Err == unix.EWOULDBLOCK) {
			return 0, nil
		}
		return n, errors.WrapTransient(err, "transport.serial", "Read", "read device")
	}
	return n, nil
}

// Write is a thin wrapper over the device write; EAGAIN/EWOULDBLOCK are
// normalized to a zero count rather than treated as an error.
func (s *Serial) Write(buf []byte) (int, error) {
	s.mu.RLock()
	f := s.file
	s.mu.RUnlock()

	if f == nil {
		return 0, errors.ErrNoConnection
	}

	n, err := f.Write(buf)
	if err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return 0, nil
		}
		if pe, ok := err.(*os.PathError); ok && (pe.Err == unix.EAGAIN || pe.Err == unix.EWOULDBLOCK) {
			return 0, nil
		}
		return n, errors.WrapTransient(err, "transport.serial", "Write", "write device")
	}
	return n, nil
}
