package transport

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnsupportedBaudRateFailsOpen(t *testing.T) {
	s := NewSerial(SerialConfig{Device: "/dev/null", Baud: 12345}, nil)
	err := s.Open()
	assert.Error(t, err)
	assert.False(t, s.IsOpen())
}

func TestSupportedBaudRatesAreKnown(t *testing.T) {
	for _, baud := range []int{9600, 19200, 57600, 115200, 921600, 4000000} {
		_, ok := baudRates[baud]
		assert.True(t, ok, "expected %d to be a supported baud rate", baud)
	}
}

func TestSerialCloseIdempotentWhenNeverOpened(t *testing.T) {
	s := NewSerial(SerialConfig{Device: "/dev/ttyUSB0", Baud: 57600}, nil)
	assert.False(t, s.IsOpen())
	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())
}

// A regular file opens fine but isn't a tty, so the termios ioctl fails.
// That failure is non-retryable, so Open should return well within a
// single retry backoff window rather than exhausting all attempts.
func TestOpenOnNonTTYDeviceFailsFastWithoutRetrying(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "not-a-tty")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	s := NewSerial(SerialConfig{Device: f.Name(), Baud: 57600}, nil)

	start := time.Now()
	err = s.Open()
	elapsed := time.Since(start)

	assert.Error(t, err)
	assert.False(t, s.IsOpen())
	assert.Less(t, elapsed, 50*time.Millisecond, "non-retryable termios failure should not incur retry backoff")
}
