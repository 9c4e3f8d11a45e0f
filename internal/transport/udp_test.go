package transport

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUDPOpenCloseIdempotent(t *testing.T) {
	u := NewUDP(UDPConfig{BindAddr: "127.0.0.1", Port: 0}, nil)
	require.NoError(t, u.Open())
	require.NoError(t, u.Open()) // idempotent
	assert.True(t, u.IsOpen())

	require.NoError(t, u.Close())
	require.NoError(t, u.Close()) // idempotent
	assert.False(t, u.IsOpen())
}

func TestUDPReadReturnsZeroWithNoData(t *testing.T) {
	u := NewUDP(UDPConfig{BindAddr: "127.0.0.1", Port: 0}, nil)
	require.NoError(t, u.Open())
	defer u.Close()

	buf := make([]byte, 64)
	n, err := u.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestUDPLearnsRemoteAndEchoes(t *testing.T) {
	u := NewUDP(UDPConfig{BindAddr: "127.0.0.1", Port: 0}, nil)
	require.NoError(t, u.Open())
	defer u.Close()

	localAddr := u.LocalAddr().(*net.UDPAddr)

	peer, err := net.DialUDP("udp", nil, localAddr)
	require.NoError(t, err)
	defer peer.Close()

	_, err = peer.Write([]byte("hello"))
	require.NoError(t, err)

	buf := make([]byte, 64)
	var n int
	for i := 0; i < 20; i++ {
		n, err = u.Read(buf)
		require.NoError(t, err)
		if n > 0 {
			break
		}
	}
	require.Equal(t, 5, n)
	assert.Equal(t, "hello", string(buf[:n]))

	sent, err := u.Write([]byte("world"))
	require.NoError(t, err)
	assert.Equal(t, 5, sent)

	_ = peer.SetReadDeadline(time.Now().Add(time.Second))
	reply := make([]byte, 64)
	n2, _ := peer.Read(reply)
	assert.Equal(t, "world", string(reply[:n2]))
}

// A second bind to an already-bound port is a transient failure, so Open
// retries with backoff before giving up. The elapsed time should reflect at
// least one retry sleep, distinguishing this from a single bare attempt.
// Two SO_REUSEADDR sockets may share a UDP port, so the port is held by a
// plain socket that does not set it.
func TestUDPOpenRetriesOnPortInUseBeforeFailing(t *testing.T) {
	held, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 0})
	require.NoError(t, err)
	defer held.Close()

	port := held.LocalAddr().(*net.UDPAddr).Port

	contender := NewUDP(UDPConfig{BindAddr: "127.0.0.1", Port: port}, nil)

	start := time.Now()
	err = contender.Open()
	elapsed := time.Since(start)

	assert.Error(t, err)
	assert.False(t, contender.IsOpen())
	assert.GreaterOrEqual(t, elapsed, 100*time.Millisecond, "expected at least one retry backoff before giving up")
}
