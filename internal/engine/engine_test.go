package engine

import (
	"net"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karakayahuseyin/mavlink2grpc/internal/transport"
	"github.com/karakayahuseyin/mavlink2grpc/internal/wire"
)

func TestEngineReceivesValidFrame(t *testing.T) {
	recv := transport.NewUDP(transport.UDPConfig{BindAddr: "127.0.0.1", Port: 0}, nil)
	require.NoError(t, recv.Open())

	e := New(Config{Transport: recv, SystemID: 1, ComponentID: 1})

	var mu sync.Mutex
	var received []wire.Frame
	e.SetMessageCallback(func(f wire.Frame) {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, f)
	})

	require.NoError(t, e.Start())
	defer e.Stop()

	peerFrame := wire.Frame{Version: 1, Sequence: 0, SystemID: 1, ComponentID: 1, MessageID: 0, Payload: []byte{0, 0, 0, 0, 1, 2, 3, 4, 5}}
	encoded, err := wire.Encode(peerFrame)
	require.NoError(t, err)

	conn, err := net.Dial("udp", recv.LocalAddr().String())
	require.NoError(t, err)
	defer conn.Close()
	_, err = conn.Write(encoded)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) == 1
	}, 2*time.Second, 10*time.Millisecond)

	stats := e.Stats()
	assert.Equal(t, uint64(1), stats.MessagesReceived)
	assert.Equal(t, uint64(0), stats.CRCErrors)
}

func TestEngineCountsSequenceGap(t *testing.T) {
	recv := transport.NewUDP(transport.UDPConfig{BindAddr: "127.0.0.1", Port: 0}, nil)
	require.NoError(t, recv.Open())

	e := New(Config{Transport: recv, SystemID: 1, ComponentID: 1})
	require.NoError(t, e.Start())
	defer e.Stop()

	conn, err := net.Dial("udp", recv.LocalAddr().String())
	require.NoError(t, err)
	defer conn.Close()

	frame0 := wire.Frame{Version: 1, Sequence: 0, SystemID: 1, ComponentID: 1, MessageID: 0, Payload: make([]byte, 9)}
	frame5 := wire.Frame{Version: 1, Sequence: 5, SystemID: 1, ComponentID: 1, MessageID: 0, Payload: make([]byte, 9)}

	enc0, err := wire.Encode(frame0)
	require.NoError(t, err)
	enc5, err := wire.Encode(frame5)
	require.NoError(t, err)

	_, err = conn.Write(enc0)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return e.Stats().MessagesReceived == 1 }, 2*time.Second, 10*time.Millisecond)

	_, err = conn.Write(enc5)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return e.Stats().MessagesReceived == 2 }, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, uint64(1), e.Stats().SequenceGaps)
}

func TestEngineCountsCRCError(t *testing.T) {
	recv := transport.NewUDP(transport.UDPConfig{BindAddr: "127.0.0.1", Port: 0}, nil)
	require.NoError(t, recv.Open())

	e := New(Config{Transport: recv, SystemID: 1, ComponentID: 1})
	var invoked atomic.Uint64
	e.SetMessageCallback(func(wire.Frame) { invoked.Add(1) })
	require.NoError(t, e.Start())
	defer e.Stop()

	conn, err := net.Dial("udp", recv.LocalAddr().String())
	require.NoError(t, err)
	defer conn.Close()

	bad := wire.Frame{Version: 1, Sequence: 0, SystemID: 1, ComponentID: 1, MessageID: 0, Payload: []byte{0, 0, 0, 0, 1, 2, 3, 4, 5}}
	encoded, err := wire.Encode(bad)
	require.NoError(t, err)
	encoded[8] ^= 0xFF // corrupt a payload byte

	_, err = conn.Write(encoded)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return e.Stats().CRCErrors == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, uint64(0), invoked.Load())

	good := wire.Frame{Version: 1, Sequence: 1, SystemID: 1, ComponentID: 1, MessageID: 0, Payload: []byte{0, 0, 0, 0, 1, 2, 3, 4, 5}}
	goodEncoded, err := wire.Encode(good)
	require.NoError(t, err)
	_, err = conn.Write(goodEncoded)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return e.Stats().MessagesReceived == 1 }, 2*time.Second, 10*time.Millisecond)
}

// recordingTransport captures every buffer handed to Write so a test can
// inspect the exact bytes the engine put on the wire, rather than only the
// count of successful sends.
type recordingTransport struct {
	mu     sync.Mutex
	writes [][]byte
	isOpen bool
}

func (r *recordingTransport) Open() error  { r.isOpen = true; return nil }
func (r *recordingTransport) Close() error { r.isOpen = false; return nil }
func (r *recordingTransport) IsOpen() bool { return r.isOpen }
func (r *recordingTransport) Read(buf []byte) (int, error) {
	return 0, nil
}
func (r *recordingTransport) Write(buf []byte) (int, error) {
	cp := make([]byte, len(buf))
	copy(cp, buf)
	r.mu.Lock()
	r.writes = append(r.writes, cp)
	r.mu.Unlock()
	return len(buf), nil
}

func TestEngineSequenceMonotonicityUnderConcurrentSend(t *testing.T) {
	tr := &recordingTransport{}
	require.NoError(t, tr.Open())

	e := New(Config{Transport: tr, SystemID: 1, ComponentID: 1})
	require.NoError(t, e.Start())
	defer e.Stop()

	const goroutines = 3
	const perGoroutine = 200
	const total = goroutines * perGoroutine

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				f := wire.Frame{Version: 1, MessageID: 0, Payload: make([]byte, 9)}
				ok := e.Send(f)
				require.True(t, ok)
			}
		}()
	}
	wg.Wait()

	stats := e.Stats()
	assert.Equal(t, uint64(total), stats.MessagesSent)

	require.Len(t, tr.writes, total)

	seen := make(map[byte]int, total)
	for _, encoded := range tr.writes {
		p := wire.NewParser(0)
		status, frame := feedAllBytes(p, encoded)
		require.Equal(t, wire.StatusOK, status)
		seen[frame.Sequence]++
	}

	// A uint8 sequence counter wraps every 256 sends; with total=600 it
	// wraps twice, so every value 0..255 must appear exactly
	// total/256 or total/256+1 times, never 0 and never more.
	wraps := total / 256
	remainder := total % 256
	for v := 0; v < 256; v++ {
		want := wraps
		if v < remainder {
			want++
		}
		assert.Equalf(t, want, seen[byte(v)], "sequence value %d seen an unexpected number of times", v)
	}

	sum := 0
	for _, count := range seen {
		sum += count
	}
	assert.Equal(t, total, sum, "no stamped sequence byte should be lost or duplicated beyond the expected wrap count")
}

func feedAllBytes(p *wire.Parser, data []byte) (wire.Status, wire.Frame) {
	var status wire.Status
	var frame wire.Frame
	for _, b := range data {
		status, frame = p.Feed(b)
		if status != wire.StatusIncomplete {
			return status, frame
		}
	}
	return status, frame
}
