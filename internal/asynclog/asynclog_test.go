package asynclog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerDeliversRecordsToSink(t *testing.T) {
	var buf bytes.Buffer
	sink := slog.NewTextHandler(&buf, nil)
	h := NewHandler(sink, Config{QueueSize: 16})
	h.Start()
	defer h.Close()

	logger := slog.New(h)
	logger.Info("hello", "n", 1)

	require.Eventually(t, func() bool {
		return bytes.Contains(buf.Bytes(), []byte("hello"))
	}, time.Second, 5*time.Millisecond)
}

func TestHandleNeverBlocksOnFullQueue(t *testing.T) {
	sink := slog.NewTextHandler(&bytes.Buffer{}, nil)
	h := NewHandler(sink, Config{QueueSize: 1})
	// Drain goroutine deliberately not started: every Write beyond the
	// single slot must drop the oldest rather than block the caller.

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			r := slog.NewRecord(time.Now(), slog.LevelInfo, "msg", 0)
			_ = h.Handle(context.Background(), r)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Handle blocked on a full queue")
	}
}

func TestCloseFlushesRemainingRecords(t *testing.T) {
	var buf bytes.Buffer
	sink := slog.NewTextHandler(&buf, nil)
	h := NewHandler(sink, Config{QueueSize: 16})
	// Not started: records queue up unread until Close flushes them.

	logger := slog.New(h)
	logger.Info("queued-before-start")

	require.NoError(t, h.Close())
	assert.Contains(t, buf.String(), "queued-before-start")
}

func TestOnDropCallbackInvokedOnOverflow(t *testing.T) {
	sink := slog.NewTextHandler(&bytes.Buffer{}, nil)

	var drops int64
	h := NewHandler(sink, Config{
		QueueSize: 1,
		OnDrop:    func(d int64) { drops = d },
	})

	for i := 0; i < 5; i++ {
		r := slog.NewRecord(time.Now(), slog.LevelInfo, "msg", 0)
		_ = h.Handle(context.Background(), r)
	}

	assert.Greater(t, drops, int64(0))
}

func TestWithAttrsSharesQueueAndDrain(t *testing.T) {
	var buf bytes.Buffer
	sink := slog.NewTextHandler(&buf, nil)
	h := NewHandler(sink, Config{QueueSize: 16})
	h.Start()
	defer h.Close()

	scoped := h.WithAttrs([]slog.Attr{slog.String("component", "test")})
	logger := slog.New(scoped)
	logger.Info("scoped-record")

	require.Eventually(t, func() bool {
		return bytes.Contains(buf.Bytes(), []byte("scoped-record")) && bytes.Contains(buf.Bytes(), []byte("component=test"))
	}, time.Second, 5*time.Millisecond)
}
