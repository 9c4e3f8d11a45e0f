package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedAll(t *testing.T, p *Parser, data []byte) (Status, Frame) {
	t.Helper()
	var status Status
	var frame Frame
	for _, b := range data {
		status, frame = p.Feed(b)
		if status != StatusIncomplete {
			return status, frame
		}
	}
	return status, frame
}

func TestEncodeDecodeRoundTripV1(t *testing.T) {
	original := Frame{
		Version:     1,
		Sequence:    7,
		SystemID:    1,
		ComponentID: 1,
		MessageID:   0, // HEARTBEAT
		Payload:     []byte{1, 2, 3, 4, 5, 6, 7, 8, 9},
	}

	encoded, err := Encode(original)
	require.NoError(t, err)

	p := NewParser(0)
	status, decoded := feedAll(t, p, encoded)

	require.Equal(t, StatusOK, status)
	assert.Equal(t, original.Sequence, decoded.Sequence)
	assert.Equal(t, original.SystemID, decoded.SystemID)
	assert.Equal(t, original.ComponentID, decoded.ComponentID)
	assert.Equal(t, original.MessageID, decoded.MessageID)
	assert.Equal(t, original.Payload, decoded.Payload)
}

func TestEncodeDecodeRoundTripV2(t *testing.T) {
	original := Frame{
		Version:     2,
		Sequence:    250,
		SystemID:    42,
		ComponentID: 1,
		MessageID:   33, // GLOBAL_POSITION_INT
		Payload:     make([]byte, 28),
	}
	for i := range original.Payload {
		original.Payload[i] = byte(i)
	}

	encoded, err := Encode(original)
	require.NoError(t, err)

	p := NewParser(0)
	status, decoded := feedAll(t, p, encoded)

	require.Equal(t, StatusOK, status)
	assert.Equal(t, original.MessageID, decoded.MessageID)
	assert.Equal(t, original.Payload, decoded.Payload)
}

func TestBadCRCDetected(t *testing.T) {
	original := Frame{
		Version:     1,
		Sequence:    1,
		SystemID:    1,
		ComponentID: 1,
		MessageID:   0,
		Payload:     []byte{1, 2, 3, 4, 5, 6, 7, 8, 9},
	}
	encoded, err := Encode(original)
	require.NoError(t, err)

	// Flip a payload byte to corrupt the frame without touching the CRC.
	encoded[8] ^= 0xFF

	p := NewParser(0)
	status, _ := feedAll(t, p, encoded)
	assert.Equal(t, StatusBadCRC, status)
}

func TestParserResynchronizesAfterGarbage(t *testing.T) {
	p := NewParser(0)

	// Feed noise, then a valid frame.
	garbage := []byte{0x00, 0x11, 0x22, 0x33}
	for _, b := range garbage {
		status, _ := p.Feed(b)
		assert.Equal(t, StatusIncomplete, status)
	}

	original := Frame{
		Version:     1,
		Sequence:    3,
		SystemID:    1,
		ComponentID: 1,
		MessageID:   0,
		Payload:     []byte{9, 8, 7, 6, 5, 4, 3, 2, 1},
	}
	encoded, err := Encode(original)
	require.NoError(t, err)

	status, decoded := feedAll(t, p, encoded)
	require.Equal(t, StatusOK, status)
	assert.Equal(t, original.Sequence, decoded.Sequence)
}

func TestParserRecoversAfterOneBadFrame(t *testing.T) {
	p := NewParser(0)

	bad := Frame{Version: 1, Sequence: 0, SystemID: 1, ComponentID: 1, MessageID: 0, Payload: []byte{1, 2, 3, 4, 5, 6, 7, 8, 9}}
	encodedBad, err := Encode(bad)
	require.NoError(t, err)
	encodedBad[8] ^= 0xFF

	status, _ := feedAll(t, p, encodedBad)
	require.Equal(t, StatusBadCRC, status)

	good := Frame{Version: 1, Sequence: 1, SystemID: 1, ComponentID: 1, MessageID: 0, Payload: []byte{1, 2, 3, 4, 5, 6, 7, 8, 9}}
	encodedGood, err := Encode(good)
	require.NoError(t, err)

	status, decoded := feedAll(t, p, encodedGood)
	require.Equal(t, StatusOK, status)
	assert.Equal(t, uint8(1), decoded.Sequence)
}

func TestReservedIncompatFlagBitsRejected(t *testing.T) {
	p := NewParser(0)
	status, _ := p.Feed(startByteV2)
	require.Equal(t, StatusIncomplete, status)
	status, _ = p.Feed(0) // length
	require.Equal(t, StatusIncomplete, status)
	status, _ = p.Feed(0x02) // reserved bit set, only 0x01 (signed) is defined
	assert.Equal(t, StatusBadHeader, status)
}
