package mavlinkpb

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/karakayahuseyin/mavlink2grpc/internal/dialect"
)

func TestFromDialectRoundTripsHeartbeat(t *testing.T) {
	hb := dialect.Heartbeat{
		CustomMode:     7,
		Type:           1,
		Autopilot:      3,
		BaseMode:       81,
		SystemStatus:   4,
		MavlinkVersion: 3,
	}

	msg := FromDialect(1, 1, 5, hb)
	assert.True(t, HasPayload(msg))
	assert.Equal(t, uint32(0), msg.MessageId)
	assert.Equal(t, uint32(5), msg.Sequence)

	back := ToDialect(msg)
	assert.Equal(t, hb, back)
}

func TestFromDialectRoundTripsGeneric(t *testing.T) {
	g := dialect.Generic{ID: 999, Raw: []byte{1, 2, 3}}
	msg := FromDialect(1, 1, 0, g)
	assert.True(t, HasPayload(msg))

	back := ToDialect(msg)
	assert.Equal(t, g, back)
}

func TestHasPayloadFalseForEmptyMessage(t *testing.T) {
	msg := &MavlinkMessage{SystemId: 1}
	assert.False(t, HasPayload(msg))
}
