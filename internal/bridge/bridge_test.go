package bridge

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/karakayahuseyin/mavlink2grpc/internal/mavlinkpb"
)

func TestNewRejectsUnrecognizedScheme(t *testing.T) {
	_, err := New(Config{ConnectionURL: "tcp://127.0.0.1:9999", GRPCAddr: "127.0.0.1:0"})
	require.Error(t, err)
}

func TestNewRejectsOutboundUDPPeer(t *testing.T) {
	_, err := New(Config{ConnectionURL: "udp://192.168.1.1:14550", GRPCAddr: "127.0.0.1:0"})
	require.Error(t, err)
}

func TestStartStopIsIdempotentAndServesGRPC(t *testing.T) {
	b, err := New(Config{
		ConnectionURL: "udp://:0",
		GRPCAddr:      "127.0.0.1:0",
		SystemID:      1,
		ComponentID:   1,
	})
	require.NoError(t, err)

	require.NoError(t, b.Start())
	require.NoError(t, b.Start()) // idempotent, no panic or double-listen

	addr := b.grpcAddr()
	require.NotEmpty(t, addr)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	conn, err := grpc.DialContext(ctx, addr, grpc.WithTransportCredentials(insecure.NewCredentials()), grpc.WithBlock())
	require.NoError(t, err)
	defer conn.Close()

	client := mavlinkpb.NewMavlinkServiceClient(conn)
	resp, err := client.SendMessage(ctx, &mavlinkpb.MavlinkMessage{SystemId: 1})
	assert.Error(t, err) // empty payload is rejected by the service, but the round trip itself must succeed
	assert.Nil(t, resp)

	b.Stop()
	b.Stop() // idempotent
}
