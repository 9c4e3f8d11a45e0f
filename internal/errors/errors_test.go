package errors

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapPreservesNilAndFormatsMessage(t *testing.T) {
	assert.NoError(t, Wrap(nil, "transport.udp", "Open", "bind socket"))

	err := Wrap(errors.New("boom"), "transport.udp", "Open", "bind socket")
	assert.EqualError(t, err, "transport.udp.Open: bind socket failed: boom")
}

func TestWrapTransientIsRecognizedByIsTransient(t *testing.T) {
	err := WrapTransient(ErrConnectionLost, "transport.udp", "Read", "read datagram")
	assert.True(t, IsTransient(err))
	assert.False(t, IsFatal(err))
	assert.False(t, IsInvalid(err))
	assert.ErrorIs(t, err, ErrConnectionLost)
}

func TestWrapInvalidIsRecognizedByIsInvalid(t *testing.T) {
	err := WrapInvalid(ErrUnknownMessageID, "dialect", "FromWire", "lookup message id")
	assert.True(t, IsInvalid(err))
	assert.False(t, IsTransient(err))
}

func TestWrapFatalIsRecognizedByIsFatal(t *testing.T) {
	err := WrapFatal(ErrNoConnection, "rpcservice", "SendMessage", "engine send")
	assert.True(t, IsFatal(err))
}

func TestContextErrorsClassifyAsTransient(t *testing.T) {
	assert.True(t, IsTransient(context.DeadlineExceeded))
	assert.True(t, IsTransient(context.Canceled))
}

func TestClassifyDefaultsUnknownErrorsToTransient(t *testing.T) {
	assert.Equal(t, ErrorTransient, Classify(errors.New("something odd")))
}

func TestGRPCCodeMapsClassificationToWireCode(t *testing.T) {
	assert.Equal(t, 3, GRPCCode(WrapInvalid(ErrInvalidData, "c", "m", "a")))       // InvalidArgument
	assert.Equal(t, 14, GRPCCode(WrapTransient(ErrConnectionLost, "c", "m", "a"))) // Unavailable
	assert.Equal(t, 13, GRPCCode(WrapFatal(ErrNoConnection, "c", "m", "a")))       // Internal
}

func TestErrorAsRecoversClassifiedErrorDetails(t *testing.T) {
	err := WrapTransient(ErrConnectionTimeout, "transport.serial", "Open", "open device")

	var ce *ClassifiedError
	require := assert.New(t)
	require.True(errors.As(err, &ce))
	require.Equal("transport.serial", ce.Component)
	require.Equal("Open", ce.Operation)
	require.Equal(ErrorTransient, ce.Class)
}
