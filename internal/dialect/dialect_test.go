package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeartbeatRoundTrip(t *testing.T) {
	original := Heartbeat{
		CustomMode:     1234,
		Type:           2,
		Autopilot:      3,
		BaseMode:       81,
		SystemStatus:   4,
		MavlinkVersion: 3,
	}
	decoded, err := FromWire(MsgHeartbeat, original.ToWire())
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestAttitudeRoundTrip(t *testing.T) {
	original := Attitude{
		TimeBootMs: 99,
		Roll:       0.125,
		Pitch:      -0.5,
		Yaw:        3.14159,
		RollSpeed:  0.01,
		PitchSpeed: -0.02,
		YawSpeed:   0.03,
	}
	decoded, err := FromWire(MsgAttitude, original.ToWire())
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestGlobalPositionIntRoundTrip(t *testing.T) {
	original := GlobalPositionInt{
		TimeBootMs:  1000,
		Lat:         473977420,
		Lon:         85455940,
		Alt:         500000,
		RelativeAlt: 100000,
		Vx:          -150,
		Vy:          200,
		Vz:          5,
		Hdg:         18000,
	}
	decoded, err := FromWire(MsgGlobalPositionInt, original.ToWire())
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestCommandLongRoundTrip(t *testing.T) {
	original := CommandLong{
		Param1:          1,
		Param2:          2,
		Param3:          0,
		Param4:          0,
		Param5:          0,
		Param6:          0,
		Param7:          0,
		Command:         400,
		TargetSystem:    1,
		TargetComponent: 1,
		Confirmation:    0,
	}
	decoded, err := FromWire(MsgCommandLong, original.ToWire())
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestCommandAckRoundTrip(t *testing.T) {
	original := CommandAck{Command: 400, Result: 0}
	decoded, err := FromWire(MsgCommandAck, original.ToWire())
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestSysStatusRoundTrip(t *testing.T) {
	original := SysStatus{
		OnboardControlSensorsPresent: 1,
		OnboardControlSensorsEnabled: 2,
		OnboardControlSensorsHealth:  3,
		Load:                         500,
		VoltageBattery:               12600,
		CurrentBattery:               -1,
		DropRateComm:                 0,
		ErrorsComm:                   0,
		ErrorsCount1:                 0,
		ErrorsCount2:                 0,
		ErrorsCount3:                 0,
		ErrorsCount4:                 0,
		BatteryRemaining:             -1,
	}
	decoded, err := FromWire(MsgSysStatus, original.ToWire())
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestUnknownMessageIDFallsBackToGeneric(t *testing.T) {
	raw := []byte{1, 2, 3, 4}
	decoded, err := FromWire(9999, raw)
	require.NoError(t, err)

	generic, ok := decoded.(Generic)
	require.True(t, ok)
	assert.Equal(t, uint32(9999), generic.MessageID())
	assert.Equal(t, raw, generic.ToWire())
}

func TestShortPayloadRejected(t *testing.T) {
	_, err := FromWire(MsgCommandLong, []byte{1, 2, 3})
	assert.Error(t, err)
}
