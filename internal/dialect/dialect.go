// Package dialect is the hand-authored stand-in for what a MAVLink XML
// dialect code-generation pipeline would emit: a closed set of message
// payload types plus pure ToWire/FromWire functions translating between
// the wire struct layout and a Go value. Building the XML-to-Go generator
// itself is out of scope; this package is the product such a generator
// would produce for the subset of the common dialect this bridge speaks.
package dialect

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Message ids for the common-dialect subset this bridge understands.
const (
	MsgHeartbeat           uint32 = 0
	MsgSysStatus           uint32 = 1
	MsgAttitude            uint32 = 30
	MsgGlobalPositionInt   uint32 = 33
	MsgCommandLong         uint32 = 76
	MsgCommandAck          uint32 = 77
)

// Payload is the sum type over known message bodies, plus Generic for
// anything outside the dialect subset. Every variant is both a wire form
// and an RPC-ready structured form; there is no separate "converter"
// struct because the generated struct tags already carry the layout.
type Payload interface {
	// MessageID returns the dialect message id this payload encodes.
	MessageID() uint32
	// ToWire serializes the payload into its fixed-layout wire bytes.
	ToWire() []byte
}

// FromWire decodes a payload for the given message id. Unknown ids decode
// to Generic, carrying the raw bytes untouched; this lets the bridge relay
// messages it cannot interpret instead of dropping them.
func FromWire(msgID uint32, payload []byte) (Payload, error) {
	switch msgID {
	case MsgHeartbeat:
		return decodeHeartbeat(payload)
	case MsgSysStatus:
		return decodeSysStatus(payload)
	case MsgAttitude:
		return decodeAttitude(payload)
	case MsgGlobalPositionInt:
		return decodeGlobalPositionInt(payload)
	case MsgCommandLong:
		return decodeCommandLong(payload)
	case MsgCommandAck:
		return decodeCommandAck(payload)
	default:
		return Generic{ID: msgID, Raw: append([]byte(nil), payload...)}, nil
	}
}

// padTo right-pads payload with zeros to length n, mirroring the MAVLink
// v2 trailing-zero trimming a real sender applies before transmission.
func padTo(payload []byte, n int) []byte {
	if len(payload) >= n {
		return payload
	}
	out := make([]byte, n)
	copy(out, payload)
	return out
}

func requireLen(payload []byte, n int, name string) error {
	if len(payload) < n {
		return fmt.Errorf("dialect: %s payload too short: got %d want >= %d", name, len(payload), n)
	}
	return nil
}

// Generic carries the raw payload bytes for a message id outside the
// dialect subset, so the bridge can still relay it without loss.
type Generic struct {
	ID  uint32
	Raw []byte
}

func (g Generic) MessageID() uint32 { return g.ID }
func (g Generic) ToWire() []byte    { return g.Raw }

// Heartbeat is message id 0. Wire layout, fields ordered by descending
// size per the MAVLink field-reordering rule: custom_mode (u32), then the
// five u8 fields in declaration order.
type Heartbeat struct {
	CustomMode     uint32
	Type           uint8
	Autopilot      uint8
	BaseMode       uint8
	SystemStatus   uint8
	MavlinkVersion uint8
}

func (h Heartbeat) MessageID() uint32 { return MsgHeartbeat }

func (h Heartbeat) ToWire() []byte {
	buf := make([]byte, 9)
	binary.LittleEndian.PutUint32(buf[0:4], h.CustomMode)
	buf[4] = h.Type
	buf[5] = h.Autopilot
	buf[6] = h.BaseMode
	buf[7] = h.SystemStatus
	buf[8] = h.MavlinkVersion
	return buf
}

func decodeHeartbeat(payload []byte) (Payload, error) {
	if err := requireLen(payload, 5, "HEARTBEAT"); err != nil {
		return nil, err
	}
	payload = padTo(payload, 9)
	return Heartbeat{
		CustomMode:     binary.LittleEndian.Uint32(payload[0:4]),
		Type:           payload[4],
		Autopilot:      payload[5],
		BaseMode:       payload[6],
		SystemStatus:   payload[7],
		MavlinkVersion: payload[8],
	}, nil
}

// SysStatus is message id 1.
type SysStatus struct {
	OnboardControlSensorsPresent uint32
	OnboardControlSensorsEnabled uint32
	OnboardControlSensorsHealth  uint32
	Load                         uint16
	VoltageBattery               uint16
	CurrentBattery               int16
	DropRateComm                 uint16
	ErrorsComm                   uint16
	ErrorsCount1                 uint16
	ErrorsCount2                 uint16
	ErrorsCount3                 uint16
	ErrorsCount4                 uint16
	BatteryRemaining             int8
}

func (s SysStatus) MessageID() uint32 { return MsgSysStatus }

func (s SysStatus) ToWire() []byte {
	buf := make([]byte, 31)
	binary.LittleEndian.PutUint32(buf[0:4], s.OnboardControlSensorsPresent)
	binary.LittleEndian.PutUint32(buf[4:8], s.OnboardControlSensorsEnabled)
	binary.LittleEndian.PutUint32(buf[8:12], s.OnboardControlSensorsHealth)
	binary.LittleEndian.PutUint16(buf[12:14], s.Load)
	binary.LittleEndian.PutUint16(buf[14:16], s.VoltageBattery)
	binary.LittleEndian.PutUint16(buf[16:18], uint16(s.CurrentBattery))
	binary.LittleEndian.PutUint16(buf[18:20], s.DropRateComm)
	binary.LittleEndian.PutUint16(buf[20:22], s.ErrorsComm)
	binary.LittleEndian.PutUint16(buf[22:24], s.ErrorsCount1)
	binary.LittleEndian.PutUint16(buf[24:26], s.ErrorsCount2)
	binary.LittleEndian.PutUint16(buf[26:28], s.ErrorsCount3)
	binary.LittleEndian.PutUint16(buf[28:30], s.ErrorsCount4)
	buf[30] = byte(s.BatteryRemaining)
	return buf
}

func decodeSysStatus(payload []byte) (Payload, error) {
	if err := requireLen(payload, 31, "SYS_STATUS"); err != nil {
		return nil, err
	}
	return SysStatus{
		OnboardControlSensorsPresent: binary.LittleEndian.Uint32(payload[0:4]),
		OnboardControlSensorsEnabled: binary.LittleEndian.Uint32(payload[4:8]),
		OnboardControlSensorsHealth:  binary.LittleEndian.Uint32(payload[8:12]),
		Load:                         binary.LittleEndian.Uint16(payload[12:14]),
		VoltageBattery:               binary.LittleEndian.Uint16(payload[14:16]),
		CurrentBattery:               int16(binary.LittleEndian.Uint16(payload[16:18])),
		DropRateComm:                 binary.LittleEndian.Uint16(payload[18:20]),
		ErrorsComm:                   binary.LittleEndian.Uint16(payload[20:22]),
		ErrorsCount1:                 binary.LittleEndian.Uint16(payload[22:24]),
		ErrorsCount2:                 binary.LittleEndian.Uint16(payload[24:26]),
		ErrorsCount3:                 binary.LittleEndian.Uint16(payload[26:28]),
		ErrorsCount4:                 binary.LittleEndian.Uint16(payload[28:30]),
		BatteryRemaining:             int8(payload[30]),
	}, nil
}

// Attitude is message id 30.
type Attitude struct {
	TimeBootMs uint32
	Roll       float32
	Pitch      float32
	Yaw        float32
	RollSpeed  float32
	PitchSpeed float32
	YawSpeed   float32
}

func (a Attitude) MessageID() uint32 { return MsgAttitude }

func (a Attitude) ToWire() []byte {
	buf := make([]byte, 28)
	binary.LittleEndian.PutUint32(buf[0:4], a.TimeBootMs)
	putFloat32(buf[4:8], a.Roll)
	putFloat32(buf[8:12], a.Pitch)
	putFloat32(buf[12:16], a.Yaw)
	putFloat32(buf[16:20], a.RollSpeed)
	putFloat32(buf[20:24], a.PitchSpeed)
	putFloat32(buf[24:28], a.YawSpeed)
	return buf
}

func decodeAttitude(payload []byte) (Payload, error) {
	if err := requireLen(payload, 28, "ATTITUDE"); err != nil {
		return nil, err
	}
	return Attitude{
		TimeBootMs: binary.LittleEndian.Uint32(payload[0:4]),
		Roll:       getFloat32(payload[4:8]),
		Pitch:      getFloat32(payload[8:12]),
		Yaw:        getFloat32(payload[12:16]),
		RollSpeed:  getFloat32(payload[16:20]),
		PitchSpeed: getFloat32(payload[20:24]),
		YawSpeed:   getFloat32(payload[24:28]),
	}, nil
}

// GlobalPositionInt is message id 33.
type GlobalPositionInt struct {
	TimeBootMs  uint32
	Lat         int32
	Lon         int32
	Alt         int32
	RelativeAlt int32
	Vx          int16
	Vy          int16
	Vz          int16
	Hdg         uint16
}

func (g GlobalPositionInt) MessageID() uint32 { return MsgGlobalPositionInt }

func (g GlobalPositionInt) ToWire() []byte {
	buf := make([]byte, 28)
	binary.LittleEndian.PutUint32(buf[0:4], g.TimeBootMs)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(g.Lat))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(g.Lon))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(g.Alt))
	binary.LittleEndian.PutUint32(buf[16:20], uint32(g.RelativeAlt))
	binary.LittleEndian.PutUint16(buf[20:22], uint16(g.Vx))
	binary.LittleEndian.PutUint16(buf[22:24], uint16(g.Vy))
	binary.LittleEndian.PutUint16(buf[24:26], uint16(g.Vz))
	binary.LittleEndian.PutUint16(buf[26:28], g.Hdg)
	return buf
}

func decodeGlobalPositionInt(payload []byte) (Payload, error) {
	if err := requireLen(payload, 28, "GLOBAL_POSITION_INT"); err != nil {
		return nil, err
	}
	return GlobalPositionInt{
		TimeBootMs:  binary.LittleEndian.Uint32(payload[0:4]),
		Lat:         int32(binary.LittleEndian.Uint32(payload[4:8])),
		Lon:         int32(binary.LittleEndian.Uint32(payload[8:12])),
		Alt:         int32(binary.LittleEndian.Uint32(payload[12:16])),
		RelativeAlt: int32(binary.LittleEndian.Uint32(payload[16:20])),
		Vx:          int16(binary.LittleEndian.Uint16(payload[20:22])),
		Vy:          int16(binary.LittleEndian.Uint16(payload[22:24])),
		Vz:          int16(binary.LittleEndian.Uint16(payload[24:26])),
		Hdg:         binary.LittleEndian.Uint16(payload[26:28]),
	}, nil
}

// CommandLong is message id 76.
type CommandLong struct {
	Param1          float32
	Param2          float32
	Param3          float32
	Param4          float32
	Param5          float32
	Param6          float32
	Param7          float32
	Command         uint16
	TargetSystem    uint8
	TargetComponent uint8
	Confirmation    uint8
}

func (c CommandLong) MessageID() uint32 { return MsgCommandLong }

func (c CommandLong) ToWire() []byte {
	buf := make([]byte, 33)
	putFloat32(buf[0:4], c.Param1)
	putFloat32(buf[4:8], c.Param2)
	putFloat32(buf[8:12], c.Param3)
	putFloat32(buf[12:16], c.Param4)
	putFloat32(buf[16:20], c.Param5)
	putFloat32(buf[20:24], c.Param6)
	putFloat32(buf[24:28], c.Param7)
	binary.LittleEndian.PutUint16(buf[28:30], c.Command)
	buf[30] = c.TargetSystem
	buf[31] = c.TargetComponent
	buf[32] = c.Confirmation
	return buf
}

func decodeCommandLong(payload []byte) (Payload, error) {
	if err := requireLen(payload, 33, "COMMAND_LONG"); err != nil {
		return nil, err
	}
	return CommandLong{
		Param1:          getFloat32(payload[0:4]),
		Param2:          getFloat32(payload[4:8]),
		Param3:          getFloat32(payload[8:12]),
		Param4:          getFloat32(payload[12:16]),
		Param5:          getFloat32(payload[16:20]),
		Param6:          getFloat32(payload[20:24]),
		Param7:          getFloat32(payload[24:28]),
		Command:         binary.LittleEndian.Uint16(payload[28:30]),
		TargetSystem:    payload[30],
		TargetComponent: payload[31],
		Confirmation:    payload[32],
	}, nil
}

// CommandAck is message id 77. Only the base (non-extension) fields are
// modeled: command and result.
type CommandAck struct {
	Command uint16
	Result  uint8
}

func (c CommandAck) MessageID() uint32 { return MsgCommandAck }

func (c CommandAck) ToWire() []byte {
	buf := make([]byte, 3)
	binary.LittleEndian.PutUint16(buf[0:2], c.Command)
	buf[2] = c.Result
	return buf
}

func decodeCommandAck(payload []byte) (Payload, error) {
	if err := requireLen(payload, 3, "COMMAND_ACK"); err != nil {
		return nil, err
	}
	return CommandAck{
		Command: binary.LittleEndian.Uint16(payload[0:2]),
		Result:  payload[2],
	}, nil
}

func putFloat32(buf []byte, v float32) {
	binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
}

func getFloat32(buf []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf))
}
