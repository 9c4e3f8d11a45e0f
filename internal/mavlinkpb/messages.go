// Package mavlinkpb defines the wire-level message types exchanged over
// the bridge's gRPC surface. There is no .proto source and no protoc-gen-go
// pipeline in this tree; these types are hand-authored in the shape
// protoc-gen-go would emit for a file with this schema; see DESIGN.md for
// why that tradeoff was made. They implement the legacy (v1) proto.Message
// surface — Reset/String/ProtoMessage — which is not enough to satisfy
// grpc-go's built-in protobuf codec (that requires ProtoReflect), so
// codec.go registers a JSON-based replacement codec under the "proto"
// content-subtype name instead.
package mavlinkpb

import "fmt"

// StreamFilter selects which messages a StreamMessages call receives.
// SystemID or ComponentID of 0 means "any"; an empty MessageIDs means "any
// message id".
type StreamFilter struct {
	SystemId    uint32   `protobuf:"varint,1,opt,name=system_id,json=systemId,proto3" json:"system_id,omitempty"`
	ComponentId uint32   `protobuf:"varint,2,opt,name=component_id,json=componentId,proto3" json:"component_id,omitempty"`
	MessageIds  []uint32 `protobuf:"varint,3,rep,packed,name=message_ids,json=messageIds,proto3" json:"message_ids,omitempty"`
}

func (m *StreamFilter) Reset()         { *m = StreamFilter{} }
func (m *StreamFilter) String() string { return fmt.Sprintf("%+v", *m) }
func (*StreamFilter) ProtoMessage()    {}

func (m *StreamFilter) GetSystemId() uint32 {
	if m != nil {
		return m.SystemId
	}
	return 0
}

func (m *StreamFilter) GetComponentId() uint32 {
	if m != nil {
		return m.ComponentId
	}
	return 0
}

func (m *StreamFilter) GetMessageIds() []uint32 {
	if m != nil {
		return m.MessageIds
	}
	return nil
}

// MavlinkMessage is the structured wire form of one MAVLink frame. Payload
// is a oneof over the dialect's known message types: it holds the
// MavlinkMessage_* wrapper for the active message id, or MavlinkMessage_Raw
// for an unrecognized message id (mirroring dialect.Generic).
type MavlinkMessage struct {
	SystemId    uint32 `protobuf:"varint,1,opt,name=system_id,json=systemId,proto3" json:"system_id,omitempty"`
	ComponentId uint32 `protobuf:"varint,2,opt,name=component_id,json=componentId,proto3" json:"component_id,omitempty"`
	MessageId   uint32 `protobuf:"varint,3,opt,name=message_id,json=messageId,proto3" json:"message_id,omitempty"`
	Sequence    uint32 `protobuf:"varint,4,opt,name=sequence,proto3" json:"sequence,omitempty"`

	// Payload is a oneof; it holds one of the MavlinkMessage_* wrappers below.
	Payload isMavlinkMessage_Payload `protobuf_oneof:"payload"`
}

func (m *MavlinkMessage) Reset()         { *m = MavlinkMessage{} }
func (m *MavlinkMessage) String() string { return fmt.Sprintf("%+v", *m) }
func (*MavlinkMessage) ProtoMessage()    {}

func (m *MavlinkMessage) GetSystemId() uint32 {
	if m != nil {
		return m.SystemId
	}
	return 0
}

func (m *MavlinkMessage) GetComponentId() uint32 {
	if m != nil {
		return m.ComponentId
	}
	return 0
}

func (m *MavlinkMessage) GetMessageId() uint32 {
	if m != nil {
		return m.MessageId
	}
	return 0
}

func (m *MavlinkMessage) GetSequence() uint32 {
	if m != nil {
		return m.Sequence
	}
	return 0
}

type isMavlinkMessage_Payload interface {
	isMavlinkMessage_Payload()
}

type MavlinkMessage_Heartbeat struct {
	Heartbeat *Heartbeat `protobuf:"bytes,10,opt,name=heartbeat,proto3,oneof"`
}

type MavlinkMessage_SysStatus struct {
	SysStatus *SysStatus `protobuf:"bytes,11,opt,name=sys_status,json=sysStatus,proto3,oneof"`
}

type MavlinkMessage_Attitude struct {
	Attitude *Attitude `protobuf:"bytes,12,opt,name=attitude,proto3,oneof"`
}

type MavlinkMessage_GlobalPositionInt struct {
	GlobalPositionInt *GlobalPositionInt `protobuf:"bytes,13,opt,name=global_position_int,json=globalPositionInt,proto3,oneof"`
}

type MavlinkMessage_CommandLong struct {
	CommandLong *CommandLong `protobuf:"bytes,14,opt,name=command_long,json=commandLong,proto3,oneof"`
}

type MavlinkMessage_CommandAck struct {
	CommandAck *CommandAck `protobuf:"bytes,15,opt,name=command_ack,json=commandAck,proto3,oneof"`
}

type MavlinkMessage_Raw struct {
	Raw []byte `protobuf:"bytes,16,opt,name=raw,proto3,oneof"`
}

func (*MavlinkMessage_Heartbeat) isMavlinkMessage_Payload()         {}
func (*MavlinkMessage_SysStatus) isMavlinkMessage_Payload()         {}
func (*MavlinkMessage_Attitude) isMavlinkMessage_Payload()          {}
func (*MavlinkMessage_GlobalPositionInt) isMavlinkMessage_Payload() {}
func (*MavlinkMessage_CommandLong) isMavlinkMessage_Payload()       {}
func (*MavlinkMessage_CommandAck) isMavlinkMessage_Payload()        {}
func (*MavlinkMessage_Raw) isMavlinkMessage_Payload()               {}

// Heartbeat mirrors dialect.Heartbeat (MAVLink message id 0).
type Heartbeat struct {
	Type           uint32 `protobuf:"varint,1,opt,name=type,proto3" json:"type,omitempty"`
	Autopilot      uint32 `protobuf:"varint,2,opt,name=autopilot,proto3" json:"autopilot,omitempty"`
	BaseMode       uint32 `protobuf:"varint,3,opt,name=base_mode,json=baseMode,proto3" json:"base_mode,omitempty"`
	CustomMode     uint32 `protobuf:"varint,4,opt,name=custom_mode,json=customMode,proto3" json:"custom_mode,omitempty"`
	SystemStatus   uint32 `protobuf:"varint,5,opt,name=system_status,json=systemStatus,proto3" json:"system_status,omitempty"`
	MavlinkVersion uint32 `protobuf:"varint,6,opt,name=mavlink_version,json=mavlinkVersion,proto3" json:"mavlink_version,omitempty"`
}

func (m *Heartbeat) Reset()         { *m = Heartbeat{} }
func (m *Heartbeat) String() string { return fmt.Sprintf("%+v", *m) }
func (*Heartbeat) ProtoMessage()    {}

// SysStatus mirrors dialect.SysStatus (MAVLink message id 1).
type SysStatus struct {
	OnboardControlSensorsPresent uint32 `protobuf:"varint,1,opt,name=onboard_control_sensors_present,json=onboardControlSensorsPresent,proto3" json:"onboard_control_sensors_present,omitempty"`
	OnboardControlSensorsEnabled uint32 `protobuf:"varint,2,opt,name=onboard_control_sensors_enabled,json=onboardControlSensorsEnabled,proto3" json:"onboard_control_sensors_enabled,omitempty"`
	OnboardControlSensorsHealth  uint32 `protobuf:"varint,3,opt,name=onboard_control_sensors_health,json=onboardControlSensorsHealth,proto3" json:"onboard_control_sensors_health,omitempty"`
	Load                         uint32 `protobuf:"varint,4,opt,name=load,proto3" json:"load,omitempty"`
	VoltageBattery               uint32 `protobuf:"varint,5,opt,name=voltage_battery,json=voltageBattery,proto3" json:"voltage_battery,omitempty"`
	CurrentBattery               int32  `protobuf:"zigzag32,6,opt,name=current_battery,json=currentBattery,proto3" json:"current_battery,omitempty"`
	DropRateComm                 uint32 `protobuf:"varint,7,opt,name=drop_rate_comm,json=dropRateComm,proto3" json:"drop_rate_comm,omitempty"`
	ErrorsComm                   uint32 `protobuf:"varint,8,opt,name=errors_comm,json=errorsComm,proto3" json:"errors_comm,omitempty"`
	ErrorsCount1                 uint32 `protobuf:"varint,9,opt,name=errors_count1,json=errorsCount1,proto3" json:"errors_count1,omitempty"`
	ErrorsCount2                 uint32 `protobuf:"varint,10,opt,name=errors_count2,json=errorsCount2,proto3" json:"errors_count2,omitempty"`
	ErrorsCount3                 uint32 `protobuf:"varint,11,opt,name=errors_count3,json=errorsCount3,proto3" json:"errors_count3,omitempty"`
	ErrorsCount4                 uint32 `protobuf:"varint,12,opt,name=errors_count4,json=errorsCount4,proto3" json:"errors_count4,omitempty"`
	BatteryRemaining             int32  `protobuf:"zigzag32,13,opt,name=battery_remaining,json=batteryRemaining,proto3" json:"battery_remaining,omitempty"`
}

func (m *SysStatus) Reset()         { *m = SysStatus{} }
func (m *SysStatus) String() string { return fmt.Sprintf("%+v", *m) }
func (*SysStatus) ProtoMessage()    {}

// Attitude mirrors dialect.Attitude (MAVLink message id 30).
type Attitude struct {
	TimeBootMs uint32  `protobuf:"varint,1,opt,name=time_boot_ms,json=timeBootMs,proto3" json:"time_boot_ms,omitempty"`
	Roll       float32 `protobuf:"fixed32,2,opt,name=roll,proto3" json:"roll,omitempty"`
	Pitch      float32 `protobuf:"fixed32,3,opt,name=pitch,proto3" json:"pitch,omitempty"`
	Yaw        float32 `protobuf:"fixed32,4,opt,name=yaw,proto3" json:"yaw,omitempty"`
	RollSpeed  float32 `protobuf:"fixed32,5,opt,name=rollspeed,proto3" json:"rollspeed,omitempty"`
	PitchSpeed float32 `protobuf:"fixed32,6,opt,name=pitchspeed,proto3" json:"pitchspeed,omitempty"`
	YawSpeed   float32 `protobuf:"fixed32,7,opt,name=yawspeed,proto3" json:"yawspeed,omitempty"`
}

func (m *Attitude) Reset()         { *m = Attitude{} }
func (m *Attitude) String() string { return fmt.Sprintf("%+v", *m) }
func (*Attitude) ProtoMessage()    {}

// GlobalPositionInt mirrors dialect.GlobalPositionInt (MAVLink message id 33).
type GlobalPositionInt struct {
	TimeBootMs uint32 `protobuf:"varint,1,opt,name=time_boot_ms,json=timeBootMs,proto3" json:"time_boot_ms,omitempty"`
	Lat        int32  `protobuf:"zigzag32,2,opt,name=lat,proto3" json:"lat,omitempty"`
	Lon        int32  `protobuf:"zigzag32,3,opt,name=lon,proto3" json:"lon,omitempty"`
	Alt        int32  `protobuf:"zigzag32,4,opt,name=alt,proto3" json:"alt,omitempty"`
	RelativeAlt int32 `protobuf:"zigzag32,5,opt,name=relative_alt,json=relativeAlt,proto3" json:"relative_alt,omitempty"`
	Vx         int32  `protobuf:"zigzag32,6,opt,name=vx,proto3" json:"vx,omitempty"`
	Vy         int32  `protobuf:"zigzag32,7,opt,name=vy,proto3" json:"vy,omitempty"`
	Vz         int32  `protobuf:"zigzag32,8,opt,name=vz,proto3" json:"vz,omitempty"`
	Hdg        uint32 `protobuf:"varint,9,opt,name=hdg,proto3" json:"hdg,omitempty"`
}

func (m *GlobalPositionInt) Reset()         { *m = GlobalPositionInt{} }
func (m *GlobalPositionInt) String() string { return fmt.Sprintf("%+v", *m) }
func (*GlobalPositionInt) ProtoMessage()    {}

// CommandLong mirrors dialect.CommandLong (MAVLink message id 76).
type CommandLong struct {
	TargetSystem    uint32  `protobuf:"varint,1,opt,name=target_system,json=targetSystem,proto3" json:"target_system,omitempty"`
	TargetComponent uint32  `protobuf:"varint,2,opt,name=target_component,json=targetComponent,proto3" json:"target_component,omitempty"`
	Command         uint32  `protobuf:"varint,3,opt,name=command,proto3" json:"command,omitempty"`
	Confirmation    uint32  `protobuf:"varint,4,opt,name=confirmation,proto3" json:"confirmation,omitempty"`
	Param1          float32 `protobuf:"fixed32,5,opt,name=param1,proto3" json:"param1,omitempty"`
	Param2          float32 `protobuf:"fixed32,6,opt,name=param2,proto3" json:"param2,omitempty"`
	Param3          float32 `protobuf:"fixed32,7,opt,name=param3,proto3" json:"param3,omitempty"`
	Param4          float32 `protobuf:"fixed32,8,opt,name=param4,proto3" json:"param4,omitempty"`
	Param5          float32 `protobuf:"fixed32,9,opt,name=param5,proto3" json:"param5,omitempty"`
	Param6          float32 `protobuf:"fixed32,10,opt,name=param6,proto3" json:"param6,omitempty"`
	Param7          float32 `protobuf:"fixed32,11,opt,name=param7,proto3" json:"param7,omitempty"`
}

func (m *CommandLong) Reset()         { *m = CommandLong{} }
func (m *CommandLong) String() string { return fmt.Sprintf("%+v", *m) }
func (*CommandLong) ProtoMessage()    {}

// CommandAck mirrors dialect.CommandAck (MAVLink message id 77).
type CommandAck struct {
	Command uint32 `protobuf:"varint,1,opt,name=command,proto3" json:"command,omitempty"`
	Result  uint32 `protobuf:"varint,2,opt,name=result,proto3" json:"result,omitempty"`
}

func (m *CommandAck) Reset()         { *m = CommandAck{} }
func (m *CommandAck) String() string { return fmt.Sprintf("%+v", *m) }
func (*CommandAck) ProtoMessage()    {}

// SendResponse is returned by the unary SendMessage RPC.
type SendResponse struct {
	Success bool   `protobuf:"varint,1,opt,name=success,proto3" json:"success,omitempty"`
	Error   string `protobuf:"bytes,2,opt,name=error,proto3" json:"error,omitempty"`
}

func (m *SendResponse) Reset()         { *m = SendResponse{} }
func (m *SendResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*SendResponse) ProtoMessage()    {}
