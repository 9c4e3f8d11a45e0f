package mavlinkpb

import "github.com/karakayahuseyin/mavlink2grpc/internal/dialect"

// FromDialect converts a decoded dialect payload plus its wire envelope
// into the oneof-shaped MavlinkMessage sent over the stream RPC.
func FromDialect(systemID, componentID uint8, sequence uint8, payload dialect.Payload) *MavlinkMessage {
	m := &MavlinkMessage{
		SystemId:    uint32(systemID),
		ComponentId: uint32(componentID),
		MessageId:   payload.MessageID(),
		Sequence:    uint32(sequence),
	}

	switch p := payload.(type) {
	case dialect.Heartbeat:
		m.Payload = &MavlinkMessage_Heartbeat{Heartbeat: &Heartbeat{
			Type:           uint32(p.Type),
			Autopilot:      uint32(p.Autopilot),
			BaseMode:       uint32(p.BaseMode),
			CustomMode:     p.CustomMode,
			SystemStatus:   uint32(p.SystemStatus),
			MavlinkVersion: uint32(p.MavlinkVersion),
		}}
	case dialect.SysStatus:
		m.Payload = &MavlinkMessage_SysStatus{SysStatus: &SysStatus{
			OnboardControlSensorsPresent: p.OnboardControlSensorsPresent,
			OnboardControlSensorsEnabled: p.OnboardControlSensorsEnabled,
			OnboardControlSensorsHealth:  p.OnboardControlSensorsHealth,
			Load:                         uint32(p.Load),
			VoltageBattery:               uint32(p.VoltageBattery),
			CurrentBattery:               int32(p.CurrentBattery),
			DropRateComm:                 uint32(p.DropRateComm),
			ErrorsComm:                   uint32(p.ErrorsComm),
			ErrorsCount1:                 uint32(p.ErrorsCount1),
			ErrorsCount2:                 uint32(p.ErrorsCount2),
			ErrorsCount3:                 uint32(p.ErrorsCount3),
			ErrorsCount4:                 uint32(p.ErrorsCount4),
			BatteryRemaining:             int32(p.BatteryRemaining),
		}}
	case dialect.Attitude:
		m.Payload = &MavlinkMessage_Attitude{Attitude: &Attitude{
			TimeBootMs: p.TimeBootMs,
			Roll:       p.Roll,
			Pitch:      p.Pitch,
			Yaw:        p.Yaw,
			RollSpeed:  p.RollSpeed,
			PitchSpeed: p.PitchSpeed,
			YawSpeed:   p.YawSpeed,
		}}
	case dialect.GlobalPositionInt:
		m.Payload = &MavlinkMessage_GlobalPositionInt{GlobalPositionInt: &GlobalPositionInt{
			TimeBootMs:  p.TimeBootMs,
			Lat:         p.Lat,
			Lon:         p.Lon,
			Alt:         p.Alt,
			RelativeAlt: p.RelativeAlt,
			Vx:          int32(p.Vx),
			Vy:          int32(p.Vy),
			Vz:          int32(p.Vz),
			Hdg:         uint32(p.Hdg),
		}}
	case dialect.CommandLong:
		m.Payload = &MavlinkMessage_CommandLong{CommandLong: &CommandLong{
			TargetSystem:    uint32(p.TargetSystem),
			TargetComponent: uint32(p.TargetComponent),
			Command:         uint32(p.Command),
			Confirmation:    uint32(p.Confirmation),
			Param1:          p.Param1,
			Param2:          p.Param2,
			Param3:          p.Param3,
			Param4:          p.Param4,
			Param5:          p.Param5,
			Param6:          p.Param6,
			Param7:          p.Param7,
		}}
	case dialect.CommandAck:
		m.Payload = &MavlinkMessage_CommandAck{CommandAck: &CommandAck{
			Command: uint32(p.Command),
			Result:  uint32(p.Result),
		}}
	case dialect.Generic:
		m.Payload = &MavlinkMessage_Raw{Raw: p.Raw}
	}

	return m
}

// ToDialect converts the oneof payload on m back into a dialect.Payload for
// re-encoding onto the wire. Returns dialect.Generic when no known variant
// is set.
func ToDialect(m *MavlinkMessage) dialect.Payload {
	switch p := m.Payload.(type) {
	case *MavlinkMessage_Heartbeat:
		h := p.Heartbeat
		return dialect.Heartbeat{
			Type:           uint8(h.Type),
			Autopilot:      uint8(h.Autopilot),
			BaseMode:       uint8(h.BaseMode),
			CustomMode:     h.CustomMode,
			SystemStatus:   uint8(h.SystemStatus),
			MavlinkVersion: uint8(h.MavlinkVersion),
		}
	case *MavlinkMessage_SysStatus:
		s := p.SysStatus
		return dialect.SysStatus{
			OnboardControlSensorsPresent: s.OnboardControlSensorsPresent,
			OnboardControlSensorsEnabled: s.OnboardControlSensorsEnabled,
			OnboardControlSensorsHealth:  s.OnboardControlSensorsHealth,
			Load:                         uint16(s.Load),
			VoltageBattery:               uint16(s.VoltageBattery),
			CurrentBattery:               int16(s.CurrentBattery),
			DropRateComm:                 uint16(s.DropRateComm),
			ErrorsComm:                   uint16(s.ErrorsComm),
			ErrorsCount1:                 uint16(s.ErrorsCount1),
			ErrorsCount2:                 uint16(s.ErrorsCount2),
			ErrorsCount3:                 uint16(s.ErrorsCount3),
			ErrorsCount4:                 uint16(s.ErrorsCount4),
			BatteryRemaining:             int8(s.BatteryRemaining),
		}
	case *MavlinkMessage_Attitude:
		a := p.Attitude
		return dialect.Attitude{
			TimeBootMs: a.TimeBootMs,
			Roll:       a.Roll,
			Pitch:      a.Pitch,
			Yaw:        a.Yaw,
			RollSpeed:  a.RollSpeed,
			PitchSpeed: a.PitchSpeed,
			YawSpeed:   a.YawSpeed,
		}
	case *MavlinkMessage_GlobalPositionInt:
		g := p.GlobalPositionInt
		return dialect.GlobalPositionInt{
			TimeBootMs:  g.TimeBootMs,
			Lat:         g.Lat,
			Lon:         g.Lon,
			Alt:         g.Alt,
			RelativeAlt: g.RelativeAlt,
			Vx:          int16(g.Vx),
			Vy:          int16(g.Vy),
			Vz:          int16(g.Vz),
			Hdg:         uint16(g.Hdg),
		}
	case *MavlinkMessage_CommandLong:
		c := p.CommandLong
		return dialect.CommandLong{
			TargetSystem:    uint8(c.TargetSystem),
			TargetComponent: uint8(c.TargetComponent),
			Command:         uint16(c.Command),
			Confirmation:    uint8(c.Confirmation),
			Param1:          c.Param1,
			Param2:          c.Param2,
			Param3:          c.Param3,
			Param4:          c.Param4,
			Param5:          c.Param5,
			Param6:          c.Param6,
			Param7:          c.Param7,
		}
	case *MavlinkMessage_CommandAck:
		c := p.CommandAck
		return dialect.CommandAck{
			Command: uint16(c.Command),
			Result:  uint8(c.Result),
		}
	case *MavlinkMessage_Raw:
		return dialect.Generic{ID: m.MessageId, Raw: p.Raw}
	default:
		return dialect.Generic{ID: m.MessageId}
	}
}

// HasPayload reports whether m carries a populated oneof variant, used by
// the unary send handler to reject empty sends with INVALID_ARGUMENT.
func HasPayload(m *MavlinkMessage) bool {
	return m != nil && m.Payload != nil
}
