package wire

// CRCExtra holds the per-message-id byte mixed into the CRC-16/MCRF4XX
// checksum. It is a build-time property of the dialect: every message
// definition contributes one CRC_EXTRA byte derived from its field layout,
// so mismatched dialect versions produce a checksum failure instead of a
// silent misparse.
//
// The table below covers the common-dialect messages this bridge speaks
// (see internal/dialect); the values are the canonical ones published by
// the MAVLink common dialect definition.
var CRCExtra = map[uint32]byte{
	0:  50,  // HEARTBEAT
	1:  124, // SYS_STATUS
	30: 39,  // ATTITUDE
	33: 104, // GLOBAL_POSITION_INT
	76: 152, // COMMAND_LONG
	77: 143, // COMMAND_ACK
}

// crcExtraFor returns the CRC_EXTRA byte for a message id, or 0 for an
// unknown id. Unknown ids still checksum (against 0), so unrecognized
// messages from a newer dialect are framed correctly but fail CRC
// validation, exactly as a real MAVLink peer would observe.
func crcExtraFor(msgID uint32) byte {
	return CRCExtra[msgID]
}
