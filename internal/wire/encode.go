package wire

import "fmt"

// Encode serializes a Frame into its wire bytes. Version must be 1 or 2;
// Sequence, SystemID, ComponentID, MessageID, and Payload must already be
// populated by the caller (the engine stamps Sequence just before this
// call). Signing is not supported: a non-nil Signature is rejected.
func Encode(f Frame) ([]byte, error) {
	if len(f.Payload) > 255 {
		return nil, fmt.Errorf("wire: payload length %d exceeds 255", len(f.Payload))
	}
	if f.Signature != nil {
		return nil, fmt.Errorf("wire: signing outgoing frames is not supported")
	}

	switch f.Version {
	case 1:
		return encodeV1(f), nil
	case 2:
		return encodeV2(f), nil
	default:
		return nil, fmt.Errorf("wire: unsupported protocol version %d", f.Version)
	}
}

func encodeV1(f Frame) []byte {
	buf := make([]byte, 0, 6+len(f.Payload)+2)
	buf = append(buf, startByteV1, byte(len(f.Payload)), f.Sequence, f.SystemID, f.ComponentID, byte(f.MessageID))
	buf = append(buf, f.Payload...)

	crc := NewCRC()
	crc.UpdateBytes(buf[1:])
	sum := crc.Finish(crcExtraFor(f.MessageID))

	buf = append(buf, byte(sum&0xFF), byte(sum>>8))
	return buf
}

func encodeV2(f Frame) []byte {
	buf := make([]byte, 0, 10+len(f.Payload)+2)
	buf = append(buf,
		startByteV2,
		byte(len(f.Payload)),
		f.IncompatFlags,
		f.CompatFlags,
		f.Sequence,
		f.SystemID,
		f.ComponentID,
		byte(f.MessageID),
		byte(f.MessageID>>8),
		byte(f.MessageID>>16),
	)
	buf = append(buf, f.Payload...)

	crc := NewCRC()
	crc.UpdateBytes(buf[1:])
	sum := crc.Finish(crcExtraFor(f.MessageID))

	buf = append(buf, byte(sum&0xFF), byte(sum>>8))
	return buf
}
