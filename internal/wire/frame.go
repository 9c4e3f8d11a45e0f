// Package wire implements the MAVLink v1/v2 byte-framing state machine:
// CRC-16/MCRF4XX validation, sequence-carrying frame headers, and a
// byte-fed parser that turns a raw stream into validated frames.
package wire

import "fmt"

const (
	startByteV1 = 0xFE
	startByteV2 = 0xFD

	// MaxPacketLen is the largest possible MAVLink v2 packet: 10-byte
	// header, 255-byte payload, 2-byte CRC, 13-byte signature.
	MaxPacketLen = 280

	signatureLen = 13

	incompatFlagSigned = 0x01
)

// Status is the outcome of feeding one byte into the parser.
type Status int

const (
	// StatusIncomplete means the frame is not yet fully received.
	StatusIncomplete Status = iota
	// StatusOK means a complete, checksum-valid frame is ready.
	StatusOK
	// StatusBadCRC means a complete frame was received but its checksum
	// did not match.
	StatusBadCRC
	// StatusBadHeader means the header carried a reserved/unsupported bit
	// combination; the parser resynchronized on the stream.
	StatusBadHeader
)

func (s Status) String() string {
	switch s {
	case StatusIncomplete:
		return "incomplete"
	case StatusOK:
		return "ok"
	case StatusBadCRC:
		return "bad_crc"
	case StatusBadHeader:
		return "bad_header"
	default:
		return "unknown"
	}
}

// Frame is one complete, validated MAVLink message: header fields plus an
// opaque payload. The parser never interprets the payload; that is the
// converter's job (see internal/dialect).
type Frame struct {
	Version       uint8
	Sequence      uint8
	SystemID      uint8
	ComponentID   uint8
	MessageID     uint32
	Payload       []byte
	IncompatFlags byte
	CompatFlags   byte
	Signature     []byte // non-nil only for a signed v2 frame
}

func (f Frame) String() string {
	return fmt.Sprintf("Frame{v%d sys=%d comp=%d msg=%d seq=%d len=%d}",
		f.Version, f.SystemID, f.ComponentID, f.MessageID, f.Sequence, len(f.Payload))
}

type parserState int

const (
	stateIdle parserState = iota
	stateLen
	stateIncompatFlags
	stateCompatFlags
	stateSeq
	stateSysID
	stateCompID
	stateMsgID
	statePayload
	stateCRCLow
	stateCRCHigh
	stateSignature
)

// Parser is a byte-fed MAVLink v1/v2 state machine. It carries no
// concurrency guarantees of its own: the engine assigns one Parser per
// receive channel and feeds it exclusively from its receive loop.
type Parser struct {
	channel int
	state   parserState

	version uint8
	length  int
	msgID   uint32
	msgIDBytesLeft int

	incompatFlags byte
	compatFlags   byte
	seq           uint8
	sysID         uint8
	compID        uint8

	payload    []byte
	payloadIdx int

	crc      *CRC
	crcLow   byte
	sigLeft  int
	signature []byte
	pendingCRCOK bool

	frame Frame
}

// NewParser returns a Parser for the given channel index. The channel index
// exists only to disambiguate log lines and statistics when a transport
// multiplexes several logical connections; the state machine itself does
// not use it.
func NewParser(channel int) *Parser {
	p := &Parser{channel: channel}
	p.reset()
	return p
}

// Channel returns the parser's channel index.
func (p *Parser) Channel() int { return p.channel }

func (p *Parser) reset() {
	p.state = stateIdle
	p.payload = nil
	p.payloadIdx = 0
	p.signature = nil
	p.msgID = 0
	p.msgIDBytesLeft = 0
}

// Feed advances the state machine by one byte. It returns StatusIncomplete
// until a full frame has been accumulated, at which point it returns
// StatusOK (with frame populated), StatusBadCRC, or StatusBadHeader (frame
// is the zero value in both failure cases). The parser has already
// resynchronized by the time it returns a non-OK terminal status; the next
// Feed call resumes hunting for a new start byte.
func (p *Parser) Feed(b byte) (Status, Frame) {
	switch p.state {
	case stateIdle:
		switch b {
		case startByteV1:
			p.version = 1
			p.state = stateLen
		case startByteV2:
			p.version = 2
			p.state = stateLen
		}
		return StatusIncomplete, Frame{}

	case stateLen:
		p.length = int(b)
		p.crc = NewCRC()
		p.crc.Update(b)
		if p.version == 2 {
			p.state = stateIncompatFlags
		} else {
			p.state = stateSeq
		}
		return StatusIncomplete, Frame{}

	case stateIncompatFlags:
		if b&^incompatFlagSigned != 0 {
			p.reset()
			return StatusBadHeader, Frame{}
		}
		p.incompatFlags = b
		p.crc.Update(b)
		p.state = stateCompatFlags
		return StatusIncomplete, Frame{}

	case stateCompatFlags:
		p.compatFlags = b
		p.crc.Update(b)
		p.state = stateSeq
		return StatusIncomplete, Frame{}

	case stateSeq:
		p.seq = b
		p.crc.Update(b)
		p.state = stateSysID
		return StatusIncomplete, Frame{}

	case stateSysID:
		p.sysID = b
		p.crc.Update(b)
		p.state = stateCompID
		return StatusIncomplete, Frame{}

	case stateCompID:
		p.compID = b
		p.crc.Update(b)
		p.msgID = 0
		if p.version == 2 {
			p.msgIDBytesLeft = 3
		} else {
			p.msgIDBytesLeft = 1
		}
		p.state = stateMsgID
		return StatusIncomplete, Frame{}

	case stateMsgID:
		p.crc.Update(b)
		idLen := 1
		if p.version == 2 {
			idLen = 3
		}
		shift := uint(idLen-p.msgIDBytesLeft) * 8
		p.msgID |= uint32(b) << shift
		p.msgIDBytesLeft--
		if p.msgIDBytesLeft == 0 {
			p.payload = make([]byte, p.length)
			p.payloadIdx = 0
			if p.length == 0 {
				p.state = stateCRCLow
			} else {
				p.state = statePayload
			}
		}
		return StatusIncomplete, Frame{}

	case statePayload:
		p.crc.Update(b)
		p.payload[p.payloadIdx] = b
		p.payloadIdx++
		if p.payloadIdx == p.length {
			p.state = stateCRCLow
		}
		return StatusIncomplete, Frame{}

	case stateCRCLow:
		p.crcLow = b
		p.state = stateCRCHigh
		return StatusIncomplete, Frame{}

	case stateCRCHigh:
		crcHigh := b
		got := uint16(p.crcLow) | uint16(crcHigh)<<8
		want := p.crc.Finish(crcExtraFor(p.msgID))

		f := Frame{
			Version:       p.version,
			Sequence:      p.seq,
			SystemID:      p.sysID,
			ComponentID:   p.compID,
			MessageID:     p.msgID,
			Payload:       p.payload,
			IncompatFlags: p.incompatFlags,
			CompatFlags:   p.compatFlags,
		}

		if p.version == 2 && p.incompatFlags&incompatFlagSigned != 0 {
			p.sigLeft = signatureLen
			p.signature = make([]byte, 0, signatureLen)
			p.frame = f
			p.state = stateSignature
			if got != want {
				// Still consume the signature bytes to stay in sync with
				// the stream, but the frame is already known-bad.
				p.frame.MessageID = f.MessageID
			}
			p.pendingCRCOK = got == want
			return StatusIncomplete, Frame{}
		}

		p.reset()
		if got != want {
			return StatusBadCRC, Frame{}
		}
		return StatusOK, f

	case stateSignature:
		p.signature = append(p.signature, b)
		p.sigLeft--
		if p.sigLeft == 0 {
			f := p.frame
			f.Signature = p.signature
			ok := p.pendingCRCOK
			p.reset()
			if !ok {
				return StatusBadCRC, Frame{}
			}
			return StatusOK, f
		}
		return StatusIncomplete, Frame{}
	}

	return StatusIncomplete, Frame{}
}
