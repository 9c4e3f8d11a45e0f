package mavlinkpb

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

// codecName matches the "proto" content-subtype grpc-go assumes by default
// (the wire path is "application/grpc+proto" whenever a client doesn't
// request anything else), so registering under this name overrides the
// codec google.golang.org/grpc/encoding/proto installs via its own init,
// without requiring every caller to set a CallContentSubtype.
const codecName = "proto"

// codec marshals mavlinkpb's hand-authored message structs as JSON rather
// than real protobuf wire format. These types implement only the legacy
// Reset/String/ProtoMessage trio (see messages.go), not ProtoReflect, so
// they cannot satisfy google.golang.org/protobuf/proto.Message and the
// grpc-go's built-in codec would fail to marshal them. A generated
// protoc-gen-go pipeline would make this codec unnecessary; until one
// exists, this is the layer that lets MavlinkServiceServer/Client move
// these types over a grpc.ClientConnInterface at all.
type codec struct{}

func (codec) Marshal(v interface{}) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("mavlinkpb: marshal %T: %w", v, err)
	}
	return b, nil
}

func (codec) Unmarshal(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("mavlinkpb: unmarshal into %T: %w", v, err)
	}
	return nil
}

func (codec) Name() string { return codecName }

func init() {
	encoding.RegisterCodec(codec{})
}
