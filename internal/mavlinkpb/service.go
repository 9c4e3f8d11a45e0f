package mavlinkpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// MavlinkServiceClient is the client API for MavlinkService, matching the
// shape protoc-gen-go-grpc emits for a service with one server-streaming
// and one unary method.
type MavlinkServiceClient interface {
	StreamMessages(ctx context.Context, in *StreamFilter, opts ...grpc.CallOption) (MavlinkService_StreamMessagesClient, error)
	SendMessage(ctx context.Context, in *MavlinkMessage, opts ...grpc.CallOption) (*SendResponse, error)
}

type mavlinkServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewMavlinkServiceClient wraps an established connection as a
// MavlinkServiceClient.
func NewMavlinkServiceClient(cc grpc.ClientConnInterface) MavlinkServiceClient {
	return &mavlinkServiceClient{cc}
}

func (c *mavlinkServiceClient) StreamMessages(ctx context.Context, in *StreamFilter, opts ...grpc.CallOption) (MavlinkService_StreamMessagesClient, error) {
	stream, err := c.cc.NewStream(ctx, &serviceDesc.Streams[0], "/mavlink.MavlinkService/StreamMessages", opts...)
	if err != nil {
		return nil, err
	}
	x := &mavlinkServiceStreamMessagesClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// MavlinkService_StreamMessagesClient is the client-side handle for the
// StreamMessages server-streaming RPC.
type MavlinkService_StreamMessagesClient interface {
	Recv() (*MavlinkMessage, error)
	grpc.ClientStream
}

type mavlinkServiceStreamMessagesClient struct {
	grpc.ClientStream
}

func (x *mavlinkServiceStreamMessagesClient) Recv() (*MavlinkMessage, error) {
	m := new(MavlinkMessage)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *mavlinkServiceClient) SendMessage(ctx context.Context, in *MavlinkMessage, opts ...grpc.CallOption) (*SendResponse, error) {
	out := new(SendResponse)
	err := c.cc.Invoke(ctx, "/mavlink.MavlinkService/SendMessage", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MavlinkServiceServer is the server API for MavlinkService. Implementations
// must embed UnimplementedMavlinkServiceServer for forward compatibility.
type MavlinkServiceServer interface {
	StreamMessages(*StreamFilter, MavlinkService_StreamMessagesServer) error
	SendMessage(context.Context, *MavlinkMessage) (*SendResponse, error)
	mustEmbedUnimplementedMavlinkServiceServer()
}

// UnimplementedMavlinkServiceServer must be embedded by every server
// implementation. It returns Unimplemented for any method not overridden.
type UnimplementedMavlinkServiceServer struct{}

func (UnimplementedMavlinkServiceServer) StreamMessages(*StreamFilter, MavlinkService_StreamMessagesServer) error {
	return status.Error(codes.Unimplemented, "method StreamMessages not implemented")
}

func (UnimplementedMavlinkServiceServer) SendMessage(context.Context, *MavlinkMessage) (*SendResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SendMessage not implemented")
}

func (UnimplementedMavlinkServiceServer) mustEmbedUnimplementedMavlinkServiceServer() {}

// RegisterMavlinkServiceServer registers srv on s.
func RegisterMavlinkServiceServer(s grpc.ServiceRegistrar, srv MavlinkServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

func handlerStreamMessages(srv interface{}, stream grpc.ServerStream) error {
	m := new(StreamFilter)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(MavlinkServiceServer).StreamMessages(m, &mavlinkServiceStreamMessagesServer{stream})
}

// MavlinkService_StreamMessagesServer is the server-side handle for the
// StreamMessages server-streaming RPC.
type MavlinkService_StreamMessagesServer interface {
	Send(*MavlinkMessage) error
	grpc.ServerStream
}

type mavlinkServiceStreamMessagesServer struct {
	grpc.ServerStream
}

func (x *mavlinkServiceStreamMessagesServer) Send(m *MavlinkMessage) error {
	return x.ServerStream.SendMsg(m)
}

func handlerSendMessage(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MavlinkMessage)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MavlinkServiceServer).SendMessage(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/mavlink.MavlinkService/SendMessage",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(MavlinkServiceServer).SendMessage(ctx, req.(*MavlinkMessage))
	}
	return interceptor(ctx, in, info, handler)
}

// serviceDesc is the grpc.ServiceDesc protoc-gen-go-grpc would generate for
// a mavlink.MavlinkService with one unary and one server-streaming method.
var serviceDesc = grpc.ServiceDesc{
	ServiceName: "mavlink.MavlinkService",
	HandlerType: (*MavlinkServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "SendMessage",
			Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
				return handlerSendMessage(srv, ctx, dec, interceptor)
			},
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "StreamMessages",
			Handler:       handlerStreamMessages,
			ServerStreams: true,
		},
	},
	Metadata: "mavlink.proto",
}
