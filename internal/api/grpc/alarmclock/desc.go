package alarmclock

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "alarmclock.v1.AlarmClock"

// Full method names.
const (
	AddAlarmMethod    = "/" + ServiceName + "/AddAlarm"
	RemoveAlarmMethod = "/" + ServiceName + "/RemoveAlarm"
	ListAlarmsMethod  = "/" + ServiceName + "/ListAlarms"
	StopSoundMethod   = "/" + ServiceName + "/StopSound"
	WatchEventsMethod = "/" + ServiceName + "/WatchEvents"
)

// AlarmClockServer is the server API of the AlarmClock service.
//
//nolint:revive // The stutter mirrors generated gRPC naming.
type AlarmClockServer interface {
	// AddAlarm schedules an alarm from {hour, minute, second}.
	AddAlarm(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	// RemoveAlarm removes the first alarm with the given label.
	RemoveAlarm(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.BoolValue, error)
	// ListAlarms returns the pending alarms in registry order.
	ListAlarms(ctx context.Context, req *emptypb.Empty) (*structpb.ListValue, error)
	// StopSound silences the sounding alarm.
	StopSound(ctx context.Context, req *emptypb.Empty) (*wrapperspb.BoolValue, error)
	// WatchEvents streams engine events until the client goes away.
	WatchEvents(req *emptypb.Empty, stream grpc.ServerStreamingServer[structpb.Struct]) error
}

// ServiceDesc describes the AlarmClock service for grpc.Server.RegisterService.
//
//nolint:gochecknoglobals // Service descriptors are package-level by convention.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AlarmClockServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "AddAlarm",
			Handler:    unaryHandler(AddAlarmMethod, AlarmClockServer.AddAlarm),
		},
		{
			MethodName: "RemoveAlarm",
			Handler:    unaryHandler(RemoveAlarmMethod, AlarmClockServer.RemoveAlarm),
		},
		{
			MethodName: "ListAlarms",
			Handler:    unaryHandler(ListAlarmsMethod, AlarmClockServer.ListAlarms),
		},
		{
			MethodName: "StopSound",
			Handler:    unaryHandler(StopSoundMethod, AlarmClockServer.StopSound),
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "WatchEvents",
			Handler:       watchEventsHandler,
			ServerStreams: true,
		},
	},
	Metadata: "alarmclock/v1/alarmclock.proto",
}

// RegisterAlarmClockServer registers srv on registrar.
func RegisterAlarmClockServer(registrar grpc.ServiceRegistrar, srv AlarmClockServer) {
	registrar.RegisterService(&ServiceDesc, srv)
}

// message is a pointer to a protobuf message struct.
type message[T any] interface {
	*T
	proto.Message
}

// unaryHandler adapts a typed server method to grpc.MethodHandler.
func unaryHandler[Req any, Res proto.Message, PReq message[Req]](
	fullMethod string,
	call func(srv AlarmClockServer, ctx context.Context, req PReq) (Res, error),
) grpc.MethodHandler {
	//nolint:revive // Signature is fixed by grpc.MethodHandler.
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := PReq(new(Req))
		if err := dec(in); err != nil {
			return nil, err
		}

		server, _ := srv.(AlarmClockServer)

		if interceptor == nil {
			return call(server, ctx, in)
		}

		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}

		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			typed, _ := req.(PReq)

			return call(server, ctx, typed)
		})
	}
}

// watchEventsHandler serves the WatchEvents server stream.
func watchEventsHandler(srv any, stream grpc.ServerStream) error {
	in := new(emptypb.Empty)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}

	server, _ := srv.(AlarmClockServer)

	return server.WatchEvents(in, &grpc.GenericServerStream[emptypb.Empty, structpb.Struct]{ServerStream: stream})
}

// AlarmClockClient is the client API of the AlarmClock service.
//
//nolint:revive // The stutter mirrors generated gRPC naming.
type AlarmClockClient interface {
	AddAlarm(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	RemoveAlarm(ctx context.Context, req *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
	ListAlarms(ctx context.Context, req *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error)
	StopSound(ctx context.Context, req *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
	WatchEvents(
		ctx context.Context,
		req *emptypb.Empty,
		opts ...grpc.CallOption,
	) (grpc.ServerStreamingClient[structpb.Struct], error)
}

// alarmClockClient calls the service over a connection.
type alarmClockClient struct {
	cc grpc.ClientConnInterface
}

// NewAlarmClockClient creates a client stub on cc.
//
//nolint:ireturn // Returns the client interface like generated stubs do.
func NewAlarmClockClient(cc grpc.ClientConnInterface) AlarmClockClient {
	return &alarmClockClient{cc: cc}
}

// AddAlarm calls AlarmClock.AddAlarm.
func (c *alarmClockClient) AddAlarm(
	ctx context.Context,
	req *structpb.Struct,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, AddAlarmMethod, req, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

// RemoveAlarm calls AlarmClock.RemoveAlarm.
func (c *alarmClockClient) RemoveAlarm(
	ctx context.Context,
	req *wrapperspb.StringValue,
	opts ...grpc.CallOption,
) (*wrapperspb.BoolValue, error) {
	out := new(wrapperspb.BoolValue)
	if err := c.cc.Invoke(ctx, RemoveAlarmMethod, req, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

// ListAlarms calls AlarmClock.ListAlarms.
func (c *alarmClockClient) ListAlarms(
	ctx context.Context,
	req *emptypb.Empty,
	opts ...grpc.CallOption,
) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, ListAlarmsMethod, req, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

// StopSound calls AlarmClock.StopSound.
func (c *alarmClockClient) StopSound(
	ctx context.Context,
	req *emptypb.Empty,
	opts ...grpc.CallOption,
) (*wrapperspb.BoolValue, error) {
	out := new(wrapperspb.BoolValue)
	if err := c.cc.Invoke(ctx, StopSoundMethod, req, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

// WatchEvents opens the AlarmClock.WatchEvents stream.
//
//nolint:ireturn // grpc's generic stream interface.
func (c *alarmClockClient) WatchEvents(
	ctx context.Context,
	req *emptypb.Empty,
	opts ...grpc.CallOption,
) (grpc.ServerStreamingClient[structpb.Struct], error) {
	stream, err := c.cc.NewStream(ctx, &ServiceDesc.Streams[0], WatchEventsMethod, opts...)
	if err != nil {
		return nil, err
	}

	x := &grpc.GenericClientStream[emptypb.Empty, structpb.Struct]{ClientStream: stream}

	if err = x.SendMsg(req); err != nil {
		return nil, err
	}

	if err = x.CloseSend(); err != nil {
		return nil, err
	}

	return x, nil
}
