package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Service names on the wire.
const (
	DiaryServiceName       = "minda.v1.Diary"
	PreferencesServiceName = "minda.v1.Preferences"
	DaemonServiceName      = "minda.v1.Daemon"
)

// DiaryServer is the server API for minda.v1.Diary.
type DiaryServer interface {
	AddEntry(context.Context, *structpb.Struct) (*wrapperspb.Int64Value, error)
	EditEntry(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	RemoveEntry(context.Context, *wrapperspb.Int64Value) (*emptypb.Empty, error)
	ListEntries(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	GetEntry(context.Context, *wrapperspb.Int64Value) (*structpb.Struct, error)
	WatchEntries(*emptypb.Empty, grpc.ServerStreamingServer[structpb.Struct]) error
}

// PreferencesServer is the server API for minda.v1.Preferences.
type PreferencesServer interface {
	GetPreferences(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	SetUserName(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
	SetOnboardingCompleted(context.Context, *wrapperspb.BoolValue) (*emptypb.Empty, error)
	SetDarkMode(context.Context, *wrapperspb.BoolValue) (*emptypb.Empty, error)
	ClearDarkMode(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	WatchPreferences(*emptypb.Empty, grpc.ServerStreamingServer[structpb.Struct]) error
}

// DaemonServer is the server API for minda.v1.Daemon.
type DaemonServer interface {
	GetStatus(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// DiaryServiceDesc describes minda.v1.Diary.
var DiaryServiceDesc = grpc.ServiceDesc{
	ServiceName: DiaryServiceName,
	HandlerType: (*DiaryServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(DiaryServiceName, "AddEntry", DiaryServer.AddEntry),
		unary(DiaryServiceName, "EditEntry", DiaryServer.EditEntry),
		unary(DiaryServiceName, "RemoveEntry", DiaryServer.RemoveEntry),
		unary(DiaryServiceName, "ListEntries", DiaryServer.ListEntries),
		unary(DiaryServiceName, "GetEntry", DiaryServer.GetEntry),
	},
	Streams: []grpc.StreamDesc{
		serverStream("WatchEntries", DiaryServer.WatchEntries),
	},
}

// PreferencesServiceDesc describes minda.v1.Preferences.
var PreferencesServiceDesc = grpc.ServiceDesc{
	ServiceName: PreferencesServiceName,
	HandlerType: (*PreferencesServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(PreferencesServiceName, "GetPreferences", PreferencesServer.GetPreferences),
		unary(PreferencesServiceName, "SetUserName", PreferencesServer.SetUserName),
		unary(PreferencesServiceName, "SetOnboardingCompleted", PreferencesServer.SetOnboardingCompleted),
		unary(PreferencesServiceName, "SetDarkMode", PreferencesServer.SetDarkMode),
		unary(PreferencesServiceName, "ClearDarkMode", PreferencesServer.ClearDarkMode),
	},
	Streams: []grpc.StreamDesc{
		serverStream("WatchPreferences", PreferencesServer.WatchPreferences),
	},
}

// DaemonServiceDesc describes minda.v1.Daemon.
var DaemonServiceDesc = grpc.ServiceDesc{
	ServiceName: DaemonServiceName,
	HandlerType: (*DaemonServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(DaemonServiceName, "GetStatus", DaemonServer.GetStatus),
	},
}

// FullMethod returns the "/service/method" path used on the wire.
func FullMethod(service, method string) string {
	return "/" + service + "/" + method
}

// unary builds a method descriptor from a method expression of the server interface.
func unary[S, Req, Res any](service, method string, call func(S, context.Context, *Req) (*Res, error)) grpc.MethodDesc {
	fullMethod := FullMethod(service, method)
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(S), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(S), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// serverStream builds a server-streaming descriptor: one request, many responses.
func serverStream[S, Req, Res any](method string, call func(S, *Req, grpc.ServerStreamingServer[Res]) error) grpc.StreamDesc {
	return grpc.StreamDesc{
		StreamName: method,
		Handler: func(srv any, stream grpc.ServerStream) error {
			in := new(Req)
			if err := stream.RecvMsg(in); err != nil {
				return err
			}
			return call(srv.(S), in, &grpc.GenericServerStream[Req, Res]{ServerStream: stream})
		},
		ServerStreams: true,
	}
}
