// Package replication carries player actions from network clients into the
// authoritative simulation loop over gRPC.
package replication

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "parksim.v1.ActionService"

// SubmitMethod is the full method path of Submit.
const SubmitMethod = "/" + ServiceName + "/Submit"

// ActionServiceServer is the server API for the action service. The request
// holds an action wire encoding; the response holds an encoded Result.
type ActionServiceServer interface {
	Submit(ctx context.Context, req *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
}

func submitHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ActionServiceServer).Submit(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SubmitMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ActionServiceServer).Submit(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

// ActionServiceDesc describes the action service for grpc.Server.
var ActionServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ActionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Submit",
			Handler:    submitHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "parksim/v1/action.proto",
}

// RegisterActionServiceServer registers srv with s.
func RegisterActionServiceServer(s grpc.ServiceRegistrar, srv ActionServiceServer) {
	s.RegisterService(&ActionServiceDesc, srv)
}
