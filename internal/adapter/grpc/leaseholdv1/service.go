// Package leaseholdv1 defines the leasehold.v1.PremiumService gRPC contract.
// Requests and responses are google.protobuf.Struct messages so the service
// can be called with any generic protobuf client.
package leaseholdv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "leasehold.v1.PremiumService"

const (
	PremiumService_ComputePremium_FullMethodName     = "/leasehold.v1.PremiumService/ComputePremium"
	PremiumService_GetQuote_FullMethodName           = "/leasehold.v1.PremiumService/GetQuote"
	PremiumService_ListQuotes_FullMethodName         = "/leasehold.v1.PremiumService/ListQuotes"
	PremiumService_GetRelativity_FullMethodName      = "/leasehold.v1.PremiumService/GetRelativity"
	PremiumService_ProjectWaitingCost_FullMethodName = "/leasehold.v1.PremiumService/ProjectWaitingCost"
)

// PremiumServiceClient is the client API for PremiumService
type PremiumServiceClient interface {
	ComputePremium(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetQuote(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListQuotes(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetRelativity(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ProjectWaitingCost(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type premiumServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewPremiumServiceClient creates a client bound to the given connection
func NewPremiumServiceClient(cc grpc.ClientConnInterface) PremiumServiceClient {
	return &premiumServiceClient{cc: cc}
}

func (c *premiumServiceClient) ComputePremium(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, PremiumService_ComputePremium_FullMethodName, in, opts...)
}

func (c *premiumServiceClient) GetQuote(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, PremiumService_GetQuote_FullMethodName, in, opts...)
}

func (c *premiumServiceClient) ListQuotes(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, PremiumService_ListQuotes_FullMethodName, in, opts...)
}

func (c *premiumServiceClient) GetRelativity(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, PremiumService_GetRelativity_FullMethodName, in, opts...)
}

func (c *premiumServiceClient) ProjectWaitingCost(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, PremiumService_ProjectWaitingCost_FullMethodName, in, opts...)
}

func (c *premiumServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// PremiumServiceServer is the server API for PremiumService
// All implementations must embed UnimplementedPremiumServiceServer
type PremiumServiceServer interface {
	ComputePremium(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetQuote(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListQuotes(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetRelativity(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ProjectWaitingCost(context.Context, *structpb.Struct) (*structpb.Struct, error)
	mustEmbedUnimplementedPremiumServiceServer()
}

// UnimplementedPremiumServiceServer returns Unimplemented for every method
type UnimplementedPremiumServiceServer struct{}

func (UnimplementedPremiumServiceServer) ComputePremium(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ComputePremium not implemented")
}

func (UnimplementedPremiumServiceServer) GetQuote(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetQuote not implemented")
}

func (UnimplementedPremiumServiceServer) ListQuotes(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ListQuotes not implemented")
}

func (UnimplementedPremiumServiceServer) GetRelativity(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetRelativity not implemented")
}

func (UnimplementedPremiumServiceServer) ProjectWaitingCost(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ProjectWaitingCost not implemented")
}

func (UnimplementedPremiumServiceServer) mustEmbedUnimplementedPremiumServiceServer() {}

// RegisterPremiumServiceServer registers srv on the given gRPC server
func RegisterPremiumServiceServer(s grpc.ServiceRegistrar, srv PremiumServiceServer) {
	s.RegisterService(&PremiumService_ServiceDesc, srv)
}

// unaryHandler adapts a server method to a grpc.MethodHandler
func unaryHandler(
	fullMethod string,
	call func(PremiumServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error),
) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(PremiumServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(PremiumServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// PremiumService_ServiceDesc is the grpc.ServiceDesc for PremiumService
var PremiumService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PremiumServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ComputePremium",
			Handler:    unaryHandler(PremiumService_ComputePremium_FullMethodName, PremiumServiceServer.ComputePremium),
		},
		{
			MethodName: "GetQuote",
			Handler:    unaryHandler(PremiumService_GetQuote_FullMethodName, PremiumServiceServer.GetQuote),
		},
		{
			MethodName: "ListQuotes",
			Handler:    unaryHandler(PremiumService_ListQuotes_FullMethodName, PremiumServiceServer.ListQuotes),
		},
		{
			MethodName: "GetRelativity",
			Handler:    unaryHandler(PremiumService_GetRelativity_FullMethodName, PremiumServiceServer.GetRelativity),
		},
		{
			MethodName: "ProjectWaitingCost",
			Handler:    unaryHandler(PremiumService_ProjectWaitingCost_FullMethodName, PremiumServiceServer.ProjectWaitingCost),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "leasehold/v1/premium_service.proto",
}
