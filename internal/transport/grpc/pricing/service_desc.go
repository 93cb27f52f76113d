package pricing

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "cleanbook.pricing.v1.PricingService"

// PricingServiceServer is the server API for PricingService.
type PricingServiceServer interface {
	CalculatePricing(context.Context, *CalculatePricingRequest) (*CalculatePricingReply, error)
	ValidateCoupon(context.Context, *ValidateCouponRequest) (*ValidateCouponReply, error)
	CreateBooking(context.Context, *CreateBookingRequest) (*CreateBookingReply, error)
	UpdateBookingStatus(context.Context, *UpdateBookingStatusRequest) (*UpdateBookingStatusReply, error)
	GetBooking(context.Context, *GetBookingRequest) (*GetBookingReply, error)
	RecalculateCouponUsage(context.Context, *RecalculateCouponUsageRequest) (*RecalculateCouponUsageReply, error)
}

// RegisterPricingServiceServer registers srv on s.
func RegisterPricingServiceServer(s grpc.ServiceRegistrar, srv PricingServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// ServiceDesc describes PricingService for grpc.Server.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PricingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CalculatePricing",
			Handler:    unaryHandler("CalculatePricing", PricingServiceServer.CalculatePricing),
		},
		{
			MethodName: "ValidateCoupon",
			Handler:    unaryHandler("ValidateCoupon", PricingServiceServer.ValidateCoupon),
		},
		{
			MethodName: "CreateBooking",
			Handler:    unaryHandler("CreateBooking", PricingServiceServer.CreateBooking),
		},
		{
			MethodName: "UpdateBookingStatus",
			Handler:    unaryHandler("UpdateBookingStatus", PricingServiceServer.UpdateBookingStatus),
		},
		{
			MethodName: "GetBooking",
			Handler:    unaryHandler("GetBooking", PricingServiceServer.GetBooking),
		},
		{
			MethodName: "RecalculateCouponUsage",
			Handler:    unaryHandler("RecalculateCouponUsage", PricingServiceServer.RecalculateCouponUsage),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "cleanbook/pricing/v1/pricing_service",
}

func fullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// unaryHandler adapts a typed server method to grpc.MethodHandler.
func unaryHandler[Req, Reply any](method string, call func(PricingServiceServer, context.Context, *Req) (*Reply, error)) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(PricingServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod(method),
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(PricingServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// PricingServiceClient is the client API for PricingService. Every call uses
// the JSON codec.
type PricingServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewPricingServiceClient wraps a client connection.
func NewPricingServiceClient(cc grpc.ClientConnInterface) *PricingServiceClient {
	return &PricingServiceClient{cc: cc}
}

func invoke[Reply any](ctx context.Context, cc grpc.ClientConnInterface, method string, in interface{}, opts []grpc.CallOption) (*Reply, error) {
	out := new(Reply)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, fullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *PricingServiceClient) CalculatePricing(ctx context.Context, in *CalculatePricingRequest, opts ...grpc.CallOption) (*CalculatePricingReply, error) {
	return invoke[CalculatePricingReply](ctx, c.cc, "CalculatePricing", in, opts)
}

func (c *PricingServiceClient) ValidateCoupon(ctx context.Context, in *ValidateCouponRequest, opts ...grpc.CallOption) (*ValidateCouponReply, error) {
	return invoke[ValidateCouponReply](ctx, c.cc, "ValidateCoupon", in, opts)
}

func (c *PricingServiceClient) CreateBooking(ctx context.Context, in *CreateBookingRequest, opts ...grpc.CallOption) (*CreateBookingReply, error) {
	return invoke[CreateBookingReply](ctx, c.cc, "CreateBooking", in, opts)
}

func (c *PricingServiceClient) UpdateBookingStatus(ctx context.Context, in *UpdateBookingStatusRequest, opts ...grpc.CallOption) (*UpdateBookingStatusReply, error) {
	return invoke[UpdateBookingStatusReply](ctx, c.cc, "UpdateBookingStatus", in, opts)
}

func (c *PricingServiceClient) GetBooking(ctx context.Context, in *GetBookingRequest, opts ...grpc.CallOption) (*GetBookingReply, error) {
	return invoke[GetBookingReply](ctx, c.cc, "GetBooking", in, opts)
}

func (c *PricingServiceClient) RecalculateCouponUsage(ctx context.Context, in *RecalculateCouponUsageRequest, opts ...grpc.CallOption) (*RecalculateCouponUsageReply, error) {
	return invoke[RecalculateCouponUsageReply](ctx, c.cc, "RecalculateCouponUsage", in, opts)
}
