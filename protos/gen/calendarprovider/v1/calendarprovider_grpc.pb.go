// Code generated by protoc-gen-go-grpc. DO NOT EDIT.
// versions:
// - protoc-gen-go-grpc v1.6.0
// - protoc             (unknown)
// source: calendarprovider/v1/calendarprovider.proto

package calendarproviderv1

import (
	context "context"
	grpc "google.golang.org/grpc"
	codes "google.golang.org/grpc/codes"
	status "google.golang.org/grpc/status"
)

// This is a compile-time assertion to ensure that this generated file
// is compatible with the grpc package it is being compiled against.
// Requires gRPC-Go v1.64.0 or later.
const _ = grpc.SupportPackageIsVersion9

const (
	CalendarProviderService_ListEvents_FullMethodName = "/calendarprovider.v1.CalendarProviderService/ListEvents"
)

// CalendarProviderServiceClient is the client API for CalendarProviderService service.
//
// For semantics around ctx use and closing/ending streaming RPCs, please refer to https://pkg.go.dev/google.golang.org/grpc/?tab=doc#ClientConn.NewStream.
type CalendarProviderServiceClient interface {
	ListEvents(ctx context.Context, in *ListEventsRequest, opts ...grpc.CallOption) (*ListEventsResponse, error)
}

type calendarProviderServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCalendarProviderServiceClient(cc grpc.ClientConnInterface) CalendarProviderServiceClient {
	return &calendarProviderServiceClient{cc}
}

func (c *calendarProviderServiceClient) ListEvents(ctx context.Context, in *ListEventsRequest, opts ...grpc.CallOption) (*ListEventsResponse, error) {
	cOpts := append([]grpc.CallOption{grpc.StaticMethod()}, opts...)
	out := new(ListEventsResponse)
	err := c.cc.Invoke(ctx, CalendarProviderService_ListEvents_FullMethodName, in, out, cOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CalendarProviderServiceServer is the server API for CalendarProviderService service.
// All implementations must embed UnimplementedCalendarProviderServiceServer
// for forward compatibility.
type CalendarProviderServiceServer interface {
	ListEvents(context.Context, *ListEventsRequest) (*ListEventsResponse, error)
	mustEmbedUnimplementedCalendarProviderServiceServer()
}

// UnimplementedCalendarProviderServiceServer must be embedded to have
// forward compatible implementations.
//
// NOTE: this should be embedded by value instead of pointer to avoid a nil
// pointer dereference when methods are called.
type UnimplementedCalendarProviderServiceServer struct{}

func (UnimplementedCalendarProviderServiceServer) ListEvents(context.Context, *ListEventsRequest) (*ListEventsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListEvents not implemented")
}
func (UnimplementedCalendarProviderServiceServer) mustEmbedUnimplementedCalendarProviderServiceServer() {
}
func (UnimplementedCalendarProviderServiceServer) testEmbeddedByValue() {}

// UnsafeCalendarProviderServiceServer may be embedded to opt out of forward compatibility for this service.
// Use of this interface is not recommended, as added methods to CalendarProviderServiceServer will
// result in compilation errors.
type UnsafeCalendarProviderServiceServer interface {
	mustEmbedUnimplementedCalendarProviderServiceServer()
}

func RegisterCalendarProviderServiceServer(s grpc.ServiceRegistrar, srv CalendarProviderServiceServer) {
	// If the following call panics, it indicates UnimplementedCalendarProviderServiceServer was
	// embedded by pointer and is nil.  This will cause panics if an
	// unimplemented method is ever invoked, so we test this at initialization
	// time to prevent it from happening at runtime later due to I/O.
	if t, ok := srv.(interface{ testEmbeddedByValue() }); ok {
		t.testEmbeddedByValue()
	}
	s.RegisterService(&CalendarProviderService_ServiceDesc, srv)
}

func _CalendarProviderService_ListEvents_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListEventsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CalendarProviderServiceServer).ListEvents(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: CalendarProviderService_ListEvents_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CalendarProviderServiceServer).ListEvents(ctx, req.(*ListEventsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// CalendarProviderService_ServiceDesc is the grpc.ServiceDesc for CalendarProviderService service.
// It's only intended for direct use with grpc.RegisterService,
// and not to be introspected or modified (even as a copy)
var CalendarProviderService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "calendarprovider.v1.CalendarProviderService",
	HandlerType: (*CalendarProviderServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListEvents",
			Handler:    _CalendarProviderService_ListEvents_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "calendarprovider/v1/calendarprovider.proto",
}
