package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	DeviceManagementService_RegisterDevice_FullMethodName        = "/fleet.v1.DeviceManagementService/RegisterDevice"
	DeviceManagementService_SetDeviceStatus_FullMethodName       = "/fleet.v1.DeviceManagementService/SetDeviceStatus"
	DeviceManagementService_GetDeviceInfo_FullMethodName         = "/fleet.v1.DeviceManagementService/GetDeviceInfo"
	DeviceManagementService_ListDevices_FullMethodName           = "/fleet.v1.DeviceManagementService/ListDevices"
	DeviceManagementService_InitiateDeviceAction_FullMethodName  = "/fleet.v1.DeviceManagementService/InitiateDeviceAction"
	DeviceManagementService_GetDeviceActionStatus_FullMethodName = "/fleet.v1.DeviceManagementService/GetDeviceActionStatus"
)

// DeviceManagementServiceClient is the client API for DeviceManagementService.
type DeviceManagementServiceClient interface {
	RegisterDevice(ctx context.Context, in *RegisterDeviceRequest, opts ...grpc.CallOption) (*RegisterDeviceResponse, error)
	SetDeviceStatus(ctx context.Context, in *SetDeviceStatusRequest, opts ...grpc.CallOption) (*SetDeviceStatusResponse, error)
	GetDeviceInfo(ctx context.Context, in *GetDeviceInfoRequest, opts ...grpc.CallOption) (*GetDeviceInfoResponse, error)
	ListDevices(ctx context.Context, in *ListDevicesRequest, opts ...grpc.CallOption) (*ListDevicesResponse, error)
	InitiateDeviceAction(ctx context.Context, in *InitiateDeviceActionRequest, opts ...grpc.CallOption) (*InitiateDeviceActionResponse, error)
	GetDeviceActionStatus(ctx context.Context, in *GetDeviceActionStatusRequest, opts ...grpc.CallOption) (*GetDeviceActionStatusResponse, error)
}

type deviceManagementServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewDeviceManagementServiceClient(cc grpc.ClientConnInterface) DeviceManagementServiceClient {
	return &deviceManagementServiceClient{cc}
}

func (c *deviceManagementServiceClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *deviceManagementServiceClient) RegisterDevice(ctx context.Context, in *RegisterDeviceRequest, opts ...grpc.CallOption) (*RegisterDeviceResponse, error) {
	out := new(RegisterDeviceResponse)
	if err := c.invoke(ctx, DeviceManagementService_RegisterDevice_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *deviceManagementServiceClient) SetDeviceStatus(ctx context.Context, in *SetDeviceStatusRequest, opts ...grpc.CallOption) (*SetDeviceStatusResponse, error) {
	out := new(SetDeviceStatusResponse)
	if err := c.invoke(ctx, DeviceManagementService_SetDeviceStatus_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *deviceManagementServiceClient) GetDeviceInfo(ctx context.Context, in *GetDeviceInfoRequest, opts ...grpc.CallOption) (*GetDeviceInfoResponse, error) {
	out := new(GetDeviceInfoResponse)
	if err := c.invoke(ctx, DeviceManagementService_GetDeviceInfo_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *deviceManagementServiceClient) ListDevices(ctx context.Context, in *ListDevicesRequest, opts ...grpc.CallOption) (*ListDevicesResponse, error) {
	out := new(ListDevicesResponse)
	if err := c.invoke(ctx, DeviceManagementService_ListDevices_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *deviceManagementServiceClient) InitiateDeviceAction(ctx context.Context, in *InitiateDeviceActionRequest, opts ...grpc.CallOption) (*InitiateDeviceActionResponse, error) {
	out := new(InitiateDeviceActionResponse)
	if err := c.invoke(ctx, DeviceManagementService_InitiateDeviceAction_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *deviceManagementServiceClient) GetDeviceActionStatus(ctx context.Context, in *GetDeviceActionStatusRequest, opts ...grpc.CallOption) (*GetDeviceActionStatusResponse, error) {
	out := new(GetDeviceActionStatusResponse)
	if err := c.invoke(ctx, DeviceManagementService_GetDeviceActionStatus_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// DeviceManagementServiceServer is the server API for DeviceManagementService.
// Implementations must embed UnimplementedDeviceManagementServiceServer.
type DeviceManagementServiceServer interface {
	RegisterDevice(context.Context, *RegisterDeviceRequest) (*RegisterDeviceResponse, error)
	SetDeviceStatus(context.Context, *SetDeviceStatusRequest) (*SetDeviceStatusResponse, error)
	GetDeviceInfo(context.Context, *GetDeviceInfoRequest) (*GetDeviceInfoResponse, error)
	ListDevices(context.Context, *ListDevicesRequest) (*ListDevicesResponse, error)
	InitiateDeviceAction(context.Context, *InitiateDeviceActionRequest) (*InitiateDeviceActionResponse, error)
	GetDeviceActionStatus(context.Context, *GetDeviceActionStatusRequest) (*GetDeviceActionStatusResponse, error)
	mustEmbedUnimplementedDeviceManagementServiceServer()
}

type UnimplementedDeviceManagementServiceServer struct{}

func (UnimplementedDeviceManagementServiceServer) RegisterDevice(context.Context, *RegisterDeviceRequest) (*RegisterDeviceResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RegisterDevice not implemented")
}
func (UnimplementedDeviceManagementServiceServer) SetDeviceStatus(context.Context, *SetDeviceStatusRequest) (*SetDeviceStatusResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SetDeviceStatus not implemented")
}
func (UnimplementedDeviceManagementServiceServer) GetDeviceInfo(context.Context, *GetDeviceInfoRequest) (*GetDeviceInfoResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetDeviceInfo not implemented")
}
func (UnimplementedDeviceManagementServiceServer) ListDevices(context.Context, *ListDevicesRequest) (*ListDevicesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListDevices not implemented")
}
func (UnimplementedDeviceManagementServiceServer) InitiateDeviceAction(context.Context, *InitiateDeviceActionRequest) (*InitiateDeviceActionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method InitiateDeviceAction not implemented")
}
func (UnimplementedDeviceManagementServiceServer) GetDeviceActionStatus(context.Context, *GetDeviceActionStatusRequest) (*GetDeviceActionStatusResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetDeviceActionStatus not implemented")
}
func (UnimplementedDeviceManagementServiceServer) mustEmbedUnimplementedDeviceManagementServiceServer() {
}

func RegisterDeviceManagementServiceServer(s grpc.ServiceRegistrar, srv DeviceManagementServiceServer) {
	s.RegisterService(&DeviceManagementService_ServiceDesc, srv)
}

func _DeviceManagementService_RegisterDevice_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(RegisterDeviceRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DeviceManagementServiceServer).RegisterDevice(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DeviceManagementService_RegisterDevice_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DeviceManagementServiceServer).RegisterDevice(ctx, req.(*RegisterDeviceRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DeviceManagementService_SetDeviceStatus_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SetDeviceStatusRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DeviceManagementServiceServer).SetDeviceStatus(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DeviceManagementService_SetDeviceStatus_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DeviceManagementServiceServer).SetDeviceStatus(ctx, req.(*SetDeviceStatusRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DeviceManagementService_GetDeviceInfo_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetDeviceInfoRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DeviceManagementServiceServer).GetDeviceInfo(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DeviceManagementService_GetDeviceInfo_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DeviceManagementServiceServer).GetDeviceInfo(ctx, req.(*GetDeviceInfoRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DeviceManagementService_ListDevices_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListDevicesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DeviceManagementServiceServer).ListDevices(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DeviceManagementService_ListDevices_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DeviceManagementServiceServer).ListDevices(ctx, req.(*ListDevicesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DeviceManagementService_InitiateDeviceAction_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(InitiateDeviceActionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DeviceManagementServiceServer).InitiateDeviceAction(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DeviceManagementService_InitiateDeviceAction_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DeviceManagementServiceServer).InitiateDeviceAction(ctx, req.(*InitiateDeviceActionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DeviceManagementService_GetDeviceActionStatus_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetDeviceActionStatusRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DeviceManagementServiceServer).GetDeviceActionStatus(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DeviceManagementService_GetDeviceActionStatus_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DeviceManagementServiceServer).GetDeviceActionStatus(ctx, req.(*GetDeviceActionStatusRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// DeviceManagementService_ServiceDesc is the grpc.ServiceDesc for DeviceManagementService.
var DeviceManagementService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "fleet.v1.DeviceManagementService",
	HandlerType: (*DeviceManagementServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "RegisterDevice", Handler: _DeviceManagementService_RegisterDevice_Handler},
		{MethodName: "SetDeviceStatus", Handler: _DeviceManagementService_SetDeviceStatus_Handler},
		{MethodName: "GetDeviceInfo", Handler: _DeviceManagementService_GetDeviceInfo_Handler},
		{MethodName: "ListDevices", Handler: _DeviceManagementService_ListDevices_Handler},
		{MethodName: "InitiateDeviceAction", Handler: _DeviceManagementService_InitiateDeviceAction_Handler},
		{MethodName: "GetDeviceActionStatus", Handler: _DeviceManagementService_GetDeviceActionStatus_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "fleet/v1/device_management.proto",
}
