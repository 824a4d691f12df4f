// Package grpcapi serves DeviceManagementService over gRPC.
package grpcapi

import (
	"context"
	"net"

	pb "github.com/KevinKickass/OpenFleetCore/api/proto"
	"github.com/KevinKickass/OpenFleetCore/internal/fleet"
	"github.com/KevinKickass/OpenFleetCore/internal/types"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// FleetService is the request boundary the gRPC handlers delegate to.
type FleetService interface {
	RegisterDevice(ctx context.Context, req fleet.RegisterDeviceRequest) (fleet.RegisterDeviceResult, error)
	SetDeviceStatus(ctx context.Context, deviceID string, status types.DeviceStatus) (fleet.SetDeviceStatusResult, error)
	GetDeviceInfo(ctx context.Context, deviceID string) (fleet.DeviceInfoResult, error)
	ListDevices(ctx context.Context) (fleet.ListDevicesResult, error)
	InitiateDeviceAction(ctx context.Context, req fleet.InitiateActionRequest) (fleet.InitiateActionResult, error)
	GetDeviceActionStatus(ctx context.Context, actionID string) (fleet.ActionStatusResult, error)
}

type DeviceService struct {
	pb.UnimplementedDeviceManagementServiceServer
	svc FleetService
}

func NewDeviceService(svc FleetService) *DeviceService {
	return &DeviceService{svc: svc}
}

func (s *DeviceService) RegisterDevice(ctx context.Context, req *pb.RegisterDeviceRequest) (*pb.RegisterDeviceResponse, error) {
	res, err := s.svc.RegisterDevice(ctx, fleet.RegisterDeviceRequest{
		DeviceID:      req.GetDeviceId(),
		Name:          req.DeviceName,
		Type:          req.DeviceType,
		InitialStatus: deviceStatusFromProto(req.InitialStatus),
	})
	if err != nil {
		return nil, statusError(err)
	}
	return &pb.RegisterDeviceResponse{
		Success:  true,
		Message:  res.Message,
		DeviceId: res.DeviceID,
	}, nil
}

func (s *DeviceService) SetDeviceStatus(ctx context.Context, req *pb.SetDeviceStatusRequest) (*pb.SetDeviceStatusResponse, error) {
	res, err := s.svc.SetDeviceStatus(ctx, req.GetDeviceId(), deviceStatusFromProto(req.Status))
	if err != nil {
		return nil, statusError(err)
	}
	return &pb.SetDeviceStatusResponse{
		Success:        true,
		Message:        res.Message,
		PreviousStatus: deviceStatusToProto(res.PreviousStatus),
		CurrentStatus:  deviceStatusToProto(res.CurrentStatus),
	}, nil
}

func (s *DeviceService) GetDeviceInfo(ctx context.Context, req *pb.GetDeviceInfoRequest) (*pb.GetDeviceInfoResponse, error) {
	res, err := s.svc.GetDeviceInfo(ctx, req.GetDeviceId())
	if err != nil {
		return nil, statusError(err)
	}
	return &pb.GetDeviceInfoResponse{
		Success:    true,
		Message:    res.Message,
		DeviceInfo: deviceToProto(res.Device),
	}, nil
}

func (s *DeviceService) ListDevices(ctx context.Context, _ *pb.ListDevicesRequest) (*pb.ListDevicesResponse, error) {
	res, err := s.svc.ListDevices(ctx)
	if err != nil {
		return nil, statusError(err)
	}
	out := make([]*pb.DeviceInfo, 0, len(res.Devices))
	for _, d := range res.Devices {
		out = append(out, deviceToProto(d))
	}
	return &pb.ListDevicesResponse{
		Success: true,
		Message: res.Message,
		Devices: out,
	}, nil
}

func (s *DeviceService) InitiateDeviceAction(ctx context.Context, req *pb.InitiateDeviceActionRequest) (*pb.InitiateDeviceActionResponse, error) {
	res, err := s.svc.InitiateDeviceAction(ctx, fleet.InitiateActionRequest{
		DeviceID:   req.GetDeviceId(),
		ActionType: actionTypeFromProto(req.ActionType),
		Params:     req.ActionParams,
	})
	if err != nil {
		return nil, statusError(err)
	}
	return &pb.InitiateDeviceActionResponse{
		Success:      true,
		Message:      res.Message,
		ActionId:     res.ActionID,
		ActionStatus: actionStatusToProto(res.Status),
	}, nil
}

func (s *DeviceService) GetDeviceActionStatus(ctx context.Context, req *pb.GetDeviceActionStatusRequest) (*pb.GetDeviceActionStatusResponse, error) {
	res, err := s.svc.GetDeviceActionStatus(ctx, req.GetActionId())
	if err != nil {
		return nil, statusError(err)
	}
	return &pb.GetDeviceActionStatusResponse{
		Success:    true,
		Message:    res.Message,
		ActionInfo: actionToProto(res.Action),
	}, nil
}

// Server owns the grpc.Server together with its health service.
type Server struct {
	grpcServer *grpc.Server
	health     *health.Server
	logger     *zap.Logger
}

func NewServer(svc FleetService, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	gs := grpc.NewServer(grpc.ChainUnaryInterceptor(
		RecoveryInterceptor(logger),
		LoggingInterceptor(logger),
	))
	pb.RegisterDeviceManagementServiceServer(gs, NewDeviceService(svc))

	hs := health.NewServer()
	healthpb.RegisterHealthServer(gs, hs)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(pb.DeviceManagementService_ServiceDesc.ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	return &Server{grpcServer: gs, health: hs, logger: logger}
}

// Serve marks the service healthy and blocks serving lis.
func (s *Server) Serve(lis net.Listener) error {
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	s.health.SetServingStatus(pb.DeviceManagementService_ServiceDesc.ServiceName, healthpb.HealthCheckResponse_SERVING)

	s.logger.Info("gRPC server listening",
		zap.String("addr", lis.Addr().String()),
		zap.String("service", pb.DeviceManagementService_ServiceDesc.ServiceName))

	return s.grpcServer.Serve(lis)
}

// Drain flips every health status to NOT_SERVING. Later status updates are ignored.
func (s *Server) Drain() {
	s.health.Shutdown()
}

// GracefulStop drains health and waits for in-flight RPCs.
func (s *Server) GracefulStop() {
	s.Drain()
	s.grpcServer.GracefulStop()
}

func (s *Server) Stop() {
	s.Drain()
	s.grpcServer.Stop()
}
