package grpcapi

import (
	"errors"

	pb "github.com/KevinKickass/OpenFleetCore/api/proto"
	"github.com/KevinKickass/OpenFleetCore/internal/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Wire enums that have no domain counterpart map to a value that fails
// Valid(), so the service rejects them as invalid arguments.

func deviceStatusFromProto(s pb.DeviceStatus) types.DeviceStatus {
	if s == pb.DeviceStatus_DEVICE_STATUS_UNKNOWN {
		return types.DeviceStatusUnknown
	}
	if parsed, ok := types.ParseDeviceStatus(s.String()); ok {
		return parsed
	}
	return types.DeviceStatus(s.String())
}

func deviceStatusToProto(s types.DeviceStatus) pb.DeviceStatus {
	return pb.DeviceStatus(pb.DeviceStatus_value[string(s)])
}

func actionTypeFromProto(t pb.ActionType) types.ActionType {
	if t == pb.ActionType_ACTION_TYPE_UNKNOWN {
		return types.ActionTypeUnknown
	}
	if parsed, ok := types.ParseActionType(t.String()); ok {
		return parsed
	}
	return types.ActionType(t.String())
}

func actionTypeToProto(t types.ActionType) pb.ActionType {
	return pb.ActionType(pb.ActionType_value[string(t)])
}

func actionStatusToProto(s types.ActionStatus) pb.ActionStatus {
	return pb.ActionStatus(pb.ActionStatus_value[string(s)])
}

func deviceToProto(d types.Device) *pb.DeviceInfo {
	return &pb.DeviceInfo{
		DeviceId:        d.ID,
		DeviceName:      d.Name,
		DeviceType:      d.Type,
		Status:          deviceStatusToProto(d.Status),
		RegisteredAt:    d.RegisteredAt.Unix(),
		LastUpdated:     d.LastUpdated.Unix(),
		CurrentActionId: d.CurrentActionID,
	}
}

func actionToProto(a types.Action) *pb.ActionInfo {
	return &pb.ActionInfo{
		ActionId:     a.ID,
		DeviceId:     a.DeviceID,
		ActionType:   actionTypeToProto(a.Type),
		Status:       actionStatusToProto(a.Status),
		ActionParams: a.Params,
		InitiatedAt:  a.InitiatedAt.Unix(),
		CompletedAt:  types.UnixOrZero(a.CompletedAt),
		ErrorMessage: a.ErrorMessage,
		Progress:     int32(a.Progress),
	}
}

// statusError converts a service error into a gRPC status carrying the
// client-facing message.
func statusError(err error) error {
	if err == nil {
		return nil
	}
	return status.Error(codeFor(err), err.Error())
}

func codeFor(err error) codes.Code {
	switch {
	case errors.Is(err, types.ErrDeviceNotFound), errors.Is(err, types.ErrActionNotFound):
		return codes.NotFound
	case errors.Is(err, types.ErrDeviceExists):
		return codes.AlreadyExists
	case errors.Is(err, types.ErrDeviceBusy):
		return codes.FailedPrecondition
	case errors.Is(err, types.ErrInvalidArgument):
		return codes.InvalidArgument
	case errors.Is(err, types.ErrEngineStopped):
		return codes.Unavailable
	default:
		return codes.Internal
	}
}
