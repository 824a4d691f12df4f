// Package fleet is the request boundary over the device registry and the
// action engine. It validates input, enforces the one-action-per-device
// precondition and produces the result messages every transport returns.
package fleet

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/KevinKickass/OpenFleetCore/internal/types"
	"go.uber.org/zap"
)

type Registry interface {
	Register(deviceID, name, deviceType string, initial types.DeviceStatus) error
	SetStatus(deviceID string, status types.DeviceStatus) (types.DeviceStatus, error)
	Get(deviceID string) (types.Device, error)
	List() []types.Device
	Exists(deviceID string) bool
}

type ActionEngine interface {
	Initiate(deviceID string, actionType types.ActionType, params map[string]string) (string, error)
	GetStatus(actionID string) (types.Action, error)
}

type Notifier interface {
	Publish(event types.Event)
}

type RegisterDeviceRequest struct {
	DeviceID      string
	Name          string
	Type          string
	InitialStatus types.DeviceStatus
}

type RegisterDeviceResult struct {
	DeviceID string
	Message  string
}

type SetDeviceStatusResult struct {
	PreviousStatus types.DeviceStatus
	CurrentStatus  types.DeviceStatus
	Message        string
}

type DeviceInfoResult struct {
	Device  types.Device
	Message string
}

type ListDevicesResult struct {
	Devices []types.Device
	Message string
}

type InitiateActionRequest struct {
	DeviceID   string
	ActionType types.ActionType
	Params     map[string]string
}

type InitiateActionResult struct {
	ActionID string
	Status   types.ActionStatus
	Message  string
}

type ActionStatusResult struct {
	Action  types.Action
	Message string
}

type Service struct {
	registry Registry
	engine   ActionEngine
	notifier Notifier
	logger   *zap.Logger

	// initiateMu serializes the busy check with the engine call so two
	// concurrent requests cannot both see an idle device.
	initiateMu sync.Mutex
}

func NewService(registry Registry, engine ActionEngine, notifier Notifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		registry: registry,
		engine:   engine,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *Service) RegisterDevice(_ context.Context, req RegisterDeviceRequest) (RegisterDeviceResult, error) {
	if req.DeviceID == "" {
		return RegisterDeviceResult{}, newError(types.ErrInvalidArgument, "Device ID cannot be empty")
	}

	initial := req.InitialStatus
	if initial == types.DeviceStatusUnknown {
		initial = types.DeviceStatusIdle
	}
	if !initial.Valid() {
		return RegisterDeviceResult{}, newError(types.ErrInvalidArgument, "Invalid device status")
	}

	if err := s.registry.Register(req.DeviceID, req.Name, req.Type, initial); err != nil {
		if errors.Is(err, types.ErrDeviceExists) {
			return RegisterDeviceResult{}, newError(types.ErrDeviceExists, "Device with ID '%s' already exists", req.DeviceID)
		}
		return RegisterDeviceResult{}, s.internal("register device", err)
	}

	s.logger.Info("Device registered",
		zap.String("device_id", req.DeviceID),
		zap.String("device_type", req.Type),
		zap.String("status", initial.String()))

	if dev, err := s.registry.Get(req.DeviceID); err == nil {
		s.publish(types.Event{
			Type:     types.EventDeviceRegistered,
			DeviceID: req.DeviceID,
			Device:   &dev,
			Status:   dev.Status,
		})
	}

	return RegisterDeviceResult{
		DeviceID: req.DeviceID,
		Message:  "Device registered successfully",
	}, nil
}

func (s *Service) SetDeviceStatus(_ context.Context, deviceID string, status types.DeviceStatus) (SetDeviceStatusResult, error) {
	if deviceID == "" {
		return SetDeviceStatusResult{}, newError(types.ErrInvalidArgument, "Device ID cannot be empty")
	}
	if !status.Valid() {
		return SetDeviceStatusResult{}, newError(types.ErrInvalidArgument, "Invalid device status")
	}

	previous, err := s.registry.SetStatus(deviceID, status)
	if err != nil {
		return SetDeviceStatusResult{}, s.notFoundOrInternal(err, deviceID)
	}

	s.logger.Info("Device status updated",
		zap.String("device_id", deviceID),
		zap.String("previous", previous.String()),
		zap.String("current", status.String()))

	s.publish(types.Event{
		Type:           types.EventDeviceStatus,
		DeviceID:       deviceID,
		Status:         status,
		PreviousStatus: previous,
	})

	return SetDeviceStatusResult{
		PreviousStatus: previous,
		CurrentStatus:  status,
		Message:        "Device status updated successfully",
	}, nil
}

func (s *Service) GetDeviceInfo(_ context.Context, deviceID string) (DeviceInfoResult, error) {
	if deviceID == "" {
		return DeviceInfoResult{}, newError(types.ErrInvalidArgument, "Device ID cannot be empty")
	}

	dev, err := s.registry.Get(deviceID)
	if err != nil {
		return DeviceInfoResult{}, s.notFoundOrInternal(err, deviceID)
	}

	return DeviceInfoResult{
		Device:  dev,
		Message: "Device information retrieved successfully",
	}, nil
}

func (s *Service) ListDevices(_ context.Context) (ListDevicesResult, error) {
	devices := s.registry.List()
	return ListDevicesResult{
		Devices: devices,
		Message: fmt.Sprintf("Retrieved %d device(s)", len(devices)),
	}, nil
}

func (s *Service) InitiateDeviceAction(_ context.Context, req InitiateActionRequest) (InitiateActionResult, error) {
	if req.DeviceID == "" {
		return InitiateActionResult{}, newError(types.ErrInvalidArgument, "Device ID cannot be empty")
	}
	if !req.ActionType.Valid() {
		return InitiateActionResult{}, newError(types.ErrInvalidArgument, "Invalid action type")
	}

	s.initiateMu.Lock()
	defer s.initiateMu.Unlock()

	dev, err := s.registry.Get(req.DeviceID)
	if err != nil {
		return InitiateActionResult{}, s.notFoundOrInternal(err, req.DeviceID)
	}
	if dev.Busy() {
		return InitiateActionResult{}, newError(types.ErrDeviceBusy, "Device is already busy with action: %s", dev.CurrentActionID)
	}

	actionID, err := s.engine.Initiate(req.DeviceID, req.ActionType, req.Params)
	switch {
	case errors.Is(err, types.ErrEngineStopped):
		return InitiateActionResult{}, newError(types.ErrEngineStopped, "Service is shutting down")
	case err != nil:
		return InitiateActionResult{}, s.notFoundOrInternal(err, req.DeviceID)
	}

	action, err := s.engine.GetStatus(actionID)
	if err != nil {
		s.logger.Error("Action missing right after creation",
			zap.String("action_id", actionID),
			zap.Error(err))
		return InitiateActionResult{}, newError(types.ErrInternal, "Failed to initiate action")
	}

	return InitiateActionResult{
		ActionID: actionID,
		Status:   action.Status,
		Message:  "Action initiated successfully",
	}, nil
}

func (s *Service) GetDeviceActionStatus(_ context.Context, actionID string) (ActionStatusResult, error) {
	if actionID == "" {
		return ActionStatusResult{}, newError(types.ErrInvalidArgument, "Action ID cannot be empty")
	}

	action, err := s.engine.GetStatus(actionID)
	if err != nil {
		if errors.Is(err, types.ErrActionNotFound) {
			return ActionStatusResult{}, newError(types.ErrActionNotFound, "Action with ID '%s' not found", actionID)
		}
		return ActionStatusResult{}, s.internal("get action status", err)
	}

	return ActionStatusResult{
		Action:  action,
		Message: "Action status retrieved successfully",
	}, nil
}

func (s *Service) notFoundOrInternal(err error, deviceID string) error {
	if errors.Is(err, types.ErrDeviceNotFound) {
		return newError(types.ErrDeviceNotFound, "Device with ID '%s' not found", deviceID)
	}
	return s.internal("device operation", err)
}

func (s *Service) internal(op string, err error) error {
	s.logger.Error("Unexpected failure", zap.String("op", op), zap.Error(err))
	return newError(types.ErrInternal, "Internal error: %s", op)
}

func (s *Service) publish(event types.Event) {
	if s.notifier == nil {
		return
	}
	event.Timestamp = time.Now()
	s.notifier.Publish(event)
}
