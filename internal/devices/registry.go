package devices

import (
	"fmt"
	"sync"
	"time"

	"github.com/KevinKickass/OpenFleetCore/internal/types"
	"go.uber.org/zap"
)

type deviceRecord struct {
	id              string
	name            string
	typ             string
	status          types.DeviceStatus
	registeredAt    time.Time
	lastUpdated     time.Time
	currentActionID string
}

func (r *deviceRecord) snapshot() types.Device {
	return types.Device{
		ID:              r.id,
		Name:            r.name,
		Type:            r.typ,
		Status:          r.status,
		RegisteredAt:    r.registeredAt,
		LastUpdated:     r.lastUpdated,
		CurrentActionID: r.currentActionID,
	}
}

// Registry is the authoritative in-memory device table. Every method takes
// the single lock, so mutations form one total order. The lock is never held
// while calling out of the package.
//
// No status transition is validated here: any status may follow any other.
type Registry struct {
	mu      sync.RWMutex
	devices map[string]*deviceRecord
	logger  *zap.Logger
	now     func() time.Time
}

func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		devices: make(map[string]*deviceRecord),
		logger:  logger,
		now:     time.Now,
	}
}

// Register adds a device. It fails with types.ErrDeviceExists when the id is
// present; the existing record is left untouched.
func (r *Registry) Register(deviceID, name, deviceType string, initial types.DeviceStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.devices[deviceID]; exists {
		return fmt.Errorf("register %q: %w", deviceID, types.ErrDeviceExists)
	}

	now := r.now()
	r.devices[deviceID] = &deviceRecord{
		id:           deviceID,
		name:         name,
		typ:          deviceType,
		status:       initial,
		registeredAt: now,
		lastUpdated:  now,
	}

	r.logger.Debug("Device registered",
		zap.String("device_id", deviceID),
		zap.String("status", initial.String()))

	return nil
}

// SetStatus swaps the device status and returns the previous one.
func (r *Registry) SetStatus(deviceID string, status types.DeviceStatus) (types.DeviceStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	dev, exists := r.devices[deviceID]
	if !exists {
		return types.DeviceStatusUnknown, fmt.Errorf("set status %q: %w", deviceID, types.ErrDeviceNotFound)
	}

	previous := dev.status
	dev.status = status
	dev.lastUpdated = r.now()

	return previous, nil
}

// Get returns a snapshot of the device.
func (r *Registry) Get(deviceID string) (types.Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dev, exists := r.devices[deviceID]
	if !exists {
		return types.Device{}, fmt.Errorf("get %q: %w", deviceID, types.ErrDeviceNotFound)
	}
	return dev.snapshot(), nil
}

// List returns snapshots of all devices in no particular order.
func (r *Registry) List() []types.Device {
	r.mu.RLock()
	defer r.mu.RUnlock()

	devices := make([]types.Device, 0, len(r.devices))
	for _, dev := range r.devices {
		devices = append(devices, dev.snapshot())
	}
	return devices
}

// SetCurrentAction records actionID as the device's outstanding action.
func (r *Registry) SetCurrentAction(deviceID, actionID string) error {
	return r.updateAction(deviceID, actionID)
}

// ClearCurrentAction removes the outstanding-action marker.
func (r *Registry) ClearCurrentAction(deviceID string) error {
	return r.updateAction(deviceID, "")
}

func (r *Registry) updateAction(deviceID, actionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	dev, exists := r.devices[deviceID]
	if !exists {
		return fmt.Errorf("update action %q: %w", deviceID, types.ErrDeviceNotFound)
	}

	dev.currentActionID = actionID
	dev.lastUpdated = r.now()
	return nil
}

func (r *Registry) Exists(deviceID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.devices[deviceID]
	return exists
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.devices)
}
