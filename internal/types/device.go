package types

import (
	"slices"
	"strings"
	"time"
)

type DeviceStatus string

const (
	DeviceStatusUnknown     DeviceStatus = ""
	DeviceStatusIdle        DeviceStatus = "IDLE"
	DeviceStatusBusy        DeviceStatus = "BUSY"
	DeviceStatusOffline     DeviceStatus = "OFFLINE"
	DeviceStatusMaintenance DeviceStatus = "MAINTENANCE"
	DeviceStatusUpdating    DeviceStatus = "UPDATING"
	DeviceStatusRecovering  DeviceStatus = "RECOVERING"
	DeviceStatusError       DeviceStatus = "ERROR"
)

var deviceStatuses = []DeviceStatus{
	DeviceStatusIdle,
	DeviceStatusBusy,
	DeviceStatusOffline,
	DeviceStatusMaintenance,
	DeviceStatusUpdating,
	DeviceStatusRecovering,
	DeviceStatusError,
}

// ParseDeviceStatus matches case-insensitively. Unrecognised input yields
// DeviceStatusUnknown and false.
func ParseDeviceStatus(s string) (DeviceStatus, bool) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for _, status := range deviceStatuses {
		if string(status) == upper {
			return status, true
		}
	}
	return DeviceStatusUnknown, false
}

// Valid reports whether s is one of the known statuses. The unset sentinel is not valid.
func (s DeviceStatus) Valid() bool {
	return slices.Contains(deviceStatuses, s)
}

func (s DeviceStatus) String() string {
	if s == DeviceStatusUnknown {
		return "UNKNOWN"
	}
	return string(s)
}

// Device is a point-in-time snapshot of a registered device.
type Device struct {
	ID              string       `json:"device_id" yaml:"device_id"`
	Name            string       `json:"device_name" yaml:"device_name"`
	Type            string       `json:"device_type" yaml:"device_type"`
	Status          DeviceStatus `json:"status" yaml:"status"`
	RegisteredAt    time.Time    `json:"registered_at" yaml:"registered_at"`
	LastUpdated     time.Time    `json:"last_updated" yaml:"last_updated"`
	CurrentActionID string       `json:"current_action_id,omitempty" yaml:"current_action_id,omitempty"`
}

// Busy reports whether an action is outstanding on the device.
func (d Device) Busy() bool {
	return d.CurrentActionID != ""
}
