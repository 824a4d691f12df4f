package types

import (
	"maps"
	"slices"
	"strings"
	"time"
)

type ActionType string

const (
	ActionTypeUnknown             ActionType = ""
	ActionTypeSoftwareUpdate      ActionType = "SOFTWARE_UPDATE"
	ActionTypeFirmwareUpdate      ActionType = "FIRMWARE_UPDATE"
	ActionTypeSystemReboot        ActionType = "SYSTEM_REBOOT"
	ActionTypeConfigurationChange ActionType = "CONFIGURATION_CHANGE"
)

var actionTypes = []ActionType{
	ActionTypeSoftwareUpdate,
	ActionTypeFirmwareUpdate,
	ActionTypeSystemReboot,
	ActionTypeConfigurationChange,
}

func ParseActionType(s string) (ActionType, bool) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for _, t := range actionTypes {
		if string(t) == upper {
			return t, true
		}
	}
	return ActionTypeUnknown, false
}

func (t ActionType) Valid() bool {
	return slices.Contains(actionTypes, t)
}

// IsUpdate reports whether the action replaces software or firmware.
func (t ActionType) IsUpdate() bool {
	return t == ActionTypeSoftwareUpdate || t == ActionTypeFirmwareUpdate
}

// DeviceStatus is the status a device holds while the action runs.
func (t ActionType) DeviceStatus() DeviceStatus {
	if t.IsUpdate() {
		return DeviceStatusUpdating
	}
	return DeviceStatusBusy
}

func (t ActionType) String() string {
	if t == ActionTypeUnknown {
		return "UNKNOWN"
	}
	return string(t)
}

type ActionStatus string

const (
	ActionStatusUnknown   ActionStatus = ""
	ActionStatusPending   ActionStatus = "PENDING"
	ActionStatusRunning   ActionStatus = "RUNNING"
	ActionStatusCompleted ActionStatus = "COMPLETED"
	ActionStatusFailed    ActionStatus = "FAILED"
)

// Terminal reports whether no further transitions are possible.
func (s ActionStatus) Terminal() bool {
	return s == ActionStatusCompleted || s == ActionStatusFailed
}

func (s ActionStatus) String() string {
	if s == ActionStatusUnknown {
		return "UNKNOWN"
	}
	return string(s)
}

// Action is a point-in-time snapshot of a device action.
type Action struct {
	ID           string            `json:"action_id" yaml:"action_id"`
	DeviceID     string            `json:"device_id" yaml:"device_id"`
	Type         ActionType        `json:"action_type" yaml:"action_type"`
	Status       ActionStatus      `json:"status" yaml:"status"`
	Params       map[string]string `json:"action_params,omitempty" yaml:"action_params,omitempty"`
	Progress     int               `json:"progress" yaml:"progress"` // 0-100
	InitiatedAt  time.Time         `json:"initiated_at" yaml:"initiated_at"`
	CompletedAt  *time.Time        `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
	ErrorMessage string            `json:"error_message,omitempty" yaml:"error_message,omitempty"`
}

// Clone returns a copy that shares no mutable state with a.
func (a Action) Clone() Action {
	out := a
	out.Params = maps.Clone(a.Params)
	if a.CompletedAt != nil {
		t := *a.CompletedAt
		out.CompletedAt = &t
	}
	return out
}

// UnixOrZero converts an optional timestamp to seconds since epoch, 0 when unset.
func UnixOrZero(t *time.Time) int64 {
	if t == nil || t.IsZero() {
		return 0
	}
	return t.Unix()
}
