// Package proto defines the fleet.v1 DeviceManagementService wire contract.
//
// Messages are plain structs carried by the JSON codec registered in
// codec.go; enums are int32 on the wire.
package proto

import "strconv"

type DeviceStatus int32

const (
	DeviceStatus_DEVICE_STATUS_UNKNOWN DeviceStatus = 0
	DeviceStatus_IDLE                  DeviceStatus = 1
	DeviceStatus_BUSY                  DeviceStatus = 2
	DeviceStatus_OFFLINE               DeviceStatus = 3
	DeviceStatus_MAINTENANCE           DeviceStatus = 4
	DeviceStatus_UPDATING              DeviceStatus = 5
	DeviceStatus_RECOVERING            DeviceStatus = 6
	DeviceStatus_ERROR                 DeviceStatus = 7
)

var (
	DeviceStatus_name = map[int32]string{
		0: "DEVICE_STATUS_UNKNOWN",
		1: "IDLE",
		2: "BUSY",
		3: "OFFLINE",
		4: "MAINTENANCE",
		5: "UPDATING",
		6: "RECOVERING",
		7: "ERROR",
	}
	DeviceStatus_value = invert(DeviceStatus_name)
)

func (x DeviceStatus) String() string { return enumName(DeviceStatus_name, int32(x)) }

type ActionType int32

const (
	ActionType_ACTION_TYPE_UNKNOWN  ActionType = 0
	ActionType_SOFTWARE_UPDATE      ActionType = 1
	ActionType_FIRMWARE_UPDATE      ActionType = 2
	ActionType_SYSTEM_REBOOT        ActionType = 3
	ActionType_CONFIGURATION_CHANGE ActionType = 4
)

var (
	ActionType_name = map[int32]string{
		0: "ACTION_TYPE_UNKNOWN",
		1: "SOFTWARE_UPDATE",
		2: "FIRMWARE_UPDATE",
		3: "SYSTEM_REBOOT",
		4: "CONFIGURATION_CHANGE",
	}
	ActionType_value = invert(ActionType_name)
)

func (x ActionType) String() string { return enumName(ActionType_name, int32(x)) }

type ActionStatus int32

const (
	ActionStatus_ACTION_STATUS_UNKNOWN ActionStatus = 0
	ActionStatus_PENDING               ActionStatus = 1
	ActionStatus_RUNNING               ActionStatus = 2
	ActionStatus_COMPLETED             ActionStatus = 3
	ActionStatus_FAILED                ActionStatus = 4
)

var (
	ActionStatus_name = map[int32]string{
		0: "ACTION_STATUS_UNKNOWN",
		1: "PENDING",
		2: "RUNNING",
		3: "COMPLETED",
		4: "FAILED",
	}
	ActionStatus_value = invert(ActionStatus_name)
)

func (x ActionStatus) String() string { return enumName(ActionStatus_name, int32(x)) }

func invert(m map[int32]string) map[string]int32 {
	out := make(map[string]int32, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

func enumName(names map[int32]string, v int32) string {
	if s, ok := names[v]; ok {
		return s
	}
	return strconv.Itoa(int(v))
}

type DeviceInfo struct {
	DeviceId        string       `json:"device_id,omitempty"`
	DeviceName      string       `json:"device_name,omitempty"`
	DeviceType      string       `json:"device_type,omitempty"`
	Status          DeviceStatus `json:"status,omitempty"`
	RegisteredAt    int64        `json:"registered_at,omitempty"`
	LastUpdated     int64        `json:"last_updated,omitempty"`
	CurrentActionId string       `json:"current_action_id,omitempty"`
}

type ActionInfo struct {
	ActionId     string            `json:"action_id,omitempty"`
	DeviceId     string            `json:"device_id,omitempty"`
	ActionType   ActionType        `json:"action_type,omitempty"`
	Status       ActionStatus      `json:"status,omitempty"`
	ActionParams map[string]string `json:"action_params,omitempty"`
	InitiatedAt  int64             `json:"initiated_at,omitempty"`
	// CompletedAt is 0 while the action is still in progress.
	CompletedAt  int64  `json:"completed_at,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	Progress     int32  `json:"progress,omitempty"`
}

type RegisterDeviceRequest struct {
	DeviceId      string       `json:"device_id,omitempty"`
	DeviceName    string       `json:"device_name,omitempty"`
	DeviceType    string       `json:"device_type,omitempty"`
	InitialStatus DeviceStatus `json:"initial_status,omitempty"`
}

func (x *RegisterDeviceRequest) GetDeviceId() string {
	if x != nil {
		return x.DeviceId
	}
	return ""
}

type RegisterDeviceResponse struct {
	Success  bool   `json:"success,omitempty"`
	Message  string `json:"message,omitempty"`
	DeviceId string `json:"device_id,omitempty"`
}

type SetDeviceStatusRequest struct {
	DeviceId string       `json:"device_id,omitempty"`
	Status   DeviceStatus `json:"status,omitempty"`
}

func (x *SetDeviceStatusRequest) GetDeviceId() string {
	if x != nil {
		return x.DeviceId
	}
	return ""
}

type SetDeviceStatusResponse struct {
	Success        bool         `json:"success,omitempty"`
	Message        string       `json:"message,omitempty"`
	PreviousStatus DeviceStatus `json:"previous_status,omitempty"`
	CurrentStatus  DeviceStatus `json:"current_status,omitempty"`
}

type GetDeviceInfoRequest struct {
	DeviceId string `json:"device_id,omitempty"`
}

func (x *GetDeviceInfoRequest) GetDeviceId() string {
	if x != nil {
		return x.DeviceId
	}
	return ""
}

type GetDeviceInfoResponse struct {
	Success    bool        `json:"success,omitempty"`
	Message    string      `json:"message,omitempty"`
	DeviceInfo *DeviceInfo `json:"device_info,omitempty"`
}

type ListDevicesRequest struct{}

type ListDevicesResponse struct {
	Success bool          `json:"success,omitempty"`
	Message string        `json:"message,omitempty"`
	Devices []*DeviceInfo `json:"devices,omitempty"`
}

type InitiateDeviceActionRequest struct {
	DeviceId     string            `json:"device_id,omitempty"`
	ActionType   ActionType        `json:"action_type,omitempty"`
	ActionParams map[string]string `json:"action_params,omitempty"`
}

func (x *InitiateDeviceActionRequest) GetDeviceId() string {
	if x != nil {
		return x.DeviceId
	}
	return ""
}

type InitiateDeviceActionResponse struct {
	Success      bool         `json:"success,omitempty"`
	Message      string       `json:"message,omitempty"`
	ActionId     string       `json:"action_id,omitempty"`
	ActionStatus ActionStatus `json:"action_status,omitempty"`
}

type GetDeviceActionStatusRequest struct {
	ActionId string `json:"action_id,omitempty"`
}

func (x *GetDeviceActionStatusRequest) GetActionId() string {
	if x != nil {
		return x.ActionId
	}
	return ""
}

type GetDeviceActionStatusResponse struct {
	Success    bool        `json:"success,omitempty"`
	Message    string      `json:"message,omitempty"`
	ActionInfo *ActionInfo `json:"action_info,omitempty"`
}
