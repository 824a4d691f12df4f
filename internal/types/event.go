package types

import "time"

type EventType string

const (
	EventDeviceRegistered EventType = "device_registered"
	EventDeviceStatus     EventType = "device_status"
	EventActionStarted    EventType = "action_started"
	EventActionCompleted  EventType = "action_completed"
	EventActionFailed     EventType = "action_failed"
)

// Event describes a state change in the fleet. Device and Action are
// snapshots and may be nil when not relevant to the event type.
type Event struct {
	Type           EventType    `json:"type"`
	DeviceID       string       `json:"device_id"`
	Device         *Device      `json:"device,omitempty"`
	Action         *Action      `json:"action,omitempty"`
	Status         DeviceStatus `json:"status,omitempty"`
	PreviousStatus DeviceStatus `json:"previous_status,omitempty"`
	Timestamp      time.Time    `json:"timestamp"`
}
