package websocket

import (
	"time"

	"github.com/KevinKickass/OpenFleetCore/internal/types"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	// Device registry messages
	MessageTypeDeviceRegistered MessageType = "device_registered"
	MessageTypeDeviceStatus     MessageType = "device_status"

	// Action engine messages
	MessageTypeActionStarted   MessageType = "action_started"
	MessageTypeActionCompleted MessageType = "action_completed"
	MessageTypeActionFailed    MessageType = "action_failed"

	// System messages
	MessageTypeSystemStatus MessageType = "system_status"
)

// Message represents a WebSocket message
type Message struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      any         `json:"data"`
}

// DeviceEventData is sent for registrations and status changes.
type DeviceEventData struct {
	DeviceID       string        `json:"device_id"`
	Status         string        `json:"status"`
	PreviousStatus string        `json:"previous_status,omitempty"`
	Device         *types.Device `json:"device,omitempty"`
}

// ActionEventData is sent when an action starts or reaches a terminal state.
type ActionEventData struct {
	ActionID     string `json:"action_id"`
	DeviceID     string `json:"device_id"`
	ActionType   string `json:"action_type"`
	Status       string `json:"status"`
	Progress     int    `json:"progress"`
	ErrorMessage string `json:"error_message,omitempty"`
}

type SystemStatusData struct {
	State    string `json:"state"`
	Previous string `json:"previous_state,omitempty"`
}

// NewMessage creates a new message with current timestamp
func NewMessage(msgType MessageType, data any) Message {
	return Message{
		Type:      msgType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

// NewEventMessage converts a fleet event into its wire form. The event's
// own timestamp is kept when set.
func NewEventMessage(e types.Event) Message {
	msg := Message{Type: MessageType(e.Type), Timestamp: e.Timestamp}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}

	switch e.Type {
	case types.EventActionStarted, types.EventActionCompleted, types.EventActionFailed:
		data := ActionEventData{DeviceID: e.DeviceID}
		if a := e.Action; a != nil {
			data.ActionID = a.ID
			data.ActionType = a.Type.String()
			data.Status = a.Status.String()
			data.Progress = a.Progress
			data.ErrorMessage = a.ErrorMessage
		}
		msg.Data = data
	default:
		data := DeviceEventData{
			DeviceID: e.DeviceID,
			Status:   e.Status.String(),
			Device:   e.Device,
		}
		if e.PreviousStatus != types.DeviceStatusUnknown {
			data.PreviousStatus = e.PreviousStatus.String()
		}
		msg.Data = data
	}
	return msg
}

func NewSystemStatusMessage(state, previous string) Message {
	return NewMessage(MessageTypeSystemStatus, SystemStatusData{
		State:    state,
		Previous: previous,
	})
}
