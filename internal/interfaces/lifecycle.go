package interfaces

import "context"

// SystemStatus represents the current system state
type SystemStatus struct {
	State            string `json:"state"`
	DeviceCount      int    `json:"device_count"`
	ActiveActions    int    `json:"active_actions"`
	ConnectedClients int    `json:"connected_clients"`
	StartedAt        int64  `json:"started_at,omitempty"`
	Timestamp        int64  `json:"timestamp"`
}

// LifecycleManager is the view of the running system the HTTP layer needs.
type LifecycleManager interface {
	GetCurrentStatus() SystemStatus
	Shutdown(ctx context.Context) error
}
