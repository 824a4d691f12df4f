package types

import (
	"testing"
	"time"
)

func TestParseDeviceStatus(t *testing.T) {
	tests := []struct {
		in   string
		want DeviceStatus
		ok   bool
	}{
		{"IDLE", DeviceStatusIdle, true},
		{"idle", DeviceStatusIdle, true},
		{" Updating ", DeviceStatusUpdating, true},
		{"recovering", DeviceStatusRecovering, true},
		{"", DeviceStatusUnknown, false},
		{"UNKNOWN", DeviceStatusUnknown, false},
		{"sleeping", DeviceStatusUnknown, false},
	}
	for _, tt := range tests {
		got, ok := ParseDeviceStatus(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseDeviceStatus(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDeviceStatus_Valid(t *testing.T) {
	if DeviceStatusUnknown.Valid() {
		t.Error("expected unset status to be invalid")
	}
	if DeviceStatus("idle").Valid() {
		t.Error("expected non-canonical spelling to be invalid")
	}
	if !DeviceStatusError.Valid() {
		t.Error("expected ERROR to be valid")
	}
}

func TestActionType_DeviceStatus(t *testing.T) {
	tests := []struct {
		action ActionType
		want   DeviceStatus
	}{
		{ActionTypeSoftwareUpdate, DeviceStatusUpdating},
		{ActionTypeFirmwareUpdate, DeviceStatusUpdating},
		{ActionTypeSystemReboot, DeviceStatusBusy},
		{ActionTypeConfigurationChange, DeviceStatusBusy},
	}
	for _, tt := range tests {
		if got := tt.action.DeviceStatus(); got != tt.want {
			t.Errorf("%s.DeviceStatus() = %s, want %s", tt.action, got, tt.want)
		}
	}
}

func TestParseActionType_RejectsUnknown(t *testing.T) {
	if _, ok := ParseActionType("ACTION_TYPE_UNKNOWN"); ok {
		t.Error("expected ACTION_TYPE_UNKNOWN to be rejected")
	}
	if got, ok := ParseActionType("firmware_update"); !ok || got != ActionTypeFirmwareUpdate {
		t.Errorf("expected FIRMWARE_UPDATE, got %q (ok=%v)", got, ok)
	}
}

func TestActionStatus_Terminal(t *testing.T) {
	for _, s := range []ActionStatus{ActionStatusPending, ActionStatusRunning} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
	for _, s := range []ActionStatus{ActionStatusCompleted, ActionStatusFailed} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
}

func TestAction_Clone(t *testing.T) {
	done := time.Unix(1700000000, 0)
	orig := Action{
		ID:          "a1",
		Params:      map[string]string{"version": "1.2.3"},
		CompletedAt: &done,
	}

	c := orig.Clone()
	c.Params["version"] = "9.9.9"
	*c.CompletedAt = time.Unix(0, 0)

	if orig.Params["version"] != "1.2.3" {
		t.Errorf("clone shares params map: got %q", orig.Params["version"])
	}
	if !orig.CompletedAt.Equal(done) {
		t.Errorf("clone shares completed_at: got %v", orig.CompletedAt)
	}
}

func TestUnixOrZero(t *testing.T) {
	if got := UnixOrZero(nil); got != 0 {
		t.Errorf("UnixOrZero(nil) = %d, want 0", got)
	}
	ts := time.Unix(1700000000, 500)
	if got := UnixOrZero(&ts); got != 1700000000 {
		t.Errorf("UnixOrZero = %d, want 1700000000", got)
	}
}
