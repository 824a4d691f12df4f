package proto

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/grpc/encoding"
)

func TestCodecRegistered(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	if c == nil {
		t.Fatalf("expected codec %q to be registered", CodecName)
	}
	if c.Name() != CodecName {
		t.Errorf("expected name %q, got %q", CodecName, c.Name())
	}
}

func TestCodecEnumsAsIntegers(t *testing.T) {
	data, err := jsonCodec{}.Marshal(&SetDeviceStatusRequest{DeviceId: "d1", Status: DeviceStatus_UPDATING})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"device_id":"d1","status":5}`
	if string(data) != want {
		t.Errorf("expected %s, got %s", want, data)
	}
}

func TestCodecActionInfo(t *testing.T) {
	in := &GetDeviceActionStatusResponse{
		Success: true,
		ActionInfo: &ActionInfo{
			ActionId:     "action_1",
			DeviceId:     "d1",
			ActionType:   ActionType_FIRMWARE_UPDATE,
			Status:       ActionStatus_RUNNING,
			ActionParams: map[string]string{"version": "2.0"},
			InitiatedAt:  1700000000,
			Progress:     42,
		},
	}
	data, err := jsonCodec{}.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	out := new(GetDeviceActionStatusResponse)
	if err := (jsonCodec{}).Unmarshal(data, out); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestEnumString(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"device status", DeviceStatus_RECOVERING.String(), "RECOVERING"},
		{"action type", ActionType_CONFIGURATION_CHANGE.String(), "CONFIGURATION_CHANGE"},
		{"action status", ActionStatus_FAILED.String(), "FAILED"},
		{"out of range", DeviceStatus(42).String(), "42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, tt.got)
			}
		})
	}
	if DeviceStatus_value["ERROR"] != int32(DeviceStatus_ERROR) {
		t.Errorf("expected ERROR value %d, got %d", DeviceStatus_ERROR, DeviceStatus_value["ERROR"])
	}
}
