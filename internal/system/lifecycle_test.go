package system

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	pb "github.com/KevinKickass/OpenFleetCore/api/proto"
	"github.com/KevinKickass/OpenFleetCore/internal/actions"
	"github.com/KevinKickass/OpenFleetCore/internal/config"
	"github.com/KevinKickass/OpenFleetCore/internal/types"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			GRPCPort:        50051,
			HTTPPort:        8080,
			ShutdownTimeout: 5 * time.Second,
		},
		Simulation: config.SimulationConfig{
			MinDuration:   time.Hour,
			MaxDuration:   time.Hour,
			PollInterval:  5 * time.Millisecond,
			SuccessRate:   1,
			MaxConcurrent: 4,
		},
	}
}

type running struct {
	lm       *LifecycleManager
	client   pb.DeviceManagementServiceClient
	httpAddr string
}

func startSystem(t *testing.T) *running {
	t.Helper()

	lm := NewLifecycleManager(testConfig(), zaptest.NewLogger(t))

	grpcLis := bufconn.Listen(1 << 20)
	httpLis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}

	if err := lm.StartWithListeners(grpcLis, httpLis); err != nil {
		t.Fatalf("StartWithListeners() error = %v", err)
	}

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return grpcLis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	t.Cleanup(func() {
		conn.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		lm.Shutdown(ctx)
	})

	return &running{
		lm:       lm,
		client:   pb.NewDeviceManagementServiceClient(conn),
		httpAddr: httpLis.Addr().String(),
	}
}

func TestStartServesBothTransports(t *testing.T) {
	sys := startSystem(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if sys.lm.State() != StateRunning {
		t.Fatalf("expected RUNNING, got %s", sys.lm.State())
	}

	if _, err := sys.client.RegisterDevice(ctx, &pb.RegisterDeviceRequest{DeviceId: "dev1"}); err != nil {
		t.Fatalf("RegisterDevice() error = %v", err)
	}

	resp, err := http.Get("http://" + sys.httpAddr + "/api/v1/devices/dev1")
	if err != nil {
		t.Fatalf("GET device error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected device visible over REST, got %d", resp.StatusCode)
	}

	status := sys.lm.GetCurrentStatus()
	if status.State != "RUNNING" || status.DeviceCount != 1 {
		t.Errorf("unexpected status %+v", status)
	}
	if status.StartedAt == 0 {
		t.Error("expected started_at to be set")
	}
}

func TestShutdownCancelsOutstandingActions(t *testing.T) {
	sys := startSystem(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := sys.client.RegisterDevice(ctx, &pb.RegisterDeviceRequest{DeviceId: "dev1"}); err != nil {
		t.Fatalf("RegisterDevice() error = %v", err)
	}
	started, err := sys.client.InitiateDeviceAction(ctx, &pb.InitiateDeviceActionRequest{
		DeviceId:   "dev1",
		ActionType: pb.ActionType_FIRMWARE_UPDATE,
	})
	if err != nil {
		t.Fatalf("InitiateDeviceAction() error = %v", err)
	}

	if got := sys.lm.GetCurrentStatus().ActiveActions; got != 1 {
		t.Errorf("expected 1 active action, got %d", got)
	}

	if err := sys.lm.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	select {
	case <-sys.lm.Done():
	default:
		t.Fatal("expected Done to be closed after Shutdown")
	}
	if sys.lm.State() != StateStopped {
		t.Errorf("expected STOPPED, got %s", sys.lm.State())
	}

	res, err := sys.lm.Service().GetDeviceActionStatus(ctx, started.ActionId)
	if err != nil {
		t.Fatalf("GetDeviceActionStatus() error = %v", err)
	}
	if res.Action.Status != types.ActionStatusFailed || res.Action.ErrorMessage != actions.CancelledMessage {
		t.Errorf("expected cancelled failure, got %s %q", res.Action.Status, res.Action.ErrorMessage)
	}

	dev, err := sys.lm.Service().GetDeviceInfo(ctx, "dev1")
	if err != nil {
		t.Fatalf("GetDeviceInfo() error = %v", err)
	}
	if dev.Device.Status != types.DeviceStatusUpdating {
		t.Errorf("expected device left UPDATING, got %s", dev.Device.Status)
	}

	if err := sys.lm.Shutdown(ctx); err != nil {
		t.Errorf("second Shutdown() error = %v", err)
	}
}

func TestStartAfterShutdown(t *testing.T) {
	lm := NewLifecycleManager(testConfig(), zaptest.NewLogger(t))
	if err := lm.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	if err := lm.StartWithListeners(bufconn.Listen(1024), nil); err == nil {
		t.Error("expected Start to fail after Shutdown")
	}
}

func TestHTTPDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Server.HTTPPort = 0

	lm := NewLifecycleManager(cfg, zaptest.NewLogger(t))
	if lm.restServer != nil {
		t.Error("expected no REST server when http_port is 0")
	}
	if err := lm.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestValidateTransition(t *testing.T) {
	tests := []struct {
		from, to SystemState
		wantErr  bool
	}{
		{StateInitializing, StateRunning, false},
		{StateInitializing, StateStopping, false},
		{StateRunning, StateStopping, false},
		{StateStopping, StateStopped, false},
		{StateError, StateStopping, false},
		{StateRunning, StateInitializing, true},
		{StateStopped, StateRunning, true},
		{StateStopped, StateStopping, true},
		{SystemState(99), StateRunning, true},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			err := ValidateTransition(tt.from, tt.to)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTransition() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
