package actions

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/KevinKickass/OpenFleetCore/internal/devices"
	"github.com/KevinKickass/OpenFleetCore/internal/types"
	"go.uber.org/zap/zaptest"
)

// recordingNotifier collects published events for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	events []types.Event
}

func (n *recordingNotifier) Publish(e types.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
}

func (n *recordingNotifier) eventTypes() []types.EventType {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]types.EventType, 0, len(n.events))
	for _, e := range n.events {
		out = append(out, e.Type)
	}
	return out
}

func newTestEngine(t *testing.T, policy Policy, opts Options) (*Engine, *devices.Registry, *recordingNotifier) {
	t.Helper()
	logger := zaptest.NewLogger(t)
	registry := devices.NewRegistry(logger)
	notifier := &recordingNotifier{}
	if opts.PollInterval == 0 {
		opts.PollInterval = 5 * time.Millisecond
	}
	engine := NewEngine(registry, policy, opts, notifier, logger)
	t.Cleanup(engine.Shutdown)
	return engine, registry, notifier
}

func mustRegister(t *testing.T, r *devices.Registry, id string) {
	t.Helper()
	if err := r.Register(id, "name-"+id, "sensor", types.DeviceStatusIdle); err != nil {
		t.Fatalf("Register(%q) failed: %v", id, err)
	}
}

func waitForTerminal(t *testing.T, e *Engine, actionID string) types.Action {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		a, err := e.GetStatus(actionID)
		if err != nil {
			t.Fatalf("GetStatus failed: %v", err)
		}
		if a.Status.Terminal() {
			return a
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("action %s did not reach a terminal state", actionID)
	return types.Action{}
}

// shutdownWithin fails the test if Shutdown does not return in time.
func shutdownWithin(t *testing.T, e *Engine, limit time.Duration) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		e.Shutdown()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(limit):
		t.Fatal("Shutdown did not return in time")
	}
}

func TestInitiate_MarksDeviceImmediately(t *testing.T) {
	tests := []struct {
		action types.ActionType
		want   types.DeviceStatus
	}{
		{types.ActionTypeFirmwareUpdate, types.DeviceStatusUpdating},
		{types.ActionTypeSoftwareUpdate, types.DeviceStatusUpdating},
		{types.ActionTypeSystemReboot, types.DeviceStatusBusy},
		{types.ActionTypeConfigurationChange, types.DeviceStatusBusy},
	}
	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			engine, registry, _ := newTestEngine(t, FixedPolicy{Wait: time.Hour}, Options{})
			mustRegister(t, registry, "dev1")

			actionID, err := engine.Initiate("dev1", tt.action, map[string]string{"version": "2.0"})
			if err != nil {
				t.Fatalf("Initiate failed: %v", err)
			}

			dev, _ := registry.Get("dev1")
			if dev.Status != tt.want {
				t.Errorf("expected device status %s, got %s", tt.want, dev.Status)
			}
			if dev.CurrentActionID != actionID {
				t.Errorf("expected current action %q, got %q", actionID, dev.CurrentActionID)
			}

			action, err := engine.GetStatus(actionID)
			if err != nil {
				t.Fatalf("GetStatus failed: %v", err)
			}
			if action.Status != types.ActionStatusRunning {
				t.Errorf("expected RUNNING, got %s", action.Status)
			}
			if action.CompletedAt != nil {
				t.Errorf("expected completed_at unset, got %v", action.CompletedAt)
			}
			if action.Params["version"] != "2.0" {
				t.Errorf("expected params to be recorded, got %v", action.Params)
			}
		})
	}
}

func TestInitiate_CopiesParams(t *testing.T) {
	engine, registry, _ := newTestEngine(t, FixedPolicy{Wait: time.Hour}, Options{})
	mustRegister(t, registry, "dev1")

	params := map[string]string{"k": "v"}
	actionID, _ := engine.Initiate("dev1", types.ActionTypeSystemReboot, params)
	params["k"] = "changed"

	action, _ := engine.GetStatus(actionID)
	if action.Params["k"] != "v" {
		t.Errorf("expected engine to keep its own copy, got %q", action.Params["k"])
	}
}

func TestAction_SuccessPath(t *testing.T) {
	engine, registry, notifier := newTestEngine(t, FixedPolicy{Wait: 20 * time.Millisecond, Success: true}, Options{})
	mustRegister(t, registry, "dev1")

	actionID, err := engine.Initiate("dev1", types.ActionTypeFirmwareUpdate, nil)
	if err != nil {
		t.Fatalf("Initiate failed: %v", err)
	}

	action := waitForTerminal(t, engine, actionID)
	if action.Status != types.ActionStatusCompleted {
		t.Fatalf("expected COMPLETED, got %s (%s)", action.Status, action.ErrorMessage)
	}
	if action.CompletedAt == nil {
		t.Fatal("expected completed_at to be set")
	}
	if action.Progress != 100 {
		t.Errorf("expected progress 100, got %d", action.Progress)
	}
	if action.ErrorMessage != "" {
		t.Errorf("expected no error message, got %q", action.ErrorMessage)
	}

	engine.Shutdown()

	dev, _ := registry.Get("dev1")
	if dev.Status != types.DeviceStatusIdle {
		t.Errorf("expected device IDLE, got %s", dev.Status)
	}
	if dev.CurrentActionID != "" {
		t.Errorf("expected current action cleared, got %q", dev.CurrentActionID)
	}

	got := notifier.eventTypes()
	if len(got) != 2 || got[0] != types.EventActionStarted || got[1] != types.EventActionCompleted {
		t.Errorf("unexpected events: %v", got)
	}
}

func TestAction_FailurePath(t *testing.T) {
	engine, registry, _ := newTestEngine(t, FixedPolicy{Wait: 10 * time.Millisecond, Success: false}, Options{})
	mustRegister(t, registry, "dev1")

	actionID, _ := engine.Initiate("dev1", types.ActionTypeSystemReboot, nil)
	action := waitForTerminal(t, engine, actionID)

	if action.Status != types.ActionStatusFailed {
		t.Fatalf("expected FAILED, got %s", action.Status)
	}
	if action.ErrorMessage != RandomFailureMessage {
		t.Errorf("expected %q, got %q", RandomFailureMessage, action.ErrorMessage)
	}

	engine.Shutdown()

	dev, _ := registry.Get("dev1")
	if dev.Status != types.DeviceStatusError {
		t.Errorf("expected device ERROR, got %s", dev.Status)
	}
	if dev.CurrentActionID != "" {
		t.Errorf("expected current action cleared, got %q", dev.CurrentActionID)
	}
}

func TestAction_TerminalIsFinal(t *testing.T) {
	engine, registry, _ := newTestEngine(t, FixedPolicy{Wait: time.Millisecond, Success: true}, Options{})
	mustRegister(t, registry, "dev1")

	actionID, _ := engine.Initiate("dev1", types.ActionTypeSystemReboot, nil)
	first := waitForTerminal(t, engine, actionID)

	// A second finish must not rewrite the terminal record.
	again, _ := engine.finish(actionID, true, false)
	if again.Status != first.Status || !again.CompletedAt.Equal(*first.CompletedAt) {
		t.Errorf("terminal record changed: before %+v, after %+v", first, again)
	}

	engine.Shutdown()
	after, _ := engine.GetStatus(actionID)
	if after.Status != types.ActionStatusCompleted {
		t.Errorf("status regressed after shutdown: %s", after.Status)
	}
}

func TestAction_ReportsProgress(t *testing.T) {
	engine, registry, _ := newTestEngine(t, FixedPolicy{Wait: 500 * time.Millisecond, Success: true}, Options{PollInterval: 5 * time.Millisecond})
	mustRegister(t, registry, "dev1")

	actionID, _ := engine.Initiate("dev1", types.ActionTypeSoftwareUpdate, nil)

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		a, _ := engine.GetStatus(actionID)
		if a.Progress > 0 && !a.Status.Terminal() {
			if a.Progress > 99 {
				t.Errorf("running action reported progress %d", a.Progress)
			}
			return
		}
		if a.Status.Terminal() {
			break
		}
		time.Sleep(time.Millisecond)
	}
	t.Error("expected progress to be reported while running")
}

func TestInitiate_UnknownDevice(t *testing.T) {
	engine, _, notifier := newTestEngine(t, FixedPolicy{Wait: time.Hour}, Options{})

	_, err := engine.Initiate("ghost", types.ActionTypeSystemReboot, nil)
	if !errors.Is(err, types.ErrDeviceNotFound) {
		t.Fatalf("expected ErrDeviceNotFound, got %v", err)
	}
	if engine.Active() != 0 {
		t.Errorf("expected no tracked actions, got %d", engine.Active())
	}
	if len(notifier.eventTypes()) != 0 {
		t.Errorf("expected no events, got %v", notifier.eventTypes())
	}
	shutdownWithin(t, engine, time.Second)
}

func TestGetStatus_NotFound(t *testing.T) {
	engine, _, _ := newTestEngine(t, FixedPolicy{}, Options{})

	if _, err := engine.GetStatus("action_missing"); !errors.Is(err, types.ErrActionNotFound) {
		t.Errorf("expected ErrActionNotFound, got %v", err)
	}
}

func TestShutdown_CancelsWaitingActions(t *testing.T) {
	engine, registry, _ := newTestEngine(t, FixedPolicy{Wait: time.Hour, Success: true}, Options{PollInterval: 10 * time.Millisecond})

	const n = 5
	actionIDs := make([]string, 0, n)
	for i := range n {
		id := string(rune('a' + i))
		mustRegister(t, registry, id)
		actionID, err := engine.Initiate(id, types.ActionTypeFirmwareUpdate, nil)
		if err != nil {
			t.Fatalf("Initiate failed: %v", err)
		}
		actionIDs = append(actionIDs, actionID)
	}

	shutdownWithin(t, engine, 5*time.Second)

	for i, actionID := range actionIDs {
		a, _ := engine.GetStatus(actionID)
		if a.Status != types.ActionStatusFailed {
			t.Errorf("%s: expected FAILED, got %s", actionID, a.Status)
		}
		if a.ErrorMessage != CancelledMessage {
			t.Errorf("%s: expected %q, got %q", actionID, CancelledMessage, a.ErrorMessage)
		}
		if a.CompletedAt == nil {
			t.Errorf("%s: expected completed_at to be set", actionID)
		}

		// Cancelled actions leave the device untouched.
		dev, _ := registry.Get(string(rune('a' + i)))
		if dev.Status != types.DeviceStatusUpdating {
			t.Errorf("device %s: expected UPDATING, got %s", dev.ID, dev.Status)
		}
		if dev.CurrentActionID != actionID {
			t.Errorf("device %s: expected current action %q, got %q", dev.ID, actionID, dev.CurrentActionID)
		}
	}
	if engine.Active() != 0 {
		t.Errorf("expected no active actions, got %d", engine.Active())
	}
}

func TestShutdown_NoActions(t *testing.T) {
	engine, _, _ := newTestEngine(t, FixedPolicy{}, Options{})
	shutdownWithin(t, engine, time.Second)
	// Idempotent.
	shutdownWithin(t, engine, time.Second)
}

func TestInitiate_AfterShutdown(t *testing.T) {
	engine, registry, _ := newTestEngine(t, FixedPolicy{}, Options{})
	mustRegister(t, registry, "dev1")
	engine.Shutdown()

	if _, err := engine.Initiate("dev1", types.ActionTypeSystemReboot, nil); !errors.Is(err, types.ErrEngineStopped) {
		t.Fatalf("expected ErrEngineStopped, got %v", err)
	}
	dev, _ := registry.Get("dev1")
	if dev.Busy() || dev.Status != types.DeviceStatusIdle {
		t.Errorf("expected device untouched, got %+v", dev)
	}
}

func TestMaxConcurrent_QueuedActionsStillFinish(t *testing.T) {
	engine, registry, _ := newTestEngine(t, FixedPolicy{Wait: 20 * time.Millisecond, Success: true}, Options{MaxConcurrent: 1})
	mustRegister(t, registry, "a")
	mustRegister(t, registry, "b")
	mustRegister(t, registry, "c")

	var actionIDs []string
	for _, id := range []string{"a", "b", "c"} {
		actionID, err := engine.Initiate(id, types.ActionTypeSystemReboot, nil)
		if err != nil {
			t.Fatalf("Initiate failed: %v", err)
		}
		actionIDs = append(actionIDs, actionID)
	}

	for _, actionID := range actionIDs {
		if a := waitForTerminal(t, engine, actionID); a.Status != types.ActionStatusCompleted {
			t.Errorf("%s: expected COMPLETED, got %s", actionID, a.Status)
		}
	}
}

func TestShutdown_CancelsQueuedActions(t *testing.T) {
	engine, registry, _ := newTestEngine(t, FixedPolicy{Wait: time.Hour}, Options{MaxConcurrent: 1})
	mustRegister(t, registry, "a")
	mustRegister(t, registry, "b")

	first, _ := engine.Initiate("a", types.ActionTypeSystemReboot, nil)
	queued, _ := engine.Initiate("b", types.ActionTypeSystemReboot, nil)

	shutdownWithin(t, engine, 5*time.Second)

	for _, actionID := range []string{first, queued} {
		a, _ := engine.GetStatus(actionID)
		if a.Status != types.ActionStatusFailed || a.ErrorMessage != CancelledMessage {
			t.Errorf("%s: expected cancelled FAILED, got %s (%q)", actionID, a.Status, a.ErrorMessage)
		}
	}
}

func TestFirmwareUpdateThenShutdown(t *testing.T) {
	engine, registry, _ := newTestEngine(t, DefaultPolicy(), Options{PollInterval: 10 * time.Millisecond})
	mustRegister(t, registry, "dev1")

	actionID, err := engine.Initiate("dev1", types.ActionTypeFirmwareUpdate, nil)
	if err != nil {
		t.Fatalf("Initiate failed: %v", err)
	}

	dev, _ := registry.Get("dev1")
	if dev.Status != types.DeviceStatusUpdating || dev.CurrentActionID == "" {
		t.Fatalf("expected UPDATING with an action, got %+v", dev)
	}

	shutdownWithin(t, engine, 5*time.Second)

	a, _ := engine.GetStatus(actionID)
	if a.Status != types.ActionStatusFailed || a.ErrorMessage != CancelledMessage {
		t.Errorf("expected cancelled FAILED, got %s (%q)", a.Status, a.ErrorMessage)
	}
	dev, _ = registry.Get("dev1")
	if dev.Status != types.DeviceStatusUpdating {
		t.Errorf("expected device to remain UPDATING, got %s", dev.Status)
	}
}

func TestRandomPolicy_Bounds(t *testing.T) {
	p := RandomPolicy{MinDuration: 10 * time.Second, MaxDuration: 30 * time.Second, SuccessRate: 0.9}
	for range 1000 {
		d := p.Duration()
		if d < p.MinDuration || d > p.MaxDuration {
			t.Fatalf("duration %v out of range", d)
		}
	}

	if (RandomPolicy{MinDuration: time.Second, MaxDuration: time.Second}).Duration() != time.Second {
		t.Error("expected degenerate range to return MinDuration")
	}
	if (RandomPolicy{SuccessRate: 0}).Succeeds() {
		t.Error("expected SuccessRate 0 to always fail")
	}
	if !(RandomPolicy{SuccessRate: 1}).Succeeds() {
		t.Error("expected SuccessRate 1 to always succeed")
	}
}
