package actions

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/KevinKickass/OpenFleetCore/internal/ids"
	"github.com/KevinKickass/OpenFleetCore/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

const (
	CancelledMessage     = "Action was cancelled"
	RandomFailureMessage = "Action simulation failed (random failure)"

	defaultPollInterval  = time.Second
	defaultMaxConcurrent = 64
)

// DeviceStore is the part of the device registry the engine mutates.
type DeviceStore interface {
	SetStatus(deviceID string, status types.DeviceStatus) (types.DeviceStatus, error)
	SetCurrentAction(deviceID, actionID string) error
	ClearCurrentAction(deviceID string) error
}

// Notifier receives lifecycle events. Publish must not block.
type Notifier interface {
	Publish(event types.Event)
}

type Options struct {
	// PollInterval bounds cancellation latency and sets the progress update rate.
	PollInterval time.Duration
	// MaxConcurrent caps how many actions are in their wait phase at once.
	MaxConcurrent int
}

type actionRecord struct {
	action types.Action
	cancel context.CancelFunc
}

// Engine runs one simulated action per Initiate call on its own goroutine.
// Its lock guards the action table only and is never held while calling the
// DeviceStore or the Notifier.
//
// The engine does not check whether the device already has an outstanding
// action; callers serialize on the registry's current action marker.
type Engine struct {
	store    DeviceStore
	policy   Policy
	opts     Options
	notifier Notifier
	logger   *zap.Logger
	slots    *semaphore.Weighted
	now      func() time.Time

	rootCtx    context.Context
	rootCancel context.CancelFunc

	mu           sync.RWMutex
	actions      map[string]*actionRecord
	stopped      bool
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

func NewEngine(store DeviceStore, policy Policy, opts Options, notifier Notifier, logger *zap.Logger) *Engine {
	if policy == nil {
		policy = DefaultPolicy()
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = defaultMaxConcurrent
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Engine{
		store:      store,
		policy:     policy,
		opts:       opts,
		notifier:   notifier,
		logger:     logger,
		slots:      semaphore.NewWeighted(int64(opts.MaxConcurrent)),
		now:        time.Now,
		rootCtx:    ctx,
		rootCancel: cancel,
		actions:    make(map[string]*actionRecord),
	}
}

// Initiate creates a PENDING action, marks the device busy, flips the action
// to RUNNING and starts its worker. It returns without waiting for the work.
func (e *Engine) Initiate(deviceID string, actionType types.ActionType, params map[string]string) (string, error) {
	actionID := ids.NewActionID()
	ctx, cancel := context.WithCancel(e.rootCtx)

	rec := &actionRecord{
		action: types.Action{
			ID:          actionID,
			DeviceID:    deviceID,
			Type:        actionType,
			Status:      types.ActionStatusPending,
			Params:      maps.Clone(params),
			InitiatedAt: e.now(),
		},
		cancel: cancel,
	}

	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		cancel()
		return "", types.ErrEngineStopped
	}
	e.actions[actionID] = rec
	e.wg.Add(1)
	e.mu.Unlock()

	if err := e.store.SetCurrentAction(deviceID, actionID); err != nil {
		e.mu.Lock()
		delete(e.actions, actionID)
		e.mu.Unlock()
		cancel()
		e.wg.Done()
		return "", fmt.Errorf("initiate %s: %w", actionType, err)
	}

	deviceStatus := actionType.DeviceStatus()
	previous, err := e.store.SetStatus(deviceID, deviceStatus)
	if err != nil {
		e.logger.Warn("Failed to mark device busy",
			zap.String("device_id", deviceID),
			zap.String("action_id", actionID),
			zap.Error(err))
	}

	e.mu.Lock()
	if !rec.action.Status.Terminal() {
		rec.action.Status = types.ActionStatusRunning
	}
	started := rec.action.Clone()
	e.mu.Unlock()

	e.logger.Info("Action started",
		zap.String("action_id", actionID),
		zap.String("device_id", deviceID),
		zap.String("action_type", actionType.String()))

	e.publish(types.Event{
		Type:           types.EventActionStarted,
		DeviceID:       deviceID,
		Action:         &started,
		Status:         deviceStatus,
		PreviousStatus: previous,
	})

	go e.run(ctx, rec, deviceID)

	return actionID, nil
}

// GetStatus returns a snapshot of the action.
func (e *Engine) GetStatus(actionID string) (types.Action, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	rec, exists := e.actions[actionID]
	if !exists {
		return types.Action{}, fmt.Errorf("get %q: %w", actionID, types.ErrActionNotFound)
	}
	return rec.action.Clone(), nil
}

// Active returns the number of actions that have not reached a terminal state.
func (e *Engine) Active() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	n := 0
	for _, rec := range e.actions {
		if !rec.action.Status.Terminal() {
			n++
		}
	}
	return n
}

// Shutdown cancels every tracked action and blocks until all workers have
// finished. Repeated calls only wait.
func (e *Engine) Shutdown() {
	e.shutdownOnce.Do(func() {
		e.mu.Lock()
		e.stopped = true
		e.rootCancel()
		for _, rec := range e.actions {
			rec.cancel()
		}
		e.mu.Unlock()

		e.logger.Info("Action engine shutting down", zap.Int("active", e.Active()))
	})

	e.wg.Wait()
}

func (e *Engine) run(ctx context.Context, rec *actionRecord, deviceID string) {
	defer e.wg.Done()
	defer rec.cancel()

	actionID := rec.action.ID
	waited := e.wait(ctx, actionID, e.policy.Duration())
	succeeded := e.policy.Succeeds()

	final, cancelled := e.finish(actionID, !waited || ctx.Err() != nil, succeeded)

	if cancelled {
		e.logger.Info("Action cancelled",
			zap.String("action_id", actionID),
			zap.String("device_id", deviceID))
		e.publish(types.Event{
			Type:     types.EventActionFailed,
			DeviceID: deviceID,
			Action:   &final,
		})
		return
	}

	next := types.DeviceStatusIdle
	eventType := types.EventActionCompleted
	if final.Status == types.ActionStatusFailed {
		next = types.DeviceStatusError
		eventType = types.EventActionFailed
	}

	previous, err := e.store.SetStatus(deviceID, next)
	if err != nil {
		e.logger.Error("Failed to update device after action",
			zap.String("action_id", actionID),
			zap.String("device_id", deviceID),
			zap.Error(err))
	}
	if err := e.store.ClearCurrentAction(deviceID); err != nil {
		e.logger.Error("Failed to clear device action",
			zap.String("action_id", actionID),
			zap.String("device_id", deviceID),
			zap.Error(err))
	}

	e.logger.Info("Action finished",
		zap.String("action_id", actionID),
		zap.String("device_id", deviceID),
		zap.String("status", final.Status.String()))

	e.publish(types.Event{
		Type:           eventType,
		DeviceID:       deviceID,
		Action:         &final,
		Status:         next,
		PreviousStatus: previous,
	})
}

// wait blocks for total or until ctx is done, updating progress on every
// poll tick. It reports whether the full duration elapsed.
func (e *Engine) wait(ctx context.Context, actionID string, total time.Duration) bool {
	if err := e.slots.Acquire(ctx, 1); err != nil {
		return false
	}
	defer e.slots.Release(1)

	if total <= 0 {
		return ctx.Err() == nil
	}

	start := time.Now()
	timer := time.NewTimer(total)
	defer timer.Stop()
	ticker := time.NewTicker(e.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return false
		case <-timer.C:
			return true
		case <-ticker.C:
			pct := int(time.Since(start) * 100 / total)
			e.setProgress(actionID, min(pct, 99))
		}
	}
}

func (e *Engine) setProgress(actionID string, pct int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if rec, ok := e.actions[actionID]; ok && !rec.action.Status.Terminal() {
		rec.action.Progress = pct
	}
}

// finish moves the action to its terminal state exactly once. A shutdown in
// progress forces the cancelled outcome.
func (e *Engine) finish(actionID string, cancelled, succeeded bool) (types.Action, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec := e.actions[actionID]
	if rec.action.Status.Terminal() {
		return rec.action.Clone(), cancelled
	}

	cancelled = cancelled || e.stopped
	now := e.now()

	switch {
	case cancelled:
		rec.action.Status = types.ActionStatusFailed
		rec.action.ErrorMessage = CancelledMessage
	case succeeded:
		rec.action.Status = types.ActionStatusCompleted
		rec.action.Progress = 100
	default:
		rec.action.Status = types.ActionStatusFailed
		rec.action.ErrorMessage = RandomFailureMessage
	}
	rec.action.CompletedAt = &now

	return rec.action.Clone(), cancelled
}

func (e *Engine) publish(event types.Event) {
	if e.notifier == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = e.now()
	}
	e.notifier.Publish(event)
}
