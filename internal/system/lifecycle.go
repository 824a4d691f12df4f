// Package system wires the registry, the action engine and the transports
// into one process and owns their start and shutdown order.
package system

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/KevinKickass/OpenFleetCore/internal/actions"
	"github.com/KevinKickass/OpenFleetCore/internal/api/grpcapi"
	"github.com/KevinKickass/OpenFleetCore/internal/api/rest"
	"github.com/KevinKickass/OpenFleetCore/internal/api/websocket"
	"github.com/KevinKickass/OpenFleetCore/internal/config"
	"github.com/KevinKickass/OpenFleetCore/internal/devices"
	"github.com/KevinKickass/OpenFleetCore/internal/fleet"
	"github.com/KevinKickass/OpenFleetCore/internal/interfaces"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type LifecycleManager struct {
	config   *config.Config
	registry *devices.Registry
	engine   *actions.Engine
	service  *fleet.Service
	wsHub    *websocket.Hub
	logger   *zap.Logger

	grpcServer *grpcapi.Server
	restServer *rest.Server

	stateMu      sync.RWMutex
	currentState SystemState
	startedAt    time.Time

	shutdownOnce sync.Once
	shutdownErr  error
	done         chan struct{}
}

func NewLifecycleManager(cfg *config.Config, logger *zap.Logger) *LifecycleManager {
	if logger == nil {
		logger = zap.NewNop()
	}

	wsHub := websocket.NewHub(logger.Named("websocket"))
	registry := devices.NewRegistry(logger.Named("registry"))

	policy := actions.RandomPolicy{
		MinDuration: cfg.Simulation.MinDuration,
		MaxDuration: cfg.Simulation.MaxDuration,
		SuccessRate: cfg.Simulation.SuccessRate,
	}
	engine := actions.NewEngine(registry, policy, actions.Options{
		PollInterval:  cfg.Simulation.PollInterval,
		MaxConcurrent: cfg.Simulation.MaxConcurrent,
	}, wsHub, logger.Named("actions"))

	service := fleet.NewService(registry, engine, wsHub, logger.Named("fleet"))

	lm := &LifecycleManager{
		config:       cfg,
		registry:     registry,
		engine:       engine,
		service:      service,
		wsHub:        wsHub,
		logger:       logger,
		currentState: StateInitializing,
		done:         make(chan struct{}),
	}

	lm.grpcServer = grpcapi.NewServer(service, logger.Named("grpc"))
	if cfg.HTTPEnabled() {
		lm.restServer = rest.NewServer(cfg, service, lm, wsHub, logger.Named("rest"))
	}

	return lm
}

// Start listens on the configured ports and starts serving.
func (lm *LifecycleManager) Start() error {
	grpcLis, err := net.Listen("tcp", fmt.Sprintf(":%d", lm.config.Server.GRPCPort))
	if err != nil {
		lm.setError(err)
		return fmt.Errorf("failed to listen for gRPC: %w", err)
	}

	var httpLis net.Listener
	if lm.restServer != nil {
		httpLis, err = net.Listen("tcp", fmt.Sprintf(":%d", lm.config.Server.HTTPPort))
		if err != nil {
			grpcLis.Close()
			lm.setError(err)
			return fmt.Errorf("failed to listen for REST API: %w", err)
		}
	}

	return lm.StartWithListeners(grpcLis, httpLis)
}

// StartWithListeners serves gRPC on grpcLis and, when the REST gateway is
// enabled and httpLis is non-nil, HTTP on httpLis.
func (lm *LifecycleManager) StartWithListeners(grpcLis, httpLis net.Listener) error {
	if state := lm.State(); state != StateInitializing {
		return fmt.Errorf("cannot start: system is %s", state)
	}

	lm.logger.Info("Starting fleet device manager")

	go lm.wsHub.Run()

	go func() {
		if err := lm.grpcServer.Serve(grpcLis); err != nil {
			lm.logger.Error("gRPC server failed", zap.Error(err))
		}
	}()

	if lm.restServer != nil && httpLis != nil {
		lm.restServer.Serve(httpLis)
	}

	lm.stateMu.Lock()
	lm.startedAt = time.Now()
	lm.stateMu.Unlock()

	if err := lm.setState(StateRunning); err != nil {
		return err
	}

	lm.logger.Info("System started successfully",
		zap.String("grpc_addr", grpcLis.Addr().String()),
		zap.Bool("rest_enabled", lm.restServer != nil && httpLis != nil))

	return nil
}

// Shutdown stops accepting requests, drains the transports, then cancels and
// joins every outstanding action. Later calls return the first result.
func (lm *LifecycleManager) Shutdown(ctx context.Context) error {
	lm.shutdownOnce.Do(func() {
		lm.logger.Info("Shutting down system")
		if err := lm.setState(StateStopping); err != nil {
			lm.logger.Warn("Unexpected state on shutdown", zap.Error(err))
		}

		lm.shutdownErr = lm.gracefulShutdown(ctx)

		if err := lm.setState(StateStopped); err != nil {
			lm.logger.Warn("Unexpected state after shutdown", zap.Error(err))
		}
		close(lm.done)
	})

	return lm.shutdownErr
}

func (lm *LifecycleManager) gracefulShutdown(ctx context.Context) error {
	// Health flips first so load balancers stop routing here.
	lm.grpcServer.Drain()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return lm.stopGRPC(gctx)
	})

	if lm.restServer != nil {
		g.Go(func() error {
			if err := lm.restServer.Shutdown(gctx); err != nil {
				return fmt.Errorf("rest api shutdown failed: %w", err)
			}
			return nil
		})
	}

	transportErr := g.Wait()

	lm.logger.Info("Cancelling outstanding actions", zap.Int("active", lm.engine.Active()))
	lm.engine.Shutdown()

	lm.wsHub.Stop()

	if transportErr != nil {
		lm.logger.Warn("Shutdown completed with errors", zap.Error(transportErr))
		return transportErr
	}
	lm.logger.Info("Graceful shutdown completed")
	return nil
}

func (lm *LifecycleManager) stopGRPC(ctx context.Context) error {
	stopped := make(chan struct{})
	go func() {
		lm.grpcServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		return nil
	case <-ctx.Done():
		lm.logger.Warn("gRPC graceful stop timed out, forcing stop")
		lm.grpcServer.Stop()
		<-stopped
		return fmt.Errorf("grpc graceful stop: %w", ctx.Err())
	}
}

// Done is closed once Shutdown has finished.
func (lm *LifecycleManager) Done() <-chan struct{} {
	return lm.done
}

func (lm *LifecycleManager) State() SystemState {
	lm.stateMu.RLock()
	defer lm.stateMu.RUnlock()
	return lm.currentState
}

func (lm *LifecycleManager) setState(state SystemState) error {
	lm.stateMu.Lock()
	previous := lm.currentState
	if err := ValidateTransition(previous, state); err != nil {
		lm.stateMu.Unlock()
		return err
	}
	lm.currentState = state
	lm.stateMu.Unlock()

	lm.logger.Info("System state changed",
		zap.String("from", previous.String()),
		zap.String("to", state.String()))
	lm.wsHub.Broadcast(websocket.NewSystemStatusMessage(state.String(), previous.String()))
	return nil
}

func (lm *LifecycleManager) setError(err error) {
	lm.logger.Error("System error", zap.Error(err))
	if stateErr := lm.setState(StateError); stateErr != nil {
		lm.logger.Warn("Could not enter error state", zap.Error(stateErr))
	}
}

// GetCurrentStatus returns current system status (Interface implementation)
func (lm *LifecycleManager) GetCurrentStatus() interfaces.SystemStatus {
	lm.stateMu.RLock()
	state := lm.currentState
	startedAt := lm.startedAt
	lm.stateMu.RUnlock()

	status := interfaces.SystemStatus{
		State:            state.String(),
		DeviceCount:      lm.registry.Count(),
		ActiveActions:    lm.engine.Active(),
		ConnectedClients: lm.wsHub.GetClientCount(),
		Timestamp:        time.Now().Unix(),
	}
	if !startedAt.IsZero() {
		status.StartedAt = startedAt.Unix()
	}
	return status
}

// Service returns the request boundary shared by every transport.
func (lm *LifecycleManager) Service() *fleet.Service {
	return lm.service
}

// Config returns the configuration
func (lm *LifecycleManager) Config() *config.Config {
	return lm.config
}
