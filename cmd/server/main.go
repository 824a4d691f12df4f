package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/KevinKickass/OpenFleetCore/internal/config"
	"github.com/KevinKickass/OpenFleetCore/internal/logging"
	"github.com/KevinKickass/OpenFleetCore/internal/system"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	flags := pflag.NewFlagSet("fleet-server", pflag.ExitOnError)
	configPath := flags.String("config", "configs/config.yaml", "path to the YAML config file")
	flags.Int("port", 50051, "gRPC listen port")
	flags.Int("http-port", 8080, "REST gateway listen port (0 disables it)")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(*configPath, flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Config loaded successfully",
		zap.String("path", *configPath),
		zap.Int("grpc_port", cfg.Server.GRPCPort),
		zap.Int("http_port", cfg.Server.HTTPPort),
		zap.Duration("min_duration", cfg.Simulation.MinDuration),
		zap.Duration("max_duration", cfg.Simulation.MaxDuration))

	lifecycle := system.NewLifecycleManager(cfg, logger)

	if err := lifecycle.Start(); err != nil {
		logger.Error("Failed to start system", zap.Error(err))
		shutdown(lifecycle, cfg, logger)
		os.Exit(1)
	}

	logger.Info("Fleet device manager started successfully")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	logger.Info("Shutdown signal received", zap.String("signal", sig.String()))

	if err := shutdown(lifecycle, cfg, logger); err != nil {
		os.Exit(1)
	}

	logger.Info("Fleet device manager stopped successfully")
}

func shutdown(lifecycle *system.LifecycleManager, cfg *config.Config, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := lifecycle.Shutdown(ctx); err != nil {
		logger.Error("Shutdown failed", zap.Error(err))
		return err
	}
	return nil
}
