package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

type ServerConfig struct {
	GRPCPort        int           `mapstructure:"grpc_port"`
	HTTPPort        int           `mapstructure:"http_port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// SimulationConfig tunes the simulated device actions.
type SimulationConfig struct {
	MinDuration   time.Duration `mapstructure:"min_duration"`
	MaxDuration   time.Duration `mapstructure:"max_duration"`
	PollInterval  time.Duration `mapstructure:"poll_interval"`
	SuccessRate   float64       `mapstructure:"success_rate"`
	MaxConcurrent int           `mapstructure:"max_concurrent"`
}

type LoggingConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.grpc_port", 50051)
	v.SetDefault("server.http_port", 8080)
	v.SetDefault("server.shutdown_timeout", "30s")

	v.SetDefault("simulation.min_duration", "10s")
	v.SetDefault("simulation.max_duration", "30s")
	v.SetDefault("simulation.poll_interval", "1s")
	v.SetDefault("simulation.success_rate", 0.9)
	v.SetDefault("simulation.max_concurrent", 64)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.development", false)
}

// Load reads the YAML file at path (a missing file falls back to defaults),
// then environment variables with prefix FLEET_ (FLEET_SERVER_GRPC_PORT),
// then any flags bound in flags. "port" is an alias for server.grpc_port.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("FLEET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if f := flags.Lookup("port"); f != nil {
			if err := v.BindPFlag("server.grpc_port", f); err != nil {
				return nil, fmt.Errorf("failed to bind port flag: %w", err)
			}
		}
		if f := flags.Lookup("http-port"); f != nil {
			if err := v.BindPFlag("server.http_port", f); err != nil {
				return nil, fmt.Errorf("failed to bind http-port flag: %w", err)
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.Is(err, os.ErrNotExist) && !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.Server.GRPCPort <= 0 || c.Server.GRPCPort > 65535 {
		errs = append(errs, fmt.Errorf("server.grpc_port out of range: %d", c.Server.GRPCPort))
	}
	if c.Server.HTTPPort < 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("server.http_port out of range: %d", c.Server.HTTPPort))
	}
	if c.Simulation.MinDuration < 0 || c.Simulation.MaxDuration < c.Simulation.MinDuration {
		errs = append(errs, fmt.Errorf("simulation duration range invalid: [%s, %s]",
			c.Simulation.MinDuration, c.Simulation.MaxDuration))
	}
	if c.Simulation.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("simulation.poll_interval must be positive"))
	}
	if c.Simulation.SuccessRate < 0 || c.Simulation.SuccessRate > 1 {
		errs = append(errs, fmt.Errorf("simulation.success_rate must be within [0, 1]: %v", c.Simulation.SuccessRate))
	}
	if c.Simulation.MaxConcurrent <= 0 {
		errs = append(errs, fmt.Errorf("simulation.max_concurrent must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// HTTPEnabled reports whether the REST gateway should run. Port 0 disables it.
func (c *Config) HTTPEnabled() bool {
	return c.Server.HTTPPort != 0
}
