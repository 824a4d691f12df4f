// Package logging builds the process-wide zap logger from configuration.
package logging

import (
	"fmt"

	"github.com/KevinKickass/OpenFleetCore/internal/config"
	"go.uber.org/zap"
)

func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}

	if cfg.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		zc.Level = level
	}

	return zc.Build()
}
