// Package providers contains dependency injection providers for the CineMood server.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/cinemood/cinemood-server/internal/config"
	"github.com/cinemood/cinemood-server/internal/logger"
)

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Info("Starting CineMood Server",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"general_source", cfg.Catalog.GeneralPath,
		"regional_source", cfg.Catalog.RegionalPath,
	)

	return log, nil
}
