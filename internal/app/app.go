// Package app assembles the engine from configuration.
package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/kurihiro0119/sonar-quality-mcp/internal/aggregator"
	"github.com/kurihiro0119/sonar-quality-mcp/internal/collector"
	"github.com/kurihiro0119/sonar-quality-mcp/internal/config"
	"github.com/kurihiro0119/sonar-quality-mcp/pkg/client"
	"github.com/kurihiro0119/sonar-quality-mcp/pkg/logger"
)

// App holds the long-lived components shared by every entry point
type App struct {
	Config     *config.Config
	Log        *zap.SugaredLogger
	Aggregator aggregator.Aggregator
}

// New loads and validates the configuration, then builds the logger, the
// upstream client and the aggregator. A missing token fails here, before any
// operation runs.
func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	return Build(cfg, log)
}

// Build wires the components for an already validated configuration
func Build(cfg *config.Config, log *zap.SugaredLogger) (*App, error) {
	api, err := client.NewClient(cfg.SonarQube.URL, cfg.SonarQube.Token, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	agg := aggregator.NewAggregator(
		collector.NewSonarCollector(api),
		aggregator.Options{Organization: cfg.SonarQube.Organization},
		log,
	)

	log.Infow("engine ready",
		"base_url", api.BaseURL(),
		"organization", cfg.SonarQube.Organization,
	)
	return &App{Config: cfg, Log: log, Aggregator: agg}, nil
}
