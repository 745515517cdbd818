// Package app wires the configured backends into the prediction and
// ingestion services the CLI runs.
package app

import (
	"context"
	"fmt"

	"github.com/opendensity/density/config"
	corechart "github.com/opendensity/density/core/chart"
	"github.com/opendensity/density/core/occupancy"
	"github.com/opendensity/density/core/prediction"
	"github.com/opendensity/density/infra/chart"
	"github.com/opendensity/density/infra/logger"
	"github.com/opendensity/density/infra/metrics"
	"github.com/opendensity/density/infra/mqtt"
	"github.com/opendensity/density/infra/store"
)

func tableOptions(cfg *config.Config) []occupancy.Option {
	var opts []occupancy.Option
	if len(cfg.Database.Groups) > 0 {
		opts = append(opts, occupancy.WithGroupDomain(cfg.Database.Groups...))
	}
	if len(cfg.Database.Parents) > 0 {
		opts = append(opts, occupancy.WithParentDomain(cfg.Database.Parents...))
	}
	return opts
}

// NewSource builds the occupancy source selected by the configuration.
func NewSource(cfg *config.Config) (occupancy.Source, error) {
	switch cfg.Database.Driver {
	case "sqlite":
		return store.NewSQLite(cfg.Database.SQLite, tableOptions(cfg)...)
	case "influx":
		return store.NewInflux(cfg.Database.Influx, tableOptions(cfg)...)
	default:
		return nil, fmt.Errorf("unknown database driver %s", cfg.Database.Driver)
	}
}

// NewPredictor builds the historical-mean predictor over the given source,
// instrumented when Prometheus is enabled.
func NewPredictor(cfg *config.Config, src occupancy.Source) (prediction.Predictor, error) {
	var p prediction.Predictor = prediction.NewHistoricalPredictor(src, logger.New("predictor"))
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink()
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		p = metrics.NewMeasuredPredictor(p, sink)
	}
	return p, nil
}

// NewRenderer builds the terminal chart renderer with configured dimensions.
func NewRenderer(cfg *config.Config) corechart.Renderer {
	return chart.NewAsciiRenderer(cfg.Chart.Width, cfg.Chart.Height)
}

// Service is the long-running ingestion side: an MQTT subscriber feeding the
// local dump store, with optional Prometheus exposition.
type Service struct {
	ingestor    *mqtt.Ingestor
	store       *store.SQLiteSource
	log         logger.Logger
	promEnabled bool
	promAddr    string
}

// New creates a Service from the configuration. Ingestion writes dumps, so
// it requires the sqlite driver.
func New(cfg *config.Config) (*Service, error) {
	if cfg.Database.Driver != "sqlite" {
		return nil, fmt.Errorf("ingestion requires the sqlite driver, got %s", cfg.Database.Driver)
	}
	st, err := store.NewSQLite(cfg.Database.SQLite, tableOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("dump store: %w", err)
	}
	ing, err := mqtt.NewIngestor(cfg.MQTT, st)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("mqtt ingestor: %w", err)
	}
	return &Service{
		ingestor:    ing,
		store:       st,
		log:         logger.New("service"),
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promAddr:    cfg.Metrics.PrometheusAddr,
	}, nil
}

// Run starts the service and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	return s.ingestor.Run(ctx)
}

// Close releases resources held by the service.
func (s *Service) Close() error { return s.store.Close() }
