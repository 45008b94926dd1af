package app

import (
	"context"
	"fmt"

	"github.com/openuam/uamd/config"
	coremetrics "github.com/openuam/uamd/core/metrics"
	"github.com/openuam/uamd/infra/feed"
	"github.com/openuam/uamd/infra/logger"
	"github.com/openuam/uamd/infra/metrics"
	"github.com/openuam/uamd/internal/eventbus"
	"github.com/openuam/uamd/sim"
)

// Service orchestrates the dispatcher, the simulation engine and the
// connected sinks.
type Service struct {
	Engine *sim.Engine

	bus         eventbus.EventBus
	feed        *feed.MQTTFeed
	log         logger.Logger
	promEnabled bool
	promAddr    string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(nil)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.Sink
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = coremetrics.NewMultiSink(sinks...)
	}

	bus := eventbus.New()
	engine, err := sim.NewEngine(cfg.Sim, cfg.Dispatch, logger.New("engine"), sink, bus)
	if err != nil {
		bus.Close()
		return nil, err
	}

	svc := &Service{
		Engine:      engine,
		bus:         bus,
		log:         logg,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promAddr:    cfg.Metrics.PrometheusAddr,
	}

	if cfg.Feed.Enabled {
		fd, err := feed.NewMQTTFeed(cfg.Feed, logger.New("feed"))
		if err != nil {
			bus.Close()
			return nil, err
		}
		svc.feed = fd
		engine.SetFeed(fd)
	}
	return svc, nil
}

// Run drives the simulation to its horizon or until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	summary, err := s.Engine.Run(ctx)
	s.log.Infof("run finished after %d steps: %d submitted, %d direct, %d pooled, %d deferrals, %d pending, mean wait %.1fs",
		summary.Steps, summary.Submitted, summary.Matched, summary.Pooled,
		summary.Deferrals, summary.PendingAtEnd, summary.MeanWait)
	return err
}

// Close releases connectors and the event bus.
func (s *Service) Close() error {
	if s.feed != nil {
		if err := s.feed.Close(); err != nil {
			return err
		}
	}
	s.bus.Close()
	return nil
}
