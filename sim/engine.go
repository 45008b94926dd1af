package sim

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/openuam/uamd/core/dispatch"
	"github.com/openuam/uamd/core/logger"
	"github.com/openuam/uamd/core/metrics"
	"github.com/openuam/uamd/core/model"
	"github.com/openuam/uamd/internal/eventbus"
)

// Feed supplies externally submitted requests between time steps.
type Feed interface {
	Drain(now float64) []*model.Request
}

// Summary aggregates the outcome of a run.
type Summary struct {
	Steps        int
	Submitted    int
	Matched      int
	Pooled       int
	Deferrals    int // deferral events, not distinct requests
	PendingAtEnd int
	MeanWait     float64 // seconds from submission to match
}

// Engine wires the dispatcher to the reference appender and drives a
// fixed-horizon run. Requests arrive at stations following a Poisson
// process; origin and destination are distinct stations, so identical
// trips occur naturally and exercise pooling.
//
// Engine implements metrics.Sink: it keeps its own run statistics from
// the same result stream the external sinks see.
type Engine struct {
	cfg  Config
	log  logger.Logger
	net  Network
	app  *SingleRideAppender
	disp *dispatch.Dispatcher
	feed Feed

	stations []model.Coord
	rng      *rand.Rand
	arrivals distuv.Poisson

	submittedAt map[string]float64
	waits       []float64
	submitted   int
	matched     int
	pooled      int
	deferrals   int
}

// NewEngine assembles the network, stations, fleet, appender and
// dispatcher described by the configuration. The sink and bus may be
// nil.
func NewEngine(cfg Config, dispatchCfg dispatch.Config, log logger.Logger,
	sink metrics.Sink, bus eventbus.EventBus) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}

	net := NewNetwork(cfg.AreaWidth, cfg.AreaHeight)
	stations := net.Stations(cfg.Stations)
	fleet, err := NewFleet(cfg.Types, stations)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:         cfg,
		log:         log,
		net:         net,
		stations:    stations,
		submittedAt: make(map[string]float64),
	}
	src := rand.NewPCG(cfg.Seed, cfg.Seed)
	e.rng = rand.New(src)
	e.arrivals = distuv.Poisson{Lambda: cfg.RequestRate, Src: src}

	e.app = NewSingleRideAppender(net, cfg, log)
	if sink == nil {
		sink = metrics.Sink(e)
	} else {
		sink = metrics.NewMultiSink(e, sink)
	}
	e.disp, err = dispatch.New(dispatchCfg, e.app, net, fleet, log, sink, bus)
	if err != nil {
		return nil, err
	}
	e.app.Bind(e.disp)
	return e, nil
}

// SetFeed attaches an external request source drained between steps.
func (e *Engine) SetFeed(f Feed) {
	e.feed = f
}

// Run executes the configured number of steps and returns the run
// summary. It stops early when the context is canceled or a structural
// error aborts a step.
func (e *Engine) Run(ctx context.Context) (Summary, error) {
	for step := 0; step < e.cfg.Steps; step++ {
		select {
		case <-ctx.Done():
			return e.summary(step), ctx.Err()
		default:
		}
		now := float64(step) * e.cfg.StepSeconds
		e.app.Tick(now)

		for _, req := range e.generate(now) {
			e.track(req)
			e.disp.OnRequestSubmitted(req)
		}
		if e.feed != nil {
			for _, req := range e.feed.Drain(now) {
				e.track(req)
				e.disp.OnRequestSubmitted(req)
			}
		}

		if err := e.disp.OnNextTimeStep(now); err != nil {
			return e.summary(step), err
		}
	}
	return e.summary(e.cfg.Steps), nil
}

func (e *Engine) generate(now float64) []*model.Request {
	if e.cfg.RequestRate <= 0 {
		return nil
	}
	n := int(e.arrivals.Rand())
	reqs := make([]*model.Request, 0, n)
	for i := 0; i < n; i++ {
		oi := e.rng.IntN(len(e.stations))
		di := e.rng.IntN(len(e.stations) - 1)
		if di >= oi {
			di++
		}
		origin, dest := e.stations[oi], e.stations[di]
		reqs = append(reqs, &model.Request{
			ID:          uuid.NewString(),
			Origin:      origin,
			Destination: dest,
			Distance:    e.net.Distance(origin, dest),
			Submitted:   now,
		})
	}
	return reqs
}

func (e *Engine) track(req *model.Request) {
	e.submitted++
	e.submittedAt[req.ID] = req.Submitted
}

// RecordMatches implements metrics.Sink.
func (e *Engine) RecordMatches(results []metrics.MatchResult) error {
	for _, r := range results {
		switch r.Outcome {
		case metrics.OutcomeDirect:
			e.matched++
			e.recordWait(r)
		case metrics.OutcomePooled:
			e.pooled++
			e.recordWait(r)
		case metrics.OutcomeDeferred:
			e.deferrals++
		}
	}
	return nil
}

func (e *Engine) recordWait(r metrics.MatchResult) {
	if sub, ok := e.submittedAt[r.RequestID]; ok {
		e.waits = append(e.waits, r.SimTime-sub)
		delete(e.submittedAt, r.RequestID)
	}
}

func (e *Engine) summary(steps int) Summary {
	s := Summary{
		Steps:        steps,
		Submitted:    e.submitted,
		Matched:      e.matched,
		Pooled:       e.pooled,
		Deferrals:    e.deferrals,
		PendingAtEnd: e.disp.PendingRequests(),
	}
	if len(e.waits) > 0 {
		s.MeanWait = stat.Mean(e.waits, nil)
	}
	return s
}
