package dispatch

import (
	"fmt"
	"math"
	"time"

	"github.com/openuam/uamd/core/events"
	"github.com/openuam/uamd/core/logger"
	"github.com/openuam/uamd/core/metrics"
	"github.com/openuam/uamd/core/model"
	"github.com/openuam/uamd/internal/eventbus"
)

// Dispatcher assigns trip requests to the closest idle vehicle whose
// type can fly the trip, and consolidates identical trips onto
// multi-seat vehicles already flying toward a pickup.
//
// All mutable state (availability index, pooling registry, pending
// queue) is owned by the dispatcher and changed only through the
// lifecycle hooks. Everything runs inside the single-threaded
// simulation step; no locking is needed.
type Dispatcher struct {
	appender Appender
	network  Network

	index   *availabilityIndex
	pool    *poolRegistry
	pending requestQueue

	reoptimize bool
	area       model.BBox

	log  logger.Logger
	sink metrics.Sink
	bus  eventbus.EventBus
}

// New builds a dispatcher and seeds the availability index from the
// fleet source. The metrics sink and the event bus may be nil.
func New(cfg Config, appender Appender, network Network, fleet FleetSource,
	log logger.Logger, sink metrics.Sink, bus eventbus.EventBus) (*Dispatcher, error) {
	if appender == nil || network == nil || fleet == nil || log == nil {
		return nil, fmt.Errorf("dispatch: nil collaborator provided to New")
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}

	d := &Dispatcher{
		appender:   appender,
		network:    network,
		index:      newAvailabilityIndex(),
		pool:       newPoolRegistry(),
		reoptimize: cfg.Reoptimize,
		area:       network.Bounds(),
		log:        log,
		sink:       sink,
		bus:        bus,
	}

	for _, fv := range fleet.Vehicles() {
		if fv.Vehicle == nil {
			return nil, fmt.Errorf("dispatch: fleet source yielded a nil vehicle")
		}
		if err := fv.Vehicle.Validate(); err != nil {
			return nil, fmt.Errorf("dispatch: vehicle %s: %w", fv.Vehicle.ID, err)
		}
		d.index.Insert(fv.Vehicle, fv.Location)
	}
	d.log.Infof("indexed %d vehicles across %d types", d.index.Size(), len(d.index.trees))
	return d, nil
}

// OnNextTimeStep advances in-flight assignments and, when
// reoptimization is enabled, runs one matching cycle.
func (d *Dispatcher) OnNextTimeStep(now float64) error {
	d.appender.Update()
	if !d.reoptimize {
		return nil
	}
	return d.runMatching(now)
}

// OnRequestSubmitted enqueues a new trip request.
func (d *Dispatcher) OnRequestSubmitted(req *model.Request) {
	if !d.area.Contains(req.Origin) {
		d.log.Warnf("request %s origin (%.0f, %.0f) is outside the service area",
			req.ID, req.Origin.X, req.Origin.Y)
	}
	d.pending.Enqueue(req)
}

// OnNextTaskStarted reacts to a vehicle beginning its next task. A STAY
// task returns the vehicle to the availability index at the task's
// location; a PICKUP task closes the vehicle's pooling window.
func (d *Dispatcher) OnNextTaskStarted(veh *model.Vehicle) error {
	if veh.Schedule == nil {
		return fmt.Errorf("dispatch: vehicle %s has no schedule", veh.ID)
	}
	task := veh.Schedule.CurrentTask()
	if task == nil {
		return fmt.Errorf("dispatch: vehicle %s started a task on an exhausted schedule", veh.ID)
	}
	switch task.Type {
	case model.TaskStay:
		d.index.Insert(veh, task.Location)
		if d.bus != nil {
			d.bus.Publish(events.VehicleAvailable{VehicleID: veh.ID, At: task.Location})
		}
	case model.TaskPickup:
		d.pool.Remove(veh)
	}
	return nil
}

// PendingRequests reports the number of queued requests.
func (d *Dispatcher) PendingRequests() int {
	return d.pending.Len()
}

// runMatching drains the pending queue once. Every request is tried for
// a direct match first, then for pooling; whatever remains is
// re-enqueued in its original relative order.
func (d *Dispatcher) runMatching(now float64) error {
	start := time.Now()
	var (
		results  []metrics.MatchResult
		deferred []*model.Request
	)

	for d.pending.Len() > 0 {
		req := d.pending.Dequeue()

		if veh, dist, ok := d.closestFeasible(req); ok {
			if err := d.index.Remove(veh); err != nil {
				return err
			}
			d.appender.Schedule(req, veh, now)
			if veh.Capacity() > 1 {
				d.pool.Add(veh)
			}
			results = append(results, metrics.MatchResult{
				RequestID: req.ID, VehicleID: veh.ID,
				Outcome: metrics.OutcomeDirect, Distance: dist, SimTime: now,
			})
			if d.bus != nil {
				d.bus.Publish(events.RequestMatched{
					RequestID: req.ID, VehicleID: veh.ID, Distance: dist, SimTime: now,
				})
			}
			continue
		}

		if veh, riders, ok := d.poolOnto(req); ok {
			results = append(results, metrics.MatchResult{
				RequestID: req.ID, VehicleID: veh.ID,
				Outcome: metrics.OutcomePooled, SimTime: now,
			})
			if d.bus != nil {
				d.bus.Publish(events.RequestPooled{
					RequestID: req.ID, VehicleID: veh.ID, Riders: riders, SimTime: now,
				})
			}
			continue
		}

		deferred = append(deferred, req)
		results = append(results, metrics.MatchResult{
			RequestID: req.ID, Outcome: metrics.OutcomeDeferred, SimTime: now,
		})
		if d.bus != nil {
			d.bus.Publish(events.RequestDeferred{RequestID: req.ID, SimTime: now})
		}
	}

	for _, req := range deferred {
		d.pending.Enqueue(req)
	}

	if len(results) > 0 {
		if err := d.sink.RecordMatches(results); err != nil {
			d.log.Errorf("metrics error: %v", err)
		}
	}
	if cr, ok := d.sink.(metrics.CycleRecorder); ok {
		if err := cr.RecordCycle(d.pending.Len(), time.Since(start)); err != nil {
			d.log.Errorf("cycle metrics error: %v", err)
		}
	}
	return nil
}

// closestFeasible returns the available vehicle nearest to the request
// origin among all types whose range covers the trip distance. The best
// distance is updated on every improving candidate so a closer vehicle
// of a later type always wins the cross-type comparison.
func (d *Dispatcher) closestFeasible(req *model.Request) (*model.Vehicle, float64, bool) {
	var (
		best     *model.Vehicle
		bestDist = math.MaxFloat64
	)
	for _, t := range d.index.Types() {
		if t.Range < req.Distance || d.index.Len(t) == 0 {
			continue
		}
		cand, ok := d.index.Nearest(t, req.Origin)
		if !ok {
			continue
		}
		at, ok := d.index.Location(cand)
		if !ok {
			continue
		}
		if dist := d.network.Distance(req.Origin, at); dist < bestDist {
			best, bestDist = cand, dist
		}
	}
	return best, bestDist, best != nil
}

// poolOnto tries to consolidate req onto a registered vehicle already
// flying toward a pickup for the identical trip. The first structural
// match wins; no attempt is made to find the closest candidate. It
// returns the vehicle and the dropoff rider count after pooling.
func (d *Dispatcher) poolOnto(req *model.Request) (*model.Vehicle, int, bool) {
	for _, veh := range d.pool.Vehicles() {
		sched := veh.Schedule
		if sched == nil {
			continue
		}
		cur := sched.CurrentTask()
		if cur == nil || cur.Type != model.TaskFly {
			continue
		}
		i := sched.CurrentIndex()

		pickup := sched.TaskAt(i + 1)
		if pickup == nil || pickup.Type != model.TaskPickup {
			d.log.Warnf("vehicle %s: task following FLY is unexpectedly not PICKUP, skipping pooling candidate", veh.ID)
			continue
		}
		if len(pickup.Requests) == 0 {
			d.log.Warnf("vehicle %s: upcoming PICKUP carries no requests, skipping pooling candidate", veh.ID)
			continue
		}
		if !req.SameTrip(pickup.Requests[0]) {
			continue
		}

		// The dropoff sits three positions past the current FLY task.
		dropoff := sched.TaskAt(i + 3)
		if dropoff == nil || dropoff.Type != model.TaskDropoff {
			d.log.Warnf("vehicle %s: no DROPOFF three tasks past FLY, skipping pooling candidate", veh.ID)
			continue
		}

		req.Distance = pickup.Requests[0].Distance
		pickup.Requests = append(pickup.Requests, req)
		dropoff.Requests = append(dropoff.Requests, req)
		if len(dropoff.Requests) >= veh.Capacity() {
			d.pool.Remove(veh)
		}
		return veh, len(dropoff.Requests), true
	}
	return nil, 0, false
}
