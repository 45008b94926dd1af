package sim

import (
	"math"

	"github.com/openuam/uamd/core/dispatch"
	"github.com/openuam/uamd/core/logger"
	"github.com/openuam/uamd/core/model"
)

// TaskHandler receives task-transition notifications as schedules
// advance.
type TaskHandler interface {
	OnNextTaskStarted(veh *model.Vehicle) error
}

// SingleRideAppender is the reference route builder. A direct match
// becomes FLY (to the origin) → PICKUP → FLY (to the destination) →
// DROPOFF → STAY at the destination station, with leg durations derived
// from distance and cruise speed.
type SingleRideAppender struct {
	network dispatch.Network
	speed   float64
	board   float64
	alight  float64
	log     logger.Logger

	handler TaskHandler
	clock   float64
	active  []*model.Vehicle
}

// NewSingleRideAppender builds the appender from simulation parameters.
func NewSingleRideAppender(network dispatch.Network, cfg Config, log logger.Logger) *SingleRideAppender {
	return &SingleRideAppender{
		network: network,
		speed:   cfg.CruiseSpeed,
		board:   cfg.BoardSeconds,
		alight:  cfg.AlightSeconds,
		log:     log,
	}
}

// Bind sets the task-transition receiver. The dispatcher is created
// after the appender, so wiring happens in a second phase.
func (a *SingleRideAppender) Bind(h TaskHandler) {
	a.handler = h
}

// Tick sets the simulation clock the next Update advances to.
func (a *SingleRideAppender) Tick(now float64) {
	a.clock = now
}

// Schedule replaces the vehicle's idle schedule with the route serving
// the request.
func (a *SingleRideAppender) Schedule(req *model.Request, veh *model.Vehicle, now float64) {
	from := req.Origin
	if veh.Schedule != nil {
		if cur := veh.Schedule.CurrentTask(); cur != nil && cur.Type == model.TaskStay {
			from = cur.Location
		}
	}
	approach := a.network.Distance(from, req.Origin) / a.speed
	cruise := a.network.Distance(req.Origin, req.Destination) / a.speed

	fly1End := now + approach
	pickupEnd := fly1End + a.board
	fly2End := pickupEnd + cruise
	dropEnd := fly2End + a.alight

	veh.Schedule = model.NewSchedule(
		&model.Task{Type: model.TaskFly, Location: req.Origin, End: fly1End},
		&model.Task{Type: model.TaskPickup, Location: req.Origin, End: pickupEnd, Requests: []*model.Request{req}},
		&model.Task{Type: model.TaskFly, Location: req.Destination, End: fly2End},
		&model.Task{Type: model.TaskDropoff, Location: req.Destination, End: dropEnd, Requests: []*model.Request{req}},
		&model.Task{Type: model.TaskStay, Location: req.Destination, End: math.Inf(1)},
	)
	a.active = append(a.active, veh)
}

// Update advances every in-flight schedule to the current clock,
// firing the task handler on each transition. Vehicles that reach
// their final STAY leave the active set until rescheduled.
func (a *SingleRideAppender) Update() {
	var still []*model.Vehicle
	for _, veh := range a.active {
		if !a.advance(veh) {
			still = append(still, veh)
		}
	}
	a.active = still
}

func (a *SingleRideAppender) advance(veh *model.Vehicle) bool {
	sched := veh.Schedule
	for {
		cur := sched.CurrentTask()
		if cur == nil {
			return true
		}
		if cur.End > a.clock {
			return cur.Type == model.TaskStay && math.IsInf(cur.End, 1)
		}
		if sched.Advance() == nil {
			return true
		}
		if a.handler != nil {
			if err := a.handler.OnNextTaskStarted(veh); err != nil {
				a.log.Errorf("task transition for %s: %v", veh.ID, err)
			}
		}
	}
}
