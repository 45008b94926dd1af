package sim

import (
	"math"
	"testing"

	"github.com/openuam/uamd/core/model"
	"github.com/openuam/uamd/infra/logger"
)

type countingHandler struct {
	started []model.TaskType
}

func (h *countingHandler) OnNextTaskStarted(veh *model.Vehicle) error {
	h.started = append(h.started, veh.Schedule.CurrentTask().Type)
	return nil
}

func testAppender() *SingleRideAppender {
	cfg := Config{CruiseSpeed: 10, BoardSeconds: 30, AlightSeconds: 30}
	return NewSingleRideAppender(NewNetwork(10000, 10000), cfg, logger.NopLogger{})
}

func TestScheduleBuildsExpectedShape(t *testing.T) {
	a := testAppender()
	home := model.Coord{X: 0, Y: 0}
	veh := &model.Vehicle{
		ID:   "v1",
		Type: &model.VehicleType{ID: "t", Range: 10000, Capacity: 2},
		Schedule: model.NewSchedule(&model.Task{
			Type: model.TaskStay, Location: home, End: math.Inf(1),
		}),
	}
	req := &model.Request{
		ID:          "r1",
		Origin:      model.Coord{X: 100, Y: 0},
		Destination: model.Coord{X: 600, Y: 0},
		Distance:    500,
	}
	a.Schedule(req, veh, 0)

	wantTypes := []model.TaskType{
		model.TaskFly, model.TaskPickup, model.TaskFly, model.TaskDropoff, model.TaskStay,
	}
	if len(veh.Schedule.Tasks) != len(wantTypes) {
		t.Fatalf("schedule has %d tasks, want %d", len(veh.Schedule.Tasks), len(wantTypes))
	}
	for i, want := range wantTypes {
		if got := veh.Schedule.TaskAt(i).Type; got != want {
			t.Errorf("task %d is %s, want %s", i, got, want)
		}
	}

	// 100m approach at 10m/s, then boarding, then 500m cruise.
	if end := veh.Schedule.TaskAt(0).End; math.Abs(end-10) > 1e-9 {
		t.Errorf("approach ends at %v, want 10", end)
	}
	if end := veh.Schedule.TaskAt(1).End; math.Abs(end-40) > 1e-9 {
		t.Errorf("boarding ends at %v, want 40", end)
	}
	if end := veh.Schedule.TaskAt(2).End; math.Abs(end-90) > 1e-9 {
		t.Errorf("cruise ends at %v, want 90", end)
	}
	if pickup := veh.Schedule.TaskAt(1); len(pickup.Requests) != 1 || pickup.Requests[0] != req {
		t.Errorf("pickup must carry the matched request")
	}
}

func TestUpdateFiresTransitionsInOrder(t *testing.T) {
	a := testAppender()
	h := &countingHandler{}
	a.Bind(h)

	veh := &model.Vehicle{
		ID:   "v1",
		Type: &model.VehicleType{ID: "t", Range: 10000, Capacity: 2},
		Schedule: model.NewSchedule(&model.Task{
			Type: model.TaskStay, Location: model.Coord{X: 0, Y: 0}, End: math.Inf(1),
		}),
	}
	req := &model.Request{
		ID:          "r1",
		Origin:      model.Coord{X: 100, Y: 0},
		Destination: model.Coord{X: 600, Y: 0},
		Distance:    500,
	}
	a.Schedule(req, veh, 0)

	a.Tick(5)
	a.Update()
	if len(h.started) != 0 {
		t.Fatalf("no transition expected mid-flight, got %v", h.started)
	}

	a.Tick(45) // past approach and boarding
	a.Update()
	want := []model.TaskType{model.TaskPickup, model.TaskFly}
	if len(h.started) != len(want) || h.started[0] != want[0] || h.started[1] != want[1] {
		t.Fatalf("transitions = %v, want %v", h.started, want)
	}

	a.Tick(1000) // run to the final STAY
	a.Update()
	last := h.started[len(h.started)-1]
	if last != model.TaskStay {
		t.Fatalf("final transition = %v, want STAY", last)
	}
	if len(a.active) != 0 {
		t.Fatalf("idle vehicle must leave the active set")
	}

	a.Tick(2000)
	a.Update() // no further transitions for idle vehicles
	if h.started[len(h.started)-1] != model.TaskStay {
		t.Fatalf("idle vehicle advanced unexpectedly")
	}
}
