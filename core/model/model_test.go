package model

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	d := Distance(Coord{X: 0, Y: 0}, Coord{X: 3, Y: 4})
	if math.Abs(d-5) > 1e-9 {
		t.Fatalf("Distance = %v, want 5", d)
	}
}

func TestBBoxContains(t *testing.T) {
	b := BBox{Max: Coord{X: 10, Y: 10}}
	if !b.Contains(Coord{X: 5, Y: 5}) || !b.Contains(Coord{X: 10, Y: 0}) {
		t.Fatalf("points inside the box reported outside")
	}
	if b.Contains(Coord{X: -1, Y: 5}) || b.Contains(Coord{X: 5, Y: 11}) {
		t.Fatalf("points outside the box reported inside")
	}
}

func TestSameTrip(t *testing.T) {
	a := &Request{Origin: Coord{X: 1, Y: 1}, Destination: Coord{X: 2, Y: 2}}
	b := &Request{Origin: Coord{X: 1, Y: 1}, Destination: Coord{X: 2, Y: 2}}
	c := &Request{Origin: Coord{X: 1, Y: 1}, Destination: Coord{X: 3, Y: 3}}
	if !a.SameTrip(b) {
		t.Fatalf("identical coordinates must match by value")
	}
	if a.SameTrip(c) {
		t.Fatalf("different destinations must not match")
	}
}

func TestScheduleAdvance(t *testing.T) {
	fly := &Task{Type: TaskFly}
	pickup := &Task{Type: TaskPickup}
	s := NewSchedule(fly, pickup)

	if s.CurrentTask() != fly || s.CurrentIndex() != 0 {
		t.Fatalf("schedule must start at its first task")
	}
	if got := s.Advance(); got != pickup {
		t.Fatalf("Advance = %v, want pickup", got)
	}
	if s.Advance() != nil || !s.Done() {
		t.Fatalf("schedule must exhaust after its last task")
	}
	if s.TaskAt(5) != nil || s.TaskAt(-1) != nil {
		t.Fatalf("TaskAt out of bounds must return nil")
	}
}

func TestVehicleValidate(t *testing.T) {
	ok := &Vehicle{ID: "v", Type: &VehicleType{ID: "t", Range: 100, Capacity: 2}}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid vehicle rejected: %v", err)
	}
	for _, veh := range []*Vehicle{
		{ID: "no-type"},
		{ID: "no-cap", Type: &VehicleType{ID: "t", Range: 100}},
		{ID: "no-range", Type: &VehicleType{ID: "t", Capacity: 2}},
	} {
		if err := veh.Validate(); err == nil {
			t.Errorf("vehicle %s must fail validation", veh.ID)
		}
	}
}

func TestTaskTypeString(t *testing.T) {
	cases := map[TaskType]string{
		TaskStay:     "STAY",
		TaskFly:      "FLY",
		TaskPickup:   "PICKUP",
		TaskDropoff:  "DROPOFF",
		TaskType(99): "UNKNOWN",
	}
	for tt, want := range cases {
		if got := tt.String(); got != want {
			t.Errorf("%d.String() = %s, want %s", tt, got, want)
		}
	}
}
