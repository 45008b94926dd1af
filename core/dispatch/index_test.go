package dispatch

import (
	"testing"

	"github.com/openuam/uamd/core/model"
)

func TestIndexInsertNearestRemove(t *testing.T) {
	vt := &model.VehicleType{ID: "t", Range: 100, Capacity: 1}
	x := newAvailabilityIndex()

	v1 := &model.Vehicle{ID: "v1", Type: vt}
	v2 := &model.Vehicle{ID: "v2", Type: vt}
	x.Insert(v1, model.Coord{X: 0, Y: 0})
	x.Insert(v2, model.Coord{X: 10, Y: 10})

	if got := x.Len(vt); got != 2 {
		t.Fatalf("Len = %d, want 2", got)
	}
	near, ok := x.Nearest(vt, model.Coord{X: 1, Y: 1})
	if !ok || near != v1 {
		t.Fatalf("Nearest = %v, want v1", near)
	}

	if err := x.Remove(v1); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if x.Contains(v1) || x.Len(vt) != 1 {
		t.Fatalf("v1 still present after Remove")
	}
	near, ok = x.Nearest(vt, model.Coord{X: 1, Y: 1})
	if !ok || near != v2 {
		t.Fatalf("Nearest after removal = %v, want v2", near)
	}
}

func TestIndexRemoveUntracked(t *testing.T) {
	vt := &model.VehicleType{ID: "t", Range: 100, Capacity: 1}
	x := newAvailabilityIndex()
	if err := x.Remove(&model.Vehicle{ID: "ghost", Type: vt}); err == nil {
		t.Fatalf("removing an untracked vehicle must fail")
	}
}

func TestIndexNearestEmptyType(t *testing.T) {
	vt := &model.VehicleType{ID: "t", Range: 100, Capacity: 1}
	x := newAvailabilityIndex()
	if _, ok := x.Nearest(vt, model.Coord{}); ok {
		t.Fatalf("empty index must report no vehicle")
	}

	// A tree that became empty keeps its type registered.
	v := &model.Vehicle{ID: "v1", Type: vt}
	x.Insert(v, model.Coord{})
	if err := x.Remove(v); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if len(x.Types()) != 1 {
		t.Fatalf("type vanished with its last vehicle")
	}
	if _, ok := x.Nearest(vt, model.Coord{}); ok {
		t.Fatalf("drained index must report no vehicle")
	}
}

func TestIndexLocationConsistency(t *testing.T) {
	vt := &model.VehicleType{ID: "t", Range: 100, Capacity: 1}
	x := newAvailabilityIndex()
	v := &model.Vehicle{ID: "v1", Type: vt}
	at := model.Coord{X: 42, Y: 7}
	x.Insert(v, at)

	got, ok := x.Location(v)
	if !ok || got != at {
		t.Fatalf("Location = %v, want %v", got, at)
	}
	if x.Size() != 1 {
		t.Fatalf("Size = %d, want 1", x.Size())
	}
}
