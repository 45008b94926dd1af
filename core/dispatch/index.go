package dispatch

import (
	"fmt"

	"github.com/tidwall/rtree"

	"github.com/openuam/uamd/core/model"
)

// availabilityIndex holds the idle vehicles of every type keyed by
// location. One nearest-neighbor tree per vehicle type, created lazily
// on first insert, plus a shared vehicle-to-location lookup. The lookup
// and the trees are mutated together inside each call so they never
// disagree.
type availabilityIndex struct {
	trees     map[*model.VehicleType]*rtree.RTreeG[*model.Vehicle]
	order     []*model.VehicleType // types in first-insert order, for stable iteration
	locations map[*model.Vehicle]model.Coord
}

func newAvailabilityIndex() *availabilityIndex {
	return &availabilityIndex{
		trees:     make(map[*model.VehicleType]*rtree.RTreeG[*model.Vehicle]),
		locations: make(map[*model.Vehicle]model.Coord),
	}
}

// Insert adds an idle vehicle at the given location.
func (x *availabilityIndex) Insert(v *model.Vehicle, at model.Coord) {
	tr, ok := x.trees[v.Type]
	if !ok {
		tr = &rtree.RTreeG[*model.Vehicle]{}
		x.trees[v.Type] = tr
		x.order = append(x.order, v.Type)
	}
	p := [2]float64{at.X, at.Y}
	tr.Insert(p, p, v)
	x.locations[v] = at
}

// Remove drops the vehicle from its type's tree at its last known
// location. An untracked vehicle means the trees and the location
// lookup have desynchronized; the caller must abort the step.
func (x *availabilityIndex) Remove(v *model.Vehicle) error {
	at, ok := x.locations[v]
	if !ok {
		return fmt.Errorf("availability index: vehicle %s is not tracked", v.ID)
	}
	tr, ok := x.trees[v.Type]
	if !ok {
		return fmt.Errorf("availability index: no tree for vehicle type %s", v.Type.ID)
	}
	p := [2]float64{at.X, at.Y}
	tr.Delete(p, p, v)
	delete(x.locations, v)
	return nil
}

// Nearest returns the indexed vehicle of the given type closest to q.
// Ties are broken by traversal order.
func (x *availabilityIndex) Nearest(t *model.VehicleType, q model.Coord) (*model.Vehicle, bool) {
	tr, ok := x.trees[t]
	if !ok || tr.Len() == 0 {
		return nil, false
	}
	var found *model.Vehicle
	p := [2]float64{q.X, q.Y}
	tr.Nearby(rtree.BoxDist[float64, *model.Vehicle](p, p, nil),
		func(_, _ [2]float64, v *model.Vehicle, _ float64) bool {
			found = v
			return false
		})
	return found, found != nil
}

// Location returns the indexed location of an available vehicle.
func (x *availabilityIndex) Location(v *model.Vehicle) (model.Coord, bool) {
	at, ok := x.locations[v]
	return at, ok
}

// Contains reports whether the vehicle is currently available.
func (x *availabilityIndex) Contains(v *model.Vehicle) bool {
	_, ok := x.locations[v]
	return ok
}

// Len reports the number of indexed vehicles of the given type.
func (x *availabilityIndex) Len(t *model.VehicleType) int {
	tr, ok := x.trees[t]
	if !ok {
		return 0
	}
	return tr.Len()
}

// Size reports the total number of indexed vehicles.
func (x *availabilityIndex) Size() int {
	return len(x.locations)
}

// Types returns every vehicle type an index exists for, including types
// whose tree is currently empty, in first-insert order.
func (x *availabilityIndex) Types() []*model.VehicleType {
	return x.order
}
