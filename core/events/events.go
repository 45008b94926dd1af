package events

import "github.com/openuam/uamd/core/model"

// RequestMatched is published when a request is bound directly to an
// idle vehicle.
type RequestMatched struct {
	RequestID string
	VehicleID string
	Distance  float64 // vehicle-to-origin distance at match time
	SimTime   float64
}

// RequestPooled is published when a request is consolidated onto a
// vehicle already en route to a pickup for the identical trip.
type RequestPooled struct {
	RequestID string
	VehicleID string
	Riders    int // dropoff request count after pooling
	SimTime   float64
}

// RequestDeferred is published for every request a cycle could neither
// match nor pool. The same request may be deferred many times.
type RequestDeferred struct {
	RequestID string
	SimTime   float64
}

// VehicleAvailable is published when a vehicle starts a STAY task and
// re-enters its type's availability index.
type VehicleAvailable struct {
	VehicleID string
	At        model.Coord
}
