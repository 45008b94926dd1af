package dispatch

import "github.com/openuam/uamd/core/model"

// Appender converts a matched request/vehicle pair into concrete route
// legs and schedule tasks, and advances in-flight assignments. The
// dispatcher never inspects what it builds beyond the task-type and
// ordering contract used for pooling.
type Appender interface {
	// Schedule commits a direct match at simulation time now.
	Schedule(req *model.Request, veh *model.Vehicle, now float64)
	// Update advances route state for every in-flight assignment.
	Update()
}

// Network provides service-area geometry.
type Network interface {
	Bounds() model.BBox
	Distance(a, b model.Coord) float64
}

// FleetSource enumerates the fleet at startup.
type FleetSource interface {
	Vehicles() []FleetVehicle
}

// FleetVehicle pairs a vehicle with its initial location, usually its
// home station.
type FleetVehicle struct {
	Vehicle  *model.Vehicle
	Location model.Coord
}
