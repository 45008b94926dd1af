package model

// Request is a passenger trip request submitted to the dispatcher.
type Request struct {
	ID          string
	Origin      Coord
	Destination Coord
	// Distance is the trip distance used for range feasibility. When the
	// request is pooled onto an existing trip it is overwritten with the
	// pooled trip's distance so shared accounting stays consistent.
	Distance float64
	// Submitted is the simulation time the request was handed to the
	// dispatcher.
	Submitted float64
}

// SameTrip reports whether both requests share origin and destination.
// Coordinates compare by value.
func (r *Request) SameTrip(o *Request) bool {
	return r.Origin == o.Origin && r.Destination == o.Destination
}
