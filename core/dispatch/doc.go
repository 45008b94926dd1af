// Package dispatch implements the request-to-vehicle matching core of
// an urban air mobility fleet.
//
// Incoming trip requests queue up until the next simulation time step.
// Each step the matching cycle drains the queue in FIFO order: a
// request is first assigned directly to the nearest idle vehicle among
// the vehicle types whose range covers the trip, falling back to ride
// pooling when no idle vehicle qualifies. Pooling consolidates a
// request onto a multi-seat vehicle that is still flying toward a
// pickup for the identical origin/destination pair. Requests that
// neither match nor pool are retried every following cycle.
//
// Key components:
//   - Dispatcher: owns all matching state and exposes the lifecycle hooks.
//   - availabilityIndex: per-type nearest-neighbor index of idle vehicles.
//   - poolRegistry: multi-seat vehicles en route to a pickup, first-fit order.
//   - requestQueue: strict FIFO of pending requests.
//
// External collaborators plug in through small interfaces: Appender
// turns a match into route legs and schedule tasks, Network provides
// geometry, FleetSource seeds the index at startup. The three hooks
// (OnNextTimeStep, OnRequestSubmitted, OnNextTaskStarted) are the only
// entry points that mutate dispatcher state; they are driven by a
// single-threaded simulation loop.
package dispatch
