// Package events defines the matching related events emitted on the event bus.
//
// Available event types:
//   - RequestMatched: direct assignment of a request to an idle vehicle
//   - RequestPooled: consolidation of a request onto an en-route vehicle
//   - RequestDeferred: request left for the next matching cycle
//   - VehicleAvailable: vehicle returned to the availability index
package events
