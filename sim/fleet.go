package sim

import (
	"fmt"
	"math"

	"github.com/openuam/uamd/core/dispatch"
	"github.com/openuam/uamd/core/model"
)

// Fleet is a static FleetSource assembled from configuration. Each
// vehicle starts on an open-ended STAY task at its home station, spread
// round-robin across the stations.
type Fleet struct {
	entries []dispatch.FleetVehicle
}

// NewFleet builds the fleet described by the type configurations.
func NewFleet(types []TypeConfig, stations []model.Coord) (*Fleet, error) {
	if len(stations) == 0 {
		return nil, fmt.Errorf("sim: fleet needs at least one station")
	}
	f := &Fleet{}
	seq := 0
	for _, tc := range types {
		vt := &model.VehicleType{ID: tc.ID, Range: tc.Range, Capacity: tc.Capacity}
		for i := 0; i < tc.Count; i++ {
			home := stations[seq%len(stations)]
			veh := &model.Vehicle{
				ID:   fmt.Sprintf("veh%04d", seq+1),
				Type: vt,
				Schedule: model.NewSchedule(&model.Task{
					Type:     model.TaskStay,
					Location: home,
					End:      math.Inf(1),
				}),
			}
			f.entries = append(f.entries, dispatch.FleetVehicle{Vehicle: veh, Location: home})
			seq++
		}
	}
	return f, nil
}

func (f *Fleet) Vehicles() []dispatch.FleetVehicle {
	return f.entries
}
