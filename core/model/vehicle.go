package model

import "fmt"

// VehicleType describes an aircraft model shared by several vehicles.
// Range and capacity are fixed per type; vehicles are partitioned by type.
type VehicleType struct {
	ID       string
	Range    float64 // maximum trip distance in meters
	Capacity int     // passenger seats
}

// Vehicle is a single aircraft of the fleet. Its schedule is owned by
// the external scheduling system.
type Vehicle struct {
	ID       string
	Type     *VehicleType
	Schedule *Schedule
}

// Capacity returns the seat count of the vehicle's type.
func (v *Vehicle) Capacity() int {
	return v.Type.Capacity
}

// Validate checks that the vehicle configuration is sound.
func (v *Vehicle) Validate() error {
	if v.Type == nil {
		return fmt.Errorf("vehicle has no type")
	}
	if v.Type.Capacity <= 0 {
		return fmt.Errorf("vehicle type %s capacity must be positive", v.Type.ID)
	}
	if v.Type.Range <= 0 {
		return fmt.Errorf("vehicle type %s range must be positive", v.Type.ID)
	}
	return nil
}
