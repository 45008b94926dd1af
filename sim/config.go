package sim

import "fmt"

// TypeConfig describes one vehicle type of the simulated fleet.
type TypeConfig struct {
	ID       string  `json:"id" yaml:"id"`
	Range    float64 `json:"range" yaml:"range"`       // meters
	Capacity int     `json:"capacity" yaml:"capacity"` // seats
	Count    int     `json:"count" yaml:"count"`
}

// Config parameterizes a simulation run.
type Config struct {
	Seed        uint64  `json:"seed" yaml:"seed"`
	Steps       int     `json:"steps" yaml:"steps"`
	StepSeconds float64 `json:"step_seconds" yaml:"step_seconds"`

	AreaWidth  float64 `json:"area_width" yaml:"area_width"` // meters
	AreaHeight float64 `json:"area_height" yaml:"area_height"`
	Stations   int     `json:"stations" yaml:"stations"`

	// RequestRate is the mean number of new requests per step.
	RequestRate float64 `json:"request_rate" yaml:"request_rate"`

	CruiseSpeed   float64 `json:"cruise_speed" yaml:"cruise_speed"` // m/s
	BoardSeconds  float64 `json:"board_seconds" yaml:"board_seconds"`
	AlightSeconds float64 `json:"alight_seconds" yaml:"alight_seconds"`

	Types []TypeConfig `json:"types" yaml:"types"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Seed == 0 {
		c.Seed = 1
	}
	if c.Steps == 0 {
		c.Steps = 3600
	}
	if c.StepSeconds == 0 {
		c.StepSeconds = 1
	}
	if c.AreaWidth == 0 {
		c.AreaWidth = 20000
	}
	if c.AreaHeight == 0 {
		c.AreaHeight = 20000
	}
	if c.Stations == 0 {
		c.Stations = 9
	}
	if c.RequestRate == 0 {
		c.RequestRate = 0.2
	}
	if c.CruiseSpeed == 0 {
		c.CruiseSpeed = 50
	}
	if c.BoardSeconds == 0 {
		c.BoardSeconds = 60
	}
	if c.AlightSeconds == 0 {
		c.AlightSeconds = 60
	}
	if len(c.Types) == 0 {
		c.Types = []TypeConfig{{ID: "evtol-4", Range: 30000, Capacity: 4, Count: 6}}
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.Steps <= 0 {
		return fmt.Errorf("steps must be positive")
	}
	if c.StepSeconds <= 0 {
		return fmt.Errorf("step_seconds must be positive")
	}
	if c.Stations < 2 {
		return fmt.Errorf("at least two stations are required")
	}
	if c.CruiseSpeed <= 0 {
		return fmt.Errorf("cruise_speed must be positive")
	}
	total := 0
	for _, t := range c.Types {
		if t.Range <= 0 || t.Capacity <= 0 {
			return fmt.Errorf("type %s: range and capacity must be positive", t.ID)
		}
		total += t.Count
	}
	if total == 0 {
		return fmt.Errorf("fleet is empty")
	}
	return nil
}
