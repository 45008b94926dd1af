package dispatch

// Config holds matching engine settings.
type Config struct {
	// Reoptimize enables the per-step matching pass. When disabled the
	// dispatcher only advances in-flight assignments and requests queue
	// up untouched.
	Reoptimize bool `json:"reoptimize" yaml:"reoptimize"`
}

// DefaultConfig returns the settings used when no configuration section
// is present.
func DefaultConfig() Config {
	return Config{Reoptimize: true}
}
