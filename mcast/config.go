package mcast

// Config groups the static tunables threaded through every pipeline stage.
type Config struct {
	Topology Topology `yaml:"topology"`
	Timeline Timeline `yaml:"timeline"`
}

// DefaultConfig returns the Kuiper-630 layout with 100 ground stations and a
// 4 s horizon cut into 1000 ms intervals.
func DefaultConfig() Config {
	return Config{
		Topology: Topology{NumSatellites: 1156, NumGroundStations: 100},
		Timeline: Timeline{IntervalMs: 1000, HorizonS: 4},
	}
}

// Validate checks topology and timeline.
func (c Config) Validate() error {
	if err := c.Topology.Validate(); err != nil {
		return err
	}
	return c.Timeline.Validate()
}
