package mcast

import "fmt"

// Topology describes the node id layout: satellites occupy [0, NumSatellites),
// ground stations occupy [NumSatellites, NumSatellites+NumGroundStations).
type Topology struct {
	NumSatellites     int `yaml:"satellites"`
	NumGroundStations int `yaml:"ground_stations"`
}

// NumNodes returns the total node count.
func (t Topology) NumNodes() int {
	return t.NumSatellites + t.NumGroundStations
}

// IsNode reports whether id is any valid node.
func (t Topology) IsNode(id int) bool {
	return id >= 0 && id < t.NumNodes()
}

// IsGroundStation reports whether id is a ground station.
func (t Topology) IsGroundStation(id int) bool {
	return id >= t.NumSatellites && id < t.NumNodes()
}

// GroundStationIndex maps a ground-station id to [0, NumGroundStations).
// The caller must check IsGroundStation first.
func (t Topology) GroundStationIndex(id int) int {
	return id - t.NumSatellites
}

// GroundStations returns all ground-station ids in ascending order.
func (t Topology) GroundStations() []int {
	ids := make([]int, t.NumGroundStations)
	for i := range ids {
		ids[i] = t.NumSatellites + i
	}
	return ids
}

// Validate checks that the topology has at least one ground station and no
// negative counts.
func (t Topology) Validate() error {
	if t.NumSatellites < 0 {
		return fmt.Errorf("satellites must be non-negative, got %d", t.NumSatellites)
	}
	if t.NumGroundStations < 1 {
		return fmt.Errorf("ground_stations must be positive, got %d", t.NumGroundStations)
	}
	return nil
}

// Timeline is the fixed-width interval partition of the simulation window.
type Timeline struct {
	IntervalMs int64 `yaml:"interval_ms"`
	HorizonS   int64 `yaml:"horizon_s"`
}

// IntervalNs returns the interval width in nanoseconds.
func (tl Timeline) IntervalNs() int64 {
	return tl.IntervalMs * 1_000_000
}

// HorizonMs returns the horizon in milliseconds.
func (tl Timeline) HorizonMs() int64 {
	return tl.HorizonS * 1000
}

// HorizonNs returns the horizon in nanoseconds.
func (tl Timeline) HorizonNs() int64 {
	return tl.HorizonS * 1_000_000_000
}

// Boundaries returns the interval boundaries T, 2T, ..., H in milliseconds.
// Time 0 is not included.
func (tl Timeline) Boundaries() []int64 {
	var out []int64
	for t := tl.IntervalMs; t <= tl.HorizonMs(); t += tl.IntervalMs {
		out = append(out, t)
	}
	return out
}

// Validate checks that the horizon is an exact, positive multiple of the
// interval width. Violations wrap ErrPrecondition.
func (tl Timeline) Validate() error {
	if tl.IntervalMs <= 0 {
		return fmt.Errorf("%w: interval_ms must be positive, got %d", ErrPrecondition, tl.IntervalMs)
	}
	if tl.HorizonS <= 0 {
		return fmt.Errorf("%w: horizon_s must be positive, got %d", ErrPrecondition, tl.HorizonS)
	}
	if tl.HorizonMs()%tl.IntervalMs != 0 {
		return fmt.Errorf("%w: horizon %dms is not a multiple of interval %dms",
			ErrPrecondition, tl.HorizonMs(), tl.IntervalMs)
	}
	return nil
}
