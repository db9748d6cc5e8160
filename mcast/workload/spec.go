package workload

import (
	"fmt"
	"math"

	"github.com/satnet-sim/mcsched/mcast"
)

// Spec parameterizes random raw demand generation.
type Spec struct {
	Seed                 int64   `yaml:"seed"`
	NumDemands           int     `yaml:"num_demands"`
	RateMbps             float64 `yaml:"rate_mbps"`
	MeanDestinations     float64 `yaml:"mean_destinations"`      // Poisson mean of the destination count
	MeanDurationFraction float64 `yaml:"mean_duration_fraction"` // exponential mean duration as a fraction of the horizon
}

// DefaultSpec returns 100 demands at 10 Mbit/s, a destination mean of one
// twentieth of the ground stations, and a mean duration of 20% of the horizon.
func DefaultSpec(topo mcast.Topology) Spec {
	meanDsts := float64(topo.NumGroundStations / 20)
	if meanDsts < 1 {
		meanDsts = 1
	}
	return Spec{
		Seed:                 42,
		NumDemands:           100,
		RateMbps:             10,
		MeanDestinations:     meanDsts,
		MeanDurationFraction: 0.2,
	}
}

// Validate checks that all fields in the spec are usable with topo.
func (s *Spec) Validate(topo mcast.Topology) error {
	if s.NumDemands < 0 {
		return fmt.Errorf("num_demands must be non-negative, got %d", s.NumDemands)
	}
	if topo.NumGroundStations < 2 {
		return fmt.Errorf("at least 2 ground stations required, got %d", topo.NumGroundStations)
	}
	if err := validateFinitePositive("rate_mbps", s.RateMbps); err != nil {
		return err
	}
	if err := validateFinitePositive("mean_destinations", s.MeanDestinations); err != nil {
		return err
	}
	if candidates := float64(topo.NumGroundStations - 1); s.MeanDestinations > candidates {
		return fmt.Errorf("mean_destinations %g exceeds the %g candidate destinations", s.MeanDestinations, candidates)
	}
	return validateFinitePositive("mean_duration_fraction", s.MeanDurationFraction)
}

func validateFinitePositive(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fmt.Errorf("%s must be a finite number, got %f", name, val)
	}
	if val <= 0 {
		return fmt.Errorf("%s must be positive, got %f", name, val)
	}
	return nil
}
