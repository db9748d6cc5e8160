// Package workload synthesizes raw multicast demands over the simulation
// window.
package workload

import (
	"fmt"

	"github.com/satnet-sim/mcsched/mcast"
)

// GenerateDemands creates spec.NumDemands raw demands over cfg's horizon.
// Deterministic given the same spec and config.
//
// Per demand: a uniform ground-station source; a Poisson destination count
// (at least one); destinations uniform without replacement, excluding the
// source; an exponential duration whose midpoint is uniform over the horizon,
// clipped to [0, H].
func GenerateDemands(spec *Spec, cfg mcast.Config) ([]mcast.Demand, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := spec.Validate(cfg.Topology); err != nil {
		return nil, fmt.Errorf("invalid workload spec: %w", err)
	}

	rng := mcast.NewPartitionedRNG(mcast.NewRunKey(spec.Seed))
	workloadRNG := rng.ForSubsystem(mcast.SubsystemWorkload)
	dstRNG := rng.ForSubsystem(mcast.SubsystemDestinations)

	topo := cfg.Topology
	horizonNs := cfg.Timeline.HorizonNs()
	gs := topo.GroundStations()

	var counts CountSampler = NewPoissonCountSampler(spec.MeanDestinations, len(gs)-1, workloadRNG)
	var durations DurationSampler = NewExponentialDurationSampler(spec.MeanDurationFraction*float64(horizonNs), workloadRNG)

	demands := make([]mcast.Demand, 0, spec.NumDemands)
	candidates := make([]int, 0, len(gs)-1)
	for i := 0; i < spec.NumDemands; i++ {
		src := gs[workloadRNG.IntN(len(gs))]
		n := counts.Sample()

		candidates = candidates[:0]
		for _, id := range gs {
			if id != src {
				candidates = append(candidates, id)
			}
		}
		dsts := sampleWithoutReplacement(candidates, n, dstRNG)

		dura := durations.Sample()
		mid := workloadRNG.Int64N(horizonNs)
		start := max(mid-dura/2, 0)
		end := min(mid+dura/2, horizonNs)

		demands = append(demands, mcast.NewDemand(src, dsts, spec.RateMbps, start, end-start))
	}
	return demands, nil
}
