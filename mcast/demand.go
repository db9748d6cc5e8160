// Defines the Demand struct that models a multicast traffic request.
// Demands are values: stages derive new demands instead of mutating shared ones.

package mcast

import (
	"fmt"
	"strconv"

	"golang.org/x/exp/slices"
)

// MetaOriginID is the metadata key recording the index of the raw demand an
// atomic demand was derived from.
const MetaOriginID = "origin_id"

// Demand is a multicast request from one ground station to a set of ground
// stations over [StartNs, StartNs+DurationNs).
type Demand struct {
	Source       int     // Ground-station id of the sender
	Destinations []int   // Ground-station ids of the receivers, ascending, never contains Source
	RateMbps     float64 // Target rate in Mbit/s, passed through unchanged
	StartNs      int64   // Start time in nanoseconds
	DurationNs   int64   // Duration in nanoseconds

	// Metadata carries provenance only; it never influences splitting.
	Metadata map[string]string
}

// NewDemand builds a demand with a sorted, de-duplicated copy of dsts.
func NewDemand(src int, dsts []int, rateMbps float64, startNs, durationNs int64) Demand {
	return Demand{
		Source:       src,
		Destinations: normalizeDestinations(dsts),
		RateMbps:     rateMbps,
		StartNs:      startNs,
		DurationNs:   durationNs,
	}
}

// EndNs returns the exclusive end of the demand.
func (d Demand) EndNs() int64 {
	return d.StartNs + d.DurationNs
}

// WithDestinations returns a copy of d restricted to dsts.
func (d Demand) WithDestinations(dsts []int) Demand {
	out := d
	out.Destinations = normalizeDestinations(dsts)
	out.Metadata = cloneMetadata(d.Metadata)
	return out
}

// WithWindow returns a copy of d covering [startNs, endNs).
func (d Demand) WithWindow(startNs, endNs int64) Demand {
	out := d
	out.Destinations = slices.Clone(d.Destinations)
	out.StartNs = startNs
	out.DurationNs = endNs - startNs
	out.Metadata = cloneMetadata(d.Metadata)
	return out
}

// WithMeta returns a copy of d with key set to value.
func (d Demand) WithMeta(key, value string) Demand {
	out := d
	out.Destinations = slices.Clone(d.Destinations)
	out.Metadata = cloneMetadata(d.Metadata)
	if out.Metadata == nil {
		out.Metadata = make(map[string]string, 1)
	}
	out.Metadata[key] = value
	return out
}

// OriginID returns the recorded raw-demand index, or -1 when absent.
func (d Demand) OriginID() int {
	v, ok := d.Metadata[MetaOriginID]
	if !ok {
		return -1
	}
	id, err := strconv.Atoi(v)
	if err != nil {
		return -1
	}
	return id
}

// Validate checks d against the topology and the horizon. Empty destination
// sets return ErrEmptyDestinations; non-ground-station endpoints wrap
// ErrNodeOutOfRange.
func (d Demand) Validate(topo Topology, horizonNs int64) error {
	if len(d.Destinations) == 0 {
		return ErrEmptyDestinations
	}
	if !topo.IsGroundStation(d.Source) {
		return fmt.Errorf("%w: source %d is not a ground station", ErrNodeOutOfRange, d.Source)
	}
	for _, dst := range d.Destinations {
		if !topo.IsGroundStation(dst) {
			return fmt.Errorf("%w: destination %d is not a ground station", ErrNodeOutOfRange, dst)
		}
		if dst == d.Source {
			return fmt.Errorf("source %d is among its own destinations", d.Source)
		}
	}
	if d.StartNs < 0 || d.DurationNs < 0 {
		return fmt.Errorf("negative start %d or duration %d", d.StartNs, d.DurationNs)
	}
	if d.EndNs() > horizonNs {
		return fmt.Errorf("end %d exceeds horizon %d", d.EndNs(), horizonNs)
	}
	return nil
}

// String returns a human-readable representation of the demand.
func (d Demand) String() string {
	return fmt.Sprintf("Demand: (src=%d, dsts=%v, rate=%v, start=%d, dura=%d, meta=%v)",
		d.Source, d.Destinations, d.RateMbps, d.StartNs, d.DurationNs, d.Metadata)
}

func normalizeDestinations(dsts []int) []int {
	out := slices.Clone(dsts)
	slices.Sort(out)
	return slices.Compact(out)
}

func cloneMetadata(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
