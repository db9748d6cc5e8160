// Package trace records the decisions of a split run: where demands were
// forked in time and which atomic demands were emitted.
// It has no dependency on mcast and stores plain data only.
package trace

// Emission reasons.
const (
	ReasonFork = "fork" // past half of a fork at a routing change
	ReasonEnd  = "end"  // demand reached its end inside the interval
)

// ForkRecord captures one split in time at a boundary where the demand's
// routing partition changed.
type ForkRecord struct {
	OriginID     int   `yaml:"origin_id"`
	BoundaryNs   int64 `yaml:"boundary_ns"`
	PastStartNs  int64 `yaml:"past_start_ns"`
	FutureEndNs  int64 `yaml:"future_end_ns"`
	GroupsBefore int   `yaml:"groups_before"` // equivalence classes under the previous snapshot
	GroupsAfter  int   `yaml:"groups_after"`  // equivalence classes under the new snapshot
}

// EmitRecord captures one destination-equivalence split that produced atomic
// demands.
type EmitRecord struct {
	OriginID   int    `yaml:"origin_id"`
	BoundaryNs int64  `yaml:"boundary_ns"`
	Reason     string `yaml:"reason"`
	StartNs    int64  `yaml:"start_ns"`
	DurationNs int64  `yaml:"duration_ns"`
	Groups     int    `yaml:"groups"`
}
