package trace

// TraceSummary aggregates statistics from a SplitTrace.
type TraceSummary struct {
	TotalForks        int           `yaml:"total_forks"`
	TotalEmissions    int           `yaml:"total_emissions"`
	AtomicDemands     int           `yaml:"atomic_demands"`
	ForkedOrigins     int           `yaml:"forked_origins"`
	MaxForksPerOrigin int           `yaml:"max_forks_per_origin"`
	ForksByBoundary   map[int64]int `yaml:"forks_by_boundary"` // boundary ns → fork count
}

// Summarize computes aggregate statistics from a SplitTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SplitTrace) *TraceSummary {
	summary := &TraceSummary{
		ForksByBoundary: make(map[int64]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalForks = len(st.Forks)
	perOrigin := make(map[int]int)
	for _, f := range st.Forks {
		summary.ForksByBoundary[f.BoundaryNs]++
		perOrigin[f.OriginID]++
	}
	summary.ForkedOrigins = len(perOrigin)
	for _, n := range perOrigin {
		if n > summary.MaxForksPerOrigin {
			summary.MaxForksPerOrigin = n
		}
	}

	summary.TotalEmissions = len(st.Emissions)
	for _, e := range st.Emissions {
		summary.AtomicDemands += e.Groups
	}

	return summary
}
