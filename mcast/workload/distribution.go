package workload

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// CountSampler draws destination counts.
type CountSampler interface {
	// Sample returns a count of at least 1.
	Sample() int
}

// PoissonCountSampler draws Poisson counts, redrawing zeros and counts larger
// than maxCount.
type PoissonCountSampler struct {
	dist     distuv.Poisson
	maxCount int
}

// NewPoissonCountSampler creates a sampler with mean lambda drawing from src.
func NewPoissonCountSampler(lambda float64, maxCount int, src rand.Source) *PoissonCountSampler {
	return &PoissonCountSampler{dist: distuv.Poisson{Lambda: lambda, Src: src}, maxCount: maxCount}
}

func (s *PoissonCountSampler) Sample() int {
	for {
		n := int(s.dist.Rand())
		if n >= 1 && n <= s.maxCount {
			return n
		}
	}
}

// DurationSampler draws demand durations in nanoseconds.
type DurationSampler interface {
	Sample() int64
}

// ExponentialDurationSampler draws exponential durations truncated to whole
// nanoseconds.
type ExponentialDurationSampler struct {
	dist distuv.Exponential
}

// NewExponentialDurationSampler creates a sampler with the given mean.
func NewExponentialDurationSampler(meanNs float64, src rand.Source) *ExponentialDurationSampler {
	return &ExponentialDurationSampler{dist: distuv.Exponential{Rate: 1 / meanNs, Src: src}}
}

func (s *ExponentialDurationSampler) Sample() int64 {
	return int64(s.dist.Rand())
}

// sampleWithoutReplacement picks n distinct elements of candidates uniformly.
func sampleWithoutReplacement(candidates []int, n int, src rand.Source) []int {
	idxs := make([]int, n)
	sampleuv.WithoutReplacement(idxs, len(candidates), src)
	out := make([]int, n)
	for i, idx := range idxs {
		out[i] = candidates[idx]
	}
	return out
}
