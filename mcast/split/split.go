// Package split turns raw multicast demands into atomic demands: demands whose
// destinations all leave the source through one (next-hop, out-interface) pair
// for their whole lifetime.
//
// The timeline is walked boundary by boundary. At each boundary a demand that
// has ended is split by destination under the routing that was in effect, and
// a live demand whose routing partition changed is forked in time: the past
// half is emitted, the future half keeps being tracked.
package split

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/satnet-sim/mcsched/mcast"
	"github.com/satnet-sim/mcsched/mcast/fstate"
	"github.com/satnet-sim/mcsched/mcast/trace"
)

// Splitter owns the rolling previous snapshot for one run.
type Splitter struct {
	cfg    mcast.Config
	source fstate.Source
	trace  *trace.SplitTrace
}

// Option configures a Splitter.
type Option func(*Splitter)

// WithTrace attaches a decision trace.
func WithTrace(st *trace.SplitTrace) Option {
	return func(s *Splitter) { s.trace = st }
}

// New creates a Splitter reading snapshots from source.
func New(cfg mcast.Config, source fstate.Source, opts ...Option) *Splitter {
	s := &Splitter{cfg: cfg, source: source}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// active is a demand still being tracked, with the index of its raw ancestor.
type active struct {
	origin int
	d      mcast.Demand
}

// Split returns the atomic demands derived from raw. raw is not modified.
// Preconditions are checked before any routing state is read; every failure
// aborts the run.
func (s *Splitter) Split(raw []mcast.Demand) ([]mcast.Demand, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}
	horizonNs := s.cfg.Timeline.HorizonNs()
	tracked := make([]active, 0, len(raw))
	for i, d := range raw {
		if err := d.Validate(s.cfg.Topology, horizonNs); err != nil {
			if errors.Is(err, mcast.ErrEmptyDestinations) {
				return nil, fmt.Errorf("raw demand %d: %w", i, err)
			}
			return nil, fmt.Errorf("%w: raw demand %d: %w", mcast.ErrPrecondition, i, err)
		}
		tracked = append(tracked, active{origin: i, d: d})
	}

	prev, err := s.source.Load(0, nil)
	if err != nil {
		return nil, err
	}

	var out []mcast.Demand
	for _, tMs := range s.cfg.Timeline.Boundaries() {
		tNs := tMs * 1_000_000
		cur, err := s.source.Load(tMs, prev)
		if err != nil {
			return nil, err
		}

		kept := tracked[:0]
		forks := 0
		for _, a := range tracked {
			switch {
			case a.d.EndNs() <= tNs && a.d.StartNs < tNs:
				// Ended inside (t-T, t]: the previous snapshot governed its last stretch.
				out = append(out, s.splitByDestination(a, prev, tNs, trace.ReasonEnd)...)
				continue
			case a.d.StartNs < tNs && !fstate.SamePartition(prev, cur, a.d.Source, a.d.Destinations):
				past, future := fork(a.d, tNs)
				if s.trace.Enabled() {
					s.trace.RecordFork(trace.ForkRecord{
						OriginID:     a.origin,
						BoundaryNs:   tNs,
						PastStartNs:  past.StartNs,
						FutureEndNs:  future.EndNs(),
						GroupsBefore: len(prev.Partition(a.d.Source, a.d.Destinations)),
						GroupsAfter:  len(cur.Partition(a.d.Source, a.d.Destinations)),
					})
				}
				logrus.Debugf("split: fork origin=%d at t=%dms, past=[%d,%d) future=[%d,%d)",
					a.origin, tMs, past.StartNs, past.EndNs(), future.StartNs, future.EndNs())
				out = append(out, s.splitByDestination(active{origin: a.origin, d: past}, prev, tNs, trace.ReasonFork)...)
				a.d = future
				forks++
			}
			kept = append(kept, a)
		}
		tracked = kept
		logrus.Debugf("split: t=%dms, %d forks, %d demands still active, %d atomic so far",
			tMs, forks, len(tracked), len(out))
		prev = cur
	}

	// Only zero-duration demands sitting exactly on the horizon remain.
	for _, a := range tracked {
		out = append(out, s.splitByDestination(a, prev, horizonNs, trace.ReasonEnd)...)
	}

	for i, d := range out {
		if len(d.Destinations) == 0 {
			return nil, fmt.Errorf("atomic demand %d (origin %d): %w", i, d.OriginID(), mcast.ErrEmptyDestinations)
		}
	}
	return out, nil
}

// fork cuts d at tNs into [start, tNs) and [tNs, end). Requires
// d.StartNs < tNs < d.EndNs().
func fork(d mcast.Demand, tNs int64) (past, future mcast.Demand) {
	end := d.EndNs()
	return d.WithWindow(d.StartNs, tNs), d.WithWindow(tNs, end)
}

// splitByDestination emits one atomic demand per routing equivalence class of
// a under snap.
func (s *Splitter) splitByDestination(a active, snap *fstate.Snapshot, boundaryNs int64, reason string) []mcast.Demand {
	out := SplitByDestination(a.d.WithMeta(mcast.MetaOriginID, strconv.Itoa(a.origin)), snap)
	s.trace.RecordEmit(trace.EmitRecord{
		OriginID:   a.origin,
		BoundaryNs: boundaryNs,
		Reason:     reason,
		StartNs:    a.d.StartNs,
		DurationNs: a.d.DurationNs,
		Groups:     len(out),
	})
	return out
}

// SplitByDestination groups d's destinations by the hop d.Source uses toward
// them under snap and returns one demand per group. Times, rate and metadata
// are copied.
func SplitByDestination(d mcast.Demand, snap *fstate.Snapshot) []mcast.Demand {
	groups := snap.Partition(d.Source, d.Destinations)
	out := make([]mcast.Demand, 0, len(groups))
	for _, g := range groups {
		out = append(out, d.WithDestinations(g.Destinations))
	}
	return out
}
