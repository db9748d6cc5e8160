package split

import (
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/satnet-sim/mcsched/mcast"
	"github.com/satnet-sim/mcsched/mcast/fstate"
	"github.com/satnet-sim/mcsched/mcast/workload"
)

// randomRouting builds a MemorySource whose diffs reassign a random subset of
// (ground station, ground station) routes at every boundary, drawing hops from
// a small pool so that classes both merge and split over time.
func randomRouting(t *testing.T, cfg mcast.Config, seed uint64) (*fstate.MemorySource, []*fstate.Snapshot) {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, seed+1))
	gs := cfg.Topology.GroundStations()
	src := fstate.NewMemorySource(cfg.Topology)

	offsets := append([]int64{0}, cfg.Timeline.Boundaries()...)
	for _, ms := range offsets {
		n := len(gs) * len(gs)
		if ms > 0 {
			n = rng.IntN(len(gs) * 2)
		}
		for i := 0; i < n; i++ {
			s, d := gs[rng.IntN(len(gs))], gs[rng.IntN(len(gs))]
			src.Set(ms, route(s, d, rng.IntN(3), rng.IntN(2)))
		}
	}

	var snaps []*fstate.Snapshot
	var prev *fstate.Snapshot
	for _, ms := range offsets {
		next, err := src.Load(ms, prev)
		require.NoError(t, err)
		snaps = append(snaps, next)
		prev = next
	}
	return src, snaps
}

type window struct{ start, end int64 }

func TestSplit_Properties_RandomWorkload(t *testing.T) {
	cfg := testCfg
	spec := workload.DefaultSpec(cfg.Topology)
	spec.NumDemands = 200
	spec.MeanDestinations = 4

	for _, seed := range []int64{1, 7, 42, 1234} {
		spec.Seed = seed
		raw, err := workload.GenerateDemands(&spec, cfg)
		require.NoError(t, err)
		source, snaps := randomRouting(t, cfg, uint64(seed))

		out, err := New(cfg, source).Split(raw)
		require.NoError(t, err)

		intervalNs := cfg.Timeline.IntervalNs()
		pieces := make(map[int]map[int][]window) // origin → destination → windows
		for i, d := range out {
			origin := d.OriginID()
			require.GreaterOrEqual(t, origin, 0, "atomic %d has no origin", i)
			require.NotEmpty(t, d.Destinations)
			require.Equal(t, raw[origin].Source, d.Source)
			require.Equal(t, raw[origin].RateMbps, d.RateMbps)

			// Routing homogeneity: one hop for all destinations under every
			// snapshot governing an instant of [start, end).
			first := d.StartNs / intervalNs
			last := first
			if d.DurationNs > 0 {
				last = (d.EndNs() - 1) / intervalNs
			}
			for k := first; k <= last && int(k) < len(snaps); k++ {
				hop := snaps[k].Route(d.Source, d.Destinations[0]).Hop()
				for _, dst := range d.Destinations[1:] {
					require.Equal(t, hop, snaps[k].Route(d.Source, dst).Hop(),
						"seed %d atomic %d: destinations diverge under snapshot %d", seed, i, k)
				}
			}

			if pieces[origin] == nil {
				pieces[origin] = make(map[int][]window)
			}
			for _, dst := range d.Destinations {
				pieces[origin][dst] = append(pieces[origin][dst], window{d.StartNs, d.EndNs()})
			}
		}

		for origin, r := range raw {
			// Destination coverage: exactly the raw set, nothing extra.
			got := make([]int, 0, len(pieces[origin]))
			for dst := range pieces[origin] {
				got = append(got, dst)
			}
			sort.Ints(got)
			require.Equal(t, r.Destinations, got, "seed %d origin %d destinations", seed, origin)

			// Temporal coverage: per destination, windows tile [start, end).
			for dst, ws := range pieces[origin] {
				sort.Slice(ws, func(i, j int) bool { return ws[i].start < ws[j].start })
				if r.DurationNs == 0 {
					require.Len(t, ws, 1, "seed %d origin %d dst %d", seed, origin, dst)
					continue
				}
				cursor := r.StartNs
				for _, w := range ws {
					require.Equal(t, cursor, w.start, "seed %d origin %d dst %d: gap or overlap", seed, origin, dst)
					require.Greater(t, w.end, w.start)
					cursor = w.end
				}
				require.Equal(t, r.EndNs(), cursor, "seed %d origin %d dst %d: window not covered", seed, origin, dst)
			}
		}
	}
}

func TestSplit_Properties_NoChangeIsIdempotent(t *testing.T) {
	// GIVEN a routing table that never changes after time 0
	cfg := testCfg
	gs := cfg.Topology.GroundStations()
	src := fstate.NewMemorySource(cfg.Topology)
	for _, s := range gs {
		for i, d := range gs {
			src.Set(0, route(s, d, i%3, 0))
		}
	}
	snap, err := src.Load(0, nil)
	require.NoError(t, err)

	spec := workload.DefaultSpec(cfg.Topology)
	spec.NumDemands = 50
	spec.MeanDestinations = 5
	raw, err := workload.GenerateDemands(&spec, cfg)
	require.NoError(t, err)

	// WHEN split
	out, err := New(cfg, src).Split(raw)
	require.NoError(t, err)

	// THEN each raw demand yields exactly its time-0 classes, never re-split in time
	want := 0
	for _, d := range raw {
		want += len(snap.Partition(d.Source, d.Destinations))
	}
	require.Len(t, out, want)
	for _, d := range out {
		r := raw[d.OriginID()]
		require.Equal(t, r.StartNs, d.StartNs)
		require.Equal(t, r.DurationNs, d.DurationNs)
	}
}
