// Package fstate loads per-boundary forwarding state ("fstate") files into
// immutable routing snapshots.
//
// Files after time 0 are diffs: an entry absent from the file keeps the value
// it had in the previous snapshot. The time-0 file is applied over a base in
// which every route is Unrouted.
package fstate

import (
	"fmt"

	"github.com/satnet-sim/mcsched/mcast"
)

// Route is the forwarding decision for one (source, destination) pair.
type Route struct {
	NextHop int
	OutIf   int
	InIf    int
}

// Unrouted is the sentinel route for pairs with no forwarding state.
var Unrouted = Route{NextHop: -1, OutIf: -1, InIf: -1}

// Hop is the routing equivalence key: destinations sharing a Hop leave the
// source on the same link.
type Hop struct {
	NextHop int
	OutIf   int
}

// Hop returns the equivalence key of r. InIf does not take part.
func (r Route) Hop() Hop {
	return Hop{NextHop: r.NextHop, OutIf: r.OutIf}
}

// Entry is one line of an fstate file.
type Entry struct {
	Source      int
	Destination int
	Route       Route
}

// Snapshot is a total map from (any node, ground station) to Route.
// A Snapshot is never modified after construction; Apply returns a new one.
type Snapshot struct {
	topo   mcast.Topology
	routes []Route // row-major: source * NumGroundStations + gsIndex
}

// NewSnapshot returns a snapshot with every pair Unrouted.
func NewSnapshot(topo mcast.Topology) *Snapshot {
	routes := make([]Route, topo.NumNodes()*topo.NumGroundStations)
	for i := range routes {
		routes[i] = Unrouted
	}
	return &Snapshot{topo: topo, routes: routes}
}

// Topology returns the node layout the snapshot covers.
func (s *Snapshot) Topology() mcast.Topology {
	return s.topo
}

// Route returns the route from src toward dst. Pairs outside the snapshot's
// domain are reported as Unrouted.
func (s *Snapshot) Route(src, dst int) Route {
	idx, ok := s.index(src, dst)
	if !ok {
		return Unrouted
	}
	return s.routes[idx]
}

// Apply returns a new snapshot equal to s with entries overwritten.
// s itself is left untouched.
func (s *Snapshot) Apply(entries []Entry) (*Snapshot, error) {
	next := &Snapshot{topo: s.topo, routes: make([]Route, len(s.routes))}
	copy(next.routes, s.routes)
	for _, e := range entries {
		idx, ok := s.index(e.Source, e.Destination)
		if !ok {
			return nil, fmt.Errorf("%w: entry %d->%d", mcast.ErrNodeOutOfRange, e.Source, e.Destination)
		}
		next.routes[idx] = e.Route
	}
	return next, nil
}

// Equal reports whether both snapshots hold the same routes.
func (s *Snapshot) Equal(other *Snapshot) bool {
	if s.topo != other.topo || len(s.routes) != len(other.routes) {
		return false
	}
	for i := range s.routes {
		if s.routes[i] != other.routes[i] {
			return false
		}
	}
	return true
}

func (s *Snapshot) index(src, dst int) (int, bool) {
	if !s.topo.IsNode(src) || !s.topo.IsGroundStation(dst) {
		return 0, false
	}
	return src*s.topo.NumGroundStations + s.topo.GroundStationIndex(dst), true
}
