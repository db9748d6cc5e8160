package fstate

// Group is one routing equivalence class: the destinations that src reaches
// through the same Hop.
type Group struct {
	Hop          Hop
	Destinations []int
}

// Partition groups dsts by the Hop src uses toward each of them under s.
// Groups appear in order of first occurrence in dsts, and each group keeps the
// order of dsts.
func (s *Snapshot) Partition(src int, dsts []int) []Group {
	var groups []Group
	pos := make(map[Hop]int)
	for _, dst := range dsts {
		hop := s.Route(src, dst).Hop()
		i, ok := pos[hop]
		if !ok {
			i = len(groups)
			pos[hop] = i
			groups = append(groups, Group{Hop: hop})
		}
		groups[i].Destinations = append(groups[i].Destinations, dst)
	}
	return groups
}

// SamePartition reports whether src splits dsts into identical groups, keyed by
// identical hops, under a and b. Routing churn toward destinations outside dsts
// does not matter.
//
// Two keyed partitions are identical exactly when every destination keeps its
// hop, so the check is done per destination.
func SamePartition(a, b *Snapshot, src int, dsts []int) bool {
	for _, dst := range dsts {
		if a.Route(src, dst).Hop() != b.Route(src, dst).Hop() {
			return false
		}
	}
	return true
}
