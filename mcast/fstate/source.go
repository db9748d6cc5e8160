package fstate

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/satnet-sim/mcsched/mcast"
)

// Source yields the snapshot for a boundary given the snapshot of the boundary
// before it. prev is nil only for the time-0 snapshot. Implementations must not
// modify prev.
type Source interface {
	Load(offsetMs int64, prev *Snapshot) (*Snapshot, error)
}

// FileName returns the fstate file name for a boundary offset in milliseconds.
// Files are keyed by nanoseconds.
func FileName(offsetMs int64) string {
	return fmt.Sprintf("fstate_%d.txt", offsetMs*1_000_000)
}

// DirSource reads fstate_<ns>.txt files from a directory.
type DirSource struct {
	dir  string
	topo mcast.Topology
}

// NewDirSource creates a DirSource rooted at dir.
func NewDirSource(dir string, topo mcast.Topology) *DirSource {
	return &DirSource{dir: dir, topo: topo}
}

// Path returns the file read for offsetMs.
func (d *DirSource) Path(offsetMs int64) string {
	return filepath.Join(d.dir, FileName(offsetMs))
}

// Load reads the file for offsetMs and applies it over prev, or over an
// all-Unrouted base when prev is nil. A missing file wraps
// mcast.ErrPrecondition: the horizon must not exceed the precomputed state.
func (d *DirSource) Load(offsetMs int64, prev *Snapshot) (*Snapshot, error) {
	path := d.Path(offsetMs)
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: no routing state for t=%dms: %w", mcast.ErrPrecondition, offsetMs, err)
		}
		return nil, fmt.Errorf("opening routing state: %w", err)
	}
	defer func() { _ = file.Close() }()

	entries, err := ParseEntries(file, path, d.topo)
	if err != nil {
		return nil, err
	}
	base := prev
	if base == nil {
		logrus.Infof("fstate: t=%dms, initializing all-unrouted base for %d nodes x %d ground stations",
			offsetMs, d.topo.NumNodes(), d.topo.NumGroundStations)
		base = NewSnapshot(d.topo)
	}
	logrus.Debugf("fstate: t=%dms, applying %d entries from %s", offsetMs, len(entries), path)
	return base.Apply(entries)
}

// MemorySource serves diffs held in memory, keyed by offset in milliseconds.
// An offset with no diff carries the previous snapshot forward unchanged.
type MemorySource struct {
	topo  mcast.Topology
	diffs map[int64][]Entry
}

// NewMemorySource creates an empty MemorySource.
func NewMemorySource(topo mcast.Topology) *MemorySource {
	return &MemorySource{topo: topo, diffs: make(map[int64][]Entry)}
}

// Set appends entries to the diff for offsetMs and returns m for chaining.
func (m *MemorySource) Set(offsetMs int64, entries ...Entry) *MemorySource {
	m.diffs[offsetMs] = append(m.diffs[offsetMs], entries...)
	return m
}

// Load applies the diff for offsetMs over prev, or over an all-Unrouted base
// when prev is nil.
func (m *MemorySource) Load(offsetMs int64, prev *Snapshot) (*Snapshot, error) {
	base := prev
	if base == nil {
		base = NewSnapshot(m.topo)
	}
	return base.Apply(m.diffs[offsetMs])
}
