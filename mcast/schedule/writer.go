// Package schedule reads and writes the multicast schedule consumed by the
// network simulator.
//
// One record per line:
//
//	id,source,n_destinations,dst1 dst2 ...,rate_mbps,start_ns,duration_ns,,
//
// The two trailing fields are reserved and always empty. Records are ordered by
// start time and ids run from 0 in file order.
package schedule

import (
	"cmp"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/satnet-sim/mcsched/mcast"
)

// Schedule column positions.
const (
	colID = iota
	colSource
	colNumDestinations
	colDestinations
	colRate
	colStart
	colDuration
	colAdditional
	colMetadata
	numColumns
)

// Sort returns a copy of demands ordered by start time. Demands with equal
// start keep their input order.
func Sort(demands []mcast.Demand) []mcast.Demand {
	sorted := slices.Clone(demands)
	slices.SortStableFunc(sorted, func(a, b mcast.Demand) int {
		return cmp.Compare(a.StartNs, b.StartNs)
	})
	return sorted
}

// Write sorts demands by start time, numbers them from 0 and writes one record
// per demand to w.
func Write(w io.Writer, demands []mcast.Demand) error {
	writer := csv.NewWriter(w)
	for i, d := range Sort(demands) {
		if len(d.Destinations) == 0 {
			return fmt.Errorf("schedule record %d: %w", i, mcast.ErrEmptyDestinations)
		}
		if err := writer.Write(formatRecord(i, d)); err != nil {
			return fmt.Errorf("writing schedule record %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteFile writes the schedule to path. The file only appears once every
// record has been written.
func WriteFile(path string, demands []mcast.Demand) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating schedule file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := Write(tmp, demands); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing schedule file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("moving schedule file into place: %w", err)
	}
	return nil
}

func formatRecord(id int, d mcast.Demand) []string {
	dsts := make([]string, len(d.Destinations))
	for i, dst := range d.Destinations {
		dsts[i] = strconv.Itoa(dst)
	}
	row := make([]string, numColumns)
	row[colID] = strconv.Itoa(id)
	row[colSource] = strconv.Itoa(d.Source)
	row[colNumDestinations] = strconv.Itoa(len(d.Destinations))
	row[colDestinations] = strings.Join(dsts, " ")
	row[colRate] = strconv.FormatFloat(d.RateMbps, 'f', -1, 64)
	row[colStart] = strconv.FormatInt(d.StartNs, 10)
	row[colDuration] = strconv.FormatInt(d.DurationNs, 10)
	return row
}
