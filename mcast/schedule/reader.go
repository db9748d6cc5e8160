package schedule

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/satnet-sim/mcsched/mcast"
)

// Read parses a schedule from r. path is used only in error messages.
//
// The same checks the simulator applies on load are enforced: ids ascend by
// one from 0, the destination count matches the list, start times are weakly
// ascending, the rate is positive, the source is not a destination, every
// endpoint is a ground station of topo, and every demand starts before
// horizonNs. Violations are *mcast.MalformedRecordError.
func Read(r io.Reader, path string, topo mcast.Topology, horizonNs int64) ([]mcast.Demand, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = numColumns

	var demands []mcast.Demand
	prevStart := int64(0)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return nil, &mcast.MalformedRecordError{Path: path, Line: perr.Line, Err: perr.Err}
			}
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		line, _ := reader.FieldPos(0)
		malformed := func(format string, args ...any) error {
			return &mcast.MalformedRecordError{Path: path, Line: line, Err: fmt.Errorf(format, args...)}
		}

		d, id, err := parseRecord(row)
		if err != nil {
			return nil, &mcast.MalformedRecordError{Path: path, Line: line, Err: err}
		}
		if id != len(demands) {
			return nil, malformed("id %d is not ascending by one (want %d)", id, len(demands))
		}
		if d.RateMbps <= 0 {
			return nil, malformed("rate must be positive, got %v", d.RateMbps)
		}
		if d.StartNs < prevStart {
			return nil, malformed("start %d is not weakly ascending (previous %d)", d.StartNs, prevStart)
		}
		prevStart = d.StartNs
		if d.StartNs >= horizonNs {
			return nil, malformed("start %d is not before the horizon %d", d.StartNs, horizonNs)
		}
		if err := d.Validate(topo, horizonNs); err != nil {
			return nil, &mcast.MalformedRecordError{Path: path, Line: line, Err: err}
		}
		demands = append(demands, d)
	}
	return demands, nil
}

// ReadFile opens path and parses it with Read.
func ReadFile(path string, topo mcast.Topology, horizonNs int64) ([]mcast.Demand, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening schedule: %w", err)
	}
	defer func() { _ = file.Close() }()
	return Read(file, path, topo, horizonNs)
}

func parseRecord(row []string) (mcast.Demand, int, error) {
	id, err := strconv.Atoi(row[colID])
	if err != nil {
		return mcast.Demand{}, 0, fmt.Errorf("id: %w", err)
	}
	src, err := strconv.Atoi(row[colSource])
	if err != nil {
		return mcast.Demand{}, 0, fmt.Errorf("source: %w", err)
	}
	n, err := strconv.Atoi(row[colNumDestinations])
	if err != nil {
		return mcast.Demand{}, 0, fmt.Errorf("destination count: %w", err)
	}
	fields := strings.Fields(row[colDestinations])
	if len(fields) != n {
		return mcast.Demand{}, 0, fmt.Errorf("destination count %d does not match %d listed", n, len(fields))
	}
	dsts := make([]int, len(fields))
	for i, f := range fields {
		if dsts[i], err = strconv.Atoi(f); err != nil {
			return mcast.Demand{}, 0, fmt.Errorf("destination %d: %w", i, err)
		}
	}
	rate, err := strconv.ParseFloat(row[colRate], 64)
	if err != nil {
		return mcast.Demand{}, 0, fmt.Errorf("rate: %w", err)
	}
	start, err := strconv.ParseInt(row[colStart], 10, 64)
	if err != nil {
		return mcast.Demand{}, 0, fmt.Errorf("start: %w", err)
	}
	dura, err := strconv.ParseInt(row[colDuration], 10, 64)
	if err != nil {
		return mcast.Demand{}, 0, fmt.Errorf("duration: %w", err)
	}
	return mcast.NewDemand(src, dsts, rate, start, dura), id, nil
}
