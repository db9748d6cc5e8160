package fstate

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/satnet-sim/mcsched/mcast"
)

// fstate line layout.
const (
	colSource = iota
	colDestination
	colNextHop
	colOutIf
	colInIf
	numColumns
)

// ParseEntries reads fstate lines from r. path is used only in error messages.
// Every line must hold five integers; the source must be a node of topo and the
// destination a ground station. Any violation is a *mcast.MalformedRecordError.
func ParseEntries(r io.Reader, path string, topo mcast.Topology) ([]Entry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = numColumns
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	var entries []Entry
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

		var vals [numColumns]int
		for i, field := range row {
			v, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return nil, &mcast.MalformedRecordError{Path: path, Line: line, Err: fmt.Errorf("field %d: %w", i, err)}
			}
			vals[i] = v
		}

		e := Entry{
			Source:      vals[colSource],
			Destination: vals[colDestination],
			Route: Route{
				NextHop: vals[colNextHop],
				OutIf:   vals[colOutIf],
				InIf:    vals[colInIf],
			},
		}
		if !topo.IsNode(e.Source) {
			return nil, &mcast.MalformedRecordError{Path: path, Line: line,
				Err: fmt.Errorf("%w: source %d", mcast.ErrNodeOutOfRange, e.Source)}
		}
		if !topo.IsGroundStation(e.Destination) {
			return nil, &mcast.MalformedRecordError{Path: path, Line: line,
				Err: fmt.Errorf("%w: destination %d is not a ground station", mcast.ErrNodeOutOfRange, e.Destination)}
		}
		entries = append(entries, e)
	}
	return entries, nil
}
