package mcast

import (
	"errors"
	"fmt"
)

var (
	// ErrPrecondition marks a run that cannot start or continue: a horizon that is
	// not a multiple of the interval width, a missing routing-state file, or a raw
	// demand that lies outside the timeline or topology.
	ErrPrecondition = errors.New("precondition violated")

	// ErrEmptyDestinations marks a demand with no destinations.
	ErrEmptyDestinations = errors.New("demand has no destinations")

	// ErrNodeOutOfRange marks a node id outside the range allowed for its role.
	ErrNodeOutOfRange = errors.New("node id out of range")
)

// MalformedRecordError reports a line of an input file that could not be parsed
// or validated.
type MalformedRecordError struct {
	Path string
	Line int
	Err  error
}

func (e *MalformedRecordError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("malformed record at line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("malformed record in %s line %d: %v", e.Path, e.Line, e.Err)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}
