package mcast

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopology_NodeRanges(t *testing.T) {
	assert.Equal(t, 60, testTopo.NumNodes())
	assert.True(t, testTopo.IsNode(0))
	assert.False(t, testTopo.IsNode(60))
	assert.False(t, testTopo.IsGroundStation(49))
	assert.True(t, testTopo.IsGroundStation(50))
	assert.True(t, testTopo.IsGroundStation(59))
	assert.False(t, testTopo.IsGroundStation(60))
	assert.Equal(t, 3, testTopo.GroundStationIndex(53))
	assert.Equal(t, []int{50, 51, 52, 53, 54, 55, 56, 57, 58, 59}, testTopo.GroundStations())
}

func TestTimeline_Boundaries(t *testing.T) {
	tl := Timeline{IntervalMs: 1000, HorizonS: 4}
	assert.NoError(t, tl.Validate())
	assert.Equal(t, []int64{1000, 2000, 3000, 4000}, tl.Boundaries())
	assert.Equal(t, int64(1_000_000_000), tl.IntervalNs())
	assert.Equal(t, int64(4_000_000_000), tl.HorizonNs())
}

func TestTimeline_Validate_HorizonNotMultiple(t *testing.T) {
	// GIVEN a 3 s horizon cut into 700 ms intervals
	tl := Timeline{IntervalMs: 700, HorizonS: 3}

	// THEN validation fails as a precondition error
	err := tl.Validate()
	assert.True(t, errors.Is(err, ErrPrecondition), "got %v", err)
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	bad := DefaultConfig()
	bad.Topology.NumGroundStations = 0
	assert.Error(t, bad.Validate())

	bad = DefaultConfig()
	bad.Timeline.IntervalMs = 0
	assert.True(t, errors.Is(bad.Validate(), ErrPrecondition))
}
