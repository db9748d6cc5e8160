package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satnet-sim/mcsched/mcast"
	"github.com/satnet-sim/mcsched/mcast/fstate"
	"github.com/satnet-sim/mcsched/mcast/schedule"
	"github.com/satnet-sim/mcsched/mcast/workload"
)

// smallConfig returns a 10-satellite, 4-ground-station layout over 2 s.
func smallConfig(t *testing.T) Config {
	t.Helper()
	cfg := defaultConfig()
	cfg.Topology = mcast.Topology{NumSatellites: 10, NumGroundStations: 4}
	cfg.Timeline = mcast.Timeline{IntervalMs: 1000, HorizonS: 2}
	cfg.Workload = workload.DefaultSpec(cfg.Topology)
	cfg.Paths = Paths{
		FstateDir: t.TempDir(),
		Output:    filepath.Join(t.TempDir(), "schedule.csv"),
	}
	return cfg
}

// writeRouting writes one fstate file per boundary. At 0 every ground-station
// pair is routed via satellite 0; at 1000 ms destination 11 moves to satellite 1.
func writeRouting(t *testing.T, dir string) {
	t.Helper()
	var base strings.Builder
	for src := 10; src < 14; src++ {
		for dst := 10; dst < 14; dst++ {
			fmt.Fprintf(&base, "%d,%d,0,0,0\n", src, dst)
		}
	}
	files := map[int64]string{
		0:    base.String(),
		1000: "10,11,1,2,0\n",
		2000: "",
	}
	for ms, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, fstate.FileName(ms)), []byte(content), 0644))
	}
}

func TestSplitAndWrite_ForksAtRouteChange(t *testing.T) {
	// GIVEN one raw demand from 10 to {11, 12} over the whole window
	cfg := smallConfig(t)
	writeRouting(t, cfg.Paths.FstateDir)
	raw := []mcast.Demand{mcast.NewDemand(10, []int{11, 12}, 10, 0, 2_000_000_000)}
	tracePath := filepath.Join(t.TempDir(), "trace.yaml")

	// WHEN split and written
	n, err := splitAndWrite(cfg, raw, tracePath)
	require.NoError(t, err)

	// THEN the schedule holds the pre-change piece and one piece per new class
	assert.Equal(t, 3, n)
	data, err := os.ReadFile(cfg.Paths.Output)
	require.NoError(t, err)
	want := "0,10,2,11 12,10,0,1000000000,,\n" +
		"1,10,1,11,10,1000000000,1000000000,,\n" +
		"2,10,1,12,10,1000000000,1000000000,,\n"
	assert.Equal(t, want, string(data))

	// THEN the trace was exported
	traceData, err := os.ReadFile(tracePath)
	require.NoError(t, err)
	assert.Contains(t, string(traceData), "total_forks: 1")
}

func TestSplitAndWrite_MissingRoutingFile_WritesNothing(t *testing.T) {
	// GIVEN routing files for 0 and 1000 ms only
	cfg := smallConfig(t)
	writeRouting(t, cfg.Paths.FstateDir)
	require.NoError(t, os.Remove(filepath.Join(cfg.Paths.FstateDir, fstate.FileName(2000))))
	raw := []mcast.Demand{mcast.NewDemand(10, []int{12}, 10, 0, 500_000_000)}

	// WHEN split
	_, err := splitAndWrite(cfg, raw, "")

	// THEN the run aborts before any output exists
	assert.ErrorIs(t, err, mcast.ErrPrecondition)
	_, statErr := os.Stat(cfg.Paths.Output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSplitAndWrite_RequiresPaths(t *testing.T) {
	cfg := smallConfig(t)
	cfg.Paths.FstateDir = ""
	_, err := splitAndWrite(cfg, nil, "")
	assert.ErrorIs(t, err, mcast.ErrPrecondition)

	cfg = smallConfig(t)
	cfg.Paths.Output = ""
	_, err = splitAndWrite(cfg, nil, "")
	assert.ErrorIs(t, err, mcast.ErrPrecondition)
}

func TestGenerateThenSplit_ReplayMatchesDirectRun(t *testing.T) {
	// GIVEN generated raw demands written as a raw schedule
	cfg := smallConfig(t)
	writeRouting(t, cfg.Paths.FstateDir)
	raw, err := workload.GenerateDemands(&cfg.Workload, cfg.Config)
	require.NoError(t, err)
	rawPath := filepath.Join(t.TempDir(), "raw.csv")
	require.NoError(t, schedule.WriteFile(rawPath, raw))

	// WHEN the raw schedule is read back and split
	replayed, err := schedule.ReadFile(rawPath, cfg.Topology, cfg.Timeline.HorizonNs())
	require.NoError(t, err)
	n, err := splitAndWrite(cfg, replayed, "")
	require.NoError(t, err)

	// THEN the output parses as a schedule and holds at least one record per raw demand
	out, err := schedule.ReadFile(cfg.Paths.Output, cfg.Topology, cfg.Timeline.HorizonNs())
	require.NoError(t, err)
	assert.Len(t, out, n)
	assert.GreaterOrEqual(t, n, len(raw))
}

func TestMustLoadConfig_OnlyChangedFlagsOverride(t *testing.T) {
	// GIVEN a command where only --seed was set
	c := &cobra.Command{}
	c.Flags().Int64Var(&seed, "seed", 42, "")
	c.Flags().IntVar(&numDemands, "num-demands", 100, "")
	require.NoError(t, c.Flags().Set("seed", "7"))

	// WHEN the config is loaded
	cfg := mustLoadConfig(c)

	// THEN the seed follows the flag while the demand count keeps the config value
	assert.Equal(t, int64(7), cfg.Workload.Seed)
	assert.Equal(t, 100, cfg.Workload.NumDemands)
}
