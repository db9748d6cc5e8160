package cmd

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/satnet-sim/mcsched/mcast"
	"github.com/satnet-sim/mcsched/mcast/fstate"
	"github.com/satnet-sim/mcsched/mcast/schedule"
	"github.com/satnet-sim/mcsched/mcast/split"
	"github.com/satnet-sim/mcsched/mcast/trace"
	"github.com/satnet-sim/mcsched/mcast/workload"
)

var (
	seed       int64  // Seed override for demand generation
	numDemands int    // Number of raw demands override
	fstateDir  string // Routing state directory override
	outputPath string // Schedule output path override
	traceOut   string // Optional YAML path for the split decision trace
)

// runCmd generates raw demands, splits them against the routing state and
// writes the atomic schedule.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate, split and write a multicast schedule",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig(cmd)
		startTime := time.Now()

		raw, err := workload.GenerateDemands(&cfg.Workload, cfg.Config)
		if err != nil {
			logrus.Fatalf("Demand generation failed: %v", err)
		}
		logrus.Infof("Generated %d raw demands (seed=%d)", len(raw), cfg.Workload.Seed)

		n, err := splitAndWrite(cfg, raw, traceOut)
		if err != nil {
			logrus.Fatalf("Run failed: %v", err)
		}
		logrus.Infof("Wrote %d atomic demands to %s in %v", n, cfg.Paths.Output, time.Since(startTime))
	},
}

// mustLoadConfig loads the config file and applies flag overrides. Only flags
// the user actually set take precedence over the file.
func mustLoadConfig(cmd *cobra.Command) Config {
	cfg, err := loadConfig(configPath)
	if err != nil {
		logrus.Fatalf("%v", err)
	}
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Workload.Seed = seed
	}
	if flags.Changed("num-demands") {
		cfg.Workload.NumDemands = numDemands
	}
	if flags.Changed("fstate-dir") {
		cfg.Paths.FstateDir = fstateDir
	}
	if flags.Changed("output") {
		cfg.Paths.Output = outputPath
	}
	logrus.Infof("Config: %d satellites, %d ground stations, interval=%dms, horizon=%ds",
		cfg.Topology.NumSatellites, cfg.Topology.NumGroundStations, cfg.Timeline.IntervalMs, cfg.Timeline.HorizonS)
	return cfg
}

// splitAndWrite splits raw against the routing state in cfg.Paths.FstateDir
// and writes the atomic demands to cfg.Paths.Output. Nothing is written when
// splitting fails. Returns the number of atomic demands.
func splitAndWrite(cfg Config, raw []mcast.Demand, tracePath string) (int, error) {
	if cfg.Paths.FstateDir == "" {
		return 0, fmt.Errorf("%w: fstate_dir is not set", mcast.ErrPrecondition)
	}
	if cfg.Paths.Output == "" {
		return 0, fmt.Errorf("%w: output path is not set", mcast.ErrPrecondition)
	}

	level := trace.TraceLevelNone
	if tracePath != "" {
		level = trace.TraceLevelDecisions
	}
	st := trace.NewSplitTrace(level)

	source := fstate.NewDirSource(cfg.Paths.FstateDir, cfg.Topology)
	atomic, err := split.New(cfg.Config, source, split.WithTrace(st)).Split(raw)
	if err != nil {
		return 0, err
	}
	if err := schedule.WriteFile(cfg.Paths.Output, atomic); err != nil {
		return 0, err
	}

	if st.Enabled() {
		summary := trace.Summarize(st)
		logrus.Infof("Split trace: %d forks over %d raw demands, %d emissions",
			summary.TotalForks, summary.ForkedOrigins, summary.TotalEmissions)
		if err := st.Export(tracePath); err != nil {
			return 0, err
		}
	}
	return len(atomic), nil
}

func init() {
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for random demand generation (overrides config)")
	runCmd.Flags().IntVar(&numDemands, "num-demands", 100, "Number of raw demands (overrides config)")
	runCmd.Flags().StringVar(&fstateDir, "fstate-dir", "", "Directory of fstate_<ns>.txt routing files (overrides config)")
	runCmd.Flags().StringVar(&outputPath, "output", "", "Schedule output path (overrides config)")
	runCmd.Flags().StringVar(&traceOut, "trace-out", "", "Write the split decision trace as YAML to this path")

	rootCmd.AddCommand(runCmd)
}
