package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/satnet-sim/mcsched/mcast/schedule"
)

var demandsPath string // Raw schedule to replay

// splitCmd replays a raw schedule through the splitter.
var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Split a raw schedule into atomic demands",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig(cmd)
		raw, err := schedule.ReadFile(demandsPath, cfg.Topology, cfg.Timeline.HorizonNs())
		if err != nil {
			logrus.Fatalf("Reading raw schedule failed: %v", err)
		}
		logrus.Infof("Read %d raw demands from %s", len(raw), demandsPath)

		n, err := splitAndWrite(cfg, raw, traceOut)
		if err != nil {
			logrus.Fatalf("Split failed: %v", err)
		}
		logrus.Infof("Wrote %d atomic demands to %s", n, cfg.Paths.Output)
	},
}

func init() {
	splitCmd.Flags().StringVar(&demandsPath, "demands", "", "Raw schedule file to split")
	splitCmd.Flags().StringVar(&fstateDir, "fstate-dir", "", "Directory of fstate_<ns>.txt routing files (overrides config)")
	splitCmd.Flags().StringVar(&outputPath, "output", "", "Schedule output path (overrides config)")
	splitCmd.Flags().StringVar(&traceOut, "trace-out", "", "Write the split decision trace as YAML to this path")
	_ = splitCmd.MarkFlagRequired("demands")

	rootCmd.AddCommand(splitCmd)
}
