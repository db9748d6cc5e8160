package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/satnet-sim/mcsched/mcast/schedule"
	"github.com/satnet-sim/mcsched/mcast/workload"
)

// generateCmd writes raw, unsplit demands in schedule format so that a later
// `split` can replay them against different routing state.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write raw random demands as an unsplit schedule",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig(cmd)
		raw, err := workload.GenerateDemands(&cfg.Workload, cfg.Config)
		if err != nil {
			logrus.Fatalf("Demand generation failed: %v", err)
		}
		if err := schedule.WriteFile(cfg.Paths.Output, raw); err != nil {
			logrus.Fatalf("Writing raw demands failed: %v", err)
		}
		logrus.Infof("Wrote %d raw demands to %s", len(raw), cfg.Paths.Output)
	},
}

func init() {
	generateCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for random demand generation (overrides config)")
	generateCmd.Flags().IntVar(&numDemands, "num-demands", 100, "Number of raw demands (overrides config)")
	generateCmd.Flags().StringVar(&outputPath, "output", "", "Raw schedule output path (overrides config)")

	rootCmd.AddCommand(generateCmd)
}
