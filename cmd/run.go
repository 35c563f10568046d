package cmd

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jobshop-sim/jobshop-sim/sim"
	"github.com/jobshop-sim/jobshop-sim/sim/policy"
	"github.com/jobshop-sim/jobshop-sim/sim/trace"
)

// runCmd drives one episode with a dispatching rule
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one scheduling episode with a dispatching rule",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveRunConfig(cmd)
		if err != nil {
			return err
		}
		report, err := runEpisode(cfg)
		if err != nil {
			return err
		}
		report.Metrics.Print()
		if cfg.History != "" {
			if err := report.Save(cfg.History, trace.Format(cfg.Format)); err != nil {
				return err
			}
			logrus.Infof("Run %s: report written to %s", report.RunID, cfg.History)
		}
		return nil
	},
}

// runEpisode builds the instance, runs it to completion under cfg.Policy and
// verifies the resulting history.
func runEpisode(cfg RunConfig) (*Report, error) {
	instCfg, err := cfg.BuildInstance()
	if err != nil {
		return nil, fmt.Errorf("build instance: %w", err)
	}
	inst, err := sim.NewInstance(instCfg)
	if err != nil {
		return nil, err
	}

	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(cfg.Generator.Seed))
	dispatcher, err := policy.New(cfg.Policy, rng.ForSubsystem(sim.SubsystemPolicy))
	if err != nil {
		return nil, err
	}

	logrus.Infof("Starting episode: %d jobs, %d machines, policy=%s", len(inst.Jobs()), len(inst.Machines()), cfg.Policy)
	startTime := time.Now()
	if err := sim.RunEpisode(inst, dispatcher); err != nil {
		return nil, fmt.Errorf("episode failed: %w", err)
	}
	if err := trace.CheckConsistency(inst.History()); err != nil {
		return nil, fmt.Errorf("inconsistent history: %w", err)
	}
	logrus.Infof("Episode complete in %v", time.Since(startTime))
	return newReport(cfg, inst), nil
}

func init() {
	addInstanceFlags(runCmd)
	runCmd.Flags().StringVar(&flagValues.Policy, "policy", flagValues.Policy, fmt.Sprintf("Dispatching rule %v", policy.Names()))
	runCmd.Flags().StringVar(&flagValues.History, "history", "", "Write the episode report (metrics and history) to this path")
	runCmd.Flags().StringVar(&flagValues.Format, "format", flagValues.Format, "Report format (json, yaml)")

	rootCmd.AddCommand(runCmd)
}
