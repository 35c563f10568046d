package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jobshop-sim/jobshop-sim/sim/workload"
)

var generateOut string // Output path; stdout when empty

// generateCmd writes a random instance in the text format
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a random instance in the text format",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveRunConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.Generator.DynamicJobs > 0 || cfg.Generator.DueDateFactor > 0 {
			return fmt.Errorf("the text format cannot express arrivals or due dates; use --dynamic-jobs=0 and --due-date-factor=0")
		}
		if generateOut == "" {
			return generateInstance(cfg.Generator, cmd.OutOrStdout())
		}
		f, err := os.Create(generateOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", generateOut, err)
		}
		if err := generateInstance(cfg.Generator, f); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	},
}

func generateInstance(g workload.GeneratorConfig, w io.Writer) error {
	instCfg, err := workload.Generate(g)
	if err != nil {
		return err
	}
	return workload.WriteInstance(w, instCfg)
}

func init() {
	addGeneratorFlags(generateCmd)
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "Output path (default stdout)")

	rootCmd.AddCommand(generateCmd)
}
