package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jobshop-sim/jobshop-sim/sim"
	"github.com/jobshop-sim/jobshop-sim/sim/policy"
	"github.com/jobshop-sim/jobshop-sim/sim/trace"
	"github.com/jobshop-sim/jobshop-sim/sim/workload"
)

// RunConfig is the YAML run configuration accepted by --config.
// All sections must be listed to satisfy KnownFields(true) strict parsing.
type RunConfig struct {
	Instance  string                   `yaml:"instance"` // text-format instance file
	Spec      string                   `yaml:"spec"`     // YAML instance spec
	Generator workload.GeneratorConfig `yaml:"generator"`
	Policy    string                   `yaml:"policy"`
	History   string                   `yaml:"history"` // report output path; empty = none
	Format    string                   `yaml:"format"`
}

func defaultRunConfig() RunConfig {
	return RunConfig{
		Generator: workload.GeneratorConfig{
			Jobs:             10,
			Machines:         5,
			MinProcessTime:   1,
			MaxProcessTime:   10,
			MeanInterArrival: 20,
			Seed:             42,
		},
		Policy: policy.FIFO,
		Format: string(trace.FormatJSON),
	}
}

// flagValues holds everything bound to CLI flags. Only flags the user set
// explicitly are copied over the YAML configuration.
var flagValues = defaultRunConfig()

// loadRunConfig decodes a YAML run configuration over base.
// Uses strict field checking: typos must cause errors.
func loadRunConfig(path string, base RunConfig) (RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, fmt.Errorf("read run config: %w", err)
	}
	cfg := base
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return RunConfig{}, fmt.Errorf("parse run config %s: %w", path, err)
	}
	return cfg, nil
}

// resolveRunConfig merges defaults, the --config file and explicitly set flags.
func resolveRunConfig(cmd *cobra.Command) (RunConfig, error) {
	cfg := defaultRunConfig()
	if configPath != "" {
		var err error
		if cfg, err = loadRunConfig(configPath, cfg); err != nil {
			return RunConfig{}, err
		}
	}
	applyFlagOverrides(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return RunConfig{}, err
	}
	return cfg, nil
}

func applyFlagOverrides(cmd *cobra.Command, cfg *RunConfig) {
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}
	g, v := &cfg.Generator, flagValues.Generator
	overrides := []struct {
		flag  string
		apply func()
	}{
		{"instance", func() { cfg.Instance = flagValues.Instance }},
		{"spec", func() { cfg.Spec = flagValues.Spec }},
		{"policy", func() { cfg.Policy = flagValues.Policy }},
		{"history", func() { cfg.History = flagValues.History }},
		{"format", func() { cfg.Format = flagValues.Format }},
		{"jobs", func() { g.Jobs = v.Jobs }},
		{"machines", func() { g.Machines = v.Machines }},
		{"ops", func() { g.OpsPerJob = v.OpsPerJob }},
		{"min-process-time", func() { g.MinProcessTime = v.MinProcessTime }},
		{"max-process-time", func() { g.MaxProcessTime = v.MaxProcessTime }},
		{"dynamic-jobs", func() { g.DynamicJobs = v.DynamicJobs }},
		{"mean-inter-arrival", func() { g.MeanInterArrival = v.MeanInterArrival }},
		{"due-date-factor", func() { g.DueDateFactor = v.DueDateFactor }},
		{"seed", func() { g.Seed = v.Seed }},
	}
	for _, o := range overrides {
		if changed(o.flag) {
			o.apply()
		}
	}
}

// Validate checks the parts of the configuration that do not need file access.
func (c RunConfig) Validate() error {
	if c.Instance != "" && c.Spec != "" {
		return fmt.Errorf("%w: --instance and --spec are mutually exclusive", sim.ErrInvalidArgument)
	}
	if !policy.IsValid(c.Policy) {
		return fmt.Errorf("%w: unknown policy %q; valid: %v", sim.ErrInvalidArgument, c.Policy, policy.Names())
	}
	if !trace.IsValidFormat(c.Format) {
		return fmt.Errorf("%w: unknown history format %q", sim.ErrInvalidArgument, c.Format)
	}
	return nil
}

// BuildInstance loads or generates the instance configuration.
func (c RunConfig) BuildInstance() (sim.InstanceConfig, error) {
	switch {
	case c.Instance != "":
		return workload.LoadInstance(c.Instance)
	case c.Spec != "":
		spec, err := workload.LoadInstanceSpec(c.Spec)
		if err != nil {
			return sim.InstanceConfig{}, err
		}
		return spec.ToConfig()
	default:
		return workload.Generate(c.Generator)
	}
}

// addInstanceFlags registers the flags selecting and generating an instance.
func addInstanceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagValues.Instance, "instance", "", "Path to an instance in the text format")
	cmd.Flags().StringVar(&flagValues.Spec, "spec", "", "Path to a YAML instance spec")
	addGeneratorFlags(cmd)
}

func addGeneratorFlags(cmd *cobra.Command) {
	g := &flagValues.Generator
	cmd.Flags().IntVar(&g.Jobs, "jobs", g.Jobs, "Jobs present at tick 0")
	cmd.Flags().IntVar(&g.Machines, "machines", g.Machines, "Number of machines")
	cmd.Flags().IntVar(&g.OpsPerJob, "ops", g.OpsPerJob, "Operations per job (0 = one per machine)")
	cmd.Flags().Int64Var(&g.MinProcessTime, "min-process-time", g.MinProcessTime, "Minimum process time (ticks)")
	cmd.Flags().Int64Var(&g.MaxProcessTime, "max-process-time", g.MaxProcessTime, "Maximum process time (ticks)")
	cmd.Flags().IntVar(&g.DynamicJobs, "dynamic-jobs", g.DynamicJobs, "Jobs arriving after tick 0")
	cmd.Flags().Float64Var(&g.MeanInterArrival, "mean-inter-arrival", g.MeanInterArrival, "Mean ticks between dynamic arrivals")
	cmd.Flags().Float64Var(&g.DueDateFactor, "due-date-factor", g.DueDateFactor, "Due date = arrival + factor * job work (0 = none)")
	cmd.Flags().Int64Var(&g.Seed, "seed", g.Seed, "Seed for instance generation and randomized policies")
}
