package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/jobshop-sim/jobshop-sim/sim"
	"github.com/jobshop-sim/jobshop-sim/sim/trace"
)

// Report is the exported result of one episode.
type Report struct {
	RunID   string                   `json:"run_id" yaml:"run_id"`
	Policy  string                   `json:"policy" yaml:"policy"`
	Seed    int64                    `json:"seed" yaml:"seed"`
	Metrics sim.EpisodeMetrics       `json:"metrics" yaml:"metrics"`
	Summary trace.Summary            `json:"summary" yaml:"summary"`
	History []trace.AssignmentRecord `json:"history" yaml:"history"`
}

func newReport(cfg RunConfig, inst *sim.Instance) *Report {
	records := inst.History()
	if records == nil {
		records = []trace.AssignmentRecord{}
	}
	return &Report{
		RunID:   uuid.NewString(),
		Policy:  cfg.Policy,
		Seed:    cfg.Generator.Seed,
		Metrics: inst.Metrics(),
		Summary: trace.FromRecords(records).Summarize(),
		History: records,
	}
}

// Save writes the report to path in the given format.
func (r *Report) Save(path string, format trace.Format) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case trace.FormatJSON:
		data, err = json.MarshalIndent(r, "", "    ")
	case trace.FormatYAML:
		data, err = yaml.Marshal(r)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
