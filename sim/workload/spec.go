package workload

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jobshop-sim/jobshop-sim/sim"
)

// InstanceSpec is a YAML instance description. Unlike the text format it can
// express arrival times, due dates, and jobs of different lengths.
//
//	machines: 2
//	jobs:
//	  - arrival: 0
//	    due: 12
//	    ops:
//	      - {machine: 0, time: 3}
//	      - {machine: 1, time: 2}
type InstanceSpec struct {
	Machines int       `yaml:"machines"`
	Jobs     []JobSpec `yaml:"jobs"`
}

// JobSpec describes one job of an InstanceSpec.
type JobSpec struct {
	Arrival int64    `yaml:"arrival,omitempty"`
	Due     int64    `yaml:"due,omitempty"`
	Ops     []OpSpec `yaml:"ops"`
}

// OpSpec describes one operation of a JobSpec.
type OpSpec struct {
	Machine int   `yaml:"machine"`
	Time    int64 `yaml:"time"`
}

// ParseInstanceSpec decodes YAML with strict field checking: unknown keys are errors.
func ParseInstanceSpec(data []byte) (*InstanceSpec, error) {
	var spec InstanceSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("%w: parse instance spec: %v", sim.ErrMalformedInput, err)
	}
	return &spec, nil
}

// LoadInstanceSpec reads and decodes an instance spec file.
func LoadInstanceSpec(path string) (*InstanceSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read instance spec: %w", err)
	}
	spec, err := ParseInstanceSpec(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return spec, nil
}

// ToConfig converts s to a validated sim.InstanceConfig.
func (s *InstanceSpec) ToConfig() (sim.InstanceConfig, error) {
	cfg := sim.InstanceConfig{Machines: s.Machines, Jobs: make([]sim.JobConfig, len(s.Jobs))}
	for i, js := range s.Jobs {
		job := sim.JobConfig{Arrival: js.Arrival, DueDate: js.Due, Ops: make([]sim.OpConfig, len(js.Ops))}
		for k, op := range js.Ops {
			job.Ops[k] = sim.OpConfig{MachineID: op.Machine, ProcessTime: op.Time}
		}
		cfg.Jobs[i] = job
	}
	if err := cfg.Validate(); err != nil {
		return sim.InstanceConfig{}, err
	}
	return cfg, nil
}
