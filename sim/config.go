package sim

import "fmt"

// Upper bounds on instance size. Inputs beyond them are rejected before any
// per-machine or per-job state is allocated.
const (
	MaxMachines = 1 << 16
	MaxJobs     = 1 << 20
)

// OpConfig describes one operation of a job: the machine it must run on and its duration.
type OpConfig struct {
	MachineID   int   `json:"machine_id" yaml:"machine_id"`
	ProcessTime int64 `json:"process_time" yaml:"process_time"`
}

// JobConfig describes a job before it enters the simulation.
type JobConfig struct {
	Arrival int64      `json:"arrival" yaml:"arrival"`             // tick at which op 0 becomes available
	DueDate int64      `json:"due_date,omitempty" yaml:"due_date"` // 0 = no due date
	Ops     []OpConfig `json:"ops" yaml:"ops"`
}

// TotalWork returns the sum of process times over all operations.
func (c JobConfig) TotalWork() int64 {
	var total int64
	for _, op := range c.Ops {
		total += op.ProcessTime
	}
	return total
}

// InstanceConfig is the full input of one episode: the machine count and the jobs
// present at reset. Job ids are assigned by position.
type InstanceConfig struct {
	Machines int         `json:"machines" yaml:"machines"`
	Jobs     []JobConfig `json:"jobs" yaml:"jobs"`
}

// Validate checks counts and ranges. All failures wrap ErrMalformedInput.
func (c InstanceConfig) Validate() error {
	if c.Machines < 0 || c.Machines > MaxMachines {
		return fmt.Errorf("%w: machine count %d outside [0, %d]", ErrMalformedInput, c.Machines, MaxMachines)
	}
	if len(c.Jobs) > MaxJobs {
		return fmt.Errorf("%w: %d jobs exceeds the limit of %d", ErrMalformedInput, len(c.Jobs), MaxJobs)
	}
	for i, job := range c.Jobs {
		if err := validateJob(job, c.Machines); err != nil {
			return fmt.Errorf("job %d: %w", i, err)
		}
	}
	return nil
}

func validateJob(job JobConfig, machines int) error {
	if job.Arrival < 0 {
		return fmt.Errorf("%w: negative arrival time %d", ErrMalformedInput, job.Arrival)
	}
	if job.DueDate < 0 {
		return fmt.Errorf("%w: negative due date %d", ErrMalformedInput, job.DueDate)
	}
	for k, op := range job.Ops {
		if op.MachineID < 0 || op.MachineID >= machines {
			return fmt.Errorf("%w: op %d references machine %d, instance has %d machines",
				ErrMalformedInput, k, op.MachineID, machines)
		}
		if op.ProcessTime < 0 {
			return fmt.Errorf("%w: op %d has negative process time %d", ErrMalformedInput, k, op.ProcessTime)
		}
	}
	return nil
}

// clone deep-copies the config so later edits by the caller cannot leak into Reset.
func (c InstanceConfig) clone() InstanceConfig {
	out := InstanceConfig{Machines: c.Machines, Jobs: make([]JobConfig, len(c.Jobs))}
	for i, job := range c.Jobs {
		out.Jobs[i] = job
		out.Jobs[i].Ops = append([]OpConfig(nil), job.Ops...)
	}
	return out
}
