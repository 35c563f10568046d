package workload

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/jobshop-sim/jobshop-sim/sim"
)

// GeneratorConfig parameterizes random instance generation.
type GeneratorConfig struct {
	Jobs             int     `yaml:"jobs"`               // jobs present at tick 0
	Machines         int     `yaml:"machines"`           // machine count
	OpsPerJob        int     `yaml:"ops_per_job"`        // 0 = one op per machine
	MinProcessTime   int64   `yaml:"min_process_time"`   // inclusive; 0 defaults to 1
	MaxProcessTime   int64   `yaml:"max_process_time"`   // inclusive
	DynamicJobs      int     `yaml:"dynamic_jobs"`       // extra jobs arriving after tick 0
	MeanInterArrival float64 `yaml:"mean_inter_arrival"` // mean ticks between dynamic arrivals
	DueDateFactor    float64 `yaml:"due_date_factor"`    // due = arrival + factor*work; 0 = no due dates
	Seed             int64   `yaml:"seed"`
}

// withDefaults fills zero-valued optional fields.
func (c GeneratorConfig) withDefaults() GeneratorConfig {
	if c.OpsPerJob == 0 {
		c.OpsPerJob = c.Machines
	}
	if c.MinProcessTime == 0 {
		c.MinProcessTime = 1
	}
	return c
}

// Validate checks that the configuration can generate an instance.
func (c GeneratorConfig) Validate() error {
	c = c.withDefaults()
	switch {
	case c.Jobs < 0 || c.DynamicJobs < 0:
		return fmt.Errorf("%w: job counts must be non-negative (jobs=%d, dynamic=%d)", sim.ErrInvalidArgument, c.Jobs, c.DynamicJobs)
	case c.Machines <= 0:
		return fmt.Errorf("%w: machines must be positive, got %d", sim.ErrInvalidArgument, c.Machines)
	case c.OpsPerJob < 0:
		return fmt.Errorf("%w: ops per job must be non-negative, got %d", sim.ErrInvalidArgument, c.OpsPerJob)
	case c.MinProcessTime < 0 || c.MaxProcessTime < c.MinProcessTime:
		return fmt.Errorf("%w: process time range [%d, %d] is empty", sim.ErrInvalidArgument, c.MinProcessTime, c.MaxProcessTime)
	case c.DynamicJobs > 0 && !(c.MeanInterArrival > 0):
		return fmt.Errorf("%w: mean inter-arrival must be positive with dynamic jobs", sim.ErrInvalidArgument)
	case c.DueDateFactor < 0 || math.IsNaN(c.DueDateFactor):
		return fmt.Errorf("%w: due date factor must be non-negative", sim.ErrInvalidArgument)
	}
	return nil
}

// Generate builds a random instance. Deterministic given the same config and seed.
//
// When OpsPerJob <= Machines each job visits distinct machines in random order
// (with OpsPerJob == Machines this is the classic JSP permutation); otherwise
// machines are drawn uniformly with repetition. Dynamic jobs follow a Poisson
// arrival process.
func Generate(cfg GeneratorConfig) (sim.InstanceConfig, error) {
	if err := cfg.Validate(); err != nil {
		return sim.InstanceConfig{}, fmt.Errorf("invalid generator config: %w", err)
	}
	cfg = cfg.withDefaults()

	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(cfg.Seed))
	workloadRNG := rng.ForSubsystem(sim.SubsystemWorkload)
	arrivalRNG := rng.ForSubsystem(sim.SubsystemArrival)
	sampler := NewPoissonSampler(cfg.MeanInterArrival)

	out := sim.InstanceConfig{Machines: cfg.Machines}
	var arrival int64
	for i := 0; i < cfg.Jobs+cfg.DynamicJobs; i++ {
		if i >= cfg.Jobs {
			arrival += sampler.SampleIAT(arrivalRNG)
		}
		job := sim.JobConfig{Arrival: arrival, Ops: generateOps(cfg, workloadRNG)}
		if cfg.DueDateFactor > 0 {
			job.DueDate = arrival + int64(math.Round(cfg.DueDateFactor*float64(job.TotalWork())))
		}
		out.Jobs = append(out.Jobs, job)
	}
	logrus.Debugf("Generated instance: %d jobs (%d dynamic), %d machines, seed=%d",
		len(out.Jobs), cfg.DynamicJobs, cfg.Machines, cfg.Seed)
	return out, nil
}

func generateOps(cfg GeneratorConfig, rng *rand.Rand) []sim.OpConfig {
	ops := make([]sim.OpConfig, cfg.OpsPerJob)
	var route []int
	if cfg.OpsPerJob <= cfg.Machines {
		route = rng.Perm(cfg.Machines)[:cfg.OpsPerJob]
	}
	span := cfg.MaxProcessTime - cfg.MinProcessTime + 1
	for k := range ops {
		var machine int
		if route != nil {
			machine = route[k]
		} else {
			machine = rng.Intn(cfg.Machines)
		}
		ops[k] = sim.OpConfig{MachineID: machine, ProcessTime: cfg.MinProcessTime + rng.Int63n(span)}
	}
	return ops
}
