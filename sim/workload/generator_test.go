package workload

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobshop-sim/jobshop-sim/sim"
)

func TestGenerate_ClassicJSP_EachJobVisitsEveryMachineOnce(t *testing.T) {
	// GIVEN a 6x4 configuration with default ops per job
	cfg := GeneratorConfig{Jobs: 6, Machines: 4, MaxProcessTime: 9, Seed: 3}

	// WHEN generated
	inst, err := Generate(cfg)

	// THEN every job is a permutation of the machines with times in range
	require.NoError(t, err)
	assert.Equal(t, 4, inst.Machines)
	require.Len(t, inst.Jobs, 6)
	for i, job := range inst.Jobs {
		require.Len(t, job.Ops, 4, "job %d", i)
		seen := map[int]bool{}
		for _, op := range job.Ops {
			seen[op.MachineID] = true
			assert.GreaterOrEqual(t, op.ProcessTime, int64(1))
			assert.LessOrEqual(t, op.ProcessTime, int64(9))
		}
		assert.Len(t, seen, 4, "job %d", i)
		assert.Equal(t, int64(0), job.Arrival)
		assert.Equal(t, int64(0), job.DueDate)
	}
	assert.NoError(t, inst.Validate())
}

func TestGenerate_SameSeed_IdenticalInstances(t *testing.T) {
	cfg := GeneratorConfig{Jobs: 5, Machines: 3, MaxProcessTime: 20, DynamicJobs: 4, MeanInterArrival: 10, DueDateFactor: 1.5, Seed: 99}

	a, err := Generate(cfg)
	require.NoError(t, err)
	b, err := Generate(cfg)
	require.NoError(t, err)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed produced different instances (-a +b):\n%s", diff)
	}

	cfg.Seed = 100
	c, err := Generate(cfg)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestGenerate_DynamicJobs_ArriveLaterInOrder(t *testing.T) {
	cfg := GeneratorConfig{Jobs: 2, Machines: 3, MaxProcessTime: 5, DynamicJobs: 5, MeanInterArrival: 8, Seed: 1}

	inst, err := Generate(cfg)

	require.NoError(t, err)
	require.Len(t, inst.Jobs, 7)
	assert.Equal(t, int64(0), inst.Jobs[0].Arrival)
	assert.Equal(t, int64(0), inst.Jobs[1].Arrival)
	for i := 2; i < len(inst.Jobs); i++ {
		assert.Greater(t, inst.Jobs[i].Arrival, inst.Jobs[i-1].Arrival, "job %d", i)
	}
}

func TestGenerate_DueDates_ScaleWithWork(t *testing.T) {
	cfg := GeneratorConfig{Jobs: 4, Machines: 3, MaxProcessTime: 10, DueDateFactor: 2, Seed: 5}

	inst, err := Generate(cfg)

	require.NoError(t, err)
	for _, job := range inst.Jobs {
		assert.Equal(t, job.Arrival+2*job.TotalWork(), job.DueDate)
	}
}

func TestGenerate_MoreOpsThanMachines_AllowsRevisits(t *testing.T) {
	cfg := GeneratorConfig{Jobs: 3, Machines: 2, OpsPerJob: 5, MinProcessTime: 2, MaxProcessTime: 2, Seed: 8}

	inst, err := Generate(cfg)

	require.NoError(t, err)
	for _, job := range inst.Jobs {
		require.Len(t, job.Ops, 5)
		for _, op := range job.Ops {
			assert.Less(t, op.MachineID, 2)
			assert.Equal(t, int64(2), op.ProcessTime)
		}
	}
}

func TestGenerate_GeneratedInstanceRunsToCompletion(t *testing.T) {
	cfg, err := Generate(GeneratorConfig{Jobs: 10, Machines: 5, MaxProcessTime: 30, DynamicJobs: 5, MeanInterArrival: 15, Seed: 11})
	require.NoError(t, err)
	inst, err := sim.NewInstance(cfg)
	require.NoError(t, err)

	for !inst.Done() {
		choices, err := inst.EligibleAssignments()
		require.NoError(t, err)
		if len(choices) > 0 {
			c := choices[0].Candidates[0]
			require.NoError(t, inst.Assign(c.JobID, c.OpID))
		}
	}

	assert.Len(t, inst.History(), 75)
}

func TestGeneratorConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		cfg  GeneratorConfig
	}{
		{"no machines", GeneratorConfig{Jobs: 1, MaxProcessTime: 3}},
		{"negative jobs", GeneratorConfig{Jobs: -1, Machines: 2, MaxProcessTime: 3}},
		{"empty time range", GeneratorConfig{Jobs: 1, Machines: 2, MinProcessTime: 5, MaxProcessTime: 3}},
		{"dynamic without rate", GeneratorConfig{Jobs: 1, Machines: 2, MaxProcessTime: 3, DynamicJobs: 2}},
		{"negative due factor", GeneratorConfig{Jobs: 1, Machines: 2, MaxProcessTime: 3, DueDateFactor: -1}},
		{"negative ops", GeneratorConfig{Jobs: 1, Machines: 2, MaxProcessTime: 3, OpsPerJob: -2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.cfg.Validate(), sim.ErrInvalidArgument)
			_, err := Generate(tt.cfg)
			assert.ErrorIs(t, err, sim.ErrInvalidArgument)
		})
	}
}

func TestGenerate_ZeroJobs_EmptyInstance(t *testing.T) {
	inst, err := Generate(GeneratorConfig{Machines: 3, MaxProcessTime: 4})

	require.NoError(t, err)
	assert.Empty(t, inst.Jobs)
	assert.Equal(t, 3, inst.Machines)
}
