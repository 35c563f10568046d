package policy

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobshop-sim/jobshop-sim/sim"
	"github.com/jobshop-sim/jobshop-sim/sim/trace"
	"github.com/jobshop-sim/jobshop-sim/sim/workload"
)

// sampleChoices: machine 2 lists jobs out of order on purpose.
func sampleChoices() []sim.MachineChoice {
	return []sim.MachineChoice{
		{MachineID: 2, Candidates: []sim.Candidate{
			{JobID: 4, MachineID: 2, ProcessTime: 9, ArrivalTime: 0, RemainingOps: 1, RemainingWork: 9},
			{JobID: 1, MachineID: 2, ProcessTime: 2, ArrivalTime: 5, RemainingOps: 3, RemainingWork: 12, DueDate: 40},
		}},
		{MachineID: 0, Candidates: []sim.Candidate{
			{JobID: 0, MachineID: 0, ProcessTime: 5, ArrivalTime: 3, RemainingOps: 2, RemainingWork: 20},
			{JobID: 3, MachineID: 0, ProcessTime: 2, ArrivalTime: 0, RemainingOps: 4, RemainingWork: 8, DueDate: 30},
		}},
	}
}

func TestPriorityRules_PickExpectedCandidate(t *testing.T) {
	tests := []struct {
		rule    string
		wantJob int
	}{
		{FIFO, 3}, // arrival 0 on machine 0 beats arrival 0 on machine 2
		{SPT, 3},  // process 2 on machine 0 beats process 2 on machine 2
		{LPT, 4},
		{MWKR, 0},
		{MOR, 3},
		{EDD, 3},
	}
	for _, tt := range tests {
		t.Run(tt.rule, func(t *testing.T) {
			d, err := New(tt.rule, nil)
			require.NoError(t, err)

			c, err := d.Choose(sampleChoices(), 0)

			require.NoError(t, err)
			assert.Equal(t, tt.wantJob, c.JobID)
		})
	}
}

func TestPriorityRule_TieBreaksByMachineThenJob(t *testing.T) {
	choices := []sim.MachineChoice{
		{MachineID: 1, Candidates: []sim.Candidate{{JobID: 0, MachineID: 1, ProcessTime: 4}}},
		{MachineID: 0, Candidates: []sim.Candidate{{JobID: 7, MachineID: 0, ProcessTime: 4}, {JobID: 2, MachineID: 0, ProcessTime: 4}}},
	}
	d, err := New(SPT, nil)
	require.NoError(t, err)

	c, err := d.Choose(choices, 0)

	require.NoError(t, err)
	assert.Equal(t, 0, c.MachineID)
	assert.Equal(t, 2, c.JobID)
}

func TestChoose_DoesNotReorderCallerSlices(t *testing.T) {
	choices := sampleChoices()
	d, err := New(FIFO, nil)
	require.NoError(t, err)

	_, err = d.Choose(choices, 0)

	require.NoError(t, err)
	assert.Equal(t, sampleChoices(), choices)
}

func TestChoose_NoCandidates_InvalidArgument(t *testing.T) {
	for _, name := range Names() {
		d, err := New(name, rand.New(rand.NewSource(1)))
		require.NoError(t, err)

		_, err = d.Choose(nil, 0)

		assert.ErrorIs(t, err, sim.ErrInvalidArgument, name)
	}
}

func TestRandomRule_DeterministicForSeed(t *testing.T) {
	pick := func() []int {
		d, err := New(Random, rand.New(rand.NewSource(17)))
		require.NoError(t, err)
		var jobs []int
		for i := 0; i < 20; i++ {
			c, err := d.Choose(sampleChoices(), 0)
			require.NoError(t, err)
			jobs = append(jobs, c.JobID)
		}
		return jobs
	}

	assert.Equal(t, pick(), pick())
}

func TestNew_UnknownOrMisconfigured(t *testing.T) {
	_, err := New("lifo", nil)
	assert.ErrorIs(t, err, sim.ErrInvalidArgument)

	_, err = New(Random, nil)
	assert.ErrorIs(t, err, sim.ErrInvalidArgument)
}

func TestNames_AndIsValid(t *testing.T) {
	assert.Equal(t, []string{EDD, FIFO, LPT, MOR, MWKR, Random, SPT}, Names())
	for _, name := range Names() {
		assert.True(t, IsValid(name))
	}
	assert.False(t, IsValid(""))
}

func TestRules_DriveGeneratedEpisodesToValidSchedules(t *testing.T) {
	cfg, err := workload.Generate(workload.GeneratorConfig{Jobs: 8, Machines: 4, MaxProcessTime: 15, DynamicJobs: 4, MeanInterArrival: 6, DueDateFactor: 1.3, Seed: 21})
	require.NoError(t, err)

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			inst, err := sim.NewInstance(cfg)
			require.NoError(t, err)
			d, err := New(name, rand.New(rand.NewSource(3)))
			require.NoError(t, err)

			require.NoError(t, sim.RunEpisode(inst, d))

			assert.True(t, inst.Done())
			assert.Len(t, inst.History(), 48)
			assert.NoError(t, trace.CheckConsistency(inst.History()))
		})
	}
}
