package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJob_OpsInheritArrival(t *testing.T) {
	job := newJob(3, JobConfig{Arrival: 7, DueDate: 20, Ops: []OpConfig{{MachineID: 1, ProcessTime: 4}, {MachineID: 0, ProcessTime: 2}}})

	require.Equal(t, 2, job.NumOps())
	assert.Equal(t, 3, job.ID)
	assert.Equal(t, int64(20), job.DueDate)
	for k, op := range job.Operations() {
		assert.Equal(t, 3, op.JobID)
		assert.Equal(t, k, op.OpID)
		assert.Equal(t, int64(7), op.AvailableTime)
	}
}

func TestJob_AdvanceThroughOperations(t *testing.T) {
	// GIVEN a job with two operations
	job := newJob(0, JobConfig{Ops: []OpConfig{{MachineID: 0, ProcessTime: 3}, {MachineID: 1, ProcessTime: 2}}})
	assert.Equal(t, 2, job.RemainingOps())
	assert.Equal(t, int64(5), job.RemainingWork())

	// WHEN advanced once
	more := job.Advance()

	// THEN one operation remains and it is the current one
	assert.True(t, more)
	assert.False(t, job.IsDone())
	op, err := job.CurrentOp()
	require.NoError(t, err)
	assert.Equal(t, 1, op.OpID)
	assert.Equal(t, int64(2), job.RemainingWork())

	// WHEN advanced past the last operation
	assert.False(t, job.Advance())

	// THEN the job is done and the cursor stops at NumOps()
	assert.True(t, job.IsDone())
	assert.Equal(t, 2, job.CurrentOpIndex())
	assert.False(t, job.Advance())
	assert.Equal(t, 2, job.CurrentOpIndex())
}

func TestJob_CurrentOp_OnDoneJob_InvalidState(t *testing.T) {
	job := newJob(0, JobConfig{})

	op, err := job.CurrentOp()

	assert.Zero(t, op)
	assert.ErrorIs(t, err, ErrNoMoreOperations)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestJob_ZeroOperations_ImmediatelyDone(t *testing.T) {
	job := newJob(0, JobConfig{Arrival: 4})

	assert.True(t, job.IsDone())
	completion, ok := job.CompletionTime()
	assert.True(t, ok)
	assert.Equal(t, int64(4), completion)
}

func TestJob_CompletionTime_UnknownWhileRunning(t *testing.T) {
	job := newJob(0, JobConfig{Ops: []OpConfig{{MachineID: 0, ProcessTime: 1}}})

	_, ok := job.CompletionTime()
	assert.False(t, ok)
}

func TestJob_Operations_ReturnsCopies(t *testing.T) {
	job := newJob(0, JobConfig{Ops: []OpConfig{{MachineID: 0, ProcessTime: 3}}})

	ops := job.Operations()
	ops[0].AvailableTime = 50
	current, err := job.CurrentOp()
	require.NoError(t, err)
	current.ProcessTime = 99

	assert.Equal(t, int64(0), job.Operations()[0].AvailableTime)
	assert.Equal(t, int64(3), job.RemainingWork())
}
