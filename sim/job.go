// Defines Operation and Job, the units of work moved through the simulation.
// A job walks its operations strictly in order; only the current one can be scheduled.

package sim

import "fmt"

// Operation is a single processing step of a job, bound to one machine.
// AvailableTime is the earliest tick the operation may start: the job's arrival
// for op 0, and the finish time of the preceding operation otherwise.
type Operation struct {
	JobID         int
	OpID          int
	MachineID     int
	ProcessTime   int64
	AvailableTime int64
}

func (op *Operation) String() string {
	return fmt.Sprintf("Op{job: %d, op: %d, machine: %d, process: %d, available: %d}",
		op.JobID, op.OpID, op.MachineID, op.ProcessTime, op.AvailableTime)
}

// Job is an ordered sequence of operations with a monotonically advancing cursor.
type Job struct {
	ID          int
	ArrivalTime int64
	DueDate     int64 // 0 = no due date

	ops            []*Operation
	currentOp      int
	completionTime int64 // finish time of the last operation, valid once done
}

// newJob instantiates a job from its configuration. Op 0 becomes available at arrival;
// later ops stay unavailable until their predecessor is scheduled.
func newJob(id int, cfg JobConfig) *Job {
	job := &Job{
		ID:          id,
		ArrivalTime: cfg.Arrival,
		DueDate:     cfg.DueDate,
		ops:         make([]*Operation, len(cfg.Ops)),
	}
	for k, oc := range cfg.Ops {
		job.ops[k] = &Operation{
			JobID:         id,
			OpID:          k,
			MachineID:     oc.MachineID,
			ProcessTime:   oc.ProcessTime,
			AvailableTime: cfg.Arrival,
		}
	}
	if len(cfg.Ops) == 0 {
		job.completionTime = cfg.Arrival
	}
	return job
}

// Operations returns a snapshot of the job's operations in order.
func (j *Job) Operations() []Operation {
	out := make([]Operation, len(j.ops))
	for k, op := range j.ops {
		out[k] = *op
	}
	return out
}

// NumOps returns the total number of operations, scheduled or not.
func (j *Job) NumOps() int {
	return len(j.ops)
}

// CurrentOpIndex returns the index of the next operation to schedule.
// Equals NumOps() once the job is done.
func (j *Job) CurrentOpIndex() int {
	return j.currentOp
}

// CurrentOp returns a copy of the next operation to schedule.
// Returns ErrNoMoreOperations if the job is done; callers should check IsDone first.
func (j *Job) CurrentOp() (Operation, error) {
	op, err := j.current()
	if err != nil {
		return Operation{}, err
	}
	return *op, nil
}

// current returns the live current operation; only the owning Instance mutates it.
func (j *Job) current() (*Operation, error) {
	if j.IsDone() {
		return nil, fmt.Errorf("job %d: %w", j.ID, ErrNoMoreOperations)
	}
	return j.ops[j.currentOp], nil
}

// Advance moves the cursor to the next operation and reports whether any remain.
// Calling Advance on a done job is a no-op returning false.
func (j *Job) Advance() bool {
	if j.IsDone() {
		return false
	}
	j.currentOp++
	return !j.IsDone()
}

// IsDone reports whether every operation has been scheduled.
func (j *Job) IsDone() bool {
	return j.currentOp >= len(j.ops)
}

// RemainingOps returns the number of unscheduled operations, including the current one.
func (j *Job) RemainingOps() int {
	return len(j.ops) - j.currentOp
}

// RemainingWork returns the summed process time of unscheduled operations.
func (j *Job) RemainingWork() int64 {
	var total int64
	for _, op := range j.ops[j.currentOp:] {
		total += op.ProcessTime
	}
	return total
}

// CompletionTime returns the finish time of the job's last operation.
// The second result is false while the job still has operations left.
func (j *Job) CompletionTime() (int64, bool) {
	if !j.IsDone() {
		return 0, false
	}
	return j.completionTime, true
}
