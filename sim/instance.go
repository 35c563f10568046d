package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/jobshop-sim/jobshop-sim/sim/trace"
)

// Instance is one job-shop episode: it owns the jobs, the machines, the simulation
// clock, the pending time points and the assignment history.
//
// State transitions:
//
//	Idle ──advance clock──▶ Ready ──Assign──▶ Assigned ──▶ Idle/Ready ... ──▶ AllJobsDone
//
// EligibleAssignments auto-commits machines with a single eligible job and advances
// the clock until at least one machine has two or more eligible jobs (a choice point)
// or every job is done.
type Instance struct {
	config   InstanceConfig
	jobs     []*Job
	machines []*Machine
	clock    int64
	times    *TimeQueue
	history  *trace.History
}

// NewInstance validates cfg and returns an instance already reset to tick 0.
func NewInstance(cfg InstanceConfig) (*Instance, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	inst := &Instance{config: cfg.clone()}
	inst.Reset()
	return inst, nil
}

// Reset discards all episode state and rebuilds jobs and machines from the
// configuration passed to NewInstance. Jobs added with InsertJob are dropped.
func (inst *Instance) Reset() {
	inst.machines = make([]*Machine, inst.config.Machines)
	for id := range inst.machines {
		inst.machines[id] = NewMachine(id)
	}
	inst.jobs = make([]*Job, 0, len(inst.config.Jobs))
	inst.clock = 0
	inst.times = NewTimeQueue()
	inst.history = trace.NewHistory()
	for _, jc := range inst.config.Jobs {
		inst.addJob(jc)
	}
	logrus.Debugf("[tick %07d] Reset: %d jobs, %d machines", inst.clock, len(inst.jobs), len(inst.machines))
}

func (inst *Instance) addJob(cfg JobConfig) int {
	id := len(inst.jobs)
	inst.jobs = append(inst.jobs, newJob(id, cfg))
	inst.times.Register(cfg.Arrival)
	return id
}

// InsertJob adds a job to the running episode and returns its id.
// The arrival must not lie in the simulated past.
func (inst *Instance) InsertJob(cfg JobConfig) (int, error) {
	if err := validateJob(cfg, len(inst.machines)); err != nil {
		return 0, fmt.Errorf("insert job: %w", err)
	}
	if cfg.Arrival < inst.clock {
		return 0, fmt.Errorf("%w: job arrival %d is before current tick %d",
			ErrInvalidArgument, cfg.Arrival, inst.clock)
	}
	cfg.Ops = append([]OpConfig(nil), cfg.Ops...)
	id := inst.addJob(cfg)
	logrus.Debugf("[tick %07d] Inserted job %d arriving at %d with %d ops", inst.clock, id, cfg.Arrival, len(cfg.Ops))
	return id, nil
}

// Clock returns the current simulation time.
func (inst *Instance) Clock() int64 {
	return inst.clock
}

// Jobs returns snapshots of the jobs ordered by id. Changing them does not
// affect the instance.
func (inst *Instance) Jobs() []Job {
	out := make([]Job, len(inst.jobs))
	for i, job := range inst.jobs {
		out[i] = *job
	}
	return out
}

// Job returns a snapshot of the job with the given id.
func (inst *Instance) Job(id int) (Job, error) {
	job, err := inst.lookupJob(id)
	if err != nil {
		return Job{}, err
	}
	return *job, nil
}

func (inst *Instance) lookupJob(id int) (*Job, error) {
	if id < 0 || id >= len(inst.jobs) {
		return nil, fmt.Errorf("%w: unknown job %d", ErrInvalidArgument, id)
	}
	return inst.jobs[id], nil
}

// Machines returns snapshots of the machines ordered by id.
func (inst *Instance) Machines() []Machine {
	out := make([]Machine, len(inst.machines))
	for i, m := range inst.machines {
		out[i] = *m
	}
	return out
}

// History returns a copy of the assignment records in commit order.
func (inst *Instance) History() []trace.AssignmentRecord {
	return inst.history.Records()
}

// PendingTimePoints returns the number of registered future time points.
func (inst *Instance) PendingTimePoints() int {
	return inst.times.Len()
}

// Done reports whether every job has scheduled all of its operations.
// An instance without jobs is done immediately.
func (inst *Instance) Done() bool {
	for _, job := range inst.jobs {
		if !job.IsDone() {
			return false
		}
	}
	return true
}

// Makespan returns the latest machine availability time, i.e. the completion
// time of everything committed so far.
func (inst *Instance) Makespan() int64 {
	var makespan int64
	for _, m := range inst.machines {
		makespan = max(makespan, m.NextAvailableTime())
	}
	return makespan
}

// EligibleAssignments returns the choice points at the earliest tick that has one.
//
// Machines are evaluated in increasing id order and jobs in increasing id order.
// A machine with a single eligible job is committed on the spot; the loop keeps
// advancing the clock through the pending time points until some machine has two
// or more eligible jobs. The returned choices then wait for Assign. On a done
// instance (including one finished by auto-commits in this call) it returns nil.
func (inst *Instance) EligibleAssignments() ([]MachineChoice, error) {
	for !inst.Done() {
		choices, err := inst.dispatchPass()
		if err != nil {
			return nil, err
		}
		if len(choices) > 0 {
			return choices, nil
		}
		if inst.Done() {
			break
		}
		if !inst.advanceClock() {
			return nil, fmt.Errorf("%w: %d unfinished jobs but no pending time points at tick %d",
				ErrInvalidState, inst.unfinishedJobs(), inst.clock)
		}
	}
	return nil, nil
}

// dispatchPass evaluates every machine once at the current clock.
func (inst *Instance) dispatchPass() ([]MachineChoice, error) {
	var choices []MachineChoice
	for _, m := range inst.machines {
		candidates := inst.candidatesFor(m)
		switch dispatchActionFor(len(candidates)) {
		case actionIdle:
		case actionAutoCommit:
			c := candidates[0]
			logrus.Debugf("[tick %07d] Auto-commit job %d op %d on machine %d", inst.clock, c.JobID, c.OpID, m.ID)
			if err := inst.commit(inst.jobs[c.JobID]); err != nil {
				return nil, err
			}
		case actionSurface:
			choices = append(choices, MachineChoice{MachineID: m.ID, Candidates: candidates})
		}
	}
	return choices, nil
}

// candidatesFor lists the jobs whose current operation can start on m at the current clock.
func (inst *Instance) candidatesFor(m *Machine) []Candidate {
	if m.NextAvailableTime() > inst.clock {
		return nil
	}
	var candidates []Candidate
	for _, job := range inst.jobs {
		if job.IsDone() {
			continue
		}
		op := job.ops[job.CurrentOpIndex()]
		if op.MachineID == m.ID && op.AvailableTime <= inst.clock {
			candidates = append(candidates, newCandidate(job, op))
		}
	}
	return candidates
}

// advanceClock moves the clock to the earliest pending time point and drops every
// other time point at or before it. Returns false if nothing is pending.
func (inst *Instance) advanceClock() bool {
	next, ok := inst.times.PopNext()
	if !ok {
		return false
	}
	inst.clock = max(inst.clock, next)
	inst.times.PopThrough(inst.clock)
	logrus.Debugf("[tick %07d] Advanced clock", inst.clock)
	return true
}

// Assign schedules the current operation of jobID to start at the current clock.
// opID must equal the job's current operation index, and the operation must be
// eligible right now. On error nothing is mutated.
func (inst *Instance) Assign(jobID, opID int) error {
	if inst.Done() {
		return fmt.Errorf("%w: all jobs are done", ErrInvalidState)
	}
	job, err := inst.lookupJob(jobID)
	if err != nil {
		return err
	}
	op, err := job.current()
	if err != nil {
		return err
	}
	if opID != job.CurrentOpIndex() {
		return fmt.Errorf("%w: job %d is at op %d, got op %d", ErrInvalidArgument, jobID, job.CurrentOpIndex(), opID)
	}
	if op.AvailableTime > inst.clock {
		return fmt.Errorf("%w: op %d of job %d is not available until %d (now %d)",
			ErrInvalidArgument, opID, jobID, op.AvailableTime, inst.clock)
	}
	if m := inst.machines[op.MachineID]; m.NextAvailableTime() > inst.clock {
		return fmt.Errorf("%w: machine %d is busy until %d (now %d)",
			ErrInvalidArgument, m.ID, m.NextAvailableTime(), inst.clock)
	}
	return inst.commit(job)
}

// commit starts job's current operation at the current clock. Callers have
// already established eligibility.
func (inst *Instance) commit(job *Job) error {
	op, err := job.current()
	if err != nil {
		return err
	}
	finish, err := inst.machines[op.MachineID].Process(op, inst.clock)
	if err != nil {
		return err
	}
	if job.Advance() {
		job.ops[job.CurrentOpIndex()].AvailableTime = finish
	} else {
		job.completionTime = finish
	}
	inst.times.Register(finish)
	inst.history.Append(trace.AssignmentRecord{
		JobID:       op.JobID,
		OpID:        op.OpID,
		MachineID:   op.MachineID,
		StartTime:   inst.clock,
		ProcessTime: op.ProcessTime,
		FinishTime:  finish,
	})
	logrus.Tracef("[tick %07d] Assigned job %d op %d to machine %d, finishes at %d",
		inst.clock, op.JobID, op.OpID, op.MachineID, finish)
	return nil
}

func (inst *Instance) unfinishedJobs() int {
	n := 0
	for _, job := range inst.jobs {
		if !job.IsDone() {
			n++
		}
	}
	return n
}

func (inst *Instance) totalOps() int {
	n := 0
	for _, job := range inst.jobs {
		n += job.NumOps()
	}
	return n
}
