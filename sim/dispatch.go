package sim

// dispatchAction is what EligibleAssignments does with one machine in one pass.
type dispatchAction int

const (
	// actionIdle: no job can start on the machine at the current clock.
	actionIdle dispatchAction = iota
	// actionAutoCommit: exactly one job can start, so it is assigned without asking the driver.
	actionAutoCommit
	// actionSurface: several jobs compete, so the machine becomes a choice point.
	actionSurface
)

func (a dispatchAction) String() string {
	switch a {
	case actionIdle:
		return "idle"
	case actionAutoCommit:
		return "auto-commit"
	case actionSurface:
		return "surface"
	default:
		return "unknown"
	}
}

// dispatchTable maps the number of eligible jobs on a machine, capped at 2, to an action.
var dispatchTable = [...]dispatchAction{
	0: actionIdle,
	1: actionAutoCommit,
	2: actionSurface,
}

// dispatchActionFor looks up the action for n eligible jobs.
func dispatchActionFor(n int) dispatchAction {
	return dispatchTable[min(max(n, 0), len(dispatchTable)-1)]
}

// Candidate is one eligible (job, operation, machine) triple, together with the job
// features dispatching rules and agents rank on.
type Candidate struct {
	JobID         int   `json:"job_id"`
	OpID          int   `json:"op_id"`
	MachineID     int   `json:"machine_id"`
	ProcessTime   int64 `json:"process_time"`
	ArrivalTime   int64 `json:"arrival_time"`
	DueDate       int64 `json:"due_date,omitempty"`
	RemainingOps  int   `json:"remaining_ops"`  // includes this operation
	RemainingWork int64 `json:"remaining_work"` // includes this operation
}

// MachineChoice is a choice point: a free machine with two or more eligible jobs.
// Candidates are ordered by increasing job id.
type MachineChoice struct {
	MachineID  int         `json:"machine_id"`
	Candidates []Candidate `json:"candidates"`
}

func newCandidate(job *Job, op *Operation) Candidate {
	return Candidate{
		JobID:         job.ID,
		OpID:          op.OpID,
		MachineID:     op.MachineID,
		ProcessTime:   op.ProcessTime,
		ArrivalTime:   job.ArrivalTime,
		DueDate:       job.DueDate,
		RemainingOps:  job.RemainingOps(),
		RemainingWork: job.RemainingWork(),
	}
}
