// Package trace provides the append-only assignment history of a job-shop episode,
// together with summaries and consistency checks over it.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// AssignmentRecord captures one committed assignment. Records are immutable once
// appended; Order is the causal position of the decision, which need not match
// StartTime order across machines.
type AssignmentRecord struct {
	Order       int   `json:"order" yaml:"order"`
	JobID       int   `json:"job_id" yaml:"job_id"`
	OpID        int   `json:"op_id" yaml:"op_id"`
	MachineID   int   `json:"machine_id" yaml:"machine_id"`
	StartTime   int64 `json:"start_time" yaml:"start_time"`
	ProcessTime int64 `json:"process_time" yaml:"process_time"`
	FinishTime  int64 `json:"finish_time" yaml:"finish_time"`
}

// Gap is an idle interval [Start, End) on a machine.
type Gap struct {
	MachineID int   `json:"machine_id" yaml:"machine_id"`
	Start     int64 `json:"start" yaml:"start"`
	End       int64 `json:"end" yaml:"end"`
}

// Length returns End - Start.
func (g Gap) Length() int64 {
	return g.End - g.Start
}
