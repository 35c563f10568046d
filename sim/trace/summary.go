package trace

import (
	"slices"

	"github.com/samber/lo"
)

// MachineSummary aggregates the records of one machine.
type MachineSummary struct {
	MachineID int   `json:"machine_id" yaml:"machine_id"`
	Ops       int   `json:"ops" yaml:"ops"`
	BusyTime  int64 `json:"busy_time" yaml:"busy_time"`
	IdleTime  int64 `json:"idle_time" yaml:"idle_time"` // within [0, makespan)
}

// Summary aggregates statistics over a History.
type Summary struct {
	Records  int              `json:"records" yaml:"records"`
	Makespan int64            `json:"makespan" yaml:"makespan"`
	Jobs     int              `json:"jobs" yaml:"jobs"` // distinct jobs with at least one record
	Machines []MachineSummary `json:"machines" yaml:"machines"`
}

// Summarize computes aggregate statistics. Safe for an empty history.
// Only machines that processed at least one operation appear in Machines.
func (h *History) Summarize() Summary {
	s := Summary{Records: len(h.records)}
	if len(h.records) == 0 {
		return s
	}
	s.Makespan = lo.MaxBy(h.records, func(a, b AssignmentRecord) bool {
		return a.FinishTime > b.FinishTime
	}).FinishTime
	s.Jobs = len(lo.UniqBy(h.records, func(r AssignmentRecord) int { return r.JobID }))

	byMachine := lo.GroupBy(h.records, func(r AssignmentRecord) int { return r.MachineID })
	ids := lo.Keys(byMachine)
	slices.Sort(ids)
	for _, id := range ids {
		busy := lo.SumBy(byMachine[id], func(r AssignmentRecord) int64 { return r.ProcessTime })
		s.Machines = append(s.Machines, MachineSummary{
			MachineID: id,
			Ops:       len(byMachine[id]),
			BusyTime:  busy,
			IdleTime:  s.Makespan - busy,
		})
	}
	return s
}
