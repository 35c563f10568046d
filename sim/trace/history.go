package trace

import (
	"cmp"
	"slices"

	"github.com/samber/lo"
)

// History collects assignment records in commit order.
type History struct {
	records []AssignmentRecord
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// FromRecords builds a history from previously exported records, keeping their order.
func FromRecords(records []AssignmentRecord) *History {
	return &History{records: slices.Clone(records)}
}

// Append stores r and stamps its Order with the current length.
func (h *History) Append(r AssignmentRecord) {
	r.Order = len(h.records)
	h.records = append(h.records, r)
}

// Len returns the number of records.
func (h *History) Len() int {
	return len(h.records)
}

// Records returns a copy of the records in commit order.
func (h *History) Records() []AssignmentRecord {
	return slices.Clone(h.records)
}

// ByMachine groups records per machine, each group sorted by start time.
func (h *History) ByMachine() map[int][]AssignmentRecord {
	groups := lo.GroupBy(h.records, func(r AssignmentRecord) int { return r.MachineID })
	for _, g := range groups {
		sortByStart(g)
	}
	return groups
}

// ByJob groups records per job, each group sorted by start time.
func (h *History) ByJob() map[int][]AssignmentRecord {
	groups := lo.GroupBy(h.records, func(r AssignmentRecord) int { return r.JobID })
	for _, g := range groups {
		sortByStart(g)
	}
	return groups
}

// IdleGaps returns the idle intervals of every machine that appears in the history,
// ordered by machine id then start. The interval before a machine's first operation
// counts from tick 0.
func (h *History) IdleGaps() []Gap {
	byMachine := h.ByMachine()
	machineIDs := lo.Keys(byMachine)
	slices.Sort(machineIDs)

	var gaps []Gap
	for _, id := range machineIDs {
		var prev int64
		for _, r := range byMachine[id] {
			if r.StartTime > prev {
				gaps = append(gaps, Gap{MachineID: id, Start: prev, End: r.StartTime})
			}
			prev = max(prev, r.FinishTime)
		}
	}
	return gaps
}

func sortByStart(records []AssignmentRecord) {
	slices.SortStableFunc(records, func(a, b AssignmentRecord) int {
		if c := cmp.Compare(a.StartTime, b.StartTime); c != 0 {
			return c
		}
		return cmp.Compare(a.Order, b.Order)
	})
}
