package trace

import (
	"errors"
	"fmt"
)

// CheckConsistency verifies records in commit order:
//   - FinishTime == StartTime + ProcessTime
//   - on each machine, a record starts no earlier than the previous one on that machine finished
//   - within each job, op ids appear in sequence from 0 and each starts after its predecessor finished
//
// All violations are reported, joined into one error. Returns nil for a consistent history.
func CheckConsistency(records []AssignmentRecord) error {
	var errs []error
	machineFree := make(map[int]int64)
	jobNextOp := make(map[int]int)
	jobReady := make(map[int]int64)

	for _, r := range records {
		if r.FinishTime != r.StartTime+r.ProcessTime {
			errs = append(errs, fmt.Errorf("record %d: finish %d != start %d + process %d",
				r.Order, r.FinishTime, r.StartTime, r.ProcessTime))
		}
		if free, ok := machineFree[r.MachineID]; ok && r.StartTime < free {
			errs = append(errs, fmt.Errorf("record %d: machine %d starts at %d before previous finish %d",
				r.Order, r.MachineID, r.StartTime, free))
		}
		machineFree[r.MachineID] = r.FinishTime

		if want := jobNextOp[r.JobID]; r.OpID != want {
			errs = append(errs, fmt.Errorf("record %d: job %d op %d out of sequence, want op %d",
				r.Order, r.JobID, r.OpID, want))
		}
		if ready, ok := jobReady[r.JobID]; ok && r.StartTime < ready {
			errs = append(errs, fmt.Errorf("record %d: job %d op %d starts at %d before predecessor finished at %d",
				r.Order, r.JobID, r.OpID, r.StartTime, ready))
		}
		jobNextOp[r.JobID] = r.OpID + 1
		jobReady[r.JobID] = r.FinishTime
	}
	return errors.Join(errs...)
}
