package sim

import (
	"encoding/json"
	"fmt"
	"os"
)

// EpisodeMetrics summarizes the schedule produced so far.
type EpisodeMetrics struct {
	Makespan           int64     `json:"makespan" yaml:"makespan"`
	Assignments        int       `json:"assignments" yaml:"assignments"`
	CompletedJobs      int       `json:"completed_jobs" yaml:"completed_jobs"`
	TotalTardiness     int64     `json:"total_tardiness" yaml:"total_tardiness"`
	MaxTardiness       int64     `json:"max_tardiness" yaml:"max_tardiness"`
	TardyJobs          int       `json:"tardy_jobs" yaml:"tardy_jobs"`
	MeanFlowTime       float64   `json:"mean_flow_time" yaml:"mean_flow_time"`
	MachineUtilization []float64 `json:"machine_utilization" yaml:"machine_utilization"` // busy time / makespan, by machine id
}

// Metrics computes EpisodeMetrics from the current jobs and history.
// Tardiness only counts completed jobs that carry a due date; flow time only
// counts completed jobs with at least one operation.
func (inst *Instance) Metrics() EpisodeMetrics {
	m := EpisodeMetrics{
		Makespan:           inst.Makespan(),
		Assignments:        inst.history.Len(),
		MachineUtilization: make([]float64, len(inst.machines)),
	}

	var flowTotal int64
	flowJobs := 0
	for _, job := range inst.jobs {
		completion, ok := job.CompletionTime()
		if !ok {
			continue
		}
		m.CompletedJobs++
		if job.NumOps() > 0 {
			flowTotal += completion - job.ArrivalTime
			flowJobs++
		}
		if job.DueDate > 0 && completion > job.DueDate {
			tardiness := completion - job.DueDate
			m.TotalTardiness += tardiness
			m.MaxTardiness = max(m.MaxTardiness, tardiness)
			m.TardyJobs++
		}
	}
	if flowJobs > 0 {
		m.MeanFlowTime = float64(flowTotal) / float64(flowJobs)
	}

	if m.Makespan > 0 {
		for _, ms := range inst.history.Summarize().Machines {
			if ms.MachineID < len(m.MachineUtilization) {
				m.MachineUtilization[ms.MachineID] = float64(ms.BusyTime) / float64(m.Makespan)
			}
		}
	}
	return m
}

// Print writes the metrics as indented JSON under a header to stdout.
func (m EpisodeMetrics) Print() {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshalling metrics: %v\n", err)
		return
	}
	fmt.Println("=== Episode Metrics ===")
	fmt.Println(string(data))
}
