package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Dispatcher is the external decision-maker consulted at choice points.
// Choose must return one of the candidates in choices.
type Dispatcher interface {
	Choose(choices []MachineChoice, clock int64) (Candidate, error)
}

// RunEpisode drives inst to completion: it repeatedly asks for eligible assignments,
// lets d pick one candidate, and assigns it. Errors from the dispatcher or from
// Assign abort the episode and leave the instance as it was after the last commit.
func RunEpisode(inst *Instance, d Dispatcher) error {
	// every Assign schedules one operation, so a correct driver needs at most totalOps decisions
	limit := inst.totalOps()
	decisions := 0
	for !inst.Done() {
		choices, err := inst.EligibleAssignments()
		if err != nil {
			return err
		}
		if len(choices) == 0 {
			continue
		}
		if decisions >= limit {
			return fmt.Errorf("%w: %d decisions made but episode not done", ErrInvalidState, decisions)
		}
		c, err := d.Choose(choices, inst.Clock())
		if err != nil {
			return fmt.Errorf("dispatcher at tick %d: %w", inst.Clock(), err)
		}
		if err := inst.Assign(c.JobID, c.OpID); err != nil {
			return err
		}
		decisions++
	}
	logrus.Infof("[tick %07d] Episode done: makespan=%d, decisions=%d, assignments=%d",
		inst.Clock(), inst.Makespan(), decisions, len(inst.History()))
	return nil
}
