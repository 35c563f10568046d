package sim

import "fmt"

// Machine is a resource that processes one operation at a time.
// Its clock only moves forward: every processed operation pushes NextAvailableTime
// to that operation's finish time.
type Machine struct {
	ID                int
	nextAvailableTime int64
}

// NewMachine creates an idle machine available from tick 0.
func NewMachine(id int) *Machine {
	return &Machine{ID: id}
}

// NextAvailableTime returns the earliest tick at which the machine is free.
func (m *Machine) NextAvailableTime() int64 {
	return m.nextAvailableTime
}

// Process starts op at start and returns its finish time.
// start must respect both the machine's and the operation's availability;
// a violation is a caller bug and leaves the machine untouched.
func (m *Machine) Process(op *Operation, start int64) (int64, error) {
	if op.MachineID != m.ID {
		return 0, fmt.Errorf("%w: op %d of job %d is bound to machine %d, not %d",
			ErrInvalidArgument, op.OpID, op.JobID, op.MachineID, m.ID)
	}
	if start < m.nextAvailableTime {
		return 0, fmt.Errorf("%w: machine %d busy until %d, cannot start at %d",
			ErrInvalidArgument, m.ID, m.nextAvailableTime, start)
	}
	if start < op.AvailableTime {
		return 0, fmt.Errorf("%w: op %d of job %d available at %d, cannot start at %d",
			ErrInvalidArgument, op.OpID, op.JobID, op.AvailableTime, start)
	}
	finish := start + op.ProcessTime
	m.nextAvailableTime = finish
	return finish, nil
}
