// Package sim provides the discrete-event core of the dynamic job-shop simulator.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - job.go, machine.go: Operation/Job/Machine state and their invariants
//   - time_queue.go: min-heap of pending time points that drives clock advancement
//   - instance.go: the Instance state machine (EligibleAssignments, Assign, Done)
//   - dispatch.go: the per-machine decision table (idle / auto-commit / choice point)
//
// # Driving an episode
//
// An external driver repeatedly calls EligibleAssignments, picks one candidate
// from the returned choice points, and calls Assign. Machines with exactly one
// eligible job are committed without asking the driver. RunEpisode implements
// this loop for any Dispatcher; dispatching rules live in sim/policy and an
// HTTP front end for out-of-process agents lives in sim/server.
//
// Sub-packages:
//   - sim/workload/: random instance generation, text and YAML instance formats
//   - sim/trace/: append-only assignment history, summaries, consistency checks
//   - sim/policy/: priority dispatching rules
//   - sim/server/: HTTP driver API
//
// The Instance is NOT thread-safe. All mutation happens in Assign, InsertJob and
// the clock advancement inside EligibleAssignments, invoked sequentially by one driver.
package sim
