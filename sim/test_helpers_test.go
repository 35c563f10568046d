package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// twoByTwoConfig: job0 = [(m0,3),(m1,2)], job1 = [(m1,2),(m0,2)].
func twoByTwoConfig() InstanceConfig {
	return InstanceConfig{
		Machines: 2,
		Jobs: []JobConfig{
			{Ops: []OpConfig{{MachineID: 0, ProcessTime: 3}, {MachineID: 1, ProcessTime: 2}}},
			{Ops: []OpConfig{{MachineID: 1, ProcessTime: 2}, {MachineID: 0, ProcessTime: 2}}},
		},
	}
}

// randomConfig builds a jobs x machines instance where every job visits every
// machine once in a random order.
func randomConfig(seed int64, jobs, machines int, maxProcess int64) InstanceConfig {
	rng := rand.New(rand.NewSource(seed))
	cfg := InstanceConfig{Machines: machines}
	for j := 0; j < jobs; j++ {
		var ops []OpConfig
		for _, m := range rng.Perm(machines) {
			ops = append(ops, OpConfig{MachineID: m, ProcessTime: 1 + rng.Int63n(maxProcess)})
		}
		cfg.Jobs = append(cfg.Jobs, JobConfig{Ops: ops})
	}
	return cfg
}

func mustInstance(t *testing.T, cfg InstanceConfig) *Instance {
	t.Helper()
	inst, err := NewInstance(cfg)
	require.NoError(t, err)
	return inst
}

// firstChoice always takes the lowest job on the lowest contested machine.
type firstChoice struct{}

func (firstChoice) Choose(choices []MachineChoice, _ int64) (Candidate, error) {
	return choices[0].Candidates[0], nil
}

// recordingChooser picks uniformly at random and remembers every decision.
type recordingChooser struct {
	rng       *rand.Rand
	decisions []Candidate
}

func (r *recordingChooser) Choose(choices []MachineChoice, _ int64) (Candidate, error) {
	mc := choices[r.rng.Intn(len(choices))]
	c := mc.Candidates[r.rng.Intn(len(mc.Candidates))]
	r.decisions = append(r.decisions, c)
	return c, nil
}

// scriptedChooser replays a fixed sequence of decisions.
type scriptedChooser struct {
	decisions []Candidate
	next      int
}

func (s *scriptedChooser) Choose(_ []MachineChoice, _ int64) (Candidate, error) {
	c := s.decisions[s.next]
	s.next++
	return c, nil
}
