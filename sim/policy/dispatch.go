// Package policy provides priority dispatching rules that act as the external
// decision-maker at choice points of a sim.Instance.
package policy

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/jobshop-sim/jobshop-sim/sim"
)

// Rule names accepted by New.
const (
	FIFO   = "fifo"   // earliest job arrival first
	SPT    = "spt"    // shortest processing time first
	LPT    = "lpt"    // longest processing time first
	MWKR   = "mwkr"   // most work remaining first
	MOR    = "mor"    // most operations remaining first
	EDD    = "edd"    // earliest due date first; jobs without a due date go last
	Random = "random" // uniform over all candidates
)

// priorityKeys maps rule names to a priority key; lower keys are dispatched first.
var priorityKeys = map[string]func(c sim.Candidate) int64{
	FIFO: func(c sim.Candidate) int64 { return c.ArrivalTime },
	SPT:  func(c sim.Candidate) int64 { return c.ProcessTime },
	LPT:  func(c sim.Candidate) int64 { return -c.ProcessTime },
	MWKR: func(c sim.Candidate) int64 { return -c.RemainingWork },
	MOR:  func(c sim.Candidate) int64 { return -int64(c.RemainingOps) },
	EDD: func(c sim.Candidate) int64 {
		if c.DueDate == 0 {
			return math.MaxInt64
		}
		return c.DueDate
	},
}

// Names returns all valid rule names, sorted.
func Names() []string {
	names := []string{Random}
	for name := range priorityKeys {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsValid returns true if name is a known rule.
func IsValid(name string) bool {
	_, ok := priorityKeys[name]
	return ok || name == Random
}

// New creates a dispatcher by name. The random rule draws from rng, which must be
// non-nil for it; the other rules ignore rng.
func New(name string, rng *rand.Rand) (sim.Dispatcher, error) {
	if name == Random {
		if rng == nil {
			return nil, fmt.Errorf("%w: rule %q needs a random source", sim.ErrInvalidArgument, name)
		}
		return &RandomRule{rng: rng}, nil
	}
	key, ok := priorityKeys[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown dispatching rule %q; valid rules: %v", sim.ErrInvalidArgument, name, Names())
	}
	return &PriorityRule{name: name, key: key}, nil
}

// PriorityRule picks the candidate with the lowest key across all choice points.
// Ties break by machine id, then job id.
type PriorityRule struct {
	name string
	key  func(c sim.Candidate) int64
}

// Name returns the rule name.
func (p *PriorityRule) Name() string {
	return p.name
}

func (p *PriorityRule) Choose(choices []sim.MachineChoice, _ int64) (sim.Candidate, error) {
	candidates, err := flatten(choices)
	if err != nil {
		return sim.Candidate{}, err
	}
	best := candidates[0]
	bestKey := p.key(best)
	for _, c := range candidates[1:] {
		// strict comparison keeps the earliest candidate on ties
		if k := p.key(c); k < bestKey {
			best, bestKey = c, k
		}
	}
	return best, nil
}

// RandomRule picks uniformly among all candidates of all choice points.
type RandomRule struct {
	rng *rand.Rand
}

func (r *RandomRule) Choose(choices []sim.MachineChoice, _ int64) (sim.Candidate, error) {
	candidates, err := flatten(choices)
	if err != nil {
		return sim.Candidate{}, err
	}
	return candidates[r.rng.Intn(len(candidates))], nil
}

// flatten lists candidates ordered by machine id, then job id.
func flatten(choices []sim.MachineChoice) ([]sim.Candidate, error) {
	sorted := make([]sim.MachineChoice, len(choices))
	copy(sorted, choices)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].MachineID < sorted[j].MachineID })

	var out []sim.Candidate
	for _, mc := range sorted {
		start := len(out)
		out = append(out, mc.Candidates...)
		group := out[start:]
		sort.SliceStable(group, func(i, j int) bool { return group[i].JobID < group[j].JobID })
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no candidates to choose from", sim.ErrInvalidArgument)
	}
	return out, nil
}
