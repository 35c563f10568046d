package workload

import "math/rand"

// ArrivalSampler generates inter-arrival times for dynamically arriving jobs.
type ArrivalSampler interface {
	// SampleIAT returns the next inter-arrival time in ticks.
	// Always returns a positive value (>= 1).
	SampleIAT(rng *rand.Rand) int64
}

// PoissonSampler generates exponentially-distributed inter-arrival times.
type PoissonSampler struct {
	meanTicks float64
}

// NewPoissonSampler creates a sampler whose inter-arrival times average meanTicks.
func NewPoissonSampler(meanTicks float64) *PoissonSampler {
	return &PoissonSampler{meanTicks: meanTicks}
}

func (s *PoissonSampler) SampleIAT(rng *rand.Rand) int64 {
	iat := int64(rng.ExpFloat64() * s.meanTicks)
	if iat < 1 {
		return 1
	}
	return iat
}
