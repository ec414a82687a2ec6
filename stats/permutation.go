package stats

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/statlearn/pkg/errors"
)

// NullSummary describes the permutation null distribution of the statistic.
type NullSummary struct {
	Mean float64
	Std  float64
	Min  float64
	Max  float64
}

// PermutationResult is the outcome of a permutation test.
type PermutationResult struct {
	// Observed is the signed difference of means, mean(a) - mean(b).
	Observed float64
	// PValue is two-sided and counts the observed labelling itself, so it
	// is never zero.
	PValue float64
	Rounds int
	Null   NullSummary
}

// PermutationTest estimates how often a random relabelling of the pooled
// samples produces a mean difference at least as extreme as the observed one.
// The relabelling stream is a PCG seeded by seed, so results are reproducible.
func PermutationTest(a, b []float64, rounds int, seed int64) (*PermutationResult, error) {
	op := "stats.PermutationTest"
	if len(a) == 0 || len(b) == 0 {
		return nil, errors.NewInsufficientDataError(op, len(a)+len(b), 2)
	}
	if rounds < 1 {
		return nil, errors.NewValueError(op, "rounds must be at least 1")
	}

	observed := stat.Mean(a, nil) - stat.Mean(b, nil)
	threshold := math.Abs(observed)

	pooled := make([]float64, 0, len(a)+len(b))
	pooled = append(pooled, a...)
	pooled = append(pooled, b...)
	na := len(a)

	r := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	null := make([]float64, rounds)
	extreme := 0
	for i := 0; i < rounds; i++ {
		r.Shuffle(len(pooled), func(x, y int) {
			pooled[x], pooled[y] = pooled[y], pooled[x]
		})
		diff := stat.Mean(pooled[:na], nil) - stat.Mean(pooled[na:], nil)
		null[i] = diff
		if math.Abs(diff) >= threshold {
			extreme++
		}
	}

	summary := NullSummary{
		Mean: stat.Mean(null, nil),
		Min:  floats.Min(null),
		Max:  floats.Max(null),
	}
	if rounds > 1 {
		summary.Std = stat.StdDev(null, nil)
	}

	return &PermutationResult{
		Observed: observed,
		PValue:   float64(1+extreme) / float64(1+rounds),
		Rounds:   rounds,
		Null:     summary,
	}, nil
}
