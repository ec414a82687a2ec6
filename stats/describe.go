package stats

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/statlearn/pkg/errors"
)

// Summary holds the descriptive statistics of one sample.
type Summary struct {
	N      int
	Mean   float64
	Std    float64
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// Describe computes the five-number summary plus mean and sample standard
// deviation. The input is not modified.
func Describe(xs []float64) (Summary, error) {
	if len(xs) == 0 {
		return Summary{}, errors.NewInsufficientDataError("stats.Describe", 0, 1)
	}

	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	s := Summary{
		N:      len(sorted),
		Mean:   stat.Mean(sorted, nil),
		Min:    sorted[0],
		Q1:     stat.Quantile(0.25, stat.Empirical, sorted, nil),
		Median: stat.Quantile(0.50, stat.Empirical, sorted, nil),
		Q3:     stat.Quantile(0.75, stat.Empirical, sorted, nil),
		Max:    sorted[len(sorted)-1],
	}
	if s.N > 1 {
		s.Std = stat.StdDev(sorted, nil)
	}
	return s, nil
}
