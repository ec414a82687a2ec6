// Package stats implements the descriptive statistics and hypothesis tests
// used by the sampling walkthrough: sample summaries, t-tests against the
// Student's t distribution, and a seeded permutation test.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/statlearn/pkg/errors"
)

// TestResult is the outcome of a hypothesis test. PValue is two-sided.
type TestResult struct {
	Name       string
	Statistic  float64
	DF         float64
	PValue     float64
	EffectSize float64
}

// Significant reports whether the p-value falls below alpha.
func (r *TestResult) Significant(alpha float64) bool {
	return r.PValue < alpha
}

// OneSampleTTest tests whether the sample mean differs from mu0. The effect
// size is Cohen's d.
func OneSampleTTest(xs []float64, mu0 float64) (*TestResult, error) {
	op := "stats.OneSampleTTest"
	n := len(xs)
	if n < 2 {
		return nil, errors.NewInsufficientDataError(op, n, 2)
	}

	mean := stat.Mean(xs, nil)
	sd := stat.StdDev(xs, nil)
	if sd == 0 {
		return nil, errors.NewValueError(op, "sample has zero variance")
	}

	t := (mean - mu0) / (sd / math.Sqrt(float64(n)))
	df := float64(n - 1)

	return &TestResult{
		Name:       "one-sample t-test",
		Statistic:  t,
		DF:         df,
		PValue:     twoSidedP(t, df),
		EffectSize: (mean - mu0) / sd,
	}, nil
}

// WelchTTest tests whether two independent samples have equal means without
// assuming equal variances. Degrees of freedom follow the Welch-Satterthwaite
// approximation; the effect size is Cohen's d with a pooled deviation.
func WelchTTest(a, b []float64) (*TestResult, error) {
	op := "stats.WelchTTest"
	na, nb := len(a), len(b)
	if na < 2 {
		return nil, errors.NewInsufficientDataError(op, na, 2)
	}
	if nb < 2 {
		return nil, errors.NewInsufficientDataError(op, nb, 2)
	}

	meanA, meanB := stat.Mean(a, nil), stat.Mean(b, nil)
	varA, varB := stat.Variance(a, nil), stat.Variance(b, nil)

	seSq := varA/float64(na) + varB/float64(nb)
	if seSq == 0 {
		return nil, errors.NewValueError(op, "both samples have zero variance")
	}

	t := (meanA - meanB) / math.Sqrt(seSq)
	df := seSq * seSq / (sq(varA/float64(na))/float64(na-1) + sq(varB/float64(nb))/float64(nb-1))

	pooled := math.Sqrt((float64(na-1)*varA + float64(nb-1)*varB) / float64(na+nb-2))

	return &TestResult{
		Name:       "Welch's t-test",
		Statistic:  t,
		DF:         df,
		PValue:     twoSidedP(t, df),
		EffectSize: (meanA - meanB) / pooled,
	}, nil
}

// twoSidedP is the two-sided p-value of a t statistic under df degrees of
// freedom.
func twoSidedP(t, df float64) float64 {
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * dist.CDF(-math.Abs(t))
}

func sq(v float64) float64 { return v * v }
