// Package dataset provides the small synthetic generators used by the
// walkthrough binaries and the test suites. Every generator takes an
// explicit seed and is fully deterministic: the same arguments always
// produce the same sample, bit for bit.
package dataset

import (
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/statlearn/pkg/errors"
)

// TrueSine is the noiseless regression target sin(1.8π·x^1.5).
// SineData adds gaussian noise on top of it; plots use it as the
// ground-truth curve.
func TrueSine(x float64) float64 {
	return math.Sin(1.8 * math.Pi * math.Pow(x, 1.5))
}

// SineData draws n inputs x ~ U(0,1), sorts them ascending, and pairs
// them with y = TrueSine(x) + ε where ε ~ N(0, noise²). Both returned
// matrices are n×1.
//
// The uniform draws happen before the gaussian draws, so a given seed
// pins down the x positions independently of the noise level.
func SineData(n int, noise float64, seed int64) (*mat.Dense, *mat.Dense, error) {
	if n <= 0 {
		return nil, nil, errors.NewValueError("SineData", "n must be positive")
	}
	if noise < 0 {
		return nil, nil, errors.NewValidationError("noise", "must be non-negative", noise)
	}

	src := rand.NewPCG(uint64(seed), uint64(seed))
	uniform := distuv.Uniform{Min: 0, Max: 1, Src: src}
	gauss := distuv.Normal{Mu: 0, Sigma: 1, Src: src}

	xs := make([]float64, n)
	for i := range xs {
		xs[i] = uniform.Rand()
	}
	sort.Float64s(xs)

	X := mat.NewDense(n, 1, nil)
	y := mat.NewDense(n, 1, nil)
	for i, x := range xs {
		X.Set(i, 0, x)
		y.Set(i, 0, TrueSine(x)+noise*gauss.Rand())
	}

	return X, y, nil
}

// Blobs draws nPerCenter points around each center with isotropic
// gaussian spread and labels them by center index: rows generated
// around centers[i] carry the label float64(i). Rows are laid out
// center by center.
func Blobs(nPerCenter int, centers [][]float64, spread float64, seed int64) (*mat.Dense, *mat.VecDense, error) {
	if nPerCenter <= 0 {
		return nil, nil, errors.NewValueError("Blobs", "nPerCenter must be positive")
	}
	if len(centers) == 0 {
		return nil, nil, errors.NewValueError("Blobs", "at least one center is required")
	}
	if spread <= 0 {
		return nil, nil, errors.NewValidationError("spread", "must be positive", spread)
	}

	dim := len(centers[0])
	if dim == 0 {
		return nil, nil, errors.NewValueError("Blobs", "centers must have at least one coordinate")
	}
	for i, c := range centers {
		if len(c) != dim {
			return nil, nil, errors.NewDimensionError("Blobs", dim, len(c), i)
		}
	}

	src := rand.NewPCG(uint64(seed), uint64(seed))
	gauss := distuv.Normal{Mu: 0, Sigma: spread, Src: src}

	total := nPerCenter * len(centers)
	X := mat.NewDense(total, dim, nil)
	y := mat.NewVecDense(total, nil)

	row := 0
	for label, center := range centers {
		for i := 0; i < nPerCenter; i++ {
			for j := 0; j < dim; j++ {
				X.Set(row, j, center[j]+gauss.Rand())
			}
			y.SetVec(row, float64(label))
			row++
		}
	}

	return X, y, nil
}

// Grid returns n evenly spaced points covering [lo, hi] inclusive.
// n must be at least 2.
func Grid(lo, hi float64, n int) []float64 {
	return floats.Span(make([]float64, n), lo, hi)
}

// GridMatrix is Grid reshaped into the n×1 design-matrix form the
// estimators consume.
func GridMatrix(lo, hi float64, n int) *mat.Dense {
	return mat.NewDense(n, 1, Grid(lo, hi, n))
}
