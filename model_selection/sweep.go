package model_selection

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/statlearn/core/model"
	"github.com/YuminosukeSato/statlearn/dataset"
	"github.com/YuminosukeSato/statlearn/linear"
	"github.com/YuminosukeSato/statlearn/metrics"
	"github.com/YuminosukeSato/statlearn/pipeline"
	"github.com/YuminosukeSato/statlearn/pkg/errors"
	"github.com/YuminosukeSato/statlearn/preprocessing"
)

// SweepConfig controls a polynomial degree sweep.
type SweepConfig struct {
	// MaxDegree is the highest polynomial degree evaluated; degrees run 1..MaxDegree.
	MaxDegree int
	// NSplits is the number of cross-validation folds.
	NSplits int
	// Shuffle permutes the sample order before folding, seeded by Seed.
	Shuffle bool
	// Seed drives the fold shuffle. Unused when Shuffle is false.
	Seed int64
	// FitIntercept controls whether the regression stage fits an intercept term.
	FitIntercept bool
	// GridSize > 0 additionally refits each completed degree on the full
	// sample and evaluates it on that many evenly spaced points across the
	// observed x range, producing plot-ready curves. 0 disables curves.
	GridSize int
}

// DefaultSweepConfig returns the walkthrough configuration: degrees 1..15
// scored with 10-fold cross-validation, intercept on, no curves.
func DefaultSweepConfig() SweepConfig {
	return SweepConfig{
		MaxDegree:    15,
		NSplits:      10,
		Shuffle:      false,
		Seed:         42,
		FitIntercept: true,
		GridSize:     0,
	}
}

// DegreeScore records the cross-validation outcome for one degree.
type DegreeScore struct {
	Degree int
	// Scores holds the per-fold negated mean squared errors, indexed by fold.
	Scores []float64
	// Mean and Std summarize Scores; Std is the sample standard deviation.
	Mean float64
	Std  float64
}

// MeanMSE returns the mean squared error in its positive form.
func (ds DegreeScore) MeanMSE() float64 {
	return -ds.Mean
}

// Curve is a fitted polynomial evaluated on an even grid, ready to plot.
type Curve struct {
	Degree int
	X      []float64
	Y      []float64
}

// SweepResult collects the outcome of a degree sweep. Scores holds one entry
// per degree that completed, in ascending degree order; Failed maps each
// degree that errored to its error.
type SweepResult struct {
	Scores []DegreeScore
	Failed map[int]error
	Curves []Curve
}

// Best returns the completed degree with the highest mean score, i.e. the
// lowest cross-validated mean squared error. Ties go to the lower degree.
// ok is false when no degree completed.
func (r *SweepResult) Best() (best DegreeScore, ok bool) {
	for i, ds := range r.Scores {
		if i == 0 || ds.Mean > best.Mean {
			best = ds
			ok = true
		}
	}
	return best, ok
}

// Report writes one line per completed degree in ascending degree order,
// quoting the mean squared error with a two standard deviation band.
func (r *SweepResult) Report(w io.Writer) error {
	for _, ds := range r.Scores {
		_, err := fmt.Fprintf(w, "for degree %d polynomial fit, the mean squared error is %.6g +/- %.6g\n",
			ds.Degree, ds.MeanMSE(), 2*ds.Std)
		if err != nil {
			return err
		}
	}
	return nil
}

// PolynomialDegreeSweep cross-validates a PolynomialFeatures+LinearRegression
// pipeline for every degree 1..cfg.MaxDegree over a single fold partition, so
// all degrees compete on identical splits.
//
// The partition is computed once, before any fitting; too few samples for the
// requested folds aborts the whole sweep with an InsufficientDataError. After
// that point failures are isolated per degree: a degenerate design matrix at
// one degree lands in Failed and the sweep continues with the next degree.
func PolynomialDegreeSweep(x, y mat.Matrix, cfg SweepConfig) (*SweepResult, error) {
	op := "PolynomialDegreeSweep"
	if x == nil || y == nil {
		return nil, errors.NewValueError(op, "input matrices must not be nil")
	}
	nSamples, xCols := x.Dims()
	if nSamples == 0 || xCols == 0 {
		return nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if xCols != 1 {
		return nil, errors.NewDimensionError(op, 1, xCols, 1)
	}
	yRows, yCols := y.Dims()
	if yRows != nSamples {
		return nil, errors.NewDimensionError(op, nSamples, yRows, 0)
	}
	if yCols != 1 {
		return nil, errors.NewDimensionError(op, 1, yCols, 1)
	}
	if cfg.MaxDegree < 1 {
		return nil, errors.NewValueError(op, "max degree must be at least 1")
	}
	if cfg.NSplits < 2 {
		return nil, errors.NewValueError(op, "number of splits must be at least 2")
	}
	if cfg.GridSize != 0 && cfg.GridSize < 2 {
		return nil, errors.NewValueError(op, "grid size must be 0 or at least 2")
	}
	if nSamples < cfg.NSplits {
		return nil, errors.NewInsufficientDataError(op, nSamples, cfg.NSplits)
	}

	// One partition for the whole sweep.
	folds, err := NewKFold(cfg.NSplits, cfg.Shuffle, cfg.Seed).Split(x, y)
	if err != nil {
		return nil, err
	}

	result := &SweepResult{
		Failed: make(map[int]error),
	}
	for d := 1; d <= cfg.MaxDegree; d++ {
		degree := d
		var score DegreeScore
		var curve *Curve
		err := errors.SafeExecute(fmt.Sprintf("degree %d evaluation", degree), func() error {
			var evalErr error
			score, curve, evalErr = evaluateDegree(x, y, folds, degree, cfg)
			return evalErr
		})
		if err != nil {
			result.Failed[degree] = err
			continue
		}
		result.Scores = append(result.Scores, score)
		if curve != nil {
			result.Curves = append(result.Curves, *curve)
		}
	}

	return result, nil
}

// evaluateDegree cross-validates one degree on the shared folds and, when
// curves were requested, refits it on the full sample.
func evaluateDegree(x, y mat.Matrix, folds []Fold, degree int, cfg SweepConfig) (DegreeScore, *Curve, error) {
	newModel := func() model.Model {
		return degreePipeline(degree, cfg.FitIntercept)
	}

	cv, err := crossValidateFolds(newModel, x, y, folds, metrics.NegMSEScorer)
	if err != nil {
		return DegreeScore{}, nil, err
	}
	score := DegreeScore{
		Degree: degree,
		Scores: cv.Scores,
		Mean:   cv.MeanScore(),
		Std:    cv.StdScore(),
	}

	if cfg.GridSize == 0 {
		return score, nil, nil
	}
	curve, err := fitCurve(x, y, degree, cfg)
	if err != nil {
		return DegreeScore{}, nil, err
	}
	return score, curve, nil
}

// fitCurve refits the degree's pipeline on all samples and evaluates it on an
// even grid spanning the observed x range.
func fitCurve(x, y mat.Matrix, degree int, cfg SweepConfig) (*Curve, error) {
	p := degreePipeline(degree, cfg.FitIntercept)
	if err := p.Fit(x, y); err != nil {
		return nil, err
	}

	xs := mat.Col(nil, 0, x)
	lo, hi := xs[0], xs[0]
	for _, v := range xs[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	grid := dataset.Grid(lo, hi, cfg.GridSize)
	predictions, err := p.Predict(dataset.GridMatrix(lo, hi, cfg.GridSize))
	if err != nil {
		return nil, err
	}

	return &Curve{
		Degree: degree,
		X:      grid,
		Y:      mat.Col(nil, 0, predictions),
	}, nil
}

func degreePipeline(degree int, fitIntercept bool) *pipeline.Pipeline {
	return pipeline.New(
		preprocessing.NewPolynomialFeatures(degree),
		linear.NewLinearRegression(linear.WithFitIntercept(fitIntercept)),
	)
}
