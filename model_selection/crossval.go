package model_selection

import (
	"fmt"
	"sort"
	"sync"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/statlearn/core/model"
	"github.com/YuminosukeSato/statlearn/pkg/errors"
)

// Scorer evaluates predictions against ground truth. Higher is better, so
// loss metrics enter negated (see metrics.NegMSEScorer).
type Scorer func(yTrue, yPred mat.Matrix) (float64, error)

// CVResult holds one validation score per fold, indexed by fold.
type CVResult struct {
	Scores []float64
}

// MeanScore returns the mean of the fold scores.
func (cv *CVResult) MeanScore() float64 {
	if len(cv.Scores) == 0 {
		return 0.0
	}
	return stat.Mean(cv.Scores, nil)
}

// StdScore returns the sample standard deviation of the fold scores.
func (cv *CVResult) StdScore() float64 {
	if len(cv.Scores) <= 1 {
		return 0.0
	}
	return stat.StdDev(cv.Scores, nil)
}

// CrossValidate scores a model over the folds produced by the splitter.
// Each fold trains a fresh model built by newModel on the training rows and
// scores its predictions on the held-out rows. Folds run concurrently; the
// result is indexed by fold, so scheduling cannot change the output.
func CrossValidate(newModel func() model.Model, X, y mat.Matrix, splitter Splitter, scorer Scorer) (*CVResult, error) {
	op := "CrossValidate"
	if newModel == nil {
		return nil, errors.NewValueError(op, "model factory must not be nil")
	}
	if scorer == nil {
		return nil, errors.NewValueError(op, "scorer must not be nil")
	}
	if splitter == nil {
		return nil, errors.NewValueError(op, "splitter must not be nil")
	}
	if X == nil || y == nil {
		return nil, errors.NewValueError(op, "input matrices must not be nil")
	}
	xRows, _ := X.Dims()
	yRows, _ := y.Dims()
	if xRows != yRows {
		return nil, errors.NewDimensionError(op, xRows, yRows, 0)
	}

	folds, err := splitter.Split(X, y)
	if err != nil {
		return nil, err
	}
	return crossValidateFolds(newModel, X, y, folds, scorer)
}

// crossValidateFolds runs cross-validation over a precomputed partition.
// The degree sweep calls this directly so every degree scores against the
// identical folds.
func crossValidateFolds(newModel func() model.Model, X, y mat.Matrix, folds []Fold, scorer Scorer) (*CVResult, error) {
	nFolds := len(folds)
	scores := make([]float64, nFolds)
	errs := make([]error, nFolds)

	var wg sync.WaitGroup
	for foldIdx := range folds {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			errs[idx] = errors.SafeExecute(fmt.Sprintf("cross-validation fold %d", idx), func() error {
				fold := folds[idx]
				trainX, trainY := subset(X, y, fold.TrainIndices)
				testX, testY := subset(X, y, fold.TestIndices)

				m := newModel()
				if err := m.Fit(trainX, trainY); err != nil {
					return err
				}
				predictions, err := m.Predict(testX)
				if err != nil {
					return err
				}
				score, err := scorer(testY, predictions)
				if err != nil {
					return err
				}
				scores[idx] = score
				return nil
			})
		}(foldIdx)
	}
	wg.Wait()

	// First failing fold wins; partial scores are never reported.
	for idx, err := range errs {
		if err != nil {
			return nil, errors.Wrapf(err, "fold %d", idx)
		}
	}

	return &CVResult{Scores: scores}, nil
}

// subset copies the selected rows of X and y into fresh matrices. Indices
// are sorted so row access stays sequential.
func subset(X, y mat.Matrix, indices []int) (*mat.Dense, *mat.Dense) {
	rows := len(indices)
	_, xCols := X.Dims()
	_, yCols := y.Dims()

	sorted := make([]int, len(indices))
	copy(sorted, indices)
	sort.Ints(sorted)

	xSub := mat.NewDense(rows, xCols, nil)
	ySub := mat.NewDense(rows, yCols, nil)
	for i, idx := range sorted {
		for j := 0; j < xCols; j++ {
			xSub.Set(i, j, X.At(idx, j))
		}
		for j := 0; j < yCols; j++ {
			ySub.Set(i, j, y.At(idx, j))
		}
	}
	return xSub, ySub
}
