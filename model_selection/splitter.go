// Package model_selection provides data splitting, cross-validation, and the
// polynomial degree sweep used to compare model complexity under a fixed
// fold partition.
package model_selection

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/statlearn/pkg/errors"
)

// Fold holds the row indices of one train/validation split.
type Fold struct {
	TrainIndices []int
	TestIndices  []int
}

// Splitter generates train/validation folds for cross-validation.
type Splitter interface {
	Split(X, y mat.Matrix) ([]Fold, error)
	GetNSplits() int
}

// KFold splits samples into NSplits consecutive folds. When Shuffle is set
// the sample order is permuted once with a PCG source seeded by Seed, so the
// partition is reproducible.
type KFold struct {
	NSplits int
	Shuffle bool
	Seed    int64
}

// NewKFold creates a k-fold splitter.
func NewKFold(nSplits int, shuffle bool, seed int64) *KFold {
	return &KFold{
		NSplits: nSplits,
		Shuffle: shuffle,
		Seed:    seed,
	}
}

// GetNSplits returns the number of folds.
func (kf *KFold) GetNSplits() int {
	return kf.NSplits
}

// Split partitions the rows of X into NSplits disjoint validation folds that
// together cover every row exactly once. The first nSamples % NSplits folds
// receive one extra sample. Requires at least NSplits samples; y is accepted
// for interface compatibility and ignored.
func (kf *KFold) Split(X, _ mat.Matrix) ([]Fold, error) {
	op := "KFold.Split"
	if kf.NSplits < 2 {
		return nil, errors.NewValueError(op, "number of splits must be at least 2")
	}
	if X == nil {
		return nil, errors.NewValueError(op, "input matrix must not be nil")
	}

	nSamples, _ := X.Dims()
	if nSamples < kf.NSplits {
		return nil, errors.NewInsufficientDataError(op, nSamples, kf.NSplits)
	}

	indices := make([]int, nSamples)
	for i := range indices {
		indices[i] = i
	}
	if kf.Shuffle {
		r := rand.New(rand.NewPCG(uint64(kf.Seed), uint64(kf.Seed)))
		r.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	folds := make([]Fold, kf.NSplits)
	foldSize := nSamples / kf.NSplits
	remainder := nSamples % kf.NSplits

	start := 0
	for i := 0; i < kf.NSplits; i++ {
		testSize := foldSize
		if i < remainder {
			testSize++
		}

		testIndices := make([]int, testSize)
		copy(testIndices, indices[start:start+testSize])

		trainIndices := make([]int, 0, nSamples-testSize)
		trainIndices = append(trainIndices, indices[:start]...)
		trainIndices = append(trainIndices, indices[start+testSize:]...)

		folds[i] = Fold{
			TrainIndices: trainIndices,
			TestIndices:  testIndices,
		}
		start += testSize
	}

	return folds, nil
}

// StratifiedKFold splits samples so each fold preserves the per-class
// proportions of y. Used for classification targets.
type StratifiedKFold struct {
	NSplits int
	Shuffle bool
	Seed    int64
}

// NewStratifiedKFold creates a stratified k-fold splitter.
func NewStratifiedKFold(nSplits int, shuffle bool, seed int64) *StratifiedKFold {
	return &StratifiedKFold{
		NSplits: nSplits,
		Shuffle: shuffle,
		Seed:    seed,
	}
}

// GetNSplits returns the number of folds.
func (skf *StratifiedKFold) GetNSplits() int {
	return skf.NSplits
}

// Split partitions rows into folds while distributing each label of y evenly
// across the folds.
func (skf *StratifiedKFold) Split(X, y mat.Matrix) ([]Fold, error) {
	op := "StratifiedKFold.Split"
	if skf.NSplits < 2 {
		return nil, errors.NewValueError(op, "number of splits must be at least 2")
	}
	if X == nil || y == nil {
		return nil, errors.NewValueError(op, "input matrices must not be nil")
	}

	nSamples, _ := X.Dims()
	if nSamples < skf.NSplits {
		return nil, errors.NewInsufficientDataError(op, nSamples, skf.NSplits)
	}
	yRows, _ := y.Dims()
	if yRows != nSamples {
		return nil, errors.NewDimensionError(op, nSamples, yRows, 0)
	}

	// Group row indices by label, keeping label iteration order stable so
	// the partition depends only on the data and the seed.
	classIndices := make(map[float64][]int)
	var labels []float64
	for i := 0; i < nSamples; i++ {
		label := y.At(i, 0)
		if _, seen := classIndices[label]; !seen {
			labels = append(labels, label)
		}
		classIndices[label] = append(classIndices[label], i)
	}

	if skf.Shuffle {
		r := rand.New(rand.NewPCG(uint64(skf.Seed), uint64(skf.Seed)))
		for _, label := range labels {
			indices := classIndices[label]
			r.Shuffle(len(indices), func(i, j int) {
				indices[i], indices[j] = indices[j], indices[i]
			})
		}
	}

	folds := make([]Fold, skf.NSplits)

	// Deal each class across the folds, leading folds first.
	for _, label := range labels {
		indices := classIndices[label]
		nClass := len(indices)
		foldSize := nClass / skf.NSplits
		remainder := nClass % skf.NSplits

		current := 0
		for i := 0; i < skf.NSplits; i++ {
			testSize := foldSize
			if i < remainder {
				testSize++
			}
			folds[i].TestIndices = append(folds[i].TestIndices, indices[current:current+testSize]...)
			current += testSize
		}
	}

	for i := range folds {
		testSet := make(map[int]bool, len(folds[i].TestIndices))
		for _, idx := range folds[i].TestIndices {
			testSet[idx] = true
		}
		trainIndices := make([]int, 0, nSamples-len(folds[i].TestIndices))
		for j := 0; j < nSamples; j++ {
			if !testSet[j] {
				trainIndices = append(trainIndices, j)
			}
		}
		folds[i].TrainIndices = trainIndices
	}

	return folds, nil
}
