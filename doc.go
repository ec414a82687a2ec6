// Package statlearn provides the building blocks of a classical
// statistical-learning workflow in Go: seeded distribution sampling,
// hypothesis testing, least-squares regression, binary classification,
// and model selection by cross-validation.
//
// The library follows a scikit-learn-like API so that each step of the
// workflow reads the way it does in Python notebooks, while staying
// idiomatic Go: matrices in and out, explicit error returns, and no
// hidden global state.
//
// # Quick Start
//
// The centerpiece is the polynomial degree sweep, which scores a
// feature-expansion + linear-regression pipeline for every degree with
// k-fold cross-validation:
//
//	package main
//
//	import (
//	    "log"
//	    "os"
//
//	    "github.com/YuminosukeSato/statlearn/dataset"
//	    "github.com/YuminosukeSato/statlearn/model_selection"
//	)
//
//	func main() {
//	    X, y, err := dataset.SineData(20, 0.15, 42)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    result, err := model_selection.PolynomialDegreeSweep(X, y, model_selection.SweepConfig{
//	        MaxDegree: 15,
//	        NSplits:   10,
//	        Seed:      42,
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    result.Report(os.Stdout)
//	}
//
// # Packages
//
// The library is organized into several packages:
//
//   - dataset: Seeded synthetic data generators
//   - preprocessing: Feature transformers (PolynomialFeatures, StandardScaler)
//   - linear: Linear models (LinearRegression, LogisticRegression)
//   - metrics: Evaluation metrics and cross-validation scorers
//   - model_selection: K-fold splitting, cross-validation, degree sweep
//   - pipeline: Transformer + estimator composition
//   - stats: Descriptive statistics and hypothesis tests
//   - viz: Plot rendering for samples, fitted curves, validation curves
//   - core/model: Core interfaces and fitted-state management
//   - core/parallel: Parallel processing utilities
//
// # Determinism
//
// Every randomized component takes an explicit seed and uses its own
// PCG source, so a fixed seed reproduces folds, samples, and scores
// exactly. Nothing reads from the global random number generator.
package statlearn
