// Package model provides additional interfaces and types for machine learning models.
// This file complements the core contracts in estimator.go and transformer.go
package model

import (
	"gonum.org/v1/gonum/mat"
)

// Scorer is the interface for models that can compute a score.
// Regressors score with R^2, classifiers with accuracy.
type Scorer interface {
	Score(X mat.Matrix, y mat.Matrix) (float64, error)
}

// Regressor combines interfaces for regression models.
type Regressor interface {
	Model
	Scorer
}

// Classifier combines interfaces for classification models.
type Classifier interface {
	Model
	Scorer

	// PredictProba returns probability estimates for each class.
	PredictProba(X mat.Matrix) (mat.Matrix, error)

	// Classes returns the unique classes seen during fitting.
	Classes() []int
}

// ParameterGetter is the interface for models that expose their parameters.
type ParameterGetter interface {
	// GetParams returns the model's hyperparameters.
	GetParams() map[string]interface{}
}

// ParameterSetter is the interface for models that allow parameter modification.
type ParameterSetter interface {
	// SetParams sets the model's hyperparameters.
	SetParams(params map[string]interface{}) error
}

// WeightExporter is the interface for models whose fitted weights can be
// exported and imported for persistence.
type WeightExporter interface {
	// ExportWeights returns the model's weights in serializable form.
	ExportWeights() (*ModelWeights, error)

	// ImportWeights restores the model from exported weights.
	ImportWeights(weights *ModelWeights) error
}
