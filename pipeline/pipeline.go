// Package pipeline chains a feature transformer with a final estimator so the
// pair can be fitted, applied, and scored as one model. A fresh pipeline per
// cross-validation fold keeps transformer state from leaking between folds.
package pipeline

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/statlearn/core/model"
	"github.com/YuminosukeSato/statlearn/pkg/errors"
)

// Pipeline applies one Transformer and then one final Model. Fit learns the
// transform on the training data and fits the estimator on the transformed
// features; Predict and Score replay the same transform.
type Pipeline struct {
	state       *model.StateManager
	transformer model.Transformer
	estimator   model.Model
}

// New builds a pipeline from a transformer and a final estimator.
func New(transformer model.Transformer, estimator model.Model) *Pipeline {
	return &Pipeline{
		state:       model.NewStateManager(),
		transformer: transformer,
		estimator:   estimator,
	}
}

// Fit learns the transformer on X, transforms X, and fits the estimator on
// the transformed features against y.
func (p *Pipeline) Fit(X, y mat.Matrix) error {
	op := "Pipeline.Fit"
	if p.transformer == nil {
		return errors.NewValueError(op, "pipeline has no transformer step")
	}
	if p.estimator == nil {
		return errors.NewValueError(op, "pipeline has no final estimator")
	}
	if X == nil || y == nil {
		return errors.NewValueError(op, "input matrices must not be nil")
	}

	features, err := p.transformer.FitTransform(X)
	if err != nil {
		return err
	}
	if err := p.estimator.Fit(features, y); err != nil {
		return err
	}

	rows, cols := X.Dims()
	p.state.SetDimensions(cols, rows)
	p.state.SetFitted()
	return nil
}

// Predict transforms X with the fitted transformer and predicts with the
// fitted estimator.
func (p *Pipeline) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !p.state.IsFitted() {
		return nil, errors.NewNotFittedError("Pipeline", "Predict")
	}
	features, err := p.transformer.Transform(X)
	if err != nil {
		return nil, err
	}
	return p.estimator.Predict(features)
}

// Score transforms X and delegates to the final estimator's own scorer,
// so a regression pipeline reports R² and a classification pipeline reports
// accuracy.
func (p *Pipeline) Score(X, y mat.Matrix) (float64, error) {
	if !p.state.IsFitted() {
		return 0, errors.NewNotFittedError("Pipeline", "Score")
	}
	scorer, ok := p.estimator.(model.Scorer)
	if !ok {
		return 0, errors.NewValueError("Pipeline.Score", "final estimator does not implement Score")
	}
	features, err := p.transformer.Transform(X)
	if err != nil {
		return 0, err
	}
	return scorer.Score(features, y)
}

// IsFitted returns whether Fit has completed successfully.
func (p *Pipeline) IsFitted() bool {
	return p.state.IsFitted()
}

// String returns a readable description of the pipeline steps.
func (p *Pipeline) String() string {
	var steps []string
	for _, step := range []interface{}{p.transformer, p.estimator} {
		if step == nil {
			steps = append(steps, "nil")
			continue
		}
		if s, ok := step.(fmt.Stringer); ok {
			steps = append(steps, s.String())
		} else {
			steps = append(steps, fmt.Sprintf("%T", step))
		}
	}
	return fmt.Sprintf("Pipeline(%s)", strings.Join(steps, " -> "))
}
