package linear

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/YuminosukeSato/statlearn/core/model"
	"github.com/YuminosukeSato/statlearn/metrics"
	"github.com/YuminosukeSato/statlearn/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// gradient norm cap for a single descent step
const maxGradNorm = 1e3

// LogisticRegression is a binary classifier trained with full-batch
// gradient descent on the cross-entropy loss.
//
// Weight initialization is seeded, so training is reproducible for a
// given seed. When descent stops without reaching the tolerance a
// ConvergenceWarning is emitted through the warning registry.
type LogisticRegression struct {
	state *model.StateManager

	// Hyperparameters
	learningRate float64 // base learning rate, decayed per iteration
	maxIter      int     // maximum gradient descent iterations
	tol          float64 // stop when the gradient max-norm falls below this
	l2           float64 // L2 penalty strength, 0 disables
	seed         int64   // seed for weight initialization

	// Learned parameters
	coef      []float64
	intercept float64
	classes   []int // sorted unique labels, classes[1] is the positive class
	nIter     int   // iterations actually run
	nFeatures int
}

// NewLogisticRegression creates a new binary LogisticRegression
// classifier.
func NewLogisticRegression(opts ...LogisticOption) *LogisticRegression {
	lr := &LogisticRegression{
		state:        model.NewStateManager(),
		learningRate: 1.0,
		maxIter:      1000,
		tol:          1e-4,
		l2:           0,
		seed:         42,
	}

	for _, opt := range opts {
		opt(lr)
	}

	return lr
}

// Fit trains the classifier. y must hold exactly two distinct integer
// labels; the larger one becomes the positive class.
func (lr *LogisticRegression) Fit(X, y mat.Matrix) error {
	nSamples, nFeatures := X.Dims()
	yRows, yCols := y.Dims()

	if nSamples == 0 || nFeatures == 0 {
		return errors.NewModelError("LogisticRegression.Fit", "empty data", errors.ErrEmptyData)
	}
	if nSamples != yRows {
		return errors.NewDimensionError("LogisticRegression.Fit", nSamples, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewValueError("LogisticRegression.Fit", "y must be a column vector")
	}
	if err := errors.CheckMatrix("LogisticRegression.Fit", X, nSamples, nFeatures, 0); err != nil {
		return err
	}

	classes := extractClasses(y)
	if len(classes) != 2 {
		return errors.NewValueError("LogisticRegression.Fit",
			fmt.Sprintf("expects exactly two classes, got %d", len(classes)))
	}
	lr.classes = classes
	lr.nFeatures = nFeatures

	// 0/1 targets with classes[1] as the positive class
	yBinary := make([]float64, nSamples)
	for i := 0; i < nSamples; i++ {
		if int(y.At(i, 0)) == classes[1] {
			yBinary[i] = 1.0
		}
	}

	// seeded small random initialization
	rng := rand.New(rand.NewPCG(uint64(lr.seed), uint64(lr.seed)))
	lr.coef = make([]float64, nFeatures)
	for j := range lr.coef {
		lr.coef[j] = rng.NormFloat64() * 0.01
	}
	lr.intercept = 0.0

	converged := false
	for iter := 0; iter < lr.maxIter; iter++ {
		gradWeights := make([]float64, nFeatures)
		gradIntercept := 0.0

		for i := 0; i < nSamples; i++ {
			z := lr.intercept
			for j := 0; j < nFeatures; j++ {
				z += X.At(i, j) * lr.coef[j]
			}
			residual := sigmoid(z) - yBinary[i]

			gradIntercept += residual
			for j := 0; j < nFeatures; j++ {
				gradWeights[j] += residual * X.At(i, j)
			}
		}

		for j := range gradWeights {
			gradWeights[j] /= float64(nSamples)
		}
		gradIntercept /= float64(nSamples)

		if lr.l2 > 0 {
			for j := range gradWeights {
				gradWeights[j] += lr.l2 * lr.coef[j]
			}
		}

		gradWeights = errors.ClipGradient(gradWeights, maxGradNorm)

		// decaying learning rate
		rate := lr.learningRate / (1.0 + 0.1*float64(iter))

		for j := range lr.coef {
			lr.coef[j] -= rate * gradWeights[j]
		}
		lr.intercept -= rate * gradIntercept

		lr.nIter = iter + 1

		maxGrad := math.Abs(gradIntercept)
		for _, g := range gradWeights {
			if math.Abs(g) > maxGrad {
				maxGrad = math.Abs(g)
			}
		}
		if maxGrad < lr.tol {
			converged = true
			break
		}
	}

	if !converged {
		errors.Warn(errors.NewConvergenceWarning("LogisticRegression", lr.maxIter,
			"gradient descent stopped before reaching the tolerance"))
	}

	lr.state.SetFitted()
	lr.state.SetDimensions(nFeatures, nSamples)
	return nil
}

// Predict returns the predicted class label for each row of X.
func (lr *LogisticRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	probas, err := lr.PredictProba(X)
	if err != nil {
		return nil, err
	}

	nSamples, _ := X.Dims()
	predictions := mat.NewDense(nSamples, 1, nil)
	for i := 0; i < nSamples; i++ {
		if probas.At(i, 1) >= 0.5 {
			predictions.Set(i, 0, float64(lr.classes[1]))
		} else {
			predictions.Set(i, 0, float64(lr.classes[0]))
		}
	}

	return predictions, nil
}

// PredictProba returns an n×2 matrix of class probabilities, columns
// ordered like Classes().
func (lr *LogisticRegression) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	if !lr.state.IsFitted() {
		return nil, errors.NewNotFittedError("LogisticRegression", "PredictProba")
	}

	nSamples, nFeatures := X.Dims()
	if nFeatures != lr.nFeatures {
		return nil, errors.NewDimensionError("LogisticRegression.PredictProba", lr.nFeatures, nFeatures, 1)
	}

	probas := mat.NewDense(nSamples, 2, nil)
	for i := 0; i < nSamples; i++ {
		z := lr.intercept
		for j := 0; j < nFeatures; j++ {
			z += X.At(i, j) * lr.coef[j]
		}
		p := sigmoid(z)
		probas.Set(i, 0, 1.0-p)
		probas.Set(i, 1, p)
	}

	return probas, nil
}

// Score returns the mean accuracy on the given test data and labels.
func (lr *LogisticRegression) Score(X, y mat.Matrix) (float64, error) {
	predictions, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.AccuracyScorer(y, predictions)
}

// Classes returns the sorted unique labels seen during fitting.
func (lr *LogisticRegression) Classes() []int {
	if lr.classes == nil {
		return nil
	}
	classes := make([]int, len(lr.classes))
	copy(classes, lr.classes)
	return classes
}

// Coef returns a copy of the learned weights.
func (lr *LogisticRegression) Coef() []float64 {
	if lr.coef == nil {
		return nil
	}
	coef := make([]float64, len(lr.coef))
	copy(coef, lr.coef)
	return coef
}

// Intercept returns the learned intercept.
func (lr *LogisticRegression) Intercept() float64 {
	return lr.intercept
}

// NIter returns the number of gradient descent iterations actually run.
func (lr *LogisticRegression) NIter() int {
	return lr.nIter
}

// IsFitted returns whether the model has been fitted.
func (lr *LogisticRegression) IsFitted() bool {
	return lr.state.IsFitted()
}

// GetParams returns the model hyperparameters.
func (lr *LogisticRegression) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"learning_rate": lr.learningRate,
		"max_iter":      lr.maxIter,
		"tol":           lr.tol,
		"l2":            lr.l2,
		"seed":          lr.seed,
	}
}

// SetParams sets the model hyperparameters.
func (lr *LogisticRegression) SetParams(params map[string]interface{}) error {
	for key, value := range params {
		switch key {
		case "learning_rate":
			v, ok := value.(float64)
			if !ok {
				return errors.NewValidationError(key, "must be a float64", value)
			}
			lr.learningRate = v
		case "max_iter":
			switch v := value.(type) {
			case int:
				lr.maxIter = v
			case float64:
				lr.maxIter = int(v)
			default:
				return errors.NewValidationError(key, "must be an int", value)
			}
		case "tol":
			v, ok := value.(float64)
			if !ok {
				return errors.NewValidationError(key, "must be a float64", value)
			}
			lr.tol = v
		case "l2":
			v, ok := value.(float64)
			if !ok {
				return errors.NewValidationError(key, "must be a float64", value)
			}
			lr.l2 = v
		case "seed":
			switch v := value.(type) {
			case int64:
				lr.seed = v
			case int:
				lr.seed = int64(v)
			case float64:
				lr.seed = int64(v)
			default:
				return errors.NewValidationError(key, "must be an int64", value)
			}
		default:
			return errors.NewValidationError(key, "unknown parameter", value)
		}
	}
	return nil
}

// ExportWeights exports the fitted weights for persistence.
func (lr *LogisticRegression) ExportWeights() (*model.ModelWeights, error) {
	if !lr.state.IsFitted() {
		return nil, errors.NewNotFittedError("LogisticRegression", "ExportWeights")
	}

	classes := make([]int, len(lr.classes))
	copy(classes, lr.classes)

	weights := &model.ModelWeights{
		ModelType:       "LogisticRegression",
		Version:         "1.0.0",
		Coefficients:    lr.Coef(),
		Intercept:       lr.intercept,
		IsFitted:        true,
		Hyperparameters: lr.GetParams(),
		Metadata: map[string]interface{}{
			"n_features": lr.nFeatures,
			"n_iter":     lr.nIter,
			"classes":    classes,
		},
	}
	weights.Seal()

	return weights, nil
}

// ImportWeights restores the classifier from exported weights.
func (lr *LogisticRegression) ImportWeights(weights *model.ModelWeights) error {
	if weights == nil {
		return errors.NewValueError("LogisticRegression.ImportWeights", "weights cannot be nil")
	}
	if weights.ModelType != "LogisticRegression" {
		return errors.NewValueError("LogisticRegression.ImportWeights",
			fmt.Sprintf("model type mismatch: expected LogisticRegression, got %s", weights.ModelType))
	}
	if err := weights.Validate(); err != nil {
		return errors.Wrap(err, "LogisticRegression.ImportWeights")
	}

	if err := lr.SetParams(weights.Hyperparameters); err != nil {
		return err
	}

	lr.coef = make([]float64, len(weights.Coefficients))
	copy(lr.coef, weights.Coefficients)
	lr.intercept = weights.Intercept

	// metadata numbers arrive as float64 after a JSON round trip
	if v, ok := weights.Metadata["n_features"].(float64); ok {
		lr.nFeatures = int(v)
	} else if v, ok := weights.Metadata["n_features"].(int); ok {
		lr.nFeatures = v
	}
	if v, ok := weights.Metadata["n_iter"].(float64); ok {
		lr.nIter = int(v)
	} else if v, ok := weights.Metadata["n_iter"].(int); ok {
		lr.nIter = v
	}

	switch classes := weights.Metadata["classes"].(type) {
	case []int:
		lr.classes = make([]int, len(classes))
		copy(lr.classes, classes)
	case []interface{}:
		lr.classes = make([]int, len(classes))
		for i, c := range classes {
			v, ok := c.(float64)
			if !ok {
				return errors.NewValueError("LogisticRegression.ImportWeights", "classes metadata is malformed")
			}
			lr.classes[i] = int(v)
		}
	default:
		return errors.NewValueError("LogisticRegression.ImportWeights", "classes metadata is missing")
	}

	lr.state.SetFitted()
	lr.state.SetDimensions(lr.nFeatures, 0)
	return nil
}

// Clone creates a new instance with the same hyperparameters. Fitted
// weights are copied as well.
func (lr *LogisticRegression) Clone() *LogisticRegression {
	clone := NewLogisticRegression(
		WithLearningRate(lr.learningRate),
		WithMaxIter(lr.maxIter),
		WithTol(lr.tol),
		WithL2(lr.l2),
		WithSeed(lr.seed),
	)

	if lr.state.IsFitted() {
		if weights, err := lr.ExportWeights(); err == nil {
			_ = clone.ImportWeights(weights)
		}
	}

	return clone
}

// String returns the string representation of the model.
func (lr *LogisticRegression) String() string {
	if !lr.state.IsFitted() {
		return fmt.Sprintf("LogisticRegression(learning_rate=%g, max_iter=%d, tol=%g, l2=%g)",
			lr.learningRate, lr.maxIter, lr.tol, lr.l2)
	}
	return fmt.Sprintf("LogisticRegression(classes=%v, n_features=%d, n_iter=%d, fitted=true)",
		lr.classes, lr.nFeatures, lr.nIter)
}

// extractClasses collects the sorted unique integer labels in y.
func extractClasses(y mat.Matrix) []int {
	rows, _ := y.Dims()
	seen := make(map[int]bool)
	for i := 0; i < rows; i++ {
		seen[int(y.At(i, 0))] = true
	}

	classes := make([]int, 0, len(seen))
	for class := range seen {
		classes = append(classes, class)
	}
	sort.Ints(classes)

	return classes
}

// sigmoid computes 1/(1+e^-z) with overflow protection.
func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + errors.StabilizeExp(-z))
}
