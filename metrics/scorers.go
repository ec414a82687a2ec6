package metrics

import (
	"gonum.org/v1/gonum/mat"
)

// NegMSEScorer scores predictions by negated mean squared error.
//
// Cross-validation treats higher scores as better, so error metrics
// are negated before being handed to the selector. Callers that want
// the raw MSE back negate the score again.
func NegMSEScorer(yTrue, yPred mat.Matrix) (float64, error) {
	mse, err := MSEMatrix(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return -mse, nil
}

// AccuracyScorer scores class predictions by accuracy. Both inputs
// must be n×1 label matrices.
func AccuracyScorer(yTrue, yPred mat.Matrix) (float64, error) {
	yTrueVec, yPredVec, err := columnPair("AccuracyScorer", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return Accuracy(yTrueVec, yPredVec)
}

// R2Scorer scores predictions by the coefficient of determination.
func R2Scorer(yTrue, yPred mat.Matrix) (float64, error) {
	yTrueVec, yPredVec, err := columnPair("R2Scorer", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return R2Score(yTrueVec, yPredVec)
}
