package linear

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/statlearn/pkg/errors"
)

func TestLinearRegression_Basic(t *testing.T) {
	// y = 2x + 1
	X := mat.NewDense(5, 1, []float64{0, 1, 2, 3, 4})
	y := mat.NewDense(5, 1, []float64{1, 3, 5, 7, 9})

	lr := NewLinearRegression()
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	coef := lr.Coef()
	if len(coef) != 1 {
		t.Fatalf("expected 1 coefficient, got %d", len(coef))
	}
	if math.Abs(coef[0]-2.0) > 1e-10 {
		t.Errorf("coefficient = %v, want 2.0", coef[0])
	}
	if math.Abs(lr.Intercept()-1.0) > 1e-10 {
		t.Errorf("intercept = %v, want 1.0", lr.Intercept())
	}

	XTest := mat.NewDense(2, 1, []float64{5, 10})
	preds, err := lr.Predict(XTest)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if math.Abs(preds.At(0, 0)-11.0) > 1e-10 {
		t.Errorf("prediction for x=5: got %v, want 11", preds.At(0, 0))
	}
	if math.Abs(preds.At(1, 0)-21.0) > 1e-10 {
		t.Errorf("prediction for x=10: got %v, want 21", preds.At(1, 0))
	}
}

func TestLinearRegression_NoIntercept(t *testing.T) {
	// y = 3x through the origin
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewDense(4, 1, []float64{3, 6, 9, 12})

	lr := NewLinearRegression(WithFitIntercept(false))
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if math.Abs(lr.Coef()[0]-3.0) > 1e-10 {
		t.Errorf("coefficient = %v, want 3.0", lr.Coef()[0])
	}
	if lr.Intercept() != 0.0 {
		t.Errorf("intercept = %v, want 0", lr.Intercept())
	}
}

func TestLinearRegression_MultipleFeatures(t *testing.T) {
	// y = 1 + 2*x1 - 3*x2
	X := mat.NewDense(5, 2, []float64{
		1, 0,
		0, 1,
		1, 1,
		2, 1,
		1, 2,
	})
	y := mat.NewDense(5, 1, []float64{3, -2, 0, 2, -3})

	lr := NewLinearRegression()
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	coef := lr.Coef()
	if math.Abs(coef[0]-2.0) > 1e-9 {
		t.Errorf("coef[0] = %v, want 2.0", coef[0])
	}
	if math.Abs(coef[1]-(-3.0)) > 1e-9 {
		t.Errorf("coef[1] = %v, want -3.0", coef[1])
	}
	if math.Abs(lr.Intercept()-1.0) > 1e-9 {
		t.Errorf("intercept = %v, want 1.0", lr.Intercept())
	}
}

func TestLinearRegression_Score(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewDense(4, 1, []float64{2, 4, 6, 8})

	lr := NewLinearRegression()
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	score, err := lr.Score(X, y)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if math.Abs(score-1.0) > 1e-10 {
		t.Errorf("R^2 = %v, want 1.0 for a perfect linear fit", score)
	}
}

func TestLinearRegression_NotFitted(t *testing.T) {
	lr := NewLinearRegression()

	_, err := lr.Predict(mat.NewDense(1, 1, []float64{1}))
	if err == nil {
		t.Fatal("Predict before Fit must fail")
	}

	var notFitted *errors.NotFittedError
	if !errors.As(err, &notFitted) {
		t.Errorf("expected NotFittedError, got %T: %v", err, err)
	}

	if _, err := lr.ExportWeights(); err == nil {
		t.Error("ExportWeights before Fit must fail")
	}
}

func TestLinearRegression_DegenerateDesign(t *testing.T) {
	// two identical columns make the design matrix rank deficient
	X := mat.NewDense(4, 2, []float64{
		1, 1,
		2, 2,
		3, 3,
		4, 4,
	})
	y := mat.NewDense(4, 1, []float64{1, 2, 3, 4})

	lr := NewLinearRegression()
	err := lr.Fit(X, y)
	if err == nil {
		t.Fatal("Fit must fail on a rank-deficient design matrix")
	}

	var degenerate *errors.DegenerateFeatureError
	if !errors.As(err, &degenerate) {
		t.Fatalf("expected DegenerateFeatureError, got %T: %v", err, err)
	}
	if !errors.Is(err, errors.ErrSingularMatrix) {
		t.Error("DegenerateFeatureError must match ErrSingularMatrix")
	}
	if lr.IsFitted() {
		t.Error("model must stay unfitted after a failed Fit")
	}
}

func TestLinearRegression_Underdetermined(t *testing.T) {
	// 2 samples cannot pin down 3 features plus an intercept
	X := mat.NewDense(2, 3, []float64{
		1, 2, 3,
		4, 5, 6,
	})
	y := mat.NewDense(2, 1, []float64{1, 2})

	lr := NewLinearRegression()
	err := lr.Fit(X, y)
	if err == nil {
		t.Fatal("Fit must fail when rows < columns")
	}

	var degenerate *errors.DegenerateFeatureError
	if !errors.As(err, &degenerate) {
		t.Fatalf("expected DegenerateFeatureError, got %T: %v", err, err)
	}
}

func TestLinearRegression_ConditionTolerance(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	y := mat.NewDense(3, 1, []float64{1, 2, 3})

	// condition numbers are always >= 1, so a tolerance below 1
	// forces the singularity path deterministically
	lr := NewLinearRegression(WithConditionTolerance(0.5))
	err := lr.Fit(X, y)
	if err == nil {
		t.Fatal("Fit must fail when the condition number exceeds the tolerance")
	}
	if !errors.Is(err, errors.ErrSingularMatrix) {
		t.Errorf("expected a singularity error, got %v", err)
	}
}

func TestLinearRegression_ConditioningWarning(t *testing.T) {
	var warned []error
	errors.SetWarningHandler(func(w error) { warned = append(warned, w) })
	defer errors.SetWarningHandler(nil)

	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	y := mat.NewDense(3, 1, []float64{2, 4, 6})

	// any condition number exceeds a threshold of 1
	lr := NewLinearRegression(WithConditionWarnThreshold(1.0))
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if len(warned) != 1 {
		t.Fatalf("expected exactly one warning, got %d", len(warned))
	}
	var conditioning *errors.ConditioningWarning
	if !errors.As(warned[0], &conditioning) {
		t.Fatalf("expected ConditioningWarning, got %T", warned[0])
	}
	if conditioning.Cond <= 1.0 {
		t.Errorf("warning must carry the observed condition number, got %v", conditioning.Cond)
	}

	// the fit still completed
	if !lr.IsFitted() {
		t.Error("a conditioning warning must not abort the fit")
	}
}

func TestLinearRegression_RejectsNaN(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{1, math.NaN(), 3})
	y := mat.NewDense(3, 1, []float64{1, 2, 3})

	lr := NewLinearRegression()
	if err := lr.Fit(X, y); err == nil {
		t.Error("Fit must reject NaN inputs")
	}
}

func TestLinearRegression_ExportImportRoundTrip(t *testing.T) {
	X := mat.NewDense(5, 2, []float64{
		1, 2,
		2, 1,
		3, 3,
		4, 2,
		5, 5,
	})
	y := mat.NewDense(5, 1, []float64{4, 3, 7, 7, 12})

	original := NewLinearRegression()
	if err := original.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	weights, err := original.ExportWeights()
	if err != nil {
		t.Fatalf("ExportWeights failed: %v", err)
	}

	restored := NewLinearRegression()
	if err := restored.ImportWeights(weights); err != nil {
		t.Fatalf("ImportWeights failed: %v", err)
	}

	wantPreds, err := original.Predict(X)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	gotPreds, err := restored.Predict(X)
	if err != nil {
		t.Fatalf("Predict on restored model failed: %v", err)
	}
	if !mat.EqualApprox(wantPreds, gotPreds, 1e-15) {
		t.Error("restored model must reproduce the original predictions exactly")
	}
}

func TestLinearRegression_TamperedWeightsRejected(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	y := mat.NewDense(3, 1, []float64{2, 4, 6})

	lr := NewLinearRegression()
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	weights, err := lr.ExportWeights()
	if err != nil {
		t.Fatalf("ExportWeights failed: %v", err)
	}
	weights.Coefficients[0] += 0.001

	restored := NewLinearRegression()
	if err := restored.ImportWeights(weights); err == nil {
		t.Error("ImportWeights must reject weights with a stale checksum")
	}
}

func TestLinearRegression_Clone(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewDense(4, 1, []float64{1, 3, 5, 7})

	lr := NewLinearRegression(WithFitIntercept(false))
	clone := lr.Clone()
	if clone.IsFitted() {
		t.Error("clone of an unfitted model must be unfitted")
	}

	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	fittedClone := lr.Clone()
	if !fittedClone.IsFitted() {
		t.Fatal("clone of a fitted model must be fitted")
	}

	wantPreds, _ := lr.Predict(X)
	gotPreds, err := fittedClone.Predict(X)
	if err != nil {
		t.Fatalf("Predict on clone failed: %v", err)
	}
	if !mat.EqualApprox(wantPreds, gotPreds, 1e-15) {
		t.Error("clone must predict identically to the original")
	}
}

func TestLinearRegression_SetParams(t *testing.T) {
	lr := NewLinearRegression()

	if err := lr.SetParams(map[string]interface{}{"fit_intercept": false}); err != nil {
		t.Fatalf("SetParams failed: %v", err)
	}
	if lr.GetParams()["fit_intercept"] != false {
		t.Error("fit_intercept was not updated")
	}

	if err := lr.SetParams(map[string]interface{}{"no_such_param": 1}); err == nil {
		t.Error("SetParams must reject unknown parameters")
	}

	if err := lr.SetParams(map[string]interface{}{"fit_intercept": "yes"}); err == nil {
		t.Error("SetParams must reject wrongly typed values")
	}
}

func TestLinearRegression_DimensionValidation(t *testing.T) {
	lr := NewLinearRegression()

	// row mismatch between X and y
	err := lr.Fit(mat.NewDense(3, 1, []float64{1, 2, 3}), mat.NewDense(2, 1, []float64{1, 2}))
	if err == nil {
		t.Error("Fit must reject mismatched sample counts")
	}

	// y with more than one column
	err = lr.Fit(mat.NewDense(2, 1, []float64{1, 2}), mat.NewDense(2, 2, []float64{1, 2, 3, 4}))
	if err == nil {
		t.Error("Fit must reject multi-column targets")
	}

	// feature count mismatch at predict time
	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	y := mat.NewDense(3, 1, []float64{1, 2, 3})
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if _, err := lr.Predict(mat.NewDense(1, 2, []float64{1, 2})); err == nil {
		t.Error("Predict must reject a feature count the model was not fitted with")
	}
}
