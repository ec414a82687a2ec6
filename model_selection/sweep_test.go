package model_selection

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/statlearn/dataset"
	"github.com/YuminosukeSato/statlearn/pkg/errors"
)

// TestPolynomialDegreeSweepWalkthrough runs the full bias/variance scenario:
// 20 noisy samples of the sine target, 10 folds, degrees 1 through 15.
func TestPolynomialDegreeSweepWalkthrough(t *testing.T) {
	errors.SetWarningHandler(func(error) {})
	defer errors.SetWarningHandler(nil)

	X, y, err := dataset.SineData(20, 0.15, 42)
	if err != nil {
		t.Fatalf("SineData failed: %v", err)
	}

	result, err := PolynomialDegreeSweep(X, y, DefaultSweepConfig())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	if len(result.Failed) != 0 {
		t.Fatalf("no degree should fail on this data, got failures: %v", result.Failed)
	}
	if len(result.Scores) != 15 {
		t.Fatalf("got %d degree records, want 15", len(result.Scores))
	}
	if len(result.Curves) != 0 {
		t.Errorf("curves were not requested, got %d", len(result.Curves))
	}

	for i, ds := range result.Scores {
		if ds.Degree != i+1 {
			t.Errorf("record %d has degree %d, want %d", i, ds.Degree, i+1)
		}
		if len(ds.Scores) != 10 {
			t.Errorf("degree %d has %d fold scores, want 10", ds.Degree, len(ds.Scores))
		}
		if ds.MeanMSE() <= 0 {
			t.Errorf("degree %d mean MSE = %g, want > 0 on noisy data", ds.Degree, ds.MeanMSE())
		}
	}

	// The straight line underfits and the highest degree overfits, so both
	// must score worse than the best degree in between.
	best, ok := result.Best()
	if !ok {
		t.Fatal("Best must report a degree when scores exist")
	}
	if best.Degree <= 1 || best.Degree >= 15 {
		t.Errorf("best degree = %d, want an interior degree", best.Degree)
	}
	if result.Scores[0].MeanMSE() <= best.MeanMSE() {
		t.Errorf("degree 1 MSE %g should exceed best MSE %g",
			result.Scores[0].MeanMSE(), best.MeanMSE())
	}
	if result.Scores[14].MeanMSE() <= best.MeanMSE() {
		t.Errorf("degree 15 MSE %g should exceed best MSE %g",
			result.Scores[14].MeanMSE(), best.MeanMSE())
	}
}

func TestPolynomialDegreeSweepDeterministic(t *testing.T) {
	errors.SetWarningHandler(func(error) {})
	defer errors.SetWarningHandler(nil)

	X, y, err := dataset.SineData(20, 0.15, 42)
	if err != nil {
		t.Fatalf("SineData failed: %v", err)
	}

	cfg := DefaultSweepConfig()
	cfg.Shuffle = true

	first, err := PolynomialDegreeSweep(X, y, cfg)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	second, err := PolynomialDegreeSweep(X, y, cfg)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	if !reflect.DeepEqual(first.Scores, second.Scores) {
		t.Error("identical data and config must reproduce identical scores")
	}

	var firstReport, secondReport bytes.Buffer
	if err := first.Report(&firstReport); err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if err := second.Report(&secondReport); err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if firstReport.String() != secondReport.String() {
		t.Error("report text must be reproducible")
	}
}

// The fold partition depends only on the sample count, fold count, and seed,
// so extending the degree range must not change earlier degrees' scores.
func TestPolynomialDegreeSweepSharesFoldsAcrossDegrees(t *testing.T) {
	errors.SetWarningHandler(func(error) {})
	defer errors.SetWarningHandler(nil)

	X, y, err := dataset.SineData(24, 0.2, 7)
	if err != nil {
		t.Fatalf("SineData failed: %v", err)
	}

	cfg := SweepConfig{MaxDegree: 4, NSplits: 6, Shuffle: true, Seed: 11, FitIntercept: true}
	short, err := PolynomialDegreeSweep(X, y, cfg)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	cfg.MaxDegree = 8
	long, err := PolynomialDegreeSweep(X, y, cfg)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	if len(short.Scores) != 4 || len(long.Scores) != 8 {
		t.Fatalf("got %d and %d records, want 4 and 8", len(short.Scores), len(long.Scores))
	}
	if !reflect.DeepEqual(short.Scores, long.Scores[:4]) {
		t.Error("shared degrees must score identically regardless of sweep length")
	}
}

func TestPolynomialDegreeSweepInsufficientData(t *testing.T) {
	X, y, err := dataset.SineData(9, 0.1, 3)
	if err != nil {
		t.Fatalf("SineData failed: %v", err)
	}

	cfg := DefaultSweepConfig() // 10 folds
	result, err := PolynomialDegreeSweep(X, y, cfg)
	if err == nil {
		t.Fatal("9 samples cannot fill 10 folds")
	}
	if result != nil {
		t.Error("no result may be returned alongside an error")
	}

	var insufficient *errors.InsufficientDataError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientDataError, got %T: %v", err, err)
	}
	if insufficient.NSamples != 9 || insufficient.Required != 10 {
		t.Errorf("error reports %d/%d, want 9/10", insufficient.NSamples, insufficient.Required)
	}
}

// With inputs restricted to {0, 1}, x^d equals x for every d >= 2, so those
// degrees hit an exactly singular design matrix while degree 1 stays sound.
func TestPolynomialDegreeSweepIsolatesDegenerateDegrees(t *testing.T) {
	errors.SetWarningHandler(func(error) {})
	defer errors.SetWarningHandler(nil)

	X := mat.NewDense(8, 1, []float64{0, 1, 0, 1, 0, 1, 0, 1})
	y := mat.NewDense(8, 1, []float64{0.1, 1.1, -0.1, 0.9, 0.0, 1.0, 0.05, 1.05})

	cfg := SweepConfig{MaxDegree: 3, NSplits: 2, FitIntercept: true}
	result, err := PolynomialDegreeSweep(X, y, cfg)
	if err != nil {
		t.Fatalf("a per-degree failure must not abort the sweep: %v", err)
	}

	if len(result.Scores) != 1 || result.Scores[0].Degree != 1 {
		t.Fatalf("only degree 1 should complete, got %+v", result.Scores)
	}
	if len(result.Failed) != 2 {
		t.Fatalf("degrees 2 and 3 should fail, got failures: %v", result.Failed)
	}

	for _, degree := range []int{2, 3} {
		failure, recorded := result.Failed[degree]
		if !recorded {
			t.Errorf("degree %d missing from Failed", degree)
			continue
		}
		var degenerate *errors.DegenerateFeatureError
		if !errors.As(failure, &degenerate) {
			t.Errorf("degree %d: expected DegenerateFeatureError, got %v", degree, failure)
		}
		if !errors.Is(failure, errors.ErrSingularMatrix) {
			t.Errorf("degree %d: failure should match ErrSingularMatrix", degree)
		}
	}
}

func TestPolynomialDegreeSweepCurves(t *testing.T) {
	errors.SetWarningHandler(func(error) {})
	defer errors.SetWarningHandler(nil)

	X, y, err := dataset.SineData(20, 0.15, 42)
	if err != nil {
		t.Fatalf("SineData failed: %v", err)
	}

	cfg := SweepConfig{MaxDegree: 3, NSplits: 5, FitIntercept: true, GridSize: 50}
	result, err := PolynomialDegreeSweep(X, y, cfg)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	if len(result.Curves) != 3 {
		t.Fatalf("got %d curves, want one per degree", len(result.Curves))
	}

	n, _ := X.Dims()
	lo, hi := X.At(0, 0), X.At(n-1, 0) // SineData returns sorted inputs
	for i, curve := range result.Curves {
		if curve.Degree != i+1 {
			t.Errorf("curve %d has degree %d, want %d", i, curve.Degree, i+1)
		}
		if len(curve.X) != 50 || len(curve.Y) != 50 {
			t.Errorf("curve %d has %d/%d points, want 50/50", i, len(curve.X), len(curve.Y))
		}
		if curve.X[0] != lo || curve.X[len(curve.X)-1] != hi {
			t.Errorf("curve %d spans [%g, %g], want the observed range [%g, %g]",
				i, curve.X[0], curve.X[len(curve.X)-1], lo, hi)
		}
	}
}

func TestPolynomialDegreeSweepValidation(t *testing.T) {
	X, y, err := dataset.SineData(20, 0.1, 1)
	if err != nil {
		t.Fatalf("SineData failed: %v", err)
	}

	base := SweepConfig{MaxDegree: 3, NSplits: 4, FitIntercept: true}

	cases := []struct {
		name string
		x    mat.Matrix
		y    mat.Matrix
		cfg  SweepConfig
	}{
		{"nil x", nil, y, base},
		{"nil y", X, nil, base},
		{"empty x", &mat.Dense{}, y, base},
		{"multi-column x", mat.NewDense(20, 2, nil), y, base},
		{"row mismatch", X, mat.NewDense(10, 1, nil), base},
		{"multi-column y", X, mat.NewDense(20, 2, nil), base},
		{"zero max degree", X, y, SweepConfig{MaxDegree: 0, NSplits: 4}},
		{"single split", X, y, SweepConfig{MaxDegree: 3, NSplits: 1}},
		{"grid size one", X, y, SweepConfig{MaxDegree: 3, NSplits: 4, GridSize: 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := PolynomialDegreeSweep(tc.x, tc.y, tc.cfg); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestSweepResultBest(t *testing.T) {
	result := &SweepResult{Scores: []DegreeScore{
		{Degree: 1, Mean: -0.5},
		{Degree: 2, Mean: -0.1},
		{Degree: 3, Mean: -0.2},
	}}

	best, ok := result.Best()
	if !ok {
		t.Fatal("Best must succeed when scores exist")
	}
	if best.Degree != 2 {
		t.Errorf("best degree = %d, want 2", best.Degree)
	}

	if _, ok := (&SweepResult{}).Best(); ok {
		t.Error("Best must report ok=false with no completed degrees")
	}
}

func TestSweepResultReportFormat(t *testing.T) {
	result := &SweepResult{Scores: []DegreeScore{
		{Degree: 1, Mean: -0.25, Std: 0.05},
		{Degree: 2, Mean: -0.0625, Std: 0.0125},
	}}

	var buf bytes.Buffer
	if err := result.Report(&buf); err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	want := "for degree 1 polynomial fit, the mean squared error is 0.25 +/- 0.1\n" +
		"for degree 2 polynomial fit, the mean squared error is 0.0625 +/- 0.025\n"
	if buf.String() != want {
		t.Errorf("report mismatch:\ngot:\n%swant:\n%s", buf.String(), want)
	}
}

func TestSweepReportEndToEnd(t *testing.T) {
	errors.SetWarningHandler(func(error) {})
	defer errors.SetWarningHandler(nil)

	X, y, err := dataset.SineData(20, 0.15, 42)
	if err != nil {
		t.Fatalf("SineData failed: %v", err)
	}

	result, err := PolynomialDegreeSweep(X, y, DefaultSweepConfig())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	var buf bytes.Buffer
	if err := result.Report(&buf); err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 15 {
		t.Fatalf("report has %d lines, want 15", len(lines))
	}
	for i, line := range lines {
		if !strings.HasPrefix(line, "for degree ") {
			t.Errorf("line %d malformed: %q", i, line)
		}
		if !strings.Contains(line, "polynomial fit, the mean squared error is ") ||
			!strings.Contains(line, " +/- ") {
			t.Errorf("line %d malformed: %q", i, line)
		}
	}
}
