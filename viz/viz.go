// Package viz renders the walkthrough's figures with gonum/plot. The
// evaluators return plain slices and plot-ready curves; this package is the
// only place that touches files.
package viz

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/statlearn/dataset"
	"github.com/YuminosukeSato/statlearn/model_selection"
	"github.com/YuminosukeSato/statlearn/pkg/errors"
)

// FitCurves draws the sample points, the fitted curve of each degree, and
// optionally the true function, then saves the figure as a PNG at path.
// truth may be nil to omit the reference line.
func FitCurves(x, y []float64, curves []model_selection.Curve, truth func(float64) float64, path string) error {
	op := "viz.FitCurves"
	if len(x) == 0 {
		return errors.NewValueError(op, "no sample points to draw")
	}
	if len(x) != len(y) {
		return errors.NewDimensionError(op, len(x), len(y), 0)
	}

	p := plot.New()
	p.Title.Text = "Polynomial fits"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	if err := plotutil.AddScatters(p, "samples", toXYs(x, y)); err != nil {
		return errors.Wrap(err, "viz: adding samples")
	}

	if truth != nil {
		grid := truthGrid(x, curves)
		truthY := make([]float64, len(grid))
		for i, v := range grid {
			truthY[i] = truth(v)
		}
		if err := plotutil.AddLines(p, "true function", toXYs(grid, truthY)); err != nil {
			return errors.Wrap(err, "viz: adding true function")
		}
	}

	for _, curve := range curves {
		name := fmt.Sprintf("degree %d", curve.Degree)
		if err := plotutil.AddLines(p, name, toXYs(curve.X, curve.Y)); err != nil {
			return errors.Wrapf(err, "viz: adding curve for degree %d", curve.Degree)
		}
	}

	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}

// ValidationCurve draws the cross-validated mean squared error per degree
// with a two standard deviation band as Y error bars, saving a PNG at path.
func ValidationCurve(scores []model_selection.DegreeScore, path string) error {
	op := "viz.ValidationCurve"
	if len(scores) == 0 {
		return errors.NewValueError(op, "no degree scores to draw")
	}

	pts := make(plotter.XYs, len(scores))
	yerrs := make(plotter.YErrors, len(scores))
	for i, ds := range scores {
		pts[i].X = float64(ds.Degree)
		pts[i].Y = ds.MeanMSE()
		band := 2 * ds.Std
		yerrs[i].Low = band
		yerrs[i].High = band
	}

	p := plot.New()
	p.Title.Text = "Cross-validated error by degree"
	p.X.Label.Text = "polynomial degree"
	p.Y.Label.Text = "mean squared error"

	bars, err := plotter.NewYErrorBars(errorPoints{XYs: pts, YErrors: yerrs})
	if err != nil {
		return errors.Wrap(err, "viz: building error bars")
	}
	p.Add(bars)

	if err := plotutil.AddLinePoints(p, "cv mean", pts); err != nil {
		return errors.Wrap(err, "viz: adding mean line")
	}

	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}

// errorPoints pairs coordinates with their Y error magnitudes for
// plotter.NewYErrorBars.
type errorPoints struct {
	plotter.XYs
	plotter.YErrors
}

// truthGrid picks the grid to evaluate the true function on: the curves'
// shared grid when curves exist, otherwise an even span over the samples.
func truthGrid(x []float64, curves []model_selection.Curve) []float64 {
	if len(curves) > 0 {
		return curves[0].X
	}
	lo, hi := x[0], x[0]
	for _, v := range x[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return dataset.Grid(lo, hi, 100)
}

func toXYs(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	return pts
}
