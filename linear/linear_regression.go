// Package linear implements the linear models of the walkthrough:
// ordinary least squares regression solved by QR decomposition and a
// binary logistic regression classifier trained by gradient descent.
package linear

import (
	"fmt"
	"math"

	"github.com/YuminosukeSato/statlearn/core/model"
	"github.com/YuminosukeSato/statlearn/core/parallel"
	"github.com/YuminosukeSato/statlearn/metrics"
	"github.com/YuminosukeSato/statlearn/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// 並列処理の閾値（この行数以下では逐次処理を使用）
const parallelThreshold = 1000

// LinearRegression は最小二乗法による線形回帰モデル
//
// QR分解で正規方程式を解く。計画行列の条件数を学習時に検査し、
// 特異に近い場合はエラー、精度が疑わしい場合は警告を発行する。
type LinearRegression struct {
	state *model.StateManager // 状態管理（埋め込みではなくコンポジション）

	// ハイパーパラメータ
	fitIntercept      bool    // 切片を学習するかどうか
	condTolerance     float64 // この条件数を超えたら特異とみなす
	condWarnThreshold float64 // この条件数を超えたら警告を発行する

	// 学習されたパラメータ
	coef      []float64 // 重み係数
	intercept float64   // 切片
	cond      float64   // 学習時の計画行列の条件数

	// 統計情報
	nFeatures int
	nSamples  int
}

// NewLinearRegression は新しいLinearRegressionモデルを作成
func NewLinearRegression(options ...Option) *LinearRegression {
	lr := &LinearRegression{
		state:             model.NewStateManager(),
		fitIntercept:      true,
		condTolerance:     mat.ConditionTolerance,
		condWarnThreshold: 1e8,
	}

	for _, opt := range options {
		opt(lr)
	}

	return lr
}

// Fit はモデルを訓練データで学習
//
// 条件数が condTolerance を超える場合は DegenerateFeatureError を
// 返し、モデルは未学習のまま残る。condWarnThreshold を超えるだけの
// 場合は警告を発行した上で解く。
func (lr *LinearRegression) Fit(X, y mat.Matrix) error {
	rows, cols := X.Dims()
	yRows, yCols := y.Dims()

	// 入力検証
	if rows == 0 || cols == 0 {
		return errors.NewModelError("LinearRegression.Fit", "empty data", errors.ErrEmptyData)
	}
	if rows != yRows {
		return errors.NewDimensionError("LinearRegression.Fit", rows, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewValueError("LinearRegression.Fit", "y must be a column vector")
	}
	if err := errors.CheckMatrix("LinearRegression.Fit", X, rows, cols, 0); err != nil {
		return err
	}

	// 切片を学習する場合は先頭に1の列を追加した計画行列を作る
	nCols := cols
	if lr.fitIntercept {
		nCols++
	}

	XFit := mat.NewDense(rows, nCols, nil)
	parallel.ParallelizeWithThreshold(rows, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			if lr.fitIntercept {
				XFit.Set(i, 0, 1.0)
				for j := 0; j < cols; j++ {
					XFit.Set(i, j+1, X.At(i, j))
				}
			} else {
				for j := 0; j < cols; j++ {
					XFit.Set(i, j, X.At(i, j))
				}
			}
		}
	})

	// 列数より行数が少ないと解が一意に定まらない
	if rows < nCols {
		return errors.NewDegenerateFeatureError("LinearRegression.Fit", cols, math.Inf(1))
	}

	// QR分解。正規方程式を直接解くより数値的に安定
	var qr mat.QR
	qr.Factorize(XFit)

	cond := qr.Cond()
	if cond > lr.condTolerance {
		return errors.NewDegenerateFeatureError("LinearRegression.Fit", cols, cond)
	}
	if cond > lr.condWarnThreshold {
		errors.Warn(errors.NewConditioningWarning("LinearRegression.Fit", cond, lr.condWarnThreshold))
	}

	coefficients := mat.NewDense(nCols, 1, nil)
	if err := qr.SolveTo(coefficients, false, y); err != nil {
		return errors.NewDegenerateFeatureError("LinearRegression.Fit", cols, cond)
	}

	// 係数を取り出す
	lr.coef = make([]float64, cols)
	if lr.fitIntercept {
		lr.intercept = coefficients.At(0, 0)
		for j := 0; j < cols; j++ {
			lr.coef[j] = coefficients.At(j+1, 0)
		}
	} else {
		lr.intercept = 0.0
		for j := 0; j < cols; j++ {
			lr.coef[j] = coefficients.At(j, 0)
		}
	}

	lr.cond = cond
	lr.nFeatures = cols
	lr.nSamples = rows

	lr.state.SetFitted()
	lr.state.SetDimensions(cols, rows)
	return nil
}

// Predict は入力データに対する予測を行う
func (lr *LinearRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !lr.state.IsFitted() {
		return nil, errors.NewNotFittedError("LinearRegression", "Predict")
	}

	rows, cols := X.Dims()
	if cols != lr.nFeatures {
		return nil, errors.NewDimensionError("LinearRegression.Predict", lr.nFeatures, cols, 1)
	}

	predictions := mat.NewDense(rows, 1, nil)
	parallel.ParallelizeWithThreshold(rows, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			pred := lr.intercept
			for j := 0; j < cols; j++ {
				pred += X.At(i, j) * lr.coef[j]
			}
			predictions.Set(i, 0, pred)
		}
	})

	return predictions, nil
}

// Score はモデルの決定係数（R²）を計算
func (lr *LinearRegression) Score(X, y mat.Matrix) (float64, error) {
	predictions, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.R2Scorer(y, predictions)
}

// Coef は学習された重み係数のコピーを返す
func (lr *LinearRegression) Coef() []float64 {
	if lr.coef == nil {
		return nil
	}
	coef := make([]float64, len(lr.coef))
	copy(coef, lr.coef)
	return coef
}

// Intercept は学習された切片を返す
func (lr *LinearRegression) Intercept() float64 {
	return lr.intercept
}

// Cond は学習時の計画行列の条件数を返す。未学習なら0
func (lr *LinearRegression) Cond() float64 {
	return lr.cond
}

// IsFitted はモデルが学習済みかどうかを返す
func (lr *LinearRegression) IsFitted() bool {
	return lr.state.IsFitted()
}

// GetParams はモデルのハイパーパラメータを取得する
func (lr *LinearRegression) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"fit_intercept":            lr.fitIntercept,
		"condition_tolerance":      lr.condTolerance,
		"condition_warn_threshold": lr.condWarnThreshold,
	}
}

// SetParams はモデルのハイパーパラメータを設定する
func (lr *LinearRegression) SetParams(params map[string]interface{}) error {
	for key, value := range params {
		switch key {
		case "fit_intercept":
			v, ok := value.(bool)
			if !ok {
				return errors.NewValidationError(key, "must be a bool", value)
			}
			lr.fitIntercept = v
		case "condition_tolerance":
			v, ok := value.(float64)
			if !ok {
				return errors.NewValidationError(key, "must be a float64", value)
			}
			lr.condTolerance = v
		case "condition_warn_threshold":
			v, ok := value.(float64)
			if !ok {
				return errors.NewValidationError(key, "must be a float64", value)
			}
			lr.condWarnThreshold = v
		default:
			return errors.NewValidationError(key, "unknown parameter", value)
		}
	}
	return nil
}

// ExportWeights はモデルの重みをエクスポート（完全な再現性を保証）
func (lr *LinearRegression) ExportWeights() (*model.ModelWeights, error) {
	if !lr.state.IsFitted() {
		return nil, errors.NewNotFittedError("LinearRegression", "ExportWeights")
	}

	weights := &model.ModelWeights{
		ModelType:       "LinearRegression",
		Version:         "1.0.0",
		Coefficients:    lr.Coef(),
		Intercept:       lr.intercept,
		IsFitted:        true,
		Hyperparameters: lr.GetParams(),
		Metadata: map[string]interface{}{
			"n_features":       lr.nFeatures,
			"n_samples":        lr.nSamples,
			"condition_number": lr.cond,
		},
	}
	weights.Seal()

	return weights, nil
}

// ImportWeights はモデルの重みをインポート（完全な再現性を保証）
func (lr *LinearRegression) ImportWeights(weights *model.ModelWeights) error {
	if weights == nil {
		return errors.NewValueError("LinearRegression.ImportWeights", "weights cannot be nil")
	}
	if weights.ModelType != "LinearRegression" {
		return errors.NewValueError("LinearRegression.ImportWeights",
			fmt.Sprintf("model type mismatch: expected LinearRegression, got %s", weights.ModelType))
	}
	if err := weights.Validate(); err != nil {
		return errors.Wrap(err, "LinearRegression.ImportWeights")
	}

	if err := lr.SetParams(weights.Hyperparameters); err != nil {
		return err
	}

	lr.coef = make([]float64, len(weights.Coefficients))
	copy(lr.coef, weights.Coefficients)
	lr.intercept = weights.Intercept

	// JSON経由のメタデータは数値がfloat64になる
	if v, ok := weights.Metadata["n_features"].(float64); ok {
		lr.nFeatures = int(v)
	} else if v, ok := weights.Metadata["n_features"].(int); ok {
		lr.nFeatures = v
	}
	if v, ok := weights.Metadata["n_samples"].(float64); ok {
		lr.nSamples = int(v)
	} else if v, ok := weights.Metadata["n_samples"].(int); ok {
		lr.nSamples = v
	}
	if v, ok := weights.Metadata["condition_number"].(float64); ok {
		lr.cond = v
	}

	lr.state.SetFitted()
	lr.state.SetDimensions(lr.nFeatures, lr.nSamples)
	return nil
}

// Clone は同じハイパーパラメータを持つ新しいインスタンスを作成
// 学習済みの場合は重みもコピーされる
func (lr *LinearRegression) Clone() *LinearRegression {
	clone := NewLinearRegression(
		WithFitIntercept(lr.fitIntercept),
		WithConditionTolerance(lr.condTolerance),
		WithConditionWarnThreshold(lr.condWarnThreshold),
	)

	if lr.state.IsFitted() {
		if weights, err := lr.ExportWeights(); err == nil {
			_ = clone.ImportWeights(weights)
		}
	}

	return clone
}

// String はモデルの文字列表現を返す
func (lr *LinearRegression) String() string {
	if !lr.state.IsFitted() {
		return fmt.Sprintf("LinearRegression(fit_intercept=%t)", lr.fitIntercept)
	}
	return fmt.Sprintf("LinearRegression(fit_intercept=%t, n_features=%d, fitted=true)",
		lr.fitIntercept, lr.nFeatures)
}
