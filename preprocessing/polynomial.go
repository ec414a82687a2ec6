package preprocessing

import (
	"fmt"

	"github.com/YuminosukeSato/statlearn/core/model"
	"github.com/YuminosukeSato/statlearn/core/parallel"
	"github.com/YuminosukeSato/statlearn/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// PolynomialFeatures は単一の入力列をべき乗の特徴量に展開する変換器
//
// n×1 の入力を n×degree の行列 [x, x², ..., x^degree] に変換する。
// バイアス列（すべて1の列）は付けない。切片は回帰側が扱う。
//
// Transform は純粋な変換で、入力行列も変換器の状態も変更しない。
// 同じ入力に対して常に同じ出力を返す。
type PolynomialFeatures struct {
	model.BaseEstimator

	// Degree は展開する最大次数
	Degree int
}

// NewPolynomialFeatures は新しいPolynomialFeaturesを作成する
//
// 使用例:
//
//	poly := preprocessing.NewPolynomialFeatures(3)
//	expanded, err := poly.FitTransform(X) // [x, x², x³]
func NewPolynomialFeatures(degree int) *PolynomialFeatures {
	return &PolynomialFeatures{Degree: degree}
}

// Fit は入力が単一列であることを検証する
//
// 学習する統計量はないが、他の変換器と同じ Fit/Transform の
// 規約に従う。
func (p *PolynomialFeatures) Fit(X mat.Matrix) error {
	if p.Degree < 1 {
		return errors.NewValueError("PolynomialFeatures.Fit", "degree must be at least 1")
	}

	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("PolynomialFeatures.Fit", "empty data", errors.ErrEmptyData)
	}
	if c != 1 {
		return errors.NewDimensionError("PolynomialFeatures.Fit", 1, c, 1)
	}

	p.SetFitted()
	return nil
}

// Transform は入力列を [x, x², ..., x^degree] に展開する
func (p *PolynomialFeatures) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !p.IsFitted() {
		return nil, errors.NewNotFittedError("PolynomialFeatures", "Transform")
	}

	r, c := X.Dims()
	if c != 1 {
		return nil, errors.NewDimensionError("PolynomialFeatures.Transform", 1, c, 1)
	}

	result := mat.NewDense(r, p.Degree, nil)

	// 行ごとに独立なので分割して計算できる
	parallel.ParallelizeWithThreshold(r, 1024, func(start, end int) {
		for i := start; i < end; i++ {
			x := X.At(i, 0)
			power := 1.0
			for d := 0; d < p.Degree; d++ {
				power *= x
				result.Set(i, d, power)
			}
		}
	})

	return result, nil
}

// FitTransform は検証と展開を一度に行う
func (p *PolynomialFeatures) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := p.Fit(X); err != nil {
		return nil, err
	}
	return p.Transform(X)
}

// GetParams は変換器のパラメータを取得する
func (p *PolynomialFeatures) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"degree": p.Degree,
	}
}

// String は変換器の文字列表現を返す
func (p *PolynomialFeatures) String() string {
	return fmt.Sprintf("PolynomialFeatures(degree=%d)", p.Degree)
}
