package metrics

import (
	"math"
	"sort"

	"github.com/YuminosukeSato/statlearn/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Accuracy は正解率（予測ラベルが一致した割合）を計算する
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	// 入力検証
	if yTrue == nil || yPred == nil {
		return 0, errors.NewValueError("Accuracy", "nil vector")
	}

	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("Accuracy", "empty vector")
	}

	if yPred.Len() != n {
		return 0, errors.NewDimensionError("Accuracy", n, yPred.Len(), 0)
	}

	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}

	return float64(correct) / float64(n), nil
}

// ClassificationError は誤分類率（1 - Accuracy）を計算する
func ClassificationError(yTrue, yPred *mat.VecDense) (float64, error) {
	acc, err := Accuracy(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return 1 - acc, nil
}

// Precision は二値分類の適合率 TP/(TP+FP) を計算する
//
// 陽性と予測したサンプルが存在しない場合は定義できないため、
// 警告を発行して 0 を返す。
func Precision(yTrue, yPred *mat.VecDense) (float64, error) {
	tp, fp, _, err := binaryCounts("Precision", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	if tp+fp == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("Precision", "no predicted positives", 0))
		return 0, nil
	}

	return float64(tp) / float64(tp+fp), nil
}

// Recall は二値分類の再現率 TP/(TP+FN) を計算する
//
// 陽性のサンプルが存在しない場合は定義できないため、
// 警告を発行して 0 を返す。
func Recall(yTrue, yPred *mat.VecDense) (float64, error) {
	tp, _, fn, err := binaryCounts("Recall", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	if tp+fn == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("Recall", "no positive labels in yTrue", 0))
		return 0, nil
	}

	return float64(tp) / float64(tp+fn), nil
}

// F1Score は適合率と再現率の調和平均を計算する
func F1Score(yTrue, yPred *mat.VecDense) (float64, error) {
	precision, err := Precision(yTrue, yPred)
	if err != nil {
		return 0, err
	}

	recall, err := Recall(yTrue, yPred)
	if err != nil {
		return 0, err
	}

	// precision + recall == 0 のときは 0 を返す
	return errors.SafeDivide(2*precision*recall, precision+recall), nil
}

// BinaryLogLoss は二値分類の交差エントロピー損失を計算する
//
// log(0) を避けるため予測確率を [eps, 1-eps] にクリップする。
func BinaryLogLoss(yTrue, yPred *mat.VecDense) (float64, error) {
	// 入力検証
	if yTrue == nil || yPred == nil {
		return 0, errors.NewValueError("BinaryLogLoss", "nil vector")
	}

	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("BinaryLogLoss", "empty vector")
	}

	if yPred.Len() != n {
		return 0, errors.NewDimensionError("BinaryLogLoss", n, yPred.Len(), 0)
	}

	if err := checkBinaryLabels("BinaryLogLoss", yTrue); err != nil {
		return 0, err
	}

	const eps = 1e-15

	var sum float64
	for i := 0; i < n; i++ {
		p := errors.ClipValue(yPred.AtVec(i), eps, 1-eps)
		if yTrue.AtVec(i) == 1 {
			sum -= math.Log(p)
		} else {
			sum -= math.Log(1 - p)
		}
	}

	return sum / float64(n), nil
}

// AUC は ROC 曲線下面積を計算する
//
// Mann-Whitney U 統計量から求める。同点のスコアには平均順位を与える。
// 片方のクラスしか存在しない場合は定義できないため、警告を発行して
// 0.5 を返す。
func AUC(yTrue, yPred *mat.VecDense) (float64, error) {
	// 入力検証
	if yTrue == nil || yPred == nil {
		return 0, errors.NewValueError("AUC", "nil vector")
	}

	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError("AUC", "empty vector")
	}

	if yPred.Len() != n {
		return 0, errors.NewDimensionError("AUC", n, yPred.Len(), 0)
	}

	if err := checkBinaryLabels("AUC", yTrue); err != nil {
		return 0, err
	}

	nPos := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == 1 {
			nPos++
		}
	}
	nNeg := n - nPos

	if nPos == 0 || nNeg == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("AUC", "only one class present in yTrue", 0.5))
		return 0.5, nil
	}

	// スコア昇順に並べ、陽性サンプルの順位和から U 統計量を計算する
	type scored struct {
		score float64
		label float64
	}
	samples := make([]scored, n)
	for i := 0; i < n; i++ {
		samples[i] = scored{score: yPred.AtVec(i), label: yTrue.AtVec(i)}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i].score < samples[j].score })

	var rankSum float64
	for i := 0; i < n; {
		j := i
		for j < n && samples[j].score == samples[i].score {
			j++
		}
		// [i, j) は同点グループ。順位は1始まりの平均順位
		avgRank := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			if samples[k].label == 1 {
				rankSum += avgRank
			}
		}
		i = j
	}

	u := rankSum - float64(nPos)*float64(nPos+1)/2
	return u / (float64(nPos) * float64(nNeg)), nil
}

// AUCMatrix は行列形式の入力に対してAUCを計算する
//
// 複数列の行列が渡された場合は先頭列をラベル・スコアとして扱う。
func AUCMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	// 入力検証
	if yTrue == nil || yPred == nil {
		return 0, errors.NewValueError("AUCMatrix", "nil matrix")
	}

	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()

	if rTrue == 0 || cTrue == 0 || rPred == 0 || cPred == 0 {
		return 0, errors.NewValueError("AUCMatrix", "empty matrix")
	}

	if rTrue != rPred {
		return 0, errors.NewDimensionError("AUCMatrix", rTrue, rPred, 0)
	}

	yTrueVec := mat.NewVecDense(rTrue, mat.Col(nil, 0, yTrue))
	yPredVec := mat.NewVecDense(rPred, mat.Col(nil, 0, yPred))

	return AUC(yTrueVec, yPredVec)
}

// checkBinaryLabels はラベルが 0/1 の二値であることを検証する
func checkBinaryLabels(op string, yTrue *mat.VecDense) error {
	for i := 0; i < yTrue.Len(); i++ {
		if v := yTrue.AtVec(i); v != 0 && v != 1 {
			return errors.NewValueError(op, "labels must be binary (0 or 1)")
		}
	}
	return nil
}

// binaryCounts は二値分類の混同行列の要素数を数える
func binaryCounts(op string, yTrue, yPred *mat.VecDense) (tp, fp, fn int, err error) {
	if yTrue == nil || yPred == nil {
		return 0, 0, 0, errors.NewValueError(op, "nil vector")
	}

	n := yTrue.Len()
	if n == 0 {
		return 0, 0, 0, errors.NewValueError(op, "empty vector")
	}

	if yPred.Len() != n {
		return 0, 0, 0, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}

	if err := checkBinaryLabels(op, yTrue); err != nil {
		return 0, 0, 0, err
	}
	if err := checkBinaryLabels(op, yPred); err != nil {
		return 0, 0, 0, err
	}

	for i := 0; i < n; i++ {
		switch {
		case yPred.AtVec(i) == 1 && yTrue.AtVec(i) == 1:
			tp++
		case yPred.AtVec(i) == 1 && yTrue.AtVec(i) == 0:
			fp++
		case yPred.AtVec(i) == 0 && yTrue.AtVec(i) == 1:
			fn++
		}
	}

	return tp, fp, fn, nil
}
