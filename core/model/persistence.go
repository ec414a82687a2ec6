package model

import (
	"fmt"
	"io"
	"os"
)

// SaveModel はモデルの重みをJSON形式でファイルに保存する
//
// パラメータ:
//   - m: 保存するモデル（WeightExporterを実装していること）
//   - filename: 保存先のファイルパス
//
// 戻り値:
//   - error: 保存に失敗した場合のエラー
//
// 使用例:
//
//	reg := linear.NewLinearRegression()
//	// ... モデルの学習 ...
//	err := model.SaveModel(reg, "model.json")
func SaveModel(m WeightExporter, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	return SaveModelToWriter(m, file)
}

// LoadModel はファイルからモデルの重みを読み込む
//
// パラメータ:
//   - m: 読み込み先のモデル（WeightExporterを実装していること）
//   - filename: 読み込み元のファイルパス
//
// 戻り値:
//   - error: 読み込みに失敗した場合のエラー
//
// 使用例:
//
//	reg := linear.NewLinearRegression()
//	err := model.LoadModel(reg, "model.json")
func LoadModel(m WeightExporter, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return LoadModelFromReader(m, file)
}

// SaveModelToWriter はモデルの重みをio.Writerに保存する
func SaveModelToWriter(m WeightExporter, w io.Writer) error {
	weights, err := m.ExportWeights()
	if err != nil {
		return fmt.Errorf("failed to export weights: %w", err)
	}

	data, err := weights.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to encode weights: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write weights: %w", err)
	}
	return nil
}

// LoadModelFromReader はio.Readerからモデルの重みを読み込む
func LoadModelFromReader(m WeightExporter, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read weights: %w", err)
	}

	weights := &ModelWeights{}
	if err := weights.FromJSON(data); err != nil {
		return fmt.Errorf("failed to decode weights: %w", err)
	}

	if err := weights.Validate(); err != nil {
		return fmt.Errorf("invalid weights: %w", err)
	}

	return m.ImportWeights(weights)
}
