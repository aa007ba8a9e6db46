package preprocessing

import (
	"github.com/YuminosukeSato/scifeat/core/frame"
	"github.com/YuminosukeSato/scifeat/core/model"
	"github.com/YuminosukeSato/scifeat/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// JenksMatrixTransformer は JenksDiscretiser を model.Transformer として
// gonum の行列に適用するアダプタ
//
// 行列の列は x0..x{n-1} と名付けられる。出力は区間番号を値に持つ *mat.Dense。
// ラベルは数値ではないため return_boundaries は使用できない。
type JenksMatrixTransformer struct {
	*JenksDiscretiser
}

var _ model.Transformer = (*JenksMatrixTransformer)(nil)

// NewJenksMatrixTransformer は新しい JenksMatrixTransformer を作成する
//
// 使用例:
//
//	t, err := preprocessing.NewJenksMatrixTransformer(preprocessing.WithBins(3))
//	codes, err := t.FitTransform(X) // X: n_samples × n_features
func NewJenksMatrixTransformer(opts ...Option) (*JenksMatrixTransformer, error) {
	d, err := NewJenksDiscretiser(opts...)
	if err != nil {
		return nil, err
	}
	if d.params.ReturnBoundaries {
		return nil, errors.NewValidationError("return_boundaries",
			"interval labels cannot be stored in a matrix", true)
	}
	return &JenksMatrixTransformer{JenksDiscretiser: d}, nil
}

// Fit は行列の各列について境界を学習する
func (t *JenksMatrixTransformer) Fit(X mat.Matrix) error {
	f, err := frame.FromMatrix(X, nil)
	if err != nil {
		return err
	}
	_, err = t.JenksDiscretiser.Fit(f, nil)
	return err
}

// Transform は行列の各値を区間番号に置き換えた新しい行列を返す
func (t *JenksMatrixTransformer) Transform(X mat.Matrix) (mat.Matrix, error) {
	if t.snapshotParams().ReturnBoundaries {
		return nil, errors.NewValidationError("return_boundaries",
			"interval labels cannot be stored in a matrix", true)
	}
	f, err := frame.FromMatrix(X, nil)
	if err != nil {
		return nil, err
	}
	out, err := t.JenksDiscretiser.Transform(f)
	if err != nil {
		return nil, err
	}
	return out.ToMatrix()
}

// FitTransform は Fit と Transform を続けて実行する
func (t *JenksMatrixTransformer) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := t.Fit(X); err != nil {
		return nil, err
	}
	return t.Transform(X)
}
