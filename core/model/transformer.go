package model

import (
	"github.com/YuminosukeSato/scifeat/core/frame"
	"gonum.org/v1/gonum/mat"
)

// Transformer は行列を入力とするデータ変換のインターフェース
type Transformer interface {
	// Fit は変換に必要なパラメータを学習する
	Fit(X mat.Matrix) error

	// Transform はデータを変換する
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform はFitとTransformを同時に実行する
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}

// FrameTransformer は名前付き列を持つ Frame を入力とするデータ変換のインターフェース
//
// Fit のシグネチャは変換器ごとに異なるため含まない。
// Transform は入力を変更せず、新しい Frame を返す。
type FrameTransformer interface {
	// Transform はデータを変換する
	Transform(X *frame.Frame) (*frame.Frame, error)

	// FeatureNamesIn は学習時に見た列名を返す
	FeatureNamesIn() ([]string, error)

	// IsFitted は学習済みかどうかを返す
	IsFitted() bool
}
