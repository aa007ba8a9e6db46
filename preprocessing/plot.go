package preprocessing

import (
	"fmt"
	"image/color"

	"github.com/YuminosukeSato/scifeat/core/frame"
	"github.com/YuminosukeSato/scifeat/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	_ "gonum.org/v1/plot/vg/vgimg" // png, jpg, tif
	_ "gonum.org/v1/plot/vg/vgsvg" // svg
)

// histogramBins は PlotBreaks のヒストグラムの階級数
const histogramBins = 30

// PlotBreaks は変数 feature のヒストグラムに学習済みの境界を縦線で重ねた図を path に保存する
//
// 画像形式は拡張子（.png, .svg, .pdf など）から決まる。欠損値は描画から除外する。
func PlotBreaks(d *JenksDiscretiser, X *frame.Frame, feature, path string) error {
	binnerDict, err := d.BinnerDict()
	if err != nil {
		return err
	}
	breaks, ok := binnerDict[feature]
	if !ok {
		return errors.NewValueErrorWithCause("PlotBreaks", errors.ErrVariableNotFound,
			fmt.Sprintf("variable %q was not fitted", feature))
	}
	col, ok := X.Column(feature)
	if !ok {
		return errors.NewSchemaMismatchError("PlotBreaks", 1, 0, []string{feature})
	}
	values, err := col.Float64s()
	if err != nil {
		return errors.Wrapf(errors.ErrNonNumericVariable, "PlotBreaks: %v", err)
	}

	data := make(plotter.Values, 0, len(values))
	for i, v := range values {
		if !col.IsNull(i) {
			data = append(data, v)
		}
	}
	if len(data) == 0 {
		return errors.Wrap(errors.ErrEmptyData, "PlotBreaks")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Jenks natural breaks: %s (%d bins)", feature, len(breaks)-1)
	p.X.Label.Text = feature
	p.Y.Label.Text = "count"

	hist, err := plotter.NewHist(data, histogramBins)
	if err != nil {
		return errors.Wrap(err, "failed to build histogram")
	}
	p.Add(hist)

	top := 0.0
	for _, b := range hist.Bins {
		if b.Weight > top {
			top = b.Weight
		}
	}
	for _, b := range breaks {
		line, err := plotter.NewLine(plotter.XYs{{X: b, Y: 0}, {X: b, Y: top}})
		if err != nil {
			return errors.Wrap(err, "failed to build break line")
		}
		line.Color = color.RGBA{R: 255, A: 255}
		line.LineStyle.Width = vg.Points(2)
		p.Add(line)
	}

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "failed to save plot to %s", path)
	}
	return nil
}
