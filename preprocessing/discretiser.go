package preprocessing

import (
	"math"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/scifeat/core/frame"
	"github.com/YuminosukeSato/scifeat/core/jenks"
	"github.com/YuminosukeSato/scifeat/core/parallel"
	"github.com/YuminosukeSato/scifeat/pkg/errors"
)

// parallelRowThreshold は行方向の並列化を行う最小の行数
const parallelRowThreshold = 50000

// binColumn は数値列の各値を breaks の右閉区間に割り当てた列を返す
//
// 出力の型:
//   - デフォルト: int64 のビン番号 (0..len(breaks)-2)
//   - returnBoundaries: "(left, right]" 形式の文字列ラベル
//   - returnObject: 上記の値を保持した Object 列
func binColumn(col *frame.Column, breaks []float64, p jenksParams, workers int) (*frame.Column, error) {
	values, err := col.Float64s()
	if err != nil {
		return nil, err
	}

	codes := make([]int64, len(values))
	parallel.ParallelizeWithThreshold(len(values), parallelRowThreshold, workers, func(start, end int) {
		for i := start; i < end; i++ {
			codes[i] = int64(jenks.Cut(breaks, values[i]))
		}
	})

	if below, above := errors.CountOutside(values, breaks[0], breaks[len(breaks)-1]); below+above > 0 {
		errors.Warn(errors.NewBinRangeWarning(col.Name(), below, above, breaks[0], breaks[len(breaks)-1]))
	}

	if p.ReturnBoundaries {
		labels := IntervalLabels(breaks, p.Precision)
		if p.ReturnObject {
			out := make([]any, len(codes))
			for i, c := range codes {
				out[i] = labels[c]
			}
			return frame.NewObject(col.Name(), out), nil
		}
		out := make([]string, len(codes))
		for i, c := range codes {
			out[i] = labels[c]
		}
		return frame.NewString(col.Name(), out), nil
	}

	if p.ReturnObject {
		out := make([]any, len(codes))
		for i, c := range codes {
			out[i] = c
		}
		return frame.NewObject(col.Name(), out), nil
	}
	return frame.NewInt(col.Name(), codes), nil
}

// IntervalLabels は breaks から各ビンのラベルを作成する
//
// ラベルは右閉区間 "(left, right]"。境界は precision 桁に丸められ、
// 最初の区間の左端は "-inf"、最後の区間の右端は "inf" と表記する
// （範囲外の値も両端のビンに割り当てられるため）。
// そのため breaks[0] と breaks[len(breaks)-1]（BinnerDict の学習時の最小値と
// 最大値）はラベルに現れない。
//
// 例: breaks [0, 2, 5, 8, 11], precision 3
//
//	["(-inf, 2.0]", "(2.0, 5.0]", "(5.0, 8.0]", "(8.0, inf]"]
func IntervalLabels(breaks []float64, precision int) []string {
	n := len(breaks) - 1
	if n < 1 {
		return nil
	}
	labels := make([]string, n)
	for i := 0; i < n; i++ {
		left := "-inf"
		if i > 0 {
			left = FormatBoundary(breaks[i], precision)
		}
		right := "inf"
		if i < n-1 {
			right = FormatBoundary(breaks[i+1], precision)
		}
		labels[i] = "(" + left + ", " + right + "]"
	}
	return labels
}

// FormatBoundary は境界値を precision 桁に丸めて文字列にする。
// 整数値でも小数点以下を1桁表示する（2 → "2.0"）。
func FormatBoundary(v float64, precision int) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsNaN(v):
		return "nan"
	}
	s := strconv.FormatFloat(RoundTo(v, precision), 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	if s == "-0.0" {
		s = "0.0"
	}
	return s
}

// RoundTo は v を小数点以下 precision 桁に四捨五入する
func RoundTo(v float64, precision int) float64 {
	if precision < 0 {
		return v
	}
	pow := math.Pow(10, float64(precision))
	r := math.Round(v*pow) / pow
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return v
	}
	return r
}
