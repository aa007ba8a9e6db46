// Package jenks implements Jenks natural-breaks classification.
//
// Breaks are found with Fisher's exact dynamic programme, which minimises the
// sum of squared deviations from the class means (SDCM). For n sorted values
// and k classes it runs in O(k·n²) time and O(k·n) memory.
//
// The returned breaks have k+1 entries: the minimum, the upper bound of each
// of the first k-1 classes, and the maximum. Classes are right-closed:
// class i holds the values in (breaks[i], breaks[i+1]], and class 0 also holds
// breaks[0].
package jenks

import (
	"math"
	"sort"

	"github.com/YuminosukeSato/scifeat/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrInvalidClasses is returned when the class count is below one.
	ErrInvalidClasses = errors.New("jenks: number of classes must be at least 1")

	// ErrTooFewValues is returned when there are fewer distinct values than classes.
	ErrTooFewValues = errors.New("jenks: not enough distinct values for the number of classes")

	// ErrNaN is returned when the input contains NaN.
	ErrNaN = errors.New("jenks: values contain NaN")

	// ErrNotFitted is returned by methods that need Fit to have succeeded.
	ErrNotFitted = errors.New("jenks: classifier is not fitted")
)

// Breaks computes the natural breaks of values for nClasses classes.
// values is not modified.
func Breaks(values []float64, nClasses int) ([]float64, error) {
	if nClasses < 1 {
		return nil, errors.Wrapf(ErrInvalidClasses, "got %d", nClasses)
	}
	if len(values) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "jenks")
	}
	if floats.HasNaN(values) {
		return nil, ErrNaN
	}

	data := make([]float64, len(values))
	copy(data, values)
	sort.Float64s(data)

	if distinct := countDistinct(data); distinct < nClasses {
		return nil, errors.Wrapf(ErrTooFewValues, "%d distinct values, %d classes", distinct, nClasses)
	}

	if nClasses == 1 {
		return []float64{data[0], data[len(data)-1]}, nil
	}
	return fisherJenks(data, nClasses), nil
}

// fisherJenks runs the dynamic programme on sorted data. Tables are 1-indexed
// as in Jenks' original formulation: lower[l][j] is the 1-based index of the
// first value of the last class in the best split of data[0:l] into j classes.
func fisherJenks(data []float64, k int) []float64 {
	n := len(data)
	lower := make([][]int, n+1)
	variance := make([][]float64, n+1)
	for i := range lower {
		lower[i] = make([]int, k+1)
		variance[i] = make([]float64, k+1)
	}
	for j := 1; j <= k; j++ {
		lower[1][j] = 1
		for i := 2; i <= n; i++ {
			variance[i][j] = math.Inf(1)
		}
	}

	for l := 2; l <= n; l++ {
		var sum, sumSquares, w, v float64
		for m := 1; m <= l; m++ {
			i3 := l - m + 1
			val := data[i3-1]
			sumSquares += val * val
			sum += val
			w++
			v = sumSquares - (sum*sum)/w
			i4 := i3 - 1
			if i4 == 0 {
				continue
			}
			for j := 2; j <= k; j++ {
				if candidate := v + variance[i4][j-1]; variance[l][j] >= candidate {
					lower[l][j] = i3
					variance[l][j] = candidate
				}
			}
		}
		lower[l][1] = 1
		variance[l][1] = v
	}

	breaks := make([]float64, k+1)
	breaks[0] = data[0]
	breaks[k] = data[n-1]
	idx := n
	for j := k; j >= 2; j-- {
		first := lower[idx][j]
		breaks[j-1] = data[first-2]
		idx = first - 1
	}
	return breaks
}

func countDistinct(sorted []float64) int {
	if len(sorted) == 0 {
		return 0
	}
	n := 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1] {
			n++
		}
	}
	return n
}

// Cut returns the class of v for the given breaks. Classes are right-closed;
// values at or below breaks[0] fall in class 0 and values above the last
// break fall in the last class.
func Cut(breaks []float64, v float64) int {
	last := len(breaks) - 2
	if last < 0 {
		return 0
	}
	i := sort.SearchFloat64s(breaks, v) - 1
	switch {
	case i < 0:
		return 0
	case i > last:
		return last
	default:
		return i
	}
}

// GoodnessOfVarianceFit returns (SDAM - SDCM) / SDAM for the classification of
// values by breaks, where SDAM is the squared deviation from the array mean and
// SDCM the sum of squared deviations from each class mean. 1 is a perfect fit.
// A constant input has a GVF of 1.
func GoodnessOfVarianceFit(values, breaks []float64) float64 {
	sdam := squaredDeviation(values)
	if sdam == 0 {
		return 1
	}
	var sdcm float64
	for _, class := range Group(values, breaks) {
		sdcm += squaredDeviation(class)
	}
	return (sdam - sdcm) / sdam
}

func squaredDeviation(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := stat.Mean(values, nil)
	var s float64
	for _, v := range values {
		d := v - mean
		s += d * d
	}
	return s
}

// Group splits values into the classes defined by breaks, preserving the
// input order within each class.
func Group(values, breaks []float64) [][]float64 {
	n := len(breaks) - 1
	if n < 1 {
		n = 1
	}
	groups := make([][]float64, n)
	for _, v := range values {
		c := Cut(breaks, v)
		groups[c] = append(groups[c], v)
	}
	return groups
}
