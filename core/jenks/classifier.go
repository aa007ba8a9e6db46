package jenks

import "github.com/YuminosukeSato/scifeat/pkg/errors"

// NaturalBreaks is a reusable classifier configured for a fixed class count.
// It is not safe for concurrent Fit calls; a fitted classifier may be read
// concurrently.
type NaturalBreaks struct {
	nClasses int
	breaks   []float64
}

// NewNaturalBreaks returns a classifier for nClasses classes.
func NewNaturalBreaks(nClasses int) *NaturalBreaks {
	return &NaturalBreaks{nClasses: nClasses}
}

// NClasses returns the configured class count.
func (nb *NaturalBreaks) NClasses() int { return nb.nClasses }

// Fit computes the breaks of values. On failure the previous breaks are kept.
func (nb *NaturalBreaks) Fit(values []float64) error {
	breaks, err := Breaks(values, nb.nClasses)
	if err != nil {
		return err
	}
	nb.breaks = breaks
	return nil
}

// Breaks returns a copy of the fitted breaks, or nil before Fit.
func (nb *NaturalBreaks) Breaks() []float64 {
	if nb.breaks == nil {
		return nil
	}
	return append([]float64(nil), nb.breaks...)
}

// InnerBreaks returns the fitted breaks without the minimum and maximum.
func (nb *NaturalBreaks) InnerBreaks() []float64 {
	if len(nb.breaks) < 2 {
		return nil
	}
	return append([]float64(nil), nb.breaks[1:len(nb.breaks)-1]...)
}

// Predict returns the class of each value.
func (nb *NaturalBreaks) Predict(values []float64) ([]int, error) {
	if nb.breaks == nil {
		return nil, errors.WithStack(ErrNotFitted)
	}
	out := make([]int, len(values))
	for i, v := range values {
		out[i] = Cut(nb.breaks, v)
	}
	return out, nil
}

// Group splits values into the fitted classes.
func (nb *NaturalBreaks) Group(values []float64) ([][]float64, error) {
	if nb.breaks == nil {
		return nil, errors.WithStack(ErrNotFitted)
	}
	return Group(values, nb.breaks), nil
}

// GoodnessOfVarianceFit returns the GVF of values under the fitted breaks.
func (nb *NaturalBreaks) GoodnessOfVarianceFit(values []float64) (float64, error) {
	if nb.breaks == nil {
		return 0, errors.WithStack(ErrNotFitted)
	}
	return GoodnessOfVarianceFit(values, nb.breaks), nil
}
