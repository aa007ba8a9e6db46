package frame

import (
	"fmt"

	"github.com/YuminosukeSato/scifeat/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// DefaultNames returns the names x0..x{n-1} used for matrix columns.
func DefaultNames(n int) []string {
	names := make([]string, n)
	for j := range names {
		names[j] = fmt.Sprintf("x%d", j)
	}
	return names
}

// FromMatrix builds a frame of Float columns from a matrix. When names is
// nil the columns are named x0..x{n-1}.
func FromMatrix(m mat.Matrix, names []string) (*Frame, error) {
	r, c := m.Dims()
	if names == nil {
		names = DefaultNames(c)
	}
	if len(names) != c {
		return nil, errors.NewDimensionError("frame.FromMatrix", c, len(names), 1)
	}
	cols := make([]*Column, c)
	for j := 0; j < c; j++ {
		values := make([]float64, r)
		mat.Col(values, j, m)
		cols[j] = NewFloat(names[j], values)
	}
	return New(cols...)
}

// ToMatrix copies the named numeric columns into a dense matrix, one matrix
// column per name. Object columns are accepted when every value is numeric.
func (f *Frame) ToMatrix(names ...string) (*mat.Dense, error) {
	if len(names) == 0 {
		names = f.Names()
	}
	if f.nrows == 0 || len(names) == 0 {
		return nil, errors.ErrEmptyData
	}
	out := mat.NewDense(f.nrows, len(names), nil)
	for j, name := range names {
		c, ok := f.Column(name)
		if !ok {
			return nil, errors.NewSchemaMismatchError("frame.ToMatrix", len(names), f.NCols(), []string{name})
		}
		for i := 0; i < f.nrows; i++ {
			v, err := numericValue(c, i)
			if err != nil {
				return nil, err
			}
			out.Set(i, j, v)
		}
	}
	return out, nil
}

func numericValue(c *Column, i int) (float64, error) {
	if c.Kind().IsNumeric() {
		return c.Float(i), nil
	}
	if c.Kind() != Object {
		return 0, errors.Wrapf(errors.ErrNonNumericVariable, "frame: column %q of kind %s", c.Name(), c.Kind())
	}
	switch v := c.Value(i).(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case int:
		return float64(v), nil
	default:
		return 0, errors.Wrapf(errors.ErrNonNumericVariable, "frame: column %q holds %T at row %d", c.Name(), v, i)
	}
}
