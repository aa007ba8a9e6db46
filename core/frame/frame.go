// Package frame provides a small immutable in-memory table of named, typed
// columns, the input and output shape of the scifeat transformers.
//
// Typed columns are Apache Arrow arrays; FromRecord and Frame.ToRecord
// exchange frames with other Arrow producers and consumers.
package frame

import (
	"fmt"

	"github.com/YuminosukeSato/scifeat/pkg/errors"
)

// Frame is an ordered set of uniquely named columns of equal length.
// Frames and their columns are never modified in place; operations that
// change a frame return a new one sharing the untouched columns.
type Frame struct {
	cols  []*Column
	index map[string]int
	nrows int
}

// New builds a frame from columns. Names must be unique and lengths equal.
func New(cols ...*Column) (*Frame, error) {
	f := &Frame{
		cols:  make([]*Column, 0, len(cols)),
		index: make(map[string]int, len(cols)),
	}
	for i, c := range cols {
		if c == nil {
			return nil, errors.Newf("frame: column %d is nil", i)
		}
		if _, dup := f.index[c.Name()]; dup {
			return nil, errors.Newf("frame: duplicate column name %q", c.Name())
		}
		if i == 0 {
			f.nrows = c.Len()
		} else if c.Len() != f.nrows {
			return nil, errors.NewDimensionError("frame.New", f.nrows, c.Len(), 0)
		}
		f.index[c.Name()] = len(f.cols)
		f.cols = append(f.cols, c)
	}
	return f, nil
}

// MustNew is like New but panics on error. Intended for tests and examples.
func MustNew(cols ...*Column) *Frame {
	f, err := New(cols...)
	if err != nil {
		panic(err)
	}
	return f
}

// NRows returns the number of rows.
func (f *Frame) NRows() int { return f.nrows }

// NCols returns the number of columns.
func (f *Frame) NCols() int { return len(f.cols) }

// Names returns the column names in order.
func (f *Frame) Names() []string {
	names := make([]string, len(f.cols))
	for i, c := range f.cols {
		names[i] = c.Name()
	}
	return names
}

// Kinds returns the column kinds keyed by name.
func (f *Frame) Kinds() map[string]Kind {
	kinds := make(map[string]Kind, len(f.cols))
	for _, c := range f.cols {
		kinds[c.Name()] = c.Kind()
	}
	return kinds
}

// Column returns the column with the given name.
func (f *Frame) Column(name string) (*Column, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.cols[i], true
}

// Col returns the i-th column.
func (f *Frame) Col(i int) *Column { return f.cols[i] }

// HasColumn reports whether a column with the given name exists.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.index[name]
	return ok
}

// Select returns a frame holding the named columns in the given order.
func (f *Frame) Select(names ...string) (*Frame, error) {
	cols := make([]*Column, 0, len(names))
	var missing []string
	for _, name := range names {
		c, ok := f.Column(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		cols = append(cols, c)
	}
	if len(missing) > 0 {
		return nil, errors.NewSchemaMismatchError("frame.Select", len(names), len(names)-len(missing), missing)
	}
	return New(cols...)
}

// WithColumn returns a frame where the column named like c is replaced by c,
// or c is appended when no such column exists.
func (f *Frame) WithColumn(c *Column) (*Frame, error) {
	if c.Len() != f.nrows && len(f.cols) > 0 {
		return nil, errors.NewDimensionError("frame.WithColumn", f.nrows, c.Len(), 0)
	}
	cols := make([]*Column, len(f.cols), len(f.cols)+1)
	copy(cols, f.cols)
	if i, ok := f.index[c.Name()]; ok {
		cols[i] = c
	} else {
		cols = append(cols, c)
	}
	return New(cols...)
}

// NumericNames returns the names of numeric columns in frame order.
func (f *Frame) NumericNames() []string {
	var names []string
	for _, c := range f.cols {
		if c.Kind().IsNumeric() {
			names = append(names, c.Name())
		}
	}
	return names
}

// ColumnsWithNulls returns, among the given names, those whose column has
// at least one missing value.
func (f *Frame) ColumnsWithNulls(names []string) []string {
	var out []string
	for _, name := range names {
		if c, ok := f.Column(name); ok && c.NullCount() > 0 {
			out = append(out, name)
		}
	}
	return out
}

// String returns a short description of the frame's shape and columns.
func (f *Frame) String() string {
	s := fmt.Sprintf("Frame[%d x %d]", f.nrows, len(f.cols))
	for _, c := range f.cols {
		s += fmt.Sprintf(" %s:%s", c.Name(), c.Kind())
	}
	return s
}
