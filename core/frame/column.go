package frame

import (
	"fmt"
	"math"
	"time"

	"github.com/YuminosukeSato/scifeat/pkg/errors"
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// Kind is the declared type of a column.
type Kind int

const (
	// Float holds float64 values; NaN counts as missing.
	Float Kind = iota
	// Int holds int64 values.
	Int
	// String holds string values.
	String
	// Bool holds bool values.
	Bool
	// Time holds time.Time values.
	Time
	// Object holds arbitrary values; nil counts as missing.
	Object
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case Float:
		return "float64"
	case Int:
		return "int64"
	case String:
		return "string"
	case Bool:
		return "bool"
	case Time:
		return "time"
	case Object:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsNumeric reports whether values of this kind take part in numeric
// auto-detection. Bools and times are not numeric.
func (k Kind) IsNumeric() bool {
	return k == Float || k == Int
}

// allocator backs every arrow array built by this package. The Go allocator
// leaves reclamation to the garbage collector, so columns need no Release.
var allocator memory.Allocator = memory.DefaultAllocator

// timeType is the arrow type of Time columns. Values are stored as UTC
// nanoseconds since the Unix epoch.
var timeType = &arrow.TimestampType{Unit: arrow.Nanosecond, TimeZone: "UTC"}

// Column is an immutable, named, typed sequence of values.
//
// Float, Int, String, Bool and Time columns are arrow arrays whose validity
// bitmap marks missing entries. Object columns hold arbitrary Go values,
// which arrow has no type for, in a plain slice.
type Column struct {
	name string
	kind Kind
	arr  arrow.Array
	objs []any
}

// NewFloat creates a Float column. NaN entries are missing.
func NewFloat(name string, values []float64) *Column {
	return newFloat(name, values, nil)
}

// NewInt creates an Int column.
func NewInt(name string, values []int64) *Column {
	return newInt(name, values, nil)
}

// NewString creates a String column.
func NewString(name string, values []string) *Column {
	return newString(name, values, nil)
}

// NewBool creates a Bool column.
func NewBool(name string, values []bool) *Column {
	return newBool(name, values, nil)
}

// NewTime creates a Time column. Values are returned in UTC.
func NewTime(name string, values []time.Time) *Column {
	ts := make([]arrow.Timestamp, len(values))
	for i, t := range values {
		ts[i] = arrow.Timestamp(t.UnixNano())
	}
	return newTime(name, ts, nil)
}

// NewObject creates an Object column. nil entries are missing.
func NewObject(name string, values []any) *Column {
	return &Column{name: name, kind: Object, objs: append([]any(nil), values...)}
}

// valid が nil の場合は全ての値が有効
func newFloat(name string, values []float64, valid []bool) *Column {
	b := array.NewFloat64Builder(allocator)
	defer b.Release()
	b.AppendValues(values, valid)
	return &Column{name: name, kind: Float, arr: b.NewArray()}
}

func newInt(name string, values []int64, valid []bool) *Column {
	b := array.NewInt64Builder(allocator)
	defer b.Release()
	b.AppendValues(values, valid)
	return &Column{name: name, kind: Int, arr: b.NewArray()}
}

func newString(name string, values []string, valid []bool) *Column {
	b := array.NewStringBuilder(allocator)
	defer b.Release()
	b.AppendValues(values, valid)
	return &Column{name: name, kind: String, arr: b.NewArray()}
}

func newBool(name string, values []bool, valid []bool) *Column {
	b := array.NewBooleanBuilder(allocator)
	defer b.Release()
	b.AppendValues(values, valid)
	return &Column{name: name, kind: Bool, arr: b.NewArray()}
}

func newTime(name string, values []arrow.Timestamp, valid []bool) *Column {
	b := array.NewTimestampBuilder(allocator, timeType)
	defer b.Release()
	b.AppendValues(values, valid)
	return &Column{name: name, kind: Time, arr: b.NewArray()}
}

// WithNulls returns a copy of c where entries whose mask value is true are
// missing. The mask must have the same length as the column.
func (c *Column) WithNulls(mask []bool) (*Column, error) {
	if len(mask) != c.Len() {
		return nil, errors.Newf("frame: null mask for column %q has length %d, want %d", c.name, len(mask), c.Len())
	}
	if c.kind == Object {
		objs := append([]any(nil), c.objs...)
		for i, m := range mask {
			if m {
				objs[i] = nil
			}
		}
		return &Column{name: c.name, kind: Object, objs: objs}, nil
	}

	valid := make([]bool, len(mask))
	for i, m := range mask {
		valid[i] = !m && c.arr.IsValid(i)
	}
	switch a := c.arr.(type) {
	case *array.Float64:
		return newFloat(c.name, a.Float64Values(), valid), nil
	case *array.Int64:
		return newInt(c.name, a.Int64Values(), valid), nil
	case *array.String:
		values := make([]string, a.Len())
		for i := range values {
			values[i] = a.Value(i)
		}
		return newString(c.name, values, valid), nil
	case *array.Boolean:
		values := make([]bool, a.Len())
		for i := range values {
			values[i] = a.Value(i)
		}
		return newBool(c.name, values, valid), nil
	case *array.Timestamp:
		return newTime(c.name, a.TimestampValues(), valid), nil
	default:
		return nil, errors.Newf("frame: column %q has unsupported arrow type %s", c.name, c.arr.DataType())
	}
}

// Rename returns a copy of c with a new name. Value storage is shared.
func (c *Column) Rename(name string) *Column {
	out := *c
	out.name = name
	return &out
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// Kind returns the declared column type.
func (c *Column) Kind() Kind { return c.kind }

// Len returns the number of values.
func (c *Column) Len() int {
	if c.kind == Object {
		return len(c.objs)
	}
	return c.arr.Len()
}

// IsNull reports whether the i-th value is missing.
func (c *Column) IsNull(i int) bool {
	switch c.kind {
	case Object:
		v := c.objs[i]
		if v == nil {
			return true
		}
		if f, ok := v.(float64); ok {
			return math.IsNaN(f)
		}
		return false
	case Float:
		return c.arr.IsNull(i) || math.IsNaN(c.arr.(*array.Float64).Value(i))
	default:
		return c.arr.IsNull(i)
	}
}

// NullCount returns the number of missing values.
func (c *Column) NullCount() int {
	if c.kind != Object && c.kind != Float {
		return c.arr.NullN()
	}
	n := 0
	for i := 0; i < c.Len(); i++ {
		if c.IsNull(i) {
			n++
		}
	}
	return n
}

// Value returns the i-th value boxed, or nil when it is missing.
func (c *Column) Value(i int) any {
	if c.IsNull(i) {
		return nil
	}
	switch c.kind {
	case Float:
		return c.arr.(*array.Float64).Value(i)
	case Int:
		return c.arr.(*array.Int64).Value(i)
	case String:
		return c.arr.(*array.String).Value(i)
	case Bool:
		return c.arr.(*array.Boolean).Value(i)
	case Time:
		return c.arr.(*array.Timestamp).Value(i).ToTime(timeType.Unit)
	default:
		return c.objs[i]
	}
}

// Float returns the i-th value of a numeric column as float64.
// Missing values are returned as NaN.
func (c *Column) Float(i int) float64 {
	switch c.kind {
	case Float:
		if c.arr.IsNull(i) {
			return math.NaN()
		}
		return c.arr.(*array.Float64).Value(i)
	case Int:
		if c.arr.IsNull(i) {
			return math.NaN()
		}
		return float64(c.arr.(*array.Int64).Value(i))
	default:
		return math.NaN()
	}
}

// Float64s returns a copy of a numeric column's values as float64.
// Missing values are NaN.
func (c *Column) Float64s() ([]float64, error) {
	if !c.kind.IsNumeric() {
		return nil, errors.Newf("frame: column %q of kind %s is not numeric", c.name, c.kind)
	}
	out := make([]float64, c.Len())
	for i := range out {
		out[i] = c.Float(i)
	}
	return out, nil
}

// Int64s returns a copy of an Int column's values. Missing entries are 0.
func (c *Column) Int64s() ([]int64, error) {
	if c.kind != Int {
		return nil, errors.Newf("frame: column %q of kind %s is not int64", c.name, c.kind)
	}
	return append([]int64(nil), c.arr.(*array.Int64).Int64Values()...), nil
}

// Strings returns a copy of a String column's values. Missing entries are "".
func (c *Column) Strings() ([]string, error) {
	if c.kind != String {
		return nil, errors.Newf("frame: column %q of kind %s is not string", c.name, c.kind)
	}
	a := c.arr.(*array.String)
	out := make([]string, a.Len())
	for i := range out {
		if a.IsValid(i) {
			out[i] = a.Value(i)
		}
	}
	return out, nil
}

// Values returns every value boxed, with nil for missing entries.
func (c *Column) Values() []any {
	out := make([]any, c.Len())
	for i := range out {
		out[i] = c.Value(i)
	}
	return out
}

// Array returns the arrow array holding the column's values. Object columns
// have no arrow representation and return nil.
func (c *Column) Array() arrow.Array {
	return c.arr
}
