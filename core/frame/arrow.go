package frame

import (
	"github.com/YuminosukeSato/scifeat/pkg/errors"
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// FromRecord copies an arrow record into a frame. Supported column types are
// float64, int64, utf8, bool and timestamps of any unit; nulls become
// missing values. The record is not retained and may be released afterwards.
func FromRecord(rec arrow.Record) (*Frame, error) {
	cols := make([]*Column, rec.NumCols())
	for j := range cols {
		name := rec.ColumnName(j)
		c, err := columnFromArray(name, rec.Column(j))
		if err != nil {
			return nil, err
		}
		cols[j] = c
	}
	return New(cols...)
}

func columnFromArray(name string, arr arrow.Array) (*Column, error) {
	valid := make([]bool, arr.Len())
	for i := range valid {
		valid[i] = arr.IsValid(i)
	}
	switch a := arr.(type) {
	case *array.Float64:
		return newFloat(name, a.Float64Values(), valid), nil
	case *array.Int64:
		return newInt(name, a.Int64Values(), valid), nil
	case *array.String:
		values := make([]string, a.Len())
		for i := range values {
			values[i] = a.Value(i)
		}
		return newString(name, values, valid), nil
	case *array.Boolean:
		values := make([]bool, a.Len())
		for i := range values {
			values[i] = a.Value(i)
		}
		return newBool(name, values, valid), nil
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		values := make([]arrow.Timestamp, a.Len())
		for i := range values {
			values[i] = arrow.Timestamp(a.Value(i).ToTime(unit).UnixNano())
		}
		return newTime(name, values, valid), nil
	default:
		return nil, errors.Newf("frame: column %q has unsupported arrow type %s", name, arr.DataType())
	}
}

// ToRecord returns the frame as an arrow record sharing the column arrays.
// Object columns cannot be represented and yield an error. The caller
// releases the record.
func (f *Frame) ToRecord() (arrow.Record, error) {
	fields := make([]arrow.Field, len(f.cols))
	arrs := make([]arrow.Array, len(f.cols))
	for j, c := range f.cols {
		if c.Array() == nil {
			return nil, errors.Newf("frame: column %q of kind %s has no arrow type", c.Name(), c.Kind())
		}
		fields[j] = arrow.Field{Name: c.Name(), Type: c.Array().DataType(), Nullable: true}
		arrs[j] = c.Array()
	}
	schema := arrow.NewSchema(fields, nil)
	return array.NewRecord(schema, arrs, int64(f.nrows)), nil
}
