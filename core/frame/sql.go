package frame

import (
	"database/sql"
	"time"

	"github.com/YuminosukeSato/scifeat/pkg/errors"
	"github.com/apache/arrow-go/v18/arrow"
)

// FromSQLRows reads every remaining row of a result set into a frame and
// closes rows. Column kinds follow the Go types the driver returns:
// integers become Int, floats Float, text and blobs String, booleans Bool
// and timestamps Time. SQL NULLs become missing values. A column whose
// values mix types, or that holds only NULLs, becomes Object.
func FromSQLRows(rows *sql.Rows) (*Frame, error) {
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, "frame: reading result columns")
	}

	raw := make([][]any, len(names))
	dest := make([]any, len(names))
	ptrs := make([]any, len(names))
	for i := range dest {
		ptrs[i] = &dest[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, errors.Wrap(err, "frame: scanning row")
		}
		for j, v := range dest {
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			raw[j] = append(raw[j], v)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "frame: iterating rows")
	}

	cols := make([]*Column, len(names))
	for j, name := range names {
		cols[j] = columnFromValues(name, raw[j])
	}
	return New(cols...)
}

func columnFromValues(name string, values []any) *Column {
	n := len(values)
	nulls := make([]bool, n)
	hasNull := false
	kind := Object
	first := true
	for i, v := range values {
		if v == nil {
			nulls[i] = true
			hasNull = true
			continue
		}
		k := kindOf(v)
		if first {
			kind, first = k, false
		} else if k != kind {
			kind = Object
			break
		}
	}
	if first {
		kind = Object
	}

	var valid []bool
	if hasNull {
		valid = make([]bool, n)
		for i, null := range nulls {
			valid[i] = !null
		}
	}
	switch kind {
	case Int:
		out := make([]int64, n)
		for i, v := range values {
			if v != nil {
				out[i] = v.(int64)
			}
		}
		return newInt(name, out, valid)
	case Float:
		out := make([]float64, n)
		for i, v := range values {
			if v != nil {
				out[i] = v.(float64)
			}
		}
		return newFloat(name, out, valid)
	case String:
		out := make([]string, n)
		for i, v := range values {
			if v != nil {
				out[i] = v.(string)
			}
		}
		return newString(name, out, valid)
	case Bool:
		out := make([]bool, n)
		for i, v := range values {
			if v != nil {
				out[i] = v.(bool)
			}
		}
		return newBool(name, out, valid)
	case Time:
		out := make([]arrow.Timestamp, n)
		for i, v := range values {
			if v != nil {
				out[i] = arrow.Timestamp(v.(time.Time).UnixNano())
			}
		}
		return newTime(name, out, valid)
	default:
		return NewObject(name, values)
	}
}

func kindOf(v any) Kind {
	switch v.(type) {
	case int64:
		return Int
	case float64:
		return Float
	case string:
		return String
	case bool:
		return Bool
	case time.Time:
		return Time
	default:
		return Object
	}
}
