package preprocessing

import (
	"fmt"
	"math"

	"github.com/YuminosukeSato/scifeat/core/parallel"
	"github.com/YuminosukeSato/scifeat/pkg/errors"
)

const (
	defaultBins      = 10
	defaultPrecision = 3
	defaultNJobs     = 1
)

// jenksParams holds the hyperparameters of a JenksDiscretiser.
// Fields are exported for gob.
type jenksParams struct {
	Bins             int
	Variables        []string
	ReturnObject     bool
	ReturnBoundaries bool
	Precision        int
	NJobs            int
}

func defaultParams() jenksParams {
	return jenksParams{
		Bins:      defaultBins,
		Precision: defaultPrecision,
		NJobs:     defaultNJobs,
	}
}

func (p jenksParams) clone() jenksParams {
	p.Variables = append([]string(nil), p.Variables...)
	if len(p.Variables) == 0 {
		p.Variables = nil
	}
	return p
}

func (p jenksParams) validate() error {
	if p.Bins < 1 {
		return errors.NewValidationError("bins", "must be a positive integer", p.Bins)
	}
	if p.Precision < 1 {
		return errors.NewValidationError("precision", "must be a positive integer", p.Precision)
	}
	if _, err := parallel.ResolveJobs(p.NJobs); err != nil {
		return err
	}
	if p.Variables != nil {
		if _, err := CheckInitVariables(p.Variables); err != nil {
			return err
		}
	}
	return nil
}

// GetParams はハイパーパラメータを scikit-learn と同じキー名で返す
//
// variables は自動検出の場合 nil（[]string 型）。
func (d *JenksDiscretiser) GetParams() map[string]interface{} {
	p := d.snapshotParams()
	return map[string]interface{}{
		"bins":              p.Bins,
		"variables":         p.Variables,
		"return_object":     p.ReturnObject,
		"return_boundaries": p.ReturnBoundaries,
		"precision":         p.Precision,
		"n_jobs":            p.NJobs,
	}
}

// SetParams はハイパーパラメータを型と範囲を検証したうえで設定する
//
// 値の型は動的に検査される: bins, precision, n_jobs は整数型（bool や
// 浮動小数点数は不可）、return_object と return_boundaries は bool のみ。
// エラー時はどのパラメータも変更されない。学習済みの状態は保持される。
func (d *JenksDiscretiser) SetParams(params map[string]interface{}) error {
	p := d.snapshotParams()
	if err := applyParams(&p, params); err != nil {
		return err
	}
	if err := p.validate(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.params = p
	return nil
}

// NewJenksDiscretiserFromParams は動的に型付けされたパラメータから JenksDiscretiser を作成する
//
// 指定されなかったパラメータはデフォルト値になる。
//
// 使用例:
//
//	disc, err := preprocessing.NewJenksDiscretiserFromParams(map[string]interface{}{
//	    "bins":              5,
//	    "variables":         []string{"age", "income"},
//	    "return_boundaries": true,
//	})
func NewJenksDiscretiserFromParams(params map[string]interface{}, opts ...Option) (*JenksDiscretiser, error) {
	d, err := NewJenksDiscretiser(opts...)
	if err != nil {
		return nil, err
	}
	if err := d.SetParams(params); err != nil {
		return nil, err
	}
	return d, nil
}

func applyParams(p *jenksParams, params map[string]interface{}) error {
	for key, value := range params {
		var err error
		switch key {
		case "bins":
			p.Bins, err = intParam(key, value)
		case "precision":
			p.Precision, err = intParam(key, value)
		case "n_jobs":
			p.NJobs, err = intParam(key, value)
		case "return_object":
			p.ReturnObject, err = boolParam(key, value)
		case "return_boundaries":
			p.ReturnBoundaries, err = boolParam(key, value)
		case "variables":
			p.Variables, err = CheckInitVariables(value)
		default:
			err = errors.NewValidationError(key, "unknown parameter for JenksDiscretiser", value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func intParam(name string, value interface{}) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int8:
		return int(v), nil
	case int16:
		return int(v), nil
	case int32:
		return int(v), nil
	case int64:
		if v < math.MinInt || v > math.MaxInt {
			return 0, errors.NewValidationError(name, "overflows int", value)
		}
		return int(v), nil
	case uint8:
		return int(v), nil
	case uint16:
		return int(v), nil
	case uint32:
		return unsignedParam(name, uint64(v), value)
	case uint:
		return unsignedParam(name, uint64(v), value)
	case uint64:
		return unsignedParam(name, v, value)
	case uintptr:
		return unsignedParam(name, uint64(v), value)
	default:
		return 0, errors.NewValidationError(name, fmt.Sprintf("must be an integer, got %T", value), value)
	}
}

func unsignedParam(name string, v uint64, value interface{}) (int, error) {
	if v > math.MaxInt {
		return 0, errors.NewValidationError(name, "overflows int", value)
	}
	return int(v), nil
}

func boolParam(name string, value interface{}) (bool, error) {
	b, ok := value.(bool)
	if !ok {
		return false, errors.NewValidationError(name, "must be True or False", value)
	}
	return b, nil
}
