package preprocessing

import (
	"fmt"

	"github.com/YuminosukeSato/scifeat/core/frame"
	"github.com/YuminosukeSato/scifeat/pkg/errors"
)

// CheckInitVariables は variables パラメータを正規化する
//
// 受け付ける値:
//   - nil（nil スライスを含む）: 数値列を学習時に自動検出する（戻り値 nil）
//   - string: 単一の列名
//   - []string, []interface{}: 列名のリスト（順序を保持）
//
// 空リスト、重複、文字列以外の要素は ValidationError になる。
// 戻り値は入力と共有しないコピー。
func CheckInitVariables(variables interface{}) ([]string, error) {
	switch v := variables.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{v}, nil
	case []string:
		if v == nil {
			return nil, nil
		}
		return checkVariableList(v, variables)
	case []interface{}:
		if v == nil {
			return nil, nil
		}
		names := make([]string, len(v))
		for i, item := range v {
			name, ok := item.(string)
			if !ok {
				return nil, errors.NewValidationError("variables",
					fmt.Sprintf("must be a string or a list of strings, element %d is %T", i, item), variables)
			}
			names[i] = name
		}
		return checkVariableList(names, variables)
	default:
		return nil, errors.NewValidationError("variables",
			"must be nil, a string or a list of strings", variables)
	}
}

func checkVariableList(names []string, raw interface{}) ([]string, error) {
	if len(names) == 0 {
		return nil, errors.NewValidationError("variables", "list must not be empty", raw)
	}
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			return nil, errors.NewValidationError("variables",
				fmt.Sprintf("contains duplicated variable %q", name), raw)
		}
		seen[name] = struct{}{}
	}
	return append([]string(nil), names...), nil
}

// FindNumericalVariables は X の数値列（float64, int64）を列順に返す。
// exclude に含まれる列名は対象外とする。数値列がひとつもなければエラー。
func FindNumericalVariables(X *frame.Frame, exclude ...string) ([]string, error) {
	skip := make(map[string]struct{}, len(exclude))
	for _, name := range exclude {
		skip[name] = struct{}{}
	}
	var names []string
	for _, name := range X.NumericNames() {
		if _, ok := skip[name]; !ok {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, errors.NewValueErrorWithCause("FindNumericalVariables", errors.ErrNoNumericVariables,
			"no numerical variables found in this dataframe. Check variable format with frame.Kinds()")
	}
	return names, nil
}

// CheckNumericalVariables は指定された列がすべて X に存在し、数値型であることを確認する
func CheckNumericalVariables(X *frame.Frame, variables []string) ([]string, error) {
	var notFound, notNumeric []string
	for _, name := range variables {
		col, ok := X.Column(name)
		switch {
		case !ok:
			notFound = append(notFound, name)
		case !col.Kind().IsNumeric():
			notNumeric = append(notNumeric, name)
		}
	}
	if len(notFound) > 0 {
		return nil, errors.NewValueErrorWithCause("CheckNumericalVariables", errors.ErrVariableNotFound,
			fmt.Sprintf("variables %v are not in the dataframe", notFound))
	}
	if len(notNumeric) > 0 {
		return nil, errors.NewValueErrorWithCause("CheckNumericalVariables", errors.ErrNonNumericVariable,
			fmt.Sprintf("variables %v are not numerical. Cast them as float64 or int64 before using this transformer", notNumeric))
	}
	return append([]string(nil), variables...), nil
}
