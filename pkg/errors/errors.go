// Package errors はプロジェクト全体のエラーハンドリングと警告システムを提供します。
// scikit-learnの警告・例外システムにインスパイアされており、構造化されたエラー情報を提供します。
package errors

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// デフォルトのハンドラは標準エラー出力にログを出す
		log.Printf("scifeat-Warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler はライブラリ全体の警告ハンドラを設定します。
// これにより、BinRangeWarningなどのカスタム警告の処理方法を制御できます。
//
// 例:
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
// nilを渡すと従来のハンドラに戻ります。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// zerologが利用可能な場合は構造化ログとして出力し、そうでなければ従来のハンドラを使用します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	警告型
//
// ===========================================================================

// BinRangeWarning は変換時の値が学習時の範囲外にあり、端のビンに
// 割り当てられた場合に発生する警告です。
type BinRangeWarning struct {
	Variable string
	Below    int // 学習時の最小値より小さい値の数
	Above    int // 学習時の最大値より大きい値の数
	Min      float64
	Max      float64
}

func (w *BinRangeWarning) Error() string {
	return fmt.Sprintf("variable '%s' has %d values below %g and %d values above %g; they were assigned to the outermost bins",
		w.Variable, w.Below, w.Min, w.Above, w.Max)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *BinRangeWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("variable", w.Variable).
		Int("below", w.Below).
		Int("above", w.Above).
		Float64("min", w.Min).
		Float64("max", w.Max).
		Str("type", "BinRangeWarning")
}

// NewBinRangeWarning は新しいBinRangeWarningを作成します。
func NewBinRangeWarning(variable string, below, above int, min, max float64) *BinRangeWarning {
	return &BinRangeWarning{Variable: variable, Below: below, Above: above, Min: min, Max: max}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// NotFittedError はモデルが未学習の状態で `Transform` や学習済み属性を参照した場合のエラーです。
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("scifeat: %s: this transformer is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError は新しいNotFittedErrorを作成し、スタックトレースを付与します。
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError は入力データの次元が期待値と異なる場合のエラーです。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("scifeat: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("type", "DimensionError")
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValidationError はコンストラクタ引数の検証に失敗した場合のエラーです。
// 型または範囲が不正なパラメータを示します。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("scifeat: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError は新しいValidationErrorを作成し、スタックトレースを付与します。
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// DataQualityError は入力データの品質が処理に適さない場合のエラーです。
// 欠損値や、要求されたビン数に対して異なる値が不足している列などを示します。
type DataQualityError struct {
	Op      string
	Columns []string
	Reason  string
	Err     error
}

func (e *DataQualityError) Error() string {
	msg := fmt.Sprintf("scifeat: %s: %s in variables [%s]", e.Op, e.Reason, strings.Join(e.Columns, ", "))
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DataQualityError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DataQualityError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Strs("columns", e.Columns).
		Str("reason", e.Reason).
		Str("type", "DataQualityError")
}

// NewDataQualityError は新しいDataQualityErrorを作成し、スタックトレースを付与します。
func NewDataQualityError(op, reason string, columns []string, err error) error {
	cols := make([]string, len(columns))
	copy(cols, columns)
	dqErr := &DataQualityError{Op: op, Columns: cols, Reason: reason, Err: err}
	return errors.WithStack(dqErr)
}

// NewMissingValuesError は欠損値を含む列に対するDataQualityErrorを作成します。
// errors.Is(err, ErrMissingValues) で判定できます。
func NewMissingValuesError(op string, columns []string) error {
	return NewDataQualityError(op, "missing values found", columns, ErrMissingValues)
}

// SchemaMismatchError は変換時の入力データの構造が学習時と異なる場合のエラーです。
type SchemaMismatchError struct {
	Op       string
	Expected int      // 学習時の列数
	Got      int      // 入力データの列数
	Missing  []string // 学習時に存在し、入力データに存在しない列
	Reason   string
}

func (e *SchemaMismatchError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("scifeat: %s: input schema mismatch: %s", e.Op, e.Reason)
	}
	if len(e.Missing) > 0 {
		return fmt.Sprintf("scifeat: %s: input schema mismatch: columns [%s] seen during fit are missing",
			e.Op, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("scifeat: %s: input schema mismatch: expected %d features, got %d", e.Op, e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *SchemaMismatchError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Strs("missing", e.Missing).
		Str("reason", e.Reason).
		Str("type", "SchemaMismatchError")
}

// NewSchemaMismatchError は列数または列名の不一致を示すSchemaMismatchErrorを作成します。
func NewSchemaMismatchError(op string, expected, got int, missing []string) error {
	err := &SchemaMismatchError{Op: op, Expected: expected, Got: got, Missing: missing}
	return errors.WithStack(err)
}

// NewSchemaMismatchErrorf は任意の理由を持つSchemaMismatchErrorを作成します。
func NewSchemaMismatchErrorf(op string, format string, args ...interface{}) error {
	err := &SchemaMismatchError{Op: op, Reason: fmt.Sprintf(format, args...)}
	return errors.WithStack(err)
}

// ValueError は引数の値が不適切または不正な場合に発生するエラーです。
// 例えば、存在しない列を変数として指定した場合など。
type ValueError struct {
	Op      string
	Message string
	Err     error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("scifeat: %s: %s", e.Op, e.Message)
}

func (e *ValueError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ValueError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("type", "ValueError").
		Str("operation", e.Op).
		Str("message", e.Message)
	if e.Err != nil {
		event.AnErr("cause", e.Err)
	}
}

// NewValueError は新しいValueErrorを作成し、スタックトレースを付与します。
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// NewValueErrorWithCause は原因となる番兵エラーを保持するValueErrorを作成します。
func NewValueErrorWithCause(op string, cause error, message string) error {
	err := &ValueError{Op: op, Message: message, Err: cause}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = New("empty data")

	// ErrMissingValues は欠損値が含まれている場合のエラーです。
	ErrMissingValues = New("missing values")

	// ErrInfiniteValues は無限大の値が含まれている場合のエラーです。
	ErrInfiniteValues = New("infinite values")

	// ErrVariableNotFound は指定された変数がデータに存在しない場合のエラーです。
	ErrVariableNotFound = New("variable not found")

	// ErrNonNumericVariable は指定された変数が数値型でない場合のエラーです。
	ErrNonNumericVariable = New("variable is not numeric")

	// ErrNoNumericVariables はデータに数値型の変数が一つもない場合のエラーです。
	ErrNoNumericVariables = New("no numerical variables found")
)
