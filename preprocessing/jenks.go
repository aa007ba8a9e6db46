// Package preprocessing provides feature discretisation transformers.
package preprocessing

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/YuminosukeSato/scifeat/core/frame"
	"github.com/YuminosukeSato/scifeat/core/jenks"
	"github.com/YuminosukeSato/scifeat/core/model"
	"github.com/YuminosukeSato/scifeat/core/parallel"
	"github.com/YuminosukeSato/scifeat/pkg/errors"
	"github.com/YuminosukeSato/scifeat/pkg/log"
)

const modelName = "JenksDiscretiser"

// JenksDiscretiser は Jenks の自然分類（natural breaks）で数値列を区間に分割する変換器
//
// 各変数について、クラス内の分散が最小になるように bins 個の区間を求め、
// Transform で各値を区間番号 0..bins-1（または区間ラベル）に置き換える。
// 区間は右閉区間 (b[i], b[i+1]] で、学習時の最小値以下の値は最初の区間、
// 最大値を超える値は最後の区間に割り当てられる。
//
// 学習済みの JenksDiscretiser の Transform は複数の goroutine から同時に
// 呼び出してよい。Fit は全変数の学習に成功した場合のみ状態を更新する。
//
// ゼロ値は gob のデコード先としてのみ使用できる。通常は NewJenksDiscretiser を使う。
type JenksDiscretiser struct {
	state  *model.StateManager
	logger log.Logger

	mu     sync.RWMutex
	params jenksParams

	// variablesSpec は WithVariables で渡された値（検証前）
	variablesSpec []string

	// 学習済みの状態
	binnerDict map[string][]float64
	variables  []string
}

// NewJenksDiscretiser は新しい JenksDiscretiser を作成する
//
// デフォルト: bins=10, variables=自動検出, return_object=false,
// return_boundaries=false, precision=3, n_jobs=1
//
// 使用例:
//
//	disc, err := preprocessing.NewJenksDiscretiser(
//	    preprocessing.WithBins(4),
//	    preprocessing.WithVariables("age", "income"),
//	)
//	if err != nil {
//	    return err
//	}
//	Xt, err := disc.FitTransform(X, nil)
func NewJenksDiscretiser(opts ...Option) (*JenksDiscretiser, error) {
	d := &JenksDiscretiser{
		state:  model.NewStateManager(),
		params: defaultParams(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.variablesSpec != nil {
		vars, err := CheckInitVariables(d.variablesSpec)
		if err != nil {
			return nil, err
		}
		d.params.Variables = vars
		d.variablesSpec = nil
	}
	if err := d.params.validate(); err != nil {
		return nil, err
	}
	if d.logger == nil {
		d.logger = defaultLogger()
	}
	return d, nil
}

func defaultLogger() log.Logger {
	return log.GetLoggerWithName("preprocessing.jenks").With(log.ModelNameKey, modelName)
}

func (d *JenksDiscretiser) snapshotParams() jenksParams {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.params.clone()
}

// Fit は X の各変数について Jenks の自然分類の境界を学習する
//
// パラメータ:
//   - X: 学習データ。変換しない列を含んでいてもよい
//   - y: 目的変数（任意）。学習には使われないが、変数の自動検出では
//     同名の列を除外する
//
// 戻り値:
//   - *JenksDiscretiser: レシーバ自身（メソッドチェーン用）
//   - error: 欠損値がある場合、異なる値の数が bins より少ない場合など
func (d *JenksDiscretiser) Fit(X *frame.Frame, y *frame.Column) (*JenksDiscretiser, error) {
	return d.FitContext(context.Background(), X, y)
}

// FitContext は Fit と同じだが、変数ごとの学習を ctx でキャンセルできる
func (d *JenksDiscretiser) FitContext(ctx context.Context, X *frame.Frame, y *frame.Column) (out *JenksDiscretiser, err error) {
	const op = "JenksDiscretiser.Fit"
	defer errors.Recover(&err, op)

	start := time.Now()
	p := d.snapshotParams()

	if X == nil || X.NRows() == 0 {
		return nil, errors.Wrapf(errors.ErrEmptyData, "%s", op)
	}

	d.logger.Debug("Fit started",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhasePreprocessing,
		log.SamplesKey, X.NRows(),
		log.FeaturesKey, X.NCols(),
		log.BinsKey, p.Bins,
	)

	vars, err := resolveVariables(X, y, p.Variables)
	if err != nil {
		return nil, d.logFailure(op, log.ErrorInvalidParam, err)
	}
	if nulls := X.ColumnsWithNulls(vars); len(nulls) > 0 {
		return nil, d.logFailure(op, log.ErrorDataQuality, errors.NewMissingValuesError(op, nulls))
	}

	columns := make([][]float64, len(vars))
	for i, name := range vars {
		col, _ := X.Column(name)
		if columns[i], err = col.Float64s(); err != nil {
			return nil, err
		}
		if err := errors.CheckFinite(op, name, columns[i]); err != nil {
			return nil, d.logFailure(op, log.ErrorDataQuality, err)
		}
	}

	workers, err := parallel.ResolveJobs(p.NJobs)
	if err != nil {
		return nil, err
	}

	// 一時的なスライスに学習し、全変数が成功した場合のみ反映する
	breaks := make([][]float64, len(vars))
	err = parallel.ForEach(ctx, len(vars), workers, func(_ context.Context, i int) error {
		nb := jenks.NewNaturalBreaks(p.Bins)
		if err := nb.Fit(columns[i]); err != nil {
			return errors.NewDataQualityError(op,
				fmt.Sprintf("cannot find %d natural breaks", p.Bins), []string{vars[i]}, err)
		}
		breaks[i] = nb.Breaks()
		return nil
	})
	if err != nil {
		return nil, d.logFailure(op, log.ErrorDataQuality, err)
	}

	binnerDict := make(map[string][]float64, len(vars))
	for i, name := range vars {
		binnerDict[name] = breaks[i]
	}

	d.mu.Lock()
	d.binnerDict = binnerDict
	d.variables = vars
	d.state.RecordSchema(X)
	d.mu.Unlock()

	for i, name := range vars {
		d.logger.Debug("Breaks fitted", log.VariableKey, name, log.BreaksKey, breaks[i])
	}
	d.logger.Info("Fit completed",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, X.NRows(),
		log.VariablesKey, vars,
		log.BinsKey, p.Bins,
		log.JobsKey, workers,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return d, nil
}

func resolveVariables(X *frame.Frame, y *frame.Column, vars []string) ([]string, error) {
	if vars == nil {
		var exclude []string
		if y != nil {
			exclude = append(exclude, y.Name())
		}
		return FindNumericalVariables(X, exclude...)
	}
	return CheckNumericalVariables(X, vars)
}

// Transform は学習した境界で各変数を区間に置き換えた新しい Frame を返す
//
// X は学習時と同じ列数で、学習時の全ての列を含む必要がある。列の順序は
// 学習時の順序に揃えられる。X 自体は変更されない。
//
// 戻り値:
//   - *frame.Frame: 変換後のデータ
//   - error: 未学習、スキーマ不一致、欠損値がある場合
func (d *JenksDiscretiser) Transform(X *frame.Frame) (*frame.Frame, error) {
	const op = "JenksDiscretiser.Transform"

	d.mu.RLock()
	if err := d.state.RequireFitted(modelName, "Transform"); err != nil {
		d.mu.RUnlock()
		return nil, d.logFailure(op, log.ErrorNotFitted, err)
	}
	binnerDict := d.binnerDict
	vars := d.variables
	p := d.params.clone()
	ordered, err := d.state.ValidateSchema(op, X)
	d.mu.RUnlock()
	if err != nil {
		return nil, d.logFailure(op, log.ErrorSchemaMismatch, err)
	}

	for _, name := range vars {
		col, _ := ordered.Column(name)
		if !col.Kind().IsNumeric() {
			return nil, d.logFailure(op, log.ErrorSchemaMismatch, errors.NewSchemaMismatchErrorf(op,
				"variable %q was numeric during fit but is %s", name, col.Kind()))
		}
	}
	if nulls := ordered.ColumnsWithNulls(vars); len(nulls) > 0 {
		return nil, d.logFailure(op, log.ErrorDataQuality, errors.NewMissingValuesError(op, nulls))
	}

	workers, err := parallel.ResolveJobs(p.NJobs)
	if err != nil {
		return nil, err
	}

	out := ordered
	for _, name := range vars {
		col, _ := ordered.Column(name)
		binned, err := binColumn(col, binnerDict[name], p, workers)
		if err != nil {
			return nil, err
		}
		if out, err = out.WithColumn(binned); err != nil {
			return nil, err
		}
	}

	d.logger.Debug("Transform completed",
		log.OperationKey, log.OperationTransform,
		log.SamplesKey, ordered.NRows(),
		log.OutputKey, outputMode(p),
		log.PrecisionKey, p.Precision,
	)
	return out, nil
}

func outputMode(p jenksParams) string {
	mode := "codes"
	if p.ReturnBoundaries {
		mode = "boundaries"
	}
	if p.ReturnObject {
		mode += "+object"
	}
	return mode
}

// FitTransform は Fit と Transform を続けて実行する
func (d *JenksDiscretiser) FitTransform(X *frame.Frame, y *frame.Column) (*frame.Frame, error) {
	d.logger.Debug("FitTransform started", log.OperationKey, log.OperationFitTransform)
	if _, err := d.Fit(X, y); err != nil {
		return nil, err
	}
	return d.Transform(X)
}

func (d *JenksDiscretiser) logFailure(op, code string, err error) error {
	d.logger.Warn(op+" failed",
		log.ErrorCodeKey, code,
		log.ErrorTypeKey, errorType(err),
		"error", err,
	)
	return err
}

// errorType は err の型名を返す（ログの error.type 用）
func errorType(err error) string {
	var (
		notFitted  *errors.NotFittedError
		validation *errors.ValidationError
		quality    *errors.DataQualityError
		schema     *errors.SchemaMismatchError
		value      *errors.ValueError
		panicErr   *errors.PanicError
	)
	switch {
	case errors.As(err, &panicErr):
		return "PanicError"
	case errors.As(err, &notFitted):
		return "NotFittedError"
	case errors.As(err, &validation):
		return "ValidationError"
	case errors.As(err, &quality):
		return "DataQualityError"
	case errors.As(err, &schema):
		return "SchemaMismatchError"
	case errors.As(err, &value):
		return "ValueError"
	default:
		return "error"
	}
}

// IsFitted は学習済みかどうかを返す
func (d *JenksDiscretiser) IsFitted() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state != nil && d.state.IsFitted()
}

// BinnerDict は変数名ごとの境界（bins+1 個、単調非減少）のコピーを返す
func (d *JenksDiscretiser) BinnerDict() (map[string][]float64, error) {
	if err := d.state.RequireFitted(modelName, "BinnerDict"); err != nil {
		return nil, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make(map[string][]float64, len(d.binnerDict))
	for k, v := range d.binnerDict {
		out[k] = append([]float64(nil), v...)
	}
	return out, nil
}

// Variables は学習に使われた変数を順序どおりに返す
func (d *JenksDiscretiser) Variables() ([]string, error) {
	if err := d.state.RequireFitted(modelName, "Variables"); err != nil {
		return nil, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]string(nil), d.variables...), nil
}

// FeatureNamesIn は学習時の X の列名を返す
func (d *JenksDiscretiser) FeatureNamesIn() ([]string, error) {
	if err := d.state.RequireFitted(modelName, "FeatureNamesIn"); err != nil {
		return nil, err
	}
	return d.state.FeatureNamesIn(), nil
}

// NFeaturesIn は学習時の X の列数を返す
func (d *JenksDiscretiser) NFeaturesIn() (int, error) {
	if err := d.state.RequireFitted(modelName, "NFeaturesIn"); err != nil {
		return 0, err
	}
	n, _ := d.state.GetDimensions()
	return n, nil
}

// GetFeatureNamesOut は Transform の出力列名を返す。離散化は列名を変えない。
func (d *JenksDiscretiser) GetFeatureNamesOut() ([]string, error) {
	if err := d.state.RequireFitted(modelName, "GetFeatureNamesOut"); err != nil {
		return nil, err
	}
	return d.state.FeatureNamesIn(), nil
}

// Clone は同じパラメータを持つ未学習の JenksDiscretiser を返す
func (d *JenksDiscretiser) Clone() *JenksDiscretiser {
	return &JenksDiscretiser{
		state:  model.NewStateManager(),
		logger: d.logger,
		params: d.snapshotParams(),
	}
}

// String は scikit-learn 形式の文字列表現を返す。デフォルト値のパラメータは省略する。
func (d *JenksDiscretiser) String() string {
	p := d.snapshotParams()
	var args []string
	if p.Bins != defaultBins {
		args = append(args, fmt.Sprintf("bins=%d", p.Bins))
	}
	if p.Variables != nil {
		quoted := make([]string, len(p.Variables))
		for i, v := range p.Variables {
			quoted[i] = fmt.Sprintf("'%s'", v)
		}
		args = append(args, "variables=["+strings.Join(quoted, ", ")+"]")
	}
	if p.ReturnObject {
		args = append(args, "return_object=True")
	}
	if p.ReturnBoundaries {
		args = append(args, "return_boundaries=True")
	}
	if p.Precision != defaultPrecision {
		args = append(args, fmt.Sprintf("precision=%d", p.Precision))
	}
	if p.NJobs != defaultNJobs {
		args = append(args, fmt.Sprintf("n_jobs=%d", p.NJobs))
	}
	return modelName + "(" + strings.Join(args, ", ") + ")"
}

// ExportEdges は学習済みの境界を JSON に書き出せる形式で返す
func (d *JenksDiscretiser) ExportEdges() (*model.BinEdges, error) {
	binnerDict, err := d.BinnerDict()
	if err != nil {
		return nil, err
	}
	return &model.BinEdges{
		ModelType:       modelName,
		Version:         "1",
		Edges:           binnerDict,
		FeatureNamesIn:  d.state.FeatureNamesIn(),
		Hyperparameters: d.GetParams(),
		IsFitted:        true,
	}, nil
}

// jenksState は gob でエンコードされる JenksDiscretiser の内容
type jenksState struct {
	Params     jenksParams
	BinnerDict map[string][]float64
	Variables  []string
	Schema     model.ModelState

	// FittedBins は学習時の bins。学習後に SetParams で bins を変えても
	// 境界の長さは FittedBins+1 のまま
	FittedBins int
}

// fittedBins は学習済みの境界から bins を求める。未学習なら 0。
func fittedBins(binnerDict map[string][]float64, vars []string) int {
	if len(vars) == 0 {
		return 0
	}
	return len(binnerDict[vars[0]]) - 1
}

// GobEncode implements gob.GobEncoder.
func (d *JenksDiscretiser) GobEncode() ([]byte, error) {
	d.mu.RLock()
	st := jenksState{
		Params:     d.params.clone(),
		BinnerDict: d.binnerDict,
		Variables:  d.variables,
		Schema:     d.state.GetState(),
		FittedBins: fittedBins(d.binnerDict, d.variables),
	}
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(st)
	d.mu.RUnlock()
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode JenksDiscretiser")
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder. The decoded parameters and breaks are
// validated before the receiver is updated.
func (d *JenksDiscretiser) GobDecode(data []byte) error {
	var st jenksState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&st); err != nil {
		return errors.Wrap(err, "failed to decode JenksDiscretiser")
	}
	if err := st.Params.validate(); err != nil {
		return err
	}
	if st.Schema.Fitted {
		if st.FittedBins < 1 || len(st.Variables) == 0 {
			return errors.Newf("decoded fitted state has %d bins and %d variables", st.FittedBins, len(st.Variables))
		}
		for _, name := range st.Variables {
			b := st.BinnerDict[name]
			if len(b) != st.FittedBins+1 || !sort.Float64sAreSorted(b) {
				return errors.Newf("decoded breaks of variable %q are invalid", name)
			}
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == nil {
		d.state = model.NewStateManager()
	}
	d.state.SetState(st.Schema)
	d.params = st.Params.clone()
	d.binnerDict = st.BinnerDict
	d.variables = st.Variables
	if d.logger == nil {
		d.logger = defaultLogger()
	}
	return nil
}
