package preprocessing

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/YuminosukeSato/scifeat/core/frame"
	"github.com/YuminosukeSato/scifeat/core/jenks"
	"github.com/YuminosukeSato/scifeat/core/model"
	scierrors "github.com/YuminosukeSato/scifeat/pkg/errors"
	"github.com/YuminosukeSato/scifeat/pkg/log"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// captureWarnings は警告ハンドラを差し替え、テスト終了時に元に戻す
func captureWarnings(t *testing.T) *[]error {
	t.Helper()
	var mu sync.Mutex
	warnings := &[]error{}
	scierrors.SetZerologWarnFunc(nil)
	scierrors.SetWarningHandler(func(w error) {
		mu.Lock()
		defer mu.Unlock()
		*warnings = append(*warnings, w)
	})
	t.Cleanup(func() {
		scierrors.SetWarningHandler(func(error) {})
	})
	return warnings
}

func TestJenksDiscretiser_FitAndTransform(t *testing.T) {
	d, err := NewJenksDiscretiser(WithBins(4), WithReturnObject(false))
	require.NoError(t, err)

	X := dfRange(t)
	Xt, err := d.FitTransform(X, nil)
	require.NoError(t, err)

	col, ok := Xt.Column("var")
	require.True(t, ok)
	codes, err := col.Int64s()
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 0, 0, 1, 1, 1, 2, 2, 2, 3, 3, 3}, codes)

	binnerDict, err := d.BinnerDict()
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 2, 5, 8, 11}, binnerDict["var"])

	vars, err := d.Variables()
	require.NoError(t, err)
	assert.Equal(t, []string{"var"}, vars)

	names, err := d.FeatureNamesIn()
	require.NoError(t, err)
	assert.Equal(t, []string{"var"}, names)

	n, err := d.NFeaturesIn()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestJenksDiscretiser_FitReturnsReceiver(t *testing.T) {
	d, err := NewJenksDiscretiser(WithBins(4))
	require.NoError(t, err)

	got, err := d.Fit(dfRange(t), nil)
	require.NoError(t, err)
	assert.Same(t, d, got)
}

func TestJenksDiscretiser_AutomaticallyFindVariablesAndReturnAsObject(t *testing.T) {
	d, err := NewJenksDiscretiser(WithBins(5), WithReturnObject(true))
	require.NoError(t, err)

	Xt, err := d.FitTransform(dfNormalDist(t), nil)
	require.NoError(t, err)

	col, _ := Xt.Column("var")
	assert.Equal(t, frame.Object, col.Kind())
	for _, v := range col.Values() {
		code, ok := v.(int64)
		require.True(t, ok)
		assert.GreaterOrEqual(t, code, int64(0))
		assert.Less(t, code, int64(5))
	}
}

func TestJenksDiscretiser_AutoDetectSkipsNonNumeric(t *testing.T) {
	d, err := NewJenksDiscretiser(WithBins(3))
	require.NoError(t, err)

	X := dfVartypes(t)
	Xt, err := d.FitTransform(X, nil)
	require.NoError(t, err)

	vars, err := d.Variables()
	require.NoError(t, err)
	assert.Equal(t, []string{"Age", "Marks"}, vars)

	// 数値でない列はそのまま
	if diff := cmp.Diff(X.Col(0).Values(), Xt.Col(0).Values()); diff != "" {
		t.Errorf("Name column changed (-want +got):\n%s", diff)
	}
	dob, _ := Xt.Column("dob")
	assert.Equal(t, frame.Time, dob.Kind())

	binnerDict, err := d.BinnerDict()
	require.NoError(t, err)
	age := binnerDict["Age"]
	require.Len(t, age, 4)
	assert.Equal(t, 18.0, age[0])
	assert.Equal(t, 21.0, age[3])
}

func TestJenksDiscretiser_TargetExcludedFromAutoDetect(t *testing.T) {
	d, err := NewJenksDiscretiser(WithBins(3))
	require.NoError(t, err)

	X := dfVartypes(t)
	y, _ := X.Column("Marks")
	_, err = d.Fit(X, y)
	require.NoError(t, err)

	vars, err := d.Variables()
	require.NoError(t, err)
	assert.Equal(t, []string{"Age"}, vars)
}

func TestJenksDiscretiser_ExplicitVariables(t *testing.T) {
	X := dfVartypes(t)

	d, err := NewJenksDiscretiser(WithBins(2), WithVariables("Marks"))
	require.NoError(t, err)
	Xt, err := d.FitTransform(X, nil)
	require.NoError(t, err)

	age, _ := Xt.Column("Age")
	assert.Equal(t, frame.Int, age.Kind())
	assert.Equal(t, X.Col(2).Values(), age.Values())

	d, err = NewJenksDiscretiser(WithBins(2), WithVariables("City"))
	require.NoError(t, err)
	_, err = d.Fit(X, nil)
	assert.ErrorIs(t, err, scierrors.ErrNonNumericVariable)

	d, err = NewJenksDiscretiser(WithBins(2), WithVariables("Height"))
	require.NoError(t, err)
	_, err = d.Fit(X, nil)
	assert.ErrorIs(t, err, scierrors.ErrVariableNotFound)
	assert.False(t, d.IsFitted())
}

func TestJenksDiscretiser_NoNumericVariables(t *testing.T) {
	X := frame.MustNew(frame.NewString("City", []string{"a", "b"}))
	d, err := NewJenksDiscretiser(WithBins(2))
	require.NoError(t, err)

	_, err = d.Fit(X, nil)
	assert.ErrorIs(t, err, scierrors.ErrNoNumericVariables)
}

func TestJenksDiscretiser_ErrorIfInputContainsNAInFit(t *testing.T) {
	d, err := NewJenksDiscretiser()
	require.NoError(t, err)

	_, err = d.Fit(dfNA(t), nil)
	var dqe *scierrors.DataQualityError
	require.ErrorAs(t, err, &dqe)
	assert.Equal(t, []string{"Age", "Marks"}, dqe.Columns)
	assert.ErrorIs(t, err, scierrors.ErrMissingValues)
	assert.False(t, d.IsFitted())
}

func TestJenksDiscretiser_ErrorIfInputContainsNAInTransform(t *testing.T) {
	d, err := NewJenksDiscretiser(WithBins(3))
	require.NoError(t, err)
	_, err = d.Fit(dfVartypes(t), nil)
	require.NoError(t, err)

	_, err = d.Transform(dfNA(t))
	var dqe *scierrors.DataQualityError
	require.ErrorAs(t, err, &dqe)
	assert.ErrorIs(t, err, scierrors.ErrMissingValues)
}

func TestJenksDiscretiser_NonFittedError(t *testing.T) {
	d, err := NewJenksDiscretiser()
	require.NoError(t, err)

	_, err = d.Transform(dfVartypes(t))
	var nfe *scierrors.NotFittedError
	require.ErrorAs(t, err, &nfe)
	assert.Equal(t, "Transform", nfe.Method)

	_, err = d.BinnerDict()
	assert.ErrorAs(t, err, &nfe)
	_, err = d.Variables()
	assert.ErrorAs(t, err, &nfe)
	_, err = d.FeatureNamesIn()
	assert.ErrorAs(t, err, &nfe)
	_, err = d.NFeaturesIn()
	assert.ErrorAs(t, err, &nfe)
	_, err = d.GetFeatureNamesOut()
	assert.ErrorAs(t, err, &nfe)
	_, err = d.ExportEdges()
	assert.ErrorAs(t, err, &nfe)
}

func TestJenksDiscretiser_TransformIsIdempotent(t *testing.T) {
	d, err := NewJenksDiscretiser(WithBins(3), WithReturnBoundaries(true))
	require.NoError(t, err)
	X := dfVartypes(t)
	_, err = d.Fit(X, nil)
	require.NoError(t, err)

	first, err := d.Transform(X)
	require.NoError(t, err)
	second, err := d.Transform(X)
	require.NoError(t, err)

	if diff := cmp.Diff(frameValues(first), frameValues(second)); diff != "" {
		t.Errorf("Transform output changed between calls (-first +second):\n%s", diff)
	}
}

func TestJenksDiscretiser_TransformDoesNotMutateInput(t *testing.T) {
	d, err := NewJenksDiscretiser(WithBins(4))
	require.NoError(t, err)
	X := dfRange(t)
	before := frameValues(X)

	_, err = d.FitTransform(X, nil)
	require.NoError(t, err)

	if diff := cmp.Diff(before, frameValues(X)); diff != "" {
		t.Errorf("input mutated (-before +after):\n%s", diff)
	}
	col, _ := X.Column("var")
	assert.Equal(t, frame.Int, col.Kind())
}

func TestJenksDiscretiser_TooFewDistinctValues(t *testing.T) {
	X := frame.MustNew(frame.NewFloat("x", []float64{1, 1, 2, 2, 3, 3}))
	d, err := NewJenksDiscretiser(WithBins(4))
	require.NoError(t, err)

	_, err = d.Fit(X, nil)
	var dqe *scierrors.DataQualityError
	require.ErrorAs(t, err, &dqe)
	assert.Equal(t, []string{"x"}, dqe.Columns)
	assert.ErrorIs(t, err, jenks.ErrTooFewValues)
}

func TestJenksDiscretiser_InfiniteValues(t *testing.T) {
	X := frame.MustNew(frame.NewFloat("x", []float64{1, 2, math.Inf(1), 4}))
	d, err := NewJenksDiscretiser(WithBins(2))
	require.NoError(t, err)

	_, err = d.Fit(X, nil)
	assert.ErrorIs(t, err, scierrors.ErrInfiniteValues)
}

func TestJenksDiscretiser_EmptyInput(t *testing.T) {
	d, err := NewJenksDiscretiser(WithBins(2))
	require.NoError(t, err)

	_, err = d.Fit(nil, nil)
	assert.ErrorIs(t, err, scierrors.ErrEmptyData)
	_, err = d.Fit(frame.MustNew(frame.NewFloat("x", nil)), nil)
	assert.ErrorIs(t, err, scierrors.ErrEmptyData)
}

func TestJenksDiscretiser_FitIsAtomic(t *testing.T) {
	d, err := NewJenksDiscretiser(WithBins(4))
	require.NoError(t, err)
	_, err = d.Fit(dfRange(t), nil)
	require.NoError(t, err)
	before, err := d.BinnerDict()
	require.NoError(t, err)

	// 2列目は異なる値が足りない
	bad := frame.MustNew(
		frame.NewFloat("a", []float64{0, 1, 2, 3, 4, 5}),
		frame.NewFloat("b", []float64{1, 1, 1, 2, 2, 2}),
		frame.NewFloat("c", []float64{0, 1, 2, 3, 4, 5}),
	)
	_, err = d.Fit(bad, nil)
	require.Error(t, err)

	after, err := d.BinnerDict()
	require.NoError(t, err)
	assert.Equal(t, before, after)
	vars, _ := d.Variables()
	assert.Equal(t, []string{"var"}, vars)
	names, _ := d.FeatureNamesIn()
	assert.Equal(t, []string{"var"}, names)

	// 以前の学習結果で変換できる
	_, err = d.Transform(dfRange(t))
	assert.NoError(t, err)
}

func TestJenksDiscretiser_FailedFirstFitLeavesUnfitted(t *testing.T) {
	d, err := NewJenksDiscretiser(WithBins(3))
	require.NoError(t, err)

	_, err = d.Fit(frame.MustNew(frame.NewFloat("b", []float64{1, 1, 2})), nil)
	require.Error(t, err)
	assert.False(t, d.IsFitted())
}

func TestJenksDiscretiser_RefitDiscardsPriorBreaks(t *testing.T) {
	d, err := NewJenksDiscretiser(WithBins(2))
	require.NoError(t, err)
	_, err = d.Fit(dfRange(t), nil)
	require.NoError(t, err)

	_, err = d.Fit(dfVartypes(t), nil)
	require.NoError(t, err)

	binnerDict, err := d.BinnerDict()
	require.NoError(t, err)
	assert.NotContains(t, binnerDict, "var")
	assert.Contains(t, binnerDict, "Age")
	n, _ := d.NFeaturesIn()
	assert.Equal(t, 5, n)
}

func TestJenksDiscretiser_SchemaMismatch(t *testing.T) {
	d, err := NewJenksDiscretiser(WithBins(3))
	require.NoError(t, err)
	X := dfVartypes(t)
	_, err = d.Fit(X, nil)
	require.NoError(t, err)

	fewer, err := X.Select("Name", "Age", "Marks")
	require.NoError(t, err)
	renamed := frame.MustNew(
		X.Col(0), X.Col(1), X.Col(2).Rename("age"), X.Col(3), X.Col(4),
	)
	stringAge := frame.MustNew(
		X.Col(0), X.Col(1), frame.NewString("Age", []string{"a", "b", "c", "d"}), X.Col(3), X.Col(4),
	)

	for name, input := range map[string]*frame.Frame{
		"fewer columns":        fewer,
		"renamed column":       renamed,
		"variable not numeric": stringAge,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := d.Transform(input)
			var sme *scierrors.SchemaMismatchError
			assert.ErrorAs(t, err, &sme)
		})
	}
}

func TestJenksDiscretiser_TransformReordersToFitOrder(t *testing.T) {
	d, err := NewJenksDiscretiser(WithBins(3))
	require.NoError(t, err)
	X := dfVartypes(t)
	_, err = d.Fit(X, nil)
	require.NoError(t, err)

	shuffled := frame.MustNew(X.Col(4), X.Col(3), X.Col(2), X.Col(1), X.Col(0))
	fromShuffled, err := d.Transform(shuffled)
	require.NoError(t, err)
	fromOrdered, err := d.Transform(X)
	require.NoError(t, err)

	assert.Equal(t, X.Names(), fromShuffled.Names())
	if diff := cmp.Diff(frameValues(fromOrdered), frameValues(fromShuffled)); diff != "" {
		t.Errorf("column order changed the result (-ordered +shuffled):\n%s", diff)
	}
}

func TestJenksDiscretiser_ReturnBoundaries(t *testing.T) {
	d, err := NewJenksDiscretiser(WithBins(4), WithReturnBoundaries(true))
	require.NoError(t, err)

	Xt, err := d.FitTransform(dfRange(t), nil)
	require.NoError(t, err)

	col, _ := Xt.Column("var")
	assert.Equal(t, frame.String, col.Kind())
	labels, err := col.Strings()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"(-inf, 2.0]", "(-inf, 2.0]", "(-inf, 2.0]",
		"(2.0, 5.0]", "(2.0, 5.0]", "(2.0, 5.0]",
		"(5.0, 8.0]", "(5.0, 8.0]", "(5.0, 8.0]",
		"(8.0, inf]", "(8.0, inf]", "(8.0, inf]",
	}, labels)
}

func TestJenksDiscretiser_ReturnBoundariesPrecision(t *testing.T) {
	X := frame.MustNew(frame.NewFloat("x", []float64{0.11111, 0.12222, 5.55555, 5.56666, 9.87654, 9.99999}))
	d, err := NewJenksDiscretiser(WithBins(3), WithReturnBoundaries(true), WithPrecision(2))
	require.NoError(t, err)

	Xt, err := d.FitTransform(X, nil)
	require.NoError(t, err)
	col, _ := Xt.Column("x")
	labels, err := col.Strings()
	require.NoError(t, err)
	assert.Equal(t, "(-inf, 0.12]", labels[0])
	assert.Equal(t, "(0.12, 5.57]", labels[2])
	assert.Equal(t, "(5.57, inf]", labels[5])
}

func TestJenksDiscretiser_OutOfRangeValuesAreClampedWithWarning(t *testing.T) {
	warnings := captureWarnings(t)

	d, err := NewJenksDiscretiser(WithBins(4))
	require.NoError(t, err)
	_, err = d.Fit(dfRange(t), nil)
	require.NoError(t, err)
	assert.Empty(t, *warnings)

	X := frame.MustNew(frame.NewInt("var", []int64{-5, 0, 11, 20, 30}))
	Xt, err := d.Transform(X)
	require.NoError(t, err)

	col, _ := Xt.Column("var")
	codes, err := col.Int64s()
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 0, 3, 3, 3}, codes)

	require.Len(t, *warnings, 1)
	var w *scierrors.BinRangeWarning
	require.ErrorAs(t, (*warnings)[0], &w)
	assert.Equal(t, "var", w.Variable)
	assert.Equal(t, 1, w.Below)
	assert.Equal(t, 2, w.Above)
}

func TestJenksDiscretiser_SingleBin(t *testing.T) {
	d, err := NewJenksDiscretiser(WithBins(1))
	require.NoError(t, err)

	Xt, err := d.FitTransform(dfRange(t), nil)
	require.NoError(t, err)

	binnerDict, err := d.BinnerDict()
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 11}, binnerDict["var"])
	col, _ := Xt.Column("var")
	codes, _ := col.Int64s()
	assert.Equal(t, make([]int64, 12), codes)
}

func TestJenksDiscretiser_BinnerDictIsCopy(t *testing.T) {
	d, err := NewJenksDiscretiser(WithBins(4))
	require.NoError(t, err)
	_, err = d.Fit(dfRange(t), nil)
	require.NoError(t, err)

	binnerDict, _ := d.BinnerDict()
	binnerDict["var"][1] = 100
	delete(binnerDict, "var")

	again, _ := d.BinnerDict()
	assert.Equal(t, []float64{0, 2, 5, 8, 11}, again["var"])
}

func TestJenksDiscretiser_BreaksInvariants(t *testing.T) {
	X := randomFrame(t, 200, 4, 7)
	d, err := NewJenksDiscretiser(WithBins(6))
	require.NoError(t, err)
	_, err = d.Fit(X, nil)
	require.NoError(t, err)

	binnerDict, err := d.BinnerDict()
	require.NoError(t, err)
	for i, name := range X.Names() {
		values, err := X.Col(i).Float64s()
		require.NoError(t, err)
		breaks := binnerDict[name]
		require.Len(t, breaks, 7, name)
		for i := 1; i < len(breaks); i++ {
			assert.LessOrEqual(t, breaks[i-1], breaks[i], name)
		}
		lo, hi := values[0], values[0]
		for _, v := range values {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		assert.Equal(t, lo, breaks[0], name)
		assert.Equal(t, hi, breaks[6], name)
	}
}

func TestJenksDiscretiser_ParallelFitMatchesSequential(t *testing.T) {
	X := randomFrame(t, 150, 8, 42)

	fit := func(nJobs int) map[string][]float64 {
		d, err := NewJenksDiscretiser(WithBins(5), WithNJobs(nJobs))
		require.NoError(t, err)
		_, err = d.Fit(X, nil)
		require.NoError(t, err)
		binnerDict, err := d.BinnerDict()
		require.NoError(t, err)
		return binnerDict
	}

	sequential := fit(1)
	for _, nJobs := range []int{-1, 3} {
		if diff := cmp.Diff(sequential, fit(nJobs)); diff != "" {
			t.Errorf("n_jobs=%d differs from sequential fit (-seq +par):\n%s", nJobs, diff)
		}
	}
}

func TestJenksDiscretiser_ConcurrentTransform(t *testing.T) {
	d, err := NewJenksDiscretiser(WithBins(3), WithNJobs(2))
	require.NoError(t, err)
	X := randomFrame(t, 100, 3, 1)
	_, err = d.Fit(X, nil)
	require.NoError(t, err)

	want, err := d.Transform(X)
	require.NoError(t, err)

	const workers = 8
	results := make([]*frame.Frame, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = d.Transform(X)
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		if diff := cmp.Diff(frameValues(want), frameValues(results[i])); diff != "" {
			t.Errorf("goroutine %d (-want +got):\n%s", i, diff)
		}
	}
}

func TestJenksDiscretiser_ConcurrentFitAndTransform(t *testing.T) {
	d, err := NewJenksDiscretiser(WithBins(3))
	require.NoError(t, err)
	X := randomFrame(t, 60, 2, 3)
	_, err = d.Fit(X, nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := d.Fit(X, nil)
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := d.Transform(X)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func TestJenksDiscretiser_FitContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d, err := NewJenksDiscretiser(WithBins(3), WithNJobs(2))
	require.NoError(t, err)
	_, err = d.FitContext(ctx, randomFrame(t, 30, 3, 9), nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, d.IsFitted())
}

func TestJenksDiscretiser_GetFeatureNamesOut(t *testing.T) {
	d, err := NewJenksDiscretiser(WithBins(3))
	require.NoError(t, err)
	X := dfVartypes(t)
	_, err = d.Fit(X, nil)
	require.NoError(t, err)

	out, err := d.GetFeatureNamesOut()
	require.NoError(t, err)
	assert.Equal(t, X.Names(), out)
}

func TestJenksDiscretiser_String(t *testing.T) {
	d, err := NewJenksDiscretiser()
	require.NoError(t, err)
	assert.Equal(t, "JenksDiscretiser()", d.String())

	d, err = NewJenksDiscretiser(WithBins(4), WithVariables("a", "b"), WithReturnBoundaries(true), WithPrecision(2))
	require.NoError(t, err)
	assert.Equal(t, "JenksDiscretiser(bins=4, variables=['a', 'b'], return_boundaries=True, precision=2)", d.String())
}

func TestJenksDiscretiser_Clone(t *testing.T) {
	d, err := NewJenksDiscretiser(WithBins(4), WithVariables("var"))
	require.NoError(t, err)
	_, err = d.Fit(dfRange(t), nil)
	require.NoError(t, err)

	clone := d.Clone()
	assert.False(t, clone.IsFitted())
	assert.Equal(t, d.GetParams(), clone.GetParams())
}

func TestJenksDiscretiser_ImplementsInterfaces(t *testing.T) {
	d, err := NewJenksDiscretiser()
	require.NoError(t, err)

	var _ model.FrameTransformer = d
	var _ model.ParamsCompatible = d
}

func TestJenksDiscretiser_ExportEdges(t *testing.T) {
	d, err := NewJenksDiscretiser(WithBins(4))
	require.NoError(t, err)
	_, err = d.Fit(dfRange(t), nil)
	require.NoError(t, err)

	edges, err := d.ExportEdges()
	require.NoError(t, err)
	require.NoError(t, edges.Validate())
	assert.Equal(t, "JenksDiscretiser", edges.ModelType)
	assert.Equal(t, []float64{0, 2, 5, 8, 11}, edges.Edges["var"])

	data, err := edges.ToJSON()
	require.NoError(t, err)
	var decoded model.BinEdges
	require.NoError(t, decoded.FromJSON(data))
	assert.Equal(t, edges.Edges, decoded.Edges)
}

func TestJenksDiscretiser_Logging(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelDebug)
	d, err := NewJenksDiscretiser(WithBins(4), WithLogger(logger))
	require.NoError(t, err)

	_, err = d.Fit(dfRange(t), nil)
	require.NoError(t, err)

	assert.True(t, logger.ContainsMessage("Fit started"))
	assert.True(t, logger.ContainsMessage("Fit completed"))
	assert.True(t, logger.ContainsField(log.OperationKey, log.OperationFit))
	assert.True(t, logger.ContainsField(log.BinsKey, float64(4)))
	assert.True(t, logger.ContainsMessage("Breaks fitted"))
	assert.True(t, logger.ContainsField(log.VariableKey, "var"))

	logger.Clear()
	_, err = d.Transform(dfRange(t))
	require.NoError(t, err)
	assert.True(t, logger.ContainsMessage("Transform completed"))
	assert.True(t, logger.ContainsField(log.OperationKey, log.OperationTransform))
	assert.True(t, logger.ContainsField(log.OutputKey, "codes"))

	logger.Clear()
	_, err = d.Transform(frame.MustNew(frame.NewFloat("other", []float64{1})))
	require.Error(t, err)
	assert.True(t, logger.ContainsMessage("JenksDiscretiser.Transform failed"))
	assert.True(t, logger.ContainsField(log.ErrorCodeKey, log.ErrorSchemaMismatch))
	assert.True(t, logger.ContainsField(log.ErrorTypeKey, "SchemaMismatchError"))
}

func TestJenksDiscretiser_LogsNotFitted(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelDebug)
	d, err := NewJenksDiscretiser(WithLogger(logger))
	require.NoError(t, err)

	_, err = d.Transform(dfRange(t))
	var nfe *scierrors.NotFittedError
	require.ErrorAs(t, err, &nfe)
	assert.True(t, logger.ContainsField(log.ErrorCodeKey, log.ErrorNotFitted))
	assert.True(t, logger.ContainsField(log.ErrorTypeKey, "NotFittedError"))
}

func TestOutputMode(t *testing.T) {
	tests := []struct {
		boundaries, object bool
		want               string
	}{
		{false, false, "codes"},
		{true, false, "boundaries"},
		{false, true, "codes+object"},
		{true, true, "boundaries+object"},
	}
	for _, tt := range tests {
		p := defaultParams()
		p.ReturnBoundaries, p.ReturnObject = tt.boundaries, tt.object
		assert.Equal(t, tt.want, outputMode(p))
	}
}
