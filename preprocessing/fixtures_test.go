package preprocessing

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/YuminosukeSato/scifeat/core/frame"
	"github.com/stretchr/testify/require"
)

// dfVartypes は数値列、文字列列、日時列を含む小さなデータ
func dfVartypes(t *testing.T) *frame.Frame {
	t.Helper()
	start := time.Date(2020, 2, 24, 0, 0, 0, 0, time.UTC)
	dob := make([]time.Time, 4)
	for i := range dob {
		dob[i] = start.Add(time.Duration(i) * time.Minute)
	}
	X, err := frame.New(
		frame.NewString("Name", []string{"tom", "nick", "krish", "jack"}),
		frame.NewString("City", []string{"London", "Manchester", "Liverpool", "Bristol"}),
		frame.NewInt("Age", []int64{20, 21, 19, 18}),
		frame.NewFloat("Marks", []float64{0.9, 0.8, 0.7, 0.6}),
		frame.NewTime("dob", dob),
	)
	require.NoError(t, err)
	return X
}

// dfNA は dfVartypes と同じ列に欠損値を含むデータ
func dfNA(t *testing.T) *frame.Frame {
	t.Helper()
	nan := math.NaN()
	start := time.Date(2020, 2, 24, 0, 0, 0, 0, time.UTC)
	dob := make([]time.Time, 8)
	for i := range dob {
		dob[i] = start.Add(time.Duration(i) * time.Minute)
	}
	name, err := frame.NewString("Name", []string{"tom", "nick", "krish", "", "peter", "", "fred", "sam"}).
		WithNulls([]bool{false, false, false, true, false, true, false, false})
	require.NoError(t, err)
	city, err := frame.NewString("City", []string{"London", "Manchester", "", "", "London", "Liverpool", "Bristol", "Manchester"}).
		WithNulls([]bool{false, false, true, true, false, false, false, false})
	require.NoError(t, err)

	X, err := frame.New(
		name,
		city,
		frame.NewFloat("Age", []float64{20, 21, 19, nan, 23, 40, 41, 37}),
		frame.NewFloat("Marks", []float64{0.9, 0.8, 0.7, nan, 0.3, nan, 0.8, 0.6}),
		frame.NewTime("dob", dob),
	)
	require.NoError(t, err)
	return X
}

// dfNormalDist は平均3、標準偏差1の正規分布に従う100個の値を持つ
func dfNormalDist(t *testing.T) *frame.Frame {
	t.Helper()
	rng := rand.New(rand.NewPCG(0, 0))
	values := make([]float64, 100)
	for i := range values {
		values[i] = 3 + rng.NormFloat64()
	}
	X, err := frame.New(frame.NewFloat("var", values))
	require.NoError(t, err)
	return X
}

// dfRange は 0..11 の整数を持つ列 var のデータ
func dfRange(t *testing.T) *frame.Frame {
	t.Helper()
	X, err := frame.New(frame.NewInt("var", []int64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}))
	require.NoError(t, err)
	return X
}

// randomFrame は nCols 列の一様乱数データを作成する
func randomFrame(t testing.TB, rows, nCols int, seed uint64) *frame.Frame {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, seed))
	cols := make([]*frame.Column, nCols)
	for j := range cols {
		values := make([]float64, rows)
		for i := range values {
			values[i] = rng.Float64() * float64(10*(j+1))
		}
		cols[j] = frame.NewFloat(frame.DefaultNames(nCols)[j], values)
	}
	X, err := frame.New(cols...)
	require.NoError(t, err)
	return X
}

// frameValues は Frame を列名ごとの値スライスに変換する（cmp での比較用）
func frameValues(f *frame.Frame) map[string][]any {
	out := make(map[string][]any, f.NCols())
	for i := 0; i < f.NCols(); i++ {
		out[f.Col(i).Name()] = f.Col(i).Values()
	}
	return out
}
