package preprocessing

import (
	"math"
	"testing"

	scierrors "github.com/YuminosukeSato/scifeat/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireValidationError(t *testing.T, err error, param string) {
	t.Helper()
	var ve *scierrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, param, ve.ParamName)
}

func TestNewJenksDiscretiser_Defaults(t *testing.T) {
	d, err := NewJenksDiscretiser()
	require.NoError(t, err)

	params := d.GetParams()
	assert.Equal(t, 10, params["bins"])
	assert.Nil(t, params["variables"])
	assert.Equal(t, false, params["return_object"])
	assert.Equal(t, false, params["return_boundaries"])
	assert.Equal(t, 3, params["precision"])
	assert.Equal(t, 1, params["n_jobs"])
	assert.False(t, d.IsFitted())
}

func TestJenksDiscretiser_ReturnObjectNotBool(t *testing.T) {
	for _, param := range []interface{}{0.1, "hola", []bool{true, false}, map[string]bool{"a": true}, 2} {
		_, err := NewJenksDiscretiserFromParams(map[string]interface{}{"return_object": param})
		requireValidationError(t, err, "return_object")
	}
}

func TestJenksDiscretiser_ReturnBoundariesNotBool(t *testing.T) {
	for _, param := range []interface{}{0.1, "hola", []bool{true, false}, map[string]bool{"a": true}, 2} {
		_, err := NewJenksDiscretiserFromParams(map[string]interface{}{"return_boundaries": param})
		requireValidationError(t, err, "return_boundaries")
	}
}

func TestJenksDiscretiser_PrecisionNotPositiveInt(t *testing.T) {
	for _, param := range []interface{}{0.1, "hola", []bool{true, false}, map[string]bool{"a": true}, 0, -1} {
		_, err := NewJenksDiscretiserFromParams(map[string]interface{}{"precision": param})
		requireValidationError(t, err, "precision")
	}
}

func TestJenksDiscretiser_BinsNotPositiveInt(t *testing.T) {
	for _, param := range []interface{}{0.1, "hola", []bool{true, false}, map[string]bool{"a": true}, true, 0, -3} {
		_, err := NewJenksDiscretiserFromParams(map[string]interface{}{"bins": param})
		requireValidationError(t, err, "bins")
	}
}

func TestJenksDiscretiser_UnsignedIntParams(t *testing.T) {
	for _, param := range []interface{}{uint8(4), uint16(4), uint32(4), uint(4), uint64(4), uintptr(4), int64(4)} {
		d, err := NewJenksDiscretiserFromParams(map[string]interface{}{"bins": param})
		require.NoError(t, err, "%T", param)
		assert.Equal(t, 4, d.GetParams()["bins"])
	}

	_, err := NewJenksDiscretiserFromParams(map[string]interface{}{"bins": uint64(math.MaxUint64)})
	requireValidationError(t, err, "bins")
	_, err = NewJenksDiscretiserFromParams(map[string]interface{}{"precision": uint(math.MaxUint)})
	requireValidationError(t, err, "precision")
}

func TestJenksDiscretiser_InvalidOptions(t *testing.T) {
	tests := []struct {
		name  string
		opt   Option
		param string
	}{
		{"zero bins", WithBins(0), "bins"},
		{"negative bins", WithBins(-1), "bins"},
		{"zero precision", WithPrecision(0), "precision"},
		{"zero jobs", WithNJobs(0), "n_jobs"},
		{"empty variables", WithVariables(), "variables"},
		{"duplicated variables", WithVariables("a", "b", "a"), "variables"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewJenksDiscretiser(tt.opt)
			assert.Nil(t, d)
			requireValidationError(t, err, tt.param)
		})
	}
}

func TestJenksDiscretiser_CorrectParamAssignment(t *testing.T) {
	tests := []struct {
		flag  bool
		value int
	}{
		{false, 1},
		{true, 10},
	}
	for _, tt := range tests {
		d, err := NewJenksDiscretiserFromParams(map[string]interface{}{
			"return_object":     tt.flag,
			"return_boundaries": tt.flag,
			"precision":         tt.value,
			"bins":              tt.value,
		})
		require.NoError(t, err)

		params := d.GetParams()
		assert.Equal(t, tt.flag, params["return_object"])
		assert.Equal(t, tt.flag, params["return_boundaries"])
		assert.Equal(t, tt.value, params["precision"])
		assert.Equal(t, tt.value, params["bins"])
	}
}

func TestJenksDiscretiser_OptionsMatchParams(t *testing.T) {
	d, err := NewJenksDiscretiser(
		WithBins(5),
		WithVariables("Age", "Marks"),
		WithReturnObject(true),
		WithReturnBoundaries(true),
		WithPrecision(2),
		WithNJobs(-1),
	)
	require.NoError(t, err)

	params := d.GetParams()
	assert.Equal(t, 5, params["bins"])
	assert.Equal(t, []string{"Age", "Marks"}, params["variables"])
	assert.Equal(t, true, params["return_object"])
	assert.Equal(t, true, params["return_boundaries"])
	assert.Equal(t, 2, params["precision"])
	assert.Equal(t, -1, params["n_jobs"])
}

func TestJenksDiscretiser_SetParamsIsAllOrNothing(t *testing.T) {
	d, err := NewJenksDiscretiser(WithBins(4))
	require.NoError(t, err)

	err = d.SetParams(map[string]interface{}{
		"bins":      6,
		"precision": "two",
	})
	requireValidationError(t, err, "precision")
	assert.Equal(t, 4, d.GetParams()["bins"])

	require.NoError(t, d.SetParams(map[string]interface{}{
		"bins":      int64(6),
		"variables": []interface{}{"a", "b"},
	}))
	assert.Equal(t, 6, d.GetParams()["bins"])
	assert.Equal(t, []string{"a", "b"}, d.GetParams()["variables"])
}

func TestJenksDiscretiser_SetParamsUnknownKey(t *testing.T) {
	d, err := NewJenksDiscretiser()
	require.NoError(t, err)
	requireValidationError(t, d.SetParams(map[string]interface{}{"n_bins": 3}), "n_bins")
}

func TestJenksDiscretiser_GetParamsRoundTrip(t *testing.T) {
	d, err := NewJenksDiscretiser(WithBins(7), WithVariables("x"), WithPrecision(5))
	require.NoError(t, err)

	clone, err := NewJenksDiscretiserFromParams(d.GetParams())
	require.NoError(t, err)
	assert.Equal(t, d.GetParams(), clone.GetParams())
	assert.Equal(t, d.String(), clone.String())
}
