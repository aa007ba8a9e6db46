package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEdges() *BinEdges {
	return &BinEdges{
		ModelType:      "JenksDiscretiser",
		Version:        "1",
		Edges:          map[string][]float64{"x": {0, 2, 5, 8, 11}},
		FeatureNamesIn: []string{"x", "label"},
		Hyperparameters: map[string]interface{}{
			"bins": 4,
		},
		IsFitted: true,
	}
}

func TestBinEdges_JSON(t *testing.T) {
	be := sampleEdges()
	data, err := be.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"binner_dict"`)

	var got BinEdges
	require.NoError(t, got.FromJSON(data))
	require.NoError(t, got.Validate())
	assert.Equal(t, be.Edges, got.Edges)
	assert.Equal(t, be.FeatureNamesIn, got.FeatureNamesIn)
}

func TestBinEdges_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BinEdges)
		errMsg string
	}{
		{"missing type", func(b *BinEdges) { b.ModelType = "" }, "model_type"},
		{"missing version", func(b *BinEdges) { b.Version = "" }, "version"},
		{"unfitted with edges", func(b *BinEdges) { b.IsFitted = false }, "unfitted"},
		{"fitted without edges", func(b *BinEdges) { b.Edges = nil }, "must have edges"},
		{"unknown variable", func(b *BinEdges) { b.FeatureNamesIn = []string{"label"} }, "not in feature_names_in"},
		{"too few edges", func(b *BinEdges) { b.Edges["x"] = []float64{1} }, "at least 2"},
		{"decreasing", func(b *BinEdges) { b.Edges["x"] = []float64{3, 1} }, "non-decreasing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be := sampleEdges()
			tt.mutate(be)
			err := be.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestBinEdges_Clone(t *testing.T) {
	be := sampleEdges()
	clone := be.Clone()
	clone.Edges["x"][0] = -100
	clone.FeatureNamesIn[0] = "y"
	clone.Hyperparameters["bins"] = 9

	assert.Equal(t, 0.0, be.Edges["x"][0])
	assert.Equal(t, "x", be.FeatureNamesIn[0])
	assert.Equal(t, 4, be.Hyperparameters["bins"])
}
