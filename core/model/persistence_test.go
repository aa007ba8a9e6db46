package model

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadModel_StateManager(t *testing.T) {
	sm := NewStateManager()
	sm.RecordSchema(fitFrame())

	path := filepath.Join(t.TempDir(), "state.gob")
	require.NoError(t, SaveModel(sm, path))

	loaded := NewStateManager()
	require.NoError(t, LoadModel(loaded, path))
	assert.True(t, loaded.IsFitted())
	assert.Equal(t, sm.FeatureNamesIn(), loaded.FeatureNamesIn())
}

func TestSaveLoadModel_Writer(t *testing.T) {
	be := sampleEdges()
	var buf bytes.Buffer
	require.NoError(t, SaveModelToWriter(be, &buf))

	var got BinEdges
	require.NoError(t, LoadModelFromReader(&got, &buf))
	assert.Equal(t, be.Edges, got.Edges)
}

func TestLoadModel_MissingFile(t *testing.T) {
	err := LoadModel(NewStateManager(), filepath.Join(t.TempDir(), "nope.gob"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open")
}
