// Package model provides state management and shared interfaces for transformers.
package model

import (
	"sync"

	"github.com/YuminosukeSato/scifeat/core/frame"
	"github.com/YuminosukeSato/scifeat/pkg/errors"
)

// StateManager manages the fitted state of a transformer in a thread-safe
// manner, together with the input schema captured at fit time.
// Transformers hold one by composition; it replaces a shared base type.
type StateManager struct {
	Fitted bool // Public for gob encoding
	mu     sync.RWMutex

	// Optional metadata - Public for gob encoding
	NFeatures    int
	NSamples     int
	FeatureNames []string
	FeatureKinds []frame.Kind
}

// NewStateManager creates a new StateManager instance.
func NewStateManager() *StateManager {
	return &StateManager{
		Fitted: false,
	}
}

// IsFitted returns whether the transformer has been fitted.
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Fitted
}

// RecordSchema stores the column names, kinds and shape of X and marks the
// state as fitted. Call it only once every other part of fitting succeeded.
func (s *StateManager) RecordSchema(X *frame.Frame) {
	names := X.Names()
	kinds := make([]frame.Kind, len(names))
	for i := range names {
		kinds[i] = X.Col(i).Kind()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.FeatureNames = names
	s.FeatureKinds = kinds
	s.NFeatures = len(names)
	s.NSamples = X.NRows()
	s.Fitted = true
}

// ValidateSchema checks that X is structurally compatible with the schema seen
// during fit: same number of columns and every fit-time column present. It
// returns X reordered to the fit-time column order.
func (s *StateManager) ValidateSchema(op string, X *frame.Frame) (*frame.Frame, error) {
	s.mu.RLock()
	names := s.FeatureNames
	nFeatures := s.NFeatures
	s.mu.RUnlock()

	if X == nil || X.NRows() == 0 {
		return nil, errors.Wrapf(errors.ErrEmptyData, "%s", op)
	}
	if X.NCols() != nFeatures {
		return nil, errors.NewSchemaMismatchError(op, nFeatures, X.NCols(), nil)
	}
	var missing []string
	for _, name := range names {
		if !X.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, errors.NewSchemaMismatchError(op, nFeatures, X.NCols(), missing)
	}
	return X.Select(names...)
}

// RequireFitted returns a NotFittedError naming the transformer and method if
// the transformer has not been fitted.
func (s *StateManager) RequireFitted(modelName, method string) error {
	if !s.IsFitted() {
		return errors.NewNotFittedError(modelName, method)
	}
	return nil
}

// FeatureNamesIn returns a copy of the column names seen during fit.
func (s *StateManager) FeatureNamesIn() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.FeatureNames...)
}

// GetDimensions returns the number of features and samples seen during fitting.
func (s *StateManager) GetDimensions() (nFeatures, nSamples int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.NFeatures, s.NSamples
}

// ModelState represents the complete state of a transformer.
// This can be used for serialization and debugging.
type ModelState struct {
	Fitted       bool         `json:"fitted"`
	NFeatures    int          `json:"n_features_in,omitempty"`
	NSamples     int          `json:"n_samples,omitempty"`
	FeatureNames []string     `json:"feature_names_in,omitempty"`
	FeatureKinds []frame.Kind `json:"feature_kinds,omitempty"`
}

// GetState returns the current state as a ModelState struct.
func (s *StateManager) GetState() ModelState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return ModelState{
		Fitted:       s.Fitted,
		NFeatures:    s.NFeatures,
		NSamples:     s.NSamples,
		FeatureNames: append([]string(nil), s.FeatureNames...),
		FeatureKinds: append([]frame.Kind(nil), s.FeatureKinds...),
	}
}

// SetState sets the state from a ModelState struct.
func (s *StateManager) SetState(state ModelState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Fitted = state.Fitted
	s.NFeatures = state.NFeatures
	s.NSamples = state.NSamples
	s.FeatureNames = append([]string(nil), state.FeatureNames...)
	s.FeatureKinds = append([]frame.Kind(nil), state.FeatureKinds...)
}
