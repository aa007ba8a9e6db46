package model

// ParameterGetter is the interface for transformers that expose their parameters.
type ParameterGetter interface {
	// GetParams returns the transformer's hyperparameters keyed by their
	// snake_case names.
	GetParams() map[string]interface{}
}

// ParameterSetter is the interface for transformers that allow parameter modification.
type ParameterSetter interface {
	// SetParams validates and sets the transformer's hyperparameters.
	// On error no parameter is changed.
	SetParams(params map[string]interface{}) error
}

// ParamsCompatible combines parameter access, mirroring the
// get_params/set_params protocol of scikit-learn.
type ParamsCompatible interface {
	ParameterGetter
	ParameterSetter
}
