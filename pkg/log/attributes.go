// Package log defines standard attribute keys for feature-engineering operations.
//
// Using these keys keeps structured logs consistent across transformers, so that
// fit and transform events can be filtered and aggregated uniformly.
//
// The attributes are organized into categories:
//   - Model and Operation Context
//   - Data Shape
//   - Discretisation
//   - Performance
//   - Error Context
//
// Keys follow a hierarchical naming convention (e.g. "model.name",
// "data.samples").

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of transformer.
	// Examples: "JenksDiscretiser"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "transform", "fit_transform"
	OperationKey = "ml.operation"

	// ComponentKey identifies which component or package is logging.
	// Examples: "preprocessing.jenks", "warnings"
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of the transformer lifecycle.
	PhaseKey = "ml.phase"
)

// Data Shape
const (
	// SamplesKey indicates the number of rows in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of columns in the dataset.
	FeaturesKey = "data.features"

	// VariablesKey lists the columns a transformer operates on.
	VariablesKey = "data.variables"

	// VariableKey names a single column.
	VariableKey = "data.variable"
)

// Discretisation
const (
	// BinsKey records the requested number of intervals.
	BinsKey = "discretiser.bins"

	// BreaksKey records the fitted breakpoints of a column.
	BreaksKey = "discretiser.breaks"

	// PrecisionKey records the rounding applied to interval labels.
	PrecisionKey = "discretiser.precision"

	// OutputKey records the output mode: "codes", "boundaries" or "object".
	OutputKey = "discretiser.output"

	// JobsKey records the number of workers used to fit columns.
	JobsKey = "discretiser.n_jobs"
)

// Performance
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)

// Error Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	ErrorTypeKey = "error.type"

	// StacktraceKey contains stack trace information for debugging.
	// Populated automatically when an error is logged at error level.
	StacktraceKey = "error.stacktrace"
)

// Standard attribute values.
const (
	OperationFit          = "fit"
	OperationTransform    = "transform"
	OperationFitTransform = "fit_transform"

	PhasePreprocessing = "preprocessing"

	ErrorNotFitted      = "NOT_FITTED"
	ErrorSchemaMismatch = "SCHEMA_MISMATCH"
	ErrorDataQuality    = "DATA_QUALITY"
	ErrorInvalidParam   = "INVALID_PARAM"
)
