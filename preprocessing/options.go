package preprocessing

import "github.com/YuminosukeSato/scifeat/pkg/log"

// Option is a function that configures JenksDiscretiser.
// Values are checked by NewJenksDiscretiser once every option has been applied.
type Option func(*JenksDiscretiser)

// WithBins sets the number of intervals each variable is divided into.
func WithBins(bins int) Option {
	return func(d *JenksDiscretiser) {
		d.params.Bins = bins
	}
}

// WithVariables sets the columns to discretise. Without this option every
// numerical column found at fit time is used.
func WithVariables(names ...string) Option {
	return func(d *JenksDiscretiser) {
		d.variablesSpec = names
	}
}

// WithReturnObject makes Transform return Object columns instead of int64 codes.
func WithReturnObject(returnObject bool) Option {
	return func(d *JenksDiscretiser) {
		d.params.ReturnObject = returnObject
	}
}

// WithReturnBoundaries makes Transform return interval labels such as "(2.0, 5.0]".
func WithReturnBoundaries(returnBoundaries bool) Option {
	return func(d *JenksDiscretiser) {
		d.params.ReturnBoundaries = returnBoundaries
	}
}

// WithPrecision sets the number of decimals used for interval labels.
func WithPrecision(precision int) Option {
	return func(d *JenksDiscretiser) {
		d.params.Precision = precision
	}
}

// WithNJobs sets the number of parallel jobs used to fit and transform columns.
// 1 runs sequentially and -1 uses every CPU.
func WithNJobs(n int) Option {
	return func(d *JenksDiscretiser) {
		d.params.NJobs = n
	}
}

// WithLogger replaces the component logger.
func WithLogger(logger log.Logger) Option {
	return func(d *JenksDiscretiser) {
		d.logger = logger
	}
}
