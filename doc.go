// Package scifeat provides feature discretisation for tabular data in Go,
// with a scikit-learn like API.
//
// The main transformer is preprocessing.JenksDiscretiser, which divides
// numerical columns into intervals using the Jenks natural breaks algorithm:
// within each column the breaks minimise the variance inside each interval.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/scifeat/core/frame"
//	    "github.com/YuminosukeSato/scifeat/preprocessing"
//	)
//
//	func main() {
//	    X := frame.MustNew(
//	        frame.NewInt("var", []int64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}),
//	    )
//
//	    disc, err := preprocessing.NewJenksDiscretiser(preprocessing.WithBins(4))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    Xt, err := disc.FitTransform(X, nil)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    breaks, _ := disc.BinnerDict()
//	    fmt.Println(breaks["var"]) // [0 2 5 8 11]
//	    fmt.Println(Xt)
//	}
//
// # Packages
//
//   - preprocessing: JenksDiscretiser, its matrix adapter and break plots
//   - core/jenks: Fisher-Jenks natural breaks classifier
//   - core/frame: immutable tables of named, typed columns
//   - core/model: fitted-schema guard, shared interfaces, persistence
//   - core/parallel: worker pools used by fit and transform
//   - config: YAML and environment configuration (koanf)
//   - pkg/errors: structured errors and warnings (cockroachdb/errors)
//   - pkg/log: structured logging (zerolog)
//
// # Output modes
//
// By default Transform replaces each value with its interval index
// 0..bins-1. WithReturnBoundaries(true) returns labels such as "(2.0, 5.0]"
// and WithReturnObject(true) returns Object columns.
//
// # Concurrency
//
// A fitted JenksDiscretiser can be used from several goroutines. Columns are
// fitted in parallel with WithNJobs(-1).
package scifeat
