// Package mleval provides a classifier-agnostic evaluation framework for
// supervised learning over tabular data.
//
// A dataset tolerates a mix of numeric and categorical (nominal) cells per
// record. Learning algorithms plug in through a narrow Train/Classify contract
// and are scored uniformly, whether the target attribute is numeric or
// categorical.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/mleval/classifiers/knn"
//	    "github.com/YuminosukeSato/mleval/evaluation"
//	)
//
//	func main() {
//	    e, err := evaluation.NewFromFile(knn.New(), "iris.arff",
//	        evaluation.WithScaling(true),
//	    )
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    cv, err := e.EvaluateCV()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(cv) // Evaluation (10-fold CV): 95.33% (+/- 4.50)
//	}
//
// # Packages
//
//   - core/data: Value, Distinct, Record and Dataset (scaling, iteration, gonum export)
//   - core/model: Classifier contract, Result and BaseEstimator
//   - core/parallel: Parallel processing utilities
//   - reader: ARFF and CSV readers
//   - crossval: Deterministic k-fold partitioning
//   - evaluation: Whole-set, held-out and cross-validation evaluation
//   - metrics: Accuracy, confusion matrix and numeric error summaries
//   - classifiers/baseline: ZeroR baseline
//   - classifiers/knn: k-nearest-neighbour adapter over golearn
//   - pkg/errors, pkg/log, pkg/config: error types, structured logging, YAML configuration
//
// # Error Handling
//
// Every failure is returned as an error. Size mismatches are DimensionError,
// out-of-range indices are IndexError and malformed input files are
// ParseError, so callers can tell them apart with errors.As.
package mleval
