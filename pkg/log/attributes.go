// Package log defines standard attribute keys for evaluation runs.
//
// Keys follow a hierarchical naming convention ("data.samples",
// "metrics.accuracy") so that log lines from the reader, the splitter and the
// evaluator can be filtered together.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the classifier under evaluation.
	// Examples: "ZeroR", "KNN"
	ModelNameKey = "model.name"

	// EstimatorIDKey identifies one evaluation run (a UUID string).
	EstimatorIDKey = "estimator.id"

	// OperationKey specifies the operation being performed.
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is logging.
	// Examples: "reader", "crossval", "evaluation"
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of the evaluation.
	PhaseKey = "ml.phase"

	// ModeKey names the evaluation mode: "whole-set", "held-out" or "cross-validation".
	ModeKey = "eval.mode"
)

// Data Shape and Characteristics
const (
	// SamplesKey indicates the number of records.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of attributes, target included.
	FeaturesKey = "data.features"

	// TargetsKey indicates the number of distinct target values.
	TargetsKey = "data.targets"

	// SourceKey is the path or name a dataset was read from.
	SourceKey = "data.source"

	// AttributeKey names a single attribute.
	AttributeKey = "data.attribute"
)

// Cross-validation
const (
	// FoldKey is the zero-based fold index.
	FoldKey = "cv.fold"

	// FoldsKey is the number of folds.
	FoldsKey = "cv.folds"

	// TrainSizeKey is the number of training records in a fold.
	TrainSizeKey = "cv.train_size"

	// TestSizeKey is the number of test records in a fold.
	TestSizeKey = "cv.test_size"

	// StratifiedKey records whether folds were stratified by target value.
	StratifiedKey = "cv.stratified"
)

// Performance Metrics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// AccuracyKey records accuracy as a percentage in [0, 100].
	AccuracyKey = "metrics.accuracy"

	// StdDevKey records the standard deviation of per-fold accuracy.
	StdDevKey = "metrics.std"

	// CorrectKey records the number of correctly classified records.
	CorrectKey = "metrics.correct"
)

// Error and Warning Context
const (
	// ErrorKey holds the error message.
	ErrorKey = "error"

	// ErrorTypeKey categorizes the type of error encountered.
	ErrorTypeKey = "error.type"

	// StacktraceKey contains stack trace information for debugging.
	StacktraceKey = "error.stacktrace"
)

// Configuration
const (
	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"
)

// Standard attribute values.
const (
	OperationRead     = "read"
	OperationScale    = "scale"
	OperationSplit    = "split"
	OperationTrain    = "train"
	OperationClassify = "classify"
	OperationEvaluate = "evaluate"

	PhaseTraining      = "training"
	PhaseTesting       = "testing"
	PhasePreprocessing = "preprocessing"
)
