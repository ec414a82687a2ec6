// Standard attribute keys for logging statistical-learning operations.
//
// Using these keys keeps log output consistent across packages so that fit,
// cross-validation, and sweep runs can be analyzed and filtered uniformly.
// Keys follow a hierarchical naming convention (e.g., "model.name",
// "data.samples").

package log

// Model and Operation Context
// These attributes identify the model type, instance, and operation being performed.
const (
	// ModelNameKey identifies the type of model.
	// Examples: "LinearRegression", "LogisticRegression", "PolynomialFeatures"
	ModelNameKey = "model.name"

	// EstimatorIDKey provides a unique identifier for a specific model instance.
	EstimatorIDKey = "estimator.id"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "transform", "fit_transform", "score"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "linear", "preprocessing", "model_selection"
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of the model lifecycle.
	// Examples: "training", "validation", "inference"
	PhaseKey = "ml.phase"
)

// Data Shape and Characteristics
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) in the dataset.
	FeaturesKey = "data.features"

	// TargetsKey indicates the number of target variables for supervised learning.
	TargetsKey = "data.targets"

	// NoiseKey records the noise standard deviation of a synthetic dataset.
	NoiseKey = "data.noise"
)

// Cross-Validation and Sweep Context
const (
	// FoldsKey indicates the number of cross-validation folds.
	FoldsKey = "cv.folds"

	// FoldKey indicates the index of one cross-validation fold.
	FoldKey = "cv.fold"

	// DegreeKey indicates the polynomial degree being evaluated.
	DegreeKey = "sweep.degree"

	// MaxDegreeKey indicates the largest degree of a sweep.
	MaxDegreeKey = "sweep.max_degree"
)

// Performance Metrics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// AccuracyKey records classification accuracy for evaluation operations.
	AccuracyKey = "metrics.accuracy"

	// MSEKey records mean squared error for regression evaluation.
	MSEKey = "metrics.mse"

	// R2ScoreKey records the R² coefficient of determination for regression.
	R2ScoreKey = "metrics.r2_score"

	// LossKey records loss value during training or evaluation.
	LossKey = "metrics.loss"

	// IterationKey records the current iteration during iterative optimization.
	IterationKey = "training.iteration"
)

// Error and Warning Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	// Examples: "DIMENSION_MISMATCH", "NOT_FITTED", "SINGULAR_MATRIX"
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	// Examples: "ValidationError", "DegenerateFeatureError"
	ErrorTypeKey = "error.type"
)

// Configuration
const (
	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"
)

// Standard attribute value constants for common operations.
const (
	OperationFit          = "fit"
	OperationPredict      = "predict"
	OperationTransform    = "transform"
	OperationFitTransform = "fit_transform"
	OperationScore        = "score"
	OperationSplit        = "split"
	OperationSweep        = "sweep"

	PhaseTraining   = "training"
	PhaseValidation = "validation"
	PhaseInference  = "inference"

	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorInsufficientData  = "INSUFFICIENT_DATA"
	ErrorConvergence       = "CONVERGENCE_FAILURE"
	ErrorSingularMatrix    = "SINGULAR_MATRIX"
)
