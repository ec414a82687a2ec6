package linear

// Option is a function that configures LinearRegression
type Option func(*LinearRegression)

// WithFitIntercept sets whether to learn the intercept. When disabled
// the fitted hyperplane passes through the origin.
func WithFitIntercept(fit bool) Option {
	return func(lr *LinearRegression) {
		lr.fitIntercept = fit
	}
}

// WithConditionTolerance sets the condition number above which the
// design matrix is treated as singular and Fit fails.
func WithConditionTolerance(tol float64) Option {
	return func(lr *LinearRegression) {
		lr.condTolerance = tol
	}
}

// WithConditionWarnThreshold sets the condition number above which Fit
// emits a conditioning warning while still solving.
func WithConditionWarnThreshold(threshold float64) Option {
	return func(lr *LinearRegression) {
		lr.condWarnThreshold = threshold
	}
}

// LogisticOption is a function that configures LogisticRegression
type LogisticOption func(*LogisticRegression)

// WithLearningRate sets the base learning rate for gradient descent.
func WithLearningRate(rate float64) LogisticOption {
	return func(lr *LogisticRegression) {
		lr.learningRate = rate
	}
}

// WithMaxIter sets the maximum number of gradient descent iterations.
func WithMaxIter(maxIter int) LogisticOption {
	return func(lr *LogisticRegression) {
		lr.maxIter = maxIter
	}
}

// WithTol sets the gradient norm below which descent stops early.
func WithTol(tol float64) LogisticOption {
	return func(lr *LogisticRegression) {
		lr.tol = tol
	}
}

// WithL2 sets the L2 regularization strength. Zero disables the penalty.
func WithL2(lambda float64) LogisticOption {
	return func(lr *LogisticRegression) {
		lr.l2 = lambda
	}
}

// WithSeed sets the seed for weight initialization, making training
// reproducible.
func WithSeed(seed int64) LogisticOption {
	return func(lr *LogisticRegression) {
		lr.seed = seed
	}
}
