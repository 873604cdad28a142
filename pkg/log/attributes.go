package log

// Standard attribute keys for model operations. Using these keys keeps
// log output filterable across packages.
const (
	// ModelNameKey identifies the model type, e.g. "GPRegressor".
	ModelNameKey = "model.name"

	// OperationKey names the operation: "fit", "predict", "score".
	OperationKey = "ml.operation"

	// SamplesKey is the number of samples (rows) being processed.
	SamplesKey = "data.samples"

	// QueryPointsKey is the number of query points in a prediction.
	QueryPointsKey = "data.query_points"

	// LogLikelihoodKey records the marginal log-likelihood of a fit.
	LogLikelihoodKey = "metrics.log_likelihood"

	// IterationKey records the iteration count of an optimizer run.
	IterationKey = "training.iteration"

	// RandomSeedKey records the seed used for any randomized step.
	RandomSeedKey = "config.random_seed"
)

// Standard operation values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationScore   = "score"
)
