package gp

// Option configures a GPRegressor.
type Option func(*GPRegressor)

// WithKernelParams sets the signal standard deviation and length scale.
// When hyperparameter optimization is enabled these are the starting
// point of the search; otherwise they are used as-is.
func WithKernelParams(signalStd, lengthScale float64) Option {
	return func(g *GPRegressor) {
		g.params.SignalStd = signalStd
		g.params.LengthScale = lengthScale
	}
}

// WithNoiseStd sets the observation noise standard deviation. The noise
// is held fixed during fitting unless WithOptimizeNoise is also set.
func WithNoiseStd(noiseStd float64) Option {
	return func(g *GPRegressor) {
		g.params.NoiseStd = noiseStd
	}
}

// WithOptimizeNoise frees the noise standard deviation during
// maximum-likelihood fitting instead of holding it at the known value.
func WithOptimizeNoise(optimize bool) Option {
	return func(g *GPRegressor) {
		g.optimizeNoise = optimize
	}
}

// WithoutOptimizer disables hyperparameter optimization. Fit then only
// conditions the process on the training data with the configured
// kernel parameters.
func WithoutOptimizer() Option {
	return func(g *GPRegressor) {
		g.optimize = false
	}
}

// WithMaxIter sets the iteration budget of the likelihood optimizer.
func WithMaxIter(n int) Option {
	return func(g *GPRegressor) {
		g.maxIter = n
	}
}

// WithRestarts sets the number of additional optimizer starts from
// perturbed initial guesses. Perturbations are drawn from a generator
// seeded with seed, so fitting stays deterministic.
func WithRestarts(n int, seed uint64) Option {
	return func(g *GPRegressor) {
		g.restarts = n
		g.seed = seed
	}
}
