package gp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gpgo/kernel"
	"github.com/YuminosukeSato/gpgo/pkg/errors"
)

// Training set from the classic six-point regression demo.
func demoData() (*mat.Dense, *mat.Dense) {
	x := []float64{-1.5, -1, -0.75, -0.4, -0.25, 0}
	yRaw := []float64{-3, -2, -0.6, 0.4, 1, 1.6}
	y := make([]float64, len(yRaw))
	for i, v := range yRaw {
		y[i] = 0.55 * v
	}
	return mat.NewDense(len(x), 1, x), mat.NewDense(len(y), 1, y)
}

func demoRegressor(t *testing.T) *GPRegressor {
	t.Helper()
	X, y := demoData()
	g := NewGPRegressor(
		WithoutOptimizer(),
		WithKernelParams(1.27, 0.99),
		WithNoiseStd(0.3),
	)
	require.NoError(t, g.Fit(X, y))
	return g
}

func TestPredictDistributionReferenceValues(t *testing.T) {
	// Expected values are from a reference double-precision computation
	// with K = sigma_f^2*exp(-d^2/(2 l^2)) + sigma_n^2*I on the training
	// diagonal.
	g := demoRegressor(t)

	dist, err := g.PredictDistribution(mat.NewDense(1, 1, []float64{0.2}))
	require.NoError(t, err)

	assert.InDelta(t, 0.9773, dist.Mean.AtVec(0), 1e-3)
	assert.InDelta(t, 0.1172, dist.Cov.At(0, 0), 1e-3)

	// 95% confidence half-width, the quantity the demo plots.
	halfWidth := 1.96 * dist.Std()[0]
	assert.InDelta(t, 0.6710, halfWidth, 1e-3)
	assert.Greater(t, halfWidth, 0.6)
	assert.Less(t, halfWidth, 0.9)
}

func TestPredictDistributionMultipleQueries(t *testing.T) {
	g := demoRegressor(t)

	Xq := mat.NewDense(3, 1, []float64{0.2, 0.5, -0.5})
	dist, err := g.PredictDistribution(Xq)
	require.NoError(t, err)

	wantMean := []float64{0.977251, 1.021065, 0.057964}
	wantVar := []float64{0.117198, 0.318614, 0.026882}
	for i := 0; i < 3; i++ {
		assert.InDelta(t, wantMean[i], dist.Mean.AtVec(i), 1e-4, "mean[%d]", i)
		assert.InDelta(t, wantVar[i], dist.Cov.At(i, i), 1e-4, "var[%d]", i)
	}

	// Predictive covariance must be symmetric.
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.Equal(t, dist.Cov.At(i, j), dist.Cov.At(j, i))
		}
	}

	// Predict must agree with the mean of the full distribution.
	mean, err := g.Predict(Xq)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, dist.Mean.AtVec(i), mean.At(i, 0), 1e-12)
	}
}

func TestInterpolationWithZeroNoise(t *testing.T) {
	// With no observation noise, querying a training location must
	// reproduce its output exactly with zero variance.
	X := mat.NewDense(3, 1, []float64{0, 1, 2})
	y := mat.NewDense(3, 1, []float64{1, -1, 0.5})

	g := NewGPRegressor(WithoutOptimizer(), WithKernelParams(1, 1), WithNoiseStd(0))
	require.NoError(t, g.Fit(X, y))

	dist, err := g.PredictDistribution(mat.NewDense(1, 1, []float64{1}))
	require.NoError(t, err)

	assert.InDelta(t, -1.0, dist.Mean.AtVec(0), 1e-8)
	assert.InDelta(t, 0.0, dist.Cov.At(0, 0), 1e-8)
	assert.GreaterOrEqual(t, dist.Cov.At(0, 0), 0.0, "variance must be clipped, not negative")
}

func TestVariancesNeverNegative(t *testing.T) {
	g := demoRegressor(t)

	// Dense grid including points on top of and far from the data.
	m := 101
	q := make([]float64, m)
	for i := range q {
		q[i] = -3 + 6*float64(i)/float64(m-1)
	}
	dist, err := g.PredictDistribution(mat.NewDense(m, 1, q))
	require.NoError(t, err)

	for i, s := range dist.Std() {
		assert.False(t, math.IsNaN(s), "std[%d] is NaN", i)
		assert.GreaterOrEqual(t, dist.Cov.At(i, i), 0.0, "variance[%d]", i)
	}
}

func TestFitImprovesLikelihood(t *testing.T) {
	X, y := demoData()

	fixed := NewGPRegressor(WithoutOptimizer(), WithKernelParams(1, 1), WithNoiseStd(0.3))
	require.NoError(t, fixed.Fit(X, y))
	baseline, err := fixed.LogMarginalLikelihood()
	require.NoError(t, err)

	opt := NewGPRegressor(WithKernelParams(1, 1), WithNoiseStd(0.3))
	require.NoError(t, opt.Fit(X, y))
	fitted, err := opt.LogMarginalLikelihood()
	require.NoError(t, err)

	assert.GreaterOrEqual(t, fitted, baseline,
		"maximum-likelihood fit must not end below its starting point")
}

func TestFitDeterminism(t *testing.T) {
	X, y := demoData()
	Xq := mat.NewDense(1, 1, []float64{0.2})

	run := func() (kernel.Params, float64) {
		g := NewGPRegressor(WithKernelParams(1, 1), WithNoiseStd(0.3), WithRestarts(2, 7))
		require.NoError(t, g.Fit(X, y))
		pred, err := g.Predict(Xq)
		require.NoError(t, err)
		return g.KernelParams(), pred.At(0, 0)
	}

	p1, m1 := run()
	p2, m2 := run()
	assert.Equal(t, p1, p2, "fitted params must be identical across runs")
	assert.Equal(t, m1, m2, "predictions must be identical across runs")
}

func TestPredictBeforeFit(t *testing.T) {
	g := NewGPRegressor()
	_, err := g.Predict(mat.NewDense(1, 1, []float64{0}))
	require.Error(t, err)

	var nfe *errors.NotFittedError
	assert.True(t, errors.As(err, &nfe))
}

func TestFitInputValidation(t *testing.T) {
	g := NewGPRegressor()

	t.Run("mismatched lengths", func(t *testing.T) {
		X := mat.NewDense(3, 1, []float64{1, 2, 3})
		y := mat.NewDense(2, 1, []float64{1, 2})
		err := g.Fit(X, y)
		var de *errors.DimensionError
		assert.True(t, errors.As(err, &de))
	})

	t.Run("multiple features", func(t *testing.T) {
		X := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
		y := mat.NewDense(2, 1, []float64{1, 2})
		err := g.Fit(X, y)
		var de *errors.DimensionError
		assert.True(t, errors.As(err, &de))
	})

	t.Run("non-positive length scale", func(t *testing.T) {
		bad := NewGPRegressor(WithKernelParams(1, 0))
		X := mat.NewDense(2, 1, []float64{1, 2})
		y := mat.NewDense(2, 1, []float64{1, 2})
		err := bad.Fit(X, y)
		var ve *errors.ValidationError
		assert.True(t, errors.As(err, &ve))
	})
}

func TestDuplicateInputsWithoutNoiseFail(t *testing.T) {
	// Duplicate training inputs with a zero noise term make K singular;
	// this must surface as an explicit error, not NaN output.
	X := mat.NewDense(3, 1, []float64{1, 1, 2})
	y := mat.NewDense(3, 1, []float64{0.5, 0.5, 1})

	g := NewGPRegressor(WithoutOptimizer(), WithKernelParams(1, 1), WithNoiseStd(0))
	err := g.Fit(X, y)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotPositiveDefinite))

	// The same data succeeds once the noise term regularizes the diagonal.
	g = NewGPRegressor(WithoutOptimizer(), WithKernelParams(1, 1), WithNoiseStd(0.3))
	assert.NoError(t, g.Fit(X, y))
}

func TestStatelessPredict(t *testing.T) {
	x := []float64{-1.5, -1, -0.75, -0.4, -0.25, 0}
	y := []float64{0.55 * -3, 0.55 * -2, 0.55 * -0.6, 0.55 * 0.4, 0.55 * 1, 0.55 * 1.6}
	params := kernel.Params{SignalStd: 1.27, LengthScale: 0.99, NoiseStd: 0.3}

	mean, cov, err := Predict(x, y, []float64{0.2}, params)
	require.NoError(t, err)
	assert.InDelta(t, 0.9773, mean[0], 1e-3)
	assert.InDelta(t, 0.1172, cov.At(0, 0), 1e-3)

	// Empty query yields empty results, not an error.
	mean, cov, err = Predict(x, y, nil, params)
	require.NoError(t, err)
	assert.Empty(t, mean)
	n, _ := cov.Dims()
	assert.Equal(t, 0, n)

	// Empty training set is an input error.
	_, _, err = Predict(nil, nil, []float64{0}, params)
	assert.Error(t, err)
}

func TestStatelessFit(t *testing.T) {
	x := []float64{-1.5, -1, -0.75, -0.4, -0.25, 0}
	y := []float64{0.55 * -3, 0.55 * -2, 0.55 * -0.6, 0.55 * 0.4, 0.55 * 1, 0.55 * 1.6}

	fitted, err := Fit(x, y, 0.3, 1, 1)
	require.NoError(t, err)

	// The fitted parameters must beat the initial guess in likelihood.
	X := mat.NewDense(len(x), 1, append([]float64(nil), x...))
	yM := mat.NewDense(len(y), 1, append([]float64(nil), y...))

	logML := func(p kernel.Params) float64 {
		g := NewGPRegressor(WithoutOptimizer(),
			WithKernelParams(p.SignalStd, p.LengthScale), WithNoiseStd(p.NoiseStd))
		require.NoError(t, g.Fit(X, yM))
		ll, err := g.LogMarginalLikelihood()
		require.NoError(t, err)
		return ll
	}

	initial := kernel.Params{SignalStd: 1, LengthScale: 1, NoiseStd: 0.3}
	assert.GreaterOrEqual(t, logML(fitted), logML(initial))
	assert.Equal(t, 0.3, fitted.NoiseStd, "known noise must stay fixed")
}

func TestLogMarginalLikelihoodValue(t *testing.T) {
	// Reference double-precision value for the demo data at the demo
	// hyperparameters.
	g := demoRegressor(t)
	ll, err := g.LogMarginalLikelihood()
	require.NoError(t, err)
	assert.InDelta(t, -4.263859, ll, 1e-4)
}
