package gp

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gpgo/kernel"
	"github.com/YuminosukeSato/gpgo/pkg/errors"
)

// Predict is the stateless entry point for one-off queries: it
// conditions a GP with fixed hyperparameters on (xTrain, yTrain) and
// returns the predictive mean and covariance at xQuery. No state
// survives the call.
func Predict(xTrain, yTrain, xQuery []float64, params kernel.Params) ([]float64, *mat.SymDense, error) {
	if len(xTrain) != len(yTrain) {
		return nil, nil, errors.NewDimensionError("gp.Predict", len(xTrain), len(yTrain), 0)
	}
	if len(xTrain) == 0 {
		return nil, nil, errors.NewValueError("gp.Predict", "empty training set")
	}

	g := NewGPRegressor(
		WithoutOptimizer(),
		WithKernelParams(params.SignalStd, params.LengthScale),
		WithNoiseStd(params.NoiseStd),
	)
	X := mat.NewDense(len(xTrain), 1, append([]float64(nil), xTrain...))
	y := mat.NewDense(len(yTrain), 1, append([]float64(nil), yTrain...))
	if err := g.Fit(X, y); err != nil {
		return nil, nil, err
	}

	if len(xQuery) == 0 {
		return []float64{}, &mat.SymDense{}, nil
	}
	Xq := mat.NewDense(len(xQuery), 1, append([]float64(nil), xQuery...))
	dist, err := g.PredictDistribution(Xq)
	if err != nil {
		return nil, nil, err
	}

	mean := make([]float64, len(xQuery))
	for i := range mean {
		mean[i] = dist.Mean.AtVec(i)
	}
	return mean, dist.Cov, nil
}

// Fit is the stateless entry point for hyperparameter estimation: it
// maximizes the marginal likelihood of (xTrain, yTrain) over the signal
// standard deviation and length scale, starting from the given initial
// guess and holding the observation noise fixed at noiseStd.
func Fit(xTrain, yTrain []float64, noiseStd, signalStd0, lengthScale0 float64) (kernel.Params, error) {
	if len(xTrain) != len(yTrain) {
		return kernel.Params{}, errors.NewDimensionError("gp.Fit", len(xTrain), len(yTrain), 0)
	}
	if len(xTrain) == 0 {
		return kernel.Params{}, errors.NewValueError("gp.Fit", "empty training set")
	}

	g := NewGPRegressor(
		WithKernelParams(signalStd0, lengthScale0),
		WithNoiseStd(noiseStd),
	)
	X := mat.NewDense(len(xTrain), 1, append([]float64(nil), xTrain...))
	y := mat.NewDense(len(yTrain), 1, append([]float64(nil), yTrain...))
	if err := g.Fit(X, y); err != nil {
		return kernel.Params{}, err
	}
	return g.KernelParams(), nil
}
