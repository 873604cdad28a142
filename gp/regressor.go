// Package gp implements exact Gaussian process regression with an RBF
// kernel: predictive mean and covariance at arbitrary query points, and
// maximum-likelihood fitting of the kernel hyperparameters.
//
// All predictions go through a Cholesky factorization of the training
// covariance matrix; the matrix is never inverted explicitly. Every
// operation is a pure function of the fitted state, so a fitted
// regressor is safe for concurrent Predict calls.
package gp

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gpgo/core/model"
	"github.com/YuminosukeSato/gpgo/kernel"
	"github.com/YuminosukeSato/gpgo/pkg/errors"
	gplog "github.com/YuminosukeSato/gpgo/pkg/log"
)

// GPRegressor is a Gaussian process regression model over scalar inputs
// with a zero mean function and an RBF covariance function.
//
// Fit stores the training data, optionally maximizes the marginal
// likelihood over the kernel hyperparameters, and precomputes the
// Cholesky factor of the training covariance together with
// alpha = K^-1 y. Predict and PredictDistribution are read-only after
// that.
type GPRegressor struct {
	model.BaseEstimator

	params        kernel.Params
	optimize      bool
	optimizeNoise bool
	maxIter       int
	restarts      int
	seed          uint64

	xTrain []float64
	yTrain *mat.VecDense
	chol   mat.Cholesky
	alpha  *mat.VecDense
	logML  float64
}

// NewGPRegressor creates a GP regressor. By default the kernel starts at
// (signal_std=1, length_scale=1, noise_std=0.1) and Fit optimizes signal
// standard deviation and length scale by maximum likelihood with the
// noise held fixed.
func NewGPRegressor(opts ...Option) *GPRegressor {
	g := &GPRegressor{
		params:   kernel.Params{SignalStd: 1.0, LengthScale: 1.0, NoiseStd: 0.1},
		optimize: true,
		maxIter:  200,
		seed:     1,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// KernelParams returns the current kernel hyperparameters. After Fit
// with optimization enabled these are the maximum-likelihood values.
// Because the kernel squares the signal standard deviation and length
// scale, the optimizer may legitimately return negative values; they
// describe the same covariance function as their absolute values.
func (g *GPRegressor) KernelParams() kernel.Params {
	return g.params
}

// Fit conditions the Gaussian process on the training data X
// (n_samples x 1) and y (n_samples x 1). If optimization is enabled it
// first maximizes the marginal log-likelihood over the free kernel
// hyperparameters starting from the configured values.
func (g *GPRegressor) Fit(X, y mat.Matrix) error {
	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 {
		return errors.NewValueError("GPRegressor.Fit", "empty training set")
	}
	if c != 1 {
		return errors.NewDimensionError("GPRegressor.Fit", 1, c, 1)
	}
	if ry != r {
		return errors.NewDimensionError("GPRegressor.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("GPRegressor.Fit", "y must be a column vector")
	}
	if err := g.params.Validate(); err != nil {
		return err
	}

	g.xTrain = make([]float64, r)
	yVec := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		g.xTrain[i] = X.At(i, 0)
		yVec.SetVec(i, y.At(i, 0))
	}
	g.yTrain = yVec

	if g.optimize {
		if err := g.maximizeLikelihood(); err != nil {
			return err
		}
	}

	if err := g.factorize(); err != nil {
		return err
	}

	g.SetFitted()
	slog.Debug("fitted Gaussian process",
		gplog.ModelNameKey, "GPRegressor",
		gplog.OperationKey, gplog.OperationFit,
		gplog.SamplesKey, r,
		gplog.LogLikelihoodKey, g.logML,
	)
	return nil
}

// factorize builds the training covariance matrix, Cholesky-factorizes
// it, and solves for alpha = K^-1 y.
func (g *GPRegressor) factorize() error {
	rbf := kernel.NewRBF(g.params.SignalStd, g.params.LengthScale)
	K := rbf.SymMatrixNoise(g.xTrain, g.params.NoiseVar())

	if !g.chol.Factorize(K) {
		return errors.Wrap(errors.ErrNotPositiveDefinite,
			"GPRegressor.Fit: training covariance failed Cholesky factorization; duplicate inputs with zero noise are a common cause")
	}

	g.alpha = mat.NewVecDense(len(g.xTrain), nil)
	if err := g.chol.SolveVecTo(g.alpha, g.yTrain); err != nil {
		return errors.NewNumericalError("GPRegressor.Fit", "covariance solve failed: "+err.Error())
	}

	n := float64(len(g.xTrain))
	g.logML = -0.5*mat.Dot(g.yTrain, g.alpha) - 0.5*g.chol.LogDet() - 0.5*n*math.Log(2*math.Pi)
	return errors.CheckScalar("GPRegressor.Fit log-likelihood", g.logML)
}

// Predict returns the predictive mean at the query points X
// (n_queries x 1) as an (n_queries x 1) matrix.
func (g *GPRegressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !g.IsFitted() {
		return nil, errors.NewNotFittedError("GPRegressor", "Predict")
	}
	xq, err := queryPoints("GPRegressor.Predict", X)
	if err != nil {
		return nil, err
	}

	m := len(xq)
	if m == 0 {
		return &mat.Dense{}, nil
	}
	out := mat.NewDense(m, 1, nil)

	rbf := kernel.NewRBF(g.params.SignalStd, g.params.LengthScale)
	Ks := rbf.Matrix(xq, g.xTrain)

	var mean mat.VecDense
	mean.MulVec(Ks, g.alpha)
	for i := 0; i < m; i++ {
		out.Set(i, 0, mean.AtVec(i))
	}
	return out, nil
}

// PredictiveDistribution is the jointly Gaussian result of a query: a
// mean vector and a covariance matrix over the query points.
type PredictiveDistribution struct {
	Mean *mat.VecDense
	Cov  *mat.SymDense
}

// Std returns the predictive standard deviation at each query point.
// Diagonal entries already have any numerically negative values clipped
// to zero, so the square root is always defined.
func (d *PredictiveDistribution) Std() []float64 {
	n := d.Mean.Len()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = math.Sqrt(d.Cov.At(i, i))
	}
	return out
}

// PredictDistribution returns the full predictive distribution at the
// query points X (n_queries x 1): mean vector and covariance matrix
//
//	mean = Ks K^-1 y
//	cov  = Kss - Ks K^-1 Ks^T
//
// computed through the precomputed Cholesky factor. The covariance is
// that of the noise-free latent function; observation noise belongs to
// the training diagonal only. Tiny negative variances from floating-point
// cancellation are clipped to zero rather than propagated.
func (g *GPRegressor) PredictDistribution(X mat.Matrix) (*PredictiveDistribution, error) {
	if !g.IsFitted() {
		return nil, errors.NewNotFittedError("GPRegressor", "PredictDistribution")
	}
	xq, err := queryPoints("GPRegressor.PredictDistribution", X)
	if err != nil {
		return nil, err
	}

	m := len(xq)
	if m == 0 {
		return &PredictiveDistribution{Mean: &mat.VecDense{}, Cov: &mat.SymDense{}}, nil
	}

	rbf := kernel.NewRBF(g.params.SignalStd, g.params.LengthScale)
	Ks := rbf.Matrix(xq, g.xTrain)
	Kss := rbf.SymMatrix(xq)

	mean := mat.NewVecDense(m, nil)
	mean.MulVec(Ks, g.alpha)

	// V = K^-1 Ks^T, then cov = Kss - Ks V.
	var v mat.Dense
	if err := g.chol.SolveTo(&v, Ks.T()); err != nil {
		return nil, errors.NewNumericalError("GPRegressor.PredictDistribution", "covariance solve failed: "+err.Error())
	}
	var reduction mat.Dense
	reduction.Mul(Ks, &v)

	cov := mat.NewSymDense(m, nil)
	for i := 0; i < m; i++ {
		for j := i; j < m; j++ {
			// Symmetrize explicitly; Ks V is only symmetric up to
			// floating-point error.
			val := Kss.At(i, j) - 0.5*(reduction.At(i, j)+reduction.At(j, i))
			if i == j {
				val = errors.ClipValue(val, 0, math.Inf(1))
			}
			cov.SetSym(i, j, val)
		}
	}

	slog.Debug("computed predictive distribution",
		gplog.ModelNameKey, "GPRegressor",
		gplog.OperationKey, gplog.OperationPredict,
		gplog.QueryPointsKey, m,
	)
	return &PredictiveDistribution{Mean: mean, Cov: cov}, nil
}

// Score returns the coefficient of determination R^2 of the prediction
// on X against y.
func (g *GPRegressor) Score(X, y mat.Matrix) (float64, error) {
	if !g.IsFitted() {
		return 0, errors.NewNotFittedError("GPRegressor", "Score")
	}

	yPred, err := g.Predict(X)
	if err != nil {
		return 0, err
	}

	r, _ := y.Dims()
	var yMean float64
	for i := 0; i < r; i++ {
		yMean += y.At(i, 0)
	}
	yMean /= float64(r)

	var tss, rss float64
	for i := 0; i < r; i++ {
		yTrue := y.At(i, 0)
		diff := yTrue - yPred.At(i, 0)
		tss += (yTrue - yMean) * (yTrue - yMean)
		rss += diff * diff
	}
	if tss == 0 {
		return 0, errors.NewValueError("GPRegressor.Score", "total sum of squares is zero")
	}
	return 1 - rss/tss, nil
}

// LogMarginalLikelihood returns the marginal log-likelihood of the
// training data under the fitted hyperparameters.
func (g *GPRegressor) LogMarginalLikelihood() (float64, error) {
	if !g.IsFitted() {
		return 0, errors.NewNotFittedError("GPRegressor", "LogMarginalLikelihood")
	}
	return g.logML, nil
}

// queryPoints validates a query matrix and extracts its single column.
func queryPoints(op string, X mat.Matrix) ([]float64, error) {
	r, c := X.Dims()
	if r > 0 && c != 1 {
		return nil, errors.NewDimensionError(op, 1, c, 1)
	}
	out := make([]float64, r)
	for i := 0; i < r; i++ {
		out[i] = X.At(i, 0)
	}
	return out, nil
}
