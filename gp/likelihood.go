package gp

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"

	"github.com/YuminosukeSato/gpgo/kernel"
	"github.com/YuminosukeSato/gpgo/pkg/errors"
)

// negLogLikelihood computes the negative log marginal likelihood
//
//	NLL = 0.5*y^T K^-1 y + 0.5*log|K| + 0.5*n*log(2*pi)
//
// for the given training data and hyperparameters. The determinant comes
// from the Cholesky factor, never from an explicit inverse.
func negLogLikelihood(x []float64, y *mat.VecDense, p kernel.Params) (float64, error) {
	rbf := kernel.NewRBF(p.SignalStd, p.LengthScale)
	K := rbf.SymMatrixNoise(x, p.NoiseVar())

	var chol mat.Cholesky
	if !chol.Factorize(K) {
		return 0, errors.Wrap(errors.ErrNotPositiveDefinite, "gp: negLogLikelihood")
	}

	var alpha mat.VecDense
	if err := chol.SolveVecTo(&alpha, y); err != nil {
		return 0, errors.NewNumericalError("gp.negLogLikelihood", "covariance solve failed: "+err.Error())
	}

	n := float64(len(x))
	return 0.5*mat.Dot(y, &alpha) + 0.5*chol.LogDet() + 0.5*n*math.Log(2*math.Pi), nil
}

// maximizeLikelihood minimizes the negative log marginal likelihood over
// the free hyperparameters with Nelder-Mead, starting from the current
// parameters. The noise standard deviation stays fixed unless
// optimizeNoise is set. Hyperparameter values that make the covariance
// matrix indefinite evaluate to +Inf, which steers the simplex back into
// feasible territory.
func (g *GPRegressor) maximizeLikelihood() error {
	objective := func(v []float64) float64 {
		p := kernel.Params{SignalStd: v[0], LengthScale: v[1], NoiseStd: g.params.NoiseStd}
		if g.optimizeNoise {
			p.NoiseStd = v[2]
		}
		nll, err := negLogLikelihood(g.xTrain, g.yTrain, p)
		if err != nil || math.IsNaN(nll) {
			return math.Inf(1)
		}
		return nll
	}
	problem := optimize.Problem{Func: objective}

	x0 := []float64{g.params.SignalStd, g.params.LengthScale}
	if g.optimizeNoise {
		x0 = append(x0, g.params.NoiseStd)
	}

	settings := &optimize.Settings{
		MajorIterations: g.maxIter,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-10,
			Iterations: 50,
		},
	}

	bestF := math.Inf(1)
	var bestX []float64
	rng := rand.New(rand.NewPCG(g.seed, g.seed+1))

	for attempt := 0; attempt <= g.restarts; attempt++ {
		start := make([]float64, len(x0))
		copy(start, x0)
		if attempt > 0 {
			// Log-normal perturbation keeps the restart on the same
			// order of magnitude as the initial guess.
			for i := range start {
				start[i] *= math.Exp(0.5 * rng.NormFloat64())
			}
		}

		res, err := optimize.Minimize(problem, start, settings, &optimize.NelderMead{})
		if err != nil {
			errors.Warn(errors.NewConvergenceWarning("NelderMead", g.maxIter,
				fmt.Sprintf("restart %d failed: %v", attempt, err)))
			continue
		}
		if res.Status == optimize.IterationLimit || res.Status == optimize.FunctionEvaluationLimit {
			errors.Warn(errors.NewConvergenceWarning("NelderMead", g.maxIter,
				fmt.Sprintf("restart %d hit the iteration budget", attempt)))
			continue
		}
		if res.F < bestF {
			bestF = res.F
			bestX = res.X
		}
	}

	if math.IsInf(bestF, 1) {
		return errors.NewConvergenceError("NelderMead", g.maxIter,
			"no optimizer start converged to a finite negative log-likelihood")
	}

	g.params.SignalStd = bestX[0]
	g.params.LengthScale = bestX[1]
	if g.optimizeNoise {
		g.params.NoiseStd = bestX[2]
	}
	return nil
}
