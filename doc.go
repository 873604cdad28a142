// Package gpgo provides Gaussian process regression and model selection
// for Go, built on gonum with a scikit-learn-like estimator API.
//
// The library covers exact GP regression with an RBF kernel (predictive
// mean and covariance via a Cholesky solve), maximum-likelihood kernel
// hyperparameter fitting, k-fold cross-validation, and polynomial
// regression for model-complexity comparisons.
//
// # Quick Start
//
// Fit a GP to noisy observations and query it with uncertainty:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/gpgo/gp"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    X := mat.NewDense(4, 1, []float64{-1.5, -1.0, -0.5, 0.0})
//	    y := mat.NewDense(4, 1, []float64{-1.6, -1.1, 0.2, 0.9})
//
//	    reg := gp.NewGPRegressor(gp.WithNoiseStd(0.3))
//	    if err := reg.Fit(X, y); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    Xq := mat.NewDense(1, 1, []float64{0.2})
//	    dist, err := reg.PredictDistribution(Xq)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Printf("mean=%.3f std=%.3f\n", dist.Mean.AtVec(0), dist.Std()[0])
//	}
//
// # Packages
//
//   - kernel: covariance functions (RBF) and kernel-matrix construction
//   - gp: GPRegressor estimator, marginal likelihood, hyperparameter fitting
//   - polynomial: polynomial least-squares regression
//   - modelselection: k-fold splitting and cross-validation
//   - metrics: regression metrics (MSE, RMSE, MAE, R²)
//   - datasets: seeded synthetic data generators for demos and tests
//   - core/model: shared estimator interfaces and fitted-state tracking
//   - pkg/errors: structured error types with stack traces
//   - pkg/log: structured logging setup
package gpgo
