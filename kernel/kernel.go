// Package kernel provides covariance functions for Gaussian process
// regression and the construction of kernel matrices over input grids.
//
// Observation noise is deliberately not part of the smooth kernel: it is
// a separate regularization term added to the diagonal of the
// training-training covariance matrix (see SymMatrixNoise). This keeps
// query-train and query-query comparisons noise-free and makes the
// training matrix strictly positive definite even for degenerate inputs.
package kernel

import (
	"github.com/YuminosukeSato/gpgo/pkg/errors"
)

// Params bundles the hyperparameters of an RBF kernel with observation
// noise: signal standard deviation, length scale, and noise standard
// deviation. The kernel only ever uses the squares of SignalStd and
// LengthScale, so their sign is unobservable; an optimizer may return
// negative values that describe the same covariance function.
type Params struct {
	// SignalStd is sigma_f, the prior standard deviation of the latent
	// function.
	SignalStd float64

	// LengthScale is l, the distance over which correlation decays.
	// Must be strictly positive when supplied by a caller (it appears
	// in a division).
	LengthScale float64

	// NoiseStd is sigma_n, the standard deviation of i.i.d. observation
	// noise added at each training location.
	NoiseStd float64
}

// Validate checks caller-supplied parameters. Signal and noise standard
// deviations must be non-negative and the length scale strictly positive.
func (p Params) Validate() error {
	if p.SignalStd < 0 {
		return errors.NewValidationError("signal_std", "must be non-negative", p.SignalStd)
	}
	if p.LengthScale <= 0 {
		return errors.NewValidationError("length_scale", "must be strictly positive", p.LengthScale)
	}
	if p.NoiseStd < 0 {
		return errors.NewValidationError("noise_std", "must be non-negative", p.NoiseStd)
	}
	return nil
}

// NoiseVar returns sigma_n squared.
func (p Params) NoiseVar() float64 {
	return p.NoiseStd * p.NoiseStd
}

// Kernel is a covariance function over scalar inputs.
type Kernel interface {
	// Eval returns the covariance between two inputs.
	Eval(x1, x2 float64) float64
}
