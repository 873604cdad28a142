package kernel

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gpgo/core/parallel"
)

// Rows below this size are filled sequentially; the goroutine overhead
// is not worth it for typical notebook-scale training sets.
const parallelThreshold = 256

// RBF is the squared-exponential (Gaussian) covariance function
//
//	k(x, x') = sigma_f^2 * exp(-(x-x')^2 / (2*l^2))
//
// Both parameters enter squared, so their sign does not affect the
// covariance. A length scale approaching zero underflows the exponent
// to 0 for distinct inputs, which is accepted behavior.
type RBF struct {
	SignalStd   float64
	LengthScale float64
}

// NewRBF returns an RBF kernel with the given signal standard deviation
// and length scale.
func NewRBF(signalStd, lengthScale float64) RBF {
	return RBF{SignalStd: signalStd, LengthScale: lengthScale}
}

// Eval returns the covariance between two inputs.
func (k RBF) Eval(x1, x2 float64) float64 {
	d := x1 - x2
	return k.SignalStd * k.SignalStd * math.Exp(-d*d/(2*k.LengthScale*k.LengthScale))
}

// Matrix returns the (len(x1) x len(x2)) covariance matrix between two
// input grids. Zero-length inputs yield an empty matrix.
func (k RBF) Matrix(x1, x2 []float64) *mat.Dense {
	r, c := len(x1), len(x2)
	if r == 0 || c == 0 {
		return &mat.Dense{}
	}

	out := mat.NewDense(r, c, nil)
	parallel.ForThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j < c; j++ {
				out.Set(i, j, k.Eval(x1[i], x2[j]))
			}
		}
	})
	return out
}

// SymMatrix returns the symmetric covariance matrix of a single input
// grid with itself. Zero-length input yields an empty matrix.
func (k RBF) SymMatrix(x []float64) *mat.SymDense {
	return k.SymMatrixNoise(x, 0)
}

// SymMatrixNoise returns the symmetric covariance matrix of x with
// itself, with noiseVar added to every diagonal entry. This is the
// training-training matrix of a GP with i.i.d. observation noise: the
// added diagonal makes it strictly positive definite even when inputs
// coincide. Zero-length input yields an empty matrix.
func (k RBF) SymMatrixNoise(x []float64, noiseVar float64) *mat.SymDense {
	n := len(x)
	if n == 0 {
		return &mat.SymDense{}
	}

	out := mat.NewSymDense(n, nil)
	parallel.ForThreshold(n, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			for j := i; j < n; j++ {
				v := k.Eval(x[i], x[j])
				if i == j {
					v += noiseVar
				}
				out.SetSym(i, j, v)
			}
		}
	})
	return out
}
