// Package polynomial implements least-squares polynomial regression on
// scalar inputs. It is the classic subject of model-complexity
// comparisons: paired with k-fold cross-validation it shows how held-out
// error selects the polynomial degree.
package polynomial

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gpgo/core/model"
	"github.com/YuminosukeSato/gpgo/core/parallel"
	"github.com/YuminosukeSato/gpgo/pkg/errors"
)

// Regression fits y = c0 + c1*x + ... + cd*x^d by least squares on a
// Vandermonde expansion of the input. The system is solved through a QR
// factorization rather than normal equations, which keeps high degrees
// better conditioned.
type Regression struct {
	model.BaseEstimator

	// Degree is the polynomial degree d.
	Degree int

	// Coeffs holds the fitted coefficients in ascending power order,
	// length Degree+1.
	Coeffs *mat.VecDense
}

// NewRegression creates a polynomial regression model of the given degree.
func NewRegression(degree int) *Regression {
	return &Regression{Degree: degree}
}

// Fit estimates the polynomial coefficients from X (n_samples x 1) and
// y (n_samples x 1).
func (p *Regression) Fit(X, y mat.Matrix) error {
	r, c := X.Dims()
	ry, cy := y.Dims()

	if p.Degree < 0 {
		return errors.NewValidationError("degree", "must be non-negative", p.Degree)
	}
	if r == 0 {
		return errors.NewValueError("polynomial.Fit", "empty training set")
	}
	if c != 1 {
		return errors.NewDimensionError("polynomial.Fit", 1, c, 1)
	}
	if ry != r {
		return errors.NewDimensionError("polynomial.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("polynomial.Fit", "y must be a column vector")
	}
	if r < p.Degree+1 {
		return errors.NewValidationError("degree", "requires at least degree+1 samples", p.Degree)
	}

	cols := p.Degree + 1
	V := mat.NewDense(r, cols, nil)

	const parallelThreshold = 1000
	parallel.ForThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			x := X.At(i, 0)
			pow := 1.0
			for j := 0; j < cols; j++ {
				V.Set(i, j, pow)
				pow *= x
			}
		}
	})

	yDense := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		yDense.Set(i, 0, y.At(i, 0))
	}

	var qr mat.QR
	qr.Factorize(V)

	var coef mat.Dense
	if err := qr.SolveTo(&coef, false, yDense); err != nil {
		return errors.Wrap(errors.ErrSingularMatrix, "polynomial.Fit")
	}

	p.Coeffs = mat.NewVecDense(cols, nil)
	for j := 0; j < cols; j++ {
		p.Coeffs.SetVec(j, coef.At(j, 0))
	}

	p.SetFitted()
	return nil
}

// Predict evaluates the fitted polynomial at X (n_samples x 1).
func (p *Regression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !p.IsFitted() {
		return nil, errors.NewNotFittedError("polynomial.Regression", "Predict")
	}

	r, c := X.Dims()
	if r > 0 && c != 1 {
		return nil, errors.NewDimensionError("polynomial.Predict", 1, c, 1)
	}
	if r == 0 {
		return &mat.Dense{}, nil
	}

	out := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		x := X.At(i, 0)
		// Horner evaluation from the highest coefficient down.
		v := 0.0
		for j := p.Coeffs.Len() - 1; j >= 0; j-- {
			v = v*x + p.Coeffs.AtVec(j)
		}
		out.Set(i, 0, v)
	}
	return out, nil
}

// Score returns the coefficient of determination R^2 of the prediction
// on X against y.
func (p *Regression) Score(X, y mat.Matrix) (float64, error) {
	if !p.IsFitted() {
		return 0, errors.NewNotFittedError("polynomial.Regression", "Score")
	}

	yPred, err := p.Predict(X)
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
		return 0, errors.NewValueError("polynomial.Score", "total sum of squares is zero")
	}
	return 1 - rss/tss, nil
}
