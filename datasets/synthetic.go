// Package datasets generates small synthetic datasets for demos and
// tests. All generators are seeded explicitly; the regression math
// itself contains no randomness.
package datasets

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// Sinusoid samples y = sin(0.9*x) plus Gaussian noise at n evenly
// spaced points on [-5, 5].
func Sinusoid(n int, noiseStd float64, seed uint64) (X, y *mat.Dense) {
	if n <= 0 {
		return &mat.Dense{}, &mat.Dense{}
	}

	rng := rand.New(rand.NewPCG(seed, seed))
	X = mat.NewDense(n, 1, nil)
	y = mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		x := -5 + 10*float64(i)/float64(maxInt(n-1, 1))
		X.Set(i, 0, x)
		y.Set(i, 0, math.Sin(0.9*x)+noiseStd*rng.NormFloat64())
	}
	return X, y
}

// Polynomial samples a polynomial with the given coefficients in
// ascending power order, plus Gaussian noise, at n evenly spaced points
// on [-1, 1].
func Polynomial(coeffs []float64, n int, noiseStd float64, seed uint64) (X, y *mat.Dense) {
	if n <= 0 {
		return &mat.Dense{}, &mat.Dense{}
	}

	rng := rand.New(rand.NewPCG(seed, seed))
	X = mat.NewDense(n, 1, nil)
	y = mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		x := -1 + 2*float64(i)/float64(maxInt(n-1, 1))
		v := 0.0
		for j := len(coeffs) - 1; j >= 0; j-- {
			v = v*x + coeffs[j]
		}
		X.Set(i, 0, x)
		y.Set(i, 0, v+noiseStd*rng.NormFloat64())
	}
	return X, y
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
