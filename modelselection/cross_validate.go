package modelselection

import (
	"math"
	"sort"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gpgo/core/model"
	"github.com/YuminosukeSato/gpgo/metrics"
	"github.com/YuminosukeSato/gpgo/pkg/errors"
)

// Estimator is the minimal model contract cross-validation needs.
type Estimator interface {
	model.Fitter
	model.Predictor
}

// Result stores per-fold cross-validation scores.
type Result struct {
	TrainScores []float64
	TestScores  []float64
	Metric      string
}

// MeanScore returns the mean test score across folds.
func (r *Result) MeanScore() float64 {
	if len(r.TestScores) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range r.TestScores {
		sum += s
	}
	return sum / float64(len(r.TestScores))
}

// StdScore returns the sample standard deviation of the test scores.
func (r *Result) StdScore() float64 {
	if len(r.TestScores) <= 1 {
		return 0
	}
	mean := r.MeanScore()
	sumSq := 0.0
	for _, s := range r.TestScores {
		d := s - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(r.TestScores)-1))
}

// BestFold returns the index of the best-scoring fold, respecting
// whether the metric is a loss (lower is better) or a score.
func (r *Result) BestFold() int {
	best := 0
	loss := lowerIsBetter(r.Metric)
	for i := 1; i < len(r.TestScores); i++ {
		if loss && r.TestScores[i] < r.TestScores[best] {
			best = i
		}
		if !loss && r.TestScores[i] > r.TestScores[best] {
			best = i
		}
	}
	return best
}

// CrossValidate fits a fresh estimator from newEstimator on each fold's
// training subset and evaluates the chosen metric on both subsets. Folds
// run concurrently; each fold has its own estimator so no state is
// shared. Supported metrics: "mse", "rmse", "mae", "r2".
func CrossValidate(newEstimator func() Estimator, X, y mat.Matrix, splitter Splitter, metric string) (*Result, error) {
	nSamples, _ := X.Dims()
	if nSamples == 0 {
		return nil, errors.NewValueError("CrossValidate", "empty dataset")
	}
	if nSamples < splitter.NSplits() {
		return nil, errors.NewValueError("CrossValidate", "fewer samples than folds")
	}
	if metric == "" {
		metric = "mse"
	}
	if !knownMetric(metric) {
		return nil, errors.NewValidationError("metric", "unknown metric", metric)
	}

	folds := splitter.Split(X, y)
	nFolds := len(folds)

	result := &Result{
		TrainScores: make([]float64, nFolds),
		TestScores:  make([]float64, nFolds),
		Metric:      metric,
	}

	var wg sync.WaitGroup
	foldErrs := make([]error, nFolds)

	for foldIdx := 0; foldIdx < nFolds; foldIdx++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			fold := folds[idx]
			trainX, trainY := subset(X, y, fold.TrainIndices)
			testX, testY := subset(X, y, fold.TestIndices)

			est := newEstimator()
			if err := est.Fit(trainX, trainY); err != nil {
				foldErrs[idx] = errors.Wrapf(err, "fold %d training failed", idx)
				return
			}

			trainPred, err := est.Predict(trainX)
			if err != nil {
				foldErrs[idx] = errors.Wrapf(err, "fold %d train prediction failed", idx)
				return
			}
			if result.TrainScores[idx], err = scoreMetric(metric, trainY, trainPred); err != nil {
				foldErrs[idx] = err
				return
			}

			testPred, err := est.Predict(testX)
			if err != nil {
				foldErrs[idx] = errors.Wrapf(err, "fold %d test prediction failed", idx)
				return
			}
			if result.TestScores[idx], err = scoreMetric(metric, testY, testPred); err != nil {
				foldErrs[idx] = err
			}
		}(foldIdx)
	}
	wg.Wait()

	for _, err := range foldErrs {
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// subset extracts the rows of X and y selected by indices, in sorted
// row order.
func subset(X, y mat.Matrix, indices []int) (mat.Matrix, mat.Matrix) {
	rows := len(indices)
	_, xCols := X.Dims()
	_, yCols := y.Dims()

	sorted := make([]int, len(indices))
	copy(sorted, indices)
	sort.Ints(sorted)

	xSub := mat.NewDense(rows, xCols, nil)
	ySub := mat.NewDense(rows, yCols, nil)
	for i, idx := range sorted {
		for j := 0; j < xCols; j++ {
			xSub.Set(i, j, X.At(idx, j))
		}
		for j := 0; j < yCols; j++ {
			ySub.Set(i, j, y.At(idx, j))
		}
	}
	return xSub, ySub
}

func scoreMetric(name string, yTrue, yPred mat.Matrix) (float64, error) {
	tv, err := metrics.ColumnVec("CrossValidate", yTrue)
	if err != nil {
		return 0, err
	}
	pv, err := metrics.ColumnVec("CrossValidate", yPred)
	if err != nil {
		return 0, err
	}

	switch name {
	case "mse":
		return metrics.MSE(tv, pv)
	case "rmse":
		return metrics.RMSE(tv, pv)
	case "mae":
		return metrics.MAE(tv, pv)
	case "r2":
		return metrics.R2(tv, pv)
	default:
		return 0, errors.NewValidationError("metric", "unknown metric", name)
	}
}

func knownMetric(name string) bool {
	switch name {
	case "mse", "rmse", "mae", "r2":
		return true
	}
	return false
}

func lowerIsBetter(name string) bool {
	switch name {
	case "mse", "rmse", "mae":
		return true
	}
	return false
}
