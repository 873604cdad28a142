package modelselection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestKFoldBasicSplit(t *testing.T) {
	n := 100
	X := mat.NewDense(n, 1, nil)
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		X.Set(i, 0, float64(i))
		y.Set(i, 0, float64(i))
	}

	kf := NewKFold(5, false, 42)
	assert.Equal(t, 5, kf.NSplits())

	folds := kf.Split(X, y)
	assert.Equal(t, 5, len(folds))

	for i, fold := range folds {
		assert.Equal(t, 80, len(fold.TrainIndices), "fold %d train size", i)
		assert.Equal(t, 20, len(fold.TestIndices), "fold %d test size", i)

		testSet := make(map[int]bool)
		for _, idx := range fold.TestIndices {
			testSet[idx] = true
		}
		for _, idx := range fold.TrainIndices {
			assert.False(t, testSet[idx], "train index %d in test set", idx)
		}
	}

	// Every index appears exactly once as a test index.
	coverage := make(map[int]int)
	for _, fold := range folds {
		for _, idx := range fold.TestIndices {
			coverage[idx]++
		}
	}
	for i := 0; i < n; i++ {
		assert.Equal(t, 1, coverage[i], "index %d coverage", i)
	}
}

func TestKFoldShuffleDeterminism(t *testing.T) {
	n := 50
	X := mat.NewDense(n, 1, nil)
	y := mat.NewDense(n, 1, nil)

	plain := NewKFold(5, false, 42).Split(X, y)
	shuffled := NewKFold(5, true, 42).Split(X, y)
	shuffledAgain := NewKFold(5, true, 42).Split(X, y)

	// Shuffling changes the assignment.
	different := false
	for i := range plain {
		for j := range plain[i].TestIndices {
			if plain[i].TestIndices[j] != shuffled[i].TestIndices[j] {
				different = true
			}
		}
	}
	assert.True(t, different, "shuffled folds should differ from unshuffled")

	// Same seed reproduces the same assignment.
	for i := range shuffled {
		assert.Equal(t, shuffled[i].TestIndices, shuffledAgain[i].TestIndices, "fold %d", i)
	}
}

func TestKFoldUnevenSplit(t *testing.T) {
	// 23 samples in 5 folds: three folds of 5 and two of 4.
	n := 23
	X := mat.NewDense(n, 1, nil)
	y := mat.NewDense(n, 1, nil)

	folds := NewKFold(5, false, 42).Split(X, y)

	sizes := make([]int, 5)
	for i, fold := range folds {
		sizes[i] = len(fold.TestIndices)
	}
	assert.Equal(t, []int{5, 5, 5, 4, 4}, sizes)
}

func TestKFoldMinimumSplits(t *testing.T) {
	kf := NewKFold(1, false, 0)
	assert.Equal(t, 5, kf.NSplits(), "fewer than 2 splits falls back to 5")
}
