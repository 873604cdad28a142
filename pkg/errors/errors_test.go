package errors

import (
	"math"
	"strings"
	"testing"
)

func TestNotFittedError(t *testing.T) {
	err := NewNotFittedError("GPRegressor", "Predict")

	var nfe *NotFittedError
	if !As(err, &nfe) {
		t.Fatalf("expected NotFittedError in chain, got %T", err)
	}
	if nfe.ModelName != "GPRegressor" {
		t.Errorf("ModelName = %q, want GPRegressor", nfe.ModelName)
	}
	if !strings.Contains(err.Error(), "not fitted") {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestDimensionError(t *testing.T) {
	err := NewDimensionError("GPRegressor.Fit", 6, 5, 0)

	var de *DimensionError
	if !As(err, &de) {
		t.Fatalf("expected DimensionError in chain, got %T", err)
	}
	if de.Expected != 6 || de.Got != 5 {
		t.Errorf("Expected/Got = %d/%d, want 6/5", de.Expected, de.Got)
	}
	if !strings.Contains(err.Error(), "rows") {
		t.Errorf("axis 0 should report rows: %s", err.Error())
	}
}

func TestNumericalErrorTruncatesValues(t *testing.T) {
	vals := []float64{1, 2, 3, 4, 5, 6, 7}
	err := NewNumericalError("cholesky", "not positive definite", vals...)

	msg := err.Error()
	if !strings.Contains(msg, "...") {
		t.Errorf("long value list should be truncated: %s", msg)
	}

	var ne *NumericalError
	if !As(err, &ne) {
		t.Fatalf("expected NumericalError in chain")
	}
	if len(ne.Values) != 7 {
		t.Errorf("Values length = %d, want 7", len(ne.Values))
	}
}

func TestConvergenceError(t *testing.T) {
	err := NewConvergenceError("NelderMead", 200, "")
	if !strings.Contains(err.Error(), "200 iterations") {
		t.Errorf("unexpected message: %s", err.Error())
	}

	var ce *ConvergenceError
	if !As(err, &ce) {
		t.Fatalf("expected ConvergenceError in chain")
	}
}

func TestWarnHandler(t *testing.T) {
	var captured error
	SetWarningHandler(func(w error) { captured = w })
	defer SetWarningHandler(nil)

	w := NewConvergenceWarning("NelderMead", 50, "flat simplex")
	Warn(w)

	if captured == nil {
		t.Fatal("warning handler was not invoked")
	}
	if !strings.Contains(captured.Error(), "flat simplex") {
		t.Errorf("unexpected warning: %v", captured)
	}
}

func TestCheckNumericalStability(t *testing.T) {
	if err := CheckNumericalStability("op", []float64{1, 2, 3}); err != nil {
		t.Errorf("finite values should pass: %v", err)
	}
	if err := CheckNumericalStability("op", []float64{1, math.NaN()}); err == nil {
		t.Error("NaN should fail the check")
	}
	if err := CheckScalar("op", math.Inf(1)); err == nil {
		t.Error("Inf should fail the check")
	}
}

func TestClipValue(t *testing.T) {
	if got := ClipValue(-0.5, 0, 1); got != 0 {
		t.Errorf("ClipValue(-0.5) = %v, want 0", got)
	}
	if got := ClipValue(2, 0, 1); got != 1 {
		t.Errorf("ClipValue(2) = %v, want 1", got)
	}
	if got := ClipValue(0.3, 0, 1); got != 0.3 {
		t.Errorf("ClipValue(0.3) = %v, want 0.3", got)
	}
}
