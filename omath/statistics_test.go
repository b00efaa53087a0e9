package omath

import (
	"math"
	"testing"
)

func TestStatistics(t *testing.T) {
	nums := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	if got := Sum(nums); got != 40 {
		t.Fatalf("expected a sum of 40, got %v", got)
	}
	if got := Mean(nums); got != 5 {
		t.Fatalf("expected a mean of 5, got %v", got)
	}
	if got := Variance(nums); got != 4 {
		t.Fatalf("expected a variance of 4, got %v", got)
	}
	if got := StandardDeviation(nums); math.Abs(got-2) > 1e-9 {
		t.Fatalf("expected a standard deviation of 2, got %v", got)
	}
}

func TestEmpty(t *testing.T) {
	var nums []float32
	if Mean(nums) != 0 || Variance(nums) != 0 || StandardDeviation(nums) != 0 {
		t.Fatal("expected zero for no samples")
	}
	if s := Summarize(nums); s != (Summary[float32]{}) {
		t.Fatalf("expected an empty summary, got %+v", s)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float32{3, 1, 2})
	if s.Count != 3 || s.Min != 1 || s.Max != 3 || s.Mean != 2 {
		t.Fatalf("unexpected summary %+v", s)
	}
}
