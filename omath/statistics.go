package omath

import "math"

// Number is any floating point type statistics can be computed over.
type Number interface {
	~float32 | ~float64
}

// Sum ...
func Sum[T Number](nums []T) (result T) {
	for _, v := range nums {
		result += v
	}
	return result
}

// Mean ...
func Mean[T Number](nums []T) T {
	if len(nums) == 0 {
		return 0
	}
	return Sum(nums) / T(len(nums))
}

// Variance returns the population variance.
func Variance[T Number](nums []T) T {
	if len(nums) == 0 {
		return 0
	}
	mean := Mean(nums)

	var variance T
	for _, v := range nums {
		d := v - mean
		variance += d * d
	}
	return variance / T(len(nums))
}

// StandardDeviation ...
func StandardDeviation[T Number](nums []T) T {
	return T(math.Sqrt(float64(Variance(nums))))
}

// Summary describes a series of samples, such as how long each tick took to simulate.
type Summary[T Number] struct {
	Count  int
	Mean   T
	StdDev T
	Min    T
	Max    T
}

// Summarize computes a Summary of nums.
func Summarize[T Number](nums []T) Summary[T] {
	if len(nums) == 0 {
		return Summary[T]{}
	}
	s := Summary[T]{
		Count:  len(nums),
		Mean:   Mean(nums),
		StdDev: StandardDeviation(nums),
		Min:    nums[0],
		Max:    nums[0],
	}
	for _, v := range nums[1:] {
		s.Min = min(s.Min, v)
		s.Max = max(s.Max, v)
	}
	return s
}
