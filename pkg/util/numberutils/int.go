package numberutils

import "math"

// MinInt returns the minimum value from a list of integers.
// It accepts a variadic number of integers and returns the smallest one.
func MinInt(nums ...int) int {
	minVal := math.MaxInt
	for _, num := range nums {
		if num < minVal {
			minVal = num
		}
	}
	return minVal
}

// IsIntNegative checks if the given number is negative.
// It returns true if the number is less than zero.
func IsIntNegative(number int) bool {
	return number < 0
}
