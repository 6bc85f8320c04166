package util

import "math"

// ReverseG returns a reversed copy of arr, the input is left untouched.
func ReverseG[T any](arr []T) []T {
	out := make([]T, len(arr))
	for i, v := range arr {
		out[len(arr)-1-i] = v
	}
	return out
}

// RoundFloat rounds val to precision decimal places.
func RoundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}
