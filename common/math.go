package common

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp01 limits v to [0, 1].
func Clamp01(v float64) float64 {
	return min(1, max(0, v))
}
