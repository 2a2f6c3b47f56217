package math

import "math"

// Pi as float32.
const Pi = float32(math.Pi)

// Lerp interpolates between a and b.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to [0, 1].
func Clamp01(v float32) float32 {
	return Clamp(v, 0, 1)
}

// EaseInOutCubic is the cubic ease used for foot travel and gaze blending.
func EaseInOutCubic(x float32) float32 {
	if x < 0.5 {
		return 4 * x * x * x
	}
	f := -2*x + 2
	return 1 - f*f*f/2
}

// Sin is math.Sin for float32.
func Sin(x float32) float32 {
	return float32(math.Sin(float64(x)))
}

// Cos is math.Cos for float32.
func Cos(x float32) float32 {
	return float32(math.Cos(float64(x)))
}

// Sqrt is math.Sqrt for float32.
func Sqrt(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

// Acos is math.Acos for float32 with its argument clamped to [-1, 1].
func Acos(x float32) float32 {
	return float32(math.Acos(float64(Clamp(x, -1, 1))))
}

// Abs is math.Abs for float32.
func Abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of a and b.
func Min(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// IsFinite reports whether f is neither NaN nor infinite.
func IsFinite(f float32) bool {
	return isFinite(f)
}
