package trajectory

import "math"

// NormalizeAngle maps any angle (radians) to its representative in (-π, π].
func NormalizeAngle(angle float64) float64 {
	a := math.Mod(angle+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	a -= math.Pi
	// Mod places an exact odd multiple of π at -π; the range is open there.
	if a <= -math.Pi {
		return math.Pi
	}
	return a
}

// AngleDistance returns the signed shortest rotation from one heading to
// another, in (-π, π]. Positive is counter-clockwise.
func AngleDistance(from, to float64) float64 {
	return NormalizeAngle(to - from)
}
