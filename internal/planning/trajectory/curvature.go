package trajectory

import (
	"errors"
	"math"
)

// DefaultSpeedEpsilon is the speed (in derivative units) below which the
// checked curvature functions refuse to evaluate.
const DefaultSpeedEpsilon = 1e-9

// ErrZeroSpeed is returned by the checked curvature functions when the
// first derivative vanishes and curvature is undefined.
var ErrZeroSpeed = errors.New("trajectory: curvature undefined at zero speed")

// Curvature returns κ = (dx·ddy − dy·ddx) / (dx² + dy²)^(3/2).
//
// Precondition: (dx, dy) ≠ (0, 0). At zero speed the result is NaN or
// ±Inf and must be discarded; use CheckedCurvature for an error instead.
func Curvature(dx, dy, ddx, ddy float64) float64 {
	u := dx*ddy - dy*ddx
	v := dx*dx + dy*dy
	return u / (v * math.Sqrt(v))
}

// CurvatureRate returns dκ/ds = (a·b − 3·c·d) / b^(5/2), where
// a = dx·dddy − dy·dddx, b = dx² + dy², c = dx·ddy − dy·ddx and
// d = dx·ddx + dy·ddy.
//
// Same zero-speed precondition as Curvature.
func CurvatureRate(dx, dy, ddx, ddy, dddx, dddy float64) float64 {
	a := dx*dddy - dy*dddx
	b := dx*dx + dy*dy
	c := dx*ddy - dy*ddx
	d := dx*ddx + dy*ddy
	return (a*b - 3*c*d) / (b * b * math.Sqrt(b))
}

// CheckedCurvature is Curvature with the zero-speed case reported as
// ErrZeroSpeed. speedEps ≤ 0 selects DefaultSpeedEpsilon.
func CheckedCurvature(dx, dy, ddx, ddy, speedEps float64) (float64, error) {
	if belowSpeed(dx, dy, speedEps) {
		return 0, ErrZeroSpeed
	}
	return Curvature(dx, dy, ddx, ddy), nil
}

// CheckedCurvatureRate is CurvatureRate with the zero-speed case reported
// as ErrZeroSpeed.
func CheckedCurvatureRate(dx, dy, ddx, ddy, dddx, dddy, speedEps float64) (float64, error) {
	if belowSpeed(dx, dy, speedEps) {
		return 0, ErrZeroSpeed
	}
	return CurvatureRate(dx, dy, ddx, ddy, dddx, dddy), nil
}

func belowSpeed(dx, dy, eps float64) bool {
	if eps <= 0 {
		eps = DefaultSpeedEpsilon
	}
	return math.Hypot(dx, dy) <= eps
}
