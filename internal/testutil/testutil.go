// Package testutil provides shared test utilities and fixtures.
//
// This package centralises common planning fixtures to reduce code
// duplication across test files.
package testutil

import (
	"math"
	"testing"

	"github.com/banshee-data/motion.planner/internal/planning/trajectory"
)

// AssertAngleNear compares two headings on the circle, so π and -π are
// equal.
func AssertAngleNear(t testing.TB, want, got, tol float64) {
	t.Helper()
	if d := math.Abs(trajectory.AngleDistance(want, got)); d > tol {
		t.Errorf("angle = %.9f, want %.9f (off by %.3g rad)", got, want, d)
	}
}

// StraightPath returns n ≥ 2 evenly spaced points along y = y0 from
// x0 to x1, with arc length and heading filled in.
func StraightPath(y0, x0, x1 float64, n int) []trajectory.PathPoint {
	if n < 2 {
		n = 2
	}
	heading := 0.0
	if x1 < x0 {
		heading = math.Pi
	}
	step := (x1 - x0) / float64(n-1)
	pts := make([]trajectory.PathPoint, n)
	for i := range pts {
		pts[i] = trajectory.PathPoint{
			X:     x0 + float64(i)*step,
			Y:     y0,
			S:     math.Abs(float64(i) * step),
			Theta: heading,
		}
	}
	return pts
}

// ArcPath returns n ≥ 2 points on a counter-clockwise circle of the
// given radius centred at the origin, from angle a0 to a1 (radians).
func ArcPath(radius, a0, a1 float64, n int) []trajectory.PathPoint {
	if n < 2 {
		n = 2
	}
	step := (a1 - a0) / float64(n-1)
	pts := make([]trajectory.PathPoint, n)
	for i := range pts {
		a := a0 + float64(i)*step
		pts[i] = trajectory.PathPoint{
			X:     radius * math.Cos(a),
			Y:     radius * math.Sin(a),
			S:     radius * float64(i) * step,
			Theta: trajectory.NormalizeAngle(a + math.Pi/2),
			Kappa: 1 / radius,
		}
	}
	return pts
}
