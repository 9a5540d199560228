package trajectory

import "math"

// DefaultTimeEpsilon is the interval (seconds) at or below which two
// sample times are treated as the same instant.
const DefaultTimeEpsilon = 1e-6

// Interpolator evaluates motion state between two samples. Epsilon is the
// degenerate-interval threshold; tune it when time is not in seconds.
type Interpolator struct {
	Epsilon float64
}

// DefaultInterpolator uses DefaultTimeEpsilon.
var DefaultInterpolator = Interpolator{Epsilon: DefaultTimeEpsilon}

// NewInterpolator returns an Interpolator with the given epsilon.
// Non-positive values fall back to DefaultTimeEpsilon.
func NewInterpolator(epsilon float64) Interpolator {
	if epsilon <= 0 {
		epsilon = DefaultTimeEpsilon
	}
	return Interpolator{Epsilon: epsilon}
}

func (in Interpolator) degenerate(t0, t1 float64) bool {
	return math.Abs(t1-t0) <= in.Epsilon
}

// Lerp linearly interpolates x sampled at t0 and t1, evaluated at t.
// A zero-duration segment holds x0. t is not clamped to [t0, t1].
func (in Interpolator) Lerp(x0, t0, x1, t1, t float64) float64 {
	if in.degenerate(t0, t1) {
		return x0
	}
	ratio := (t - t0) / (t1 - t0)
	return x0 + ratio*(x1-x0)
}

// Slerp interpolates an angle along the shorter arc between a0 and a1.
// A zero-duration segment returns NormalizeAngle(a0).
func (in Interpolator) Slerp(a0, t0, a1, t1, t float64) float64 {
	if in.degenerate(t0, t1) {
		return NormalizeAngle(a0)
	}
	a0n := NormalizeAngle(a0)
	a1n := NormalizeAngle(a1)
	d := a1n - a0n
	if d > math.Pi {
		d -= 2 * math.Pi
	} else if d < -math.Pi {
		d += 2 * math.Pi
	}
	r := (t - t0) / (t1 - t0)
	return NormalizeAngle(a0n + d*r)
}

// InterpolateTrajectoryPoint builds the sample at time between p0 and p1.
// Heading is interpolated on the circle; every other field linearly.
// RelativeTime of the result is set to time.
func (in Interpolator) InterpolateTrajectoryPoint(p0, p1 TrajectoryPoint, time float64) TrajectoryPoint {
	t0 := p0.RelativeTime
	t1 := p1.RelativeTime
	lerp := func(a, b float64) float64 { return in.Lerp(a, t0, b, t1, time) }

	return TrajectoryPoint{
		RelativeTime: time,
		Vel:          lerp(p0.Vel, p1.Vel),
		Acc:          lerp(p0.Acc, p1.Acc),
		Jerk:         lerp(p0.Jerk, p1.Jerk),
		SteerAngle:   lerp(p0.SteerAngle, p1.SteerAngle),
		PathPoint: PathPoint{
			X:      lerp(p0.PathPoint.X, p1.PathPoint.X),
			Y:      lerp(p0.PathPoint.Y, p1.PathPoint.Y),
			S:      lerp(p0.PathPoint.S, p1.PathPoint.S),
			Theta:  in.Slerp(p0.PathPoint.Theta, t0, p1.PathPoint.Theta, t1, time),
			Kappa:  lerp(p0.PathPoint.Kappa, p1.PathPoint.Kappa),
			DKappa: lerp(p0.PathPoint.DKappa, p1.PathPoint.DKappa),
		},
	}
}

// Lerp is DefaultInterpolator.Lerp.
func Lerp(x0, t0, x1, t1, t float64) float64 {
	return DefaultInterpolator.Lerp(x0, t0, x1, t1, t)
}

// Slerp is DefaultInterpolator.Slerp.
func Slerp(a0, t0, a1, t1, t float64) float64 {
	return DefaultInterpolator.Slerp(a0, t0, a1, t1, t)
}

// InterpolateTrajectoryPoint is DefaultInterpolator.InterpolateTrajectoryPoint.
func InterpolateTrajectoryPoint(p0, p1 TrajectoryPoint, time float64) TrajectoryPoint {
	return DefaultInterpolator.InterpolateTrajectoryPoint(p0, p1, time)
}
