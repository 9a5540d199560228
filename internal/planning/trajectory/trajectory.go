package trajectory

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrEmptyTrajectory is returned when an operation needs at least one sample.
	ErrEmptyTrajectory = errors.New("trajectory: no samples")
	// ErrUnordered is returned when relative times decrease.
	ErrUnordered = errors.New("trajectory: relative_time not ascending")
	// ErrNonFinite is returned for a NaN or infinite time or step.
	ErrNonFinite = errors.New("trajectory: non-finite value")
)

// MaxResampleSamples bounds the output of Resample.
const MaxResampleSamples = 1 << 20

// Validate checks that tr is non-empty, ordered by RelativeTime and
// free of NaN/Inf values.
func (tr Trajectory) Validate() error {
	if len(tr) == 0 {
		return ErrEmptyTrajectory
	}
	for i, p := range tr {
		if !p.finite() {
			return fmt.Errorf("sample %d: %w", i, ErrNonFinite)
		}
		if i > 0 && p.RelativeTime < tr[i-1].RelativeTime {
			return fmt.Errorf("sample %d at t=%.6f after t=%.6f: %w",
				i, p.RelativeTime, tr[i-1].RelativeTime, ErrUnordered)
		}
	}
	return nil
}

func (p TrajectoryPoint) finite() bool {
	for _, v := range []float64{
		p.RelativeTime, p.Vel, p.Acc, p.Jerk, p.SteerAngle,
		p.PathPoint.X, p.PathPoint.Y, p.PathPoint.S,
		p.PathPoint.Theta, p.PathPoint.Kappa, p.PathPoint.DKappa,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Duration is the time between the first and last sample.
func (tr Trajectory) Duration() float64 {
	if len(tr) < 2 {
		return 0
	}
	return tr[len(tr)-1].RelativeTime - tr[0].RelativeTime
}

// At evaluates tr at time t using DefaultInterpolator.
func (tr Trajectory) At(t float64) (TrajectoryPoint, error) {
	return DefaultInterpolator.At(tr, t)
}

// At evaluates tr at time t. Times before the first or after the last
// sample return that end sample with RelativeTime set to t.
func (in Interpolator) At(tr Trajectory, t float64) (TrajectoryPoint, error) {
	if len(tr) == 0 {
		return TrajectoryPoint{}, ErrEmptyTrajectory
	}
	if math.IsNaN(t) {
		return TrajectoryPoint{}, fmt.Errorf("evaluate at t=%v: %w", t, ErrNonFinite)
	}
	first, last := tr[0], tr[len(tr)-1]
	if t <= first.RelativeTime {
		first.RelativeTime = t
		return first, nil
	}
	if t >= last.RelativeTime {
		last.RelativeTime = t
		return last, nil
	}

	// First sample strictly after t; t > first so hi ≥ 1.
	hi := sort.Search(len(tr), func(i int) bool { return tr[i].RelativeTime > t })
	return in.InterpolateTrajectoryPoint(tr[hi-1], tr[hi], t), nil
}

// Resample returns samples every dt seconds from the first to the last
// sample time. The last sample is always included.
func (in Interpolator) Resample(tr Trajectory, dt float64) (Trajectory, error) {
	if err := tr.Validate(); err != nil {
		return nil, err
	}
	if math.IsNaN(dt) || math.IsInf(dt, 0) {
		return nil, fmt.Errorf("resample step %v: %w", dt, ErrNonFinite)
	}
	if dt <= in.Epsilon {
		return nil, fmt.Errorf("resample step %.9f must exceed epsilon %.9f", dt, in.Epsilon)
	}

	start := tr[0].RelativeTime
	end := tr[len(tr)-1].RelativeTime
	steps := math.Floor((end - start) / dt)
	if steps >= MaxResampleSamples {
		return nil, fmt.Errorf("resample step %g over %gs gives more than %d samples", dt, end-start, MaxResampleSamples)
	}
	n := int(steps) + 1

	out := make(Trajectory, 0, n+1)
	for i := 0; i < n; i++ {
		p, err := in.At(tr, start+float64(i)*dt)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if end-out[len(out)-1].RelativeTime > in.Epsilon {
		out = append(out, tr[len(tr)-1])
	}
	return out, nil
}
