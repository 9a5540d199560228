// Package plots renders resampled trajectories as time series: PNG
// line plots for offline inspection and an HTML chart page for the
// browser.
package plots

import (
	"fmt"

	"github.com/banshee-data/motion.planner/internal/planning/trajectory"
	"github.com/banshee-data/motion.planner/internal/units"
)

// Series is one quantity of a trajectory sampled against relative time.
type Series struct {
	Name string
	Unit string
	T    []float64
	V    []float64
}

// Units selects the display units for a profile.
type Units struct {
	Speed string // one of units.ValidUnits
	Angle string // one of units.ValidAngleUnits
}

// DefaultUnits is SI throughout.
var DefaultUnits = Units{Speed: units.MPS, Angle: units.Radians}

// Profile extracts heading, curvature, speed and acceleration series
// from tr, converted to u.
func Profile(tr trajectory.Trajectory, u Units) []Series {
	heading := Series{Name: "heading", Unit: u.Angle}
	kappa := Series{Name: "curvature", Unit: "1/m"}
	speed := Series{Name: "speed", Unit: u.Speed}
	acc := Series{Name: "acceleration", Unit: fmt.Sprintf("%s/s", u.Speed)}

	for _, p := range tr {
		t := p.RelativeTime
		heading.add(t, units.ConvertAngle(p.PathPoint.Theta, u.Angle))
		kappa.add(t, p.PathPoint.Kappa)
		speed.add(t, units.ConvertSpeed(p.Vel, u.Speed))
		acc.add(t, units.ConvertAcceleration(p.Acc, u.Speed))
	}
	return []Series{heading, kappa, speed, acc}
}

func (s *Series) add(t, v float64) {
	s.T = append(s.T, t)
	s.V = append(s.V, v)
}

// Label is the axis label, e.g. "speed (mph)".
func (s Series) Label() string {
	if s.Unit == "" {
		return s.Name
	}
	return fmt.Sprintf("%s (%s)", s.Name, s.Unit)
}
