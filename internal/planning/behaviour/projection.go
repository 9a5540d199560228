package behaviour

import (
	"math"

	"github.com/banshee-data/motion.planner/internal/planning/trajectory"
	"gonum.org/v1/gonum/spatial/r2"
)

// Frenet is a position relative to a reference line: S is arc length
// along the line, L the signed lateral offset (positive = left).
type Frenet struct {
	S float64
	L float64
}

// Project returns the Frenet coordinates of p on line. Arc length is
// measured geometrically from the first point, ignoring the points' own
// S values. ok is false when the line has fewer than two distinct points.
func Project(line ReferenceLine, p r2.Vec) (f Frenet, ok bool) {
	pts := line.Points
	best := math.Inf(1)
	travelled := 0.0

	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i].XY(), pts[i+1].XY()
		seg := r2.Sub(b, a)
		segLen := r2.Norm(seg)
		if segLen == 0 {
			continue
		}

		u := r2.Dot(r2.Sub(p, a), seg) / (segLen * segLen)
		u = math.Max(0, math.Min(1, u))
		closest := r2.Add(a, r2.Scale(u, seg))
		dist := r2.Norm(r2.Sub(p, closest))

		if dist < best {
			best = dist
			side := trajectory.CrossProduct(a, b, p)
			l := dist
			if side < 0 {
				l = -dist
			}
			f = Frenet{S: travelled + u*segLen, L: l}
			ok = true
		}
		travelled += segLen
	}
	return f, ok
}

// Length returns the geometric length of line.
func (line ReferenceLine) Length() float64 {
	total := 0.0
	for i := 0; i+1 < len(line.Points); i++ {
		total += r2.Norm(r2.Sub(line.Points[i+1].XY(), line.Points[i].XY()))
	}
	return total
}
