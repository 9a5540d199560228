package trajectory

import "gonum.org/v1/gonum/spatial/r2"

// CrossProduct returns the 2D cross product of (p1 − origin) and
// (p2 − origin). Positive means p2 lies counter-clockwise (left) of the
// ray origin→p1; the magnitude is twice the signed triangle area.
func CrossProduct(origin, p1, p2 r2.Vec) float64 {
	return r2.Cross(r2.Sub(p1, origin), r2.Sub(p2, origin))
}

// XY returns the planar position of p.
func (p PathPoint) XY() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}
