package trajectory

// PathPoint is a geometric sample along a path.
// Theta is kept normalised to (-π, π].
type PathPoint struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	S      float64 `json:"s"`      // arc length, m
	Theta  float64 `json:"theta"`  // heading, rad
	Kappa  float64 `json:"kappa"`  // curvature, 1/m
	DKappa float64 `json:"dkappa"` // curvature rate, 1/m/s
}

// TrajectoryPoint is a PathPoint with its time-parameterised motion state.
type TrajectoryPoint struct {
	PathPoint    PathPoint `json:"path_point"`
	RelativeTime float64   `json:"relative_time"` // s
	Vel          float64   `json:"vel"`           // m/s
	Acc          float64   `json:"acc"`           // m/s²
	Jerk         float64   `json:"jerk"`          // m/s³
	SteerAngle   float64   `json:"steer_angle"`   // rad
}

// Trajectory is an ordered sequence of samples, ascending by RelativeTime.
type Trajectory []TrajectoryPoint
