// Package trajectory owns the numeric sampling layer of the planner.
//
// Responsibilities: angle normalisation, scalar and shortest-arc
// interpolation between time-stamped trajectory points, curvature and
// curvature rate from positional derivatives, and rigid pose transforms.
// Key types: PathPoint, TrajectoryPoint, Trajectory, Pose.
//
// Every function here is pure and safe for concurrent use on independent
// inputs. Nothing in this package logs.
//
// Dependency rule: trajectory is a leaf. It must not import the
// behaviour package or any transport code.
package trajectory
