package trajectory

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
)

// RigidTransformTolerance bounds the determinant and homogeneous-row
// checks in IsRigidTransform.
const RigidTransformTolerance = 0.01

// Vec3 is a point or translation in 3D, metres.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Quaternion is an orientation in (w, x, y, z) order.
type Quaternion struct {
	W float64 `json:"w"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// IdentityQuaternion is the zero rotation.
var IdentityQuaternion = Quaternion{W: 1}

// Number returns q as a gonum quaternion.
func (q Quaternion) Number() quat.Number {
	return quat.Number{Real: q.W, Imag: q.X, Jmag: q.Y, Kmag: q.Z}
}

// Norm returns |q|. Pose orientations are expected to be unit length.
func (q Quaternion) Norm() float64 {
	return quat.Abs(q.Number())
}

// Pose is a rigid transform: rotation by Orientation then translation
// by Position.
type Pose struct {
	Position    Vec3       `json:"position"`
	Orientation Quaternion `json:"orientation"`
}

// IdentityPose leaves every point unchanged.
var IdentityPose = Pose{Orientation: IdentityQuaternion}

// rotationMatrix expands q into a row-major 3x3 rotation. q is not
// renormalised; a non-unit quaternion yields a scaled rotation.
func rotationMatrix(q quat.Number) [9]float64 {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	tx, ty, tz := 2*x, 2*y, 2*z
	twx, twy, twz := tx*w, ty*w, tz*w
	txx, txy, txz := tx*x, ty*x, tz*x
	tyy, tyz, tzz := ty*y, tz*y, tz*z

	return [9]float64{
		1 - (tyy + tzz), txy - twz, txz + twy,
		txy + twz, 1 - (txx + tzz), tyz - twx,
		txz - twy, tyz + twx, 1 - (txx + tyy),
	}
}

// PoseMatrix returns the 4x4 homogeneous matrix for pose.
func PoseMatrix(pose Pose) *mat.Dense {
	r := rotationMatrix(pose.Orientation.Number())
	p := pose.Position
	return mat.NewDense(4, 4, []float64{
		r[0], r[1], r[2], p.X,
		r[3], r[4], r[5], p.Y,
		r[6], r[7], r[8], p.Z,
		0, 0, 0, 1,
	})
}

// Transform applies pose to point. The point is taken as homogeneous
// with w = 1, so no perspective division is needed.
func Transform(pose Pose, point Vec3) Vec3 {
	T := PoseMatrix(pose)
	in := mat.NewVecDense(4, []float64{point.X, point.Y, point.Z, 1})

	var out mat.VecDense
	out.MulVec(T, in)
	return Vec3{X: out.AtVec(0), Y: out.AtVec(1), Z: out.AtVec(2)}
}

// IsRigidTransform checks that T is a 4x4 proper rigid transform:
// the rotation block has determinant ≈ 1 (no reflection or scale)
// and the last row is [0 0 0 1].
func IsRigidTransform(T *mat.Dense) bool {
	if T == nil {
		return false
	}
	if r, c := T.Dims(); r != 4 || c != 4 {
		return false
	}

	rot := T.Slice(0, 3, 0, 3)
	if math.Abs(mat.Det(rot)-1) > RigidTransformTolerance {
		return false
	}

	if T.At(3, 0) != 0 || T.At(3, 1) != 0 || T.At(3, 2) != 0 {
		return false
	}
	return math.Abs(T.At(3, 3)-1) <= RigidTransformTolerance
}
