package geom

import "math"

// Euler is a rotation expressed as angles about X, then Y, then Z.
type Euler struct {
	X, Y, Z float64
}

// LerpEuler interpolates each angle independently.
func LerpEuler(a, b Euler, t float64) Euler {
	return Euler{
		X: Lerp(a.X, b.X, t),
		Y: Lerp(a.Y, b.Y, t),
		Z: Lerp(a.Z, b.Z, t),
	}
}

// Quat is a unit quaternion.
type Quat struct {
	X, Y, Z, W float64
}

// QuatIdentity is the rotation that leaves vectors unchanged.
var QuatIdentity = Quat{W: 1}

// QuatFromEuler converts an XYZ-ordered Euler rotation.
func QuatFromEuler(e Euler) Quat {
	s1, c1 := math.Sincos(e.X / 2)
	s2, c2 := math.Sincos(e.Y / 2)
	s3, c3 := math.Sincos(e.Z / 2)
	return Quat{
		X: s1*c2*c3 + c1*s2*s3,
		Y: c1*s2*c3 - s1*c2*s3,
		Z: c1*c2*s3 + s1*s2*c3,
		W: c1*c2*c3 - s1*s2*s3,
	}
}

// Rotate applies q to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{X: q.X, Y: q.Y, Z: q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// Mat4 is a column-major 4x4 affine transform.
type Mat4 [16]float64

// Identity returns the identity transform.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Compose builds translation * rotation * scale.
func Compose(pos Vec3, rot Quat, scale Vec3) Mat4 {
	x2, y2, z2 := rot.X+rot.X, rot.Y+rot.Y, rot.Z+rot.Z
	xx, xy, xz := rot.X*x2, rot.X*y2, rot.X*z2
	yy, yz, zz := rot.Y*y2, rot.Y*z2, rot.Z*z2
	wx, wy, wz := rot.W*x2, rot.W*y2, rot.W*z2

	return Mat4{
		(1 - (yy + zz)) * scale.X, (xy + wz) * scale.X, (xz - wy) * scale.X, 0,
		(xy - wz) * scale.Y, (1 - (xx + zz)) * scale.Y, (yz + wx) * scale.Y, 0,
		(xz + wy) * scale.Z, (yz - wx) * scale.Z, (1 - (xx + yy)) * scale.Z, 0,
		pos.X, pos.Y, pos.Z, 1,
	}
}

// Apply transforms the point v.
func (m Mat4) Apply(v Vec3) Vec3 {
	return Vec3{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12],
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13],
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14],
	}
}

// Translation returns the translation column.
func (m Mat4) Translation() Vec3 {
	return Vec3{X: m[12], Y: m[13], Z: m[14]}
}

// MaxScale returns the largest axis scale encoded in m.
func (m Mat4) MaxScale() float64 {
	sx := Vec3{X: m[0], Y: m[1], Z: m[2]}.Length()
	sy := Vec3{X: m[4], Y: m[5], Z: m[6]}.Length()
	sz := Vec3{X: m[8], Y: m[9], Z: m[10]}.Length()
	return math.Max(sx, math.Max(sy, sz))
}
