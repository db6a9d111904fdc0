package render

import "math"

type vec3 [3]float64

func (a vec3) add(b vec3) vec3  { return vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]} }
func (a vec3) sub(b vec3) vec3  { return vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }
func (a vec3) scale(s float64) vec3 {
	return vec3{a[0] * s, a[1] * s, a[2] * s}
}

func (a vec3) dot(b vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func (a vec3) cross(b vec3) vec3 {
	return vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func (a vec3) norm() float64 { return math.Sqrt(a.dot(a)) }

func (a vec3) unit() vec3 {
	n := a.norm()
	if n == 0 {
		return vec3{}
	}
	return a.scale(1 / n)
}

// quat is w,x,y,z with w the scalar part, matching the MuJoCo qpos layout
// for free and ball joints.
type quat [4]float64

var quatIdentity = quat{1, 0, 0, 0}

func (q quat) mul(r quat) quat {
	return quat{
		q[0]*r[0] - q[1]*r[1] - q[2]*r[2] - q[3]*r[3],
		q[0]*r[1] + q[1]*r[0] + q[2]*r[3] - q[3]*r[2],
		q[0]*r[2] - q[1]*r[3] + q[2]*r[0] + q[3]*r[1],
		q[0]*r[3] + q[1]*r[2] - q[2]*r[1] + q[3]*r[0],
	}
}

func (q quat) normalize() quat {
	n := math.Sqrt(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])
	if n == 0 {
		return quatIdentity
	}
	return quat{q[0] / n, q[1] / n, q[2] / n, q[3] / n}
}

// rotate applies the quaternion rotation to v.
func (q quat) rotate(v vec3) vec3 {
	u := vec3{q[1], q[2], q[3]}
	s := q[0]
	a := u.scale(2 * u.dot(v))
	b := v.scale(s*s - u.dot(u))
	c := u.cross(v).scale(2 * s)
	return a.add(b).add(c)
}

func quatFromAxisAngle(axis vec3, angle float64) quat {
	axis = axis.unit()
	half := angle / 2
	s := math.Sin(half)
	return quat{math.Cos(half), axis[0] * s, axis[1] * s, axis[2] * s}
}
