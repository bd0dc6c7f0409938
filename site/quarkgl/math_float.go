package quarkgl

import "math"

// Scalar is the numeric type of all renderer math. float32 keeps the
// knot cheap on the RP2040.
type Scalar = float32

type Vec3 struct {
	X, Y, Z Scalar
}

type Vec4 struct {
	X, Y, Z, W Scalar
}

// Mat4 is a column-major 4x4 matrix: element (row, col) is m[col*4+row].
type Mat4 [16]Scalar

func V3(x, y, z Scalar) Vec3 { return Vec3{x, y, z} }

func (v Vec3) Add(o Vec3) Vec3   { return V3(v.X+o.X, v.Y+o.Y, v.Z+o.Z) }
func (v Vec3) Sub(o Vec3) Vec3   { return V3(v.X-o.X, v.Y-o.Y, v.Z-o.Z) }
func (v Vec3) Mul(s Scalar) Vec3 { return V3(v.X*s, v.Y*s, v.Z*s) }

func Dot(a, b Vec3) Scalar { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

func Cross(a, b Vec3) Vec3 {
	return V3(a.Y*b.Z-a.Z*b.Y, a.Z*b.X-a.X*b.Z, a.X*b.Y-a.Y*b.X)
}

func Len(v Vec3) Scalar { return Scalar(math.Sqrt(float64(Dot(v, v)))) }

// Normalize returns v scaled to unit length, or zero for a zero vector.
func Normalize(v Vec3) Vec3 {
	if l := Len(v); l != 0 {
		return v.Mul(1 / l)
	}
	return Vec3{}
}

func Clamp01(v Scalar) Scalar { return max(0, min(v, 1)) }

func Mat4Identity() Mat4 {
	var m Mat4
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
	return m
}

// Mat4Mul returns a*b, so b applies first.
func Mat4Mul(a, b Mat4) Mat4 {
	var out Mat4
	for col := range 4 {
		for row := range 4 {
			var sum Scalar
			for k := range 4 {
				sum += a[k*4+row] * b[col*4+k]
			}
			out[col*4+row] = sum
		}
	}
	return out
}

func Mat4MulV4(m Mat4, v Vec4) Vec4 {
	var out [4]Scalar
	in := [4]Scalar{v.X, v.Y, v.Z, v.W}
	for row := range 4 {
		for k := range 4 {
			out[row] += m[k*4+row] * in[k]
		}
	}
	return Vec4{out[0], out[1], out[2], out[3]}
}

// TransformPoint applies m to p with w = 1 and no perspective divide.
func TransformPoint(m Mat4, p Vec3) Vec3 {
	v := Mat4MulV4(m, Vec4{p.X, p.Y, p.Z, 1})
	return V3(v.X, v.Y, v.Z)
}

// Mat4RotateY rotates counter-clockwise about +Y when looking down it.
func Mat4RotateY(rad Scalar) Mat4 {
	s, c := math.Sincos(float64(rad))
	m := Mat4Identity()
	m[0], m[2] = Scalar(c), -Scalar(s)
	m[8], m[10] = Scalar(s), Scalar(c)
	return m
}

// Mat4LookAt builds a right-handed view matrix.
func Mat4LookAt(eye, target, up Vec3) Mat4 {
	f := Normalize(target.Sub(eye))
	s := Normalize(Cross(f, up))
	u := Cross(s, f)

	m := Mat4Identity()
	for i, row := range [3]Vec3{s, u, f.Mul(-1)} {
		m[0*4+i] = row.X
		m[1*4+i] = row.Y
		m[2*4+i] = row.Z
		m[3*4+i] = -Dot(row, eye)
	}
	return m
}

// Mat4Perspective maps the view frustum to clip space with depth in [-1, 1].
func Mat4Perspective(fovYRad, aspect, zNear, zFar Scalar) Mat4 {
	if aspect == 0 {
		aspect = 1
	}
	f := 1 / Scalar(math.Tan(float64(fovYRad)/2))
	nf := 1 / (zNear - zFar)

	var m Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = (zFar + zNear) * nf
	m[11] = -1
	m[14] = 2 * zFar * zNear * nf
	return m
}
