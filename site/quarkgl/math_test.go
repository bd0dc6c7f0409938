package quarkgl

import (
	"math"
	"testing"
)

func near(a, b Vec3) bool {
	d := a.Sub(b)
	return Dot(d, d) < 1e-9
}

func TestMat4MulIdentity(t *testing.T) {
	a := Mat4RotateY(0.7)
	if got := Mat4Mul(Mat4Identity(), a); got != a {
		t.Fatalf("identity*a = %v", got)
	}
	if got := Mat4Mul(a, Mat4Identity()); got != a {
		t.Fatalf("a*identity = %v", got)
	}
}

func TestRotateYQuarterTurn(t *testing.T) {
	got := TransformPoint(Mat4RotateY(math.Pi/2), V3(1, 0, 0))
	if !near(got, V3(0, 0, -1)) {
		t.Fatalf("RotateY(pi/2)*(1,0,0) = %+v, want (0,0,-1)", got)
	}
}

func TestRotateYComposes(t *testing.T) {
	m := Mat4Mul(Mat4RotateY(0.25), Mat4RotateY(0.5))
	got := TransformPoint(m, V3(0, 2, 1))
	want := TransformPoint(Mat4RotateY(0.75), V3(0, 2, 1))
	if !near(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := V3(1, 2, 3)
	m := Mat4LookAt(eye, V3(0, 0, 0), V3(0, 1, 0))
	if got := TransformPoint(m, eye); !near(got, Vec3{}) {
		t.Fatalf("eye in view space = %+v, want origin", got)
	}
	fwd := TransformPoint(m, eye.Add(Normalize(eye.Mul(-1))))
	if !near(fwd, V3(0, 0, -1)) {
		t.Fatalf("forward in view space = %+v, want (0,0,-1)", fwd)
	}
}

func TestOrbitApply(t *testing.T) {
	o := OrbitController{Radius: 5, MaxPitch: 1}
	var cam Camera
	o.Apply(&cam)
	if !near(cam.Position, V3(0, 0, 5)) {
		t.Fatalf("position = %+v, want (0,0,5)", cam.Position)
	}
	o.Rotate(math.Pi/2, 3)
	if o.Pitch != 1 {
		t.Fatalf("pitch = %v, want clamp to 1", o.Pitch)
	}
	o.Apply(&cam)
	if l := Len(cam.Position); math.Abs(float64(l-5)) > 1e-4 {
		t.Fatalf("radius = %v, want 5", l)
	}
}
