package quarkgl

import "math"

// OrbitController places a camera on a sphere of fixed Radius around
// Target. Callers feed it yaw and pitch deltas.
type OrbitController struct {
	Target Vec3
	Yaw    Scalar
	Pitch  Scalar
	Radius Scalar

	// MaxPitch clamps |Pitch| when non-zero.
	MaxPitch Scalar
}

// Apply moves cam to the controller's orbit position, looking at Target.
func (c *OrbitController) Apply(cam *Camera) {
	if cam == nil {
		return
	}
	r := float64(c.Radius)
	if r == 0 {
		r = 3
	}
	sy, cy := math.Sincos(float64(c.Yaw))
	sp, cp := math.Sincos(float64(c.Pitch))
	offset := V3(Scalar(r*cp*sy), Scalar(-r*sp), Scalar(r*cp*cy))

	cam.Position = c.Target.Add(offset)
	cam.Target = c.Target
	if cam.Up == (Vec3{}) {
		cam.Up = V3(0, 1, 0)
	}
}

// Rotate adds the deltas, clamping pitch to MaxPitch.
func (c *OrbitController) Rotate(deltaYaw, deltaPitch Scalar) {
	c.Yaw += deltaYaw
	c.Pitch += deltaPitch
	if c.MaxPitch > 0 {
		c.Pitch = max(-c.MaxPitch, min(c.Pitch, c.MaxPitch))
	}
}
