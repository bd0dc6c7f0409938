// Package scene renders the spinning torus knot behind every section.
//
// The knot's rotation is driven by its own Spinner and never reads the
// navigation state; only its color follows the active section.
package scene

import (
	"t219/site/content"
	"t219/site/quarkgl"
)

// SpinPerFrame is the Y rotation added on every frame, in radians.
const SpinPerFrame = 0.005

// Spinner advances a rotation angle once per frame.
type Spinner struct {
	Angle    float32
	PerFrame float32
}

// NewSpinner returns a spinner at the default speed.
func NewSpinner() *Spinner { return &Spinner{PerFrame: SpinPerFrame} }

// Step advances the angle by n frames.
func (s *Spinner) Step(n int) {
	for i := 0; i < n; i++ {
		s.Angle += s.PerFrame
	}
}

// Config controls mesh density and rasterization.
type Config struct {
	// Tubular and Radial are the knot segment counts. Zero picks 100×16.
	Tubular int
	Radial  int

	Workers   int
	Wireframe bool

	// Mono renders the knot in white so the caller can tint it, as the
	// terminal front-end does.
	Mono bool
}

// Background owns the knot scene and its renderer.
type Background struct {
	cfg Config

	r     *quarkgl.Renderer
	s     *quarkgl.Scene
	mesh  int
	orbit quarkgl.OrbitController

	accent content.Color
	tinted bool
}

// New builds the knot scene.
func New(cfg Config) *Background {
	if cfg.Tubular <= 0 {
		cfg.Tubular = 100
	}
	if cfg.Radial <= 0 {
		cfg.Radial = 16
	}

	r := quarkgl.NewRenderer(0, 0, true)
	r.SetWorkers(cfg.Workers)
	r.ClearColor = quarkgl.RGB(0, 0, 0)
	r.Mode = quarkgl.RenderSolidFlat
	if cfg.Wireframe {
		r.Mode = quarkgl.RenderWireframe
	}

	s := quarkgl.CreateScene(1)
	s.Camera.FOVYRad = 1.309 // 75°
	s.Camera.Near = 0.1
	s.Camera.Far = 100
	s.Light = quarkgl.LightFrom(quarkgl.V3(10, 10, 10), 0.35, 0.75)

	mesh := quarkgl.NewTorusKnotMesh(1, 0.3, cfg.Tubular, cfg.Radial, 2, 3)
	mesh.Material = quarkgl.Material{
		BaseColor: quarkgl.RGB(0xCC, 0xCC, 0xCC),
		Specular:  0.35,
		Shininess: 24,
	}

	b := &Background{
		cfg:  cfg,
		r:    r,
		s:    s,
		mesh: s.AddMesh(mesh),
		orbit: quarkgl.OrbitController{
			Radius:   5,
			MaxPitch: 1.4,
		},
	}
	b.orbit.Apply(&b.s.Camera)
	return b
}

// Wireframe reports whether the knot is drawn as lines.
func (b *Background) Wireframe() bool { return b.r.Mode == quarkgl.RenderWireframe }

// ToggleWireframe switches between solid and wireframe drawing.
func (b *Background) ToggleWireframe() {
	if b.r.Mode == quarkgl.RenderWireframe {
		b.r.Mode = quarkgl.RenderSolidFlat
	} else {
		b.r.Mode = quarkgl.RenderWireframe
	}
}

// Drag orbits the camera by a pointer delta in pixels. Zoom and pan stay
// fixed.
func (b *Background) Drag(dx, dy int) {
	const radPerPx = 0.01
	b.orbit.Rotate(-float32(dx)*radPerPx, -float32(dy)*radPerPx)
	b.orbit.Apply(&b.s.Camera)
}

// Orbit returns the current camera yaw and pitch.
func (b *Background) Orbit() (yaw, pitch float32) { return b.orbit.Yaw, b.orbit.Pitch }

// Render draws the knot rotated by angle and tinted with accent.
func (b *Background) Render(t quarkgl.Target, accent content.Color, angle float32) {
	if !b.tinted || b.accent != accent {
		c := quarkgl.RGB(accent.R, accent.G, accent.B)
		if b.cfg.Mono {
			c = quarkgl.RGB(0xFF, 0xFF, 0xFF)
		}
		if m, ok := b.s.MeshMaterial(b.mesh); ok {
			m.BaseColor = c
			b.s.SetMeshMaterial(b.mesh, m)
		}
		b.accent = accent
		b.tinted = true
	}
	b.s.UpdateMeshTransform(b.mesh, quarkgl.Mat4RotateY(angle))
	b.r.Render(t, b.s)
}

// TitleAnchor returns where the floating title sits on t: the point two
// units above the knot's centre.
func (b *Background) TitleAnchor(t quarkgl.Target) (x, y int, ok bool) {
	return b.s.Project(t, quarkgl.V3(0, 2, 0))
}
