package quarkgl

// Material is a minimal surface description.
type Material struct {
	BaseColor Color
	Opacity   uint8 // 0..255. 255 means opaque.

	// Specular is the strength of the highlight, 0..1. Glossier surfaces
	// use a higher Shininess exponent.
	Specular  Scalar
	Shininess Scalar
}

// LightMode defines minimal lighting options.
type LightMode uint8

const (
	LightOff LightMode = iota
	LightAmbientDirectional
)

// Light is a minimal light setup.
type Light struct {
	Mode      LightMode
	Ambient   Scalar // 0..1
	Dir       Vec3   // direction *towards* the scene
	DirAmount Scalar // 0..1
}

// LightFrom returns a directional light shining from pos towards the origin.
func LightFrom(pos Vec3, ambient, amount Scalar) Light {
	return Light{
		Mode:      LightAmbientDirectional,
		Ambient:   ambient,
		Dir:       Normalize(pos.Mul(-1)),
		DirAmount: amount,
	}
}

// Camera is a perspective camera looking from Position at Target.
type Camera struct {
	Position Vec3
	Target   Vec3
	Up       Vec3

	FOVYRad Scalar
	Near    Scalar
	Far     Scalar
}

// View returns the camera view matrix.
func (c Camera) View() Mat4 {
	up := c.Up
	if up == (Vec3{}) {
		up = V3(0, 1, 0)
	}
	return Mat4LookAt(c.Position, c.Target, up)
}

// Projection returns the projection matrix for a target aspect.
func (c Camera) Projection(aspect Scalar) Mat4 {
	fov := c.FOVYRad
	if fov == 0 {
		fov = 1
	}
	return Mat4Perspective(fov, aspect, c.Near, c.Far)
}

// Project maps a world-space point to target pixel coordinates. ok is false
// when the point is behind the camera.
func (s *Scene) Project(t Target, p Vec3) (x, y int, ok bool) {
	if s == nil || t == nil {
		return 0, 0, false
	}
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}
	mvp := Mat4Mul(s.Camera.Projection(targetAspect(t, w, h)), s.Camera.View())
	clip := Mat4MulV4(mvp, Vec4{X: p.X, Y: p.Y, Z: p.Z, W: 1})
	if clip.W <= 0 {
		return 0, 0, false
	}
	ndc, ok := clipToNDC(clip)
	if !ok {
		return 0, 0, false
	}
	x, y = ndcToScreen(ndc, w, h)
	return x, y, true
}

// Vertex is a mesh vertex.
type Vertex struct {
	Pos    Vec3
	Normal Vec3
	Color  Color
}

// Mesh is a triangle mesh with an object transform.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint16 // triangle list

	Transform Mat4
	Material  Material
}

// Scene is a collection of meshes seen by one camera under one light.
type Scene struct {
	Camera Camera
	Light  Light

	meshes []Mesh
}

// CreateScene returns a scene with room for capacity meshes before it
// reallocates.
func CreateScene(capacity int) *Scene {
	return &Scene{
		Camera: Camera{
			Position: V3(0, 0, 3),
			Up:       V3(0, 1, 0),
			FOVYRad:  1,
			Near:     0.05,
			Far:      100,
		},
		Light: Light{
			Mode:      LightAmbientDirectional,
			Ambient:   0.25,
			Dir:       Normalize(V3(1, 1, 1)),
			DirAmount: 0.75,
		},
		meshes: make([]Mesh, 0, max(capacity, 0)),
	}
}

// AddMesh adds m and returns its id. A zero transform becomes identity and
// a zero material becomes opaque light grey.
func (s *Scene) AddMesh(m Mesh) int {
	if m.Transform == (Mat4{}) {
		m.Transform = Mat4Identity()
	}
	if m.Material.Opacity == 0 {
		m.Material.Opacity = 0xFF
	}
	if m.Material.BaseColor == (Color{}) {
		m.Material.BaseColor = RGB(0xCC, 0xCC, 0xCC)
	}
	s.meshes = append(s.meshes, m)
	return len(s.meshes) - 1
}

func (s *Scene) mesh(id int) *Mesh {
	if s == nil || id < 0 || id >= len(s.meshes) {
		return nil
	}
	return &s.meshes[id]
}

// UpdateMeshTransform replaces the object transform of mesh id.
func (s *Scene) UpdateMeshTransform(id int, m Mat4) {
	if mp := s.mesh(id); mp != nil {
		mp.Transform = m
	}
}

// SetMeshMaterial replaces the material of mesh id.
func (s *Scene) SetMeshMaterial(id int, m Material) {
	if mp := s.mesh(id); mp != nil {
		if m.Opacity == 0 {
			m.Opacity = 0xFF
		}
		mp.Material = m
	}
}

// MeshMaterial returns the material of mesh id.
func (s *Scene) MeshMaterial(id int) (Material, bool) {
	if mp := s.mesh(id); mp != nil {
		return mp.Material, true
	}
	return Material{}, false
}
