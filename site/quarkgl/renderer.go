package quarkgl

import (
	"math"

	"golang.org/x/sync/errgroup"
)

// Renderer is a fixed-pipeline software renderer.
//
// Create it once and reuse it to avoid allocations.
type Renderer struct {
	Mode       RenderMode
	Depth      bool
	ClearColor Color

	workers  int
	depthBuf []float32
	tris     []screenTri
}

// screenTri is a projected triangle ready for rasterization.
type screenTri struct {
	x0, y0, x1, y1, x2, y2 int
	z0, z1, z2             float32
	c0, c1, c2             Color
	flat                   Color
}

// NewRenderer creates a renderer for a given maximum target size.
//
// If enableDepth is true, a depth buffer of size w*h is allocated.
func NewRenderer(w, h int, enableDepth bool) *Renderer {
	r := &Renderer{
		Mode:       RenderSolidFlat,
		Depth:      enableDepth,
		ClearColor: RGB(0, 0, 0),
		workers:    1,
	}
	if enableDepth && w > 0 && h > 0 {
		r.depthBuf = make([]float32, w*h)
	}
	return r
}

// SetWorkers sets how many horizontal bands are rasterized in parallel.
func (r *Renderer) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	r.workers = n
}

func (r *Renderer) EnableDepth(on bool, w, h int) {
	r.Depth = on
	if !on {
		r.depthBuf = nil
		return
	}
	if w <= 0 || h <= 0 {
		r.depthBuf = nil
		return
	}
	if cap(r.depthBuf) < w*h {
		r.depthBuf = make([]float32, w*h)
	} else {
		r.depthBuf = r.depthBuf[:w*h]
	}
}

func (r *Renderer) clearDepth() {
	for i := range r.depthBuf {
		r.depthBuf[i] = 1e9
	}
}

// Render renders a scene into the target.
func (r *Renderer) Render(t Target, s *Scene) {
	if r == nil || t == nil || s == nil {
		return
	}
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return
	}
	t.Clear(r.ClearColor)

	if r.Depth {
		r.EnableDepth(true, w, h)
		r.clearDepth()
	}

	aspect := targetAspect(t, w, h)
	view := s.Camera.View()
	proj := s.Camera.Projection(aspect)

	r.tris = r.tris[:0]
	for i := range s.meshes {
		r.projectMesh(w, h, proj, view, s.Camera.Position, s.meshes[i], s.Light)
	}

	if r.Mode == RenderWireframe {
		for i := range r.tris {
			tri := &r.tris[i]
			drawLine(t, tri.x0, tri.y0, tri.x1, tri.y1, tri.flat)
			drawLine(t, tri.x1, tri.y1, tri.x2, tri.y2, tri.flat)
			drawLine(t, tri.x2, tri.y2, tri.x0, tri.y0, tri.flat)
		}
		return
	}

	bands := r.workers
	if bands > h {
		bands = h
	}
	if bands <= 1 {
		r.rasterBand(t, w, 0, h)
		return
	}

	var g errgroup.Group
	step := (h + bands - 1) / bands
	for y0 := 0; y0 < h; y0 += step {
		y1 := y0 + step
		if y1 > h {
			y1 = h
		}
		lo, hi := y0, y1
		g.Go(func() error {
			r.rasterBand(t, w, lo, hi)
			return nil
		})
	}
	_ = g.Wait()
}

func (r *Renderer) projectMesh(w, h int, proj, view Mat4, eye Vec3, m Mesh, light Light) {
	if len(m.Vertices) == 0 || len(m.Indices) < 3 {
		return
	}
	if m.Transform == (Mat4{}) {
		m.Transform = Mat4Identity()
	}

	mvp := Mat4Mul(proj, Mat4Mul(view, m.Transform))

	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0 := int(m.Indices[i+0])
		i1 := int(m.Indices[i+1])
		i2 := int(m.Indices[i+2])
		if i0 >= len(m.Vertices) || i1 >= len(m.Vertices) || i2 >= len(m.Vertices) {
			continue
		}

		v0 := m.Vertices[i0]
		v1 := m.Vertices[i1]
		v2 := m.Vertices[i2]

		p0 := Mat4MulV4(mvp, Vec4{X: v0.Pos.X, Y: v0.Pos.Y, Z: v0.Pos.Z, W: 1})
		p1 := Mat4MulV4(mvp, Vec4{X: v1.Pos.X, Y: v1.Pos.Y, Z: v1.Pos.Z, W: 1})
		p2 := Mat4MulV4(mvp, Vec4{X: v2.Pos.X, Y: v2.Pos.Y, Z: v2.Pos.Z, W: 1})

		// Trivial clip: drop triangles touching or crossing the camera plane.
		if p0.W <= 0 || p1.W <= 0 || p2.W <= 0 {
			continue
		}

		ndc0, ok0 := clipToNDC(p0)
		ndc1, ok1 := clipToNDC(p1)
		ndc2, ok2 := clipToNDC(p2)
		if !ok0 || !ok1 || !ok2 {
			continue
		}

		tri := screenTri{z0: ndc0.Z, z1: ndc1.Z, z2: ndc2.Z, c0: v0.Color, c1: v1.Color, c2: v2.Color}
		tri.x0, tri.y0 = ndcToScreen(ndc0, w, h)
		tri.x1, tri.y1 = ndcToScreen(ndc1, w, h)
		tri.x2, tri.y2 = ndcToScreen(ndc2, w, h)

		tri.flat = m.Material.BaseColor
		if light.Mode == LightAmbientDirectional {
			a := TransformPoint(m.Transform, v0.Pos)
			b := TransformPoint(m.Transform, v1.Pos)
			c := TransformPoint(m.Transform, v2.Pos)
			n := triangleNormal(a, b, c)
			center := a.Add(b).Add(c).Mul(1.0 / 3)
			tri.flat = shade(light, m.Material, n, Normalize(eye.Sub(center)))
		}
		r.tris = append(r.tris, tri)
	}
}

// rasterBand fills every triangle clipped to rows [y0, y1).
func (r *Renderer) rasterBand(t Target, w, y0, y1 int) {
	for i := range r.tris {
		tri := &r.tris[i]
		if r.Mode == RenderSolidVertexColor {
			r.fillTriangle(t, w, y0, y1, tri, true)
		} else {
			r.fillTriangle(t, w, y0, y1, tri, false)
		}
	}
}

type ndcPoint struct {
	X, Y, Z float32
}

func clipToNDC(p Vec4) (ndcPoint, bool) {
	if p.W == 0 {
		return ndcPoint{}, false
	}
	invW := 1.0 / p.W
	return ndcPoint{
		X: p.X * invW,
		Y: p.Y * invW,
		Z: p.Z * invW,
	}, true
}

func ndcToScreen(p ndcPoint, w, h int) (x, y int) {
	sx := (p.X*0.5 + 0.5) * float32(w-1)
	sy := (1 - (p.Y*0.5 + 0.5)) * float32(h-1)
	return int(sx + 0.5), int(sy + 0.5)
}

func triangleNormal(a, b, c Vec3) Vec3 {
	return Normalize(Cross(b.Sub(a), c.Sub(a)))
}

// shade lights a face with normal n seen along toEye. Faces are two-sided.
func shade(l Light, mat Material, n, toEye Vec3) Color {
	ld := Normalize(l.Dir)
	if Dot(n, toEye) < 0 {
		n = n.Mul(-1)
	}
	amb := Clamp01(l.Ambient)
	if ld == (Vec3{}) {
		return mat.BaseColor.MulScalar(amb)
	}
	toLight := ld.Mul(-1)
	d := Dot(n, toLight)
	if d < 0 {
		d = 0
	}
	c := mat.BaseColor.MulScalar(Clamp01(amb + d*Clamp01(l.DirAmount)))
	if mat.Specular <= 0 || d == 0 {
		return c
	}
	half := Normalize(toLight.Add(toEye))
	sh := mat.Shininess
	if sh <= 0 {
		sh = 16
	}
	nh := Dot(n, half)
	if nh <= 0 {
		return c
	}
	spec := Scalar(math.Pow(float64(nh), float64(sh))) * Clamp01(mat.Specular)
	return c.AddScalar(spec)
}

func (r *Renderer) depthTest(w int, x, y int, z float32) bool {
	if !r.Depth || r.depthBuf == nil {
		return true
	}
	if x < 0 || y < 0 || x >= w {
		return false
	}
	idx := y*w + x
	if idx >= len(r.depthBuf) {
		return false
	}
	// NDC z is typically in [-1,1]. Map to [0,1].
	d := z*0.5 + 0.5
	if d < 0 {
		d = 0
	}
	if d > 1 {
		d = 1
	}
	if d >= r.depthBuf[idx] {
		return false
	}
	r.depthBuf[idx] = d
	return true
}

func drawLine(t Target, x0, y0, x1, y1 int, c Color) {
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		t.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// fillTriangle rasterizes tri within rows [bandY0, bandY1). Either winding
// is accepted.
func (r *Renderer) fillTriangle(t Target, w, bandY0, bandY1 int, tri *screenTri, vertexColor bool) {
	minX, maxX := min3(tri.x0, tri.x1, tri.x2), max3(tri.x0, tri.x1, tri.x2)
	minY, maxY := min3(tri.y0, tri.y1, tri.y2), max3(tri.y0, tri.y1, tri.y2)
	if minX < 0 {
		minX = 0
	}
	if minY < bandY0 {
		minY = bandY0
	}
	if maxX >= w {
		maxX = w - 1
	}
	if maxY >= bandY1 {
		maxY = bandY1 - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	area := edgeFn(tri.x0, tri.y0, tri.x1, tri.y1, tri.x2, tri.y2)
	if area == 0 {
		return
	}
	sign := 1
	if area < 0 {
		sign = -1
	}
	invArea := 1.0 / float32(area)

	r0, g0, b0 := float32(tri.c0.R), float32(tri.c0.G), float32(tri.c0.B)
	r1, g1, b1 := float32(tri.c1.R), float32(tri.c1.G), float32(tri.c1.B)
	r2, g2, b2 := float32(tri.c2.R), float32(tri.c2.G), float32(tri.c2.B)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			w0 := edgeFn(tri.x1, tri.y1, tri.x2, tri.y2, x, y)
			w1 := edgeFn(tri.x2, tri.y2, tri.x0, tri.y0, x, y)
			w2 := edgeFn(tri.x0, tri.y0, tri.x1, tri.y1, x, y)
			if (w0*sign | w1*sign | w2*sign) < 0 {
				continue
			}
			a0 := float32(w0) * invArea
			a1 := float32(w1) * invArea
			a2 := float32(w2) * invArea
			z := a0*tri.z0 + a1*tri.z1 + a2*tri.z2
			if !r.depthTest(w, x, y, z) {
				continue
			}
			if !vertexColor {
				t.SetPixel(x, y, tri.flat)
				continue
			}
			rr := uint8(clampF32(a0*r0+a1*r1+a2*r2, 0, 255))
			gg := uint8(clampF32(a0*g0+a1*g1+a2*g2, 0, 255))
			bb := uint8(clampF32(a0*b0+a1*b1+a2*b2, 0, 255))
			t.SetPixel(x, y, Color{R: rr, G: gg, B: bb, A: 0xFF})
		}
	}
}

func edgeFn(x0, y0, x1, y1, x, y int) int {
	return (x-x0)*(y1-y0) - (y-y0)*(x1-x0)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func min3(a, b, c int) int {
	if a > b {
		a = b
	}
	if a > c {
		a = c
	}
	return a
}

func max3(a, b, c int) int {
	if a < b {
		a = b
	}
	if a < c {
		a = c
	}
	return a
}

func clampF32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
