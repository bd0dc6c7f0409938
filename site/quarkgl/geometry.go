package quarkgl

import "math"

// NewTorusKnotMesh builds a (p,q) torus knot: a tube of the given radius
// swept along a curve winding p times around the axis and q times through
// the hole.
func NewTorusKnotMesh(radius, tube float32, tubular, radial, p, q int) Mesh {
	if tubular < 3 {
		tubular = 3
	}
	if radial < 3 {
		radial = 3
	}
	if p == 0 {
		p = 2
	}
	if q == 0 {
		q = 3
	}

	curve := func(u float64) Vec3 {
		qu := float64(q) / float64(p) * u
		cs := math.Cos(qu)
		return V3(
			radius*float32((2+cs)*0.5*math.Cos(u)),
			radius*float32((2+cs)*0.5*math.Sin(u)),
			radius*float32(math.Sin(qu)*0.5),
		)
	}

	verts := make([]Vertex, 0, tubular*radial)
	for i := 0; i < tubular; i++ {
		u := float64(i) / float64(tubular) * float64(p) * 2 * math.Pi
		p1 := curve(u)
		p2 := curve(u + 0.01)

		// Frame along the curve.
		tangent := p2.Sub(p1)
		n := p2.Add(p1)
		b := Normalize(Cross(tangent, n))
		n = Normalize(Cross(b, tangent))

		for j := 0; j < radial; j++ {
			v := float64(j) / float64(radial) * 2 * math.Pi
			cx := -tube * float32(math.Cos(v))
			cy := tube * float32(math.Sin(v))
			off := n.Mul(cx).Add(b.Mul(cy))
			verts = append(verts, Vertex{
				Pos:    p1.Add(off),
				Normal: Normalize(off),
			})
		}
	}
	return Mesh{Vertices: verts, Indices: gridIndices(tubular, radial)}
}

// gridIndices triangulates a closed segU×segV quad grid.
func gridIndices(segU, segV int) []uint16 {
	idx := func(u, v int) uint16 {
		return uint16((u%segU)*segV + v%segV)
	}
	indices := make([]uint16, 0, segU*segV*6)
	for u := 0; u < segU; u++ {
		for v := 0; v < segV; v++ {
			i0 := idx(u, v)
			i1 := idx(u+1, v)
			i2 := idx(u+1, v+1)
			i3 := idx(u, v+1)
			indices = append(indices, i0, i1, i2)
			indices = append(indices, i0, i2, i3)
		}
	}
	return indices
}
