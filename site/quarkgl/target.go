package quarkgl

// Target is a minimal pixel target for software rendering.
//
// Implementations should clip out-of-bounds coordinates. When the renderer
// runs more than one worker, SetPixel is called concurrently for distinct
// rows.
type Target interface {
	Size() (w, h int)
	SetPixel(x, y int, c Color)
	Clear(c Color)
}

// AspectTarget is implemented by targets whose pixels are not square, such
// as terminal cells. PixelAspect is pixel width divided by pixel height.
type AspectTarget interface {
	Target
	PixelAspect() Scalar
}

func targetAspect(t Target, w, h int) Scalar {
	if h == 0 {
		return 1
	}
	a := Scalar(w) / Scalar(h)
	if at, ok := t.(AspectTarget); ok {
		if pa := at.PixelAspect(); pa > 0 {
			a *= pa
		}
	}
	return a
}

// RenderMode selects the rasterization mode.
type RenderMode uint8

const (
	RenderWireframe RenderMode = iota
	RenderSolidFlat
	RenderSolidVertexColor
)
