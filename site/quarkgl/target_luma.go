package quarkgl

// LumaRamp orders characters from darkest to brightest.
const LumaRamp = " .,-~:;=!*#$@"

// LumaTarget renders into a grid of character cells, one brightness step
// per cell. It is meant for terminals, where a cell is about twice as tall
// as it is wide.
type LumaTarget struct {
	W, H int

	// Aspect is cell width divided by cell height. Zero means 0.5.
	Aspect Scalar

	cells []byte
}

// NewLumaTarget allocates a w×h cell grid.
func NewLumaTarget(w, h int) *LumaTarget {
	t := &LumaTarget{}
	t.Resize(w, h)
	return t
}

// Resize changes the grid size, reusing storage when possible.
func (t *LumaTarget) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	t.W, t.H = w, h
	if cap(t.cells) < w*h {
		t.cells = make([]byte, w*h)
	} else {
		t.cells = t.cells[:w*h]
	}
}

func (t *LumaTarget) Size() (w, h int) { return t.W, t.H }

func (t *LumaTarget) PixelAspect() Scalar {
	if t.Aspect <= 0 {
		return 0.5
	}
	return t.Aspect
}

func (t *LumaTarget) Clear(c Color) {
	ch := lumaChar(c)
	for i := range t.cells {
		t.cells[i] = ch
	}
}

func (t *LumaTarget) SetPixel(x, y int, c Color) {
	if x < 0 || y < 0 || x >= t.W || y >= t.H {
		return
	}
	t.cells[y*t.W+x] = lumaChar(c)
}

// Row returns row y as text. The slice aliases internal storage.
func (t *LumaTarget) Row(y int) []byte {
	if y < 0 || y >= t.H {
		return nil
	}
	return t.cells[y*t.W : (y+1)*t.W]
}

func lumaChar(c Color) byte {
	l := Clamp01(c.Luma())
	i := int(l * Scalar(len(LumaRamp)-1))
	if i < 0 {
		i = 0
	}
	if i >= len(LumaRamp) {
		i = len(LumaRamp) - 1
	}
	return LumaRamp[i]
}
