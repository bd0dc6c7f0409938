package quarkgl

// Color is an RGBA color in 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color     { return Color{R: r, G: g, B: b, A: 0xFF} }
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

// MulScalar scales the color channels by s, clamped to 0..1.
func (c Color) MulScalar(s Scalar) Color {
	t := uint32(Clamp01(s) * 255)
	mul := func(ch uint8) uint8 {
		return uint8((uint32(ch) * t) / 255)
	}
	return Color{R: mul(c.R), G: mul(c.G), B: mul(c.B), A: c.A}
}

// AddScalar brightens every channel by s*255, saturating.
func (c Color) AddScalar(s Scalar) Color {
	d := uint32(Clamp01(s) * 255)
	add := func(ch uint8) uint8 {
		v := uint32(ch) + d
		if v > 0xFF {
			v = 0xFF
		}
		return uint8(v)
	}
	return Color{R: add(c.R), G: add(c.G), B: add(c.B), A: c.A}
}

// Luma returns the perceived brightness in 0..1.
func (c Color) Luma() Scalar {
	return (0.2126*Scalar(c.R) + 0.7152*Scalar(c.G) + 0.0722*Scalar(c.B)) / 255
}

