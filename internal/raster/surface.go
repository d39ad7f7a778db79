package raster

// Surface is a view over a straight-alpha RGBA pixel buffer,
// 4 bytes per pixel, row-major.
type Surface struct {
	Pix    []uint8
	Width  int
	Height int
}

// Color is a straight-alpha color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// blend composites c over the pixel at (x, y) with the given coverage
// (source-over, straight alpha). Callers guarantee x and y are in
// bounds.
func blend(s Surface, x, y int, c Color, cov float64) {
	a := c.A * cov
	if a <= 0 {
		return
	}
	if a > 1 {
		a = 1
	}

	i := (y*s.Width + x) * 4
	da := float64(s.Pix[i+3]) / 255

	outA := a + da*(1-a)
	if outA <= 0 {
		s.Pix[i+0] = 0
		s.Pix[i+1] = 0
		s.Pix[i+2] = 0
		s.Pix[i+3] = 0
		return
	}

	dr := float64(s.Pix[i+0]) / 255
	dg := float64(s.Pix[i+1]) / 255
	db := float64(s.Pix[i+2]) / 255

	s.Pix[i+0] = clampUint8((c.R*a + dr*da*(1-a)) / outA * 255)
	s.Pix[i+1] = clampUint8((c.G*a + dg*da*(1-a)) / outA * 255)
	s.Pix[i+2] = clampUint8((c.B*a + db*da*(1-a)) / outA * 255)
	s.Pix[i+3] = clampUint8(outA * 255)
}

// clampUint8 clamps a float64 to [0, 255] and converts to uint8,
// rounding to nearest.
func clampUint8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// clampBBox converts a float bounding box to integer pixel bounds
// clamped to the surface. The returned ranges are half-open.
func clampBBox(s Surface, x0, y0, x1, y1 float64) (minX, minY, maxX, maxY int) {
	minX = int(x0)
	if x0 < 0 {
		minX = 0
	}
	minY = int(y0)
	if y0 < 0 {
		minY = 0
	}
	maxX = int(x1) + 1
	if maxX > s.Width {
		maxX = s.Width
	}
	maxY = int(y1) + 1
	if maxY > s.Height {
		maxY = s.Height
	}
	return minX, minY, maxX, maxY
}
