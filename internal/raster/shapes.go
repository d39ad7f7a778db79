package raster

import "math"

// FillRect fills the axis-aligned rectangle spanning (x0, y0)-(x1, y1)
// with anti-aliased edges.
func FillRect(s Surface, x0, y0, x1, y1 float64, c Color) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	cx, cy := (x0+x1)/2, (y0+y1)/2
	halfW, halfH := (x1-x0)/2, (y1-y0)/2

	pad := antialiasWidth + 1
	minX, minY, maxX, maxY := clampBBox(s, x0-pad, y0-pad, x1+pad, y1+pad)

	for y := minY; y < maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x < maxX; x++ {
			px := float64(x) + 0.5
			cov := smoothstepCoverage(sdfRect(px, py, cx, cy, halfW, halfH))
			if cov > 0 {
				blend(s, x, y, c, cov)
			}
		}
	}
}

// StrokeRect strokes the outline of the axis-aligned rectangle
// spanning (x0, y0)-(x1, y1), centered on the edge.
func StrokeRect(s Surface, x0, y0, x1, y1, width float64, c Color) {
	if width <= 0 {
		return
	}
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	cx, cy := (x0+x1)/2, (y0+y1)/2
	halfW, halfH := (x1-x0)/2, (y1-y0)/2
	halfStroke := width / 2

	pad := halfStroke + antialiasWidth + 1
	minX, minY, maxX, maxY := clampBBox(s, x0-pad, y0-pad, x1+pad, y1+pad)

	for y := minY; y < maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x < maxX; x++ {
			px := float64(x) + 0.5
			sdf := math.Abs(sdfRect(px, py, cx, cy, halfW, halfH)) - halfStroke
			cov := smoothstepCoverage(sdf)
			if cov > 0 {
				blend(s, x, y, c, cov)
			}
		}
	}
}

// FillEllipse fills the axis-aligned ellipse with center (cx, cy) and
// radii (rx, ry).
func FillEllipse(s Surface, cx, cy, rx, ry float64, c Color) {
	if rx <= 0 || ry <= 0 {
		return
	}
	pad := antialiasWidth + 1
	minX, minY, maxX, maxY := clampBBox(s, cx-rx-pad, cy-ry-pad, cx+rx+pad, cy+ry+pad)

	for y := minY; y < maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x < maxX; x++ {
			px := float64(x) + 0.5
			cov := smoothstepCoverage(sdfEllipse(px, py, cx, cy, rx, ry))
			if cov > 0 {
				blend(s, x, y, c, cov)
			}
		}
	}
}

// StrokeEllipse strokes the outline of the axis-aligned ellipse with
// center (cx, cy) and radii (rx, ry), centered on the edge.
func StrokeEllipse(s Surface, cx, cy, rx, ry, width float64, c Color) {
	if width <= 0 || rx <= 0 || ry <= 0 {
		return
	}
	halfStroke := width / 2
	pad := halfStroke + antialiasWidth + 1
	minX, minY, maxX, maxY := clampBBox(s, cx-rx-pad, cy-ry-pad, cx+rx+pad, cy+ry+pad)

	for y := minY; y < maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x < maxX; x++ {
			px := float64(x) + 0.5
			sdf := math.Abs(sdfEllipse(px, py, cx, cy, rx, ry)) - halfStroke
			cov := smoothstepCoverage(sdf)
			if cov > 0 {
				blend(s, x, y, c, cov)
			}
		}
	}
}

// StrokeSegment strokes the segment (x0, y0)-(x1, y1) with round caps.
func StrokeSegment(s Surface, x0, y0, x1, y1, width float64, c Color) {
	if width <= 0 {
		return
	}
	halfStroke := width / 2
	pad := halfStroke + antialiasWidth + 1
	minX, minY, maxX, maxY := clampBBox(s,
		math.Min(x0, x1)-pad, math.Min(y0, y1)-pad,
		math.Max(x0, x1)+pad, math.Max(y0, y1)+pad)

	for y := minY; y < maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x < maxX; x++ {
			px := float64(x) + 0.5
			sdf := sdfSegment(px, py, x0, y0, x1, y1) - halfStroke
			cov := smoothstepCoverage(sdf)
			if cov > 0 {
				blend(s, x, y, c, cov)
			}
		}
	}
}

// FillTriangle fills the triangle p0-p1-p2 with anti-aliased edges.
// Winding order does not matter.
func FillTriangle(s Surface, x0, y0, x1, y1, x2, y2 float64, c Color) {
	pad := antialiasWidth + 1
	minX, minY, maxX, maxY := clampBBox(s,
		math.Min(x0, math.Min(x1, x2))-pad, math.Min(y0, math.Min(y1, y2))-pad,
		math.Max(x0, math.Max(x1, x2))+pad, math.Max(y0, math.Max(y1, y2))+pad)

	for y := minY; y < maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x < maxX; x++ {
			px := float64(x) + 0.5
			cov := smoothstepCoverage(sdfTriangle(px, py, x0, y0, x1, y1, x2, y2))
			if cov > 0 {
				blend(s, x, y, c, cov)
			}
		}
	}
}
