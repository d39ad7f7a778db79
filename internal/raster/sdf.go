package raster

import "math"

// antialiasWidth controls the smoothstep transition width in pixels.
// A value of 0.7 produces smooth anti-aliasing at standard DPI.
const antialiasWidth = 0.7

// smoothstepCoverage converts a signed distance to an anti-aliased
// coverage value using a Hermite smoothstep function.
//
// sdf < -afwidth => 1.0 (fully inside)
// sdf > +afwidth => 0.0 (fully outside)
// Otherwise       => smooth transition
func smoothstepCoverage(sdf float64) float64 {
	if sdf >= antialiasWidth {
		return 0
	}
	if sdf <= -antialiasWidth {
		return 1
	}
	t := (sdf + antialiasWidth) / (2 * antialiasWidth)
	// Hermite smoothstep: 3t^2 - 2t^3
	return 1 - (t * t * (3 - 2*t))
}

// sdfRect computes the signed distance from a point to an axis-aligned
// rectangle given by center and half-extents. Negative values are
// inside, positive values are outside.
func sdfRect(px, py, cx, cy, halfW, halfH float64) float64 {
	dx := math.Abs(px-cx) - halfW
	dy := math.Abs(py-cy) - halfH

	outside := math.Sqrt(math.Max(dx, 0)*math.Max(dx, 0) + math.Max(dy, 0)*math.Max(dy, 0))
	inside := math.Min(math.Max(dx, dy), 0)

	return outside + inside
}

// sdfEllipse approximates the signed distance from a point to an
// axis-aligned ellipse by dividing the level-set value by its gradient
// magnitude. Exact near the edge, which is all the rasterizer needs.
func sdfEllipse(px, py, cx, cy, rx, ry float64) float64 {
	dx := px - cx
	dy := py - cy

	f := math.Hypot(dx/rx, dy/ry)
	if f == 0 {
		return -math.Min(rx, ry)
	}
	grad := math.Hypot(dx/(rx*rx), dy/(ry*ry)) / f
	if grad == 0 {
		return -math.Min(rx, ry)
	}
	return (f - 1) / grad
}

// sdfSegment computes the distance from a point to the segment a-b.
// Always non-negative: subtracting a half-width turns it into a
// round-capped stroke field.
func sdfSegment(px, py, ax, ay, bx, by float64) float64 {
	dx := bx - ax
	dy := by - ay
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(px-ax, py-ay)
	}
	t := ((px-ax)*dx + (py-ay)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return math.Hypot(px-(ax+t*dx), py-(ay+t*dy))
}

// sdfTriangle computes the signed distance from a point to the
// triangle p0-p1-p2. Negative values are inside, positive outside.
// Winding order does not matter.
func sdfTriangle(px, py, x0, y0, x1, y1, x2, y2 float64) float64 {
	d := math.Min(sdfSegment(px, py, x0, y0, x1, y1),
		math.Min(sdfSegment(px, py, x1, y1, x2, y2),
			sdfSegment(px, py, x2, y2, x0, y0)))

	c0 := (x1-x0)*(py-y0) - (y1-y0)*(px-x0)
	c1 := (x2-x1)*(py-y1) - (y2-y1)*(px-x1)
	c2 := (x0-x2)*(py-y2) - (y0-y2)*(px-x2)

	inside := (c0 >= 0 && c1 >= 0 && c2 >= 0) || (c0 <= 0 && c1 <= 0 && c2 <= 0)
	if inside {
		return -d
	}
	return d
}
