package markup

import "math"

// hitTolerance widens thin strokes into a selectable corridor, in pixels.
const hitTolerance = 4.0

// HitTest reports whether p falls on the annotation: within the
// tolerance corridor of a segment for line-like kinds, inside the box
// for box-like kinds, inside the disc for counters, and inside the
// ellipse (edge tolerance included) for ellipses.
func (a Annotation) HitTest(p Point) bool {
	switch a.Kind {
	case KindLine, KindArrow:
		if len(a.Points) < 2 {
			return false
		}
		return distanceToSegment(p, a.Points[0], a.Points[1]) <= a.Style.StrokeWidth/2+hitTolerance
	case KindHighlight:
		return polylineDistance(p, a.Points) <= a.Style.StrokeWidth/2+hitTolerance
	case KindEllipse:
		return ellipseContains(p, a.Rect.Canon(), hitTolerance)
	case KindCounter:
		r := a.Rect.Canon()
		return p.Distance(r.Center()) <= math.Max(r.W, r.H)/2+hitTolerance
	default:
		return a.Rect.Contains(p)
	}
}

// Intersects reports whether any part of the annotation's geometry
// overlaps r. Used for rubber-band selection.
func (a Annotation) Intersects(r Rect) bool {
	switch a.Kind {
	case KindLine, KindArrow:
		if len(a.Points) < 2 {
			return false
		}
		return segmentIntersectsRect(a.Points[0], a.Points[1], r)
	case KindHighlight:
		if len(a.Points) == 0 {
			return false
		}
		if len(a.Points) == 1 {
			return r.Contains(a.Points[0])
		}
		for i := 1; i < len(a.Points); i++ {
			if segmentIntersectsRect(a.Points[i-1], a.Points[i], r) {
				return true
			}
		}
		return false
	default:
		return a.Bounds().Intersects(r)
	}
}

// polylineDistance returns the minimum distance from p to the polyline.
func polylineDistance(p Point, points []Point) float64 {
	switch len(points) {
	case 0:
		return math.Inf(1)
	case 1:
		return p.Distance(points[0])
	}
	min := math.Inf(1)
	for i := 1; i < len(points); i++ {
		if d := distanceToSegment(p, points[i-1], points[i]); d < min {
			min = d
		}
	}
	return min
}

// ellipseContains reports whether p lies inside the ellipse inscribed
// in r, allowing an extra tolerance band around the edge.
func ellipseContains(p Point, r Rect, tolerance float64) bool {
	rx, ry := r.W/2, r.H/2
	if rx <= 0 || ry <= 0 {
		return false
	}
	c := r.Center()
	dx, dy := p.X-c.X, p.Y-c.Y
	nd := math.Sqrt((dx/rx)*(dx/rx) + (dy/ry)*(dy/ry))
	if nd <= 1 {
		return true
	}
	// Approximate the distance outside the edge by scaling the
	// normalized overshoot with the smaller radius.
	return (nd-1)*math.Min(rx, ry) <= tolerance
}

// segmentIntersectsRect reports whether the segment a-b overlaps r:
// an endpoint inside counts, as does crossing any edge.
func segmentIntersectsRect(a, b Point, r Rect) bool {
	r = r.Canon()
	if r.Contains(a) || r.Contains(b) {
		return true
	}
	tl := Point{X: r.X, Y: r.Y}
	tr := Point{X: r.X + r.W, Y: r.Y}
	bl := Point{X: r.X, Y: r.Y + r.H}
	br := Point{X: r.X + r.W, Y: r.Y + r.H}
	return segmentsIntersect(a, b, tl, tr) ||
		segmentsIntersect(a, b, tr, br) ||
		segmentsIntersect(a, b, br, bl) ||
		segmentsIntersect(a, b, bl, tl)
}

// segmentsIntersect reports whether segments a-b and c-d intersect,
// including touching and collinear overlap.
func segmentsIntersect(a, b, c, d Point) bool {
	o1 := orientation(a, b, c)
	o2 := orientation(a, b, d)
	o3 := orientation(c, d, a)
	o4 := orientation(c, d, b)

	if o1 != o2 && o3 != o4 {
		return true
	}

	// Collinear cases: check whether the collinear point lies on the segment.
	if o1 == 0 && onSegment(a, c, b) {
		return true
	}
	if o2 == 0 && onSegment(a, d, b) {
		return true
	}
	if o3 == 0 && onSegment(c, a, d) {
		return true
	}
	if o4 == 0 && onSegment(c, b, d) {
		return true
	}
	return false
}

// orientation returns 0 for collinear points, 1 for clockwise,
// 2 for counter-clockwise.
func orientation(p, q, r Point) int {
	v := (q.Y-p.Y)*(r.X-q.X) - (q.X-p.X)*(r.Y-q.Y)
	switch {
	case v > 0:
		return 1
	case v < 0:
		return 2
	default:
		return 0
	}
}

// onSegment reports whether q lies on the segment p-r, assuming the
// three points are collinear.
func onSegment(p, q, r Point) bool {
	return q.X <= math.Max(p.X, r.X) && q.X >= math.Min(p.X, r.X) &&
		q.Y <= math.Max(p.Y, r.Y) && q.Y >= math.Min(p.Y, r.Y)
}
