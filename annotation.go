package markup

import (
	"math"

	"github.com/google/uuid"
)

// Kind identifies the annotation variant.
type Kind uint8

// Annotation kinds.
const (
	KindArrow Kind = iota
	KindRect
	KindEllipse
	KindLine
	KindText
	KindHighlight
	KindBlur
	KindPixelate
	KindCounter
	KindCrop
)

// kindNames maps kinds to their string representations.
var kindNames = [...]string{
	"arrow",
	"rect",
	"ellipse",
	"line",
	"text",
	"highlight",
	"blur",
	"pixelate",
	"counter",
	"crop",
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsRedaction reports whether the kind destructively alters pixels
// at export time.
func (k Kind) IsRedaction() bool {
	return k == KindBlur || k == KindPixelate
}

// Annotation is one editable object placed on the canvas: a shape,
// text label, highlighter stroke, redaction region, counter badge,
// or crop region.
//
// Annotations are value types: operations like Translate and Resize
// return a new value and never alias mutable state. The ID is unique
// within a document and immutable for the document's lifetime.
// Z-order equals position in the document's annotation list; later
// entries draw on top.
type Annotation struct {
	// ID uniquely identifies the annotation within its document.
	ID uuid.UUID

	// Kind selects the variant.
	Kind Kind

	// Rect is the box geometry for rect, ellipse, text, blur,
	// pixelate, counter, and crop annotations.
	Rect Rect

	// Points holds the endpoints for line and arrow annotations
	// (exactly two) and the polyline for highlighter strokes.
	Points []Point

	// Text is the label content for text annotations.
	Text string

	// Number is the displayed value for counter badges.
	Number int

	// Style controls how the annotation is drawn.
	Style Style
}

// NewArrow creates an arrow annotation pointing from tail to head.
func NewArrow(tail, head Point, style Style) Annotation {
	return sanitizeAnnotation(Annotation{
		ID:     uuid.New(),
		Kind:   KindArrow,
		Points: []Point{tail, head},
		Style:  style,
	})
}

// NewRect creates a rectangle annotation.
func NewRect(r Rect, style Style) Annotation {
	return sanitizeAnnotation(Annotation{
		ID:    uuid.New(),
		Kind:  KindRect,
		Rect:  r,
		Style: style,
	})
}

// NewEllipse creates an ellipse annotation inscribed in r.
func NewEllipse(r Rect, style Style) Annotation {
	return sanitizeAnnotation(Annotation{
		ID:    uuid.New(),
		Kind:  KindEllipse,
		Rect:  r,
		Style: style,
	})
}

// NewLine creates a straight line annotation between two points.
func NewLine(a, b Point, style Style) Annotation {
	return sanitizeAnnotation(Annotation{
		ID:     uuid.New(),
		Kind:   KindLine,
		Points: []Point{a, b},
		Style:  style,
	})
}

// NewText creates a text annotation with its top-left corner at origin.
// The box size is estimated from the content and the style's font size.
func NewText(origin Point, text string, style Style) Annotation {
	a := Annotation{
		ID:    uuid.New(),
		Kind:  KindText,
		Text:  text,
		Style: style,
	}
	a.Rect = textBox(origin, text, sanitizeStyle(style).FontSize)
	return sanitizeAnnotation(a)
}

// NewHighlight creates a freeform highlighter stroke along the given
// points. The stroke draws translucently so underlying content stays
// readable.
func NewHighlight(points []Point, style Style) Annotation {
	return sanitizeAnnotation(Annotation{
		ID:     uuid.New(),
		Kind:   KindHighlight,
		Points: points,
		Style:  style,
	})
}

// NewBlur creates a blur redaction region. The effect previews as a
// marked region interactively and is applied destructively at export.
func NewBlur(r Rect, style Style) Annotation {
	return sanitizeAnnotation(Annotation{
		ID:    uuid.New(),
		Kind:  KindBlur,
		Rect:  r,
		Style: style,
	})
}

// NewPixelate creates a pixelate redaction region. The effect previews
// as a marked region interactively and is applied destructively at export.
func NewPixelate(r Rect, style Style) Annotation {
	return sanitizeAnnotation(Annotation{
		ID:    uuid.New(),
		Kind:  KindPixelate,
		Rect:  r,
		Style: style,
	})
}

// NewCounter creates a numbered counter badge centered at center.
func NewCounter(center Point, radius float64, number int, style Style) Annotation {
	radius = math.Abs(finiteOr(radius, 0))
	center = sanitizePoint(center)
	return sanitizeAnnotation(Annotation{
		ID:     uuid.New(),
		Kind:   KindCounter,
		Rect:   RectXYWH(center.X-radius, center.Y-radius, radius*2, radius*2),
		Number: number,
		Style:  style,
	})
}

// NewCrop creates a crop region. The topmost crop region trims the
// export output; interactively it draws as an outline.
func NewCrop(r Rect, style Style) Annotation {
	return sanitizeAnnotation(Annotation{
		ID:    uuid.New(),
		Kind:  KindCrop,
		Rect:  r,
		Style: style,
	})
}

// WithStyle returns a copy of the annotation with the style replaced.
func (a Annotation) WithStyle(s Style) Annotation {
	out := a.clone()
	out.Style = sanitizeStyle(s)
	return out
}

// WithText returns a copy of the annotation with the text replaced.
// The box is re-estimated for text annotations.
func (a Annotation) WithText(text string) Annotation {
	out := a.clone()
	out.Text = text
	if out.Kind == KindText {
		out.Rect = textBox(out.Rect.Min(), text, out.Style.FontSize)
	}
	return out
}

// Bounds returns the axis-aligned bounding rectangle of the annotation,
// including its stroke extent.
func (a Annotation) Bounds() Rect {
	switch a.Kind {
	case KindArrow, KindLine, KindHighlight:
		if len(a.Points) == 0 {
			return Rect{}
		}
		minX, minY := a.Points[0].X, a.Points[0].Y
		maxX, maxY := minX, minY
		for _, p := range a.Points[1:] {
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
		r := Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
		return r.Inset(-a.Style.StrokeWidth / 2)
	default:
		return a.Rect.Canon()
	}
}

// Translate returns a copy of the annotation moved by (dx, dy).
func (a Annotation) Translate(dx, dy float64) Annotation {
	out := a.clone()
	dx, dy = finiteOr(dx, 0), finiteOr(dy, 0)
	out.Rect = out.Rect.Translate(dx, dy)
	for i, p := range out.Points {
		out.Points[i] = Point{X: p.X + dx, Y: p.Y + dy}
	}
	return out
}

// Resize returns a copy of the annotation fitted to r. Box geometry is
// replaced; point lists are mapped proportionally from the old bounds
// into the new rectangle.
func (a Annotation) Resize(r Rect) Annotation {
	out := a.clone()
	r = sanitizeRect(r)
	if len(out.Points) > 0 {
		old := out.Bounds()
		sx, sy := 0.0, 0.0
		if old.W > 0 {
			sx = r.W / old.W
		}
		if old.H > 0 {
			sy = r.H / old.H
		}
		for i, p := range out.Points {
			out.Points[i] = Point{
				X: r.X + (p.X-old.X)*sx,
				Y: r.Y + (p.Y-old.Y)*sy,
			}
		}
	}
	out.Rect = r
	return out
}

// clone returns a deep copy: the points slice is never shared.
func (a Annotation) clone() Annotation {
	out := a
	if a.Points != nil {
		out.Points = make([]Point, len(a.Points))
		copy(out.Points, a.Points)
	}
	return out
}

// sanitizeAnnotation enforces the geometry invariant: every coordinate
// is finite. Non-finite values are replaced rather than propagated.
func sanitizeAnnotation(a Annotation) Annotation {
	a.Rect = sanitizeRect(a.Rect)
	for i, p := range a.Points {
		a.Points[i] = sanitizePoint(p)
	}
	a.Style = sanitizeStyle(a.Style)
	return a
}

// textBox estimates the rectangle covered by a text label. The width
// uses an average glyph advance; exact metrics are not needed for
// hit-testing and selection.
func textBox(origin Point, text string, fontSize float64) Rect {
	lines := 1
	maxLen, lineLen := 0, 0
	for _, r := range text {
		if r == '\n' {
			lines++
			lineLen = 0
			continue
		}
		lineLen++
		if lineLen > maxLen {
			maxLen = lineLen
		}
	}
	w := float64(maxLen) * fontSize * 0.6
	h := float64(lines) * fontSize * 1.3
	return RectXYWH(origin.X, origin.Y, w, h)
}
