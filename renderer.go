package markup

import (
	"image"
	"math"
	"strconv"

	xdraw "golang.org/x/image/draw"

	"github.com/shotlab/markup/internal/filter"
	"github.com/shotlab/markup/internal/raster"
)

// renderMode selects between the lossless interactive preview and the
// destructive export composite.
type renderMode uint8

const (
	renderInteractive renderMode = iota
	renderExport
)

// highlightAlpha is the translucency multiplier for highlighter
// strokes, so underlying content stays readable.
const highlightAlpha = 0.45

// Placeholder translucency for redaction regions in interactive
// renders: a light wash plus an outline marks the region without
// applying the effect.
const (
	redactionFillAlpha    = 0.12
	redactionOutlineAlpha = 0.6
)

// RenderInteractive composites the document for on-screen display:
// the base image, then every annotation bottom to top. Blur and
// pixelate regions draw as translucent placeholders and crop regions
// as outlines, so editing stays lossless and reversible.
//
// The render is a pure function of document state; the document is
// not mutated.
func (d *Document) RenderInteractive() (*Canvas, error) {
	Logger().Debug("markup: interactive render",
		"annotations", len(d.annotations), "w", d.canvasW, "h", d.canvasH)
	return composite(d.base, d.annotations, d.canvasW, d.canvasH, renderInteractive, 1)
}

// RenderExport composites the document for export at the given integer
// scale factor: identical order to the interactive render, but blur
// and pixelate annotations destructively rewrite the pixels they
// cover, at their position in the sequence, so later annotations
// composite on top of earlier redactions. The topmost crop region
// trims the output.
func (d *Document) RenderExport(scale int) (*Canvas, error) {
	Logger().Debug("markup: export render",
		"annotations", len(d.annotations), "scale", scale)
	return composite(d.base, d.annotations, d.canvasW, d.canvasH, renderExport, scale)
}

// composite renders base and annotations onto a fresh canvas of
// w*scale x h*scale pixels.
func composite(base *Canvas, anns []Annotation, w, h int, mode renderMode, scale int) (*Canvas, error) {
	if scale < 1 {
		return nil, ErrInvalidScale
	}
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyCanvas
	}

	out := NewCanvas(w*scale, h*scale)
	out.Clear(White)

	if base != nil && base.Width() > 0 && base.Height() > 0 {
		if scale == 1 {
			out.DrawImage(base, 0, 0)
		} else {
			dr := image.Rect(0, 0, base.Width()*scale, base.Height()*scale)
			xdraw.CatmullRom.Scale(out, dr, base, base.Bounds(), xdraw.Over, nil)
		}
	}

	s := float64(scale)
	for _, a := range anns {
		if err := drawAnnotation(out, a, mode, s); err != nil {
			return nil, err
		}
	}

	if mode == renderExport {
		if crop, ok := topmostCrop(anns); ok {
			r := crop.Rect.Canon().Scale(s).ImageRect()
			r = r.Intersect(image.Rect(0, 0, out.Width(), out.Height()))
			if r.Empty() {
				return nil, ErrEmptyCrop
			}
			out = out.Crop(r)
		}
	}

	return out, nil
}

// topmostCrop returns the last crop annotation in list order, if any.
func topmostCrop(anns []Annotation) (Annotation, bool) {
	for i := len(anns) - 1; i >= 0; i-- {
		if anns[i].Kind == KindCrop {
			return anns[i], true
		}
	}
	return Annotation{}, false
}

// drawAnnotation draws one annotation onto the canvas at scale s.
func drawAnnotation(c *Canvas, a Annotation, mode renderMode, s float64) error {
	surf := raster.Surface{Pix: c.Data(), Width: c.Width(), Height: c.Height()}
	stroke := surfColor(a.Style.Stroke, a.Style.Opacity)
	fill := surfColor(a.Style.Fill, a.Style.Opacity)
	width := a.Style.StrokeWidth * s

	switch a.Kind {
	case KindRect:
		r := a.Rect.Canon().Scale(s)
		if a.Style.Fill.A > 0 {
			raster.FillRect(surf, r.X, r.Y, r.X+r.W, r.Y+r.H, fill)
		}
		raster.StrokeRect(surf, r.X, r.Y, r.X+r.W, r.Y+r.H, width, stroke)

	case KindEllipse:
		r := a.Rect.Canon().Scale(s)
		ctr := r.Center()
		if a.Style.Fill.A > 0 {
			raster.FillEllipse(surf, ctr.X, ctr.Y, r.W/2, r.H/2, fill)
		}
		raster.StrokeEllipse(surf, ctr.X, ctr.Y, r.W/2, r.H/2, width, stroke)

	case KindLine:
		if len(a.Points) < 2 {
			return nil
		}
		p0, p1 := a.Points[0].Mul(s), a.Points[1].Mul(s)
		raster.StrokeSegment(surf, p0.X, p0.Y, p1.X, p1.Y, width, stroke)

	case KindArrow:
		drawArrow(surf, a, s, stroke)

	case KindHighlight:
		drawHighlight(surf, a, s)

	case KindText:
		r := a.Rect.Canon().Scale(s)
		col := a.Style.Stroke.WithAlpha(a.Style.Stroke.A * a.Style.Opacity)
		return drawText(c, a.Text, r.X, r.Y, a.Style.FontSize*s, col)

	case KindBlur, KindPixelate:
		return drawRedaction(c, surf, a, mode, s)

	case KindCounter:
		return drawCounter(c, surf, a, s)

	case KindCrop:
		if mode == renderInteractive {
			r := a.Rect.Canon().Scale(s)
			raster.StrokeRect(surf, r.X, r.Y, r.X+r.W, r.Y+r.H,
				math.Max(1, 1.5*s), stroke)
		}
	}
	return nil
}

// drawArrow draws a round-capped shaft with a filled triangular head
// at the second point.
func drawArrow(surf raster.Surface, a Annotation, s float64, stroke raster.Color) {
	if len(a.Points) < 2 {
		return
	}
	tail, head := a.Points[0].Mul(s), a.Points[1].Mul(s)
	width := a.Style.StrokeWidth * s

	dir := head.Sub(tail)
	length := dir.Length()
	if length == 0 {
		raster.FillEllipse(surf, head.X, head.Y, width, width, stroke)
		return
	}

	headLen := math.Max(width*4, 10*s)
	if headLen > length*0.8 {
		headLen = length * 0.8
	}
	dirN := dir.Normalize()
	base := head.Sub(dirN.Mul(headLen))
	perp := Point{X: -dirN.Y, Y: dirN.X}.Mul(headLen * 0.4)
	left := base.Add(perp)
	right := base.Sub(perp)

	raster.StrokeSegment(surf, tail.X, tail.Y, base.X, base.Y, width, stroke)
	raster.FillTriangle(surf, head.X, head.Y, left.X, left.Y, right.X, right.Y, stroke)
}

// drawHighlight draws the polyline translucently with round caps.
func drawHighlight(surf raster.Surface, a Annotation, s float64) {
	if len(a.Points) == 0 {
		return
	}
	col := surfColor(a.Style.Stroke, a.Style.Opacity*highlightAlpha)
	width := a.Style.StrokeWidth * s
	if len(a.Points) == 1 {
		p := a.Points[0].Mul(s)
		raster.FillEllipse(surf, p.X, p.Y, width/2, width/2, col)
		return
	}
	for i := 1; i < len(a.Points); i++ {
		p0, p1 := a.Points[i-1].Mul(s), a.Points[i].Mul(s)
		raster.StrokeSegment(surf, p0.X, p0.Y, p1.X, p1.Y, width, col)
	}
}

// drawRedaction applies the destructive effect in export mode and a
// translucent placeholder in interactive mode.
func drawRedaction(c *Canvas, surf raster.Surface, a Annotation, mode renderMode, s float64) error {
	r := a.Rect.Canon().Scale(s)

	if mode == renderInteractive {
		raster.FillRect(surf, r.X, r.Y, r.X+r.W, r.Y+r.H,
			surfColor(a.Style.Stroke.WithAlpha(redactionFillAlpha), a.Style.Opacity))
		raster.StrokeRect(surf, r.X, r.Y, r.X+r.W, r.Y+r.H,
			math.Max(1, 1.5*s), surfColor(a.Style.Stroke.WithAlpha(redactionOutlineAlpha), a.Style.Opacity))
		return nil
	}

	region := r.ImageRect().Intersect(image.Rect(0, 0, c.Width(), c.Height()))
	if region.Empty() {
		return nil
	}
	switch a.Kind {
	case KindBlur:
		filter.GaussianBlur(c.Data(), c.Width(), c.Height(), region, a.Style.BlurRadius*s)
	case KindPixelate:
		block := int(math.Round(float64(a.Style.PixelSize) * s))
		filter.Pixelate(c.Data(), c.Width(), c.Height(), region, block)
	}
	return nil
}

// drawCounter draws a filled badge disc with the number centered in it.
// The badge uses the fill color when set, the stroke color otherwise,
// and sizes its digits to the disc.
func drawCounter(c *Canvas, surf raster.Surface, a Annotation, s float64) error {
	r := a.Rect.Canon().Scale(s)
	ctr := r.Center()
	radius := math.Max(r.W, r.H) / 2
	if radius <= 0 {
		return nil
	}

	disc := a.Style.Stroke
	if a.Style.Fill.A > 0 {
		disc = a.Style.Fill
	}
	raster.FillEllipse(surf, ctr.X, ctr.Y, radius, radius, surfColor(disc, a.Style.Opacity))

	label := strconv.Itoa(a.Number)
	size := math.Max(8, radius*1.1)
	w, h, err := measureText(label, size)
	if err != nil {
		return err
	}
	col := White.WithAlpha(a.Style.Opacity)
	return drawText(c, label, ctr.X-w/2, ctr.Y-h/2, size, col)
}

// surfColor converts a style color plus opacity into a raster color.
func surfColor(c RGBA, opacity float64) raster.Color {
	return raster.Color{R: c.R, G: c.G, B: c.B, A: c.A * opacity}
}
