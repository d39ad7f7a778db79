package markup

import (
	"bytes"
	"errors"
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// renderBaseline renders an annotation-free document over the standard
// gradient image, for pixel-level comparison against annotated renders.
func renderBaseline(t *testing.T, w, h int) *Canvas {
	t.Helper()
	doc := newTestDoc(t, w, h)
	c, err := doc.RenderInteractive()
	if err != nil {
		t.Fatalf("RenderInteractive() = %v", err)
	}
	return c
}

func TestRenderInteractive_MatchesBaseWithoutAnnotations(t *testing.T) {
	doc := newTestDoc(t, 80, 60)
	c, err := doc.RenderInteractive()
	if err != nil {
		t.Fatalf("RenderInteractive() = %v", err)
	}
	if c.Width() != 80 || c.Height() != 60 {
		t.Fatalf("render size = %dx%d, want 80x60", c.Width(), c.Height())
	}
	if !bytes.Equal(c.Data(), testImage(80, 60).Pix) {
		t.Error("annotation-free render differs from the base image")
	}
}

func TestRenderInteractive_CanvasLargerThanBase(t *testing.T) {
	doc, err := NewDocument(testImage(80, 60), WithCanvasSize(100, 80))
	if err != nil {
		t.Fatalf("NewDocument() = %v", err)
	}
	c, err := doc.RenderInteractive()
	if err != nil {
		t.Fatalf("RenderInteractive() = %v", err)
	}
	if c.Width() != 100 || c.Height() != 80 {
		t.Fatalf("render size = %dx%d, want 100x80", c.Width(), c.Height())
	}

	// The area beyond the base image is white working space.
	if got := c.GetPixel(90, 70); got != White {
		t.Errorf("pixel beyond base = %v, want White", got)
	}
	base := CanvasFromImage(testImage(80, 60))
	if got := c.GetPixel(10, 10); got != base.GetPixel(10, 10) {
		t.Errorf("pixel over base = %v, want %v", got, base.GetPixel(10, 10))
	}
}

func TestRenderExport_BlurConfinedToRegion(t *testing.T) {
	baseline := renderBaseline(t, 80, 60)

	doc := newTestDoc(t, 80, 60)
	doc.AddAnnotation(NewBlur(Rect{X: 20, Y: 15, W: 30, H: 20}, DefaultStyle()))

	out, err := doc.RenderExport(1)
	if err != nil {
		t.Fatalf("RenderExport(1) = %v", err)
	}

	region := image.Rect(20, 15, 50, 35)
	changed := false
	for y := 0; y < 60; y++ {
		for x := 0; x < 80; x++ {
			same := out.GetPixel(x, y) == baseline.GetPixel(x, y)
			if image.Pt(x, y).In(region) {
				if !same {
					changed = true
				}
				continue
			}
			if !same {
				t.Fatalf("pixel (%d, %d) outside the blur region changed", x, y)
			}
		}
	}
	if !changed {
		t.Error("no pixel inside the blur region changed")
	}
}

func TestRenderInteractive_RedactionPlaceholder(t *testing.T) {
	baseline := renderBaseline(t, 80, 60)

	doc := newTestDoc(t, 80, 60)
	doc.AddAnnotation(NewBlur(Rect{X: 20, Y: 15, W: 30, H: 20}, DefaultStyle()))

	preview, err := doc.RenderInteractive()
	if err != nil {
		t.Fatalf("RenderInteractive() = %v", err)
	}
	export, err := doc.RenderExport(1)
	if err != nil {
		t.Fatalf("RenderExport(1) = %v", err)
	}

	region := image.Rect(20, 15, 50, 35)

	// The placeholder marks the region without applying the effect, so
	// the preview differs from both the untouched base and the export.
	marked, differs := false, false
	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			if preview.GetPixel(x, y) != baseline.GetPixel(x, y) {
				marked = true
			}
			if preview.GetPixel(x, y) != export.GetPixel(x, y) {
				differs = true
			}
		}
	}
	if !marked {
		t.Error("interactive render shows no placeholder inside the redaction region")
	}
	if !differs {
		t.Error("interactive render equals the destructive export inside the region")
	}

	// Beyond the region plus the outline's reach, the preview is untouched.
	grown := region.Inset(-3)
	for y := 0; y < 60; y++ {
		for x := 0; x < 80; x++ {
			if image.Pt(x, y).In(grown) {
				continue
			}
			if preview.GetPixel(x, y) != baseline.GetPixel(x, y) {
				t.Fatalf("pixel (%d, %d) outside the placeholder changed", x, y)
			}
		}
	}
}

func TestRenderExport_PixelateUniformCells(t *testing.T) {
	doc := newTestDoc(t, 80, 60)
	doc.AddAnnotation(NewPixelate(Rect{X: 24, Y: 24, W: 24, H: 12},
		DefaultStyle().WithPixelSize(12)))

	out, err := doc.RenderExport(1)
	if err != nil {
		t.Fatalf("RenderExport(1) = %v", err)
	}

	// The region splits into exactly two 12x12 cells; every pixel in a
	// cell must hold the cell average.
	for _, cell := range []image.Rectangle{
		image.Rect(24, 24, 36, 36),
		image.Rect(36, 24, 48, 36),
	} {
		want := out.GetPixel(cell.Min.X, cell.Min.Y)
		for y := cell.Min.Y; y < cell.Max.Y; y++ {
			for x := cell.Min.X; x < cell.Max.X; x++ {
				if got := out.GetPixel(x, y); got != want {
					t.Fatalf("cell %v pixel (%d, %d) = %v, want uniform %v",
						cell, x, y, got, want)
				}
			}
		}
	}

	// Gradient pixels outside the region keep their values.
	baseline := renderBaseline(t, 80, 60)
	if got := out.GetPixel(23, 24); got != baseline.GetPixel(23, 24) {
		t.Errorf("pixel left of region = %v, want untouched %v", got, baseline.GetPixel(23, 24))
	}
	if got := out.GetPixel(24, 36); got != baseline.GetPixel(24, 36) {
		t.Errorf("pixel below region = %v, want untouched %v", got, baseline.GetPixel(24, 36))
	}
}

func TestRenderExport_RedactionIdentityParams(t *testing.T) {
	baseline := renderBaseline(t, 80, 60)

	doc := newTestDoc(t, 80, 60)
	doc.AddAnnotation(NewBlur(Rect{X: 10, Y: 10, W: 20, H: 20},
		DefaultStyle().WithBlurRadius(0)))
	doc.AddAnnotation(NewPixelate(Rect{X: 40, Y: 10, W: 20, H: 20},
		DefaultStyle().WithPixelSize(1)))

	out, err := doc.RenderExport(1)
	if err != nil {
		t.Fatalf("RenderExport(1) = %v", err)
	}
	if !bytes.Equal(out.Data(), baseline.Data()) {
		t.Error("zero-radius blur or unit pixelate modified the output")
	}
}

func TestRenderExport_SequentialCompositing(t *testing.T) {
	doc := newTestDoc(t, 80, 60)
	doc.AddAnnotation(NewBlur(Rect{X: 20, Y: 15, W: 30, H: 20}, DefaultStyle()))
	doc.AddAnnotation(NewRect(Rect{X: 25, Y: 18, W: 20, H: 14},
		DefaultStyle().WithFill(Blue)))

	out, err := doc.RenderExport(1)
	if err != nil {
		t.Fatalf("RenderExport(1) = %v", err)
	}

	// The rect sits above the blur, so its fill must cover the blurred
	// pixels at its center.
	r, g, b, _ := out.GetPixel(35, 25).RGBA255()
	wr, wg, wb, _ := Blue.RGBA255()
	if absDiff(float64(r), float64(wr)) > 2 ||
		absDiff(float64(g), float64(wg)) > 2 ||
		absDiff(float64(b), float64(wb)) > 2 {
		t.Errorf("pixel above redaction = (%d, %d, %d), want fill ~(%d, %d, %d)",
			r, g, b, wr, wg, wb)
	}
}

func TestRenderExport_CropTrims(t *testing.T) {
	doc := newTestDoc(t, 80, 60)
	doc.AddAnnotation(NewCrop(Rect{X: 10, Y: 10, W: 30, H: 20}, DefaultStyle()))

	out, err := doc.RenderExport(1)
	if err != nil {
		t.Fatalf("RenderExport(1) = %v", err)
	}
	if out.Width() != 30 || out.Height() != 20 {
		t.Fatalf("export size = %dx%d, want 30x20", out.Width(), out.Height())
	}

	// Content is the base image shifted by the crop origin.
	base := CanvasFromImage(testImage(80, 60))
	if got := out.GetPixel(0, 0); got != base.GetPixel(10, 10) {
		t.Errorf("cropped (0, 0) = %v, want base (10, 10) = %v", got, base.GetPixel(10, 10))
	}
	if got := out.GetPixel(29, 19); got != base.GetPixel(39, 29) {
		t.Errorf("cropped (29, 19) = %v, want base (39, 29) = %v", got, base.GetPixel(39, 29))
	}

	scaled, err := doc.RenderExport(2)
	if err != nil {
		t.Fatalf("RenderExport(2) = %v", err)
	}
	if scaled.Width() != 60 || scaled.Height() != 40 {
		t.Errorf("scaled export size = %dx%d, want 60x40", scaled.Width(), scaled.Height())
	}
}

func TestRenderExport_TopmostCropWins(t *testing.T) {
	doc := newTestDoc(t, 80, 60)
	doc.AddAnnotation(NewCrop(Rect{X: 10, Y: 10, W: 30, H: 20}, DefaultStyle()))
	doc.AddAnnotation(NewCrop(Rect{X: 20, Y: 20, W: 40, H: 30}, DefaultStyle()))

	out, err := doc.RenderExport(1)
	if err != nil {
		t.Fatalf("RenderExport(1) = %v", err)
	}
	if out.Width() != 40 || out.Height() != 30 {
		t.Errorf("export size = %dx%d, want topmost crop 40x30", out.Width(), out.Height())
	}
}

func TestRenderExport_CropOutsideCanvas(t *testing.T) {
	doc := newTestDoc(t, 80, 60)
	doc.AddAnnotation(NewCrop(Rect{X: 100, Y: 100, W: 20, H: 20}, DefaultStyle()))

	if _, err := doc.RenderExport(1); !errors.Is(err, ErrEmptyCrop) {
		t.Errorf("RenderExport(1) = %v, want ErrEmptyCrop", err)
	}
}

func TestRenderInteractive_CropKeepsFullCanvas(t *testing.T) {
	baseline := renderBaseline(t, 80, 60)

	doc := newTestDoc(t, 80, 60)
	doc.AddAnnotation(NewCrop(Rect{X: 10, Y: 10, W: 30, H: 20}, DefaultStyle()))

	preview, err := doc.RenderInteractive()
	if err != nil {
		t.Fatalf("RenderInteractive() = %v", err)
	}
	if preview.Width() != 80 || preview.Height() != 60 {
		t.Fatalf("preview size = %dx%d, want full 80x60", preview.Width(), preview.Height())
	}

	// The crop draws as an outline band; the band must touch pixels and
	// the interior must stay untouched.
	outer := image.Rect(10, 10, 40, 30).Inset(-3)
	inner := image.Rect(10, 10, 40, 30).Inset(3)
	outlined := false
	for y := outer.Min.Y; y < outer.Max.Y; y++ {
		for x := outer.Min.X; x < outer.Max.X; x++ {
			if image.Pt(x, y).In(inner) {
				continue
			}
			if preview.GetPixel(x, y) != baseline.GetPixel(x, y) {
				outlined = true
			}
		}
	}
	if !outlined {
		t.Error("crop outline not visible in interactive render")
	}
	for y := inner.Min.Y; y < inner.Max.Y; y++ {
		for x := inner.Min.X; x < inner.Max.X; x++ {
			if preview.GetPixel(x, y) != baseline.GetPixel(x, y) {
				t.Fatalf("pixel (%d, %d) inside crop region changed", x, y)
			}
		}
	}
}

func TestRenderExport_InvalidScale(t *testing.T) {
	doc := newTestDoc(t, 80, 60)
	for _, scale := range []int{0, -1} {
		if _, err := doc.RenderExport(scale); !errors.Is(err, ErrInvalidScale) {
			t.Errorf("RenderExport(%d) = %v, want ErrInvalidScale", scale, err)
		}
	}
}

func TestRender_EmptyCanvas(t *testing.T) {
	doc, err := NewDocument(image.NewNRGBA(image.Rect(0, 0, 0, 0)))
	if err != nil {
		t.Fatalf("NewDocument() = %v", err)
	}
	if _, err := doc.RenderInteractive(); !errors.Is(err, ErrEmptyCanvas) {
		t.Errorf("RenderInteractive() = %v, want ErrEmptyCanvas", err)
	}
	if _, err := doc.RenderExport(1); !errors.Is(err, ErrEmptyCanvas) {
		t.Errorf("RenderExport(1) = %v, want ErrEmptyCanvas", err)
	}
}

func TestRenderExport_CounterBadge(t *testing.T) {
	doc := newTestDoc(t, 80, 60)
	doc.AddAnnotation(NewCounter(Point{X: 40, Y: 30}, 16, 1, DefaultStyle()))

	out, err := doc.RenderExport(1)
	if err != nil {
		t.Fatalf("RenderExport(1) = %v", err)
	}

	// Off-center but inside the disc, clear of the label: stroke color.
	r, g, b, _ := out.GetPixel(52, 30).RGBA255()
	if r < 180 || g > 80 || b > 80 {
		t.Errorf("disc pixel = (%d, %d, %d), want stroke red", r, g, b)
	}

	// The label is drawn in white near the disc center.
	labeled := false
	for y := 24; y <= 36 && !labeled; y++ {
		for x := 34; x <= 46; x++ {
			if _, g, b, _ := out.GetPixel(x, y).RGBA255(); g >= 200 && b >= 200 {
				labeled = true
				break
			}
		}
	}
	if !labeled {
		t.Error("no white label pixels found inside the counter disc")
	}
}

func TestRenderExport_CounterDiscUsesFill(t *testing.T) {
	doc := newTestDoc(t, 80, 60)
	doc.AddAnnotation(NewCounter(Point{X: 40, Y: 30}, 16, 2,
		DefaultStyle().WithFill(Blue)))

	out, err := doc.RenderExport(1)
	if err != nil {
		t.Fatalf("RenderExport(1) = %v", err)
	}
	r, _, b, _ := out.GetPixel(52, 30).RGBA255()
	if b < 180 || r > 80 {
		t.Errorf("disc pixel = (%d, _, %d), want fill blue", r, b)
	}
}

func TestRenderExport_TextDrawsGlyphs(t *testing.T) {
	white := image.NewNRGBA(image.Rect(0, 0, 80, 60))
	for i := range white.Pix {
		white.Pix[i] = 255
	}
	doc, err := NewDocument(white)
	if err != nil {
		t.Fatalf("NewDocument() = %v", err)
	}
	doc.AddAnnotation(NewText(Point{X: 10, Y: 10}, "Hi", DefaultStyle()))

	out, err := doc.RenderExport(1)
	if err != nil {
		t.Fatalf("RenderExport(1) = %v", err)
	}

	// Red glyph pixels on a white background.
	found := false
	for y := 8; y < 40 && !found; y++ {
		for x := 8; x < 45; x++ {
			if r, g, b, _ := out.GetPixel(x, y).RGBA255(); r >= 150 && g <= 128 && b <= 128 {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("no glyph pixels found in the text box")
	}
}

func TestRenderExport_ScaleDoublesDims(t *testing.T) {
	doc := newTestDoc(t, 80, 60)
	doc.AddAnnotation(NewRect(Rect{X: 10, Y: 10, W: 30, H: 20}, DefaultStyle()))

	out, err := doc.RenderExport(2)
	if err != nil {
		t.Fatalf("RenderExport(2) = %v", err)
	}
	if out.Width() != 160 || out.Height() != 120 {
		t.Errorf("export size = %dx%d, want 160x120", out.Width(), out.Height())
	}
}

func TestRender_DoesNotMutateDocument(t *testing.T) {
	doc := newTestDoc(t, 80, 60)
	doc.AddAnnotation(NewBlur(Rect{X: 20, Y: 15, W: 30, H: 20}, DefaultStyle()))
	doc.AddAnnotation(NewRect(Rect{X: 5, Y: 5, W: 20, H: 10}, DefaultStyle()))
	doc.AddAnnotation(NewCounter(Point{X: 60, Y: 45}, 10, 1, DefaultStyle()))

	before := doc.Annotations()
	baseBefore := append([]uint8(nil), doc.BaseImage().(*Canvas).Data()...)

	first, err := doc.RenderExport(1)
	if err != nil {
		t.Fatalf("RenderExport(1) = %v", err)
	}
	if _, err := doc.RenderInteractive(); err != nil {
		t.Fatalf("RenderInteractive() = %v", err)
	}
	second, err := doc.RenderExport(1)
	if err != nil {
		t.Fatalf("RenderExport(1) = %v", err)
	}

	if diff := cmp.Diff(before, doc.Annotations()); diff != "" {
		t.Errorf("annotations changed by rendering (-before +after):\n%s", diff)
	}
	if !bytes.Equal(baseBefore, doc.BaseImage().(*Canvas).Data()) {
		t.Error("base image bytes changed by rendering")
	}
	if !bytes.Equal(first.Data(), second.Data()) {
		t.Error("repeated exports are not byte-identical")
	}
}

func TestRender_AllKindsSmoke(t *testing.T) {
	baseline := renderBaseline(t, 80, 60)

	doc := newTestDoc(t, 80, 60)
	anns := []Annotation{
		NewArrow(Point{X: 5, Y: 5}, Point{X: 30, Y: 20}, DefaultStyle()),
		NewRect(Rect{X: 35, Y: 5, W: 20, H: 12}, DefaultStyle()),
		NewEllipse(Rect{X: 5, Y: 25, W: 20, H: 14}, DefaultStyle()),
		NewLine(Point{X: 30, Y: 28}, Point{X: 55, Y: 40}, DefaultStyle()),
		NewText(Point{X: 40, Y: 45}, "ok", DefaultStyle()),
		NewHighlight([]Point{{X: 5, Y: 45}, {X: 20, Y: 50}, {X: 30, Y: 45}},
			DefaultStyle().WithStrokeWidth(8)),
		NewBlur(Rect{X: 60, Y: 5, W: 15, H: 12}, DefaultStyle()),
		NewPixelate(Rect{X: 60, Y: 20, W: 15, H: 12}, DefaultStyle()),
		NewCounter(Point{X: 70, Y: 45}, 8, 3, DefaultStyle()),
		NewCrop(Rect{X: 2, Y: 2, W: 76, H: 56}, DefaultStyle()),
	}
	for _, a := range anns {
		doc.AddAnnotation(a)
	}

	preview, err := doc.RenderInteractive()
	if err != nil {
		t.Fatalf("RenderInteractive() = %v", err)
	}
	if preview.Width() != 80 || preview.Height() != 60 {
		t.Errorf("preview size = %dx%d, want 80x60", preview.Width(), preview.Height())
	}
	if bytes.Equal(preview.Data(), baseline.Data()) {
		t.Error("preview with all annotation kinds equals the bare base render")
	}

	export, err := doc.RenderExport(1)
	if err != nil {
		t.Fatalf("RenderExport(1) = %v", err)
	}
	if export.Width() != 76 || export.Height() != 56 {
		t.Errorf("export size = %dx%d, want cropped 76x56", export.Width(), export.Height())
	}

	scaled, err := doc.RenderExport(2)
	if err != nil {
		t.Fatalf("RenderExport(2) = %v", err)
	}
	if scaled.Width() != 152 || scaled.Height() != 112 {
		t.Errorf("scaled export size = %dx%d, want 152x112", scaled.Width(), scaled.Height())
	}
}
