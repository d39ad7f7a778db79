// Command markupdemo exercises the annotation document engine: it
// builds a synthetic capture, places one annotation of each kind,
// round-trips the history, and writes interactive and export renders.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/shotlab/markup"
)

func main() {
	var (
		width  = flag.Int("width", 800, "base image width")
		height = flag.Int("height", 600, "base image height")
		scale  = flag.Int("scale", 2, "export scale factor")
		outDir = flag.String("out", ".", "output directory")
	)
	flag.Parse()

	base := gradientImage(*width, *height)
	capture := markup.NewCapture(base)

	doc, err := markup.NewDocumentFromCapture(capture, base)
	if err != nil {
		log.Fatalf("Failed to create document: %v", err)
	}

	placeAnnotations(doc)
	exerciseHistory(doc)

	interactive, err := doc.RenderInteractive()
	if err != nil {
		log.Fatalf("Interactive render failed: %v", err)
	}
	if err := interactive.SavePNG(filepath.Join(*outDir, "interactive.png")); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	pngData, err := doc.Export(markup.FormatPNG, markup.WithScale(*scale))
	if err != nil {
		log.Fatalf("PNG export failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(*outDir, "export.png"), pngData, 0o644); err != nil {
		log.Fatalf("Failed to write: %v", err)
	}

	pdfData, err := doc.Export(markup.FormatPDF)
	if err != nil {
		log.Fatalf("PDF export failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(*outDir, "export.pdf"), pdfData, 0o644); err != nil {
		log.Fatalf("Failed to write: %v", err)
	}

	log.Printf("Demo wrote interactive.png, export.png (%dx), export.pdf to %s\n", *scale, *outDir)
}

// gradientImage synthesizes a base capture so the demo needs no input file.
func gradientImage(w, h int) *markup.Canvas {
	c := markup.NewCanvas(w, h)
	for y := 0; y < h; y++ {
		t := float64(y) / float64(h)
		col := markup.RGB(0.1+t*0.4, 0.2+t*0.3, 0.4+t*0.2)
		for x := 0; x < w; x++ {
			c.SetPixel(x, y, col)
		}
	}
	return c
}

// placeAnnotations puts one annotation of each kind on the document.
func placeAnnotations(doc *markup.Document) {
	style := markup.DefaultStyle()

	doc.AddAnnotation(markup.NewRect(markup.RectXYWH(60, 60, 220, 140), style))
	doc.AddAnnotation(markup.NewEllipse(markup.RectXYWH(320, 60, 180, 140),
		style.WithStroke(markup.Blue)))
	doc.AddAnnotation(markup.NewArrow(markup.Pt(100, 420), markup.Pt(280, 280), style))
	doc.AddAnnotation(markup.NewLine(markup.Pt(540, 80), markup.Pt(720, 180),
		style.WithStroke(markup.Green)))
	doc.AddAnnotation(markup.NewText(markup.Pt(330, 240), "reviewed\nneeds follow-up",
		style.WithStroke(markup.Black)))
	doc.AddAnnotation(markup.NewHighlight([]markup.Point{
		{X: 320, Y: 330}, {X: 420, Y: 320}, {X: 520, Y: 335},
	}, style.WithStroke(markup.Yellow).WithStrokeWidth(16)))
	doc.AddAnnotation(markup.NewBlur(markup.RectXYWH(540, 260, 180, 110), style))
	doc.AddAnnotation(markup.NewPixelate(markup.RectXYWH(60, 460, 200, 100), style))
	doc.AddAnnotation(markup.NewCounter(markup.Pt(740, 60), 16, doc.NextCounterNumber(), style))
	doc.AddAnnotation(markup.NewCounter(markup.Pt(740, 110), 16, doc.NextCounterNumber(), style))
}

// exerciseHistory drives undo/redo and selection the way an editor would.
func exerciseHistory(doc *markup.Document) {
	temp := doc.AddAnnotation(markup.NewRect(markup.RectXYWH(10, 10, 30, 30), markup.DefaultStyle()))
	doc.RemoveAnnotation(temp.ID)
	doc.Undo()
	doc.Undo()
	doc.Redo()
	doc.Redo()
	doc.Undo()
	doc.Undo()

	if id, ok := doc.SelectAt(markup.Pt(70, 70)); ok {
		log.Printf("Selected annotation %s at (70, 70)\n", id)
	}
	doc.SelectIn(markup.RectXYWH(0, 0, 400, 400))
	doc.DeselectAll()
}
