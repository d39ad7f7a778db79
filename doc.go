// Package markup provides an annotation document engine for raster images.
//
// # Overview
//
// markup models an editable annotation layer over a base image: shapes,
// text labels, highlighter strokes, redaction regions (blur, pixelate),
// counter badges, and crop regions. A Document owns the base image, the
// ordered annotation list, the selection, and a command-based undo/redo
// history. Rendering is deterministic and side-effect free, with two
// paths: an interactive composite that previews redactions as marked
// regions, and an export composite that bakes redactions destructively
// into the output pixels.
//
// # Quick Start
//
//	import "github.com/shotlab/markup"
//
//	// Create a document from a captured image.
//	doc, err := markup.NewDocument(img)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Place annotations. Every content mutation is undoable.
//	doc.AddAnnotation(markup.NewRect(markup.RectXYWH(40, 40, 200, 120), markup.DefaultStyle()))
//	doc.AddAnnotation(markup.NewBlur(markup.RectXYWH(300, 80, 160, 60), markup.DefaultStyle()))
//	doc.Undo()
//	doc.Redo()
//
//	// Export with redactions applied.
//	data, err := doc.Export(markup.FormatPNG, markup.WithScale(2))
//
// # Architecture
//
// The library is organized into:
//   - Public API: Document, Annotation, Style, Canvas, Point, Rect
//   - Internal: raster (coverage-based shape drawing), filter (blur, pixelate)
//   - Encoders: PNG, JPEG, and single-page PDF export
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//
// # Concurrency
//
// A Document is owned by a single goroutine: mutation, selection, and
// history calls must be serialized by the caller. Rendering and export
// read an immutable snapshot and may run elsewhere as long as the
// document is not mutated concurrently.
package markup

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
