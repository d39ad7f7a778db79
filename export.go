package markup

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// ExportFormat identifies an output encoding.
type ExportFormat uint8

// Export formats.
const (
	FormatPNG ExportFormat = iota
	FormatJPEG
	FormatPDF
)

// exportFormatNames maps formats to their string representations.
var exportFormatNames = [...]string{
	"png",
	"jpeg",
	"pdf",
}

// String returns the string representation of the format.
func (f ExportFormat) String() string {
	if int(f) < len(exportFormatNames) {
		return exportFormatNames[f]
	}
	return "unknown"
}

// ParseFormat converts a format name ("png", "jpeg", "jpg", "pdf")
// into an ExportFormat.
func ParseFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return FormatPNG, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// exportOptions holds export settings.
type exportOptions struct {
	scale       int
	jpegQuality int
}

// ExportOption configures an export.
type ExportOption func(*exportOptions)

// WithScale sets the integer output scale factor (1x, 2x, ...).
// Default: 1.
func WithScale(n int) ExportOption {
	return func(o *exportOptions) {
		o.scale = n
	}
}

// WithJPEGQuality sets the JPEG quality from 1 to 100. Default: 90.
func WithJPEGQuality(q int) ExportOption {
	return func(o *exportOptions) {
		o.jpegQuality = q
	}
}

// pdfDPI maps raster pixels onto PDF points: the page is sized so one
// pixel is 1/96 inch.
const pdfDPI = 96.0

// Export renders the document with redactions applied and encodes it
// into the requested format, returning the encoded bytes. Failures
// (zero-sized canvas, invalid scale, encoding errors) come back as
// typed errors; the document is unaffected and remains editable.
func (d *Document) Export(format ExportFormat, opts ...ExportOption) ([]byte, error) {
	o := exportOptions{scale: 1, jpegQuality: 90}
	for _, opt := range opts {
		opt(&o)
	}

	c, err := d.RenderExport(o.scale)
	if err != nil {
		return nil, err
	}
	Logger().Debug("markup: export",
		"format", format.String(), "w", c.Width(), "h", c.Height())

	var buf bytes.Buffer
	switch format {
	case FormatPNG:
		if err := png.Encode(&buf, c.ToImage()); err != nil {
			return nil, fmt.Errorf("markup: encoding png: %w", err)
		}
	case FormatJPEG:
		if err := jpeg.Encode(&buf, c.ToImage(), &jpeg.Options{Quality: o.jpegQuality}); err != nil {
			return nil, fmt.Errorf("markup: encoding jpeg: %w", err)
		}
	case FormatPDF:
		if err := encodePDF(&buf, c); err != nil {
			return nil, err
		}
	default:
		return nil, ErrUnsupportedFormat
	}
	return buf.Bytes(), nil
}

// encodePDF embeds the rendered raster into a single-page PDF sized
// exactly to the image.
func encodePDF(buf *bytes.Buffer, c *Canvas) error {
	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, c.ToImage()); err != nil {
		return fmt.Errorf("markup: encoding pdf raster: %w", err)
	}

	wPt := float64(c.Width()) * 72.0 / pdfDPI
	hPt := float64(c.Height()) * 72.0 / pdfDPI

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: wPt, Ht: hPt},
	})
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("canvas", opts, &pngBuf)
	pdf.ImageOptions("canvas", 0, 0, wPt, hPt, false, opts, 0, "")

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("markup: building pdf: %w", err)
	}
	if err := pdf.Output(buf); err != nil {
		return fmt.Errorf("markup: writing pdf: %w", err)
	}
	return nil
}
