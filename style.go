package markup

// Style defines how an annotation is drawn.
// It encapsulates stroke, fill, text, and redaction parameters in a
// single value so annotations stay plain data.
type Style struct {
	// StrokeWidth is the outline width in pixels. Default: 3.0
	StrokeWidth float64

	// Stroke is the outline color. Default: Red
	Stroke RGBA

	// Fill is the interior color. Default: Transparent (no fill)
	Fill RGBA

	// FontSize is the text height in pixels for text annotations
	// and counter badges. Default: 18.0
	FontSize float64

	// Opacity multiplies the alpha of both stroke and fill when the
	// annotation is drawn. Default: 1.0
	Opacity float64

	// BlurRadius is the Gaussian radius used by blur redactions,
	// in pixels at 1x scale. Default: 8.0
	BlurRadius float64

	// PixelSize is the block edge used by pixelate redactions,
	// in pixels at 1x scale. Default: 12
	PixelSize int
}

// DefaultStyle returns a Style with default settings.
func DefaultStyle() Style {
	return Style{
		StrokeWidth: 3.0,
		Stroke:      Red,
		Fill:        Transparent,
		FontSize:    18.0,
		Opacity:     1.0,
		BlurRadius:  8.0,
		PixelSize:   12,
	}
}

// WithStrokeWidth returns a copy of the Style with the given stroke width.
func (s Style) WithStrokeWidth(w float64) Style {
	s.StrokeWidth = w
	return s
}

// WithStroke returns a copy of the Style with the given stroke color.
func (s Style) WithStroke(c RGBA) Style {
	s.Stroke = c
	return s
}

// WithFill returns a copy of the Style with the given fill color.
func (s Style) WithFill(c RGBA) Style {
	s.Fill = c
	return s
}

// WithFontSize returns a copy of the Style with the given font size.
func (s Style) WithFontSize(size float64) Style {
	s.FontSize = size
	return s
}

// WithOpacity returns a copy of the Style with the given opacity.
// Values are clamped to [0, 1].
func (s Style) WithOpacity(o float64) Style {
	if o < 0 {
		o = 0
	} else if o > 1 {
		o = 1
	}
	s.Opacity = o
	return s
}

// WithBlurRadius returns a copy of the Style with the given blur radius.
func (s Style) WithBlurRadius(r float64) Style {
	s.BlurRadius = r
	return s
}

// WithPixelSize returns a copy of the Style with the given pixelate block size.
func (s Style) WithPixelSize(px int) Style {
	s.PixelSize = px
	return s
}

// sanitizeStyle replaces non-finite numeric fields with defaults and
// clamps opacity into range.
func sanitizeStyle(s Style) Style {
	def := DefaultStyle()
	s.StrokeWidth = finiteOr(s.StrokeWidth, def.StrokeWidth)
	s.FontSize = finiteOr(s.FontSize, def.FontSize)
	s.Opacity = finiteOr(s.Opacity, def.Opacity)
	s.BlurRadius = finiteOr(s.BlurRadius, def.BlurRadius)
	if s.StrokeWidth < 0 {
		s.StrokeWidth = 0
	}
	if s.Opacity < 0 {
		s.Opacity = 0
	} else if s.Opacity > 1 {
		s.Opacity = 1
	}
	if s.BlurRadius < 0 {
		s.BlurRadius = 0
	}
	if s.PixelSize < 0 {
		s.PixelSize = 0
	}
	return s
}
