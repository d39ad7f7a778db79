package markup

import (
	"fmt"
	"image"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// The engine ships one embedded face (Go Regular) so text rendering is
// deterministic and needs no system font lookup.
var (
	baseFontOnce sync.Once
	baseFont     *opentype.Font
	baseFontErr  error
)

// loadBaseFont parses the embedded font once.
func loadBaseFont() (*opentype.Font, error) {
	baseFontOnce.Do(func() {
		baseFont, baseFontErr = opentype.Parse(goregular.TTF)
		if baseFontErr != nil {
			baseFontErr = fmt.Errorf("markup: parsing embedded font: %w", baseFontErr)
		}
	})
	return baseFont, baseFontErr
}

// faceCache caches faces per font size. Face creation walks the font
// tables, so repeated renders at the same size should not repeat it.
// Sizes are quantized to 0.25px.
type faceCache struct {
	mu    sync.Mutex
	faces map[int32]font.Face
}

var faces = faceCache{faces: make(map[int32]font.Face)}

func (fc *faceCache) get(size float64) (font.Face, error) {
	if size <= 0 {
		size = DefaultStyle().FontSize
	}
	key := int32(size * 4)

	fc.mu.Lock()
	defer fc.mu.Unlock()
	if f, ok := fc.faces[key]; ok {
		return f, nil
	}

	parsed, err := loadBaseFont()
	if err != nil {
		return nil, err
	}
	f, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("markup: creating %gpx face: %w", size, err)
	}
	fc.faces[key] = f
	return f, nil
}

// drawText draws multi-line text with its top-left corner at (x, y).
// Lines are separated by '\n' and spaced by the face's line height.
func drawText(c *Canvas, text string, x, y, size float64, col RGBA) error {
	face, err := faces.get(size)
	if err != nil {
		return err
	}

	metrics := face.Metrics()
	ascent := float64(metrics.Ascent) / 64
	lineHeight := float64(metrics.Height) / 64

	drawer := &font.Drawer{
		Dst:  c,
		Src:  image.NewUniform(col.Color()),
		Face: face,
	}
	for i, line := range strings.Split(text, "\n") {
		drawer.Dot = fixed.Point26_6{
			X: fixed.Int26_6(x * 64),
			Y: fixed.Int26_6((y + ascent + float64(i)*lineHeight) * 64),
		}
		drawer.DrawString(line)
	}
	return nil
}

// measureText returns the pixel width and height of a single line.
func measureText(text string, size float64) (w, h float64, err error) {
	face, err := faces.get(size)
	if err != nil {
		return 0, 0, err
	}
	metrics := face.Metrics()
	return float64(font.MeasureString(face, text)) / 64,
		float64(metrics.Ascent+metrics.Descent) / 64, nil
}
