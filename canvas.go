package markup

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
)

// Canvas represents a rectangular pixel buffer.
// Pixels are stored as straight (non-premultiplied) RGBA bytes.
type Canvas struct {
	width  int
	height int
	data   []uint8 // RGBA format, 4 bytes per pixel
}

// NewCanvas creates a new canvas with the given dimensions.
// Negative dimensions are treated as zero.
func NewCanvas(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Canvas{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the canvas.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the height of the canvas.
func (c *Canvas) Height() int {
	return c.height
}

// Data returns the raw pixel data (RGBA format).
func (c *Canvas) Data() []uint8 {
	return c.data
}

// SetPixel sets the color of a single pixel.
func (c *Canvas) SetPixel(x, y int, col RGBA) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	i := (y*c.width + x) * 4
	c.data[i+0] = uint8(clamp255(col.R * 255))
	c.data[i+1] = uint8(clamp255(col.G * 255))
	c.data[i+2] = uint8(clamp255(col.B * 255))
	c.data[i+3] = uint8(clamp255(col.A * 255))
}

// GetPixel returns the color of a single pixel.
func (c *Canvas) GetPixel(x, y int) RGBA {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return Transparent
	}
	i := (y*c.width + x) * 4
	return RGBA{
		R: float64(c.data[i+0]) / 255,
		G: float64(c.data[i+1]) / 255,
		B: float64(c.data[i+2]) / 255,
		A: float64(c.data[i+3]) / 255,
	}
}

// Clear fills the entire canvas with a color.
func (c *Canvas) Clear(col RGBA) {
	r := uint8(clamp255(col.R * 255))
	g := uint8(clamp255(col.G * 255))
	b := uint8(clamp255(col.B * 255))
	a := uint8(clamp255(col.A * 255))

	for i := 0; i < len(c.data); i += 4 {
		c.data[i+0] = r
		c.data[i+1] = g
		c.data[i+2] = b
		c.data[i+3] = a
	}
}

// Clone returns a deep copy of the canvas.
func (c *Canvas) Clone() *Canvas {
	out := NewCanvas(c.width, c.height)
	copy(out.data, c.data)
	return out
}

// DrawImage composites src over the canvas with its top-left corner
// at (x, y), clipping to the canvas bounds.
func (c *Canvas) DrawImage(src image.Image, x, y int) {
	if src == nil {
		return
	}
	bounds := src.Bounds()
	for sy := 0; sy < bounds.Dy(); sy++ {
		dy := y + sy
		if dy < 0 || dy >= c.height {
			continue
		}
		for sx := 0; sx < bounds.Dx(); sx++ {
			dx := x + sx
			if dx < 0 || dx >= c.width {
				continue
			}
			col := FromColor(src.At(bounds.Min.X+sx, bounds.Min.Y+sy))
			c.blendPixel(dx, dy, col)
		}
	}
}

// blendPixel composites col over the existing pixel (source-over,
// straight alpha).
func (c *Canvas) blendPixel(x, y int, col RGBA) {
	if col.A <= 0 {
		return
	}
	if col.A >= 1 {
		c.SetPixel(x, y, col)
		return
	}
	dst := c.GetPixel(x, y)
	outA := col.A + dst.A*(1-col.A)
	if outA <= 0 {
		c.SetPixel(x, y, Transparent)
		return
	}
	c.SetPixel(x, y, RGBA{
		R: (col.R*col.A + dst.R*dst.A*(1-col.A)) / outA,
		G: (col.G*col.A + dst.G*dst.A*(1-col.A)) / outA,
		B: (col.B*col.A + dst.B*dst.A*(1-col.A)) / outA,
		A: outA,
	})
}

// Crop returns a copy of the canvas region r, clamped to the canvas
// bounds. The result is empty if r does not overlap the canvas.
func (c *Canvas) Crop(r image.Rectangle) *Canvas {
	r = r.Intersect(image.Rect(0, 0, c.width, c.height))
	out := NewCanvas(r.Dx(), r.Dy())
	for y := 0; y < out.height; y++ {
		srcOff := ((r.Min.Y+y)*c.width + r.Min.X) * 4
		dstOff := y * out.width * 4
		copy(out.data[dstOff:dstOff+out.width*4], c.data[srcOff:srcOff+out.width*4])
	}
	return out
}

// ToImage converts the canvas to an image.NRGBA.
func (c *Canvas) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, c.width, c.height))
	copy(img.Pix, c.data)
	return img
}

// CanvasFromImage creates a canvas from an image.
func CanvasFromImage(img image.Image) *Canvas {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	c := NewCanvas(width, height)

	if src, ok := img.(*image.NRGBA); ok {
		for y := 0; y < height; y++ {
			srcOff := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			dstOff := y * width * 4
			copy(c.data[dstOff:dstOff+width*4], src.Pix[srcOff:srcOff+width*4])
		}
		return c
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c.SetPixel(x, y, FromColor(img.At(bounds.Min.X+x, bounds.Min.Y+y)))
		}
	}
	return c
}

// SavePNG saves the canvas to a PNG file.
func (c *Canvas) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return png.Encode(f, c.ToImage())
}

// At implements the image.Image interface.
func (c *Canvas) At(x, y int) color.Color {
	return c.GetPixel(x, y).Color()
}

// Set implements the draw.Image interface.
func (c *Canvas) Set(x, y int, col color.Color) {
	c.SetPixel(x, y, FromColor(col))
}

// Bounds implements the image.Image interface.
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.width, c.height)
}

// ColorModel implements the image.Image interface.
func (c *Canvas) ColorModel() color.Model {
	return color.NRGBAModel
}

// draw.Image is satisfied so x/image/draw scalers can write into a Canvas.
var _ draw.Image = (*Canvas)(nil)
