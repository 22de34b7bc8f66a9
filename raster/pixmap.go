// Package raster draws into RGBA pixmaps through region clips: box fills,
// zero-width lines, bitmap glyphs and area copies. Every drawing call
// reports the region it changed so callers can feed damage tracking.
package raster

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/gogpu/region"
)

// Pixmap represents a rectangular pixel buffer.
type Pixmap struct {
	width  int
	height int
	data   []uint8 // RGBA format, 4 bytes per pixel
}

// NewPixmap creates a new pixmap with the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (RGBA format).
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// Box returns the pixmap bounds as a region box.
func (p *Pixmap) Box() region.Box {
	return region.Rect(0, 0, int32(p.width), int32(p.height))
}

// SetPixel sets the color of a single pixel.
func (p *Pixmap) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = c.R
	p.data[i+1] = c.G
	p.data[i+2] = c.B
	p.data[i+3] = c.A
}

// GetPixel returns the color of a single pixel.
func (p *Pixmap) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return color.RGBA{}
	}
	i := (y*p.width + x) * 4
	return color.RGBA{R: p.data[i+0], G: p.data[i+1], B: p.data[i+2], A: p.data[i+3]}
}

// FillSpan sets the pixels [x1, x2) of row y.
func (p *Pixmap) FillSpan(x1, x2, y int, c color.RGBA) {
	if y < 0 || y >= p.height {
		return
	}
	x1, x2 = max(x1, 0), min(x2, p.width)
	if x1 >= x2 {
		return
	}
	row := p.data[(y*p.width+x1)*4 : (y*p.width+x2)*4]
	for i := 0; i < len(row); i += 4 {
		row[i+0] = c.R
		row[i+1] = c.G
		row[i+2] = c.B
		row[i+3] = c.A
	}
}

// BlendPixelAlpha composites c over the existing pixel with the given
// coverage.
func (p *Pixmap) BlendPixelAlpha(x, y int, c color.RGBA, alpha uint8) {
	if alpha == 0 {
		return
	}
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	if alpha == 255 && c.A == 255 {
		p.SetPixel(x, y, c)
		return
	}

	// Source-over on premultiplied components.
	existing := p.GetPixel(x, y)
	sa := uint32(c.A) * uint32(alpha) / 255
	inv := 255 - sa
	blend := func(s, d uint8) uint8 {
		return uint8((uint32(s)*uint32(alpha)/255 + uint32(d)*inv/255))
	}
	p.SetPixel(x, y, color.RGBA{
		R: blend(c.R, existing.R),
		G: blend(c.G, existing.G),
		B: blend(c.B, existing.B),
		A: uint8(sa + uint32(existing.A)*inv/255),
	})
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c color.RGBA) {
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = c.R
		p.data[i+1] = c.G
		p.data[i+2] = c.B
		p.data[i+3] = c.A
	}
}

// ToImage converts the pixmap to an image.RGBA.
func (p *Pixmap) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// FromImage creates a pixmap from an image.
func FromImage(img image.Image) *Pixmap {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pm := NewPixmap(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.RGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.RGBA)
			pm.SetPixel(x, y, c)
		}
	}

	return pm
}

// SavePNG saves the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	img := p.ToImage()
	return png.Encode(f, img)
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.GetPixel(x, y)
}

// Set implements the draw.Image interface.
func (p *Pixmap) Set(x, y int, c color.Color) {
	p.SetPixel(x, y, color.RGBAModel.Convert(c).(color.RGBA))
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.RGBAModel
}
