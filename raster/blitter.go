package raster

import (
	"image/color"

	"github.com/gogpu/region"
)

// Blitter writes runs of pixels with a coverage alpha.
type Blitter interface {
	// BlitH blits a horizontal span covering [x, x+width) at row y.
	BlitH(x, y, width int, alpha uint8)

	// BlitV blits a vertical span covering [y, y+height) at column x.
	BlitV(x, y, height int, alpha uint8)
}

// PixmapBlitter implements Blitter for a solid color on a Pixmap.
// It handles bounds checking and alpha blending.
type PixmapBlitter struct {
	pixmap *Pixmap
	color  color.RGBA
}

// NewPixmapBlitter creates a blitter painting c into pixmap.
func NewPixmapBlitter(pixmap *Pixmap, c color.RGBA) *PixmapBlitter {
	return &PixmapBlitter{pixmap: pixmap, color: c}
}

// BlitH blits a horizontal span with the given alpha coverage.
func (b *PixmapBlitter) BlitH(x, y, width int, alpha uint8) {
	if alpha == 0 || width <= 0 {
		return
	}
	if alpha == 255 && b.color.A == 255 {
		b.pixmap.FillSpan(x, x+width, y, b.color)
		return
	}
	x1, x2 := max(x, 0), min(x+width, b.pixmap.Width())
	for px := x1; px < x2; px++ {
		b.pixmap.BlendPixelAlpha(px, y, b.color, alpha)
	}
}

// BlitV blits a vertical span with the given alpha coverage.
func (b *PixmapBlitter) BlitV(x, y, height int, alpha uint8) {
	if alpha == 0 || height <= 0 {
		return
	}
	y1, y2 := max(y, 0), min(y+height, b.pixmap.Height())
	for py := y1; py < y2; py++ {
		b.pixmap.BlendPixelAlpha(x, py, b.color, alpha)
	}
}

// ClipBlitter forwards the parts of each span that lie inside a region.
type ClipBlitter struct {
	dst  Blitter
	clip *region.Region
}

// NewClipBlitter wraps dst so that only pixels inside clip are written.
// The clip must not change while the blitter is in use.
func NewClipBlitter(dst Blitter, clip *region.Region) *ClipBlitter {
	return &ClipBlitter{dst: dst, clip: clip}
}

// BlitH splits the span against the band of the clip containing row y.
func (b *ClipBlitter) BlitH(x, y, width int, alpha uint8) {
	if width <= 0 {
		return
	}
	yy := int32(y)
	x1, x2 := int32(x), int32(x+width)
	for band := range b.clip.Bands() {
		if band[0].Y2 <= yy {
			continue
		}
		if band[0].Y1 > yy {
			return
		}
		for _, box := range band {
			if box.X1 >= x2 {
				return
			}
			lo, hi := max(box.X1, x1), min(box.X2, x2)
			if lo < hi {
				b.dst.BlitH(int(lo), y, int(hi-lo), alpha)
			}
		}
		return
	}
}

// BlitV emits one run per band whose box covers column x.
func (b *ClipBlitter) BlitV(x, y, height int, alpha uint8) {
	if height <= 0 {
		return
	}
	xx := int32(x)
	y1, y2 := int32(y), int32(y+height)
	for band := range b.clip.Bands() {
		if band[0].Y2 <= y1 {
			continue
		}
		if band[0].Y1 >= y2 {
			return
		}
		for _, box := range band {
			if box.X1 > xx {
				break
			}
			if xx < box.X2 {
				lo, hi := max(box.Y1, y1), min(box.Y2, y2)
				b.dst.BlitV(x, int(lo), int(hi-lo), alpha)
				break
			}
		}
	}
}
