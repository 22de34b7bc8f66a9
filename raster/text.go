package raster

import (
	"image"
	"image/color"

	"github.com/gogpu/region"
	"github.com/rivo/uniseg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/width"
)

// Option configures text drawing.
type Option func(*textOptions)

type textOptions struct {
	face font.Face
}

func buildOptions(opts []Option) textOptions {
	o := textOptions{face: basicfont.Face7x13}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithFace selects the font face glyph masks are taken from. The default
// is the 7x13 fixed bitmap face.
func WithFace(f font.Face) Option {
	return func(o *textOptions) {
		if f != nil {
			o.face = f
		}
	}
}

// DrawString blends the glyphs of s in color c, starting with the baseline
// origin at (x, y), clipped to clip (nil for the whole pixmap). One glyph is
// drawn per grapheme cluster. It returns the region covered by the glyph
// boxes.
func DrawString(dst *Pixmap, clip *region.Region, x, y int, s string, c color.RGBA, opts ...Option) (*region.Region, error) {
	o := buildOptions(opts)
	return drawGlyphs(dst, clipOrBounds(dst, clip), fixed.P(x, y), s, c, o.face, false)
}

// ImageText paints the text cells of s with bg and then draws the glyphs
// in fg on top, like the core protocol's ImageText requests. East Asian
// wide and fullwidth characters take two cells.
func ImageText(dst *Pixmap, clip *region.Region, x, y int, s string, fg, bg color.RGBA, opts ...Option) (*region.Region, error) {
	o := buildOptions(opts)
	clip = clipOrBounds(dst, clip)

	m := o.face.Metrics()
	cells := fixed.I(0)
	forEachCluster(s, func(r rune) {
		cells += cellAdvance(o.face, r)
	})
	background := region.Rect(
		int32(x), int32(y-m.Ascent.Ceil()),
		int32(x+cells.Ceil()), int32(y+m.Descent.Ceil()),
	)
	painted, err := FillBox(dst, clip, background, bg)
	if err != nil {
		return nil, err
	}

	glyphs, err := drawGlyphs(dst, clip, fixed.P(x, y), s, fg, o.face, true)
	if err != nil {
		return nil, err
	}
	if err := painted.Union(painted, glyphs); err != nil {
		return nil, err
	}
	return painted, nil
}

// drawGlyphs draws one glyph per grapheme cluster. In cell mode each
// cluster advances by its cell width instead of the glyph advance.
func drawGlyphs(dst *Pixmap, clip *region.Region, dot fixed.Point26_6, s string, c color.RGBA, face font.Face, cells bool) (*region.Region, error) {
	covered := region.New()
	blitter := NewClipBlitter(NewPixmapBlitter(dst, c), clip)
	var err error
	forEachCluster(s, func(r rune) {
		if err != nil {
			return
		}
		dr, mask, maskp, advance, ok := face.Glyph(dot, r)
		if cells {
			advance = cellAdvance(face, r)
		}
		dot.X += advance
		if !ok || dr.Empty() {
			return
		}
		if err = covered.Append(region.NewBox(region.FromImageRect(dr))); err != nil {
			return
		}
		blitMask(blitter, dr, mask, maskp)
	})
	if err != nil {
		return nil, err
	}
	if _, err := covered.Validate(); err != nil {
		return nil, err
	}
	if err := covered.Intersect(covered, clip); err != nil {
		return nil, err
	}
	return covered, nil
}

// blitMask sends the glyph mask to b as horizontal runs of equal coverage.
// Mask pixel maskp corresponds to dr.Min.
func blitMask(b Blitter, dr image.Rectangle, mask image.Image, maskp image.Point) {
	coverage := func(x, y int) uint8 {
		_, _, _, a := mask.At(maskp.X+x-dr.Min.X, maskp.Y+y-dr.Min.Y).RGBA()
		return uint8(a >> 8)
	}
	for y := dr.Min.Y; y < dr.Max.Y; y++ {
		for x := dr.Min.X; x < dr.Max.X; {
			a := coverage(x, y)
			run := 1
			for x+run < dr.Max.X && coverage(x+run, y) == a {
				run++
			}
			if a != 0 {
				b.BlitH(x, y, run, a)
			}
			x += run
		}
	}
}

// forEachCluster calls fn with the first rune of every grapheme cluster.
func forEachCluster(s string, fn func(r rune)) {
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		if runes := g.Runes(); len(runes) > 0 {
			fn(runes[0])
		}
	}
}

// cellAdvance is the width of the character cell for r: the face's advance
// for '0', doubled for wide characters.
func cellAdvance(face font.Face, r rune) fixed.Int26_6 {
	adv, ok := face.GlyphAdvance('0')
	if !ok {
		adv, _ = face.GlyphAdvance(r)
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2 * adv
	}
	return adv
}
