package raster

import (
	"image/color"

	"github.com/gogpu/region"
)

// FillRegion paints every pixel of r that lies inside dst and returns the
// painted region.
func FillRegion(dst *Pixmap, r *region.Region, c color.RGBA) (*region.Region, error) {
	painted := region.New()
	if err := painted.IntersectRect(r, dst.Box()); err != nil {
		return nil, err
	}
	for _, b := range painted.Rects() {
		for y := b.Y1; y < b.Y2; y++ {
			dst.FillSpan(int(b.X1), int(b.X2), int(y), c)
		}
	}
	return painted, nil
}

// FillBox paints the part of b inside clip. A nil clip is the whole
// pixmap.
func FillBox(dst *Pixmap, clip *region.Region, b region.Box, c color.RGBA) (*region.Region, error) {
	var r region.Region
	if err := r.IntersectRect(clipOrBounds(dst, clip), b); err != nil {
		return nil, err
	}
	return FillRegion(dst, &r, c)
}

func clipOrBounds(dst *Pixmap, clip *region.Region) *region.Region {
	if clip == nil {
		return region.NewBox(dst.Box())
	}
	return clip
}
