package raster

import (
	"slices"

	"github.com/gogpu/region"
)

// CopyArea copies the pixels of srcRect in src to dst, shifted by
// (dx, dy). Only source pixels inside srcClip and destination pixels inside
// dstClip take part; nil clips are the pixmap bounds. src and dst may be
// the same pixmap with overlapping areas.
//
// It returns the destination region that received pixels and the region
// that could not be filled from the source, which the caller must repaint.
func CopyArea(dst, src *Pixmap, srcClip, dstClip *region.Region, srcRect region.Box, dx, dy int32) (copied, exposed *region.Region, err error) {
	srcClip = clipOrBounds(src, srcClip)
	dstClip = clipOrBounds(dst, dstClip)

	// Region.Translate clamps to the coordinate space; Box.Translate wraps.
	target := region.NewBox(srcRect)
	target.Translate(dx, dy)
	if err := target.Intersect(target, dstClip); err != nil {
		return nil, nil, err
	}
	if err := target.IntersectRect(target, dst.Box()); err != nil {
		return nil, nil, err
	}

	copied = region.New()
	if err := copied.IntersectRect(srcClip, srcRect); err != nil {
		return nil, nil, err
	}
	if err := copied.IntersectRect(copied, src.Box()); err != nil {
		return nil, nil, err
	}
	copied.Translate(dx, dy)
	if err := copied.Intersect(copied, target); err != nil {
		return nil, nil, err
	}

	for _, b := range copyOrder(copied, dx, dy) {
		copyBox(dst, src, b, int(dx), int(dy))
	}

	exposed = region.New()
	if err := exposed.Subtract(target, copied); err != nil {
		return nil, nil, err
	}

	region.Logger().Debug("raster: copy area",
		"src", srcRect,
		"dx", dx,
		"dy", dy,
		"copied", copied.NumRects(),
		"exposed", exposed.NumRects(),
	)
	return copied, exposed, nil
}

// copyOrder returns the destination boxes of r in an order that never
// reads a source pixel after it was overwritten: bands run bottom to top
// when moving down, boxes run right to left when moving right.
func copyOrder(r *region.Region, dx, dy int32) []region.Box {
	var bands [][]region.Box
	for band := range r.Bands() {
		band = slices.Clone(band)
		if dx > 0 {
			slices.Reverse(band)
		}
		bands = append(bands, band)
	}
	if dy > 0 {
		slices.Reverse(bands)
	}
	return slices.Concat(bands...)
}

// copyBox copies destination box b from src at offset (-dx, -dy). Rows run
// bottom-up when moving down. copy handles the overlap within a row.
func copyBox(dst, src *Pixmap, b region.Box, dx, dy int) {
	n := int(b.Dx()) * 4
	row := func(y int) {
		di := (y*dst.width + int(b.X1)) * 4
		si := ((y-dy)*src.width + int(b.X1) - dx) * 4
		copy(dst.data[di:di+n], src.data[si:si+n])
	}
	if dy > 0 {
		for y := int(b.Y2) - 1; y >= int(b.Y1); y-- {
			row(y)
		}
		return
	}
	for y := int(b.Y1); y < int(b.Y2); y++ {
		row(y)
	}
}
