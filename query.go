package region

import "sort"

// Overlap classifies how a box relates to a region.
type Overlap uint8

const (
	// Out means the box shares no pixel with the region.
	Out Overlap = iota
	// In means every pixel of the box is in the region.
	In
	// Part means the box is partly inside.
	Part
)

func (o Overlap) String() string {
	switch o {
	case Out:
		return "out"
	case In:
		return "in"
	case Part:
		return "part"
	}
	return "unknown"
}

// findBoxForY returns the index of the first rectangle with y2 > y, or
// len(rects). Bands are sorted, so y2 never decreases along the list.
func findBoxForY(rects []Box, y int32) int {
	return sort.Search(len(rects), func(i int) bool { return rects[i].Y2 > y })
}

// ContainsPoint reports whether the pixel (x, y) is in r.
func (r *Region) ContainsPoint(x, y int32) bool {
	_, ok := r.BoxAt(x, y)
	return ok
}

// BoxAt returns the rectangle of r containing the pixel (x, y).
func (r *Region) BoxAt(x, y int32) (Box, bool) {
	n := r.NumRects()
	if n == 0 || !r.extents.ContainsPoint(x, y) {
		return Box{}, false
	}
	if n == 1 {
		return r.extents, true
	}
	for i := findBoxForY(r.data, y); i < len(r.data); i++ {
		b := r.data[i]
		if y < b.Y1 || x < b.X1 {
			break
		}
		if x >= b.X2 {
			continue
		}
		return b, true
	}
	return Box{}, false
}

// ContainsRect reports whether b is entirely inside r, partly inside, or
// outside.
//
// The rectangles of r are walked top to bottom trying to cover b. Any gap
// met inside b marks it partly out; any rectangle crossing b marks it
// partly in. The walk stops as soon as both are known.
func (r *Region) ContainsRect(b Box) Overlap {
	n := r.NumRects()
	if n == 0 || b.Empty() || !r.extents.Overlaps(b) {
		return Out
	}
	if n == 1 {
		if r.extents.Contains(b) {
			return In
		}
		return Part
	}

	partIn, partOut := false, false
	x, y := b.X1, b.Y1
	rects := r.data
	for i := 0; i < len(rects); i++ {
		// Skip to the first band reaching below y.
		if rects[i].Y2 <= y {
			if i = findBoxForY(rects, y); i == len(rects) {
				break
			}
		}
		box := rects[i]

		if box.Y1 > y {
			// Missed part of b above this band.
			partOut = true
			if partIn || box.Y1 >= b.Y2 {
				break
			}
			y = box.Y1
		}

		if box.X2 <= x {
			continue
		}

		if box.X1 > x {
			// Missed part of b to the left.
			partOut = true
			if partIn {
				break
			}
		}

		if box.X1 < b.X2 {
			partIn = true
			if partOut {
				break
			}
		}

		if box.X2 >= b.X2 {
			// Finished with this band.
			y = box.Y2
			if y >= b.Y2 {
				break
			}
			x = b.X1
		} else {
			// Boxes in a band are maximal, so the rest of b in this
			// band is uncovered.
			partOut = true
			break
		}
	}

	switch {
	case !partIn:
		return Out
	case y < b.Y2 || partOut:
		return Part
	default:
		return In
	}
}

// Translate moves r by (dx, dy). Rectangles are clamped to the int32
// coordinate range; rectangles leaving it entirely are dropped.
func (r *Region) Translate(dx, dy int32) {
	if r.broken {
		return
	}
	if r.NumRects() == 0 {
		return
	}
	x1 := int64(r.extents.X1) + int64(dx)
	y1 := int64(r.extents.Y1) + int64(dy)
	x2 := int64(r.extents.X2) + int64(dx)
	y2 := int64(r.extents.Y2) + int64(dy)

	if inRange(x1, y1, x2, y2) {
		r.extents = Box{X1: int32(x1), Y1: int32(y1), X2: int32(x2), Y2: int32(y2)}
		for i := range r.data {
			r.data[i] = r.data[i].Translate(dx, dy)
		}
		return
	}
	if outOfRange(x1, y1, x2, y2) {
		r.setEmpty()
		return
	}

	if r.data == nil {
		r.extents = clampBox(x1, y1, x2, y2)
		return
	}
	out := r.data[:0]
	for _, b := range r.data {
		bx1 := int64(b.X1) + int64(dx)
		by1 := int64(b.Y1) + int64(dy)
		bx2 := int64(b.X2) + int64(dx)
		by2 := int64(b.Y2) + int64(dy)
		if outOfRange(bx1, by1, bx2, by2) {
			continue
		}
		out = append(out, clampBox(bx1, by1, bx2, by2))
	}
	r.data = out
	if len(r.data) == 0 {
		r.setEmpty()
		return
	}
	if len(r.data) == 1 {
		r.extents = r.data[0]
		r.data = nil
		return
	}
	r.setExtents()
}

func inRange(x1, y1, x2, y2 int64) bool {
	return x1 >= int64(MinCoord) && y1 >= int64(MinCoord) &&
		x2 <= int64(MaxCoord) && y2 <= int64(MaxCoord)
}

// outOfRange reports whether a translated box lies entirely outside the
// coordinate range.
func outOfRange(x1, y1, x2, y2 int64) bool {
	return x2 <= int64(MinCoord) || y2 <= int64(MinCoord) ||
		x1 >= int64(MaxCoord) || y1 >= int64(MaxCoord)
}

func clampBox(x1, y1, x2, y2 int64) Box {
	return Box{X1: clampCoord(x1), Y1: clampCoord(y1), X2: clampCoord(x2), Y2: clampCoord(y2)}
}
