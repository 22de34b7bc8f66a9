package region

import (
	"cmp"
	"slices"
)

// minAppendSize is the initial capacity reserved when appending into an
// empty region, since appends usually come in batches.
const minAppendSize = 200

// Append adds the rectangles of src to r without merging them. The result
// keeps the YX-banded form when src lies entirely below r (or right of r's
// last rectangle within the same band), or entirely above it; otherwise r
// becomes an unordered collection of rectangles and the caller must call
// Validate before using r in any other operation.
func (r *Region) Append(src *Region) error {
	if src.broken {
		r.setBroken()
		return ErrBroken
	}
	if r.broken {
		return ErrBroken
	}
	if src.data == nil && r.NumRects() == 0 {
		r.extents = src.extents
		r.data = nil
		return nil
	}

	old := src.boxes()
	n := len(old)
	if n == 0 {
		return nil
	}
	if r == src {
		old = slices.Clone(old)
	}

	dn := r.NumRects()
	size := n
	if dn == 0 && size < minAppendSize {
		size = minAppendSize
	}
	if err := r.reserve(size); err != nil {
		return err
	}

	prepend := false
	switch {
	case dn == 0:
		r.extents = src.extents
	case r.extents.X2 > r.extents.X1:
		first, last := old[0], r.data[dn-1]
		if bandedAfter(first, last) {
			r.extents.X1 = min(r.extents.X1, src.extents.X1)
			r.extents.X2 = max(r.extents.X2, src.extents.X2)
			r.extents.Y2 = src.extents.Y2
			break
		}
		first, last = r.data[0], old[n-1]
		if bandedAfter(first, last) {
			prepend = true
			r.extents.X1 = min(r.extents.X1, src.extents.X1)
			r.extents.X2 = max(r.extents.X2, src.extents.X2)
			r.extents.Y1 = src.extents.Y1
			break
		}
		r.markUnsorted()
	}

	if prepend {
		r.data = r.data[:dn+n]
		copy(r.data[n:], r.data[:dn])
		copy(r.data, old)
		return nil
	}
	r.data = append(r.data, old...)
	return nil
}

// bandedAfter reports whether first can follow last in a banded list
// without merging: strictly below it, or in the same band and strictly to
// its right.
func bandedAfter(first, last Box) bool {
	return first.Y1 > last.Y2 ||
		(first.Y1 == last.Y1 && first.Y2 == last.Y2 && first.X1 > last.X2)
}

// accumulator is a region under construction during Validate.
type accumulator struct {
	reg      Region
	prevBand int
	curBand  int
}

// Validate turns r, a collection of well-formed rectangles in any order
// (as left by Append), into a valid banded region covering their union.
// It reports whether any two rectangles overlapped.
//
// The rectangles are sorted by (y1, x1) and scattered into the fewest
// banded accumulators that accept them without splitting, which are then
// unioned pairwise in a binary merge.
func (r *Region) Validate() (overlap bool, err error) {
	if r.broken {
		return false, ErrBroken
	}
	if r.data == nil {
		return false, nil
	}
	numRects := len(r.data)
	if numRects == 0 {
		r.setEmpty()
		return false, nil
	}
	if r.extents.X1 < r.extents.X2 {
		// Already banded.
		r.normalize()
		return false, nil
	}

	slices.SortFunc(r.data, func(a, b Box) int {
		if c := cmp.Compare(a.Y1, b.Y1); c != 0 {
			return c
		}
		return cmp.Compare(a.X1, b.X1)
	})

	// The first accumulator reuses r's storage. It never outgrows it:
	// every box it receives comes from a position at or after its end.
	rects := r.data
	ri := make([]accumulator, 1, 4)
	ri[0].reg = Region{extents: rects[0], data: rects[:1], alloc: r.alloc}

	bail := func(err error) (bool, error) {
		for i := range ri {
			ri[i].reg.Destroy()
		}
		r.setBroken()
		return false, err
	}

	for i := 1; i < numRects; i++ {
		box := rects[i]
		placed := false
		for j := range ri {
			rit := &ri[j]
			reg := &rit.reg
			last := &reg.data[len(reg.data)-1]

			if box.Y1 == last.Y1 && box.Y2 == last.Y2 {
				// Same band: merge with or append after the last box.
				if box.X1 <= last.X2 {
					if box.X1 < last.X2 {
						overlap = true
					}
					last.X2 = max(last.X2, box.X2)
				} else {
					if err := reg.addRect(box.X1, box.Y1, box.X2, box.Y2); err != nil {
						return bail(err)
					}
				}
				placed = true
				break
			}
			if box.Y1 >= last.Y2 {
				// Start a new band.
				reg.extents.X2 = max(reg.extents.X2, last.X2)
				reg.extents.X1 = min(reg.extents.X1, box.X1)
				rit.prevBand = reg.coalesceBand(rit.prevBand, rit.curBand)
				rit.curBand = len(reg.data)
				if err := reg.addRect(box.X1, box.Y1, box.X2, box.Y2); err != nil {
					return bail(err)
				}
				placed = true
				break
			}
			// This accumulator would need a box split; try the next.
		}
		if placed {
			continue
		}

		acc := accumulator{reg: Region{extents: box, alloc: r.alloc}}
		if err := acc.reg.reserve((numRects - i + len(ri)) / (len(ri) + 1)); err != nil {
			ri = append(ri, acc)
			return bail(err)
		}
		ri = append(ri, acc)
	}

	for j := range ri {
		rit := &ri[j]
		reg := &rit.reg
		last := reg.data[len(reg.data)-1]
		reg.extents.Y2 = last.Y2
		reg.extents.X2 = max(reg.extents.X2, last.X2)
		reg.coalesceBand(rit.prevBand, rit.curBand)
		if len(reg.data) == 1 {
			reg.extents = reg.data[0]
			reg.data = nil
		}
	}

	Logger().Debug("region: validate",
		"rects", numRects,
		"accumulators", len(ri))

	for numRI := len(ri); numRI > 1; {
		half := numRI / 2
		for j := numRI & 1; j < half+(numRI&1); j++ {
			reg, hreg := &ri[j].reg, &ri[j+half].reg
			ext := reg.extents.Bound(hreg.extents)
			o, err := reg.op(reg, hreg, opUnion)
			if err != nil {
				return bail(err)
			}
			overlap = overlap || o
			reg.extents = ext
			hreg.Destroy()
		}
		numRI -= half
	}

	*r = ri[0].reg
	r.normalize()
	return overlap, nil
}
