package region

// opKind selects the per-band merge strategy of the band sweep.
type opKind uint8

const (
	opUnion opKind = iota
	opIntersect
	opSubtract
)

func (k opKind) String() string {
	switch k {
	case opUnion:
		return "union"
	case opIntersect:
		return "intersect"
	case opSubtract:
		return "subtract"
	}
	return "unknown"
}

// keepsNonOverlap reports whether y-spans covered by only the first or only
// the second operand are copied to the result.
func (k opKind) keepsNonOverlap() (first, second bool) {
	switch k {
	case opUnion:
		return true, true
	case opSubtract:
		return true, false
	}
	return false, false
}

// mergeBand emits the rectangles of one overlapping band pair clipped to
// [y1, y2). It reports whether two input rectangles overlapped.
func (k opKind) mergeBand(out *Region, r1, r2 []Box, y1, y2 int32) (bool, error) {
	switch k {
	case opUnion:
		return unionBand(out, r1, r2, y1, y2)
	case opIntersect:
		return false, intersectBand(out, r1, r2, y1, y2)
	default:
		return false, subtractBand(out, r1, r2, y1, y2)
	}
}

// op computes r = reg1 <k> reg2 with a single top-to-bottom sweep over the
// bands of both operands. Both operands must be non-empty; r may alias
// either. The result is written into fresh storage unless r is distinct
// from both operands, in which case its buffer is reused.
//
// The caller fixes up the extents of a multi-rectangle result.
func (r *Region) op(reg1, reg2 *Region, k opKind) (overlap bool, err error) {
	if reg1.broken || reg2.broken {
		r.setBroken()
		return false, ErrBroken
	}
	r1, r2 := reg1.boxes(), reg2.boxes()
	keep1, keep2 := k.keepsNonOverlap()

	out := Region{alloc: r.alloc}
	if r != reg1 && r != reg2 && r.data != nil {
		out.data = r.data[:0]
	}
	if size := 2 * max(len(r1), len(r2)); size > cap(out.data) {
		if err := out.reserve(size); err != nil {
			r.setBroken()
			return false, err
		}
	}

	// For a band present in only one operand, ybot is the bottom of the
	// previous intersection and clips its top while ytop, the top of the
	// next intersection, clips its bottom. For an overlapping band ytop
	// and ybot clip both operands.
	var ytop, ybot int32
	ybot = min(r1[0].Y1, r2[0].Y1)

	prevBand := 0
	i1, i2 := 0, 0
	for i1 < len(r1) && i2 < len(r2) {
		end1, top1 := findBand(r1, i1)
		end2, top2 := findBand(r2, i2)

		switch {
		case top1 < top2:
			if keep1 {
				top, bot := max(top1, ybot), min(r1[i1].Y2, top2)
				if top != bot {
					cur := len(out.data)
					if err := out.appendBand(r1[i1:end1], top, bot); err != nil {
						r.setBroken()
						return overlap, err
					}
					prevBand = out.coalesceBand(prevBand, cur)
				}
			}
			ytop = top2
		case top2 < top1:
			if keep2 {
				top, bot := max(top2, ybot), min(r2[i2].Y2, top1)
				if top != bot {
					cur := len(out.data)
					if err := out.appendBand(r2[i2:end2], top, bot); err != nil {
						r.setBroken()
						return overlap, err
					}
					prevBand = out.coalesceBand(prevBand, cur)
				}
			}
			ytop = top1
		default:
			ytop = top1
		}

		ybot = min(r1[i1].Y2, r2[i2].Y2)
		if ybot > ytop {
			cur := len(out.data)
			o, err := k.mergeBand(&out, r1[i1:end1], r2[i2:end2], ytop, ybot)
			overlap = overlap || o
			if err != nil {
				r.setBroken()
				return overlap, err
			}
			prevBand = out.coalesceBand(prevBand, cur)
		}

		if r1[i1].Y2 == ybot {
			i1 = end1
		}
		if r2[i2].Y2 == ybot {
			i2 = end2
		}
	}

	// Only the first remaining band can coalesce with the output; the rest
	// is already banded and is copied verbatim.
	var rest []Box
	var restIdx int
	switch {
	case i1 < len(r1) && keep1:
		rest, restIdx = r1, i1
	case i2 < len(r2) && keep2:
		rest, restIdx = r2, i2
	}
	if rest != nil {
		end, top := findBand(rest, restIdx)
		cur := len(out.data)
		if err := out.appendBand(rest[restIdx:end], max(top, ybot), rest[restIdx].Y2); err != nil {
			r.setBroken()
			return overlap, err
		}
		out.coalesceBand(prevBand, cur)
		if err := out.appendBoxes(rest[end:]); err != nil {
			r.setBroken()
			return overlap, err
		}
	}

	r.broken = false
	r.data = out.data
	r.normalize()
	return overlap, nil
}

// findBand returns the end of the band starting at rects[i] and its y1.
func findBand(rects []Box, i int) (end int, y1 int32) {
	y1 = rects[i].Y1
	end = i + 1
	for end < len(rects) && rects[end].Y1 == y1 {
		end++
	}
	return end, y1
}

// appendBand copies one band of an operand clipped vertically to [y1, y2).
// The band is already valid, so no horizontal merging is needed.
func (r *Region) appendBand(band []Box, y1, y2 int32) error {
	if err := r.reserve(len(band)); err != nil {
		return err
	}
	for _, b := range band {
		r.data = append(r.data, Box{X1: b.X1, Y1: y1, X2: b.X2, Y2: y2})
	}
	return nil
}

func (r *Region) appendBoxes(rects []Box) error {
	if len(rects) == 0 {
		return nil
	}
	if err := r.reserve(len(rects)); err != nil {
		return err
	}
	r.data = append(r.data, rects...)
	return nil
}

// addRect appends one rectangle, growing the buffer by the append policy.
func (r *Region) addRect(x1, y1, x2, y2 int32) error {
	if r.data == nil || len(r.data) == cap(r.data) {
		if err := r.reserve(1); err != nil {
			return err
		}
	}
	r.data = append(r.data, Box{X1: x1, Y1: y1, X2: x2, Y2: y2})
	return nil
}

// coalesceBand tries to merge the band starting at curStart, which must be
// the last band of r, into the band starting at prevStart. It returns the
// start of the band the next emitted band should be compared against.
func (r *Region) coalesceBand(prevStart, curStart int) int {
	if curStart-prevStart != len(r.data)-curStart {
		return curStart
	}
	return r.coalesce(prevStart, curStart)
}

// coalesce merges two vertically adjacent bands with identical x extents
// by stretching the previous band down and dropping the current one.
func (r *Region) coalesce(prevStart, curStart int) int {
	n := curStart - prevStart
	if n == 0 {
		return curStart
	}
	prev, cur := r.data[prevStart:curStart], r.data[curStart:]
	if prev[0].Y2 != cur[0].Y1 {
		return curStart
	}
	for i := range prev {
		if prev[i].X1 != cur[i].X1 || prev[i].X2 != cur[i].X2 {
			return curStart
		}
	}
	y2 := cur[0].Y2
	for i := range prev {
		prev[i].Y2 = y2
	}
	r.data = r.data[:curStart]
	return prevStart
}

// unionBand merges two bands left to right, folding every rectangle that
// touches or overlaps the running rectangle into it.
func unionBand(out *Region, r1, r2 []Box, y1, y2 int32) (overlap bool, err error) {
	var x1, x2 int32
	i, j := 0, 0
	if r1[0].X1 < r2[0].X1 {
		x1, x2 = r1[0].X1, r1[0].X2
		i++
	} else {
		x1, x2 = r2[0].X1, r2[0].X2
		j++
	}

	merge := func(b Box) error {
		if b.X1 <= x2 {
			if b.X1 < x2 {
				overlap = true
			}
			x2 = max(x2, b.X2)
			return nil
		}
		if err := out.addRect(x1, y1, x2, y2); err != nil {
			return err
		}
		x1, x2 = b.X1, b.X2
		return nil
	}

	for i < len(r1) && j < len(r2) {
		var b Box
		if r1[i].X1 < r2[j].X1 {
			b = r1[i]
			i++
		} else {
			b = r2[j]
			j++
		}
		if err := merge(b); err != nil {
			return overlap, err
		}
	}
	for ; i < len(r1); i++ {
		if err := merge(r1[i]); err != nil {
			return overlap, err
		}
	}
	for ; j < len(r2); j++ {
		if err := merge(r2[j]); err != nil {
			return overlap, err
		}
	}
	return overlap, out.addRect(x1, y1, x2, y2)
}

// intersectBand emits the x-intersection of every overlapping pair,
// advancing whichever rectangle ends first.
func intersectBand(out *Region, r1, r2 []Box, y1, y2 int32) error {
	i, j := 0, 0
	for i < len(r1) && j < len(r2) {
		x1 := max(r1[i].X1, r2[j].X1)
		x2 := min(r1[i].X2, r2[j].X2)
		if x1 < x2 {
			if err := out.addRect(x1, y1, x2, y2); err != nil {
				return err
			}
		}
		if r1[i].X2 == x2 {
			i++
		}
		if r2[j].X2 == x2 {
			j++
		}
	}
	return nil
}

// subtractBand emits the parts of the minuend band r1 not covered by the
// subtrahend band r2.
func subtractBand(out *Region, r1, r2 []Box, y1, y2 int32) error {
	i, j := 0, 0
	x1 := r1[0].X1
	for i < len(r1) && j < len(r2) {
		m, s := r1[i], r2[j]
		switch {
		case s.X2 <= x1:
			// Subtrahend entirely left of the fence.
			j++
		case s.X1 <= x1:
			// Subtrahend covers the left edge of the minuend.
			x1 = s.X2
			if x1 >= m.X2 {
				i++
				if i < len(r1) {
					x1 = r1[i].X1
				}
			} else {
				j++
			}
		case s.X1 < m.X2:
			// Subtrahend starts inside the minuend: emit the piece before it.
			if err := out.addRect(x1, y1, s.X1, y2); err != nil {
				return err
			}
			x1 = s.X2
			if x1 >= m.X2 {
				i++
				if i < len(r1) {
					x1 = r1[i].X1
				}
			} else {
				j++
			}
		default:
			// Subtrahend starts right of the minuend: emit what is left.
			if m.X2 > x1 {
				if err := out.addRect(x1, y1, m.X2, y2); err != nil {
					return err
				}
			}
			i++
			if i < len(r1) {
				x1 = r1[i].X1
			}
		}
	}
	for i < len(r1) {
		if err := out.addRect(x1, y1, r1[i].X2, y2); err != nil {
			return err
		}
		i++
		if i < len(r1) {
			x1 = r1[i].X1
		}
	}
	return nil
}
