package region

import "fmt"

// InvariantError describes the first representation invariant a region
// violates.
type InvariantError struct {
	Index  int // rectangle index, or -1 for region-wide checks
	Reason string
}

func (e *InvariantError) Error() string {
	if e.Index < 0 {
		return "region: invalid region: " + e.Reason
	}
	return fmt.Sprintf("region: invalid region at rect %d: %s", e.Index, e.Reason)
}

func invalid(i int, format string, args ...any) error {
	return &InvariantError{Index: i, Reason: fmt.Sprintf(format, args...)}
}

// Check verifies the representation of r: every rectangle non-empty,
// sorted by (y1, x1), grouped into bands with equal y1 and y2, separated by
// gaps within a band, adjacent bands coalesced, and extents equal to the
// bounding box. A broken region passes when it holds no storage.
func (r *Region) Check() error {
	if r.broken {
		if r.data != nil || r.extents != (Box{}) {
			return invalid(-1, "broken region holds data")
		}
		return nil
	}
	e := r.extents
	if e.X1 > e.X2 || e.Y1 > e.Y2 {
		return invalid(-1, "inverted extents %v", e)
	}
	switch n := r.NumRects(); {
	case n == 0:
		if e != (Box{}) {
			return invalid(-1, "empty region with extents %v", e)
		}
		if r.data != nil {
			return invalid(-1, "empty region holds storage")
		}
		return nil
	case n == 1:
		if r.data != nil {
			return invalid(-1, "single rectangle kept in storage")
		}
		return nil
	}

	rects := r.data
	bound := rects[0]
	for i, b := range rects {
		if b.Empty() {
			return invalid(i, "empty rectangle %v", b)
		}
		bound = bound.Bound(b)
		if i == 0 {
			continue
		}
		p := rects[i-1]
		switch {
		case b.Y1 < p.Y1:
			return invalid(i, "%v sorts before %v", b, p)
		case b.Y1 == p.Y1 && b.Y2 != p.Y2:
			return invalid(i, "%v and %v share y1 but not y2", b, p)
		case b.Y1 == p.Y1 && b.X1 <= p.X2:
			return invalid(i, "%v touches or overlaps %v", b, p)
		case b.Y1 > p.Y1 && b.Y1 < p.Y2:
			return invalid(i, "band of %v overlaps band of %v", b, p)
		}
	}
	if bound != e {
		return invalid(-1, "extents %v, want %v", e, bound)
	}

	// Adjacent bands with the same silhouette must have been merged.
	var prev []Box
	i := 0
	for band := range r.Bands() {
		if prev != nil && prev[0].Y2 == band[0].Y1 && sameSpans(prev, band) {
			return invalid(i, "band at y=%d not coalesced with band above", band[0].Y1)
		}
		prev = band
		i += len(band)
	}
	return nil
}

func sameSpans(a, b []Box) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].X1 != b[i].X1 || a[i].X2 != b[i].X2 {
			return false
		}
	}
	return true
}
