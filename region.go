package region

import (
	"fmt"
	"iter"
	"strings"
)

// Region is a set of pixels stored as YX-banded rectangles.
//
// The zero value is an empty region ready to use. A Region owns its
// rectangle storage and must not be copied by value after first use; use
// Copy instead.
//
// Every set operation writes into its receiver, which may be one of the
// operands:
//
//	r.Union(r, other) // r |= other
type Region struct {
	// extents is the bounding box. For a single-rectangle region it is the
	// rectangle itself.
	extents Box

	// data holds the rectangles of a multi-rectangle region: len is the
	// rectangle count, cap the allocated size. It is nil for the empty,
	// single-rectangle and broken states.
	data []Box

	broken bool
	alloc  Allocator
}

// New returns an empty region.
func New(opts ...Option) *Region {
	o := buildOptions(opts)
	return &Region{alloc: o.alloc}
}

// NewBox returns a region covering b. An empty box yields an empty region.
func NewBox(b Box, opts ...Option) *Region {
	r := New(opts...)
	if !b.Empty() {
		r.extents = b
	}
	return r
}

// NewRects returns the region covered by rects. Empty boxes are skipped.
//
// When banded is true the boxes must already be YX-banded and coalesced
// (for example the output of Rects); they are taken as is. Otherwise they
// may be in any order and may overlap, and the region is validated.
func NewRects(rects []Box, banded bool, opts ...Option) (*Region, error) {
	r := New(opts...)
	n := 0
	for _, b := range rects {
		if !b.Empty() {
			n++
		}
	}
	switch n {
	case 0:
		return r, nil
	case 1:
		for _, b := range rects {
			if !b.Empty() {
				r.extents = b
			}
		}
		return r, nil
	}

	buf, err := r.allocator().Realloc(nil, n)
	if err != nil {
		return r, r.fail(n, err)
	}
	for _, b := range rects {
		if !b.Empty() {
			buf = append(buf, b)
		}
	}
	r.data = buf
	if banded {
		r.setExtents()
		return r, nil
	}
	r.markUnsorted()
	if _, err := r.Validate(); err != nil {
		return r, err
	}
	return r, nil
}

// Destroy releases the rectangle storage. The region is left empty, and a
// broken region is repaired.
func (r *Region) Destroy() {
	r.setEmpty()
}

// Reset makes r cover exactly b, releasing any storage. A broken region is
// repaired.
func (r *Region) Reset(b Box) {
	r.setEmpty()
	if !b.Empty() {
		r.extents = b
	}
}

// Copy makes r equal to src. Copying a broken region breaks r.
func (r *Region) Copy(src *Region) error {
	if r == src {
		return r.status()
	}
	if src.broken {
		r.setBroken()
		return ErrBroken
	}
	r.broken = false
	r.extents = src.extents
	if len(src.data) == 0 {
		r.data = nil
		return nil
	}
	n := len(src.data)
	if cap(r.data) < n {
		buf, err := r.allocator().Realloc(nil, n)
		if err != nil {
			return r.fail(n, err)
		}
		r.data = buf
	}
	r.data = append(r.data[:0], src.data...)
	return nil
}

// IsEmpty reports whether r contains no pixels. A broken region is empty.
func (r *Region) IsEmpty() bool {
	return r.NumRects() == 0
}

// IsBroken reports whether an allocation failure left r unusable.
func (r *Region) IsBroken() bool {
	return r.broken
}

// Extents returns the bounding box of r, or the zero Box when r is empty.
func (r *Region) Extents() Box {
	return r.extents
}

// NumRects returns the number of rectangles in r.
func (r *Region) NumRects() int {
	switch {
	case r.data != nil:
		return len(r.data)
	case r.broken || r.extents.Empty():
		return 0
	default:
		return 1
	}
}

// Rects returns the rectangles of r in band order. The slice may alias the
// region's storage: it must not be modified and is invalidated by the next
// operation writing r.
func (r *Region) Rects() []Box {
	return r.boxes()
}

// Bands yields the bands of r top to bottom. Each band is a run of
// rectangles sharing y1 and y2, ordered left to right. The slices alias the
// region's storage.
func (r *Region) Bands() iter.Seq[[]Box] {
	return func(yield func([]Box) bool) {
		rects := r.boxes()
		for i := 0; i < len(rects); {
			end, _ := findBand(rects, i)
			if !yield(rects[i:end:end]) {
				return
			}
			i = end
		}
	}
}

// NumBands returns the number of bands in r.
func (r *Region) NumBands() int {
	n := 0
	rects := r.boxes()
	for i := 0; i < len(rects); n++ {
		i, _ = findBand(rects, i)
	}
	return n
}

// Equal reports whether r and o have identical rectangle lists. Because the
// banded representation is canonical, this is pixel-set equality for
// validated regions.
func (r *Region) Equal(o *Region) bool {
	if r.broken != o.broken {
		return false
	}
	if r.extents != o.extents {
		return false
	}
	a, b := r.boxes(), o.boxes()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// String returns a multi-line dump of r: rectangle count, capacity,
// extents and every rectangle.
func (r *Region) String() string {
	var sb strings.Builder
	if r.broken {
		sb.WriteString("broken region\n")
		return sb.String()
	}
	rects := r.boxes()
	fmt.Fprintf(&sb, "num: %d size: %d\n", len(rects), cap(r.data))
	fmt.Fprintf(&sb, "extents: %v\n", r.extents)
	for _, b := range rects {
		fmt.Fprintf(&sb, "%v\n", b)
	}
	return sb.String()
}

// boxes returns the rectangles of r, materialising the single-rectangle
// case.
func (r *Region) boxes() []Box {
	if r.data != nil {
		return r.data
	}
	if r.broken || r.extents.Empty() {
		return nil
	}
	return []Box{r.extents}
}

func (r *Region) status() error {
	if r.broken {
		return ErrBroken
	}
	return nil
}

func (r *Region) setEmpty() {
	r.extents = Box{}
	r.data = nil
	r.broken = false
}

func (r *Region) setBroken() {
	r.extents = Box{}
	r.data = nil
	r.broken = true
}

// markUnsorted flags r as an unvalidated collection of rectangles by giving
// it a degenerate extents box. Validate recomputes the extents.
func (r *Region) markUnsorted() {
	r.extents.X2 = r.extents.X1
}

// setExtents recomputes the extents of a multi-rectangle region. The first
// rectangle has the smallest y1 and the last the largest y2; x bounds need
// a scan.
func (r *Region) setExtents() {
	if r.data == nil {
		return
	}
	if len(r.data) == 0 {
		r.extents = Box{}
		return
	}
	first, last := r.data[0], r.data[len(r.data)-1]
	e := Box{X1: first.X1, Y1: first.Y1, X2: last.X2, Y2: last.Y2}
	for _, b := range r.data {
		e.X1 = min(e.X1, b.X1)
		e.X2 = max(e.X2, b.X2)
	}
	r.extents = e
}

// normalize collapses a region to its canonical state after its rectangle
// list was rebuilt: no storage when empty, extents-only when it holds one
// rectangle. A region without storage is already canonical.
func (r *Region) normalize() {
	if r.data == nil {
		return
	}
	switch len(r.data) {
	case 0:
		r.setEmpty()
	case 1:
		r.extents = r.data[0]
		r.data = nil
	default:
		r.downsize()
	}
}
