package region

// Growth policy constants.
const (
	// maxAppendGrowth caps how far a single-rectangle append grows the
	// buffer beyond the current count.
	maxAppendGrowth = 250

	// shrinkMinSize is the capacity above which a half-empty buffer is
	// reallocated down to its exact size.
	shrinkMinSize = 50
)

// Allocator provides rectangle storage for regions.
//
// Realloc returns a slice with capacity of at least size whose first
// len(old) elements equal old (the result's length is len(old)); old may be
// nil. Realloc must not retain or modify old. A non-nil error breaks the
// region that requested the storage.
type Allocator interface {
	Realloc(old []Box, size int) ([]Box, error)
}

// HeapAllocator allocates rectangle storage from the Go heap. It never fails.
type HeapAllocator struct{}

// Realloc implements Allocator.
func (HeapAllocator) Realloc(old []Box, size int) ([]Box, error) {
	buf := make([]Box, len(old), max(size, len(old)))
	copy(buf, old)
	return buf, nil
}

func (r *Region) allocator() Allocator {
	if r.alloc == nil {
		return HeapAllocator{}
	}
	return r.alloc
}

// reserve makes room for n more rectangles.
//
// A region without storage gets exactly n+1 slots; a single-rectangle
// region moves its rectangle into the new buffer first. Appending a single
// rectangle to a full buffer grows it by min(numRects, 250) so that
// repeated appends are amortised.
func (r *Region) reserve(n int) error {
	if r.broken {
		return ErrBroken
	}
	if r.data == nil {
		size := n + 1
		buf, err := r.allocator().Realloc(nil, size)
		if err != nil {
			return r.fail(size, err)
		}
		if !r.extents.Empty() {
			buf = append(buf, r.extents)
		}
		r.data = buf
		return nil
	}
	if len(r.data)+n <= cap(r.data) {
		return nil
	}
	if n == 1 {
		n = max(min(len(r.data), maxAppendGrowth), 1)
	}
	size := len(r.data) + n
	buf, err := r.allocator().Realloc(r.data, size)
	if err != nil {
		return r.fail(size, err)
	}
	r.data = buf
	return nil
}

// downsize gives back storage after an operation left the buffer less than
// half full. A failed shrink keeps the old buffer.
func (r *Region) downsize() {
	n := len(r.data)
	if n < cap(r.data)/2 && cap(r.data) > shrinkMinSize {
		if buf, err := r.allocator().Realloc(r.data, n); err == nil {
			r.data = buf
		}
	}
}

// fail breaks r after an allocation of size rectangles failed.
func (r *Region) fail(size int, err error) error {
	r.setBroken()
	Logger().Warn("region: allocation failed, region broken",
		"rects", size,
		"err", err)
	return &AllocError{Requested: size, Err: err}
}
