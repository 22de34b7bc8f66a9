package region

import (
	"errors"
	"fmt"
)

// Sentinel errors for the region package.
var (
	// ErrBroken is returned by operations that find or leave their
	// destination in the broken state.
	ErrBroken = errors.New("region: broken region")

	// ErrOutOfMemory is returned by allocators that refuse a request.
	ErrOutOfMemory = errors.New("region: out of memory")
)

// AllocError is returned when the allocator fails to provide storage for a
// region. It unwraps to both ErrBroken and the allocator's error.
type AllocError struct {
	Requested int
	Err       error
}

func (e *AllocError) Error() string {
	return fmt.Sprintf("region: allocating %d rectangles: %v", e.Requested, e.Err)
}

// Unwrap returns ErrBroken and the allocator error.
func (e *AllocError) Unwrap() []error {
	return []error{ErrBroken, e.Err}
}
