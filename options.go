package region

// Option configures a Region during creation.
//
// Example:
//
//	r := region.NewBox(region.Rect(0, 0, 10, 10), region.WithAllocator(myAlloc))
type Option func(*options)

type options struct {
	alloc Allocator
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithAllocator sets the allocator that provides rectangle storage for the
// region and for every result written into it. A nil allocator selects the
// default heap allocator.
func WithAllocator(a Allocator) Option {
	return func(o *options) {
		o.alloc = a
	}
}
