package damage

import (
	"fmt"

	"github.com/gogpu/region"
)

// Option configures a Tracker.
type Option func(*trackerOptions)

type trackerOptions struct {
	tileSize int
	alloc    region.Allocator
}

// WithTileSize quantizes damage to square tiles of the given size when it
// is flushed. Sizes below 1 disable quantization.
func WithTileSize(size int) Option {
	return func(o *trackerOptions) {
		o.tileSize = size
	}
}

// WithAllocator sets the allocator used for the tracker's regions.
func WithAllocator(a region.Allocator) Option {
	return func(o *trackerOptions) {
		o.alloc = a
	}
}

// Tracker accumulates framebuffer damage between frames.
//
// Damage outside the screen is dropped. Mirrored outputs share one tracker:
// call Flush for each CRTC, then Clear once the frame is presented.
//
// Tracker is not safe for concurrent use.
type Tracker struct {
	screen  region.Box
	pending *region.Region
	opts    trackerOptions
}

// NewTracker returns a tracker for a screen of the given size. The whole
// screen starts out damaged so that the first frame is complete.
func NewTracker(width, height int32, opts ...Option) *Tracker {
	var o trackerOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	t := &Tracker{opts: o}
	t.pending = region.New(t.regionOptions()...)
	t.screen = region.Rect(0, 0, width, height)
	t.pending.Reset(t.screen)
	return t
}

func (t *Tracker) regionOptions() []region.Option {
	if t.opts.alloc == nil {
		return nil
	}
	return []region.Option{region.WithAllocator(t.opts.alloc)}
}

// Screen returns the tracked framebuffer area.
func (t *Tracker) Screen() region.Box {
	return t.screen
}

// Add records b as damaged.
func (t *Tracker) Add(b region.Box) error {
	b = b.Intersect(t.screen)
	if b.Empty() {
		return nil
	}
	if err := t.pending.UnionRect(t.pending, b); err != nil {
		return fmt.Errorf("damage: add %v: %w", b, err)
	}
	return nil
}

// AddRegion records every pixel of r as damaged.
func (t *Tracker) AddRegion(r *region.Region) error {
	var clipped region.Region
	if err := clipped.IntersectRect(r, t.screen); err != nil {
		return fmt.Errorf("damage: add region: %w", err)
	}
	if err := t.pending.Union(t.pending, &clipped); err != nil {
		return fmt.Errorf("damage: add region: %w", err)
	}
	return nil
}

// Pending reports whether any damage is waiting to be flushed.
func (t *Tracker) Pending() bool {
	return !t.pending.IsEmpty()
}

// Region returns a copy of the pending damage in framebuffer coordinates.
func (t *Tracker) Region() (*region.Region, error) {
	out := region.New(t.regionOptions()...)
	if err := out.Copy(t.pending); err != nil {
		return nil, fmt.Errorf("damage: copy pending: %w", err)
	}
	return out, nil
}

// Flush returns the pending damage visible on c, in c's output
// coordinates. The pending damage is kept so that mirrored CRTCs can be
// flushed from the same tracker.
func (t *Tracker) Flush(c Crtc) (*region.Region, error) {
	visible := region.New(t.regionOptions()...)
	if err := visible.IntersectRect(t.pending, c.Bounds()); err != nil {
		return nil, fmt.Errorf("damage: flush %s: %w", c.Name, err)
	}
	if t.opts.tileSize > 0 {
		tiles := NewTileMap(t.screen.X2, t.screen.Y2, int32(t.opts.tileSize))
		if tiles != nil {
			tiles.MarkRegion(visible)
			quantized, err := tiles.Region(t.regionOptions()...)
			if err != nil {
				return nil, fmt.Errorf("damage: flush %s: %w", c.Name, err)
			}
			if err := visible.IntersectRect(quantized, c.Bounds()); err != nil {
				return nil, fmt.Errorf("damage: flush %s: %w", c.Name, err)
			}
		}
	}

	rects := visible.Rects()
	mapped := make([]region.Box, 0, len(rects))
	for _, b := range rects {
		mapped = append(mapped, c.ToOutput(b))
	}
	// Rotation and reflection reorder the boxes, so the output is rebuilt
	// through validation rather than taken as banded.
	out, err := region.NewRects(mapped, false, t.regionOptions()...)
	if err != nil {
		return nil, fmt.Errorf("damage: flush %s: %w", c.Name, err)
	}

	region.Logger().Debug("damage: flush",
		"crtc", c.Name,
		"rotation", c.Rotation,
		"pending", t.pending.NumRects(),
		"output", out.NumRects(),
	)
	return out, nil
}

// Clear discards the pending damage after a frame was presented.
func (t *Tracker) Clear() {
	t.pending.Destroy()
}

// Touch replaces the pending damage with a single pixel at the origin. It
// forces one more frame without repainting the screen, as needed after a
// buffer flip.
func (t *Tracker) Touch() {
	t.pending.Reset(region.Rect(0, 0, 1, 1).Intersect(t.screen))
}

// Resize changes the screen size and damages the whole new screen. It
// returns the area whose contents survive the resize and can be copied
// from the old framebuffer.
func (t *Tracker) Resize(width, height int32) region.Box {
	old := t.screen
	t.screen = region.Rect(0, 0, width, height)
	t.pending.Reset(t.screen)
	region.Logger().Debug("damage: resize", "from", old, "to", t.screen)
	return old.Intersect(t.screen)
}
