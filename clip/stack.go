// Package clip computes clip regions: a push/pop stack for drawing state
// and the visible areas of a window tree.
package clip

import "github.com/gogpu/region"

// Stack manages nested clip regions with push/pop operations. The current
// clip is the intersection of every pushed region with the stack bounds.
type Stack struct {
	entries []*region.Region
	clip    *region.Region
	opts    []region.Option
}

// NewStack creates a clip stack limited to bounds (typically the drawable
// size). Options apply to every region the stack creates.
func NewStack(bounds region.Box, opts ...region.Option) *Stack {
	return &Stack{
		entries: make([]*region.Region, 0, 8),
		clip:    region.NewBox(bounds, opts...),
		opts:    opts,
	}
}

// PushRect narrows the clip to the given box.
func (s *Stack) PushRect(b region.Box) error {
	next := region.New(s.opts...)
	if err := next.IntersectRect(s.clip, b); err != nil {
		return err
	}
	s.push(next)
	return nil
}

// PushRegion narrows the clip to r. The stack does not keep r.
func (s *Stack) PushRegion(r *region.Region) error {
	next := region.New(s.opts...)
	if err := next.Intersect(s.clip, r); err != nil {
		return err
	}
	s.push(next)
	return nil
}

func (s *Stack) push(next *region.Region) {
	s.entries = append(s.entries, s.clip)
	s.clip = next
}

// Pop restores the clip in effect before the most recent push.
// If the stack is empty, this is a no-op.
func (s *Stack) Pop() {
	if len(s.entries) == 0 {
		return
	}
	last := len(s.entries) - 1
	s.clip = s.entries[last]
	s.entries[last] = nil
	s.entries = s.entries[:last]
}

// Region returns the current clip. It must not be modified.
func (s *Stack) Region() *region.Region {
	return s.clip
}

// Bounds returns the bounding box of the current clip.
func (s *Stack) Bounds() region.Box {
	return s.clip.Extents()
}

// IsVisible reports whether the pixel (x, y) passes the current clip.
func (s *Stack) IsVisible(x, y int32) bool {
	return s.clip.ContainsPoint(x, y)
}

// Depth returns the number of pushed clips.
func (s *Stack) Depth() int {
	return len(s.entries)
}

// Reset drops every pushed clip and limits the stack to bounds.
func (s *Stack) Reset(bounds region.Box) {
	clear(s.entries)
	s.entries = s.entries[:0]
	s.clip = region.NewBox(bounds, s.opts...)
}
