// Package regiontest provides reference helpers for testing code built on
// regions: pixel-set rasterization over a bounded domain and random
// rectangle generators.
package regiontest

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/gogpu/region"
)

// Bitmap is a set of pixels inside Bounds.
type Bitmap struct {
	Bounds region.Box
	bits   []bool
}

// NewBitmap returns an empty bitmap over bounds.
func NewBitmap(bounds region.Box) *Bitmap {
	return &Bitmap{Bounds: bounds, bits: make([]bool, bounds.Area())}
}

// Rasterize returns the pixels of r inside bounds.
func Rasterize(r *region.Region, bounds region.Box) *Bitmap {
	return FromBoxes(r.Rects(), bounds)
}

// FromBoxes returns the union of boxes inside bounds, computed pixel by
// pixel.
func FromBoxes(boxes []region.Box, bounds region.Box) *Bitmap {
	bm := NewBitmap(bounds)
	for _, b := range boxes {
		c := b.Intersect(bounds)
		for y := c.Y1; y < c.Y2; y++ {
			for x := c.X1; x < c.X2; x++ {
				bm.Set(x, y, true)
			}
		}
	}
	return bm
}

func (bm *Bitmap) index(x, y int32) (int, bool) {
	if !bm.Bounds.ContainsPoint(x, y) {
		return 0, false
	}
	w := bm.Bounds.Dx()
	return int(y-bm.Bounds.Y1)*int(w) + int(x-bm.Bounds.X1), true
}

// Get reports whether (x, y) is set. Pixels outside Bounds are unset.
func (bm *Bitmap) Get(x, y int32) bool {
	i, ok := bm.index(x, y)
	return ok && bm.bits[i]
}

// Set sets or clears (x, y). Pixels outside Bounds are ignored.
func (bm *Bitmap) Set(x, y int32, v bool) {
	if i, ok := bm.index(x, y); ok {
		bm.bits[i] = v
	}
}

// Count returns the number of set pixels.
func (bm *Bitmap) Count() int {
	n := 0
	for _, v := range bm.bits {
		if v {
			n++
		}
	}
	return n
}

// Equal reports whether bm and o have the same bounds and pixels.
func (bm *Bitmap) Equal(o *Bitmap) bool {
	if bm.Bounds != o.Bounds {
		return false
	}
	for i := range bm.bits {
		if bm.bits[i] != o.bits[i] {
			return false
		}
	}
	return true
}

// Combine returns a bitmap whose pixel is f(bm, o) at every position.
// Both bitmaps must share bounds.
func (bm *Bitmap) Combine(o *Bitmap, f func(a, b bool) bool) *Bitmap {
	out := NewBitmap(bm.Bounds)
	for i := range out.bits {
		out.bits[i] = f(bm.bits[i], o.bits[i])
	}
	return out
}

// Union returns bm ∪ o.
func (bm *Bitmap) Union(o *Bitmap) *Bitmap {
	return bm.Combine(o, func(a, b bool) bool { return a || b })
}

// Intersect returns bm ∩ o.
func (bm *Bitmap) Intersect(o *Bitmap) *Bitmap {
	return bm.Combine(o, func(a, b bool) bool { return a && b })
}

// Subtract returns bm minus o.
func (bm *Bitmap) Subtract(o *Bitmap) *Bitmap {
	return bm.Combine(o, func(a, b bool) bool { return a && !b })
}

// Diff describes the first differing pixel, or returns "" when equal.
func (bm *Bitmap) Diff(o *Bitmap) string {
	if bm.Bounds != o.Bounds {
		return fmt.Sprintf("bounds %v != %v", bm.Bounds, o.Bounds)
	}
	for y := bm.Bounds.Y1; y < bm.Bounds.Y2; y++ {
		for x := bm.Bounds.X1; x < bm.Bounds.X2; x++ {
			if a, b := bm.Get(x, y), o.Get(x, y); a != b {
				return fmt.Sprintf("pixel (%d,%d): %v != %v", x, y, a, b)
			}
		}
	}
	return ""
}

// String draws the bitmap with '#' for set pixels, one row per line.
func (bm *Bitmap) String() string {
	var sb strings.Builder
	for y := bm.Bounds.Y1; y < bm.Bounds.Y2; y++ {
		for x := bm.Bounds.X1; x < bm.Bounds.X2; x++ {
			if bm.Get(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// RandomBox returns a non-empty box inside bounds.
func RandomBox(rng *rand.Rand, bounds region.Box) region.Box {
	x1 := bounds.X1 + rng.Int32N(bounds.Dx())
	y1 := bounds.Y1 + rng.Int32N(bounds.Dy())
	x2 := x1 + 1 + rng.Int32N(bounds.X2-x1)
	y2 := y1 + 1 + rng.Int32N(bounds.Y2-y1)
	return region.Rect(x1, y1, min(x2, bounds.X2), min(y2, bounds.Y2))
}

// RandomBoxes returns n random non-empty boxes inside bounds.
func RandomBoxes(rng *rand.Rand, n int, bounds region.Box) []region.Box {
	boxes := make([]region.Box, n)
	for i := range boxes {
		boxes[i] = RandomBox(rng, bounds)
	}
	return boxes
}

// RandomRegion returns the union of n random boxes inside bounds.
func RandomRegion(rng *rand.Rand, n int, bounds region.Box) *region.Region {
	r, err := region.NewRects(RandomBoxes(rng, n, bounds), false)
	if err != nil {
		panic(err)
	}
	return r
}
