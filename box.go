package region

import (
	"fmt"
	"image"
	"math"
)

// Coordinate limits. Translate clamps boxes to this range.
const (
	MinCoord int32 = math.MinInt32
	MaxCoord int32 = math.MaxInt32
)

// Box is an axis-aligned rectangle covering the pixels x1 <= x < x2,
// y1 <= y < y2. A box is valid when X1 < X2 and Y1 < Y2; the zero Box is
// the canonical empty box.
type Box struct {
	X1, Y1, X2, Y2 int32
}

// Rect is shorthand for Box{x1, y1, x2, y2}.
func Rect(x1, y1, x2, y2 int32) Box {
	return Box{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// FromImageRect converts an image.Rectangle. Coordinates outside the int32
// range are clamped.
func FromImageRect(r image.Rectangle) Box {
	return Box{
		X1: clampCoord(int64(r.Min.X)),
		Y1: clampCoord(int64(r.Min.Y)),
		X2: clampCoord(int64(r.Max.X)),
		Y2: clampCoord(int64(r.Max.Y)),
	}
}

// ImageRect returns b as an image.Rectangle.
func (b Box) ImageRect() image.Rectangle {
	return image.Rect(int(b.X1), int(b.Y1), int(b.X2), int(b.Y2))
}

// Empty reports whether b contains no pixels.
func (b Box) Empty() bool {
	return b.X1 >= b.X2 || b.Y1 >= b.Y2
}

// Dx returns the width of b.
func (b Box) Dx() int32 { return b.X2 - b.X1 }

// Dy returns the height of b.
func (b Box) Dy() int32 { return b.Y2 - b.Y1 }

// Area returns the number of pixels in b, or 0 for an empty box.
func (b Box) Area() int64 {
	if b.Empty() {
		return 0
	}
	return (int64(b.X2) - int64(b.X1)) * (int64(b.Y2) - int64(b.Y1))
}

// Overlaps reports whether b and o share at least one pixel.
func (b Box) Overlaps(o Box) bool {
	return !(b.X2 <= o.X1 || b.X1 >= o.X2 || b.Y2 <= o.Y1 || b.Y1 >= o.Y2)
}

// ContainsPoint reports whether the pixel (x, y) lies in b.
func (b Box) ContainsPoint(x, y int32) bool {
	return b.X2 > x && b.X1 <= x && b.Y2 > y && b.Y1 <= y
}

// Contains reports whether b covers every pixel of o.
func (b Box) Contains(o Box) bool {
	return b.X1 <= o.X1 && b.X2 >= o.X2 && b.Y1 <= o.Y1 && b.Y2 >= o.Y2
}

// Intersect returns the largest box contained in both b and o. The result
// is the zero Box when they do not overlap.
func (b Box) Intersect(o Box) Box {
	r := Box{
		X1: max(b.X1, o.X1),
		Y1: max(b.Y1, o.Y1),
		X2: min(b.X2, o.X2),
		Y2: min(b.Y2, o.Y2),
	}
	if r.Empty() {
		return Box{}
	}
	return r
}

// Bound returns the smallest box containing both b and o. Empty boxes are
// ignored.
func (b Box) Bound(o Box) Box {
	if b.Empty() {
		return o
	}
	if o.Empty() {
		return b
	}
	return Box{
		X1: min(b.X1, o.X1),
		Y1: min(b.Y1, o.Y1),
		X2: max(b.X2, o.X2),
		Y2: max(b.Y2, o.Y2),
	}
}

// Translate returns b moved by (dx, dy). The caller must keep the result
// within the coordinate range; Region.Translate clamps.
func (b Box) Translate(dx, dy int32) Box {
	return Box{X1: b.X1 + dx, Y1: b.Y1 + dy, X2: b.X2 + dx, Y2: b.Y2 + dy}
}

// String returns "(x1,y1)-(x2,y2)".
func (b Box) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", b.X1, b.Y1, b.X2, b.Y2)
}

func clampCoord(v int64) int32 {
	if v < int64(MinCoord) {
		return MinCoord
	}
	if v > int64(MaxCoord) {
		return MaxCoord
	}
	return int32(v)
}
