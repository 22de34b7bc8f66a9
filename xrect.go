package region

import "github.com/BurntSushi/xgb/xproto"

// maxShort is the largest coordinate representable in an X rectangle.
const maxShort = 32767

// FromXRectangle converts an X protocol rectangle to a Box, clamping the
// right and bottom edges to the 16-bit coordinate space.
func FromXRectangle(xr xproto.Rectangle) Box {
	x1, y1 := int32(xr.X), int32(xr.Y)
	return Box{
		X1: x1,
		Y1: y1,
		X2: min(x1+int32(xr.Width), maxShort),
		Y2: min(y1+int32(xr.Height), maxShort),
	}
}

// NewXRectangles returns the region covered by X protocol rectangles.
// Zero-sized rectangles are skipped. When banded is true the rectangles
// must already be YX-banded.
func NewXRectangles(xrs []xproto.Rectangle, banded bool, opts ...Option) (*Region, error) {
	boxes := make([]Box, 0, len(xrs))
	for _, xr := range xrs {
		boxes = append(boxes, FromXRectangle(xr))
	}
	return NewRects(boxes, banded, opts...)
}

// XRectangles returns the rectangles of r as X protocol rectangles, in
// band order. Rectangles outside the 16-bit coordinate space are clipped to
// it; rectangles entirely outside are dropped.
func (r *Region) XRectangles() []xproto.Rectangle {
	rects := r.boxes()
	out := make([]xproto.Rectangle, 0, len(rects))
	limit := Box{X1: -maxShort - 1, Y1: -maxShort - 1, X2: maxShort, Y2: maxShort}
	for _, b := range rects {
		c := b.Intersect(limit)
		if c.Empty() {
			continue
		}
		out = append(out, xproto.Rectangle{
			X:      int16(c.X1),
			Y:      int16(c.Y1),
			Width:  uint16(c.Dx()),
			Height: uint16(c.Dy()),
		})
	}
	return out
}
