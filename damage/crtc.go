// Package damage tracks the parts of a screen framebuffer that changed
// since they were last scanned out, and maps them into the coordinate
// space of rotated or reflected CRTCs.
package damage

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/randr"
	"github.com/gogpu/region"
)

// Rotation is a RandR rotation and reflection bit set. Exactly one of the
// rotation bits is expected, optionally combined with reflections.
type Rotation uint16

// Rotation bits, equal to the RandR protocol values.
const (
	Rotate0   Rotation = randr.RotationRotate0
	Rotate90  Rotation = randr.RotationRotate90
	Rotate180 Rotation = randr.RotationRotate180
	Rotate270 Rotation = randr.RotationRotate270
	ReflectX  Rotation = randr.RotationReflectX
	ReflectY  Rotation = randr.RotationReflectY

	rotationMask = Rotate0 | Rotate90 | Rotate180 | Rotate270
)

// Angle returns the rotation part of r, Rotate0 when no rotation bit is set.
func (r Rotation) Angle() Rotation {
	switch a := r & rotationMask; a {
	case Rotate90, Rotate180, Rotate270:
		return a
	default:
		return Rotate0
	}
}

// Swaps reports whether r exchanges width and height.
func (r Rotation) Swaps() bool {
	a := r.Angle()
	return a == Rotate90 || a == Rotate270
}

func (r Rotation) String() string {
	var parts []string
	switch r.Angle() {
	case Rotate0:
		parts = append(parts, "0")
	case Rotate90:
		parts = append(parts, "90")
	case Rotate180:
		parts = append(parts, "180")
	case Rotate270:
		parts = append(parts, "270")
	}
	if r&ReflectX != 0 {
		parts = append(parts, "reflect-x")
	}
	if r&ReflectY != 0 {
		parts = append(parts, "reflect-y")
	}
	return strings.Join(parts, "+")
}

// Crtc is a scanout engine showing part of the framebuffer.
type Crtc struct {
	Name string

	// X and Y place the viewport in the framebuffer.
	X, Y int32

	// Width and Height are the mode size, in output pixels.
	Width, Height int32

	Rotation Rotation
}

// Bounds returns the framebuffer area the CRTC scans out. Rotations by 90
// and 270 degrees swap the mode's width and height.
func (c Crtc) Bounds() region.Box {
	w, h := c.Width, c.Height
	if c.Rotation.Swaps() {
		w, h = h, w
	}
	return region.Rect(c.X, c.Y, c.X+w, c.Y+h)
}

// ToOutput maps a framebuffer box inside Bounds into output coordinates,
// where (0, 0) is the first scanned-out pixel and the output is Width by
// Height. Rotation is counter-clockwise and applied before reflection.
func (c Crtc) ToOutput(b region.Box) region.Box {
	vp := c.Bounds()
	fw, fh := vp.Dx(), vp.Dy()
	x1, y1 := b.X1-vp.X1, b.Y1-vp.Y1
	x2, y2 := b.X2-vp.X1, b.Y2-vp.Y1

	switch c.Rotation.Angle() {
	case Rotate90:
		x1, y1, x2, y2 = y1, fw-x2, y2, fw-x1
	case Rotate180:
		x1, y1, x2, y2 = fw-x2, fh-y2, fw-x1, fh-y1
	case Rotate270:
		x1, y1, x2, y2 = fh-y2, x1, fh-y1, x2
	}
	if c.Rotation&ReflectX != 0 {
		x1, x2 = c.Width-x2, c.Width-x1
	}
	if c.Rotation&ReflectY != 0 {
		y1, y2 = c.Height-y2, c.Height-y1
	}
	return region.Rect(x1, y1, x2, y2)
}

func (c Crtc) String() string {
	return fmt.Sprintf("%s %dx%d+%d+%d rotation %v", c.Name, c.Width, c.Height, c.X, c.Y, c.Rotation)
}

// ScreenBounds returns the smallest framebuffer box containing every CRTC
// with a mode. The result always includes the origin, as the framebuffer
// starts there.
func ScreenBounds(crtcs []Crtc) (region.Box, error) {
	var total region.Region
	for _, c := range crtcs {
		if c.Width <= 0 || c.Height <= 0 {
			continue
		}
		if err := total.UnionRect(&total, c.Bounds()); err != nil {
			return region.Box{}, fmt.Errorf("damage: crtc %s: %w", c.Name, err)
		}
	}
	if total.IsEmpty() {
		return region.Box{}, nil
	}
	e := total.Extents()
	return region.Rect(0, 0, e.X2, e.Y2), nil
}
