package clip

import (
	"fmt"
	"slices"

	"github.com/gogpu/region"
)

// Window is a node of a window tree.
//
// X and Y locate the outer corner of the border relative to the parent's
// interior origin. Width and Height are the interior size. Children are
// stacked top-most first.
type Window struct {
	Name        string
	X, Y        int32
	Width       int32
	Height      int32
	BorderWidth int32
	Mapped      bool

	parent   *Window
	children []*Window

	// Interior origin in screen coordinates as of the last Validate.
	orgX, orgY int32

	borderClip region.Region
	clipList   region.Region
	exposed    region.Region
}

// NewWindow returns a mapped window with no children.
func NewWindow(name string, x, y, width, height, borderWidth int32) *Window {
	return &Window{
		Name:        name,
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		BorderWidth: borderWidth,
		Mapped:      true,
	}
}

// AddChild stacks c on top of the existing children of w.
func (w *Window) AddChild(c *Window) {
	if c.parent != nil {
		c.parent.removeChild(c)
	}
	c.parent = w
	w.children = slices.Insert(w.children, 0, c)
}

func (w *Window) removeChild(c *Window) {
	if i := slices.Index(w.children, c); i >= 0 {
		w.children = slices.Delete(w.children, i, i+1)
	}
	c.parent = nil
}

// Parent returns the parent of w, or nil for a root.
func (w *Window) Parent() *Window { return w.parent }

// Children returns the children of w, top-most first.
func (w *Window) Children() []*Window { return w.children }

// Raise moves w to the top of its siblings.
func (w *Window) Raise() {
	if p := w.parent; p != nil {
		p.removeChild(w)
		p.AddChild(w)
	}
}

// Lower moves w to the bottom of its siblings.
func (w *Window) Lower() {
	if p := w.parent; p != nil {
		p.removeChild(w)
		w.parent = p
		p.children = append(p.children, w)
	}
}

// Origin returns the screen position of the interior's top-left pixel as
// of the last Validate.
func (w *Window) Origin() (x, y int32) { return w.orgX, w.orgY }

// BorderBox returns the screen box covered by the window and its border as
// of the last Validate.
func (w *Window) BorderBox() region.Box {
	bw := w.BorderWidth
	return region.Rect(w.orgX-bw, w.orgY-bw, w.orgX+w.Width+bw, w.orgY+w.Height+bw)
}

// InteriorBox returns the screen box of the window interior as of the last
// Validate.
func (w *Window) InteriorBox() region.Box {
	return region.Rect(w.orgX, w.orgY, w.orgX+w.Width, w.orgY+w.Height)
}

// BorderClip returns the visible part of the window including its border.
func (w *Window) BorderClip() *region.Region { return &w.borderClip }

// ClipList returns the visible part of the interior not covered by mapped
// children: where drawing to the window lands.
func (w *Window) ClipList() *region.Region { return &w.clipList }

// Exposed returns the part of the clip list that became visible in the
// last Validate and needs repainting.
func (w *Window) Exposed() *region.Region { return &w.exposed }

// Validate recomputes the clip regions of every window below root. Each
// window takes what its parent's interior leaves after the siblings stacked
// above it; unmapped windows and their descendants see nothing.
//
// Exposure is tracked across calls: a window's Exposed region is its new
// clip list minus the previous one, moved along with the window.
func Validate(root *Window) error {
	avail := region.NewBox(region.Rect(
		root.X, root.Y,
		root.X+root.Width+2*root.BorderWidth,
		root.Y+root.Height+2*root.BorderWidth,
	))
	n, err := root.validate(0, 0, avail)
	if err != nil {
		return err
	}
	region.Logger().Debug("clip: validated window tree",
		"root", root.Name,
		"windows", n)
	return nil
}

// validate computes the regions of w given the parent's interior origin and
// the screen area still available to it. It returns the number of windows
// visited.
func (w *Window) validate(parentX, parentY int32, avail *region.Region) (int, error) {
	x, y := parentX+w.X+w.BorderWidth, parentY+w.Y+w.BorderWidth

	var old region.Region
	if err := old.Copy(&w.clipList); err != nil {
		return 0, w.wrap(err)
	}
	old.Translate(x-w.orgX, y-w.orgY)
	w.orgX, w.orgY = x, y

	if !w.Mapped {
		return w.hide(), nil
	}

	if err := w.borderClip.IntersectRect(avail, w.BorderBox()); err != nil {
		return 0, w.wrap(err)
	}
	if err := w.clipList.IntersectRect(&w.borderClip, w.InteriorBox()); err != nil {
		return 0, w.wrap(err)
	}

	n := 1
	for _, c := range w.children {
		m, err := c.validate(x, y, &w.clipList)
		if err != nil {
			return 0, err
		}
		n += m
		if c.Mapped {
			if err := w.clipList.Subtract(&w.clipList, &c.borderClip); err != nil {
				return 0, w.wrap(err)
			}
		}
	}

	if err := w.exposed.Subtract(&w.clipList, &old); err != nil {
		return 0, w.wrap(err)
	}
	return n, nil
}

// hide clears the regions of w and its subtree.
func (w *Window) hide() int {
	w.borderClip.Destroy()
	w.clipList.Destroy()
	w.exposed.Destroy()
	n := 1
	for _, c := range w.children {
		c.orgX = w.orgX + c.X + c.BorderWidth
		c.orgY = w.orgY + c.Y + c.BorderWidth
		n += c.hide()
	}
	return n
}

func (w *Window) wrap(err error) error {
	return fmt.Errorf("clip: window %q: %w", w.Name, err)
}
