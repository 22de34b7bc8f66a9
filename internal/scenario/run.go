package scenario

import (
	"context"
	"fmt"
	"image"
	"maps"
	"slices"

	"github.com/gogpu/region"
	"github.com/gogpu/region/clip"
	"github.com/gogpu/region/damage"
	"github.com/gogpu/region/raster"
)

// Result is the state after a scenario ran.
type Result struct {
	// Regions holds every named region, including those created by ops and
	// by copy commands.
	Regions map[string]*region.Region

	// Pixmap is the rendered canvas.
	Pixmap *raster.Pixmap

	// Damage is the union of everything the draw commands changed.
	Damage *region.Region

	// Outputs holds the damage of each CRTC in its output coordinates.
	Outputs map[string]*region.Region
}

// Names returns the region names in sorted order.
func (r *Result) Names() []string {
	return slices.Sorted(maps.Keys(r.Regions))
}

// Run evaluates doc: it builds the regions, applies the ops in order, then
// executes the draw commands on a fresh canvas.
func Run(ctx context.Context, doc *Document) (*Result, error) {
	if doc.Width <= 0 || doc.Height <= 0 {
		return nil, ErrNoCanvas
	}
	s := &state{
		doc:     doc,
		regions: make(map[string]*region.Region, len(doc.Regions)),
	}
	for _, name := range slices.Sorted(maps.Keys(doc.Regions)) {
		if err := s.define(name, doc.Regions[name]); err != nil {
			return nil, err
		}
	}
	if len(doc.Windows) > 0 {
		if err := s.layout(doc.Windows); err != nil {
			return nil, err
		}
	}
	for i, op := range doc.Ops {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.apply(op); err != nil {
			return nil, fmt.Errorf("scenario: op %d (%s): %w", i, op.Op, err)
		}
	}

	s.pixmap = raster.NewPixmap(int(doc.Width), int(doc.Height))
	s.tracker = damage.NewTracker(doc.Width, doc.Height)
	s.tracker.Clear()
	for i, cmd := range doc.Draw {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.draw(cmd); err != nil {
			return nil, fmt.Errorf("scenario: draw %d (%s): %w", i, cmd.Kind, err)
		}
	}

	res := &Result{
		Regions: s.regions,
		Pixmap:  s.pixmap,
		Outputs: make(map[string]*region.Region, len(doc.Crtcs)),
	}
	var err error
	if res.Damage, err = s.tracker.Region(); err != nil {
		return nil, err
	}
	for _, spec := range doc.Crtcs {
		c, err := spec.Crtc()
		if err != nil {
			return nil, err
		}
		if res.Outputs[c.Name], err = s.tracker.Flush(c); err != nil {
			return nil, err
		}
	}

	region.Logger().Debug("scenario: run complete",
		"regions", len(res.Regions),
		"ops", len(doc.Ops),
		"draws", len(doc.Draw),
		"damage", res.Damage.NumRects(),
	)
	return res, nil
}

type state struct {
	doc     *Document
	regions map[string]*region.Region
	pixmap  *raster.Pixmap
	tracker *damage.Tracker
}

func (s *state) define(name string, spec RegionSpec) error {
	boxes := make([]region.Box, len(spec.Rects))
	for i, r := range spec.Rects {
		boxes[i] = r.Box()
	}
	r, err := region.NewRects(boxes, spec.Banded)
	if err != nil {
		return fmt.Errorf("scenario: region %q: %w", name, err)
	}
	if spec.Banded {
		if err := r.Check(); err != nil {
			return fmt.Errorf("scenario: region %q: %w", name, err)
		}
	}
	s.regions[name] = r
	return nil
}

// layout validates the window tree under a root window covering the
// canvas. Each window contributes "<name>.border" and "<name>.clip"
// regions.
func (s *state) layout(specs []WindowSpec) error {
	root := clip.NewWindow("root", 0, 0, s.doc.Width, s.doc.Height, 0)
	var windows []*clip.Window
	var build func(parent *clip.Window, specs []WindowSpec)
	build = func(parent *clip.Window, specs []WindowSpec) {
		// AddChild stacks on top, so the top-most window goes last.
		for i := len(specs) - 1; i >= 0; i-- {
			spec := specs[i]
			w := clip.NewWindow(spec.Name, spec.X, spec.Y, spec.Width, spec.Height, spec.Border)
			w.Mapped = !spec.Unmapped
			parent.AddChild(w)
			windows = append(windows, w)
			build(w, spec.Children)
		}
	}
	build(root, specs)

	if err := clip.Validate(root); err != nil {
		return fmt.Errorf("scenario: windows: %w", err)
	}
	for _, w := range windows {
		for suffix, r := range map[string]*region.Region{".border": w.BorderClip(), ".clip": w.ClipList()} {
			dst := s.target(w.Name + suffix)
			if err := dst.Copy(r); err != nil {
				return fmt.Errorf("scenario: window %q: %w", w.Name, err)
			}
		}
	}
	return nil
}

// lookup returns the named region. An empty name is allowed only when
// optional is set, and yields nil.
func (s *state) lookup(name string, optional bool) (*region.Region, error) {
	if name == "" && optional {
		return nil, nil
	}
	r, ok := s.regions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRegion, name)
	}
	return r, nil
}

// target returns the region named dst, creating it if needed.
func (s *state) target(dst string) *region.Region {
	r, ok := s.regions[dst]
	if !ok {
		r = region.New()
		s.regions[dst] = r
	}
	return r
}

func (s *state) canvas() region.Box {
	return region.Rect(0, 0, s.doc.Width, s.doc.Height)
}

func (s *state) apply(op Op) error {
	if op.Dst == "" {
		return fmt.Errorf("%w: missing dst", ErrUnknownRegion)
	}
	srcName := op.A
	if srcName == "" {
		srcName = op.Dst
	}
	a, err := s.lookup(srcName, false)
	if err != nil {
		return err
	}

	switch op.Op {
	case "union", "intersect", "subtract":
		b, err := s.lookup(op.B, false)
		if err != nil {
			return err
		}
		dst := s.target(op.Dst)
		switch op.Op {
		case "union":
			return dst.Union(a, b)
		case "intersect":
			return dst.Intersect(a, b)
		default:
			return dst.Subtract(a, b)
		}
	case "append":
		b, err := s.lookup(op.B, false)
		if err != nil {
			return err
		}
		// dst may also be an operand. The stored result is validated.
		out := region.New()
		if err := out.Copy(a); err != nil {
			return err
		}
		if err := out.Append(b); err != nil {
			return err
		}
		if _, err := out.Validate(); err != nil {
			return err
		}
		s.regions[op.Dst] = out
		return nil
	case "validate":
		dst := s.target(op.Dst)
		if err := dst.Copy(a); err != nil {
			return err
		}
		_, err := dst.Validate()
		return err
	case "inverse":
		universe := s.canvas()
		if op.Box != nil {
			universe = op.Box.Box()
		}
		return s.target(op.Dst).Inverse(a, universe)
	case "translate":
		dst := s.target(op.Dst)
		if err := dst.Copy(a); err != nil {
			return err
		}
		dst.Translate(op.DX, op.DY)
		return nil
	case "copy":
		return s.target(op.Dst).Copy(a)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, op.Op)
	}
}

// clipFor intersects the clips named by cmd. It returns nil when cmd is
// unclipped.
func (s *state) clipFor(cmd DrawCmd) (*region.Region, error) {
	names := cmd.Clips
	if cmd.Clip != "" {
		names = append([]string{cmd.Clip}, names...)
	}
	if len(names) == 0 {
		return nil, nil
	}
	st := clip.NewStack(s.canvas())
	for _, name := range names {
		r, err := s.lookup(name, false)
		if err != nil {
			return nil, err
		}
		if err := st.PushRegion(r); err != nil {
			return nil, err
		}
	}
	return st.Region(), nil
}

func (s *state) draw(cmd DrawCmd) error {
	within, err := s.clipFor(cmd)
	if err != nil {
		return err
	}
	fg := cmd.Color.Premultiplied()

	var painted *region.Region
	switch cmd.Kind {
	case "fill":
		r, err := s.lookup(cmd.Region, false)
		if err != nil {
			return err
		}
		if within != nil {
			clipped := region.New()
			if err := clipped.Intersect(r, within); err != nil {
				return err
			}
			r = clipped
		}
		painted, err = raster.FillRegion(s.pixmap, r, fg)
		if err != nil {
			return err
		}
	case "line":
		pts := make([]image.Point, len(cmd.Points))
		for i, p := range cmd.Points {
			pts[i] = image.Pt(p[0], p[1])
		}
		painted, err = raster.DrawPolyline(s.pixmap, within, pts, fg)
		if err != nil {
			return err
		}
	case "text":
		x, y := cmd.At[0], cmd.At[1]
		if cmd.Background != nil {
			painted, err = raster.ImageText(s.pixmap, within, x, y, cmd.Text, fg, cmd.Background.Premultiplied())
		} else {
			painted, err = raster.DrawString(s.pixmap, within, x, y, cmd.Text, fg)
		}
		if err != nil {
			return err
		}
	case "copy":
		if cmd.Src == nil {
			return fmt.Errorf("%w: copy without src", ErrUnknownOp)
		}
		copied, exposed, err := raster.CopyArea(s.pixmap, s.pixmap, nil, within, cmd.Src.Box(), cmd.DX, cmd.DY)
		if err != nil {
			return err
		}
		if cmd.Background != nil {
			if _, err := raster.FillRegion(s.pixmap, exposed, cmd.Background.Premultiplied()); err != nil {
				return err
			}
			if err := copied.Union(copied, exposed); err != nil {
				return err
			}
		}
		if cmd.Into != "" {
			s.regions[cmd.Into] = exposed
		}
		painted = copied
	default:
		return fmt.Errorf("%w: draw kind %q", ErrUnknownOp, cmd.Kind)
	}
	return s.tracker.AddRegion(painted)
}
