// Package scenario loads YAML scenario files describing named regions, set
// operations on them and drawing commands, and evaluates them.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/gogpu/region"
	"github.com/gogpu/region/damage"
	"gopkg.in/yaml.v3"
)

// Errors returned while loading or running a scenario.
var (
	ErrUnknownRegion = errors.New("scenario: unknown region")
	ErrUnknownOp     = errors.New("scenario: unknown operation")
	ErrBadColor      = errors.New("scenario: bad color")
	ErrNoCanvas      = errors.New("scenario: width and height must be positive")
)

// Document is a scenario file.
type Document struct {
	Width   int32                 `yaml:"width"`
	Height  int32                 `yaml:"height"`
	Regions map[string]RegionSpec `yaml:"regions"`
	Windows []WindowSpec          `yaml:"windows"`
	Ops     []Op                  `yaml:"ops"`
	Draw    []DrawCmd             `yaml:"draw"`
	Crtcs   []CrtcSpec            `yaml:"crtcs"`
}

// Rect is a box written as [x1, y1, x2, y2].
type Rect [4]int32

// Box converts r to a region box.
func (r Rect) Box() region.Box {
	return region.Rect(r[0], r[1], r[2], r[3])
}

// RegionSpec defines a starting region.
type RegionSpec struct {
	Rects  []Rect `yaml:"rects"`
	Banded bool   `yaml:"banded"`
}

// WindowSpec is a window placed on the canvas, relative to its parent's
// interior. Children are listed top-most first. Windows are mapped unless
// Unmapped is set.
type WindowSpec struct {
	Name     string       `yaml:"name"`
	X        int32        `yaml:"x"`
	Y        int32        `yaml:"y"`
	Width    int32        `yaml:"width"`
	Height   int32        `yaml:"height"`
	Border   int32        `yaml:"border"`
	Unmapped bool         `yaml:"unmapped"`
	Children []WindowSpec `yaml:"children"`
}

// Op is one step on the region table. Dst receives the result; A and B are
// operand names. Inverse takes its universe from Box, translate its offset
// from DX and DY.
type Op struct {
	Op  string `yaml:"op"`
	Dst string `yaml:"dst"`
	A   string `yaml:"a"`
	B   string `yaml:"b"`
	Box *Rect  `yaml:"box"`
	DX  int32  `yaml:"dx"`
	DY  int32  `yaml:"dy"`
}

// DrawCmd is one drawing command. Kind selects fill, line, text or copy.
// Clip and Clips name regions that are intersected to form the clip.
type DrawCmd struct {
	Kind       string   `yaml:"kind"`
	Region     string   `yaml:"region"`
	Clip       string   `yaml:"clip"`
	Clips      []string `yaml:"clips"`
	Color      Color    `yaml:"color"`
	Background *Color   `yaml:"background"`
	Points     [][2]int `yaml:"points"`
	At         [2]int   `yaml:"at"`
	Text       string   `yaml:"text"`
	Src        *Rect    `yaml:"src"`
	DX         int32    `yaml:"dx"`
	DY         int32    `yaml:"dy"`
	Into       string   `yaml:"into"`
}

// CrtcSpec places an output on the canvas for damage reporting.
type CrtcSpec struct {
	Name     string `yaml:"name"`
	X        int32  `yaml:"x"`
	Y        int32  `yaml:"y"`
	Width    int32  `yaml:"width"`
	Height   int32  `yaml:"height"`
	Rotation int    `yaml:"rotation"`
	ReflectX bool   `yaml:"reflect_x"`
	ReflectY bool   `yaml:"reflect_y"`
}

// Crtc converts s to a damage.Crtc. Rotation is in degrees.
func (s CrtcSpec) Crtc() (damage.Crtc, error) {
	c := damage.Crtc{Name: s.Name, X: s.X, Y: s.Y, Width: s.Width, Height: s.Height}
	switch s.Rotation {
	case 0:
		c.Rotation = damage.Rotate0
	case 90:
		c.Rotation = damage.Rotate90
	case 180:
		c.Rotation = damage.Rotate180
	case 270:
		c.Rotation = damage.Rotate270
	default:
		return c, fmt.Errorf("scenario: crtc %s: rotation %d is not a multiple of 90", s.Name, s.Rotation)
	}
	if s.ReflectX {
		c.Rotation |= damage.ReflectX
	}
	if s.ReflectY {
		c.Rotation |= damage.ReflectY
	}
	return c, nil
}

// Color is an RGBA color written as "#rrggbb" or "#rrggbbaa".
type Color color.RGBA

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = parsed
	return nil
}

// Premultiplied returns c as a premultiplied color.RGBA.
func (c Color) Premultiplied() color.RGBA {
	a := uint32(c.A)
	return color.RGBA{
		R: uint8(uint32(c.R) * a / 255),
		G: uint8(uint32(c.G) * a / 255),
		B: uint8(uint32(c.B) * a / 255),
		A: c.A,
	}
}

// ParseColor parses "#rrggbb" or "#rrggbbaa". Colors without alpha are
// opaque.
func ParseColor(s string) (Color, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return Color{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Parse decodes a scenario document. Unknown fields are rejected.
func Parse(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	if doc.Width <= 0 || doc.Height <= 0 {
		return nil, ErrNoCanvas
	}
	return &doc, nil
}

// Load reads and parses the scenario file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, err
	}
	return Parse(data)
}
