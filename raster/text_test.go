package raster

import (
	"image"
	"testing"

	"github.com/gogpu/region"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/basicfont"
)

// blockFace is a 2x2 solid glyph for 'a' on a 3 pixel advance.
func blockFace() *basicfont.Face {
	mask := image.NewAlpha(image.Rect(0, 0, 2, 2))
	for i := range mask.Pix {
		mask.Pix[i] = 0xff
	}
	return &basicfont.Face{
		Advance: 3,
		Width:   2,
		Height:  2,
		Ascent:  2,
		Mask:    mask,
		Ranges:  []basicfont.Range{{Low: 'a', High: 'b'}},
	}
}

func TestDrawString_GlyphBoxes(t *testing.T) {
	pm := NewPixmap(40, 30)
	got, err := DrawString(pm, nil, 2, 20, "AB", red)
	if err != nil {
		t.Fatalf("DrawString() error = %v", err)
	}
	want := []region.Box{region.Rect(2, 9, 8, 22), region.Rect(9, 9, 15, 22)}
	if diff := cmp.Diff(want, got.Rects()); diff != "" {
		t.Errorf("DrawString() mismatch (-want +got):\n%s", diff)
	}

	ink := painted(pm, red)
	if len(ink) == 0 {
		t.Fatal("DrawString() painted nothing")
	}
	for _, p := range ink {
		if !got.ContainsPoint(int32(p.X), int32(p.Y)) {
			t.Errorf("pixel %v painted outside the reported region", p)
		}
	}
}

func TestDrawString_Space(t *testing.T) {
	pm := NewPixmap(20, 20)
	got, err := DrawString(pm, nil, 0, 11, " ", red)
	if err != nil {
		t.Fatalf("DrawString() error = %v", err)
	}
	if got.Extents() != region.Rect(0, 0, 6, 13) {
		t.Errorf("DrawString() extents = %v, want (0,0)-(6,13)", got.Extents())
	}
	if n := len(painted(pm, red)); n != 0 {
		t.Errorf("space painted %d pixels", n)
	}
}

func TestDrawString_Clip(t *testing.T) {
	pm := NewPixmap(40, 30)
	clip := region.NewBox(region.Rect(0, 0, 5, 30))
	got, err := DrawString(pm, clip, 2, 20, "MM", red)
	if err != nil {
		t.Fatalf("DrawString() error = %v", err)
	}
	if want := region.Rect(2, 9, 5, 22); got.Extents() != want || got.NumRects() != 1 {
		t.Errorf("DrawString() = %v, want %v", got, want)
	}
	for _, p := range painted(pm, red) {
		if p.X >= 5 {
			t.Errorf("pixel %v painted outside the clip", p)
		}
	}
}

func TestDrawString_GraphemeClusters(t *testing.T) {
	pm := NewPixmap(40, 20)
	got, err := DrawString(pm, nil, 0, 11, "e\u0301x", red, WithFace(nil))
	if err != nil {
		t.Fatalf("DrawString() error = %v", err)
	}
	want := []region.Box{region.Rect(0, 0, 6, 13), region.Rect(7, 0, 13, 13)}
	if diff := cmp.Diff(want, got.Rects()); diff != "" {
		t.Errorf("DrawString() mismatch (-want +got):\n%s", diff)
	}
}

func TestDrawString_WithFace(t *testing.T) {
	pm := NewPixmap(10, 4)
	got, err := DrawString(pm, nil, 0, 2, "aa", red, WithFace(blockFace()))
	if err != nil {
		t.Fatalf("DrawString() error = %v", err)
	}
	want := []region.Box{region.Rect(0, 0, 2, 2), region.Rect(3, 0, 5, 2)}
	if diff := cmp.Diff(want, got.Rects()); diff != "" {
		t.Errorf("DrawString() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(coveredPoints(got, pm.Box()), painted(pm, red)); diff != "" {
		t.Errorf("painted pixels mismatch (-want +got):\n%s", diff)
	}
}

func TestImageText(t *testing.T) {
	pm := NewPixmap(20, 20)
	got, err := ImageText(pm, nil, 0, 11, "ab", red, blue)
	if err != nil {
		t.Fatalf("ImageText() error = %v", err)
	}
	want := []region.Box{region.Rect(0, 0, 14, 13)}
	if diff := cmp.Diff(want, got.Rects()); diff != "" {
		t.Errorf("ImageText() mismatch (-want +got):\n%s", diff)
	}
	if c := pm.GetPixel(13, 5); c != blue {
		t.Errorf("gap pixel = %v, want background %v", c, blue)
	}
	if len(painted(pm, red)) == 0 {
		t.Error("ImageText() drew no glyph pixels")
	}
	for y := 0; y < 13; y++ {
		for x := 0; x < 14; x++ {
			if c := pm.GetPixel(x, y); c != red && c != blue {
				t.Fatalf("pixel (%d, %d) = %v, want foreground or background", x, y, c)
			}
		}
	}
}

func TestImageText_WideCells(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want region.Box
	}{
		{"narrow", "a", region.Rect(0, 0, 7, 13)},
		{"wide", "世", region.Rect(0, 0, 14, 13)},
		{"fullwidth", "Ａ", region.Rect(0, 0, 14, 13)},
		{"mixed", "a世", region.Rect(0, 0, 21, 13)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pm := NewPixmap(40, 20)
			got, err := ImageText(pm, nil, 0, 11, tt.s, red, blue)
			if err != nil {
				t.Fatalf("ImageText() error = %v", err)
			}
			if got.Extents() != tt.want {
				t.Errorf("ImageText(%q) extents = %v, want %v", tt.s, got.Extents(), tt.want)
			}
		})
	}
}
