package raster

import (
	"image"
	"testing"

	"github.com/gogpu/region"
	"github.com/google/go-cmp/cmp"
)

func TestFillRegion(t *testing.T) {
	pm := NewPixmap(10, 10)
	r := region.NewBox(region.Rect(-5, 8, 4, 20))

	got, err := FillRegion(pm, r, red)
	if err != nil {
		t.Fatalf("FillRegion() error = %v", err)
	}
	if want := region.Rect(0, 8, 4, 10); got.Extents() != want || got.NumRects() != 1 {
		t.Errorf("FillRegion() = %v, want %v", got, want)
	}
	if n := len(painted(pm, red)); n != 8 {
		t.Errorf("painted %d pixels, want 8", n)
	}
}

func TestFillRegion_Frame(t *testing.T) {
	pm := NewPixmap(12, 12)
	clip := frame(t)

	got, err := FillRegion(pm, clip, blue)
	if err != nil {
		t.Fatalf("FillRegion() error = %v", err)
	}
	if !got.Equal(clip) {
		t.Errorf("FillRegion() = %v, want %v", got, clip)
	}
	if diff := cmp.Diff(coveredPoints(clip, pm.Box()), painted(pm, blue)); diff != "" {
		t.Errorf("painted pixels mismatch (-want +got):\n%s", diff)
	}
}

func TestFillBox(t *testing.T) {
	tests := []struct {
		name string
		clip func(t *testing.T) *region.Region
		box  region.Box
		want []region.Box
	}{
		{
			name: "nil clip",
			clip: func(*testing.T) *region.Region { return nil },
			box:  region.Rect(8, 8, 20, 20),
			want: []region.Box{region.Rect(8, 8, 12, 12)},
		},
		{
			name: "frame clip",
			clip: frame,
			box:  region.Rect(2, 2, 8, 8),
			want: []region.Box{
				region.Rect(2, 2, 8, 3),
				region.Rect(2, 3, 3, 7),
				region.Rect(7, 3, 8, 7),
				region.Rect(2, 7, 8, 8),
			},
		},
		{
			name: "inside hole",
			clip: frame,
			box:  region.Rect(4, 4, 6, 6),
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pm := NewPixmap(12, 12)
			got, err := FillBox(pm, tt.clip(t), tt.box, red)
			if err != nil {
				t.Fatalf("FillBox() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got.Rects()); diff != "" {
				t.Errorf("FillBox() mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(coveredPoints(got, pm.Box()), painted(pm, red)); diff != "" {
				t.Errorf("painted pixels mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDrawLine(t *testing.T) {
	tests := []struct {
		name   string
		p0, p1 image.Point
		want   []region.Box
	}{
		{
			name: "horizontal",
			p0:   image.Pt(1, 2), p1: image.Pt(6, 2),
			want: []region.Box{region.Rect(1, 2, 7, 3)},
		},
		{
			name: "horizontal reversed",
			p0:   image.Pt(6, 2), p1: image.Pt(1, 2),
			want: []region.Box{region.Rect(1, 2, 7, 3)},
		},
		{
			name: "vertical",
			p0:   image.Pt(3, 1), p1: image.Pt(3, 4),
			want: []region.Box{region.Rect(3, 1, 4, 5)},
		},
		{
			name: "diagonal",
			p0:   image.Pt(0, 0), p1: image.Pt(3, 3),
			want: []region.Box{
				region.Rect(0, 0, 1, 1),
				region.Rect(1, 1, 2, 2),
				region.Rect(2, 2, 3, 3),
				region.Rect(3, 3, 4, 4),
			},
		},
		{
			name: "point",
			p0:   image.Pt(5, 5), p1: image.Pt(5, 5),
			want: []region.Box{region.Rect(5, 5, 6, 6)},
		},
		{
			name: "leaves pixmap",
			p0:   image.Pt(-4, 3), p1: image.Pt(2, 3),
			want: []region.Box{region.Rect(0, 3, 3, 4)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pm := NewPixmap(10, 10)
			got, err := DrawLine(pm, nil, tt.p0, tt.p1, red)
			if err != nil {
				t.Fatalf("DrawLine() error = %v", err)
			}
			if err := got.Check(); err != nil {
				t.Fatalf("DrawLine() region invalid: %v", err)
			}
			if diff := cmp.Diff(tt.want, got.Rects()); diff != "" {
				t.Errorf("DrawLine() mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(coveredPoints(got, pm.Box()), painted(pm, red)); diff != "" {
				t.Errorf("painted pixels mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDrawLine_PixelCount(t *testing.T) {
	ends := []image.Point{
		{9, 2}, {2, 9}, {-7, 3}, {4, -8}, {-9, -9}, {6, 5}, {-3, 7},
	}
	origin := image.Pt(20, 20)
	for _, e := range ends {
		pm := NewPixmap(40, 40)
		got, err := DrawLine(pm, nil, origin, origin.Add(e), white)
		if err != nil {
			t.Fatalf("DrawLine() error = %v", err)
		}
		want := max(abs(e.X), abs(e.Y)) + 1
		if n := len(painted(pm, white)); n != want {
			t.Errorf("line to %v painted %d pixels, want %d", e, n, want)
		}
		end := origin.Add(e)
		if !got.ContainsPoint(int32(end.X), int32(end.Y)) {
			t.Errorf("line to %v misses its end point", e)
		}
	}
}

func TestDrawLine_Clip(t *testing.T) {
	pm := NewPixmap(10, 10)
	got, err := DrawLine(pm, frame(t), image.Pt(0, 5), image.Pt(9, 5), red)
	if err != nil {
		t.Fatalf("DrawLine() error = %v", err)
	}
	want := []region.Box{region.Rect(0, 5, 3, 6), region.Rect(7, 5, 10, 6)}
	if diff := cmp.Diff(want, got.Rects()); diff != "" {
		t.Errorf("DrawLine() mismatch (-want +got):\n%s", diff)
	}
	if c := pm.GetPixel(5, 5); c == red {
		t.Error("pixel inside the hole was painted")
	}
}

func TestDrawPolyline(t *testing.T) {
	pm := NewPixmap(10, 10)
	got, err := DrawPolyline(pm, nil, []image.Point{{1, 1}, {5, 1}, {5, 4}, {1, 4}}, red)
	if err != nil {
		t.Fatalf("DrawPolyline() error = %v", err)
	}
	want := []region.Box{
		region.Rect(1, 1, 6, 2),
		region.Rect(5, 2, 6, 4),
		region.Rect(1, 4, 6, 5),
	}
	if diff := cmp.Diff(want, got.Rects()); diff != "" {
		t.Errorf("DrawPolyline() mismatch (-want +got):\n%s", diff)
	}

	empty, err := DrawPolyline(pm, nil, nil, red)
	if err != nil || !empty.IsEmpty() {
		t.Errorf("DrawPolyline(nil) = %v, %v, want empty", empty, err)
	}
	single, err := DrawPolyline(pm, nil, []image.Point{{7, 7}}, red)
	if err != nil || single.Extents() != region.Rect(7, 7, 8, 8) {
		t.Errorf("DrawPolyline(point) = %v, %v", single, err)
	}
}
