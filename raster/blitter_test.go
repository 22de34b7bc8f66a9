package raster

import (
	"testing"

	"github.com/gogpu/region"
	"github.com/google/go-cmp/cmp"
)

type span struct {
	x, y, n int
	alpha   uint8
}

// recordingBlitter records the spans it receives.
type recordingBlitter struct {
	h, v []span
}

func (b *recordingBlitter) BlitH(x, y, width int, alpha uint8) {
	b.h = append(b.h, span{x, y, width, alpha})
}

func (b *recordingBlitter) BlitV(x, y, height int, alpha uint8) {
	b.v = append(b.v, span{x, y, height, alpha})
}

func frame(t *testing.T) *region.Region {
	t.Helper()
	r, err := region.NewRects([]region.Box{
		region.Rect(0, 0, 10, 3),
		region.Rect(0, 3, 3, 7),
		region.Rect(7, 3, 10, 7),
		region.Rect(0, 7, 10, 10),
	}, true)
	if err != nil {
		t.Fatalf("NewRects() error = %v", err)
	}
	return r
}

func TestClipBlitter_BlitH(t *testing.T) {
	tests := []struct {
		name    string
		x, y, n int
		want    []span
	}{
		{"full band", 0, 1, 10, []span{{0, 1, 10, 200}}},
		{"split by hole", 0, 5, 10, []span{{0, 5, 3, 200}, {7, 5, 3, 200}}},
		{"inside hole", 4, 5, 3, nil},
		{"partial", 2, 4, 6, []span{{2, 4, 1, 200}, {7, 4, 1, 200}}},
		{"below clip", 0, 12, 10, nil},
		{"above clip", 0, -1, 10, nil},
		{"empty span", 0, 1, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recordingBlitter{}
			NewClipBlitter(rec, frame(t)).BlitH(tt.x, tt.y, tt.n, 200)
			if diff := cmp.Diff(tt.want, rec.h, cmp.AllowUnexported(span{})); diff != "" {
				t.Errorf("BlitH() spans mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClipBlitter_BlitV(t *testing.T) {
	tests := []struct {
		name    string
		x, y, n int
		want    []span
	}{
		{"through hole", 5, 0, 10, []span{{5, 0, 3, 9}, {5, 7, 3, 9}}},
		{"left column", 1, 2, 3, []span{{1, 2, 1, 9}, {1, 3, 2, 9}}},
		{"whole column", 8, 0, 10, []span{{8, 0, 3, 9}, {8, 3, 4, 9}, {8, 7, 3, 9}}},
		{"outside", 12, 0, 10, nil},
		{"empty span", 1, 0, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recordingBlitter{}
			NewClipBlitter(rec, frame(t)).BlitV(tt.x, tt.y, tt.n, 9)
			if diff := cmp.Diff(tt.want, rec.v, cmp.AllowUnexported(span{})); diff != "" {
				t.Errorf("BlitV() spans mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPixmapBlitter(t *testing.T) {
	pm := NewPixmap(4, 4)
	b := NewPixmapBlitter(pm, red)

	b.BlitH(-2, 0, 4, 255)
	b.BlitV(3, 2, 10, 255)
	b.BlitH(0, 3, 1, 0)

	if got := len(painted(pm, red)); got != 4 {
		t.Errorf("painted %d pixels, want 4", got)
	}
	for _, p := range [][2]int{{0, 0}, {1, 0}, {3, 2}, {3, 3}} {
		if got := pm.GetPixel(p[0], p[1]); got != red {
			t.Errorf("GetPixel(%d, %d) = %v, want %v", p[0], p[1], got, red)
		}
	}
}

func TestClipBlitter_PaintsOnlyInside(t *testing.T) {
	pm := NewPixmap(10, 10)
	clip := frame(t)
	b := NewClipBlitter(NewPixmapBlitter(pm, red), clip)
	for y := 0; y < 10; y++ {
		b.BlitH(0, y, 10, 255)
	}
	if diff := cmp.Diff(coveredPoints(clip, pm.Box()), painted(pm, red)); diff != "" {
		t.Errorf("painted pixels mismatch (-want +got):\n%s", diff)
	}
}
