package region_test

import (
	"math/rand/v2"
	"testing"

	"github.com/gogpu/region"
	"github.com/gogpu/region/internal/regiontest"
)

var (
	// boxSpace is where random operands live.
	boxSpace = region.Rect(0, 0, 40, 40)
	// pixelSpace is large enough to hold every translated operand.
	pixelSpace = region.Rect(-100, -100, 140, 140)
)

func newRNG(t testing.TB, seed uint64) *rand.Rand {
	t.Helper()
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func assertPixels(t *testing.T, what string, r *region.Region, want *regiontest.Bitmap) {
	t.Helper()
	if err := r.Check(); err != nil {
		t.Fatalf("%s: Check() = %v\n%v", what, err, r)
	}
	got := regiontest.Rasterize(r, want.Bounds)
	if d := got.Diff(want); d != "" {
		t.Fatalf("%s: %s\n%v", what, d, r)
	}
}

func TestSetOps_MatchPixels(t *testing.T) {
	for seed := range uint64(200) {
		rng := newRNG(t, seed)
		a := regiontest.RandomRegion(rng, 1+rng.IntN(12), boxSpace)
		b := regiontest.RandomRegion(rng, 1+rng.IntN(12), boxSpace)
		pa := regiontest.Rasterize(a, pixelSpace)
		pb := regiontest.Rasterize(b, pixelSpace)

		var r region.Region
		if err := r.Union(a, b); err != nil {
			t.Fatalf("seed %d: Union() error = %v", seed, err)
		}
		assertPixels(t, "union", &r, pa.Union(pb))

		if err := r.Intersect(a, b); err != nil {
			t.Fatalf("seed %d: Intersect() error = %v", seed, err)
		}
		assertPixels(t, "intersect", &r, pa.Intersect(pb))

		if err := r.Subtract(a, b); err != nil {
			t.Fatalf("seed %d: Subtract() error = %v", seed, err)
		}
		assertPixels(t, "subtract", &r, pa.Subtract(pb))

		universe := region.Rect(-5, -5, 45, 45)
		if err := r.Inverse(a, universe); err != nil {
			t.Fatalf("seed %d: Inverse() error = %v", seed, err)
		}
		assertPixels(t, "inverse", &r, regiontest.FromBoxes([]region.Box{universe}, pixelSpace).Subtract(pa))
	}
}

func TestSetOps_Laws(t *testing.T) {
	for seed := range uint64(200) {
		rng := newRNG(t, seed)
		a := regiontest.RandomRegion(rng, 1+rng.IntN(10), boxSpace)
		b := regiontest.RandomRegion(rng, 1+rng.IntN(10), boxSpace)
		c := regiontest.RandomRegion(rng, 1+rng.IntN(10), boxSpace)

		var ab, ba region.Region
		mustOp(t, ab.Union(a, b))
		mustOp(t, ba.Union(b, a))
		if !ab.Equal(&ba) {
			t.Fatalf("seed %d: union not commutative:\n%v\n%v", seed, &ab, &ba)
		}

		mustOp(t, ab.Intersect(a, b))
		mustOp(t, ba.Intersect(b, a))
		if !ab.Equal(&ba) {
			t.Fatalf("seed %d: intersect not commutative:\n%v\n%v", seed, &ab, &ba)
		}

		// (a ∪ b) ∪ c == a ∪ (b ∪ c)
		var left, right region.Region
		mustOp(t, left.Union(a, b))
		mustOp(t, left.Union(&left, c))
		mustOp(t, right.Union(b, c))
		mustOp(t, right.Union(a, &right))
		if !left.Equal(&right) {
			t.Fatalf("seed %d: union not associative", seed)
		}

		// a ∩ (b ∪ c) == (a ∩ b) ∪ (a ∩ c)
		var bc, abi, aci region.Region
		mustOp(t, bc.Union(b, c))
		mustOp(t, left.Intersect(a, &bc))
		mustOp(t, abi.Intersect(a, b))
		mustOp(t, aci.Intersect(a, c))
		mustOp(t, right.Union(&abi, &aci))
		if !left.Equal(&right) {
			t.Fatalf("seed %d: intersect does not distribute over union", seed)
		}

		// a - b == a ∩ inverse(b)
		universe := region.Rect(-1, -1, 41, 41)
		var inv region.Region
		mustOp(t, left.Subtract(a, b))
		mustOp(t, inv.Inverse(b, universe))
		mustOp(t, right.Intersect(a, &inv))
		if !left.Equal(&right) {
			t.Fatalf("seed %d: subtract differs from intersect with inverse", seed)
		}

		// (a - b) ∪ (a ∩ b) == a
		mustOp(t, left.Subtract(a, b))
		mustOp(t, right.Intersect(a, b))
		mustOp(t, left.Union(&left, &right))
		if !left.Equal(a) {
			t.Fatalf("seed %d: a - b and a ∩ b do not partition a", seed)
		}
	}
}

func mustOp(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("operation failed: %v", err)
	}
}

func TestRandomSequence(t *testing.T) {
	for seed := range uint64(50) {
		rng := newRNG(t, seed)
		r := regiontest.RandomRegion(rng, 5, boxSpace)
		ref := regiontest.Rasterize(r, pixelSpace)

		for step := range 30 {
			other := regiontest.RandomRegion(rng, 1+rng.IntN(6), boxSpace)
			po := regiontest.Rasterize(other, pixelSpace)
			var err error
			switch rng.IntN(6) {
			case 0:
				err = r.Union(r, other)
				ref = ref.Union(po)
			case 1:
				err = r.Intersect(other, r)
				ref = ref.Intersect(po)
			case 2:
				err = r.Subtract(r, other)
				ref = ref.Subtract(po)
			case 3:
				err = r.Subtract(other, r)
				ref = po.Subtract(ref)
			case 4:
				dx, dy := rng.Int32N(7)-3, rng.Int32N(7)-3
				r.Translate(dx, dy)
				ref = shift(ref, dx, dy)
			case 5:
				b := regiontest.RandomBox(rng, boxSpace)
				err = r.UnionRect(r, b)
				ref = ref.Union(regiontest.FromBoxes([]region.Box{b}, pixelSpace))
			}
			if err != nil {
				t.Fatalf("seed %d step %d: error = %v", seed, step, err)
			}
			assertPixels(t, "sequence", r, ref)
		}
	}
}

func shift(bm *regiontest.Bitmap, dx, dy int32) *regiontest.Bitmap {
	out := regiontest.NewBitmap(bm.Bounds)
	for y := bm.Bounds.Y1; y < bm.Bounds.Y2; y++ {
		for x := bm.Bounds.X1; x < bm.Bounds.X2; x++ {
			if bm.Get(x, y) {
				out.Set(x+dx, y+dy, true)
			}
		}
	}
	return out
}

func TestValidate_MatchesPixels(t *testing.T) {
	for seed := range uint64(200) {
		rng := newRNG(t, seed)
		boxes := regiontest.RandomBoxes(rng, rng.IntN(40), boxSpace)
		r, err := region.NewRects(boxes, false)
		if err != nil {
			t.Fatalf("seed %d: NewRects() error = %v", seed, err)
		}
		assertPixels(t, "validate", r, regiontest.FromBoxes(boxes, pixelSpace))

		// Validation is canonical: the same pixels from an incremental union
		// give the same rectangles.
		var inc region.Region
		for _, b := range boxes {
			mustOp(t, inc.UnionRect(&inc, b))
		}
		if !inc.Equal(r) {
			t.Fatalf("seed %d: validated region differs from incremental union:\n%v\n%v", seed, r, &inc)
		}

		again, err := region.NewRects(r.Rects(), true)
		if err != nil {
			t.Fatalf("seed %d: NewRects(banded) error = %v", seed, err)
		}
		if !again.Equal(r) {
			t.Fatalf("seed %d: banded round trip differs", seed)
		}
	}
}

func TestContainsRect_MatchesPixels(t *testing.T) {
	for seed := range uint64(100) {
		rng := newRNG(t, seed)
		r := regiontest.RandomRegion(rng, 1+rng.IntN(10), boxSpace)
		pr := regiontest.Rasterize(r, pixelSpace)
		for range 20 {
			b := regiontest.RandomBox(rng, region.Rect(-5, -5, 45, 45))
			pb := regiontest.FromBoxes([]region.Box{b}, pixelSpace)
			inside := pb.Intersect(pr).Count()
			want := region.Part
			switch inside {
			case 0:
				want = region.Out
			case pb.Count():
				want = region.In
			}
			if got := r.ContainsRect(b); got != want {
				t.Fatalf("seed %d: ContainsRect(%v) = %v, want %v\n%v", seed, b, got, want, r)
			}
		}
	}
}

func TestCoalesce_Minimal(t *testing.T) {
	for seed := range uint64(100) {
		rng := newRNG(t, seed)
		// A random region clipped to a box that it fully covers is that box.
		r := regiontest.RandomRegion(rng, 1+rng.IntN(8), boxSpace)
		var cover region.Region
		mustOp(t, cover.Union(r, region.NewBox(r.Extents())))
		if cover.NumRects() != 1 {
			t.Fatalf("seed %d: union with own extents has %d rects", seed, cover.NumRects())
		}

		// A rectangle split into random pieces and reassembled is one
		// rectangle, also next to a copy of itself.
		box := regiontest.RandomBox(rng, boxSpace)
		var pieces []region.Box
		for y := box.Y1; y < box.Y2; y++ {
			cut := box.X1 + rng.Int32N(box.Dx())
			if cut > box.X1 {
				pieces = append(pieces, region.Rect(box.X1, y, cut, y+1))
			}
			pieces = append(pieces, region.Rect(cut, y, box.X2, y+1))
		}
		whole, err := region.NewRects(pieces, false)
		if err != nil {
			t.Fatal(err)
		}
		if whole.NumRects() != 1 || whole.Extents() != box {
			t.Fatalf("seed %d: reassembled %v = %v", seed, box, whole)
		}
		var twin region.Region
		mustOp(t, twin.Copy(whole))
		twin.Translate(box.Dx(), 0)
		mustOp(t, twin.Union(&twin, whole))
		if twin.NumRects() != 1 {
			t.Fatalf("seed %d: union with adjacent twin has %d rects", seed, twin.NumRects())
		}
	}
}
