package displacement

import (
	"math"
	"testing"

	"facewarp/internal/landmark"
	"facewarp/internal/testutil"
)

const eps = 1e-6

func gridPoints() []landmark.Point {
	return []landmark.Point{
		{X: 10, Y: 10}, {X: 20, Y: 12}, {X: 15, Y: 20}, {X: 25, Y: 25}, {X: 8, Y: 24},
	}
}

func TestGenerateZeroShiftIsIdentity(t *testing.T) {
	pts := gridPoints()
	f, err := Generate(32, 32, pts, pts, DefaultOptions())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	for i := range f.DX {
		if f.DX[i] != 0 || f.DY[i] != 0 {
			t.Fatalf("delta %d = (%v, %v), want exact zero", i, f.DX[i], f.DY[i])
		}
	}

	src := testutil.Gradient(32, 32)
	out, err := f.Warp(src)
	if err != nil {
		t.Fatalf("Warp() error = %v", err)
	}
	for i := range src.Pix {
		if out.Pix[i] != src.Pix[i] {
			t.Fatalf("pixel byte %d = %d, want %d", i, out.Pix[i], src.Pix[i])
		}
	}
	if &out.Pix[0] == &src.Pix[0] {
		t.Error("Warp() returned the source buffer")
	}
}

func TestGenerateInterpolatesNodes(t *testing.T) {
	oldPts := gridPoints()
	newPts := make([]landmark.Point, len(oldPts))
	for i, p := range oldPts {
		newPts[i] = landmark.Point{X: p.X + 2, Y: p.Y - 1}
	}

	for _, fn := range []string{Linear, Gaussian, Multiquadric, InverseMultiquadric} {
		t.Run(fn, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Function = fn
			f, err := Generate(40, 40, oldPts, newPts, opts)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			// Nodes sit on integer pixels, so the stored delta is exact.
			for _, p := range newPts {
				dx, dy := f.At(int(p.X), int(p.Y))
				if math.Abs(dx+2) > eps || math.Abs(dy-1) > eps {
					t.Errorf("delta at %v = (%v, %v), want (-2, 1)", p, dx, dy)
				}
			}
			// Corners are anchored.
			for _, c := range [][2]int{{0, 0}, {39, 0}, {0, 39}, {39, 39}} {
				dx, dy := f.At(c[0], c[1])
				if math.Abs(dx) > eps || math.Abs(dy) > eps {
					t.Errorf("corner %v moved by (%v, %v)", c, dx, dy)
				}
			}
		})
	}
}

func TestGenerateEdgeAnchors(t *testing.T) {
	oldPts := gridPoints()
	newPts := make([]landmark.Point, len(oldPts))
	for i, p := range oldPts {
		newPts[i] = landmark.Point{X: p.X + 3, Y: p.Y}
	}
	opts := DefaultOptions()
	opts.EdgeAnchors = 3 // anchors at 1/4, 1/2, 3/4 of 0..32
	f, err := Generate(33, 33, oldPts, newPts, opts)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	for _, c := range [][2]int{{16, 0}, {8, 32}, {0, 24}, {32, 16}} {
		dx, dy := f.At(c[0], c[1])
		if math.Abs(dx) > eps || math.Abs(dy) > eps {
			t.Errorf("edge anchor %v moved by (%v, %v)", c, dx, dy)
		}
	}
}

func TestGenerateErrors(t *testing.T) {
	pts := gridPoints()
	tests := []struct {
		name   string
		w, h   int
		oldPts []landmark.Point
		newPts []landmark.Point
		opts   Options
	}{
		{name: "mismatched lengths", w: 10, h: 10, oldPts: pts, newPts: pts[:2], opts: DefaultOptions()},
		{name: "empty image", w: 0, h: 10, oldPts: pts, newPts: pts, opts: DefaultOptions()},
		{name: "unknown kernel", w: 40, h: 40, oldPts: pts, newPts: pts, opts: Options{Function: "spline"}},
		{name: "duplicate nodes", w: 40, h: 40,
			oldPts: []landmark.Point{{X: 5, Y: 5}, {X: 5, Y: 5}},
			newPts: []landmark.Point{{X: 6, Y: 6}, {X: 6, Y: 6}},
			opts:   DefaultOptions()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Generate(tt.w, tt.h, tt.oldPts, tt.newPts, tt.opts); err == nil {
				t.Error("Generate() succeeded, want error")
			}
		})
	}
}

func TestWarpTranslation(t *testing.T) {
	w, h := 16, 8
	dx := make([]float64, w*h)
	dy := make([]float64, w*h)
	for i := range dx {
		dx[i] = 1
	}
	f, err := NewField(w, h, dx, dy)
	if err != nil {
		t.Fatal(err)
	}
	src := testutil.Gradient(w, h)
	out, err := f.Warp(src)
	if err != nil {
		t.Fatal(err)
	}
	// Pixel x samples source x+1; the last column clamps.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sx := min(x+1, w-1)
			if out.NRGBAAt(x, y) != src.NRGBAAt(sx, y) {
				t.Fatalf("out(%d,%d) = %v, want src(%d,%d) = %v", x, y, out.NRGBAAt(x, y), sx, y, src.NRGBAAt(sx, y))
			}
		}
	}
}

func TestWarpSizeMismatch(t *testing.T) {
	if _, err := Zero(4, 4).Warp(testutil.Gradient(5, 4)); err == nil {
		t.Error("Warp() accepted a mismatched image")
	}
}

func TestCompose(t *testing.T) {
	w, h := 12, 12
	a := Zero(w, h)
	b := Zero(w, h)
	for i := range a.DX {
		a.DX[i] = 1
		b.DY[i] = 2
	}
	c, err := Compose(a, b)
	if err != nil {
		t.Fatal(err)
	}
	for i := range c.DX {
		if math.Abs(c.DX[i]-1) > eps || math.Abs(c.DY[i]-2) > eps {
			t.Fatalf("composed delta %d = (%v, %v), want (1, 2)", i, c.DX[i], c.DY[i])
		}
	}
	if math.Abs(c.MeanNorm()-math.Sqrt(5)) > eps || math.Abs(c.MaxNorm()-math.Sqrt(5)) > eps {
		t.Errorf("norms = %v / %v, want sqrt(5)", c.MeanNorm(), c.MaxNorm())
	}

	if _, err := Compose(a, Zero(3, 3)); err == nil {
		t.Error("Compose() accepted mismatched sizes")
	}
}

func TestNewFieldValidates(t *testing.T) {
	if _, err := NewField(2, 2, make([]float64, 3), make([]float64, 4)); err == nil {
		t.Error("NewField() accepted short delta slice")
	}
}
