// Package testutil builds synthetic faces with a known reference frame.
package testutil

import (
	"image"
	"image/color"
	"math"
	"testing"

	"facewarp/internal/face"
	"facewarp/internal/landmark"
	"facewarp/internal/mathutil"
)

// Layout places the reference-frame landmarks into an image:
// input = Center + Rotate(Rotation) · Scale · ref.
type Layout struct {
	Size      int
	Scale     float64
	Rotation  float64
	Overrides map[int]landmark.Point // reference coordinates
}

// DefaultLayout is a 64×64 image with the face spanning its middle.
func DefaultLayout() Layout {
	return Layout{Size: 64, Scale: 16}
}

// Transform returns the reference-to-input matrix of the layout.
func (l Layout) Transform() mathutil.Mat3 {
	c := float64(l.Size) / 2
	return mathutil.Mat3Mul(mathutil.Translate(c, c),
		mathutil.Mat3Mul(mathutil.Rotate(l.Rotation), mathutil.Scale(l.Scale, l.Scale)))
}

// RefPoints lays out all landmarks in the reference frame. The five
// keypoints of the default space sit on their exact positions; every other
// landmark lies on a ring of radius 0.4..0.8 at its own angle.
func (l Layout) RefPoints() []landmark.Point {
	pts := make([]landmark.Point, landmark.Count)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / landmark.Count
		r := 0.4 + 0.1*float64(i%5)
		pts[i] = landmark.Point{X: r * math.Cos(a), Y: r * math.Sin(a)}
	}
	pts[landmark.Names["CHIN"]] = landmark.Point{X: 0, Y: 1}
	pts[landmark.Names["UPPER_TEMPLE_L"]] = landmark.Point{X: -1, Y: -1}
	pts[landmark.Names["UPPER_TEMPLE_R"]] = landmark.Point{X: 1, Y: -1}
	pts[landmark.Names["UPPERMOST_NOSE"]] = landmark.Point{X: 0, Y: -1}
	pts[landmark.Names["MIDDLE_NOSTRIL"]] = landmark.Point{X: 0, Y: 0}
	for i, p := range l.Overrides {
		pts[i] = p
	}
	return pts
}

// InputPoints maps RefPoints into image coordinates.
func (l Layout) InputPoints() []landmark.Point {
	m := l.Transform()
	ref := l.RefPoints()
	out := make([]landmark.Point, len(ref))
	for i, p := range ref {
		out[i].X, out[i].Y = m.Apply(p.X, p.Y)
	}
	return out
}

// Face builds the synthetic face over a colour gradient image.
func (l Layout) Face(tb testing.TB) *face.Face {
	tb.Helper()
	f, err := face.Wrap(l.InputPoints(), Gradient(l.Size, l.Size))
	if err != nil {
		tb.Fatalf("synthetic face: %v", err)
	}
	return f
}

// Gradient returns an opaque w×h image whose colour varies along both axes.
func Gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / max(w-1, 1)),
				G: uint8(y * 255 / max(h-1, 1)),
				B: uint8((x + y) % 256),
				A: 255,
			})
		}
	}
	return img
}

// AssertPointsNear fails the test when any point differs by more than tol.
func AssertPointsNear(tb testing.TB, got, want []landmark.Point, tol float64) {
	tb.Helper()
	if len(got) != len(want) {
		tb.Fatalf("point count = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i].X-want[i].X) > tol || math.Abs(got[i].Y-want[i].Y) > tol {
			tb.Errorf("point %d = (%.6f, %.6f), want (%.6f, %.6f)", i, got[i].X, got[i].Y, want[i].X, want[i].Y)
		}
	}
}
