// Package displacement builds dense per-pixel displacement fields from
// sparse landmark correspondences and resamples images through them.
//
// A Field is stored backwards: for every pixel p of the warped image,
// (DX, DY) at p is the offset to the source pixel it is sampled from.
package displacement

import (
	"fmt"
	"image"
	"math"

	"facewarp/internal/landmark"
	"facewarp/internal/raster"
)

// Options control field generation.
type Options struct {
	// Function is the radial basis kernel, Linear when empty.
	Function string
	// Epsilon is the kernel shape parameter for gaussian and multiquadric
	// kernels. Zero selects the mean node spacing.
	Epsilon float64
	// Smooth relaxes exact interpolation at the nodes. Zero interpolates.
	Smooth float64
	// AnchorEdges pins the image border with zero displacement.
	AnchorEdges bool
	// EdgeAnchors adds this many evenly spaced anchors per edge on top of
	// the four corners. Ignored unless AnchorEdges is set.
	EdgeAnchors int
}

// DefaultOptions is linear interpolation with anchored corners.
func DefaultOptions() Options {
	return Options{Function: Linear, AnchorEdges: true}
}

// Field is a dense backward displacement map over a Width×Height image.
type Field struct {
	Width  int
	Height int
	DX     []float64 // row-major, len = Width*Height
	DY     []float64
}

// NewField wraps existing delta slices.
func NewField(w, h int, dx, dy []float64) (*Field, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("displacement: invalid size %dx%d", w, h)
	}
	if len(dx) != w*h || len(dy) != w*h {
		return nil, fmt.Errorf("displacement: delta length %d/%d does not match %dx%d", len(dx), len(dy), w, h)
	}
	return &Field{Width: w, Height: h, DX: dx, DY: dy}, nil
}

// Zero returns the identity field.
func Zero(w, h int) *Field {
	return &Field{Width: w, Height: h, DX: make([]float64, w*h), DY: make([]float64, w*h)}
}

// Generate interpolates a field over a w×h image that moves every old
// point onto its new position. Both point sets must have equal length.
func Generate(w, h int, oldPts, newPts []landmark.Point, opts Options) (*Field, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("displacement: invalid size %dx%d", w, h)
	}
	if len(oldPts) != len(newPts) {
		return nil, fmt.Errorf("displacement: %d old points but %d new points", len(oldPts), len(newPts))
	}

	nodes := make([]landmark.Point, 0, len(newPts)+4+4*opts.EdgeAnchors)
	vx := make([]float64, 0, cap(nodes))
	vy := make([]float64, 0, cap(nodes))
	for i := range newPts {
		nodes = append(nodes, newPts[i])
		vx = append(vx, oldPts[i].X-newPts[i].X)
		vy = append(vy, oldPts[i].Y-newPts[i].Y)
	}
	if opts.AnchorEdges {
		for _, a := range edgeAnchors(w, h, opts.EdgeAnchors) {
			nodes = append(nodes, a)
			vx = append(vx, 0)
			vy = append(vy, 0)
		}
	}

	interp, err := fitRBF(nodes, vx, vy, opts)
	if err != nil {
		return nil, err
	}

	f := Zero(w, h)
	for y := 0; y < h; y++ {
		row := y * w
		for x := 0; x < w; x++ {
			f.DX[row+x], f.DY[row+x] = interp.eval(float64(x), float64(y))
		}
	}
	return f, nil
}

// edgeAnchors returns the four corners plus perEdge interior points on
// each side.
func edgeAnchors(w, h, perEdge int) []landmark.Point {
	maxX, maxY := float64(w-1), float64(h-1)
	pts := []landmark.Point{{X: 0, Y: 0}, {X: maxX, Y: 0}, {X: 0, Y: maxY}, {X: maxX, Y: maxY}}
	for i := 1; i <= perEdge; i++ {
		t := float64(i) / float64(perEdge+1)
		pts = append(pts,
			landmark.Point{X: t * maxX, Y: 0},
			landmark.Point{X: t * maxX, Y: maxY},
			landmark.Point{X: 0, Y: t * maxY},
			landmark.Point{X: maxX, Y: t * maxY},
		)
	}
	return dedupe(pts)
}

// dedupe drops repeated anchors, which appear on 1-pixel-wide images and
// would make the interpolation system singular.
func dedupe(pts []landmark.Point) []landmark.Point {
	out := pts[:0]
	seen := make(map[landmark.Point]bool, len(pts))
	for _, p := range pts {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

// At returns the delta stored at integer pixel (x, y).
func (f *Field) At(x, y int) (float64, float64) {
	i := y*f.Width + x
	return f.DX[i], f.DY[i]
}

// Sample bilinearly interpolates the delta at continuous (x, y).
func (f *Field) Sample(x, y float64) (float64, float64) {
	return raster.BilinearGrid(f.DX, f.Width, f.Height, x, y),
		raster.BilinearGrid(f.DY, f.Width, f.Height, x, y)
}

// Warp resamples src through the field into a new image. src is not
// modified and the result never shares its buffer.
func (f *Field) Warp(src *image.NRGBA) (*image.NRGBA, error) {
	b := src.Bounds()
	if b.Dx() != f.Width || b.Dy() != f.Height {
		return nil, fmt.Errorf("displacement: image %dx%d does not match field %dx%d", b.Dx(), b.Dy(), f.Width, f.Height)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		row := y * f.Width
		for x := 0; x < f.Width; x++ {
			i := row + x
			r, g, bl, a := raster.SampleBilinear(src, float64(x)+f.DX[i], float64(y)+f.DY[i])
			o := y*dst.Stride + x*4
			dst.Pix[o] = r
			dst.Pix[o+1] = g
			dst.Pix[o+2] = bl
			dst.Pix[o+3] = a
		}
	}
	return dst, nil
}

// Compose returns the field equivalent to warping by first and then by
// second: out(p) = src(p + d2(p) + d1(p + d2(p))).
func Compose(first, second *Field) (*Field, error) {
	if first.Width != second.Width || first.Height != second.Height {
		return nil, fmt.Errorf("displacement: cannot compose %dx%d with %dx%d",
			first.Width, first.Height, second.Width, second.Height)
	}
	out := Zero(first.Width, first.Height)
	for y := 0; y < out.Height; y++ {
		row := y * out.Width
		for x := 0; x < out.Width; x++ {
			i := row + x
			dx2, dy2 := second.DX[i], second.DY[i]
			dx1, dy1 := first.Sample(float64(x)+dx2, float64(y)+dy2)
			out.DX[i] = dx2 + dx1
			out.DY[i] = dy2 + dy1
		}
	}
	return out, nil
}

// MeanNorm is the average displacement length in pixels.
func (f *Field) MeanNorm() float64 {
	if len(f.DX) == 0 {
		return 0
	}
	var sum float64
	for i := range f.DX {
		sum += math.Hypot(f.DX[i], f.DY[i])
	}
	return sum / float64(len(f.DX))
}

// MaxNorm is the largest displacement length in pixels.
func (f *Field) MaxNorm() float64 {
	var m float64
	for i := range f.DX {
		m = math.Max(m, math.Hypot(f.DX[i], f.DY[i]))
	}
	return m
}
