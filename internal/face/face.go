// Package face holds the immutable Face value: 68 landmark points and the
// raster image they were detected on, sharing one pixel coordinate system.
package face

import (
	"fmt"
	"image"

	"facewarp/internal/landmark"
)

// Face is a landmark set plus its image. Faces are never modified after
// construction; editing produces a new Face.
type Face struct {
	points [landmark.Count]landmark.Point
	img    *image.NRGBA
}

// New builds a Face from exactly landmark.Count points and an image.
// Both are copied, so later changes by the caller do not leak in.
func New(points []landmark.Point, img image.Image) (*Face, error) {
	if err := landmark.CheckShape(points); err != nil {
		return nil, fmt.Errorf("face: %w", err)
	}
	if img == nil {
		return nil, fmt.Errorf("face: nil image")
	}
	f := &Face{img: CloneNRGBA(img)}
	copy(f.points[:], points)
	return f, nil
}

// Wrap builds a Face that takes ownership of img without copying it.
// Callers must not touch img afterwards.
func Wrap(points []landmark.Point, img *image.NRGBA) (*Face, error) {
	if err := landmark.CheckShape(points); err != nil {
		return nil, fmt.Errorf("face: %w", err)
	}
	if img == nil {
		return nil, fmt.Errorf("face: nil image")
	}
	f := &Face{img: img}
	copy(f.points[:], points)
	return f, nil
}

// Points returns a copy of the landmark positions.
func (f *Face) Points() []landmark.Point {
	out := make([]landmark.Point, landmark.Count)
	copy(out, f.points[:])
	return out
}

// At returns landmark i.
func (f *Face) At(i int) (landmark.Point, error) {
	if err := landmark.CheckIndex(i); err != nil {
		return landmark.Point{}, err
	}
	return f.points[i], nil
}

// Pixels exposes the face image for read-only access. Writing to it breaks
// the immutability of the Face.
func (f *Face) Pixels() *image.NRGBA {
	return f.img
}

// Size returns the image width and height.
func (f *Face) Size() (int, int) {
	b := f.img.Bounds()
	return b.Dx(), b.Dy()
}
