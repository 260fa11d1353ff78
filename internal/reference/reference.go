// Package reference fits pose- and scale-normalised coordinate frames to
// faces so that edits can be expressed independently of the photo.
package reference

import (
	"errors"

	"facewarp/internal/face"
	"facewarp/internal/landmark"
	"facewarp/internal/mathutil"
)

// ErrNotEstimated is returned when a Space is used before Estimate.
var ErrNotEstimated = errors.New("reference: space not estimated")

// Space maps landmark coordinates between an input image and a reference
// frame fitted to one face. ToReference and ToInput are inverses of each
// other once Estimate has succeeded.
type Space interface {
	Estimate(f *face.Face) error
	ToReference(pts []landmark.Point) ([]landmark.Point, error)
	ToInput(pts []landmark.Point) ([]landmark.Point, error)
}

// Factory builds a fresh, unestimated Space. Actions call it once per
// edit so fitted state is never shared.
type Factory func() Space

// DefaultFactory builds the keypoint affine space.
func DefaultFactory() Space {
	return NewDefault()
}

func apply(m mathutil.Mat3, pts []landmark.Point) []landmark.Point {
	out := make([]landmark.Point, len(pts))
	for i, p := range pts {
		out[i].X, out[i].Y = m.Apply(p.X, p.Y)
	}
	return out
}
