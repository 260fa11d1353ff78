package action

import (
	"facewarp/internal/displacement"
	"facewarp/internal/face"
	"facewarp/internal/landmark"
)

// Mirror flips the face horizontally. Left and right landmarks trade
// indices so that names keep describing the image side.
type Mirror struct{}

func (Mirror) Perform(f *face.Face) (*face.Face, *displacement.Field, error) {
	w, h := f.Size()

	field := displacement.Zero(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			field.DX[y*w+x] = float64(w - 1 - 2*x)
		}
	}
	img, err := field.Warp(f.Pixels())
	if err != nil {
		return nil, nil, &CollaboratorError{Stage: "warp image", Err: err}
	}

	pts := f.Points()
	flipped := make([]landmark.Point, len(pts))
	for i, p := range pts {
		j, err := landmark.Mirror(i)
		if err != nil {
			return nil, nil, err
		}
		flipped[j] = landmark.Point{X: float64(w-1) - p.X, Y: p.Y}
	}

	out, err := face.Wrap(flipped, img)
	if err != nil {
		return nil, nil, err
	}
	return out, field, nil
}
