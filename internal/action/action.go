// Package action turns semantic face edits into landmark moves and
// warps the face image to follow them.
//
// Every action reduces to an AbsoluteMove: a per-landmark pixel offset.
// AbsoluteMove hands the new landmark set to Pts2Inst, the only place that
// talks to the displacement-field engine, so the returned field is always
// the one used to produce the returned image.
package action

import (
	"fmt"

	"facewarp/internal/displacement"
	"facewarp/internal/face"
	"facewarp/internal/landmark"
)

// Action edits a face. Perform never modifies its input and returns a new
// Face together with the displacement field used to warp its image.
type Action interface {
	Perform(f *face.Face) (*face.Face, *displacement.Field, error)
}

// CollaboratorError wraps a failure of the reference space or the
// displacement engine. Unwrap yields the original error.
type CollaboratorError struct {
	Stage string
	Err   error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("action: %s: %v", e.Stage, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// Pts2Inst warps f so that its landmarks land on newPoints. Image edges
// are always anchored; a zero Options interpolates linearly.
func Pts2Inst(newPoints []landmark.Point, f *face.Face, opts displacement.Options) (*face.Face, *displacement.Field, error) {
	if err := landmark.CheckShape(newPoints); err != nil {
		return nil, nil, fmt.Errorf("action: new points: %w", err)
	}
	opts.AnchorEdges = true

	w, h := f.Size()
	field, err := displacement.Generate(w, h, f.Points(), newPoints, opts)
	if err != nil {
		return nil, nil, &CollaboratorError{Stage: "generate displacement field", Err: err}
	}
	img, err := field.Warp(f.Pixels())
	if err != nil {
		return nil, nil, &CollaboratorError{Stage: "warp image", Err: err}
	}

	out, err := face.Wrap(newPoints, img)
	if err != nil {
		return nil, nil, err
	}
	return out, field, nil
}
