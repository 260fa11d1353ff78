package action

import (
	"fmt"

	"facewarp/internal/displacement"
	"facewarp/internal/face"
)

// Pipeline runs actions one after another. Each step sees the landmarks
// left by the previous one; the step fields are composed and the original
// image is warped once with the result.
type Pipeline struct {
	Steps []Action
}

func (p *Pipeline) Perform(f *face.Face) (*face.Face, *displacement.Field, error) {
	if len(p.Steps) == 0 {
		w, h := f.Size()
		out, err := face.New(f.Points(), f.Pixels())
		if err != nil {
			return nil, nil, err
		}
		return out, displacement.Zero(w, h), nil
	}

	cur := f
	var composed *displacement.Field
	for i, step := range p.Steps {
		next, field, err := step.Perform(cur)
		if err != nil {
			return nil, nil, fmt.Errorf("action: pipeline step %d: %w", i, err)
		}
		if composed == nil {
			composed = field
		} else if composed, err = displacement.Compose(composed, field); err != nil {
			return nil, nil, &CollaboratorError{Stage: "compose fields", Err: err}
		}
		cur = next
	}

	img, err := composed.Warp(f.Pixels())
	if err != nil {
		return nil, nil, &CollaboratorError{Stage: "warp image", Err: err}
	}
	out, err := face.Wrap(cur.Points(), img)
	if err != nil {
		return nil, nil, err
	}
	return out, composed, nil
}
