package action

import (
	"errors"
	"fmt"
	"math"

	"facewarp/internal/displacement"
	"facewarp/internal/face"
	"facewarp/internal/landmark"
	"facewarp/internal/mathutil"
	"facewarp/internal/reference"
)

// ErrNoReference is returned by actions built without a reference factory.
var ErrNoReference = errors.New("action: no reference space")

// Spec moves one landmark in the reference frame. Angle is in degrees;
// Proportion multiplies the Lambda's Scale.
type Spec struct {
	Landmark   landmark.ID
	Angle      float64
	Proportion float64
}

// Lambda moves landmarks by angle and proportion in a reference frame
// fitted to each face, so the same specs give comparable edits on faces of
// any size or pose. The shift of a spec is Proportion × Scale reference
// units; proportions are not normalised.
type Lambda struct {
	Scale         float64
	Specs         []Spec
	Reference     reference.Factory
	Interpolation displacement.Options
}

// NewLambda returns a Lambda over rs.
func NewLambda(scale float64, specs []Spec, rs reference.Factory) *Lambda {
	return &Lambda{Scale: scale, Specs: specs, Reference: rs}
}

type resolvedSpec struct {
	Spec
	index int
}

func resolveSpecs(specs []Spec) ([]resolvedSpec, error) {
	out := make([]resolvedSpec, len(specs))
	for i, s := range specs {
		idx, err := s.Landmark.Resolve()
		if err != nil {
			return nil, fmt.Errorf("action: spec %d (%s): %w", i, s.Landmark, err)
		}
		out[i] = resolvedSpec{Spec: s, index: idx}
	}
	return out, nil
}

// Shifts computes the pixel offsets the Lambda applies to f without
// warping anything. Later specs for the same landmark win.
func (l *Lambda) Shifts(f *face.Face) (*AbsoluteMove, error) {
	specs, err := resolveSpecs(l.Specs)
	if err != nil {
		return nil, err
	}
	if l.Reference == nil {
		return nil, ErrNoReference
	}

	rs := l.Reference()
	if err := rs.Estimate(f); err != nil {
		return nil, &CollaboratorError{Stage: "estimate reference space", Err: err}
	}
	pts := f.Points()
	ref, err := rs.ToReference(pts)
	if err != nil {
		return nil, &CollaboratorError{Stage: "map to reference space", Err: err}
	}

	move := &AbsoluteMove{
		XShifts:       make(map[int]float64, len(specs)),
		YShifts:       make(map[int]float64, len(specs)),
		Interpolation: l.Interpolation,
	}
	for _, s := range specs {
		rad := mathutil.Deg2Rad(s.Angle)
		shift := landmark.Point{X: math.Cos(rad), Y: math.Sin(rad)}.Scale(s.Proportion * l.Scale)

		back, err := rs.ToInput([]landmark.Point{ref[s.index].Add(shift)})
		if err != nil {
			return nil, fmt.Errorf("action: spec %s: %w", s.Landmark,
				&CollaboratorError{Stage: "map to input space", Err: err})
		}
		d := back[0].Sub(pts[s.index])
		move.XShifts[s.index] = d.X
		move.YShifts[s.index] = d.Y
	}
	return move, nil
}

func (l *Lambda) Perform(f *face.Face) (*face.Face, *displacement.Field, error) {
	move, err := l.Shifts(f)
	if err != nil {
		return nil, nil, err
	}
	return move.Perform(f)
}
