package action

import (
	"facewarp/internal/displacement"
	"facewarp/internal/face"
	"facewarp/internal/landmark"
	"facewarp/internal/mathutil"
	"facewarp/internal/reference"
)

// LinearTransform applies one affine transform to every landmark in the
// reference frame: scale, then shear, then rotation, then translation.
// Rotation and Shear are in radians, translations in reference units.
// A zero ScaleX or ScaleY means 1, so the zero value is the identity.
type LinearTransform struct {
	ScaleX       float64
	ScaleY       float64
	Rotation     float64
	Shear        float64
	TranslationX float64
	TranslationY float64

	Reference     reference.Factory
	Interpolation displacement.Options
}

// NewLinearTransform returns the identity transform over rs.
func NewLinearTransform(rs reference.Factory) *LinearTransform {
	return &LinearTransform{ScaleX: 1, ScaleY: 1, Reference: rs}
}

// Matrix returns the reference-frame transform.
func (t *LinearTransform) Matrix() mathutil.Mat3 {
	sx, sy := t.ScaleX, t.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return mathutil.Affine(sx, sy, t.Rotation, t.Shear, t.TranslationX, t.TranslationY)
}

// Shifts computes the pixel offsets for all landmarks of f.
func (t *LinearTransform) Shifts(f *face.Face) (*AbsoluteMove, error) {
	if t.Reference == nil {
		return nil, ErrNoReference
	}
	rs := t.Reference()
	if err := rs.Estimate(f); err != nil {
		return nil, &CollaboratorError{Stage: "estimate reference space", Err: err}
	}

	pts := f.Points()
	ref, err := rs.ToReference(pts)
	if err != nil {
		return nil, &CollaboratorError{Stage: "map to reference space", Err: err}
	}

	m := t.Matrix()
	for i := range ref {
		ref[i].X, ref[i].Y = m.Apply(ref[i].X, ref[i].Y)
	}

	back, err := rs.ToInput(ref)
	if err != nil {
		return nil, &CollaboratorError{Stage: "map to input space", Err: err}
	}

	move := &AbsoluteMove{
		XShifts:       make(map[int]float64, landmark.Count),
		YShifts:       make(map[int]float64, landmark.Count),
		Interpolation: t.Interpolation,
	}
	for i := range pts {
		move.XShifts[i] = back[i].X - pts[i].X
		move.YShifts[i] = back[i].Y - pts[i].Y
	}
	return move, nil
}

func (t *LinearTransform) Perform(f *face.Face) (*face.Face, *displacement.Field, error) {
	move, err := t.Shifts(f)
	if err != nil {
		return nil, nil, err
	}
	return move.Perform(f)
}
