package reference

import (
	"fmt"

	"facewarp/internal/face"
	"facewarp/internal/landmark"
	"facewarp/internal/mathutil"

	"gonum.org/v1/gonum/mat"
)

// Keypoint pins a landmark to a fixed position in the reference frame.
type Keypoint struct {
	ID  landmark.ID
	Ref landmark.Point
}

// DefaultKeypoints spans the face: temples at the top corners, the nose
// bridge and chin on the vertical axis, the nostril base at the origin.
var DefaultKeypoints = []Keypoint{
	{ID: landmark.Name("CHIN"), Ref: landmark.Point{X: 0, Y: 1}},
	{ID: landmark.Name("UPPER_TEMPLE_L"), Ref: landmark.Point{X: -1, Y: -1}},
	{ID: landmark.Name("UPPER_TEMPLE_R"), Ref: landmark.Point{X: 1, Y: -1}},
	{ID: landmark.Name("UPPERMOST_NOSE"), Ref: landmark.Point{X: 0, Y: -1}},
	{ID: landmark.Name("MIDDLE_NOSTRIL"), Ref: landmark.Point{X: 0, Y: 0}},
}

// Affine is a Space given by the least-squares affine transform taking the
// face's keypoint landmarks onto their reference positions.
type Affine struct {
	keypoints []Keypoint
	forward   mathutil.Mat3
	inverse   mathutil.Mat3
	estimated bool
}

// NewDefault returns an Affine space over DefaultKeypoints.
func NewDefault() *Affine {
	return NewAffine(DefaultKeypoints)
}

// NewAffine returns an Affine space over the given keypoints.
func NewAffine(keypoints []Keypoint) *Affine {
	kps := make([]Keypoint, len(keypoints))
	copy(kps, keypoints)
	return &Affine{keypoints: kps}
}

// Estimate fits the transform to f. Any earlier fit is discarded, also
// when the new fit fails.
func (s *Affine) Estimate(f *face.Face) error {
	s.estimated = false
	n := len(s.keypoints)
	if n < 3 {
		return fmt.Errorf("reference: need at least 3 keypoints, have %d", n)
	}

	// Rows [x y 1] -> [u v]; solve A·P = B for the 3×2 parameter matrix.
	a := mat.NewDense(n, 3, nil)
	b := mat.NewDense(n, 2, nil)
	for i, kp := range s.keypoints {
		idx, err := kp.ID.Resolve()
		if err != nil {
			return fmt.Errorf("reference: keypoint %s: %w", kp.ID, err)
		}
		p, _ := f.At(idx)
		a.SetRow(i, []float64{p.X, p.Y, 1})
		b.SetRow(i, []float64{kp.Ref.X, kp.Ref.Y})
	}

	var params mat.Dense
	if err := params.Solve(a, b); err != nil {
		return fmt.Errorf("reference: estimate: %w", err)
	}

	forward := mathutil.Mat3{
		params.At(0, 0), params.At(1, 0), params.At(2, 0),
		params.At(0, 1), params.At(1, 1), params.At(2, 1),
		0, 0, 1,
	}
	inverse, err := forward.Inverse()
	if err != nil {
		return fmt.Errorf("reference: degenerate keypoint configuration: %w", err)
	}

	s.forward = forward
	s.inverse = inverse
	s.estimated = true
	return nil
}

func (s *Affine) ToReference(pts []landmark.Point) ([]landmark.Point, error) {
	if !s.estimated {
		return nil, ErrNotEstimated
	}
	return apply(s.forward, pts), nil
}

func (s *Affine) ToInput(pts []landmark.Point) ([]landmark.Point, error) {
	if !s.estimated {
		return nil, ErrNotEstimated
	}
	return apply(s.inverse, pts), nil
}

// Transform returns the fitted input-to-reference matrix.
func (s *Affine) Transform() (mathutil.Mat3, error) {
	if !s.estimated {
		return mathutil.Mat3{}, ErrNotEstimated
	}
	return s.forward, nil
}
