package reference

import (
	"fmt"

	"facewarp/internal/face"
	"facewarp/internal/landmark"
	"facewarp/internal/mathutil"
)

// Fixed is a Space with a transform chosen up front. Estimate ignores the
// face, so the same frame is used for every edit.
type Fixed struct {
	forward mathutil.Mat3
	inverse mathutil.Mat3
}

// NewFixed returns a Space whose input-to-reference transform is m.
func NewFixed(m mathutil.Mat3) (*Fixed, error) {
	inv, err := m.Inverse()
	if err != nil {
		return nil, fmt.Errorf("reference: fixed transform: %w", err)
	}
	return &Fixed{forward: m, inverse: inv}, nil
}

func (s *Fixed) Estimate(*face.Face) error { return nil }

func (s *Fixed) ToReference(pts []landmark.Point) ([]landmark.Point, error) {
	return apply(s.forward, pts), nil
}

func (s *Fixed) ToInput(pts []landmark.Point) ([]landmark.Point, error) {
	return apply(s.inverse, pts), nil
}
