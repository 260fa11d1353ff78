package action

import (
	"fmt"

	"facewarp/internal/displacement"
	"facewarp/internal/face"
	"facewarp/internal/landmark"
)

// AbsoluteMove shifts landmarks by fixed pixel offsets. Keys are landmark
// indices; missing keys mean no shift along that axis.
type AbsoluteMove struct {
	XShifts       map[int]float64
	YShifts       map[int]float64
	Interpolation displacement.Options
}

func (m *AbsoluteMove) Perform(f *face.Face) (*face.Face, *displacement.Field, error) {
	pts := f.Points()

	for i, v := range m.XShifts {
		if err := landmark.CheckIndex(i); err != nil {
			return nil, nil, fmt.Errorf("action: x shift: %w", err)
		}
		pts[i].X += v
	}
	for i, v := range m.YShifts {
		if err := landmark.CheckIndex(i); err != nil {
			return nil, nil, fmt.Errorf("action: y shift: %w", err)
		}
		pts[i].Y += v
	}

	return Pts2Inst(pts, f, m.Interpolation)
}

// Negate returns the move with every offset flipped.
func (m *AbsoluteMove) Negate() *AbsoluteMove {
	out := &AbsoluteMove{
		XShifts:       make(map[int]float64, len(m.XShifts)),
		YShifts:       make(map[int]float64, len(m.YShifts)),
		Interpolation: m.Interpolation,
	}
	for i, v := range m.XShifts {
		out.XShifts[i] = -v
	}
	for i, v := range m.YShifts {
		out.YShifts[i] = -v
	}
	return out
}
