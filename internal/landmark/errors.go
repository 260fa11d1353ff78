package landmark

import "fmt"

// ShapeError reports a point set that does not hold exactly Count points.
type ShapeError struct {
	Rows int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("landmark: expected %d points, got %d", Count, e.Rows)
}

// IndexError reports a landmark index outside [0, Count).
type IndexError struct {
	Index int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("landmark: index %d out of range [0, %d)", e.Index, Count)
}

// UnknownNameError reports a symbolic name missing from Names.
type UnknownNameError struct {
	Name string
}

func (e *UnknownNameError) Error() string {
	return fmt.Sprintf("landmark: unknown name %q", e.Name)
}
