// Package landmark describes the 68-point facial landmark model: point
// coordinates, the symbolic name table and landmark identifiers.
package landmark

// Count is the number of landmarks on every face.
const Count = 68

// Point is a landmark position in pixel (or reference) coordinates.
type Point struct {
	X float64
	Y float64
}

func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

func (p Point) Scale(s float64) Point {
	return Point{p.X * s, p.Y * s}
}

// CheckShape returns a ShapeError unless pts holds exactly Count points.
func CheckShape(pts []Point) error {
	if len(pts) != Count {
		return &ShapeError{Rows: len(pts)}
	}
	return nil
}

// CheckIndex returns an IndexError unless 0 <= i < Count.
func CheckIndex(i int) error {
	if i < 0 || i >= Count {
		return &IndexError{Index: i}
	}
	return nil
}
