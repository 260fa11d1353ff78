package mathutil

import "math"

// Rotate returns a homogeneous 2D rotation by a radians (counter-clockwise
// in a y-up frame, clockwise on screen).
func Rotate(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}
}

// Scale returns a homogeneous 2D axis scaling.
func Scale(sx, sy float64) Mat3 {
	return Mat3Diag(sx, sy, 1)
}

// Shear returns a homogeneous 2D shear of angle a radians: the y axis is
// tilted by a while the x axis stays fixed.
func Shear(a float64) Mat3 {
	return Mat3{
		1, -math.Sin(a), 0,
		0, math.Cos(a), 0,
		0, 0, 1,
	}
}

// Translate returns a homogeneous 2D translation.
func Translate(tx, ty float64) Mat3 {
	return Mat3{
		1, 0, tx,
		0, 1, ty,
		0, 0, 1,
	}
}

// Affine composes scale, then shear, then rotation, then translation:
// T × R × Sh × S.
func Affine(sx, sy, rotation, shear, tx, ty float64) Mat3 {
	return Mat3Mul(Mat3Mul(Mat3Mul(Translate(tx, ty), Rotate(rotation)), Shear(shear)), Scale(sx, sy))
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}
