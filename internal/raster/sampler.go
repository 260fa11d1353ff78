// Package raster holds the pixel-level sampling used by image warps.
package raster

import "image"

// SampleBilinear performs bilinear filtering at continuous pixel
// coordinates (x, y), clamping to the image edge.
// Returns NRGBA as uint8. Accesses img.Pix directly for performance.
func SampleBilinear(img *image.NRGBA, x, y float64) (r, g, b, a uint8) {
	w := img.Rect.Dx()
	h := img.Rect.Dy()

	// Clamp to the last pixel centre
	if x < 0 {
		x = 0
	} else if x > float64(w-1) {
		x = float64(w - 1)
	}
	if y < 0 {
		y = 0
	} else if y > float64(h-1) {
		y = float64(h - 1)
	}

	x0 := int(x)
	y0 := int(y)
	x1 := x0 + 1
	if x1 >= w {
		x1 = w - 1
	}
	y1 := y0 + 1
	if y1 >= h {
		y1 = h - 1
	}
	dx := x - float64(x0)
	dy := y - float64(y0)

	stride := img.Stride
	pix := img.Pix

	// Four texels
	i00 := y0*stride + x0*4
	i10 := y0*stride + x1*4
	i01 := y1*stride + x0*4
	i11 := y1*stride + x1*4

	w00 := (1 - dx) * (1 - dy)
	w10 := dx * (1 - dy)
	w01 := (1 - dx) * dy
	w11 := dx * dy

	fr := float64(pix[i00])*w00 + float64(pix[i10])*w10 + float64(pix[i01])*w01 + float64(pix[i11])*w11
	fg := float64(pix[i00+1])*w00 + float64(pix[i10+1])*w10 + float64(pix[i01+1])*w01 + float64(pix[i11+1])*w11
	fb := float64(pix[i00+2])*w00 + float64(pix[i10+2])*w10 + float64(pix[i01+2])*w01 + float64(pix[i11+2])*w11
	fa := float64(pix[i00+3])*w00 + float64(pix[i10+3])*w10 + float64(pix[i01+3])*w01 + float64(pix[i11+3])*w11

	return clamp255(fr), clamp255(fg), clamp255(fb), clamp255(fa)
}

// BilinearGrid interpolates a row-major w×h scalar grid at (x, y), clamping
// to the grid edge.
func BilinearGrid(grid []float64, w, h int, x, y float64) float64 {
	if x < 0 {
		x = 0
	} else if x > float64(w-1) {
		x = float64(w - 1)
	}
	if y < 0 {
		y = 0
	} else if y > float64(h-1) {
		y = float64(h - 1)
	}
	x0, y0 := int(x), int(y)
	x1, y1 := x0+1, y0+1
	if x1 >= w {
		x1 = w - 1
	}
	if y1 >= h {
		y1 = h - 1
	}
	dx := x - float64(x0)
	dy := y - float64(y0)

	top := grid[y0*w+x0]*(1-dx) + grid[y0*w+x1]*dx
	bottom := grid[y1*w+x0]*(1-dx) + grid[y1*w+x1]*dx
	return top*(1-dy) + bottom*dy
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
