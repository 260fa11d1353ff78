// Package postprocess prepares edited faces for output.
package postprocess

import (
	"fmt"
	"image"
	"math"

	"facewarp/internal/face"
	"facewarp/internal/landmark"

	"golang.org/x/image/draw"
)

// Fit downscales f so that neither side exceeds maxSize, keeping the
// aspect ratio and moving the landmarks with the pixels. Faces that
// already fit, and maxSize <= 0, return f itself.
func Fit(f *face.Face, maxSize int) (*face.Face, error) {
	w, h := f.Size()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return f, nil
	}

	s := float64(maxSize) / float64(max(w, h))
	tw := max(1, int(math.Round(float64(w)*s)))
	th := max(1, int(math.Round(float64(h)*s)))

	img := Downsample(f.Pixels(), tw, th)

	sx := float64(tw) / float64(w)
	sy := float64(th) / float64(h)
	pts := f.Points()
	for i := range pts {
		pts[i] = landmark.Point{X: pts[i].X * sx, Y: pts[i].Y * sy}
	}

	out, err := face.Wrap(pts, img)
	if err != nil {
		return nil, fmt.Errorf("postprocess: fit: %w", err)
	}
	return out, nil
}

// Downsample reduces image size with premultiplied-alpha-aware filtering.
// This prevents dark halo artifacts at transparent edges.
func Downsample(img *image.NRGBA, tw, th int) *image.NRGBA {
	b := img.Bounds()

	// Premultiply alpha
	premul := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			si := img.PixOffset(x, y)
			di := premul.PixOffset(x, y)
			a := float64(img.Pix[si+3]) / 255.0
			premul.Pix[di] = uint8(float64(img.Pix[si])*a + 0.5)
			premul.Pix[di+1] = uint8(float64(img.Pix[si+1])*a + 0.5)
			premul.Pix[di+2] = uint8(float64(img.Pix[si+2])*a + 0.5)
			premul.Pix[di+3] = img.Pix[si+3]
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	draw.CatmullRom.Scale(dst, dst.Bounds(), premul, premul.Bounds(), draw.Src, nil)

	// Unpremultiply alpha
	result := image.NewNRGBA(dst.Bounds())
	for y := 0; y < th; y++ {
		for x := 0; x < tw; x++ {
			si := dst.PixOffset(x, y)
			di := result.PixOffset(x, y)
			a := float64(dst.Pix[si+3])
			if a > 1 {
				inv := 255.0 / a
				result.Pix[di] = clamp8(float64(dst.Pix[si]) * inv)
				result.Pix[di+1] = clamp8(float64(dst.Pix[si+1]) * inv)
				result.Pix[di+2] = clamp8(float64(dst.Pix[si+2]) * inv)
			}
			result.Pix[di+3] = dst.Pix[si+3]
		}
	}

	return result
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
