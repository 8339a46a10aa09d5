package processor

import (
	"image"
	"image/draw"

	"golang.org/x/image/vector"
)

// kappa places cubic control points so that a quarter curve approximates a
// circular arc.
const kappa = 0.5522847498

// RoundCorners clips img to a rounded rectangle of width x height anchored at
// the top-left corner. Pixels outside the mask become fully transparent.
func (p *ImageProcessor) RoundCorners(img image.Image, width, height, radius int) image.Image {
	mask := roundedRectMask(width, height, radius)

	bounds := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	// DrawMask clips to the mask bounds, so anything the mask does not cover
	// keeps the zero (transparent) value of dst.
	draw.DrawMask(dst, dst.Bounds(), img, bounds.Min, mask, image.Point{}, draw.Src)
	return dst
}

func roundedRectMask(width, height, radius int) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	if width <= 0 || height <= 0 {
		return mask
	}

	w, h := float32(width), float32(height)
	// Same clamping as SVG rx/ry.
	r := min(float32(max(radius, 0)), w/2, h/2)
	c := r * kappa

	z := vector.NewRasterizer(width, height)
	z.MoveTo(r, 0)
	z.LineTo(w-r, 0)
	z.CubeTo(w-r+c, 0, w, r-c, w, r)
	z.LineTo(w, h-r)
	z.CubeTo(w, h-r+c, w-r+c, h, w-r, h)
	z.LineTo(r, h)
	z.CubeTo(r-c, h, 0, h-r+c, 0, h-r)
	z.LineTo(0, r)
	z.CubeTo(0, r-c, r-c, 0, r, 0)
	z.ClosePath()
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	return mask
}
