package rotarray

import (
	"image"
	"image/draw"

	"github.com/fogleman/fauxgl"
)

// SavePNG writes img to path in PNG format.
func SavePNG(path string, img image.Image) error {
	return fauxgl.SavePNG(path, img)
}

func toNRGBA(img image.Image) *image.NRGBA {
	if nrgba, ok := img.(*image.NRGBA); ok && nrgba.Rect.Min == (image.Point{}) {
		return nrgba
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
