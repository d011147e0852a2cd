package rotarray

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
)

// Axis is an image axis along which images are concatenated.
type Axis int

const (
	// AxisX appends images left to right.
	AxisX Axis = iota
	// AxisY appends images top to bottom.
	AxisY
	// AxisZ stacks images in depth. Rasters have no depth so
	// concatenating along AxisZ fails with ErrAxis.
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

var (
	// ErrAxis is returned when concatenating along an axis 2D images lack.
	ErrAxis = errors.New("rotarray: images can only be concatenated along x or y")
	// ErrEmpty is returned when there is nothing to concatenate or render.
	ErrEmpty = errors.New("rotarray: no images")
)

// Concatenate appends images along axis. The output is as long as the sum
// of the image lengths along axis and as wide as the widest image across
// it. Each image is anchored at the output's origin across axis; pixels not
// covered by any image are left transparent black.
func Concatenate(images []image.Image, axis Axis) (*image.NRGBA, error) {
	if axis != AxisX && axis != AxisY {
		return nil, ErrAxis
	}
	if len(images) == 0 {
		return nil, ErrEmpty
	}
	var along, across int
	for i, img := range images {
		if img == nil {
			return nil, fmt.Errorf("rotarray: nil image at index %d", i)
		}
		sz := img.Bounds().Size()
		if axis == AxisX {
			along += sz.X
			across = max(across, sz.Y)
		} else {
			along += sz.Y
			across = max(across, sz.X)
		}
	}
	var dst *image.NRGBA
	if axis == AxisX {
		dst = image.NewNRGBA(image.Rect(0, 0, along, across))
	} else {
		dst = image.NewNRGBA(image.Rect(0, 0, across, along))
	}
	var offset image.Point
	for _, img := range images {
		b := img.Bounds()
		draw.Draw(dst, b.Sub(b.Min).Add(offset), img, b.Min, draw.Src)
		if axis == AxisX {
			offset.X += b.Dx()
		} else {
			offset.Y += b.Dy()
		}
	}
	return dst, nil
}
