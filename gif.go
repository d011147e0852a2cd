package rotarray

import (
	"errors"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
)

// EncodeGIF writes frames as a looping animated GIF. delay is the time
// between frames in hundredths of a second. Frames are dithered to the
// Plan 9 palette.
func EncodeGIF(w io.Writer, frames []image.Image, delay int) error {
	if len(frames) == 0 {
		return ErrEmpty
	}
	if delay < 0 {
		return errors.New("rotarray: negative GIF frame delay")
	}
	anim := gif.GIF{
		Image:     make([]*image.Paletted, len(frames)),
		Delay:     make([]int, len(frames)),
		LoopCount: 0, // forever.
	}
	bounds := frames[0].Bounds()
	for i, frame := range frames {
		if frame == nil {
			return errors.New("rotarray: nil GIF frame")
		}
		b := frame.Bounds()
		if b.Size() != bounds.Size() {
			return errors.New("rotarray: GIF frames differ in size")
		}
		pm := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), palette.Plan9)
		draw.FloydSteinberg.Draw(pm, pm.Bounds(), frame, b.Min)
		anim.Image[i] = pm
		anim.Delay[i] = delay
	}
	return gif.EncodeAll(w, &anim)
}
