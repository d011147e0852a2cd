package rotarray

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"testing"
)

func TestEncodeGIF(t *testing.T) {
	frames := []image.Image{
		uniform(8, 6, color.NRGBA{R: 255, A: 255}),
		uniform(8, 6, color.NRGBA{G: 255, A: 255}),
		uniform(8, 6, color.NRGBA{B: 255, A: 255}),
	}
	var buf bytes.Buffer
	if err := EncodeGIF(&buf, frames, 25); err != nil {
		t.Fatal(err)
	}
	anim, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(anim.Image) != len(frames) {
		t.Fatalf("want %d frames, got %d", len(frames), len(anim.Image))
	}
	for i, d := range anim.Delay {
		if d != 25 {
			t.Errorf("frame %d delay %d", i, d)
		}
	}
	r, g, b, _ := anim.Image[1].At(3, 3).RGBA()
	if g <= r || g <= b {
		t.Errorf("second frame should be green, got %d %d %d", r>>8, g>>8, b>>8)
	}
}

func TestEncodeGIFErrors(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeGIF(&buf, nil, 10); !errors.Is(err, ErrEmpty) {
		t.Errorf("want ErrEmpty, got %v", err)
	}
	mixed := []image.Image{uniform(2, 2, color.Black), uniform(3, 2, color.Black)}
	if err := EncodeGIF(&buf, mixed, 10); err == nil {
		t.Error("expected error for frames of different size")
	}
	if err := EncodeGIF(&buf, mixed[:1], -1); err == nil {
		t.Error("expected error for negative delay")
	}
}
