package rotarray

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/soypat/rotarray/internal/d3"
	"github.com/soypat/rotarray/scene"
	"go.uber.org/zap/zaptest"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot/cmpimg"
)

var (
	red  = color.NRGBA{R: 255, A: 255}
	blue = color.NRGBA{B: 255, A: 255}
)

func testRows() [][]*scene.Actor {
	return [][]*scene.Actor{
		{scene.Sphere(r3.Vec{}, 1, red)},
		{scene.Cube(r3.Vec{X: 1}, d3.Elem(1), blue), scene.Cylinder(r3.Vec{X: -1}, 0.3, 1, blue)},
	}
}

func TestRotationArrayLayout(t *testing.T) {
	const size = 20
	for _, test := range []struct {
		name string
		cfg  Config
		want image.Rectangle
	}{
		{
			name: "rows",
			cfg:  Config{Rotations: 2, Width: size, Height: size, RowNames: []string{"sphere", "cube"}},
			want: image.Rect(0, 0, size/10+2*size, 2*size),
		},
		{
			name: "transposed",
			cfg:  Config{Rotations: 2, Width: size, Height: size, Transpose: true, RowNames: []string{"sphere"}},
			want: image.Rect(0, 0, 2*size, size/10+2*size),
		},
		{
			name: "no labels",
			cfg:  Config{Rotations: 3, Width: size, Height: size, HideLabels: true, Workers: 1},
			want: image.Rect(0, 0, 3*size, 2*size),
		},
	} {
		test.cfg.Logger = zaptest.NewLogger(t)
		img, err := RotationArray(context.Background(), testRows(), test.cfg)
		if err != nil {
			t.Fatalf("%s: %v", test.name, err)
		}
		if img.Bounds() != test.want {
			t.Errorf("%s: bounds mismatch. got %v, want %v", test.name, img.Bounds(), test.want)
		}
	}
}

func TestRotationArrayRowOrder(t *testing.T) {
	const size = 24
	img, err := RotationArray(context.Background(), testRows(), Config{
		Rotations:  2,
		Width:      size,
		Height:     size,
		HideLabels: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	r0, b0 := channelSums(img, image.Rect(0, 0, 2*size, size))
	r1, b1 := channelSums(img, image.Rect(0, size, 2*size, 2*size))
	if r0 <= b0 {
		t.Errorf("first row should show the red sphere: red %d, blue %d", r0, b0)
	}
	if b1 <= r1 {
		t.Errorf("second row should show blue actors: red %d, blue %d", r1, b1)
	}
}

func TestRotationArrayMatchesSeries(t *testing.T) {
	const size = 16
	rows := testRows()[:1]
	got, err := RotationArray(context.Background(), rows, Config{
		Rotations:   3,
		Width:       size,
		Height:      size,
		RowNames:    []string{"sphere"},
		Supersample: 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	win, err := scene.NewWindow(scene.WindowConfig{
		Actors:     rows[0],
		Width:      size,
		Height:     size,
		Background: color.White,
	})
	if err != nil {
		t.Fatal(err)
	}
	series, err := RotationSeries(win, SeriesConfig{Rotations: 3, AppendID: true, Name: "sphere"})
	if err != nil {
		t.Fatal(err)
	}
	want, err := Concatenate(series, AxisX)
	if err != nil {
		t.Fatal(err)
	}
	if !equalPNGApprox(t, got, want, 0.01) {
		t.Error("single row array should equal its concatenated rotation series")
	}
}

func TestRotationArrayErrors(t *testing.T) {
	ctx := context.Background()
	if _, err := RotationArray(ctx, nil, Config{}); !errors.Is(err, ErrEmpty) {
		t.Errorf("want ErrEmpty, got %v", err)
	}
	_, err := RotationArray(ctx, testRows(), Config{FocalPoints: []r3.Vec{{}}})
	if !errors.Is(err, ErrFocalPoints) {
		t.Errorf("want ErrFocalPoints, got %v", err)
	}
	if _, err := RotationArray(ctx, testRows(), Config{RowNames: []string{"a", "b", "c"}}); err == nil {
		t.Error("expected error for more names than rows")
	}
	if _, err := RotationArray(ctx, testRows(), Config{Rotations: -3}); err == nil {
		t.Error("expected error for negative rotations")
	}
	if _, err := RotationArray(ctx, testRows(), Config{Zoom: -1, Width: 8, Height: 8}); err == nil {
		t.Error("expected error for negative zoom")
	}
	canceled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := RotationArray(canceled, testRows(), Config{Width: 8, Height: 8}); !errors.Is(err, context.Canceled) {
		t.Errorf("want context.Canceled, got %v", err)
	}
}

func TestRotationArrayFocalPoints(t *testing.T) {
	const size = 16
	rows := testRows()
	img, err := RotationArray(context.Background(), rows, Config{
		Rotations:   1,
		Width:       size,
		Height:      size,
		HideLabels:  true,
		FocalPoints: []r3.Vec{{}, {X: 1}},
		Zoom:        1.5,
	})
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(0, 0, size, 2*size) {
		t.Errorf("unexpected bounds %v", img.Bounds())
	}
}

func channelSums(img *image.NRGBA, r image.Rectangle) (red, blue int) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := img.NRGBAAt(x, y)
			red += int(c.R)
			blue += int(c.B)
		}
	}
	return red, blue
}

func equalPNG(t *testing.T, a, b image.Image) bool {
	t.Helper()
	return equalPNGApprox(t, a, b, 0)
}

func equalPNGApprox(t *testing.T, a, b image.Image, delta float64) bool {
	t.Helper()
	var b1, b2 bytes.Buffer
	if err := png.Encode(&b1, a); err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(&b2, b); err != nil {
		t.Fatal(err)
	}
	equal, err := cmpimg.EqualApprox("png", b1.Bytes(), b2.Bytes(), delta)
	if err != nil {
		t.Fatal(err)
	}
	return equal
}
