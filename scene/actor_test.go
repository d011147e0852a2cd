package scene

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/fogleman/fauxgl"
	"github.com/soypat/rotarray/internal/d3"
	"github.com/soypat/rotarray/render"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestPrimitiveBounds(t *testing.T) {
	const tol = 1e-6
	center := r3.Vec{X: 1, Y: -2, Z: 3}
	for _, test := range []struct {
		name  string
		actor *Actor
		size  r3.Vec
	}{
		{name: "sphere", actor: Sphere(center, 2, nil), size: d3.Elem(4)},
		{name: "cube", actor: Cube(center, r3.Vec{X: 1, Y: 2, Z: 3}, nil), size: r3.Vec{X: 1, Y: 2, Z: 3}},
		{name: "cylinder", actor: Cylinder(center, 1, 5, nil), size: r3.Vec{X: 2, Y: 2, Z: 5}},
		{name: "cone", actor: Cone(center, 0.5, 1, nil), size: r3.Vec{X: 1, Y: 1, Z: 1}},
	} {
		got := test.actor.Bounds()
		want := d3.NewBox(center, test.size)
		if !got.Equals(want, tol) {
			t.Errorf("%s bounds mismatch. got %v, want %v", test.name, got, want)
		}
	}
}

func TestActorColorAndTranslate(t *testing.T) {
	a := Cube(r3.Vec{}, d3.Elem(2), nil)
	if got := a.Color(); got != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("default actor color should be white, got %v", got)
	}
	moved := a.Translate(r3.Vec{Z: 10})
	if !moved.Bounds().Equals(d3.NewBox(r3.Vec{Z: 10}, d3.Elem(2)), 1e-9) {
		t.Errorf("translated bounds mismatch: %v", moved.Bounds())
	}
	if !a.Bounds().Equals(d3.NewBox(r3.Vec{}, d3.Elem(2)), 1e-9) {
		t.Error("translate modified the original actor")
	}
	if NewActor(nil, nil).Mesh() == nil {
		t.Error("nil mesh should be replaced by an empty mesh")
	}
}

func TestLoadActor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sphere.stl")
	fp, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	err = render.WriteSTL(fp, render.FromMesh(fauxgl.NewSphere(1)))
	fp.Close()
	if err != nil {
		t.Fatal(err)
	}
	a, err := LoadActor(path, testColor)
	if err != nil {
		t.Fatal(err)
	}
	if a.Bounds().Empty() {
		t.Error("loaded actor has empty bounds")
	}
	if _, err := LoadActor(filepath.Join(t.TempDir(), "missing.stl"), nil); err == nil {
		t.Error("expected error loading missing file")
	}
}

func TestBolt(t *testing.T) {
	if testing.Short() {
		t.Skip("bolt meshing is slow")
	}
	a, err := Bolt(BoltConfig{
		Thread:      "M16x2",
		Tolerance:   0.1,
		TotalLength: 40,
		ShankLength: 10,
		Cells:       60,
	}, testColor)
	if err != nil {
		t.Fatal(err)
	}
	size := a.Bounds().Size()
	if size.Z < 30 || size.X < 10 {
		t.Errorf("unexpected bolt size: %v", size)
	}
	if _, err := Bolt(BoltConfig{}, nil); err == nil {
		t.Error("expected error for missing thread")
	}
}
