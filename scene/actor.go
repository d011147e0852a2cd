package scene

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"sync"

	"github.com/deadsy/sdfx/obj"
	sdfxrender "github.com/deadsy/sdfx/render"
	"github.com/fogleman/fauxgl"
	"github.com/soypat/rotarray/internal/d3"
	"github.com/soypat/rotarray/render"
	"gonum.org/v1/gonum/spatial/r3"
)

// Actor is a mesh placed in a scene with a single surface color.
type Actor struct {
	mesh  *fauxgl.Mesh
	color fauxgl.Color
}

// NewActor returns an actor that draws mesh with color c. A nil color
// draws the mesh white. The mesh is not copied.
func NewActor(mesh *fauxgl.Mesh, c color.Color) *Actor {
	if mesh == nil {
		mesh = fauxgl.NewEmptyMesh()
	}
	fc := fauxgl.White
	if c != nil {
		fc = fauxgl.MakeColor(c)
	}
	return &Actor{mesh: mesh, color: fc}
}

// LoadActor loads a mesh file with render.LoadMesh and wraps it in an Actor.
func LoadActor(path string, c color.Color) (*Actor, error) {
	mesh, err := render.LoadMesh(path)
	if err != nil {
		return nil, err
	}
	return NewActor(mesh, c), nil
}

// Bounds returns the bounding box of the actor's mesh.
func (a *Actor) Bounds() d3.Box {
	return render.MeshBounds(a.mesh)
}

// Mesh returns the mesh drawn by the actor.
func (a *Actor) Mesh() *fauxgl.Mesh { return a.mesh }

// Color returns the surface color of the actor.
func (a *Actor) Color() color.Color { return a.color.NRGBA() }

// Transform returns a new actor with a transformed copy of a's mesh.
func (a *Actor) Transform(m fauxgl.Matrix) *Actor {
	mesh := a.mesh.Copy()
	mesh.Transform(m)
	return &Actor{mesh: mesh, color: a.color}
}

// Translate returns a copy of the actor moved by v.
func (a *Actor) Translate(v r3.Vec) *Actor {
	return a.Transform(fauxgl.Translate(fauxgl.V(v.X, v.Y, v.Z)))
}

// Sphere returns a sphere actor.
func Sphere(center r3.Vec, radius float64, c color.Color) *Actor {
	const detail = 4 // icosphere subdivisions.
	return fitActor(fauxgl.NewSphere(detail), center, d3.Elem(2*radius), c)
}

// Cube returns an axis aligned box actor.
func Cube(center, size r3.Vec, c color.Color) *Actor {
	return fitActor(fauxgl.NewCube(), center, size, c)
}

// Cylinder returns a capped cylinder actor with its axis along Z.
func Cylinder(center r3.Vec, radius, height float64, c color.Color) *Actor {
	const steps = 64
	return fitActor(fauxgl.NewCylinder(steps, true), center, r3.Vec{X: 2 * radius, Y: 2 * radius, Z: height}, c)
}

// Cone returns a capped cone actor with its axis along Z.
func Cone(center r3.Vec, radius, height float64, c color.Color) *Actor {
	const steps = 64
	return fitActor(fauxgl.NewCone(steps, true), center, r3.Vec{X: 2 * radius, Y: 2 * radius, Z: height}, c)
}

// fitActor scales and moves mesh so that its bounding box has the
// given center and size.
func fitActor(mesh *fauxgl.Mesh, center, size r3.Vec, c color.Color) *Actor {
	bb := mesh.BoundingBox()
	meshSize := bb.Size()
	scale := fauxgl.V(size.X/meshSize.X, size.Y/meshSize.Y, size.Z/meshSize.Z)
	m := fauxgl.Translate(bb.Center().Negate()).
		Scale(scale).
		Translate(fauxgl.V(center.X, center.Y, center.Z))
	mesh.Transform(m)
	return NewActor(mesh, c)
}

// BoltConfig describes a threaded bolt meshed from a signed distance function.
type BoltConfig struct {
	// Thread name such as "M16x2" or "npt_1/2".
	Thread string
	// Head style, "hex" or "knurl".
	Style       string
	Tolerance   float64
	TotalLength float64
	ShankLength float64
	// Cells is the amount of marching cube cells along the longest
	// bolt dimension. Defaults to 200.
	Cells int
}

// sdfxMu serializes sdfx meshing since it prints to os.Stdout, which is
// swapped while it runs.
var sdfxMu sync.Mutex

// Bolt returns a threaded bolt actor. The bolt is meshed by sdfx with
// an octree marching cubes renderer.
func Bolt(cfg BoltConfig, c color.Color) (*Actor, error) {
	if cfg.Thread == "" {
		return nil, errors.New("bolt thread name required")
	}
	if cfg.Style == "" {
		cfg.Style = "hex"
	}
	if cfg.Cells <= 0 {
		cfg.Cells = 200
	}
	object, err := obj.Bolt(&obj.BoltParms{
		Thread:      cfg.Thread,
		Style:       cfg.Style,
		Tolerance:   cfg.Tolerance,
		TotalLength: cfg.TotalLength,
		ShankLength: cfg.ShankLength,
	})
	if err != nil {
		return nil, fmt.Errorf("bolt %s: %w", cfg.Thread, err)
	}
	fp, err := os.CreateTemp("", "rotarray-bolt-*.stl")
	if err != nil {
		return nil, err
	}
	path := fp.Name()
	fp.Close()
	defer os.Remove(path)

	sdfxMu.Lock()
	stdout := os.Stdout
	os.Stdout, _ = os.OpenFile(os.DevNull, os.O_WRONLY, 0) // pesky sdfx prints out stuff
	sdfxrender.ToSTL(object, cfg.Cells, path, &sdfxrender.MarchingCubesOctree{})
	os.Stdout.Close()
	os.Stdout = stdout
	sdfxMu.Unlock()

	return LoadActor(path, c)
}
