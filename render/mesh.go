package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/fauxgl"
	"github.com/soypat/rotarray/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// LoadMesh loads a triangle mesh from a file. STL files are read with
// ReadSTL; OBJ, PLY and 3DS files are read by fauxgl. Normal mismatches
// in STL files are not reported as errors since fauxgl recalculates
// normals from the vertex winding.
func LoadMesh(path string) (*fauxgl.Mesh, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".stl":
		fp, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer fp.Close()
		model, err := ReadSTL(fp)
		if err != nil && !errors.Is(err, ErrNormalMismatch) {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		return ToMesh(model), nil
	case ".obj", ".ply", ".3ds":
		mesh, err := fauxgl.LoadMesh(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		return mesh, nil
	default:
		return nil, fmt.Errorf("unsupported mesh file extension %q", ext)
	}
}

// ToMesh converts triangles to a fauxgl mesh with flat normals.
func ToMesh(model []Triangle3) *fauxgl.Mesh {
	triangles := make([]*fauxgl.Triangle, len(model))
	for i, t := range model {
		triangles[i] = fauxgl.NewTriangleForPoints(toVector(t[0]), toVector(t[1]), toVector(t[2]))
	}
	return fauxgl.NewTriangleMesh(triangles)
}

// FromMesh returns the triangles of a fauxgl mesh. Lines are ignored.
func FromMesh(mesh *fauxgl.Mesh) []Triangle3 {
	model := make([]Triangle3, len(mesh.Triangles))
	for i, t := range mesh.Triangles {
		model[i] = Triangle3{
			fromVector(t.V1.Position),
			fromVector(t.V2.Position),
			fromVector(t.V3.Position),
		}
	}
	return model
}

// MeshBounds returns the bounding box of a mesh's triangles.
func MeshBounds(mesh *fauxgl.Mesh) d3.Box {
	if len(mesh.Triangles) == 0 {
		return d3.EmptyBox()
	}
	box := mesh.BoundingBox()
	return d3.Box{Min: fromVector(box.Min), Max: fromVector(box.Max)}
}

func toVector(v r3.Vec) fauxgl.Vector {
	return fauxgl.V(v.X, v.Y, v.Z)
}

func fromVector(v fauxgl.Vector) r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}
