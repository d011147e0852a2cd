package render

import (
	"github.com/soypat/rotarray/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Triangle3 is a 3D triangle. Vertices are counter-clockwise
// when looking at the front face.
type Triangle3 [3]r3.Vec

// Normal returns the unit normal of the triangle's front face.
func (t Triangle3) Normal() r3.Vec {
	e1 := r3.Sub(t[1], t[0])
	e2 := r3.Sub(t[2], t[0])
	return r3.Unit(r3.Cross(e1, e2))
}

// Degenerate returns true if two vertices of the triangle coincide within tol.
func (t Triangle3) Degenerate(tol float64) bool {
	return d3.EqualWithin(t[0], t[1], tol) ||
		d3.EqualWithin(t[1], t[2], tol) ||
		d3.EqualWithin(t[2], t[0], tol)
}

// Bounds returns the bounding box of a set of triangles. An empty
// set returns d3.EmptyBox.
func Bounds(model []Triangle3) d3.Box {
	bb := d3.EmptyBox()
	for _, t := range model {
		bb = bb.Include(t[0]).Include(t[1]).Include(t[2])
	}
	return bb
}
