package scene

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/fogleman/fauxgl"
	"github.com/soypat/rotarray/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	defaultViewAngle = 30 // degrees.
	// near plane is never closer than this fraction of the far plane.
	nearPlaneTolerance = 1e-3
)

// RotationAxis selects how the camera orbits the focal point.
type RotationAxis int

const (
	// Azimuth rotates about the view up vector.
	Azimuth RotationAxis = iota
	// Elevation rotates about the camera's right vector.
	Elevation
)

func (ax RotationAxis) String() string {
	switch ax {
	case Azimuth:
		return "azimuth"
	case Elevation:
		return "elevation"
	}
	return fmt.Sprintf("RotationAxis(%d)", int(ax))
}

// ParseRotationAxis parses "azimuth" or "elevation".
func ParseRotationAxis(s string) (RotationAxis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "azimuth", "":
		return Azimuth, nil
	case "elevation":
		return Elevation, nil
	}
	return 0, fmt.Errorf("unknown rotation axis %q", s)
}

// Camera is a perspective camera looking from Position at FocalPoint.
type Camera struct {
	Position   r3.Vec
	FocalPoint r3.Vec
	ViewUp     r3.Vec
	// Vertical field of view in degrees.
	ViewAngle float64
	Near, Far float64
}

// NewCamera returns a camera at (0,0,1) looking at the origin with +Y up.
func NewCamera() Camera {
	return Camera{
		Position:  r3.Vec{Z: 1},
		ViewUp:    r3.Vec{Y: 1},
		ViewAngle: defaultViewAngle,
		Near:      0.01,
		Far:       1000.01,
	}
}

// Distance from the position to the focal point.
func (c *Camera) Distance() float64 {
	return r3.Norm(r3.Sub(c.FocalPoint, c.Position))
}

// Direction is the unit vector from the position to the focal point.
func (c *Camera) Direction() r3.Vec {
	return r3.Unit(r3.Sub(c.FocalPoint, c.Position))
}

// Reset points the camera at the center of bounds and backs it off along
// its current viewing direction until the bounding sphere fills the view.
// Empty bounds leave the camera unchanged.
func (c *Camera) Reset(bounds d3.Box) {
	if bounds.Empty() {
		return
	}
	if c.ViewAngle <= 0 {
		c.ViewAngle = defaultViewAngle
	}
	back := r3.Sub(c.Position, c.FocalPoint)
	if r3.Norm(back) == 0 || !d3.IsFinite(back) {
		back = r3.Vec{Z: 1}
	}
	back = r3.Unit(back)
	radius := bounds.Radius()
	if radius == 0 {
		radius = 0.5
	}
	distance := radius / math.Sin(0.5*c.ViewAngle*math.Pi/180)
	c.FocalPoint = bounds.Center()
	c.Position = r3.Add(c.FocalPoint, r3.Scale(distance, back))
	c.OrthogonalizeViewUp()
	c.ResetClippingRange(bounds)
}

// SetFocalPoint moves the focal point while keeping the position.
func (c *Camera) SetFocalPoint(p r3.Vec) {
	c.FocalPoint = p
	c.OrthogonalizeViewUp()
}

// OrthogonalizeViewUp makes the view up vector a unit vector
// perpendicular to the viewing direction.
func (c *Camera) OrthogonalizeViewUp() {
	dir := c.Direction()
	up := c.ViewUp
	if r3.Norm(up) == 0 {
		up = r3.Vec{Y: 1}
	}
	up = r3.Sub(up, r3.Scale(r3.Dot(up, dir), dir))
	if r3.Norm(up) < 1e-9 {
		// View up parallel to direction of projection.
		up = r3.Cross(dir, r3.Vec{X: 1})
		if r3.Norm(up) < 1e-9 {
			up = r3.Cross(dir, r3.Vec{Y: 1})
		}
	}
	c.ViewUp = r3.Unit(up)
}

// Azimuth rotates the camera position about the view up vector
// centered at the focal point.
func (c *Camera) Azimuth(degrees float64) {
	c.Position = d3.RotateAbout(c.Position, c.FocalPoint, c.ViewUp, degrees*math.Pi/180)
}

// Elevation rotates the camera position about the cross product of the
// view plane normal and view up, centered at the focal point. Positive
// angles move the camera up. The view up vector is rotated along with
// the position so that a full turn never looks along the up vector.
func (c *Camera) Elevation(degrees float64) {
	back := r3.Sub(c.Position, c.FocalPoint)
	axis := r3.Cross(back, c.ViewUp)
	if r3.Norm(axis) == 0 {
		return
	}
	angle := degrees * math.Pi / 180
	c.Position = d3.RotateAbout(c.Position, c.FocalPoint, axis, angle)
	c.ViewUp = r3.Unit(d3.Rotate(c.ViewUp, axis, angle))
}

// Rotate orbits the camera about ax by degrees.
func (c *Camera) Rotate(ax RotationAxis, degrees float64) error {
	switch ax {
	case Azimuth:
		c.Azimuth(degrees)
	case Elevation:
		c.Elevation(degrees)
	default:
		return fmt.Errorf("unknown rotation axis %v", ax)
	}
	return nil
}

// Dolly moves the camera toward the focal point dividing the distance
// between them by factor. Factors greater than 1 move the camera closer.
func (c *Camera) Dolly(factor float64) error {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return errors.New("dolly factor must be positive and finite")
	}
	d := c.Distance() / factor
	c.Position = r3.Sub(c.FocalPoint, r3.Scale(d, c.Direction()))
	return nil
}

// ResetClippingRange sets the near and far planes so that bounds lie
// between them with some margin.
func (c *Camera) ResetClippingRange(bounds d3.Box) {
	if bounds.Empty() {
		return
	}
	dir := c.Direction()
	near, far := math.Inf(1), math.Inf(-1)
	for _, v := range bounds.Vertices() {
		d := r3.Dot(r3.Sub(v, c.Position), dir)
		near = math.Min(near, d)
		far = math.Max(far, d)
	}
	margin := 0.5*(far-near) + 1e-6*math.Abs(far)
	near -= margin
	far += margin
	if far <= 0 {
		// Scene behind camera.
		far = c.Distance() + 1
	}
	c.Near = math.Max(near, nearPlaneTolerance*far)
	c.Far = far
}

// Matrix returns the view-projection matrix for an image with the
// given width over height aspect ratio.
func (c *Camera) Matrix(aspect float64) fauxgl.Matrix {
	fovy := c.ViewAngle
	if fovy <= 0 {
		fovy = defaultViewAngle
	}
	return fauxgl.LookAt(vec(c.Position), vec(c.FocalPoint), vec(c.ViewUp)).
		Perspective(fovy, aspect, c.Near, c.Far)
}

func vec(v r3.Vec) fauxgl.Vector {
	return fauxgl.V(v.X, v.Y, v.Z)
}
