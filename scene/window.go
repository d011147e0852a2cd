package scene

import (
	"errors"
	"image"
	"image/color"
	"image/draw"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"github.com/soypat/rotarray/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	DefaultWidth  = 1000
	DefaultHeight = 1000
)

// ErrClosed is returned when capturing from a closed Window.
var ErrClosed = errors.New("scene: window closed")

// WindowConfig configures an off-screen render window.
type WindowConfig struct {
	Actors []*Actor
	// Output image size in pixels. Zero values default to 1000.
	Width, Height int
	// Background defaults to black.
	Background color.Color
	// Camera is copied into the window when not nil. Otherwise a new camera
	// is reset to the bounds of the actors.
	Camera *Camera
	// FocalPoint overrides the camera focal point when not nil.
	FocalPoint *r3.Vec
	// Zoom dollies the camera toward the focal point. Zero means 1.
	Zoom float64
	// Supersample renders the scene Supersample times larger and downsamples
	// for anti-aliasing. Values below 2 disable anti-aliasing.
	Supersample int
}

// Window renders a scene off-screen. A Window is not safe for concurrent use.
type Window struct {
	actors     []*Actor
	bounds     d3.Box
	camera     Camera
	background fauxgl.Color
	width      int
	height     int
	ss         int
	ctx        *fauxgl.Context
}

// NewWindow creates a window showing cfg.Actors. The camera is reset to
// frame every actor, then moved to the focal point and zoomed.
func NewWindow(cfg WindowConfig) (*Window, error) {
	if cfg.Width < 0 || cfg.Height < 0 {
		return nil, errors.New("negative window dimension")
	}
	if cfg.Width == 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Height == 0 {
		cfg.Height = DefaultHeight
	}
	if cfg.Zoom == 0 {
		cfg.Zoom = 1
	}
	if cfg.Supersample < 1 {
		cfg.Supersample = 1
	}
	w := &Window{
		actors:     make([]*Actor, 0, len(cfg.Actors)),
		bounds:     d3.EmptyBox(),
		background: fauxgl.Black,
		width:      cfg.Width,
		height:     cfg.Height,
		ss:         cfg.Supersample,
	}
	if cfg.Background != nil {
		w.background = fauxgl.MakeColor(cfg.Background)
	}
	for _, a := range cfg.Actors {
		if a == nil {
			continue
		}
		w.actors = append(w.actors, a)
		if bb := a.Bounds(); !bb.Empty() {
			w.bounds = w.bounds.Extend(bb)
		}
	}
	if cfg.Camera != nil {
		w.camera = *cfg.Camera
	} else {
		w.camera = NewCamera()
		w.camera.Reset(w.bounds)
	}
	if cfg.FocalPoint != nil {
		w.camera.SetFocalPoint(*cfg.FocalPoint)
	}
	if err := w.camera.Dolly(cfg.Zoom); err != nil {
		return nil, err
	}
	w.camera.ResetClippingRange(w.bounds)
	w.ctx = fauxgl.NewContext(w.width*w.ss, w.height*w.ss)
	w.ctx.Cull = fauxgl.CullNone
	return w, nil
}

// Camera returns the window's camera. Changes to it affect following captures.
func (w *Window) Camera() *Camera { return &w.camera }

// Bounds returns the bounding box of all actors in the window.
func (w *Window) Bounds() d3.Box { return w.bounds }

// Size returns the dimensions of captured images.
func (w *Window) Size() (width, height int) { return w.width, w.height }

// Capture renders the scene and returns a copy of the result.
func (w *Window) Capture() (*image.NRGBA, error) {
	if w.ctx == nil {
		return nil, ErrClosed
	}
	cam := w.camera
	cam.ResetClippingRange(w.bounds)
	var (
		aspect = float64(w.width) / float64(w.height)
		matrix = cam.Matrix(aspect)
		eye    = vec(cam.Position)
		light  = vec(r3.Unit(r3.Sub(cam.Position, cam.FocalPoint))) // headlight.
	)
	w.ctx.ClearColorBufferWith(w.background)
	w.ctx.ClearDepthBuffer()
	for _, a := range w.actors {
		shader := fauxgl.NewPhongShader(matrix, light, eye)
		shader.ObjectColor = a.color
		w.ctx.Shader = shader
		w.ctx.DrawMesh(a.mesh)
	}
	var img image.Image = w.ctx.Image()
	if w.ss > 1 {
		// downsample image for antialiasing
		img = resize.Resize(uint(w.width), uint(w.height), img, resize.Bilinear)
	}
	return toNRGBA(img), nil
}

// Close releases the render buffers. Capture fails after Close.
func (w *Window) Close() error {
	if w.ctx == nil {
		return ErrClosed
	}
	w.ctx = nil
	return nil
}

func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
