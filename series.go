package rotarray

import (
	"errors"
	"image"
	"image/color"

	"github.com/soypat/rotarray/scene"
	"gonum.org/v1/plot/vg"
)

const (
	defaultRotations = 3
	// labelFraction is the thickness of an ID label relative to the window.
	labelFraction = 0.1
)

// SeriesConfig configures RotationSeries.
type SeriesConfig struct {
	// Rotations is the amount of images taken during a full turn of the
	// camera. Defaults to 3.
	Rotations int
	Axis      scene.RotationAxis
	// AppendID prepends a label image showing Name to the series.
	AppendID         bool
	Name             string
	LabelOrientation Orientation
	LabelBackground  color.Color
	LabelColor       color.Color
	LabelFontSize    vg.Length
}

// RotationSeries collects images of win as its camera orbits the focal
// point. An image is captured before each rotation of 360/Rotations
// degrees so the camera ends where it started. When AppendID is set the
// first image is a label one tenth of the window thick.
func RotationSeries(win *scene.Window, cfg SeriesConfig) ([]image.Image, error) {
	if win == nil {
		return nil, errors.New("rotarray: nil window")
	}
	if cfg.Rotations < 0 {
		return nil, errors.New("rotarray: negative rotation count")
	}
	if cfg.Rotations == 0 {
		cfg.Rotations = defaultRotations
	}
	images := make([]image.Image, 0, cfg.Rotations+1)
	if cfg.AppendID {
		width, height := win.Size()
		orientation := cfg.LabelOrientation
		if orientation == OrientationAuto {
			orientation = Vertical
		}
		if orientation == Vertical {
			width = max(1, int(labelFraction*float64(width)))
		} else {
			height = max(1, int(labelFraction*float64(height)))
		}
		label, err := Label(LabelConfig{
			Text:        cfg.Name,
			Width:       width,
			Height:      height,
			Orientation: orientation,
			Background:  cfg.LabelBackground,
			Color:       cfg.LabelColor,
			FontSize:    cfg.LabelFontSize,
		})
		if err != nil {
			return nil, err
		}
		images = append(images, label)
	}

	step := 360 / float64(cfg.Rotations)
	cam := win.Camera()
	for i := 0; i < cfg.Rotations; i++ {
		img, err := win.Capture()
		if err != nil {
			return nil, err
		}
		images = append(images, img)
		if err := cam.Rotate(cfg.Axis, step); err != nil {
			return nil, err
		}
	}
	return images, nil
}
