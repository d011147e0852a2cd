package rotarray

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// labelDPI makes one typographic point equal one pixel.
const labelDPI = 72

// fraction of a label's thickness taken by automatically sized text.
const autoFontFraction = 0.6

// Orientation is the reading direction of label text.
type Orientation int

const (
	// OrientationAuto is Vertical for label images preceding a row of
	// images and Horizontal for labels above a column of images.
	OrientationAuto Orientation = iota
	// Vertical text is rotated 90° counter-clockwise and reads bottom to top.
	Vertical
	// Horizontal text reads left to right.
	Horizontal
)

func (o Orientation) String() string {
	switch o {
	case OrientationAuto:
		return "auto"
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	}
	return fmt.Sprintf("Orientation(%d)", int(o))
}

// LabelConfig describes a caption image.
type LabelConfig struct {
	Text          string
	Width, Height int
	Orientation   Orientation
	// Background defaults to white.
	Background color.Color
	// Color of the text. Defaults to black.
	Color color.Color
	// FontSize in points (pixels). Zero scales text with the thickness of
	// the label and shrinks it to fit its length.
	FontSize vg.Length
	// Font defaults to plot.DefaultFont.
	Font font.Font
}

// Label renders text centered in an image of the configured size.
func Label(cfg LabelConfig) (*image.NRGBA, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errors.New("rotarray: label dimensions must be positive")
	}
	if cfg.Background == nil {
		cfg.Background = color.White
	}
	if cfg.Color == nil {
		cfg.Color = color.Black
	}
	if cfg.Font.Typeface == "" {
		cfg.Font = plot.DefaultFont
	}
	w, h := vg.Length(cfg.Width), vg.Length(cfg.Height)
	c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(labelDPI))
	dc := draw.New(c)
	dc.FillPolygon(cfg.Background, []vg.Point{{}, {X: w}, {X: w, Y: h}, {Y: h}})

	if cfg.Text != "" {
		length, thickness := h, w
		rotation := math.Pi / 2
		if cfg.Orientation == Horizontal {
			length, thickness = w, h
			rotation = 0
		}
		sty := text.Style{
			Color:    cfg.Color,
			Font:     font.From(cfg.Font, cfg.FontSize),
			Rotation: rotation,
			XAlign:   text.XCenter,
			YAlign:   text.YCenter,
			Handler:  plot.DefaultTextHandler,
		}
		if cfg.FontSize == 0 {
			sty.Font.Size = autoFontFraction * thickness
			if tw := sty.Width(cfg.Text); tw > 0.95*length {
				sty.Font.Size *= 0.95 * length / tw
			}
		}
		dc.FillText(sty, vg.Point{X: w / 2, Y: h / 2}, cfg.Text)
	}
	return toNRGBA(c.Image()), nil
}

// LabelSeries renders one label image per string, each of the given size.
func LabelSeries(labels []string, width, height int, orientation Orientation, background color.Color) ([]image.Image, error) {
	images := make([]image.Image, 0, len(labels))
	for _, label := range labels {
		img, err := Label(LabelConfig{
			Text:        label,
			Width:       width,
			Height:      height,
			Orientation: orientation,
			Background:  background,
		})
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}
