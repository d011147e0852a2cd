package rotarray

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/soypat/rotarray/scene"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot/vg"
)

// ErrFocalPoints is returned when focal points are given for some rows only.
var ErrFocalPoints = errors.New("rotarray: focal points and actor rows not of same length")

// Config configures RotationArray. The zero value is a 3 image azimuth
// turn of 1000x1000 pixel white background renders per row, with labels.
type Config struct {
	Rotations int
	Axis      scene.RotationAxis
	// Size of each rendered image. Zero values default to 1000.
	Width, Height int
	// Background of rendered images. Defaults to white.
	Background color.Color
	// FocalPoints holds one camera focal point per row. When empty each
	// camera looks at the center of its row's actors.
	FocalPoints []r3.Vec
	// RowNames label rows in order. Rows without a name get an empty label.
	RowNames []string
	// Zoom dollies every camera toward its focal point. Zero means 1.
	Zoom float64
	// Transpose lays each rotation series out top to bottom with rows
	// left to right.
	Transpose bool
	// HideLabels omits the label image at the start of each row.
	HideLabels       bool
	LabelOrientation Orientation
	LabelBackground  color.Color
	LabelColor       color.Color
	LabelFontSize    vg.Length
	// Supersample is the anti-aliasing supersampling factor. Zero means 2,
	// 1 disables anti-aliasing.
	Supersample int
	// Workers limits how many rows render concurrently. Zero or negative
	// values do not limit concurrency.
	Workers int
	// Logger receives per-row progress at debug level. Defaults to a no-op logger.
	Logger *zap.Logger
}

// RotationArray renders a grid of images. Each element of actorRows is a
// scene rendered from a camera orbiting its focal point; the images of a
// scene, preceded by a label with the row's name, form one row of the grid.
// Rows are stacked in order, first row on top (or left when transposed).
func RotationArray(ctx context.Context, actorRows [][]*scene.Actor, cfg Config) (*image.NRGBA, error) {
	if len(actorRows) == 0 {
		return nil, ErrEmpty
	}
	if len(cfg.FocalPoints) != 0 && len(cfg.FocalPoints) != len(actorRows) {
		return nil, fmt.Errorf("%w: %d focal points for %d rows", ErrFocalPoints, len(cfg.FocalPoints), len(actorRows))
	}
	if len(cfg.RowNames) > len(actorRows) {
		return nil, fmt.Errorf("rotarray: %d row names for %d rows", len(cfg.RowNames), len(actorRows))
	}
	if cfg.Rotations < 0 {
		return nil, errors.New("rotarray: negative rotation count")
	}
	if cfg.Background == nil {
		cfg.Background = color.White
	}
	if cfg.Supersample == 0 {
		cfg.Supersample = 2
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	rowAxis, columnAxis := AxisX, AxisY
	orientation := cfg.LabelOrientation
	if cfg.Transpose {
		rowAxis, columnAxis = AxisY, AxisX
		if orientation == OrientationAuto {
			orientation = Horizontal
		}
	}

	rows := make([]image.Image, len(actorRows))
	g, ctx := errgroup.WithContext(ctx)
	if cfg.Workers > 0 {
		g.SetLimit(cfg.Workers)
	}
	for i := range actorRows {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var name string
			if i < len(cfg.RowNames) {
				name = cfg.RowNames[i]
			}
			start := time.Now()
			row, err := renderRow(actorRows[i], i, name, orientation, rowAxis, cfg)
			if err != nil {
				return fmt.Errorf("row %d %q: %w", i, name, err)
			}
			rows[i] = row
			log.Debug("rendered row",
				zap.Int("row", i),
				zap.String("name", name),
				zap.Int("actors", len(actorRows[i])),
				zap.Duration("elapsed", time.Since(start)),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return Concatenate(rows, columnAxis)
}

func renderRow(actors []*scene.Actor, i int, name string, orientation Orientation, axis Axis, cfg Config) (image.Image, error) {
	wcfg := scene.WindowConfig{
		Actors:      actors,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Background:  cfg.Background,
		Zoom:        cfg.Zoom,
		Supersample: cfg.Supersample,
	}
	if len(cfg.FocalPoints) != 0 {
		fp := cfg.FocalPoints[i]
		wcfg.FocalPoint = &fp
	}
	win, err := scene.NewWindow(wcfg)
	if err != nil {
		return nil, err
	}
	defer win.Close()
	images, err := RotationSeries(win, SeriesConfig{
		Rotations:        cfg.Rotations,
		Axis:             cfg.Axis,
		AppendID:         !cfg.HideLabels,
		Name:             name,
		LabelOrientation: orientation,
		LabelBackground:  cfg.LabelBackground,
		LabelColor:       cfg.LabelColor,
		LabelFontSize:    cfg.LabelFontSize,
	})
	if err != nil {
		return nil, err
	}
	return Concatenate(images, axis)
}
