package main

import (
	"fmt"
	"os"

	"github.com/soypat/rotarray"
	"github.com/soypat/rotarray/internal/manifest"
	"github.com/soypat/rotarray/scene"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	turntableConfig string
	turntableOut    string
	turntableRow    int
	turntableFrames int
	turntableDelay  int
)

var turntableCmd = &cobra.Command{
	Use:   "turntable",
	Short: "Render one manifest row as an animated GIF",
	Args:  cobra.NoArgs,
	RunE:  runTurntable,
}

func init() {
	turntableCmd.Flags().StringVarP(&turntableConfig, "config", "c", "", "montage manifest (required)")
	turntableCmd.Flags().StringVarP(&turntableOut, "out", "o", "turntable.gif", "output GIF path")
	turntableCmd.Flags().IntVar(&turntableRow, "row", 0, "manifest row to animate")
	turntableCmd.Flags().IntVar(&turntableFrames, "frames", 36, "frames in a full turn")
	turntableCmd.Flags().IntVar(&turntableDelay, "delay", 8, "delay between frames in 1/100 s")
	turntableCmd.MarkFlagRequired("config")
	rootCmd.AddCommand(turntableCmd)
}

func runTurntable(cmd *cobra.Command, args []string) error {
	m, err := manifest.Load(turntableConfig)
	if err != nil {
		return err
	}
	cfg, err := m.Config(logger)
	if err != nil {
		return err
	}
	actors, err := m.RowActors(turntableRow)
	if err != nil {
		return err
	}
	if cfg.Supersample == 0 {
		cfg.Supersample = 2
	}
	wcfg := scene.WindowConfig{
		Actors:      actors,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Background:  cfg.Background,
		Zoom:        cfg.Zoom,
		Supersample: cfg.Supersample,
	}
	if focus := m.Rows[turntableRow].Focus; focus != nil {
		wcfg.FocalPoint = &r3.Vec{X: focus[0], Y: focus[1], Z: focus[2]}
	}
	win, err := scene.NewWindow(wcfg)
	if err != nil {
		return err
	}
	defer win.Close()
	logger.Info("rendering turntable", zap.Int("row", turntableRow), zap.Int("frames", turntableFrames))
	frames, err := rotarray.RotationSeries(win, rotarray.SeriesConfig{
		Rotations: turntableFrames,
		Axis:      cfg.Axis,
	})
	if err != nil {
		return err
	}
	fp, err := os.Create(turntableOut)
	if err != nil {
		return err
	}
	if err := rotarray.EncodeGIF(fp, frames, turntableDelay); err != nil {
		fp.Close()
		return err
	}
	if err := fp.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d frames)\n", turntableOut, len(frames))
	return nil
}
