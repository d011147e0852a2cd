package main

import (
	"fmt"
	"time"

	"github.com/soypat/rotarray"
	"github.com/soypat/rotarray/internal/manifest"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	renderConfig  string
	renderOut     string
	renderWorkers int
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a manifest as a PNG montage",
	Args:  cobra.NoArgs,
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderConfig, "config", "c", "", "montage manifest (required)")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "montage.png", "output PNG path")
	renderCmd.Flags().IntVar(&renderWorkers, "workers", 0, "rows rendered concurrently, overrides manifest")
	renderCmd.MarkFlagRequired("config")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	m, err := manifest.Load(renderConfig)
	if err != nil {
		return err
	}
	cfg, err := m.Config(logger)
	if err != nil {
		return err
	}
	if renderWorkers > 0 {
		cfg.Workers = renderWorkers
	}
	rows, err := m.Actors()
	if err != nil {
		return err
	}
	logger.Info("rendering montage",
		zap.String("config", renderConfig),
		zap.Int("rows", len(rows)),
		zap.Stringer("axis", cfg.Axis),
	)
	start := time.Now()
	img, err := rotarray.RotationArray(cmd.Context(), rows, cfg)
	if err != nil {
		return err
	}
	if err := rotarray.SavePNG(renderOut, img); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logger.Info("montage written",
		zap.String("out", renderOut),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
		zap.Duration("elapsed", time.Since(start)),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%dx%d)\n", renderOut, img.Bounds().Dx(), img.Bounds().Dy())
	return nil
}
