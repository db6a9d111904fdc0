package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Yamier22/motion-library/internal/pkg/logger"
	"github.com/Yamier22/motion-library/internal/render"
	"github.com/Yamier22/motion-library/internal/storage"
)

type cliConfig struct {
	dataDir         string
	modelsDir       string
	trajectoriesDir string
	thumbnailsDir   string
	logMode         string
}

func (c *cliConfig) generator() (*render.Generator, error) {
	log, err := logger.New(c.logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	modelsDir := c.modelsDir
	if modelsDir == "" {
		modelsDir = filepath.Join(c.dataDir, "models")
	}
	trajectoriesDir := c.trajectoriesDir
	if trajectoriesDir == "" {
		trajectoriesDir = filepath.Join(c.dataDir, "trajectories")
	}
	thumbnailsDir := c.thumbnailsDir
	if thumbnailsDir == "" {
		thumbnailsDir = filepath.Join(c.dataDir, "thumbnails")
	}
	store, err := storage.New(log, modelsDir, trajectoriesDir, thumbnailsDir)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	return render.NewGenerator(log, store, render.NewSoftwareEngine()), nil
}

func cameraFlags(cmd *cobra.Command, cam *render.Camera, lookat *[]float64) {
	d := render.DefaultCameraLookAt
	cmd.Flags().Float64Var(&cam.Distance, "distance", render.DefaultCameraDistance, "camera distance from the look-at point")
	cmd.Flags().Float64Var(&cam.Azimuth, "azimuth", render.DefaultCameraAzimuth, "camera azimuth in degrees")
	cmd.Flags().Float64Var(&cam.Elevation, "elevation", render.DefaultCameraElevation, "camera elevation in degrees")
	cmd.Flags().Float64SliceVar(lookat, "lookat", []float64{d[0], d[1], d[2]}, "camera look-at point as x,y,z")
}

func applyLookAt(cam *render.Camera, lookat []float64) error {
	if len(lookat) != 3 {
		return fmt.Errorf("lookat needs exactly 3 components, got %d", len(lookat))
	}
	copy(cam.LookAt[:], lookat)
	return nil
}

func newRootCommand() *cobra.Command {
	cfg := &cliConfig{}
	cmd := &cobra.Command{
		Use:           "thumbnails",
		Short:         "Generate preview thumbnails for models and trajectories",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&cfg.dataDir, "data-dir", "./data", "root data directory")
	cmd.PersistentFlags().StringVar(&cfg.modelsDir, "models-dir", "", "models directory (defaults to <data-dir>/models)")
	cmd.PersistentFlags().StringVar(&cfg.trajectoriesDir, "trajectories-dir", "", "trajectories directory (defaults to <data-dir>/trajectories)")
	cmd.PersistentFlags().StringVar(&cfg.thumbnailsDir, "thumbnails-dir", "", "thumbnail cache directory (defaults to <data-dir>/thumbnails)")
	cmd.PersistentFlags().StringVar(&cfg.logMode, "log-mode", "production", "logger mode (development or production)")
	cmd.AddCommand(newRenderModelCommand(cfg))
	cmd.AddCommand(newRenderTrajectoryCommand(cfg))
	return cmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
