package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Yamier22/motion-library/internal/render"
	"github.com/Yamier22/motion-library/internal/trajfile"
)

func newRenderTrajectoryCommand(cfg *cliConfig) *cobra.Command {
	var trajRel string
	var modelRel string
	var lookat []float64
	cam := render.DefaultCamera()
	cmd := &cobra.Command{
		Use:   "render-trajectory",
		Short: "Render looping preview animations for a trajectory file or folder",
		Long: "Renders a looping preview animation for one trajectory file, or for every " +
			"trajectory file directly inside a folder. A failed file never stops the rest " +
			"of a folder run.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyLookAt(&cam, lookat); err != nil {
				return err
			}
			gen, err := cfg.generator()
			if err != nil {
				return err
			}

			// A path with a trajectory extension is a single file;
			// anything else is treated as a category folder.
			if trajfile.IsTrajectoryFile(trajRel) {
				if err := gen.RenderTrajectory(trajRel, modelRel, cam); err != nil {
					return fmt.Errorf("render trajectory %s: %w", trajRel, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Rendered thumbnail for %s\n", trajRel)
				return nil
			}

			ok, total, err := gen.RenderTrajectoryFolder(trajRel, modelRel, cam)
			if err != nil {
				return fmt.Errorf("render folder %s: %w", trajRel, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rendered %d/%d trajectories in %s\n", ok, total, trajRel)
			if total == 0 {
				return fmt.Errorf("no trajectory files in %s", trajRel)
			}
			if ok == 0 {
				return fmt.Errorf("no trajectories rendered in %s", trajRel)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&trajRel, "trajectory", "", "trajectory file or folder path relative to the trajectories directory")
	cmd.Flags().StringVar(&modelRel, "model", "", "model file path relative to the models directory, used to pose the figure")
	cobra.CheckErr(cmd.MarkFlagRequired("trajectory"))
	cobra.CheckErr(cmd.MarkFlagRequired("model"))
	cameraFlags(cmd, &cam, &lookat)
	return cmd
}
