package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Yamier22/motion-library/internal/render"
)

func newRenderModelCommand(cfg *cliConfig) *cobra.Command {
	var modelRel string
	var lookat []float64
	cam := render.DefaultCamera()
	cmd := &cobra.Command{
		Use:   "render-model",
		Short: "Render a still preview image for one model",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyLookAt(&cam, lookat); err != nil {
				return err
			}
			gen, err := cfg.generator()
			if err != nil {
				return err
			}
			if err := gen.RenderModel(modelRel, cam); err != nil {
				return fmt.Errorf("render model %s: %w", modelRel, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rendered thumbnail for %s\n", modelRel)
			return nil
		},
	}
	cmd.Flags().StringVar(&modelRel, "model", "", "model file path relative to the models directory")
	cobra.CheckErr(cmd.MarkFlagRequired("model"))
	cameraFlags(cmd, &cam, &lookat)
	return cmd
}
