package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/gisramp/internal/render"
)

func newSwatchCmd(global *globalOptions) *cobra.Command {
	var (
		output string
		width  int
		height int
		style  string
	)

	cmd := &cobra.Command{
		Use:   "swatch <palette>",
		Short: "Render a ramp as an image",
		Long: `Render a .clr ramp or JSON palette record as a PNG or BMP swatch.

The gradient style blends linearly between evenly spaced stops, the way a
GIS renderer interpolates a ramp across a raster's value range. The blocks
style draws one flat block per colour.

Examples:
  gisramp swatch -o terrain.png terrain.clr
  gisramp swatch --style blocks --width 700 --height 100 -o terrain.bmp terrain.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if output == "" {
				return fmt.Errorf("--output is required")
			}

			s := render.Style(style)
			if s != render.StyleGradient && s != render.StyleBlocks {
				return fmt.Errorf("invalid style: %s (valid: gradient, blocks)", style)
			}

			in, err := readPaletteFile(args[0])
			if err != nil {
				return err
			}

			if err := render.WriteFile(output, in.palette, width, height, s); err != nil {
				return err
			}
			global.logger.Info("wrote swatch", "path", output, "width", width, "height", height)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output image (.png or .bmp)")
	cmd.Flags().IntVar(&width, "width", render.DefaultWidth, "image width in pixels")
	cmd.Flags().IntVar(&height, "height", render.DefaultHeight, "image height in pixels")
	cmd.Flags().StringVar(&style, "style", string(render.StyleGradient), "swatch style (gradient, blocks)")

	return cmd
}
