package cli

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/gisramp/internal/colour"
)

func newSortCmd(global *globalOptions) *cobra.Command {
	var (
		mode   string
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "sort <palette>",
		Short: "Reorder an existing ramp",
		Long: `Reorder the colours of a .clr ramp or JSON palette record.

Modes: ` + sortModeList() + `.
All modes are stable. The result is written to stdout unless --output is given.

Examples:
  gisramp sort -s brightness-descending terrain.clr
  gisramp sort -s hue -f json -o terrain.json terrain.clr`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyDefaults(cmd.Flags(), map[string]string{"sort": global.cfg.Sort}); err != nil {
				return err
			}

			sortMode, err := colour.ParseSortMode(mode)
			if err != nil {
				return err
			}

			in, err := readPaletteFile(args[0])
			if err != nil {
				return err
			}

			outFormat := in.format
			if format != "" {
				if outFormat, err = parseFormat(format); err != nil {
					return err
				}
			}

			sorted := colour.Reorder(in.palette, sortMode)
			global.logger.Debug("sorted ramp", "mode", sortMode, "colours", sorted.Len())

			out, err := formatPalette(sorted, outFormat, in.name, false)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, out)
		},
	}

	cmd.Flags().StringVarP(&mode, "sort", "s", string(colour.SortBrightnessAscending), "ramp order")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format (default: same as input)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}
